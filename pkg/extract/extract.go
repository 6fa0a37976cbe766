// Package extract contains the signal extractors that turn free-form pick
// text into structured fields: American odds, win-loss records, risk
// sizing, sport category and credibility markers.
//
// Every extractor is a pure function over a text blob. Extractors are
// total: on no match they return an explicit absence value (a false ok or
// a documented default), never an error and never partial output.
package extract

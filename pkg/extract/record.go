package extract

import (
	"regexp"
	"strconv"
)

// recordPattern matches one surface form of a stated win-loss record.
// Each pattern captures exactly two groups: wins then losses. An optional
// trailing push count is recognized where it occurs but discarded.
type recordPattern struct {
	name string
	re   *regexp.Regexp
}

// recordPatterns covers the record formats actually seen in pick posts,
// tried in order with first match winning:
//
//	(50-25)   [50-25]   50W-25L   Record: 50-25   went 50-25
//	"50 and 25 on the season"
//
// "last N picks" phrasing is deliberately not matched; it is too
// ambiguous to resolve into a season record.
var recordPatterns = []recordPattern{
	{"parenthesized", regexp.MustCompile(`\((\d{1,4})\s*[-–/]\s*(\d{1,4})(?:\s*[-–/]\s*\d{1,3})?\)`)},
	{"bracketed", regexp.MustCompile(`\[(\d{1,4})\s*[-–/]\s*(\d{1,4})(?:\s*[-–/]\s*\d{1,3})?\]`)},
	{"wl_suffix", regexp.MustCompile(`(?i)(\d{1,4})\s*W\s*[-–/]\s*(\d{1,4})\s*L`)},
	{"labeled", regexp.MustCompile(`(?i)(?:record\s+is|record|rec|season|ytd|overall|this\s+(?:week|month|season))\s*:?\s*(\d{1,4})\s*[-–]\s*(\d{1,4})`)},
	{"verb_led", regexp.MustCompile(`(?i)(?:went|going|finished|sitting\s+at|currently(?:\s+at)?)\s+(\d{1,4})\s*[-–]\s*(\d{1,4})`)},
	{"spelled_out", regexp.MustCompile(`(?i)\b(\d{1,4})\s+and\s+(\d{1,4})\s+(?:on\s+the\s+)?(?:season|week|month|year|picks?)`)},
}

// Record scans text for a stated win-loss record.
func Record(text string) (wins, losses int, ok bool) {
	for _, p := range recordPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		w, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		l, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		return w, l, true
	}
	return 0, 0, false
}

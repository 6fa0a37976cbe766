package extract

import (
	"regexp"
	"strconv"
)

// American odds: a signed 2-4 digit integer, e.g. -110 or +140.
var oddsRe = regexp.MustCompile(`[+-]\d{2,4}`)

// Odds returns the first American-odds value in text. Absence of odds is
// the single gating condition for the whole pipeline: a post without them
// is not a pick.
func Odds(text string) (int, bool) {
	m := oddsRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

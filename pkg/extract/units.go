package extract

import (
	"math"
	"regexp"
	"strconv"
)

// MaxRiskUnits caps self-reported stake size. Anything above this is
// hype, not sizing.
const MaxRiskUnits = 10.0

// A number immediately followed by "u" or "units", e.g. "2.5u", "3 units".
var riskUnitsRe = regexp.MustCompile(`(?i)([+-]?\d+(?:\.\d+)?)\s*u(?:nits?)?\b`)

// A signed number followed by "u"/"units", e.g. "+25.5u on the season".
var totalUnitsRe = regexp.MustCompile(`(?i)([+-]\d+(?:\.\d+)?)\s*u(?:nits?)?\b`)

// RiskUnits returns the stake size stated in text, taken absolute and
// capped at MaxRiskUnits. Defaults to 1.0 when no sizing is stated.
func RiskUnits(text string) float64 {
	m := riskUnitsRe.FindStringSubmatch(text)
	if m == nil {
		return 1.0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 1.0
	}
	return math.Min(math.Abs(v), MaxRiskUnits)
}

// CumulativeUnits returns the signed season-total units stated in body
// text, defaulting to 0. The sign is required: an unsigned number next to
// "u" is a stake size, not a running total. Only the post body is
// scanned, so sizing mentions in the title are not mistaken for totals.
func CumulativeUnits(body string) float64 {
	m := totalUnitsRe.FindStringSubmatch(body)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

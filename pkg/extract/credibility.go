package extract

import "strings"

// Credibility is the trust tier assigned to a capper's claims.
type Credibility string

const (
	CredVerified   Credibility = "verified"
	CredUnverified Credibility = "unverified"
	CredSuspicious Credibility = "suspicious"
)

// hypeMarkers are overconfidence phrases that flag a post as suspicious
// when no verifiable record backs it up.
var hypeMarkers = []string{
	"lock", "guaranteed", "can't miss", "whale",
	"free money", "99%", "easy money", "can't lose",
}

// HasHype reports whether text contains any overconfidence marker.
func HasHype(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range hypeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Classify derives the trust tier. Record evidence always takes
// precedence over hype-language penalties; the order of these checks is
// load-bearing.
func Classify(hasRecord, hasHype bool) Credibility {
	switch {
	case hasRecord:
		return CredVerified
	case hasHype:
		return CredSuspicious
	default:
		return CredUnverified
	}
}

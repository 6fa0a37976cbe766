package extract

import "testing"

func TestOdds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{"negative", "Lakers ML -110", -110, true},
		{"positive", "value at +140 tonight", 140, true},
		{"first of several", "parlay -110 and +250", -110, true},
		{"four digits", "+1200 longshot", 1200, true},
		{"two digits", "heavy juice -95", -95, true},
		{"spread is not odds", "Lakers -5.5 tonight", 0, false},
		{"unsigned number", "scored 110 points", 0, false},
		{"no numbers", "hammer the under", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Odds(tt.text)
			if ok != tt.ok {
				t.Fatalf("Odds(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("Odds(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestRiskUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"simple", "3u play", 3.0},
		{"decimal", "-110, 2.5u", 2.5},
		{"clamped", "15u MAX BET", 10.0},
		{"units word", "risking 4 units here", 4.0},
		{"unit singular", "1 unit on the over", 1.0},
		{"negative taken absolute", "-3u", 3.0},
		{"default when absent", "Lakers -110", 1.0},
		{"not part of a word", "5 underdogs today", 1.0},
		{"empty", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskUnits(tt.text); got != tt.want {
				t.Fatalf("RiskUnits(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCumulativeUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want float64
	}{
		{"positive season total", "+25.5u on the season", 25.5},
		{"negative season total", "down bad, -12u ytd", -12.0},
		{"sign required", "3u play tonight", 0},
		{"absent", "no totals here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CumulativeUnits(tt.body); got != tt.want {
				t.Fatalf("CumulativeUnits(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestSport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"league keyword", "NBA POTD", "Basketball"},
		{"case insensitive", "nfl lock of the week", "Football"},
		{"team name", "Yankees ML tonight", "Baseball"},
		{"table order wins", "crossover pick: nba meets nfl", "Basketball"},
		{"soccer league", "Premier League accumulator", "Soccer"},
		{"esports", "CS2 map handicap", "Esports"},
		{"mma", "UFC main event", "MMA/UFC"},
		{"no match", "weather is nice", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sport(tt.text); got != tt.want {
				t.Fatalf("Sport(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasHype(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"this one is GUARANTEED", true},
		{"lock of the century", true},
		{"free money tonight", true},
		{"solid lean on the under", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasHype(tt.text); got != tt.want {
			t.Errorf("HasHype(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hasRecord bool
		hasHype   bool
		want      Credibility
	}{
		{"record wins over hype", true, true, CredVerified},
		{"record alone", true, false, CredVerified},
		{"hype alone", false, true, CredSuspicious},
		{"neither", false, false, CredUnverified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.hasRecord, tt.hasHype); got != tt.want {
				t.Fatalf("Classify(%v, %v) = %q, want %q", tt.hasRecord, tt.hasHype, got, tt.want)
			}
		})
	}
}

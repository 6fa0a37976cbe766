package store

import (
	"context"
	"fmt"
	"time"
)

// Seed loads a small set of realistic cappers and picks so the read API
// has data before the first scrape finishes.
func Seed(ctx context.Context, s Store) error {
	now := time.Now().UTC()

	cappers := []Capper{
		{
			Username: "LolPropKing1", Platform: "Reddit",
			DisplayName: "LolPropKing1", ProfileURL: "https://reddit.com/u/LolPropKing1",
			TotalWins: 228, TotalLosses: 175, TotalUnitsWon: 105.84,
			Credibility: "verified", LastActive: now,
		},
		{
			Username: "wes2211", Platform: "Reddit",
			DisplayName: "wes2211", ProfileURL: "https://reddit.com/u/wes2211",
			TotalWins: 41, TotalLosses: 46, TotalUnitsWon: 61.13,
			Credibility: "verified", LastActive: now,
		},
		{
			Username: "lordestros", Platform: "Reddit",
			DisplayName: "lordestros", ProfileURL: "https://reddit.com/u/lordestros",
			TotalWins: 28, TotalLosses: 22, TotalUnitsWon: 18.40,
			Credibility: "verified", LastActive: now,
		},
		{
			Username: "SecuredTys_Free", Platform: "Discord",
			DisplayName: "SecuredTys (Free Picks)",
			Credibility: "unverified", LastActive: now,
		},
	}

	ids := make(map[string]string, len(cappers))
	for i := range cappers {
		id, err := s.UpsertCapper(ctx, &cappers[i])
		if err != nil {
			return fmt.Errorf("seed capper %s: %w", cappers[i].Username, err)
		}
		ids[cappers[i].Username] = id
	}

	start := func(h int) *time.Time {
		t := now.Add(time.Duration(h) * time.Hour)
		return &t
	}

	picks := []struct {
		username string
		pick     Pick
	}{
		{"LolPropKing1", Pick{
			Sport: "Esports", Matchup: "Alliance vs. Johnny Speeds (CS2)",
			PickText: "Alliance Map 2 ML", Odds: -145, RiskUnits: 5.0,
			Status: "pending", GameStartTime: start(4),
			SourceURL:   "https://reddit.com/r/sportsbook",
			RawPostText: "Record: 228-175. Alliance looking strong today. 5u play.",
		}},
		{"wes2211", Pick{
			Sport: "Olympics", Matchup: "Great Britain (W) vs. Canada",
			PickText: "Great Britain (W) ML", Odds: 140, RiskUnits: 2.0,
			Status: "pending", GameStartTime: start(2),
			SourceURL:   "https://reddit.com/r/sportsbook",
			RawPostText: "Record: 41-46 +61.13u. Value on GB here at +140. 2u play.",
		}},
		{"lordestros", Pick{
			Sport: "Hockey", Matchup: "Sweden vs. Switzerland (Women's Hockey)",
			PickText: "Under 4.5 Goals", Odds: -115, RiskUnits: 1.0,
			Status: "pending", GameStartTime: start(6),
			SourceURL:   "https://reddit.com/r/sportsbook",
			RawPostText: "Record: 28-22. Both teams play tight defense. Under 4.5 1u.",
		}},
		{"SecuredTys_Free", Pick{
			Sport: "Basketball", Matchup: "Lakers vs. Warriors",
			PickText: "Lakers -5.5", Odds: -110, RiskUnits: 1.0,
			Status: "pending", GameStartTime: start(8),
			RawPostText: "Free pick from Discord. No track record found.",
		}},
	}

	for _, p := range picks {
		p.pick.CapperID = ids[p.username]
		if _, err := s.InsertPick(ctx, &p.pick); err != nil {
			return fmt.Errorf("seed pick %q: %w", p.pick.PickText, err)
		}
	}
	return nil
}

package extract

import "strings"

// SportOther is returned when no sport keyword matches.
const SportOther = "Other"

type sportEntry struct {
	Name     string
	Keywords []string
}

// sportTable maps sport categories to the league names, team names and
// vocabulary that identify them. Order matters: the first category with a
// matching keyword wins.
var sportTable = []sportEntry{
	{"Basketball", []string{"nba", "basketball", "lakers", "celtics", "bulls", "warriors", "bucks", "nets"}},
	{"Football", []string{"nfl", "football", "chiefs", "patriots", "cowboys", "eagles", "49ers"}},
	{"Hockey", []string{"nhl", "hockey", "leafs", "bruins", "rangers", "puck", "oilers"}},
	{"Baseball", []string{"mlb", "baseball", "yankees", "dodgers", "mets", "astros"}},
	{"Soccer", []string{"mls", "soccer", "premier", "la liga", "champions league", "bundesliga", "serie a"}},
	{"Esports", []string{"esports", "cs2", "lol", "valorant", "dota", "overwatch", "csgo"}},
	{"Olympics", []string{"olympics", "olympic", "curling", "biathlon", "skating", "alpine"}},
	{"Tennis", []string{"tennis", "atp", "wta", "wimbledon", "us open", "french open"}},
	{"MMA/UFC", []string{"ufc", "mma", "bellator", "fighter", "knockout", "submission"}},
}

// Sport returns the sport category for text by case-insensitive keyword
// containment, or SportOther when nothing matches.
func Sport(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range sportTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Name
			}
		}
	}
	return SportOther
}

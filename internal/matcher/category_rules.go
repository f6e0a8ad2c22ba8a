package matcher

import "github.com/jonesrussell/marketlink/internal/domain"

// DefaultCategoryRules returns the built-in category keyword table. The
// service loads rules from the database when configured and falls back to
// this table otherwise. Rule order matters: earlier rules win count ties.
func DefaultCategoryRules() []domain.CategoryRule {
	return []domain.CategoryRule{
		{
			ID:       1,
			Category: "Politics",
			Keywords: []string{
				"election", "vote", "voting", "congress", "senate", "house",
				"president", "biden", "trump", "policy", "legislation",
				"approval", "democrat", "republican", "campaign", "poll",
				"governor", "senator", "representative", "political",
				"government",
			},
			Priority: 1,
			Enabled:  true,
		},
		{
			ID:       2,
			Category: "Economics",
			Keywords: []string{
				"inflation", "gdp", "economy", "economic", "fed",
				"federal reserve", "interest rate", "market", "stock",
				"unemployment", "jobs", "recession", "growth", "deficit",
				"trade", "dollar", "treasury", "bonds", "retail", "consumer",
			},
			Priority: 1,
			Enabled:  true,
		},
		{
			ID:       3,
			Category: "Climate",
			Keywords: []string{
				"climate", "temperature", "weather", "emissions", "carbon",
				"warming", "hurricane", "drought", "flooding", "wildfire",
			},
			Priority: 1,
			Enabled:  true,
		},
		{
			ID:       4,
			Category: "Sports",
			Keywords: []string{
				"game", "team", "player", "championship", "score", "win",
				"playoff", "season", "league", "nfl", "nba", "mlb", "nhl",
				"soccer", "football", "basketball", "baseball",
			},
			Priority: 1,
			Enabled:  true,
		},
	}
}

package matcher

import (
	"strings"

	"github.com/jonesrussell/marketlink/internal/domain"
)

// Score computes the normalized overlap between a token multiset and a
// market's text fields. Each token contributes its weight to the total;
// tokens found as substrings of the lower-cased title+subtitle contribute
// their weight to the matched sum. The result is matched/total in [0,1].
//
// Longer matched phrases are therefore worth proportionally more than
// single-word hits. A market with an empty title always scores 0, as does
// an empty token set. Pure and order-independent.
func Score(tokens []domain.Token, market domain.Market) float64 {
	if len(tokens) == 0 || market.Title == "" {
		return 0
	}

	marketText := strings.ToLower(market.Title + " " + market.Subtitle)

	var matchWeight, totalWeight int
	for _, token := range tokens {
		weight := token.Weight
		if weight <= 0 {
			weight = strings.Count(token.Text, " ") + 1
		}
		totalWeight += weight
		if strings.Contains(marketText, token.Text) {
			matchWeight += weight
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return float64(matchWeight) / float64(totalWeight)
}

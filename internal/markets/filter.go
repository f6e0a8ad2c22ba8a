package markets

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/marketlink/internal/domain"
)

// ExclusionPolicy is the data-driven post-filter applied to fetched
// markets before they reach the matching core. A market is excluded when
// any clause matches:
//
//   - its category equals one of Categories (case-insensitive), or
//   - its ticker contains one of TickerSubstrings, or
//   - its title contains one of TitleSubstrings (case-insensitive), or
//   - its title contains a digit run AND one of NumericTitleTerms.
//
// The numeric clause is deliberately grouped with its own term list; each
// clause is independent of the others.
type ExclusionPolicy struct {
	Categories        []string `yaml:"categories"`
	TickerSubstrings  []string `yaml:"ticker_substrings"`
	TitleSubstrings   []string `yaml:"title_substrings"`
	NumericTitleTerms []string `yaml:"numeric_title_terms"`
}

// DefaultExclusionPolicy excludes sports markets, whose listings churn too
// fast and collide with everyday game chatter in post text.
func DefaultExclusionPolicy() ExclusionPolicy {
	return ExclusionPolicy{
		Categories:        []string{"Sports"},
		TickerSubstrings:  []string{"NFL", "NBA", "MLB", "NHL", "NCAA"},
		TitleSubstrings:   []string{"touchdown", "home run", "grand slam"},
		NumericTitleTerms: []string{"points", "yards", "goals", "rebounds"},
	}
}

// IsEmpty reports whether the policy excludes nothing.
func (p ExclusionPolicy) IsEmpty() bool {
	return len(p.Categories) == 0 &&
		len(p.TickerSubstrings) == 0 &&
		len(p.TitleSubstrings) == 0 &&
		len(p.NumericTitleTerms) == 0
}

var digitRunPattern = regexp.MustCompile(`\d+`)

// ExclusionFilter applies an ExclusionPolicy to market sequences.
type ExclusionFilter struct {
	policy ExclusionPolicy
}

// NewExclusionFilter creates a filter for the given policy.
func NewExclusionFilter(policy ExclusionPolicy) *ExclusionFilter {
	return &ExclusionFilter{policy: policy}
}

// Excluded reports whether a single market matches the policy.
func (f *ExclusionFilter) Excluded(m domain.Market) bool {
	for _, cat := range f.policy.Categories {
		if strings.EqualFold(m.Category, cat) {
			return true
		}
	}

	ticker := strings.ToUpper(m.Ticker)
	for _, sub := range f.policy.TickerSubstrings {
		if sub != "" && strings.Contains(ticker, strings.ToUpper(sub)) {
			return true
		}
	}

	title := strings.ToLower(m.Title)
	for _, sub := range f.policy.TitleSubstrings {
		if sub != "" && strings.Contains(title, strings.ToLower(sub)) {
			return true
		}
	}

	if len(f.policy.NumericTitleTerms) > 0 && digitRunPattern.MatchString(m.Title) {
		for _, term := range f.policy.NumericTitleTerms {
			if term != "" && strings.Contains(title, strings.ToLower(term)) {
				return true
			}
		}
	}

	return false
}

// Apply returns the markets that survive the policy, preserving order.
func (f *ExclusionFilter) Apply(markets []domain.Market) []domain.Market {
	if f == nil || f.policy.IsEmpty() {
		return markets
	}
	kept := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if !f.Excluded(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

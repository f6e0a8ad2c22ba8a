// Package matcher scores prediction-market listings against post text and
// selects the best match. category.go implements the keyword-hit category
// classifier on an Aho-Corasick automaton for a single pass over the text.
package matcher

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/logger"
)

// CategoryClassifier maps text to zero-or-one topical category by counting
// keyword hits per category rule. Rules are an ordered slice: ties keep
// the first-seen rule, so iteration order is deterministic configuration.
type CategoryClassifier struct {
	rules    []domain.CategoryRule
	matcher  *ahocorasick.Matcher
	keywords []string
	kwRule   []int // keyword index -> rule index
	logger   logger.Logger
}

// NewCategoryClassifier builds the automaton over all enabled rules'
// keywords. Keywords are matched as plain substrings of the lower-cased
// input, not at token boundaries.
func NewCategoryClassifier(rules []domain.CategoryRule, log logger.Logger) *CategoryClassifier {
	if log == nil {
		log = logger.NewNop()
	}

	c := &CategoryClassifier{logger: log}
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		c.rules = append(c.rules, rule)
	}

	ruleIdx := 0
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			c.keywords = append(c.keywords, kw)
			c.kwRule = append(c.kwRule, ruleIdx)
		}
		ruleIdx++
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}

	log.Debug("category classifier initialized",
		logger.Int("rules", len(c.rules)),
		logger.Int("keywords", len(c.keywords)),
	)

	return c
}

// Detect returns the category whose keywords hit the text most often, or
// "" when no keyword hits at all. A strictly higher count is required to
// displace an earlier rule.
func (c *CategoryClassifier) Detect(text string) string {
	if c.matcher == nil || text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	hits := c.matcher.Match([]byte(lower))
	if len(hits) == 0 {
		return ""
	}

	// The automaton reports each matched keyword once; accumulate unique
	// keyword hits per rule.
	counts := make([]int, len(c.rules))
	for _, hit := range hits {
		if hit < 0 || hit >= len(c.kwRule) {
			continue
		}
		counts[c.kwRule[hit]]++
	}

	best := -1
	bestCount := 0
	for i, count := range counts {
		if count > bestCount {
			bestCount = count
			best = i
		}
	}
	if best < 0 {
		return ""
	}

	c.logger.Debug("detected category",
		logger.String("category", c.rules[best].Category),
		logger.Int("keyword_hits", bestCount),
	)

	return c.rules[best].Category
}

// Rules returns the enabled rules in evaluation order.
func (c *CategoryClassifier) Rules() []domain.CategoryRule {
	return c.rules
}

package matcher

import (
	"sort"
	"strings"

	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/logger"
	"github.com/jonesrussell/marketlink/internal/tokenizer"
)

// DefaultMinMatchScore is the minimum normalized score required to treat
// a market as a genuine match rather than noise.
const DefaultMinMatchScore = 0.15

// Config holds matcher configuration.
type Config struct {
	// MinMatchScore is the match threshold in [0,1].
	MinMatchScore float64 `yaml:"min_match_score"`
}

// Matcher orchestrates tokenization, category detection and relevance
// scoring over a candidate market pool. All methods are synchronous pure
// functions over their inputs; a single Matcher is safe for concurrent use.
type Matcher struct {
	tokenizer *tokenizer.Tokenizer
	category  *CategoryClassifier
	minScore  float64
	logger    logger.Logger
}

// New creates a matcher. A nil tokenizer or classifier falls back to the
// defaults; MinMatchScore <= 0 falls back to DefaultMinMatchScore.
func New(tok *tokenizer.Tokenizer, category *CategoryClassifier, cfg Config, log logger.Logger) *Matcher {
	if tok == nil {
		tok = tokenizer.Default()
	}
	if category == nil {
		category = NewCategoryClassifier(DefaultCategoryRules(), log)
	}
	if log == nil {
		log = logger.NewNop()
	}
	minScore := cfg.MinMatchScore
	if minScore <= 0 {
		minScore = DefaultMinMatchScore
	}
	return &Matcher{
		tokenizer: tok,
		category:  category,
		minScore:  minScore,
		logger:    log,
	}
}

// FindBestMatch scores every market against the text and returns the
// highest scorer at or above the threshold, or nil when nothing qualifies.
// When no category hint is supplied one is detected from the text; a
// determined category narrows the pool to markets in that category or with
// the category label in their title, falling back to the full pool when
// the filter would eliminate every candidate. Ties keep the earliest
// market in pool order.
func (m *Matcher) FindBestMatch(text string, markets []domain.Market, category string) *domain.Match {
	if text == "" || len(markets) == 0 {
		return nil
	}

	if category == "" {
		category = m.category.Detect(text)
	}

	pool := markets
	if category != "" {
		filtered := filterByCategory(markets, category)
		if len(filtered) > 0 {
			pool = filtered
		} else {
			m.logger.Debug("category filter empty, using full pool",
				logger.String("category", category),
				logger.Int("markets", len(markets)),
			)
		}
	}

	tokens := m.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	bestIdx := -1
	bestScore := 0.0
	for i, market := range pool {
		score := Score(tokens, market)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < m.minScore {
		m.logger.Debug("no market above threshold",
			logger.Float64("best_score", bestScore),
			logger.Float64("threshold", m.minScore),
		)
		return nil
	}

	m.logger.Debug("found match",
		logger.String("ticker", pool[bestIdx].Ticker),
		logger.Float64("score", bestScore),
		logger.String("category", category),
	)

	return &domain.Match{
		Market:   pool[bestIdx],
		Score:    bestScore,
		Tokens:   tokens,
		Category: category,
	}
}

// FindTopMatches returns up to maxResults markets scoring at or above the
// threshold, sorted by descending score with pool order preserved among
// equals. No category filtering is applied. Nothing qualifying yields an
// empty slice, never nil-with-error.
func (m *Matcher) FindTopMatches(text string, markets []domain.Market, maxResults int) []domain.Match {
	if text == "" || len(markets) == 0 || maxResults <= 0 {
		return []domain.Match{}
	}

	tokens := m.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return []domain.Match{}
	}

	matches := make([]domain.Match, 0, len(markets))
	for _, market := range markets {
		score := Score(tokens, market)
		if score < m.minScore {
			continue
		}
		matches = append(matches, domain.Match{
			Market: market,
			Score:  score,
			Tokens: tokens,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// MinScore returns the configured match threshold.
func (m *Matcher) MinScore() float64 {
	return m.minScore
}

// Categories returns the classifier's rule table in evaluation order.
func (m *Matcher) Categories() []domain.CategoryRule {
	return m.category.Rules()
}

// filterByCategory keeps markets whose category field equals the label or
// whose title contains it, both case-insensitive.
func filterByCategory(markets []domain.Market, category string) []domain.Market {
	lower := strings.ToLower(category)
	filtered := make([]domain.Market, 0, len(markets))
	for _, market := range markets {
		if strings.EqualFold(market.Category, category) ||
			strings.Contains(strings.ToLower(market.Title), lower) {
			filtered = append(filtered, market)
		}
	}
	return filtered
}

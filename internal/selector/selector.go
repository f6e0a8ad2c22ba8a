// Package selector picks the authoritative post out of a pool of
// structurally similar content nodes by summing independent signal scores.
package selector

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/logger"
)

// SignalWeights configures the additive signal scores. The relative
// ordering (identifier match dominates author and link matches, which
// dominate the continuous tie-breakers) is the contract; the constants are
// tunable.
type SignalWeights struct {
	// ExactID scores a timestamp permalink pointing exactly at the target.
	ExactID float64 `yaml:"exact_id"`
	// AuthorLink scores an author link matching the target handle exactly
	// or as a path prefix.
	AuthorLink float64 `yaml:"author_link"`
	// StatusLink scores an outbound link containing the target ID as a
	// path segment.
	StatusLink float64 `yaml:"status_link"`
	// TextDivisor turns text length into a weak continuous score
	// (length / TextDivisor) once the length exceeds MinTextLength.
	TextDivisor float64 `yaml:"text_divisor"`
	// MinTextLength is the length below which text contributes nothing.
	MinTextLength int `yaml:"min_text_length"`
	// PositionBias scores (poolSize - index) * PositionBias, a weak
	// preference for earlier candidates in document order.
	PositionBias float64 `yaml:"position_bias"`
}

// DefaultSignalWeights returns the empirically chosen default weights.
func DefaultSignalWeights() SignalWeights {
	return SignalWeights{
		ExactID:       1000,
		AuthorLink:    100,
		StatusLink:    50,
		TextDivisor:   10,
		MinTextLength: 10,
		PositionBias:  0.1,
	}
}

// Selection is the outcome of disambiguation: the winning candidate, its
// pool index, its cumulative score and the signals that fired.
type Selection struct {
	Candidate domain.Candidate `json:"candidate"`
	Index     int              `json:"index"`
	Score     float64          `json:"score"`
	Reasons   []string         `json:"reasons,omitempty"`
}

// Selector scores candidates against a target post identity.
type Selector struct {
	weights SignalWeights
	logger  logger.Logger
}

// New creates a selector. Zero-valued weights fall back to the defaults.
func New(weights SignalWeights, log logger.Logger) *Selector {
	if weights == (SignalWeights{}) {
		weights = DefaultSignalWeights()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Selector{weights: weights, logger: log}
}

// SelectPrimary scores every candidate and returns the highest-confidence
// one, or nil when no candidate matched any signal. Ties after summation
// resolve to the earliest-indexed candidate. Malformed candidates (no
// text, no links) simply score low; they never fail the pool.
func (s *Selector) SelectPrimary(candidates []domain.Candidate, targetID, targetAuthor string) *Selection {
	if len(candidates) == 0 || targetID == "" {
		return nil
	}

	var best *Selection
	for i := range candidates {
		score, reasons := s.scoreCandidate(&candidates[i], i, len(candidates), targetID, targetAuthor)

		s.logger.Debug("candidate scored",
			logger.Int("index", i),
			logger.Float64("score", score),
			logger.Strings("reasons", reasons),
		)

		if best == nil || score > best.Score {
			best = &Selection{
				Candidate: candidates[i],
				Index:     i,
				Score:     score,
				Reasons:   reasons,
			}
		}
	}

	// A pure position-bias score still means no real signal fired; the
	// original treats that pool as unidentifiable rather than guessing.
	if best == nil || best.Score <= float64(len(candidates))*s.weights.PositionBias {
		return nil
	}

	s.logger.Debug("selected primary candidate",
		logger.Int("index", best.Index),
		logger.Float64("score", best.Score),
	)

	return best
}

func (s *Selector) scoreCandidate(c *domain.Candidate, index, poolSize int, targetID, targetAuthor string) (float64, []string) {
	var score float64
	var reasons []string

	if c.TimestampID != "" && c.TimestampID == targetID {
		score += s.weights.ExactID
		reasons = append(reasons, "exact timestamp match")
	}

	if targetAuthor != "" && hasAuthorLink(c.Links, targetAuthor) {
		score += s.weights.AuthorLink
		reasons = append(reasons, "author match")
	}

	if hasStatusLink(c.Links, targetID) {
		score += s.weights.StatusLink
		reasons = append(reasons, "contains link to post")
	}

	if textLen := len(strings.TrimSpace(c.Text)); textLen > s.weights.MinTextLength && s.weights.TextDivisor > 0 {
		score += float64(textLen) / s.weights.TextDivisor
		reasons = append(reasons, fmt.Sprintf("has text (%d chars)", textLen))
	}

	score += float64(poolSize-index) * s.weights.PositionBias

	return score, reasons
}

// hasAuthorLink reports whether any link is the author's profile link,
// exactly ("/handle") or as a path prefix ("/handle/...").
func hasAuthorLink(links []string, author string) bool {
	exact := "/" + author
	prefix := exact + "/"
	for _, link := range links {
		if link == exact || strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return false
}

// hasStatusLink reports whether any link carries the target ID as a
// status path segment.
func hasStatusLink(links []string, targetID string) bool {
	needle := "/status/" + targetID
	for _, link := range links {
		if strings.Contains(link, needle) {
			return true
		}
	}
	return false
}

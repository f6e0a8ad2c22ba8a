package api

import (
	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/selector"
)

// Every response carries a success flag plus either a payload or an error
// description; a null match payload with success=true means "no match met
// the bar", which is an outcome, not a fault.

// MatchRequest asks for the best market match for a piece of text.
// Markets is optional; when omitted the service fetches the current open
// markets itself.
type MatchRequest struct {
	Text     string          `json:"text" binding:"required"`
	Category string          `json:"category"`
	Markets  []domain.Market `json:"markets"`
}

// MatchResponse carries the best match, or null when nothing qualified.
type MatchResponse struct {
	Success bool          `json:"success"`
	Match   *domain.Match `json:"match"`
	Error   string        `json:"error,omitempty"`
}

// TopMatchesRequest asks for the ranked list of qualifying markets.
type TopMatchesRequest struct {
	Text       string          `json:"text" binding:"required"`
	MaxResults int             `json:"max_results"`
	Markets    []domain.Market `json:"markets"`
}

// TopMatchesResponse carries the ranked matches, possibly empty.
type TopMatchesResponse struct {
	Success bool           `json:"success"`
	Matches []domain.Match `json:"matches"`
	Total   int            `json:"total"`
	Error   string         `json:"error,omitempty"`
}

// ResolveRequest carries a page location and its candidate pool; the
// service disambiguates the primary post, aggregates its text and matches
// it against the market pool.
type ResolveRequest struct {
	URL        string             `json:"url" binding:"required"`
	Candidates []domain.Candidate `json:"candidates" binding:"required"`
	Markets    []domain.Market    `json:"markets"`
}

// ResolveResponse carries the resolved post and its match, either of
// which may be null when the pipeline found nothing with confidence.
type ResolveResponse struct {
	Success   bool                `json:"success"`
	Post      *domain.Post        `json:"post"`
	Selection *selector.Selection `json:"selection,omitempty"`
	Match     *domain.Match       `json:"match"`
	Error     string              `json:"error,omitempty"`
}

// CategoryResponse is one category rule in API form.
type CategoryResponse struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Enabled  bool     `json:"enabled"`
}

// CategoriesResponse lists the configured category rules in evaluation
// order.
type CategoriesResponse struct {
	Success    bool               `json:"success"`
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
	Error      string             `json:"error,omitempty"`
}

func toCategoryResponse(rule domain.CategoryRule) CategoryResponse {
	return CategoryResponse{
		Category: rule.Category,
		Keywords: rule.Keywords,
		Enabled:  rule.Enabled,
	}
}

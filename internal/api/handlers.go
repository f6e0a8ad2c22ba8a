package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/marketlink/internal/content"
	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/logger"
	"github.com/jonesrussell/marketlink/internal/matcher"
	"github.com/jonesrussell/marketlink/internal/metrics"
	"github.com/jonesrussell/marketlink/internal/selector"
)

// MarketSource supplies the current open-market pool when a request does
// not carry its own.
type MarketSource interface {
	ListOpenMarkets(ctx context.Context) ([]domain.Market, error)
}

// Handler handles HTTP requests for the marketlink API.
type Handler struct {
	matcher       *matcher.Matcher
	selector      *selector.Selector
	markets       MarketSource
	metrics       *metrics.Metrics
	maxTopResults int
	logger        logger.Logger
}

// NewHandler creates a new API handler. metrics may be nil in tests.
func NewHandler(
	m *matcher.Matcher,
	sel *selector.Selector,
	markets MarketSource,
	mtr *metrics.Metrics,
	maxTopResults int,
	log logger.Logger,
) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		matcher:       m,
		selector:      sel,
		markets:       markets,
		metrics:       mtr,
		maxTopResults: maxTopResults,
		logger:        log,
	}
}

// Match handles POST /api/v1/match.
func (h *Handler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid match request", logger.Error(err))
		c.JSON(http.StatusBadRequest, MatchResponse{Error: err.Error()})
		return
	}

	pool, ok := h.marketPool(c, req.Markets)
	if !ok {
		return
	}

	match := h.matcher.FindBestMatch(req.Text, pool, req.Category)
	h.observeMatch("best", match)

	c.JSON(http.StatusOK, MatchResponse{Success: true, Match: match})
}

// TopMatches handles POST /api/v1/match/top.
func (h *Handler) TopMatches(c *gin.Context) {
	var req TopMatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid top-matches request", logger.Error(err))
		c.JSON(http.StatusBadRequest, TopMatchesResponse{Error: err.Error()})
		return
	}

	pool, ok := h.marketPool(c, req.Markets)
	if !ok {
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > h.maxTopResults {
		maxResults = h.maxTopResults
	}

	matches := h.matcher.FindTopMatches(req.Text, pool, maxResults)
	if len(matches) > 0 {
		h.observeMatch("top", &matches[0])
	} else {
		h.observeMatch("top", nil)
	}

	c.JSON(http.StatusOK, TopMatchesResponse{
		Success: true,
		Matches: matches,
		Total:   len(matches),
	})
}

// Resolve handles POST /api/v1/resolve: disambiguate the primary post
// from the candidate pool, aggregate its text and match it.
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid resolve request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ResolveResponse{Error: err.Error()})
		return
	}

	targetID, targetAuthor, ok := content.ParsePostURL(req.URL)
	if !ok {
		c.JSON(http.StatusBadRequest, ResolveResponse{
			Error: "url is not a post detail page",
		})
		return
	}

	selection := h.selector.SelectPrimary(req.Candidates, targetID, targetAuthor)
	if selection == nil {
		h.logger.Debug("no candidate selected",
			logger.String("post_id", targetID),
			logger.Int("candidates", len(req.Candidates)),
		)
		h.observeMatch("resolve", nil)
		c.JSON(http.StatusOK, ResolveResponse{Success: true})
		return
	}

	winner := selection.Candidate
	aggregate := content.BuildSearchText(winner.Text, winner.QuoteText, winner.Captions)

	post := &domain.Post{
		ID:          targetID,
		Author:      targetAuthor,
		URL:         req.URL,
		Text:        winner.Text,
		QuoteText:   winner.QuoteText,
		Captions:    content.FilterCaptions(winner.Captions),
		SearchText:  aggregate.SearchText,
		DisplayText: aggregate.DisplayText,
	}

	var match *domain.Match
	if post.HasContent() {
		pool, ok := h.marketPool(c, req.Markets)
		if !ok {
			return
		}
		match = h.matcher.FindBestMatch(aggregate.SearchText, pool, "")
	}
	h.observeMatch("resolve", match)

	c.JSON(http.StatusOK, ResolveResponse{
		Success:   true,
		Post:      post,
		Selection: selection,
		Match:     match,
	})
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	rules := h.matcher.Categories()
	categories := make([]CategoryResponse, 0, len(rules))
	for _, rule := range rules {
		categories = append(categories, toCategoryResponse(rule))
	}
	c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: categories,
		Total:      len(categories),
	})
}

// marketPool resolves the record pool for a request: the caller-supplied
// markets when present, otherwise a fresh fetch. A fetch failure answers
// 502 with the error string; the core never sees a partial pool.
func (h *Handler) marketPool(c *gin.Context, supplied []domain.Market) ([]domain.Market, bool) {
	if len(supplied) > 0 {
		return supplied, true
	}
	if h.markets == nil {
		c.JSON(http.StatusServiceUnavailable, MatchResponse{
			Error: "no market source configured and no markets supplied",
		})
		return nil, false
	}

	pool, err := h.markets.ListOpenMarkets(c.Request.Context())
	if err != nil {
		h.logger.Error("market fetch failed", logger.Error(err))
		if h.metrics != nil {
			h.metrics.MarketFetches.WithLabelValues("error").Inc()
		}
		c.JSON(http.StatusBadGateway, MatchResponse{Error: err.Error()})
		return nil, false
	}
	if h.metrics != nil {
		h.metrics.MarketFetches.WithLabelValues("ok").Inc()
	}
	return pool, true
}

func (h *Handler) observeMatch(operation string, match *domain.Match) {
	if h.metrics == nil {
		return
	}
	if match != nil {
		h.metrics.ObserveMatch(operation, true, match.Score)
	} else {
		h.metrics.ObserveMatch(operation, false, 0)
	}
}

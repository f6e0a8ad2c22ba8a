// Package markets fetches prediction-market listings from the market API
// and cleanses them before they reach the matching core.
package markets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/httpx"
	"github.com/jonesrussell/marketlink/internal/logger"
	"github.com/jonesrussell/marketlink/internal/retry"
)

// Default client configuration values.
const (
	DefaultBaseURL           = "https://api.kalshi.com/trade-api/v2"
	DefaultPageLimit         = 200
	DefaultMaxAttempts       = 3
	DefaultRetryWait         = time.Second
	DefaultRequestsPerSecond = 5
	DefaultTimeout           = 30 * time.Second
)

// ErrRateLimited indicates the API kept responding 429 after all retries.
var ErrRateLimited = errors.New("market api rate limited")

// Config configures the market API client.
type Config struct {
	BaseURL           string        `env:"MARKETS_BASE_URL" yaml:"base_url"`
	PageLimit         int           `yaml:"page_limit"`
	MaxAttempts       int           `yaml:"max_attempts"`
	RetryWait         time.Duration `yaml:"retry_wait"`
	RequestsPerSecond int           `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
}

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PageLimit <= 0 {
		c.PageLimit = DefaultPageLimit
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryWait <= 0 {
		c.RetryWait = DefaultRetryWait
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Client pages through the market API's listings. It rate-limits its own
// requests, honours 429 Retry-After waits, retries transient failures and
// hands the core a deduplicated, filtered record sequence.
type Client struct {
	http        *http.Client
	baseURL     string
	pageLimit   int
	maxAttempts int
	retryWait   time.Duration
	limiter     *rate.Limiter
	filter      *ExclusionFilter
	logger      logger.Logger
}

// NewClient creates a market API client. A nil filter disables exclusion
// filtering.
func NewClient(cfg Config, filter *ExclusionFilter, log logger.Logger) *Client {
	cfg.SetDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		http:        httpx.NewClient(&httpx.ClientConfig{Timeout: cfg.Timeout}),
		baseURL:     cfg.BaseURL,
		pageLimit:   cfg.PageLimit,
		maxAttempts: cfg.MaxAttempts,
		retryWait:   cfg.RetryWait,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		filter:      filter,
		logger:      log,
	}
}

// marketPayload is a single listing as returned by the API.
type marketPayload struct {
	Ticker   string `json:"ticker"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// marketsPage is one page of the paginated listings endpoint.
type marketsPage struct {
	Markets []marketPayload `json:"markets"`
	Cursor  string          `json:"cursor"`
}

// ListOpenMarkets fetches every open market, following the pagination
// cursor until it is exhausted. The result is deduplicated by ticker
// (first occurrence wins) and passed through the exclusion filter.
func (c *Client) ListOpenMarkets(ctx context.Context) ([]domain.Market, error) {
	var all []domain.Market
	seen := make(map[string]struct{})

	cursor := ""
	for {
		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("list open markets: %w", err)
		}

		for _, p := range page.Markets {
			if p.Ticker == "" {
				continue
			}
			if _, dup := seen[p.Ticker]; dup {
				continue
			}
			seen[p.Ticker] = struct{}{}
			all = append(all, toDomain(p))
		}

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	fetched := len(all)
	if c.filter != nil {
		all = c.filter.Apply(all)
	}

	c.logger.Info("fetched open markets",
		logger.Int("fetched", fetched),
		logger.Int("after_filter", len(all)),
	)

	return all, nil
}

// GetMarket fetches a single market by ticker, retrying transient
// failures with linear backoff.
func (c *Client) GetMarket(ctx context.Context, ticker string) (*domain.Market, error) {
	if ticker == "" {
		return nil, errors.New("ticker is required")
	}

	var market *domain.Market
	cfg := retry.Config{
		MaxAttempts:  c.maxAttempts,
		InitialDelay: c.retryWait,
		Linear:       true,
	}

	err := retry.Do(ctx, cfg, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		endpoint := c.baseURL + "/markets/" + url.PathEscape(ticker)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return statusError(resp.StatusCode)
		}

		var body struct {
			Market marketPayload `json:"market"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return fmt.Errorf("decode market: %w", err)
		}
		m := toDomain(body.Market)
		market = &m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get market %s: %w", ticker, err)
	}
	return market, nil
}

// fetchPage requests one page of open markets, handling rate limiting and
// transient failures inline: a 429 waits the server-supplied (or default)
// interval, 5xx and network errors back off linearly, and both retry up
// to the configured attempt count.
func (c *Client) fetchPage(ctx context.Context, cursor string) (*marketsPage, error) {
	endpoint, err := c.pageURL(cursor)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, wait, err := c.doPageRequest(ctx, endpoint)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if wait == 0 {
			// Not retryable (4xx other than 429, malformed body).
			return nil, err
		}

		c.logger.Warn("market page fetch failed",
			logger.Int("attempt", attempt),
			logger.Duration("wait", wait),
			logger.Error(err),
		)

		if attempt < c.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", retry.ErrMaxAttemptsExceeded, c.maxAttempts, lastErr)
}

// doPageRequest performs a single page request. A non-zero wait in the
// return values marks the error as retryable after that delay.
func (c *Client) doPageRequest(ctx context.Context, endpoint string) (*marketsPage, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.retryWait, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, c.retryAfter(resp), fmt.Errorf("%w (status %d)", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		io.Copy(io.Discard, resp.Body)
		return nil, c.retryWait, statusError(resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, 0, statusError(resp.StatusCode)
	}

	var page marketsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, 0, fmt.Errorf("decode markets page: %w", err)
	}
	return &page, 0, nil
}

// retryAfter reads the server-supplied wait from a 429 response, falling
// back to the configured default.
func (c *Client) retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return c.retryWait
}

func (c *Client) pageURL(cursor string) (string, error) {
	u, err := url.Parse(c.baseURL + "/markets")
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("status", "open")
	q.Set("limit", strconv.Itoa(c.pageLimit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func toDomain(p marketPayload) domain.Market {
	return domain.Market{
		Ticker:   p.Ticker,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Category: p.Category,
		Status:   domain.ParseMarketStatus(p.Status),
	}
}

func statusError(code int) error {
	return fmt.Errorf("market api returned status %d", code)
}

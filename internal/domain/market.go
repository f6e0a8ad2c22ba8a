package domain

import "strings"

// MarketStatus describes the trading state of a market listing.
type MarketStatus string

const (
	MarketStatusOpen   MarketStatus = "open"
	MarketStatusClosed MarketStatus = "closed"
	MarketStatusOther  MarketStatus = "other"
)

// ParseMarketStatus normalizes an API-supplied status string. Anything the
// service does not recognize maps to MarketStatusOther rather than failing.
func ParseMarketStatus(s string) MarketStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "active":
		return MarketStatusOpen
	case "closed", "settled", "finalized":
		return MarketStatusClosed
	default:
		return MarketStatusOther
	}
}

// Market represents a prediction-market listing as supplied by the market
// API collaborator. Read-only to the matching core.
type Market struct {
	Ticker   string       `json:"ticker"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	Category string       `json:"category,omitempty"`
	Status   MarketStatus `json:"status"`
}

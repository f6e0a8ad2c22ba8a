package domain_test

import (
	"testing"

	"github.com/jonesrussell/marketlink/internal/domain"
)

func TestParseMarketStatus(t *testing.T) {
	tests := []struct {
		in   string
		want domain.MarketStatus
	}{
		{"open", domain.MarketStatusOpen},
		{"Active", domain.MarketStatusOpen},
		{" closed ", domain.MarketStatusClosed},
		{"settled", domain.MarketStatusClosed},
		{"finalized", domain.MarketStatusClosed},
		{"paused", domain.MarketStatusOther},
		{"", domain.MarketStatusOther},
	}

	for _, tt := range tests {
		if got := domain.ParseMarketStatus(tt.in); got != tt.want {
			t.Errorf("ParseMarketStatus(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewToken(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"rate", 1},
		{"interest rate", 2},
		{"fed rate decision", 3},
	}

	for _, tt := range tests {
		if got := domain.NewToken(tt.text); got.Weight != tt.want {
			t.Errorf("NewToken(%q).Weight: got %d, want %d", tt.text, got.Weight, tt.want)
		}
	}
}

func TestPost_HasContent(t *testing.T) {
	tests := []struct {
		name string
		post *domain.Post
		want bool
	}{
		{"nil", nil, false},
		{"empty", &domain.Post{}, false},
		{"primary text", &domain.Post{Text: "hello"}, true},
		{"quote only", &domain.Post{QuoteText: "quoted"}, true},
		{"caption only", &domain.Post{Captions: []string{"a chart"}}, true},
		{"empty captions", &domain.Post{Captions: []string{"", ""}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.HasContent(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

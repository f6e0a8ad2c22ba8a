package markets_test

import (
	"testing"

	"github.com/jonesrussell/marketlink/internal/domain"
	"github.com/jonesrussell/marketlink/internal/markets"
)

func TestExclusionFilter_Excluded(t *testing.T) {
	filter := markets.NewExclusionFilter(markets.DefaultExclusionPolicy())

	tests := []struct {
		name   string
		market domain.Market
		want   bool
	}{
		{
			name:   "category match",
			market: domain.Market{Ticker: "X", Title: "Anything", Category: "Sports"},
			want:   true,
		},
		{
			name:   "category match is case insensitive",
			market: domain.Market{Ticker: "X", Title: "Anything", Category: "sports"},
			want:   true,
		},
		{
			name:   "ticker substring",
			market: domain.Market{Ticker: "NBAFINALS-26", Title: "Finals winner"},
			want:   true,
		},
		{
			name:   "title substring",
			market: domain.Market{Ticker: "X", Title: "First touchdown scorer"},
			want:   true,
		},
		{
			name:   "numeric title with sports term",
			market: domain.Market{Ticker: "X", Title: "Will he score 30 points tonight"},
			want:   true,
		},
		{
			name: "numeric title without sports term stays",
			// The digit run alone must not exclude; it needs its partner
			// term.
			market: domain.Market{Ticker: "X", Title: "Will inflation hit 3 percent"},
			want:   false,
		},
		{
			name:   "sports term without digits stays",
			market: domain.Market{Ticker: "X", Title: "Will points of order disrupt the session"},
			want:   false,
		},
		{
			name:   "plain economics market stays",
			market: domain.Market{Ticker: "FEDRATE", Title: "Will the Fed raise rates", Category: "Economics"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Excluded(tt.market); got != tt.want {
				t.Errorf("Excluded(%q): got %v, want %v", tt.market.Title, got, tt.want)
			}
		})
	}
}

func TestExclusionFilter_Apply(t *testing.T) {
	filter := markets.NewExclusionFilter(markets.DefaultExclusionPolicy())

	pool := []domain.Market{
		{Ticker: "FEDRATE", Title: "Will the Fed raise rates"},
		{Ticker: "NBAFINALS", Title: "Finals winner"},
		{Ticker: "CLIMATE", Title: "Hottest year on record"},
	}

	kept := filter.Apply(pool)
	if len(kept) != 2 {
		t.Fatalf("got %d markets, want 2", len(kept))
	}
	if kept[0].Ticker != "FEDRATE" || kept[1].Ticker != "CLIMATE" {
		t.Errorf("order not preserved: %v", kept)
	}
}

func TestExclusionFilter_EmptyPolicyKeepsEverything(t *testing.T) {
	filter := markets.NewExclusionFilter(markets.ExclusionPolicy{})

	pool := []domain.Market{
		{Ticker: "NBAFINALS", Title: "Finals winner", Category: "Sports"},
	}

	if kept := filter.Apply(pool); len(kept) != 1 {
		t.Errorf("empty policy filtered markets: %v", kept)
	}
}

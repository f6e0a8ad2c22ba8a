package domain

import "time"

// CategoryRule maps a category label to the keyword list that identifies
// it. Rules are ordered; when two categories tie on keyword hits, the
// first-seen rule wins, so rule order is part of the configuration.
type CategoryRule struct {
	ID        int       `db:"id"         json:"id"`
	Category  string    `db:"category"   json:"category"`
	Keywords  []string  `db:"-"          json:"keywords"`
	Priority  int       `db:"priority"   json:"priority"`
	Enabled   bool      `db:"enabled"    json:"enabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

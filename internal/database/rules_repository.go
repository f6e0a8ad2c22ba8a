package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/marketlink/internal/domain"
)

// ErrRuleNotFound is returned when a rule ID does not exist.
var ErrRuleNotFound = errors.New("category rule not found")

// RulesRepository handles database operations for category rules.
// Keywords are stored comma-joined; SQLite has no array type.
type RulesRepository struct {
	db *sqlx.DB
}

// NewRulesRepository creates a new rules repository.
func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

// Create inserts a new rule and fills in its generated ID.
func (r *RulesRepository) Create(ctx context.Context, rule *domain.CategoryRule) error {
	query := `
		INSERT INTO category_rules (category, keywords, priority, enabled)
		VALUES (?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		rule.Category,
		joinKeywords(rule.Keywords),
		rule.Priority,
		rule.Enabled,
	)
	if err != nil {
		return fmt.Errorf("create rule: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("rule insert id: %w", err)
	}
	rule.ID = int(id)
	return nil
}

// GetByID retrieves a rule by its ID.
func (r *RulesRepository) GetByID(ctx context.Context, id int) (*domain.CategoryRule, error) {
	query := `
		SELECT id, category, keywords, priority, enabled, created_at, updated_at
		FROM category_rules
		WHERE id = ?
	`

	rule, err := scanRule(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrRuleNotFound, id)
		}
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return rule, nil
}

// List retrieves rules ordered by priority then ID, optionally filtered by
// enabled state. Order is significant: the classifier's tie-break keeps
// the first-seen rule.
func (r *RulesRepository) List(ctx context.Context, enabled *bool) ([]domain.CategoryRule, error) {
	query := `
		SELECT id, category, keywords, priority, enabled, created_at, updated_at
		FROM category_rules
	`
	var args []any
	if enabled != nil {
		query += " WHERE enabled = ?"
		args = append(args, *enabled)
	}
	query += " ORDER BY priority DESC, id ASC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.CategoryRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

// Update replaces a rule's category, keywords, priority and enabled flag.
func (r *RulesRepository) Update(ctx context.Context, rule *domain.CategoryRule) error {
	query := `
		UPDATE category_rules
		SET category = ?, keywords = ?, priority = ?, enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		rule.Category,
		joinKeywords(rule.Keywords),
		rule.Priority,
		rule.Enabled,
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("update rule: %w", err)
	}
	return checkAffected(res, rule.ID)
}

// Delete removes a rule by ID.
func (r *RulesRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM category_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	return checkAffected(res, id)
}

// Seed inserts the given rules when the table is empty, so a fresh
// database starts with the built-in category table.
func (r *RulesRepository) Seed(ctx context.Context, rules []domain.CategoryRule) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM category_rules`); err != nil {
		return fmt.Errorf("count rules: %w", err)
	}
	if count > 0 {
		return nil
	}
	for i := range rules {
		if err := r.Create(ctx, &rules[i]); err != nil {
			return err
		}
	}
	return nil
}

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.CategoryRule, error) {
	var rule domain.CategoryRule
	var keywords string
	err := row.Scan(
		&rule.ID,
		&rule.Category,
		&keywords,
		&rule.Priority,
		&rule.Enabled,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rule.Keywords = splitKeywords(keywords)
	return &rule, nil
}

func checkAffected(res sql.Result, id int) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrRuleNotFound, id)
	}
	return nil
}

func joinKeywords(keywords []string) string {
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			kept = append(kept, kw)
		}
	}
	return strings.Join(kept, ",")
}

func splitKeywords(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

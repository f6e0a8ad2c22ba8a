package database_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/marketlink/internal/database"
	"github.com/jonesrussell/marketlink/internal/domain"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRulesRepository_CreateAndGet(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))
	ctx := context.Background()

	rule := &domain.CategoryRule{
		Category: "Economics",
		Keywords: []string{"inflation", "fed", "rate"},
		Priority: 2,
		Enabled:  true,
	}
	require.NoError(t, repo.Create(ctx, rule))
	require.NotZero(t, rule.ID)

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "Economics", got.Category)
	assert.Equal(t, []string{"inflation", "fed", "rate"}, got.Keywords)
	assert.Equal(t, 2, got.Priority)
	assert.True(t, got.Enabled)
}

func TestRulesRepository_GetByID_NotFound(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))

	_, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, database.ErrRuleNotFound)
}

func TestRulesRepository_List_OrderAndFilter(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))
	ctx := context.Background()

	rules := []domain.CategoryRule{
		{Category: "Politics", Keywords: []string{"election"}, Priority: 1, Enabled: true},
		{Category: "Economics", Keywords: []string{"inflation"}, Priority: 5, Enabled: true},
		{Category: "Sports", Keywords: []string{"nba"}, Priority: 1, Enabled: false},
	}
	for i := range rules {
		require.NoError(t, repo.Create(ctx, &rules[i]))
	}

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Priority descending, then insertion order.
	assert.Equal(t, "Economics", all[0].Category)
	assert.Equal(t, "Politics", all[1].Category)

	enabled := true
	active, err := repo.List(ctx, &enabled)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, rule := range active {
		assert.True(t, rule.Enabled)
	}
}

func TestRulesRepository_Update(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))
	ctx := context.Background()

	rule := &domain.CategoryRule{Category: "Climate", Keywords: []string{"warming"}, Priority: 1, Enabled: true}
	require.NoError(t, repo.Create(ctx, rule))

	rule.Keywords = []string{"warming", "emissions"}
	rule.Enabled = false
	require.NoError(t, repo.Update(ctx, rule))

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"warming", "emissions"}, got.Keywords)
	assert.False(t, got.Enabled)
}

func TestRulesRepository_Update_NotFound(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))

	err := repo.Update(context.Background(), &domain.CategoryRule{ID: 404, Category: "X"})
	require.ErrorIs(t, err, database.ErrRuleNotFound)
}

func TestRulesRepository_Delete(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))
	ctx := context.Background()

	rule := &domain.CategoryRule{Category: "Climate", Keywords: []string{"warming"}, Enabled: true}
	require.NoError(t, repo.Create(ctx, rule))
	require.NoError(t, repo.Delete(ctx, rule.ID))

	_, err := repo.GetByID(ctx, rule.ID)
	require.ErrorIs(t, err, database.ErrRuleNotFound)

	require.ErrorIs(t, repo.Delete(ctx, rule.ID), database.ErrRuleNotFound)
}

func TestRulesRepository_Seed(t *testing.T) {
	repo := database.NewRulesRepository(testDB(t))
	ctx := context.Background()

	seed := []domain.CategoryRule{
		{Category: "Politics", Keywords: []string{"election"}, Priority: 1, Enabled: true},
		{Category: "Economics", Keywords: []string{"inflation"}, Priority: 1, Enabled: true},
	}
	require.NoError(t, repo.Seed(ctx, seed))

	first, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Seeding again must not duplicate.
	require.NoError(t, repo.Seed(ctx, seed))
	second, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

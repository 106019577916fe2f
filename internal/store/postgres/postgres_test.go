package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/healthvibe/internal/domain"
	"github.com/MrSnakeDoc/healthvibe/internal/store"
)

var _ store.KV = (*KV)(nil)

func TestRemedyRowConversion(t *testing.T) {
	r := domain.Remedy{
		ID: "peppermint-tea", Name: "Peppermint Tea for Digestion", Category: "digestive",
		Ingredients: []string{"Fresh peppermint leaves (1 handful)"},
		Difficulty:  domain.DifficultyEasy, Effectiveness: 4,
	}

	got := remedyRow(r).toDomain()
	assert.Equal(t, r.Ingredients, got.Ingredients)
	assert.Equal(t, []string{}, got.Instructions, "nil arrays come back empty")
	assert.Equal(t, r.Difficulty, got.Difficulty)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("HEALTHVIBE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("set HEALTHVIBE_TEST_DATABASE_URL to run postgres store tests")
	}
	db, err := Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, AutoMigrateAndIndexes(db))
	return db
}

func TestKVAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(testDB(t))
	scope := uuid.NewString()
	t.Cleanup(func() { _ = kv.Clear(ctx, scope) })

	require.NoError(t, kv.Set(ctx, scope, "k", "one"))
	require.NoError(t, kv.Set(ctx, scope, "k", "two"))

	v, ok, err := kv.Get(ctx, scope, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, kv.Clear(ctx, scope))
	_, ok, err = kv.Get(ctx, scope, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeedAndLoadCatalog(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	cats := []domain.Category{{ID: "digestive", Name: "Digestive Health", RemedyCount: 6}}
	rems := []domain.Remedy{{
		ID: "peppermint-tea", Name: "Peppermint Tea for Digestion", Category: "digestive",
		Difficulty: domain.DifficultyEasy, Effectiveness: 4,
	}}
	_, err := SeedCatalog(ctx, db, cats, rems)
	require.NoError(t, err)

	seeded, err := SeedCatalog(ctx, db, cats, rems)
	require.NoError(t, err)
	assert.False(t, seeded, "second seed is a no-op")

	gotCats, gotRems, err := LoadCatalog(ctx, db)
	require.NoError(t, err)
	assert.NotEmpty(t, gotCats)
	assert.NotEmpty(t, gotRems)
}

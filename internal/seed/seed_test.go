package seed

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"fittrack/internal/store/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlstore.SQLStore {
	t.Helper()
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSeedInsertsRecords(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	now := time.Date(2025, time.April, 30, 12, 0, 0, 0, time.UTC)

	res, err := Seed(ctx, s, 7, now, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, 14, res.Wearables)
	assert.GreaterOrEqual(t, res.Diets, 14)
	assert.LessOrEqual(t, res.Diets, 28)
	assert.LessOrEqual(t, res.Workouts, 7)

	workouts, err := s.ListWorkouts(ctx)
	require.NoError(t, err)
	assert.Len(t, workouts, res.Workouts)
	for _, w := range workouts {
		assert.NotEmpty(t, w.Type)
		assert.Positive(t, w.Duration)
	}

	diets, err := s.ListDiets(ctx)
	require.NoError(t, err)
	assert.Len(t, diets, res.Diets)

	wearables, err := s.ListWearables(ctx, 0)
	require.NoError(t, err)
	require.Len(t, wearables, 14)
	assert.Equal(t, "2025-04-30", wearables[0].RecordedAt[:10])
	assert.Equal(t, "2025-04-24", wearables[len(wearables)-1].RecordedAt[:10])
}

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.April, 30, 12, 0, 0, 0, time.UTC)

	a, b := newStore(t), newStore(t)
	_, err := Seed(ctx, a, 5, now, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	_, err = Seed(ctx, b, 5, now, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	da, err := a.ListDiets(ctx)
	require.NoError(t, err)
	db, err := b.ListDiets(ctx)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestSeedZeroDays(t *testing.T) {
	s := newStore(t)
	res, err := Seed(context.Background(), s, 0, time.Now(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestSeedReportsStoreError(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Close())
	_, err := Seed(context.Background(), s, 1, time.Now(), rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelrobotics/matchbook/internal/adapters/repository"
	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

func rec(matchKey string, team int, totalPoints float64) model.MatchRecord {
	return model.MatchRecord{
		ID:         fmt.Sprintf("%s-%d", matchKey, team),
		MatchKey:   matchKey,
		TeamNumber: team,
		Alliance:   model.AllianceRed,
		Points:     model.ScoringResult{TotalPoints: totalPoints},
	}
}

func TestMemStorePut(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemStore()

	require.NoError(t, store.Put(ctx, rec("qm1", 254, 40)))
	require.NoError(t, store.Put(ctx, rec("qm1", 1678, 35)))
	assert.Equal(t, 2, store.Count(ctx))

	t.Run("re-scout replaces the earlier record", func(t *testing.T) {
		replacement := rec("qm1", 254, 55)
		require.NoError(t, store.Put(ctx, replacement))

		assert.Equal(t, 2, store.Count(ctx))
		records, err := store.TeamRecords(ctx, 254)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 55.0, records[0].Points.TotalPoints)
	})

	t.Run("invalid records are rejected", func(t *testing.T) {
		err := store.Put(ctx, model.MatchRecord{TeamNumber: 254})
		assert.ErrorIs(t, err, repository.ErrInvalidRecord)

		err = store.Put(ctx, model.MatchRecord{MatchKey: "qm2"})
		assert.ErrorIs(t, err, repository.ErrInvalidRecord)
	})
}

func TestMemStoreReads(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemStore()

	require.NoError(t, store.Put(ctx, rec("qm1", 254, 10)))
	require.NoError(t, store.Put(ctx, rec("qm2", 254, 20)))
	require.NoError(t, store.Put(ctx, rec("qm2", 1114, 30)))

	t.Run("team records come back in insertion order", func(t *testing.T) {
		records, err := store.TeamRecords(ctx, 254)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "qm1", records[0].MatchKey)
		assert.Equal(t, "qm2", records[1].MatchKey)
	})

	t.Run("unknown team yields an empty slice, not an error", func(t *testing.T) {
		records, err := store.TeamRecords(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("match records span both alliances", func(t *testing.T) {
		records, err := store.MatchRecords(ctx, "qm2")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("teams are distinct and ascending", func(t *testing.T) {
		teams, err := store.Teams(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{254, 1114}, teams)
	})
}

func TestMemStoreConcurrency(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemStore()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = store.Put(ctx, rec(fmt.Sprintf("qm%d", i), 100+g, float64(i)))
				_, _ = store.TeamRecords(ctx, 100+g)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 8*50, store.Count(ctx))
}

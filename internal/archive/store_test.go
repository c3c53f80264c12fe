package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synack/pkg/synop"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	raw := "AAXX 01004 88889 12782 61506 10094"
	report, err := synop.Decode(raw)
	require.NoError(t, err)

	rec, err := store.Save(ctx, report, raw)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "88889", rec.StationID)
	assert.Equal(t, 0, rec.Warnings)

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, raw, got.Raw)
	assert.Contains(t, string(got.Decoded), `"station_id":"88889"`)
}

func TestStoreGetUnknown(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStoreListFiltersByStation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, raw := range []string{
		"AAXX 01004 88889 12782 61506 10094",
		"AAXX 01004 11111 12782 61506 10094",
		"AAXX 01004 88889 12782 61506 20047",
	} {
		report, err := synop.Decode(raw)
		require.NoError(t, err)
		_, err = store.Save(ctx, report, raw)
		require.NoError(t, err)
	}

	all, err := store.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := store.List(ctx, "88889", 10)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, rec := range filtered {
		assert.Equal(t, "88889", rec.StationID)
	}
}

func TestStorePrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	raw := "AAXX 01004 88889 12782 61506 10094"
	report, err := synop.Decode(raw)
	require.NoError(t, err)
	_, err = store.Save(ctx, report, raw)
	require.NoError(t, err)

	// Cutoff before the insert removes nothing.
	removed, err := store.Prune(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	// Cutoff after the insert removes the record.
	removed, err = store.Prune(ctx, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	all, err := store.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRetentionInvalidSchedule(t *testing.T) {
	store := openTestStore(t)
	r := NewRetention(store, "not a cron spec", time.Hour, nil, nil)
	err := r.Start(context.Background())
	assert.Error(t, err)
}

func TestRetentionEmptyScheduleIsNoop(t *testing.T) {
	store := openTestStore(t)
	r := NewRetention(store, "", time.Hour, nil, nil)
	require.NoError(t, r.Start(context.Background()))
	r.Stop()
}

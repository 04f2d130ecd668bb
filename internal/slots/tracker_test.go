package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Tracker) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewTracker(NewRedisStore(client))
}

func TestTracker_Reserve_SameBucketTwice(t *testing.T) {
	_, tracker := setupTestRedis(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 8, 14, 30, 0, 0, time.Local)
	accepted, err := tracker.Reserve(ctx, first)
	require.NoError(t, err)
	assert.True(t, accepted)

	// 14:45 falls in the same hour bucket as 14:30.
	sameHour := time.Date(2026, 1, 8, 14, 45, 0, 0, time.Local)
	accepted, err = tracker.Reserve(ctx, sameHour)
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestTracker_Reserve_DistinctBuckets(t *testing.T) {
	_, tracker := setupTestRedis(t)
	ctx := context.Background()

	accepted, err := tracker.Reserve(ctx, time.Date(2026, 1, 8, 14, 30, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, accepted)

	accepted, err = tracker.Reserve(ctx, time.Date(2026, 1, 8, 15, 30, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestTracker_ReleaseFreesBucket(t *testing.T) {
	_, tracker := setupTestRedis(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 8, 14, 30, 0, 0, time.Local)

	accepted, err := tracker.Reserve(ctx, start)
	require.NoError(t, err)
	require.True(t, accepted)

	require.NoError(t, tracker.Release(ctx, start))

	accepted, err = tracker.Reserve(ctx, start)
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestTracker_IsFree(t *testing.T) {
	_, tracker := setupTestRedis(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 8, 14, 30, 0, 0, time.Local)

	free, err := tracker.IsFree(ctx, start)
	require.NoError(t, err)
	assert.True(t, free)

	_, err = tracker.Reserve(ctx, start)
	require.NoError(t, err)

	free, err = tracker.IsFree(ctx, start)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestTracker_PurgeBefore(t *testing.T) {
	_, tracker := setupTestRedis(t)
	ctx := context.Background()

	old := time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local)
	recent := time.Date(2026, 1, 8, 14, 0, 0, 0, time.Local)
	for _, start := range []time.Time{old, recent} {
		accepted, err := tracker.Reserve(ctx, start)
		require.NoError(t, err)
		require.True(t, accepted)
	}

	removed, err := tracker.PurgeBefore(ctx, time.Date(2026, 1, 7, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	buckets, err := tracker.Buckets(ctx)
	require.NoError(t, err)
	assert.NotContains(t, buckets, HourKey(old))
	assert.Contains(t, buckets, HourKey(recent))
}

func TestRedisStore_CorruptBlobReadsAsEmpty(t *testing.T) {
	mr, tracker := setupTestRedis(t)
	require.NoError(t, mr.Set(StorageKey, "not json"))

	accepted, err := tracker.Reserve(context.Background(), time.Date(2026, 1, 8, 14, 30, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := map[string]int{"2026-01-08T14:00": 1}
	require.NoError(t, store.Write(ctx, in))
	in["2026-01-08T14:00"] = 99

	out, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out["2026-01-08T14:00"])

	out["2026-01-08T14:00"] = 7
	again, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again["2026-01-08T14:00"])
}

func TestHourKey(t *testing.T) {
	start := time.Date(2026, 1, 8, 14, 30, 0, 0, time.Local)
	assert.Equal(t, "2026-01-08T14:00", HourKey(start))
}

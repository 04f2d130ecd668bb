package slots

import (
	"context"
	"time"
)

// Hour buckets are local times truncated to the hour, YYYY-MM-DDTHH:00.
const hourKeyLayout = "2006-01-02T15:00"

// Tracker enforces at most one coaching per hour bucket on top of a Store.
// The check-then-write sequence is not atomic: two submissions racing can
// both land in the same bucket. Capacity here is advisory, not authoritative.
type Tracker struct {
	store Store
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// HourKey truncates a start time to its hour bucket.
func HourKey(start time.Time) string {
	return start.Format(hourKeyLayout)
}

// Reserve accepts the booking only when the bucket is still empty, then
// increments and rewrites the map.
func (t *Tracker) Reserve(ctx context.Context, start time.Time) (bool, error) {
	buckets, err := t.store.Read(ctx)
	if err != nil {
		return false, err
	}
	key := HourKey(start)
	if buckets[key] >= 1 {
		return false, nil
	}
	buckets[key]++
	if err := t.store.Write(ctx, buckets); err != nil {
		return false, err
	}
	return true, nil
}

// Release frees the bucket again, used when a paid booking is refunded.
func (t *Tracker) Release(ctx context.Context, start time.Time) error {
	return t.Free(ctx, HourKey(start))
}

// Free clears one bucket by its raw key.
func (t *Tracker) Free(ctx context.Context, key string) error {
	buckets, err := t.store.Read(ctx)
	if err != nil {
		return err
	}
	if buckets[key] > 1 {
		buckets[key]--
	} else {
		delete(buckets, key)
	}
	return t.store.Write(ctx, buckets)
}

// Buckets returns the current bucket map for the admin listing.
func (t *Tracker) Buckets(ctx context.Context) (map[string]int, error) {
	return t.store.Read(ctx)
}

// IsFree reports whether the hour bucket for start is still open, without
// reserving it.
func (t *Tracker) IsFree(ctx context.Context, start time.Time) (bool, error) {
	buckets, err := t.store.Read(ctx)
	if err != nil {
		return false, err
	}
	return buckets[HourKey(start)] < 1, nil
}

// PurgeBefore drops buckets whose hour started before cutoff. Keys that no
// longer parse are dropped as well. Returns the number of removed buckets.
func (t *Tracker) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	buckets, err := t.store.Read(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for key := range buckets {
		start, err := time.ParseInLocation(hourKeyLayout, key, time.Local)
		if err != nil || start.Before(cutoff) {
			delete(buckets, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := t.store.Write(ctx, buckets); err != nil {
		return 0, err
	}
	return removed, nil
}

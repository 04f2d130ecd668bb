package slots

import "context"

// StorageKey is the single key under which the whole bucket map lives, kept
// from the original client-side storage layout.
const StorageKey = "cours_bookings"

// Store persists the hour-bucket counters as one JSON object under a fixed
// key. Read returns the full map, Write replaces it wholesale; there is no
// partial update.
type Store interface {
	Read(ctx context.Context) (map[string]int, error)
	Write(ctx context.Context, buckets map[string]int) error
}

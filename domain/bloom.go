package domain

import "context"

// BloomRepository tracks every post id ever created.
type BloomRepository interface {
	// Add puts the id into the filter
	Add(ctx context.Context, id string) error

	// Exists reports whether the id may exist.
	// true: maybe (check the store)
	// false: definitely never created (answer 404 directly)
	Exists(ctx context.Context, id string) (bool, error)

	// BulkAdd adds many ids in one round trip
	BulkAdd(ctx context.Context, ids []string) error
}

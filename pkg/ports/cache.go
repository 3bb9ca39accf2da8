package ports

import "context"

// PlanCache stores encoded plans so identical requests skip sequencing.
type PlanCache interface {
	// Get returns the plan stored under key.
	// Returns domain.ErrCacheMiss if nothing is stored.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores a plan under key, replacing any previous entry.
	Put(ctx context.Context, key string, plan []byte) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

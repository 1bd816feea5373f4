package ports

import "context"

// ExportGuard serialises exports per key (one viewer, one export).
type ExportGuard interface {
	// Acquire returns false when another export already holds key.
	Acquire(ctx context.Context, key, token string) (bool, error)
	// Release frees key only while token still holds it.
	Release(ctx context.Context, key, token string) error
	Active(ctx context.Context, key string) (bool, error)
}

package guard

import (
	"context"
	"sync"

	"conveymed-analytics/internal/export/core/ports"
)

// MemoryGuard keeps export locks in process. Use the redis guard when
// more than one replica serves the API.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]string
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]string)}
}

var _ ports.ExportGuard = (*MemoryGuard)(nil)

func (g *MemoryGuard) Acquire(_ context.Context, key, token string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return false, nil
	}
	g.held[key] = token
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[key] == token {
		delete(g.held, key)
	}
	return nil
}

func (g *MemoryGuard) Active(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[key]
	return busy, nil
}

package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type inflight struct {
	token  string
	cancel context.CancelFunc
}

// Tracker keeps the latest request per viewer. Starting a new request
// cancels the previous one; only the latest token is current.
type Tracker struct {
	mu       sync.Mutex
	requests map[string]inflight
}

func NewTracker() *Tracker {
	return &Tracker{requests: make(map[string]inflight)}
}

// Begin derives a cancellable context for a new request and returns its
// token.
func (t *Tracker) Begin(ctx context.Context, viewer string) (context.Context, string) {
	ctx, cancel := context.WithCancel(ctx)
	token := uuid.NewString()

	t.mu.Lock()
	if prev, ok := t.requests[viewer]; ok {
		prev.cancel()
	}
	t.requests[viewer] = inflight{token: token, cancel: cancel}
	t.mu.Unlock()

	return ctx, token
}

func (t *Tracker) IsCurrent(viewer, token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.requests[viewer]
	return ok && cur.token == token
}

// Finish releases the request. A superseded token is a no-op here, its
// context was already cancelled by Begin.
func (t *Tracker) Finish(viewer, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.requests[viewer]; ok && cur.token == token {
		cur.cancel()
		delete(t.requests, viewer)
	}
}

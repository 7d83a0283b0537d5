package discord

import (
	"context"
	"sync"
	"time"

	portfoliohandlers "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/handlers"
)

type waiterKey struct {
	channelID string
	authorID  string
}

type waiter struct {
	replies chan string
	// replaced is closed when a newer waiter takes the key.
	replaced chan struct{}
}

// Waiters tracks pending follow-up replies per (channel, author). Only the
// most recent waiter for a key is active.
type Waiters struct {
	mu      sync.Mutex
	pending map[waiterKey]*waiter
}

// NewWaiters creates an empty registry.
func NewWaiters() *Waiters {
	return &Waiters{pending: make(map[waiterKey]*waiter)}
}

// Await blocks until the author sends a bare number in the channel, the
// timeout elapses, ctx ends, or a newer Await for the same key starts. All but
// the first case return portfoliohandlers.ErrReplyTimeout or ctx's error.
func (w *Waiters) Await(ctx context.Context, channelID, authorID string, timeout time.Duration) (string, error) {
	key := waiterKey{channelID: channelID, authorID: authorID}
	current := &waiter{
		replies:  make(chan string, 1),
		replaced: make(chan struct{}),
	}

	w.mu.Lock()
	if prev, ok := w.pending[key]; ok {
		close(prev.replaced)
	}
	w.pending[key] = current
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if w.pending[key] == current {
			delete(w.pending, key)
		}
		w.mu.Unlock()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-current.replies:
		return reply, nil
	case <-current.replaced:
		return "", portfoliohandlers.ErrReplyTimeout
	case <-timer.C:
		return "", portfoliohandlers.ErrReplyTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Offer hands content to the active waiter for (channel, author). It reports
// whether the message was consumed; consumed messages must not be dispatched.
func (w *Waiters) Offer(channelID, authorID, content string) bool {
	if !isSelection(content) {
		return false
	}
	key := waiterKey{channelID: channelID, authorID: authorID}

	w.mu.Lock()
	defer w.mu.Unlock()
	current, ok := w.pending[key]
	if !ok {
		return false
	}
	delete(w.pending, key)
	current.replies <- content
	return true
}

// Pending returns the number of active waiters.
func (w *Waiters) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

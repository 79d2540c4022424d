// internal/app/system/refresh/refresh.go

// Package refresh delivers the "user information changed" signal emitted
// after membership-mutating operations.
//
// The hub replaces implicit aspect-style interception with an explicit
// post-mutation hook: mutating services call UserChanged, listeners
// registered at bootstrap react to it. Delivery is fire-and-forget; a
// listener failure is logged and never reaches the caller.
package refresh

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Listener reacts to a user-information-changed signal.
type Listener interface {
	UserChanged(ctx context.Context, accountID primitive.ObjectID) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, accountID primitive.ObjectID) error

func (f ListenerFunc) UserChanged(ctx context.Context, accountID primitive.ObjectID) error {
	return f(ctx, accountID)
}

// Hub fans a user-changed signal out to registered listeners.
type Hub struct {
	mu        sync.RWMutex
	listeners []Listener
	log       *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{log: log}
}

// Subscribe registers a listener. Intended for bootstrap; safe for
// concurrent use.
func (h *Hub) Subscribe(l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
}

// UserChanged notifies every listener that the account's user information
// may be stale. Listeners run on a detached goroutine so the mutating
// request is never blocked or failed by a refresh problem.
func (h *Hub) UserChanged(accountID primitive.ObjectID) {
	h.mu.RLock()
	listeners := make([]Listener, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.RUnlock()

	if len(listeners) == 0 {
		return
	}

	go func() {
		ctx := context.Background()
		for _, l := range listeners {
			if err := l.UserChanged(ctx, accountID); err != nil && h.log != nil {
				h.log.Warn("user refresh listener failed",
					zap.String("account_id", accountID.Hex()),
					zap.Error(err))
			}
		}
	}()
}

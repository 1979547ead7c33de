package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook is a named cleanup step.
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Handler runs cleanup hooks at the end of a session.
type Handler struct {
	timeout time.Duration
	hooks   []Hook
	mu      sync.Mutex
	once    sync.Once
	err     error
	done    chan struct{}
}

// NewHandler creates a new shutdown handler. timeout bounds the context
// passed to the hooks.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		hooks:   make([]Hook, 0),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(name string, fn func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, Hook{Name: name, Fn: fn})
}

// Shutdown runs every hook once. A failing hook does not stop the ones
// after it; all failures are joined into the returned error. Later calls
// return the first result.
func (h *Handler) Shutdown() error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := make([]Hook, len(h.hooks))
		copy(hooks, h.hooks)
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i].Fn(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", hooks[i].Name, err))
			}
		}

		h.err = errors.Join(errs...)
		close(h.done)
	})
	return h.err
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

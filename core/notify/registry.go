package notify

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/mailpush/core/logger"
)

// Registry binds each identity to at most one live channel.
// All methods are safe for concurrent use; callers never lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Channel

	logger       *slog.Logger
	onRegister   func(identity string, ch Channel)
	onUnregister func(identity string, ch Channel)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for registry events.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithOnRegister sets a hook called after a channel is bound.
// Hooks run outside the registry lock.
func WithOnRegister(fn func(identity string, ch Channel)) RegistryOption {
	return func(r *Registry) {
		r.onRegister = fn
	}
}

// WithOnUnregister sets a hook called after an entry is removed.
func WithOnUnregister(fn func(identity string, ch Channel)) RegistryOption {
	return func(r *Registry) {
		r.onUnregister = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]Channel),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds identity to ch, replacing any previous binding.
// A replaced channel that differs from ch is closed.
func (r *Registry) Register(identity string, ch Channel) {
	if identity == "" || ch == nil {
		return
	}

	r.mu.Lock()
	prev, replaced := r.entries[identity]
	r.entries[identity] = ch
	r.mu.Unlock()

	if replaced && prev == ch {
		return
	}

	if replaced {
		r.logger.Debug("channel superseded",
			logger.Component("notify"),
			logger.Identity(identity),
			logger.ConnID(prev.ID()),
		)
		if err := prev.Close(); err != nil {
			r.logger.Debug("close superseded channel", logger.Identity(identity), logger.Error(err))
		}
		if r.onUnregister != nil {
			r.onUnregister(identity, prev)
		}
	}

	if r.onRegister != nil {
		r.onRegister(identity, ch)
	}
}

// Lookup returns the channel bound to identity.
// The channel may already be closed; Deliver reports that.
func (r *Registry) Lookup(identity string) (Channel, bool) {
	r.mu.RLock()
	ch, ok := r.entries[identity]
	r.mu.RUnlock()
	return ch, ok
}

// Unregister removes the binding for identity. Removing an absent identity is a no-op.
func (r *Registry) Unregister(identity string) {
	r.mu.Lock()
	ch, ok := r.entries[identity]
	delete(r.entries, identity)
	r.mu.Unlock()

	if ok && r.onUnregister != nil {
		r.onUnregister(identity, ch)
	}
}

// Remove deletes the binding only if identity is still bound to ch.
// It reports whether an entry was removed.
func (r *Registry) Remove(identity string, ch Channel) bool {
	r.mu.Lock()
	cur, ok := r.entries[identity]
	if !ok || cur != ch {
		r.mu.Unlock()
		return false
	}
	delete(r.entries, identity)
	r.mu.Unlock()

	if r.onUnregister != nil {
		r.onUnregister(identity, ch)
	}
	return true
}

// Len returns the number of bound identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Identities returns the bound identities in sorted order.
func (r *Registry) Identities() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// CloseAll empties the registry and closes every channel it held.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]Channel)
	r.mu.Unlock()

	for identity, ch := range entries {
		if err := ch.Close(); err != nil {
			r.logger.Debug("close channel", logger.Identity(identity), logger.Error(err))
		}
		if r.onUnregister != nil {
			r.onUnregister(identity, ch)
		}
	}
	return len(entries)
}

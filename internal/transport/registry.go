package transport

import (
	"fmt"
	"sync"

	"github.com/estatekit/messenger/internal/config"
)

// Factory builds a Transport from the application configuration.
type Factory func(cfg *config.Config) (Transport, error)

// Registry maps logical provider names to factories. Names are resolved once
// at startup; a bad name fails the process instead of a running job.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds name to factory, replacing any previous binding.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New resolves name and builds the transport. An empty name falls back to the
// console provider.
func (r *Registry) New(name string, cfg *config.Config) (Transport, error) {
	if name == "" {
		name = "console"
	}

	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("resolve transport %q: %w", name, ErrUnknownTransport)
	}

	return f(cfg)
}

// DefaultRegistry returns a registry with the built-in providers. Factories
// enable fail-silently mode because the dispatch pipeline needs an outcome per
// destination, not a single call-level error.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("console", func(*config.Config) (Transport, error) {
		return NewConsole(), nil
	})
	r.Register("smtp", func(cfg *config.Config) (Transport, error) {
		return NewSMTP(cfg.Email, true), nil
	})
	r.Register("mnotify", func(cfg *config.Config) (Transport, error) {
		return NewMNotify(cfg.SMS.MNotify, true), nil
	})
	return r
}

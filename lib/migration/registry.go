package migration

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/go-i2p/logger"
)

// Step is a named, administrator triggered schema or data update. Update
// receives a connection reserved for the duration of the call.
type Step interface {
	Update(ctx context.Context, conn *sql.Conn) error
}

// StepFunc adapts a function to Step.
type StepFunc func(ctx context.Context, conn *sql.Conn) error

func (f StepFunc) Update(ctx context.Context, conn *sql.Conn) error {
	return f(ctx, conn)
}

// Registry maps step names to steps. Thread-safe.
//
//	registry := NewRegistry()
//	registry.Register("v440.SiteIdentifierMigration", SiteIdentifierMigration{})
//	step, ok := registry.Lookup("v440.SiteIdentifierMigration")
type Registry struct {
	steps map[string]Step
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{steps: make(map[string]Step)}
}

// Register adds step under name, replacing any previous step of that name.
func (r *Registry) Register(name string, step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[name] = step

	log.WithFields(logger.Fields{
		"at":   "(Registry) Register",
		"step": name,
	}).Debug("registered migration step")
}

// Lookup returns the step registered under name.
func (r *Registry) Lookup(name string) (Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	step, ok := r.steps[name]
	return step, ok
}

// Names returns the registered step names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry holding the steps shipped with the application.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(SiteIdentifierStepName, SiteIdentifierMigration{})
	r.Register(SettingsPositionStepName, SettingsPositionMigration{Increment: 10})
	return r
}

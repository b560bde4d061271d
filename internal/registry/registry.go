package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/pipe"
)

// Module is the interface that all pipe type modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the pipe types of a single engine instance. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	pipes map[string]pipe.Func
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		pipes: make(map[string]pipe.Func),
	}
}

// NewWithModules creates a Registry and lets every module register into it.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// Register adds a pipe type. It fails with fault.ErrDuplicatePipeType if the
// name is taken.
func (r *Registry) Register(name string, fn pipe.Func) error {
	if fn == nil {
		return fmt.Errorf("pipe type %q: nil function", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pipes[name]; exists {
		return fmt.Errorf("%w: %q", fault.ErrDuplicatePipeType, name)
	}
	slog.Debug("Registering pipe type.", "name", name)
	r.pipes[name] = fn
	return nil
}

// MustRegister is like Register but panics. Modules use it: a name clash
// between compiled-in modules is a programming error.
func (r *Registry) MustRegister(name string, fn pipe.Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Set adds or replaces a pipe type.
func (r *Registry) Set(name string, fn pipe.Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipes[name] = fn
}

// Lookup returns the pipe type registered under name.
func (r *Registry) Lookup(name string) (pipe.Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.pipes[name]
	return fn, ok
}

// Resolve returns the pipe type registered under name. Unknown names are
// reported and resolve to pipe.Identity.
func (r *Registry) Resolve(ctx context.Context, name string, rep fault.Reporter) pipe.Func {
	if fn, ok := r.Lookup(name); ok {
		return fn
	}
	if rep != nil {
		rep.Report(ctx, &fault.UnknownPipeTypeError{Name: name})
	}
	return pipe.Identity
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pipes))
	for name := range r.pipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package transform rewrites step programs before they run.
//
// A Chain holds rewrite functions ordered by descending priority; entries of
// equal priority keep their insertion order. Apply folds a program through
// every entry in that order. Aliases are the main client: an alias is a step
// name that a priority-100 rewrite expands into other steps.
package transform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/program"
)

// AliasPriority is the priority at which alias rewrites are registered.
const AliasPriority = 100

// Func rewrites a whole program.
type Func func(prog program.Program) program.Program

type entry struct {
	fn       Func
	priority int
}

// Chain is a priority-ordered list of rewrites. It is safe for concurrent use.
type Chain struct {
	mu      sync.RWMutex
	entries []entry
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add inserts fn before the first entry with a strictly lower priority. A nil
// fn is rejected with fault.ErrInvalidTransformer and the chain is unchanged.
func (c *Chain) Add(fn Func, priority int) error {
	if fn == nil {
		return fmt.Errorf("%w: nil rewrite function", fault.ErrInvalidTransformer)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].priority < priority
	})
	c.entries = append(c.entries, entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = entry{fn: fn, priority: priority}
	return nil
}

// Len returns the number of registered rewrites.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Apply passes prog through every rewrite in order. prog itself is not
// modified.
func (c *Chain) Apply(prog program.Program) program.Program {
	c.mu.RLock()
	entries := make([]entry, len(c.entries))
	copy(entries, c.entries)
	c.mu.RUnlock()

	out := prog.Clone()
	for _, e := range entries {
		out = e.fn(out)
	}
	return out
}

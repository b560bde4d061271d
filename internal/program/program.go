// Package program models the step sequence a query accumulates.
package program

import (
	"fmt"
	"strings"
)

// Step is a single instruction: a pipe type name and its arguments.
type Step struct {
	Name string
	Args []any
}

// New returns a step.
func New(name string, args ...any) Step {
	return Step{Name: name, Args: args}
}

// Clone returns a copy of the step with its own argument slice.
func (s Step) Clone() Step {
	args := make([]any, len(s.Args))
	copy(args, s.Args)
	return Step{Name: s.Name, Args: args}
}

func (s Step) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(parts, ", "))
}

// Program is an ordered list of steps.
type Program []Step

// Clone returns a deep copy of the step list. Argument values themselves are
// shared.
func (p Program) Clone() Program {
	out := make(Program, len(p))
	for i, s := range p {
		out[i] = s.Clone()
	}
	return out
}

// Names returns the step names in order.
func (p Program) Names() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Name
	}
	return out
}

func (p Program) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

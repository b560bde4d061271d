package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of every loaded configuration file.
type Model struct {
	Aliases       []*Alias
	LegacyAliases []*LegacyAlias
	Queries       []*Query
	Vertices      []*Vertex
	Edges         []*Edge
}

// Query returns the named query, or nil.
func (m *Model) Query(name string) *Query {
	for _, q := range m.Queries {
		if q.Name == name {
			return q
		}
	}
	return nil
}

// QueryNames lists the queries in declaration order.
func (m *Model) QueryNames() []string {
	names := make([]string, len(m.Queries))
	for i, q := range m.Queries {
		names[i] = q.Name
	}
	return names
}

// Step is one pipe invocation inside an alias or a query.
type Step struct {
	Name string
	Args []cty.Value
}

// Alias names a reusable sequence of steps.
type Alias struct {
	Name        string
	Description string
	Steps       []*Step
}

// LegacyAlias renames a step and fills in missing positional arguments.
type LegacyAlias struct {
	Name     string
	Target   string
	Defaults []cty.Value
}

// Query is a named program runnable from the command line or over HTTP.
type Query struct {
	Name        string
	Description string
	Steps       []*Step
}

// Vertex is an inline vertex definition. ID is null when the engine should
// assign one.
type Vertex struct {
	ID    cty.Value
	Props map[string]cty.Value
}

// Edge is an inline edge definition.
type Edge struct {
	From  cty.Value
	To    cty.Value
	Label string
	Props map[string]cty.Value
}

package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Aliases       []*AliasBlock       `hcl:"alias,block"`
	LegacyAliases []*LegacyAliasBlock `hcl:"legacy_alias,block"`
	Queries       []*QueryBlock       `hcl:"query,block"`
	Vertices      []*VertexBlock      `hcl:"vertex,block"`
	Edges         []*EdgeBlock        `hcl:"edge,block"`
	Remain        hcl.Body            `hcl:",remain"`
}

// StepBlock maps to `step "<pipe>" { args = [...] }`.
type StepBlock struct {
	Name string         `hcl:"name,label"`
	Args hcl.Expression `hcl:"args,optional"`
}

// AliasBlock maps to `alias "<name>" { ... }`.
type AliasBlock struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Steps       []*StepBlock `hcl:"step,block"`
}

// LegacyAliasBlock maps to `legacy_alias "<name>" { target = "...", defaults = [...] }`.
type LegacyAliasBlock struct {
	Name     string         `hcl:"name,label"`
	Target   string         `hcl:"target"`
	Defaults hcl.Expression `hcl:"defaults,optional"`
}

// QueryBlock maps to `query "<name>" { ... }`.
type QueryBlock struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Steps       []*StepBlock `hcl:"step,block"`
}

// VertexBlock maps to `vertex { id = ..., props = {...} }`.
type VertexBlock struct {
	ID    hcl.Expression `hcl:"id,optional"`
	Props hcl.Expression `hcl:"props,optional"`
}

// EdgeBlock maps to `edge { from = ..., to = ..., label = "...", props = {...} }`.
type EdgeBlock struct {
	From  hcl.Expression `hcl:"from"`
	To    hcl.Expression `hcl:"to"`
	Label string         `hcl:"label,optional"`
	Props hcl.Expression `hcl:"props,optional"`
}

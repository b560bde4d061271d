package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories and
	// translates it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter bridges configuration values and the Go values the engine
// consumes.
type Converter interface {
	// ToGoValue converts a configuration value into nil, bool, string,
	// int64, float64, []any or map[string]any.
	ToGoValue(v cty.Value) (any, error)

	// ToCtyValue converts a native Go value into its cty equivalent.
	ToCtyValue(v any) (cty.Value, error)
}

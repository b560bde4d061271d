package registry

import (
	"context"
	"errors"

	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/fault"
)

// Validate checks that every name is a registered pipe type. It is used at
// startup to catch typos in configured queries and aliases before any of
// them runs.
func (r *Registry) Validate(ctx context.Context, names ...string) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error
	seen := make(map[string]struct{})
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := r.Lookup(name); !ok {
			errs = append(errs, &fault.UnknownPipeTypeError{Name: name})
		}
	}
	if len(errs) > 0 {
		logger.Debug("Registry validation failed.", "unknown", len(errs))
		return errors.Join(errs...)
	}
	logger.Debug("Registry validation passed.", "checked", len(seen))
	return nil
}

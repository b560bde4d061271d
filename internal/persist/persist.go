package persist

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/graphene/internal/codec"
	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/graph"
)

const (
	// KeyPrefix namespaces saved graphs inside the store.
	KeyPrefix = "GRAPHENE::"
	// DefaultName is used when no graph name is given.
	DefaultName = "graph"
)

// Key returns the store key for the named graph.
func Key(name string) string {
	if name == "" {
		name = DefaultName
	}
	return KeyPrefix + name
}

// Save writes g under name, replacing any earlier save.
func Save(ctx context.Context, s *Store, name string, g *graph.Graph) error {
	data, err := codec.Marshal(g)
	if err != nil {
		return err
	}
	if err := s.Put(ctx, Key(name), data); err != nil {
		return fmt.Errorf("save graph %q: %w", name, err)
	}
	ctxlog.FromContext(ctx).Debug("Graph saved.", "key", Key(name), "bytes", len(data))
	return nil
}

// Load restores the graph saved under name. It returns ErrNotFound when
// nothing was saved there.
func Load(ctx context.Context, s *Store, name string, opts ...graph.Option) (*graph.Graph, error) {
	data, err := s.Get(ctx, Key(name))
	if err != nil {
		return nil, fmt.Errorf("load graph %q: %w", name, err)
	}
	return codec.Unmarshal(ctx, data, opts...)
}

// Names lists the names of every saved graph.
func Names(ctx context.Context, s *Store) ([]string, error) {
	keys, err := s.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = strings.TrimPrefix(k, KeyPrefix)
	}
	return names, nil
}

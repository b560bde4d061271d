package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vk/graphene/internal/codec"
	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/persist"
)

// ErrUnknownQuery is returned when a requested query is not configured.
var ErrUnknownQuery = errors.New("unknown query")

// ErrNoStore is returned by Save when no database path was configured.
var ErrNoStore = errors.New("no database configured")

// QueryOutput is one line of RunQueries output.
type QueryOutput struct {
	Query   string `json:"query"`
	QueryID string `json:"query_id"`
	Results []any  `json:"results"`
}

// RunQueries runs the named queries, or every configured query when names
// is empty, and writes one JSON line per query to the output writer.
func (a *App) RunQueries(ctx context.Context, names ...string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if len(names) == 0 {
		names = a.QueryNames()
	}
	if len(names) == 0 {
		a.logger.Warn("No queries configured, nothing to run.")
		return nil
	}

	for _, name := range names {
		if _, ok := a.queries[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownQuery, name)
		}
	}

	enc := json.NewEncoder(a.outW)
	for _, name := range names {
		q := a.db.Query()
		for _, st := range a.queries[name] {
			q.Step(st.Name, st.Args...)
		}

		start := time.Now()
		results := q.Run(ctx)
		a.logger.Info("Query finished.",
			"query", name,
			"results", humanize.Comma(int64(len(results))),
			"took", time.Since(start).String(),
		)

		if err := enc.Encode(QueryOutput{Query: name, QueryID: q.ID(), Results: results.Values()}); err != nil {
			return fmt.Errorf("write results of %q: %w", name, err)
		}
	}
	return nil
}

// Export writes the graph in canonical JSON form to the output writer.
func (a *App) Export(ctx context.Context) error {
	data, err := codec.Marshal(a.db.Graph())
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := a.outW.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Graph exported.", "size", humanize.Bytes(uint64(len(data))))
	return nil
}

// Save persists the graph to the configured database.
func (a *App) Save(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if a.store == nil {
		return ErrNoStore
	}
	g := a.db.Graph()
	if err := persist.Save(ctx, a.store, a.config.GraphName, g); err != nil {
		return err
	}
	a.logger.Info("Graph saved.",
		"key", persist.Key(a.config.GraphName),
		"vertices", humanize.Comma(int64(g.VertexCount())),
		"edges", humanize.Comma(int64(g.EdgeCount())),
	)
	return nil
}

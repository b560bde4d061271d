package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/graphene"
	"github.com/vk/graphene/internal/codec"
	"github.com/vk/graphene/internal/config"
	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/metrics"
	"github.com/vk/graphene/internal/persist"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	logCloser io.Closer
	config    *Config

	db        *graphene.DB
	store     *persist.Store
	promReg   *prometheus.Registry
	metrics   *metrics.Metrics
	model     *config.Model
	converter config.Converter
	queries   map[string]graphene.Program
}

// NewApp builds a ready-to-use App. Results are written to outW and logs to
// logW unless the config names a log file. Any configuration or storage
// failure is returned; recoverable graph errors (duplicate ids, dangling
// edges) are only logged and counted.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	w, closer := logWriter(cfg.LogFile, logW)
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, w)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:      outW,
		logger:    logger,
		logCloser: closer,
		config:    cfg,
		promReg:   prometheus.NewRegistry(),
		queries:   make(map[string]graphene.Program),
	}
	a.metrics = metrics.New(a.promReg)

	if err := a.init(ctx, loader); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, loader config.Loader) error {
	reporter := fault.Multi(fault.LogReporter{}, a.metrics)

	g := graph.New(graph.WithReporter(reporter))
	if a.config.DBPath != "" {
		store, err := persist.Open(persist.DefaultConfig(a.config.DBPath))
		if err != nil {
			return err
		}
		a.store = store
		restored, err := persist.Load(ctx, store, a.config.GraphName, graph.WithReporter(reporter))
		switch {
		case errors.Is(err, persist.ErrNotFound):
			a.logger.Debug("No saved graph found, starting empty.", "graph", persist.Key(a.config.GraphName))
		case err != nil && restored == nil:
			return err
		default:
			if err != nil {
				a.logger.Warn("Saved graph restored with errors.", "graph", persist.Key(a.config.GraphName), "error", err)
			}
			g = restored
		}
	}

	a.db = graphene.New(
		graphene.WithGraph(g),
		graphene.WithReporter(reporter),
		graphene.WithRunObserver(a.metrics.ObserveRun),
	)

	if a.config.DatasetPath != "" {
		doc, err := codec.ReadFile(a.config.DatasetPath)
		if err != nil {
			return err
		}
		vertices, edges := doc.Specs()
		if err := a.db.Load(ctx, vertices, edges); err != nil {
			a.logger.Warn("Dataset loaded with errors.", "path", a.config.DatasetPath, "error", err)
		}
	}

	model, converter, err := loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.model, a.converter = model, converter
	if err := a.apply(ctx); err != nil {
		return err
	}

	a.logger.Info("Graph ready.",
		"vertices", humanize.Comma(int64(g.VertexCount())),
		"edges", humanize.Comma(int64(g.EdgeCount())),
		"queries", len(a.queries),
	)
	return nil
}

// DB returns the application's query engine.
func (a *App) DB() *graphene.DB {
	return a.db
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Gatherer exposes the application's metrics.
func (a *App) Gatherer() prometheus.Gatherer {
	return a.promReg
}

// QueryNames lists configured queries in declaration order.
func (a *App) QueryNames() []string {
	return a.model.QueryNames()
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

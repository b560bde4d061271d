package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vk/graphene/internal/app"
	"github.com/vk/graphene/internal/hcl_adapter"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks bad input from the user.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

type options struct {
	configPaths []string
	dataset     string
	dbPath      string
	graphName   string
	logFormat   string
	logLevel    string
	logFile     string
	addr        string
}

func (o *options) config() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: o.configPaths,
		DatasetPath: o.dataset,
		DBPath:      o.dbPath,
		GraphName:   o.graphName,
		LogFormat:   o.logFormat,
		LogLevel:    o.logLevel,
		LogFile:     o.logFile,
		ListenAddr:  o.addr,
	})
	if err != nil {
		return nil, usageError(err)
	}
	slog.Debug("CLI configuration validated.", "config", cfg)
	return cfg, nil
}

// withApp builds the App for one command invocation and closes it afterwards.
func (o *options) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	a, err := app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, hcl_adapter.NewLoader())
	if err != nil {
		return err
	}
	runErr := fn(cmd.Context(), a)
	return errors.Join(runErr, a.Close())
}

// NewRootCommand builds the graphene command tree. Results go to outW,
// logs and usage errors to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "graphene",
		Short: "An in-memory graph query engine",
		Long: `graphene loads a property graph and answers traversal queries against it.

Graph data comes from a JSON or YAML dataset (--dataset), from a BadgerDB
store (--db), or from vertex and edge blocks in HCL configuration (--config).
The same configuration defines aliases and named queries.

Examples:
  graphene query --config norse.hcl --dataset norse.json thor-grandparents
  graphene save --dataset norse.json --db ./data --graph norse
  graphene serve --db ./data --graph norse --config norse.hcl --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&o.configPaths, "config", "c", nil, "HCL file or directory with aliases, queries and graph data (repeatable).")
	pf.StringVarP(&o.dataset, "dataset", "d", "", "JSON or YAML graph document to load.")
	pf.StringVar(&o.dbPath, "db", "", "BadgerDB directory to restore the graph from and save it to.")
	pf.StringVar(&o.graphName, "graph", "graph", "Name of the graph inside the database.")
	pf.StringVar(&o.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&o.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&o.logFile, "log-file", "", "Write logs to this rotating file instead of stderr.")

	root.AddCommand(
		newQueryCommand(o),
		newSaveCommand(o),
		newExportCommand(o),
		newServeCommand(o),
	)
	return root
}

func newQueryCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query [NAME...]",
		Short: "Run configured queries and print their results as JSON lines",
		Long:  "Run the named queries, or every configured query when no name is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.RunQueries(ctx, args...)
			})
		},
	}
}

func newSaveCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save the loaded graph to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.dbPath == "" {
				return usageError(errors.New("save requires --db"))
			}
			return o.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Save(ctx)
			})
		},
	}
}

func newExportCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the loaded graph in canonical JSON form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Export(ctx)
			})
		},
	}
}

func newServeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve queries, health and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&o.addr, "addr", ":8080", "Address to listen on.")
	return cmd
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

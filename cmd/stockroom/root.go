package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"stockroom/internal/config"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/domain/catalogs/electronic"
	"stockroom/internal/domain/catalogs/grocery"
	"stockroom/internal/domain/warehouse"
	"stockroom/internal/infrastructure/storage/memory"
	"stockroom/pkg/logger"
)

// app holds the dependencies built once per invocation.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	tracing *sdktrace.TracerProvider
	manager *warehouse.Manager
}

type rootOptions struct {
	envFile  string
	logLevel string
	operator string
	trace    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Warehouse inventory console",
		Long: `stockroom keeps electronics and groceries in typed, in-memory repositories.

Each run seeds the warehouse with its initial stock, then executes the command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.tracing != nil {
				_ = a.tracing.Shutdown(context.Background())
			}
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load settings from this .env file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.operator, "operator", "", "operator name recorded in logs")
	root.PersistentFlags().BoolVar(&opts.trace, "trace", false, "log a record for every finished warehouse span (info level)")

	root.AddCommand(
		newDemoCmd(a),
		newListCmd(a),
		newFindCmd(a),
		newValueCmd(a),
		newExpiringCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.operator != "" {
		cfg.Operator = opts.operator
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
		OutputPaths: cfg.LogOutput,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.log = log

	managerCfg := warehouse.Config{
		Electronics: memory.NewItemRepo[electronic.Item](electronic.EntityName),
		Groceries:   memory.NewItemRepo[grocery.Item](grocery.EntityName),
		Out:         cmd.OutOrStdout(),
		Logger:      log,
	}
	if opts.trace {
		a.tracing = newTracerProvider(log)
		managerCfg.TracerProvider = a.tracing
	}
	a.manager = warehouse.NewManager(managerCfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = appctx.WithRun(ctx, appctx.NewRunContext(cfg.Operator))
	ctx = logger.WithLogger(ctx, log)
	cmd.SetContext(ctx)

	logger.Debug(ctx, "stockroom starting", "command", cmd.Name(), "env", cfg.AppEnv)
	return nil
}

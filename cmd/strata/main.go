package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/strata/pkg/config"
	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/observability"
)

var version = "0.1.0"

// app carries what the persistent hooks set up for every subcommand.
type app struct {
	cfgFile  string
	logLevel string

	cfg        *config.Config
	shutdown   observability.Shutdown
	metricsSrv *http.Server
}

func main() {
	root, a := newRootCommand()
	if err := execute(context.Background(), root, a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree and tears down what setup started, also when
// the command failed.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if terr := a.teardown(); terr != nil {
		if err == nil {
			return terr
		}
		logger.Warn("teardown failed", zap.Error(terr))
	}
	return err
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "strata",
		Short: "strata - comparator-driven passes over columnar data",
		Long: `strata sorts, deduplicates and joins columns stored in Arrow IPC files.
Every pass builds a comparator once per column and reuses it for every comparison,
across chunked, nullable and dictionary-encoded columns.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Path to a YAML configuration file (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	root.AddCommand(
		newVersionCommand(),
		newGenCommand(a),
		newInspectCommand(a),
		newSortCommand(a),
		newDistinctCommand(a),
		newJoinCommand(a),
		newConfigCommand(a),
	)
	return root, a
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "strata v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Log.LoggerConfig()); err != nil {
		return err
	}

	a.shutdown, err = observability.Init(cfg.Tracing, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		a.startMetrics(cfg.Metrics.Address)
	}

	logger.Debug("command started",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", a.cfgFile),
		zap.Int("parallelism", cfg.Sort.GetParallelism()))
	return nil
}

func (a *app) startMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.metricsSrv = srv
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.String("address", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("address", addr))
}

func (a *app) teardown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if a.metricsSrv != nil {
		errs = append(errs, a.metricsSrv.Shutdown(ctx))
		a.metricsSrv = nil
	}
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(ctx))
		a.shutdown = nil
	}
	_ = logger.Sync() // stderr sync fails on some platforms
	return errors.Join(errs...)
}

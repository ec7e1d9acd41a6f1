package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kryon-labs/kryonc/pkg/compiler"
	"kryon-labs/kryonc/pkg/telemetry/health"
	"kryon-labs/kryonc/pkg/watch"
)

var watchFlags struct {
	outputDir   string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Watch sources and recompile on change",
	Long: `Watch a source file or directory and recompile on change.

All matching sources are compiled once at startup, then recompiled
whenever they change. Changes are debounced per file. With --metrics,
Prometheus metrics are served over HTTP while watching.

Examples:
  # Watch a directory
  kryonc watch ui/

  # Watch with a metrics endpoint
  kryonc watch --metrics 127.0.0.1:9090 ui/`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.outputDir, "output", "o", "", "output directory (default: next to source)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics", "", "serve Prometheus metrics on host:port")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	// Apply flag overrides
	if watchFlags.outputDir != "" {
		cfg.Compiler.OutputDir = watchFlags.outputDir
	}
	if watchFlags.metricsAddr != "" {
		cfg.Watch.MetricsAddress = watchFlags.metricsAddr
	}

	comp, collector, store, cleanup, err := newCompiler(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if cfg.Watch.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())

		checker := health.New(5 * time.Second)
		if store != nil {
			checker.Register("cache", func(ctx context.Context) error {
				_, err := store.Len(ctx)
				return err
			})
		}
		health.Mount(mux, checker, Version, GitCommit, BuildDate)
		server := &http.Server{
			Addr:              cfg.Watch.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", "address", cfg.Watch.MetricsAddress)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer server.Close()
	}

	watchCfg := &watch.Config{
		Path:       args[0],
		Debounce:   cfg.Watch.Debounce,
		Patterns:   cfg.Watch.Patterns,
		SkipHidden: true,
		OnResult: func(result *compiler.Result) {
			printResult(comp, result)
		},
		OnError: func(path string, err error) {
			fmt.Printf("error compiling %s:\n%v\n", path, err)
		},
	}

	watcher, err := watch.NewWatcher(watchCfg, comp, logger)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("watching %s (Ctrl-C to stop)\n", args[0])
	return watcher.Watch(ctx)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dispatchd/internal/backend"
	"dispatchd/internal/config"
	"dispatchd/internal/httpapi"
	"dispatchd/internal/queue"
)

type serveOptions struct {
	addr              string
	configPath        string
	predictURL        string
	concurrency       int
	liveUpdates       bool
	prefetchWindow    int
	broadcastInterval time.Duration
	estimatorWindow   int
	logLevel          string
	corsOrigins       []string
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dispatchd",
		Short:         "Queue and dispatch daemon for a prediction backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := serveOptions{}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the queue daemon",
		Example: "  dispatchd serve --predict-url http://localhost:8000/api/predict\n" +
			"  dispatchd serve --config dispatchd.yaml --concurrency 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	serve.Flags().StringVar(&opts.addr, "addr", ":8080", "HTTP listen address, e.g. :8080")
	serve.Flags().StringVar(&opts.configPath, "config", "", "Path to a yaml/json/toml config file")
	serve.Flags().StringVar(&opts.predictURL, "predict-url", "http://127.0.0.1:8000/api/predict", "Prediction backend endpoint")
	serve.Flags().IntVar(&opts.concurrency, "concurrency", 1, "Number of jobs processed at once")
	serve.Flags().BoolVar(&opts.liveUpdates, "live-updates", true, "Broadcast ETA to pending clients on every admission")
	serve.Flags().IntVar(&opts.prefetchWindow, "prefetch-window", 30, "Head-of-queue jobs to gather data for ahead of admission (negative disables)")
	serve.Flags().DurationVar(&opts.broadcastInterval, "broadcast-interval", 10*time.Second, "Periodic ETA broadcast interval")
	serve.Flags().IntVar(&opts.estimatorWindow, "estimator-window", 100, "Rolling window of job durations for the ETA")
	serve.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	serve.Flags().StringSliceVar(&opts.corsOrigins, "cors-origins", nil, "Enable CORS for the given origins")
	root.AddCommand(serve)

	return root
}

// runServe wires config file and flags into the dispatcher and HTTP server.
// Flags that the caller set explicitly win over file values.
func runServe(cmd *cobra.Command, opts serveOptions) error {
	logger := buildLogger(opts.logLevel)

	if opts.configPath != "" {
		fileCfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		if fileCfg.Addr != "" && !cmd.Flags().Changed("addr") {
			opts.addr = fileCfg.Addr
		}
		if fileCfg.PredictURL != "" && !cmd.Flags().Changed("predict-url") {
			opts.predictURL = fileCfg.PredictURL
		}
		if fileCfg.Concurrency > 0 && !cmd.Flags().Changed("concurrency") {
			opts.concurrency = fileCfg.Concurrency
		}
		if fileCfg.LiveUpdates != nil && !cmd.Flags().Changed("live-updates") {
			opts.liveUpdates = *fileCfg.LiveUpdates
		}
		if fileCfg.PrefetchWindow != 0 && !cmd.Flags().Changed("prefetch-window") {
			opts.prefetchWindow = fileCfg.PrefetchWindow
		}
		if fileCfg.BroadcastIntervalSeconds > 0 && !cmd.Flags().Changed("broadcast-interval") {
			opts.broadcastInterval = time.Duration(fileCfg.BroadcastIntervalSeconds) * time.Second
		}
		if fileCfg.EstimatorWindow > 0 && !cmd.Flags().Changed("estimator-window") {
			opts.estimatorWindow = fileCfg.EstimatorWindow
		}
	}

	qcfg := queue.DefaultConfig()
	qcfg.Concurrency = opts.concurrency
	qcfg.LiveUpdates = opts.liveUpdates
	qcfg.PrefetchWindow = opts.prefetchWindow
	qcfg.BroadcastInterval = opts.broadcastInterval
	qcfg.EstimatorWindow = opts.estimatorWindow

	inv := backend.NewHTTPInvoker(opts.predictURL, 10*time.Second)
	disp := queue.New(inv, qcfg)
	disp.SetLogger(logger)
	httpapi.SetLogger(logger)
	if len(opts.corsOrigins) > 0 {
		httpapi.SetCORSOptions(true, opts.corsOrigins,
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Accept", "Content-Type"})
	}

	disp.Start()
	srv := &http.Server{Addr: opts.addr, Handler: httpapi.NewMux(disp)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", opts.addr).Str("predict_url", inv.URL()).Msg("dispatchd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		disp.Stop()
		return err
	case <-stop:
	}
	disp.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func buildLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/config"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/dataset"
	appLog "github.com/lucianorarrua/cosquin-rock-lineup/internal/log"
	"github.com/lucianorarrua/cosquin-rock-lineup/internal/web"
)

const appVersion = "1.0.0"

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	validate   bool
	debug      bool
}

func main() {
	// Optional .env file for local development overrides.
	_ = godotenv.Load()

	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	appLog.Info("lineup starting", "version", appVersion)

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if v := os.Getenv("LINEUP_LISTEN"); v != "" && flags.listen == "" {
		conf.Listen = v
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"utc_offset_hours", conf.UTCOffsetHours,
		"grid_start_hour", conf.GridStartHour,
		"days", len(conf.Days),
		"stages", len(conf.StagePriority),
		"strict_ingest", conf.StrictIngest,
		"refresh", conf.RefreshCron,
		"dataset_url", conf.Dataset.URL,
		"dataset_path", conf.Dataset.Path,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	// Initial dataset load. In --validate mode ingestion is forced
	// strict so data errors fail the run.
	if flags.validate {
		conf.StrictIngest = true
	}

	loader := dataset.NewLoader(conf.Dataset)
	store := dataset.NewStore()

	if err := dataset.Reload(ctx, loader, store, conf); err != nil {
		appLog.Error("initial dataset load failed", err)
		os.Exit(1)
	}

	if flags.validate {
		snap := store.Snapshot()
		appLog.Info("dataset valid", "events", len(snap.Events), "days", len(snap.Schedules))
		return
	}

	// Periodic dataset refresh, only meaningful for remote datasets.
	if conf.RefreshCron != "" && conf.Dataset.URL != "" {
		c := cron.New()
		_, err := c.AddFunc(conf.RefreshCron, func() {
			if err := dataset.Reload(ctx, loader, store, conf); err != nil {
				appLog.Error("dataset refresh failed", err)
			}
		})
		if err != nil {
			appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
			os.Exit(1)
		}
		c.Start()
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:              conf.Listen,
		Handler:           web.NewServer(conf, store).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP server shutdown failed", err)
	}

	appLog.Info("lineup exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.validate, "validate", false, "Load and validate the dataset strictly, then exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

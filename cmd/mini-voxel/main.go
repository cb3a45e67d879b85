package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"mini-voxel/internal/app"
	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/logging"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xlab/closer"
)

// GLFW and GL calls must stay on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		slog.Error("configure logging", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	cfg.Apply()

	metrics := profiling.NewMetrics(prometheus.DefaultRegisterer)
	profiling.SetObserver(metrics.ObserveTracked)
	if cfg.Metrics.Addr != "" {
		srv := profiling.Serve(cfg.Metrics.Addr, logger)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		})
	}

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("mini-voxel failed", "err", err)
		closer.Exit(closer.ExitCodeErr)
	}
	closer.Close()
}

func run(cfg config.Config, logger *slog.Logger, metrics *profiling.Metrics) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := app.SetupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	a, err := app.NewApp(window, cfg, game.Options{Logger: logger, Metrics: metrics})
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("starting",
		"seed", cfg.Seed,
		"render_distance", config.GetRenderDistance(),
		"flat_height", cfg.World.FlatHeight)
	a.Run()
	logger.Info("shutting down")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"statusboard/internal/config"
	"statusboard/internal/controllers"
	"statusboard/internal/format"
	"statusboard/internal/logger"
	"statusboard/internal/middleware"
	"statusboard/internal/routes"
	"statusboard/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout      = 5 * time.Second
	limiterSweepInterval = time.Minute
	limiterIdleTTL       = 3 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	probe := services.GopsutilProbe{}
	disk := services.NewDiskService(services.ExecRunner, cfg.SourceTimeout, log)
	system := services.NewSystemService(probe, disk, log)
	github := services.NewGitHubService(cfg, log)
	weather := services.NewWeatherService(cfg, log)
	uptime := services.NewUptimeService(probe, started, time.Now, log)
	motivation := services.NewMotivationService(time.Now)
	dashboard := services.NewDashboardService(system, github, weather, uptime, motivation, log)

	static, err := controllers.NewStaticServer(cfg.StaticDir, log)
	if err != nil {
		return fmt.Errorf("failed to resolve static dir: %w", err)
	}

	api := controllers.NewAPIController(system, github, weather, uptime, motivation, dashboard)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateBurst)

	r := routes.NewEngine(log)
	routes.RegisterAPIRoutes(r, api, static, limiter, log)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("Starting statusboard",
		"addr", srv.Addr,
		"static_dir", static.Root(),
		"github_configured", github.Configured(),
		"github_token", cfg.GitHubToken != "",
		"weather_configured", weather.Configured(),
		"source_timeout", cfg.SourceTimeout,
		"memory_total", format.Bytes(system.Memory().TotalBytes),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go limiter.Run(ctx, limiterSweepInterval, limiterIdleTTL, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server shutdown complete", "uptime", format.Duration(time.Since(started).Seconds()))
	return nil
}

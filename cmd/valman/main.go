package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/melih/valman/internal/adapters/a2s"
	"github.com/melih/valman/internal/adapters/backup"
	"github.com/melih/valman/internal/adapters/docker"
	"github.com/melih/valman/internal/adapters/http"
	"github.com/melih/valman/internal/config"
	"github.com/melih/valman/internal/core/domain"
	"github.com/melih/valman/internal/core/services"
	"github.com/melih/valman/internal/logger"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=... -X main.buildTime=...".
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = ""
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New("valman", logger.ParseLevel(cfg.LogLevel))
	if err := run(cfg, log); err != nil {
		log.Error("valman stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	template, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return errors.Join(domain.ErrFilesystem, err)
	}

	// 1. Adapters
	dockerAdapter, err := docker.NewAdapter(cfg.DockerSocketPath, log)
	if err != nil {
		return err
	}
	defer dockerAdapter.Close()

	gameAdapter := a2s.NewAdapter(cfg.GameQueryTimeout(), log)
	catalog := backup.NewCatalog()
	extractor := backup.NewExtractor(log)

	// 2. Core services
	state := services.NewState(dockerAdapter, gameAdapter, services.Settings{
		ContainerName:   cfg.ContainerName,
		GameAddress:     cfg.GameServerAddress,
		BackupsDir:      cfg.BackupsPath,
		RestoreDir:      cfg.BackupsDestinationPath,
		RestartCooldown: cfg.RestartCooldown(),
		LogLines:        int(cfg.LogLinesCount),
	}, string(template))

	metrics := http.NewMetrics()
	dashboard := services.NewDashboardService(state, catalog, buildVersion(version, commit, buildTime), log)
	dashboard.OnFailure(metrics.ProviderFailed)
	control := services.NewController(state, services.NewRestorer(extractor, dockerAdapter, log), log)

	// 3. HTTP
	handler := http.NewDashboardHandler(state, dashboard, control, catalog, metrics, log)
	app := http.NewApp(handler, domain.Credentials{Username: cfg.Username, Password: cfg.Password}, metrics, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "address", cfg.ServerAddress, "version", version, "commit", commit, "built", buildTime)
		errCh <- app.Listen(cfg.ServerAddress)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// buildVersion renders the %version% string, e.g. "1.2.0-abc123 (built 2024-06-01T18:30:00Z)".
func buildVersion(version, commit, builtAt string) string {
	v := version + "-" + commit
	if builtAt != "" {
		v += " (built " + builtAt + ")"
	}
	return v
}

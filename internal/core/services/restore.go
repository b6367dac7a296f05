package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/melih/valman/internal/core/domain"
	"github.com/melih/valman/internal/core/ports"
)

// Restorer extracts a backup over the game's data directory and restarts the container.
type Restorer struct {
	extractor  ports.ArchiveExtractor
	containers ports.ContainerService
	logger     *slog.Logger
}

func NewRestorer(extractor ports.ArchiveExtractor, containers ports.ContainerService, logger *slog.Logger) *Restorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Restorer{extractor: extractor, containers: containers, logger: logger}
}

// Restore applies the named backup, then restarts the container.
//
// If extraction fails the container is left alone and the error wraps
// domain.ErrBackup. If the restart fails the extracted files stay in place
// and the error wraps domain.ErrRestart.
func (r *Restorer) Restore(ctx context.Context, settings Settings, name string) error {
	archivePath, err := domain.BackupPath(settings.BackupsDir, name)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackup, err)
	}

	r.logger.Info("restoring backup", "backup", name, "destination", settings.RestoreDir)
	if err := r.extractor.Extract(archivePath, settings.RestoreDir); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackup, err)
	}

	if err := r.containers.Restart(ctx, settings.ContainerName); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRestart, err)
	}
	return nil
}

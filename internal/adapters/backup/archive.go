package backup

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/docker/docker/pkg/archive"
	"github.com/melih/valman/internal/core/domain"
)

// Extractor implements ports.ArchiveExtractor for tar archives, compressed or not.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract unpacks the whole archive into dest. Compression is detected from the stream.
// Nothing is cleaned up if extraction stops halfway.
func (e *Extractor) Extract(archivePath, dest string) error {
	e.logger.Debug("restoring backup", "archive", archivePath, "destination", dest)

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open archive: %v", domain.ErrFilesystem, err)
	}
	defer f.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("%w: create destination: %v", domain.ErrFilesystem, err)
	}

	if err := archive.Untar(f, dest, &archive.TarOptions{NoLchown: true}); err != nil {
		return fmt.Errorf("%w: extract %s: %v", domain.ErrFilesystem, archivePath, err)
	}
	return nil
}

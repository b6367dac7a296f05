package ports

import (
	"io"

	"github.com/melih/valman/internal/core/domain"
)

// BackupCatalog lists and opens backup archives stored in a directory.
type BackupCatalog interface {
	// List returns the directory's backups sorted oldest to newest.
	List(dir string) ([]domain.BackupEntry, error)
	// Open returns the named archive for streaming.
	Open(dir, name string) (io.ReadCloser, error)
}

// ArchiveExtractor unpacks a backup archive on top of a destination tree.
type ArchiveExtractor interface {
	// Extract unpacks archivePath into dest, overwriting existing entries.
	// A failed extraction may leave dest partially written.
	Extract(archivePath, dest string) error
}

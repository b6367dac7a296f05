package backup

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/melih/valman/internal/core/domain"
)

// Catalog implements ports.BackupCatalog over a plain directory.
type Catalog struct {
	createdAt func(path string, info fs.FileInfo) (time.Time, error)
}

// NewCatalog returns a catalog that orders backups by filesystem creation time.
func NewCatalog() *Catalog {
	return &Catalog{createdAt: birthTime}
}

// List reads the files in dir, skipping subdirectories, and sorts them oldest to newest.
// Any entry without readable metadata fails the whole listing.
func (c *Catalog) List(dir string) ([]domain.BackupEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read backups directory: %v", domain.ErrFilesystem, err)
	}

	backups := make([]domain.BackupEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("%w: metadata for %s: %w", domain.ErrFilesystem, entry.Name(), err)
		}
		created, err := c.createdAt(filepath.Join(dir, entry.Name()), info)
		if err != nil {
			return nil, fmt.Errorf("%w: creation time for %s: %w", domain.ErrFilesystem, entry.Name(), err)
		}
		backups = append(backups, domain.BackupEntry{
			Name:      entry.Name(),
			CreatedAt: created,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].Name < backups[j].Name
		}
		return backups[i].CreatedAt.Before(backups[j].CreatedAt)
	})
	return backups, nil
}

// Open returns the named backup file. Names that would escape dir are reported as not existing.
func (c *Catalog) Open(dir, name string) (io.ReadCloser, error) {
	path, err := domain.BackupPath(dir, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrFilesystem, name)
	}
	return f, nil
}

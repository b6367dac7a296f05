package domain

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// RecentBackupCount is how many backups the dashboard lists.
const RecentBackupCount = 5

// BackupEntry describes one archive in the backup directory.
type BackupEntry struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

// HumanSize formats the size in decimal units (kB, MB, ...).
func (b BackupEntry) HumanSize() string {
	if b.Size < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(b.Size))
}

// RecentBackups returns the last n entries of an ascending list, keeping order.
func RecentBackups(entries []BackupEntry, n int) []BackupEntry {
	if n <= 0 {
		return nil
	}
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// BackupPath joins a backup name onto dir. Names with path components are
// reported as not existing so they cannot reach outside dir.
func BackupPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: invalid backup name %q: %w", ErrFilesystem, name, fs.ErrNotExist)
	}
	return filepath.Join(dir, name), nil
}

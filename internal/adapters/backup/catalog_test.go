package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/melih/valman/internal/core/domain"
)

func modTimeCatalog() *Catalog {
	return &Catalog{createdAt: func(_ string, info fs.FileInfo) (time.Time, error) {
		return info.ModTime(), nil
	}}
}

func writeBackup(t *testing.T, dir, name string, size int, at time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
}

func TestListSortsByCreationTime(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	writeBackup(t, dir, "c.tar.gz", 30, base.Add(2*time.Hour))
	writeBackup(t, dir, "a.tar.gz", 10, base.Add(3*time.Hour))
	writeBackup(t, dir, "b.tar.gz", 20, base)

	catalog := modTimeCatalog()
	first, err := catalog.List(dir)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"b.tar.gz", "c.tar.gz", "a.tar.gz"}
	if len(first) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(first))
	}
	for i, name := range want {
		if first[i].Name != name {
			t.Fatalf("position %d: expected %s got %s", i, name, first[i].Name)
		}
	}
	if first[0].Size != 20 {
		t.Fatalf("expected size 20, got %d", first[0].Size)
	}

	second, err := catalog.List(dir)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("order changed between calls at %d: %s vs %s", i, first[i].Name, second[i].Name)
		}
	}
}

func TestListRecentView(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for _, n := range []int{0, 1, 4, 5, 6, 9} {
		t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
			dir := t.TempDir()
			for i := 0; i < n; i++ {
				writeBackup(t, dir, fmt.Sprintf("backup-%02d.tar.gz", i), 1, base.Add(time.Duration(i)*time.Hour))
			}
			entries, err := modTimeCatalog().List(dir)
			if err != nil {
				t.Fatalf("List error: %v", err)
			}
			recent := domain.RecentBackups(entries, domain.RecentBackupCount)
			want := n
			if want > domain.RecentBackupCount {
				want = domain.RecentBackupCount
			}
			if len(recent) != want {
				t.Fatalf("expected %d recent entries, got %d", want, len(recent))
			}
			for i := 1; i < len(recent); i++ {
				if recent[i].CreatedAt.Before(recent[i-1].CreatedAt) {
					t.Fatalf("recent entries out of order at %d", i)
				}
			}
			if n > 0 && recent[len(recent)-1].Name != fmt.Sprintf("backup-%02d.tar.gz", n-1) {
				t.Fatalf("expected newest backup last, got %s", recent[len(recent)-1].Name)
			}
		})
	}
}

func TestListFailures(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := modTimeCatalog().List(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, domain.ErrFilesystem) {
			t.Fatalf("expected filesystem error, got %v", err)
		}
	})

	t.Run("creation time unavailable", func(t *testing.T) {
		dir := t.TempDir()
		writeBackup(t, dir, "a.tar.gz", 1, time.Now())
		catalog := &Catalog{createdAt: func(string, fs.FileInfo) (time.Time, error) {
			return time.Time{}, errors.New("no btime")
		}}
		if _, err := catalog.List(dir); !errors.Is(err, domain.ErrFilesystem) {
			t.Fatalf("expected filesystem error, got %v", err)
		}
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "world.tar.gz"), []byte("payload"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	catalog := NewCatalog()

	rc, err := catalog.Open(dir, "world.tar.gz")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "payload" {
		t.Fatalf("unexpected content %q", data)
	}

	for _, name := range []string{"missing.tar.gz", "../world.tar.gz", "sub/world.tar.gz", ".."} {
		if _, err := catalog.Open(dir, name); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("%s: expected not exist, got %v", name, err)
		}
	}
}

func TestListSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeBackup(t, dir, "worlds.tar.gz", 10, time.Now())
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	backups, err := modTimeCatalog().List(dir)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(backups) != 1 || backups[0].Name != "worlds.tar.gz" {
		t.Fatalf("expected only the archive, got %+v", backups)
	}
}

package services

import (
	"context"
	"io"
	"sync"

	"github.com/melih/valman/internal/core/domain"
)

type fakeContainers struct {
	mu         sync.Mutex
	snapshot   domain.ContainerSnapshot
	statusErr  error
	restartErr error
	restarts   int
	onStatus   func()
}

func (f *fakeContainers) GetStatus(ctx context.Context, name string, logLines int) (domain.ContainerSnapshot, error) {
	if f.onStatus != nil {
		f.onStatus()
	}
	return f.snapshot, f.statusErr
}

func (f *fakeContainers) Restart(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restarts++
	return f.restartErr
}

func (f *fakeContainers) restartCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restarts
}

type fakeGames struct {
	snapshot domain.GameSnapshot
	err      error
	onQuery  func()
}

func (f *fakeGames) GetInfo(ctx context.Context, address string) (domain.GameSnapshot, error) {
	if f.onQuery != nil {
		f.onQuery()
	}
	return f.snapshot, f.err
}

type fakeCatalog struct {
	entries []domain.BackupEntry
	err     error
}

func (f *fakeCatalog) List(dir string) ([]domain.BackupEntry, error) { return f.entries, f.err }

func (f *fakeCatalog) Open(dir, name string) (io.ReadCloser, error) { return nil, f.err }

type fakeExtractor struct {
	err   error
	calls []string
}

func (f *fakeExtractor) Extract(archivePath, dest string) error {
	f.calls = append(f.calls, archivePath+"->"+dest)
	return f.err
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/melih/valman/internal/core/domain"
	"github.com/melih/valman/internal/core/ports"
)

// FailureObserver is told about every provider that failed during aggregation.
type FailureObserver func(provider string, err error)

// DashboardService composes the container, game and backup providers into one page model.
type DashboardService struct {
	state     *State
	catalog   ports.BackupCatalog
	version   string
	now       func() time.Time
	logger    *slog.Logger
	onFailure FailureObserver
}

func NewDashboardService(state *State, catalog ports.BackupCatalog, version string, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		state:   state,
		catalog: catalog,
		version: version,
		now:     time.Now,
		logger:  logger,
	}
}

// OnFailure registers an observer for provider failures, e.g. a metrics counter.
func (s *DashboardService) OnFailure(fn FailureObserver) {
	s.onFailure = fn
}

// Build gathers a fresh snapshot from every provider.
//
// Container and game failures are logged and carried in their results; they
// never fail the page. A backup directory that cannot be listed is returned
// as an error since it points at a misconfiguration.
func (s *DashboardService) Build(ctx context.Context) (domain.Dashboard, error) {
	start := s.now()
	snap := s.state.Snapshot()
	settings := snap.Settings

	var (
		wg        sync.WaitGroup
		container domain.ContainerResult
		game      domain.GameResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer recoverProvider("container", domain.ErrRuntimeAPI, &container.Err)
		container.Snapshot, container.Err = snap.Containers.GetStatus(ctx, settings.ContainerName, settings.LogLines)
	}()
	go func() {
		defer wg.Done()
		defer recoverProvider("game", domain.ErrGameQuery, &game.Err)
		game.Snapshot, game.Err = snap.Games.GetInfo(ctx, settings.GameAddress)
	}()
	wg.Wait()

	if container.Err != nil {
		s.failed("container", container.Err)
	}
	if game.Err != nil {
		s.failed("game", game.Err)
	}

	backups, err := s.catalog.List(settings.BackupsDir)
	if err != nil {
		s.failed("backups", err)
		return domain.Dashboard{}, err
	}

	now := s.now()
	return domain.Dashboard{
		Version:         s.version,
		Container:       container,
		Game:            game,
		Backups:         domain.RecentBackups(backups, domain.RecentBackupCount),
		LastRestart:     snap.LastRestart,
		RestartAllowed:  IsRestartAllowed(snap.LastRestart, settings.RestartCooldown, now),
		RestartCooldown: settings.RestartCooldown,
		RenderDuration:  now.Sub(start),
	}, nil
}

// recoverProvider records a provider panic as that provider's error.
func recoverProvider(provider string, sentinel error, dst *error) {
	if r := recover(); r != nil {
		*dst = fmt.Errorf("%w: %s provider panicked: %v", sentinel, provider, r)
	}
}

func (s *DashboardService) failed(provider string, err error) {
	s.logger.Error("provider unavailable", "provider", provider, "error", err)
	if s.onFailure != nil {
		s.onFailure(provider, err)
	}
}

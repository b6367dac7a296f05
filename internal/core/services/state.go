package services

import (
	"sync"
	"time"

	"github.com/melih/valman/internal/core/ports"
)

// Settings is the resolved configuration the core acts on.
type Settings struct {
	ContainerName   string
	GameAddress     string
	BackupsDir      string
	RestoreDir      string
	RestartCooldown time.Duration
	LogLines        int
}

// State is the process-wide mutable cell shared by all request handlers.
//
// Reads take the read lock only long enough to copy values out; the write
// lock is taken only to stamp a restart. Neither is held across I/O.
type State struct {
	mu          sync.RWMutex
	containers  ports.ContainerService
	games       ports.GameQueryService
	settings    Settings
	template    string
	lastRestart *time.Time

	// actionMu serializes restart-triggering actions so that one
	// restart-then-stamp sequence cannot interleave with another.
	actionMu sync.Mutex
}

// NewState builds the shared state. It is created once at startup.
func NewState(containers ports.ContainerService, games ports.GameQueryService, settings Settings, template string) *State {
	return &State{
		containers: containers,
		games:      games,
		settings:   settings,
		template:   template,
	}
}

// StateSnapshot is a copy of State taken under the read lock.
type StateSnapshot struct {
	Containers  ports.ContainerService
	Games       ports.GameQueryService
	Settings    Settings
	Template    string
	LastRestart *time.Time
}

// Snapshot copies out everything a handler needs.
func (s *State) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := StateSnapshot{
		Containers: s.containers,
		Games:      s.games,
		Settings:   s.settings,
		Template:   s.template,
	}
	if s.lastRestart != nil {
		t := *s.lastRestart
		snap.LastRestart = &t
	}
	return snap
}

// LastRestart returns the time of the last successful restart, if any.
func (s *State) LastRestart() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRestart == nil {
		return time.Time{}, false
	}
	return *s.lastRestart, true
}

// StampRestart records a completed restart.
func (s *State) StampRestart(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRestart = &at
}

package domain

import "time"

// Dashboard is everything the page renderer needs for one request.
type Dashboard struct {
	Version         string
	Container       ContainerResult
	Game            GameResult
	Backups         []BackupEntry
	LastRestart     *time.Time
	RestartAllowed  bool
	RestartCooldown time.Duration
	RenderDuration  time.Duration
}

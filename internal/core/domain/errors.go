package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeAPI indicates a transport or protocol failure talking to the container runtime.
	ErrRuntimeAPI = errors.New("runtime api error")
	// ErrRuntimeData indicates the runtime returned an incomplete container record.
	ErrRuntimeData = errors.New("runtime data error")
	// ErrContainerNotFound indicates no container matched the configured name.
	ErrContainerNotFound = fmt.Errorf("%w: container not found", ErrRuntimeData)
	// ErrGameQuery indicates the A2S query failed.
	ErrGameQuery = errors.New("game query error")
	// ErrFilesystem indicates an I/O failure reading backups or extracting archives.
	ErrFilesystem = errors.New("filesystem error")
	// ErrAuth indicates missing or invalid credentials.
	ErrAuth = errors.New("auth error")
	// ErrBackup marks a restore that failed before anything was restarted.
	ErrBackup = errors.New("backup error")
	// ErrRestart marks a restore whose files were applied but whose restart failed.
	ErrRestart = errors.New("restart error")
)

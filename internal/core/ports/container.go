package ports

import (
	"context"

	"github.com/melih/valman/internal/core/domain"
)

// ContainerService defines the container runtime operations the panel needs.
// This interface allows us to switch between Docker and Podman
// without changing the business logic.
type ContainerService interface {
	// GetStatus returns the named container's state and the last logLines lines of stdout.
	GetStatus(ctx context.Context, name string, logLines int) (domain.ContainerSnapshot, error)
	// Restart restarts the named container, giving it a grace period before a forced kill.
	Restart(ctx context.Context, name string) error
}

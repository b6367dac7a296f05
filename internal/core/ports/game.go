package ports

import (
	"context"

	"github.com/melih/valman/internal/core/domain"
)

// GameQueryService fetches liveness and player counts from a running game server.
type GameQueryService interface {
	GetInfo(ctx context.Context, address string) (domain.GameSnapshot, error)
}

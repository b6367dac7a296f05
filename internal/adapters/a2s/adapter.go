package a2s

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melih/valman/internal/core/domain"
	a2s "github.com/rumblefrog/go-a2s"
)

const defaultTimeout = 3 * time.Second

// infoQuerier is the part of an A2S client used for a single info request.
type infoQuerier interface {
	QueryInfo() (*a2s.ServerInfo, error)
	Close() error
}

type dialFunc func(address string, timeout time.Duration) (infoQuerier, error)

func dialA2S(address string, timeout time.Duration) (infoQuerier, error) {
	client, err := a2s.NewClient(address, a2s.TimeoutOption(timeout))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Adapter implements ports.GameQueryService over the Source query protocol.
type Adapter struct {
	timeout time.Duration
	dial    dialFunc
	logger  *slog.Logger
}

// NewAdapter creates an A2S adapter whose queries give up after timeout.
func NewAdapter(timeout time.Duration, logger *slog.Logger) *Adapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{timeout: timeout, dial: dialA2S, logger: logger}
}

// GetInfo issues one A2S_INFO request. Valheim does not fill in A2S_PLAYER
// meaningfully, so the roster is never queried and always empty.
//
// The client library panics on truncated replies; that is reported as ErrGameQuery.
func (a *Adapter) GetInfo(ctx context.Context, address string) (snap domain.GameSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("a2s reply could not be parsed", "address", address, "panic", fmt.Sprintf("%v", r))
			snap = domain.GameSnapshot{}
			err = fmt.Errorf("%w: malformed reply from %s: %v", domain.ErrGameQuery, address, r)
		}
	}()

	timeout := a.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	a.logger.Debug("a2s info query", "address", address)

	client, err := a.dial(address, timeout)
	if err != nil {
		return domain.GameSnapshot{}, fmt.Errorf("%w: dial %s: %v", domain.ErrGameQuery, address, err)
	}
	defer client.Close()

	info, err := client.QueryInfo()
	if err != nil {
		return domain.GameSnapshot{}, fmt.Errorf("%w: query %s: %v", domain.ErrGameQuery, address, err)
	}
	if info == nil {
		return domain.GameSnapshot{}, fmt.Errorf("%w: empty response from %s", domain.ErrGameQuery, address)
	}

	version := ""
	if info.ExtendedServerInfo != nil {
		version = info.ExtendedServerInfo.Keywords
	}

	return domain.GameSnapshot{
		Name:       info.Name,
		Version:    version,
		Players:    int(info.Players),
		MaxPlayers: int(info.MaxPlayers),
		Roster:     []domain.Player{},
	}, nil
}

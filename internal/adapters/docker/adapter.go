package docker

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/melih/valman/internal/core/domain"
)

// restartGraceSeconds is how long the runtime waits before killing the container on restart.
const restartGraceSeconds = 10

// apiClient is the subset of the Docker SDK the adapter calls.
type apiClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerLogs(ctx context.Context, id string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerRestart(ctx context.Context, id string, options container.StopOptions) error
	Close() error
}

// Adapter implements ports.ContainerService using Docker SDK
type Adapter struct {
	cli    apiClient
	logger *slog.Logger
}

// NewAdapter creates a Docker adapter talking to the daemon on the given unix socket.
func NewAdapter(socketPath string, logger *slog.Logger) (*Adapter, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if socketPath != "" {
		opts = append(opts, client.WithHost("unix://"+strings.TrimPrefix(socketPath, "unix://")))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return newAdapter(cli, logger), nil
}

func newAdapter(cli apiClient, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{cli: cli, logger: logger}
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	return a.cli.Close()
}

type containerRef struct {
	id     string
	state  string
	status string
}

// findContainer looks up a container by name. Docker reports names with a leading slash.
func (a *Adapter) findContainer(ctx context.Context, name string) (containerRef, error) {
	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return containerRef{}, fmt.Errorf("%w: failed to list containers: %v", domain.ErrRuntimeAPI, err)
	}

	want := "/" + name
	for _, c := range containers {
		if len(c.Names) == 0 || !strings.EqualFold(c.Names[0], want) {
			continue
		}
		switch {
		case c.ID == "":
			return containerRef{}, fmt.Errorf("%w: container %q has no id", domain.ErrRuntimeData, name)
		case c.State == "":
			return containerRef{}, fmt.Errorf("%w: container %q has no state", domain.ErrRuntimeData, name)
		case c.Status == "":
			return containerRef{}, fmt.Errorf("%w: container %q has no status", domain.ErrRuntimeData, name)
		}
		return containerRef{id: c.ID, state: c.State, status: c.Status}, nil
	}
	return containerRef{}, fmt.Errorf("%w: %q", domain.ErrContainerNotFound, name)
}

// GetStatus returns the container's state, uptime and a tail of its stdout logs.
func (a *Adapter) GetStatus(ctx context.Context, name string, logLines int) (domain.ContainerSnapshot, error) {
	ref, err := a.findContainer(ctx, name)
	if err != nil {
		return domain.ContainerSnapshot{}, err
	}

	a.logger.Debug("retrieving container info", "container", name, "id", ref.id)

	logs, err := a.tailLogs(ctx, ref.id, logLines)
	if err != nil {
		return domain.ContainerSnapshot{}, err
	}

	return domain.ContainerSnapshot{
		ID:     ref.id,
		State:  ref.state,
		Uptime: ref.status,
		Logs:   logs,
	}, nil
}

func (a *Adapter) tailLogs(ctx context.Context, id string, lines int) (string, error) {
	if lines < 0 {
		lines = 0
	}
	rc, err := a.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		Tail:       strconv.Itoa(lines),
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to fetch logs: %v", domain.ErrRuntimeAPI, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		// Logs are best effort: keep whatever arrived before the stream broke.
		a.logger.Error("container log stream interrupted", "id", id, "error", err)
	}
	logs, err := decodeLogs(raw)
	if err != nil {
		a.logger.Error("container log stream could not be fully decoded", "id", id, "error", err)
	}
	return logs, nil
}

// decodeLogs demultiplexes a Docker log stream and drops lines that are not valid UTF-8.
// TTY containers send a raw stream, which is used as-is. When a multiplexed
// stream breaks off, the stdout decoded so far is kept and the error returned.
func decodeLogs(raw []byte) (string, error) {
	var (
		stdout    bytes.Buffer
		streamErr error
	)
	if isMultiplexed(raw) {
		if _, err := stdcopy.StdCopy(&stdout, io.Discard, bytes.NewReader(raw)); err != nil {
			streamErr = err
		}
	} else {
		stdout.Write(raw)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(&stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.String(), streamErr
}

// isMultiplexed reports whether raw starts with a stdcopy frame header:
// a stream id (stdin, stdout, stderr or systemerr) followed by three zero bytes.
func isMultiplexed(raw []byte) bool {
	const headerLen = 8
	if len(raw) < headerLen {
		return false
	}
	return raw[0] <= byte(stdcopy.Systemerr) && raw[1] == 0 && raw[2] == 0 && raw[3] == 0
}

// Restart restarts the named container with a bounded grace period.
func (a *Adapter) Restart(ctx context.Context, name string) error {
	ref, err := a.findContainer(ctx, name)
	if err != nil {
		return err
	}

	a.logger.Info("restarting container", "container", name, "id", ref.id)

	timeout := restartGraceSeconds
	if err := a.cli.ContainerRestart(ctx, ref.id, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("%w: failed to restart container: %v", domain.ErrRuntimeAPI, err)
	}
	return nil
}

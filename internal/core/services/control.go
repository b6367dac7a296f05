package services

import (
	"context"
	"log/slog"
	"time"
)

// Controller runs the two mutating actions: restart, and restore-then-restart.
type Controller struct {
	state    *State
	restorer *Restorer
	now      func() time.Time
	logger   *slog.Logger
}

func NewController(state *State, restorer *Restorer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{state: state, restorer: restorer, now: time.Now, logger: logger}
}

// Restart restarts the managed container and stamps the restart time once it returns.
// The cooldown is not enforced here; it only shapes what the dashboard offers.
func (c *Controller) Restart(ctx context.Context) error {
	c.state.actionMu.Lock()
	defer c.state.actionMu.Unlock()

	snap := c.state.Snapshot()
	if err := snap.Containers.Restart(ctx, snap.Settings.ContainerName); err != nil {
		c.logger.Error("failed restarting container", "container", snap.Settings.ContainerName, "error", err)
		return err
	}

	c.state.StampRestart(c.now())
	c.logger.Info("container restarted", "container", snap.Settings.ContainerName)
	return nil
}

// RestoreBackup applies the named backup and restarts the container.
// The restart time is stamped only if both steps succeed.
func (c *Controller) RestoreBackup(ctx context.Context, name string) error {
	c.state.actionMu.Lock()
	defer c.state.actionMu.Unlock()

	snap := c.state.Snapshot()
	if err := c.restorer.Restore(ctx, snap.Settings, name); err != nil {
		c.logger.Error("failed restoring backup", "backup", name, "error", err)
		return err
	}

	c.state.StampRestart(c.now())
	c.logger.Info("backup restored", "backup", name, "container", snap.Settings.ContainerName)
	return nil
}

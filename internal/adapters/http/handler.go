package http

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/melih/valman/internal/core/domain"
	"github.com/melih/valman/internal/core/ports"
	"github.com/melih/valman/internal/core/services"
)

type DashboardHandler struct {
	state     *services.State
	dashboard *services.DashboardService
	control   *services.Controller
	catalog   ports.BackupCatalog
	metrics   *Metrics
	logger    *slog.Logger
}

func NewDashboardHandler(
	state *services.State,
	dashboard *services.DashboardService,
	control *services.Controller,
	catalog ports.BackupCatalog,
	metrics *Metrics,
	logger *slog.Logger,
) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		state:     state,
		dashboard: dashboard,
		control:   control,
		catalog:   catalog,
		metrics:   metrics,
		logger:    logger,
	}
}

// Index renders the aggregated dashboard. Provider outages show up as "n/a";
// only an unreadable backup directory fails the page.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	dash, err := h.dashboard.Build(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed listing backups: " + err.Error())
	}

	tpl := h.state.Snapshot().Template
	c.Type("html", "utf-8")
	return c.SendString(renderDashboard(tpl, dash))
}

func (h *DashboardHandler) Restart(c *fiber.Ctx) error {
	if err := h.control.Restart(c.UserContext()); err != nil {
		h.metrics.recordAction("restart", "failure")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed restarting container: " + err.Error())
	}
	h.metrics.recordAction("restart", "success")
	return c.Redirect("/")
}

// DownloadBackup streams a backup archive with a content type guessed from its extension.
func (h *DashboardHandler) DownloadBackup(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("File not found: invalid name")
	}

	dir := h.state.Snapshot().Settings.BackupsDir
	file, err := h.catalog.Open(dir, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Error("failed opening backup", "backup", name, "error", err)
		}
		return c.Status(fiber.StatusNotFound).SendString("File not found: " + name)
	}

	if ext := filepath.Ext(name); ext != "" {
		c.Type(ext)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	}
	return c.SendStream(file)
}

// RestoreBackup restores the named backup and restarts the container.
// The message tells apart a failed extraction from a restart that failed after the files were replaced.
func (h *DashboardHandler) RestoreBackup(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid backup name")
	}

	if err := h.control.RestoreBackup(c.UserContext(), name); err != nil {
		h.metrics.recordAction("restore", "failure")
		msg := "Failed restoring backup: " + err.Error()
		if errors.Is(err, domain.ErrRestart) {
			msg = "Backup restored, but failed restarting container: " + err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).SendString(msg)
	}
	h.metrics.recordAction("restore", "success")
	return c.Redirect("/")
}

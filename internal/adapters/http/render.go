package http

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/melih/valman/internal/core/domain"
)

const (
	notAvailable = "n/a"
	timeLayout   = "2006-01-02 15:04:05"
)

// Template tokens understood by the page template.
const (
	tokenVersion         = "%version%"
	tokenContainerStatus = "%container_status%"
	tokenContainerUptime = "%container_uptime%"
	tokenStatusImage     = "%container_status_img%"
	tokenServerName      = "%server_name%"
	tokenServerVersion   = "%server_version%"
	tokenPlayerCount     = "%player_count%"
	tokenMaxPlayerCount  = "%max_player_count%"
	tokenLastRestart     = "%last_restart_time%"
	tokenServerLogs      = "%server_logs%"
	tokenBackups         = "%backups%"
	tokenRestartButton   = "%restart_btn%"
	tokenRenderTime      = "%render_time%"
)

const restartButtonHTML = `<a id="restart-btn" href="/restart" role="button" style="height: 64px;">Restart</a>`

// renderDashboard fills the template's tokens from the dashboard model.
// Unavailable provider data is shown as "n/a".
func renderDashboard(tpl string, d domain.Dashboard) string {
	var (
		containerStatus = notAvailable
		containerUptime = notAvailable
		serverLogs      = notAvailable
		serverName      = notAvailable
		serverVersion   = notAvailable
		playerCount     = notAvailable
		maxPlayerCount  = notAvailable
		lastRestart     = notAvailable
	)
	if d.Container.OK() {
		containerStatus = html.EscapeString(d.Container.Snapshot.State)
		containerUptime = html.EscapeString(d.Container.Snapshot.Uptime)
		serverLogs = html.EscapeString(d.Container.Snapshot.Logs)
	}
	if d.Game.OK() {
		serverName = html.EscapeString(orNotAvailable(d.Game.Snapshot.Name))
		serverVersion = html.EscapeString(orNotAvailable(d.Game.Snapshot.Version))
		playerCount = strconv.Itoa(d.Game.Snapshot.Players)
		maxPlayerCount = strconv.Itoa(d.Game.Snapshot.MaxPlayers)
	}
	if d.LastRestart != nil {
		lastRestart = d.LastRestart.Local().Format(timeLayout)
	}

	restartButton := restartButtonHTML
	if !d.RestartAllowed {
		restartButton = fmt.Sprintf(
			`<small style="line-height: 64px;">Last restart was less than %d seconds ago, please wait...</small>`,
			int(d.RestartCooldown/time.Second),
		)
	}

	r := strings.NewReplacer(
		tokenVersion, html.EscapeString(d.Version),
		tokenContainerStatus, containerStatus,
		tokenContainerUptime, containerUptime,
		tokenStatusImage, d.Container.StatusIcon(),
		tokenServerName, serverName,
		tokenServerVersion, serverVersion,
		tokenPlayerCount, playerCount,
		tokenMaxPlayerCount, maxPlayerCount,
		tokenLastRestart, lastRestart,
		tokenServerLogs, serverLogs,
		tokenBackups, renderBackups(d.Backups),
		tokenRestartButton, restartButton,
		tokenRenderTime, strconv.FormatInt(d.RenderDuration.Milliseconds(), 10),
	)
	return r.Replace(tpl)
}

func renderBackups(entries []domain.BackupEntry) string {
	var b strings.Builder
	for _, e := range entries {
		name := html.EscapeString(e.Name)
		href := html.EscapeString(url.PathEscape(e.Name))
		fmt.Fprintf(&b,
			`<tr><td><a href="/backups/%s">%s</a></td><td>%s</td><td>%s</td><td style="text-align: end;"><a href="/backups/restore/%s" class="restore-btn" role="button" style="padding: 10px; width: 100%%;">Restore</a></td></tr>`,
			href, name, e.CreatedAt.Local().Format(timeLayout), e.HumanSize(), href,
		)
	}
	return b.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

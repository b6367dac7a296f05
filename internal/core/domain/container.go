package domain

import "strings"

// ContainerSnapshot is a point-in-time read of the managed container.
type ContainerSnapshot struct {
	ID     string `json:"id"`
	State  string `json:"state"`  // running, exited, etc.
	Uptime string `json:"uptime"` // runtime status line, e.g. "Up 2 hours"
	Logs   string `json:"logs"`
}

// Running reports whether the runtime considers the container running.
func (c ContainerSnapshot) Running() bool {
	return strings.EqualFold(c.State, "running")
}

// ContainerResult carries either a snapshot or the reason it is unavailable.
type ContainerResult struct {
	Snapshot ContainerSnapshot
	Err      error
}

// OK reports whether the snapshot is usable.
func (r ContainerResult) OK() bool { return r.Err == nil }

// StatusIcon names the status image shown next to the container state.
func (r ContainerResult) StatusIcon() string {
	if r.OK() && r.Snapshot.Running() {
		return "ok"
	}
	return "cross"
}

// Package web bundles the dashboard's static assets into the binary.
package web

import "embed"

//go:embed static
var Static embed.FS

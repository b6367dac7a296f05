//go:build !linux

package backup

import (
	"errors"
	"io/fs"
	"time"
)

func birthTime(path string, _ fs.FileInfo) (time.Time, error) {
	return time.Time{}, errors.New("creation time is not supported on this platform")
}

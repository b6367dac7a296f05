//go:build linux

package backup

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

var errNoBirthTime = errors.New("filesystem does not report creation time")

func birthTime(path string, _ fs.FileInfo) (time.Time, error) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, err
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, errNoBirthTime
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
}

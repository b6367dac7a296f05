package services

import "time"

// IsRestartAllowed reports whether the restart control should be offered.
// It is true when there was no restart yet, or when the last one is more
// than cooldown away from now in either direction.
func IsRestartAllowed(lastRestart *time.Time, cooldown time.Duration, now time.Time) bool {
	if lastRestart == nil {
		return true
	}
	elapsed := now.Sub(*lastRestart)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return elapsed > cooldown
}

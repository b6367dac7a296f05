package domain

import "strings"

// Credentials is the single username/password pair allowed to use the panel.
type Credentials struct {
	Username string
	Password string
}

// Match compares both fields case-insensitively.
func (c Credentials) Match(username, password string) bool {
	return strings.EqualFold(username, c.Username) && strings.EqualFold(password, c.Password)
}

package main

import "testing"

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name                     string
		version, commit, builtAt string
		want                     string
	}{
		{"with build time", "1.2.0", "abc123", "2024-06-01T18:30:00Z", "1.2.0-abc123 (built 2024-06-01T18:30:00Z)"},
		{"without build time", "dev", "unknown", "", "dev-unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildVersion(tt.version, tt.commit, tt.builtAt); got != tt.want {
				t.Fatalf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

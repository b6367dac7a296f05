package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigPath overrides where the config file is read from.
	EnvConfigPath     = "VALMAN_CONFIG"
	defaultConfigPath = "config.toml"
)

// Config is the on-disk configuration. Keys mirror config.toml.
type Config struct {
	ServerAddress          string `toml:"server_address"`
	DockerSocketPath       string `toml:"docker_socket_path"`
	ContainerName          string `toml:"container_name"`
	TemplatePath           string `toml:"template_path"`
	GameServerAddress      string `toml:"valheim_server_address"`
	BackupsPath            string `toml:"valheim_backups_path"`
	BackupsDestinationPath string `toml:"valheim_backups_destination_path"`
	RestartDelaySeconds    uint32 `toml:"valheim_server_restart_delay_seconds"`
	LogLinesCount          uint32 `toml:"valheim_server_last_log_lines_count"`
	GameQueryTimeoutMS     uint32 `toml:"game_query_timeout_ms"`
	Username               string `toml:"username"`
	Password               string `toml:"password"`
	LogLevel               string `toml:"log_level"`
}

// Defaults returns a Config with every optional key filled in.
func Defaults() Config {
	return Config{
		ServerAddress:       "0.0.0.0:9999",
		DockerSocketPath:    "/var/run/docker.sock",
		TemplatePath:        "templates/main.html",
		GameServerAddress:   "127.0.0.1:2457",
		RestartDelaySeconds: 60,
		LogLinesCount:       100,
		GameQueryTimeoutMS:  3000,
		LogLevel:            "info",
	}
}

// Path returns the config file location, honoring VALMAN_CONFIG.
func Path() string {
	return GetString(EnvConfigPath, defaultConfigPath)
}

// GetString retrieves an environment variable or returns a fallback when unset.
func GetString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Load reads the TOML file at path on top of Defaults. The file must exist.
func Load(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the keys that have no default.
func (c Config) Validate() error {
	var errs []error
	required := []struct {
		key, value string
	}{
		{"container_name", c.ContainerName},
		{"valheim_backups_path", c.BackupsPath},
		{"valheim_backups_destination_path", c.BackupsDestinationPath},
		{"username", c.Username},
		{"password", c.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}
	return errors.Join(errs...)
}

// RestartCooldown is the advisory delay between restarts.
func (c Config) RestartCooldown() time.Duration {
	return time.Duration(c.RestartDelaySeconds) * time.Second
}

// GameQueryTimeout bounds a single A2S request.
func (c Config) GameQueryTimeout() time.Duration {
	return time.Duration(c.GameQueryTimeoutMS) * time.Millisecond
}

package config

import (
	"os"
	"strings"
)

// envOverrides maps environment variables to the settings they replace, so
// deployments can move the SSH endpoint or log level without a config file.
var envOverrides = []struct {
	key   string
	field func(c *Config) *string
}{
	{"SSH_HOST", func(c *Config) *string { return &c.SSH.Host }},
	{"SSH_PORT", func(c *Config) *string { return &c.SSH.Port }},
	{"SSH_HOST_KEY", func(c *Config) *string { return &c.SSH.HostKeyPath }},
	{"ASTEROIDSX_LOG_LEVEL", func(c *Config) *string { return &c.Log.Level }},
	{"ASTEROIDSX_LOG_FILE", func(c *Config) *string { return &c.Log.File }},
	{"ASTEROIDSX_HISTORY", func(c *Config) *string { return &c.Stats.HistoryFile }},
}

// GetEnv returns the trimmed value of the environment variable key, or
// fallback when it is unset or blank.
func GetEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (c *Config) applyEnv() {
	for _, o := range envOverrides {
		f := o.field(c)
		*f = GetEnv(o.key, *f)
	}
}

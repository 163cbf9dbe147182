package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/asteroidsx/internal/settings"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything the front ends need to build a session.
type Config struct {
	Screen   ScreenConfig    `yaml:"screen"`
	Settings settings.Values `yaml:"settings"`
	Audio    AudioConfig     `yaml:"audio"`
	Stats    StatsConfig     `yaml:"stats"`
	Log      LogConfig       `yaml:"log"`
	SSH      SSHConfig       `yaml:"ssh"`
	Snapshot SnapshotConfig  `yaml:"snapshot"`
}

// ScreenConfig is the logical play area and frame rate.
type ScreenConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
}

// AudioConfig controls the speaker.
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
}

// StatsConfig locates the persisted progress. Empty paths disable persistence.
type StatsConfig struct {
	HistoryFile string `yaml:"history_file"`
	ShipFile    string `yaml:"ship_file"`
}

// LogConfig selects the log level and an optional log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SSHConfig is the SSH server address and host key.
type SSHConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// SnapshotConfig drives the headless PNG renderer.
type SnapshotConfig struct {
	Frames int    `yaml:"frames"`
	Every  int    `yaml:"every"` // simulation steps between frames
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	OutDir string `yaml:"out_dir"`
	Seed   int64  `yaml:"seed"`
}

// Path returns flagValue, or the ASTEROIDSX_CONFIG environment variable
// when the flag is empty.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return GetEnv("ASTEROIDSX_CONFIG", "")
}

// Load reads the embedded defaults, merges the file at path over them (if
// path is not empty), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %vx%v", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS < 1 || c.Screen.TargetFPS > 240:
		return fmt.Errorf("%w: target_fps %d outside [1, 240]", ErrInvalid, c.Screen.TargetFPS)
	case c.Audio.SampleRate < 8000:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	case c.Snapshot.Frames < 1 || c.Snapshot.Every < 1:
		return fmt.Errorf("%w: snapshot needs frames and every >= 1", ErrInvalid)
	case c.Snapshot.Width < 1 || c.Snapshot.Height < 1:
		return fmt.Errorf("%w: snapshot size %dx%d", ErrInvalid, c.Snapshot.Width, c.Snapshot.Height)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	if err := settings.Validate(c.Settings); err != nil {
		return fmt.Errorf("%w: settings: %v", ErrInvalid, err)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// NewLogger builds the process logger. When the config names a log file,
// output is appended there and the returned closer closes it; otherwise
// logs go to fallback.
func (c *Config) NewLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	out := fallback
	var closer io.Closer = nopCloser{}
	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

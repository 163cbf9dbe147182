package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screen.Width != 960 || cfg.Screen.Height != 640 || cfg.Screen.TargetFPS != 60 {
		t.Errorf("screen = %+v", cfg.Screen)
	}
	if cfg.Settings.Difficulty != "normal" || cfg.Settings.ColorTheme != "psychedelic" {
		t.Errorf("settings = %+v", cfg.Settings)
	}
	if cfg.Audio.SampleRate != 48000 || !cfg.Audio.Enabled {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Snapshot.Frames < 1 {
		t.Errorf("snapshot = %+v", cfg.Snapshot)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "screen:\n  width: 640\nsettings:\n  difficulty: hard\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("ASTEROIDSX_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screen.Width != 640 || cfg.Screen.Height != 640 {
		t.Errorf("screen = %+v, want width from file and height from defaults", cfg.Screen)
	}
	if cfg.Settings.Difficulty != "hard" || cfg.Settings.ParticleCount != "high" {
		t.Errorf("settings = %+v", cfg.Settings)
	}
	if cfg.SSH.Port != "2323" {
		t.Errorf("ssh port = %q, want env override", cfg.SSH.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want env override", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Screen.Width = 0 }},
		{"fps too high", func(c *Config) { c.Screen.TargetFPS = 1000 }},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 100 }},
		{"snapshot frames", func(c *Config) { c.Snapshot.Frames = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"difficulty", func(c *Config) { c.Settings.Difficulty = "nightmare" }},
		{"volume", func(c *Config) { c.Settings.MasterVolume = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestPath(t *testing.T) {
	t.Setenv("ASTEROIDSX_CONFIG", "/etc/asteroidsx.yaml")
	if got := Path("local.yaml"); got != "local.yaml" {
		t.Errorf("flag ignored: %q", got)
	}
	if got := Path(""); got != "/etc/asteroidsx.yaml" {
		t.Errorf("env ignored: %q", got)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "game.log")
	cfg.Log.Level = "debug"

	logger, closer, err := cfg.NewLogger(io.Discard, "test")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hello", "n", 1)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v", logger.GetLevel())
	}
	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("log file empty")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ASTEROIDSX_TEST_SET", " value ")
	t.Setenv("ASTEROIDSX_TEST_BLANK", "  ")

	tests := []struct {
		key, want string
	}{
		{"ASTEROIDSX_TEST_SET", "value"},
		{"ASTEROIDSX_TEST_BLANK", "fallback"},
		{"ASTEROIDSX_TEST_UNSET", "fallback"},
	}
	for _, tt := range tests {
		if got := GetEnv(tt.key, "fallback"); got != tt.want {
			t.Errorf("GetEnv(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// Package app assembles a playable game from configuration: settings,
// persisted stats and ship progress, and audio.
package app

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidsx/internal/audio"
	"github.com/tomz197/asteroidsx/internal/config"
	"github.com/tomz197/asteroidsx/internal/game"
	"github.com/tomz197/asteroidsx/internal/settings"
	"github.com/tomz197/asteroidsx/internal/ship"
	"github.com/tomz197/asteroidsx/internal/stats"
)

var (
	_ game.UnlockEvaluator = (*ship.Customizer)(nil)
	_ game.StyleProvider   = (*ship.Customizer)(nil)
)

// Options tunes New for a front end.
type Options struct {
	// Audio opens the speaker when the config enables it.
	Audio bool
	// PersistProgress seeds lifetime stats from the history and loads and
	// saves the ship file. Shared servers leave it off.
	PersistProgress bool
	// History is shared between sessions; nil opens the configured file.
	History *stats.History
	Rand    *rand.Rand
}

// App is one assembled session and the collaborators wired into it.
type App struct {
	Game     *game.Game
	Settings *settings.Settings
	Stats    *stats.Recorder
	Ships    *ship.Customizer
	History  *stats.History // nil when no history file is configured

	audio    *audio.Manager
	shipFile string
	logger   *log.Logger
}

// New builds a game from cfg. Audio failures only disable sound.
func New(cfg *config.Config, logger *log.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		Settings: settings.New(cfg.Settings),
		Ships:    ship.NewCustomizer(logger),
		logger:   logger,
	}

	history := opts.History
	if history == nil && cfg.Stats.HistoryFile != "" {
		history = stats.NewHistory(cfg.Stats.HistoryFile)
	}
	a.History = history

	var lifetime stats.Lifetime
	if opts.PersistProgress {
		if history != nil {
			entries, err := history.Load()
			if err != nil {
				return nil, fmt.Errorf("loading history: %w", err)
			}
			lifetime = stats.LifetimeFrom(entries)
		}
		if cfg.Stats.ShipFile != "" {
			if err := a.Ships.Load(cfg.Stats.ShipFile); err != nil {
				return nil, fmt.Errorf("loading ships: %w", err)
			}
			a.shipFile = cfg.Stats.ShipFile
		}
	}
	a.Stats = stats.NewRecorder(lifetime, history, logger)

	var sound game.SoundPlayer = audio.Nop{}
	if opts.Audio && cfg.Audio.Enabled {
		m, err := a.openAudio(cfg.Audio)
		if err != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		} else {
			sound, a.audio = m, m
		}
	}

	a.Game = game.New(game.Options{
		Sound:    sound,
		Settings: a.Settings,
		Stats:    a.Stats,
		Unlocks:  a.Ships,
		Styles:   a.Ships,
		Logger:   logger,
		Rand:     opts.Rand,
		Width:    cfg.Screen.Width,
		Height:   cfg.Screen.Height,
	})
	return a, nil
}

// openAudio starts the speaker and keeps its volumes in sync with the settings.
func (a *App) openAudio(cfg config.AudioConfig) (*audio.Manager, error) {
	v := a.Settings.Values()
	m := audio.NewManager(audio.Config{
		SampleRate:    cfg.SampleRate,
		MasterVolume:  v.MasterVolume,
		EffectsVolume: v.SFXVolume,
		MusicVolume:   v.MusicVolume,
	}, a.logger)
	if err := m.Init(); err != nil {
		return nil, err
	}
	a.Settings.OnChange(func(key, _ string) {
		v := a.Settings.Values()
		switch key {
		case "masterVolume":
			m.SetMasterVolume(v.MasterVolume)
		case "sfxVolume":
			m.SetEffectsVolume(v.SFXVolume)
		case "musicVolume":
			m.SetMusicVolume(v.MusicVolume)
		}
	})
	return m, nil
}

// Close stops the game, releases the speaker and saves ship progress.
func (a *App) Close() error {
	a.Game.Stop()
	if a.audio != nil {
		a.audio.Close()
	}
	if a.shipFile != "" {
		if err := a.Ships.Save(a.shipFile); err != nil {
			return fmt.Errorf("saving ships: %w", err)
		}
	}
	return nil
}

// Package settings holds the player's validated game options.
package settings

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKey is returned for a key that is not in the option table.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidValue is returned for a value of the wrong type or out of range.
	ErrInvalidValue = errors.New("invalid setting value")
)

// Values is the complete set of options.
type Values struct {
	MasterVolume float64 `yaml:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`

	ParticleCount string `yaml:"particle_count"`
	ScreenShake   bool   `yaml:"screen_shake"`
	FlashEffects  bool   `yaml:"flash_effects"`
	TrailEffects  bool   `yaml:"trail_effects"`
	GlowEffects   bool   `yaml:"glow_effects"`

	Difficulty string `yaml:"difficulty"`
	Autofire   bool   `yaml:"autofire"`
	ShowFPS    bool   `yaml:"show_fps"`

	RotationSensitivity float64 `yaml:"rotation_sensitivity"`
	ThrustDeadzone      float64 `yaml:"thrust_deadzone"`

	ColorTheme          string  `yaml:"color_theme"`
	BackgroundIntensity float64 `yaml:"background_intensity"`

	ReducedMotion  bool   `yaml:"reduced_motion"`
	HighContrast   bool   `yaml:"high_contrast"`
	ColorBlindMode string `yaml:"color_blind_mode"`
}

// Defaults returns the stock options.
func Defaults() Values {
	return Values{
		MasterVolume:        0.7,
		MusicVolume:         0.5,
		SFXVolume:           0.8,
		ParticleCount:       "high",
		ScreenShake:         true,
		FlashEffects:        true,
		TrailEffects:        true,
		GlowEffects:         true,
		Difficulty:          "normal",
		RotationSensitivity: 1,
		ThrustDeadzone:      0.1,
		ColorTheme:          "psychedelic",
		BackgroundIntensity: 1,
		ColorBlindMode:      "none",
	}
}

var (
	particleMultipliers = map[string]float64{
		"low":    0.25,
		"medium": 0.5,
		"high":   1,
		"ultra":  2,
	}
	difficultyMultipliers = map[string]float64{
		"easy":   0.7,
		"normal": 1,
		"hard":   1.3,
		"insane": 1.6,
	}
	particleLevels  = []string{"low", "medium", "high", "ultra"}
	difficulties    = []string{"easy", "normal", "hard", "insane"}
	colorBlindModes = []string{"none", "protanopia", "deuteranopia", "tritanopia"}
)

type kind int

const (
	kindBool kind = iota
	kindRange
	kindChoice
)

// option describes one key: how to read it, validate it and store it.
type option struct {
	key      string
	kind     kind
	min, max float64
	choices  []string
	boolean  func(*Values) *bool
	number   func(*Values) *float64
	text     func(*Values) *string
}

// options is the key table in display order.
var options = []option{
	{key: "masterVolume", kind: kindRange, min: 0, max: 1, number: func(v *Values) *float64 { return &v.MasterVolume }},
	{key: "musicVolume", kind: kindRange, min: 0, max: 1, number: func(v *Values) *float64 { return &v.MusicVolume }},
	{key: "sfxVolume", kind: kindRange, min: 0, max: 1, number: func(v *Values) *float64 { return &v.SFXVolume }},
	{key: "particleCount", kind: kindChoice, choices: particleLevels, text: func(v *Values) *string { return &v.ParticleCount }},
	{key: "screenShake", kind: kindBool, boolean: func(v *Values) *bool { return &v.ScreenShake }},
	{key: "flashEffects", kind: kindBool, boolean: func(v *Values) *bool { return &v.FlashEffects }},
	{key: "trailEffects", kind: kindBool, boolean: func(v *Values) *bool { return &v.TrailEffects }},
	{key: "glowEffects", kind: kindBool, boolean: func(v *Values) *bool { return &v.GlowEffects }},
	{key: "difficulty", kind: kindChoice, choices: difficulties, text: func(v *Values) *string { return &v.Difficulty }},
	{key: "autofire", kind: kindBool, boolean: func(v *Values) *bool { return &v.Autofire }},
	{key: "showFPS", kind: kindBool, boolean: func(v *Values) *bool { return &v.ShowFPS }},
	{key: "rotationSensitivity", kind: kindRange, min: 0.5, max: 2, number: func(v *Values) *float64 { return &v.RotationSensitivity }},
	{key: "thrustDeadzone", kind: kindRange, min: 0, max: 0.5, number: func(v *Values) *float64 { return &v.ThrustDeadzone }},
	{key: "colorTheme", kind: kindChoice, choices: ThemeNames(), text: func(v *Values) *string { return &v.ColorTheme }},
	{key: "backgroundIntensity", kind: kindRange, min: 0.1, max: 2, number: func(v *Values) *float64 { return &v.BackgroundIntensity }},
	{key: "reducedMotion", kind: kindBool, boolean: func(v *Values) *bool { return &v.ReducedMotion }},
	{key: "highContrast", kind: kindBool, boolean: func(v *Values) *bool { return &v.HighContrast }},
	{key: "colorBlindMode", kind: kindChoice, choices: colorBlindModes, text: func(v *Values) *string { return &v.ColorBlindMode }},
}

func lookup(key string) (option, bool) {
	for _, o := range options {
		if o.key == key {
			return o, true
		}
	}
	return option{}, false
}

// Keys returns every known key in display order.
func Keys() []string {
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = o.key
	}
	return keys
}

// Validate checks every field of v and reports the first invalid one.
func Validate(v Values) error {
	for _, o := range options {
		if err := o.validate(&v); err != nil {
			return fmt.Errorf("%s: %w", o.key, err)
		}
	}
	return nil
}

// Settings is a validated, observable set of options. It is not safe for
// concurrent use.
type Settings struct {
	values    Values
	listeners []func(key, value string)
}

// New returns settings initialized from v. Invalid fields fall back to defaults.
func New(v Values) *Settings {
	s := &Settings{values: Defaults()}
	for _, o := range options {
		if err := o.validate(&v); err == nil {
			o.copy(&s.values, &v)
		}
	}
	return s
}

// Values returns a copy of every option.
func (s *Settings) Values() Values { return s.values }

// OnChange registers fn to be called after every successful Set, Reset or Import.
func (s *Settings) OnChange(fn func(key, value string)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Settings) notify(key string) {
	value, _ := s.Get(key)
	for _, fn := range s.listeners {
		fn(key, value)
	}
}

// Get returns the value of key formatted as text.
func (s *Settings) Get(key string) (string, error) {
	o, ok := lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return o.format(&s.values), nil
}

// Set parses value and stores it under key. On error nothing changes.
func (s *Settings) Set(key, value string) error {
	o, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	next := s.values
	if err := o.parse(&next, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.values = next
	s.notify(key)
	return nil
}

// Reset restores the defaults.
func (s *Settings) Reset() {
	s.values = Defaults()
	for _, o := range options {
		s.notify(o.key)
	}
}

// Export encodes the options as YAML.
func (s *Settings) Export() ([]byte, error) {
	return yaml.Marshal(s.values)
}

// Import replaces the options present in data. Keys missing from data keep
// their current value and unknown keys are ignored. If any value is invalid
// nothing changes.
func (s *Settings) Import(data []byte) error {
	next := s.values
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("import settings: %w", err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("import settings: %w", err)
	}
	s.values = next
	for _, o := range options {
		s.notify(o.key)
	}
	return nil
}

// ParticleCountMultiplier scales particle spawn counts.
func (s *Settings) ParticleCountMultiplier() float64 {
	if m, ok := particleMultipliers[s.values.ParticleCount]; ok {
		return m
	}
	return 1
}

// DifficultyMultiplier scales the number of asteroids per level.
func (s *Settings) DifficultyMultiplier() float64 {
	if m, ok := difficultyMultipliers[s.values.Difficulty]; ok {
		return m
	}
	return 1
}

// Theme returns the selected color theme.
func (s *Settings) Theme() Theme { return ThemeByName(s.values.ColorTheme) }

// ScreenShake reports whether camera shake is enabled.
func (s *Settings) ScreenShake() bool { return s.values.ScreenShake && !s.values.ReducedMotion }

// FlashEffects reports whether full-screen flashes are enabled.
func (s *Settings) FlashEffects() bool { return s.values.FlashEffects && !s.values.ReducedMotion }

// GlowEffects reports whether soft glows are drawn.
func (s *Settings) GlowEffects() bool { return s.values.GlowEffects }

// TrailEffects reports whether entity trails are drawn.
func (s *Settings) TrailEffects() bool { return s.values.TrailEffects }

func (o option) parse(v *Values, text string) error {
	switch o.kind {
	case kindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, text)
		}
		*o.boolean(v) = b
	case kindRange:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, text)
		}
		*o.number(v) = f
	case kindChoice:
		*o.text(v) = text
	}
	return o.validate(v)
}

func (o option) validate(v *Values) error {
	switch o.kind {
	case kindRange:
		f := *o.number(v)
		if f < o.min || f > o.max {
			return fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidValue, f, o.min, o.max)
		}
	case kindChoice:
		if t := *o.text(v); !slices.Contains(o.choices, t) {
			return fmt.Errorf("%w: %q not one of %v", ErrInvalidValue, t, o.choices)
		}
	}
	return nil
}

func (o option) format(v *Values) string {
	switch o.kind {
	case kindBool:
		return strconv.FormatBool(*o.boolean(v))
	case kindRange:
		return strconv.FormatFloat(*o.number(v), 'g', -1, 64)
	default:
		return *o.text(v)
	}
}

func (o option) copy(dst, src *Values) {
	switch o.kind {
	case kindBool:
		*o.boolean(dst) = *o.boolean(src)
	case kindRange:
		*o.number(dst) = *o.number(src)
	case kindChoice:
		*o.text(dst) = *o.text(src)
	}
}

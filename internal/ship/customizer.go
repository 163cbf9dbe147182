package ship

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/physics"
	"github.com/tomz197/asteroidsx/internal/stats"
)

var (
	// ErrUnknownStyle is returned for a style key that does not exist.
	ErrUnknownStyle = errors.New("unknown ship style")
	// ErrStyleLocked is returned when selecting a style that is not unlocked yet.
	ErrStyleLocked = errors.New("ship style locked")
	// ErrUnknownOption is returned for an unknown customization option.
	ErrUnknownOption = errors.New("unknown customization option")
)

// Colors are the custom ship colors as #rrggbb.
type Colors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Trail     string `yaml:"trail"`
}

// Stats are cosmetic handling modifiers, each clamped to 0.8..1.2.
type Stats struct {
	Speed    float64 `yaml:"speed"`
	Agility  float64 `yaml:"agility"`
	FireRate float64 `yaml:"fire_rate"`
	Shield   float64 `yaml:"shield"`
}

// TrailOptions tune the ship trail.
type TrailOptions struct {
	Enabled   bool    `yaml:"enabled"`
	Length    float64 `yaml:"length"`    // 0.5..2
	Intensity float64 `yaml:"intensity"` // 0.5..1.5
	Particles bool    `yaml:"particles"`
}

// Customization applies to every style.
type Customization struct {
	Colors Colors       `yaml:"colors"`
	Stats  Stats        `yaml:"stats"`
	Trail  TrailOptions `yaml:"trail"`
}

// DefaultCustomization returns the stock customization.
func DefaultCustomization() Customization {
	return Customization{
		Colors: Colors{Primary: "#00ffff", Secondary: "#ffffff", Trail: "#00ffff"},
		Stats:  Stats{Speed: 1, Agility: 1, FireRate: 1, Shield: 1},
		Trail:  TrailOptions{Enabled: true, Length: 1, Intensity: 1, Particles: true},
	}
}

// Customizer tracks the selected style, unlocked styles and customization.
// It is not safe for concurrent use.
type Customizer struct {
	styles   map[string]object.ShipStyle
	order    []string
	custom   map[string]bool
	current  string
	unlocked map[string]bool
	options  Customization
	nextID   int
	logger   *log.Logger
}

// NewCustomizer returns a customizer with only the classic style unlocked.
func NewCustomizer(logger *log.Logger) *Customizer {
	if logger == nil {
		logger = log.Default()
	}
	c := &Customizer{
		styles:   make(map[string]object.ShipStyle),
		custom:   make(map[string]bool),
		unlocked: map[string]bool{"classic": true},
		current:  "classic",
		options:  DefaultCustomization(),
		logger:   logger,
	}
	for _, s := range builtinStyles() {
		c.styles[s.Key] = s
		c.order = append(c.order, s.Key)
	}
	return c
}

// CurrentKey returns the selected style key.
func (c *Customizer) CurrentKey() string { return c.current }

// CurrentStyle returns a copy of the selected style.
func (c *Customizer) CurrentStyle() object.ShipStyle {
	return c.styles[c.current].Clone()
}

// CustomizedStyle returns the selected style recolored with the custom colors.
func (c *Customizer) CustomizedStyle() object.ShipStyle {
	s := c.CurrentStyle()
	if col, err := draw.Hex(c.options.Colors.Primary); err == nil {
		s.Color = col
	}
	if col, err := draw.Hex(c.options.Colors.Secondary); err == nil {
		s.GlowColor = col
	}
	return s
}

// Style returns the style with the given key.
func (c *Customizer) Style(key string) (object.ShipStyle, error) {
	s, ok := c.styles[key]
	if !ok {
		return object.ShipStyle{}, fmt.Errorf("%w: %q", ErrUnknownStyle, key)
	}
	return s.Clone(), nil
}

// SetStyle selects an unlocked style.
func (c *Customizer) SetStyle(key string) error {
	if _, ok := c.styles[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, key)
	}
	if !c.unlocked[key] {
		return fmt.Errorf("%w: %q", ErrStyleLocked, key)
	}
	c.current = key
	return nil
}

// IsUnlocked reports whether key can be selected.
func (c *Customizer) IsUnlocked(key string) bool { return c.unlocked[key] }

// Unlock makes key selectable.
func (c *Customizer) Unlock(key string) error {
	s, ok := c.styles[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, key)
	}
	if !c.unlocked[key] {
		c.unlocked[key] = true
		c.logger.Info("ship style unlocked", "style", s.Name)
	}
	return nil
}

// CheckUnlocks unlocks every style whose requirement snap satisfies and
// returns the newly unlocked keys in gallery order.
func (c *Customizer) CheckUnlocks(snap stats.Snapshot) []string {
	var fresh []string
	for _, key := range c.order {
		req, ok := requirements[key]
		if !ok || c.unlocked[key] || !req.Met(snap) {
			continue
		}
		if err := c.Unlock(key); err != nil {
			c.logger.Debug("unlock skipped", "style", key, "err", err)
			continue
		}
		fresh = append(fresh, key)
	}
	return fresh
}

// Met reports whether snap satisfies the requirement.
func (r Requirement) Met(snap stats.Snapshot) bool {
	switch r.Kind {
	case RequireScore:
		return snap.HighScore() >= r.Value
	case RequireLevel:
		return snap.MaxLevel() >= r.Value
	case RequireAsteroids:
		return snap.TotalAsteroids() >= r.Value
	}
	return false
}

// Entry is a gallery row.
type Entry struct {
	Style       object.ShipStyle
	Unlocked    bool
	Selected    bool
	Custom      bool
	Requirement *Requirement
}

// All lists every style in gallery order.
func (c *Customizer) All() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		e := Entry{
			Style:    c.styles[key].Clone(),
			Unlocked: c.unlocked[key],
			Selected: key == c.current,
			Custom:   c.custom[key],
		}
		if req, ok := requirements[key]; ok {
			e.Requirement = &req
		}
		out = append(out, e)
	}
	return out
}

// Customization returns the current customization.
func (c *Customizer) Customization() Customization { return c.options }

// SetColor sets one of the primary, secondary or trail colors.
func (c *Customizer) SetColor(which, hex string) error {
	if _, err := draw.Hex(hex); err != nil {
		return fmt.Errorf("%w: %s color: %v", ErrUnknownOption, which, err)
	}
	switch which {
	case "primary":
		c.options.Colors.Primary = hex
	case "secondary":
		c.options.Colors.Secondary = hex
	case "trail":
		c.options.Colors.Trail = hex
	default:
		return fmt.Errorf("%w: color %q", ErrUnknownOption, which)
	}
	return nil
}

// SetStat sets a handling modifier, clamped to 0.8..1.2.
func (c *Customizer) SetStat(which string, v float64) error {
	v = clamp(v, 0.8, 1.2)
	switch which {
	case "speed":
		c.options.Stats.Speed = v
	case "agility":
		c.options.Stats.Agility = v
	case "fireRate":
		c.options.Stats.FireRate = v
	case "shield":
		c.options.Stats.Shield = v
	default:
		return fmt.Errorf("%w: stat %q", ErrUnknownOption, which)
	}
	return nil
}

// SetTrail sets a trail option. Numeric options are clamped.
func (c *Customizer) SetTrail(which string, v float64) error {
	switch which {
	case "enabled":
		c.options.Trail.Enabled = v != 0
	case "particles":
		c.options.Trail.Particles = v != 0
	case "length":
		c.options.Trail.Length = clamp(v, 0.5, 2)
	case "intensity":
		c.options.Trail.Intensity = clamp(v, 0.5, 1.5)
	default:
		return fmt.Errorf("%w: trail %q", ErrUnknownOption, which)
	}
	return nil
}

// ResetCustomization restores the default colors, stats and trail.
func (c *Customizer) ResetCustomization() {
	c.options = DefaultCustomization()
}

// CreateCustomStyle registers and unlocks a user-defined style and returns
// its key. Points use the nose-right orientation.
func (c *Customizer) CreateCustomStyle(name string, points, thrusters []physics.Vector2, color, glow string) (string, error) {
	if len(points) < 3 {
		return "", fmt.Errorf("%w: custom style needs at least 3 points", ErrUnknownOption)
	}
	if color == "" {
		color = "#ffffff"
	}
	if glow == "" {
		glow = "#ffffff"
	}
	col, err := draw.Hex(color)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	glowCol, err := draw.Hex(glow)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}

	c.nextID++
	key := fmt.Sprintf("custom_%d", c.nextID)
	for c.styles[key].Key != "" {
		c.nextID++
		key = fmt.Sprintf("custom_%d", c.nextID)
	}
	c.styles[key] = object.ShipStyle{
		Key:         key,
		Name:        name,
		Description: "Custom ship design",
		Points:      slices.Clone(points),
		Thrusters:   slices.Clone(thrusters),
		Color:       col,
		GlowColor:   glowCol,
	}
	c.order = append(c.order, key)
	c.custom[key] = true
	_ = c.Unlock(key)
	return key, nil
}

// ExportedStyle is the portable form of a style.
type ExportedStyle struct {
	Name      string       `yaml:"name"`
	Points    [][2]float64 `yaml:"points"`
	Thrusters [][2]float64 `yaml:"thrusters"`
	Color     string       `yaml:"color"`
	GlowColor string       `yaml:"glow_color"`
}

// ExportStyle returns a copy of the style's geometry and colors.
func (c *Customizer) ExportStyle(key string) (ExportedStyle, error) {
	s, ok := c.styles[key]
	if !ok {
		return ExportedStyle{}, fmt.Errorf("%w: %q", ErrUnknownStyle, key)
	}
	return ExportedStyle{
		Name:      s.Name,
		Points:    pairs(s.Points),
		Thrusters: pairs(s.Thrusters),
		Color:     s.Color.Hex(),
		GlowColor: s.GlowColor.Hex(),
	}, nil
}

func pairs(vs []physics.Vector2) [][2]float64 {
	out := make([][2]float64, len(vs))
	for i, v := range vs {
		out[i] = [2]float64{v.X, v.Y}
	}
	return out
}

// progress is the persisted state.
type progress struct {
	Current       string                   `yaml:"current"`
	Unlocked      []string                 `yaml:"unlocked"`
	Customization Customization            `yaml:"customization"`
	Custom        map[string]ExportedStyle `yaml:"custom,omitempty"`
}

// Save writes the selection, unlocks, customization and custom styles as YAML.
func (c *Customizer) Save(path string) error {
	p := progress{Current: c.current, Customization: c.options, Custom: map[string]ExportedStyle{}}
	for _, key := range c.order {
		if c.unlocked[key] {
			p.Unlocked = append(p.Unlocked, key)
		}
		if c.custom[key] {
			p.Custom[key], _ = c.ExportStyle(key)
		}
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding ship progress: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing ship progress: %w", err)
	}
	return nil
}

// Load restores state written by Save. A missing file leaves the defaults.
// Unknown style keys in the file are skipped.
func (c *Customizer) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading ship progress: %w", err)
	}
	p := progress{Customization: DefaultCustomization()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding ship progress: %w", err)
	}

	for key, es := range p.Custom {
		if _, exists := c.styles[key]; exists {
			continue
		}
		s := style(key, es.Name, "Custom ship design", orWhite(es.Color), orWhite(es.GlowColor),
			vectors(es.Points), vectors(es.Thrusters))
		c.styles[key] = s
		c.order = append(c.order, key)
		c.custom[key] = true
	}
	for _, key := range p.Unlocked {
		if _, ok := c.styles[key]; ok {
			c.unlocked[key] = true
		}
	}
	c.options = p.Customization
	if p.Current == "" {
		return nil
	}
	if err := c.SetStyle(p.Current); err != nil {
		c.logger.Warn("saved ship style unavailable", "style", p.Current, "err", err)
	}
	return nil
}

func vectors(ps [][2]float64) []physics.Vector2 {
	out := make([]physics.Vector2, len(ps))
	for i, p := range ps {
		out[i] = physics.Vec(p[0], p[1])
	}
	return out
}

func orWhite(hex string) string {
	if _, err := draw.Hex(hex); err != nil {
		return "#ffffff"
	}
	return hex
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

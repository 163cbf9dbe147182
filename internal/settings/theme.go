package settings

import "github.com/tomz197/asteroidsx/internal/draw"

// Theme is a named color palette.
type Theme struct {
	Name       string
	Primary    draw.Color
	Accent     draw.Color
	Background draw.Color
	Particle   draw.Color
}

var themes = []Theme{
	{"classic", draw.MustHex("#ffffff"), draw.MustHex("#ffff00"), draw.MustHex("#000000"), draw.MustHex("#ff0000")},
	{"psychedelic", draw.MustHex("#ff00ff"), draw.MustHex("#00ffff"), draw.MustHex("#001122"), draw.MustHex("#ffff00")},
	{"neon", draw.MustHex("#00ff00"), draw.MustHex("#ff0080"), draw.MustHex("#000011"), draw.MustHex("#0080ff")},
	{"matrix", draw.MustHex("#00ff00"), draw.MustHex("#008800"), draw.MustHex("#000000"), draw.MustHex("#004400")},
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName returns the named theme, or psychedelic when name is unknown.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[1]
}

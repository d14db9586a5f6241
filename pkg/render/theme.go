package render

import (
	"context"
	"sort"

	"github.com/matzehuels/planbook/pkg/errors"
)

// Theme is the color and type palette of a render pass.
type Theme struct {
	Name       string  `json:"name"`
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
	Muted      string  `json:"muted"`
	Accent     string  `json:"accent"`
	Grid       string  `json:"grid"`
	FontFamily string  `json:"font_family"`
	FontSize   float64 `json:"font_size"`
}

var themes = map[string]Theme{
	"light": {
		Name:       "light",
		Background: "#ffffff",
		Foreground: "#222222",
		Muted:      "#8a8a8a",
		Accent:     "#2f6f9f",
		Grid:       "#c8c8c8",
		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   9,
	},
	"dark": {
		Name:       "dark",
		Background: "#1e1e1e",
		Foreground: "#e6e6e6",
		Muted:      "#9a9a9a",
		Accent:     "#6fb3e0",
		Grid:       "#4a4a4a",
		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   9,
	},
	"sepia": {
		Name:       "sepia",
		Background: "#f7f1e3",
		Foreground: "#3b2f20",
		Muted:      "#8c7a5b",
		Accent:     "#a0522d",
		Grid:       "#d8ccb0",
		FontFamily: "Georgia, serif",
		FontSize:   9,
	},
}

// DefaultTheme returns the light theme.
func DefaultTheme() Theme { return themes["light"] }

// ThemeByName returns a built-in theme. An empty name selects the default.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidInput, "unknown theme %q (available: %v)", name, ThemeNames())
	}
	return t, nil
}

// ThemeNames lists the built-in themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type themeKey struct{}

// WithTheme returns a context carrying t.
func WithTheme(ctx context.Context, t Theme) context.Context {
	return context.WithValue(ctx, themeKey{}, t)
}

// ThemeFrom returns the theme carried by ctx, or [DefaultTheme].
func ThemeFrom(ctx context.Context) Theme {
	if t, ok := ctx.Value(themeKey{}).(Theme); ok {
		return t
	}
	return DefaultTheme()
}

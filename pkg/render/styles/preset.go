package styles

import (
	"fmt"
	"strings"
)

// Preset selects the glass-card constants and optional overlays.
type Preset string

const (
	Basic    Preset = "basic"
	Enhanced Preset = "enhanced"
)

// Presets lists the supported presets.
var Presets = []Preset{Basic, Enhanced}

// ParsePreset converts a case-insensitive name into a Preset.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (must be basic or enhanced)", s)
}

// CardShadow is a box shadow cast below a card. Blur is the CSS blur radius.
type CardShadow struct {
	Blur  float64 `json:"blur"`
	DY    float64 `json:"dy"`
	Color Color   `json:"color"`
}

// Sigma is the Gaussian standard deviation equivalent to Blur.
func (s CardShadow) Sigma() float64 {
	return s.Blur / 2
}

// Highlight is an inner stroke inset from the card edge.
type Highlight struct {
	Color  Color   `json:"color"`
	Width  float64 `json:"width"`
	Inset  float64 `json:"inset"`
	Radius float64 `json:"radius"`
}

// GlassStyle holds the constants for a frosted-glass card.
type GlassStyle struct {
	Fill          Color      `json:"fill"`
	Border        Color      `json:"border"`
	BorderWidth   float64    `json:"border_width"`
	Shadow        CardShadow `json:"shadow"`
	Highlight     *Highlight `json:"highlight,omitempty"`
	RightVignette bool       `json:"right_vignette"`
}

var glass = map[Preset]GlassStyle{
	Basic: {
		Fill:        White.Alpha(0.16),
		Border:      White.Alpha(0.65),
		BorderWidth: 3,
		Shadow:      CardShadow{Blur: 48, DY: 18, Color: Black.Alpha(0.28)},
	},
	Enhanced: {
		Fill:          White.Alpha(0.25),
		Border:        White.Alpha(0.75),
		BorderWidth:   3,
		Shadow:        CardShadow{Blur: 60, DY: 22, Color: Black.Alpha(0.35)},
		Highlight:     &Highlight{Color: White.Alpha(0.4), Width: 2, Inset: 4, Radius: 36},
		RightVignette: true,
	},
}

// Glass returns the card constants for p. Unknown presets use Basic.
func Glass(p Preset) GlassStyle {
	if g, ok := glass[p]; ok {
		return g
	}
	return glass[Basic]
}

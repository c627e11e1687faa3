package common

import (
	"image/color"

	"github.com/mitchelldurbincs/GraphChase/internal/config"
)

// Palette is the set of colors the board renderer draws with
type Palette struct {
	Background color.RGBA
	Edge       color.RGBA
	Vertex     color.RGBA
	Player     color.RGBA
	Enemy      color.RGBA
}

// Default colors, matching the config defaults
var (
	BackgroundColor = color.RGBA{20, 20, 28, 255}
	EdgeColor       = color.RGBA{110, 110, 130, 255}
	VertexColor     = color.RGBA{190, 190, 200, 255}
	PlayerColor     = color.RGBA{50, 100, 200, 255} // Blue
	EnemyColor      = color.RGBA{200, 50, 50, 255}  // Red
	HighlightColor  = color.RGBA{240, 220, 90, 255}
	LabelColor      = color.White
)

// DefaultPalette returns the built-in colors
func DefaultPalette() Palette {
	return Palette{
		Background: BackgroundColor,
		Edge:       EdgeColor,
		Vertex:     VertexColor,
		Player:     PlayerColor,
		Enemy:      EnemyColor,
	}
}

// PaletteFromConfig builds a palette from configured RGB triples
func PaletteFromConfig(c config.ColorsConfig) Palette {
	return Palette{
		Background: RGB(c.Background),
		Edge:       RGB(c.Edge),
		Vertex:     RGB(c.Vertex),
		Player:     RGB(c.Player),
		Enemy:      RGB(c.Enemy),
	}
}

// RGB converts an [r,g,b] triple into an opaque color. Components are clamped
// to 0..255.
func RGB(rgb [3]int) color.RGBA {
	return color.RGBA{
		R: uint8(ClampInt(rgb[0], 0, 255)),
		G: uint8(ClampInt(rgb[1], 0, 255)),
		B: uint8(ClampInt(rgb[2], 0, 255)),
		A: 255,
	}
}

// Fade scales c's alpha by f (0 transparent, 1 unchanged). The color channels
// are scaled too, since ebiten expects premultiplied alpha.
func Fade(c color.RGBA, f float64) color.RGBA {
	f = Clamp(f, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}

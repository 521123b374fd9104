// Package colors derives display colors for line metadata: a darkened
// background and a contrasting text color for a line's hex color.
package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/railmap/pkg/constants"
	"github.com/agentstation/railmap/pkg/errors"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "#RGB". The leading '#' is optional.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, &errors.ValidationError{Field: "color", Value: hex, Message: "must be 3 or 6 hex digits"}
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, &errors.ValidationError{Field: "color", Value: hex, Message: "not a hex color"}
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as upper-case "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Scale multiplies every channel by factor, truncating and clamping to 0..255.
func (c RGB) Scale(factor float64) RGB {
	return RGB{R: scale(c.R, factor), G: scale(c.G, factor), B: scale(c.B, factor)}
}

func scale(ch uint8, factor float64) uint8 {
	v := math.Trunc(float64(ch) * factor)
	return uint8(math.Max(0, math.Min(255, v)))
}

// Luminance is the relative luminance of the color in linearized sRGB.
func (c RGB) Luminance() float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(ch uint8) float64 {
	v := float64(ch) / 255.0
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Darken scales hex by factor and returns the result as "#RRGGBB".
func Darken(hex string, factor float64) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Scale(factor).Hex(), nil
}

// RelativeLuminance returns the relative luminance of hex.
func RelativeLuminance(hex string) (float64, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return c.Luminance(), nil
}

// TextColor picks black text for light colors and white text otherwise.
func TextColor(hex string) (string, error) {
	lum, err := RelativeLuminance(hex)
	if err != nil {
		return "", err
	}
	if lum > constants.LuminanceThreshold {
		return constants.DarkText, nil
	}
	return constants.LightText, nil
}

// Palette is the full set of display colors for one line.
type Palette struct {
	Color           string `json:"color" yaml:"color"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
}

// PaletteFor derives the background and text colors for a line color. The
// line color itself is kept as written.
func PaletteFor(hex string) (Palette, error) {
	bg, err := Darken(hex, constants.BackgroundDarkenFactor)
	if err != nil {
		return Palette{}, err
	}
	text, err := TextColor(hex)
	if err != nil {
		return Palette{}, err
	}
	return Palette{Color: hex, BackgroundColor: bg, TextColor: text}, nil
}

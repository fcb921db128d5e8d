package wheel

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

type RGBColor struct {
	R, G, B uint8
}

var (
	White      = RGBColor{R: 0xff, G: 0xff, B: 0xff}
	PointerRed = RGBColor{R: 0xff}
)

// ParseColor accepts "#rrggbb" (and the short "#rgb" form).
func ParseColor(hex string) (RGBColor, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGBColor{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

func MustColor(hex string) RGBColor {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func (c RGBColor) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func (c RGBColor) String() string { return c.Hex() }

func (c RGBColor) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGBColor) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var Palette = []RGBColor{
	MustColor("#A71930"), MustColor("#CE1141"), MustColor("#DF4601"), MustColor("#BD3039"),
	MustColor("#0E3386"), MustColor("#27251F"), MustColor("#C6011F"), MustColor("#E31937"),
	MustColor("#33006F"), MustColor("#0C2C56"), MustColor("#002D62"), MustColor("#004687"),
	MustColor("#BA0021"), MustColor("#005A9C"), MustColor("#00A3E0"), MustColor("#12284B"),
	MustColor("#002B5C"), MustColor("#002D72"), MustColor("#003087"), MustColor("#003831"),
	MustColor("#E81828"), MustColor("#27251F"), MustColor("#2F241D"), MustColor("#FD5A1E"),
	MustColor("#0C2C56"), MustColor("#C41E3A"), MustColor("#092C5C"), MustColor("#003278"),
	MustColor("#134A8E"), MustColor("#AB0003"),
}

// OptionsFromLabels colours labels by cycling through Palette.
func OptionsFromLabels(labels []string) []Option {
	out := make([]Option, len(labels))
	for i, label := range labels {
		out[i] = Option{Label: label, Color: Palette[i%len(Palette)]}
	}
	return out
}

func Labels(options []Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
	}
	return out
}

package frame

import (
	"image/color"

	model "github.com/okian/debtfx/internal/domain/model"
)

// Marker areas in square points.
const (
	SizeLarge  = 200.0
	SizeMedium = 130.0
)

// Fixed palette.
var (
	Green = color.RGBA{R: 0x00, G: 0x9c, B: 0x3b, A: 0xff} //nolint:gochecknoglobals // palette
	Navy  = color.RGBA{R: 0x00, G: 0x28, B: 0x68, A: 0xff} //nolint:gochecknoglobals // palette
	Red   = color.RGBA{R: 0xee, G: 0x1c, B: 0x25, A: 0xff} //nolint:gochecknoglobals // palette
	Black = color.RGBA{A: 0xff}                            //nolint:gochecknoglobals // palette
)

// Style is the presentation of one economy's marker.
type Style struct {
	Label string
	Color color.RGBA
	Size  float64
}

// StyleFor returns the label, colour and marker size for code.
func StyleFor(code string) Style {
	s := Style{Label: code, Color: Black, Size: SizeMedium}
	switch code {
	case model.BRA:
		s.Color, s.Size = Green, SizeLarge
	case model.USA:
		s.Color, s.Size = Navy, SizeLarge
	case model.CHN:
		s.Color, s.Size = Red, SizeLarge
	case model.GBR:
		s.Label = "GBR (libra)"
	}
	return s
}

// Tracked lists the codes whose trajectory is drawn.
func Tracked() []string {
	return []string{model.BRA, model.USA, model.CHN}
}

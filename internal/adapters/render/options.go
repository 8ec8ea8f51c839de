package render

import (
	"image/color"

	"github.com/okian/debtfx/pkg/logger"
	"gonum.org/v1/plot/vg"
)

// Option configures a Plotter.
type Option func(*Plotter)

// WithSize sets the figure size.
func WithSize(width, height vg.Length) Option {
	return func(p *Plotter) {
		if width > 0 && height > 0 {
			p.width, p.height = width, height
		}
	}
}

// WithDPI sets the raster resolution.
func WithDPI(dpi int) Option {
	return func(p *Plotter) {
		if dpi > 0 {
			p.dpi = dpi
		}
	}
}

// WithFontSize sets the label font size; the title is drawn at 1.5 times this.
func WithFontSize(size vg.Length) Option {
	return func(p *Plotter) {
		if size > 0 {
			p.fontSize = size
		}
	}
}

// WithAxisLabels sets the x and y axis captions.
func WithAxisLabels(x, y string) Option {
	return func(p *Plotter) {
		p.xLabel, p.yLabel = x, y
	}
}

// WithEuroColor sets the colour of the Euro reference line.
func WithEuroColor(c color.Color) Option {
	return func(p *Plotter) {
		if c != nil {
			p.euroColor = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Plotter) {
		if l != nil {
			p.log = l
		}
	}
}

// Package render draws frames with gonum/plot and encodes them as PNG
// images or an animated GIF.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/okian/debtfx/internal/domain/declutter"
	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/okian/debtfx/pkg/metrics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Fixed axis ranges in scaled units.
const (
	XMin = -0.1
	XMax = 1.1
	YMin = -0.1
	YMax = 1.6
)

const (
	markerAlpha = 0.7
	pathAlpha   = 0.5
)

// Plotter turns frames into raster images.
type Plotter struct {
	width     vg.Length
	height    vg.Length
	dpi       int
	fontSize  vg.Length
	xLabel    string
	yLabel    string
	euroColor color.Color
	log       logger.Logger
}

// New returns a Plotter with the default 19.18x9.58in figure at 50 dpi.
func New(opts ...Option) *Plotter {
	p := &Plotter{
		width:     19.18 * vg.Inch,
		height:    9.58 * vg.Inch,
		dpi:       50,
		fontSize:  vg.Points(20),
		xLabel:    "Public debt",
		yLabel:    "International purchasing power (US$)",
		euroColor: color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rendered is one drawn frame.
type Rendered struct {
	Year   int
	canvas *vgimg.Canvas
}

// Image returns the raster.
func (r *Rendered) Image() image.Image { return r.canvas.Image() }

// WritePNG encodes the raster as PNG.
func (r *Rendered) WritePNG(w io.Writer) error {
	if _, err := (vgimg.PngCanvas{Canvas: r.canvas}).WriteTo(w); err != nil {
		return fmt.Errorf("%w: png %d: %w", ErrEncode, r.Year, err)
	}
	return nil
}

// PNG returns the PNG encoding.
func (r *Rendered) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render draws f.
func (p *Plotter) Render(f frame.Frame) (*Rendered, error) {
	start := time.Now()
	c := vgimg.NewWith(vgimg.UseWH(p.width, p.height), vgimg.UseDPI(p.dpi))
	dc := draw.New(c)

	pl, labels, err := p.build(f)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.placeLabels(pl, dc, labels, f.Markers)
	}
	pl.Draw(dc)

	metrics.RecordFrameRendered()
	metrics.RecordFrameRenderLatency(float64(time.Since(start).Microseconds()) / 1000)
	return &Rendered{Year: f.Year, canvas: c}, nil
}

// RenderAll draws frames in order, stopping early if ctx is cancelled.
func (p *Plotter) RenderAll(ctx context.Context, frames []frame.Frame) ([]*Rendered, error) {
	out := make([]*Rendered, 0, len(frames))
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		r, err := p.Render(f)
		if err != nil {
			return out, err
		}
		p.log.Debug(ctx, "frame rendered", logger.Int("year", f.Year), logger.Int("markers", len(f.Markers)))
		out = append(out, r)
	}
	return out, nil
}

// build assembles the plot. Axis ranges are pinned after every Add.
func (p *Plotter) build(f frame.Frame) (*plot.Plot, *plotter.Labels, error) {
	pl := plot.New()
	pl.Title.Text = strconv.Itoa(f.Year)
	pl.Title.TextStyle.Font.Size = p.fontSize * 3 / 2
	pl.X.Label.Text = p.xLabel
	pl.Y.Label.Text = p.yLabel
	pl.X.Label.TextStyle.Font.Size = p.fontSize
	pl.Y.Label.TextStyle.Font.Size = p.fontSize
	pl.X.Tick.Label.Font.Size = p.fontSize * 3 / 4
	pl.Y.Tick.Label.Font.Size = p.fontSize * 3 / 4

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 0x80}
	grid.Horizontal.Color = color.Gray{Y: 0x80}
	grid.Vertical.Width = vg.Points(0.5)
	grid.Horizontal.Width = vg.Points(0.5)
	grid.Vertical.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	pl.Add(grid)

	paths, err := pathLines(f)
	if err != nil {
		return nil, nil, err
	}
	for _, line := range paths {
		pl.Add(line)
	}

	for _, m := range f.Markers {
		s, err := plotter.NewScatter(plotter.XYs{{X: m.X, Y: m.Y}})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: marker %s: %w", ErrPlot, m.Code, err)
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  withAlpha(m.Color, markerAlpha),
			Radius: glyphRadius(m.Size),
			Shape:  draw.CircleGlyph{},
		}
		pl.Add(s)
	}

	euro, err := euroLine(f, p.euroColor)
	if err != nil {
		return nil, nil, err
	}
	if euro != nil {
		pl.Add(euro)
	}

	var labels *plotter.Labels
	if len(f.Markers) > 0 {
		xyl := plotter.XYLabels{
			XYs:    make(plotter.XYs, len(f.Markers)),
			Labels: make([]string, len(f.Markers)),
		}
		for i, m := range f.Markers {
			xyl.XYs[i] = plotter.XY{X: m.X, Y: m.Y}
			xyl.Labels[i] = m.Label
		}
		labels, err = plotter.NewLabels(xyl)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: labels: %w", ErrPlot, err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = p.fontSize
			labels.TextStyle[i].XAlign = draw.XLeft
			labels.TextStyle[i].YAlign = draw.YBottom
		}
		pl.Add(labels)
	}

	pinAxes(pl)
	return pl, labels, nil
}

// pathLines returns one connected line per tracked economy whose path has
// at least two points, in tracked order.
func pathLines(f frame.Frame) ([]*plotter.Line, error) {
	var out []*plotter.Line
	for _, code := range frame.Tracked() {
		path, ok := f.Paths[code]
		if !ok || len(path.Points) < 2 {
			continue
		}
		line, err := plotter.NewLine(toXYs(path.Points))
		if err != nil {
			return nil, fmt.Errorf("%w: path %s: %w", ErrPlot, code, err)
		}
		line.LineStyle.Color = withAlpha(path.Color, pathAlpha)
		line.LineStyle.Width = vg.Points(1.5)
		out = append(out, line)
	}
	return out, nil
}

// euroLine returns the dashed reference line at the Euro rate spanning the
// members' debt band in data coordinates, or nil when the frame has none.
func euroLine(f frame.Frame, c color.Color) (*plotter.Line, error) {
	if f.Euro == nil {
		return nil, nil
	}
	line, err := plotter.NewLine(plotter.XYs{
		{X: f.Euro.Band.Min, Y: f.Euro.Rate},
		{X: f.Euro.Band.Max, Y: f.Euro.Rate},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: euro line: %w", ErrPlot, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	return line, nil
}

// placeLabels moves labels vertically so none overlaps another label or a
// marker. Sizes are measured in points and converted to data units of the
// final data area.
func (p *Plotter) placeLabels(pl *plot.Plot, dc draw.Canvas, labels *plotter.Labels, markers []frame.Marker) {
	area := pl.DataCanvas(dc).Rectangle.Size()
	if area.X <= 0 || area.Y <= 0 {
		return
	}
	ux := (XMax - XMin) / float64(area.X)
	uy := (YMax - YMin) / float64(area.Y)

	boxes := make([]declutter.Box, len(labels.XYs))
	obstacles := make([]declutter.Box, len(markers))
	for i, xy := range labels.XYs {
		sty := labels.TextStyle[i]
		w := float64(sty.Width(labels.Labels[i])) * ux
		h := float64(sty.Height(labels.Labels[i])) * uy
		boxes[i] = declutter.Box{Left: xy.X, Bottom: xy.Y, Right: xy.X + w, Top: xy.Y + h}
	}
	for i, m := range markers {
		r := float64(glyphRadius(m.Size))
		obstacles[i] = declutter.Box{
			Left:   m.X - r*ux,
			Bottom: m.Y - r*uy,
			Right:  m.X + r*ux,
			Top:    m.Y + r*uy,
		}
	}

	placed := declutter.Vertical(boxes, obstacles, declutter.WithBounds(YMin, YMax), declutter.WithPadding(uy))
	for i := range labels.XYs {
		labels.XYs[i].Y = placed[i].Bottom
	}
	pinAxes(pl)
}

func pinAxes(pl *plot.Plot) {
	pl.X.Min, pl.X.Max = XMin, XMax
	pl.Y.Min, pl.Y.Max = YMin, YMax
}

// glyphRadius converts a marker area in square points to a radius.
func glyphRadius(area float64) vg.Length {
	return vg.Points(math.Sqrt(area) / 2)
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 0xff))}
}

func toXYs(points []frame.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

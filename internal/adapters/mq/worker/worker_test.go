package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/debtfx/internal/adapters/render"
	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/plot/vg"
)

var errBoom = errors.New("boom")

// countingRenderer wraps a real plotter and records the years it drew.
type countingRenderer struct {
	p      *render.Plotter
	mu     sync.Mutex
	years  map[int]int
	failOn int
}

func (c *countingRenderer) Render(f frame.Frame) (*render.Rendered, error) {
	c.mu.Lock()
	c.years[f.Year]++
	c.mu.Unlock()
	if f.Year == c.failOn {
		return nil, errBoom
	}
	return c.p.Render(f)
}

func newRenderer(failOn int) *countingRenderer {
	return &countingRenderer{
		p:      render.New(render.WithSize(3*vg.Inch, 2*vg.Inch), render.WithDPI(20), render.WithFontSize(6)),
		years:  map[int]int{},
		failOn: failOn,
	}
}

func yearFrames(first, last int) []frame.Frame {
	var out []frame.Frame
	for y := first; y <= last; y++ {
		out = append(out, frame.Frame{Year: y})
	}
	return out
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of three workers", t, func() {
		ctx := context.Background()

		convey.Convey("When rendering eight frames", func() {
			r := newRenderer(0)
			pool := NewPool(3, r, nil)
			out, err := pool.Render(ctx, yearFrames(1994, 2001))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then images come back in frame order", func() {
				convey.So(out, convey.ShouldHaveLength, 8)
				for i, img := range out {
					convey.So(img, convey.ShouldNotBeNil)
					convey.So(img.Year, convey.ShouldEqual, 1994+i)
				}
			})

			convey.Convey("Then each frame is drawn exactly once", func() {
				for y := 1994; y <= 2001; y++ {
					convey.So(r.years[y], convey.ShouldEqual, 1)
				}
			})
		})

		convey.Convey("When one frame fails", func() {
			pool := NewPool(3, newRenderer(1997), nil)
			out, err := pool.Render(ctx, yearFrames(1994, 2001))

			convey.Convey("Then the render error is returned", func() {
				convey.So(errors.Is(err, errBoom), convey.ShouldBeTrue)
				convey.So(out, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := NewPool(2, newRenderer(0), nil).Render(cctx, yearFrames(1994, 1995))

			convey.Convey("Then cancellation is reported", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When there is nothing to render", func() {
			out, err := NewPool(2, newRenderer(0), nil).Render(ctx, nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldBeEmpty)
		})

		convey.Convey("Then a size below one means one worker per CPU", func() {
			convey.So(NewPool(0, newRenderer(0), nil).Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}

// Package declutter separates overlapping text labels by moving them along
// the vertical axis only.
package declutter

import "math"

// Box is an axis-aligned rectangle in y-up coordinates.
type Box struct {
	Left, Bottom, Right, Top float64
}

// Height returns the vertical extent of b.
func (b Box) Height() float64 { return b.Top - b.Bottom }

func (b Box) centerY() float64 { return (b.Bottom + b.Top) / 2 }

func (b Box) shift(dy float64) Box {
	b.Bottom += dy
	b.Top += dy
	return b
}

// Overlaps reports whether a and b share interior area. Touching edges do
// not count.
func Overlaps(a, b Box) bool {
	if a.Right <= b.Left || a.Left >= b.Right ||
		a.Top <= b.Bottom || a.Bottom >= b.Top {
		return false
	}
	return true
}

// Vertical moves labels apart until no label overlaps another label or any
// obstacle, or the iteration budget runs out. Horizontal extents are never
// changed. The returned slice is parallel to labels.
//
// Overlapping labels split the vertical overlap between them: the lower one
// moves down and the upper one up (ties keep input order, earlier goes
// down). A label overlapping an obstacle is pushed fully clear of it on the
// side of its centre.
func Vertical(labels, obstacles []Box, opts ...Option) []Box {
	o := newOptions(opts...)
	out := make([]Box, len(labels))
	copy(out, labels)

	for iter := 0; iter < o.maxIterations; iter++ {
		moved := false
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if !Overlaps(out[i], out[j]) {
					continue
				}
				overlap := math.Min(out[i].Top, out[j].Top) - math.Max(out[i].Bottom, out[j].Bottom)
				adj := overlap/2 + o.padding
				lo, hi := i, j
				if out[i].centerY() > out[j].centerY() {
					lo, hi = j, i
				}
				out[lo] = out[lo].shift(-adj)
				out[hi] = out[hi].shift(adj)
				moved = true
			}
		}
		for i := range out {
			for _, ob := range obstacles {
				if !Overlaps(out[i], ob) {
					continue
				}
				if out[i].centerY() >= ob.centerY() {
					out[i] = out[i].shift(ob.Top - out[i].Bottom + o.padding)
				} else {
					out[i] = out[i].shift(ob.Bottom - out[i].Top - o.padding)
				}
				moved = true
			}
			if o.bounded {
				out[i] = clamp(out[i], o.minY, o.maxY)
			}
		}
		if !moved {
			break
		}
	}
	return out
}

// clamp keeps b inside [minY, maxY] when it fits.
func clamp(b Box, minY, maxY float64) Box {
	h := b.Height()
	if h > maxY-minY {
		return b
	}
	if b.Bottom < minY {
		b.Bottom, b.Top = minY, minY+h
	}
	if b.Top > maxY {
		b.Bottom, b.Top = maxY-h, maxY
	}
	return b
}

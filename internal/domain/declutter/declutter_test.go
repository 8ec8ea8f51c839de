package declutter

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func anyOverlap(boxes, obstacles []Box) bool {
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if Overlaps(boxes[i], boxes[j]) {
				return true
			}
		}
		for _, o := range obstacles {
			if Overlaps(boxes[i], o) {
				return true
			}
		}
	}
	return false
}

func TestOverlaps(t *testing.T) {
	Convey("Given two boxes", t, func() {
		a := Box{Left: 0, Bottom: 0, Right: 1, Top: 1}

		Convey("Then overlapping interiors are detected", func() {
			So(Overlaps(a, Box{Left: 0.5, Bottom: 0.5, Right: 2, Top: 2}), ShouldBeTrue)
		})

		Convey("Then touching edges are not an overlap", func() {
			So(Overlaps(a, Box{Left: 1, Bottom: 0, Right: 2, Top: 1}), ShouldBeFalse)
			So(Overlaps(a, Box{Left: 0, Bottom: 1, Right: 1, Top: 2}), ShouldBeFalse)
		})
	})
}

func TestVertical(t *testing.T) {
	Convey("Given two stacked labels", t, func() {
		labels := []Box{
			{Left: 0, Bottom: 0, Right: 2, Top: 1},
			{Left: 1, Bottom: 0.5, Right: 3, Top: 1.5},
		}

		Convey("When decluttering", func() {
			out := Vertical(labels, nil)

			Convey("Then they no longer overlap", func() {
				So(anyOverlap(out, nil), ShouldBeFalse)
			})

			Convey("Then horizontal extents are unchanged", func() {
				for i := range out {
					So(out[i].Left, ShouldEqual, labels[i].Left)
					So(out[i].Right, ShouldEqual, labels[i].Right)
				}
			})

			Convey("Then the lower label moved down and the upper one up", func() {
				So(out[0].Bottom, ShouldBeLessThan, labels[0].Bottom)
				So(out[1].Bottom, ShouldBeGreaterThan, labels[1].Bottom)
			})

			Convey("Then heights are preserved", func() {
				So(out[0].Height(), ShouldAlmostEqual, 1)
				So(out[1].Height(), ShouldAlmostEqual, 1)
			})
		})
	})

	Convey("Given labels that do not touch", t, func() {
		labels := []Box{
			{Left: 0, Bottom: 0, Right: 1, Top: 1},
			{Left: 5, Bottom: 0, Right: 6, Top: 1},
		}

		Convey("Then nothing moves", func() {
			So(Vertical(labels, nil), ShouldResemble, labels)
		})
	})

	Convey("Given a label sitting on its own marker", t, func() {
		labels := []Box{{Left: 0, Bottom: 1, Right: 2, Top: 1.5}}
		marker := []Box{{Left: -0.1, Bottom: 0.9, Right: 0.1, Top: 1.1}}

		Convey("Then it is pushed above the marker", func() {
			out := Vertical(labels, marker, WithPadding(0.01))
			So(out[0].Bottom, ShouldAlmostEqual, 1.11)
			So(anyOverlap(out, marker), ShouldBeFalse)
		})
	})

	Convey("Given bounds", t, func() {
		labels := []Box{
			{Left: 0, Bottom: 0.9, Right: 1, Top: 1.0},
			{Left: 0, Bottom: 0.9, Right: 1, Top: 1.0},
		}

		Convey("Then labels are kept inside", func() {
			out := Vertical(labels, nil, WithBounds(0, 1), WithPadding(0.001))
			for _, b := range out {
				So(b.Top, ShouldBeLessThanOrEqualTo, 1)
				So(b.Bottom, ShouldBeGreaterThanOrEqualTo, 0)
			}
			So(anyOverlap(out, nil), ShouldBeFalse)
		})
	})

	Convey("Given identical labels", t, func() {
		labels := []Box{
			{Left: 0, Bottom: 0, Right: 1, Top: 1},
			{Left: 0, Bottom: 0, Right: 1, Top: 1},
		}

		Convey("Then the earlier one goes down", func() {
			out := Vertical(labels, nil, WithMaxIterations(1))
			So(out[0].Bottom, ShouldEqual, -0.5)
			So(out[1].Bottom, ShouldEqual, 0.5)
		})
	})
}

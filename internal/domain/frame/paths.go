package frame

import "image/color"

// Point is a (debt, rate) position in scaled coordinates.
type Point struct {
	X float64
	Y float64
}

// Path is one economy's accumulated trajectory.
type Path struct {
	Code   string
	Color  color.RGBA
	Points []Point
}

// PathTracker accumulates trajectories for a fixed set of codes. Paths grow
// in call order and are never reset.
type PathTracker struct {
	order []string
	paths map[string]*Path
}

// NewPathTracker tracks the given codes.
func NewPathTracker(codes ...string) *PathTracker {
	t := &PathTracker{paths: make(map[string]*Path, len(codes))}
	for _, c := range codes {
		if _, ok := t.paths[c]; ok {
			continue
		}
		t.order = append(t.order, c)
		t.paths[c] = &Path{Code: c, Color: StyleFor(c).Color}
	}
	return t
}

// Tracks reports whether code is tracked.
func (t *PathTracker) Tracks(code string) bool {
	_, ok := t.paths[code]
	return ok
}

// Append adds p to code's path. It returns false for untracked codes.
func (t *PathTracker) Append(code string, p Point) bool {
	path, ok := t.paths[code]
	if !ok {
		return false
	}
	path.Points = append(path.Points, p)
	return true
}

// Path returns a copy of code's trajectory.
func (t *PathTracker) Path(code string) (Path, bool) {
	path, ok := t.paths[code]
	if !ok {
		return Path{}, false
	}
	return copyPath(path), true
}

// Snapshot copies every non-empty path, keyed by code.
func (t *PathTracker) Snapshot() map[string]Path {
	out := make(map[string]Path, len(t.order))
	for _, c := range t.order {
		if p := t.paths[c]; len(p.Points) > 0 {
			out[c] = copyPath(p)
		}
	}
	return out
}

func copyPath(p *Path) Path {
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	return Path{Code: p.Code, Color: p.Color, Points: pts}
}

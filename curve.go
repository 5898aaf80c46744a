package bytestats

import "fmt"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// CurvePath is an ordered walk over every cell of a grid.
type CurvePath []Point

// GenerateCurve returns a Gilbert curve over a width×height grid: a
// generalisation of the Hilbert curve to arbitrary rectangles. Every cell
// appears exactly once and consecutive cells are neighbours (diagonal steps
// can occur when the rectangle parity forces them).
func GenerateCurve(width, height int) (CurvePath, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidArgument, width, height)
	}
	g := gilbert{path: make(CurvePath, 0, width*height)}
	if width >= height {
		g.generate(0, 0, width, 0, 0, height)
	} else {
		g.generate(0, 0, 0, height, width, 0)
	}
	return g.path, nil
}

// CurveIndex inverts a path over a width-wide grid: the result maps the cell
// at y*width+x to its position along the path.
func CurveIndex(path CurvePath, width int) []int {
	idx := make([]int, len(path))
	for i, p := range path {
		idx[p.Y*width+p.X] = i
	}
	return idx
}

type gilbert struct {
	path CurvePath
}

// generate walks the rectangle at (x, y) spanned by the major axis (ax, ay)
// and the minor axis (bx, by).
func (g *gilbert) generate(x, y, ax, ay, bx, by int) {
	w := abs(ax + ay)
	h := abs(bx + by)

	dax, day := sign(ax), sign(ay)
	dbx, dby := sign(bx), sign(by)

	if h == 1 {
		for range w {
			g.path = append(g.path, Point{x, y})
			x, y = x+dax, y+day
		}
		return
	}
	if w == 1 {
		for range h {
			g.path = append(g.path, Point{x, y})
			x, y = x+dbx, y+dby
		}
		return
	}

	ax2, ay2 := floorHalf(ax), floorHalf(ay)
	bx2, by2 := floorHalf(bx), floorHalf(by)

	w2 := abs(ax2 + ay2)
	h2 := abs(bx2 + by2)

	if 2*w > 3*h {
		// Long rectangle: two halves along the major axis.
		if w2%2 != 0 && w > 2 {
			ax2, ay2 = ax2+dax, ay2+day
		}
		g.generate(x, y, ax2, ay2, bx, by)
		g.generate(x+ax2, y+ay2, ax-ax2, ay-ay2, bx, by)
		return
	}

	// Up one half, across the full length, back down.
	if h2%2 != 0 && h > 2 {
		bx2, by2 = bx2+dbx, by2+dby
	}
	g.generate(x, y, bx2, by2, ax2, ay2)
	g.generate(x+bx2, y+by2, ax, ay, bx-bx2, by-by2)
	g.generate(x+(ax-dax)+(bx2-dbx), y+(ay-day)+(by2-dby),
		-bx2, -by2, -(ax - ax2), -(ay - ay2))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// floorHalf divides by two rounding toward negative infinity.
func floorHalf(v int) int {
	return v >> 1
}

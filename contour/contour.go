package contour

import "github.com/gwlucastrig/go-tincontour/tin"

// Contour is a mutable polyline builder (spec C1). It accumulates an
// iso-level `z` trace as a flat (x,y) point list, coalescing
// consecutive duplicate points and, for closed loops, snapping or
// stitching its own closure.
//
// Once a build finishes, Contours are read-only data: region
// assembly and nesting only read Points/ClosedLoop/LeftIndex/
// RightIndex. The traversedForward/traversedBackward bookkeeping the
// assembler needs lives outside Contour, in a side table keyed by ID
// (see assembler.go) — spec's design notes call this out explicitly
// so Contour can stay immutable once produced.
type Contour struct {
	id         int64
	z          float64
	leftIndex  int
	rightIndex int
	closedLoop bool
	points     []float64 // flat (x, y) pairs

	startTip    *TipLink
	terminalTip *TipLink
}

func newContour(id int64, z float64, leftIndex, rightIndex int, closedLoop bool) *Contour {
	return &Contour{
		id:         id,
		z:          z,
		leftIndex:  leftIndex,
		rightIndex: rightIndex,
		closedLoop: closedLoop,
		points:     make([]float64, 0, 16),
	}
}

// ID is a stable identity assigned at creation time, unique within a
// build.
func (c *Contour) ID() int64 { return c.id }

// Z is the iso-level this contour traces.
func (c *Contour) Z() float64 { return c.z }

// LeftIndex is the interval index of the region to the left of the
// contour's traversal direction (>= 0 for interior contours).
func (c *Contour) LeftIndex() int { return c.leftIndex }

// RightIndex is the interval index to the right (>= 0 interior, -1
// for boundary-on-hull contours).
func (c *Contour) RightIndex() int { return c.rightIndex }

// ClosedLoop reports whether this contour's points form a closed ring
// rather than a line that terminates on the perimeter: an interior
// closed loop, or the boundary contour synthesized for a whole-hull
// region.
func (c *Contour) ClosedLoop() bool { return c.closedLoop }

// NumPoints is the number of (x,y) points currently stored.
func (c *Contour) NumPoints() int { return len(c.points) / 2 }

// Point returns the i'th stored point.
func (c *Contour) Point(i int) (x, y float64) {
	return c.points[2*i], c.points[2*i+1]
}

// Points returns the flat (x0,y0,x1,y1,...) point list. Callers must
// not mutate the returned slice.
func (c *Contour) Points() []float64 { return c.points }

func (c *Contour) first() (x, y float64) { return c.points[0], c.points[1] }
func (c *Contour) last() (x, y float64) {
	n := len(c.points)
	return c.points[n-2], c.points[n-1]
}

// append adds (x,y) unless it equals the last stored point
// bit-for-bit (spec §4.1).
func (c *Contour) append(x, y float64) {
	if n := len(c.points); n >= 2 && c.points[n-2] == x && c.points[n-1] == y {
		return
	}
	c.points = append(c.points, x, y)
}

// appendCrossing computes the linear-interpolation crossing of the
// contour's level on the edge endpoints A=(ax,ay,za), B=(bx,by,zb)
// and appends it.
func (c *Contour) appendCrossing(ax, ay, za, bx, by, zb float64) {
	x, y := crossingPoint(ax, ay, za, bx, by, zb, c.z)
	c.append(x, y)
}

// appendVertex forwards v's coordinates to append.
func (c *Contour) appendVertex(v tin.Vertex) {
	c.append(v.X(), v.Y())
}

// complete finalises the contour. For a closed loop it either snaps
// the last point to the first when they are numerically close (spec
// §4.1's 16-ulp test) or appends an exact closure copy of the first
// point, guaranteeing point[0] == point[n-1] bit-exact afterwards.
func (c *Contour) complete() {
	if !c.closedLoop {
		return
	}
	if len(c.points) < 2 {
		return
	}
	fx, fy := c.first()
	lx, ly := c.last()
	if lx == fx && ly == fy {
		return
	}
	if isClose(lx, fx) && isClose(ly, fy) {
		n := len(c.points)
		c.points[n-2] = fx
		c.points[n-1] = fy
		return
	}
	c.points = append(c.points, fx, fy)
}

// isEmpty reports whether the contour has fewer than two points,
// i.e. it traces no segment at all (spec §3 invariant).
func (c *Contour) isEmpty() bool { return len(c.points) < 2 }

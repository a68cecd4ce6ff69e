package contour

import "math"

// RegionType distinguishes a region bounded purely by interior
// contours from one that includes an arc of the convex-hull perimeter
// (spec §3).
type RegionType int

const (
	// Interior regions are bounded by a single closed-loop contour that
	// lies entirely inside the hull. Regions stitched from open
	// contours always take the Perimeter type.
	Interior RegionType = iota
	// Perimeter regions include at least one arc of the hull
	// boundary among their members.
	Perimeter
)

func (t RegionType) String() string {
	if t == Perimeter {
		return "Perimeter"
	}
	return "Interior"
}

// regionMember is one contour participating in a region's boundary,
// and the direction it is walked in (spec §3: "members: ordered list
// of (contour, forward)").
type regionMember struct {
	contour *Contour
	forward bool
}

// ContourRegion is a polygon bounded by one or more contours, carrying
// a single interval index (spec C7). A region with a single member is
// a pure closed-loop region; a region with several members was
// stitched together out of open contours and perimeter arcs (spec
// C5).
type ContourRegion struct {
	typ         RegionType
	regionIndex int
	members     []regionMember

	signedArea float64
	absArea    float64
	testPointX float64
	testPointY float64

	parent   *ContourRegion
	children []*ContourRegion
}

// Type reports whether this region touches the perimeter.
func (r *ContourRegion) Type() RegionType { return r.typ }

// RegionIndex is the contour-interval index this region belongs to.
func (r *ContourRegion) RegionIndex() int { return r.regionIndex }

// SignedArea is the region's signed polygon area; positive for
// counter-clockwise boundaries.
func (r *ContourRegion) SignedArea() float64 { return r.signedArea }

// AbsArea is the absolute value of SignedArea.
func (r *ContourRegion) AbsArea() float64 { return r.absArea }

// AdjustedArea is AbsArea minus the AbsArea of every immediate child,
// i.e. this region's area with its children's holes removed (spec
// §3).
func (r *ContourRegion) AdjustedArea() float64 {
	adjusted := r.absArea
	for _, c := range r.children {
		adjusted -= c.absArea
	}
	return adjusted
}

// TestPoint returns the point used by NestOrganiser's point-in-polygon
// test: the midpoint of the first edge of the first member (spec
// §4.5), guaranteed to fall strictly between two vertices of any
// enclosing region and never coincide with one of its own vertices.
func (r *ContourRegion) TestPoint() (x, y float64) { return r.testPointX, r.testPointY }

// Parent is this region's immediate enclosing region, or nil for a
// root region.
func (r *ContourRegion) Parent() *ContourRegion { return r.parent }

// Children are the regions immediately enclosed by this one.
func (r *ContourRegion) Children() []*ContourRegion { return r.children }

// Members exposes the (contour, forward) pairs making up this
// region's boundary, in traversal order.
func (r *ContourRegion) Members() []Member {
	out := make([]Member, len(r.members))
	for i, m := range r.members {
		out[i] = Member{Contour: m.contour, Forward: m.forward}
	}
	return out
}

// Member is the public view of a region's boundary contour and the
// direction it is walked in.
type Member struct {
	Contour *Contour
	Forward bool
}

// ring concatenates every member's points, in traversal order and
// orientation, into a single flat (x,y) loop. Because the assembler
// guarantees each member's start coincides with the previous member's
// end (spec C5 step 4), this concatenation already is the region's
// full boundary ring — no separate "connector" edges need bookkeeping,
// and a duplicated junction point contributes a zero cross-product
// term to the shoelace sum, so it's harmless to leave in.
func ringOf(members []regionMember) []float64 {
	var n int
	for _, m := range members {
		n += m.contour.NumPoints()
	}
	ring := make([]float64, 0, 2*n)
	for _, m := range members {
		pts := m.contour.Points()
		if m.forward {
			ring = append(ring, pts...)
		} else {
			for i := len(pts) - 2; i >= 0; i -= 2 {
				ring = append(ring, pts[i], pts[i+1])
			}
		}
	}
	return ring
}

// computeGeometry fills in signedArea, absArea and testPoint from the
// region's current member list.
func (r *ContourRegion) computeGeometry() {
	ring := ringOf(r.members)
	r.signedArea = signedArea(ring)
	r.absArea = math.Abs(r.signedArea)

	m0 := r.members[0].contour
	var ax, ay, bx, by float64
	if r.members[0].forward {
		ax, ay = m0.Point(0)
		bx, by = m0.Point(1)
	} else {
		n := m0.NumPoints()
		ax, ay = m0.Point(n - 1)
		bx, by = m0.Point(n - 2)
	}
	r.testPointX = (ax + bx) / 2
	r.testPointY = (ay + by) / 2
}


// Package tin describes the read-only contract the contour builder
// requires of a Delaunay triangulation. Building the triangulation,
// smoothing vertex values, simplifying lines, exporting geometry and
// every other concern around the TIN lives outside this package; tin
// only names the shape a triangulation must have to be traced.
package tin

// VertexID is a stable identity used to test "same vertex" equality
// during traversal. It carries no ordering guarantee.
type VertexID int64

// Vertex is an immutable (x, y, z) triple plus a stable identity.
//
// The z exposed here is whatever the triangulation happens to store;
// the contour builder never reads it directly. It always goes through
// a Valuator (see Valuator), which may override z with a smoothed or
// otherwise derived value.
type Vertex interface {
	ID() VertexID
	X() float64
	Y() float64
	Z() float64
}

// EdgeIndex is the stable allocation index of one directed half-edge.
// Dual half-edges are index-paired: Index(Dual(e)) == Index(e) ^ 1.
type EdgeIndex int32

// Edge is a directed half-edge e = (Start, End) belonging to one
// triangle of the TIN.
//
// Forward and Reverse move within the same triangle; Dual crosses
// into the neighbour triangle sharing this edge. An edge whose Dual
// has no End vertex is a perimeter edge: it lies on the convex hull
// and has no neighbour triangle on its outside.
type Edge interface {
	Index() EdgeIndex
	Start() Vertex
	End() Vertex
	Forward() Edge
	Reverse() Edge
	Dual() Edge
	IsPerimeter() bool

	// Pinwheel returns, in counter-clockwise order starting just after e, the
	// other edges that emanate from Start(e) — i.e. one edge per
	// triangle incident to Start(e).
	Pinwheel() []Edge
}

// TIN is the contract a triangulation must satisfy to be contoured.
// Implementations are consumed read-only: the contour builder never
// mutates an edge or a vertex.
type TIN interface {
	// Edges enumerates every half-edge (both directions of every
	// triangle side).
	Edges() []Edge

	// PerimeterEdges enumerates the hull boundary in
	// counter-clockwise order, each edge appearing once.
	PerimeterEdges() []Edge

	// MaxEdgeIndex is one past the largest EdgeIndex any Edge in this
	// TIN returns from Index(); it sizes the per-level visited bit
	// set (spec §5).
	MaxEdgeIndex() int
}

// Valuator supplies the scalar field value used for contouring. It
// must be deterministic for the lifetime of a build: the same vertex
// always yields the same value (spec §5, §6.2). NaN and infinite
// values are rejected by the builder with ErrInvalidValue; Valuator
// implementations should never need to produce them for a
// well-formed surface, but the builder does not trust that they
// won't.
type Valuator func(v Vertex) float64

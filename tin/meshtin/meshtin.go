// Package meshtin is a minimal, hand-built tin.TIN used by this
// module's own tests. It is not a triangulator: callers supply the
// vertices and the counter-clockwise triangle index triples directly,
// and meshtin wires up the paired half-edges and the perimeter ring.
package meshtin

import "github.com/gwlucastrig/go-tincontour/tin"

// Vertex is a plain (x, y, z) point with a stable identity.
type Vertex struct {
	id      tin.VertexID
	x, y, z float64
}

// NewVertex constructs a Vertex with the given identity and
// coordinates.
func NewVertex(id int64, x, y, z float64) *Vertex {
	return &Vertex{id: tin.VertexID(id), x: x, y: y, z: z}
}

func (v *Vertex) ID() tin.VertexID { return v.id }
func (v *Vertex) X() float64       { return v.x }
func (v *Vertex) Y() float64       { return v.y }
func (v *Vertex) Z() float64       { return v.z }

// edge is one directed half-edge. A ghost edge (end == nil) stands in
// for "no neighbour triangle on the outside of this boundary edge";
// its own Forward/Reverse are never exercised by the contour package
// and are left returning nil.
type edge struct {
	index                  tin.EdgeIndex
	start, end             *Vertex
	forward, reverse, dual *edge
}

func (e *edge) Index() tin.EdgeIndex { return e.index }

func (e *edge) Start() tin.Vertex {
	if e.start == nil {
		return nil
	}
	return e.start
}

func (e *edge) End() tin.Vertex {
	if e.end == nil {
		return nil
	}
	return e.end
}

func (e *edge) Forward() tin.Edge {
	if e.forward == nil {
		return nil
	}
	return e.forward
}

func (e *edge) Reverse() tin.Edge {
	if e.reverse == nil {
		return nil
	}
	return e.reverse
}

func (e *edge) Dual() tin.Edge {
	if e.dual == nil {
		return nil
	}
	return e.dual
}

func (e *edge) IsPerimeter() bool {
	return e.dual != nil && e.dual.end == nil
}

// Pinwheel returns the other real edges emanating from Start(e), in
// counter-clockwise order, stopping at the hull if Start(e) is a boundary
// vertex rather than wrapping a full turn.
func (e *edge) Pinwheel() []tin.Edge {
	var out []tin.Edge
	cur := e
	for {
		r := cur.reverse
		if r == nil || r.dual == nil || r.dual.end == nil {
			break
		}
		cur = r.dual
		if cur == e {
			break
		}
		out = append(out, cur)
	}
	return out
}

// MeshTIN is a fixed, pre-built triangulation: an explicit vertex set
// plus CCW triangle index triples, with half-edge pairing and
// perimeter-ring derivation done once at construction.
type MeshTIN struct {
	vertices []*Vertex
	edges    []*edge
	ghosts   []*edge
	perim    []tin.Edge
}

// New builds a MeshTIN from vertices and CCW (index into vertices)
// triangle triples.
func New(vertices []*Vertex, triangles [][3]int) *MeshTIN {
	m := &MeshTIN{vertices: vertices}

	type key struct {
		a, b tin.VertexID
	}
	byDirected := make(map[key]*edge)

	for _, tri := range triangles {
		vs := [3]*Vertex{vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]}
		var es [3]*edge
		for i := 0; i < 3; i++ {
			es[i] = &edge{
				index: tin.EdgeIndex(len(m.edges)),
				start: vs[i],
				end:   vs[(i+1)%3],
			}
			m.edges = append(m.edges, es[i])
		}
		for i := 0; i < 3; i++ {
			es[i].forward = es[(i+1)%3]
			es[i].reverse = es[(i+2)%3]
			byDirected[key{es[i].start.id, es[i].end.id}] = es[i]
		}
	}

	for _, e := range m.edges {
		if e.dual != nil {
			continue
		}
		if opp, ok := byDirected[key{e.end.id, e.start.id}]; ok {
			e.dual = opp
			opp.dual = e
			continue
		}
		g := &edge{
			index: tin.EdgeIndex(len(m.edges) + len(m.ghosts)),
			start: e.end,
		}
		g.dual = e
		e.dual = g
		m.ghosts = append(m.ghosts, g)
	}

	// Renumber so each half-edge and its dual share an index pair
	// (2k, 2k+1), as tin.EdgeIndex requires.
	paired := make(map[*edge]bool, len(m.edges)+len(m.ghosts))
	var nextIndex tin.EdgeIndex
	for _, e := range m.edges {
		if paired[e] {
			continue
		}
		e.index, e.dual.index = nextIndex, nextIndex+1
		paired[e], paired[e.dual] = true, true
		nextIndex += 2
	}

	m.perim = buildPerimeterRing(m.edges)
	return m
}

// buildPerimeterRing chains boundary half-edges start->end into one
// counter-clockwise cycle. Boundary edges, each belonging to exactly
// one CCW triangle, naturally chain in the triangle's own rotational
// sense, which is the hull's CCW direction.
func buildPerimeterRing(edges []*edge) []tin.Edge {
	bySrc := make(map[tin.VertexID]*edge)
	var any *edge
	for _, e := range edges {
		if e.IsPerimeter() {
			bySrc[e.start.id] = e
			any = e
		}
	}
	if any == nil {
		return nil
	}
	var ring []tin.Edge
	cur := any
	for {
		ring = append(ring, cur)
		next := bySrc[cur.end.id]
		if next == nil || next == any {
			break
		}
		cur = next
	}
	return ring
}

func (m *MeshTIN) Edges() []tin.Edge {
	out := make([]tin.Edge, len(m.edges))
	for i, e := range m.edges {
		out[i] = e
	}
	return out
}

func (m *MeshTIN) PerimeterEdges() []tin.Edge { return m.perim }

func (m *MeshTIN) MaxEdgeIndex() int { return len(m.edges) + len(m.ghosts) }

package contour

import (
	"math"

	"github.com/arl/assertgo"
	"github.com/gwlucastrig/go-tincontour/tin"
)

// bitset is a flat, fixed-size bit vector indexed by tin.EdgeIndex.
// It needs a plain set/has/clear API sized by an arbitrary edge count
// known only at mesh-load time, which rules out a fixed-width bit
// vector; this is a small hand-rolled one, grounded on the same
// "flag per edge" idea as recast.BuildContours' own `flags []uint8`.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << uint(i%64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }
func (b bitset) clearAll() {
	for i := range b {
		b[i] = 0
	}
}

// walkState is the ContourTracer's two-state walk machine (spec §4.2).
type walkState int

const (
	stateThroughEdge walkState = iota
	stateThroughVertex
)

// ContourTracer walks a single iso-level across a TIN, producing the
// open contours that terminate on the perimeter and the closed loops
// that live entirely inside it (spec C4).
//
// Grounded on recast.walkContour2's explicit two-branch loop (cross
// an edge vs. follow a connected span) for the overall shape of a
// state-machine walker that mutates a little position state each
// iteration instead of recursing.
type ContourTracer struct {
	t   tin.TIN
	val tin.Valuator
	ctx *BuildContext

	perimeter *perimeterList
	tips      *tipArena
	visited   bitset

	nextContourID int64

	edgeTransits   int64
	vertexTransits int64
}

func newContourTracer(t tin.TIN, val tin.Valuator, ctx *BuildContext) *ContourTracer {
	perimEdges := t.PerimeterEdges()
	return &ContourTracer{
		t:         t,
		val:       val,
		ctx:       ctx,
		perimeter: newPerimeterList(perimEdges),
		tips:      newTipArena(64),
		visited:   newBitset(t.MaxEdgeIndex()),
	}
}

func (tr *ContourTracer) value(v tin.Vertex) (float64, error) {
	z := tr.val(v)
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, newError(InvalidValue, "vertex %v produced non-finite value %v", v.ID(), z)
	}
	return z, nil
}

func (tr *ContourTracer) newContourID() int64 {
	tr.nextContourID++
	return tr.nextContourID
}

// markVisited flags both e and its dual. A ghost edge (no End) still
// occupies a valid index, so marking it unconditionally is safe and
// keeps the closed-loop phase from ever reseeding from the exterior
// side of a perimeter edge.
func (tr *ContourTracer) markVisited(e tin.Edge) {
	tr.visited.set(int(e.Index()))
	tr.visited.set(int(e.Dual().Index()))
}

// traceLevel runs the open-contour phase and the closed-loop phase
// for a single iso-level zi, which is Z[levelIndex] in the caller's
// sorted level list. Every contour produced here gets leftIndex =
// levelIndex+1 (the interval above zi) and rightIndex = levelIndex
// (the interval below); spec §3's rightIndex == -1 case only applies
// to the Boundary contours RegionAssembler itself synthesises.
func (tr *ContourTracer) traceLevel(zi float64, levelIndex int) (open, closed []*Contour, err error) {
	tr.ctx.startTimer(TimerTrace)
	defer tr.ctx.stopTimer(TimerTrace)

	tr.visited.clearAll()

	open, err = tr.openContourPhase(zi, levelIndex)
	if err != nil {
		return nil, nil, err
	}
	closed, err = tr.closedLoopPhase(zi, levelIndex)
	if err != nil {
		return nil, nil, err
	}
	return open, closed, nil
}

func (tr *ContourTracer) openContourPhase(zi float64, levelIndex int) ([]*Contour, error) {
	var result []*Contour
	n := len(tr.perimeter.links)
	for i := 0; i < n; i++ {
		pl := &tr.perimeter.links[i]
		e := pl.edge
		A, B := e.Start(), e.End()
		zA, err := tr.value(A)
		if err != nil {
			return nil, err
		}
		zB, err := tr.value(B)
		if err != nil {
			return nil, err
		}

		switch {
		case zA > zi && zi > zB:
			c := newContour(tr.newContourID(), zi, levelIndex+1, levelIndex, false)
			ax, ay := A.X(), A.Y()
			bx, by := B.X(), B.Y()
			c.appendCrossing(ax, ay, zA, bx, by, zB)
			tr.markVisited(e)

			tip := tr.tips.alloc(c, true, 0)
			pl.insertThroughEdgeStart(tip)
			c.startTip = tip

			w := &walker{tr: tr, zi: zi, c: c, closed: false, state: stateThroughEdge, curEdge: e}
			if err := w.run(); err != nil {
				return nil, err
			}
			result = append(result, c)

		case zA == zi:
			cs, err := tr.startSweepFromVertex(pl, e, zi, levelIndex)
			if err != nil {
				return nil, err
			}
			result = append(result, cs...)
		}
	}
	return result, nil
}

// startSweepFromVertex implements spec §4.2's Case B (through-vertex
// start): A = e.Start() sits exactly on the level. The sweep rotates
// counter-clockwise around A, one triangle at a time, looking for either an
// ascending exit edge or a chain of further flat vertices to transfer
// through.
func (tr *ContourTracer) startSweepFromVertex(pl *PerimeterLink, e tin.Edge, zi float64, levelIndex int) ([]*Contour, error) {
	var result []*Contour
	A := e.Start()
	rotate := e
	sweepIndex := 1

	for {
		Bk := rotate.End()
		zBk, err := tr.value(Bk)
		if err != nil {
			return nil, err
		}
		if zBk >= zi {
			// Not a candidate leg of the sweep (rotate itself isn't
			// descending away from the flat vertex); nothing to seed
			// starting from this triangle. Rotate and keep looking,
			// bounded the same way the general sweep is.
			next, stop, err := tr.rotateAroundVertexBounded(rotate)
			if err != nil {
				return nil, err
			}
			if stop {
				return result, nil
			}
			rotate = next
			continue
		}

		opp := rotate.Forward() // Bk -> C
		C := opp.End()
		zC, err := tr.value(C)
		if err != nil {
			return nil, err
		}

		switch {
		case zC > zi:
			c := newContour(tr.newContourID(), zi, levelIndex+1, levelIndex, false)
			c.appendVertex(A)
			tr.markVisited(opp)

			tip := tr.tips.alloc(c, true, sweepIndex)
			pl.bufferVertexTip(tip)
			c.startTip = tip

			if opp.IsPerimeter() {
				// Bk -> C is itself a hull edge: there is no neighbour
				// triangle to cross into, so the contour terminates
				// right here instead of continuing as a through-edge
				// walk.
				c.appendCrossing(Bk.X(), Bk.Y(), zBk, C.X(), C.Y(), zC)
				termLink := tr.perimeter.linkFor(opp)
				assert.True(termLink != nil, "perimeter link not found for ascending boundary edge")
				term := tr.tips.alloc(c, false, 0)
				termLink.insertThroughEdgeTermination(term)
				c.terminalTip = term
				result = append(result, c)
				return result, nil
			}

			newEdge := opp.Dual()
			cx, cy := newEdge.Start().X(), newEdge.Start().Y()
			bx, by := newEdge.End().X(), newEdge.End().Y()
			c.appendCrossing(cx, cy, zC, bx, by, zBk)

			w := &walker{tr: tr, zi: zi, c: c, closed: false, state: stateThroughEdge, curEdge: newEdge}
			if err := w.run(); err != nil {
				return nil, err
			}
			result = append(result, c)
			return result, nil

		case zC == zi:
			// Transfer through the next flat vertex C.
			c := newContour(tr.newContourID(), zi, levelIndex+1, levelIndex, false)
			c.appendVertex(A)
			c.appendVertex(C)
			tr.markVisited(rotate)

			tip := tr.tips.alloc(c, true, sweepIndex)
			pl.bufferVertexTip(tip)
			c.startTip = tip

			leaving := rotate.Reverse() // C -> A
			if leaving.IsPerimeter() {
				// Immediately reaches the perimeter: the contour
				// terminates at C without ever leaving the hull.
				// leaving is the hull edge arriving at A from C, which
				// belongs to the perimeter link preceding pl, not pl
				// itself, so look it up rather than reusing pl.
				termLink := tr.perimeter.linkFor(leaving)
				assert.True(termLink != nil, "perimeter link not found for terminating vertex edge")
				term := tr.tips.alloc(c, false, sweepIndex+1)
				termLink.bufferVertexTip(term)
				c.terminalTip = term
				result = append(result, c)
				return result, nil
			}

			w := &walker{
				tr: tr, zi: zi, c: c, closed: false,
				state: stateThroughVertex, curVertex: C, supportEdge: leaving,
			}
			if err := w.run(); err != nil {
				return nil, err
			}
			result = append(result, c)
			return result, nil

		default:
			// Neither sub-case matched for this triangle; rotate and
			// keep sweeping.
			next, stop, err := tr.rotateAroundVertexBounded(rotate)
			if err != nil {
				return nil, err
			}
			if stop {
				return result, nil
			}
			rotate = next
			sweepIndex++
		}
	}
}

// rotateAroundVertexBounded advances one step counter-clockwise around
// Start(e) (Reverse().Dual() on counter-clockwise triangles), returning stop=true if the
// rotation has reached the perimeter (the fan around a hull vertex is
// bounded, unlike an interior vertex's full circle).
func (tr *ContourTracer) rotateAroundVertexBounded(e tin.Edge) (next tin.Edge, stop bool, err error) {
	r := e.Reverse()
	if r.IsPerimeter() {
		return nil, true, nil
	}
	return r.Dual(), false, nil
}

func (tr *ContourTracer) closedLoopPhase(zi float64, levelIndex int) ([]*Contour, error) {
	var result []*Contour
	for _, e := range tr.t.Edges() {
		if tr.visited.has(int(e.Index())) {
			continue
		}
		A, B := e.Start(), e.End()
		if A == nil || B == nil {
			continue
		}
		zA, err := tr.value(A)
		if err != nil {
			return nil, err
		}
		zB, err := tr.value(B)
		if err != nil {
			return nil, err
		}

		if (zA-zi)*(zB-zi) < 0 {
			seed := e
			if zA < zi {
				seed = e.Dual()
				if seed.End() == nil {
					continue // shouldn't happen for an interior edge
				}
				zA, zB = zB, zA
			}
			c := newContour(tr.newContourID(), zi, levelIndex+1, levelIndex, true)
			ax, ay := seed.Start().X(), seed.Start().Y()
			bx, by := seed.End().X(), seed.End().Y()
			c.appendCrossing(ax, ay, zA, bx, by, zB)
			tr.markVisited(seed)

			w := &walker{tr: tr, zi: zi, c: c, closed: true, state: stateThroughEdge, curEdge: seed, startEdge: seed}
			if err := w.run(); err != nil {
				return nil, err
			}
			c.complete()
			result = append(result, c)
			continue
		}

		if zA == zi && zB == zi {
			if e.IsPerimeter() {
				continue
			}
			d := e.Dual()
			if d.End() == nil {
				continue
			}
			C := e.Forward().End()
			D := d.Forward().End()
			zC, err := tr.value(C)
			if err != nil {
				return nil, err
			}
			zD, err := tr.value(D)
			if err != nil {
				return nil, err
			}
			if zC == zi || zD == zi {
				// At least one opposite vertex lies exactly on the
				// level. No contour is seeded from this edge then,
				// including when only one of C, D is on the level and
				// the other is strictly below it.
				continue
			}
			highC := zC > zi
			highD := zD > zi
			if highC == highD {
				continue
			}

			var seed tin.Edge
			if highC {
				seed = e
			} else {
				seed = d
			}
			if tr.visited.has(int(seed.Index())) {
				continue
			}

			c := newContour(tr.newContourID(), zi, levelIndex+1, levelIndex, true)
			c.appendVertex(seed.Start())
			c.appendVertex(seed.End())
			tr.markVisited(seed)

			support := seed.Forward() // new vertex -> high third vertex
			w := &walker{
				tr: tr, zi: zi, c: c, closed: true,
				state: stateThroughVertex, curVertex: seed.End(), supportEdge: support,
				startVertex: seed.Start(),
			}
			if err := w.run(); err != nil {
				return nil, err
			}
			c.complete()
			result = append(result, c)
		}
	}
	return result, nil
}

// walker drives the state machine of spec §4.2 forward from a seeded
// starting position until the contour terminates (perimeter reached)
// or closes (back to its own start).
type walker struct {
	tr *ContourTracer
	zi float64
	c  *Contour

	closed bool
	state  walkState

	curEdge     tin.Edge // valid when state == stateThroughEdge
	curVertex   tin.Vertex
	supportEdge tin.Edge // valid when state == stateThroughVertex

	startEdge   tin.Edge
	startVertex tin.Vertex
}

func (w *walker) run() error {
	first := true
	for {
		if w.closed && !first {
			switch w.state {
			case stateThroughEdge:
				if w.startVertex == nil && w.curEdge.Index() == w.startEdge.Index() {
					return nil
				}
			case stateThroughVertex:
				if w.startVertex != nil && w.curVertex.ID() == w.startVertex.ID() {
					return nil
				}
			}
		}
		first = false

		var done bool
		var err error
		switch w.state {
		case stateThroughEdge:
			done, err = w.stepThroughEdge()
		case stateThroughVertex:
			done, err = w.stepThroughVertex()
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (w *walker) terminateOnEdge(exit tin.Edge, za, zb float64) {
	ax, ay := exit.Start().X(), exit.Start().Y()
	bx, by := exit.End().X(), exit.End().Y()
	w.c.appendCrossing(ax, ay, za, bx, by, zb)
	w.tr.markVisited(exit)

	pl := w.tr.perimeter.linkFor(exit)
	assert.True(pl != nil, "terminateOnEdge: exit edge not found in perimeter list")
	tip := w.tr.tips.alloc(w.c, false, 0)
	pl.insertThroughEdgeTermination(tip)
	w.c.terminalTip = tip
}

// stepThroughEdge advances one edge crossing. w.curEdge is oriented
// so z(Start) > zi > z(End) (spec's THROUGH_EDGE invariant).
func (w *walker) stepThroughEdge() (bool, error) {
	tr := w.tr
	e := w.curEdge
	A, B := e.Start(), e.End()
	zA, err := tr.value(A)
	if err != nil {
		return false, err
	}
	zB, err := tr.value(B)
	if err != nil {
		return false, err
	}
	assert.True(zA > w.zi && w.zi > zB, "THROUGH_EDGE entry invariant violated")

	fwd := e.Forward()
	C := fwd.End()
	if C == nil {
		return false, newError(StructuralFailure, "edge %d: forward face has no third vertex", e.Index())
	}
	zC, err := tr.value(C)
	if err != nil {
		return false, err
	}

	switch {
	case zC < w.zi:
		exit := e.Reverse() // C -> A
		if exit.IsPerimeter() {
			w.terminateOnEdge(exit, zC, zA)
			return true, nil
		}
		newEdge := exit.Dual() // A -> C, z(A) > zi > z(C)
		ax, ay := newEdge.Start().X(), newEdge.Start().Y()
		cx, cy := newEdge.End().X(), newEdge.End().Y()
		w.c.appendCrossing(ax, ay, zA, cx, cy, zC)
		tr.markVisited(newEdge)
		tr.edgeTransits++
		w.curEdge = newEdge
		return false, nil

	case zC > w.zi:
		exit := fwd // B -> C
		if exit.IsPerimeter() {
			w.terminateOnEdge(exit, zB, zC)
			return true, nil
		}
		newEdge := exit.Dual() // C -> B, z(C) > zi > z(B)
		cx, cy := newEdge.Start().X(), newEdge.Start().Y()
		bx, by := newEdge.End().X(), newEdge.End().Y()
		w.c.appendCrossing(cx, cy, zC, bx, by, zB)
		tr.markVisited(newEdge)
		tr.edgeTransits++
		w.curEdge = newEdge
		return false, nil

	default: // zC == zi
		support := e.Reverse() // C -> A, z(A) > zi
		tr.markVisited(support)
		w.c.appendVertex(C)
		w.state = stateThroughVertex
		w.curVertex = C
		w.supportEdge = support
		return false, nil
	}
}

// stepThroughVertex rotates counter-clockwise around w.curVertex starting
// from w.supportEdge, looking for an exit or a transfer (spec's
// THROUGH_VERTEX step).
func (w *walker) stepThroughVertex() (bool, error) {
	tr := w.tr
	V := w.curVertex
	support := w.supportEdge
	tr.markVisited(support)

	rotate := support
	maxSteps := 2*len(tr.t.Edges()) + 8
	for step := 0; step < maxSteps; step++ {
		opp := rotate.Forward() // K -> G
		K, G := opp.Start(), opp.End()
		zK, err := tr.value(K)
		if err != nil {
			return false, err
		}
		zG, err := tr.value(G)
		if err != nil {
			return false, err
		}

		switch {
		case zG > w.zi && w.zi > zK:
			if opp.IsPerimeter() {
				w.terminateOnEdge(opp, zK, zG)
				return true, nil
			}
			newEdge := opp.Dual() // G -> K
			gx, gy := newEdge.Start().X(), newEdge.Start().Y()
			kx, ky := newEdge.End().X(), newEdge.End().Y()
			w.c.appendCrossing(gx, gy, zG, kx, ky, zK)
			tr.markVisited(newEdge)
			tr.edgeTransits++
			w.state = stateThroughEdge
			w.curEdge = newEdge
			return false, nil

		case zG == w.zi && w.zi > zK:
			newSupport := opp.Forward() // G -> V
			tr.markVisited(opp)
			tr.vertexTransits++
			w.c.appendVertex(G)
			w.curVertex = G
			w.supportEdge = newSupport
			return false, nil

		default:
			if rotate.Reverse().IsPerimeter() {
				return false, newError(StructuralFailure,
					"through-vertex sweep at vertex %v reached the perimeter without a transition", V.ID())
			}
			rotate = rotate.Reverse().Dual()
		}
	}
	return false, newError(StructuralFailure,
		"through-vertex sweep at vertex %v did not complete within one full turn", V.ID())
}

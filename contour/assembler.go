package contour

import "github.com/gwlucastrig/go-tincontour/tin"

// traverseState is the per-contour side table the assembler needs
// (spec's "traversedForward"/"traversedBackward"). It lives outside
// Contour, keyed by contour ID, so Contour itself stays a read-only
// value once the tracer has produced it (contour.go's doc comment).
type traverseState struct {
	forward, backward bool
}

// RegionAssembler stitches the tracer's open contours and the hull's
// perimeter arcs into closed ContourRegion polygons, and turns every
// non-empty closed contour into a single-member region (spec C5).
//
// Grounded on recast.mergeRegionHoles' walk-and-splice pattern: both
// chase a linked structure (there, an edge ring; here, a TipLink
// chain plus the cyclic PerimeterLink list) until the walk returns to
// its own origin.
type RegionAssembler struct {
	z         float64
	zLevels   []float64
	val       tin.Valuator
	perimeter *perimeterList
	states    map[int64]*traverseState
}

func newRegionAssembler(z float64, zLevels []float64, val tin.Valuator, perimeter *perimeterList) *RegionAssembler {
	return &RegionAssembler{
		z:         z,
		zLevels:   zLevels,
		val:       val,
		perimeter: perimeter,
		states:    make(map[int64]*traverseState),
	}
}

func (ra *RegionAssembler) stateFor(c *Contour) *traverseState {
	s, ok := ra.states[c.ID()]
	if !ok {
		s = &traverseState{}
		ra.states[c.ID()] = s
	}
	return s
}

// assemble builds every region for this level: the boundary-wrapping
// special case when there are no open contours, the stitched regions
// from open contours and perimeter arcs otherwise, and one
// single-member region per non-empty closed contour.
func (ra *RegionAssembler) assemble(open, closedLoops []*Contour, nextContourID *int64) []*ContourRegion {
	var regions []*ContourRegion

	if len(open) == 0 {
		regions = append(regions, ra.buildWholeHullRegion(nextContourID))
	} else {
		n := len(ra.perimeter.links)
		for i := 0; i < n; i++ {
			pl := &ra.perimeter.links[i]
			for t := pl.tip0; t != nil; t = t.next {
				st := ra.stateFor(t.contour)
				if t.start && !st.forward {
					regions = append(regions, ra.stitchFrom(t, true, nextContourID))
				} else if !t.start && !st.backward {
					regions = append(regions, ra.stitchFrom(t, false, nextContourID))
				}
			}
		}
	}

	for _, c := range closedLoops {
		if c.isEmpty() {
			continue
		}
		region := &ContourRegion{typ: Interior, members: []regionMember{{contour: c, forward: true}}}
		region.computeGeometry()
		if region.signedArea > 0 {
			region.regionIndex = c.LeftIndex()
		} else {
			region.regionIndex = c.RightIndex()
		}
		regions = append(regions, region)
	}

	return regions
}

// buildWholeHullRegion handles spec §4.4's special case: no open
// contours at this level, so the entire hull is one Boundary region.
func (ra *RegionAssembler) buildWholeHullRegion(nextContourID *int64) *ContourRegion {
	*nextContourID++
	pl := ra.perimeter.first()
	zA0 := ra.val(pl.edge.Start())
	leftIndex := len(ra.zLevels)
	for i, zi := range ra.zLevels {
		if zi > zA0 {
			leftIndex = i
			break
		}
	}
	boundary := newContour(*nextContourID, ra.z, leftIndex, -1, false)
	n := len(ra.perimeter.links)
	for i := 0; i < n; i++ {
		boundary.appendVertex(pl.edge.Start())
		pl = pl.next
	}
	// Close the ring explicitly; a whole-hull boundary contour behaves
	// like a closed loop even though it carries rightIndex == -1.
	boundary.closedLoop = true
	boundary.complete()

	region := &ContourRegion{typ: Perimeter, members: []regionMember{{contour: boundary, forward: true}}}
	region.computeGeometry()
	region.regionIndex = leftIndex
	return region
}

// stitchFrom runs the six-step stitching loop of spec §4.4 starting
// at tip `start`, walked in direction `forward`.
func (ra *RegionAssembler) stitchFrom(start *TipLink, forward bool, nextContourID *int64) *ContourRegion {
	region := &ContourRegion{typ: Perimeter}
	leftIndex := leftIndexOf(start.contour, forward)

	node := start
	dir := forward
	for {
		// 1. Emit member.
		region.members = append(region.members, regionMember{contour: node.contour, forward: dir})
		markTraversed(ra.stateFor(node.contour), dir)

		// 2. Create a new Boundary contour seeded from node's far end.
		*nextContourID++
		boundary := newContour(*nextContourID, ra.z, leftIndex, -1, false)
		var farTip *TipLink
		if dir {
			x, y := node.contour.last()
			boundary.append(x, y)
			farTip = node.contour.terminalTip
		} else {
			x, y := node.contour.first()
			boundary.append(x, y)
			farTip = node.contour.startTip
		}

		// 3. Advance across the perimeter, starting from the far tip's
		// own position (where the contour we just emitted actually
		// meets the hull), to the next tipped link.
		next := farTip.next
		pl := farTip.perimeterLink
		for next == nil {
			pl = pl.next
			boundary.appendVertex(pl.edge.Start())
			next = pl.tip0
		}
		node = next

		// 4. Append the junction coordinates at node's own end.
		if node.start {
			x, y := node.contour.first()
			boundary.append(x, y)
		} else {
			x, y := node.contour.last()
			boundary.append(x, y)
		}

		// 5. Emit the boundary contour as a member.
		region.members = append(region.members, regionMember{contour: boundary, forward: true})

		// 6. Close or continue.
		if node == start {
			break
		}
		dir = node.start
	}

	region.computeGeometry()
	region.regionIndex = leftIndex
	return region
}

func leftIndexOf(c *Contour, forward bool) int {
	if forward {
		return c.LeftIndex()
	}
	return c.RightIndex()
}

func markTraversed(st *traverseState, forward bool) {
	if forward {
		st.forward = true
	} else {
		st.backward = true
	}
}

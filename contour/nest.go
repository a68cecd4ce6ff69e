package contour

import "sort"

// NestOrganiser assigns each region its immediate enclosing parent by
// testing one representative point per region against every larger
// region's boundary (spec C6).
//
// Grounded on recast.compareHoles/compareDiagDist: both sort a region
// set once by a scalar key and then do an O(n²) pairwise pass over
// the sorted order rather than building a spatial index, which is the
// right trade for the region counts this package deals with.
type NestOrganiser struct{}

// Organise sorts regions by descending absArea and assigns parents
// in-place, returning the root regions (those with no parent).
func (NestOrganiser) Organise(regions []*ContourRegion) []*ContourRegion {
	ordered := make([]*ContourRegion, len(regions))
	copy(ordered, regions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].absArea > ordered[j].absArea })

	for i, ri := range ordered {
		for j := i + 1; j < len(ordered); j++ {
			rj := ordered[j]
			if rj.typ == Perimeter {
				continue
			}
			x, y := rj.TestPoint()
			if pointInPolygon(x, y, ringOf(ri.members)) {
				rj.parent = ri
			}
		}
	}

	var roots []*ContourRegion
	for _, r := range ordered {
		r.children = nil
	}
	for _, r := range ordered {
		if r.parent != nil {
			r.parent.children = append(r.parent.children, r)
		} else {
			roots = append(roots, r)
		}
	}
	return roots
}

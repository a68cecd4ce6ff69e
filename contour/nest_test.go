package contour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionFromRing(typ RegionType, ring []float64) *ContourRegion {
	c := newContour(0, 0, 0, 0, true)
	for i := 0; i < len(ring); i += 2 {
		c.append(ring[i], ring[i+1])
	}
	r := &ContourRegion{typ: typ, members: []regionMember{{contour: c, forward: true}}}
	r.computeGeometry()
	return r
}

func TestNestOrganiserNestsSmallerInsideLarger(t *testing.T) {
	outer := regionFromRing(Perimeter, []float64{0, 0, 10, 0, 10, 10, 0, 10})
	inner := regionFromRing(Interior, []float64{4, 4, 6, 4, 6, 6, 4, 6})

	roots := (NestOrganiser{}).Organise([]*ContourRegion{outer, inner})

	require.Len(t, roots, 1)
	assert.Same(t, outer, roots[0])
	require.Len(t, outer.Children(), 1)
	assert.Same(t, inner, outer.Children()[0])
	assert.Same(t, outer, inner.Parent())
}

func TestNestOrganiserDisjointRegionsAreBothRoots(t *testing.T) {
	a := regionFromRing(Interior, []float64{0, 0, 2, 0, 2, 2, 0, 2})
	b := regionFromRing(Interior, []float64{10, 10, 12, 10, 12, 12, 10, 12})

	roots := (NestOrganiser{}).Organise([]*ContourRegion{a, b})

	assert.Len(t, roots, 2)
	assert.Nil(t, a.Parent())
	assert.Nil(t, b.Parent())
}

func TestNestOrganiserThreeLevelNesting(t *testing.T) {
	outer := regionFromRing(Perimeter, []float64{0, 0, 20, 0, 20, 20, 0, 20})
	middle := regionFromRing(Interior, []float64{4, 4, 16, 4, 16, 16, 4, 16})
	inner := regionFromRing(Interior, []float64{8, 8, 12, 8, 12, 12, 8, 12})

	roots := (NestOrganiser{}).Organise([]*ContourRegion{outer, middle, inner})

	require.Len(t, roots, 1)
	assert.Same(t, outer, roots[0])
	require.Len(t, outer.Children(), 1)
	assert.Same(t, middle, outer.Children()[0])
	require.Len(t, middle.Children(), 1)
	assert.Same(t, inner, middle.Children()[0])

	assert.InDelta(t, 400.0-144.0, outer.AdjustedArea(), 1e-9)
	assert.InDelta(t, 144.0-16.0, middle.AdjustedArea(), 1e-9)
	assert.InDelta(t, 16.0, inner.AdjustedArea(), 1e-9)
}

func TestNestOrganiserPerimeterRegionsNeverBecomeChildren(t *testing.T) {
	a := regionFromRing(Perimeter, []float64{0, 0, 20, 0, 20, 20, 0, 20})
	b := regionFromRing(Perimeter, []float64{4, 4, 16, 4, 16, 16, 4, 16})

	roots := (NestOrganiser{}).Organise([]*ContourRegion{a, b})

	assert.Len(t, roots, 2, "two Perimeter-typed regions never nest under one another")
}

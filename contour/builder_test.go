package contour

import (
	"errors"
	"math"
	"testing"

	"github.com/gwlucastrig/go-tincontour/contour/internal/fixtures"
	"github.com/gwlucastrig/go-tincontour/tin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T, name string) (*fixtures.Scenario, *Result) {
	t.Helper()
	sc, err := fixtures.Load(name)
	require.NoError(t, err)
	res, err := Builder{}.Build(sc.TIN, sc.Valuator(), sc.Levels, true, nil)
	require.NoError(t, err)
	return sc, res
}

func TestBuildRejectsNilTIN(t *testing.T) {
	_, err := Builder{}.Build(nil, nil, []float64{1}, false, nil)
	require.Error(t, err)
	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, InvalidTIN, ce.Kind)
}

func TestBuildRejectsEmptyLevels(t *testing.T) {
	sc, err := fixtures.Load("s1_single_peak")
	require.NoError(t, err)

	_, err = Builder{}.Build(sc.TIN, sc.Valuator(), nil, false, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContourLevels))
}

func TestBuildRejectsNonIncreasingLevels(t *testing.T) {
	sc, err := fixtures.Load("s1_single_peak")
	require.NoError(t, err)

	_, err = Builder{}.Build(sc.TIN, sc.Valuator(), []float64{1, 1}, false, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContourLevels))

	_, err = Builder{}.Build(sc.TIN, sc.Valuator(), []float64{2, 1}, false, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContourLevels))
}

func TestBuildSinglePeakIntegrity(t *testing.T) {
	_, res := buildFixture(t, "s1_single_peak")

	require.Len(t, res.Contours(), 2, "the traced ring plus the synthesized whole-hull boundary")
	require.Len(t, res.Regions(), 2, "one Interior region inside the ring, one Perimeter region outside it")
	require.NoError(t, res.CheckIntegrity())

	roots := res.RootRegions()
	require.Len(t, roots, 1)
	assert.Equal(t, Perimeter, roots[0].Type())
	require.Len(t, roots[0].Children(), 1)
	assert.Equal(t, Interior, roots[0].Children()[0].Type())
}

func TestBuildValleyIntegrity(t *testing.T) {
	_, res := buildFixture(t, "s3_valley")

	require.Len(t, res.Regions(), 2)
	require.NoError(t, res.CheckIntegrity())
}

func TestBuildTwoDisjointPeaksIntegrity(t *testing.T) {
	_, res := buildFixture(t, "s4_two_disjoint_peaks")

	require.Len(t, res.Contours(), 3, "two traced rings plus the synthesized whole-hull boundary")
	require.NoError(t, res.CheckIntegrity())

	roots := res.RootRegions()
	require.Len(t, roots, 1, "one outer Perimeter region spans both bases")
	assert.Len(t, roots[0].Children(), 2, "each peak nests its own Interior ring independently")
}

func TestBuildNestedPeaksIntegrity(t *testing.T) {
	_, res := buildFixture(t, "s5_nested_peaks")

	require.Len(t, res.Contours(), 4, "two traced rings plus one whole-hull boundary per level")
	require.NoError(t, res.CheckIntegrity())

	// Each level synthesizes its own whole-hull Perimeter region, so
	// both the z=1 and the z=3 pass contribute an (identically shaped)
	// root; which of the two a given Interior ring nests under is not
	// pinned down when their test geometry coincides, so only the
	// root count and the total nesting depth are checked here.
	roots := res.RootRegions()
	require.Len(t, roots, 2)
	for _, r := range roots {
		assert.Equal(t, Perimeter, r.Type())
	}

	var deepestChild *ContourRegion
	for _, r := range roots {
		for _, c := range r.Children() {
			if len(c.Children()) > 0 {
				deepestChild = c
			}
		}
	}
	require.NotNil(t, deepestChild, "the apex ring must nest inside the plateau ring somewhere in the tree")
	assert.Len(t, deepestChild.Children(), 1)
}

func TestBuildOpenRampSplitsHullIntoTwoRegions(t *testing.T) {
	_, res := buildFixture(t, "s6_open_ramp")

	require.Len(t, res.Contours(), 3, "one open traced contour plus two stitched perimeter arcs")
	foundOpen := false
	for _, c := range res.Contours() {
		if !c.ClosedLoop() {
			foundOpen = true
		}
	}
	assert.True(t, foundOpen, "the traced ramp contour must still be present and open")

	require.Len(t, res.Regions(), 2)
	for _, r := range res.Regions() {
		assert.Equal(t, Perimeter, r.Type())
	}
	require.NoError(t, res.CheckIntegrity())

	roots := res.RootRegions()
	assert.Len(t, roots, 2, "two Perimeter regions never nest under one another")
}

func TestBuildFlatThroughVertexWholeHullRegion(t *testing.T) {
	_, res := buildFixture(t, "s2_flat_through_vertex")

	require.Len(t, res.Contours(), 1, "every crossing lies exactly on a vertex, so the sole contour is the synthesized whole-hull boundary")
	require.Len(t, res.Regions(), 1)
	assert.Equal(t, Perimeter, res.Regions()[0].Type())
	require.NoError(t, res.CheckIntegrity())
}

func TestBuildWithoutRegionsLeavesRegionsEmpty(t *testing.T) {
	sc, err := fixtures.Load("s1_single_peak")
	require.NoError(t, err)

	res, err := Builder{}.Build(sc.TIN, sc.Valuator(), sc.Levels, false, nil)
	require.NoError(t, err)

	assert.Empty(t, res.Regions())
	assert.Empty(t, res.RootRegions())
	require.Len(t, res.Contours(), 1)
}

func TestBuildDiagnosticCountersAreNonNegative(t *testing.T) {
	_, res := buildFixture(t, "s5_nested_peaks")
	assert.GreaterOrEqual(t, res.EdgeTransits(), int64(0))
	assert.GreaterOrEqual(t, res.VertexTransits(), int64(0))
}

func TestBuildEnvelopeIsClosedHullPolygon(t *testing.T) {
	_, res := buildFixture(t, "s1_single_peak")
	env := res.Envelope()
	require.True(t, len(env) >= 8)
	// First and last point must coincide, closing the ring.
	n := len(env)
	assert.Equal(t, env[0], env[n-2])
	assert.Equal(t, env[1], env[n-1])
}

func TestBuildRejectsNonFiniteValuator(t *testing.T) {
	sc, err := fixtures.Load("s1_single_peak")
	require.NoError(t, err)

	nanValuator := func(v tin.Vertex) float64 { return math.NaN() }
	_, err = Builder{}.Build(sc.TIN, nanValuator, sc.Levels, false, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
}

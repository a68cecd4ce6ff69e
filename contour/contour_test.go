package contour

import (
	"math"
	"testing"

	"github.com/gwlucastrig/go-tincontour/tin/meshtin"
	"github.com/stretchr/testify/assert"
)

func TestContourAppendDedupesConsecutivePoints(t *testing.T) {
	c := newContour(1, 0.5, 0, 1, false)
	c.append(0, 0)
	c.append(1, 1)
	c.append(1, 1)
	c.append(2, 2)

	assert.Equal(t, 3, c.NumPoints())
	x, y := c.Point(1)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
}

func TestContourAppendVertex(t *testing.T) {
	c := newContour(1, 0, 0, 1, false)
	v := meshtin.NewVertex(0, 3, 4, 0)
	c.appendVertex(v)

	x, y := c.first()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}

func TestContourAppendCrossing(t *testing.T) {
	c := newContour(1, 5, 0, 1, false)
	c.appendCrossing(0, 0, 0, 10, 0, 10)

	x, y := c.first()
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
}

func TestContourCompleteExactClosure(t *testing.T) {
	c := newContour(1, 0, 0, -1, true)
	c.append(0, 0)
	c.append(1, 0)
	c.append(1, 1)
	c.complete()

	assert.Equal(t, 4, c.NumPoints())
	fx, fy := c.Point(0)
	lx, ly := c.Point(c.NumPoints() - 1)
	assert.Equal(t, fx, lx)
	assert.Equal(t, fy, ly)
}

func TestContourCompleteSnapsNearlyClosedLoop(t *testing.T) {
	c := newContour(1, 0, 0, -1, true)
	c.append(0, 0)
	c.append(1, 0)
	c.append(1, 1)
	// A point numerically indistinguishable from the start within the
	// 16-ulp tolerance, but not bit-identical.
	nearStart := math.Nextafter(0, 1)
	nearStart = math.Nextafter(nearStart, 1)
	c.append(nearStart, nearStart)

	before := c.NumPoints()
	c.complete()

	assert.Equal(t, before, c.NumPoints(), "snapping rewrites the last point in place, it doesn't append")
	lx, ly := c.last()
	assert.Equal(t, 0.0, lx)
	assert.Equal(t, 0.0, ly)
}

func TestContourCompleteNoopWhenNotClosedLoop(t *testing.T) {
	c := newContour(1, 0, 0, 1, false)
	c.append(0, 0)
	c.append(1, 1)
	c.complete()
	assert.Equal(t, 2, c.NumPoints())
}

func TestContourIsEmpty(t *testing.T) {
	c := newContour(1, 0, 0, 1, false)
	assert.True(t, c.isEmpty())
	c.append(0, 0)
	assert.True(t, c.isEmpty(), "a single point still traces no segment")
	c.append(1, 1)
	assert.False(t, c.isEmpty())
}

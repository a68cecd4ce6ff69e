package contour

import (
	"testing"

	"github.com/gwlucastrig/go-tincontour/tin/meshtin"
	"github.com/stretchr/testify/assert"
)

func newTestPerimeterLink() *PerimeterLink {
	pl := &perimeterList{links: make([]PerimeterLink, 1)}
	return &pl.links[0]
}

func TestInsertThroughEdgeStartPrepends(t *testing.T) {
	p := newTestPerimeterLink()
	arena := newTipArena(4)

	t1 := arena.alloc(nil, true, 0)
	p.insertThroughEdgeStart(t1)
	assert.Same(t, t1, p.tip0)
	assert.Same(t, t1, p.tip1)

	t2 := arena.alloc(nil, true, 0)
	p.insertThroughEdgeStart(t2)
	assert.Same(t, t2, p.tip0, "a newer start is prepended ahead of the older one")
	assert.Same(t, t1, p.tip1)
	assert.Same(t, t1, t2.next)
	assert.Same(t, t2, t1.prior)
}

func TestInsertThroughEdgeTerminationAppends(t *testing.T) {
	p := newTestPerimeterLink()
	arena := newTipArena(4)

	t1 := arena.alloc(nil, false, 0)
	p.insertThroughEdgeTermination(t1)
	assert.Same(t, t1, p.tip0)
	assert.Same(t, t1, p.tip1)

	t2 := arena.alloc(nil, false, 0)
	p.insertThroughEdgeTermination(t2)
	assert.Same(t, t2, p.tip1, "a newer termination is appended after the older one")
	assert.Same(t, t1, p.tip0)
	assert.Same(t, t2, t1.next)
	assert.Same(t, t1, t2.prior)
}

func TestMergeVertexTipsOrdersBySweepIndexAscending(t *testing.T) {
	p := newTestPerimeterLink()
	arena := newTipArena(8)

	edgeTip := arena.alloc(nil, false, 0)
	p.insertThroughEdgeTermination(edgeTip)

	v3 := arena.alloc(nil, true, 3)
	v1 := arena.alloc(nil, true, 1)
	v2 := arena.alloc(nil, true, 2)
	p.bufferVertexTip(v3)
	p.bufferVertexTip(v1)
	p.bufferVertexTip(v2)

	p.mergeVertexTips()

	assert.Empty(t, p.pendingVertexTips)

	var order []*TipLink
	p.Tips(func(tl *TipLink) { order = append(order, tl) })
	assert.Equal(t, []*TipLink{v1, v2, v3, edgeTip}, order)
	assert.Same(t, v1, p.tip0)
	assert.Same(t, edgeTip, p.tip1)
}

func TestMergeVertexTipsNoopWhenEmpty(t *testing.T) {
	p := newTestPerimeterLink()
	arena := newTipArena(2)
	edgeTip := arena.alloc(nil, true, 0)
	p.insertThroughEdgeStart(edgeTip)

	p.mergeVertexTips()

	assert.Same(t, edgeTip, p.tip0)
	assert.Same(t, edgeTip, p.tip1)
}

func TestTipArenaPointerStabilityAcrossGrowth(t *testing.T) {
	a := newTipArena(1) // force at least one grow
	var tips []*TipLink
	for i := 0; i < 64; i++ {
		tips = append(tips, a.alloc(nil, true, i))
	}
	for i, tl := range tips {
		assert.Equal(t, i, tl.sweepIndex, "pointer must still reference its own tip after later growth")
	}
}

func TestPerimeterListLinkForAndCycle(t *testing.T) {
	v := []*meshtin.Vertex{
		meshtin.NewVertex(0, 0, 0, 0),
		meshtin.NewVertex(1, 1, 0, 0),
		meshtin.NewVertex(2, 1, 1, 0),
		meshtin.NewVertex(3, 0, 1, 0),
		meshtin.NewVertex(4, 0.5, 0.5, 1),
	}
	mesh := meshtin.New(v, [][3]int{{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}})

	pl := newPerimeterList(mesh.PerimeterEdges())
	assert.Equal(t, 4, len(pl.links))

	first := pl.first()
	assert.NotNil(t, first)

	cur := first
	for i := 0; i < 4; i++ {
		cur = cur.next
	}
	assert.Same(t, first, cur, "the perimeter list must cycle back after one full lap")

	got := pl.linkFor(first.edge)
	assert.Same(t, first, got)
}

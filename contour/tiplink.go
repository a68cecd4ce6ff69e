package contour

import (
	"sort"

	"github.com/gwlucastrig/go-tincontour/tin"
)

// TipLink is one end of an open contour anchored to a perimeter edge
// (spec C2). sweepIndex is 0 for a through-edge tip, and > 0 for a
// through-vertex tip, recording its counter-clockwise sweep position around
// the shared perimeter vertex (spec §4.3).
type TipLink struct {
	perimeterLink *PerimeterLink
	contour       *Contour
	start         bool
	sweepIndex    int
	next, prior   *TipLink
}

// Contour is the contour this tip anchors.
func (t *TipLink) Contour() *Contour { return t.contour }

// Start reports whether the contour begins (true) or terminates
// (false) at this tip.
func (t *TipLink) Start() bool { return t.start }

// PerimeterLink is one perimeter edge, a node of the cyclic
// counter-clockwise perimeter list, owning the ordered chain of tips
// that anchor to it (spec C3).
//
// Grounded on detour.NodePool's index-addressed arena: the full set
// of PerimeterLinks is known up front (one per perimeter edge) so
// they are allocated once into a fixed-size backing slice and never
// reallocated, the way NodePool preallocates its Node slice to
// maxNodes. TipLinks, whose total count isn't known ahead of time,
// grow from a companion arena (tipArena, below) instead.
type PerimeterLink struct {
	index int
	edge  tin.Edge
	next  *PerimeterLink
	prior *PerimeterLink

	tip0, tip1        *TipLink
	pendingVertexTips []*TipLink
}

// Edge is the perimeter half-edge this link represents.
func (p *PerimeterLink) Edge() tin.Edge { return p.edge }

// Next is the next perimeter edge counter-clockwise around the hull.
func (p *PerimeterLink) Next() *PerimeterLink { return p.next }

// Tips walks this link's tip chain from tip0 to tip1, calling fn for
// each tip in order.
func (p *PerimeterLink) Tips(fn func(*TipLink)) {
	for t := p.tip0; t != nil; t = t.next {
		fn(t)
	}
}

// insertThroughEdgeStart prepends a through-edge start tip to the
// chain: "starts are prepended to tip0" (spec §4.3), since the
// descending edge of a start sits upstream of whatever already
// tipped this perimeter edge.
func (p *PerimeterLink) insertThroughEdgeStart(t *TipLink) {
	t.perimeterLink = p
	t.next = p.tip0
	t.prior = nil
	if p.tip0 != nil {
		p.tip0.prior = t
	} else {
		p.tip1 = t
	}
	p.tip0 = t
}

// insertThroughEdgeTermination appends a through-edge termination tip
// after tip1: "terminations are appended after tip1" (spec §4.3),
// since the ascending edge of a termination sits downstream.
func (p *PerimeterLink) insertThroughEdgeTermination(t *TipLink) {
	t.perimeterLink = p
	t.prior = p.tip1
	t.next = nil
	if p.tip1 != nil {
		p.tip1.next = t
	} else {
		p.tip0 = t
	}
	p.tip1 = t
}

// bufferVertexTip stashes a through-vertex tip (sweepIndex > 0) for
// later merging, since its ordering relative to other vertex tips on
// the same perimeter vertex isn't known until all levels are traced.
func (p *PerimeterLink) bufferVertexTip(t *TipLink) {
	t.perimeterLink = p
	p.pendingVertexTips = append(p.pendingVertexTips, t)
}

// mergeVertexTips sorts this link's buffered through-vertex tips by
// sweepIndex ascending and splices them in as a block at the front of
// the chain, so vertex tips precede edge tips when walked from tip0
// forward (spec §4.3). Called once, after every level has been
// traced.
func (p *PerimeterLink) mergeVertexTips() {
	if len(p.pendingVertexTips) == 0 {
		return
	}
	sort.Slice(p.pendingVertexTips, func(i, j int) bool {
		return p.pendingVertexTips[i].sweepIndex < p.pendingVertexTips[j].sweepIndex
	})
	for i, t := range p.pendingVertexTips {
		t.prior = nil
		t.next = nil
		if i > 0 {
			prev := p.pendingVertexTips[i-1]
			prev.next = t
			t.prior = prev
		}
	}
	head := p.pendingVertexTips[0]
	tail := p.pendingVertexTips[len(p.pendingVertexTips)-1]
	tail.next = p.tip0
	if p.tip0 != nil {
		p.tip0.prior = tail
	} else {
		p.tip1 = tail
	}
	p.tip0 = head
	p.pendingVertexTips = nil
}

// perimeterList is the cyclic, counter-clockwise doubly linked list
// of PerimeterLinks around the hull (spec C3), built once per build
// from tin.TIN.PerimeterEdges and reused across every contour level.
type perimeterList struct {
	links []PerimeterLink
}

func newPerimeterList(edges []tin.Edge) *perimeterList {
	pl := &perimeterList{links: make([]PerimeterLink, len(edges))}
	n := len(edges)
	for i, e := range edges {
		pl.links[i].index = i
		pl.links[i].edge = e
	}
	for i := range pl.links {
		pl.links[i].next = &pl.links[(i+1)%n]
		pl.links[i].prior = &pl.links[(i-1+n)%n]
	}
	return pl
}

func (pl *perimeterList) first() *PerimeterLink {
	if len(pl.links) == 0 {
		return nil
	}
	return &pl.links[0]
}

// linkFor returns the PerimeterLink wrapping e, or nil if e is not
// one of this list's perimeter edges.
func (pl *perimeterList) linkFor(e tin.Edge) *PerimeterLink {
	for i := range pl.links {
		if pl.links[i].edge.Index() == e.Index() {
			return &pl.links[i]
		}
	}
	return nil
}

func (pl *perimeterList) mergeAllVertexTips() {
	for i := range pl.links {
		pl.links[i].mergeVertexTips()
	}
}

// tipArena allocates TipLinks from a growable backing slice. Pointers
// handed out by alloc stay valid across growth: append only ever
// copies still-unwritten-through elements to a new backing array, and
// every write to a previously allocated tip happens through the
// pointer already returned, never by re-indexing the arena.
type tipArena struct {
	tips []TipLink
}

func newTipArena(capacityHint int) *tipArena {
	return &tipArena{tips: make([]TipLink, 0, capacityHint)}
}

func (a *tipArena) alloc(c *Contour, start bool, sweepIndex int) *TipLink {
	a.tips = append(a.tips, TipLink{contour: c, start: start, sweepIndex: sweepIndex})
	return &a.tips[len(a.tips)-1]
}

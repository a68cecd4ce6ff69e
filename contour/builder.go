package contour

import (
	"math"

	"github.com/gwlucastrig/go-tincontour/tin"
)

// Builder runs a complete contour-and-region extraction over a TIN
// for a list of iso-levels (spec §6.3).
//
// Grounded on recast's module-level free functions (BuildContours,
// BuildRegions) rather than a stateful object: Builder carries no
// fields of its own, mirroring that a build is a single pure pass
// over its inputs with no persistent configuration to hold between
// calls.
type Builder struct{}

// Result is everything a Build call produces: the traced contours,
// optionally the regions built from them, and diagnostic counters.
type Result struct {
	openContours      []*Contour
	closedContours    []*Contour
	perimeterContours []*Contour
	regions           []*ContourRegion
	rootRegions       []*ContourRegion
	envelope          []float64
	edgeTransits      int64
	vertexTransits    int64
}

// Contours concatenates open, closed and (when regions were built)
// perimeter-boundary contours.
func (r *Result) Contours() []*Contour {
	out := make([]*Contour, 0, len(r.openContours)+len(r.closedContours)+len(r.perimeterContours))
	out = append(out, r.openContours...)
	out = append(out, r.closedContours...)
	out = append(out, r.perimeterContours...)
	return out
}

// Regions is empty unless buildRegions was requested.
func (r *Result) Regions() []*ContourRegion { return r.regions }

// RootRegions are the regions with no parent.
func (r *Result) RootRegions() []*ContourRegion { return r.rootRegions }

// Envelope is the hull perimeter polygon, closed with a copy of its
// first point at the end.
func (r *Result) Envelope() []float64 { return r.envelope }

// EdgeTransits is the number of edge crossings the walk performed
// across every level, for diagnostics.
func (r *Result) EdgeTransits() int64 { return r.edgeTransits }

// VertexTransits is the number of through-vertex transfers the walk
// performed across every level, for diagnostics.
func (r *Result) VertexTransits() int64 { return r.vertexTransits }

// Build runs the full extraction described by spec §4: for each
// level in Z, trace it (C4), optionally assemble it into regions
// (C5), then nest every region produced across all levels (C6).
func (Builder) Build(t tin.TIN, val tin.Valuator, z []float64, buildRegions bool, ctx *BuildContext) (*Result, error) {
	if t == nil || len(t.PerimeterEdges()) == 0 {
		return nil, newError(InvalidTIN, "tin has no perimeter edges")
	}
	if len(z) == 0 {
		return nil, newError(InvalidContourLevels, "level list is empty")
	}
	for i := 1; i < len(z); i++ {
		if !(z[i] > z[i-1]) {
			return nil, newError(InvalidContourLevels, "levels must be strictly increasing: z[%d]=%v, z[%d]=%v", i-1, z[i-1], i, z[i])
		}
	}

	tr := newContourTracer(t, val, ctx)
	result := &Result{}

	var allRegions []*ContourRegion
	for i, zi := range z {
		open, closed, err := tr.traceLevel(zi, i)
		if err != nil {
			return nil, err
		}
		tr.perimeter.mergeAllVertexTips()

		result.openContours = append(result.openContours, open...)
		result.closedContours = append(result.closedContours, closed...)

		if buildRegions {
			ctx.startTimer(TimerStitch)
			ra := newRegionAssembler(zi, z, val, tr.perimeter)
			regions := ra.assemble(open, closed, &tr.nextContourID)
			ctx.stopTimer(TimerStitch)

			for _, region := range regions {
				for _, m := range region.members {
					if m.contour.RightIndex() == -1 {
						result.perimeterContours = append(result.perimeterContours, m.contour)
					}
				}
			}
			allRegions = append(allRegions, regions...)
		}

		// Each level starts its perimeter structures fresh: drop the
		// merged tip chains before the next level reuses the list.
		for j := range tr.perimeter.links {
			tr.perimeter.links[j].tip0 = nil
			tr.perimeter.links[j].tip1 = nil
		}
	}

	result.edgeTransits = tr.edgeTransits
	result.vertexTransits = tr.vertexTransits
	result.envelope = envelopeOf(t)

	if buildRegions {
		ctx.startTimer(TimerNest)
		result.regions = allRegions
		result.rootRegions = (NestOrganiser{}).Organise(allRegions)
		ctx.stopTimer(TimerNest)
	}

	return result, nil
}

func envelopeOf(t tin.TIN) []float64 {
	edges := t.PerimeterEdges()
	env := make([]float64, 0, 2*(len(edges)+1))
	for _, e := range edges {
		env = append(env, e.Start().X(), e.Start().Y())
	}
	if len(edges) > 0 {
		env = append(env, edges[0].Start().X(), edges[0].Start().Y())
	}
	return env
}

// CheckIntegrity verifies spec §6.4's two area identities against the
// result's envelope. Both must hold within 1e-6 relative tolerance.
func (r *Result) CheckIntegrity() error {
	envArea := math.Abs(signedArea(r.envelope))
	if envArea == 0 {
		return newError(IntegrityFailure, "envelope has zero area")
	}

	var primary float64
	for _, region := range r.regions {
		if region.typ == Perimeter {
			primary += region.absArea
		}
	}
	if relDiff(primary, envArea) > 1e-6 {
		return newError(IntegrityFailure, "primary area %.9g disagrees with envelope area %.9g", primary, envArea)
	}

	var adjusted float64
	for _, region := range r.regions {
		adjusted += region.AdjustedArea()
	}
	if relDiff(adjusted, envArea) > 1e-6 {
		return newError(IntegrityFailure, "adjusted area %.9g disagrees with envelope area %.9g", adjusted, envArea)
	}

	return nil
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}

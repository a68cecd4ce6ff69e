package contour

import "math"

// ulp returns the unit in the last place of v: the gap between v and
// the next representable float64 away from zero. Used by isClose to
// implement spec's "16*ulp" numerical-closeness test (§4.1).
func ulp(v float64) float64 {
	if v == 0 {
		return math.SmallestNonzeroFloat64
	}
	next := math.Nextafter(v, math.Inf(1))
	if v < 0 {
		next = math.Nextafter(v, math.Inf(-1))
	}
	d := next - v
	if d < 0 {
		d = -d
	}
	return d
}

// isClose reports whether a and b are within 16 ulps of their
// midpoint magnitude, per spec §4.1. NaN is never close to anything.
func isClose(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if a == b {
		return true
	}
	mid := (math.Abs(a) + math.Abs(b)) / 2
	return math.Abs(a-b) <= 16*ulp(mid)
}

// crossingPoint computes the linear-interpolation crossing of level z
// on the segment A=(ax,ay) with value za, B=(bx,by) with value zb, per
// spec §4.1's appendCrossing formula.
func crossingPoint(ax, ay, za, bx, by, zb, z float64) (x, y float64) {
	t := (z - za) / (zb - za)
	x = ax + t*(bx-ax)
	y = ay + t*(by-ay)
	return x, y
}

// shoelaceSum computes twice the signed area of the closed polygon
// given as a flat (x,y) point list, following the shoelace sum of
// spec §4.4: A = 1/2 * sum(x_i*y_(i+1) - x_(i+1)*y_i). This helper
// returns the sum before the 1/2 scaling so callers can accumulate
// per-member contributions (spec: "each member contributes +-A/2")
// before applying the final halving once.
func shoelaceSum(points []float64) float64 {
	n := len(points) / 2
	if n < 2 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := points[2*i], points[2*i+1]
		xj, yj := points[2*j], points[2*j+1]
		sum += xi*yj - xj*yi
	}
	return sum
}

// signedArea is the full signed polygon area (shoelace sum halved).
func signedArea(points []float64) float64 {
	return shoelaceSum(points) / 2
}

// pointInPolygon implements the rCross/lCross crossing-parity test of
// spec §4.5. Points exactly on the border are treated as outside.
func pointInPolygon(x, y float64, poly []float64) bool {
	n := len(poly) / 2
	if n < 3 {
		return false
	}
	var rCross, lCross int
	for k := 0; k < n; k++ {
		x0, y0 := poly[2*k], poly[2*k+1]
		k1 := (k + 1) % n
		x1, y1 := poly[2*k1], poly[2*k1+1]
		if y0 == y1 {
			continue
		}
		if (y1 > y) != (y0 > y) {
			xt := (x1*y0 - x0*y1 + y*(x0-x1)) / (y0 - y1)
			if xt > x {
				rCross++
			}
		}
		if (y1 < y) != (y0 < y) {
			xt := (x1*y0 - x0*y1 + y*(x0-x1)) / (y0 - y1)
			if xt < x {
				lCross++
			}
		}
	}
	if (rCross % 2) != (lCross % 2) {
		// on the border
		return false
	}
	return rCross%2 == 1
}

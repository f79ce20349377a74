package dxf

import "math"

// BulgeArc is the arc reconstructed from a polyline segment's bulge
// value: a signed tangent-of-quarter-angle encoding where 0 means a
// straight segment, positive means a CCW sweep.
type BulgeArc struct {
	Center               Point
	Radius               float64
	StartAngle, EndAngle float64 // degrees
	CCW                  bool
}

// bulgeEpsilon below which a segment is treated as straight.
const bulgeEpsilon = 1e-12

// reconstructBulgeArc reconstructs the arc encoded by a bulge: for segment (p1,p2) with
// bulge b, d = |p2-p1|, theta = 4*atan(b), r = |d / (2*sin(theta/2))|.
// Center comes from the perpendicular-bisector offset h = (d/2)*(1/b-b)/2
// along the chord's perpendicular (rotated -90 deg from p1->p2); the sign
// of h picks the correct side. Sweep is CCW when b>0, CW otherwise, and is
// mirrored when mirrorZ (the owning entity's extrusion z < 0) is true.
func reconstructBulgeArc(p1, p2 Point, b float64, mirrorZ bool) (BulgeArc, bool) {
	if math.Abs(b) < bulgeEpsilon {
		return BulgeArc{}, false
	}
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d < bulgeEpsilon {
		return BulgeArc{}, false
	}
	theta := 4 * math.Atan(b)
	r := math.Abs(d / (2 * math.Sin(theta/2)))

	h := (d / 2) * (1/b - b) / 2
	// Unit vector along p1->p2, rotated -90 degrees: (ux,uy) -> (uy,-ux).
	ux, uy := dx/d, dy/d
	perpX, perpY := uy, -ux

	mx, my := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	cx := mx + perpX*h
	cy := my + perpY*h
	center := Point{X: cx, Y: cy}

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx) * 180 / math.Pi
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx) * 180 / math.Pi

	ccw := (b > 0) != mirrorZ

	return BulgeArc{Center: center, Radius: r, StartAngle: startAngle, EndAngle: endAngle, CCW: ccw}, true
}

// coveredInterval returns the angular interval [lo..hi] the arc occupies,
// to be tested with increasing-angle wraparound containment. For a positive
// bulge the swept angles run from the end point's angle up to the start
// point's angle.
func (a BulgeArc) coveredInterval() (lo, hi float64) {
	if a.CCW {
		return a.EndAngle, a.StartAngle
	}
	return a.StartAngle, a.EndAngle
}

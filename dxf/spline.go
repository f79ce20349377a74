package dxf

// clampedUniformKnots synthesizes a clamped uniform knot vector of length
// n+p+2 for n+1 control points of degree p: the
// first and last p+1 knots are clamped to 0 and 1, with interior knots
// spaced evenly.
func clampedUniformKnots(numControlPoints, degree int) []float64 {
	n := numControlPoints - 1
	p := degree
	knots := make([]float64, n+p+2)
	interior := n - p // number of distinct interior knot values
	for i := 0; i <= p; i++ {
		knots[i] = 0
	}
	for i := 1; i <= interior; i++ {
		knots[p+i] = float64(i) / float64(interior+1)
	}
	for i := len(knots) - p - 1; i < len(knots); i++ {
		knots[i] = 1
	}
	return knots
}

// deBoor evaluates a (possibly rational) B-spline at parameter u using de
// Boor's algorithm. controlPoints and weights are parallel; weights
// may be nil, meaning all 1 (non-rational).
func deBoor(controlPoints []Point, weights []float64, degree int, knots []float64, u float64) Point {
	p := degree
	n := len(controlPoints) - 1

	// Locate the knot span containing u.
	k := p
	for k < n && u >= knots[k+1] {
		k++
	}

	type hp struct{ X, Y, W float64 }
	d := make([]hp, p+1)
	for j := 0; j <= p; j++ {
		idx := k - p + j
		if idx < 0 {
			idx = 0
		}
		if idx > n {
			idx = n
		}
		w := 1.0
		if weights != nil {
			w = weights[idx]
		}
		d[j] = hp{X: controlPoints[idx].X * w, Y: controlPoints[idx].Y * w, W: w}
	}

	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := k - p + j
			lo := knots[clampIdx(i, len(knots))]
			hi := knots[clampIdx(i+p-r+1, len(knots))]
			var alpha float64
			if hi-lo < 1e-15 {
				alpha = 0
			} else {
				alpha = (u - lo) / (hi - lo)
			}
			d[j] = hp{
				X: (1-alpha)*d[j-1].X + alpha*d[j].X,
				Y: (1-alpha)*d[j-1].Y + alpha*d[j].Y,
				W: (1-alpha)*d[j-1].W + alpha*d[j].W,
			}
		}
	}

	res := d[p]
	if res.W == 0 {
		return Point{}
	}
	return Point{X: res.X / res.W, Y: res.Y / res.W}
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// EvalSpline samples a (possibly rational) B-spline curve into a polyline.
// If knots is nil/empty, a clamped
// uniform knot vector is synthesized. If segments <= 0, the sample count is
// max(100, 10*len(controlPoints)). If len(controlPoints) < degree+1
// the control polygon is returned unchanged.
func EvalSpline(controlPoints []Point, degree int, knots, weights []float64, segments int) []Point {
	return evalSplineConfig(controlPoints, degree, knots, weights, segments, 100)
}

func evalSplineConfig(controlPoints []Point, degree int, knots, weights []float64, segments, minSamples int) []Point {
	if degree < 1 {
		degree = 3
	}
	if len(controlPoints) < degree+1 {
		out := make([]Point, len(controlPoints))
		copy(out, controlPoints)
		return out
	}
	if len(knots) == 0 {
		knots = clampedUniformKnots(len(controlPoints), degree)
	}
	if segments <= 0 {
		segments = minSamples
		if n := 10 * len(controlPoints); n > segments {
			segments = n
		}
	}

	uMin, uMax := knots[degree], knots[len(knots)-degree-1]
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := uMin + t*(uMax-uMin)
		if i == segments {
			// avoid evaluating exactly at the upper clamp boundary where
			// the knot-span search would walk off the end
			u = uMax - 1e-12
		}
		points = append(points, deBoor(controlPoints, weights, degree, knots, u))
	}
	return points
}

package dxf

import (
	"math"

	"golang.org/x/text/width"
)

func layerVisible(d *Drawing, layerName string) bool {
	if d == nil {
		return true
	}
	l, ok := d.Layers[layerName]
	if !ok {
		return true
	}
	return l.Visible && !l.Frozen
}

func entityVisible(d *Drawing, e Entity) bool {
	c := e.Base()
	return c.Visible && layerVisible(d, c.Layer)
}

// effectiveLayer resolves a block child's layer: layer "0" inherits the
// instancing parent's effective layer at every recursion level.
func effectiveLayer(parent, own string) string {
	if own == "0" && parent != "" {
		return parent
	}
	return own
}

// HitPoint finds the topmost entity whose geometry passes within tolerance
// of (x,y). Entities are tested in reverse insertion order so later
// (painted-on-top) entities win ties. DIMENSIONs are tested before
// everything else so each one's composite anonymous block reads as a single
// unit instead of being split across the iteration.
func HitPoint(x, y, tolerance float64, d *Drawing) (EntityID, bool) {
	if d == nil {
		return 0, false
	}
	cfg := defaultParserConfig()
	if id, ok := hitPointPass(x, y, tolerance, d, cfg, true); ok {
		return id, true
	}
	return hitPointPass(x, y, tolerance, d, cfg, false)
}

func hitPointPass(x, y, tolerance float64, d *Drawing, cfg ParserConfig, dimensions bool) (EntityID, bool) {
	for i := len(d.Entities) - 1; i >= 0; i-- {
		e := d.Entities[i]
		if _, isDim := e.(*Dimension); isDim != dimensions {
			continue
		}
		if !entityVisible(d, e) {
			continue
		}
		if hitTestEntity(e, x, y, tolerance, e.Base().Layer, Identity2D, d, 0, cfg) {
			return e.Base().ID, true
		}
	}
	return 0, false
}

func hitTestEntity(e Entity, x, y, tol float64, layer string, xform Matrix2D, d *Drawing, depth int, cfg ParserConfig) bool {
	if depth > cfg.maxInsertDepth {
		return false
	}
	p := Point{X: x, Y: y}
	scale := xform.Scale()
	if scale == 0 {
		scale = 1
	}

	switch v := e.(type) {
	case *Line:
		return distPointSegment(p, xform.Apply(v.Start), xform.Apply(v.End)) < tol
	case *RayLine:
		return distPointLine(p, xform.Apply(v.Point), xform.ApplyVector(v.Direction), true) < tol
	case *Circle:
		c := xform.Apply(v.Center)
		return math.Abs(hypot(p.X-c.X, p.Y-c.Y)-v.Radius*scale) < tol
	case *Arc:
		return hitArc(v, p, xform, tol, scale)
	case *Polyline:
		return hitPolyline(v, p, xform, tol, scale)
	case *Spline:
		pts := evalSplineConfig(v.ControlPoints, v.Degree, v.Knots, v.Weights, cfg.hitChordSamples, cfg.hitChordSamples)
		return hitChordChain(pts, p, xform, tol, false)
	case *Ellipse:
		return hitEllipse(v, p, xform, tol)
	case *Text:
		return hitText(v, p, xform, tol)
	case *DxfPoint:
		c := xform.Apply(v.Position)
		return hypot(p.X-c.X, p.Y-c.Y) < tol
	case *Leader:
		return hitChordChain(v.Vertices, p, xform, tol, false)
	case *Solid:
		n := v.NumPoints
		if n < 2 {
			return false
		}
		pts := make([]Point, n)
		copy(pts, v.Points[:n])
		return hitChordChain(pts, p, xform, tol, true)
	case *Hatch:
		for _, loop := range v.Loops {
			if loop.IsPolyline {
				if hitBulgedChain(loop.Vertices, true, v.Extrusion.Z < 0, p, xform, tol) {
					return true
				}
			} else {
				for _, edge := range loop.Edges {
					if distPointSegment(p, xform.Apply(edge.Start), xform.Apply(edge.End)) < tol {
						return true
					}
				}
			}
		}
		return false
	case *Insert:
		blk, ok := d.Blocks[v.BlockName]
		if !ok {
			return false
		}
		childXform := xform.Mul(InsertTransform(v.Position, v.Rotation, v.ScaleX, v.ScaleY, blk.Base))
		for i := len(blk.Entities) - 1; i >= 0; i-- {
			child := blk.Entities[i]
			childLayer := effectiveLayer(layer, child.Base().Layer)
			if !child.Base().Visible || !layerVisible(d, childLayer) {
				continue
			}
			if hitTestEntity(child, x, y, tol, childLayer, childXform, d, depth+1, cfg) {
				return true
			}
		}
		return false
	case *Dimension:
		// The anonymous block is pre-baked in absolute coordinates, so it
		// expands in place with no instance transform of its own.
		blk, ok := d.Blocks[v.BlockName]
		if !ok {
			return false
		}
		for i := len(blk.Entities) - 1; i >= 0; i-- {
			child := blk.Entities[i]
			childLayer := effectiveLayer(layer, child.Base().Layer)
			if !child.Base().Visible || !layerVisible(d, childLayer) {
				continue
			}
			if hitTestEntity(child, x, y, tol, childLayer, xform, d, depth+1, cfg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func distPointSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-18 {
		return hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return hypot(p.X-proj.X, p.Y-proj.Y)
}

// distPointLine measures distance to an infinite line through `origin` with
// direction `dir`. If !both, the line is bounded at t>=0.
func distPointLine(p, origin, dir Point, both bool) float64 {
	lenSq := dir.X*dir.X + dir.Y*dir.Y
	if lenSq < 1e-18 {
		return hypot(p.X-origin.X, p.Y-origin.Y)
	}
	t := ((p.X-origin.X)*dir.X + (p.Y-origin.Y)*dir.Y) / lenSq
	if !both && t < 0 {
		t = 0
	}
	proj := Point{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y}
	return hypot(p.X-proj.X, p.Y-proj.Y)
}

func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// angleCovered reports whether a lies in the interval [lo..hi] measured
// counterclockwise with wraparound (lo > hi means the interval crosses 0).
func angleCovered(a, lo, hi float64) bool {
	a = normalizeAngle360(a)
	lo = normalizeAngle360(lo)
	hi = normalizeAngle360(hi)
	if lo <= hi {
		return a >= lo && a <= hi
	}
	return a >= lo || a <= hi
}

func hitArc(v *Arc, p Point, xform Matrix2D, tol, scale float64) bool {
	c := xform.Apply(v.Center)
	if math.Abs(hypot(p.X-c.X, p.Y-c.Y)-v.Radius*scale) >= tol {
		return false
	}
	angle := math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
	s, e := v.StartAngle, v.EndAngle
	if v.Extrusion.Z < 0 {
		// OCS mirror: an OCS angle u appears at 180-u in world coordinates
		s, e = 180-e, 180-s
	}
	return angleCovered(angle, s, e)
}

func hitPolyline(v *Polyline, p Point, xform Matrix2D, tol, scale float64) bool {
	return hitBulgedChain(v.Vertices, v.Closed, v.Extrusion.Z < 0, p, xform, tol)
}

func hitBulgedChain(vertices []Vertex, closed, mirror bool, p Point, xform Matrix2D, tol float64) bool {
	n := len(vertices)
	if n == 0 {
		return false
	}
	if n == 1 {
		return hypot(p.X-xform.Apply(vertices[0].Point).X, p.Y-xform.Apply(vertices[0].Point).Y) < tol
	}
	segCount := n - 1
	if closed {
		segCount = n
	}
	for i := 0; i < segCount; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		wa, wb := xform.Apply(a.Point), xform.Apply(b.Point)
		if a.Bulge == 0 {
			if distPointSegment(p, wa, wb) < tol {
				return true
			}
			continue
		}
		arc, ok := reconstructBulgeArc(a.Point, b.Point, a.Bulge, mirror)
		if !ok {
			if distPointSegment(p, wa, wb) < tol {
				return true
			}
			continue
		}
		scale := xform.Scale()
		c := xform.Apply(arc.Center)
		if math.Abs(hypot(p.X-c.X, p.Y-c.Y)-arc.Radius*scale) >= tol {
			continue
		}
		angle := math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
		lo, hi := arc.coveredInterval()
		if angleCovered(angle, lo, hi) {
			return true
		}
	}
	return false
}

func hitChordChain(pts []Point, p Point, xform Matrix2D, tol float64, closed bool) bool {
	n := len(pts)
	if n < 2 {
		return false
	}
	segCount := n - 1
	if closed {
		segCount = n
	}
	for i := 0; i < segCount; i++ {
		a := xform.Apply(pts[i])
		b := xform.Apply(pts[(i+1)%n])
		if distPointSegment(p, a, b) < tol {
			return true
		}
	}
	return false
}

func hitEllipse(v *Ellipse, p Point, xform Matrix2D, tol float64) bool {
	center := xform.Apply(v.Center)
	major := xform.ApplyVector(v.MajorAxis)
	rx := hypot(major.X, major.Y)
	if rx < 1e-12 {
		return false
	}
	ry := rx * v.MinorRatio
	rot := math.Atan2(major.Y, major.X)
	cosr, sinr := math.Cos(-rot), math.Sin(-rot)
	dx, dy := p.X-center.X, p.Y-center.Y
	lx := dx*cosr - dy*sinr
	ly := dx*sinr + dy*cosr
	u, vv := lx/rx, ly/ry
	r := math.Sqrt(u*u + vv*vv)
	minAxis := rx
	if ry < minAxis {
		minAxis = ry
	}
	if minAxis < 1e-12 {
		return false
	}
	if math.Abs(r-1) >= tol/minAxis {
		return false
	}
	param := math.Atan2(vv, u)
	if param < 0 {
		param += 2 * math.Pi
	}
	start, end := v.StartParam, v.EndParam
	for start < 0 {
		start += 2 * math.Pi
	}
	for end < 0 {
		end += 2 * math.Pi
	}
	if start <= end {
		return param >= start-1e-9 && param <= end+1e-9
	}
	return param >= start-1e-9 || param <= end+1e-9
}

// eastAsianAdvance returns the text-advance weight of one rune: 2 for
// East-Asian wide/fullwidth runes, 1 otherwise.
func eastAsianAdvance(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

func textAdvanceUnits(s string) float64 {
	var units float64
	for _, r := range s {
		units += float64(eastAsianAdvance(r))
	}
	return units
}

func hitText(v *Text, p Point, xform Matrix2D, tol float64) bool {
	scale := xform.Scale()
	if scale == 0 {
		scale = 1
	}
	height := v.Height
	if height <= 0 {
		height = 1
	}
	wf := v.WidthFactor
	if wf <= 0 {
		wf = 1
	}
	charAdvance := height * 0.6 * wf
	boxWidth := textAdvanceUnits(v.Value) * charAdvance
	boxHeight := height

	origin := xform.Apply(v.Position)
	rot := (v.Rotation) * math.Pi / 180
	dx, dy := p.X-origin.X, p.Y-origin.Y
	cosr, sinr := math.Cos(-rot), math.Sin(-rot)
	lx := (dx*cosr - dy*sinr) / scale
	ly := (dx*sinr + dy*cosr) / scale

	localTol := tol / scale
	return lx >= -localTol && lx <= boxWidth+localTol && ly >= -localTol && ly <= boxHeight+localTol
}

// HitBox returns the identifiers of every entity whose precomputed extent
// (or, lacking one, a representative vertex) overlaps rect.
// Crossing-selection: any overlap selects, containment is not required.
func HitBox(rect Rect, d *Drawing) map[EntityID]struct{} {
	result := map[EntityID]struct{}{}
	if d == nil {
		return result
	}
	walkHitBox(d.Entities, "", d, Identity2D, 0, rect, result)
	return result
}

func walkHitBox(entities []Entity, parentLayer string, d *Drawing, xform Matrix2D, depth int, rect Rect, result map[EntityID]struct{}) {
	if depth > maxInsertRecursionDepth {
		return
	}
	for _, e := range entities {
		layer := effectiveLayer(parentLayer, e.Base().Layer)
		if !e.Base().Visible || !layerVisible(d, layer) {
			continue
		}
		if v, ok := e.(*Insert); ok {
			blk, ok := d.Blocks[v.BlockName]
			if !ok {
				continue
			}
			childXform := xform.Mul(InsertTransform(v.Position, v.Rotation, v.ScaleX, v.ScaleY, blk.Base))
			walkHitBox(blk.Entities, layer, d, childXform, depth+1, rect, result)
			continue
		}
		if entityOverlapsRect(e, xform, rect) {
			result[e.Base().ID] = struct{}{}
		}
	}
}

func rectsOverlap(a, b Rect) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X && a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

func entityOverlapsRect(e Entity, xform Matrix2D, rect Rect) bool {
	acc := &extentAccumulator{}
	switch v := e.(type) {
	case *Line:
		acc.add(xform.Apply(v.Start))
		acc.add(xform.Apply(v.End))
	case *Circle:
		addTransformedCircle(acc, xform, v.Center, v.Radius)
	case *Arc:
		addTransformedCircle(acc, xform, v.Center, v.Radius)
	case *Polyline:
		for _, vert := range v.Vertices {
			acc.add(xform.Apply(vert.Point))
		}
	case *Spline:
		for _, cp := range v.ControlPoints {
			acc.add(xform.Apply(cp))
		}
	case *Ellipse:
		r := hypot(v.MajorAxis.X, v.MajorAxis.Y)
		addTransformedCircle(acc, xform, v.Center, r)
	case *Solid:
		for i := 0; i < v.NumPoints; i++ {
			acc.add(xform.Apply(v.Points[i]))
		}
	case *Leader:
		for _, p := range v.Vertices {
			acc.add(xform.Apply(p))
		}
	case *Hatch:
		for _, loop := range v.Loops {
			for _, vert := range loop.Vertices {
				acc.add(xform.Apply(vert.Point))
			}
			for _, edge := range loop.Edges {
				acc.add(xform.Apply(edge.Start))
				acc.add(xform.Apply(edge.End))
			}
		}
	case *Text:
		acc.add(xform.Apply(v.Position))
	case *DxfPoint:
		acc.add(xform.Apply(v.Position))
	case *Dimension:
		acc.add(xform.Apply(v.DefPoint))
		acc.add(xform.Apply(v.TextMidPoint))
	default:
		return false
	}
	if !acc.set {
		return false
	}
	eRect := Rect{Min: Point{X: acc.minX, Y: acc.minY}, Max: Point{X: acc.maxX, Y: acc.maxY}}
	return rectsOverlap(eRect, rect)
}

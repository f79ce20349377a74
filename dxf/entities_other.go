package dxf

import "math"

func makeQuadParser(is3DFace bool) entityParser {
	return func(tok *Tokenizer, st *parseState) (Entity, error) {
		c := defaultCommon(st.allocID())
		var pts [4]Point
		have4 := false
		var edgeFlags int
		err := readEntityGroups(tok, &c, func(code int, val string) error {
			switch code {
			case 10:
				pts[0].X = parseFloatDefault(val, 0)
			case 20:
				pts[0].Y = parseFloatDefault(val, 0)
			case 11:
				pts[1].X = parseFloatDefault(val, 0)
			case 21:
				pts[1].Y = parseFloatDefault(val, 0)
			case 12:
				pts[2].X = parseFloatDefault(val, 0)
			case 22:
				pts[2].Y = parseFloatDefault(val, 0)
			case 13:
				pts[3].X = parseFloatDefault(val, 0)
				have4 = true
			case 23:
				pts[3].Y = parseFloatDefault(val, 0)
			case 70:
				edgeFlags = parseIntDefault(val, 0)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if !have4 {
			pts[3] = pts[2]
		}
		if !is3DFace {
			pts[2], pts[3] = pts[3], pts[2]
		}
		s := &Solid{EntityCommon: c, Points: pts, NumPoints: 4, Is3DFace: is3DFace}
		if is3DFace {
			s.EdgeVisible = [4]bool{
				edgeFlags&1 == 0,
				edgeFlags&2 == 0,
				edgeFlags&4 == 0,
				edgeFlags&8 == 0,
			}
		}
		return s, nil
	}
}

func makeRayParser(unbounded bool) entityParser {
	return func(tok *Tokenizer, st *parseState) (Entity, error) {
		c := defaultCommon(st.allocID())
		r := &RayLine{EntityCommon: c, Unbounded: unbounded}
		err := readEntityGroups(tok, &r.EntityCommon, func(code int, val string) error {
			switch code {
			case 10:
				r.Point.X = parseFloatDefault(val, 0)
			case 20:
				r.Point.Y = parseFloatDefault(val, 0)
			case 11:
				r.Direction.X = parseFloatDefault(val, 0)
			case 21:
				r.Direction.Y = parseFloatDefault(val, 0)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

func parseDimensionEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	dim := &Dimension{EntityCommon: c}
	err := readEntityGroups(tok, &dim.EntityCommon, func(code int, val string) error {
		switch code {
		case 2:
			dim.BlockName = val
		case 10:
			dim.DefPoint.X = parseFloatDefault(val, 0)
		case 20:
			dim.DefPoint.Y = parseFloatDefault(val, 0)
		case 11:
			dim.TextMidPoint.X = parseFloatDefault(val, 0)
		case 21:
			dim.TextMidPoint.Y = parseFloatDefault(val, 0)
		case 70:
			dim.DimType = parseIntDefault(val, 0)
		case 42:
			dim.Measurement = parseFloatDefault(val, 0)
		case 1:
			dim.OverrideText = val
		case 3:
			dim.Style = val
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dim, nil
}

func parseLeaderEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	leader := &Leader{EntityCommon: c, HasArrow: true}
	var cur Point
	haveX := false
	err := readEntityGroups(tok, &leader.EntityCommon, func(code int, val string) error {
		switch code {
		case 71:
			leader.HasArrow = parseIntDefault(val, 1) != 0
		case 72:
			leader.PathType = parseIntDefault(val, 0)
		case 75:
			leader.HasHookline = parseIntDefault(val, 0) != 0
		case 10:
			if haveX {
				leader.Vertices = append(leader.Vertices, cur)
			}
			cur = Point{X: parseFloatDefault(val, 0)}
			haveX = true
		case 20:
			cur.Y = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if haveX {
		leader.Vertices = append(leader.Vertices, cur)
	}
	return leader, nil
}

// parseHatchEntity reads a HATCH record: group 92 opens a
// boundary loop whose type bits select a bulged-polyline path (bit 1) or an
// edge list (group 93 = edge count, then per-edge group 72 kind followed by
// kind-specific groups).
func parseHatchEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	h := &Hatch{EntityCommon: c, Scale: 1}
	var patternName string
	err := readEntityGroups(tok, &h.EntityCommon, func(code int, val string) error {
		switch code {
		case 2:
			patternName = val
		case 41:
			h.Scale = parseFloatDefault(val, 1)
		case 52:
			h.Angle = parseFloatDefault(val, 0)
		case 70:
			h.Solid = parseIntDefault(val, 0) != 0
		case 30:
			h.Elevation = parseFloatDefault(val, 0)
		case 92:
			loop, err := parseHatchLoop(tok, parseIntDefault(val, 0))
			if err != nil {
				return err
			}
			h.Loops = append(h.Loops, loop)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	h.PatternName = patternName
	if patternName == "SOLID" {
		h.Solid = true
	}
	return h, nil
}

func parseHatchLoop(tok *Tokenizer, typeFlags int) (HatchLoop, error) {
	const polylinePathBit = 2
	if typeFlags&polylinePathBit != 0 {
		return parseHatchPolylineLoop(tok)
	}
	return parseHatchEdgeLoop(tok)
}

func parseHatchPolylineLoop(tok *Tokenizer) (HatchLoop, error) {
	loop := HatchLoop{IsPolyline: true}
	var cur Vertex
	haveX := false
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return loop, err
		}
		if !ok {
			break
		}
		if g.Code == 93 || g.Code == 73 || g.Code == 97 {
			tok.Next()
			continue
		}
		if g.Code == 10 {
			tok.Next()
			if haveX {
				loop.Vertices = append(loop.Vertices, cur)
			}
			cur = Vertex{Point: Point{X: parseFloatDefault(g.Value, 0)}}
			haveX = true
			continue
		}
		if g.Code == 20 {
			tok.Next()
			cur.Point.Y = parseFloatDefault(g.Value, 0)
			continue
		}
		if g.Code == 42 {
			tok.Next()
			cur.Bulge = parseFloatDefault(g.Value, 0)
			continue
		}
		// any other code (including the next 92, or the terminating 0)
		// ends this loop.
		break
	}
	if haveX {
		loop.Vertices = append(loop.Vertices, cur)
	}
	return loop, nil
}

func parseHatchEdgeLoop(tok *Tokenizer) (HatchLoop, error) {
	loop := HatchLoop{}
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return loop, err
		}
		if !ok {
			break
		}
		switch {
		case g.Code == 93 || g.Code == 97:
			tok.Next()
		case g.Code == 72:
			tok.Next()
			edge, err := parseHatchEdge(tok, HatchEdgeKind(parseIntDefault(g.Value, 1)))
			if err != nil {
				return loop, err
			}
			loop.Edges = append(loop.Edges, edge)
		case g.Code == 92 || g.Code == 0:
			return loop, nil
		default:
			tok.Next()
		}
	}
	return loop, nil
}

func parseHatchEdge(tok *Tokenizer, kind HatchEdgeKind) (HatchEdge, error) {
	edge := HatchEdge{Kind: kind}
	var sx, sy, ex, ey, r, a1, a2 float64
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return edge, err
		}
		if !ok {
			break
		}
		if g.Code == 72 || g.Code == 92 || g.Code == 0 {
			break
		}
		tok.Next()
		switch g.Code {
		case 10:
			sx = parseFloatDefault(g.Value, 0)
		case 20:
			sy = parseFloatDefault(g.Value, 0)
		case 11:
			ex = parseFloatDefault(g.Value, 0)
		case 21:
			ey = parseFloatDefault(g.Value, 0)
		case 40:
			r = parseFloatDefault(g.Value, 0)
		case 50:
			a1 = parseFloatDefault(g.Value, 0)
		case 51:
			a2 = parseFloatDefault(g.Value, 0)
		}
	}
	switch kind {
	case HatchEdgeLine:
		edge.Start = Point{X: sx, Y: sy}
		edge.End = Point{X: ex, Y: ey}
	case HatchEdgeArc, HatchEdgeEllipse:
		edge.Center = Point{X: sx, Y: sy}
		edge.Radius = r
		edge.StartAngle = a1
		edge.EndAngle = a2
		rad1, rad2 := a1*math.Pi/180, a2*math.Pi/180
		edge.Start = Point{X: edge.Center.X + r*math.Cos(rad1), Y: edge.Center.Y + r*math.Sin(rad1)}
		edge.End = Point{X: edge.Center.X + r*math.Cos(rad2), Y: edge.Center.Y + r*math.Sin(rad2)}
	case HatchEdgeSpline:
		edge.Start = Point{X: sx, Y: sy}
		edge.End = Point{X: ex, Y: ey}
	}
	return edge, nil
}

package dxf

func parseLWPolylineEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	var vertices []Vertex
	var elevation float64
	closed := false
	haveOpen := false
	var cur Vertex
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 70:
			closed = parseIntDefault(val, 0)&1 != 0
		case 38:
			elevation = parseFloatDefault(val, 0)
		case 10:
			if haveOpen {
				vertices = append(vertices, cur)
			}
			cur = Vertex{Point: Point{X: parseFloatDefault(val, 0)}}
			haveOpen = true
		case 20:
			cur.Point.Y = parseFloatDefault(val, 0)
		case 42:
			cur.Bulge = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if haveOpen {
		vertices = append(vertices, cur)
	}
	projectVertices(c.Extrusion, elevation, vertices)
	return &Polyline{
		EntityCommon: c,
		Vertices:     vertices,
		Closed:       closed,
		Elevation:    elevation,
		Light:        true,
	}, nil
}

// projectVertices maps OCS polyline vertices at the given elevation to WCS
// in place.
func projectVertices(extrusion Vec3, elevation float64, vertices []Vertex) {
	basis := computeOCSBasis(extrusion)
	for i := range vertices {
		vertices[i].Point = ocsToWCSPoint(basis, vertices[i].X, vertices[i].Y, elevation)
	}
}

// parsePolylineEntity handles POLYLINE, whose vertices arrive as separate
// VERTEX entity records terminated by SEQEND.
func parsePolylineEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	closed := false
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		if code == 70 {
			closed = parseIntDefault(val, 0)&1 != 0
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	var vertices []Vertex
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if g.Code != 0 {
			tok.Next()
			continue
		}
		if g.Value == "SEQEND" {
			tok.Next()
			skipEntityTail(tok)
			break
		}
		if g.Value != "VERTEX" {
			break
		}
		tok.Next()
		v, err := parseVertexRecord(tok)
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}
	projectVertices(c.Extrusion, 0, vertices)
	return &Polyline{EntityCommon: c, Vertices: vertices, Closed: closed, Light: false}, nil
}

func parseVertexRecord(tok *Tokenizer) (Vertex, error) {
	var v Vertex
	var common EntityCommon
	err := readEntityGroups(tok, &common, func(code int, val string) error {
		switch code {
		case 10:
			v.Point.X = parseFloatDefault(val, 0)
		case 20:
			v.Point.Y = parseFloatDefault(val, 0)
		case 42:
			v.Bulge = parseFloatDefault(val, 0)
		}
		return nil
	})
	return v, err
}

// skipEntityTail discards any trailing common groups a SEQEND record
// carries (it has no geometry of its own).
func skipEntityTail(tok *Tokenizer) {
	var common EntityCommon
	readEntityGroups(tok, &common, func(code int, val string) error { return nil })
}

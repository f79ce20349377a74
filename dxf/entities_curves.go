package dxf

// rawPoint3 accumulates the three group codes (base, base+10, base+20) of
// one OCS point as they stream in, independent of which order they arrive.
type rawPoint3 struct {
	x, y, z      float64
	haveX, haveY bool
}

func parseLineEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	var p1, p2 rawPoint3
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 10:
			p1.x = parseFloatDefault(val, 0)
		case 20:
			p1.y = parseFloatDefault(val, 0)
		case 30:
			p1.z = parseFloatDefault(val, 0)
		case 11:
			p2.x = parseFloatDefault(val, 0)
		case 21:
			p2.y = parseFloatDefault(val, 0)
		case 31:
			p2.z = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	basis := computeOCSBasis(c.Extrusion)
	return &Line{
		EntityCommon: c,
		Start:        ocsToWCSPoint(basis, p1.x, p1.y, p1.z),
		End:          ocsToWCSPoint(basis, p2.x, p2.y, p2.z),
	}, nil
}

func parseCircleEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	var center rawPoint3
	var radius float64
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 10:
			center.x = parseFloatDefault(val, 0)
		case 20:
			center.y = parseFloatDefault(val, 0)
		case 30:
			center.z = parseFloatDefault(val, 0)
		case 40:
			radius = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	basis := computeOCSBasis(c.Extrusion)
	return &Circle{
		EntityCommon: c,
		Center:       ocsToWCSPoint(basis, center.x, center.y, center.z),
		Radius:       radius,
	}, nil
}

func parseArcEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	var center rawPoint3
	var radius, start, end float64
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 10:
			center.x = parseFloatDefault(val, 0)
		case 20:
			center.y = parseFloatDefault(val, 0)
		case 30:
			center.z = parseFloatDefault(val, 0)
		case 40:
			radius = parseFloatDefault(val, 0)
		case 50:
			start = parseFloatDefault(val, 0)
		case 51:
			end = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	basis := computeOCSBasis(c.Extrusion)
	return &Arc{
		EntityCommon: c,
		Center:       ocsToWCSPoint(basis, center.x, center.y, center.z),
		Radius:       radius,
		StartAngle:   start,
		EndAngle:     end,
	}, nil
}

func parsePointEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	var p rawPoint3
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 10:
			p.x = parseFloatDefault(val, 0)
		case 20:
			p.y = parseFloatDefault(val, 0)
		case 30:
			p.z = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	basis := computeOCSBasis(c.Extrusion)
	return &DxfPoint{EntityCommon: c, Position: ocsToWCSPoint(basis, p.x, p.y, p.z)}, nil
}

func parseEllipseEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	var center, majorAxis rawPoint3
	var ratio, startParam, endParam float64 = 1, 0, 0
	haveEnd := false
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 10:
			center.x = parseFloatDefault(val, 0)
		case 20:
			center.y = parseFloatDefault(val, 0)
		case 30:
			center.z = parseFloatDefault(val, 0)
		case 11:
			majorAxis.x = parseFloatDefault(val, 0)
		case 21:
			majorAxis.y = parseFloatDefault(val, 0)
		case 31:
			majorAxis.z = parseFloatDefault(val, 0)
		case 40:
			ratio = parseFloatDefault(val, 1)
		case 41:
			startParam = parseFloatDefault(val, 0)
		case 42:
			endParam = parseFloatDefault(val, 0)
			haveEnd = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !haveEnd {
		const twoPi = 6.283185307179586
		endParam = twoPi
	}
	basis := computeOCSBasis(c.Extrusion)
	return &Ellipse{
		EntityCommon: c,
		Center:       ocsToWCSPoint(basis, center.x, center.y, center.z),
		MajorAxis:    ocsToWCSPoint(basis, majorAxis.x, majorAxis.y, 0),
		MinorRatio:   ratio,
		StartParam:   startParam,
		EndParam:     endParam,
	}, nil
}

func parseSplineEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	degree := 3
	var controlPoints, fitPoints []Point
	var knots, weights []float64
	var curCP, curFP rawPoint3
	closed, periodic, rational := false, false, false
	err := readEntityGroups(tok, &c, func(code int, val string) error {
		switch code {
		case 70:
			flags := parseIntDefault(val, 0)
			closed = flags&1 != 0
			periodic = flags&2 != 0
			rational = flags&4 != 0
		case 71:
			degree = parseIntDefault(val, 3)
		case 10:
			curCP.x = parseFloatDefault(val, 0)
		case 20:
			curCP.y = parseFloatDefault(val, 0)
			controlPoints = append(controlPoints, Point{X: curCP.x, Y: curCP.y})
			weights = append(weights, 1)
		case 40:
			knots = append(knots, parseFloatDefault(val, 0))
		case 41:
			if len(weights) > 0 {
				weights[len(weights)-1] = parseFloatDefault(val, 1)
			}
		case 11:
			curFP.x = parseFloatDefault(val, 0)
		case 21:
			curFP.y = parseFloatDefault(val, 0)
			fitPoints = append(fitPoints, Point{X: curFP.x, Y: curFP.y})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, w := range weights {
		if w != 1 {
			rational = true
			break
		}
	}
	return &Spline{
		EntityCommon:  c,
		ControlPoints: controlPoints,
		FitPoints:     fitPoints,
		Degree:        degree,
		Knots:         knots,
		Weights:       weights,
		Closed:        closed,
		Periodic:      periodic,
		Rational:      rational,
	}, nil
}

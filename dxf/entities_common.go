package dxf

// parseState threads the handful of values an entity parser needs beyond
// the tokenizer itself: the id generator and the table built up so far (for
// ACAD_TABLE's 342 handle lookup).
type parseState struct {
	nextID      EntityID
	handleBlock map[string]string // handle -> block name, populated during BLOCKS
}

func (s *parseState) allocID() EntityID {
	s.nextID++
	return s.nextID
}

// applyCommonGroup handles the group codes shared by every entity kind:
// 5 handle, 8 layer, 62 color, 6 lineType, 60 visibility, 67
// paper-space, 210/220/230 extrusion. Returns true if it consumed the
// group.
func applyCommonGroup(c *EntityCommon, code int, val string) bool {
	switch code {
	case 5:
		c.Handle = val
		return true
	case 8:
		c.Layer = val
		return true
	case 62:
		c.Color = parseIntDefault(val, c.Color)
		return true
	case 6:
		c.LineType = val
		return true
	case 60:
		c.Visible = parseIntDefault(val, 0) == 0
		return true
	case 67:
		c.PaperSpace = parseIntDefault(val, 0) != 0
		return true
	case 210:
		c.Extrusion.X = parseFloatDefault(val, c.Extrusion.X)
		return true
	case 220:
		c.Extrusion.Y = parseFloatDefault(val, c.Extrusion.Y)
		return true
	case 230:
		c.Extrusion.Z = parseFloatDefault(val, c.Extrusion.Z)
		return true
	}
	return false
}

// readEntityGroups reads groups belonging to one entity record (until the
// next (0, ...) or end of input), calling handle for each one that is not a
// common group already consumed by applyCommonGroup.
func readEntityGroups(tok *Tokenizer, common *EntityCommon, handle func(code int, val string) error) error {
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return err
		}
		if !ok || g.Code == 0 {
			return nil
		}
		tok.Next()
		if applyCommonGroup(common, g.Code, g.Value) {
			continue
		}
		if err := handle(g.Code, g.Value); err != nil {
			return err
		}
	}
}

// entityDispatch maps a (0, <name>) value to its parser. Each parser is
// called after the (0, <name>) group has been consumed and returns the
// parsed Entity, or (nil, nil) to silently drop it.
type entityParser func(tok *Tokenizer, st *parseState) (Entity, error)

func entityDispatchTable() map[string]entityParser {
	return map[string]entityParser{
		"LINE":       parseLineEntity,
		"CIRCLE":     parseCircleEntity,
		"ARC":        parseArcEntity,
		"POINT":      parsePointEntity,
		"LWPOLYLINE": parseLWPolylineEntity,
		"POLYLINE":   parsePolylineEntity,
		"SPLINE":     parseSplineEntity,
		"ELLIPSE":    parseEllipseEntity,
		"TEXT":       makeTextParser(KindText),
		"MTEXT":      makeTextParser(KindMText),
		"ATTRIB":     makeTextParser(KindAttrib),
		"ATTDEF":     makeTextParser(KindAttdef),
		"INSERT":     parseInsertEntity,
		"ACAD_TABLE": parseAcadTableEntity,
		"SOLID":      makeQuadParser(false),
		"TRACE":      makeQuadParser(false),
		"3DFACE":     makeQuadParser(true),
		"HATCH":      parseHatchEntity,
		"DIMENSION":  parseDimensionEntity,
		"LEADER":     parseLeaderEntity,
		"RAY":        makeRayParser(false),
		"XLINE":      makeRayParser(true),
	}
}

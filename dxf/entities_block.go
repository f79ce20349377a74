package dxf

func parseInsertEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	ins := &Insert{EntityCommon: c, ScaleX: 1, ScaleY: 1, ScaleZ: 1, RowCount: 1, ColCount: 1}
	attribsFollow := false
	err := readEntityGroups(tok, &ins.EntityCommon, func(code int, val string) error {
		switch code {
		case 2:
			ins.BlockName = val
		case 10:
			ins.Position.X = parseFloatDefault(val, 0)
		case 20:
			ins.Position.Y = parseFloatDefault(val, 0)
		case 41:
			ins.ScaleX = parseFloatDefault(val, 1)
		case 42:
			ins.ScaleY = parseFloatDefault(val, 1)
		case 43:
			ins.ScaleZ = parseFloatDefault(val, 1)
		case 50:
			ins.Rotation = parseFloatDefault(val, 0)
		case 66:
			attribsFollow = parseIntDefault(val, 0) == 1
		case 70:
			ins.ColCount = parseIntDefault(val, 1)
		case 71:
			ins.RowCount = parseIntDefault(val, 1)
		case 44:
			ins.ColSpacing = parseFloatDefault(val, 0)
		case 45:
			ins.RowSpacing = parseFloatDefault(val, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ins.RowCount < 1 {
		ins.RowCount = 1
	}
	if ins.ColCount < 1 {
		ins.ColCount = 1
	}
	if attribsFollow {
		attribs, err := consumeInsertAttribs(tok, st)
		if err != nil {
			return nil, err
		}
		ins.Attribs = attribs
	}
	if ins.BlockName == "" {
		return nil, nil
	}
	return ins, nil
}

func consumeInsertAttribs(tok *Tokenizer, st *parseState) ([]*Text, error) {
	var attribs []*Text
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return attribs, nil
		}
		if g.Code != 0 {
			tok.Next()
			continue
		}
		if g.Value == "SEQEND" {
			tok.Next()
			skipEntityTail(tok)
			return attribs, nil
		}
		if g.Value != "ATTRIB" {
			return attribs, nil
		}
		tok.Next()
		e, err := makeTextParser(KindAttrib)(tok, st)
		if err != nil {
			return nil, err
		}
		if t, ok := e.(*Text); ok {
			attribs = append(attribs, t)
		}
	}
}

// parseAcadTableEntity normalizes ACAD_TABLE to an INSERT, resolving its
// block name via the 342 soft-pointer handle against the table built during
// BLOCKS parsing.
func parseAcadTableEntity(tok *Tokenizer, st *parseState) (Entity, error) {
	c := defaultCommon(st.allocID())
	ins := &Insert{EntityCommon: c, ScaleX: 1, ScaleY: 1, ScaleZ: 1, RowCount: 1, ColCount: 1}
	var handle string
	var dirX, dirY float64
	haveDir := false
	err := readEntityGroups(tok, &ins.EntityCommon, func(code int, val string) error {
		switch code {
		case 10:
			ins.Position.X = parseFloatDefault(val, 0)
		case 20:
			ins.Position.Y = parseFloatDefault(val, 0)
		case 11:
			dirX = parseFloatDefault(val, 0)
			haveDir = true
		case 21:
			dirY = parseFloatDefault(val, 0)
			haveDir = true
		case 342:
			handle = val
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if haveDir {
		ins.Rotation = atan2Deg(dirY, dirX)
	}
	if st.handleBlock != nil {
		ins.BlockName = st.handleBlock[handle]
	}
	if ins.BlockName == "" {
		return nil, nil
	}
	return ins, nil
}

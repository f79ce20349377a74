package dxf

// makeTextParser builds the parser shared by TEXT, MTEXT, ATTRIB, and
// ATTDEF, which differ only in their SubKind tag.
func makeTextParser(kind TextKind) entityParser {
	return func(tok *Tokenizer, st *parseState) (Entity, error) {
		c := defaultCommon(st.allocID())
		t := &Text{EntityCommon: c, SubKind: kind, WidthFactor: 1}
		var value, cont string
		var dirX, dirY float64
		haveDir := false
		err := readEntityGroups(tok, &t.EntityCommon, func(code int, val string) error {
			switch code {
			case 1:
				value = val
			case 3:
				cont += val
			case 2:
				t.Tag = val
			case 7:
				t.Style = val
			case 10:
				t.Position.X = parseFloatDefault(val, 0)
			case 20:
				t.Position.Y = parseFloatDefault(val, 0)
			case 11:
				t.SecondPosition.X = parseFloatDefault(val, 0)
				t.HasSecond = true
				if kind == KindMText {
					dirX = t.SecondPosition.X
					haveDir = true
				}
			case 21:
				t.SecondPosition.Y = parseFloatDefault(val, 0)
				if kind == KindMText {
					dirY = t.SecondPosition.Y
					haveDir = true
				}
			case 40:
				t.Height = parseFloatDefault(val, 0)
			case 41:
				if kind == KindMText {
					t.WrapWidth = parseFloatDefault(val, 0)
				} else {
					t.WidthFactor = parseFloatDefault(val, 1)
				}
			case 50:
				t.Rotation = parseFloatDefault(val, 0)
			case 71:
				t.AttachmentPoint = parseIntDefault(val, 0)
			case 72:
				t.HAlign = parseIntDefault(val, 0)
			case 73:
				t.VAlign = parseIntDefault(val, 0)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		t.Value = cont + value
		if kind == KindMText && haveDir && (dirX != 0 || dirY != 0) {
			t.Rotation = atan2Deg(dirY, dirX)
		}
		return t, nil
	}
}

package dxf

import "strconv"

// parseTableSection consumes the body of a TABLES section: a sequence of
// (0,"TABLE")...(0,"ENDTAB") blocks, each opened by a (2,<kind>) group
// naming LAYER/STYLE/LTYPE/etc. Unknown table kinds are skipped.
func parseTableSection(tok *Tokenizer, d *Drawing) error {
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code == 0 && g.Value == "ENDSEC" {
			tok.Next()
			return nil
		}
		if g.Code != 0 || g.Value != "TABLE" {
			tok.Next()
			continue
		}
		tok.Next() // consume (0,"TABLE")
		kind, err := readTableKind(tok)
		if err != nil {
			return err
		}
		if err := consumeTableBody(tok, d, kind); err != nil {
			return err
		}
	}
}

func readTableKind(tok *Tokenizer) (string, error) {
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return "", err
		}
		if !ok || g.Code == 0 {
			return "", nil
		}
		tok.Next()
		if g.Code == 2 {
			return g.Value, nil
		}
	}
}

func consumeTableBody(tok *Tokenizer, d *Drawing, kind string) error {
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code == 0 && g.Value == "ENDTAB" {
			tok.Next()
			return nil
		}
		if g.Code != 0 {
			tok.Next()
			continue
		}
		switch g.Value {
		case "LAYER":
			tok.Next()
			l, err := parseLayerRecord(tok)
			if err != nil {
				return err
			}
			d.Layers[l.Name] = l
		case "STYLE":
			tok.Next()
			s, err := parseStyleRecord(tok)
			if err != nil {
				return err
			}
			d.Styles[s.Name] = s
		case "LTYPE":
			tok.Next()
			lt, err := parseLtypeRecord(tok)
			if err != nil {
				return err
			}
			d.LineTypes[lt.Name] = lt
		default:
			tok.Next()
			if err := skipRecord(tok); err != nil {
				return err
			}
		}
	}
}

// skipRecord discards groups belonging to an unrecognized table record kind
// until the next (0, ...).
func skipRecord(tok *Tokenizer) error {
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return err
		}
		if !ok || g.Code == 0 {
			return nil
		}
		tok.Next()
	}
}

func parseLayerRecord(tok *Tokenizer) (*Layer, error) {
	l := &Layer{Visible: true}
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok || g.Code == 0 {
			return l, nil
		}
		tok.Next()
		switch g.Code {
		case 2:
			l.Name = g.Value
		case 62:
			c, err := strconv.Atoi(g.Value)
			if err != nil {
				continue
			}
			if c < 0 {
				l.Color = -c
				l.Visible = false
			} else {
				l.Color = c
			}
		case 6:
			l.LineType = g.Value
		case 70:
			flags, err := strconv.Atoi(g.Value)
			if err != nil {
				continue
			}
			l.Frozen = flags&1 != 0
		}
	}
}

func parseStyleRecord(tok *Tokenizer) (*TextStyle, error) {
	s := &TextStyle{}
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok || g.Code == 0 {
			return s, nil
		}
		tok.Next()
		switch g.Code {
		case 2:
			s.Name = g.Value
		case 3:
			s.FontFile = g.Value
		case 4:
			s.BigFontFile = g.Value
		case 40:
			s.Height = parseFloatDefault(g.Value, 0)
		case 41:
			s.WidthFactor = parseFloatDefault(g.Value, 1)
		}
	}
}

func parseLtypeRecord(tok *Tokenizer) (*LineType, error) {
	lt := &LineType{}
	for {
		g, ok, err := tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok || g.Code == 0 {
			return lt, nil
		}
		tok.Next()
		switch g.Code {
		case 2:
			lt.Name = g.Value
		case 49:
			v := parseFloatDefault(g.Value, 0)
			lt.Pattern = append(lt.Pattern, v)
			if v < 0 {
				lt.TotalLength += -v
			} else {
				lt.TotalLength += v
			}
		}
	}
}

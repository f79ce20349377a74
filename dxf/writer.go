package dxf

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// Writer serializes a Drawing back to an io.Writer in ASCII DXF format.
// The writer manages handle generation for entities and writes properly
// formatted DXF group codes. Its main consumers are the round-trip tests
// and debug tooling; the reader is the production surface.
type Writer struct {
	w          io.Writer
	nextHandle int
}

// NewWriter creates a new DXF writer that outputs to the provided io.Writer.
// The writer starts with handle counter at 1 and auto-increments for each
// record requiring a unique handle.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, nextHandle: 1}
}

func (w *Writer) getHandle() string {
	h := fmt.Sprintf("%X", w.nextHandle)
	w.nextHandle++
	return h
}

// EscapeUnicode converts non-ASCII characters to DXF Unicode escape format.
//
// DXF uses the escape sequence \U+XXXX for Unicode characters, where XXXX is
// the hexadecimal Unicode code point.
//
// Example: "日本語" -> "\U+65E5\U+672C\U+8A9E"
func EscapeUnicode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r > 127 || !unicode.IsPrint(r) {
			sb.WriteString(fmt.Sprintf("\\U+%04X", r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// groupCode is one code/value pair queued for writing.
type groupCode struct {
	Code  int
	Value any
}

// WriteDrawing writes a complete DXF document to the output stream:
// HEADER, TABLES, BLOCKS, and ENTITIES sections followed by the EOF marker.
func (w *Writer) WriteDrawing(d *Drawing) error {
	if err := w.writeHeader(d); err != nil {
		return err
	}
	if err := w.writeTables(d); err != nil {
		return err
	}
	if err := w.writeBlocks(d); err != nil {
		return err
	}
	if err := w.writeEntities(d); err != nil {
		return err
	}
	return w.writeGroupCode(0, "EOF")
}

func (w *Writer) writeHeader(d *Drawing) error {
	if err := w.writeSection("HEADER"); err != nil {
		return err
	}
	groups := []groupCode{
		{9, "$ACADVER"},
		{1, "AC1015"},
		{9, "$EXTMIN"},
		{10, d.Header.ExtMin.X},
		{20, d.Header.ExtMin.Y},
		{30, 0.0},
		{9, "$EXTMAX"},
		{10, d.Header.ExtMax.X},
		{20, d.Header.ExtMax.Y},
		{30, 0.0},
		{9, "$INSUNITS"},
		{70, d.Header.InsUnits},
		{9, "$LTSCALE"},
		{40, d.Header.LTScale},
	}
	if err := w.writeGroupCodes(groups); err != nil {
		return err
	}
	return w.writeEndSection()
}

func (w *Writer) writeTables(d *Drawing) error {
	if err := w.writeSection("TABLES"); err != nil {
		return err
	}
	if err := w.writeLinetypeTable(d); err != nil {
		return err
	}
	if err := w.writeLayerTable(d); err != nil {
		return err
	}
	if err := w.writeStyleTable(d); err != nil {
		return err
	}
	return w.writeEndSection()
}

// sortedKeys gives the dictionaries a stable file order; insertion order is
// not preserved in maps.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (w *Writer) writeLinetypeTable(d *Drawing) error {
	if err := w.writeGroupCodes([]groupCode{
		{0, "TABLE"},
		{2, "LTYPE"},
		{5, w.getHandle()},
		{70, len(d.LineTypes) + 1},
	}); err != nil {
		return err
	}

	// CONTINUOUS is required even when the drawing defines no patterns.
	if _, ok := d.LineTypes["CONTINUOUS"]; !ok {
		if err := w.writeGroupCodes([]groupCode{
			{0, "LTYPE"},
			{5, w.getHandle()},
			{2, "CONTINUOUS"},
			{70, 0},
			{3, "Solid line"},
			{72, 65},
			{73, 0},
			{40, 0.0},
		}); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(d.LineTypes) {
		lt := d.LineTypes[name]
		groups := []groupCode{
			{0, "LTYPE"},
			{5, w.getHandle()},
			{2, EscapeUnicode(lt.Name)},
			{70, 0},
			{3, ""},
			{72, 65},
			{73, len(lt.Pattern)},
			{40, lt.TotalLength},
		}
		for _, el := range lt.Pattern {
			groups = append(groups, groupCode{49, el})
		}
		if err := w.writeGroupCodes(groups); err != nil {
			return err
		}
	}
	return w.writeGroupCode(0, "ENDTAB")
}

func (w *Writer) writeLayerTable(d *Drawing) error {
	if err := w.writeGroupCodes([]groupCode{
		{0, "TABLE"},
		{2, "LAYER"},
		{5, w.getHandle()},
		{70, len(d.Layers)},
	}); err != nil {
		return err
	}

	for _, name := range sortedKeys(d.Layers) {
		layer := d.Layers[name]
		color := layer.Color
		if !layer.Visible {
			color = -color
		}
		flags := 0
		if layer.Frozen {
			flags |= 1
		}
		lineType := layer.LineType
		if lineType == "" {
			lineType = "CONTINUOUS"
		}
		if err := w.writeGroupCodes([]groupCode{
			{0, "LAYER"},
			{5, w.getHandle()},
			{2, EscapeUnicode(layer.Name)},
			{70, flags},
			{62, color},
			{6, lineType},
		}); err != nil {
			return err
		}
	}
	return w.writeGroupCode(0, "ENDTAB")
}

func (w *Writer) writeStyleTable(d *Drawing) error {
	if err := w.writeGroupCodes([]groupCode{
		{0, "TABLE"},
		{2, "STYLE"},
		{5, w.getHandle()},
		{70, len(d.Styles) + 1},
	}); err != nil {
		return err
	}

	if _, ok := d.Styles["STANDARD"]; !ok {
		if err := w.writeGroupCodes([]groupCode{
			{0, "STYLE"},
			{5, w.getHandle()},
			{2, "STANDARD"},
			{70, 0},
			{40, 0.0},
			{41, 1.0},
			{50, 0.0},
			{71, 0},
			{3, "txt"},
			{4, ""},
		}); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(d.Styles) {
		s := d.Styles[name]
		if err := w.writeGroupCodes([]groupCode{
			{0, "STYLE"},
			{5, w.getHandle()},
			{2, EscapeUnicode(s.Name)},
			{70, 0},
			{40, s.Height},
			{41, s.WidthFactor},
			{50, 0.0},
			{71, 0},
			{3, s.FontFile},
			{4, s.BigFontFile},
		}); err != nil {
			return err
		}
	}
	return w.writeGroupCode(0, "ENDTAB")
}

func (w *Writer) writeBlocks(d *Drawing) error {
	if err := w.writeSection("BLOCKS"); err != nil {
		return err
	}

	for _, name := range sortedKeys(d.Blocks) {
		block := d.Blocks[name]
		if err := w.writeGroupCodes([]groupCode{
			{0, "BLOCK"},
			{5, w.getHandle()},
			{8, "0"},
			{2, EscapeUnicode(block.Name)},
			{70, 0},
			{10, block.Base.X},
			{20, block.Base.Y},
			{30, 0.0},
			{3, EscapeUnicode(block.Name)},
		}); err != nil {
			return err
		}
		for _, entity := range block.Entities {
			if err := w.writeEntity(entity); err != nil {
				return err
			}
		}
		if err := w.writeGroupCodes([]groupCode{
			{0, "ENDBLK"},
			{8, "0"},
		}); err != nil {
			return err
		}
	}
	return w.writeEndSection()
}

func (w *Writer) writeEntities(d *Drawing) error {
	if err := w.writeSection("ENTITIES"); err != nil {
		return err
	}
	for _, entity := range d.Entities {
		if err := w.writeEntity(entity); err != nil {
			return err
		}
	}
	return w.writeEndSection()
}

func (w *Writer) writeEntity(entity Entity) error {
	if err := w.writeGroupCodes(w.entityGroupCodes(entity)); err != nil {
		return err
	}
	if ins, ok := entity.(*Insert); ok && len(ins.Attribs) > 0 {
		for _, a := range ins.Attribs {
			if err := w.writeGroupCodes(w.entityGroupCodes(a)); err != nil {
				return err
			}
		}
		return w.writeGroupCodes([]groupCode{{0, "SEQEND"}, {8, "0"}})
	}
	return nil
}

// commonGroupCodes emits the groups shared by every entity kind, following
// the (0,name) record opener.
func (w *Writer) commonGroupCodes(kind string, c *EntityCommon) []groupCode {
	groups := []groupCode{
		{0, kind},
		{5, w.getHandle()},
		{8, EscapeUnicode(c.Layer)},
	}
	if c.Color != 0 {
		groups = append(groups, groupCode{62, c.Color})
	}
	if c.LineType != "" && c.LineType != "BYLAYER" {
		groups = append(groups, groupCode{6, c.LineType})
	}
	if !c.Visible {
		groups = append(groups, groupCode{60, 1})
	}
	return groups
}

func (w *Writer) entityGroupCodes(entity Entity) []groupCode {
	groups := w.commonGroupCodes(entity.Kind(), entity.Base())
	switch e := entity.(type) {
	case *Line:
		groups = append(groups,
			groupCode{10, e.Start.X}, groupCode{20, e.Start.Y}, groupCode{30, 0.0},
			groupCode{11, e.End.X}, groupCode{21, e.End.Y}, groupCode{31, 0.0})
	case *Circle:
		groups = append(groups,
			groupCode{10, e.Center.X}, groupCode{20, e.Center.Y}, groupCode{30, 0.0},
			groupCode{40, e.Radius})
	case *Arc:
		groups = append(groups,
			groupCode{10, e.Center.X}, groupCode{20, e.Center.Y}, groupCode{30, 0.0},
			groupCode{40, e.Radius},
			groupCode{50, e.StartAngle}, groupCode{51, e.EndAngle})
	case *DxfPoint:
		groups = append(groups,
			groupCode{10, e.Position.X}, groupCode{20, e.Position.Y}, groupCode{30, 0.0})
	case *Polyline:
		flags := 0
		if e.Closed {
			flags |= 1
		}
		if e.Light {
			groups = append(groups,
				groupCode{90, len(e.Vertices)},
				groupCode{70, flags},
				groupCode{38, e.Elevation})
			for _, v := range e.Vertices {
				groups = append(groups, groupCode{10, v.X}, groupCode{20, v.Y})
				if v.Bulge != 0 {
					groups = append(groups, groupCode{42, v.Bulge})
				}
			}
			break
		}
		// heavyweight POLYLINE: vertices are separate VERTEX records closed
		// by SEQEND
		groups = append(groups, groupCode{66, 1}, groupCode{70, flags})
		for _, v := range e.Vertices {
			groups = append(groups,
				groupCode{0, "VERTEX"},
				groupCode{8, EscapeUnicode(e.Layer)},
				groupCode{10, v.X}, groupCode{20, v.Y}, groupCode{30, 0.0})
			if v.Bulge != 0 {
				groups = append(groups, groupCode{42, v.Bulge})
			}
		}
		groups = append(groups, groupCode{0, "SEQEND"}, groupCode{8, EscapeUnicode(e.Layer)})
	case *Spline:
		flags := 0
		if e.Closed {
			flags |= 1
		}
		if e.Periodic {
			flags |= 2
		}
		if e.Rational {
			flags |= 4
		}
		groups = append(groups,
			groupCode{70, flags},
			groupCode{71, e.Degree},
			groupCode{72, len(e.Knots)},
			groupCode{73, len(e.ControlPoints)},
			groupCode{74, len(e.FitPoints)})
		for _, k := range e.Knots {
			groups = append(groups, groupCode{40, k})
		}
		for i, cp := range e.ControlPoints {
			groups = append(groups, groupCode{10, cp.X}, groupCode{20, cp.Y}, groupCode{30, 0.0})
			if e.Rational && i < len(e.Weights) {
				groups = append(groups, groupCode{41, e.Weights[i]})
			}
		}
		for _, fp := range e.FitPoints {
			groups = append(groups, groupCode{11, fp.X}, groupCode{21, fp.Y}, groupCode{31, 0.0})
		}
	case *Ellipse:
		groups = append(groups,
			groupCode{10, e.Center.X}, groupCode{20, e.Center.Y}, groupCode{30, 0.0},
			groupCode{11, e.MajorAxis.X}, groupCode{21, e.MajorAxis.Y}, groupCode{31, 0.0},
			groupCode{40, e.MinorRatio},
			groupCode{41, e.StartParam},
			groupCode{42, e.EndParam})
	case *Text:
		groups = append(groups,
			groupCode{10, e.Position.X}, groupCode{20, e.Position.Y}, groupCode{30, 0.0},
			groupCode{40, e.Height},
			groupCode{1, EscapeUnicode(e.Value)})
		if e.Rotation != 0 {
			groups = append(groups, groupCode{50, e.Rotation})
		}
		if e.Style != "" {
			groups = append(groups, groupCode{7, e.Style})
		}
		switch e.SubKind {
		case KindMText:
			if e.WrapWidth != 0 {
				groups = append(groups, groupCode{41, e.WrapWidth})
			}
			if e.AttachmentPoint != 0 {
				groups = append(groups, groupCode{71, e.AttachmentPoint})
			}
		default:
			if e.WidthFactor != 1 {
				groups = append(groups, groupCode{41, e.WidthFactor})
			}
			if e.HasSecond {
				groups = append(groups,
					groupCode{11, e.SecondPosition.X}, groupCode{21, e.SecondPosition.Y}, groupCode{31, 0.0})
			}
			if e.HAlign != 0 {
				groups = append(groups, groupCode{72, e.HAlign})
			}
			if e.VAlign != 0 {
				groups = append(groups, groupCode{73, e.VAlign})
			}
			if e.Tag != "" {
				groups = append(groups, groupCode{2, EscapeUnicode(e.Tag)})
			}
		}
	case *Insert:
		if len(e.Attribs) > 0 {
			groups = append(groups, groupCode{66, 1})
		}
		groups = append(groups,
			groupCode{2, EscapeUnicode(e.BlockName)},
			groupCode{10, e.Position.X}, groupCode{20, e.Position.Y}, groupCode{30, 0.0},
			groupCode{41, e.ScaleX}, groupCode{42, e.ScaleY}, groupCode{43, e.ScaleZ})
		if e.Rotation != 0 {
			groups = append(groups, groupCode{50, e.Rotation})
		}
		if e.ColCount > 1 || e.RowCount > 1 {
			groups = append(groups,
				groupCode{70, e.ColCount}, groupCode{71, e.RowCount},
				groupCode{44, e.ColSpacing}, groupCode{45, e.RowSpacing})
		}
	case *Solid:
		p := e.Points
		if !e.Is3DFace {
			// stored in polygon order; the file format wants the last two
			// corners swapped back
			p[2], p[3] = p[3], p[2]
		}
		groups = append(groups,
			groupCode{10, p[0].X}, groupCode{20, p[0].Y}, groupCode{30, 0.0},
			groupCode{11, p[1].X}, groupCode{21, p[1].Y}, groupCode{31, 0.0},
			groupCode{12, p[2].X}, groupCode{22, p[2].Y}, groupCode{32, 0.0},
			groupCode{13, p[3].X}, groupCode{23, p[3].Y}, groupCode{33, 0.0})
	case *Dimension:
		groups = append(groups,
			groupCode{2, EscapeUnicode(e.BlockName)},
			groupCode{10, e.DefPoint.X}, groupCode{20, e.DefPoint.Y}, groupCode{30, 0.0},
			groupCode{11, e.TextMidPoint.X}, groupCode{21, e.TextMidPoint.Y}, groupCode{31, 0.0},
			groupCode{70, e.DimType},
			groupCode{42, e.Measurement})
		if e.OverrideText != "" {
			groups = append(groups, groupCode{1, EscapeUnicode(e.OverrideText)})
		}
		if e.Style != "" {
			groups = append(groups, groupCode{3, e.Style})
		}
	case *Leader:
		arrow := 0
		if e.HasArrow {
			arrow = 1
		}
		groups = append(groups, groupCode{71, arrow}, groupCode{72, e.PathType})
		for _, v := range e.Vertices {
			groups = append(groups, groupCode{10, v.X}, groupCode{20, v.Y}, groupCode{30, 0.0})
		}
	case *RayLine:
		groups = append(groups,
			groupCode{10, e.Point.X}, groupCode{20, e.Point.Y}, groupCode{30, 0.0},
			groupCode{11, e.Direction.X}, groupCode{21, e.Direction.Y}, groupCode{31, 0.0})
	case *Hatch:
		solid := 0
		if e.Solid {
			solid = 1
		}
		groups = append(groups,
			groupCode{2, EscapeUnicode(e.PatternName)},
			groupCode{70, solid},
			groupCode{41, e.Scale},
			groupCode{52, e.Angle},
			groupCode{91, len(e.Loops)})
		for _, loop := range e.Loops {
			if loop.IsPolyline {
				groups = append(groups, groupCode{92, 2}, groupCode{93, len(loop.Vertices)})
				for _, v := range loop.Vertices {
					groups = append(groups, groupCode{10, v.X}, groupCode{20, v.Y})
					if v.Bulge != 0 {
						groups = append(groups, groupCode{42, v.Bulge})
					}
				}
				continue
			}
			groups = append(groups, groupCode{92, 0}, groupCode{93, len(loop.Edges)})
			for _, edge := range loop.Edges {
				groups = append(groups, groupCode{72, int(edge.Kind)})
				switch edge.Kind {
				case HatchEdgeArc, HatchEdgeEllipse:
					groups = append(groups,
						groupCode{10, edge.Center.X}, groupCode{20, edge.Center.Y},
						groupCode{40, edge.Radius},
						groupCode{50, edge.StartAngle}, groupCode{51, edge.EndAngle})
				default:
					groups = append(groups,
						groupCode{10, edge.Start.X}, groupCode{20, edge.Start.Y},
						groupCode{11, edge.End.X}, groupCode{21, edge.End.Y})
				}
			}
		}
	}
	return groups
}

func (w *Writer) writeSection(name string) error {
	if err := w.writeGroupCode(0, "SECTION"); err != nil {
		return err
	}
	return w.writeGroupCode(2, name)
}

func (w *Writer) writeEndSection() error {
	return w.writeGroupCode(0, "ENDSEC")
}

func (w *Writer) writeGroupCodes(groups []groupCode) error {
	for _, gc := range groups {
		if err := w.writeGroupCode(gc.Code, gc.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeGroupCode writes a single DXF group code/value pair: the code
// right-aligned in 3 characters, then the value on the next line.
func (w *Writer) writeGroupCode(code int, value any) error {
	var line string
	switch v := value.(type) {
	case string:
		line = fmt.Sprintf("%3d\n%s\n", code, v)
	case int:
		line = fmt.Sprintf("%3d\n%d\n", code, v)
	case float64:
		line = fmt.Sprintf("%3d\n%f\n", code, v)
	default:
		line = fmt.Sprintf("%3d\n%v\n", code, v)
	}
	_, err := io.WriteString(w.w, line)
	return err
}

// ToString serializes a Drawing to a string in ASCII DXF format. This is a
// convenience wrapper around Writer for tests and tooling.
func ToString(d *Drawing) string {
	var sb strings.Builder
	w := NewWriter(&sb)
	_ = w.WriteDrawing(d)
	return sb.String()
}

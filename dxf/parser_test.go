package dxf_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/dxfcore/dxfcore/dxf"
)

// frag joins DXF group records into a parseable fragment, one logical line
// per element.
func frag(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func entitiesSection(records ...string) string {
	all := append([]string{"0", "SECTION", "2", "ENTITIES"}, records...)
	all = append(all, "0", "ENDSEC", "0", "EOF")
	return frag(all...)
}

func TestParseMinimalLine(t *testing.T) {
	in := entitiesSection(
		"0", "LINE",
		"8", "0",
		"10", "0", "20", "0",
		"11", "10", "21", "0",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse(%q)", in)
	require.EqualValues(t, len(d.Entities), 1, "entity count")

	line, ok := d.Entities[0].(*dxf.Line)
	require.True(t, ok, "expected a *Line, got %T", d.Entities[0])
	assert.EqualValues(t, line.Layer, "0", "layer")
	assert.EqualValues(t, line.Start, dxf.Point{X: 0, Y: 0}, "start")
	assert.EqualValues(t, line.End, dxf.Point{X: 10, Y: 0}, "end")

	ext := dxf.Extents(d.Entities, d.Blocks)
	assert.EqualValues(t, ext.Min, dxf.Point{X: 0, Y: 0}, "extents min")
	assert.EqualValues(t, ext.Max, dxf.Point{X: 10, Y: 0}, "extents max")
	assert.EqualValues(t, ext.Center, dxf.Point{X: 5, Y: 0}, "extents center")
	assert.EqualValues(t, ext.Width, 10.0, "extents width")
	assert.EqualValues(t, ext.Height, 0.0, "extents height")
}

func TestParseRejectsNonDXF(t *testing.T) {
	tests := map[string]string{
		"Garbage":      "hello\nworld\n",
		"WrongOpener":  frag("0", "ENTITIES"),
		"EmptyInput":   "",
		"OnlyComments": frag("999", "made by hand"),
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := dxf.Parse(context.Background(), in, nil)

			require.NotNil(t, err, "Parse(%q)", in)
			// a non-integer first line is malformed rather than merely
			// unsupported
			supported := errors.Is(err, dxf.ErrUnsupportedFormat) || errors.Is(err, dxf.ErrMalformedInput)
			assert.True(t, supported, "Parse(%q) = %v", in, err)
		})
	}
}

func TestParseAllowsLeadingComment(t *testing.T) {
	in := frag("999", "exported for tests") + entitiesSection(
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse with 999 comment")
	assert.EqualValues(t, len(d.Entities), 1, "entity count")
}

func TestParseMalformedGroupCode(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "ENTITIES",
		"xx", "LINE",
	)

	_, err := dxf.Parse(context.Background(), in, nil)

	require.NotNil(t, err, "expected malformed input error")
	assert.True(t, errors.Is(err, dxf.ErrMalformedInput), "got %v", err)

	var dxfErr *dxf.DXFError
	require.True(t, errors.As(err, &dxfErr), "expected *DXFError, got %T", err)
	assert.EqualValues(t, dxfErr.Line, 5, "error line")
}

func TestParseHeader(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "HEADER",
		"9", "$EXTMIN",
		"10", "-5", "20", "-10",
		"9", "$EXTMAX",
		"10", "100", "20", "200",
		"9", "$INSUNITS",
		"70", "4",
		"9", "$LTSCALE",
		"40", "2.5",
		"9", "$DIMSCALE",
		"40", "99",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse header")
	assert.EqualValues(t, d.Header.ExtMin, dxf.Point{X: -5, Y: -10}, "$EXTMIN")
	assert.EqualValues(t, d.Header.ExtMax, dxf.Point{X: 100, Y: 200}, "$EXTMAX")
	assert.EqualValues(t, d.Header.InsUnits, 4, "$INSUNITS")
	assert.EqualValues(t, d.Header.LTScale, 2.5, "$LTSCALE")
}

func TestParseTables(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "TABLES",
		"0", "TABLE",
		"2", "LAYER",
		"0", "LAYER",
		"2", "WALLS",
		"62", "-3",
		"6", "DASHED",
		"0", "LAYER",
		"2", "DOORS",
		"62", "5",
		"70", "1",
		"0", "ENDTAB",
		"0", "TABLE",
		"2", "STYLE",
		"0", "STYLE",
		"2", "NOTES",
		"3", "txt.shx",
		"4", "big.shx",
		"40", "2.5",
		"41", "0.8",
		"0", "ENDTAB",
		"0", "TABLE",
		"2", "LTYPE",
		"0", "LTYPE",
		"2", "DASHED",
		"49", "0.5",
		"49", "-0.25",
		"0", "ENDTAB",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse tables")

	walls := d.Layers["WALLS"]
	require.NotNil(t, walls, "WALLS layer")
	// negative color means hidden, stored as its absolute value
	assert.EqualValues(t, walls.Color, 3, "WALLS color")
	assert.False(t, walls.Visible, "WALLS visibility")
	assert.EqualValues(t, walls.LineType, "DASHED", "WALLS line type")

	doors := d.Layers["DOORS"]
	require.NotNil(t, doors, "DOORS layer")
	assert.True(t, doors.Frozen, "DOORS frozen")
	assert.True(t, doors.Visible, "DOORS visibility")

	notes := d.Styles["NOTES"]
	require.NotNil(t, notes, "NOTES style")
	assert.EqualValues(t, notes.FontFile, "txt.shx", "font file")
	assert.EqualValues(t, notes.BigFontFile, "big.shx", "big font file")
	assert.EqualValues(t, notes.Height, 2.5, "height")
	assert.EqualValues(t, notes.WidthFactor, 0.8, "width factor")

	dashed := d.LineTypes["DASHED"]
	require.NotNil(t, dashed, "DASHED line type")
	assert.EqualValues(t, dashed.Pattern, []float64{0.5, -0.25}, "pattern")
	assert.EqualValues(t, dashed.TotalLength, 0.75, "total length")

	// layer "0" is always present
	require.NotNil(t, d.Layers["0"], "default layer")
}

func TestParseSkipsPaperSpaceEntities(t *testing.T) {
	in := entitiesSection(
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
		"0", "LINE", "67", "1", "10", "5", "20", "5", "11", "6", "21", "6",
		"0", "CIRCLE", "10", "0", "20", "0", "40", "1",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 2, "paper-space entity must be excluded")
	assert.EqualValues(t, d.Entities[0].Kind(), "LINE", "first entity")
	assert.EqualValues(t, d.Entities[1].Kind(), "CIRCLE", "second entity")
}

func TestParseSkipsUnknownEntities(t *testing.T) {
	in := entitiesSection(
		"0", "WIPEOUT", "10", "0", "20", "0",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
		"0", "MLINE", "10", "9", "20", "9",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 1, "only the LINE survives")
}

func TestParseDropsInsertOfUnknownBlock(t *testing.T) {
	in := entitiesSection(
		"0", "INSERT", "2", "MISSING", "10", "0", "20", "0",
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 1, "unknown-block INSERT must be dropped")
	assert.EqualValues(t, d.Entities[0].Kind(), "LINE", "surviving entity")
}

func TestParseBlocksAndInsert(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "BLOCKS",
		"0", "BLOCK",
		"2", "UNIT",
		"10", "0", "20", "0",
		"0", "LINE",
		"10", "0", "20", "0",
		"11", "1", "21", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "INSERT",
		"2", "UNIT",
		"10", "10", "20", "10",
		"41", "2", "42", "2",
		"50", "90",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.NotNil(t, d.Blocks["UNIT"], "UNIT block")
	require.EqualValues(t, len(d.Blocks["UNIT"].Entities), 1, "block entity count")
	require.EqualValues(t, len(d.Entities), 1, "model space count")

	ins, ok := d.Entities[0].(*dxf.Insert)
	require.True(t, ok, "expected *Insert, got %T", d.Entities[0])
	assert.EqualValues(t, ins.BlockName, "UNIT", "block name")
	assert.EqualValues(t, ins.ScaleX, 2.0, "x scale")
	assert.EqualValues(t, ins.Rotation, 90.0, "rotation")

	// scale 2 and rotation 90 place the block's (1,0) at (10,12)
	ext := dxf.Extents(d.Entities, d.Blocks)
	assert.EqualValues(t, ext.Min, dxf.Point{X: 10, Y: 10}, "extents min")
	assert.EqualValues(t, ext.Max.Y, 12.0, "extents max y")
}

func TestParseInsertWithAttribs(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "BLOCKS",
		"0", "BLOCK",
		"2", "TITLE",
		"10", "0", "20", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "INSERT",
		"66", "1",
		"2", "TITLE",
		"10", "0", "20", "0",
		"0", "ATTRIB",
		"10", "1", "20", "1",
		"40", "2.5",
		"1", "Sheet 1",
		"2", "SHEETNO",
		"0", "SEQEND",
		"0", "LINE",
		"10", "0", "20", "0", "11", "1", "21", "1",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 2, "INSERT and LINE")

	ins, ok := d.Entities[0].(*dxf.Insert)
	require.True(t, ok, "expected *Insert, got %T", d.Entities[0])
	require.EqualValues(t, len(ins.Attribs), 1, "attrib count")
	assert.EqualValues(t, ins.Attribs[0].Value, "Sheet 1", "attrib value")
	assert.EqualValues(t, ins.Attribs[0].Tag, "SHEETNO", "attrib tag")
}

func TestParseSelfReferentialBlockTerminates(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "BLOCKS",
		"0", "BLOCK",
		"2", "LOOP",
		"10", "0", "20", "0",
		"0", "LINE",
		"10", "0", "20", "0",
		"11", "1", "21", "1",
		"0", "INSERT",
		"2", "LOOP",
		"10", "1", "20", "1",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "INSERT",
		"2", "LOOP",
		"10", "0", "20", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse must survive a self-referential block")

	ext := dxf.Extents(d.Entities, d.Blocks)
	assert.True(t, ext.Width >= 0 && ext.Height >= 0, "extents finite: %+v", ext)

	_, hit := dxf.HitPoint(0.5, 0.5, 0.1, d)
	assert.True(t, hit, "hit test must terminate and find the line")
}

func TestParseMTextValueConcatenation(t *testing.T) {
	in := entitiesSection(
		"0", "MTEXT",
		"10", "0", "20", "0",
		"40", "2.5",
		"3", "first chunk ",
		"3", "second chunk ",
		"1", "the tail",
		"71", "5",
		"41", "60",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 1, "entity count")

	text, ok := d.Entities[0].(*dxf.Text)
	require.True(t, ok, "expected *Text, got %T", d.Entities[0])
	// the tokenizer trims each value's trailing whitespace, so the chunks
	// join without the spaces written after them
	assert.EqualValues(t, text.Value, "first chunksecond chunkthe tail", "group 3 overflow precedes the group 1 tail")
	assert.EqualValues(t, text.AttachmentPoint, 5, "attachment point")
	assert.EqualValues(t, text.WrapWidth, 60.0, "wrap width")
}

func TestParseCircleWithNegativeExtrusion(t *testing.T) {
	in := entitiesSection(
		"0", "CIRCLE",
		"10", "5", "20", "0",
		"40", "1",
		"210", "0", "220", "0", "230", "-1",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 1, "entity count")

	circle, ok := d.Entities[0].(*dxf.Circle)
	require.True(t, ok, "expected *Circle, got %T", d.Entities[0])
	// the (0,0,-1) OCS mirrors X
	assert.EqualValues(t, circle.Center.X, -5.0, "mirrored center x")

	id, hit := dxf.HitPoint(-5+1, 0, 0.01, d)
	assert.True(t, hit, "expected hit on mirrored circle rim")
	assert.EqualValues(t, id, circle.ID, "hit id")

	_, hit = dxf.HitPoint(5+1, 0, 0.01, d)
	assert.False(t, hit, "no geometry at the unmirrored position")
}

func TestParseProgress(t *testing.T) {
	var records []string
	for i := 0; i < 800; i++ {
		records = append(records,
			"0", "LINE",
			"8", "0",
			"10", "0", "20", "0",
			"11", "1", "21", "1",
		)
	}
	in := entitiesSection(records...)

	var percents []int
	d, err := dxf.Parse(context.Background(), in, func(pct int) bool {
		percents = append(percents, pct)
		return true
	})

	require.NoError(t, err, "Parse")
	assert.EqualValues(t, len(d.Entities), 800, "entity count")

	require.True(t, len(percents) > 1, "expected several progress reports, got %v", percents)
	for i := 1; i < len(percents); i++ {
		assert.True(t, percents[i] >= percents[i-1], "progress must be monotone: %v", percents)
	}
	assert.EqualValues(t, percents[len(percents)-1], 100, "final progress")
}

func TestParseCancelledByProgressSink(t *testing.T) {
	var records []string
	for i := 0; i < 800; i++ {
		records = append(records, "0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1")
	}
	in := entitiesSection(records...)

	d, err := dxf.Parse(context.Background(), in, func(pct int) bool {
		return false
	})

	require.NotNil(t, err, "expected cancellation")
	assert.True(t, errors.Is(err, dxf.ErrCancelled), "got %v", err)
	assert.Nil(t, d, "partial state must be discarded")
}

func TestParseCancelledByContext(t *testing.T) {
	var records []string
	for i := 0; i < 800; i++ {
		records = append(records, "0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1")
	}
	in := entitiesSection(records...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dxf.Parse(ctx, in, nil)

	require.NotNil(t, err, "expected cancellation")
	assert.True(t, errors.Is(err, dxf.ErrCancelled), "got %v", err)
}

func TestParseOffset(t *testing.T) {
	in := entitiesSection(
		"0", "LINE",
		"10", "500000.25", "20", "4000000.75",
		"11", "500010.25", "21", "4000010.75",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.NotNil(t, d.Offset, "offset for large coordinates")
	assert.EqualValues(t, *d.Offset, dxf.Point{X: 500000, Y: 4000000}, "offset is the floor of the extent minimum")
	// stored coordinates stay absolute
	line := d.Entities[0].(*dxf.Line)
	assert.EqualValues(t, line.Start.X, 500000.25, "absolute coordinate")
}

func TestParseEntityIDsUnique(t *testing.T) {
	in := entitiesSection(
		"0", "LINE", "10", "0", "20", "0", "11", "1", "21", "1",
		"0", "CIRCLE", "10", "0", "20", "0", "40", "1",
		"0", "POINT", "10", "3", "20", "3",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	seen := map[dxf.EntityID]bool{}
	for _, e := range d.Entities {
		assert.False(t, seen[e.Base().ID], "duplicate id %d", e.Base().ID)
		seen[e.Base().ID] = true
	}
}

func TestParseLWPolyline(t *testing.T) {
	in := entitiesSection(
		"0", "LWPOLYLINE",
		"90", "3",
		"70", "1",
		"10", "0", "20", "0",
		"42", "1",
		"10", "2", "20", "0",
		"10", "2", "20", "2",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	pl, ok := d.Entities[0].(*dxf.Polyline)
	require.True(t, ok, "expected *Polyline, got %T", d.Entities[0])
	require.EqualValues(t, len(pl.Vertices), 3, "vertex count")
	assert.True(t, pl.Closed, "closed flag")
	assert.EqualValues(t, pl.Vertices[0].Bulge, 1.0, "first segment bulge")
	assert.EqualValues(t, pl.Vertices[1].Bulge, 0.0, "second segment bulge")
}

func TestParsePolylineWithVertexRecords(t *testing.T) {
	in := entitiesSection(
		"0", "POLYLINE",
		"66", "1",
		"70", "1",
		"0", "VERTEX",
		"10", "0", "20", "0",
		"0", "VERTEX",
		"10", "4", "20", "0",
		"42", "0.5",
		"0", "VERTEX",
		"10", "4", "20", "4",
		"0", "SEQEND",
		"0", "CIRCLE",
		"10", "0", "20", "0", "40", "1",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	require.EqualValues(t, len(d.Entities), 2, "POLYLINE and CIRCLE")

	pl, ok := d.Entities[0].(*dxf.Polyline)
	require.True(t, ok, "expected *Polyline, got %T", d.Entities[0])
	require.EqualValues(t, len(pl.Vertices), 3, "vertex count")
	assert.EqualValues(t, pl.Vertices[1].Bulge, 0.5, "middle vertex bulge")
	assert.True(t, pl.Closed, "closed flag")
}

func TestParseSolidReordersCorners(t *testing.T) {
	in := entitiesSection(
		"0", "SOLID",
		"10", "0", "20", "0",
		"11", "1", "21", "0",
		"12", "0", "22", "1",
		"13", "1", "23", "1",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	solid, ok := d.Entities[0].(*dxf.Solid)
	require.True(t, ok, "expected *Solid, got %T", d.Entities[0])
	// file order (p0,p1,p2,p3) becomes polygon order (p0,p1,p3,p2)
	assert.EqualValues(t, solid.Points[2], dxf.Point{X: 1, Y: 1}, "third polygon corner")
	assert.EqualValues(t, solid.Points[3], dxf.Point{X: 0, Y: 1}, "fourth polygon corner")
}

func TestParseHatchLoops(t *testing.T) {
	in := entitiesSection(
		"0", "HATCH",
		"2", "SOLID",
		"70", "1",
		"91", "1",
		"92", "2",
		"93", "3",
		"10", "0", "20", "0",
		"42", "1",
		"10", "2", "20", "0",
		"10", "2", "20", "2",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	hatch, ok := d.Entities[0].(*dxf.Hatch)
	require.True(t, ok, "expected *Hatch, got %T", d.Entities[0])
	assert.True(t, hatch.Solid, "SOLID pattern forces solid fill")
	require.EqualValues(t, len(hatch.Loops), 1, "loop count")
	require.True(t, hatch.Loops[0].IsPolyline, "polyline loop")
	require.EqualValues(t, len(hatch.Loops[0].Vertices), 3, "loop vertex count")
	assert.EqualValues(t, hatch.Loops[0].Vertices[0].Bulge, 1.0, "loop bulge")
}

func TestParseHatchEdgeLoop(t *testing.T) {
	in := entitiesSection(
		"0", "HATCH",
		"2", "ANSI31",
		"41", "2",
		"52", "45",
		"91", "1",
		"92", "0",
		"93", "2",
		"72", "1",
		"10", "0", "20", "0",
		"11", "4", "21", "0",
		"72", "2",
		"10", "2", "20", "0",
		"40", "2",
		"50", "0", "51", "180",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	hatch := d.Entities[0].(*dxf.Hatch)
	assert.False(t, hatch.Solid, "pattern fill")
	assert.EqualValues(t, hatch.Scale, 2.0, "fill scale")
	assert.EqualValues(t, hatch.Angle, 45.0, "fill angle")
	require.EqualValues(t, len(hatch.Loops), 1, "loop count")

	edges := hatch.Loops[0].Edges
	require.EqualValues(t, len(edges), 2, "edge count")
	assert.EqualValues(t, edges[0].Kind, dxf.HatchEdgeLine, "first edge kind")
	assert.EqualValues(t, edges[0].End, dxf.Point{X: 4, Y: 0}, "line edge end")
	assert.EqualValues(t, edges[1].Kind, dxf.HatchEdgeArc, "second edge kind")
	// arc edges materialize explicit endpoints from center/radius/angles
	assert.EqualValues(t, edges[1].Start, dxf.Point{X: 4, Y: 0}, "arc edge start")
	assert.EqualValues(t, edges[1].End.X, 0.0, "arc edge end x")
}

func TestParseSpline(t *testing.T) {
	in := entitiesSection(
		"0", "SPLINE",
		"70", "8",
		"71", "3",
		"40", "0", "40", "0", "40", "0", "40", "0",
		"40", "1", "40", "1", "40", "1", "40", "1",
		"10", "0", "20", "0",
		"10", "1", "20", "2",
		"10", "3", "20", "2",
		"10", "4", "20", "0",
		"11", "2", "21", "1.5",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	spline, ok := d.Entities[0].(*dxf.Spline)
	require.True(t, ok, "expected *Spline, got %T", d.Entities[0])
	assert.EqualValues(t, spline.Degree, 3, "degree")
	assert.EqualValues(t, len(spline.ControlPoints), 4, "control point count")
	assert.EqualValues(t, len(spline.Knots), 8, "knot count")
	assert.EqualValues(t, len(spline.FitPoints), 1, "fit point count")
}

func TestParseDimension(t *testing.T) {
	in := frag(
		"0", "SECTION",
		"2", "BLOCKS",
		"0", "BLOCK",
		"2", "*D1",
		"10", "0", "20", "0",
		"0", "LINE",
		"10", "0", "20", "5",
		"11", "10", "21", "5",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "DIMENSION",
		"2", "*D1",
		"10", "10", "20", "5",
		"11", "5", "21", "5.5",
		"70", "0",
		"42", "10",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := dxf.Parse(context.Background(), in, nil)

	require.NoError(t, err, "Parse")
	dim, ok := d.Entities[0].(*dxf.Dimension)
	require.True(t, ok, "expected *Dimension, got %T", d.Entities[0])
	assert.EqualValues(t, dim.BlockName, "*D1", "anonymous block")
	assert.EqualValues(t, dim.Measurement, 10.0, "measurement")

	// the dimension hit-tests through its pre-baked block
	id, hit := dxf.HitPoint(5, 5, 0.1, d)
	assert.True(t, hit, "expected hit through dimension block")
	assert.EqualValues(t, id, dim.ID, "hit resolves to the dimension")
}

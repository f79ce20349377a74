package dxf

import (
	"context"
	"math"
	"strings"
)

// ProgressFunc receives integer percentages in [0,100], monotonically
// non-decreasing; the final call is always 100. Returning false cancels the
// parse: Parse then returns ErrCancelled and discards partial state.
type ProgressFunc func(percent int) bool

// progressInterval is the number of groups consumed between progress
// reports (and cancellation checks).
const progressInterval = 2000

// parser carries the per-call state of one Parse invocation.
type parser struct {
	ctx       context.Context
	tok       *Tokenizer
	progress  ProgressFunc
	cfg       ParserConfig
	st        parseState
	totalLine int
	lastPct   int
	lastCount int
}

// Parse reads an ASCII DXF character stream into an immutable Drawing.
//
// text must already be decoded from bytes; encoding detection is the
// caller's concern. progress may be nil. The returned Drawing preserves
// file order in its entity list and contains only model-space entities;
// table and block dictionaries are keyed by name with last-write-wins on
// duplicates.
func Parse(ctx context.Context, text string, progress ProgressFunc, opts ...ParserOption) (*Drawing, error) {
	cfg := defaultParserConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p := &parser{
		ctx:       ctx,
		tok:       NewTokenizer(strings.NewReader(text)),
		progress:  progress,
		cfg:       cfg,
		st:        parseState{handleBlock: map[string]string{}},
		totalLine: strings.Count(text, "\n") + 1,
	}

	d := &Drawing{
		Header:    Header{LTScale: 1},
		Layers:    map[string]*Layer{},
		Blocks:    map[string]*Block{},
		Styles:    map[string]*TextStyle{},
		LineTypes: map[string]*LineType{},
	}

	if err := p.checkSignature(); err != nil {
		return nil, err
	}
	if err := p.parseSections(d); err != nil {
		return nil, err
	}

	p.finish(d)
	if progress != nil && !progress(100) {
		return nil, &DXFError{Kind: Cancelled, Detail: "cancelled by progress sink"}
	}
	return d, nil
}

// checkSignature verifies the stream opens with (0,"SECTION"), allowing a
// leading 999 comment group, and rejects anything else as UnsupportedFormat.
// The opening group is left unconsumed for parseSections.
func (p *parser) checkSignature() error {
	for {
		g, ok, err := p.tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return &DXFError{Kind: UnsupportedFormat, Detail: "empty input"}
		}
		if g.Code == 999 {
			p.tok.Next()
			continue
		}
		if g.Code != 0 || g.Value != "SECTION" {
			return &DXFError{Kind: UnsupportedFormat, Line: g.Line, Detail: "input does not start with a SECTION group"}
		}
		return nil
	}
}

// yield reports progress and checks for cancellation once per
// progressInterval groups. Called at record boundaries only, so the parse
// is single-threaded cooperative between suspension points.
func (p *parser) yield() error {
	if p.tok.Count()-p.lastCount < progressInterval {
		return nil
	}
	p.lastCount = p.tok.Count()
	if err := p.ctx.Err(); err != nil {
		return &DXFError{Kind: Cancelled, Detail: "context cancelled", Cause: err}
	}
	if p.progress == nil {
		return nil
	}
	pct := p.tok.Line() * 100 / p.totalLine
	if pct > 99 {
		pct = 99
	}
	if pct < p.lastPct {
		pct = p.lastPct
	}
	p.lastPct = pct
	if !p.progress(pct) {
		return &DXFError{Kind: Cancelled, Detail: "cancelled by progress sink"}
	}
	return nil
}

func (p *parser) parseSections(d *Drawing) error {
	for {
		if err := p.yield(); err != nil {
			return err
		}
		g, ok, err := p.tok.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code != 0 {
			continue
		}
		switch g.Value {
		case "EOF":
			return nil
		case "SECTION":
			name, err := p.readSectionName()
			if err != nil {
				return err
			}
			if err := p.parseSection(d, name); err != nil {
				return err
			}
		}
	}
}

func (p *parser) readSectionName() (string, error) {
	for {
		g, ok, err := p.tok.Peek()
		if err != nil {
			return "", err
		}
		if !ok || g.Code == 0 {
			return "", nil
		}
		p.tok.Next()
		if g.Code == 2 {
			return g.Value, nil
		}
	}
}

func (p *parser) parseSection(d *Drawing, name string) error {
	switch name {
	case "HEADER":
		return p.parseHeaderSection(d)
	case "TABLES":
		return parseTableSection(p.tok, d)
	case "BLOCKS":
		return p.parseBlocksSection(d)
	case "ENTITIES":
		return p.parseEntitiesSection(d)
	default:
		return p.skipSection()
	}
}

func (p *parser) skipSection() error {
	for {
		if err := p.yield(); err != nil {
			return err
		}
		g, ok, err := p.tok.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code == 0 && (g.Value == "ENDSEC" || g.Value == "EOF") {
			return nil
		}
	}
}

// parseHeaderSection extracts the handful of $-variables the renderer
// needs; every other variable is discarded.
func (p *parser) parseHeaderSection(d *Drawing) error {
	var name string
	for {
		if err := p.yield(); err != nil {
			return err
		}
		g, ok, err := p.tok.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code == 0 && g.Value == "ENDSEC" {
			return nil
		}
		if g.Code == 9 {
			name = g.Value
			continue
		}
		switch name {
		case "$EXTMIN":
			switch g.Code {
			case 10:
				d.Header.ExtMin.X = parseFloatDefault(g.Value, 0)
			case 20:
				d.Header.ExtMin.Y = parseFloatDefault(g.Value, 0)
			}
		case "$EXTMAX":
			switch g.Code {
			case 10:
				d.Header.ExtMax.X = parseFloatDefault(g.Value, 0)
			case 20:
				d.Header.ExtMax.Y = parseFloatDefault(g.Value, 0)
			}
		case "$INSUNITS":
			if g.Code == 70 {
				d.Header.InsUnits = parseIntDefault(g.Value, 0)
			}
		case "$LTSCALE":
			if g.Code == 40 {
				d.Header.LTScale = parseFloatDefault(g.Value, 1)
			}
		}
	}
}

// parseBlocksSection reads (0,"BLOCK")...(0,"ENDBLK") definitions. Each
// block's handle is recorded so ACAD_TABLE's 342 soft pointer can resolve
// to a block name later.
func (p *parser) parseBlocksSection(d *Drawing) error {
	for {
		if err := p.yield(); err != nil {
			return err
		}
		g, ok, err := p.tok.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code != 0 {
			continue
		}
		switch g.Value {
		case "ENDSEC":
			return nil
		case "BLOCK":
			if err := p.parseBlock(d); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseBlock(d *Drawing) error {
	blk := &Block{}
	var handle string
	for {
		g, ok, err := p.tok.Peek()
		if err != nil {
			return err
		}
		if !ok || g.Code == 0 {
			break
		}
		p.tok.Next()
		switch g.Code {
		case 2:
			blk.Name = g.Value
		case 5:
			handle = g.Value
		case 10:
			blk.Base.X = parseFloatDefault(g.Value, 0)
		case 20:
			blk.Base.Y = parseFloatDefault(g.Value, 0)
		}
	}
	if handle != "" && blk.Name != "" {
		p.st.handleBlock[handle] = blk.Name
	}

	dispatch := entityDispatchTable()
	for {
		if err := p.yield(); err != nil {
			return err
		}
		g, ok, err := p.tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if g.Code != 0 {
			p.tok.Next()
			continue
		}
		// a missing ENDBLK must not swallow the section framing
		if g.Value == "ENDSEC" || g.Value == "EOF" {
			break
		}
		p.tok.Next()
		if g.Value == "ENDBLK" {
			skipEntityTail(p.tok)
			break
		}
		parse, known := dispatch[g.Value]
		if !known {
			if err := skipRecord(p.tok); err != nil {
				return err
			}
			continue
		}
		e, err := parse(p.tok, &p.st)
		if err != nil {
			return err
		}
		if e != nil {
			blk.Entities = append(blk.Entities, e)
		}
	}
	if blk.Name != "" {
		d.Blocks[blk.Name] = blk
	}
	return nil
}

// parseEntitiesSection builds the model-space entity list. Paper-space
// entities (group 67 = 1) are parsed but excluded from the list.
func (p *parser) parseEntitiesSection(d *Drawing) error {
	dispatch := entityDispatchTable()
	for {
		if err := p.yield(); err != nil {
			return err
		}
		g, ok, err := p.tok.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if g.Code != 0 {
			continue
		}
		switch g.Value {
		case "ENDSEC", "EOF":
			return nil
		}
		parse, known := dispatch[g.Value]
		if !known {
			if err := skipRecord(p.tok); err != nil {
				return err
			}
			continue
		}
		e, err := parse(p.tok, &p.st)
		if err != nil {
			return err
		}
		if e == nil || e.Base().PaperSpace {
			continue
		}
		d.Entities = append(d.Entities, e)
	}
}

// finish applies the post-parse fixups: the "0" layer default, dropping
// INSERTs whose block never resolved, circular-reference detection, and the
// precision offset renderers subtract before rasterizing.
func (p *parser) finish(d *Drawing) {
	if _, ok := d.Layers["0"]; !ok {
		d.Layers["0"] = &Layer{Name: "0", Color: 7, LineType: "CONTINUOUS", Visible: true}
	}
	registerReferencedLayers(d, d.Entities)
	for _, blk := range d.Blocks {
		registerReferencedLayers(d, blk.Entities)
	}

	d.Entities = p.dropUnknownInserts(d, d.Entities)
	for _, blk := range d.Blocks {
		blk.Entities = p.dropUnknownInserts(d, blk.Entities)
	}
	p.reportCircularBlocks(d)

	ext := Extents(d.Entities, d.Blocks)
	if ext.Width > 0 || ext.Height > 0 || ext.Min != (Point{}) {
		d.Offset = &Point{X: math.Floor(ext.Min.X), Y: math.Floor(ext.Min.Y)}
	}
}

// registerReferencedLayers backfills default layer records for names that
// entities reference but no LAYER table record defined, so every entity's
// layer resolves in the dictionary.
func registerReferencedLayers(d *Drawing, entities []Entity) {
	for _, e := range entities {
		name := e.Base().Layer
		if _, ok := d.Layers[name]; ok {
			continue
		}
		d.Layers[name] = &Layer{Name: name, Color: 7, LineType: "CONTINUOUS", Visible: true}
	}
}

func (p *parser) dropUnknownInserts(d *Drawing, entities []Entity) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		if ins, ok := e.(*Insert); ok {
			if _, found := d.Blocks[ins.BlockName]; !found {
				p.cfg.logger.Warn("dropping INSERT of unknown block",
					"block", ins.BlockName, "handle", ins.Handle)
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}

// reportCircularBlocks logs CircularBlockReference once per drawing, for
// the first cycle it finds. The instance itself stays in the drawing; the
// extent and hit-test walkers truncate it at the depth cap.
func (p *parser) reportCircularBlocks(d *Drawing) {
	state := map[string]int{} // 0 unvisited, 1 on stack, 2 done
	reported := false
	var visit func(name string)
	visit = func(name string) {
		switch state[name] {
		case 1:
			if !reported {
				reported = true
				p.cfg.logger.Warn("circular block reference, instances truncated at depth cap",
					"block", name, "maxDepth", p.cfg.maxInsertDepth)
			}
			return
		case 2:
			return
		}
		state[name] = 1
		blk := d.Blocks[name]
		if blk != nil {
			for _, e := range blk.Entities {
				if ins, ok := e.(*Insert); ok {
					visit(ins.BlockName)
				}
			}
		}
		state[name] = 2
	}
	for name := range d.Blocks {
		visit(name)
	}
}

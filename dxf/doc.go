// Package dxf reads ASCII DXF (Drawing Interchange Format) drawing files into
// an in-memory geometric model and provides the queries needed to display,
// select within, and measure that model.
//
// The package is organized leaves-first: a streaming tagged-value tokenizer
// feeds a section dispatcher, which feeds table and entity parsers, which
// build a [Drawing]. The geometry kernel (OCS/WCS transforms, B-spline
// evaluation, polyline-bulge arc reconstruction) and the spatial query
// engine (extents, point hit-testing, box selection) operate on the
// resulting immutable [Drawing].
//
// Basic usage:
//
//	f, err := os.Open("plan.dxf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	text, err := io.ReadAll(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := dxf.Parse(context.Background(), string(text), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ext := dxf.Extents(d.Entities, d.Blocks)
package dxf

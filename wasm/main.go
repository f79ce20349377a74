//go:build js && wasm

// Package main provides WebAssembly exports for DXF parsing and spatial
// queries, so a browser canvas renderer can drive the core directly.
package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/dxfcore/dxfcore/dxf"
)

// Version of the WASM module
const Version = "1.0.0"

// debugMode controls verbose logging
var debugMode bool

// drawings holds parsed documents keyed by the handle returned to JS, so
// the query exports can operate without re-parsing or re-marshalling.
var (
	drawings   = map[int]*dxf.Drawing{}
	nextHandle = 1
)

func main() {
	js.Global().Set("dxfParse", js.FuncOf(dxfParse))
	js.Global().Set("dxfFree", js.FuncOf(dxfFree))
	js.Global().Set("dxfExtents", js.FuncOf(dxfExtents))
	js.Global().Set("dxfHitPoint", js.FuncOf(dxfHitPoint))
	js.Global().Set("dxfHitBox", js.FuncOf(dxfHitBox))
	js.Global().Set("dxfEvalSpline", js.FuncOf(dxfEvalSpline))
	js.Global().Set("dxfGetVersion", js.FuncOf(dxfGetVersion))
	js.Global().Set("dxfSetDebug", js.FuncOf(dxfSetDebug))

	// Keep the program running
	<-make(chan struct{})
}

// dxfGetVersion returns the WASM module version.
// JS: dxfGetVersion() -> string
func dxfGetVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// dxfSetDebug enables or disables debug mode.
// JS: dxfSetDebug(enabled: boolean) -> void
func dxfSetDebug(this js.Value, args []js.Value) interface{} {
	if len(args) >= 1 {
		debugMode = args[0].Bool()
		if debugMode {
			logDebug("Debug mode enabled")
		}
	}
	return nil
}

func logDebug(format string, args ...interface{}) {
	if debugMode {
		console := js.Global().Get("console")
		if len(args) == 0 {
			console.Call("log", "[DXF-WASM] "+format)
		} else {
			console.Call("log", "[DXF-WASM] "+format, args)
		}
	}
}

// dxfParse parses DXF text and returns a handle plus a JSON summary. The
// optional second argument is a progress callback receiving percentages.
// JS: dxfParse(text: string, onProgress?: (pct: number) => boolean)
//
//	-> { ok: boolean, handle?: number, data?: string, error?: string }
func dxfParse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("dxfParse requires 1 argument: string")
	}

	logDebug("Starting parse operation")
	text := args[0].String()

	var progress dxf.ProgressFunc
	if len(args) >= 2 && args[1].Type() == js.TypeFunction {
		cb := args[1]
		progress = func(percent int) bool {
			r := cb.Invoke(percent)
			return r.Type() != js.TypeBoolean || r.Bool()
		}
	}

	d, err := dxf.Parse(context.Background(), text, progress)
	if err != nil {
		logDebug("Parse error: %v", err.Error())
		return makeError("parse error: " + err.Error())
	}

	logDebug("Parsed drawing with %d entities", len(d.Entities))

	handle := nextHandle
	nextHandle++
	drawings[handle] = d

	jsonData, err := json.Marshal(summarize(d))
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}

	result := makeResult(string(jsonData))
	result["handle"] = handle
	return result
}

// dxfFree releases a drawing handle returned by dxfParse.
// JS: dxfFree(handle: number) -> void
func dxfFree(this js.Value, args []js.Value) interface{} {
	if len(args) >= 1 {
		delete(drawings, args[0].Int())
	}
	return nil
}

// dxfExtents computes the bounding box of a parsed drawing.
// JS: dxfExtents(handle: number) -> { ok, data?: string, error?: string }
func dxfExtents(this js.Value, args []js.Value) interface{} {
	d, errResult := drawingArg(args, "dxfExtents")
	if errResult != nil {
		return errResult
	}
	ext := dxf.Extents(d.Entities, d.Blocks)
	jsonData, err := json.Marshal(ext)
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}
	return makeResult(string(jsonData))
}

// dxfHitPoint finds the topmost entity within tolerance of a world point.
// JS: dxfHitPoint(handle, x, y, tolerance) -> { ok, data?: string }
// data is the entity id as a decimal string, or "" for no hit.
func dxfHitPoint(this js.Value, args []js.Value) interface{} {
	d, errResult := drawingArg(args, "dxfHitPoint")
	if errResult != nil {
		return errResult
	}
	if len(args) < 4 {
		return makeError("dxfHitPoint requires 4 arguments: handle, x, y, tolerance")
	}
	id, ok := dxf.HitPoint(args[1].Float(), args[2].Float(), args[3].Float(), d)
	if !ok {
		return makeResult("")
	}
	jsonData, err := json.Marshal(id)
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}
	return makeResult(string(jsonData))
}

// dxfHitBox selects every entity overlapping a world-coordinate rectangle.
// JS: dxfHitBox(handle, minX, minY, maxX, maxY) -> { ok, data?: string }
// data is a JSON array of entity ids.
func dxfHitBox(this js.Value, args []js.Value) interface{} {
	d, errResult := drawingArg(args, "dxfHitBox")
	if errResult != nil {
		return errResult
	}
	if len(args) < 5 {
		return makeError("dxfHitBox requires 5 arguments: handle, minX, minY, maxX, maxY")
	}
	rect := dxf.Rect{
		Min: dxf.Point{X: args[1].Float(), Y: args[2].Float()},
		Max: dxf.Point{X: args[3].Float(), Y: args[4].Float()},
	}
	hits := dxf.HitBox(rect, d)
	ids := make([]dxf.EntityID, 0, len(hits))
	for id := range hits {
		ids = append(ids, id)
	}
	jsonData, err := json.Marshal(ids)
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}
	return makeResult(string(jsonData))
}

// dxfEvalSpline samples a B-spline into a polyline.
// JS: dxfEvalSpline(controlPointsJSON, degree, knotsJSON, weightsJSON, segments)
//
//	-> { ok, data?: string } where data is a JSON array of {X,Y}
func dxfEvalSpline(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("dxfEvalSpline requires at least 2 arguments: controlPointsJSON, degree")
	}

	var controlPoints []dxf.Point
	if err := json.Unmarshal([]byte(args[0].String()), &controlPoints); err != nil {
		return makeError("bad control points: " + err.Error())
	}
	degree := args[1].Int()

	var knots, weights []float64
	if len(args) >= 3 && args[2].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[2].String()), &knots); err != nil {
			return makeError("bad knots: " + err.Error())
		}
	}
	if len(args) >= 4 && args[3].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[3].String()), &weights); err != nil {
			return makeError("bad weights: " + err.Error())
		}
	}
	segments := 0
	if len(args) >= 5 {
		segments = args[4].Int()
	}

	points := dxf.EvalSpline(controlPoints, degree, knots, weights, segments)
	jsonData, err := json.Marshal(points)
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}
	return makeResult(string(jsonData))
}

// summary is the lightweight description of a parsed drawing returned to
// JS; full geometry stays on the Go side behind the handle.
type summary struct {
	Entities  int        `json:"entities"`
	Layers    int        `json:"layers"`
	Blocks    int        `json:"blocks"`
	Styles    int        `json:"styles"`
	LineTypes int        `json:"lineTypes"`
	Offset    *dxf.Point `json:"offset,omitempty"`
}

func summarize(d *dxf.Drawing) summary {
	return summary{
		Entities:  len(d.Entities),
		Layers:    len(d.Layers),
		Blocks:    len(d.Blocks),
		Styles:    len(d.Styles),
		LineTypes: len(d.LineTypes),
		Offset:    d.Offset,
	}
}

func drawingArg(args []js.Value, fn string) (*dxf.Drawing, map[string]interface{}) {
	if len(args) < 1 {
		return nil, makeError(fn + " requires a drawing handle")
	}
	d, ok := drawings[args[0].Int()]
	if !ok {
		return nil, makeError(fn + ": unknown drawing handle")
	}
	return d, nil
}

// makeResult creates a successful result object.
func makeResult(data string) map[string]interface{} {
	return map[string]interface{}{
		"ok":   true,
		"data": data,
	}
}

// makeError creates an error result object.
func makeError(message string) map[string]interface{} {
	logDebug("Error: %s", message)
	return map[string]interface{}{
		"ok":    false,
		"error": message,
	}
}

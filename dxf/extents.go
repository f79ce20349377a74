package dxf

const maxInsertRecursionDepth = 20

// extentAccumulator tracks the running (minX,minY,maxX,maxY) across a
// recursive walk.
type extentAccumulator struct {
	set        bool
	minX, minY float64
	maxX, maxY float64
}

func (a *extentAccumulator) add(p Point) {
	if !a.set {
		a.minX, a.maxX = p.X, p.X
		a.minY, a.maxY = p.Y, p.Y
		a.set = true
		return
	}
	if p.X < a.minX {
		a.minX = p.X
	}
	if p.X > a.maxX {
		a.maxX = p.X
	}
	if p.Y < a.minY {
		a.minY = p.Y
	}
	if p.Y > a.maxY {
		a.maxY = p.Y
	}
}

func (a *extentAccumulator) addCircle(center Point, radius float64) {
	a.add(Point{X: center.X - radius, Y: center.Y - radius})
	a.add(Point{X: center.X + radius, Y: center.Y + radius})
}

// Extents computes the axis-aligned bounding box over entities, recursing
// into INSERT block instances via blocks. Hidden entities
// (Visible=false) are skipped. Returns the zero-width/height box centered
// at the origin when nothing contributes.
func Extents(entities []Entity, blocks map[string]*Block) Extent {
	acc := &extentAccumulator{}
	walkExtents(entities, blocks, Identity2D, 0, acc)
	if !acc.set {
		return Extent{Center: Point{}}
	}
	return Extent{
		Min:    Point{X: acc.minX, Y: acc.minY},
		Max:    Point{X: acc.maxX, Y: acc.maxY},
		Center: Point{X: (acc.minX + acc.maxX) / 2, Y: (acc.minY + acc.maxY) / 2},
		Width:  acc.maxX - acc.minX,
		Height: acc.maxY - acc.minY,
	}
}

func walkExtents(entities []Entity, blocks map[string]*Block, xform Matrix2D, depth int, acc *extentAccumulator) {
	if depth > maxInsertRecursionDepth {
		return
	}
	for _, e := range entities {
		if !e.Base().Visible {
			continue
		}
		switch v := e.(type) {
		case *Line:
			acc.add(xform.Apply(v.Start))
			acc.add(xform.Apply(v.End))
		case *Circle:
			addTransformedCircle(acc, xform, v.Center, v.Radius)
		case *Arc:
			addTransformedCircle(acc, xform, v.Center, v.Radius)
		case *Polyline:
			for _, vert := range v.Vertices {
				acc.add(xform.Apply(vert.Point))
			}
		case *Spline:
			for _, cp := range v.ControlPoints {
				acc.add(xform.Apply(cp))
			}
		case *Ellipse:
			r := hypot(v.MajorAxis.X, v.MajorAxis.Y)
			addTransformedCircle(acc, xform, v.Center, r)
		case *Solid:
			for i := 0; i < v.NumPoints; i++ {
				acc.add(xform.Apply(v.Points[i]))
			}
		case *Text:
			acc.add(xform.Apply(v.Position))
		case *DxfPoint:
			acc.add(xform.Apply(v.Position))
		case *Hatch:
			for _, loop := range v.Loops {
				for _, vert := range loop.Vertices {
					acc.add(xform.Apply(vert.Point))
				}
				for _, edge := range loop.Edges {
					acc.add(xform.Apply(edge.Start))
					acc.add(xform.Apply(edge.End))
				}
			}
		case *Leader:
			for _, p := range v.Vertices {
				acc.add(xform.Apply(p))
			}
		case *Insert:
			blk, ok := blocks[v.BlockName]
			if !ok {
				continue
			}
			childXform := xform.Mul(InsertTransform(v.Position, v.Rotation, v.ScaleX, v.ScaleY, blk.Base))
			walkExtents(blk.Entities, blocks, childXform, depth+1, acc)
		default:
			// RAY/XLINE/Dimension: no contribution.
		}
	}
}

func addTransformedCircle(acc *extentAccumulator, xform Matrix2D, center Point, radius float64) {
	scale := xform.Scale()
	c := xform.Apply(center)
	acc.addCircle(c, radius*scale)
}

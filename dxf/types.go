package dxf

import "math"

// Point is a two-dimensional World Coordinate System location in double
// precision. A third dimension appears only transiently during parsing
// (see Vec3) and is collapsed via the OCS projection in transform.go.
type Point struct {
	X, Y float64
}

// Vec3 is a three-dimensional vector, used for extrusion directions and the
// transient z component of points read from the file before OCS projection.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle in world coordinates, used as the
// input to HitBox.
type Rect struct {
	Min, Max Point
}

// Extent is the axis-aligned bounding box of a set of entities, as
// returned by Extents.
type Extent struct {
	Min, Max, Center Point
	Width, Height    float64
}

// Matrix2D is a 2x3 affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// Passed explicitly down the extent/hit-test recursion rather than held as
// mutable ambient state.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity2D is the identity transform.
var Identity2D = Matrix2D{A: 1, D: 1}

// Apply transforms a point by m.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVector transforms a direction (ignores translation).
func (m Matrix2D) ApplyVector(p Point) Point {
	return Point{X: m.A*p.X + m.C*p.Y, Y: m.B*p.X + m.D*p.Y}
}

// Mul returns m composed with n as m∘n, i.e. applying the result to a
// point p gives the same result as m.Apply(n.Apply(p)).
func (m Matrix2D) Mul(n Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Scale approximates the uniform scale factor carried by m, used for
// radius/tolerance scaling during recursive hit-testing.
func (m Matrix2D) Scale() float64 {
	sx := hypot(m.A, m.B)
	sy := hypot(m.C, m.D)
	return (sx + sy) / 2
}

func hypot(a, b float64) float64 {
	return math.Sqrt(a*a + b*b)
}

// EntityID uniquely identifies an entity within a single Drawing. IDs are assigned sequentially in file order during parsing.
type EntityID int64

// EntityCommon holds the attributes every DXF entity carries.
type EntityCommon struct {
	ID         EntityID
	Handle     string
	Layer      string
	Color      int // 0 = ByBlock, 256 = ByLayer, 1-255 = ACI
	LineType   string
	Visible    bool
	PaperSpace bool
	Extrusion  Vec3
}

// Entity is implemented by every drawing entity variant.
type Entity interface {
	Base() *EntityCommon
	Kind() string
}

func defaultCommon(id EntityID) EntityCommon {
	return EntityCommon{
		ID:        id,
		Layer:     "0",
		LineType:  "BYLAYER",
		Visible:   true,
		Extrusion: Vec3{Z: 1},
	}
}

// Line is a straight segment; Start/End are already projected to WCS.
type Line struct {
	EntityCommon
	Start, End Point
}

func (e *Line) Base() *EntityCommon { return &e.EntityCommon }
func (e *Line) Kind() string        { return "LINE" }

// Circle is a full circle in WCS (post-OCS-projection).
type Circle struct {
	EntityCommon
	Center Point
	Radius float64
}

func (e *Circle) Base() *EntityCommon { return &e.EntityCommon }
func (e *Circle) Kind() string        { return "CIRCLE" }

// Arc is a circular arc, angles in degrees, CCW from +X in OCS.
type Arc struct {
	EntityCommon
	Center               Point
	Radius               float64
	StartAngle, EndAngle float64
}

func (e *Arc) Base() *EntityCommon { return &e.EntityCommon }
func (e *Arc) Kind() string        { return "ARC" }

// Vertex is one point of a Polyline, with its outgoing-segment bulge.
type Vertex struct {
	Point
	Bulge float64
}

// Polyline covers both LWPOLYLINE and POLYLINE (Light distinguishes which
// one the file used; the in-memory shape is identical).
type Polyline struct {
	EntityCommon
	Vertices  []Vertex
	Closed    bool
	Elevation float64
	Light     bool // true for LWPOLYLINE, false for POLYLINE
}

func (e *Polyline) Base() *EntityCommon { return &e.EntityCommon }
func (e *Polyline) Kind() string {
	if e.Light {
		return "LWPOLYLINE"
	}
	return "POLYLINE"
}

// Spline is a NURBS curve: control points, optional fit points, degree,
// knot vector, and weight vector.
type Spline struct {
	EntityCommon
	ControlPoints []Point
	FitPoints     []Point
	Degree        int
	Knots         []float64
	Weights       []float64
	Closed        bool
	Periodic      bool
	Rational      bool
}

func (e *Spline) Base() *EntityCommon { return &e.EntityCommon }
func (e *Spline) Kind() string        { return "SPLINE" }

// Ellipse is a (possibly partial) ellipse defined by center, major-axis
// endpoint vector, minor/major ratio, and start/end parameters in radians.
type Ellipse struct {
	EntityCommon
	Center               Point
	MajorAxis            Point // vector from center
	MinorRatio           float64
	StartParam, EndParam float64
}

func (e *Ellipse) Base() *EntityCommon { return &e.EntityCommon }
func (e *Ellipse) Kind() string        { return "ELLIPSE" }

// TextKind distinguishes the four text-family entity types, which share a
// single struct shape.
type TextKind int

const (
	KindText TextKind = iota
	KindMText
	KindAttrib
	KindAttdef
)

func (k TextKind) String() string {
	switch k {
	case KindMText:
		return "MTEXT"
	case KindAttrib:
		return "ATTRIB"
	case KindAttdef:
		return "ATTDEF"
	default:
		return "TEXT"
	}
}

// Text covers TEXT, MTEXT, ATTRIB, and ATTDEF.
type Text struct {
	EntityCommon
	SubKind         TextKind
	Position        Point
	SecondPosition  Point
	HasSecond       bool
	Height          float64
	Value           string
	Rotation        float64
	WidthFactor     float64
	HAlign          int
	VAlign          int
	AttachmentPoint int
	WrapWidth       float64
	Style           string
	Tag             string // ATTRIB/ATTDEF tag name (group 2)
}

func (e *Text) Base() *EntityCommon { return &e.EntityCommon }
func (e *Text) Kind() string        { return e.SubKind.String() }

// Insert is a block reference (instance).
type Insert struct {
	EntityCommon
	BlockName              string
	Position               Point
	ScaleX, ScaleY, ScaleZ float64
	Rotation               float64
	RowCount, ColCount     int
	RowSpacing, ColSpacing float64
	Attribs                []*Text
}

func (e *Insert) Base() *EntityCommon { return &e.EntityCommon }
func (e *Insert) Kind() string        { return "INSERT" }

// Solid covers SOLID, TRACE, and 3DFACE (the edge-visibility mask is only
// meaningful for 3DFACE).
type Solid struct {
	EntityCommon
	Points      [4]Point
	NumPoints   int // 3 or 4
	Is3DFace    bool
	EdgeVisible [4]bool
}

func (e *Solid) Base() *EntityCommon { return &e.EntityCommon }
func (e *Solid) Kind() string {
	if e.Is3DFace {
		return "3DFACE"
	}
	return "SOLID"
}

// HatchEdgeKind is the kind of a HATCH boundary edge in an edge-list loop.
type HatchEdgeKind int

const (
	HatchEdgeLine HatchEdgeKind = iota + 1
	HatchEdgeArc
	HatchEdgeEllipse
	HatchEdgeSpline
)

// HatchEdge is one edge of a non-polyline HATCH boundary loop, materialized
// to explicit start/end points for arcs and ellipses.
type HatchEdge struct {
	Kind       HatchEdgeKind
	Start, End Point
	Center     Point
	Radius     float64
	StartAngle, EndAngle float64
}

// HatchLoop is one boundary loop of a HATCH: either a bulged polyline or an
// ordered list of edges.
type HatchLoop struct {
	IsPolyline bool
	Vertices   []Vertex
	Edges      []HatchEdge
}

// Hatch is a filled or patterned region bounded by one or more loops.
type Hatch struct {
	EntityCommon
	PatternName string
	Solid       bool
	Loops       []HatchLoop
	Scale       float64
	Angle       float64
	Elevation   float64
}

func (e *Hatch) Base() *EntityCommon { return &e.EntityCommon }
func (e *Hatch) Kind() string        { return "HATCH" }

// Dimension references the pre-baked anonymous block that renders it; the
// core does not evaluate dimension content itself.
type Dimension struct {
	EntityCommon
	BlockName    string
	DefPoint     Point
	TextMidPoint Point
	DimType      int
	Measurement  float64
	OverrideText string
	Style        string
}

func (e *Dimension) Base() *EntityCommon { return &e.EntityCommon }
func (e *Dimension) Kind() string        { return "DIMENSION" }

// Leader is an ordered polyline with an optional arrowhead.
type Leader struct {
	EntityCommon
	Vertices    []Point
	HasArrow    bool
	PathType    int
	HasHookline bool
}

func (e *Leader) Base() *EntityCommon { return &e.EntityCommon }
func (e *Leader) Kind() string        { return "LEADER" }

// RayLine covers RAY (one direction) and XLINE (both directions), both
// tested in hit-testing as an infinite line through Point along Direction.
type RayLine struct {
	EntityCommon
	Point     Point
	Direction Point
	Unbounded bool // true for XLINE (both directions), false for RAY
}

func (e *RayLine) Base() *EntityCommon { return &e.EntityCommon }
func (e *RayLine) Kind() string {
	if e.Unbounded {
		return "XLINE"
	}
	return "RAY"
}

// DxfPoint is a single POINT entity (named to avoid colliding with the
// Point coordinate type).
type DxfPoint struct {
	EntityCommon
	Position Point
}

func (e *DxfPoint) Base() *EntityCommon { return &e.EntityCommon }
func (e *DxfPoint) Kind() string        { return "POINT" }

// Layer is a named drawing layer. A negative color group code
// stores its absolute value here with Visible=false.
type Layer struct {
	Name     string
	Color    int
	LineType string
	Visible  bool
	Frozen   bool
}

// Block is a named, reusable container of entities.
type Block struct {
	Name     string
	Base     Point
	Entities []Entity
}

// TextStyle is a named text style.
type TextStyle struct {
	Name        string
	FontFile    string
	BigFontFile string
	Height      float64
	WidthFactor float64
}

// LineType is a named dash/gap pattern. Positive elements are dashes,
// negative are gaps; TotalLength is the sum of their absolute values.
type LineType struct {
	Name        string
	Pattern     []float64
	TotalLength float64
}

// Header carries the handful of HEADER variables the renderer needs.
type Header struct {
	ExtMin, ExtMax Point
	InsUnits       int
	LTScale        float64
}

// Drawing is the immutable result of a successful Parse. Multiple readers
// (extents, hit-test, rendering) may operate on it concurrently without
// coordination.
type Drawing struct {
	Header    Header
	Layers    map[string]*Layer
	Blocks    map[string]*Block
	Styles    map[string]*TextStyle
	LineTypes map[string]*LineType
	Entities  []Entity
	Offset    *Point
}

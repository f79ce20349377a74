package dxf

import "math"

const ocsEpsilon = 1.0 / 64.0

// ocsBasis holds the Arbitrary Axis Algorithm basis vectors for an
// extrusion direction.
type ocsBasis struct {
	Ax, Ay, Az Vec3
}

// worldZAxis is the extrusion that yields the identity OCS basis.
var worldZAxis = Vec3{Z: 1}

func normalizeVec3(v Vec3) Vec3 {
	n := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if n == 0 {
		return worldZAxis
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func isWorldZ(n Vec3) bool {
	const eps = 1e-9
	return math.Abs(n.X) < eps && math.Abs(n.Y) < eps && n.Z > 0
}

// computeOCSBasis implements the Arbitrary Axis Algorithm. N need
// not be normalized.
func computeOCSBasis(n Vec3) ocsBasis {
	if isWorldZ(n) {
		return ocsBasis{Ax: Vec3{X: 1}, Ay: Vec3{Y: 1}, Az: Vec3{Z: 1}}
	}
	nz := normalizeVec3(n)

	var ax Vec3
	if math.Abs(nz.X) < ocsEpsilon && math.Abs(nz.Y) < ocsEpsilon {
		// World-Y cross Nz, per the near-vertical special case.
		ax = normalizeVec3(cross(Vec3{Y: 1}, nz))
	} else {
		ax = normalizeVec3(Vec3{X: -nz.Y, Y: nz.X, Z: 0})
	}
	ay := normalizeVec3(cross(nz, ax))
	return ocsBasis{Ax: ax, Ay: ay, Az: nz}
}

// ocsToWCSPoint maps a point (x,y) at elevation z in OCS to WCS.
func ocsToWCSPoint(basis ocsBasis, x, y, z float64) Point {
	return Point{
		X: x*basis.Ax.X + y*basis.Ay.X + z*basis.Az.X,
		Y: x*basis.Ax.Y + y*basis.Ay.Y + z*basis.Az.Y,
	}
}

// ocsToWCSPoint3 is like ocsToWCSPoint but returns the full 3D result,
// used internally by the round-trip test in transform_test.go.
func ocsToWCSPoint3(basis ocsBasis, x, y, z float64) Vec3 {
	return Vec3{
		X: x*basis.Ax.X + y*basis.Ay.X + z*basis.Az.X,
		Y: x*basis.Ax.Y + y*basis.Ay.Y + z*basis.Az.Y,
		Z: x*basis.Ax.Z + y*basis.Ay.Z + z*basis.Az.Z,
	}
}

// ocsToWCSAngle maps an OCS angle (degrees) to a WCS angle (degrees) by
// transforming the unit vector (cos theta, sin theta) through the basis
// and taking atan2 of the result.
func ocsToWCSAngle(basis ocsBasis, thetaDeg float64) float64 {
	theta := thetaDeg * math.Pi / 180
	p := ocsToWCSPoint(basis, math.Cos(theta), math.Sin(theta), 0)
	return math.Atan2(p.Y, p.X) * 180 / math.Pi
}

// projectOCS projects a point stored in an entity's OCS (at the entity's
// elevation z, possibly per-point) to WCS, given the entity's extrusion.
func projectOCS(extrusion Vec3, x, y, z float64) Point {
	basis := computeOCSBasis(extrusion)
	return ocsToWCSPoint(basis, x, y, z)
}

// Translate2D, Rotate2D, and Scale2D build the elementary matrices used to
// compose an INSERT's transform: translate(position) · rotate(rot) ·
// scale(sx,sy) · translate(-basePoint).
func Translate2D(dx, dy float64) Matrix2D {
	return Matrix2D{A: 1, D: 1, E: dx, F: dy}
}

func Rotate2D(degrees float64) Matrix2D {
	r := degrees * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return Matrix2D{A: c, B: s, C: -s, D: c}
}

func Scale2D(sx, sy float64) Matrix2D {
	return Matrix2D{A: sx, D: sy}
}

// InsertTransform builds the composed transform for one INSERT instance:
// translate(position) · rotate(rotationDeg) · scale(sx,sy) · translate(-basePoint).
func InsertTransform(position Point, rotationDeg, sx, sy float64, basePoint Point) Matrix2D {
	t := Translate2D(position.X, position.Y)
	r := Rotate2D(rotationDeg)
	s := Scale2D(sx, sy)
	b := Translate2D(-basePoint.X, -basePoint.Y)
	return t.Mul(r).Mul(s).Mul(b)
}

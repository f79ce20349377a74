package dxf

import (
	"math"
	"testing"
)

func TestOCSIdentity(t *testing.T) {
	basis := computeOCSBasis(Vec3{Z: 1})
	p := ocsToWCSPoint(basis, 3, 4, 0)

	if p.X != 3 || p.Y != 4 {
		t.Errorf("Expected (3, 4), got (%f, %f)", p.X, p.Y)
	}
}

func TestOCSNegativeZFlipsX(t *testing.T) {
	basis := computeOCSBasis(Vec3{Z: -1})
	p := ocsToWCSPoint(basis, 5, 0, 0)

	epsilon := 1e-9
	if math.Abs(p.X+5) > epsilon || math.Abs(p.Y) > epsilon {
		t.Errorf("Expected (-5, 0), got (%f, %f)", p.X, p.Y)
	}
}

func TestOCSBasisIsOrthonormal(t *testing.T) {
	normals := []Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: 0},
		{X: 0.005, Y: 0.003, Z: 0.99},
		{X: 0.3, Y: -0.4, Z: 0.866},
		{X: -1, Y: 1, Z: 1},
	}
	dot := func(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

	for _, n := range normals {
		basis := computeOCSBasis(n)
		epsilon := 1e-12
		if math.Abs(dot(basis.Ax, basis.Ax)-1) > epsilon ||
			math.Abs(dot(basis.Ay, basis.Ay)-1) > epsilon ||
			math.Abs(dot(basis.Az, basis.Az)-1) > epsilon {
			t.Errorf("Basis for %v is not normalized", n)
		}
		if math.Abs(dot(basis.Ax, basis.Ay)) > epsilon ||
			math.Abs(dot(basis.Ay, basis.Az)) > epsilon ||
			math.Abs(dot(basis.Az, basis.Ax)) > epsilon {
			t.Errorf("Basis for %v is not orthogonal", n)
		}
	}
}

// Mapping a point through the OCS basis and back via the transpose must be
// the identity within 1e-9.
func TestOCSRoundTrip(t *testing.T) {
	normals := []Vec3{
		{X: 0.005, Y: 0.003, Z: 0.99},
		{X: 0.3, Y: -0.4, Z: 0.866},
		{X: 0.001, Y: 0.001, Z: 1},
		{X: 0.5, Y: 0.5, Z: 0.707},
	}
	points := [][3]float64{
		{0, 0, 0},
		{1, 2, 3},
		{-10, 5, 0.5},
		{100000, -200000, 42},
	}

	for _, n := range normals {
		basis := computeOCSBasis(n)
		for _, pt := range points {
			w := ocsToWCSPoint3(basis, pt[0], pt[1], pt[2])
			// inverse of an orthonormal basis is its transpose
			x := w.X*basis.Ax.X + w.Y*basis.Ax.Y + w.Z*basis.Ax.Z
			y := w.X*basis.Ay.X + w.Y*basis.Ay.Y + w.Z*basis.Ay.Z
			z := w.X*basis.Az.X + w.Y*basis.Az.Y + w.Z*basis.Az.Z

			epsilon := 1e-9 * math.Max(1, math.Abs(pt[0])+math.Abs(pt[1])+math.Abs(pt[2]))
			if math.Abs(x-pt[0]) > epsilon || math.Abs(y-pt[1]) > epsilon || math.Abs(z-pt[2]) > epsilon {
				t.Errorf("Round trip for N=%v point %v gave (%g, %g, %g)", n, pt, x, y, z)
			}
		}
	}
}

func TestOCSAngle(t *testing.T) {
	identity := computeOCSBasis(Vec3{Z: 1})
	if got := ocsToWCSAngle(identity, 30); math.Abs(got-30) > 1e-9 {
		t.Errorf("Expected angle 30, got %f", got)
	}

	flipped := computeOCSBasis(Vec3{Z: -1})
	got := ocsToWCSAngle(flipped, 0)
	if math.Abs(math.Abs(got)-180) > 1e-9 {
		t.Errorf("Expected angle +-180, got %f", got)
	}
}

func TestInsertTransform(t *testing.T) {
	// translate(10,10) . rotate(90) . scale(2,2) on a block with base (0,0)
	m := InsertTransform(Point{X: 10, Y: 10}, 90, 2, 2, Point{})
	p := m.Apply(Point{X: 1, Y: 0})

	epsilon := 1e-9
	if math.Abs(p.X-10) > epsilon || math.Abs(p.Y-12) > epsilon {
		t.Errorf("Expected (10, 12), got (%f, %f)", p.X, p.Y)
	}
}

func TestInsertTransformBasePoint(t *testing.T) {
	m := InsertTransform(Point{X: 5, Y: 5}, 0, 1, 1, Point{X: 2, Y: 2})
	p := m.Apply(Point{X: 2, Y: 2})

	if p.X != 5 || p.Y != 5 {
		t.Errorf("Expected base point to land on (5, 5), got (%f, %f)", p.X, p.Y)
	}
}

func TestMatrixCompose(t *testing.T) {
	a := Translate2D(1, 2)
	b := Scale2D(3, 3)
	p := a.Mul(b).Apply(Point{X: 1, Y: 1})

	if p.X != 4 || p.Y != 5 {
		t.Errorf("Expected (4, 5), got (%f, %f)", p.X, p.Y)
	}
}

package anakin

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
)

func TestRigidBodyShapeInertias(t *testing.T) {
	box := NewBoxBody(Num(12), Num(1), Num(2), Num(3))
	got, ok := box.IG().Float64s()
	if !ok {
		t.Fatal("numeric box inertia stayed symbolic")
	}
	want := []float64{13, 0, 0, 0, 10, 0, 0, 0, 5}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Fatalf("box inertia: %v", got)
	}
	sphere := NewSphereBody(Num(1), Num(1))
	got, _ = sphere.IG().Float64s()
	want = []float64{0.4, 0, 0, 0, 0.4, 0, 0, 0, 0.4}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Fatalf("sphere inertia: %v", got)
	}
	cyl := NewCylinderBody(Num(2), Num(1), Num(3))
	got, _ = cyl.IG().Float64s()
	want = []float64{2, 0, 0, 0, 2, 0, 0, 0, 1}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Fatalf("cylinder inertia: %v", got)
	}
}

func TestRigidBodyParallelAxis(t *testing.T) {
	sphere := NewSphereBody(Num(1), Num(1))
	body, err := NewRigidBody(sphere, NewVector64(0, 0, 2, nil))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := body.I(nil).Float64s()
	if !ok {
		t.Fatal("shifted inertia stayed symbolic")
	}
	want := []float64{4.4, 0, 0, 0, 4.4, 0, 0, 0, 0.4}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Fatalf("inertia about the origin: %v", got)
	}
	// About the center of mass the shift vanishes.
	center := NewPoint(NewVector64(0, 0, 2, nil), nil)
	got, _ = body.I(center).Float64s()
	ig, _ := sphere.IG().Float64s()
	if !floats.EqualApprox(got, ig, 1e-12) {
		t.Fatalf("inertia about the center: %v", got)
	}
}

func TestRigidBodyMomentumEnergy(t *testing.T) {
	m, x := Var("m"), TimeVar("x")
	body, err := NewRigidBody(m, NewVector(x, Num(0), Num(0), nil))
	if err != nil {
		t.Fatal(err)
	}
	xd := x.Dt()
	p := body.P(nil).Components(nil)
	if !ExprEqual(p[0], MulOf(m, xd)) {
		t.Fatalf("momentum: %s", p[0])
	}
	want := MulOf(Num(0.5), m, PowOf(xd, Num(2)))
	if got := body.T(nil); !ExprEqual(got, want) {
		t.Fatalf("kinetic energy: %s, want %s", got, want)
	}
}

func TestRigidBodySpin(t *testing.T) {
	θ := TimeVar("θ")
	A, C := Var("A"), Var("C")
	body, err := NewRigidBody(Var("m"), Diag33(A, A, C), Canonical().RotateZ(θ))
	if err != nil {
		t.Fatal(err)
	}
	θd := θ.Dt()
	h := body.H(nil, nil).Components(nil)
	if v, ok := h[0].Eval(); !ok || v != 0 {
		t.Fatalf("H_x = %s", h[0])
	}
	if !ExprEqual(h[2], MulOf(C, θd)) {
		t.Fatalf("H_z = %s", h[2])
	}
	want := MulOf(Num(0.5), C, PowOf(θd, Num(2)))
	if got := body.T(nil); !ExprEqual(got, want) {
		t.Fatalf("rotational energy: %s, want %s", got, want)
	}
}

func TestRigidBodyFreeFall(t *testing.T) {
	m, g, z := Var("m"), Var("g"), TimeVar("z")
	body, err := NewRigidBody(m, NewVector(Num(0), Num(0), z, nil))
	if err != nil {
		t.Fatal(err)
	}
	weight := NewVector(Num(0), Num(0), MulOf(Num(-1), m, g), nil)
	eq := body.ForceEquation(weight, Canonical().K(), nil)
	want := AddOf(MulOf(m, TimeVar("zdd")), MulOf(m, g))
	if !ExprEqual(eq, want) {
		t.Fatalf("vertical equation: %s, want %s", eq, want)
	}
	// The motion z = -g·t²/2 has zdd = -g, which satisfies the equation.
	if v, ok := eq.Subs(map[string]Expr{"zdd": MulOf(Num(-1), g)}).Eval(); !ok || v != 0 {
		t.Fatalf("solution did not satisfy the equation: %s", eq.Subs(map[string]Expr{"zdd": MulOf(Num(-1), g)}))
	}
}

func TestRigidBodyEquationsTorqueFree(t *testing.T) {
	θ := TimeVar("θ")
	C := Var("C")
	body, err := NewRigidBody(Var("m"), Diag33(C, C, C), Canonical().RotateZ(θ))
	if err != nil {
		t.Fatal(err)
	}
	zero := NewVector64(0, 0, 0, nil)
	eqs, err := body.Equations(zero, nil, zero, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if v, ok := eqs[i].Eval(); !ok || v != 0 {
			t.Fatalf("equation %d = %s", i, eqs[i])
		}
	}
	if !ExprEqual(eqs[5], MulOf(C, TimeVar("θdd"))) {
		t.Fatalf("spin equation: %s", eqs[5])
	}
}

func TestRigidBodyEquationsNumericState(t *testing.T) {
	body := NewSphereBody(Num(1), Num(1))
	zero := NewVector64(0, 0, 0, nil)
	if _, err := body.Equations(zero, nil, zero, nil); !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected unsupported operation for a numeric body, got %v", err)
	}
}

func TestRigidBodyReferenceFrame(t *testing.T) {
	ref := NewFrame(NewVector64(1, 0, 0, nil), nil, nil)
	body, err := NewRigidBody(5.0, []float64{1, 0, 0}, ref)
	if err != nil {
		t.Fatal(err)
	}
	pos, _ := body.Position().Float64s()
	if !floats.EqualApprox(pos[:], []float64{2, 0, 0}, 1e-14) {
		t.Fatalf("composed position: %v", pos)
	}
	if mv, _ := body.Mass().Eval(); mv != 5 {
		t.Fatalf("mass: %v", mv)
	}
}

func TestRigidBodyOverrides(t *testing.T) {
	box := NewBoxBody(Num(12), Num(1), Num(2), Num(3))
	body, err := NewRigidBody(box, 3.0)
	if err != nil {
		t.Fatal(err)
	}
	if mv, _ := body.Mass().Eval(); mv != 3 {
		t.Fatalf("overridden mass: %v", mv)
	}
	ig, _ := body.IG().Float64s()
	want, _ := box.IG().Float64s()
	if !floats.EqualApprox(ig, want, 1e-12) {
		t.Fatalf("inertia lost in override: %v", ig)
	}
}

func TestRigidBodyInvalidParts(t *testing.T) {
	if _, err := NewRigidBody("box"); !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("string part: %v", err)
	}
	if _, err := NewRigidBody([]float64{1, 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("short position: %v", err)
	}
}

func TestRigidBodySubs(t *testing.T) {
	m, l := Var("m"), Var("l")
	box := NewBoxBody(m, l, l, l)
	numeric := box.Subs(map[string]Expr{"m": Num(12), "l": Num(1)})
	ig, ok := numeric.IG().Float64s()
	if !ok {
		t.Fatal("substituted inertia stayed symbolic")
	}
	want := []float64{2, 0, 0, 0, 2, 0, 0, 0, 2}
	if !floats.EqualApprox(ig, want, 1e-12) {
		t.Fatalf("cube inertia: %v", ig)
	}
}

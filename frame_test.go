package anakin

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestPointDisplacement(t *testing.T) {
	p := NewPoint(NewVector64(1, 0, 0, nil), nil)
	q := NewPoint(NewVector64(0, 2, 0, nil), nil)
	d, _ := p.Displacement(q).Float64s()
	if !floats.EqualApprox(d[:], []float64{-1, 2, 0}, 1e-14) {
		t.Fatalf("displacement: %v", d)
	}
}

func TestParticleDynamics(t *testing.T) {
	x := TimeVar("x")
	par := NewParticle(Var("m"), NewPoint(NewVector(x, Num(0), Num(0), nil), nil))
	xd := x.Dt()
	p := par.P(nil).Components(nil)
	if !ExprEqual(p[0], MulOf(Var("m"), xd)) {
		t.Fatalf("momentum: %s", p[0])
	}
	want := MulOf(Num(0.5), Var("m"), PowOf(xd, Num(2)))
	if got := par.T(nil); !ExprEqual(got, want) {
		t.Fatalf("kinetic energy: %s", got)
	}
}

func TestFrameComposition(t *testing.T) {
	// A frame shifted along x and rotated by π/2 about z maps local y onto
	// canonical -x.
	ref := NewFrame(NewVector64(1, 0, 0, nil), Canonical().RotateZ(Num(math.Pi/2)), nil)
	f := NewFrame(NewVector64(0, 1, 0, nil), nil, ref)
	pos, _ := f.Position().Float64s()
	if !floats.EqualApprox(pos[:], []float64{0, 0, 0}, 1e-12) {
		t.Fatalf("composed position: %v", pos)
	}
	if !f.Basis().Equals(ref.Basis()) {
		t.Fatal("composing with the canonical basis changed the orientation")
	}
}

func TestFrameOmega(t *testing.T) {
	θ := TimeVar("θ")
	f := NewFrame(NewVector64(0, 0, 0, nil), Canonical().RotateZ(θ), nil)
	ω := f.Omega(nil).Components(nil)
	if !ExprEqual(ω[2], θ.Dt()) {
		t.Fatalf("ω_z = %s", ω[2])
	}
}

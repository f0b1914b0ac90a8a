package anakin

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestVectorAlgebra(t *testing.T) {
	v := NewVector64(1, 2, 3, nil)
	w := NewVector64(4, 5, 6, nil)
	sum, ok := v.Plus(w).Float64s()
	if !ok || !floats.EqualApprox(sum[:], []float64{5, 7, 9}, 1e-14) {
		t.Fatalf("v+w = %v", sum)
	}
	diff, _ := w.Minus(v).Float64s()
	if !floats.EqualApprox(diff[:], []float64{3, 3, 3}, 1e-14) {
		t.Fatalf("w-v = %v", diff)
	}
	if d, _ := v.Dot(w).Eval(); !floats.EqualWithinAbs(d, 32, 1e-14) {
		t.Fatalf("v·w = %v", d)
	}
	if n, _ := NewVector64(3, 4, 0, nil).Norm().Eval(); !floats.EqualWithinAbs(n, 5, 1e-14) {
		t.Fatalf("|v| = %v", n)
	}
	scaled, _ := v.Scale(Num(-2)).Float64s()
	if !floats.EqualApprox(scaled[:], []float64{-2, -4, -6}, 1e-14) {
		t.Fatalf("-2v = %v", scaled)
	}
}

func TestVectorCross(t *testing.T) {
	i := NewVector64(1, 0, 0, nil)
	j := NewVector64(0, 1, 0, nil)
	k, _ := i.Cross(j).Float64s()
	if !floats.EqualApprox(k[:], []float64{0, 0, 1}, 1e-14) {
		t.Fatalf("i×j = %v", k)
	}
	if self, _ := i.Cross(i).Float64s(); !floats.EqualApprox(self[:], []float64{0, 0, 0}, 1e-14) {
		t.Fatalf("i×i = %v", self)
	}
}

func TestVectorOuter(t *testing.T) {
	v := NewVector64(1, 2, 3, nil)
	w := NewVector64(4, 5, 6, nil)
	got, ok := v.Outer(w).Float64s()
	if !ok {
		t.Fatal("numeric outer product stayed symbolic")
	}
	want := []float64{4, 5, 6, 8, 10, 12, 12, 15, 18}
	if !floats.EqualApprox(got, want, 1e-14) {
		t.Fatalf("v⊗w = %v", got)
	}
}

func TestVectorReexpression(t *testing.T) {
	// The first basis vector of a frame rotated by π/2 about z points along
	// the canonical y axis.
	b, err := NewBasisOf([]float64{0, 0, 1}, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	v := NewVector64(1, 0, 0, b)
	canon, _ := v.Float64s()
	if !floats.EqualApprox(canon[:], []float64{0, 1, 0}, 1e-12) {
		t.Fatalf("canonical components: %v", canon)
	}
	// Round trip back into b.
	back := v.InBasis(nil).InBasis(b)
	if !back.Equals(v) {
		t.Fatalf("re-expression round trip lost the vector: %s", back)
	}
}

func TestVectorDir(t *testing.T) {
	u, err := NewVector64(3, 4, 0, nil).Dir()
	if err != nil {
		t.Fatal(err)
	}
	c, _ := u.Float64s()
	if !floats.EqualApprox(c[:], []float64{0.6, 0.8, 0}, 1e-14) {
		t.Fatalf("direction: %v", c)
	}
	if _, err = NewVector64(0, 0, 0, nil).Dir(); !errors.Is(err, ErrDegenerateRepresentation) {
		t.Fatalf("zero vector direction error: %v", err)
	}
}

func TestVectorDtRotating(t *testing.T) {
	θ := TimeVar("θ")
	b := Canonical().RotateZ(θ)
	// Unit vector frozen in the rotating basis.
	v := NewVector(Num(1), Num(0), Num(0), b)
	got := v.Dt(nil)
	θd := θ.Dt()
	want := NewVector(MulOf(Num(-1), SinOf(θ), θd), MulOf(CosOf(θ), θd), Num(0), nil)
	if !got.Equals(want) {
		t.Fatalf("inertial derivative: %s, want %s", got, want)
	}
	// Seen from its own basis the vector does not move.
	own, ok := v.Dt(b).Float64s()
	if !ok || !floats.EqualApprox(own[:], []float64{0, 0, 0}, 1e-14) {
		t.Fatalf("body-frame derivative: %v", own)
	}
}

func TestVectorSubs(t *testing.T) {
	v := NewVector(Var("a"), Num(0), Num(0), nil)
	r, ok := v.Subs(map[string]Expr{"a": Num(7)}).Float64s()
	if !ok || !floats.EqualWithinAbs(r[0], 7, 1e-14) {
		t.Fatalf("subs gave %v (ok=%v)", r, ok)
	}
}

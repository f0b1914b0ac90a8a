package anakin

import (
	"testing"

	"github.com/gonum/floats"
)

func TestExprFolding(t *testing.T) {
	e := AddOf(Num(1), Num(2), MulOf(Num(3), Num(4)))
	v, ok := e.Eval()
	if !ok || v != 15 {
		t.Fatalf("expected 15, got %v (ok=%v)", v, ok)
	}
	if got := PowOf(Num(2), Num(10)); got.String() != "1024" {
		t.Fatalf("2^10 did not fold: %s", got)
	}
	if got := MulOf(Num(0), Var("x")); got.String() != "0" {
		t.Fatalf("0*x did not vanish: %s", got)
	}
	if got := AddOf(Var("x"), NegOf(Var("x"))); got.String() != "0" {
		t.Fatalf("x-x did not vanish: %s", got)
	}
}

func TestExprLikeTerms(t *testing.T) {
	x := Var("x")
	e := AddOf(x, x, MulOf(Num(3), x))
	if e.String() != "5*x" {
		t.Fatalf("expected 5*x, got %s", e)
	}
	p := MulOf(x, x, PowOf(x, Num(2)))
	if p.String() != "x^4" {
		t.Fatalf("expected x^4, got %s", p)
	}
}

func TestExprExpansion(t *testing.T) {
	x, y := Var("x"), Var("y")
	e := MulOf(AddOf(x, y), SubOf(x, y))
	if e.String() != "x^2 - y^2" {
		t.Fatalf("(x+y)(x-y) = %s", e)
	}
	e = PowOf(AddOf(Var("a"), Var("b")), Num(2))
	if e.String() != "a^2 + 2*a*b + b^2" {
		t.Fatalf("(a+b)² = %s", e)
	}
}

func TestExprPythagorean(t *testing.T) {
	θ := TimeVar("θ")
	e := AddOf(PowOf(SinOf(θ), Num(2)), PowOf(CosOf(θ), Num(2)))
	if e.String() != "1" {
		t.Fatalf("sin²+cos² = %s", e)
	}
	// With a shared symbolic residual factor.
	ωd := TimeVar("θd")
	e = AddOf(MulOf(ωd, PowOf(SinOf(θ), Num(2))), MulOf(ωd, PowOf(CosOf(θ), Num(2))))
	if e.String() != "θd" {
		t.Fatalf("θd·(sin²+cos²) = %s", e)
	}
	// Mismatched coefficients must not collapse.
	e = AddOf(MulOf(Num(2), PowOf(SinOf(θ), Num(2))), PowOf(CosOf(θ), Num(2)))
	if e.String() == "1" || e.String() == "2" {
		t.Fatalf("2sin²+cos² wrongly collapsed to %s", e)
	}
}

func TestExprDt(t *testing.T) {
	θ := TimeVar("θ")
	if got := θ.Dt().String(); got != "θd" {
		t.Fatalf("dθ/dt = %s", got)
	}
	if got := θ.Dt().Dt().String(); got != "θdd" {
		t.Fatalf("d²θ/dt² = %s", got)
	}
	if got := Var("m").Dt().String(); got != "0" {
		t.Fatalf("constants must not move: %s", got)
	}
	if got := SinOf(θ).Dt().String(); got != "cos(θ)*θd" {
		t.Fatalf("d sin θ = %s", got)
	}
	if got := CosOf(θ).Dt().String(); got != "-1*sin(θ)*θd" && got != "(-1)*sin(θ)*θd" {
		t.Fatalf("d cos θ = %s", got)
	}
	// Product rule: d(θ·θd) = θd² + θ·θdd.
	got := MulOf(θ, θ.Dt()).Dt()
	want := AddOf(PowOf(TimeVar("θd"), Num(2)), MulOf(θ, TimeVar("θdd")))
	if !ExprEqual(got, want) {
		t.Fatalf("product rule: got %s, want %s", got, want)
	}
	// Chain rule through a power: d(sin²θ) = 2 sinθ cosθ θd.
	got = PowOf(SinOf(θ), Num(2)).Dt()
	want = MulOf(Num(2), SinOf(θ), CosOf(θ), TimeVar("θd"))
	if !ExprEqual(got, want) {
		t.Fatalf("chain rule: got %s, want %s", got, want)
	}
}

func TestExprSubs(t *testing.T) {
	θ := TimeVar("θ")
	e := AddOf(MulOf(Num(2), SinOf(θ)), Var("m"))
	r := e.Subs(map[string]Expr{"θ": Num(0), "m": Num(3)})
	v, ok := r.Eval()
	if !ok || !floats.EqualWithinAbs(v, 3, 1e-14) {
		t.Fatalf("subs gave %s", r)
	}
	// Partial substitution stays symbolic.
	r = e.Subs(map[string]Expr{"m": Num(3)})
	if _, ok = r.Eval(); ok {
		t.Fatal("partially substituted expression evaluated")
	}
}

func TestExprEqualTolerance(t *testing.T) {
	if !ExprEqual(Num(1), Num(1+1e-15)) {
		t.Fatal("numbers within tolerance must compare equal")
	}
	if ExprEqual(Num(1), Num(1.001)) {
		t.Fatal("distinct numbers compared equal")
	}
	if ExprEqual(Var("x"), Num(1)) {
		t.Fatal("symbol compared equal to number")
	}
}

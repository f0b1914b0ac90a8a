package anakin

import (
	"fmt"
	"math"
)

// Vector is a 3-vector tagged with the basis its components are expressed in.
// A nil basis means the canonical basis. Vectors are immutable.
type Vector struct {
	c     [3]Expr
	basis *Basis
}

// NewVector returns a vector with the given components in basis b.
func NewVector(x, y, z Expr, b *Basis) *Vector {
	return &Vector{c: [3]Expr{x.Simplify(), y.Simplify(), z.Simplify()}, basis: orCanonical(b)}
}

// NewVector64 returns a numeric vector with components in basis b.
func NewVector64(x, y, z float64, b *Basis) *Vector {
	return NewVector(Num(x), Num(y), Num(z), b)
}

// Components returns the components of v expressed in basis b1.
func (v *Vector) Components(b1 *Basis) [3]Expr {
	canon := v.basis.m.MulVec(v.c)
	b1 = orCanonical(b1)
	if b1.isCanonical() {
		return canon
	}
	return b1.m.T().MulVec(canon)
}

// InBasis returns the same vector re-expressed in basis b1.
func (v *Vector) InBasis(b1 *Basis) *Vector {
	c := v.Components(b1)
	return &Vector{c: c, basis: orCanonical(b1)}
}

// Float64s returns the canonical components if the vector is numeric.
func (v *Vector) Float64s() ([3]float64, bool) {
	var out [3]float64
	for i, e := range v.Components(nil) {
		val, ok := e.Eval()
		if !ok {
			return out, false
		}
		out[i] = val
	}
	return out, true
}

// Plus returns v + w.
func (v *Vector) Plus(w *Vector) *Vector {
	a, b := v.Components(nil), w.Components(nil)
	return NewVector(AddOf(a[0], b[0]), AddOf(a[1], b[1]), AddOf(a[2], b[2]), nil)
}

// Minus returns v - w.
func (v *Vector) Minus(w *Vector) *Vector {
	a, b := v.Components(nil), w.Components(nil)
	return NewVector(SubOf(a[0], b[0]), SubOf(a[1], b[1]), SubOf(a[2], b[2]), nil)
}

// Scale returns s·v, expressed in v's own basis.
func (v *Vector) Scale(s Expr) *Vector {
	return NewVector(MulOf(s, v.c[0]), MulOf(s, v.c[1]), MulOf(s, v.c[2]), v.basis)
}

// Dot returns the inner product v·w.
func (v *Vector) Dot(w *Vector) Expr {
	a, b := v.Components(nil), w.Components(nil)
	return AddOf(MulOf(a[0], b[0]), MulOf(a[1], b[1]), MulOf(a[2], b[2]))
}

// Cross returns the cross product v×w expressed in the canonical basis.
func (v *Vector) Cross(w *Vector) *Vector {
	a, b := v.Components(nil), w.Components(nil)
	return NewVector(
		SubOf(MulOf(a[1], b[2]), MulOf(a[2], b[1])),
		SubOf(MulOf(a[2], b[0]), MulOf(a[0], b[2])),
		SubOf(MulOf(a[0], b[1]), MulOf(a[1], b[0])), nil)
}

// Norm returns |v|.
func (v *Vector) Norm() Expr {
	return SqrtOf(v.Dot(v)).Simplify()
}

// Outer returns the outer product v⊗w in canonical components.
func (v *Vector) Outer(w *Vector) *M33 {
	a, b := v.Components(nil), w.Components(nil)
	var out [9]Expr
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3*i+j] = MulOf(a[i], b[j])
		}
	}
	return NewM33FromExprs(out)
}

// Dir returns the unit vector along v. A numerically zero vector has no
// direction and yields ErrDegenerateRepresentation.
func (v *Vector) Dir() (*Vector, error) {
	n := v.Norm()
	if nv, ok := n.Eval(); ok && math.Abs(nv) < 1e-12 {
		return nil, fmt.Errorf("%w: zero vector has no direction", ErrDegenerateRepresentation)
	}
	inv := PowOf(n, Num(-1))
	return v.Scale(inv), nil
}

// Dt returns the time derivative of v as seen from basis s: the components of
// v in s are differentiated entry-wise, so the rotation of s is accounted for
// by the re-expression. Meaningful for symbolic time-dependent content only;
// a purely numeric vector differentiates to zero.
func (v *Vector) Dt(s *Basis) *Vector {
	c := v.Components(s)
	return NewVector(c[0].Dt(), c[1].Dt(), c[2].Dt(), s)
}

// Subs substitutes symbols in the components, keeping the vector's basis.
func (v *Vector) Subs(vals map[string]Expr) *Vector {
	return NewVector(v.c[0].Subs(vals), v.c[1].Subs(vals), v.c[2].Subs(vals), v.basis)
}

// Equals compares two vectors through their canonical components.
func (v *Vector) Equals(w *Vector) bool {
	a, b := v.Components(nil), w.Components(nil)
	for i := range a {
		if !ExprEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (v *Vector) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.c[0], v.c[1], v.c[2])
}

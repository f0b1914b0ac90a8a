package anakin

import (
	"fmt"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// εmat is the equality tolerance for numeric matrices: a small multiple of
// machine epsilon, scaled by magnitude through floats.EqualWithinAbsOrRel.
const εmat = 100 * 2.220446049250313e-16

// M33 is a 3x3 matrix which is either fully numeric (backed by a mat64.Dense
// so all numeric linear algebra goes through BLAS) or symbolic (an array of
// expressions). Values are immutable: every operation returns a new M33.
type M33 struct {
	n *mat64.Dense // set iff fully numeric
	s *[9]Expr     // set otherwise
}

// NewM33 builds a numeric 3x3 matrix from 9 values in row-major order.
func NewM33(vals []float64) (*M33, error) {
	if len(vals) != 9 {
		return nil, fmt.Errorf("%w: expected 9 matrix entries, got %d", ErrShapeMismatch, len(vals))
	}
	v := make([]float64, 9)
	copy(v, vals)
	return &M33{n: mat64.NewDense(3, 3, v)}, nil
}

// NewM33FromExprs builds a 3x3 matrix from 9 expressions in row-major order.
// If every entry reduces to a float the matrix is stored numerically.
func NewM33FromExprs(entries [9]Expr) *M33 {
	var vals [9]float64
	numeric := true
	for i, e := range entries {
		v, ok := e.Eval()
		vals[i] = v
		numeric = numeric && ok
	}
	if numeric {
		m, _ := NewM33(vals[:])
		return m
	}
	var simp [9]Expr
	for i, e := range entries {
		simp[i] = e.Simplify()
	}
	return &M33{s: &simp}
}

// Identity33 returns the 3x3 identity.
func Identity33() *M33 {
	m, _ := NewM33([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	return m
}

// Diag33 returns the diagonal matrix with the given entries.
func Diag33(d1, d2, d3 Expr) *M33 {
	z := Num(0)
	return NewM33FromExprs([9]Expr{d1, z, z, z, d2, z, z, z, d3})
}

// IsNumeric reports whether every entry is a float.
func (m *M33) IsNumeric() bool { return m.n != nil }

// At returns the entry at row i, column j as an expression.
func (m *M33) At(i, j int) Expr {
	if m.n != nil {
		return Num(m.n.At(i, j))
	}
	return m.s[3*i+j]
}

// entries returns all nine entries row-major.
func (m *M33) entries() [9]Expr {
	var out [9]Expr
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3*i+j] = m.At(i, j)
		}
	}
	return out
}

// Mul returns m·o.
func (m *M33) Mul(o *M33) *M33 {
	if m.n != nil && o.n != nil {
		var p mat64.Dense
		p.Mul(m.n, o.n)
		return &M33{n: &p}
	}
	var out [9]Expr
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3*i+j] = AddOf(
				MulOf(m.At(i, 0), o.At(0, j)),
				MulOf(m.At(i, 1), o.At(1, j)),
				MulOf(m.At(i, 2), o.At(2, j)))
		}
	}
	return NewM33FromExprs(out)
}

// T returns the transpose.
func (m *M33) T() *M33 {
	if m.n != nil {
		var t mat64.Dense
		t.Clone(m.n.T())
		return &M33{n: &t}
	}
	var out [9]Expr
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3*i+j] = m.At(j, i)
		}
	}
	return NewM33FromExprs(out)
}

// MulVec returns m·v for a column of expressions.
func (m *M33) MulVec(v [3]Expr) [3]Expr {
	var out [3]Expr
	for i := 0; i < 3; i++ {
		out[i] = AddOf(
			MulOf(m.At(i, 0), v[0]),
			MulOf(m.At(i, 1), v[1]),
			MulOf(m.At(i, 2), v[2]))
	}
	return out
}

// Add returns m+o.
func (m *M33) Add(o *M33) *M33 {
	if m.n != nil && o.n != nil {
		var s mat64.Dense
		s.Add(m.n, o.n)
		return &M33{n: &s}
	}
	var out [9]Expr
	for i := range out {
		out[i] = AddOf(m.entries()[i], o.entries()[i])
	}
	return NewM33FromExprs(out)
}

// Sub returns m-o.
func (m *M33) Sub(o *M33) *M33 {
	if m.n != nil && o.n != nil {
		var s mat64.Dense
		s.Sub(m.n, o.n)
		return &M33{n: &s}
	}
	var out [9]Expr
	for i := range out {
		out[i] = SubOf(m.entries()[i], o.entries()[i])
	}
	return NewM33FromExprs(out)
}

// Scale returns s·m.
func (m *M33) Scale(s Expr) *M33 {
	if v, ok := s.Eval(); ok && m.n != nil {
		var out mat64.Dense
		out.Scale(v, m.n)
		return &M33{n: &out}
	}
	var out [9]Expr
	for i, e := range m.entries() {
		out[i] = MulOf(s, e)
	}
	return NewM33FromExprs(out)
}

// Trace returns the trace.
func (m *M33) Trace() Expr {
	if m.n != nil {
		return Num(mat64.Trace(m.n))
	}
	return AddOf(m.At(0, 0), m.At(1, 1), m.At(2, 2))
}

// Det returns the determinant.
func (m *M33) Det() Expr {
	if m.n != nil {
		return Num(mat64.Det(m.n))
	}
	e := m.entries()
	return AddOf(
		MulOf(e[0], SubOf(MulOf(e[4], e[8]), MulOf(e[5], e[7]))),
		MulOf(Num(-1), e[1], SubOf(MulOf(e[3], e[8]), MulOf(e[5], e[6]))),
		MulOf(e[2], SubOf(MulOf(e[3], e[7]), MulOf(e[4], e[6]))))
}

// DivRight solves X·o = m. For numeric operands this is a BLAS solve; for
// symbolic operands o is assumed orthonormal and its transpose is used as the
// inverse.
func (m *M33) DivRight(o *M33) *M33 {
	if m.n != nil && o.n != nil {
		// X·o = m  <=>  oᵀ·Xᵀ = mᵀ
		var xt mat64.Dense
		if err := xt.Solve(o.n.T(), m.n.T()); err == nil {
			var x mat64.Dense
			x.Clone(xt.T())
			return &M33{n: &x}
		}
	}
	return m.Mul(o.T())
}

// DivLeft solves m·X = o with the same numeric/symbolic split as DivRight.
func (m *M33) DivLeft(o *M33) *M33 {
	if m.n != nil && o.n != nil {
		var x mat64.Dense
		if err := x.Solve(m.n, o.n); err == nil {
			return &M33{n: &x}
		}
	}
	return m.T().Mul(o)
}

// Subs substitutes symbols throughout the matrix; a fully resolved result
// becomes numeric.
func (m *M33) Subs(vals map[string]Expr) *M33 {
	if m.n != nil {
		return m
	}
	var out [9]Expr
	for i, e := range m.entries() {
		out[i] = e.Subs(vals)
	}
	return NewM33FromExprs(out)
}

// Simplify simplifies symbolic entries.
func (m *M33) Simplify() *M33 {
	if m.n != nil {
		return m
	}
	return NewM33FromExprs(m.entries())
}

// Equals compares element-wise, within tolerance for numeric matrices and by
// identical simplified form for symbolic ones.
func (m *M33) Equals(o *M33) bool {
	if m.n != nil && o.n != nil {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if !floats.EqualWithinAbsOrRel(m.n.At(i, j), o.n.At(i, j), εmat, εmat) {
					return false
				}
			}
		}
		return true
	}
	me, oe := m.entries(), o.entries()
	for i := range me {
		if !ExprEqual(me[i], oe[i]) {
			return false
		}
	}
	return true
}

// IsUnitary reports whether mᵀm = I. Numeric matrices use a tolerance;
// symbolic matrices must simplify exactly to the identity, anything
// unprovable is false.
func (m *M33) IsUnitary() bool {
	p := m.T().Mul(m)
	if p.n != nil {
		return p.Equals(Identity33())
	}
	id := Identity33()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !ExprEqual(p.At(i, j), id.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// IsRightHanded reports whether det(m) > 0. A symbolically indeterminate
// determinant is reported as false.
func (m *M33) IsRightHanded() bool {
	d, ok := m.Det().Eval()
	return ok && d > 0
}

// Float64s returns all entries row-major if the matrix is numeric.
func (m *M33) Float64s() ([]float64, bool) {
	if m.n == nil {
		return nil, false
	}
	out := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[3*i+j] = m.n.At(i, j)
		}
	}
	return out, true
}

func (m *M33) String() string {
	e := m.entries()
	return fmt.Sprintf("[%v, %v, %v; %v, %v, %v; %v, %v, %v]",
		e[0], e[1], e[2], e[3], e[4], e[5], e[6], e[7], e[8])
}

// elemRot returns the elementary rotation matrix about canonical axis
// k (1, 2 or 3) by angle θ. Columns are the rotated canonical basis vectors.
func elemRot(k int, θ Expr) *M33 {
	c, s := CosOf(θ), SinOf(θ)
	one, zero := Num(1), Num(0)
	switch k {
	case 1:
		return NewM33FromExprs([9]Expr{
			one, zero, zero,
			zero, c, NegOf(s),
			zero, s, c})
	case 2:
		return NewM33FromExprs([9]Expr{
			c, zero, s,
			zero, one, zero,
			NegOf(s), zero, c})
	case 3:
		return NewM33FromExprs([9]Expr{
			c, NegOf(s), zero,
			s, c, zero,
			zero, zero, one})
	}
	panic(fmt.Errorf("anakin: no axis %d", k))
}

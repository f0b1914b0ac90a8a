package anakin

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Basis is an orthonormal right-handed vector triple, stored as the 3x3
// matrix whose columns are the basis vectors expressed in the canonical
// basis: a vector with components c in this basis has components m·c in the
// canonical one. Construction relative to a reference basis pre-multiplies by
// the reference matrix, so every Basis is ultimately canonical-frame.
//
// Basis values are immutable; all operations return new values.
type Basis struct {
	m *M33
}

// canonical is the fixed identity/world basis. APIs taking a *Basis treat nil
// as the canonical basis.
var canonical = &Basis{m: Identity33()}

// Canonical returns the canonical (identity) basis.
func Canonical() *Basis { return canonical }

func orCanonical(b *Basis) *Basis {
	if b == nil {
		return canonical
	}
	return b
}

func (b *Basis) isCanonical() bool {
	return b == canonical || (b.m.IsNumeric() && b.m.Equals(Identity33()))
}

// NewBasis returns a copy of basis b composed into reference ref
// (m = ref.m·b.m). Both arguments may be nil for canonical.
func NewBasis(b, ref *Basis) *Basis {
	b, ref = orCanonical(b), orCanonical(ref)
	return &Basis{m: ref.m.Mul(b.m).Simplify()}
}

// NewBasisFromMatrix builds a basis whose matrix relative to ref is m.
func NewBasisFromMatrix(m *M33, ref *Basis) (*Basis, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidArguments)
	}
	return &Basis{m: orCanonical(ref).m.Mul(m).Simplify()}, nil
}

// NewBasisFromQuaternion builds a basis from the quaternion
// q = [q1, q2, q3, q4] with the scalar term last, relative to ref. A fully
// numeric quaternion is normalized first.
func NewBasisFromQuaternion(q [4]Expr, ref *Basis) (*Basis, error) {
	if qn, ok := evalQuat(q); ok {
		n := quat.Abs(qn)
		if n < 1e-12 {
			return nil, fmt.Errorf("%w: null quaternion", ErrInvalidArguments)
		}
		qn = quat.Scale(1/n, qn)
		q = [4]Expr{Num(qn.Imag), Num(qn.Jmag), Num(qn.Kmag), Num(qn.Real)}
	}
	q1, q2, q3, q4 := q[0], q[1], q[2], q[3]
	two := Num(2)
	sq := func(e Expr) Expr { return PowOf(e, Num(2)) }
	m := NewM33FromExprs([9]Expr{
		SubOf(Num(1), MulOf(two, AddOf(sq(q2), sq(q3)))),
		MulOf(two, SubOf(MulOf(q1, q2), MulOf(q3, q4))),
		MulOf(two, AddOf(MulOf(q1, q3), MulOf(q2, q4))),
		MulOf(two, AddOf(MulOf(q1, q2), MulOf(q3, q4))),
		SubOf(Num(1), MulOf(two, AddOf(sq(q1), sq(q3)))),
		MulOf(two, SubOf(MulOf(q2, q3), MulOf(q1, q4))),
		MulOf(two, SubOf(MulOf(q1, q3), MulOf(q2, q4))),
		MulOf(two, AddOf(MulOf(q2, q3), MulOf(q1, q4))),
		SubOf(Num(1), MulOf(two, AddOf(sq(q1), sq(q2)))),
	})
	return NewBasisFromMatrix(m, ref)
}

func evalQuat(q [4]Expr) (quat.Number, bool) {
	var v [4]float64
	for i, e := range q {
		val, ok := e.Eval()
		if !ok {
			return quat.Number{}, false
		}
		v[i] = val
	}
	return quat.Number{Real: v[3], Imag: v[0], Jmag: v[1], Kmag: v[2]}, true
}

// NewBasisFromAxisAngle builds a basis rotated by angle θ about the unit axis
// (x, y, z) of ref, using Rodrigues' formula. Column k of the resulting
// relative matrix is the rotated basis vector k of ref.
func NewBasisFromAxisAngle(axis [3]Expr, θ Expr, ref *Basis) (*Basis, error) {
	x, y, z := axis[0], axis[1], axis[2]
	c, s := CosOf(θ), SinOf(θ)
	γ := SubOf(Num(1), c) // 1-cos θ
	m := NewM33FromExprs([9]Expr{
		AddOf(c, MulOf(γ, x, x)),
		SubOf(MulOf(γ, x, y), MulOf(s, z)),
		AddOf(MulOf(γ, x, z), MulOf(s, y)),
		AddOf(MulOf(γ, x, y), MulOf(s, z)),
		AddOf(c, MulOf(γ, y, y)),
		SubOf(MulOf(γ, y, z), MulOf(s, x)),
		SubOf(MulOf(γ, x, z), MulOf(s, y)),
		AddOf(MulOf(γ, y, z), MulOf(s, x)),
		AddOf(c, MulOf(γ, z, z)),
	})
	return NewBasisFromMatrix(m, ref)
}

// NewBasisFromColumns builds a basis whose vectors have components c1, c2, c3
// in ref.
func NewBasisFromColumns(c1, c2, c3 [3]Expr, ref *Basis) (*Basis, error) {
	m := NewM33FromExprs([9]Expr{
		c1[0], c2[0], c3[0],
		c1[1], c2[1], c3[1],
		c1[2], c2[2], c3[2],
	})
	return NewBasisFromMatrix(m, ref)
}

// Matrix returns the transformation matrix from this basis to b1
// (default canonical), i.e. b1.mᵀ·m, simplified.
func (b *Basis) Matrix(b1 *Basis) *M33 {
	b1 = orCanonical(b1)
	if b1.isCanonical() {
		return b.m.Simplify()
	}
	return b1.m.T().Mul(b.m).Simplify()
}

// I returns the first basis vector, expressed in this basis.
func (b *Basis) I() *Vector { return NewVector64(1, 0, 0, b) }

// J returns the second basis vector, expressed in this basis.
func (b *Basis) J() *Vector { return NewVector64(0, 1, 0, b) }

// K returns the third basis vector, expressed in this basis.
func (b *Basis) K() *Vector { return NewVector64(0, 0, 1, b) }

// RotAngle returns the angle of the rotation from b1 to this basis,
// acos((trace-1)/2).
func (b *Basis) RotAngle(b1 *Basis) Expr {
	r := b.Matrix(b1)
	return AcosOf(MulOf(Num(0.5), SubOf(r.Trace(), Num(1)))).Simplify()
}

// RotAxis returns the unit rotation axis from b1 to this basis, expressed in
// b1, recovered from the antisymmetric part of the relative matrix. The axis
// is undefined at rotation angles of 0 and 180 degrees, where the
// antisymmetric part vanishes and ErrDegenerateRepresentation is returned.
func (b *Basis) RotAxis(b1 *Basis) (*Vector, error) {
	r := b.Matrix(b1)
	w := NewVector(
		SubOf(r.At(2, 1), r.At(1, 2)),
		SubOf(r.At(0, 2), r.At(2, 0)),
		SubOf(r.At(1, 0), r.At(0, 1)), orCanonical(b1))
	axis, err := w.Dir()
	if err != nil {
		return nil, fmt.Errorf("rotation axis: %w", err)
	}
	return axis, nil
}

// Quaternions returns the quaternion [q1, q2, q3, q4] (scalar last) of the
// rotation from b1 to this basis, extracted scalar-term first:
// q4 = sqrt(trace+1)/2, then the vector part from the antisymmetric
// off-diagonal terms. At 180 degrees q4 vanishes and the extraction is
// degenerate.
func (b *Basis) Quaternions(b1 *Basis) ([4]Expr, error) {
	var q [4]Expr
	r := b.Matrix(b1)
	tr := r.Trace()
	if tv, ok := tr.Eval(); ok && tv+1 < 1e-10 {
		return q, fmt.Errorf("%w: quaternion scalar term vanishes at 180 degrees", ErrDegenerateRepresentation)
	}
	q4 := MulOf(Num(0.5), SqrtOf(AddOf(tr, Num(1)))).Simplify()
	inv4q4 := PowOf(MulOf(Num(4), q4), Num(-1))
	q[0] = MulOf(SubOf(r.At(2, 1), r.At(1, 2)), inv4q4).Simplify()
	q[1] = MulOf(SubOf(r.At(0, 2), r.At(2, 0)), inv4q4).Simplify()
	q[2] = MulOf(SubOf(r.At(1, 0), r.At(0, 1)), inv4q4).Simplify()
	q[3] = q4
	return q, nil
}

// Euler313 is the default Euler sequence.
var Euler313 = [3]int{3, 1, 3}

// Euler returns the three intrinsic Euler angles of the rotation from b1 to
// this basis for the axis sequence seq (a zero sequence means 3-1-3).
// Symmetric sequences (first and third axes equal) are undefined at middle
// angles of 0 and 180 degrees; asymmetric sequences at ±90 degrees. Both
// report ErrDegenerateRepresentation when detectable numerically.
func (b *Basis) Euler(b1 *Basis, seq [3]int) ([3]Expr, error) {
	var θ [3]Expr
	if seq == [3]int{} {
		seq = Euler313
	}
	for _, a := range seq {
		if a < 1 || a > 3 {
			return θ, fmt.Errorf("%w: euler axis %d", ErrInvalidArguments, a)
		}
	}
	if seq[0] == seq[1] || seq[1] == seq[2] {
		return θ, fmt.Errorf("%w: consecutive euler axes must differ", ErrInvalidArguments)
	}
	r := b.Matrix(b1)
	at := func(i, j int) Expr { return r.At(i-1, j-1) } // 1-indexed
	i, j := seq[0], seq[1]
	if seq[0] == seq[2] { // symmetric
		k := 6 - i - j
		ε := permSign(i, j, k)
		cosθ2 := at(i, i)
		if cv, ok := cosθ2.Eval(); ok && 1-cv*cv < 1e-10 {
			return θ, fmt.Errorf("%w: symmetric euler sequence at middle angle 0 or 180 degrees", ErrDegenerateRepresentation)
		}
		θ[0] = Atan2Of(at(j, i), MulOf(Num(-ε), at(k, i))).Simplify()
		θ[1] = AcosOf(cosθ2).Simplify()
		θ[2] = Atan2Of(at(i, j), MulOf(Num(ε), at(i, k))).Simplify()
		return θ, nil
	}
	k := seq[2]
	ε := permSign(i, j, k)
	sinθ2 := MulOf(Num(ε), at(i, k)).Simplify()
	if sv, ok := sinθ2.Eval(); ok && 1-sv*sv < 1e-10 {
		return θ, fmt.Errorf("%w: asymmetric euler sequence at middle angle ±90 degrees", ErrDegenerateRepresentation)
	}
	θ[0] = Atan2Of(MulOf(Num(-ε), at(j, k)), at(k, k)).Simplify()
	θ[1] = AsinOf(sinθ2).Simplify()
	θ[2] = Atan2Of(MulOf(Num(-ε), at(i, j)), at(i, i)).Simplify()
	return θ, nil
}

// permSign is the parity of the permutation (i, j, k) of (1, 2, 3).
func permSign(i, j, k int) float64 {
	switch [3]int{i, j, k} {
	case [3]int{1, 2, 3}, [3]int{2, 3, 1}, [3]int{3, 1, 2}:
		return 1
	}
	return -1
}

// RotateX returns this basis rotated by θ about its own first axis.
func (b *Basis) RotateX(θ Expr) *Basis { return &Basis{m: b.m.Mul(elemRot(1, θ)).Simplify()} }

// RotateY returns this basis rotated by θ about its own second axis.
func (b *Basis) RotateY(θ Expr) *Basis { return &Basis{m: b.m.Mul(elemRot(2, θ)).Simplify()} }

// RotateZ returns this basis rotated by θ about its own third axis.
func (b *Basis) RotateZ(θ Expr) *Basis { return &Basis{m: b.m.Mul(elemRot(3, θ)).Simplify()} }

// Compose returns the basis with matrix b.m·o.m.
func (b *Basis) Compose(o *Basis) *Basis {
	return &Basis{m: b.m.Mul(orCanonical(o).m).Simplify()}
}

// DivRight solves X·o = b for the relative rotation X.
func (b *Basis) DivRight(o *Basis) *Basis {
	return &Basis{m: b.m.DivRight(orCanonical(o).m).Simplify()}
}

// DivLeft solves b·X = o for the relative rotation X.
func (b *Basis) DivLeft(o *Basis) *Basis {
	return &Basis{m: b.m.DivLeft(orCanonical(o).m).Simplify()}
}

// Omega returns the angular velocity of this basis relative to b1, expressed
// in this basis: the vector [k·dj/dt, i·dk/dt, j·di/dt]. It assumes symbolic
// time-dependent matrix entries; a purely numeric basis differentiates to
// zero. With a non-canonical b1 the transport law
// ω(b/b1) = ω(b/S0) - ω(b1/S0) applies.
func (b *Basis) Omega(b1 *Basis) *Vector {
	var di, dj, dk [3]Expr
	col := func(j int) [3]Expr { return [3]Expr{b.m.At(0, j), b.m.At(1, j), b.m.At(2, j)} }
	ci, cj, ck := col(0), col(1), col(2)
	for i := 0; i < 3; i++ {
		di[i] = ci[i].Dt()
		dj[i] = cj[i].Dt()
		dk[i] = ck[i].Dt()
	}
	dot := func(a, b [3]Expr) Expr {
		return AddOf(MulOf(a[0], b[0]), MulOf(a[1], b[1]), MulOf(a[2], b[2]))
	}
	ω := NewVector(dot(ck, dj), dot(ci, dk), dot(cj, di), b)
	b1 = orCanonical(b1)
	if b1.isCanonical() {
		return ω
	}
	return ω.Minus(b1.Omega(nil)).InBasis(b)
}

// Alpha returns the angular acceleration of this basis relative to b1,
// expressed in this basis. With a non-canonical b1 the transport theorem
// α(b/b1) = α(b/S0) - α(b1/S0) - ω(b1/S0)×ω(b/b1) applies.
func (b *Basis) Alpha(b1 *Basis) *Vector {
	α := b.Omega(nil).Dt(nil).InBasis(b)
	b1 = orCanonical(b1)
	if b1.isCanonical() {
		return α
	}
	corr := b1.Alpha(nil).Plus(b1.Omega(nil).Cross(b.Omega(b1)))
	return α.Minus(corr).InBasis(b)
}

// Subs substitutes symbols throughout the basis matrix; a fully resolved
// result becomes numeric.
func (b *Basis) Subs(vals map[string]Expr) *Basis {
	return &Basis{m: b.m.Subs(vals)}
}

// IsUnitary reports whether mᵀm = I within tolerance (numeric) or exactly
// after simplification (symbolic; unprovable is false).
func (b *Basis) IsUnitary() bool { return b.m.IsUnitary() }

// IsRightHanded reports whether det(m) > 0; symbolically indeterminate
// determinants report false.
func (b *Basis) IsRightHanded() bool { return b.m.IsRightHanded() }

// Equals compares the basis matrices element-wise within tolerance.
func (b *Basis) Equals(o *Basis) bool { return b.m.Equals(orCanonical(o).m) }

func (b *Basis) String() string { return b.m.String() }

// NewBasisOf is the arity-and-shape dispatch adapter over the named basis
// constructors. Supported argument lists, each optionally followed by a
// trailing reference *Basis (default canonical):
//
//	()                          identity
//	(*Basis)                    copy/compose
//	(*M33)                      matrix
//	([4]Expr | []float64 len 4) quaternion, scalar last
//	(axis, angle)               axis as [3]Expr, []float64 len 3 or *Vector;
//	                            angle as Expr or float64
//	(c1, c2, c3)                three columns, each [3]Expr or []float64 len 3
//
// Anything else is ErrInvalidArguments.
func NewBasisOf(args ...interface{}) (*Basis, error) {
	ref := Canonical()
	if len(args) > 0 {
		if last, isBasis := args[len(args)-1].(*Basis); isBasis && len(args) > 1 {
			ref = last
			args = args[:len(args)-1]
		}
	}
	switch len(args) {
	case 0:
		return NewBasis(nil, nil), nil
	case 1:
		switch a := args[0].(type) {
		case *Basis:
			return NewBasis(a, ref), nil
		case *M33:
			return NewBasisFromMatrix(a, ref)
		case [4]Expr:
			return NewBasisFromQuaternion(a, ref)
		case []float64:
			if len(a) == 4 {
				return NewBasisFromQuaternion([4]Expr{Num(a[0]), Num(a[1]), Num(a[2]), Num(a[3])}, ref)
			}
		}
	case 2:
		axis, ok := asTriple(args[0], ref)
		if !ok {
			break
		}
		θ, ok := asExpr(args[1])
		if !ok {
			break
		}
		return NewBasisFromAxisAngle(axis, θ, ref)
	case 3:
		var cols [3][3]Expr
		ok := true
		for i, a := range args {
			cols[i], ok = asTriple(a, ref)
			if !ok {
				break
			}
		}
		if ok {
			return NewBasisFromColumns(cols[0], cols[1], cols[2], ref)
		}
	}
	return nil, fmt.Errorf("%w: no basis constructor for %d argument(s) %v", ErrInvalidArguments, len(args), args)
}

func asExpr(a interface{}) (Expr, bool) {
	switch v := a.(type) {
	case Expr:
		return v, true
	case float64:
		return Num(v), true
	case int:
		return Num(float64(v)), true
	}
	return nil, false
}

func asTriple(a interface{}, ref *Basis) ([3]Expr, bool) {
	switch v := a.(type) {
	case [3]Expr:
		return v, true
	case []float64:
		if len(v) == 3 {
			return [3]Expr{Num(v[0]), Num(v[1]), Num(v[2])}, true
		}
	case *Vector:
		return v.Components(ref), true
	}
	return [3]Expr{}, false
}

// RandomBasis returns a numeric basis from a uniformly random rotation, built
// from a random unit quaternion through the given source of floats in [0, 1).
func RandomBasis(rnd func() float64) *Basis {
	// Shoemake's uniform quaternion sampling.
	u1, u2, u3 := rnd(), rnd(), rnd()
	s1, c1 := math.Sincos(2 * math.Pi * u2)
	s2, c2 := math.Sincos(2 * math.Pi * u3)
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	q := [4]Expr{Num(a * s1), Num(a * c1), Num(b * s2), Num(b * c2)}
	basis, err := NewBasisFromQuaternion(q, nil)
	if err != nil {
		panic(err)
	}
	return basis
}

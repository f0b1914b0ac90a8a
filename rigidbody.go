package anakin

import "fmt"

// RigidBody is a frame carrying mass, an inertia tensor about its center of
// mass (expressed in the canonical vector basis), and an optional geometry
// handle used only for rendering. The frame origin is the center of mass.
type RigidBody struct {
	Frame
	mass Expr
	ig   *M33
	geom *Mesh
}

// NewRigidBody assembles a rigid body from a heterogeneous argument list,
// optionally terminated by a reference *Frame (default canonical). Each
// recognized argument is applied in order, so later arguments override
// earlier ones field by field:
//
//	*RigidBody        all fields
//	*Particle         mass and position
//	*Point            position
//	*Basis            orientation
//	*M33              inertia tensor (rank 2)
//	Expr, float64     mass (rank 0)
//	*Vector, []float64 len 3   position (rank 1)
//	*Mesh             geometry
//
// Positions and orientations are resolved against the reference frame.
func NewRigidBody(parts ...interface{}) (*RigidBody, error) {
	ref := CanonicalFrame()
	if len(parts) > 0 {
		if last, isFrame := parts[len(parts)-1].(*Frame); isFrame {
			ref = last
			parts = parts[:len(parts)-1]
		}
	}
	// Accumulate state relative to the reference, compose once at the end.
	r := NewVector64(0, 0, 0, nil)
	basis := Canonical()
	mass := Expr(Num(0))
	ig := Diag33(Num(0), Num(0), Num(0))
	var geom *Mesh
	for _, part := range parts {
		switch p := part.(type) {
		case *RigidBody:
			mass, ig, geom = p.mass, p.ig, p.geom
			r, basis = p.Position(), p.Basis()
		case *Particle:
			mass = p.Mass()
			r = p.Position()
		case *Point:
			r = p.Position()
		case *Basis:
			basis = p
		case *M33:
			ig = p
		case *Mesh:
			geom = p
		case *Vector:
			r = p
		case []float64:
			if len(p) != 3 {
				return nil, fmt.Errorf("%w: position must have 3 components, got %d", ErrShapeMismatch, len(p))
			}
			r = NewVector64(p[0], p[1], p[2], nil)
		case float64:
			mass = Num(p)
		case int:
			mass = Num(float64(p))
		case Expr:
			mass = p.Simplify()
		default:
			return nil, fmt.Errorf("%w: cannot build a rigid body from %T", ErrInvalidArguments, part)
		}
	}
	return &RigidBody{
		Frame: *NewFrame(r, basis, ref),
		mass:  mass,
		ig:    ig,
		geom:  geom,
	}, nil
}

// Mass returns the body's mass.
func (b *RigidBody) Mass() Expr { return b.mass }

// IG returns the inertia tensor about the center of mass in canonical
// components.
func (b *RigidBody) IG() *M33 { return b.ig }

// Geometry returns the body's mesh handle; dynamics never consults it.
func (b *RigidBody) Geometry() *Mesh { return b.geom }

// P returns the linear momentum of the body as seen from basis s.
func (b *RigidBody) P(s *Basis) *Vector {
	return b.Velocity(s).Scale(b.mass)
}

// H returns the angular momentum of the body about point o as seen from
// basis s (defaults: canonical origin and basis):
// H = (r-o) × p + IG·ω.
func (b *RigidBody) H(o *Point, s *Basis) *Vector {
	if o == nil {
		o = Origin()
	}
	arm := b.Position().Minus(o.Position())
	spin := b.ig.MulVec(b.Omega(s).Components(nil))
	return arm.Cross(b.P(s)).Plus(NewVector(spin[0], spin[1], spin[2], nil))
}

// T returns the kinetic energy of the body as seen from basis s:
// T = m·v²/2 + ω·IG·ω/2.
func (b *RigidBody) T(s *Basis) Expr {
	v := b.Velocity(s)
	ω := b.Omega(s)
	spin := b.ig.MulVec(ω.Components(nil))
	return AddOf(
		MulOf(Num(0.5), b.mass, v.Dot(v)),
		MulOf(Num(0.5), ω.Dot(NewVector(spin[0], spin[1], spin[2], nil)))).Simplify()
}

// I returns the inertia tensor about point o by the parallel axis theorem:
// I = IG + m·(|d|²·Id - d⊗d) with d the vector from o to the center of mass.
func (b *RigidBody) I(o *Point) *M33 {
	if o == nil {
		o = Origin()
	}
	d := b.Position().Minus(o.Position())
	shift := Identity33().Scale(d.Dot(d)).Sub(d.Outer(d)).Scale(b.mass)
	return b.ig.Add(shift).Simplify()
}

// Subs substitutes symbols in mass, inertia, position and orientation,
// producing a numeric body when every symbol resolves.
func (b *RigidBody) Subs(vals map[string]Expr) *RigidBody {
	return &RigidBody{
		Frame: *b.Frame.Subs(vals),
		mass:  b.mass.Subs(vals),
		ig:    b.ig.Subs(vals),
		geom:  b.geom,
	}
}

// ForceEquation returns the scalar Newton equation of the body projected on
// direction e in the inertial basis s: d(p)/dt·e - F·e. The expression is
// zero when the motion satisfies the dynamics. Requires symbolic
// time-dependent state; numeric state differentiates to zero.
func (b *RigidBody) ForceEquation(f, e *Vector, s *Basis) Expr {
	dp := b.P(s).Dt(s)
	return SubOf(dp.Dot(e), f.Dot(e)).Simplify()
}

// TorqueEquation returns the scalar Euler equation about point a projected on
// direction e in the inertial basis s: d(H_a)/dt·e - (M_a - v_a×p)·e.
func (b *RigidBody) TorqueEquation(a *Point, ma, e *Vector, s *Basis) Expr {
	if a == nil {
		a = Origin()
	}
	dh := b.H(a, s).Dt(s)
	rhs := ma.Minus(a.Velocity(s).Cross(b.P(s)))
	return SubOf(dh.Dot(e), rhs.Dot(e)).Simplify()
}

// Equations returns the six scalar Newton–Euler equations for resultant force
// f and moment ma about point a, projected on the canonical axes of the
// inertial basis s: three force equations then three torque equations. A body
// whose position and orientation are fully numeric has no time-dependent state
// to differentiate and yields ErrUnsupportedOperation.
func (b *RigidBody) Equations(f *Vector, a *Point, ma *Vector, s *Basis) ([6]Expr, error) {
	var eqs [6]Expr
	if _, numericPos := b.Position().Float64s(); numericPos && b.basis.m.IsNumeric() {
		return eqs, fmt.Errorf("%w: equations of motion need symbolic time-dependent state", ErrUnsupportedOperation)
	}
	axes := [3]*Vector{Canonical().I(), Canonical().J(), Canonical().K()}
	for i, e := range axes {
		eqs[i] = b.ForceEquation(f, e, s)
		eqs[3+i] = b.TorqueEquation(a, ma, e, s)
	}
	return eqs, nil
}

// NewBoxBody returns a homogeneous box of the given mass and edge lengths
// centered on its frame, with the principal inertia
// diag(m(ly²+lz²), m(lx²+lz²), m(lx²+ly²))/12 and a box mesh when the
// dimensions are numeric.
func NewBoxBody(mass, lx, ly, lz Expr) *RigidBody {
	twelfth := MulOf(mass, Num(1.0/12))
	sq := func(e Expr) Expr { return PowOf(e, Num(2)) }
	ig := Diag33(
		MulOf(twelfth, AddOf(sq(ly), sq(lz))),
		MulOf(twelfth, AddOf(sq(lx), sq(lz))),
		MulOf(twelfth, AddOf(sq(lx), sq(ly))))
	body, _ := NewRigidBody(mass, ig)
	if x, okx := lx.Eval(); okx {
		if y, oky := ly.Eval(); oky {
			if z, okz := lz.Eval(); okz {
				body.geom = NewBoxMesh(x, y, z)
			}
		}
	}
	return body
}

// NewSphereBody returns a homogeneous sphere of the given mass and radius,
// IG = (2/5)·m·r²·Id.
func NewSphereBody(mass, r Expr) *RigidBody {
	moment := MulOf(Num(0.4), mass, PowOf(r, Num(2)))
	body, _ := NewRigidBody(mass, Diag33(moment, moment, moment))
	if rv, ok := r.Eval(); ok {
		body.geom = NewSphereMesh(rv, 24)
	}
	return body
}

// NewCylinderBody returns a homogeneous cylinder of the given mass, radius
// and height with its axis along the third basis vector:
// diag(m(3r²+h²)/12, m(3r²+h²)/12, m·r²/2).
func NewCylinderBody(mass, r, h Expr) *RigidBody {
	side := MulOf(mass, Num(1.0/12), AddOf(MulOf(Num(3), PowOf(r, Num(2))), PowOf(h, Num(2))))
	axial := MulOf(Num(0.5), mass, PowOf(r, Num(2)))
	body, _ := NewRigidBody(mass, Diag33(side, side, axial))
	if rv, okr := r.Eval(); okr {
		if hv, okh := h.Eval(); okh {
			body.geom = NewCylinderMesh(rv, hv, 24)
		}
	}
	return body
}

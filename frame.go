package anakin

// Point is a geometric point, tracked by its position vector from the
// canonical origin.
type Point struct {
	r *Vector
}

// Origin returns the canonical origin.
func Origin() *Point { return &Point{r: NewVector64(0, 0, 0, nil)} }

// NewPoint returns the point at position r, resolved against the reference
// frame: r = ref.r + ref.basis rotated r.
func NewPoint(r *Vector, ref *Frame) *Point {
	if ref == nil {
		return &Point{r: r}
	}
	return &Point{r: ref.pos.r.Plus(r.InBasis(ref.basis))}
}

// Position returns the position vector of p from the canonical origin.
func (p *Point) Position() *Vector { return p.r }

// Velocity returns the velocity of p as seen from basis s.
func (p *Point) Velocity(s *Basis) *Vector { return p.r.Dt(s) }

// Displacement returns the vector from p to q.
func (p *Point) Displacement(q *Point) *Vector { return q.r.Minus(p.r) }

// Subs substitutes symbols in the position.
func (p *Point) Subs(vals map[string]Expr) *Point { return &Point{r: p.r.Subs(vals)} }

// Particle is a point mass.
type Particle struct {
	Point
	mass Expr
}

// NewParticle returns a particle of the given mass at point p.
func NewParticle(mass Expr, p *Point) *Particle {
	return &Particle{Point: *p, mass: mass.Simplify()}
}

// Mass returns the particle's mass.
func (p *Particle) Mass() Expr { return p.mass }

// P returns the linear momentum of the particle as seen from basis s.
func (p *Particle) P(s *Basis) *Vector { return p.Velocity(s).Scale(p.mass) }

// T returns the kinetic energy of the particle as seen from basis s.
func (p *Particle) T(s *Basis) Expr {
	v := p.Velocity(s)
	return MulOf(Num(0.5), p.mass, v.Dot(v)).Simplify()
}

// Subs substitutes symbols in mass and position.
func (p *Particle) Subs(vals map[string]Expr) *Particle {
	return &Particle{Point: *p.Point.Subs(vals), mass: p.mass.Subs(vals)}
}

// Frame is a point with an attached basis: the full configuration of a rigid
// motion. RigidBody layers mass and inertia on top of it.
type Frame struct {
	pos   Point
	basis *Basis
}

// NewFrame returns the frame at point r with orientation b, both resolved
// against the reference frame: the position composes as
// r_new = r_ref + m_ref·r and the orientation as m_new = m_ref·m.
func NewFrame(r *Vector, b *Basis, ref *Frame) *Frame {
	b = orCanonical(b)
	if ref == nil {
		return &Frame{pos: Point{r: r}, basis: b}
	}
	return &Frame{
		pos:   *NewPoint(r, ref),
		basis: NewBasis(b, ref.basis),
	}
}

// CanonicalFrame returns the frame at the canonical origin with the canonical
// basis.
func CanonicalFrame() *Frame {
	return &Frame{pos: *Origin(), basis: Canonical()}
}

// Position returns the frame's origin position.
func (f *Frame) Position() *Vector { return f.pos.r }

// Basis returns the frame's orientation.
func (f *Frame) Basis() *Basis { return f.basis }

// Point returns the frame's origin as a point.
func (f *Frame) Point() *Point { return &Point{r: f.pos.r} }

// Velocity returns the velocity of the frame origin as seen from basis s.
func (f *Frame) Velocity(s *Basis) *Vector { return f.pos.Velocity(s) }

// Omega returns the angular velocity of the frame relative to s.
func (f *Frame) Omega(s *Basis) *Vector { return f.basis.Omega(s) }

// Alpha returns the angular acceleration of the frame relative to s.
func (f *Frame) Alpha(s *Basis) *Vector { return f.basis.Alpha(s) }

// Subs substitutes symbols in position and orientation.
func (f *Frame) Subs(vals map[string]Expr) *Frame {
	return &Frame{pos: *f.pos.Subs(vals), basis: f.basis.Subs(vals)}
}

package anakin

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gonum/floats"
)

// Expr is a scalar which is either a floating point literal or a symbolic
// expression tree. Every operation returns a new value; expressions are never
// mutated in place.
//
// Time dependence is explicit: symbols created with TimeVar differentiate to
// the symbol of the same name with a "d" appended (θ -> θd -> θdd, ...), while
// symbols created with Var are constants whose time derivative is zero.
type Expr interface {
	// Simplify folds constants, flattens sums and products, collects like
	// terms and applies sin²+cos²=1. It is deterministic.
	Simplify() Expr
	// Subs replaces symbols by name. The result is simplified.
	Subs(vals map[string]Expr) Expr
	// Dt is the time derivative.
	Dt() Expr
	// Eval reduces the expression to a float64. The boolean is false if any
	// symbol remains.
	Eval() (float64, bool)
	String() string
}

const εsym = 1e-12

// Num returns a numeric literal expression.
func Num(v float64) Expr { return num{v} }

// Var returns a constant symbol (dθ/dt = 0).
func Var(name string) Expr { return sym{name: name} }

// TimeVar returns a time-dependent symbol. Its time derivative is the
// time-dependent symbol with a "d" suffix.
func TimeVar(name string) Expr { return sym{name: name, td: true} }

// AddOf returns the simplified sum of the given terms.
func AddOf(terms ...Expr) Expr { return add{terms}.Simplify() }

// MulOf returns the simplified product of the given factors.
func MulOf(factors ...Expr) Expr { return mul{factors}.Simplify() }

// PowOf returns the simplified power base^exp.
func PowOf(base, exp Expr) Expr { return pow{base, exp}.Simplify() }

// NegOf returns -e.
func NegOf(e Expr) Expr { return MulOf(Num(-1), e) }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }

// SqrtOf returns e^(1/2).
func SqrtOf(e Expr) Expr { return PowOf(e, Num(0.5)) }

// Trigonometric and inverse trigonometric expression constructors.
func SinOf(e Expr) Expr     { return fn{"sin", []Expr{e}}.Simplify() }
func CosOf(e Expr) Expr     { return fn{"cos", []Expr{e}}.Simplify() }
func TanOf(e Expr) Expr     { return fn{"tan", []Expr{e}}.Simplify() }
func AsinOf(e Expr) Expr    { return fn{"asin", []Expr{e}}.Simplify() }
func AcosOf(e Expr) Expr    { return fn{"acos", []Expr{e}}.Simplify() }
func Atan2Of(y, x Expr) Expr { return fn{"atan2", []Expr{y, x}}.Simplify() }
func LogOf(e Expr) Expr     { return fn{"log", []Expr{e}}.Simplify() }
func AbsOf(e Expr) Expr     { return fn{"abs", []Expr{e}}.Simplify() }

// ExprEqual reports whether two expressions are equal: numerically within
// tolerance when both reduce to floats, otherwise by identical simplified
// form. Symbolically unprovable equality is reported as false.
func ExprEqual(a, b Expr) bool {
	av, aok := a.Eval()
	bv, bok := b.Eval()
	if aok && bok {
		return floats.EqualWithinAbsOrRel(av, bv, εsym, εsym)
	}
	if aok != bok {
		return false
	}
	return a.Simplify().String() == b.Simplify().String()
}

/*----- numeric literal -----*/

type num struct{ v float64 }

func (n num) Simplify() Expr             { return n }
func (n num) Subs(map[string]Expr) Expr  { return n }
func (n num) Dt() Expr                   { return num{0} }
func (n num) Eval() (float64, bool)      { return n.v, true }
func (n num) String() string             { return strconv.FormatFloat(n.v, 'g', -1, 64) }

/*----- symbol -----*/

type sym struct {
	name string
	td   bool
}

func (s sym) Simplify() Expr { return s }
func (s sym) Subs(vals map[string]Expr) Expr {
	if v, found := vals[s.name]; found {
		return v.Simplify()
	}
	return s
}
func (s sym) Dt() Expr {
	if s.td {
		return sym{name: s.name + "d", td: true}
	}
	return num{0}
}
func (s sym) Eval() (float64, bool) { return 0, false }
func (s sym) String() string        { return s.name }

/*----- sum -----*/

type add struct{ terms []Expr }

// splitCoeff separates a numeric leading coefficient from a term.
func splitCoeff(e Expr) (float64, Expr) {
	switch t := e.(type) {
	case num:
		return t.v, nil
	case mul:
		if len(t.factors) > 1 {
			if c, isNum := t.factors[0].(num); isNum {
				rest := t.factors[1:]
				if len(rest) == 1 {
					return c.v, rest[0]
				}
				return c.v, mul{rest}
			}
		}
	}
	return 1, e
}

// trig2 recognizes sin(u)^2 and cos(u)^2, returning the trig name and the
// argument key.
func trig2(e Expr) (string, string, bool) {
	p, isPow := e.(pow)
	if !isPow {
		return "", "", false
	}
	if ev, ok := p.exp.Eval(); !ok || ev != 2 {
		return "", "", false
	}
	f, isFn := p.base.(fn)
	if !isFn || (f.name != "sin" && f.name != "cos") || len(f.args) != 1 {
		return "", "", false
	}
	return f.name, f.args[0].String(), true
}

type trigSplit struct {
	name, arg string
	rest      Expr
}

// trigSplits lists every way of factoring a term as rest·sin²(u) or
// rest·cos²(u), one entry per squared trig factor.
func trigSplits(e Expr) []trigSplit {
	factors := []Expr{e}
	if m, isMul := e.(mul); isMul {
		factors = m.factors
	}
	var out []trigSplit
	for i, f := range factors {
		n, a, isTrig := trig2(f)
		if !isTrig {
			continue
		}
		others := make([]Expr, 0, len(factors)-1)
		others = append(others, factors[:i]...)
		others = append(others, factors[i+1:]...)
		var rest Expr
		switch len(others) {
		case 0:
			rest = num{1}
		case 1:
			rest = others[0]
		default:
			rest = mul{others}
		}
		out = append(out, trigSplit{n, a, rest})
	}
	return out
}

func (a add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, isAdd := s.(add); isAdd {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	constant := 0.0
	coeffs := map[string]float64{}
	exprs := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		c, rest := splitCoeff(t)
		if rest == nil {
			constant += c
			continue
		}
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			exprs[key] = rest
		}
		coeffs[key] += c
	}
	// c·X·sin²(u) + c·X·cos²(u) = c·X whenever coefficients and the residual
	// factors match.
	combined := false
	for _, key := range order {
		if coeffs[key] == 0 {
			continue
		}
		matched := false
		for _, sp := range trigSplits(exprs[key]) {
			if sp.name != "sin" {
				continue
			}
			for _, other := range order {
				if other == key || coeffs[other] == 0 {
					continue
				}
				if !floats.EqualWithinAbs(coeffs[key], coeffs[other], εsym) {
					continue
				}
				for _, osp := range trigSplits(exprs[other]) {
					if osp.name != "cos" || osp.arg != sp.arg || osp.rest.String() != sp.rest.String() {
						continue
					}
					c := coeffs[key]
					coeffs[key], coeffs[other] = 0, 0
					combined = true
					matched = true
					if rv, isConst := sp.rest.Eval(); isConst {
						constant += c * rv
						break
					}
					restKey := sp.rest.String()
					if _, seen := coeffs[restKey]; !seen {
						order = append(order, restKey)
						exprs[restKey] = sp.rest
					}
					coeffs[restKey] += c
					break
				}
				if matched {
					break
				}
			}
			if matched {
				break
			}
		}
	}
	sort.Strings(order)
	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		if floats.EqualWithinAbs(c, 0, εsym) {
			continue
		}
		if c == 1 {
			out = append(out, exprs[key])
		} else {
			out = append(out, mul{[]Expr{num{c}, exprs[key]}})
		}
	}
	if !floats.EqualWithinAbs(constant, 0, εsym) || len(out) == 0 {
		out = append(out, num{constant})
	}
	if len(out) == 1 {
		return out[0]
	}
	if combined {
		// A combination may expose further sin²/cos² pairs.
		return add{out}.Simplify()
	}
	return add{out}
}

func (a add) Subs(vals map[string]Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Subs(vals)
	}
	return AddOf(out...)
}

func (a add) Dt() Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Dt()
	}
	return AddOf(out...)
}

func (a add) Eval() (float64, bool) {
	acc := 0.0
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return 0, false
		}
		acc += v
	}
	return acc, true
}

func (a add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		c, rest := splitCoeff(t)
		if i == 0 {
			b.WriteString(t.String())
			continue
		}
		if c < 0 && rest != nil {
			b.WriteString(" - ")
			if c == -1 {
				b.WriteString(rest.String())
			} else {
				b.WriteString(mul{[]Expr{num{-c}, rest}}.String())
			}
		} else if rest == nil && c < 0 {
			b.WriteString(" - ")
			b.WriteString(num{-c}.String())
		} else {
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

/*----- product -----*/

type mul struct{ factors []Expr }

// baseExp views a factor as base^exp.
func baseExp(e Expr) (Expr, Expr) {
	if p, isPow := e.(pow); isPow {
		return p.base, p.exp
	}
	return e, num{1}
}

func (m mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, isMul := s.(mul); isMul {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	// Distribute over sums so that like terms can cancel.
	for i, f := range flat {
		inner, isAdd := f.(add)
		if !isAdd {
			continue
		}
		rest := make([]Expr, 0, len(flat)-1)
		rest = append(rest, flat[:i]...)
		rest = append(rest, flat[i+1:]...)
		terms := make([]Expr, len(inner.terms))
		for j, t := range inner.terms {
			terms[j] = MulOf(append([]Expr{t}, rest...)...)
		}
		return AddOf(terms...)
	}
	coeff := 1.0
	bases := map[string]Expr{}
	exps := map[string][]Expr{}
	order := []string{}
	for _, f := range flat {
		if v, isNum := f.(num); isNum {
			coeff *= v.v
			continue
		}
		b, e := baseExp(f)
		key := b.String()
		if _, seen := bases[key]; !seen {
			order = append(order, key)
			bases[key] = b
		}
		exps[key] = append(exps[key], e)
	}
	if coeff == 0 {
		return num{0}
	}
	sort.Strings(order)
	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		e := AddOf(exps[key]...)
		if ev, ok := e.Eval(); ok {
			if floats.EqualWithinAbs(ev, 0, εsym) {
				continue
			}
			if ev == 1 {
				out = append(out, bases[key])
				continue
			}
		}
		out = append(out, pow{bases[key], e}.Simplify())
	}
	if len(out) == 0 {
		return num{coeff}
	}
	if coeff != 1 {
		out = append([]Expr{num{coeff}}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return mul{out}
}

func (m mul) Subs(vals map[string]Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Subs(vals)
	}
	return MulOf(out...)
}

// Dt applies the product rule.
func (m mul) Dt() Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		fs := make([]Expr, len(m.factors))
		copy(fs, m.factors)
		fs[i] = m.factors[i].Dt()
		terms = append(terms, MulOf(fs...))
	}
	return AddOf(terms...)
}

func (m mul) Eval() (float64, bool) {
	acc := 1.0
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return acc, true
}

func (m mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else if v, isNum := f.(num); isNum && v.v < 0 {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

/*----- power -----*/

type pow struct{ base, exp Expr }

func (p pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()
	if ev, ok := exp.Eval(); ok {
		if ev == 0 {
			return num{1}
		}
		if ev == 1 {
			return base
		}
		if bv, bok := base.Eval(); bok {
			return num{math.Pow(bv, ev)}
		}
		if _, isAdd := base.(add); isAdd && ev == math.Trunc(ev) && ev >= 2 && ev <= 4 {
			fs := make([]Expr, int(ev))
			for i := range fs {
				fs[i] = base
			}
			return MulOf(fs...)
		}
	}
	if inner, isPow := base.(pow); isPow {
		return pow{inner.base, MulOf(inner.exp, exp)}.Simplify()
	}
	return pow{base, exp}
}

func (p pow) Subs(vals map[string]Expr) Expr {
	return PowOf(p.base.Subs(vals), p.exp.Subs(vals))
}

// Dt uses d(b^e) = b^e * (e'·log b + e·b'/b); for constant exponents this
// reduces to the usual e·b^(e-1)·b'.
func (p pow) Dt() Expr {
	if ev, ok := p.exp.Eval(); ok {
		return MulOf(num{ev}, PowOf(p.base, num{ev - 1}), p.base.Dt())
	}
	return MulOf(pow{p.base, p.exp},
		AddOf(MulOf(p.exp.Dt(), LogOf(p.base)),
			MulOf(p.exp, p.base.Dt(), PowOf(p.base, num{-1}))))
}

func (p pow) Eval() (float64, bool) {
	b, bok := p.base.Eval()
	e, eok := p.exp.Eval()
	if !bok || !eok {
		return 0, false
	}
	return math.Pow(b, e), true
}

func (p pow) String() string {
	bs := p.base.String()
	switch p.base.(type) {
	case add, mul, pow:
		bs = "(" + bs + ")"
	default:
		if v, isNum := p.base.(num); isNum && v.v < 0 {
			bs = "(" + bs + ")"
		}
	}
	es := p.exp.String()
	switch p.exp.(type) {
	case add, mul, pow:
		es = "(" + es + ")"
	}
	return bs + "^" + es
}

/*----- named functions -----*/

type fn struct {
	name string
	args []Expr
}

func (f fn) Simplify() Expr {
	args := make([]Expr, len(f.args))
	vals := make([]float64, len(f.args))
	allNum := true
	for i, a := range f.args {
		args[i] = a.Simplify()
		v, ok := args[i].Eval()
		vals[i] = v
		allNum = allNum && ok
	}
	if allNum {
		switch f.name {
		case "sin":
			return num{math.Sin(vals[0])}
		case "cos":
			return num{math.Cos(vals[0])}
		case "tan":
			return num{math.Tan(vals[0])}
		case "asin":
			return num{math.Asin(vals[0])}
		case "acos":
			return num{math.Acos(vals[0])}
		case "atan2":
			return num{math.Atan2(vals[0], vals[1])}
		case "log":
			return num{math.Log(vals[0])}
		case "abs":
			return num{math.Abs(vals[0])}
		}
	}
	return fn{f.name, args}
}

func (f fn) Subs(vals map[string]Expr) Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Subs(vals)
	}
	return fn{f.name, args}.Simplify()
}

func (f fn) Dt() Expr {
	u := f.args[0]
	du := u.Dt()
	switch f.name {
	case "sin":
		return MulOf(CosOf(u), du)
	case "cos":
		return MulOf(num{-1}, SinOf(u), du)
	case "tan":
		return MulOf(AddOf(num{1}, PowOf(TanOf(u), num{2})), du)
	case "asin":
		return MulOf(du, PowOf(SubOf(num{1}, PowOf(u, num{2})), num{-0.5}))
	case "acos":
		return MulOf(num{-1}, du, PowOf(SubOf(num{1}, PowOf(u, num{2})), num{-0.5}))
	case "atan2":
		y, x := f.args[0], f.args[1]
		den := AddOf(PowOf(x, num{2}), PowOf(y, num{2}))
		return MulOf(SubOf(MulOf(x, y.Dt()), MulOf(y, x.Dt())), PowOf(den, num{-1}))
	case "log":
		return MulOf(du, PowOf(u, num{-1}))
	case "abs":
		panic("anakin: abs is not differentiable")
	}
	panic("anakin: unknown function " + f.name)
}

func (f fn) Eval() (float64, bool) {
	s := f.Simplify()
	if v, isNum := s.(num); isNum {
		return v.v, true
	}
	return 0, false
}

func (f fn) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ",") + ")"
}

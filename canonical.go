package symkernel

import (
	"math"

	"github.com/njchilds90/symkernel/number"
)

var (
	symTrue  = S("True")
	symFalse = S("False")
)

// Canonicalize returns the canonical form of x: sugar heads rewritten onto
// Add, Multiply and Power, nested sums and products flattened, literals
// folded, identities absorbed, operands ordered and signs normalized.
// Opaque applications are returned untouched.
func (e *Engine) Canonicalize(x Expr) Expr {
	f, ok := x.(*Fn)
	if !ok || f.head.IsOpaque() {
		return x
	}
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = e.Canonicalize(a)
	}
	return e.build(f.head, f.name, args)
}

// build normalizes one application whose operands are already canonical.
// Applications of the wrong arity are kept as written.
func (e *Engine) build(h Head, name string, args []Expr) Expr {
	switch h {
	case HeadAdd:
		return e.add(args...)
	case HeadMultiply:
		return e.mul(args...)
	case HeadPower:
		if len(args) == 2 {
			return e.pow(args[0], args[1])
		}
	case HeadSubtract:
		switch len(args) {
		case 1:
			return e.neg(args[0])
		case 2:
			return e.add(args[0], e.neg(args[1]))
		}
	case HeadNegate:
		if len(args) == 1 {
			return e.neg(args[0])
		}
	case HeadDivide, HeadRational:
		if len(args) == 2 {
			return e.div(args[0], args[1])
		}
	case HeadSqrt:
		if len(args) == 1 {
			return e.pow(args[0], F(1, 2))
		}
	case HeadRoot:
		if len(args) == 2 {
			return e.pow(args[0], e.pow(args[1], N(-1)))
		}
	case HeadSquare:
		if len(args) == 1 {
			return e.pow(args[0], N(2))
		}
	case HeadExp:
		if len(args) == 1 {
			return e.pow(E(), args[0])
		}
	case HeadLn:
		if len(args) == 1 {
			return e.ln(args[0])
		}
	case HeadLog:
		switch len(args) {
		case 1:
			return e.logb(args[0], N(10))
		case 2:
			return e.logb(args[0], args[1])
		}
	case HeadAbs:
		if len(args) == 1 {
			return e.abs(args[0])
		}
	default:
		switch {
		case h.isTrig() && len(args) == 1:
			return e.trig(h, args[0])
		case h.IsRelational() && len(args) == 2:
			return e.relational(h, args[0], args[1])
		}
	}
	return &Fn{head: h, name: name, args: args}
}

func flatten(h Head, args []Expr) []Expr {
	out := make([]Expr, 0, len(args))
	for _, a := range args {
		if f, ok := a.(*Fn); ok && f.head == h {
			out = append(out, flatten(h, f.args)...)
			continue
		}
		out = append(out, a)
	}
	return out
}

type valueOp func(a, b number.Value) (number.Value, bool)

// mergeAll combines literals pairwise until no pair has a closed form, so
// the result does not depend on operand order.
func mergeAll(vals []number.Value, op valueOp) []number.Value {
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(vals) && !changed; i++ {
			for j := i + 1; j < len(vals); j++ {
				if r, ok := op(vals[i], vals[j]); ok {
					vals[i] = r
					vals = append(vals[:j], vals[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
	return vals
}

func splitLiterals(args []Expr) (lits []number.Value, rest []Expr, nan bool) {
	for _, a := range args {
		if n, ok := a.(*Num); ok {
			if n.IsNaN() {
				return nil, nil, true
			}
			lits = append(lits, n.val)
			continue
		}
		rest = append(rest, a)
	}
	return lits, rest, false
}

func sortedLiterals(vals []number.Value) []Expr {
	out := make([]Expr, len(vals))
	for i, v := range vals {
		out[i] = NumOf(v)
	}
	sortExprs(out)
	return out
}

// add builds a canonical sum. Symbolic terms come first in canonical order,
// literal terms that have no common closed form follow.
func (e *Engine) add(args ...Expr) Expr {
	lits, terms, nan := splitLiterals(flatten(HeadAdd, args))
	if nan {
		return NaN()
	}
	lits = mergeAll(lits, e.num.Add)
	for _, v := range lits {
		if v.IsNaN() {
			return NaN()
		}
	}
	kept := lits[:0]
	for _, v := range lits {
		if !v.IsZero() {
			kept = append(kept, v)
		}
	}
	sortExprs(terms)
	out := append(terms, sortedLiterals(kept)...)
	switch len(out) {
	case 0:
		if len(lits) > 0 {
			return NumOf(lits[0])
		}
		return N(0)
	case 1:
		return out[0]
	}
	return apply(HeadAdd, out...)
}

// mul builds a canonical product: literal factors first, then the rest in
// canonical order. A zero literal absorbs every symbolic factor.
func (e *Engine) mul(args ...Expr) Expr {
	lits, factors, nan := splitLiterals(flatten(HeadMultiply, args))
	if nan {
		return NaN()
	}
	lits = mergeAll(lits, e.num.Mul)
	kept := lits[:0]
	for _, v := range lits {
		switch {
		case v.IsNaN():
			return NaN()
		case v.IsZero():
			return NumOf(v)
		case v.IsOne():
			continue
		}
		kept = append(kept, v)
	}
	sortExprs(factors)
	out := append(sortedLiterals(kept), factors...)
	switch len(out) {
	case 0:
		return N(1)
	case 1:
		return out[0]
	}
	return apply(HeadMultiply, out...)
}

func (e *Engine) neg(x Expr) Expr    { return e.mul(N(-1), x) }
func (e *Engine) div(a, b Expr) Expr { return e.mul(a, e.pow(b, N(-1))) }

// pow builds a canonical power. A negative coefficient in a product base is
// pulled out for exponents that keep negative bases real: (-x)^3 is -x^3,
// (-x)^4 is x^4.
func (e *Engine) pow(base, exp Expr) Expr {
	bn, bLit := base.(*Num)
	xn, xLit := exp.(*Num)
	if (bLit && bn.IsNaN()) || (xLit && xn.IsNaN()) {
		return NaN()
	}
	if bLit && xLit {
		if v, ok := e.num.Pow(bn.val, xn.val); ok {
			return NumOf(v)
		}
		return apply(HeadPower, base, exp)
	}
	if xLit {
		switch {
		case xn.val.IsZero():
			return N(1)
		case xn.val.IsOne():
			return base
		}
	}
	if bLit {
		switch {
		case bn.val.IsInteger() && bn.val.IsOne():
			return N(1)
		case bn.val.IsZero():
			if v, ok := e.approx(exp); ok {
				if s, ok := e.num.Sign(v); ok && s != 0 {
					if s > 0 {
						return N(0)
					}
					return NaN()
				}
			}
		}
	}
	if m, ok := base.(*Fn); ok && m.head == HeadMultiply && xLit {
		if c, ok := m.args[0].(*Num); ok && e.num.IsNegative(c.val) {
			if even, ok := number.Parity(xn.val); ok {
				nc, _ := e.num.Neg(c.val)
				rest := append([]Expr{NumOf(nc)}, m.args[1:]...)
				p := e.pow(e.mul(rest...), exp)
				if even {
					return p
				}
				return e.neg(p)
			}
		}
	}
	return apply(HeadPower, base, exp)
}

func (e *Engine) ln(x Expr) Expr {
	if n, ok := x.(*Num); ok {
		if v, ok := e.num.Ln(n.val); ok {
			return NumOf(v)
		}
	}
	return apply(HeadLn, x)
}

// logb builds log_base(x). The natural base folds to Ln.
func (e *Engine) logb(x, base Expr) Expr {
	b, bLit := base.(*Num)
	if bLit {
		if c, ok := b.val.Constant(); ok && c == number.ConstE {
			return e.ln(x)
		}
		if n, ok := x.(*Num); ok {
			if v, ok := e.num.Log(n.val, b.val); ok {
				return NumOf(v)
			}
		}
	}
	return apply(HeadLog, x, base)
}

// logLike rebuilds a logarithm of the same kind as l with a new argument.
func (e *Engine) logLike(l *Fn, x Expr) Expr {
	if l.head == HeadLog {
		return e.logb(x, l.args[1])
	}
	return e.ln(x)
}

func (e *Engine) abs(x Expr) Expr {
	if n, ok := x.(*Num); ok {
		return NumOf(e.num.Abs(n.val))
	}
	return apply(HeadAbs, x)
}

func (e *Engine) trig(h Head, x Expr) Expr {
	if n, ok := x.(*Num); ok {
		if v, ok := e.trigLiteral(h, n.val); ok {
			return v
		}
	}
	return apply(h, x)
}

var floatFuncs = map[Head]func(float64) float64{
	HeadSin:    math.Sin,
	HeadCos:    math.Cos,
	HeadTan:    math.Tan,
	HeadCot:    func(x float64) float64 { return 1 / math.Tan(x) },
	HeadSec:    func(x float64) float64 { return 1 / math.Cos(x) },
	HeadCsc:    func(x float64) float64 { return 1 / math.Sin(x) },
	HeadArcsin: math.Asin,
	HeadArccos: math.Acos,
	HeadArctan: math.Atan,
	HeadSinh:   math.Sinh,
	HeadCosh:   math.Cosh,
	HeadTanh:   math.Tanh,
	HeadCoth:   func(x float64) float64 { return 1 / math.Tanh(x) },
	HeadSech:   func(x float64) float64 { return 1 / math.Cosh(x) },
	HeadCsch:   func(x float64) float64 { return 1 / math.Sinh(x) },
}

func halfPi(sign int64) Expr { return apply(HeadMultiply, F(sign, 2), Pi()) }

// trigLiteral evaluates a trigonometric or hyperbolic function at an
// infinity, at exact zero, or at a decimal.
func (e *Engine) trigLiteral(h Head, v number.Value) (Expr, bool) {
	if v.IsNaN() {
		return NaN(), true
	}
	if v.IsInfinity() {
		pos := !e.num.IsNegative(v)
		sign := int64(1)
		if !pos {
			sign = -1
		}
		switch h {
		case HeadArctan:
			return halfPi(sign), true
		case HeadSinh:
			return NumOf(v), true
		case HeadCosh:
			return Inf(), true
		case HeadTanh, HeadCoth:
			return N(sign), true
		case HeadSech, HeadCsch:
			return N(0), true
		}
		return NaN(), true
	}
	if v.IsZero() && v.IsExact() {
		switch h {
		case HeadSin, HeadTan, HeadArcsin, HeadArctan, HeadSinh, HeadTanh:
			return N(0), true
		case HeadCos, HeadSec, HeadCosh, HeadSech:
			return N(1), true
		case HeadArccos:
			return halfPi(1), true
		}
		return nil, false
	}
	if f, ok := floatFuncs[h]; ok && v.IsDecimal() {
		if r, ok := e.num.EvalFloat(f, v); ok {
			return NumOf(r), true
		}
	}
	return nil, false
}

func (e *Engine) relational(h Head, a, b Expr) Expr {
	an, aLit := a.(*Num)
	bn, bLit := b.(*Num)
	if aLit && bLit {
		if r, ok := e.compareRelation(h, an.val, bn.val); ok {
			return r
		}
	}
	return apply(h, a, b)
}

// compareRelation decides h(a, b) for two literals. NaN is unordered and
// unequal to everything.
func (e *Engine) compareRelation(h Head, a, b number.Value) (Expr, bool) {
	c, ok := e.num.Compare(a, b)
	if !ok {
		if a.IsNaN() || b.IsNaN() {
			return boolSym(h == HeadNotEqual), true
		}
		return nil, false
	}
	var r bool
	switch h {
	case HeadLess:
		r = c < 0
	case HeadLessEqual:
		r = c <= 0
	case HeadGreater:
		r = c > 0
	case HeadGreaterEqual:
		r = c >= 0
	case HeadEqual:
		r = c == 0
	case HeadNotEqual:
		r = c != 0
	default:
		return nil, false
	}
	return boolSym(r), true
}

func boolSym(b bool) Expr {
	if b {
		return symTrue
	}
	return symFalse
}

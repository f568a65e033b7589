package symkernel

import "github.com/njchilds90/symkernel/number"

func absNested(e *Engine, x *Fn) (Expr, bool) {
	if inner, ok := asFn(x.args[0], HeadAbs); ok {
		return inner, true
	}
	return nil, false
}

// absNumber resolves the absolute value of a number-only expression from the
// sign of its approximation: |-pi| -> pi, |1 - sqrt(2)| -> sqrt(2) - 1.
func absNumber(e *Engine, x *Fn) (Expr, bool) {
	y := x.args[0]
	if !numberOnly(y) {
		return nil, false
	}
	v, ok := e.approx(y)
	if !ok {
		return nil, false
	}
	s, ok := e.num.Sign(v)
	if !ok || s == 0 {
		return nil, false
	}
	if s > 0 {
		return y, true
	}
	return e.neg(y), true
}

// absProduct splits |x*y| into |x|*|y|.
func absProduct(e *Engine, x *Fn) (Expr, bool) {
	m, ok := asFn(x.args[0], HeadMultiply)
	if !ok {
		return nil, false
	}
	factors := make([]Expr, len(m.args))
	for i, f := range m.args {
		factors[i] = e.abs(f)
	}
	return e.mul(factors...), true
}

// absPower moves the absolute value onto the base, |x^3| -> |x|^3. A power
// that is only real for non-negative bases is already non-negative.
func absPower(e *Engine, x *Fn) (Expr, bool) {
	b, n, ok := powParts(x.args[0])
	if !ok {
		return nil, false
	}
	v, ok := literal(n)
	if !ok {
		if e.positive(b) {
			return x.args[0], true
		}
		return nil, false
	}
	if !v.IsFinite() {
		return nil, false
	}
	if _, ok := number.Parity(v); ok {
		return e.pow(e.abs(b), n), true
	}
	return x.args[0], true
}

// absOddFunction moves the absolute value inside an odd function.
func absOddFunction(e *Engine, x *Fn) (Expr, bool) {
	f, ok := x.args[0].(*Fn)
	if !ok || !f.head.IsOdd() || len(f.args) != 1 {
		return nil, false
	}
	return e.trig(f.head, e.abs(f.args[0])), true
}

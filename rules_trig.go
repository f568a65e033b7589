package symkernel

// evenFunctionAbs drops an absolute value under an even function:
// cos(|x|) -> cos(x).
func evenFunctionAbs(e *Engine, x *Fn) (Expr, bool) {
	if !x.head.IsEven() {
		return nil, false
	}
	a, ok := asFn(x.args[0], HeadAbs)
	if !ok || len(a.args) != 1 {
		return nil, false
	}
	return e.trig(x.head, a.args[0]), true
}

// trigParity pulls a negative sign out of the argument of an even or odd
// function: sin(-x) -> -sin(x), cosh(-2x) -> cosh(2x).
func trigParity(e *Engine, x *Fn) (Expr, bool) {
	if !x.head.IsEven() && !x.head.IsOdd() {
		return nil, false
	}
	arg, ok := e.negated(x.args[0])
	if !ok {
		return nil, false
	}
	out := e.trig(x.head, arg)
	if x.head.IsOdd() {
		return e.neg(out), true
	}
	return out, true
}

// negated returns -x when x carries a negative leading coefficient.
func (e *Engine) negated(x Expr) (Expr, bool) {
	switch v := x.(type) {
	case *Num:
		if v.val.IsFinite() && e.num.IsNegative(v.val) {
			return e.neg(v), true
		}
	case *Fn:
		if v.head != HeadMultiply {
			return nil, false
		}
		if c, ok := v.args[0].(*Num); ok && c.val.IsFinite() && e.num.IsNegative(c.val) {
			return e.neg(v), true
		}
	}
	return nil, false
}

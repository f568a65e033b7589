package symkernel

import "github.com/njchilds90/symkernel/number"

// domain describes where x^a is defined as a function of a real x, given
// only the exponent a.
type domain struct {
	zero bool // x = 0 is allowed
	neg  bool // x < 0 is allowed
}

var fullDomain = domain{zero: true, neg: true}

// expDomain classifies an exponent. Exponents that are neither literals nor
// number-only expressions cannot be classified.
//
//	a = 0                         everywhere (x^0 is 1)
//	a > 0                         x = 0 allowed
//	a integer or p/q with q odd   x < 0 allowed
func (e *Engine) expDomain(a Expr) (domain, bool) {
	if n, ok := a.(*Num); ok {
		v := n.val
		if !v.IsFinite() {
			return domain{}, false
		}
		if v.IsZero() {
			return fullDomain, true
		}
		_, isReal := number.Parity(v)
		return domain{zero: e.num.IsPositive(v), neg: isReal}, true
	}
	v, ok := e.approx(a)
	if !ok || !v.IsFinite() || v.IsZero() {
		return domain{}, false
	}
	return domain{zero: e.num.IsPositive(v)}, true
}

func numberOnly(x Expr) bool {
	switch v := x.(type) {
	case *Num:
		return true
	case *Fn:
		if v.head.IsOpaque() || v.head == HeadUnknown {
			return false
		}
		for _, a := range v.args {
			if !numberOnly(a) {
				return false
			}
		}
		return true
	}
	return false
}

// approx evaluates a number-only expression to a decimal.
func (e *Engine) approx(x Expr) (number.Value, bool) {
	switch v := x.(type) {
	case *Num:
		return e.num.Approximate(v.val), true
	case *Fn:
		if !numberOnly(v) {
			return number.Value{}, false
		}
		args := make([]number.Value, len(v.args))
		for i, a := range v.args {
			r, ok := e.approx(a)
			if !ok {
				return number.Value{}, false
			}
			args[i] = r
		}
		switch {
		case v.head == HeadAdd:
			return e.num.Sum(args...)
		case v.head == HeadMultiply:
			return e.num.Product(args...)
		case v.head == HeadPower && len(args) == 2:
			return e.num.Pow(args[0], args[1])
		case v.head == HeadAbs && len(args) == 1:
			return e.num.Abs(args[0]), true
		case v.head == HeadLn && len(args) == 1:
			return e.num.Ln(args[0])
		case v.head == HeadLog && len(args) == 2:
			return e.num.Log(args[0], args[1])
		case v.head.isTrig() && len(args) == 1:
			if f, ok := floatFuncs[v.head]; ok {
				return e.num.EvalFloat(f, args[0])
			}
		}
	}
	return number.Value{}, false
}

// positive reports whether x is known to be a positive real: a positive
// literal or a number-only expression that evaluates to one.
func (e *Engine) positive(x Expr) bool {
	if n, ok := x.(*Num); ok {
		return n.val.IsFinite() && e.num.IsPositive(n.val)
	}
	v, ok := e.approx(x)
	return ok && v.IsFinite() && e.num.IsPositive(v)
}

// evenNumerator reports whether x^v equals |x|^v for negative x: v is an
// even integer or p/q with p even and q odd.
func evenNumerator(v number.Value) bool {
	even, ok := number.Parity(v)
	return ok && even
}

func literal(x Expr) (number.Value, bool) {
	if n, ok := x.(*Num); ok {
		return n.val, true
	}
	return number.Value{}, false
}

func asFn(x Expr, h Head) (*Fn, bool) {
	f, ok := x.(*Fn)
	if !ok || f.head != h {
		return nil, false
	}
	return f, true
}

func factorsOf(x Expr) []Expr {
	if f, ok := asFn(x, HeadMultiply); ok {
		return f.args
	}
	return []Expr{x}
}

func termsOf(x Expr) []Expr {
	if f, ok := asFn(x, HeadAdd); ok {
		return f.args
	}
	return []Expr{x}
}

package symkernel

import "github.com/njchilds90/symkernel/number"

func powParts(x Expr) (base, exp Expr, ok bool) {
	p, ok := asFn(x, HeadPower)
	if !ok || len(p.args) != 2 {
		return nil, nil, false
	}
	return p.args[0], p.args[1], true
}

// expOfLog cancels an exponential against a logarithm of the same base:
//
//	e^ln(y)          -> y
//	c^log_c(y)       -> y
//	e^(n ln(y))      -> y^n
//	e^(ln(y) + k)    -> y e^k
func expOfLog(e *Engine, x *Fn) (Expr, bool) {
	b, a := x.args[0], x.args[1]
	if y, ok := matchLog(b, a); ok {
		return y, true
	}
	if m, ok := asFn(a, HeadMultiply); ok && len(m.args) == 2 {
		if n, ok := m.args[0].(*Num); ok {
			if y, ok := matchLog(b, m.args[1]); ok {
				return e.pow(y, n), true
			}
		}
	}
	if s, ok := asFn(a, HeadAdd); ok {
		for i, t := range s.args {
			y, ok := matchLog(b, t)
			if !ok {
				continue
			}
			rest := append(append([]Expr(nil), s.args[:i]...), s.args[i+1:]...)
			return e.mul(y, e.pow(b, e.add(rest...))), true
		}
	}
	return nil, false
}

// absEvenPower drops an absolute value under an even power: |x|^4 -> x^4.
func absEvenPower(e *Engine, x *Fn) (Expr, bool) {
	a, ok := asFn(x.args[0], HeadAbs)
	if !ok || len(a.args) != 1 {
		return nil, false
	}
	n, ok := literal(x.args[1])
	if !ok || !evenNumerator(n) {
		return nil, false
	}
	return e.pow(a.args[0], x.args[1]), true
}

// doublePower flattens (x^a)^b.
func doublePower(e *Engine, x *Fn) (Expr, bool) {
	base, a, ok := powParts(x.args[0])
	if !ok {
		return nil, false
	}
	return e.combinePowers(base, a, x.args[1])
}

// combinePowers rewrites (x^a)^b as a single power of x. A positive x always
// combines. Otherwise a and b must be literals and the result must be defined
// for exactly the x where (x^a)^b is; an even numerator in a turns x into |x|
// when the combined exponent no longer has one:
//
//	sqrt(x^6)     -> |x|^3
//	sqrt(x^4)     -> x^2
//	(x^3)^(1/3)   -> x
//	(x^-2)^-2     stays, since x = 0 would become defined
func (e *Engine) combinePowers(x, a, b Expr) (Expr, bool) {
	if e.positive(x) {
		return e.pow(x, e.mul(a, b)), true
	}
	av, ok1 := literal(a)
	bv, ok2 := literal(b)
	if !ok1 || !ok2 {
		return nil, false
	}
	cv, ok := e.num.Mul(av, bv)
	if !ok {
		return nil, false
	}
	da, ok1 := e.expDomain(a)
	db, ok2 := e.expDomain(b)
	c := NumOf(cv)
	dc, ok3 := e.expDomain(c)
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	outer := domain{
		zero: da.zero && e.num.IsPositive(bv),
		neg:  da.neg && (db.neg || evenNumerator(av)),
	}
	if dc.zero != outer.zero {
		return nil, false
	}
	if evenNumerator(av) {
		if evenNumerator(cv) {
			return e.pow(x, c), true
		}
		return e.pow(e.abs(x), c), true
	}
	if dc != outer {
		return nil, false
	}
	return e.pow(x, c), true
}

// powerOfProduct distributes an integer or odd-root exponent over a product
// when every factor takes it without changing the domain: (2x)^3 -> 8x^3,
// (3/x)^-1 stays.
func powerOfProduct(e *Engine, x *Fn) (Expr, bool) {
	m, ok := asFn(x.args[0], HeadMultiply)
	if !ok {
		return nil, false
	}
	n, ok := x.args[1].(*Num)
	if !ok {
		return nil, false
	}
	if _, ok := number.Parity(n.val); !ok {
		return nil, false
	}
	factors := make([]Expr, len(m.args))
	for i, f := range m.args {
		switch v := f.(type) {
		case *Num, *Sym, *Str:
			factors[i] = e.pow(f, n)
		case *Fn:
			base, a, isPow := powParts(v)
			if !isPow {
				factors[i] = e.pow(f, n)
				continue
			}
			p, ok := e.combinePowers(base, a, n)
			if !ok {
				return nil, false
			}
			factors[i] = p
		}
	}
	return e.mul(factors...), true
}

package number

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// The arithmetic methods return (result, true) when the operation has a
// closed form in the tower and (zero, false) when it does not, e.g. the sum of
// a radical and a rational. Domain errors are not failures: they yield
// (NaN, true).

// Add returns a + b.
func (c *Context) Add(a, b Value) (Value, bool) {
	if a.IsNaN() || b.IsNaN() {
		return NaN(), true
	}
	if a.kind == KindSpecial || b.kind == KindSpecial {
		return addSpecial(a, b), true
	}
	if a.kind == KindDecimal || b.kind == KindDecimal {
		return c.decimalOp(a, b, (*apd.Context).Add)
	}
	if a.IsRational() && b.IsRational() {
		return c.exact(new(big.Rat).Add(a.ratVal(), b.ratVal())), true
	}
	if a.IsZero() {
		return b, true
	}
	if b.IsZero() {
		return a, true
	}
	if a.kind == KindRadical && b.kind == KindRadical && a.index == b.index && a.radicand.Cmp(b.radicand) == 0 {
		return radical(new(big.Rat).Add(a.rat, b.rat), a.radicand, a.index), true
	}
	return Value{}, false
}

func addSpecial(a, b Value) Value {
	switch {
	case a.kind == KindSpecial && b.kind == KindSpecial:
		if a.s == b.s {
			return a
		}
		return NaN()
	case a.kind == KindSpecial:
		return a
	}
	return b
}

// Sub returns a - b.
func (c *Context) Sub(a, b Value) (Value, bool) {
	nb, ok := c.Neg(b)
	if !ok {
		return Value{}, false
	}
	return c.Add(a, nb)
}

// Neg returns -a. Constants have no negated form in the tower.
func (c *Context) Neg(a Value) (Value, bool) {
	switch a.kind {
	case KindInteger, KindRational:
		return Rat(new(big.Rat).Neg(a.ratVal())), true
	case KindRadical:
		return radical(new(big.Rat).Neg(a.rat), a.radicand, a.index), true
	case KindDecimal:
		d := new(apd.Decimal).Neg(a.dec)
		return decimalValue(d), true
	case KindSpecial:
		switch a.s {
		case PositiveInfinity:
			return NegInfinity(), true
		case NegativeInfinity:
			return Infinity(), true
		}
		return a, true
	}
	return Value{}, false
}

// Abs returns |a|. It is total.
func (c *Context) Abs(a Value) Value {
	switch a.kind {
	case KindInteger, KindRational:
		return Rat(new(big.Rat).Abs(a.ratVal()))
	case KindRadical:
		return radical(new(big.Rat).Abs(a.rat), a.radicand, a.index)
	case KindDecimal:
		return decimalValue(new(apd.Decimal).Abs(a.dec))
	case KindSpecial:
		if a.s == NegativeInfinity {
			return Infinity()
		}
	}
	return a
}

// Mul returns a * b.
func (c *Context) Mul(a, b Value) (Value, bool) {
	if a.IsNaN() || b.IsNaN() {
		return NaN(), true
	}
	if a.kind == KindSpecial || b.kind == KindSpecial {
		return c.mulSpecial(a, b)
	}
	if a.kind == KindDecimal || b.kind == KindDecimal {
		return c.decimalOp(a, b, (*apd.Context).Mul)
	}
	if a.IsRational() && b.IsRational() {
		return c.exact(new(big.Rat).Mul(a.ratVal(), b.ratVal())), true
	}
	if a.IsZero() || b.IsZero() {
		return Int(0), true
	}
	if a.IsOne() {
		return b, true
	}
	if b.IsOne() {
		return a, true
	}
	if a.kind == KindRadical && b.IsRational() {
		return radical(new(big.Rat).Mul(a.rat, b.ratVal()), a.radicand, a.index), true
	}
	if b.kind == KindRadical && a.IsRational() {
		return radical(new(big.Rat).Mul(b.rat, a.ratVal()), b.radicand, b.index), true
	}
	if a.kind == KindRadical && b.kind == KindRadical && a.index == b.index {
		prod := new(big.Int).Mul(a.radicand, b.radicand)
		out, in := extractRoot(prod, a.index)
		coeff := new(big.Rat).Mul(a.rat, b.rat)
		coeff.Mul(coeff, new(big.Rat).SetInt(out))
		return radical(coeff, in, a.index), true
	}
	return Value{}, false
}

func (c *Context) mulSpecial(a, b Value) (Value, bool) {
	if a.kind == KindSpecial && b.kind == KindSpecial {
		if (a.s == PositiveInfinity) == (b.s == PositiveInfinity) {
			return Infinity(), true
		}
		return NegInfinity(), true
	}
	inf, fin := a, b
	if b.kind == KindSpecial {
		inf, fin = b, a
	}
	if fin.IsZero() {
		return NaN(), true
	}
	sign, ok := c.Sign(fin)
	if !ok {
		return Value{}, false
	}
	if sign < 0 {
		return c.Neg(inf)
	}
	return inf, true
}

// Reciprocal returns 1/a.
func (c *Context) Reciprocal(a Value) (Value, bool) {
	switch a.kind {
	case KindInteger, KindRational:
		if a.IsZero() {
			return NaN(), true
		}
		return Rat(new(big.Rat).Inv(a.ratVal())), true
	case KindRadical:
		// 1/(k*r^(1/n)) = r^((n-1)/n) / (k*r)
		pow := new(big.Int).Exp(a.radicand, big.NewInt(int64(a.index-1)), nil)
		out, in := extractRoot(pow, a.index)
		coeff := new(big.Rat).Mul(a.rat, new(big.Rat).SetInt(a.radicand))
		coeff.Inv(coeff)
		coeff.Mul(coeff, new(big.Rat).SetInt(out))
		return radical(coeff, in, a.index), true
	case KindDecimal:
		if a.IsZero() {
			return NaN(), true
		}
		return c.decimalOp(Int(1), a, (*apd.Context).Quo)
	case KindSpecial:
		if a.IsNaN() {
			return a, true
		}
		return Int(0), true
	}
	return Value{}, false
}

// Div returns a / b. Division by an exact or decimal zero is NaN.
func (c *Context) Div(a, b Value) (Value, bool) {
	if a.IsNaN() || b.IsNaN() || b.IsZero() {
		return NaN(), true
	}
	switch {
	case a.kind == KindSpecial && b.kind == KindSpecial:
		return NaN(), true
	case b.kind == KindSpecial:
		if a.kind == KindDecimal {
			return decimalValue(apd.New(0, 0)), true
		}
		return Int(0), true
	case a.kind == KindSpecial:
		sign, ok := c.Sign(b)
		if !ok {
			return Value{}, false
		}
		if sign < 0 {
			return c.Neg(a)
		}
		return a, true
	}
	if a.kind == KindDecimal || b.kind == KindDecimal {
		return c.decimalOp(a, b, (*apd.Context).Quo)
	}
	if a.IsZero() {
		return Int(0), true
	}
	if a.kind == KindConstant && b.kind == KindConstant && a.c == b.c {
		return Int(1), true
	}
	r, ok := c.Reciprocal(b)
	if !ok {
		return Value{}, false
	}
	return c.Mul(a, r)
}

type decimalFunc func(*apd.Context, *apd.Decimal, *apd.Decimal, *apd.Decimal) (apd.Condition, error)

// decimalOp approximates both operands and applies op. Mixing a decimal with
// any exact value always lands here: exactness is never recovered.
func (c *Context) decimalOp(a, b Value, op decimalFunc) (Value, bool) {
	x, ok := c.ToDecimal(a)
	if !ok {
		return NaN(), true
	}
	y, ok := c.ToDecimal(b)
	if !ok {
		return NaN(), true
	}
	var out apd.Decimal
	cond, err := op(c.apdCtx(), &out, x, y)
	return fromResult(&out, cond, err)
}

// Sum folds values left to right, returning false as soon as a pair has no
// closed form.
func (c *Context) Sum(vs ...Value) (Value, bool) {
	acc := Int(0)
	for _, v := range vs {
		var ok bool
		if acc, ok = c.Add(acc, v); !ok {
			return Value{}, false
		}
	}
	return acc, true
}

// Product folds values left to right like Sum.
func (c *Context) Product(vs ...Value) (Value, bool) {
	acc := Int(1)
	for _, v := range vs {
		var ok bool
		if acc, ok = c.Mul(acc, v); !ok {
			return Value{}, false
		}
	}
	return acc, true
}

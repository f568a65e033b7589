package number

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Ln returns the natural logarithm. Exact arguments only reduce in the trivial
// cases (1, e); decimals are evaluated at the context precision.
func (c *Context) Ln(v Value) (Value, bool) {
	switch {
	case v.IsNaN():
		return v, true
	case v.IsZero():
		return NaN(), true
	case v.kind == KindSpecial:
		if v.s == PositiveInfinity {
			return v, true
		}
		return NaN(), true
	case v.kind == KindInteger && v.IsOne():
		return Int(0), true
	case v.kind == KindConstant && v.c == ConstE:
		return Int(1), true
	}
	if c.IsNegative(v) {
		return NaN(), true
	}
	if v.kind != KindDecimal {
		return Value{}, false
	}
	var out apd.Decimal
	cond, err := c.apdCtx().Ln(&out, v.dec)
	return fromResult(&out, cond, err)
}

// Log returns the logarithm of v in the given base.
func (c *Context) Log(v, base Value) (Value, bool) {
	switch {
	case v.IsNaN() || base.IsNaN():
		return NaN(), true
	case v.IsZero():
		return NaN(), true
	case base.IsZero() || base.IsOne() || c.IsNegative(base) || base.kind == KindSpecial:
		return NaN(), true
	case v.kind == KindInteger && v.IsOne():
		return Int(0), true
	case v.Equal(base):
		return Int(1), true
	case v.kind == KindSpecial:
		if v.s != PositiveInfinity {
			return NaN(), true
		}
		cmp, ok := c.Compare(base, Int(1))
		if !ok {
			return Value{}, false
		}
		if cmp > 0 {
			return Infinity(), true
		}
		return NegInfinity(), true
	}
	if c.IsNegative(v) {
		return NaN(), true
	}
	if v.IsRational() && base.IsRational() {
		if r, ok := exactLog(v.ratVal(), base.ratVal()); ok {
			return Rat(r), true
		}
	}
	if v.kind != KindDecimal && base.kind != KindDecimal {
		return Value{}, false
	}
	x, ok := c.ToDecimal(v)
	if !ok {
		return NaN(), true
	}
	b, ok := c.ToDecimal(base)
	if !ok {
		return NaN(), true
	}
	dc := c.apdCtx()
	var lx, lb, out apd.Decimal
	if _, err := dc.Ln(&lx, x); err != nil {
		return NaN(), true
	}
	if _, err := dc.Ln(&lb, b); err != nil {
		return NaN(), true
	}
	cond, err := dc.Quo(&out, &lx, &lb)
	return fromResult(&out, cond, err)
}

// exactLog solves base^k = v for a rational k. Both arguments are positive and
// base is not 1. It writes each as a power of its primitive root and compares
// the roots.
func exactLog(v, base *big.Rat) (*big.Rat, bool) {
	if v.Sign() <= 0 || base.Sign() <= 0 {
		return nil, false
	}
	gv, nv, ok := primitivePower(v)
	if !ok {
		return nil, false
	}
	gb, nb, ok := primitivePower(base)
	if !ok {
		return nil, false
	}
	switch {
	case gv.Cmp(gb) == 0:
		return new(big.Rat).SetFrac64(nv, nb), true
	case new(big.Rat).Mul(gv, gb).Cmp(big.NewRat(1, 1)) == 0:
		return new(big.Rat).SetFrac64(-nv, nb), true
	}
	return nil, false
}

// primitivePower writes r > 0, r != 1, as g^n with g not a perfect power.
func primitivePower(r *big.Rat) (g *big.Rat, n int64, ok bool) {
	if r.Num().BitLen() > maxLogBits || r.Denom().BitLen() > maxLogBits {
		return nil, 0, false
	}
	g, n = new(big.Rat).Set(r), 1
	for m := 2; m <= max(g.Num().BitLen(), g.Denom().BitLen()); m++ {
		if !big.NewInt(int64(m)).ProbablyPrime(0) {
			continue
		}
		rn, okN := iroot(g.Num(), m)
		rd, okD := iroot(g.Denom(), m)
		if !okN || !okD {
			continue
		}
		g.SetFrac(rn, rd)
		n *= int64(m)
		m--
	}
	return g, n, true
}

// Exp returns e^v for decimal arguments.
func (c *Context) Exp(v Value) (Value, bool) {
	if v.kind != KindDecimal {
		return c.Pow(E(), v)
	}
	var out apd.Decimal
	cond, err := c.apdCtx().Exp(&out, v.dec)
	return fromResult(&out, cond, err)
}

// Sqrt returns the principal square root. Decimals use the full context
// precision.
func (c *Context) Sqrt(v Value) (Value, bool) {
	if v.kind == KindDecimal {
		if v.dec.Sign() < 0 {
			return NaN(), true
		}
		var out apd.Decimal
		cond, err := c.apdCtx().Sqrt(&out, v.dec)
		return fromResult(&out, cond, err)
	}
	return c.Root(v, 2)
}

// EvalFloat applies a float64 function to a decimal argument. It is the
// fallback for transcendental functions apd does not provide; the result
// carries float64 accuracy and is rounded to the context precision.
func (c *Context) EvalFloat(f func(float64) float64, v Value) (Value, bool) {
	if v.kind != KindDecimal {
		return Value{}, false
	}
	x, ok := c.Float64(v)
	if !ok {
		return NaN(), true
	}
	return c.FromFloat64Decimal(f(x)), true
}

// FromFloat64Decimal is FromFloat64 without the integer shortcut: the result
// of a floating point evaluation stays a decimal even when integral.
func (c *Context) FromFloat64Decimal(f float64) Value {
	switch {
	case math.IsNaN(f):
		return NaN()
	case math.IsInf(f, 1):
		return Infinity()
	case math.IsInf(f, -1):
		return NegInfinity()
	}
	var d apd.Decimal
	if _, err := d.SetFloat64(f); err != nil {
		return NaN()
	}
	return c.decimal(&d)
}

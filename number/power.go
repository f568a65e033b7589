package number

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

const (
	// maxRootIndex bounds the root index attempted in closed form.
	maxRootIndex = 1024
	// maxLogBits bounds the operands searched for an exact logarithm.
	maxLogBits = 4096
	// trialLimit bounds the trial division used to pull perfect powers out
	// of a radicand. Factors above it stay under the root.
	trialLimit = 10000
)

// Pow returns base^exp on the extended reals.
//
//	0^0, 1^±inf, inf^0, (±1)^±inf    -> NaN
//	0^positive -> 0, 0^negative      -> NaN
//	|b|>1: b^inf -> inf, b^-inf -> 0 (and the reverse for |b|<1)
//	(-inf)^n follows the parity of n; odd-denominator rationals included
//
// Negative bases under even roots have no real closed form and report false.
func (c *Context) Pow(base, exp Value) (Value, bool) {
	if base.IsNaN() || exp.IsNaN() {
		return NaN(), true
	}
	if exp.kind == KindSpecial {
		return c.powInfiniteExp(base, exp)
	}
	if base.kind == KindSpecial {
		return c.powInfiniteBase(base, exp)
	}
	if exp.IsZero() {
		if base.IsZero() {
			return NaN(), true
		}
		if base.kind == KindDecimal || exp.kind == KindDecimal {
			return decimalValue(apd.New(1, 0)), true
		}
		return Int(1), true
	}
	if base.IsZero() {
		sign, ok := c.Sign(exp)
		if !ok {
			return Value{}, false
		}
		if sign < 0 {
			return NaN(), true
		}
		return base, true
	}
	if exp.kind == KindInteger && exp.IsOne() {
		return base, true
	}
	if base.kind == KindInteger && base.IsOne() && exp.IsExact() {
		return Int(1), true
	}
	if base.kind == KindDecimal && exp.kind == KindRational && exp.ratVal().Cmp(big.NewRat(1, 2)) == 0 {
		return c.Sqrt(base)
	}
	if base.kind == KindDecimal || exp.kind == KindDecimal {
		return c.decimalOp(base, exp, (*apd.Context).Pow)
	}
	switch base.kind {
	case KindInteger, KindRational:
		switch exp.kind {
		case KindInteger:
			return c.powRatInt(base.ratVal(), exp.ratVal().Num())
		case KindRational:
			return c.powRatFrac(base.ratVal(), exp.ratVal())
		}
	case KindRadical:
		if exp.IsRational() {
			return c.powRadical(base, exp.ratVal())
		}
	}
	return Value{}, false
}

// Root returns the real n-th root of v.
func (c *Context) Root(v Value, n int) (Value, bool) {
	if n == 0 {
		return NaN(), true
	}
	return c.Pow(v, Frac(1, int64(n)))
}

func (c *Context) powInfiniteExp(base, exp Value) (Value, bool) {
	toInf := exp.s == PositiveInfinity
	if base.kind == KindSpecial {
		switch {
		case !toInf:
			return Int(0), true
		case base.s == PositiveInfinity:
			return Infinity(), true
		}
		return NaN(), true
	}
	if base.IsZero() {
		if toInf {
			return Int(0), true
		}
		return NaN(), true
	}
	cmp, ok := c.CompareAbs(base, Int(1))
	if !ok {
		return Value{}, false
	}
	switch {
	case cmp == 0:
		return NaN(), true
	case (cmp > 0) == toInf:
		return Infinity(), true
	}
	return Int(0), true
}

func (c *Context) powInfiniteBase(base, exp Value) (Value, bool) {
	if exp.IsZero() {
		return NaN(), true
	}
	sign, ok := c.Sign(exp)
	if !ok {
		return Value{}, false
	}
	if sign < 0 {
		return Int(0), true
	}
	if base.s == PositiveInfinity {
		return base, true
	}
	even, ok := Parity(exp)
	if !ok {
		return NaN(), true
	}
	if even {
		return Infinity(), true
	}
	return NegInfinity(), true
}

// Parity tells whether (-1)^v is +1 (even) or -1 (odd). It is defined for
// integers, integral decimals and rationals with an odd denominator, that is
// for exactly the exponents under which a negative base stays real.
func Parity(v Value) (even bool, ok bool) {
	switch v.kind {
	case KindInteger:
		return v.IsEvenInteger(), true
	case KindRational:
		if v.ratVal().Denom().Bit(0) == 0 {
			return false, false
		}
		return v.ratVal().Num().Bit(0) == 0, true
	case KindDecimal:
		if !v.IsIntegral() {
			return false, false
		}
		var r apd.Decimal
		r.Reduce(v.dec)
		if r.Exponent > 0 {
			return true, true
		}
		digits := r.Coeff.String()
		return strings.IndexByte("02468", digits[len(digits)-1]) >= 0, true
	}
	return false, false
}

func (c *Context) powRatInt(b *big.Rat, n *big.Int) (Value, bool) {
	if b.Sign() == 0 && n.Sign() < 0 {
		return NaN(), true
	}
	size := digits(b.Num())
	if d := digits(b.Denom()); d > size {
		size = d
	}
	abs := new(big.Int).Abs(n)
	if !abs.IsInt64() || abs.Int64()*int64(size) > int64(c.maxExactDigits) {
		return c.decimalOp(Rat(b), BigInt(n), (*apd.Context).Pow)
	}
	num := new(big.Int).Exp(b.Num(), abs, nil)
	den := new(big.Int).Exp(b.Denom(), abs, nil)
	if n.Sign() < 0 {
		num, den = den, num
	}
	return c.exact(new(big.Rat).SetFrac(num, den)), true
}

func (c *Context) powRatFrac(b, e *big.Rat) (Value, bool) {
	q := e.Denom()
	if !q.IsInt64() || q.Int64() > maxRootIndex {
		return Value{}, false
	}
	k := int(q.Int64())
	neg := b.Sign() < 0
	if neg && k%2 == 0 {
		return Value{}, false
	}
	p := e.Num()
	odd := p.Bit(0) == 1
	abs := new(big.Rat).Abs(b)
	absP := new(big.Int).Abs(p)

	var res Value
	pw, ok := c.powRatInt(abs, absP)
	if !ok {
		return Value{}, false
	}
	if pw.IsRational() {
		res = rootRat(pw.ratVal(), k)
	} else {
		if res, ok = c.decimalOp(Rat(abs), Rat(new(big.Rat).Abs(e)), (*apd.Context).Pow); !ok {
			return Value{}, false
		}
	}
	if neg && odd {
		res, _ = c.Neg(res)
	}
	if p.Sign() < 0 {
		return c.Reciprocal(res)
	}
	return res, true
}

// rootRat returns the principal k-th root of a non-negative rational as an
// exact integer, rational or radical.
func rootRat(r *big.Rat, k int) Value {
	outN, inN := extractRoot(r.Num(), k)
	outD, inD := extractRoot(r.Denom(), k)
	coeff := new(big.Rat).SetFrac(outN, outD)
	radicand := inN
	if inD.Cmp(big.NewInt(1)) != 0 {
		// rationalize: 1/root(d) = root(d^(k-1))/d
		inner := new(big.Int).Exp(inD, big.NewInt(int64(k-1)), nil)
		inner.Mul(inner, inN)
		o, in := extractRoot(inner, k)
		coeff.Mul(coeff, new(big.Rat).SetFrac(o, inD))
		radicand = in
	}
	radicand, k = reduceIndex(radicand, k)
	return radical(coeff, radicand, k)
}

func (c *Context) powRadical(base Value, e *big.Rat) (Value, bool) {
	outer, ok := c.Pow(Rat(base.rat), Rat(e))
	if !ok {
		return Value{}, false
	}
	inner := new(big.Rat).Quo(e, new(big.Rat).SetInt64(int64(base.index)))
	under, ok := c.Pow(BigInt(base.radicand), Rat(inner))
	if !ok {
		return Value{}, false
	}
	return c.Mul(outer, under)
}

// extractRoot splits n >= 0 into out^k * in, pulling out every k-th power
// factor found by trial division and a final perfect-power check.
func extractRoot(n *big.Int, k int) (out, in *big.Int) {
	out = big.NewInt(1)
	in = new(big.Int).Set(n)
	if in.Sign() == 0 {
		return big.NewInt(0), big.NewInt(1)
	}
	if r, exact := iroot(in, k); exact {
		return r, big.NewInt(1)
	}
	exp := big.NewInt(int64(k))
	rem := new(big.Int)
	for p := int64(2); p <= trialLimit; p++ {
		bp := big.NewInt(p)
		pk := new(big.Int).Exp(bp, exp, nil)
		if pk.Cmp(in) > 0 {
			break
		}
		for {
			q, r := new(big.Int).QuoRem(in, pk, rem)
			if r.Sign() != 0 {
				break
			}
			in = q
			out.Mul(out, bp)
		}
	}
	if r, exact := iroot(in, k); exact {
		out.Mul(out, r)
		in = big.NewInt(1)
	}
	return out, in
}

// reduceIndex lowers the root index while the radicand is a perfect power:
// root(4, 4) is sqrt(2).
func reduceIndex(radicand *big.Int, k int) (*big.Int, int) {
	for m := k; m >= 2; m-- {
		if k%m != 0 {
			continue
		}
		if r, exact := iroot(radicand, m); exact && r.Cmp(big.NewInt(1)) > 0 {
			return reduceIndex(r, k/m)
		}
	}
	return radicand, k
}

// iroot returns floor(n^(1/k)) for n >= 0 and whether the root is exact.
func iroot(n *big.Int, k int) (*big.Int, bool) {
	if n.Sign() == 0 {
		return new(big.Int), true
	}
	if k == 1 {
		return new(big.Int).Set(n), true
	}
	var x *big.Int
	if k == 2 {
		x = new(big.Int).Sqrt(n)
	} else {
		x = new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/k+1))
		kk := big.NewInt(int64(k))
		k1 := big.NewInt(int64(k - 1))
		for {
			y := new(big.Int).Quo(n, new(big.Int).Exp(x, k1, nil))
			y.Add(y, new(big.Int).Mul(k1, x))
			y.Quo(y, kk)
			if y.Cmp(x) >= 0 {
				break
			}
			x = y
		}
	}
	check := new(big.Int).Exp(x, big.NewInt(int64(k)), nil)
	return x, check.Cmp(n) == 0
}

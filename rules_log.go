package symkernel

import (
	"math/big"

	"github.com/njchilds90/symkernel/number"
)

// logIdentity handles logarithms the canonicalizer cannot fold because the
// base is symbolic, and reciprocal literals:
//
//	log_c(c) -> 1, log_c(1) -> 0, log_c(0) -> NaN
//	ln(1/q)  -> -ln(q)
func logIdentity(e *Engine, x *Fn) (Expr, bool) {
	arg, base := x.args[0], logBase(x)
	if arg.Equal(base) {
		return N(1), true
	}
	n, ok := arg.(*Num)
	if !ok {
		return nil, false
	}
	switch {
	case n.isInteger(1):
		return N(0), true
	case n.isInteger(0):
		return NaN(), true
	}
	num, ok1 := n.val.Num()
	den, ok2 := n.val.Denom()
	if !ok1 || !ok2 || num.Cmp(big.NewInt(1)) != 0 || den.Cmp(big.NewInt(1)) <= 0 {
		return nil, false
	}
	return e.neg(e.logLike(x, NumOf(number.BigInt(den)))), true
}

// logOfPower pulls the exponent out of a logarithm. An even numerator
// introduces an absolute value, since x^2 is positive for negative x:
//
//	ln(e^x)   -> x
//	ln(x^3)   -> 3 ln(x)
//	ln(x^2)   -> 2 ln(|x|)
func logOfPower(e *Engine, x *Fn) (Expr, bool) {
	b, n, ok := powParts(x.args[0])
	if !ok {
		return nil, false
	}
	if b.Equal(logBase(x)) {
		return n, true
	}
	if e.positive(b) {
		return e.mul(n, e.logLike(x, b)), true
	}
	v, ok := literal(n)
	if !ok {
		return nil, false
	}
	if evenNumerator(v) {
		return e.mul(n, e.logLike(x, e.abs(b))), true
	}
	return e.mul(n, e.logLike(x, b)), true
}

// logOfProduct pulls powers of the logarithm's own base out of a product:
// ln(e^x y) -> x + ln(y).
func logOfProduct(e *Engine, x *Fn) (Expr, bool) {
	m, ok := asFn(x.args[0], HeadMultiply)
	if !ok {
		return nil, false
	}
	base := logBase(x)
	var (
		exps []Expr
		rest []Expr
	)
	for _, f := range m.args {
		if f.Equal(base) {
			exps = append(exps, N(1))
			continue
		}
		if b, k, ok := powParts(f); ok && b.Equal(base) {
			exps = append(exps, k)
			continue
		}
		rest = append(rest, f)
	}
	if len(exps) == 0 {
		return nil, false
	}
	return e.add(append(exps, e.logLike(x, e.mul(rest...)))...), true
}

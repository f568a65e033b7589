package symkernel

import (
	"math/big"

	"github.com/njchilds90/symkernel/number"
)

// relationalNumber decides a comparison between number-only sides that the
// canonicalizer left unevaluated, such as pi < 2 sqrt(2).
func relationalNumber(e *Engine, x *Fn) (Expr, bool) {
	a, b := x.args[0], x.args[1]
	if !numberOnly(a) || !numberOnly(b) {
		return nil, false
	}
	av, ok1 := e.approx(a)
	bv, ok2 := e.approx(b)
	if !ok1 || !ok2 {
		return nil, false
	}
	return e.compareRelation(x.head, av, bv)
}

// relationalCommonFactor divides both sides by their greatest common positive
// rational factor: 2x < 4 -> x < 2.
func relationalCommonFactor(e *Engine, x *Fn) (Expr, bool) {
	var num, den *big.Int
	for _, side := range x.args {
		for _, t := range termsOf(side) {
			c, _ := e.splitCoefficient(t)
			if c.IsZero() {
				continue
			}
			p, ok1 := c.Num()
			q, ok2 := c.Denom()
			if !ok1 || !ok2 {
				return nil, false
			}
			p.Abs(p)
			if num == nil {
				num, den = p, q
				continue
			}
			num.GCD(nil, nil, num, p)
			den = lcm(den, q)
		}
	}
	if num == nil {
		return nil, false
	}
	g := new(big.Rat).SetFrac(num, den)
	if g.Cmp(big.NewRat(1, 1)) == 0 {
		return nil, false
	}
	inv := NumOf(number.Rat(new(big.Rat).Inv(g)))
	sides := make([]Expr, 2)
	for i, side := range x.args {
		terms := termsOf(side)
		scaled := make([]Expr, len(terms))
		for j, t := range terms {
			scaled[j] = e.mul(inv, t)
		}
		sides[i] = e.add(scaled...)
	}
	return e.relational(x.head, sides[0], sides[1]), true
}

func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	out := new(big.Int).Quo(a, g)
	return out.Mul(out, b)
}

package symkernel

import "github.com/njchilds90/symkernel/number"

const (
	// maxExpansionTerms bounds the number of terms a product may expand to
	// inside a sum.
	maxExpansionTerms = 64
	maxExpandPower    = 8
)

// likeTerms merges terms that differ only by a rational or decimal
// coefficient: x + 2x is 3x. A group that cancels is dropped only when its
// symbolic part is defined everywhere, so 1/x - 1/x stays.
func likeTerms(e *Engine, x *Fn) (Expr, bool) {
	type group struct {
		rest  Expr
		coefs []number.Value
		terms []Expr
	}
	var (
		order  []string
		groups = map[string]*group{}
		out    []Expr
	)
	for _, t := range x.args {
		c, rest := e.splitCoefficient(t)
		if rest == nil {
			out = append(out, t)
			continue
		}
		k := Key(rest)
		g, ok := groups[k]
		if !ok {
			g = &group{rest: rest}
			groups[k] = g
			order = append(order, k)
		}
		g.coefs = append(g.coefs, c)
		g.terms = append(g.terms, t)
	}
	merged := false
	for _, k := range order {
		g := groups[k]
		if len(g.terms) == 1 {
			out = append(out, g.terms[0])
			continue
		}
		sum, ok := e.num.Sum(g.coefs...)
		if !ok || (sum.IsZero() && !e.definedEverywhere(g.rest)) {
			out = append(out, g.terms...)
			continue
		}
		merged = true
		out = append(out, e.mul(NumOf(sum), g.rest))
	}
	if !merged {
		return nil, false
	}
	return e.add(out...), true
}

// logSum combines logarithms of the same base:
//
//	ln(x*y) - ln(x)  -> ln(y)
//	ln(y/x) + ln(x)  -> ln(x*y/x)
func logSum(e *Engine, x *Fn) (Expr, bool) {
	for i, a := range x.args {
		sa, la, ok := signedLog(a)
		if !ok || sa < 0 {
			continue
		}
		for j, b := range x.args {
			if i == j {
				continue
			}
			sb, lb, ok := signedLog(b)
			if !ok || !sameLogBase(la, lb) {
				continue
			}
			argA, argB := la.args[0], lb.args[0]
			var arg Expr
			switch {
			case sb < 0:
				if _, isMul := asFn(argA, HeadMultiply); !isMul {
					continue
				}
				if arg, ok = e.withoutFactor(argA, argB); !ok {
					continue
				}
			case hasFactor(argA, e.pow(argB, N(-1))):
				arg = e.mul(argA, argB)
			default:
				continue
			}
			rest := make([]Expr, 0, len(x.args)-1)
			for k, t := range x.args {
				if k != i && k != j {
					rest = append(rest, t)
				}
			}
			return e.add(append(rest, e.logLike(la, arg))...), true
		}
	}
	return nil, false
}

// expandInSum multiplies out a product or small power of a sum when one of
// the resulting terms combines with another term of the enclosing sum:
// (x+1)^2 - x^2 expands, (x+1)^2 + y does not.
func expandInSum(e *Engine, x *Fn) (Expr, bool) {
	for i, t := range x.args {
		terms, ok := e.expandTerms(t)
		if !ok {
			continue
		}
		others := map[string]bool{}
		for j, u := range x.args {
			if j == i {
				continue
			}
			if _, rest := e.splitCoefficient(u); rest != nil {
				others[Key(rest)] = true
			}
		}
		hit := false
		for k, u := range terms {
			terms[k] = e.simplifyTerm(u)
			if _, rest := e.splitCoefficient(terms[k]); rest != nil && others[Key(rest)] {
				hit = true
			}
		}
		if !hit {
			continue
		}
		out := make([]Expr, 0, len(x.args)-1+len(terms))
		for j, u := range x.args {
			if j != i {
				out = append(out, u)
			}
		}
		return e.add(append(out, terms...)...), true
	}
	return nil, false
}

// expandTerms returns the terms of x multiplied out, and false when x holds
// no sum to expand or the expansion would be too large.
func (e *Engine) expandTerms(x Expr) ([]Expr, bool) {
	f, ok := x.(*Fn)
	if !ok {
		return nil, false
	}
	switch f.head {
	case HeadAdd:
		return append([]Expr(nil), f.args...), true
	case HeadPower:
		if len(f.args) != 2 {
			return nil, false
		}
		sum, ok := asFn(f.args[0], HeadAdd)
		if !ok {
			return nil, false
		}
		n, ok := literal(f.args[1])
		if !ok || !n.IsInteger() {
			return nil, false
		}
		k, _ := n.Int64()
		if k < 2 || k > maxExpandPower {
			return nil, false
		}
		terms := []Expr{N(1)}
		for ; k > 0; k-- {
			if terms, ok = e.product(terms, sum.args); !ok {
				return nil, false
			}
		}
		return terms, true
	case HeadMultiply:
		terms := []Expr{N(1)}
		expanded := false
		for _, factor := range f.args {
			ft, ok := e.expandTerms(factor)
			if ok {
				expanded = true
			} else {
				ft = []Expr{factor}
			}
			if terms, ok = e.product(terms, ft); !ok {
				return nil, false
			}
		}
		return terms, expanded
	}
	return nil, false
}

func (e *Engine) product(a, b []Expr) ([]Expr, bool) {
	if len(a)*len(b) > maxExpansionTerms {
		return nil, false
	}
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, e.mul(x, y))
		}
	}
	return out, true
}

// commonDenominator puts the terms carrying negative integer powers of
// symbolic bases over one denominator:
//
//	1/(x+1) - 1/x  ->  (x - (x+1)) * x^-1 * (x+1)^-1
//
// Terms without a denominator stay outside.
func commonDenominator(e *Engine, x *Fn) (Expr, bool) {
	type frac struct {
		num []Expr
		den map[string]int64
	}
	var (
		fracs []frac
		rest  []Expr
		order []string
		bases = map[string]Expr{}
		top   = map[string]int64{}
	)
	for _, t := range x.args {
		fr := frac{den: map[string]int64{}}
		for _, f := range factorsOf(t) {
			b, k, ok := denominator(f)
			if !ok {
				fr.num = append(fr.num, f)
				continue
			}
			key := Key(b)
			if _, seen := bases[key]; !seen {
				bases[key] = b
				order = append(order, key)
			}
			fr.den[key] += k
			if fr.den[key] > top[key] {
				top[key] = fr.den[key]
			}
		}
		if len(fr.den) == 0 {
			rest = append(rest, t)
			continue
		}
		fracs = append(fracs, fr)
	}
	if len(fracs) < 2 {
		return nil, false
	}
	distinct := false
	for _, fr := range fracs[1:] {
		if !sameExponents(fr.den, fracs[0].den) {
			distinct = true
			break
		}
	}
	if !distinct {
		// like-terms owns sums over one denominator
		return nil, false
	}
	nums := make([]Expr, len(fracs))
	for i, fr := range fracs {
		factors := fr.num
		for _, key := range order {
			if k := top[key] - fr.den[key]; k > 0 {
				factors = append(factors, e.pow(bases[key], N(k)))
			}
		}
		nums[i] = e.mul(factors...)
	}
	numerator := e.add(nums...)
	if n, ok := numerator.(*Num); ok && n.IsZero() {
		return nil, false
	}
	combined := []Expr{numerator}
	for _, key := range order {
		combined = append(combined, e.pow(bases[key], N(-top[key])))
	}
	return e.add(append(rest, e.mul(combined...))...), true
}

// denominator matches b^-k for a symbolic b and a positive integer k.
func denominator(f Expr) (Expr, int64, bool) {
	p, ok := asFn(f, HeadPower)
	if !ok || len(p.args) != 2 {
		return nil, 0, false
	}
	if _, lit := p.args[0].(*Num); lit {
		return nil, 0, false
	}
	n, ok := literal(p.args[1])
	if !ok || !n.IsInteger() {
		return nil, 0, false
	}
	k, ok := n.Int64()
	if !ok || k >= 0 {
		return nil, 0, false
	}
	return p.args[0], -k, true
}

func sameExponents(a, b map[string]int64) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

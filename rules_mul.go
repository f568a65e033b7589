package symkernel

// changeOfBase rewrites quotients of logarithms sharing an argument or a
// base:
//
//	log_c(a) / ln(a)      -> 1/ln(c)
//	ln(a) / log_c(a)      -> ln(c)
//	log_c(a) / log_c(b)   -> ln(a)/ln(b)
func changeOfBase(e *Engine, x *Fn) (Expr, bool) {
	for i, a := range x.args {
		la, ok := isLog(a)
		if !ok {
			continue
		}
		for j, b := range x.args {
			if i == j {
				continue
			}
			base, exp, ok := powParts(b)
			if !ok {
				continue
			}
			if n, ok := exp.(*Num); !ok || !n.isInteger(-1) {
				continue
			}
			lb, ok := isLog(base)
			if !ok {
				continue
			}
			var repl []Expr
			switch {
			case la.head == HeadLog && lb.head == HeadLn && la.args[0].Equal(lb.args[0]):
				repl = []Expr{e.pow(e.ln(la.args[1]), N(-1))}
			case la.head == HeadLn && lb.head == HeadLog && la.args[0].Equal(lb.args[0]):
				repl = []Expr{e.ln(lb.args[1])}
			case la.head == HeadLog && lb.head == HeadLog &&
				la.args[1].Equal(lb.args[1]) && !la.args[0].Equal(lb.args[0]):
				repl = []Expr{e.ln(la.args[0]), e.pow(e.ln(lb.args[0]), N(-1))}
			default:
				continue
			}
			for k, f := range x.args {
				if k != i && k != j {
					repl = append(repl, f)
				}
			}
			return e.mul(repl...), true
		}
	}
	return nil, false
}

// likeBases combines factors with a common base, x^a * x^b -> x^(a+b). For a
// base not known to be positive the exponents must be classifiable and the
// combined power must be defined for exactly the same x as the product:
// x^2 * x^3 combines, x^2/x and x/x stay.
func likeBases(e *Engine, x *Fn) (Expr, bool) {
	type group struct {
		base    Expr
		exps    []Expr
		factors []Expr
	}
	var (
		order  []string
		groups = map[string]*group{}
		out    []Expr
	)
	for _, f := range x.args {
		base, exp, ok := groupable(f)
		if !ok {
			out = append(out, f)
			continue
		}
		k := Key(base)
		g, seen := groups[k]
		if !seen {
			g = &group{base: base}
			groups[k] = g
			order = append(order, k)
		}
		g.exps = append(g.exps, exp)
		g.factors = append(g.factors, f)
	}
	merged := false
	for _, k := range order {
		g := groups[k]
		if len(g.factors) == 1 {
			out = append(out, g.factors[0])
			continue
		}
		if p, ok := e.mergePowers(g.base, g.exps); ok {
			out = append(out, p)
			merged = true
			continue
		}
		if allEqual(g.factors) {
			out = append(out, e.pow(g.factors[0], N(int64(len(g.factors)))))
			merged = true
			continue
		}
		out = append(out, g.factors...)
	}
	if !merged {
		return nil, false
	}
	return e.mul(out...), true
}

// groupable returns the base and exponent a factor contributes to
// likeBases. Rational, decimal and radical literals are folded by the
// canonicalizer instead.
func groupable(f Expr) (base, exp Expr, ok bool) {
	switch v := f.(type) {
	case *Num:
		if _, isConst := v.val.Constant(); isConst {
			return f, N(1), true
		}
		return nil, nil, false
	case *Fn:
		if b, a, ok := powParts(v); ok {
			return b, a, true
		}
	}
	return f, N(1), true
}

func (e *Engine) mergePowers(base Expr, exps []Expr) (Expr, bool) {
	sum := e.add(exps...)
	if e.positive(base) {
		return e.pow(base, sum), true
	}
	want := fullDomain
	for _, a := range exps {
		d, ok := e.expDomain(a)
		if !ok {
			return nil, false
		}
		want.zero = want.zero && d.zero
		want.neg = want.neg && d.neg
	}
	got, ok := e.expDomain(sum)
	if !ok || got != want {
		return nil, false
	}
	return e.pow(base, sum), true
}

func allEqual(xs []Expr) bool {
	for _, x := range xs[1:] {
		if !x.Equal(xs[0]) {
			return false
		}
	}
	return true
}

// distributeCoefficient multiplies a rational or decimal coefficient into a
// sum: 2(x+1) -> 2x + 2.
func distributeCoefficient(e *Engine, x *Fn) (Expr, bool) {
	if len(x.args) != 2 {
		return nil, false
	}
	c, ok := x.args[0].(*Num)
	if !ok || !isCoefficient(c.val) {
		return nil, false
	}
	sum, ok := asFn(x.args[1], HeadAdd)
	if !ok {
		return nil, false
	}
	terms := make([]Expr, len(sum.args))
	for i, t := range sum.args {
		terms[i] = e.mul(c, t)
	}
	return e.add(terms...), true
}

package symkernel

import "github.com/njchilds90/symkernel/number"

// Rule is a named rewrite. Apply receives a canonical application and
// reports whether it produced a replacement; returning false leaves the node
// to the next rule of its head.
type Rule struct {
	Name  string
	Apply func(e *Engine, x *Fn) (Expr, bool)
}

// builtinRules returns the rule table, in priority order per head.
func builtinRules() map[Head][]Rule {
	logRules := []Rule{
		{Name: "log-identity", Apply: logIdentity},
		{Name: "log-of-power", Apply: logOfPower},
		{Name: "log-of-product", Apply: logOfProduct},
	}
	trigRules := []Rule{
		{Name: "even-function-abs", Apply: evenFunctionAbs},
		{Name: "trig-parity", Apply: trigParity},
	}
	relRules := []Rule{
		{Name: "relational-number", Apply: relationalNumber},
		{Name: "relational-common-factor", Apply: relationalCommonFactor},
	}
	rules := map[Head][]Rule{
		HeadAdd: {
			{Name: "like-terms", Apply: likeTerms},
			{Name: "log-sum", Apply: logSum},
			{Name: "expand-in-sum", Apply: expandInSum},
			{Name: "common-denominator", Apply: commonDenominator},
		},
		HeadMultiply: {
			{Name: "change-of-base", Apply: changeOfBase},
			{Name: "like-bases", Apply: likeBases},
			{Name: "distribute-coefficient", Apply: distributeCoefficient},
		},
		HeadPower: {
			{Name: "exp-of-log", Apply: expOfLog},
			{Name: "abs-even-power", Apply: absEvenPower},
			{Name: "double-power", Apply: doublePower},
			{Name: "power-of-product", Apply: powerOfProduct},
		},
		HeadLn:  logRules,
		HeadLog: logRules,
		HeadAbs: {
			{Name: "abs-nested", Apply: absNested},
			{Name: "abs-number", Apply: absNumber},
			{Name: "abs-product", Apply: absProduct},
			{Name: "abs-power", Apply: absPower},
			{Name: "abs-odd-function", Apply: absOddFunction},
		},
	}
	for h := HeadUnknown + 1; h < headCount; h++ {
		switch {
		case h.isTrig():
			rules[h] = trigRules
		case h.IsRelational():
			rules[h] = relRules
		}
	}
	return rules
}

// arityOK reports whether a built-in application has the operand count its
// rules expect. Others are left unchanged.
func arityOK(f *Fn) bool {
	switch h := f.head; {
	case h == HeadAdd || h == HeadMultiply:
		return len(f.args) >= 2
	case h == HeadPower || h == HeadLog || h.IsRelational():
		return len(f.args) == 2
	case h == HeadLn || h == HeadAbs || h.isTrig():
		return len(f.args) == 1
	}
	return true
}

// splitCoefficient separates the rational or decimal literal factors of a
// term from the rest. rest is nil for a bare literal.
func (e *Engine) splitCoefficient(x Expr) (number.Value, Expr) {
	if n, ok := x.(*Num); ok {
		if isCoefficient(n.val) {
			return n.val, nil
		}
		return number.Int(1), x
	}
	coef := number.Int(1)
	var rest []Expr
	for _, f := range factorsOf(x) {
		if n, ok := f.(*Num); ok && isCoefficient(n.val) {
			if c, ok := e.num.Mul(coef, n.val); ok {
				coef = c
				continue
			}
		}
		rest = append(rest, f)
	}
	switch len(rest) {
	case 0:
		return coef, nil
	case 1:
		return coef, rest[0]
	}
	return coef, apply(HeadMultiply, rest...)
}

func isCoefficient(v number.Value) bool {
	return v.IsRational() || v.IsDecimal()
}

// withoutFactor removes the first factor of x equal to f.
func (e *Engine) withoutFactor(x, f Expr) (Expr, bool) {
	factors := factorsOf(x)
	for i, g := range factors {
		if g.Equal(f) {
			rest := append(append([]Expr(nil), factors[:i]...), factors[i+1:]...)
			return e.mul(rest...), true
		}
	}
	return nil, false
}

func hasFactor(x, f Expr) bool {
	for _, g := range factorsOf(x) {
		if g.Equal(f) {
			return true
		}
	}
	return false
}

// logBase returns the base of a Ln or Log application.
func logBase(l *Fn) Expr {
	if l.head == HeadLog {
		return l.args[1]
	}
	return E()
}

func isLog(x Expr) (*Fn, bool) {
	f, ok := x.(*Fn)
	if !ok {
		return nil, false
	}
	switch {
	case f.head == HeadLn && len(f.args) == 1:
		return f, true
	case f.head == HeadLog && len(f.args) == 2:
		return f, true
	}
	return nil, false
}

func sameLogBase(a, b *Fn) bool {
	return a.head == b.head && logBase(a).Equal(logBase(b))
}

// matchLog reports whether l is a logarithm to base b and returns its
// argument.
func matchLog(b, l Expr) (Expr, bool) {
	f, ok := isLog(l)
	if !ok || !logBase(f).Equal(b) {
		return nil, false
	}
	return f.args[0], true
}

// signedLog matches L and -L for a logarithm L.
func signedLog(x Expr) (int, *Fn, bool) {
	if l, ok := isLog(x); ok {
		return 1, l, true
	}
	m, ok := asFn(x, HeadMultiply)
	if !ok || len(m.args) != 2 {
		return 0, nil, false
	}
	if n, ok := m.args[0].(*Num); ok && n.isInteger(-1) {
		if l, ok := isLog(m.args[1]); ok {
			return -1, l, true
		}
	}
	return 0, nil, false
}

// definedEverywhere reports whether x is defined for every real value of
// its symbols, so that cancelling it cannot widen the domain.
func (e *Engine) definedEverywhere(x Expr) bool {
	if numberOnly(x) {
		v, ok := e.approx(x)
		return ok && v.IsFinite()
	}
	switch v := x.(type) {
	case *Num:
		return v.val.IsFinite()
	case *Sym, *Str:
		return true
	case *Fn:
		switch v.head {
		case HeadAdd, HeadMultiply, HeadAbs,
			HeadSin, HeadCos, HeadArctan, HeadSinh, HeadCosh, HeadTanh, HeadSech:
		case HeadPower:
			if len(v.args) != 2 {
				return false
			}
			if !e.positive(v.args[0]) {
				d, ok := e.expDomain(v.args[1])
				if !ok || d != fullDomain {
					return false
				}
			}
		default:
			return false
		}
		for _, a := range v.args {
			if !e.definedEverywhere(a) {
				return false
			}
		}
		return true
	}
	return false
}

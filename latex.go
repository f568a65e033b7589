package symkernel

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/symkernel/number"
)

var latexFuncs = map[Head]string{
	HeadSin: `\sin`, HeadCos: `\cos`, HeadTan: `\tan`, HeadCot: `\cot`,
	HeadSec: `\sec`, HeadCsc: `\csc`,
	HeadArcsin: `\arcsin`, HeadArccos: `\arccos`, HeadArctan: `\arctan`,
	HeadSinh: `\sinh`, HeadCosh: `\cosh`, HeadTanh: `\tanh`, HeadCoth: `\coth`,
	HeadLn: `\ln`,
}

var latexRelations = map[Head]string{
	HeadLess: "<", HeadLessEqual: `\le`, HeadGreater: ">",
	HeadGreaterEqual: `\ge`, HeadEqual: "=", HeadNotEqual: `\ne`,
}

// LaTeX renders x as LaTeX. Negative powers in a product are written as a
// fraction and unit-fraction exponents as radicals.
func LaTeX(x Expr) string {
	var sb strings.Builder
	writeLaTeX(&sb, x)
	return sb.String()
}

func writeLaTeX(sb *strings.Builder, x Expr) {
	switch v := x.(type) {
	case *Num:
		sb.WriteString(latexValue(v.val))
	case *Sym:
		sb.WriteString(v.name)
	case *Str:
		sb.WriteString(`\text{` + v.text + `}`)
	case *Fn:
		latexFn(sb, v)
	}
}

func latexValue(v number.Value) string {
	switch v.Kind() {
	case number.KindRational:
		p, _ := v.Num()
		q, _ := v.Denom()
		sign := ""
		if p.Sign() < 0 {
			sign = "-"
		}
		return sign + `\frac{` + strings.TrimPrefix(p.String(), "-") + "}{" + q.String() + "}"
	case number.KindRadical:
		coeff, radicand, index, _ := v.Radical()
		root := `\sqrt{` + radicand.String() + "}"
		if index != 2 {
			root = `\sqrt[` + strconv.Itoa(index) + "]{" + radicand.String() + "}"
		}
		switch {
		case coeff.Cmp(big.NewRat(1, 1)) == 0:
			return root
		case coeff.Cmp(big.NewRat(-1, 1)) == 0:
			return "-" + root
		}
		return latexValue(number.Rat(coeff)) + root
	case number.KindConstant:
		if k, _ := v.Constant(); k == number.ConstPi {
			return `\pi`
		}
		return "e"
	case number.KindSpecial:
		switch {
		case v.IsNaN():
			return `\operatorname{NaN}`
		case orderContext.IsNegative(v):
			return `-\infty`
		}
		return `\infty`
	}
	return v.String()
}

func latexFn(sb *strings.Builder, f *Fn) {
	args := f.args
	switch h := f.head; {
	case h == HeadAdd && len(args) > 0:
		writeLaTeX(sb, args[0])
		for _, t := range args[1:] {
			s := LaTeX(t)
			if rest, neg := strings.CutPrefix(s, "-"); neg {
				sb.WriteString(" - " + rest)
				continue
			}
			sb.WriteString(" + " + s)
		}
		return
	case h == HeadMultiply && len(args) > 0:
		latexProduct(sb, args)
		return
	case h == HeadPower && len(args) == 2:
		latexPower(sb, args[0], args[1])
		return
	case h == HeadAbs && len(args) == 1:
		sb.WriteString(`\left|` + LaTeX(args[0]) + `\right|`)
		return
	case h == HeadLog && len(args) == 2:
		sb.WriteString(`\log_{` + LaTeX(args[1]) + `}\left(` + LaTeX(args[0]) + `\right)`)
		return
	case h.IsRelational() && len(args) == 2:
		sb.WriteString(LaTeX(args[0]) + " " + latexRelations[h] + " " + LaTeX(args[1]))
		return
	case (h == HeadDivide || h == HeadRational) && len(args) == 2:
		sb.WriteString(`\frac{` + LaTeX(args[0]) + "}{" + LaTeX(args[1]) + "}")
		return
	case h == HeadSubtract && len(args) == 2:
		sb.WriteString(LaTeX(args[0]) + " - " + latexFactor(args[1]))
		return
	case h == HeadNegate && len(args) == 1:
		sb.WriteString("-" + latexFactor(args[0]))
		return
	case h == HeadSqrt && len(args) == 1:
		sb.WriteString(`\sqrt{` + LaTeX(args[0]) + "}")
		return
	case h == HeadRoot && len(args) == 2:
		sb.WriteString(`\sqrt[` + LaTeX(args[1]) + "]{" + LaTeX(args[0]) + "}")
		return
	}
	if name, ok := latexFuncs[f.head]; ok && len(args) == 1 {
		sb.WriteString(name + `\left(` + LaTeX(args[0]) + `\right)`)
		return
	}
	sb.WriteString(`\operatorname{` + f.name + `}\left(`)
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeLaTeX(sb, a)
	}
	sb.WriteString(`\right)`)
}

func latexProduct(sb *strings.Builder, args []Expr) {
	if n, ok := args[0].(*Num); ok && n.val.IsNegOne() && len(args) > 1 {
		sb.WriteByte('-')
		args = args[1:]
	}
	var num, den []Expr
	for _, a := range args {
		if d, ok := latexReciprocal(a); ok {
			den = append(den, d)
			continue
		}
		num = append(num, a)
	}
	if len(den) == 0 {
		sb.WriteString(latexFactors(num))
		return
	}
	top := "1"
	if len(num) > 0 {
		top = latexFactors(num)
	}
	sb.WriteString(`\frac{` + top + "}{" + latexFactors(den) + "}")
}

func latexFactors(xs []Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		if i == 0 {
			parts[i] = LaTeX(x)
			continue
		}
		parts[i] = latexFactor(x)
	}
	return strings.Join(parts, " ")
}

// latexFactor wraps sums and signed literals in parentheses.
func latexFactor(x Expr) string {
	s := LaTeX(x)
	switch v := x.(type) {
	case *Fn:
		if v.head == HeadAdd || v.head == HeadSubtract {
			return `\left(` + s + `\right)`
		}
	case *Num:
		if strings.HasPrefix(s, "-") {
			return `\left(` + s + `\right)`
		}
	}
	return s
}

func latexPower(sb *strings.Builder, base, exp Expr) {
	if n, ok := base.(*Num); ok {
		if k, isConst := n.val.Constant(); isConst && k == number.ConstE {
			sb.WriteString("e^{" + LaTeX(exp) + "}")
			return
		}
	}
	if d, ok := latexReciprocal(apply(HeadPower, base, exp)); ok {
		sb.WriteString(`\frac{1}{` + LaTeX(d) + "}")
		return
	}
	if n, ok := exp.(*Num); ok {
		p, ok1 := n.val.Num()
		q, ok2 := n.val.Denom()
		if ok1 && ok2 && p.IsInt64() && p.Int64() == 1 && q.IsInt64() && q.Int64() > 1 {
			if q.Int64() == 2 {
				sb.WriteString(`\sqrt{` + LaTeX(base) + "}")
				return
			}
			sb.WriteString(`\sqrt[` + q.String() + "]{" + LaTeX(base) + "}")
			return
		}
	}
	b := LaTeX(base)
	switch v := base.(type) {
	case *Fn:
		if v.head == HeadAdd || v.head == HeadMultiply || v.head == HeadPower {
			b = `\left(` + b + `\right)`
		}
	case *Num:
		if v.val.Kind() == number.KindRational || v.val.IsRadical() || strings.HasPrefix(b, "-") {
			b = `\left(` + b + `\right)`
		}
	}
	sb.WriteString(b + "^{" + LaTeX(exp) + "}")
}

// latexReciprocal matches b^-k for an exact negative k and returns b^k.
func latexReciprocal(x Expr) (Expr, bool) {
	p, ok := asFn(x, HeadPower)
	if !ok || len(p.args) != 2 {
		return nil, false
	}
	n, ok := p.args[1].(*Num)
	if !ok || !n.val.IsExact() || !orderContext.IsNegative(n.val) {
		return nil, false
	}
	pos, ok := orderContext.Neg(n.val)
	if !ok {
		return nil, false
	}
	if pos.IsOne() {
		return p.args[0], true
	}
	return apply(HeadPower, p.args[0], NumOf(pos)), true
}

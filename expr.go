// Package symkernel is a symbolic algebra kernel: it canonicalizes expression
// trees and simplifies them to a fixed point with a rule catalogue, keeping
// numbers exact (integers, rationals, radicals, pi, e) wherever a closed
// form exists.
//
// Trees are immutable. Every operation returns new nodes, so expressions can
// be shared between goroutines and engines.
package symkernel

import (
	"strings"

	"github.com/njchilds90/symkernel/number"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an expression tree: *Num, *Sym, *Str or *Fn.
type Expr interface {
	String() string
	Equal(other Expr) bool
	exprType() string
}

// ============================================================
// Num — numeric literal
// ============================================================

type Num struct{ val number.Value }

func N(n int64) *Num { return &Num{val: number.Int(n)} }
func F(p, q int64) *Num { return &Num{val: number.Frac(p, q)} }
func NumOf(v number.Value) *Num { return &Num{val: v} }
func Pi() *Num { return &Num{val: number.Pi()} }
func E() *Num { return &Num{val: number.E()} }
func Inf() *Num { return &Num{val: number.Infinity()} }
func NegInf() *Num { return &Num{val: number.NegInfinity()} }
func NaN() *Num { return &Num{val: number.NaN()} }
func (n *Num) Value() number.Value { return n.val }
func (n *Num) String() string { return n.val.String() }
func (n *Num) exprType() string { return "num" }
func (n *Num) IsNaN() bool { return n.val.IsNaN() }
func (n *Num) IsZero() bool { return n.val.IsZero() }
func (n *Num) IsOne() bool { return n.val.IsOne() }
func (n *Num) Key() string { return n.val.Key() }
func (n *Num) isInteger(k int64) bool {
	v, ok := n.val.Int64()
	return ok && v == k
}

// Equal is structural: two NaN literals are equal here even though NaN never
// compares equal as a number.
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Key() == o.val.Key()
}

// ============================================================
// Sym — symbol
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }
func (s *Sym) Name() string { return s.name }
func (s *Sym) String() string { return s.name }
func (s *Sym) exprType() string { return "sym" }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

// ============================================================
// Str — string literal
// ============================================================

type Str struct{ text string }

func Text(s string) *Str { return &Str{text: s} }
func (s *Str) Value() string { return s.text }
func (s *Str) String() string { return "'" + s.text + "'" }
func (s *Str) exprType() string { return "str" }
func (s *Str) Equal(other Expr) bool {
	o, ok := other.(*Str)
	return ok && s.text == o.text
}

// ============================================================
// Fn — function application
// ============================================================

type Fn struct {
	head Head
	name string
	args []Expr
}

// Call builds the application name(args...) without any normalization.
func Call(name string, args ...Expr) *Fn {
	return &Fn{head: LookupHead(name), name: name, args: append([]Expr(nil), args...)}
}

func apply(h Head, args ...Expr) *Fn {
	return &Fn{head: h, name: h.String(), args: args}
}

func (f *Fn) Head() Head { return f.head }
func (f *Fn) Name() string { return f.name }
func (f *Fn) Len() int { return len(f.args) }
func (f *Fn) Arg(i int) Expr { return f.args[i] }
func (f *Fn) exprType() string { return "fn" }

// Args returns a copy of the operands.
func (f *Fn) Args() []Expr { return append([]Expr(nil), f.args...) }

func (f *Fn) Equal(other Expr) bool {
	o, ok := other.(*Fn)
	if !ok || f.name != o.name || len(f.args) != len(o.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// Raw constructors. They build the tree as written; Canonicalize and
// Simplify normalize it.

func Add(terms ...Expr) *Fn { return apply(HeadAdd, terms...) }
func Mul(factors ...Expr) *Fn { return apply(HeadMultiply, factors...) }
func Pow(base, exp Expr) *Fn { return apply(HeadPower, base, exp) }
func Subtract(a, b Expr) *Fn { return apply(HeadSubtract, a, b) }
func Negate(x Expr) *Fn { return apply(HeadNegate, x) }
func Divide(a, b Expr) *Fn { return apply(HeadDivide, a, b) }
func Sqrt(x Expr) *Fn { return apply(HeadSqrt, x) }
func Root(x, n Expr) *Fn { return apply(HeadRoot, x, n) }
func Abs(x Expr) *Fn { return apply(HeadAbs, x) }
func Ln(x Expr) *Fn { return apply(HeadLn, x) }
func Log(x, base Expr) *Fn { return apply(HeadLog, x, base) }
func Rational(p, q Expr) *Fn { return apply(HeadRational, p, q) }
func Less(a, b Expr) *Fn { return apply(HeadLess, a, b) }

// ============================================================
// Printing
// ============================================================

const (
	precSum = iota + 1
	precProduct
	precPower
	precAtom
)

func (f *Fn) String() string {
	var sb strings.Builder
	writeExpr(&sb, f)
	return sb.String()
}

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Num:
		s := v.val.String()
		switch {
		case strings.HasPrefix(s, "-"):
			return precSum
		case strings.ContainsAny(s, "/*"):
			return precProduct
		}
		return precAtom
	case *Fn:
		switch v.head {
		case HeadAdd, HeadSubtract:
			return precSum
		case HeadMultiply, HeadDivide, HeadNegate:
			return precProduct
		case HeadPower:
			return precPower
		}
	}
	return precAtom
}

func writeWrapped(sb *strings.Builder, e Expr, min int) {
	if precedence(e) < min {
		sb.WriteByte('(')
		writeExpr(sb, e)
		sb.WriteByte(')')
		return
	}
	writeExpr(sb, e)
}

func writeExpr(sb *strings.Builder, e Expr) {
	f, ok := e.(*Fn)
	if !ok {
		sb.WriteString(e.String())
		return
	}
	switch {
	case f.head == HeadAdd && len(f.args) > 0:
		writeExpr(sb, f.args[0])
		for _, t := range f.args[1:] {
			var term strings.Builder
			writeWrapped(&term, t, precSum)
			s := term.String()
			if rest, neg := strings.CutPrefix(s, "-"); neg {
				sb.WriteString(" - ")
				sb.WriteString(rest)
				continue
			}
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
		return
	case f.head == HeadMultiply && len(f.args) > 0:
		args := f.args
		if n, ok := args[0].(*Num); ok && n.isInteger(-1) && len(args) > 1 {
			sb.WriteByte('-')
			args = args[1:]
		}
		for i, a := range args {
			if i > 0 {
				sb.WriteByte('*')
			}
			if _, isNum := a.(*Num); isNum && i == 0 {
				writeExpr(sb, a)
				continue
			}
			writeWrapped(sb, a, precProduct+1)
		}
		return
	case f.head == HeadPower && len(f.args) == 2:
		writeWrapped(sb, f.args[0], precAtom)
		sb.WriteByte('^')
		writeWrapped(sb, f.args[1], precAtom)
		return
	}
	sb.WriteString(f.name)
	sb.WriteByte('(')
	for i, a := range f.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, a)
	}
	sb.WriteByte(')')
}

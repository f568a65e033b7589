package symkernel

import (
	"sort"
	"strconv"
	"strings"

	"github.com/njchilds90/symkernel/number"
)

// orderContext only ranks literals; the precision of the engine in use does
// not affect the order.
var orderContext = number.DefaultContext()

func rank(e Expr) int {
	switch e.(type) {
	case *Num:
		return 0
	case *Sym:
		return 1
	case *Str:
		return 2
	}
	return 3
}

// Compare is the total order used to sequence operands: literals by value,
// then symbols by name, then strings, then applications by head name, arity
// and operands.
func Compare(a, b Expr) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case *Num:
		return compareValues(x.val, b.(*Num).val)
	case *Sym:
		return strings.Compare(x.name, b.(*Sym).name)
	case *Str:
		return strings.Compare(x.text, b.(*Str).text)
	}
	x, y := a.(*Fn), b.(*Fn)
	if c := strings.Compare(x.name, y.name); c != 0 {
		return c
	}
	if len(x.args) != len(y.args) {
		if len(x.args) < len(y.args) {
			return -1
		}
		return 1
	}
	for i := range x.args {
		if c := Compare(x.args[i], y.args[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareValues(a, b number.Value) int {
	switch {
	case a.IsNaN() && b.IsNaN():
		return 0
	case a.IsNaN():
		return 1
	case b.IsNaN():
		return -1
	}
	if c, ok := orderContext.Compare(a, b); ok && c != 0 {
		return c
	}
	return strings.Compare(a.Key(), b.Key())
}

func sortExprs(xs []Expr) {
	sort.SliceStable(xs, func(i, j int) bool { return Compare(xs[i], xs[j]) < 0 })
}

// Key returns a string that identifies e structurally. Equal trees have
// equal keys.
func Key(e Expr) string {
	var sb strings.Builder
	writeKey(&sb, e)
	return sb.String()
}

func writeKey(sb *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Num:
		sb.WriteByte('#')
		sb.WriteString(v.val.Key())
	case *Sym:
		sb.WriteByte('$')
		sb.WriteString(strconv.Quote(v.name))
	case *Str:
		sb.WriteByte('\'')
		sb.WriteString(strconv.Quote(v.text))
	case *Fn:
		sb.WriteString(strconv.Quote(v.name))
		sb.WriteByte('(')
		for i, a := range v.args {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeKey(sb, a)
		}
		sb.WriteByte(')')
	}
}

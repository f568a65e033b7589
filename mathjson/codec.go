// Package mathjson converts between symkernel expressions and MathJSON-style
// JSON trees: applications are arrays headed by a name, symbols are strings,
// numbers are JSON numbers or {"num": "..."} objects for values outside the
// native range.
package mathjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	sk "github.com/njchilds90/symkernel"
	"github.com/njchilds90/symkernel/number"
)

var api = sonic.Config{UseNumber: true, SortMapKeys: true}.Froze()

// maxSafeInteger is the largest integer every JSON reader holds exactly.
var maxSafeInteger = big.NewInt(1 << 53)

// maxNativeDigits is the number of significant digits a decimal may carry
// and still be written as a plain JSON number.
const maxNativeDigits = 15

// Named symbols with a numeric meaning.
var namedNumbers = map[string]func() *sk.Num{
	"Pi":               sk.Pi,
	"ExponentialE":     sk.E,
	"PositiveInfinity": sk.Inf,
	"NegativeInfinity": sk.NegInf,
	"NaN":              sk.NaN,
}

var ErrEmpty = errors.New("mathjson: empty expression")

// Codec decodes and encodes with one numeric context. Decimal literals are
// rounded to its precision on input.
type Codec struct {
	num *number.Context
}

func New(num *number.Context) *Codec {
	if num == nil {
		num = number.DefaultContext()
	}
	return &Codec{num: num}
}

var defaultCodec = New(nil)

// Decode parses data with the default numeric context.
func Decode(data []byte) (sk.Expr, error) { return defaultCodec.Decode(data) }

// Encode renders x with the default numeric context.
func Encode(x sk.Expr) ([]byte, error) { return defaultCodec.Encode(x) }

func (c *Codec) Decode(data []byte) (sk.Expr, error) {
	var v any
	if err := api.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("mathjson: decode: %w", err)
	}
	return c.FromValue(v)
}

// FromValue converts an already decoded JSON value. Numbers must be
// json.Number or float64.
func (c *Codec) FromValue(v any) (sk.Expr, error) {
	switch t := v.(type) {
	case nil:
		return nil, ErrEmpty
	case json.Number:
		return c.number(t.String())
	case float64:
		return sk.NumOf(c.num.FromFloat64(t)), nil
	case bool:
		if t {
			return sk.S("True"), nil
		}
		return sk.S("False"), nil
	case string:
		return c.str(t)
	case []any:
		return c.array(t)
	case map[string]any:
		return c.object(t)
	}
	return nil, fmt.Errorf("mathjson: unsupported value of type %T", v)
}

func (c *Codec) number(s string) (sk.Expr, error) {
	v, err := c.num.ParseLiteral(s)
	if err != nil {
		return nil, fmt.Errorf("mathjson: bad number %q: %w", s, err)
	}
	return sk.NumOf(v), nil
}

func (c *Codec) str(s string) (sk.Expr, error) {
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return sk.Text(s[1 : len(s)-1]), nil
	}
	if s == "" {
		return nil, ErrEmpty
	}
	if f, ok := namedNumbers[s]; ok {
		return f(), nil
	}
	return sk.S(s), nil
}

func (c *Codec) array(a []any) (sk.Expr, error) {
	if len(a) == 0 {
		return nil, ErrEmpty
	}
	head, ok := a[0].(string)
	if !ok || head == "" {
		return nil, fmt.Errorf("mathjson: application head must be a name, got %v", a[0])
	}
	if head == "Radical" {
		head = "Root"
	}
	args := make([]sk.Expr, len(a)-1)
	for i, v := range a[1:] {
		x, err := c.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s operand %d: %w", head, i+1, err)
		}
		args[i] = x
	}
	return sk.Call(head, args...), nil
}

func (c *Codec) object(m map[string]any) (sk.Expr, error) {
	if v, ok := m["num"]; ok {
		switch t := v.(type) {
		case string:
			return c.number(t)
		case json.Number:
			return c.number(t.String())
		}
		return nil, fmt.Errorf("mathjson: num must be a string, got %T", v)
	}
	if v, ok := m["sym"].(string); ok {
		return sk.S(v), nil
	}
	if v, ok := m["str"].(string); ok {
		return sk.Text(v), nil
	}
	if v, ok := m["fn"].([]any); ok {
		return c.array(v)
	}
	return nil, fmt.Errorf("mathjson: unknown object form with keys %v", keys(m))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Encode renders x as compact JSON.
func (c *Codec) Encode(x sk.Expr) ([]byte, error) {
	out, err := api.Marshal(c.ToValue(x))
	if err != nil {
		return nil, fmt.Errorf("mathjson: encode: %w", err)
	}
	return out, nil
}

// ToValue converts x to plain JSON values, restoring the readable heads
// the canonical form removes (Negate, Divide, Subtract, Sqrt, Root, Exp).
func (c *Codec) ToValue(x sk.Expr) any {
	switch v := x.(type) {
	case *sk.Num:
		return c.value(v.Value())
	case *sk.Sym:
		return v.Name()
	case *sk.Str:
		return "'" + v.Value() + "'"
	case *sk.Fn:
		return c.fn(v)
	}
	return nil
}

func (c *Codec) fn(f *sk.Fn) any {
	switch f.Head() {
	case sk.HeadAdd:
		if out, ok := c.subtract(f); ok {
			return out
		}
	case sk.HeadMultiply:
		if out, ok := c.product(f); ok {
			return out
		}
	case sk.HeadPower:
		if out, ok := c.power(f); ok {
			return out
		}
	}
	return c.app(f.Name(), f.Args()...)
}

func (c *Codec) app(head string, args ...sk.Expr) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, head)
	for _, a := range args {
		out = append(out, c.ToValue(a))
	}
	return out
}

// subtract writes a two-term sum with a negative second term as a
// difference.
func (c *Codec) subtract(f *sk.Fn) (any, bool) {
	if f.Len() != 2 {
		return nil, false
	}
	pos, ok := c.negated(f.Arg(1))
	if !ok {
		return nil, false
	}
	return c.app("Subtract", f.Arg(0), pos), true
}

// product restores Negate for a -1 coefficient and Divide for negative
// powers.
func (c *Codec) product(f *sk.Fn) (any, bool) {
	args := f.Args()
	if len(args) == 0 {
		return nil, false
	}
	if n, ok := args[0].(*sk.Num); ok && n.Value().IsNegOne() && len(args) > 1 {
		return []any{"Negate", c.ToValue(rebuild(sk.Mul, args[1:]))}, true
	}
	var num, den []sk.Expr
	for _, a := range args {
		if d, ok := c.reciprocal(a); ok {
			den = append(den, d)
			continue
		}
		num = append(num, a)
	}
	if len(den) == 0 {
		return nil, false
	}
	numer := sk.Expr(sk.N(1))
	if len(num) > 0 {
		numer = rebuild(sk.Mul, num)
	}
	return c.app("Divide", numer, rebuild(sk.Mul, den)), true
}

func (c *Codec) power(f *sk.Fn) (any, bool) {
	if f.Len() != 2 {
		return nil, false
	}
	base, exp := f.Arg(0), f.Arg(1)
	if n, ok := base.(*sk.Num); ok {
		if k, isConst := n.Value().Constant(); isConst && k == number.ConstE {
			return c.app("Exp", exp), true
		}
	}
	if d, ok := c.reciprocal(f); ok {
		return c.app("Divide", sk.N(1), d), true
	}
	n, ok := exp.(*sk.Num)
	if !ok {
		return nil, false
	}
	v := n.Value()
	num, ok1 := v.Num()
	den, ok2 := v.Denom()
	if !ok1 || !ok2 || num.Cmp(big.NewInt(1)) != 0 || den.Cmp(big.NewInt(1)) <= 0 {
		return nil, false
	}
	if den.Cmp(big.NewInt(2)) == 0 {
		return c.app("Sqrt", base), true
	}
	return c.app("Root", base, sk.NumOf(number.BigInt(den))), true
}

// reciprocal matches b^-k for a negative exact exponent and returns b^k.
func (c *Codec) reciprocal(x sk.Expr) (sk.Expr, bool) {
	p, ok := x.(*sk.Fn)
	if !ok || p.Head() != sk.HeadPower || p.Len() != 2 {
		return nil, false
	}
	n, ok := p.Arg(1).(*sk.Num)
	if !ok || !n.Value().IsExact() || !c.num.IsNegative(n.Value()) {
		return nil, false
	}
	pos, _ := c.num.Neg(n.Value())
	if pos.IsOne() {
		return p.Arg(0), true
	}
	return sk.Pow(p.Arg(0), sk.NumOf(pos)), true
}

// negated returns -x for a term with a negative leading coefficient.
func (c *Codec) negated(x sk.Expr) (sk.Expr, bool) {
	switch v := x.(type) {
	case *sk.Num:
		if v.Value().IsFinite() && c.num.IsNegative(v.Value()) {
			n, ok := c.num.Neg(v.Value())
			return sk.NumOf(n), ok
		}
	case *sk.Fn:
		if v.Head() != sk.HeadMultiply || v.Len() < 2 {
			return nil, false
		}
		lead, ok := v.Arg(0).(*sk.Num)
		if !ok || !lead.Value().IsFinite() || !c.num.IsNegative(lead.Value()) {
			return nil, false
		}
		args := v.Args()
		if lead.Value().IsNegOne() {
			return rebuild(sk.Mul, args[1:]), true
		}
		n, ok := c.num.Neg(lead.Value())
		if !ok {
			return nil, false
		}
		args[0] = sk.NumOf(n)
		return sk.Mul(args...), true
	}
	return nil, false
}

func rebuild(mk func(...sk.Expr) *sk.Fn, args []sk.Expr) sk.Expr {
	if len(args) == 1 {
		return args[0]
	}
	return mk(args...)
}

// value writes a literal: a plain number when it fits the native range,
// ["Rational", p, q] for fractions, {"num": "..."} otherwise.
func (c *Codec) value(v number.Value) any {
	switch v.Kind() {
	case number.KindInteger:
		n, _ := v.Num()
		if new(big.Int).Abs(n).Cmp(maxSafeInteger) <= 0 {
			return json.Number(n.String())
		}
		return map[string]any{"num": n.String()}
	case number.KindRational:
		p, _ := v.Num()
		q, _ := v.Denom()
		return []any{"Rational", c.value(number.BigInt(p)), c.value(number.BigInt(q))}
	case number.KindRadical:
		return c.radical(v)
	case number.KindConstant:
		if k, _ := v.Constant(); k == number.ConstPi {
			return "Pi"
		}
		return "ExponentialE"
	case number.KindDecimal:
		d, _ := v.Decimal()
		s := number.FormatDecimal(d)
		if native(d) {
			return json.Number(s)
		}
		return map[string]any{"num": s}
	}
	switch {
	case v.IsNaN():
		return "NaN"
	case c.num.IsNegative(v):
		return "NegativeInfinity"
	}
	return "PositiveInfinity"
}

func (c *Codec) radical(v number.Value) any {
	coeff, radicand, index, _ := v.Radical()
	var root any = []any{"Sqrt", json.Number(radicand.String())}
	if index != 2 {
		root = []any{"Root", json.Number(radicand.String()), json.Number(fmt.Sprint(index))}
	}
	switch {
	case coeff.Cmp(big.NewRat(1, 1)) == 0:
		return root
	case coeff.Cmp(big.NewRat(-1, 1)) == 0:
		return []any{"Negate", root}
	}
	return []any{"Multiply", c.value(number.Rat(coeff)), root}
}

func native(d *apd.Decimal) bool {
	var r apd.Decimal
	r.Reduce(d)
	if r.Form != apd.Finite {
		return false
	}
	adjusted := int64(r.Exponent) + r.NumDigits() - 1
	return r.NumDigits() <= maxNativeDigits && adjusted >= -7 && adjusted < 21
}

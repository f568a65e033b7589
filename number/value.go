// Package number implements the exact numeric tower used by the symbolic
// kernel: arbitrary precision integers and reduced rationals (math/big),
// integer radicals, the named constants pi and e, signed infinities, NaN,
// and a bounded-precision decimal fallback (cockroachdb/apd).
//
// Values are immutable. Every operation allocates its result and never
// touches its operands, so values can be shared freely between goroutines.
package number

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInteger Kind = iota
	KindRational
	KindRadical
	KindConstant
	KindDecimal
	KindSpecial
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindRational:
		return "rational"
	case KindRadical:
		return "radical"
	case KindConstant:
		return "constant"
	case KindDecimal:
		return "decimal"
	case KindSpecial:
		return "special"
	}
	return "unknown"
}

// Constant names an exact transcendental constant.
type Constant uint8

const (
	ConstPi Constant = iota + 1
	ConstE
)

// Special names a non-finite value of the extended reals.
type Special uint8

const (
	PositiveInfinity Special = iota + 1
	NegativeInfinity
	NotANumber
)

// Value is a numeric literal. The zero Value is the integer 0.
//
// Invariants:
//   - KindInteger: rat is an integer.
//   - KindRational: rat has a denominator > 1, already reduced by big.Rat.
//   - KindRadical: coeff * radicand^(1/index), index >= 2, radicand >= 2 and
//     free of index-th power factors, coeff nonzero.
//   - KindDecimal: dec is finite and rounded to the context precision.
type Value struct {
	kind     Kind
	rat      *big.Rat
	radicand *big.Int
	index    int
	dec      *apd.Decimal
	c        Constant
	s        Special
}

var (
	ratZero = new(big.Rat)
	ratOne  = big.NewRat(1, 1)
)

// Int returns the exact integer n.
func Int(n int64) Value { return Value{kind: KindInteger, rat: new(big.Rat).SetInt64(n)} }

// BigInt returns the exact integer n.
func BigInt(n *big.Int) Value {
	return Value{kind: KindInteger, rat: new(big.Rat).SetInt(n)}
}

// Frac returns p/q reduced. A zero denominator yields NaN.
func Frac(p, q int64) Value {
	if q == 0 {
		return NaN()
	}
	return Rat(big.NewRat(p, q))
}

// BigFrac returns p/q reduced. A zero denominator yields NaN.
func BigFrac(p, q *big.Int) Value {
	if q.Sign() == 0 {
		return NaN()
	}
	return Rat(new(big.Rat).SetFrac(p, q))
}

// Rat wraps r, normalizing integers to KindInteger. r is copied.
func Rat(r *big.Rat) Value {
	v := new(big.Rat).Set(r)
	if v.IsInt() {
		return Value{kind: KindInteger, rat: v}
	}
	return Value{kind: KindRational, rat: v}
}

// Pi returns the constant pi.
func Pi() Value { return Value{kind: KindConstant, c: ConstPi} }

// E returns Euler's number.
func E() Value { return Value{kind: KindConstant, c: ConstE} }

// Infinity returns positive infinity.
func Infinity() Value { return Value{kind: KindSpecial, s: PositiveInfinity} }

// NegInfinity returns negative infinity.
func NegInfinity() Value { return Value{kind: KindSpecial, s: NegativeInfinity} }

// NaN returns the absorbing not-a-number value.
func NaN() Value { return Value{kind: KindSpecial, s: NotANumber} }

func radical(coeff *big.Rat, radicand *big.Int, index int) Value {
	switch {
	case coeff.Sign() == 0:
		return Int(0)
	case radicand.Cmp(big.NewInt(1)) == 0:
		return Rat(coeff)
	case radicand.Sign() == 0:
		return Int(0)
	case index == 1:
		return Rat(new(big.Rat).Mul(coeff, new(big.Rat).SetInt(radicand)))
	}
	return Value{
		kind:     KindRadical,
		rat:      new(big.Rat).Set(coeff),
		radicand: new(big.Int).Set(radicand),
		index:    index,
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) ratVal() *big.Rat {
	if v.rat == nil {
		return ratZero
	}
	return v.rat
}

// IsExact reports whether v carries no approximation.
func (v Value) IsExact() bool {
	switch v.kind {
	case KindInteger, KindRational, KindRadical, KindConstant:
		return true
	}
	return false
}

// IsRational reports whether v is an Integer or a Rational.
func (v Value) IsRational() bool { return v.kind == KindInteger || v.kind == KindRational }

func (v Value) IsInteger() bool  { return v.kind == KindInteger }
func (v Value) IsDecimal() bool  { return v.kind == KindDecimal }
func (v Value) IsRadical() bool  { return v.kind == KindRadical }
func (v Value) IsConstant() bool { return v.kind == KindConstant }
func (v Value) IsSpecial() bool  { return v.kind == KindSpecial }
func (v Value) IsNaN() bool      { return v.kind == KindSpecial && v.s == NotANumber }

// IsInfinity reports whether v is a signed infinity.
func (v Value) IsInfinity() bool {
	return v.kind == KindSpecial && (v.s == PositiveInfinity || v.s == NegativeInfinity)
}

// IsFinite reports whether v is neither an infinity nor NaN.
func (v Value) IsFinite() bool { return v.kind != KindSpecial }

func (v Value) IsZero() bool {
	switch v.kind {
	case KindInteger:
		return v.ratVal().Sign() == 0
	case KindDecimal:
		return v.dec.IsZero()
	}
	return false
}

func (v Value) IsOne() bool {
	switch v.kind {
	case KindInteger:
		return v.ratVal().Cmp(ratOne) == 0
	case KindDecimal:
		return v.dec.Cmp(apd.New(1, 0)) == 0
	}
	return false
}

func (v Value) IsNegOne() bool {
	switch v.kind {
	case KindInteger:
		return v.ratVal().Cmp(big.NewRat(-1, 1)) == 0
	case KindDecimal:
		return v.dec.Cmp(apd.New(-1, 0)) == 0
	}
	return false
}

// IsIntegral reports whether v is an integer or a decimal with an integral
// value.
func (v Value) IsIntegral() bool {
	switch v.kind {
	case KindInteger:
		return true
	case KindDecimal:
		var frac, integ apd.Decimal
		v.dec.Modf(&integ, &frac)
		return frac.IsZero()
	}
	return false
}

// IsEvenInteger reports whether v is an exact even integer.
func (v Value) IsEvenInteger() bool {
	return v.kind == KindInteger && v.ratVal().Num().Bit(0) == 0
}

// IsOddInteger reports whether v is an exact odd integer.
func (v Value) IsOddInteger() bool {
	return v.kind == KindInteger && v.ratVal().Num().Bit(0) == 1
}

// Constant returns the constant held by a KindConstant value.
func (v Value) Constant() (Constant, bool) { return v.c, v.kind == KindConstant }

// Special returns the special held by a KindSpecial value.
func (v Value) Special() (Special, bool) { return v.s, v.kind == KindSpecial }

// Rat returns a copy of the rational held by an Integer or Rational.
func (v Value) Rat() (*big.Rat, bool) {
	if !v.IsRational() {
		return nil, false
	}
	return new(big.Rat).Set(v.ratVal()), true
}

// Num returns the numerator of an Integer or Rational.
func (v Value) Num() (*big.Int, bool) {
	if !v.IsRational() {
		return nil, false
	}
	return new(big.Int).Set(v.ratVal().Num()), true
}

// Denom returns the denominator of an Integer or Rational.
func (v Value) Denom() (*big.Int, bool) {
	if !v.IsRational() {
		return nil, false
	}
	return new(big.Int).Set(v.ratVal().Denom()), true
}

// Int64 returns v as an int64 when v is a small exact integer.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInteger || !v.ratVal().Num().IsInt64() {
		return 0, false
	}
	return v.ratVal().Num().Int64(), true
}

// Radical returns coeff, radicand and index of a KindRadical value.
func (v Value) Radical() (coeff *big.Rat, radicand *big.Int, index int, ok bool) {
	if v.kind != KindRadical {
		return nil, nil, 0, false
	}
	return new(big.Rat).Set(v.rat), new(big.Int).Set(v.radicand), v.index, true
}

// Decimal returns a copy of the decimal held by a KindDecimal value.
func (v Value) Decimal() (*apd.Decimal, bool) {
	if v.kind != KindDecimal {
		return nil, false
	}
	return new(apd.Decimal).Set(v.dec), true
}

// Equal reports structural equality: same variant and same content. NaN is
// never equal to anything, itself included.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger, KindRational:
		return v.ratVal().Cmp(o.ratVal()) == 0
	case KindRadical:
		return v.index == o.index && v.radicand.Cmp(o.radicand) == 0 && v.rat.Cmp(o.rat) == 0
	case KindDecimal:
		return v.dec.Cmp(o.dec) == 0
	case KindConstant:
		return v.c == o.c
	case KindSpecial:
		return v.s == o.s && v.s != NotANumber
	}
	return false
}

// Key returns a string that identifies v structurally. Unlike Equal, two NaN
// values share a key.
func (v Value) Key() string {
	switch v.kind {
	case KindInteger:
		return "i" + v.ratVal().Num().String()
	case KindRational:
		return "q" + v.ratVal().String()
	case KindRadical:
		return fmt.Sprintf("r%s*%s^1/%d", v.rat.RatString(), v.radicand.String(), v.index)
	case KindDecimal:
		var r apd.Decimal
		r.Reduce(v.dec)
		return "d" + r.Text('E')
	}
	return "c" + v.String()
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return v.ratVal().Num().String()
	case KindRational:
		return v.ratVal().RatString()
	case KindRadical:
		root := "sqrt(" + v.radicand.String() + ")"
		if v.index != 2 {
			root = fmt.Sprintf("root(%s, %d)", v.radicand.String(), v.index)
		}
		switch {
		case v.rat.Cmp(ratOne) == 0:
			return root
		case v.rat.Cmp(big.NewRat(-1, 1)) == 0:
			return "-" + root
		}
		return v.rat.RatString() + "*" + root
	case KindDecimal:
		return FormatDecimal(v.dec)
	case KindConstant:
		if v.c == ConstPi {
			return "pi"
		}
		return "e"
	case KindSpecial:
		switch v.s {
		case PositiveInfinity:
			return "+inf"
		case NegativeInfinity:
			return "-inf"
		}
		return "nan"
	}
	return "?"
}

// FormatDecimal renders d without trailing zeros, in positional notation for
// moderate exponents and in lowercase scientific notation otherwise
// ("1e+999", "1.1e+150", "2.5e-12").
func FormatDecimal(d *apd.Decimal) string {
	var r apd.Decimal
	r.Reduce(d)
	if r.IsZero() {
		return "0"
	}
	adjusted := int64(r.Exponent) + r.NumDigits() - 1
	if adjusted >= -7 && adjusted < 21 {
		return r.Text('f')
	}
	digits := r.Coeff.String()
	var sb strings.Builder
	if r.Negative {
		sb.WriteByte('-')
	}
	sb.WriteByte(digits[0])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('e')
	if adjusted >= 0 {
		sb.WriteByte('+')
	}
	fmt.Fprintf(&sb, "%d", adjusted)
	return sb.String()
}

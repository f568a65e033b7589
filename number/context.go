package number

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

const (
	// DefaultPrecision is the number of significant digits kept by decimals.
	DefaultPrecision uint32 = 21
	// MaxPrecision bounds the precision so that pi can be rounded from the
	// stored expansion.
	MaxPrecision uint32 = 100
	// DefaultMaxExactDigits bounds the digit count of exact numerators and
	// denominators before a result falls back to a decimal.
	DefaultMaxExactDigits = 4096
)

const piDigits = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

// Context carries the precision policy for one engine. It is immutable after
// construction and safe for concurrent use.
type Context struct {
	precision      uint32
	maxExactDigits int
	dc             *apd.Context
}

// NewContext returns a context keeping precision significant digits, rounding
// half to even. Out-of-range arguments are clamped.
func NewContext(precision uint32, maxExactDigits int) *Context {
	if precision == 0 {
		precision = DefaultPrecision
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	if maxExactDigits <= 0 {
		maxExactDigits = DefaultMaxExactDigits
	}
	dc := apd.BaseContext.WithPrecision(precision)
	dc.Rounding = apd.RoundHalfEven
	return &Context{precision: precision, maxExactDigits: maxExactDigits, dc: dc}
}

// DefaultContext returns a context with DefaultPrecision.
func DefaultContext() *Context { return NewContext(DefaultPrecision, DefaultMaxExactDigits) }

func (c *Context) Precision() uint32 { return c.precision }

func (c *Context) MaxExactDigits() int { return c.maxExactDigits }

// apdCtx returns a private copy so that apd never observes shared mutable
// state across goroutines.
func (c *Context) apdCtx() *apd.Context {
	dc := *c.dc
	return &dc
}

// ParseDecimal parses a decimal or scientific literal and rounds it to the
// context precision. Pure digit strings are not special-cased here; use
// ParseLiteral for the exact/decimal split.
func (c *Context) ParseDecimal(s string) (Value, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Value{}, err
	}
	switch d.Form {
	case apd.Infinite:
		if d.Negative {
			return NegInfinity(), nil
		}
		return Infinity(), nil
	case apd.NaN, apd.NaNSignaling:
		return NaN(), nil
	}
	return c.decimal(d), nil
}

// ParseLiteral parses the textual form of a number literal. Strings made of
// an optional sign and digits only are exact integers, "p/q" is an exact
// rational, anything else is parsed as a decimal.
func (c *Context) ParseLiteral(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "+infinity", "infinity", "inf", "+inf":
		return Infinity(), nil
	case "-infinity", "-inf":
		return NegInfinity(), nil
	case "nan":
		return NaN(), nil
	}
	if isIntegerLiteral(s) {
		n, ok := new(big.Int).SetString(s, 10)
		if ok {
			return c.exact(new(big.Rat).SetInt(n)), nil
		}
	}
	if p, q, found := strings.Cut(s, "/"); found && isIntegerLiteral(p) && isIntegerLiteral(q) {
		num, _ := new(big.Int).SetString(p, 10)
		den, _ := new(big.Int).SetString(q, 10)
		if den.Sign() == 0 {
			return NaN(), nil
		}
		return c.exact(new(big.Rat).SetFrac(num, den)), nil
	}
	return c.ParseDecimal(s)
}

func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FromFloat64 converts a native number. Integral values that a float64
// represents exactly become integers; everything else becomes a decimal
// built from the shortest round-trip representation.
func (c *Context) FromFloat64(f float64) Value {
	switch {
	case math.IsNaN(f):
		return NaN()
	case math.IsInf(f, 1):
		return Infinity()
	case math.IsInf(f, -1):
		return NegInfinity()
	}
	if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		return Int(int64(f))
	}
	v, err := c.ParseDecimal(strconv.FormatFloat(f, 'g', -1, 64))
	if err != nil {
		return NaN()
	}
	return v
}

// Float64 approximates v as a float64.
func (c *Context) Float64(v Value) (float64, bool) {
	switch v.kind {
	case KindSpecial:
		switch v.s {
		case PositiveInfinity:
			return math.Inf(1), true
		case NegativeInfinity:
			return math.Inf(-1), true
		}
		return math.NaN(), true
	case KindInteger, KindRational:
		f, _ := v.ratVal().Float64()
		return f, true
	}
	d, ok := c.ToDecimal(v)
	if !ok {
		return 0, false
	}
	f, err := d.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// decimal rounds d to the context precision and wraps it.
func (c *Context) decimal(d *apd.Decimal) Value {
	var r apd.Decimal
	if _, err := c.apdCtx().Round(&r, d); err != nil {
		return NaN()
	}
	return decimalValue(&r)
}

func decimalValue(d *apd.Decimal) Value {
	switch d.Form {
	case apd.Infinite:
		if d.Negative {
			return NegInfinity()
		}
		return Infinity()
	case apd.NaN, apd.NaNSignaling:
		return NaN()
	}
	r := new(apd.Decimal)
	r.Reduce(d)
	if r.IsZero() {
		r.Negative = false
	}
	return Value{kind: KindDecimal, dec: r}
}

// fromResult converts the outcome of an apd operation into a Value. A finite
// operation that overflows the exponent range has no closed form; underflow
// rounds to zero and any other trapped condition is NaN.
func fromResult(d *apd.Decimal, cond apd.Condition, err error) (Value, bool) {
	if err != nil {
		if cond&apd.Overflow != 0 {
			return Value{}, false
		}
		if cond&apd.Underflow != 0 {
			return decimalValue(apd.New(0, 0)), true
		}
		return NaN(), true
	}
	return decimalValue(d), true
}

// exact wraps r as an exact value unless it grew past MaxExactDigits, in which
// case it is converted, once and for good, to a decimal.
func (c *Context) exact(r *big.Rat) Value {
	if digits(r.Num()) > c.maxExactDigits || digits(r.Denom()) > c.maxExactDigits {
		d, ok := c.ratDecimal(r)
		if !ok {
			return NaN()
		}
		return decimalValue(d)
	}
	return Rat(r)
}

// digits estimates the number of decimal digits of n from its bit length.
func digits(n *big.Int) int {
	return int(float64(n.BitLen())*math.Log10(2)) + 1
}

func bigDecimal(n *big.Int) *apd.Decimal {
	d, _, err := apd.NewFromString(n.String())
	if err != nil {
		return apd.New(0, 0)
	}
	return d
}

func (c *Context) ratDecimal(r *big.Rat) (*apd.Decimal, bool) {
	num := bigDecimal(r.Num())
	if r.IsInt() {
		var out apd.Decimal
		if _, err := c.apdCtx().Round(&out, num); err != nil {
			return nil, false
		}
		return &out, true
	}
	var out apd.Decimal
	if _, err := c.apdCtx().Quo(&out, num, bigDecimal(r.Denom())); err != nil {
		return nil, false
	}
	return &out, true
}

// ToDecimal approximates a finite value at the context precision. It fails
// for infinities and NaN.
func (c *Context) ToDecimal(v Value) (*apd.Decimal, bool) {
	dc := c.apdCtx()
	switch v.kind {
	case KindInteger, KindRational:
		return c.ratDecimal(v.ratVal())
	case KindDecimal:
		return new(apd.Decimal).Set(v.dec), true
	case KindConstant:
		var out apd.Decimal
		if v.c == ConstPi {
			pi, _, _ := apd.NewFromString(piDigits)
			if _, err := dc.Round(&out, pi); err != nil {
				return nil, false
			}
			return &out, true
		}
		if _, err := dc.Exp(&out, apd.New(1, 0)); err != nil {
			return nil, false
		}
		return &out, true
	case KindRadical:
		// Two guard digits keep the product below correctly rounded.
		wide := *dc
		wide.Precision += 2
		rad := bigDecimal(v.radicand)
		var root apd.Decimal
		var err error
		switch v.index {
		case 2:
			_, err = wide.Sqrt(&root, rad)
		case 3:
			_, err = wide.Cbrt(&root, rad)
		default:
			var inv apd.Decimal
			if _, err = wide.Quo(&inv, apd.New(1, 0), apd.New(int64(v.index), 0)); err == nil {
				_, err = wide.Pow(&root, rad, &inv)
			}
		}
		if err != nil {
			return nil, false
		}
		coeff, ok := c.ratDecimal(v.rat)
		if !ok {
			return nil, false
		}
		var out apd.Decimal
		if _, err := dc.Mul(&out, coeff, &root); err != nil {
			return nil, false
		}
		return &out, true
	}
	return nil, false
}

// Approximate converts a finite value to a decimal Value. Specials are
// returned unchanged.
func (c *Context) Approximate(v Value) Value {
	if v.kind == KindSpecial || v.kind == KindDecimal {
		return v
	}
	d, ok := c.ToDecimal(v)
	if !ok {
		return NaN()
	}
	return c.decimal(d)
}

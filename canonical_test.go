package symkernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sk "github.com/njchilds90/symkernel"
	"github.com/njchilds90/symkernel/number"
)

var (
	x = sk.S("x")
	y = sk.S("y")
	c = sk.S("c")
)

func assertCanonical(t *testing.T, in, want sk.Expr) {
	t.Helper()
	got := sk.Canonicalize(in)
	assert.Truef(t, want.Equal(got), "canonicalize(%s) = %s, want %s", in, got, want)
}

// ============================================================
// Desugaring
// ============================================================

func TestCanonical_Subtract(t *testing.T) {
	assertCanonical(t, sk.Subtract(x, y), sk.Add(x, sk.Mul(sk.N(-1), y)))
}

func TestCanonical_Negate(t *testing.T) {
	assertCanonical(t, sk.Negate(x), sk.Mul(sk.N(-1), x))
	assertCanonical(t, sk.Negate(sk.Negate(x)), x)
}

func TestCanonical_Divide(t *testing.T) {
	assertCanonical(t, sk.Divide(x, y), sk.Mul(x, sk.Pow(y, sk.N(-1))))
	assertCanonical(t, sk.Divide(x, sk.N(2)), sk.Mul(sk.F(1, 2), x))
}

func TestCanonical_Rational(t *testing.T) {
	assertCanonical(t, sk.Rational(sk.N(6), sk.N(8)), sk.F(3, 4))
	assertCanonical(t, sk.Rational(sk.N(1), sk.N(0)), sk.NaN())
}

func TestCanonical_Sqrt(t *testing.T) {
	assertCanonical(t, sk.Sqrt(x), sk.Pow(x, sk.F(1, 2)))
	assertCanonical(t, sk.Sqrt(sk.N(16)), sk.N(4))
}

func TestCanonical_Root(t *testing.T) {
	assertCanonical(t, sk.Root(x, sk.N(3)), sk.Pow(x, sk.F(1, 3)))
	assertCanonical(t, sk.Root(sk.N(-27), sk.N(3)), sk.N(-3))
}

func TestCanonical_SquareAndExp(t *testing.T) {
	assertCanonical(t, sk.Call("Square", x), sk.Pow(x, sk.N(2)))
	assertCanonical(t, sk.Call("Exp", x), sk.Pow(sk.E(), x))
}

func TestCanonical_Log(t *testing.T) {
	assertCanonical(t, sk.Call("Log", x), sk.Log(x, sk.N(10)))
	assertCanonical(t, sk.Log(x, sk.E()), sk.Ln(x))
	assertCanonical(t, sk.Log(sk.N(8), sk.N(2)), sk.N(3))
	assertCanonical(t, sk.Log(sk.N(9), sk.N(3)), sk.N(2))
	assertCanonical(t, sk.Call("Log", sk.N(100)), sk.N(2))
	assertCanonical(t, sk.Log(sk.F(1, 8), sk.N(2)), sk.N(-3))
	assertCanonical(t, sk.Log(sk.N(6), sk.N(2)), sk.Log(sk.N(6), sk.N(2)))
	assertCanonical(t, sk.Ln(sk.N(1)), sk.N(0))
	assertCanonical(t, sk.Ln(sk.N(0)), sk.NaN())
}

// ============================================================
// Flattening, folding and identities
// ============================================================

func TestCanonical_FlattenAndFold(t *testing.T) {
	in := sk.Add(sk.N(1), sk.Add(x, sk.N(2)), sk.F(1, 2))
	assertCanonical(t, in, sk.Add(x, sk.F(7, 2)))
}

func TestCanonical_Identities(t *testing.T) {
	assertCanonical(t, sk.Add(x, sk.N(0)), x)
	assertCanonical(t, sk.Mul(sk.N(1), x), x)
	assertCanonical(t, sk.Mul(sk.N(0), x, y), sk.N(0))
	assertCanonical(t, sk.Pow(x, sk.N(0)), sk.N(1))
	assertCanonical(t, sk.Pow(x, sk.N(1)), x)
	assertCanonical(t, sk.Pow(sk.N(1), x), sk.N(1))
}

func TestCanonical_ZeroBase(t *testing.T) {
	assertCanonical(t, sk.Pow(sk.N(0), sk.Pi()), sk.N(0))
	assertCanonical(t, sk.Pow(sk.N(0), sk.Mul(sk.N(-1), sk.Pi())), sk.NaN())
	assertCanonical(t, sk.Pow(sk.N(0), x), sk.Pow(sk.N(0), x))
}

func TestCanonical_NaNAbsorbs(t *testing.T) {
	assertCanonical(t, sk.Add(x, sk.NaN()), sk.NaN())
	assertCanonical(t, sk.Mul(sk.N(0), sk.NaN()), sk.NaN())
	assertCanonical(t, sk.Divide(sk.N(1), sk.N(0)), sk.NaN())
	assertCanonical(t, sk.Add(sk.Inf(), sk.NegInf()), sk.NaN())
}

func TestCanonical_SignNormalization(t *testing.T) {
	assertCanonical(t, sk.Pow(sk.Negate(x), sk.N(3)), sk.Mul(sk.N(-1), sk.Pow(x, sk.N(3))))
	assertCanonical(t, sk.Pow(sk.Negate(x), sk.N(4)), sk.Pow(x, sk.N(4)))
	assertCanonical(t, sk.Pow(sk.Negate(x), sk.F(1, 2)),
		sk.Pow(sk.Mul(sk.N(-1), x), sk.F(1, 2)))
}

func TestCanonical_Trig(t *testing.T) {
	assertCanonical(t, sk.Call("Sin", sk.N(0)), sk.N(0))
	assertCanonical(t, sk.Call("Cos", sk.N(0)), sk.N(1))
	assertCanonical(t, sk.Call("Arctan", sk.Inf()), sk.Mul(sk.F(1, 2), sk.Pi()))
	assertCanonical(t, sk.Call("Tanh", sk.NegInf()), sk.N(-1))
	assertCanonical(t, sk.Call("Sin", sk.Inf()), sk.NaN())
}

func TestCanonical_Relational(t *testing.T) {
	assertCanonical(t, sk.Less(sk.N(1), sk.N(2)), sk.S("True"))
	assertCanonical(t, sk.Call("GreaterEqual", sk.F(1, 3), sk.N(1)), sk.S("False"))
	assertCanonical(t, sk.Call("Equal", sk.NaN(), sk.NaN()), sk.S("False"))
	assertCanonical(t, sk.Call("NotEqual", sk.NaN(), sk.NaN()), sk.S("True"))
}

// ============================================================
// Ordering and shape
// ============================================================

func TestCanonical_OrderIndependent(t *testing.T) {
	sq := sk.Pow(x, sk.N(2))
	a := sk.Canonicalize(sk.Add(x, y, sk.N(2), sq))
	b := sk.Canonicalize(sk.Add(sk.N(2), sq, y, x))
	assert.True(t, a.Equal(b), "%s vs %s", a, b)

	m1 := sk.Canonicalize(sk.Mul(y, sk.Pi(), x, sk.N(3)))
	m2 := sk.Canonicalize(sk.Mul(sk.N(3), x, y, sk.Pi()))
	assert.True(t, m1.Equal(m2), "%s vs %s", m1, m2)
}

func TestCanonical_LiteralsLastInSum(t *testing.T) {
	got := sk.Canonicalize(sk.Add(sk.N(2), x)).(*sk.Fn)
	assert.Equal(t, "Add", got.Name())
	assert.True(t, x.Equal(got.Arg(0)))
	assert.True(t, sk.N(2).Equal(got.Arg(1)))
}

func TestCanonical_OpaqueLeaf(t *testing.T) {
	list := sk.Call("List", sk.Add(x, sk.N(0)), sk.N(3))
	got := sk.Canonicalize(list)
	assert.Same(t, list, got)
}

func TestCanonical_WrongArityKept(t *testing.T) {
	in := sk.Call("Power", x)
	assertCanonical(t, in, in)
	in = sk.Call("Sqrt", x, y)
	assertCanonical(t, in, in)
}

func TestCanonical_UnknownHeadOperands(t *testing.T) {
	assertCanonical(t, sk.Call("Foo", sk.Add(x, sk.N(0))), sk.Call("Foo", x))
}

func TestCanonical_DecimalFallback(t *testing.T) {
	v, err := number.DefaultContext().ParseLiteral("0.5")
	if assert.NoError(t, err) {
		got := sk.Canonicalize(sk.Add(sk.NumOf(v), sk.F(1, 3))).(*sk.Num)
		assert.True(t, got.Value().IsDecimal())
	}
}

func TestCanonical_OverflowStaysUnevaluated(t *testing.T) {
	huge, err := number.DefaultContext().ParseLiteral("1e23")
	if assert.NoError(t, err) {
		in := sk.Pow(sk.N(2), sk.NumOf(huge))
		assertCanonical(t, in, in)
	}
}

func TestKey_Distinguishes(t *testing.T) {
	assert.NotEqual(t, sk.Key(sk.S("x")), sk.Key(sk.Text("x")))
	assert.NotEqual(t, sk.Key(sk.N(1)), sk.Key(sk.S("1")))
	assert.Equal(t, sk.Key(sk.Add(x, y)), sk.Key(sk.Add(x, y)))
}

func TestString_Infix(t *testing.T) {
	assert.Equal(t, "-x^3", sk.Canonicalize(sk.Pow(sk.Negate(x), sk.N(3))).String())
	assert.Equal(t, "x + 1", sk.Canonicalize(sk.Add(sk.N(1), x)).String())
	assert.Equal(t, "x - y", sk.Canonicalize(sk.Subtract(x, y)).String())
	assert.Equal(t, "Sin(x)", sk.Call("Sin", x).String())
}

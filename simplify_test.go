package symkernel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	sk "github.com/njchilds90/symkernel"
)

func assertSimplifies(t *testing.T, in, want sk.Expr) {
	t.Helper()
	got := sk.Simplify(in)
	w := sk.Canonicalize(want)
	assert.Truef(t, w.Equal(got), "simplify(%s) = %s, want %s", in, got, w)
}

func assertStays(t *testing.T, in sk.Expr) {
	t.Helper()
	assertSimplifies(t, in, in)
}

func pow(b sk.Expr, n int64) sk.Expr { return sk.Pow(b, sk.N(n)) }

func fn(name string, args ...sk.Expr) sk.Expr { return sk.Call(name, args...) }

// ============================================================
// Scenarios
// ============================================================

func TestSimplify_Scenarios(t *testing.T) {
	assertSimplifies(t, sk.Rational(sk.N(6), sk.N(8)), sk.F(3, 4))
	assertSimplifies(t, sk.Add(x, sk.N(0)), x)
	assertSimplifies(t, sk.Add(x, sk.Mul(sk.N(2), x)), sk.Mul(sk.N(3), x))
	assertSimplifies(t, sk.Pow(sk.Negate(x), sk.N(3)), sk.Negate(pow(x, 3)))
	assertSimplifies(t, sk.Sqrt(pow(x, 6)), pow(sk.Abs(x), 3))
}

func TestSimplify_DivideSelfStays(t *testing.T) {
	got := sk.Simplify(sk.Divide(x, x))
	assert.False(t, sk.N(1).Equal(got))
	assertStays(t, sk.Divide(x, x))
}

// ============================================================
// Sums
// ============================================================

func TestSimplify_LikeTerms(t *testing.T) {
	assertSimplifies(t, sk.Subtract(sk.Mul(sk.N(3), x), x), sk.Mul(sk.N(2), x))
	assertSimplifies(t, sk.Subtract(x, x), sk.N(0))

	// 2 pi x^2 - pi x^2 + 2 pi
	in := sk.Add(
		sk.Mul(sk.N(2), sk.Pi(), pow(x, 2)),
		sk.Negate(sk.Mul(sk.Pi(), pow(x, 2))),
		sk.Mul(sk.N(2), sk.Pi()),
	)
	assertSimplifies(t, in, sk.Add(sk.Mul(sk.Pi(), pow(x, 2)), sk.Mul(sk.N(2), sk.Pi())))
}

func TestSimplify_CancelKeepsDomain(t *testing.T) {
	in := sk.Subtract(sk.Divide(sk.N(1), x), sk.Divide(sk.N(1), x))
	assert.False(t, sk.N(0).Equal(sk.Simplify(in)))
}

func TestSimplify_CommonDenominator(t *testing.T) {
	assertSimplifies(t,
		sk.Subtract(sk.Divide(sk.N(3), x), sk.Divide(sk.N(1), x)),
		sk.Divide(sk.N(2), x))
	assertSimplifies(t,
		sk.Subtract(sk.Divide(sk.N(1), sk.Add(x, sk.N(1))), sk.Divide(sk.N(1), x)),
		sk.Mul(sk.N(-1), pow(x, -1), pow(sk.Add(x, sk.N(1)), -1)))
}

func TestSimplify_ExpandInSum(t *testing.T) {
	assertSimplifies(t,
		sk.Add(sk.Mul(x, y), sk.Mul(sk.Add(x, sk.N(1)), y)),
		sk.Add(sk.Mul(sk.N(2), x, y), y))
	assertSimplifies(t,
		sk.Subtract(pow(sk.Add(x, sk.N(1)), 2), pow(x, 2)),
		sk.Add(sk.Mul(sk.N(2), x), sk.N(1)))
}

func TestSimplify_NoExpansionWithoutCancellation(t *testing.T) {
	assertStays(t, sk.Add(pow(sk.Add(x, sk.N(1)), 2), y))
}

func TestSimplify_DistributeCoefficient(t *testing.T) {
	assertSimplifies(t, sk.Mul(sk.N(2), sk.Add(x, sk.N(1))), sk.Add(sk.Mul(sk.N(2), x), sk.N(2)))
}

// ============================================================
// Powers
// ============================================================

func TestSimplify_LikeBases(t *testing.T) {
	assertSimplifies(t, sk.Mul(pow(x, 2), pow(x, 3)), pow(x, 5))
	assertSimplifies(t, sk.Mul(x, x), pow(x, 2))
	assertSimplifies(t, sk.Mul(sk.Pi(), sk.Pi()), pow(sk.Pi(), 2))
	assertStays(t, sk.Divide(pow(x, 2), x))
	assertStays(t, sk.Mul(sk.Pow(x, sk.F(-1, 3)), x))
}

func TestSimplify_RadicalExponent(t *testing.T) {
	in := sk.Divide(sk.Pow(x, sk.Sqrt(sk.N(2))), pow(x, 3))
	assertSimplifies(t, in, sk.Pow(x, sk.Add(sk.Sqrt(sk.N(2)), sk.N(-3))))
}

func TestSimplify_DoublePower(t *testing.T) {
	assertSimplifies(t, sk.Sqrt(pow(x, 4)), pow(x, 2))
	assertSimplifies(t, sk.Root(pow(x, 4), sk.N(4)), sk.Abs(x))
	assertSimplifies(t, sk.Pow(pow(x, 3), sk.F(1, 3)), x)
	assertSimplifies(t, sk.Pow(sk.Pow(sk.Pi(), x), sk.N(2)), sk.Pow(sk.Pi(), sk.Mul(sk.N(2), x)))
	assertStays(t, pow(pow(x, -2), -2))
	assertStays(t, pow(sk.Sqrt(x), 2))
}

func TestSimplify_PowerOfProduct(t *testing.T) {
	assertSimplifies(t, pow(sk.Mul(sk.N(2), x), 3), sk.Mul(sk.N(8), pow(x, 3)))
	assertSimplifies(t, pow(sk.Mul(x, y), -1), sk.Mul(pow(x, -1), pow(y, -1)))
	assertStays(t, pow(sk.Divide(sk.N(3), x), -1))
}

func TestSimplify_AbsEvenPower(t *testing.T) {
	assertSimplifies(t, pow(sk.Abs(x), 4), pow(x, 4))
	assertStays(t, pow(sk.Abs(x), 3))
}

func TestSimplify_NestedQuotientWithConstant(t *testing.T) {
	in := sk.Divide(x, sk.Divide(sk.N(1), sk.Negate(sk.Pi())))
	assertSimplifies(t, in, sk.Mul(sk.N(-1), sk.Pi(), x))
}

// ============================================================
// Logarithms and exponentials
// ============================================================

func TestSimplify_LogOfPower(t *testing.T) {
	assertSimplifies(t, sk.Ln(pow(x, 3)), sk.Mul(sk.N(3), sk.Ln(x)))
	assertSimplifies(t, sk.Ln(pow(x, 2)), sk.Mul(sk.N(2), sk.Ln(sk.Abs(x))))
	assertSimplifies(t, sk.Ln(sk.Pow(sk.E(), x)), x)
	assertSimplifies(t, sk.Log(sk.Pow(c, x), c), x)
}

func TestSimplify_LogIdentity(t *testing.T) {
	assertSimplifies(t, sk.Log(c, c), sk.N(1))
	assertSimplifies(t, sk.Log(sk.N(1), c), sk.N(0))
	assertSimplifies(t, sk.Log(sk.N(0), c), sk.NaN())
	assertSimplifies(t, sk.Ln(sk.F(1, 2)), sk.Negate(sk.Ln(sk.N(2))))
}

func TestSimplify_LogOfProduct(t *testing.T) {
	assertSimplifies(t, sk.Ln(sk.Mul(sk.Pow(sk.E(), x), y)), sk.Add(x, sk.Ln(y)))
	assertSimplifies(t,
		sk.Log(sk.Divide(sk.Pow(c, x), y), c),
		sk.Subtract(x, sk.Log(y, c)))
}

func TestSimplify_LogSum(t *testing.T) {
	assertSimplifies(t, sk.Subtract(sk.Ln(sk.Mul(x, y)), sk.Ln(x)), sk.Ln(y))
}

func TestSimplify_ExpOfLog(t *testing.T) {
	assertSimplifies(t, sk.Pow(sk.E(), sk.Ln(x)), x)
	assertSimplifies(t, sk.Pow(c, sk.Log(x, c)), x)
	assertSimplifies(t, sk.Pow(sk.E(), sk.Mul(sk.N(3), sk.Ln(x))), pow(x, 3))
	assertSimplifies(t,
		sk.Pow(sk.E(), sk.Add(sk.Ln(x), sk.N(2))),
		sk.Mul(x, sk.Pow(sk.E(), sk.N(2))))
}

func TestSimplify_ChangeOfBase(t *testing.T) {
	a, b := sk.S("a"), sk.S("b")
	assertSimplifies(t, sk.Divide(sk.Log(a, c), sk.Ln(a)), sk.Divide(sk.N(1), sk.Ln(c)))
	assertSimplifies(t, sk.Divide(sk.Ln(a), sk.Log(a, c)), sk.Ln(c))
	assertSimplifies(t, sk.Divide(sk.Log(a, c), sk.Log(b, c)), sk.Divide(sk.Ln(a), sk.Ln(b)))
}

// ============================================================
// Absolute value and parity
// ============================================================

func TestSimplify_Abs(t *testing.T) {
	assertSimplifies(t, sk.Abs(sk.Negate(x)), sk.Abs(x))
	assertSimplifies(t, sk.Abs(sk.Abs(x)), sk.Abs(x))
	assertSimplifies(t, sk.Abs(pow(x, 3)), pow(sk.Abs(x), 3))
	assertSimplifies(t, sk.Abs(pow(x, 2)), pow(x, 2))
	assertSimplifies(t, sk.Abs(sk.Sqrt(x)), sk.Sqrt(x))
	assertSimplifies(t, sk.Abs(sk.Negate(sk.Pi())), sk.Pi())
	assertSimplifies(t, sk.Abs(fn("Sin", x)), fn("Sin", sk.Abs(x)))
}

func TestSimplify_TrigParity(t *testing.T) {
	assertSimplifies(t, fn("Cos", sk.Abs(x)), fn("Cos", x))
	assertSimplifies(t, fn("Cos", sk.Negate(x)), fn("Cos", x))
	assertSimplifies(t, fn("Sin", sk.Negate(x)), sk.Negate(fn("Sin", x)))
	assertSimplifies(t, fn("Tanh", sk.Mul(sk.N(-2), x)), sk.Negate(fn("Tanh", sk.Mul(sk.N(2), x))))
	assertStays(t, fn("Arccos", sk.Negate(x)))
}

// ============================================================
// Relations
// ============================================================

func TestSimplify_Relational(t *testing.T) {
	assertSimplifies(t, sk.Less(sk.Pi(), sk.N(4)), sk.S("True"))
	assertSimplifies(t, sk.Less(sk.Mul(sk.N(2), x), sk.N(4)), sk.Less(x, sk.N(2)))
	assertSimplifies(t,
		fn("Equal", sk.Add(sk.Mul(sk.N(3), x), sk.N(6)), sk.Mul(sk.N(9), y)),
		fn("Equal", sk.Add(x, sk.N(2)), sk.Mul(sk.N(3), y)))
	assertStays(t, sk.Less(x, y))
}

// ============================================================
// Driver properties
// ============================================================

func TestSimplify_Idempotent(t *testing.T) {
	inputs := []sk.Expr{
		sk.Subtract(sk.Divide(sk.N(1), sk.Add(x, sk.N(1))), sk.Divide(sk.N(1), x)),
		sk.Sqrt(pow(x, 6)),
		sk.Ln(sk.Mul(sk.Pow(sk.E(), x), y)),
		sk.Divide(x, x),
		sk.Add(sk.Mul(x, y), sk.Mul(sk.Add(x, sk.N(1)), y)),
		fn("Sin", sk.Negate(sk.Abs(x))),
	}
	for _, in := range inputs {
		once := sk.Simplify(in)
		twice := sk.Simplify(once)
		assert.Truef(t, once.Equal(twice), "%s: %s then %s", in, once, twice)
	}
}

func TestSimplify_OrderIndependent(t *testing.T) {
	a := sk.Simplify(sk.Add(sk.Mul(sk.N(2), x), y, x, sk.N(1)))
	b := sk.Simplify(sk.Add(sk.N(1), x, y, sk.Mul(sk.N(2), x)))
	assert.True(t, a.Equal(b), "%s vs %s", a, b)
}

func TestSimplify_Exact(t *testing.T) {
	got := sk.Simplify(sk.Add(sk.F(1, 3), sk.F(1, 6), sk.Sqrt(sk.N(8))))
	assertSimplifies(t, got, sk.Add(sk.Mul(sk.N(2), sk.Sqrt(sk.N(2))), sk.F(1, 2)))
}

func TestSimplify_OpaqueLeafUntouched(t *testing.T) {
	list := sk.Call("List", sk.Add(x, x), sk.Divide(sk.N(6), sk.N(8)))
	got := sk.Simplify(sk.Add(sk.Mul(sk.N(2), list), sk.Mul(sk.N(3), list)))
	assertSimplifies(t, got, sk.Mul(sk.N(5), list))

	f, ok := got.(*sk.Fn)
	require.True(t, ok)
	assert.Same(t, list, f.Arg(1))
}

func TestSimplify_NaNPropagates(t *testing.T) {
	assertSimplifies(t, sk.Mul(x, sk.Add(y, sk.Ln(sk.N(0)))), sk.NaN())
}

func TestSimplify_UnknownHead(t *testing.T) {
	assertSimplifies(t, fn("Foo", sk.Add(x, x)), fn("Foo", sk.Mul(sk.N(2), x)))
	assertStays(t, fn("Power", x))
}

// ============================================================
// Engine
// ============================================================

func TestNew_InvalidConfig(t *testing.T) {
	cfg := sk.DefaultConfig()
	cfg.Precision = 0
	_, err := sk.New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precision")

	cfg = sk.DefaultConfig()
	cfg.MaxIterations = 0
	_, err = sk.New(cfg)
	require.Error(t, err)
}

func TestEngine_CustomRuleAndObserver(t *testing.T) {
	var (
		mu    sync.Mutex
		fired []string
	)
	rule := sk.Rule{
		Name: "foo-identity",
		Apply: func(e *sk.Engine, f *sk.Fn) (sk.Expr, bool) {
			if f.Len() != 1 {
				return nil, false
			}
			return f.Arg(0), true
		},
	}
	e, err := sk.New(sk.DefaultConfig(),
		sk.WithRule("Foo", rule),
		sk.WithObserver(func(rule, head string) {
			mu.Lock()
			fired = append(fired, head+":"+rule)
			mu.Unlock()
		}))
	require.NoError(t, err)

	got := e.Simplify(sk.Add(fn("Foo", x), x))
	assert.True(t, sk.Mul(sk.N(2), x).Equal(got), "got %s", got)
	assert.Contains(t, fired, "Foo:foo-identity")
	assert.Contains(t, fired, "Add:like-terms")
}

func TestEngine_PanickingRuleIsIgnored(t *testing.T) {
	bad := sk.Rule{
		Name:  "boom",
		Apply: func(*sk.Engine, *sk.Fn) (sk.Expr, bool) { panic("boom") },
	}
	e, err := sk.New(sk.DefaultConfig(), sk.WithRule("Foo", bad))
	require.NoError(t, err)
	got := e.Simplify(sk.Add(fn("Foo", x), sk.N(0)))
	assert.True(t, fn("Foo", x).Equal(got), "got %s", got)
}

func TestEngine_IterationCap(t *testing.T) {
	grow := sk.Rule{
		Name: "grow",
		Apply: func(e *sk.Engine, f *sk.Fn) (sk.Expr, bool) {
			return sk.Call("Foo", sk.Add(f.Arg(0), sk.N(1))), true
		},
	}
	cfg := sk.DefaultConfig()
	cfg.MaxIterations = 5
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := sk.New(cfg, sk.WithRule("Foo", grow), sk.WithLogger(zap.New(core)))
	require.NoError(t, err)

	got := e.Simplify(fn("Foo", x))
	assertSimplifies(t, got, fn("Foo", sk.Add(x, sk.N(5))))
	assert.Equal(t, 1, logs.FilterMessage("iteration cap reached").Len())
	assert.Equal(t, 5, logs.FilterMessage("rule fired").Len())
}

func TestEngine_CacheDisabled(t *testing.T) {
	cfg := sk.DefaultConfig()
	cfg.CacheSize = 0
	e, err := sk.New(cfg)
	require.NoError(t, err)
	in := sk.Add(x, sk.Mul(sk.N(2), x))
	assert.True(t, e.Simplify(in).Equal(sk.Default().Simplify(in)))
}

func TestEngine_LowPrecision(t *testing.T) {
	cfg := sk.DefaultConfig()
	cfg.Precision = 5
	e, err := sk.New(cfg)
	require.NoError(t, err)
	v, err := e.Numbers().ParseLiteral("0.1")
	require.NoError(t, err)
	got := e.Simplify(sk.Add(sk.NumOf(v), sk.F(1, 3)))
	assert.Equal(t, "0.43333", got.String())
	assert.Equal(t, uint32(5), e.Config().Precision)
}

func TestEngine_SimplifyAll(t *testing.T) {
	in := []sk.Expr{
		sk.Add(x, x),
		sk.Rational(sk.N(6), sk.N(8)),
		sk.Sqrt(pow(x, 6)),
	}
	out, err := sk.Default().SimplifyAll(context.Background(), in, 2)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.True(t, sk.Simplify(in[i]).Equal(out[i]))
	}
}

func TestEngine_SimplifyAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sk.Default().SimplifyAll(ctx, []sk.Expr{x, y}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

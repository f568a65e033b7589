package symkernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sk "github.com/njchilds90/symkernel"
)

func TestLaTeX(t *testing.T) {
	cases := []struct {
		in   sk.Expr
		want string
	}{
		{sk.N(-3), `-3`},
		{sk.F(-1, 3), `-\frac{1}{3}`},
		{sk.Pi(), `\pi`},
		{sk.NegInf(), `-\infty`},
		{sk.Canonicalize(sk.Sqrt(sk.N(12))), `2\sqrt{3}`},
		{sk.Text("hi"), `\text{hi}`},
		{sk.Canonicalize(sk.Subtract(x, y)), `x - y`},
		{sk.Canonicalize(sk.Divide(x, y)), `\frac{x}{y}`},
		{sk.Canonicalize(sk.Pow(x, sk.N(-2))), `\frac{1}{x^{2}}`},
		{sk.Canonicalize(sk.Negate(sk.Divide(sk.N(1), x))), `-\frac{1}{x}`},
		{sk.Canonicalize(sk.Sqrt(x)), `\sqrt{x}`},
		{sk.Canonicalize(sk.Root(x, sk.N(3))), `\sqrt[3]{x}`},
		{sk.Canonicalize(sk.Call("Exp", x)), `e^{x}`},
		{sk.Pow(sk.Abs(x), sk.N(3)), `\left|x\right|^{3}`},
		{sk.Pow(sk.Add(x, sk.N(1)), sk.N(2)), `\left(x + 1\right)^{2}`},
		{sk.Mul(sk.N(2), sk.Add(x, sk.N(1))), `2 \left(x + 1\right)`},
		{sk.Log(x, sk.N(2)), `\log_{2}\left(x\right)`},
		{sk.Call("Sin", x), `\sin\left(x\right)`},
		{sk.Call("Sech", x), `\operatorname{Sech}\left(x\right)`},
		{sk.Less(x, sk.N(2)), `x < 2`},
		{sk.Call("GreaterEqual", x, y), `x \ge y`},
		{sk.Call("Foo", x, y), `\operatorname{Foo}\left(x, y\right)`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sk.LaTeX(tc.in), tc.in.String())
	}
}

package number

// Sign returns -1, 0 or +1. It fails for NaN and for values whose sign cannot
// be approximated.
func (c *Context) Sign(v Value) (int, bool) {
	switch v.kind {
	case KindInteger, KindRational:
		return v.ratVal().Sign(), true
	case KindRadical:
		return v.rat.Sign(), true
	case KindDecimal:
		return v.dec.Sign(), true
	case KindConstant:
		return 1, true
	case KindSpecial:
		switch v.s {
		case PositiveInfinity:
			return 1, true
		case NegativeInfinity:
			return -1, true
		}
	}
	return 0, false
}

// Compare orders two values by magnitude on the extended real line. NaN is
// incomparable. Exact rationals compare exactly; everything else compares
// through decimal approximations.
func (c *Context) Compare(a, b Value) (int, bool) {
	if a.IsNaN() || b.IsNaN() {
		return 0, false
	}
	if a.kind == KindSpecial || b.kind == KindSpecial {
		ra, rb := specialRank(a), specialRank(b)
		if ra != rb {
			if ra < rb {
				return -1, true
			}
			return 1, true
		}
		if a.kind == KindSpecial {
			return 0, true
		}
	}
	if a.IsRational() && b.IsRational() {
		return a.ratVal().Cmp(b.ratVal()), true
	}
	if a.Equal(b) {
		return 0, true
	}
	x, ok := c.ToDecimal(a)
	if !ok {
		return 0, false
	}
	y, ok := c.ToDecimal(b)
	if !ok {
		return 0, false
	}
	return x.Cmp(y), true
}

func specialRank(v Value) int {
	if v.kind != KindSpecial {
		return 0
	}
	if v.s == NegativeInfinity {
		return -1
	}
	return 1
}

// CompareAbs compares |a| with |b|.
func (c *Context) CompareAbs(a, b Value) (int, bool) {
	return c.Compare(c.Abs(a), c.Abs(b))
}

// IsPositive reports whether v is known to be strictly positive.
func (c *Context) IsPositive(v Value) bool {
	s, ok := c.Sign(v)
	return ok && s > 0
}

// IsNegative reports whether v is known to be strictly negative.
func (c *Context) IsNegative(v Value) bool {
	s, ok := c.Sign(v)
	return ok && s < 0
}

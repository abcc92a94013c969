package eval

import (
	"math/big"
)

// maxFoldedExponent bounds the integer exponents folded exactly during
// reduction, so "2^100000000" cannot eat the process.
const maxFoldedExponent = 4096

// Reduce simplifies the expression exactly: nested sums and products are
// flattened, all numeric terms are collapsed with exact rational arithmetic,
// duplicate terms are grouped (x+x -> x*2, x*x -> x^2), and trigonometric
// functions of integer multiples of pi reduce to their exact values.
//
// The only arithmetic errors possible here are evaluation errors such as the
// inverse of zero; those are returned as EvalError.
func (n *Node) Reduce() (*Node, error) {
	switch n.Kind {
	case KindVarOp:
		children, err := reduceAll(flatten(n.Children, n.Op))
		if err != nil {
			return nil, err
		}
		children = collapseNumbers(children, n.Op)
		if n.Op == OpMul {
			for _, c := range children {
				if c.IsNum(new(big.Rat)) {
					return Zero(), nil
				}
			}
		}
		children = groupByFactors(children, n.Op)
		switch len(children) {
		case 0:
			return Num(n.Op.identity()), nil
		case 1:
			return children[0], nil
		default:
			return &Node{Kind: KindVarOp, Op: n.Op, Children: children}, nil
		}

	case KindPow:
		a, err := n.X.Reduce()
		if err != nil {
			return nil, err
		}
		b, err := n.Y.Reduce()
		if err != nil {
			return nil, err
		}
		switch {
		case a.IsNum(big.NewRat(1, 1)):
			// 1^k = 1
			return One(), nil
		case b.IsNum(new(big.Rat)):
			// k^0 = 1
			return One(), nil
		}
		if folded, ok, err := foldPow(a, b); ok || err != nil {
			return folded, err
		}
		return Pow(a, b), nil

	case KindInverse:
		inner, err := n.X.Reduce()
		if err != nil {
			return nil, err
		}
		if inner.Kind == KindNum {
			if inner.Val.Sign() == 0 {
				return nil, DivisionByZeroError{}
			}
			return NumInBase(new(big.Rat).Inv(inner.Val), inner.Base), nil
		}
		return Inverse(inner), nil

	case KindSin, KindCos, KindTan:
		inner, err := n.X.Reduce()
		if err != nil {
			return nil, err
		}
		if m, ok := inner.piMultiplier(); ok {
			return trigOfPiMultiple(n.Kind, m), nil
		}
		return &Node{Kind: n.Kind, X: inner}, nil

	default:
		return n, nil
	}
}

// trigOfPiMultiple evaluates sin/cos/tan at m*pi exactly. sin and tan vanish
// at every integer multiple of pi; cos alternates between 1 and -1.
func trigOfPiMultiple(kind NodeKind, m int64) *Node {
	if kind != KindCos {
		return Zero()
	}
	if m%2 == 0 {
		return One()
	}
	return MinusOne()
}

// foldPow computes rational^integer exactly for reasonably small exponents.
func foldPow(a, b *Node) (*Node, bool, error) {
	if a.Kind != KindNum || b.Kind != KindNum || !b.Val.IsInt() {
		return nil, false, nil
	}
	if !b.Val.Num().IsInt64() {
		return nil, false, nil
	}
	exp := b.Val.Num().Int64()
	abs := exp
	if abs < 0 {
		abs = -abs
	}
	if abs > maxFoldedExponent {
		return nil, false, nil
	}
	if exp < 0 && a.Val.Sign() == 0 {
		return nil, false, DivisionByZeroError{}
	}
	num := new(big.Int).Exp(a.Val.Num(), big.NewInt(abs), nil)
	den := new(big.Int).Exp(a.Val.Denom(), big.NewInt(abs), nil)
	r := new(big.Rat).SetFrac(num, den)
	if exp < 0 {
		r.Inv(r)
	}
	return NumInBase(r, opResultBase(a.Base, b.Base)), true, nil
}

func reduceAll(children []*Node) ([]*Node, error) {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		r, err := c.Reduce()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// flatten turns add(add(1, add(2)), 3) into add(1, 2, 3).
func flatten(children []*Node, kind OpKind) []*Node {
	var out []*Node
	remaining := children
	for len(remaining) > 0 {
		var next []*Node
		for _, c := range remaining {
			if c.Kind == KindVarOp && c.Op == kind {
				next = append(next, c.Children...)
				continue
			}
			out = append(out, c)
		}
		remaining = next
	}
	return out
}

// collapseNumbers combines every numeric child into a single exact rational,
// appended after the symbolic children. The combined number keeps the most
// interesting of the input bases.
func collapseNumbers(children []*Node, kind OpKind) []*Node {
	var out []*Node
	var number *big.Rat
	base := 0
	for _, c := range children {
		if c.Kind != KindNum {
			out = append(out, c)
			continue
		}
		if number == nil {
			number = kind.identity()
		}
		number = kind.apply(number, c.Val)
		base = opResultBase(base, c.Base)
	}
	if number != nil {
		if len(out) == 0 || number.Cmp(kind.identity()) != 0 {
			out = append(out, NumInBase(number, base))
		}
	}
	return out
}

// groupByFactors counts duplicate children and compresses them: under
// addition x appearing with factors a and b becomes x*(a+b); under
// multiplication, exponents combine the same way. Children are keyed by their
// rendered form, preserving first-appearance order.
func groupByFactors(children []*Node, kind OpKind) []*Node {
	type group struct {
		child   *Node
		factors []*Node
	}
	var order []string
	groups := make(map[string]*group)

	for _, c := range children {
		factor, child := splitFactor(c, kind)
		key := child.String()
		g, ok := groups[key]
		if !ok {
			g = &group{child: child}
			groups[key] = g
			order = append(order, key)
		}
		g.factors = append(g.factors, factor)
	}

	out := make([]*Node, 0, len(order))
	for _, key := range order {
		g := groups[key]
		factors := collapseNumbers(g.factors, OpAdd)
		switch len(factors) {
		case 0:
			// Cannot happen: every child contributes a factor.
		case 1:
			if factors[0].IsNum(new(big.Rat)) {
				// The terms cancelled: x*0 contributes nothing to a sum and
				// x^0 nothing to a product.
				continue
			}
			if factors[0].IsNum(big.NewRat(1, 1)) {
				out = append(out, g.child)
			} else {
				out = append(out, kind.compress(g.child, factors[0]))
			}
		default:
			out = append(out, kind.compress(g.child, &Node{Kind: KindVarOp, Op: OpAdd, Children: factors}))
		}
	}
	return out
}

// splitFactor decomposes a child into (factor, base-term). Under addition a
// product 2*x splits into factor 2 and term x; under multiplication x^3
// splits into factor 3 and term x. Anything else gets a factor of 1.
func splitFactor(c *Node, kind OpKind) (factor, child *Node) {
	switch kind {
	case OpAdd:
		// Reduced products keep their numeric part last.
		if c.Kind == KindVarOp && c.Op == OpMul && len(c.Children) >= 2 {
			last := c.Children[len(c.Children)-1]
			if last.Kind == KindNum {
				rest := c.Children[:len(c.Children)-1]
				if len(rest) == 1 {
					return last, rest[0]
				}
				return last, &Node{Kind: KindVarOp, Op: OpMul, Children: rest}
			}
		}
	case OpMul:
		if c.Kind == KindPow {
			return c.Y, c.X
		}
	}
	return One(), c
}

package eval

import (
	"math/big"
)

// ConstKind identifies a mathematical constant.
type ConstKind int

const (
	ConstPi ConstKind = iota
	ConstTau
	ConstE
)

func (k ConstKind) String() string {
	switch k {
	case ConstPi:
		return "pi"
	case ConstTau:
		return "tau"
	case ConstE:
		return "e"
	default:
		return "?"
	}
}

// OpKind is a variadic operator kind: addition or multiplication. Subtraction
// and division are expressed through negation and inversion so that a single
// flattened child list represents a whole sum or product.
type OpKind int

const (
	OpAdd OpKind = iota
	OpMul
)

func (k OpKind) identity() *big.Rat {
	if k == OpMul {
		return big.NewRat(1, 1)
	}
	return new(big.Rat)
}

func (k OpKind) apply(a, b *big.Rat) *big.Rat {
	r := new(big.Rat)
	if k == OpMul {
		return r.Mul(a, b)
	}
	return r.Add(a, b)
}

// compress folds a repeated child back into a single node: n repeated k times
// is n*k under addition and n^k under multiplication.
func (k OpKind) compress(n, count *Node) *Node {
	if k == OpMul {
		return Pow(n, count)
	}
	return Mul(n, count)
}

// NodeKind discriminates AST nodes.
type NodeKind int

const (
	KindNum NodeKind = iota
	KindConst
	KindVarOp
	KindInverse
	KindPow
	KindSin
	KindCos
	KindTan
)

// Node is one operation in the expression AST. Exactly the fields relevant to
// its Kind are set; all constructors below keep that invariant.
type Node struct {
	Kind NodeKind

	// KindNum: the exact value and the base the user wrote it in
	// (0 when the number was not written by the user).
	Val  *big.Rat
	Base int

	// KindConst
	Const ConstKind

	// KindVarOp
	Op       OpKind
	Children []*Node

	// KindInverse, KindSin, KindCos, KindTan use X.
	// KindPow uses X (base) and Y (exponent).
	X *Node
	Y *Node
}

// Num creates a number node without a user-written base.
func Num(val *big.Rat) *Node {
	return &Node{Kind: KindNum, Val: val}
}

// NumInBase creates a number node remembering the base it was written in.
func NumInBase(val *big.Rat, base int) *Node {
	return &Node{Kind: KindNum, Val: val, Base: base}
}

// Const creates a constant node.
func Const(kind ConstKind) *Node {
	return &Node{Kind: KindConst, Const: kind}
}

// Zero returns a fresh zero node.
func Zero() *Node { return Num(new(big.Rat)) }

// One returns a fresh one node.
func One() *Node { return Num(big.NewRat(1, 1)) }

// MinusOne returns a fresh negative-one node.
func MinusOne() *Node { return Num(big.NewRat(-1, 1)) }

// Add builds a+b.
func Add(a, b *Node) *Node { return varOp(OpAdd, a, b) }

// Sub builds a-b as a + (-1)*b.
func Sub(a, b *Node) *Node { return Add(a, Neg(b)) }

// Mul builds a*b.
func Mul(a, b *Node) *Node { return varOp(OpMul, a, b) }

// Div builds a/b as a * (1/b).
func Div(a, b *Node) *Node { return Mul(a, Inverse(b)) }

// Neg builds -a as (-1)*a.
func Neg(a *Node) *Node { return Mul(MinusOne(), a) }

// Inverse builds 1/a.
func Inverse(a *Node) *Node { return &Node{Kind: KindInverse, X: a} }

// Pow builds a^b.
func Pow(a, b *Node) *Node { return &Node{Kind: KindPow, X: a, Y: b} }

// Sin, Cos and Tan build trigonometric function nodes.
func Sin(a *Node) *Node { return &Node{Kind: KindSin, X: a} }
func Cos(a *Node) *Node { return &Node{Kind: KindCos, X: a} }
func Tan(a *Node) *Node { return &Node{Kind: KindTan, X: a} }

func varOp(kind OpKind, a, b *Node) *Node {
	return &Node{Kind: KindVarOp, Op: kind, Children: []*Node{a, b}}
}

// IsNum reports whether n is a plain number equal to want, or any number when
// want is nil.
func (n *Node) IsNum(want *big.Rat) bool {
	if n.Kind != KindNum {
		return false
	}
	return want == nil || n.Val.Cmp(want) == 0
}

// opResultBase picks the display base for the result of combining two
// operands. A base the user actually wrote wins over none; a non-decimal base
// is considered more interesting than decimal, and binary wins overall.
func opResultBase(a, b int) int {
	switch {
	case a != 0 && b == 0:
		return a
	case a == 0 && b != 0:
		return b
	case a == 0 && b == 0:
		return 0
	case a == 10:
		return b
	case b == 10:
		return a
	case a == 2 || b == 2:
		return 2
	default:
		// Both written in interesting bases; keep the first operand's.
		return a
	}
}

// piMultiplier returns (m, true) when n is exactly m*pi for an integer m.
// Used to reduce trig functions exactly.
func (n *Node) piMultiplier() (int64, bool) {
	switch n.Kind {
	case KindConst:
		switch n.Const {
		case ConstPi:
			return 1, true
		case ConstTau:
			return 2, true
		}
		return 0, false
	case KindNum:
		if n.Val.Sign() == 0 {
			return 0, true
		}
		return 0, false
	case KindVarOp:
		if n.Op != OpMul {
			return 0, false
		}
		mult := int64(1)
		hasPi := false
		for _, c := range n.Children {
			if c.Kind == KindNum {
				if !c.Val.IsInt() {
					// Fractional multipliers are not handled.
					return 0, false
				}
				if !c.Val.Num().IsInt64() {
					return 0, false
				}
				next, ok := mulInt64(mult, c.Val.Num().Int64())
				if !ok {
					return 0, false
				}
				mult = next
				continue
			}
			m, ok := c.piMultiplier()
			if !ok {
				return 0, false
			}
			if m == 0 {
				// Zero times anything is zero.
				return 0, true
			}
			if hasPi {
				// pi*pi is not an integer multiple of pi.
				return 0, false
			}
			next, ok := mulInt64(mult, m)
			if !ok {
				return 0, false
			}
			mult = next
			hasPi = true
		}
		if hasPi {
			return mult, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// mulInt64 multiplies with overflow detection.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

package eval

import (
	"math/big"
	"strings"
)

// nodePriority orders operators for parenthesization when rendering.
type nodePriority int

const (
	prioAdd nodePriority = iota
	prioMul
	prioPow
	prioValue
)

func (n *Node) priority() nodePriority {
	switch n.Kind {
	case KindConst, KindSin, KindCos, KindTan:
		return prioValue
	case KindNum:
		if n.Val.IsInt() {
			return prioValue
		}
		// Rendered as a fraction with a division sign.
		return prioMul
	case KindInverse:
		return prioMul
	case KindVarOp:
		if n.Op == OpAdd {
			return prioAdd
		}
		return prioMul
	case KindPow:
		return prioPow
	default:
		return prioValue
	}
}

// String renders the node with minimal parentheses. Reduced nodes render in
// the calculator's output syntax; the result is also used as the canonical
// form when grouping duplicate terms.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	switch n.Kind {
	case KindConst:
		b.WriteString(n.Const.String())
	case KindNum:
		b.WriteString(formatRat(n.Val, n.Base))
	case KindInverse:
		b.WriteString("1/")
		n.X.renderWithParen(b, n.priority(), false, false)
	case KindVarOp:
		for i, child := range n.Children {
			if i > 0 {
				if n.Op == OpMul && child.Kind == KindInverse {
					// Render "* 1/x" directly as "/ x".
					b.WriteString(" / ")
					child.X.renderWithParen(b, prioMul, false, false)
					continue
				}
				if n.Op == OpAdd {
					b.WriteString(" + ")
				} else {
					b.WriteString(" * ")
				}
			}
			child.renderWithParen(b, n.priority(), false, false)
		}
	case KindPow:
		n.X.renderWithParen(b, prioPow, true, false)
		b.WriteByte('^')
		n.Y.renderWithParen(b, prioPow, true, false)
	case KindSin:
		renderFunc(b, "sin", n.X)
	case KindCos:
		renderFunc(b, "cos", n.X)
	case KindTan:
		renderFunc(b, "tan", n.X)
	}
}

func (n *Node) renderWithParen(b *strings.Builder, curr nodePriority, rightAssoc, needsSep bool) {
	var needsParen bool
	if rightAssoc {
		// pow(1, pow(2, 3)) -> 1^(2^3)
		needsParen = n.priority() <= curr
	} else {
		// mul(1, mul(2, 3)) -> 1*2*3
		needsParen = n.priority() < curr
	}
	if needsParen {
		b.WriteByte('(')
	} else if needsSep {
		b.WriteByte(' ')
	}
	n.render(b)
	if needsParen {
		b.WriteByte(')')
	}
}

func renderFunc(b *strings.Builder, name string, inner *Node) {
	b.WriteString(name)
	inner.renderWithParen(b, prioValue, false, true)
}

// formatRat renders a rational, honoring the base it was written in for
// integers ("0b" prefix for binary, "0x" for hexadecimal). Non-integers and
// unknown bases render in decimal, fractions as "a/b".
func formatRat(r *big.Rat, base int) string {
	if r.IsInt() && (base == 2 || base == 16) {
		prefix := "0x"
		if base == 2 {
			prefix = "0b"
		}
		num := r.Num()
		if num.Sign() < 0 {
			return "-" + prefix + new(big.Int).Neg(num).Text(base)
		}
		return prefix + num.Text(base)
	}
	return r.RatString()
}

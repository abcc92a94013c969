package eval

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Approx computes a numeric approximation of the node to the given precision
// in bits. Trigonometric functions fall back to float64 precision; everything
// else is computed with big.Float.
func (n *Node) Approx(prec uint) (*big.Float, error) {
	switch n.Kind {
	case KindNum:
		return new(big.Float).SetPrec(prec).SetRat(n.Val), nil
	case KindConst:
		r := new(big.Float).SetPrec(prec)
		switch n.Const {
		case ConstPi:
			bigfloat.Pi(r)
		case ConstTau:
			bigfloat.Pi(r)
			r.Add(r, r)
		case ConstE:
			one := new(big.Float).SetPrec(prec).SetInt64(1)
			bigfloat.Exp(r, one)
		}
		return r, nil
	case KindVarOp:
		r := new(big.Float).SetPrec(prec).SetRat(n.Op.identity())
		for _, c := range n.Children {
			v, err := c.Approx(prec)
			if err != nil {
				return nil, err
			}
			if n.Op == OpMul {
				r.Mul(r, v)
			} else {
				r.Add(r, v)
			}
		}
		return r, nil
	case KindInverse:
		v, err := n.X.Approx(prec)
		if err != nil {
			return nil, err
		}
		if v.Sign() == 0 {
			return nil, DivisionByZeroError{}
		}
		one := new(big.Float).SetPrec(prec).SetInt64(1)
		return one.Quo(one, v), nil
	case KindPow:
		return n.approxPow(prec)
	case KindSin:
		return n.approxTrig(prec, math.Sin)
	case KindCos:
		return n.approxTrig(prec, math.Cos)
	case KindTan:
		return n.approxTrig(prec, math.Tan)
	default:
		panic("eval: invalid node kind")
	}
}

func (n *Node) approxPow(prec uint) (*big.Float, error) {
	a, err := n.X.Approx(prec)
	if err != nil {
		return nil, err
	}
	b, err := n.Y.Approx(prec)
	if err != nil {
		return nil, err
	}
	if a.Sign() == 0 && b.Sign() < 0 {
		return nil, DivisionByZeroError{}
	}
	if !a.Signbit() {
		r := new(big.Float).SetPrec(prec)
		bigfloat.Pow(r, a, b)
		return r, nil
	}
	// Negative base: only integer exponents stay real.
	if !b.IsInt() {
		return nil, DomainError{Func: "^"}
	}
	exp, _ := b.Int(nil)
	abs := new(big.Float).SetPrec(prec).Neg(a)
	r := new(big.Float).SetPrec(prec)
	bigfloat.Pow(r, abs, b)
	if exp.Bit(0) == 1 {
		r.Neg(r)
	}
	return r, nil
}

// approxTrig evaluates a trig function at float64 precision. Exact multiples
// of pi were already handled during reduction; anything that reaches this
// path is inherently approximate.
func (n *Node) approxTrig(prec uint, fn func(float64) float64) (*big.Float, error) {
	v, err := n.X.Approx(prec)
	if err != nil {
		return nil, err
	}
	f, _ := v.Float64()
	r := fn(f)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, DomainError{Func: n.funcName()}
	}
	return new(big.Float).SetPrec(prec).SetFloat64(r), nil
}

func (n *Node) funcName() string {
	switch n.Kind {
	case KindSin:
		return "sin"
	case KindCos:
		return "cos"
	case KindTan:
		return "tan"
	default:
		return "?"
	}
}

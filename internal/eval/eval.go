package eval

import "math/big"

// DefaultPrec is the precision in bits used by Evaluate.
const DefaultPrec = 64

// Outcome is the result of evaluating an expression.
type Outcome struct {
	// Exact is the reduced symbolic form, e.g. "7/2" or "2 * pi".
	Exact string
	// IsExact reports whether the expression reduced all the way down to a
	// single rational number.
	IsExact bool
	// Approx is a decimal approximation of the value.
	Approx string
	// Value is the approximated value itself.
	Value *big.Float
	// Base is the preferred display base of the result (10, 16 or 2).
	Base int
}

// Evaluate parses, reduces and approximates an expression at the default
// precision. Errors are either a ParseError or an EvalError.
func Evaluate(text string) (*Outcome, error) {
	return EvaluateWithPrec(text, DefaultPrec)
}

// EvaluateWithPrec is Evaluate at an explicit precision in bits.
func EvaluateWithPrec(text string, prec uint) (*Outcome, error) {
	n, err := Parse(text)
	if err != nil {
		return nil, err
	}
	red, err := n.Reduce()
	if err != nil {
		return nil, err
	}
	v, err := red.Approx(prec)
	if err != nil {
		return nil, err
	}
	o := &Outcome{
		Exact:   red.String(),
		IsExact: red.Kind == KindNum,
		Approx:  formatFloat(v, prec),
		Value:   v,
		Base:    10,
	}
	if red.Kind == KindNum && red.Base != 0 {
		o.Base = red.Base
	}
	return o, nil
}

// formatFloat renders v with as many decimal digits as prec bits can
// actually carry.
func formatFloat(v *big.Float, prec uint) string {
	digits := int(float64(prec) * 0.30103)
	if digits < 6 {
		digits = 6
	}
	return v.Text('g', digits)
}

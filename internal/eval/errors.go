package eval

import "strconv"

// ParseError is an error with position information. Every error resulting
// from malformed input implements ParseError. Parse errors are terminal for a
// single evaluation only; they are shown inline and never unwind further.
type ParseError interface {
	error
	// Pos returns the number of runes up to and including the start of the
	// token that caused the error.
	Pos() int
}

// LexError indicates an invalid token.
type LexError struct {
	// Text is the text scanned so far when the invalid rune was hit,
	// including the invalid rune.
	Text string
	// Kind is the token type being scanned ("number" or ""), if decided.
	Kind string
	// Col is the rune position of the error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int { return err.Col }

// BracketError indicates mismatched or unclosed brackets.
type BracketError struct {
	Col   int
	Left  string
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int { return err.Col }

// OperatorError indicates an operator where none is valid, e.g. "*" at the
// start of an expression.
type OperatorError struct {
	Col      int
	Operator string
	Unary    bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int { return err.Col }

// EmptyExpressionError indicates an empty (sub)expression.
type EmptyExpressionError struct {
	Col int
	// End is the token that ended the subexpression, "" at end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int { return err.Col }

// UnknownNameError indicates an identifier that is neither a constant nor a
// known function. The calculator has no user variables.
type UnknownNameError struct {
	Col  int
	Name string
}

func (err *UnknownNameError) Error() string {
	return errpos(err.Col, "unknown name "+strconv.Quote(err.Name))
}

func (err *UnknownNameError) Pos() int { return err.Col }

func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// EvalError is an arithmetic error in a well-formed expression: the input
// parsed but cannot be evaluated. Like parse errors it is terminal for one
// evaluation only.
type EvalError interface {
	error
	evalError()
}

// DivisionByZeroError reports an inversion or division of zero.
type DivisionByZeroError struct{}

func (DivisionByZeroError) Error() string { return "division by zero" }
func (DivisionByZeroError) evalError()    {}

// DomainError reports an operand outside a function's domain, e.g. a negative
// base under a fractional exponent.
type DomainError struct {
	// Func names the operation: "^", "tan", ...
	Func string
}

func (err DomainError) Error() string { return "argument outside the domain of " + err.Func }
func (err DomainError) evalError()    {}

var (
	_ ParseError = (*LexError)(nil)
	_ ParseError = (*BracketError)(nil)
	_ ParseError = (*OperatorError)(nil)
	_ ParseError = (*EmptyExpressionError)(nil)
	_ ParseError = (*UnknownNameError)(nil)

	_ EvalError = DivisionByZeroError{}
	_ EvalError = DomainError{}
)

package eval

import (
	"math/big"
	"strconv"
	"strings"
)

// Expr = num | const | Call | Neg | Plus | Add | Sub | Mul | Div | Pow
//      | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = funcname Expr | funcname '(' Expr ')'
//
// Implicit multiplication strings adjacent terms together: "2 pi", "3(1+2)"
// and "2x" style products all parse as multiplications.

var funcs = map[string]func(*Node) *Node{
	"sin": Sin,
	"cos": Cos,
	"tan": Tan,
}

var consts = map[string]ConstKind{
	"pi":  ConstPi,
	"tau": ConstTau,
	"e":   ConstE,
}

// Parse parses an expression into its AST. The returned error, if any,
// implements ParseError.
func Parse(src string) (*Node, error) {
	scan := lex(src)
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.kind != tokenEOF {
		return nil, unexpectedEnd(tok, -1)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos}
	}
	return n, nil
}

// parseterm parses a single term. If there is no error, parseterm pushes the
// last token it scans, including EOF. An empty subexpression yields nil with
// no error; callers reject it where it is illegal.
func parseterm(scan *lexer, until operator) (*Node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent:
			// (parsed) x -> (parsed) * (x)
			scan.push(tok)
			if !termprec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, termprec)
			if err != nil {
				return nil, err
			}
			n = Mul(n, rhs)
		case tokenOp:
			prec := binop(tok.text)
			if prec.kind == opNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAfter(scan)
			}
			n = prec.kind.build(n, rhs)
		case tokenOpen:
			// Multiplication by a parenthesized term: 2 (expr).
			match := bracketIndex(tok.text)
			if !termprec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, exprprec)
			if err != nil {
				return nil, err
			}
			end := scan.must()
			if end.kind != tokenClose || end.text != string(CloseBrackets[match]) {
				return nil, unexpectedEnd(end, match)
			}
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = Mul(n, rhs)
		case tokenClose, tokenEOF:
			scan.push(tok)
			return n, nil
		default:
			panic("eval: unknown token kind " + strconv.Itoa(int(tok.kind)))
		}
	}
}

// parselhs parses the first component of a term: any operator must be unary
// and every token must be valid as the start of a subexpression.
func parselhs(scan *lexer, until operator) (*Node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		val, perr := parseNum(tok)
		if perr != nil {
			return nil, perr
		}
		return val, nil
	case tokenIdent:
		if fn, ok := funcs[tok.text]; ok {
			arg, err := parsecall(scan, until, tok)
			if err != nil {
				return nil, err
			}
			return fn(arg), nil
		}
		if kind, ok := consts[tok.text]; ok {
			return Const(kind), nil
		}
		return nil, &UnknownNameError{Col: tok.pos, Name: tok.text}
	case tokenOp:
		prec, neg := unop(tok.text)
		if prec.kind == opNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y): inherit the caller's precedence.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyAfter(scan)
		}
		if neg {
			return Neg(rhs), nil
		}
		return rhs, nil
	case tokenOpen:
		match := bracketIndex(tok.text)
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != string(CloseBrackets[match]) {
			return nil, unexpectedEnd(end, match)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	case tokenClose, tokenEOF:
		scan.push(tok)
		return nil, nil
	default:
		panic("eval: unknown token kind " + strconv.Itoa(int(tok.kind)))
	}
}

// parsecall parses the argument to a function. Either a bracketed expression
// ("sin(x)") or a bare term ("sin 2pi", which binds the whole product).
func parsecall(scan *lexer, until operator, fname token) (*Node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenOpen:
		match := bracketIndex(tok.text)
		arg, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != string(CloseBrackets[match]) {
			return nil, unexpectedEnd(end, match)
		}
		if arg == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return arg, nil
	case tokenNum, tokenIdent, tokenOp:
		scan.push(tok)
		if termprec.moreBinding(until) {
			until = termprec
		}
		arg, err := parseterm(scan, until)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
		}
		return arg, nil
	default:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
}

// parseNum converts a number token to a node carrying its input base.
func parseNum(tok token) (*Node, error) {
	switch tok.base {
	case 2, 16:
		i, ok := new(big.Int).SetString(tok.text, tok.base)
		if !ok {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		return NumInBase(new(big.Rat).SetInt(i), tok.base), nil
	default:
		r, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		return NumInBase(r, 10), nil
	}
}

// emptyAfter builds the error for a missing right-hand side.
func emptyAfter(scan *lexer) error {
	tok := scan.must()
	return &EmptyExpressionError{Col: tok.pos, End: tok.text}
}

// unexpectedEnd returns an error for an unexpected token at the end of a
// subexpression. match is the open-bracket index the expression should have
// matched, or -1.
func unexpectedEnd(tok token, match int) error {
	left := ""
	if match >= 0 {
		left = string(OpenBrackets[match])
	}
	switch tok.kind {
	case tokenEOF:
		return &BracketError{Col: tok.pos, Left: left}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	default:
		return &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
}

func bracketIndex(left string) int {
	k := strings.Index(OpenBrackets, left)
	if k < 0 {
		panic("eval: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// opTag identifies a binary operator for node construction.
type opTag int

const (
	opNone opTag = iota
	opAdd
	opSub
	opMul
	opDiv
	opPow
)

func (t opTag) build(a, b *Node) *Node {
	switch t {
	case opAdd:
		return Add(a, b)
	case opSub:
		return Sub(a, b)
	case opMul:
		return Mul(a, b)
	case opDiv:
		return Div(a, b)
	case opPow:
		return Pow(a, b)
	default:
		panic("eval: no node for operator tag")
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	kind  opTag
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, opAdd}
	case "-":
		return operator{1, false, opSub}
	case "*", "×":
		return operator{5, false, opMul}
	case "/", "÷":
		return operator{5, false, opDiv}
	case "^":
		return operator{15, true, opPow}
	default:
		return operator{}
	}
}

func unop(text string) (op operator, neg bool) {
	switch text {
	case "+":
		return operator{10, true, opAdd}, false
	case "-":
		return operator{10, true, opSub}, true
	default:
		return operator{}, false
	}
}

var (
	// termprec is the precedence of implicit multiplication.
	termprec = operator{5, true, opMul}
	// exprprec parses an entire subexpression.
	exprprec = operator{-128, true, opNone}
)

package eval

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenEOF
	tokenNum
	tokenIdent
	tokenOp
	tokenOpen
	tokenClose
)

type token struct {
	text string
	kind tokenKind
	// base is set for number tokens: 2, 10 or 16.
	base int
	// pos is the 1-based rune position of the token's first rune.
	pos int
}

// Operators contains the runes treated as operators.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the grouping runes. A bracket at
// byte position k in OpenBrackets matches the one at position k in
// CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// lexer scans tokens from an expression string. The parser owns a one-token
// pushback via push/must.
type lexer struct {
	src  string
	off  int // byte offset into src
	rune int // 1-based rune position of the next rune
	p    token
	eof  bool
}

func lex(src string) *lexer {
	return &lexer{src: src, rune: 1}
}

// push unreads a token so it is returned by the next call to next. Panics if
// a token is already pushed.
func (l *lexer) push(tok token) {
	if l.p.kind != tokenNone {
		panic("eval: double push")
	}
	l.p = tok
}

// must takes the pushed token. Panics if there is none.
func (l *lexer) must() token {
	tok := l.p
	if tok.kind == tokenNone {
		panic("eval: no pushed token")
	}
	l.p = token{}
	return tok
}

func (l *lexer) readRune() (rune, bool) {
	if l.off >= len(l.src) {
		return 0, false
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	l.rune++
	return r, true
}

func (l *lexer) unreadRune(r rune) {
	l.off -= utf8.RuneLen(r)
	l.rune--
}

// next scans the next token. After the end of input it keeps returning EOF
// tokens.
func (l *lexer) next() (token, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = token{}
		return tok, nil
	}
	tok := token{pos: l.rune}
	for {
		r, ok := l.readRune()
		if !ok {
			tok.kind = tokenEOF
			l.eof = true
			return tok, nil
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune(r)
			return l.scanNum(tok)
		case r == '_', unicode.IsLetter(r):
			l.unreadRune(r)
			return l.scanIdent(tok), nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = string(r)
				tok.kind = tokenOp
				return tok, nil
			}
			if k := strings.IndexRune(OpenBrackets, r); k >= 0 {
				tok.text = string(r)
				tok.kind = tokenOpen
				return tok, nil
			}
			if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
				tok.text = string(r)
				tok.kind = tokenClose
				return tok, nil
			}
			return tok, &LexError{Text: string(r), Col: tok.pos}
		}
	}
}

// scanNum scans a decimal number with optional fraction and exponent, or a
// prefixed integer literal (0x..., 0b...). The token records its base.
func (l *lexer) scanNum(tok token) (token, error) {
	var b strings.Builder
	tok.kind = tokenNum
	tok.base = 10

	r, _ := l.readRune()
	if r == '0' {
		if nxt, ok := l.readRune(); ok {
			switch nxt {
			case 'x', 'X':
				return l.scanPrefixed(tok, &b, 16, isHexDigit)
			case 'b', 'B':
				return l.scanPrefixed(tok, &b, 2, isBinDigit)
			default:
				l.unreadRune(nxt)
			}
		}
	}
	l.unreadRune(r)

	var dig, dot, e, le, ed bool
scan:
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if r == '+' || r == '-' {
			// A sign anywhere but right after the exponent marker starts a
			// new token.
			if !le {
				l.unreadRune(r)
				break
			}
			le = false
			b.WriteRune(r)
			continue
		}
		if unicode.IsSpace(r) || strings.ContainsRune(Operators+OpenBrackets+CloseBrackets, r) {
			l.unreadRune(r)
			break
		}
		switch {
		case r == '.':
			b.WriteRune(r)
			if dot || e {
				return tok, &LexError{Text: b.String(), Kind: "number", Col: l.rune}
			}
			dot = true
			le = false
		case r == 'e' || r == 'E':
			b.WriteRune(r)
			if !dig || e {
				return tok, &LexError{Text: b.String(), Kind: "number", Col: l.rune}
			}
			e = true
			le = true
		case '0' <= r && r <= '9':
			b.WriteRune(r)
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		case r == '_' || unicode.IsLetter(r):
			// A letter right after the digits starts an adjacent
			// identifier: "2pi" is the product 2 * pi.
			l.unreadRune(r)
			break scan
		default:
			b.WriteRune(r)
			return tok, &LexError{Text: b.String(), Kind: "number", Col: l.rune}
		}
	}
	if (!dig && !ed) || (e && !ed) {
		return tok, &LexError{Text: b.String(), Kind: "number", Col: l.rune}
	}
	tok.text = b.String()
	return tok, nil
}

// scanIdent scans a run of letters, digits and underscores.
func (l *lexer) scanIdent(tok token) token {
	var b strings.Builder
	tok.kind = tokenIdent
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune(r)
			break
		}
		b.WriteRune(r)
	}
	tok.text = b.String()
	return tok
}

// scanPrefixed scans the digits of a 0x/0b literal.
func (l *lexer) scanPrefixed(tok token, b *strings.Builder, base int, valid func(rune) bool) (token, error) {
	tok.base = base
	n := 0
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if !valid(r) {
			if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
				return tok, &LexError{Text: b.String(), Kind: "number", Col: l.rune}
			}
			l.unreadRune(r)
			break
		}
		b.WriteRune(r)
		n++
	}
	if n == 0 {
		return tok, &LexError{Text: b.String(), Kind: "number", Col: l.rune}
	}
	tok.text = b.String()
	return tok, nil
}

func isHexDigit(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}

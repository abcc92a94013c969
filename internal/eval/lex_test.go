package eval

import "testing"

func TestLex(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token
	}{
		{"num", "1", []token{{text: "1", kind: tokenNum, base: 10, pos: 1}}},
		{"decimal", "12.5", []token{{text: "12.5", kind: tokenNum, base: 10, pos: 1}}},
		{"exponent", "1e3", []token{{text: "1e3", kind: tokenNum, base: 10, pos: 1}}},
		{"hex", "0xfF", []token{{text: "fF", kind: tokenNum, base: 16, pos: 1}}},
		{"bin", "0b101", []token{{text: "101", kind: tokenNum, base: 2, pos: 1}}},
		{"ident", "pi", []token{{text: "pi", kind: tokenIdent, pos: 1}}},
		{"spaces", "  1 + 2", []token{
			{text: "1", kind: tokenNum, base: 10, pos: 3},
			{text: "+", kind: tokenOp, pos: 5},
			{text: "2", kind: tokenNum, base: 10, pos: 7},
		}},
		{"brackets", "[{(", []token{
			{text: "[", kind: tokenOpen, pos: 1},
			{text: "{", kind: tokenOpen, pos: 2},
			{text: "(", kind: tokenOpen, pos: 3},
		}},
		{"unicode-ops", "6×7÷2", []token{
			{text: "6", kind: tokenNum, base: 10, pos: 1},
			{text: "×", kind: tokenOp, pos: 2},
			{text: "7", kind: tokenNum, base: 10, pos: 3},
			{text: "÷", kind: tokenOp, pos: 4},
			{text: "2", kind: tokenNum, base: 10, pos: 5},
		}},
		{"adjacent", "2pi", []token{
			{text: "2", kind: tokenNum, base: 10, pos: 1},
			{text: "pi", kind: tokenIdent, pos: 2},
		}},
		{"adjacent-exponent", "1.5e2x", []token{
			{text: "1.5e2", kind: tokenNum, base: 10, pos: 1},
			{text: "x", kind: tokenIdent, pos: 6},
		}},
		{"num-signs", "1e-3-2", []token{
			{text: "1e-3", kind: tokenNum, base: 10, pos: 1},
			{text: "-", kind: tokenOp, pos: 5},
			{text: "2", kind: tokenNum, base: 10, pos: 6},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scan := lex(c.src)
			for i, want := range c.want {
				tok, err := scan.next()
				if err != nil {
					t.Fatalf("token %d: unexpected error: %v", i, err)
				}
				if tok != want {
					t.Errorf("token %d: got %+v, want %+v", i, tok, want)
				}
			}
			tok, err := scan.next()
			if err != nil {
				t.Fatalf("trailing error: %v", err)
			}
			if tok.kind != tokenEOF {
				t.Errorf("expected EOF, got %+v", tok)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad-rune", "1 $ 2"},
		{"two-dots", "1..2"},
		{"empty-exponent", "1e"},
		{"empty-hex", "0x"},
		{"bad-hex-digit", "0x1g"},
		{"bad-bin-digit", "0b12"},
		{"lone-dot", "."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scan := lex(c.src)
			for i := 0; i < 10; i++ {
				tok, err := scan.next()
				if err != nil {
					return
				}
				if tok.kind == tokenEOF {
					t.Fatal("reached EOF without a lex error")
				}
			}
			t.Fatal("no error after many tokens")
		})
	}
}

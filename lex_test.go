package calc

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
		eof    int
	}{
		// blanks
		{"", nil, 0},
		{" \t \u00a0 ", nil, 0},
		// numbers
		{"0", []Token{{Number, "0", 0, 0}}, 0},
		{"9876543210", []Token{{Number, "9876543210", 0, 9}}, 9},
		{"1 0", []Token{{Number, "1", 0, 0}, {Number, "0", 2, 2}}, 2},
		{"1.0", []Token{{Number, "1.0", 0, 2}}, 2},
		{"10.", []Token{{Number, "10.", 0, 2}}, 2},
		{".5", []Token{{Number, ".5", 0, 1}}, 1},
		{"1e1", []Token{{Number, "1e1", 0, 2}}, 2},
		{"1e+1", []Token{{Number, "1e+1", 0, 3}}, 3},
		{"1E-1", []Token{{Number, "1E-1", 0, 3}}, 3},
		{".5e-1", []Token{{Number, ".5e-1", 0, 4}}, 4},
		{"-1", []Token{{Operator, "-", 0, 0}, {Number, "1", 1, 1}}, 1},
		{"1.2.3", []Token{{Number, "1.2", 0, 2}, {Number, ".3", 3, 4}}, 4},
		{"1a", []Token{{Number, "1", 0, 0}, {Identifier, "a", 1, 1}}, 1},
		{"1e5x", []Token{{Number, "1e5", 0, 2}, {Identifier, "x", 3, 3}}, 3},
		// identifiers
		{"e", []Token{{Identifier, "e", 0, 0}}, 0},
		{"e1", []Token{{Identifier, "e1", 0, 1}}, 1},
		{"_1234_", []Token{{Identifier, "_1234_", 0, 5}}, 5},
		{"π", []Token{{Identifier, "π", 0, 1}}, 1},
		{"abcπd", []Token{{Identifier, "abcπd", 0, 5}}, 5},
		{"x y", []Token{{Identifier, "x", 0, 0}, {Identifier, "y", 2, 2}}, 2},
		// operators
		{"+", []Token{{Operator, "+", 0, 0}}, 0},
		{"++", []Token{{Operator, "+", 0, 0}, {Operator, "+", 1, 1}}, 1},
		{"()", []Token{{Operator, "(", 0, 0}, {Operator, ")", 1, 1}}, 1},
		{"1+2", []Token{{Number, "1", 0, 0}, {Operator, "+", 1, 1}, {Number, "2", 2, 2}}, 2},
		{"a%b", []Token{{Identifier, "a", 0, 0}, {Operator, "%", 1, 1}, {Identifier, "b", 2, 2}}, 2},
		{"x=1", []Token{{Identifier, "x", 0, 0}, {Operator, "=", 1, 1}, {Number, "1", 2, 2}}, 2},
		{"f(x, y)", []Token{
			{Identifier, "f", 0, 0},
			{Operator, "(", 1, 1},
			{Identifier, "x", 2, 2},
			{Operator, ",", 3, 3},
			{Identifier, "y", 5, 5},
			{Operator, ")", 6, 6},
		}, 6},
	}
	for _, c := range cases {
		tz := NewTokenizer(c.src)
		for _, want := range c.tokens {
			got, err := tz.Next()
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
				break
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		for i := 0; i < 2; i++ {
			got, err := tz.Next()
			if err != nil {
				t.Errorf("scanning %q: error at EOF: %v", c.src, err)
				continue
			}
			want := Token{Kind: EOF, Start: c.eof, End: c.eof}
			if got != want {
				t.Errorf("scanning %q: want EOF token %v, got %v", c.src, want, got)
			}
		}
	}
}

func TestOperatorsLex(t *testing.T) {
	for _, r := range Operators {
		tz := NewTokenizer(string(r))
		tok, err := tz.Next()
		if err != nil {
			t.Errorf("scanning %q: %v", r, err)
			continue
		}
		if tok.Kind != Operator || tok.Lexeme != string(r) {
			t.Errorf("scanning %q: got %v", r, tok)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
		re   string
		rest []Token
	}{
		{"dollar", "$", 0, `unexpected character '\$'`, nil},
		{"newline", "\n", 0, `unexpected character '\\n'`, nil},
		{"cr", "\r", 0, `unexpected character '\\r'`, nil},
		{"dot", ".", 0, `malformed number "\."`, nil},
		{"exp", "1e", 0, `exponent has no digits`, nil},
		{"exp-sign", "1e+", 0, `exponent has no digits`, nil},
		{"exp-cap", "2E", 0, `exponent has no digits`, nil},
		{"late", "12 $", 3, `unexpected character '\$'`, nil},
		{"resume", "$a", 0, `unexpected character '\$'`, []Token{{Identifier, "a", 1, 1}}},
		{"resume-num", "$0", 0, `unexpected character '\$'`, []Token{{Number, "0", 1, 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tz := NewTokenizer(c.src)
			var err error
			var tok Token
			for {
				tok, err = tz.Next()
				if err != nil || tok.Kind == EOF {
					break
				}
			}
			if err == nil {
				t.Fatalf("scanning %q gave no error", c.src)
			}
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("error from %q is %#v, not *Error", c.src, err)
			}
			if lerr.Kind != LexError {
				t.Errorf("error from %q has kind %v, want %v", c.src, lerr.Kind, LexError)
			}
			if lerr.Pos != c.pos {
				t.Errorf("error from %q at %d, want %d", c.src, lerr.Pos, c.pos)
			}
			if !regexp.MustCompile(c.re).MatchString(lerr.Msg) {
				t.Errorf("error message %q does not match %s", lerr.Msg, c.re)
			}
			for _, want := range c.rest {
				got, err := tz.Next()
				if err != nil {
					t.Errorf("scanning %q after error: %v", c.src, err)
					break
				}
				if got != want {
					t.Errorf("scanning %q after error: want %v, got %v", c.src, want, got)
				}
			}
		})
	}
}

// TestLexSpans checks that token offsets tile the input: every byte of the
// source is inside exactly one token span or is a blank between tokens.
func TestLexSpans(t *testing.T) {
	srcs := []string{
		"1 + 2*3",
		"  x\t=\u00a0 sqrt(2e1) ",
		"a%b^c - .5e-1",
		"f(x, y) / (n - 1)",
		"π + _under1",
	}
	for _, src := range srcs {
		tz := NewTokenizer(src)
		pos := 0
		spans := 0
		for {
			tok, err := tz.Next()
			if err != nil {
				t.Fatalf("scanning %q: %v", src, err)
			}
			if tok.Kind == EOF {
				break
			}
			if got := src[tok.Start : tok.End+1]; got != tok.Lexeme {
				t.Errorf("scanning %q: token %v spans %q", src, tok, got)
			}
			if gap := src[pos:tok.Start]; strings.Trim(gap, " \t\u00a0") != "" {
				t.Errorf("scanning %q: non-blank gap %q before %v", src, gap, tok)
			}
			spans += tok.End + 1 - tok.Start
			pos = tok.End + 1
		}
		if gap := src[pos:]; strings.Trim(gap, " \t\u00a0") != "" {
			t.Errorf("scanning %q: non-blank tail %q", src, gap)
		}
		blanks := 0
		for _, r := range src {
			if r == ' ' || r == '\t' || r == '\u00a0' {
				blanks += len(string(r))
			}
		}
		if spans+blanks != len(src) {
			t.Errorf("scanning %q: %d span bytes + %d blank bytes != %d total", src, spans, blanks, len(src))
		}
	}
}

func TestPeek(t *testing.T) {
	tz := NewTokenizer("1 + 2")
	p1 := tz.Peek()
	p2 := tz.Peek()
	if p1 != p2 {
		t.Errorf("Peek not idempotent: %v then %v", p1, p2)
	}
	if p1.Kind != Number || p1.Lexeme != "1" {
		t.Errorf("Peek gave wrong token: %v", p1)
	}
	if p1.Start != -1 || p1.End != -1 {
		t.Errorf("Peek leaked positions: %v", p1)
	}
	got, err := tz.Next()
	if err != nil {
		t.Fatalf("Next after Peek: %v", err)
	}
	if want := (Token{Number, "1", 0, 0}); got != want {
		t.Errorf("Next after Peek: want %v, got %v", want, got)
	}
	if p := tz.Peek(); p.Kind != Operator || p.Lexeme != "+" {
		t.Errorf("Peek after Next gave wrong token: %v", p)
	}
}

func TestPeekMasksErrors(t *testing.T) {
	tz := NewTokenizer("1 $")
	if tok, err := tz.Next(); err != nil || tok.Lexeme != "1" {
		t.Fatalf("Next gave %v, %v", tok, err)
	}
	for i := 0; i < 2; i++ {
		p := tz.Peek()
		if p.Kind != EOF {
			t.Errorf("Peek at bad input gave %v, want EOF", p)
		}
	}
	_, err := tz.Next()
	if err == nil {
		t.Fatal("Next after masked Peek gave no error")
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Kind != LexError || lerr.Pos != 2 {
		t.Errorf("Next after masked Peek gave %#v", err)
	}
}

func TestPushMust(t *testing.T) {
	tz := NewTokenizer("a b")
	tok, err := tz.Next()
	if err != nil {
		t.Fatal(err)
	}
	tz.push(tok)
	if got := tz.must(); got != tok {
		t.Errorf("must after push: want %v, got %v", tok, got)
	}
	if got, err := tz.Next(); err != nil || got.Lexeme != "b" {
		t.Errorf("Next after push and must: got %v, %v", got, err)
	}
}

func TestReset(t *testing.T) {
	tz := NewTokenizer("1 + 2")
	tz.Next()
	tz.Peek()
	tz.Reset("xyz")
	got, err := tz.Next()
	if err != nil {
		t.Fatal(err)
	}
	if want := (Token{Identifier, "xyz", 0, 2}); got != want {
		t.Errorf("after Reset: want %v, got %v", want, got)
	}
	if got, err := tz.Next(); err != nil || got.Kind != EOF || got.Start != 2 {
		t.Errorf("after Reset at end: got %v, %v", got, err)
	}
}

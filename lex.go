package calc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Operators contains the characters which are considered to be operators.
// Every operator token is exactly one of these characters. The parser gives
// ^ and % multiplicative meaning; ; is scanned but reserved by the grammar.
const Operators = "+-*/()^%=;,"

// Tokenizer splits expression text into tokens on demand. The zero value
// scans the empty string; Reset starts it over on new text. A Tokenizer
// holds cursor state, so concurrent use needs an instance per goroutine or
// outside synchronization.
type Tokenizer struct {
	src  string
	pos  int // byte offset of the next unread character
	last int // end offset of the most recently consumed token

	// One-token memo shared by Peek and push. Next drains it before
	// scanning anything new.
	peeked bool
	tok    Token
	err    error
}

// NewTokenizer returns a tokenizer reading src from the beginning.
func NewTokenizer(src string) *Tokenizer {
	t := new(Tokenizer)
	t.Reset(src)
	return t
}

// Reset discards all scanning state and starts over at the first byte of
// src.
func (t *Tokenizer) Reset(src string) {
	t.src = src
	t.pos = 0
	t.last = 0
	t.peeked = false
	t.tok = Token{}
	t.err = nil
}

// Next returns the next token and advances past it, skipping any blank
// characters (space, tab, no-break space) first. At the end of the input it
// returns an EOF token, and calling it again keeps returning one. A
// malformed token is reported as a *Error of kind LexError whose offset is
// the position where the token began, not wherever scanning stopped.
func (t *Tokenizer) Next() (Token, error) {
	tok, err := t.tok, t.err
	if t.peeked {
		t.peeked = false
		t.tok, t.err = Token{}, nil
	} else {
		tok, err = t.scan()
	}
	if err == nil && tok.Kind != EOF {
		t.last = tok.End
	}
	return tok, err
}

// Peek reports the token a subsequent Next will return, without consuming
// it and with its position stripped. Lookahead is advisory: if scanning
// would fail, Peek reports the end of the input and leaves the error for
// Next to raise. Repeated calls return the same token.
func (t *Tokenizer) Peek() Token {
	if !t.peeked {
		t.tok, t.err = t.scan()
		t.peeked = true
	}
	if t.err != nil {
		return Token{Kind: EOF, Start: -1, End: -1}
	}
	return Token{Kind: t.tok.Kind, Lexeme: t.tok.Lexeme, Start: -1, End: -1}
}

// push unreads a token so that it is the next token returned from Next.
// Panics if a token is already buffered.
func (t *Tokenizer) push(tok Token) {
	if t.peeked {
		panic("calc: double push")
	}
	t.peeked = true
	t.tok = tok
	t.err = nil
}

// must consumes the buffered token. Panics if there is none or if scanning
// it failed, so it is only for consuming a token Peek already showed.
func (t *Tokenizer) must() Token {
	if !t.peeked || t.err != nil {
		panic("calc: no buffered token")
	}
	tok := t.tok
	t.peeked = false
	t.tok = Token{}
	if tok.Kind != EOF {
		t.last = tok.End
	}
	return tok
}

// scan reads one token at the cursor position.
func (t *Tokenizer) scan() (Token, error) {
	t.skipBlank()
	if t.pos >= len(t.src) {
		return Token{Kind: EOF, Start: t.last, End: t.last}, nil
	}
	start := t.pos
	r, sz := utf8.DecodeRuneInString(t.src[t.pos:])
	switch {
	case strings.ContainsRune(Operators, r):
		t.pos += sz
		return t.token(Operator, start), nil
	case r == '_' || unicode.IsLetter(r):
		t.pos += sz
		t.scanIdent()
		return t.token(Identifier, start), nil
	case r == '.' || '0' <= r && r <= '9':
		if err := t.scanNumber(start); err != nil {
			return Token{}, err
		}
		return t.token(Number, start), nil
	default:
		t.pos += sz
		return Token{}, lexErrorf(start, "unexpected character %q", r)
	}
}

func (t *Tokenizer) token(kind TokenKind, start int) Token {
	return Token{Kind: kind, Lexeme: t.src[start:t.pos], Start: start, End: t.pos - 1}
}

// skipBlank advances over the characters that separate tokens: space, tab,
// and no-break space. Newlines are not among them; expressions are a
// single line, and any other character starts a token or fails to.
func (t *Tokenizer) skipBlank() {
	for t.pos < len(t.src) {
		r, sz := utf8.DecodeRuneInString(t.src[t.pos:])
		if r != ' ' && r != '\t' && r != '\u00a0' {
			return
		}
		t.pos += sz
	}
}

func (t *Tokenizer) scanIdent() {
	for t.pos < len(t.src) {
		r, sz := utf8.DecodeRuneInString(t.src[t.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		t.pos += sz
	}
}

// scanNumber scans a numeric literal beginning at start, where the cursor
// sits on a digit or a dot. The shape is an optional integer digit run, an
// optional dot with an optional fractional run, and an optional exponent
// whose digit run is mandatory. At least one digit must appear before any
// exponent: a lone dot is not a number. Scanning stops at the first
// character that cannot extend the literal, so 1.2.3 is the number 1.2
// followed by the number .3, and 1a is the number 1 followed by the
// identifier a.
func (t *Tokenizer) scanNumber(start int) error {
	digits := t.digits()
	if t.pos < len(t.src) && t.src[t.pos] == '.' {
		t.pos++
		digits = t.digits() || digits
	}
	if !digits {
		return lexErrorf(start, "malformed number %q", t.src[start:t.pos])
	}
	if t.pos < len(t.src) && (t.src[t.pos] == 'e' || t.src[t.pos] == 'E') {
		t.pos++
		if t.pos < len(t.src) && (t.src[t.pos] == '+' || t.src[t.pos] == '-') {
			t.pos++
		}
		if !t.digits() {
			return lexErrorf(start, "malformed number %q: exponent has no digits", t.src[start:t.pos])
		}
	}
	return nil
}

// digits consumes a run of decimal digits and reports whether there was at
// least one.
func (t *Tokenizer) digits() bool {
	n := t.pos
	for t.pos < len(t.src) && '0' <= t.src[t.pos] && t.src[t.pos] <= '9' {
		t.pos++
	}
	return t.pos > n
}

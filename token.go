package calc

import "strconv"

// TokenKind classifies a token scanned from expression text.
type TokenKind int

const (
	// EOF marks the end of the input. The tokenizer keeps returning it once
	// the input is exhausted rather than reporting an error.
	EOF TokenKind = iota
	// Number is a numeric literal such as 12, 3.5, .25, or 1e-9.
	Number
	// Identifier is a constant, variable, or function name.
	Identifier
	// Operator is a single character from Operators.
	Operator
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Number:
		return "Number"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one lexical unit of an expression. Start and End are inclusive
// byte offsets into the text passed to Reset, so src[Start:End+1] is the
// lexeme. Tokens returned by Peek are positionless and carry
// Start = End = -1. The EOF token's offsets are both the end offset of the
// last consumed token, which is where parse errors about a truncated input
// point.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Start  int
	End    int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Lexeme + "@" + strconv.Itoa(t.Start)
}

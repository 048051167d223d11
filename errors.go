package calc

import (
	"fmt"
	"strconv"
)

// ErrorKind identifies the stage that rejected an input.
type ErrorKind int

const (
	// LexError marks input that does not form a valid token.
	LexError ErrorKind = iota
	// ParseError marks token sequences that do not form a valid expression.
	ParseError
	// EvalError marks expressions that cannot be computed, such as a call
	// to an unknown function.
	EvalError
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case EvalError:
		return "eval error"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error describes why an expression was rejected and where. Pos is the
// byte offset into the source text at which the problem starts; for errors
// about the input ending too soon, it is the end offset of the last token
// the parser consumed. Every error returned from Tokenizer, Parser, and
// Evaluator methods is a *Error, so callers interested in the offset can
// recover it with errors.As.
type Error struct {
	Kind ErrorKind
	Msg  string
	Pos  int
}

func (e *Error) Error() string {
	return strconv.Itoa(e.Pos) + ": " + e.Msg
}

func lexErrorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Kind: LexError, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func parseErrorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Kind: ParseError, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func evalErrorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Kind: EvalError, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// Warning is an advisory diagnostic attached to a parsed expression, such
// as a call to a function the environment does not define. Warnings never
// prevent evaluation; the condition they describe is rechecked then.
type Warning struct {
	Msg string
	Pos int
}

func (w Warning) String() string {
	return strconv.Itoa(w.Pos) + ": " + w.Msg
}

package calc

import (
	"fmt"
)

// Expression = Assignment
// Assignment = name '=' Assignment | Sum
// Sum        = Product { ('+' | '-') Product }
// Product    = Unary { ('*' | '/' | '%' | '^') Unary }
// Unary      = ('+' | '-') Unary | Primary
// Primary    = num | name | Call | '(' Assignment ')'
// Call       = name '(' ')' | name '(' Assignment { ',' Assignment } ')'

// Expr is a parsed expression ready for evaluation.
type Expr struct {
	// Node is the root of the syntax tree. It is nil when the source was
	// blank, which is not an error; evaluating such an expression is.
	Node Node

	warns []Warning
	names []string
}

// Parser builds syntax trees from expression text. The environment given
// at construction provides the function names used for call diagnostics;
// it is never written to. A Parser may be reused across inputs but not
// shared between goroutines without synchronization.
type Parser struct {
	tz    *Tokenizer
	env   *Env
	warns []Warning
	names map[string]bool
}

// NewParser returns a parser that checks calls against the functions in
// env. A nil env disables those diagnostics; parsing is otherwise the
// same.
func NewParser(env *Env) *Parser {
	return &Parser{tz: new(Tokenizer), env: env}
}

// Parse parses src into an expression. Everything in src must belong to
// the expression: a token left over after a complete expression is an
// error, as is any malformed token. Blank input parses to an expression
// with a nil Node. Errors are *Error values whose offset points into src;
// for inputs that end too soon, the offset is the end of the last token.
func (p *Parser) Parse(src string) (*Expr, error) {
	p.tz.Reset(src)
	p.warns = nil
	p.names = make(map[string]bool)
	first, err := p.tz.Next()
	if err != nil {
		return nil, err
	}
	if first.Kind == EOF {
		return &Expr{}, nil
	}
	p.tz.push(first)
	n, err := p.parseassign()
	if err != nil {
		return nil, err
	}
	end, err := p.tz.Next()
	if err != nil {
		return nil, err
	}
	if end.Kind != EOF {
		return nil, parseErrorf(end.Start, "unexpected trailing token %q", end.Lexeme)
	}
	ex := &Expr{
		Node:  n,
		warns: p.warns,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return ex, nil
}

// parseassign parses at the assignment level. Assignment is lowest and
// right associative, and its target must be a plain name: the parser
// reads a sum first and upgrades it to an assignment only when it turned
// out to be a bare name followed by =. Anything else followed by =, a
// parenthesized name included, leaves the = for the caller to reject.
func (p *Parser) parseassign() (Node, error) {
	n, err := p.parsesum()
	if err != nil {
		return nil, err
	}
	id, ok := n.(*Ident)
	if !ok {
		return n, nil
	}
	if tok := p.tz.Peek(); tok.Kind != Operator || tok.Lexeme != "=" {
		return n, nil
	}
	p.tz.must()
	rhs, err := p.parseassign()
	if err != nil {
		return nil, err
	}
	return &Assign{Name: id.Name, NamePos: id.NamePos, Value: rhs}, nil
}

func (p *Parser) parsesum() (Node, error) {
	n, err := p.parseproduct()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.tz.Peek()
		if tok.Kind != Operator || tok.Lexeme != "+" && tok.Lexeme != "-" {
			return n, nil
		}
		p.tz.must()
		rhs, err := p.parseproduct()
		if err != nil {
			return nil, err
		}
		n = &Binary{Op: tok.Lexeme, Left: n, Right: rhs}
	}
}

// parseproduct parses the product level, which includes ^ and % at the
// same precedence as * and /, all left associative. So 2^3^2 is (2^3)^2
// and 6/2%4 is (6/2)%4.
func (p *Parser) parseproduct() (Node, error) {
	n, err := p.parseunary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.tz.Peek()
		if tok.Kind != Operator {
			return n, nil
		}
		switch tok.Lexeme {
		case "*", "/", "%", "^":
		default:
			return n, nil
		}
		p.tz.must()
		rhs, err := p.parseunary()
		if err != nil {
			return nil, err
		}
		n = &Binary{Op: tok.Lexeme, Left: n, Right: rhs}
	}
}

func (p *Parser) parseunary() (Node, error) {
	tok := p.tz.Peek()
	if tok.Kind == Operator && (tok.Lexeme == "+" || tok.Lexeme == "-") {
		p.tz.must()
		rhs, err := p.parseunary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: tok.Lexeme, Operand: rhs}, nil
	}
	return p.parseprimary()
}

func (p *Parser) parseprimary() (Node, error) {
	tok, err := p.tz.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case Number:
		return &Literal{Text: tok.Lexeme}, nil
	case Identifier:
		if nxt := p.tz.Peek(); nxt.Kind == Operator && nxt.Lexeme == "(" {
			return p.parsecall(tok)
		}
		p.record(tok.Lexeme)
		return &Ident{Name: tok.Lexeme, NamePos: tok.Start}, nil
	case Operator:
		if tok.Lexeme == "(" {
			n, err := p.parseassign()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return &Group{Inner: n}, nil
		}
		return nil, parseErrorf(tok.Start, "unexpected token %q", tok.Lexeme)
	case EOF:
		return nil, parseErrorf(tok.Start, "unexpected end of input")
	default:
		panic("calc: unknown token " + tok.String())
	}
}

// parsecall parses the arguments of a call to the function named by name,
// whose opening bracket is the buffered token.
func (p *Parser) parsecall(name Token) (Node, error) {
	p.tz.must()
	call := &Call{Name: name.Lexeme, NamePos: name.Start}
	if tok := p.tz.Peek(); tok.Kind == Operator && tok.Lexeme == ")" {
		p.tz.must()
		p.checkcall(call)
		return call, nil
	}
	for {
		arg, err := p.parseassign()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		tok, err := p.tz.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == Operator && tok.Lexeme == ",":
		case tok.Kind == Operator && tok.Lexeme == ")":
			p.checkcall(call)
			return call, nil
		case tok.Kind == EOF:
			return nil, parseErrorf(tok.Start, "unexpected end of input, expected %q", ")")
		default:
			return nil, parseErrorf(tok.Start, "unexpected token %q, expected %q or %q", tok.Lexeme, ",", ")")
		}
	}
}

// expect consumes the next token, which must be the operator s.
func (p *Parser) expect(s string) error {
	tok, err := p.tz.Next()
	if err != nil {
		return err
	}
	if tok.Kind == EOF {
		return parseErrorf(tok.Start, "unexpected end of input, expected %q", s)
	}
	if tok.Kind != Operator || tok.Lexeme != s {
		return parseErrorf(tok.Start, "unexpected token %q, expected %q", tok.Lexeme, s)
	}
	return nil
}

// checkcall records advisory diagnostics for a parsed call. The same
// conditions fail evaluation.
func (p *Parser) checkcall(call *Call) {
	if p.env == nil {
		return
	}
	fn, ok := p.env.Func(call.Name)
	if !ok {
		p.warnf(call.NamePos, "unknown function %q", call.Name)
		return
	}
	if len(call.Args) != fn.Arity {
		p.warnf(call.NamePos, "wrong number of arguments in call to %s (got %d, want %d)", call.Name, len(call.Args), fn.Arity)
	}
}

func (p *Parser) warnf(pos int, format string, args ...interface{}) {
	p.warns = append(p.warns, Warning{Msg: fmt.Sprintf(format, args...), Pos: pos})
}

// record notes a name in value position. Names the environment binds as
// constants resolve the same in every expression, so they are not
// variables.
func (p *Parser) record(name string) {
	if p.env != nil {
		if _, ok := p.env.Const(name); ok {
			return
		}
	}
	p.names[name] = true
}

// sortstrs sorts a short string slice in place. The name lists it sees
// rarely hold more than a few elements.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the names of the variables the expression reads or
// assigns, sorted and without duplicates. Names bound as constants in
// the parser's environment do not appear.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Warnings returns the advisory diagnostics recorded while parsing. Each
// carries the offset of the call it describes.
func (e *Expr) Warnings() []Warning {
	return append(([]Warning)(nil), e.warns...)
}

// String formats the expression with explicit parentheses showing how the
// parser grouped it. A blank expression formats as the empty string.
func (e *Expr) String() string {
	if e.Node == nil {
		return ""
	}
	return e.Node.String()
}

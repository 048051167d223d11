package calc

import (
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. The
// concrete types are Literal, Ident, Unary, Binary, Assign, Call, and
// Group; the set is closed, so an evaluator switching over them handles
// every expression the parser can produce.
type Node interface {
	// String formats the subtree with explicit parentheses around every
	// operation, which makes the precedence the parser chose visible.
	String() string

	node()
}

// Literal is a numeric literal. Text is the lexeme exactly as written;
// conversion to a value happens at evaluation time.
type Literal struct {
	Text string
}

// Ident is a reference to a constant or variable by name. NamePos is the
// byte offset of the name in the source, kept so that evaluation errors
// about the name can point at it.
type Ident struct {
	Name    string
	NamePos int
}

// Unary applies a sign operator, + or -, to its operand.
type Unary struct {
	Op      string
	Operand Node
}

// Binary applies an infix arithmetic operator to two operands.
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

// Assign stores the value of its right-hand side in the named variable
// and yields that value. NamePos is the byte offset of the name.
type Assign struct {
	Name    string
	NamePos int
	Value   Node
}

// Call invokes the named function on zero or more argument expressions.
// NamePos is the byte offset of the name.
type Call struct {
	Name    string
	NamePos int
	Args    []Node
}

// Group is a parenthesized subexpression. It changes nothing about
// evaluation; it exists so the tree records that the source had brackets.
type Group struct {
	Inner Node
}

func (*Literal) node() {}
func (*Ident) node()   {}
func (*Unary) node()   {}
func (*Binary) node()  {}
func (*Assign) node()  {}
func (*Call) node()    {}
func (*Group) node()   {}

func (n *Literal) String() string {
	return n.Text
}

func (n *Ident) String() string {
	return n.Name
}

func (n *Unary) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Op)
	b.WriteString(n.Operand.String())
	b.WriteByte(')')
	return b.String()
}

func (n *Binary) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Left.String())
	b.WriteByte(' ')
	b.WriteString(n.Op)
	b.WriteByte(' ')
	b.WriteString(n.Right.String())
	b.WriteByte(')')
	return b.String()
}

func (n *Assign) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Name)
	b.WriteString(" = ")
	b.WriteString(n.Value.String())
	b.WriteByte(')')
	return b.String()
}

func (n *Call) String() string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// String formats the grouped expression without the brackets. Every
// composite node parenthesizes itself, so printing and reparsing a tree
// reaches a fixed point instead of growing a bracket per round trip.
func (n *Group) String() string {
	return n.Inner.String()
}

package calc

import (
	"math"
	"strconv"
)

// Evaluator parses expressions and computes their values against an
// environment. It reuses one parser and tokenizer across calls, so it is
// not safe for concurrent use; evaluations that must run in parallel need
// an Evaluator each, and their own environments if they assign variables.
type Evaluator struct {
	p   *Parser
	env *Env
}

// NewEvaluator returns an evaluator resolving names against env. A nil
// env means an empty environment: no constants, no variables, no
// functions, with variables still growing on assignment.
func NewEvaluator(env *Env) *Evaluator {
	if env == nil {
		env = NewEnv()
	}
	return &Evaluator{p: NewParser(env), env: env}
}

// Env returns the environment the evaluator reads and writes. Variables
// assigned by evaluated expressions are visible in it afterward.
func (ev *Evaluator) Env() *Env {
	return ev.env
}

// Evaluate parses src and computes its value. It is Parse followed by
// Eval, returning whichever error arises first.
func (ev *Evaluator) Evaluate(src string) (float64, error) {
	a, err := ev.p.Parse(src)
	if err != nil {
		return 0, err
	}
	return ev.Eval(a)
}

// Eval computes the value of a parsed expression. Evaluating a blank
// expression is an error, as there is no number it could yield.
func (ev *Evaluator) Eval(a *Expr) (float64, error) {
	if a == nil || a.Node == nil {
		return 0, evalErrorf(0, "no expression")
	}
	return ev.eval(a.Node)
}

func (ev *Evaluator) eval(n Node) (float64, error) {
	switch n := n.(type) {
	case *Literal:
		// The tokenizer only emits well formed literals. A value beyond
		// the float64 range saturates to an infinity per IEEE-754.
		v, _ := strconv.ParseFloat(n.Text, 64)
		return v, nil
	case *Ident:
		v, ok := ev.env.Lookup(n.Name)
		if !ok {
			return 0, evalErrorf(n.NamePos, "unknown identifier %q", n.Name)
		}
		return v, nil
	case *Unary:
		v, err := ev.eval(n.Operand)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case "+":
			return v, nil
		case "-":
			return -v, nil
		}
		return 0, evalErrorf(0, "unrecognized operator %q", n.Op)
	case *Binary:
		l, err := ev.eval(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := ev.eval(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		case "/":
			// Division by zero is an infinity or NaN per IEEE-754, not
			// an error.
			return l / r, nil
		case "%":
			return math.Mod(l, r), nil
		case "^":
			return math.Pow(l, r), nil
		}
		return 0, evalErrorf(0, "unrecognized operator %q", n.Op)
	case *Assign:
		v, err := ev.eval(n.Value)
		if err != nil {
			return 0, err
		}
		if err := ev.env.SetVar(n.Name, v); err != nil {
			return 0, evalErrorf(n.NamePos, "%v", err)
		}
		return v, nil
	case *Call:
		fn, ok := ev.env.Func(n.Name)
		if !ok {
			return 0, evalErrorf(n.NamePos, "unknown function %q", n.Name)
		}
		if fn.Fn == nil {
			return 0, evalErrorf(n.NamePos, "function %q is not callable", n.Name)
		}
		if len(n.Args) != fn.Arity {
			return 0, evalErrorf(n.NamePos, "wrong number of arguments in call to %s (got %d, want %d)", n.Name, len(n.Args), fn.Arity)
		}
		args := make([]float64, len(n.Args))
		for i, a := range n.Args {
			v, err := ev.eval(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return fn.Fn(args), nil
	case *Group:
		return ev.eval(n.Inner)
	default:
		return 0, evalErrorf(0, "unrecognized node %T", n)
	}
}

// EvalString is a shortcut to parse and evaluate a single expression
// against env. It makes a fresh evaluator per call; callers with many
// expressions should keep an Evaluator instead.
func EvalString(src string, env *Env) (float64, error) {
	return NewEvaluator(env).Evaluate(src)
}

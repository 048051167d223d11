package calc

import (
	"errors"
	"math"
	"strconv"
)

// Func is a native function over float64 values with a fixed number of
// arguments. The parser checks call sites against Arity and the evaluator
// enforces it, so Fn always receives exactly Arity arguments.
type Func struct {
	// Arity is the number of arguments the function takes.
	Arity int
	// Fn computes the result. A nil Fn reserves the name as a known
	// function that cannot be called; the parser will not warn about it,
	// but evaluating a call to it fails.
	Fn func(args []float64) float64
}

// Niladic wraps a function of zero variables, generally a function which
// produces a constant, into a Func.
func Niladic(f func() float64) Func {
	return Func{Arity: 0, Fn: func([]float64) float64 { return f() }}
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(x float64) float64) Func {
	return Func{Arity: 1, Fn: func(args []float64) float64 { return f(args[0]) }}
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(x, y float64) float64) Func {
	return Func{Arity: 2, Fn: func(args []float64) float64 { return f(args[0], args[1]) }}
}

// Env is the set of names an expression may refer to: write protected
// constants, mutable variables, and functions. Constants and variables
// share a namespace in which constants win; functions live in their own,
// so one name may be both a value and a function. An Env has no locking.
// The caller decides its lifetime and sharing, and concurrent evaluations
// that assign variables need an Env each or outside synchronization.
type Env struct {
	consts map[string]float64
	vars   map[string]float64
	funcs  map[string]Func
}

// EnvOption is an option for constructing environments.
type EnvOption interface {
	envOption(*Env)
}

type (
	constopt struct {
		name string
		x    float64
	}
	constsopt map[string]float64
	varopt    struct {
		name string
		x    float64
	}
	varsopt map[string]float64
	fnopt   struct {
		name string
		fn   Func
	}
	fnsopt map[string]Func
)

// Const binds a write protected constant.
func Const(name string, x float64) EnvOption {
	return constopt{name, x}
}

func (o constopt) envOption(e *Env) {
	e.consts[o.name] = o.x
}

// Consts binds each entry of m as a write protected constant.
func Consts(m map[string]float64) EnvOption {
	return constsopt(m)
}

func (o constsopt) envOption(e *Env) {
	for k, v := range o {
		e.consts[k] = v
	}
}

// Var binds a variable with an initial value. Expressions may assign it
// later.
func Var(name string, x float64) EnvOption {
	return varopt{name, x}
}

func (o varopt) envOption(e *Env) {
	e.vars[o.name] = o.x
}

// Vars binds each entry of m as a variable with an initial value.
func Vars(m map[string]float64) EnvOption {
	return varsopt(m)
}

func (o varsopt) envOption(e *Env) {
	for k, v := range o {
		e.vars[k] = v
	}
}

// Function binds a function. To reserve a name without making it
// callable, pass a Func with a nil Fn.
func Function(name string, fn Func) EnvOption {
	return fnopt{name, fn}
}

func (o fnopt) envOption(e *Env) {
	e.funcs[o.name] = o.fn
}

// Funcs binds each entry of m as a function.
func Funcs(m map[string]Func) EnvOption {
	return fnsopt(m)
}

func (o fnsopt) envOption(e *Env) {
	for k, v := range o {
		e.funcs[k] = v
	}
}

// NewEnv returns an environment holding exactly the names opts bind. The
// environment copies names out of the options, so the caller's maps stay
// the caller's.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{
		consts: make(map[string]float64),
		vars:   make(map[string]float64),
		funcs:  make(map[string]Func),
	}
	for _, opt := range opts {
		opt.envOption(e)
	}
	return e
}

// DefaultEnv returns an environment with the constants and functions of a
// plain scientific calculator, then applies opts on top. log is the
// base 10 logarithm and ln the natural one.
func DefaultEnv(opts ...EnvOption) *Env {
	e := NewEnv(
		Consts(map[string]float64{
			"pi":  math.Pi,
			"e":   math.E,
			"inf": math.Inf(1),
		}),
		Funcs(map[string]Func{
			"sqrt":  Monadic(math.Sqrt),
			"abs":   Monadic(math.Abs),
			"exp":   Monadic(math.Exp),
			"ln":    Monadic(math.Log),
			"log":   Monadic(math.Log10),
			"sin":   Monadic(math.Sin),
			"cos":   Monadic(math.Cos),
			"tan":   Monadic(math.Tan),
			"asin":  Monadic(math.Asin),
			"acos":  Monadic(math.Acos),
			"atan":  Monadic(math.Atan),
			"floor": Monadic(math.Floor),
			"ceil":  Monadic(math.Ceil),
			"round": Monadic(math.Round),
			"min":   Dyadic(math.Min),
			"max":   Dyadic(math.Max),
			"pow":   Dyadic(math.Pow),
			"mod":   Dyadic(math.Mod),
			"atan2": Dyadic(math.Atan2),
		}),
	)
	for _, opt := range opts {
		opt.envOption(e)
	}
	return e
}

// Const returns the value of the named constant.
func (e *Env) Const(name string) (float64, bool) {
	x, ok := e.consts[name]
	return x, ok
}

// Var returns the value of the named variable.
func (e *Env) Var(name string) (float64, bool) {
	x, ok := e.vars[name]
	return x, ok
}

// Func returns the named function.
func (e *Env) Func(name string) (Func, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// Lookup resolves name as a value, consulting constants before variables.
// Function names do not participate.
func (e *Env) Lookup(name string) (float64, bool) {
	if x, ok := e.consts[name]; ok {
		return x, true
	}
	x, ok := e.vars[name]
	return x, ok
}

// SetVar stores value in the named variable, creating it if needed.
// Constants are write protected: assigning to a name bound as a constant
// is an error, and the environment is left unchanged.
func (e *Env) SetVar(name string, value float64) error {
	if _, ok := e.consts[name]; ok {
		return errors.New("cannot assign to constant " + strconv.Quote(name))
	}
	e.vars[name] = value
	return nil
}

// Package calc evaluates arithmetic expressions against an environment of
// constants, variables, and functions.
//
// Expressions are the usual infix arithmetic: "1 + 2*3" is 7, and
// parentheses regroup as expected. The operator set also has % and ^,
// binding like * and /, and assignment: "r = 2" stores 2 in the variable
// r and yields 2, so a later "pi * r^2" against the same environment sees
// it. Constants, variables, and functions all come from an Env the caller
// builds and owns; nothing is global.
//
//	env := calc.DefaultEnv()
//	calc.EvalString("r = 2", env)
//	area, err := calc.EvalString("pi * r^2", env)
//
// Parsing and evaluation recurse over the syntax tree, so the nesting
// depth an expression may use is bounded by the host call stack. Callers
// evaluating input they do not control should cap its size first.
package calc

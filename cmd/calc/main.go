package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/calclab/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		ast, plain   bool
	)
	env := calc.DefaultEnv()
	given := func(s string) error {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		name = strings.TrimSpace(name)
		r, err := calc.EvalString(strings.TrimSpace(val), env)
		if err != nil {
			return fmt.Errorf("setting %s: %v", name, err)
		}
		return env.SetVar(name, r)
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.BoolVar(&ast, "ast", false, "print parse trees")
	flag.BoolVar(&plain, "plain", false, "do not colorize echoed input")
	flag.Func("given", "name=value variable definition (any number of times)", given)
	flag.Parse()
	if plain {
		color.NoColor = true
	}

	s := &session{
		parser: calc.NewParser(env),
		eval:   calc.NewEvaluator(env),
		verb:   verb + "\n",
		ast:    ast,
	}

	if inname != "" {
		f := os.Stdin
		if inname != "-" {
			g, err := os.Open(inname)
			if err != nil {
				log.Fatal(err)
			}
			defer g.Close()
			f = g
		}
		s.run(f)
	}
	for _, arg := range flag.Args() {
		s.batch(arg)
	}
	if inname == "" && flag.NArg() == 0 {
		if isInteractive() {
			s.interactive()
		} else {
			s.run(os.Stdin)
		}
	}
	if s.failed {
		os.Exit(1)
	}
}

// session evaluates expressions one line at a time against a single
// environment, so assignments on early lines are visible to later ones.
type session struct {
	parser *calc.Parser
	eval   *calc.Evaluator
	verb   string
	ast    bool
	failed bool
}

// do parses and evaluates one expression, printing warnings, the parse
// tree when requested, and the result. A blank line does nothing.
func (s *session) do(text string) error {
	a, err := s.parser.Parse(text)
	if err != nil {
		return err
	}
	if a.Node == nil {
		return nil
	}
	for _, w := range a.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if s.ast {
		fmt.Println(a)
	}
	r, err := s.eval.Eval(a)
	if err != nil {
		return err
	}
	fmt.Printf(s.verb, r)
	return nil
}

// batch evaluates one line of non-interactive input, echoing it first so
// that the output reads as a transcript.
func (s *session) batch(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Println(highlight(text))
	if err := s.do(text); err != nil {
		report(text, err)
		s.failed = true
	}
}

// run evaluates each line of r as one expression.
func (s *session) run(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.batch(sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
}

// interactive runs a line-edited prompt loop with history. Ctrl-C clears
// the current line and Ctrl-D ends the session.
func (s *session) interactive() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if path := historyPath(); path != "" {
		if f, err := os.Open(path); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		line, err := state.Prompt("calc> ")
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				log.Println("read error:", err)
				return
			}
		}
		if strings.TrimSpace(line) != "" {
			state.AppendHistory(line)
		}
		if err := s.do(line); err != nil {
			report(line, err)
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".calc_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// report prints err, preceded by the offending line with a caret under
// the position the error names when it carries one.
func report(line string, err error) {
	var cerr *calc.Error
	if errors.As(err, &cerr) && cerr.Pos >= 0 && cerr.Pos <= len(line) {
		log.Println(line)
		log.Println(strings.Repeat(" ", utf8.RuneCountInString(line[:cerr.Pos])) + "^")
	}
	log.Println(err)
}

var (
	numColor   = color.New(color.FgCyan)
	identColor = color.New(color.FgGreen)
	opColor    = color.New(color.FgYellow)
)

// highlight recolors line by token class, using the token offsets to
// keep the spacing between tokens exactly as typed. Input that does not
// tokenize comes back unchanged.
func highlight(line string) string {
	tz := calc.NewTokenizer(line)
	var b strings.Builder
	prev := 0
	for {
		tok, err := tz.Next()
		if err != nil {
			return line
		}
		if tok.Kind == calc.EOF {
			b.WriteString(line[prev:])
			return b.String()
		}
		b.WriteString(line[prev:tok.Start])
		switch tok.Kind {
		case calc.Number:
			b.WriteString(numColor.Sprint(tok.Lexeme))
		case calc.Identifier:
			b.WriteString(identColor.Sprint(tok.Lexeme))
		default:
			b.WriteString(opColor.Sprint(tok.Lexeme))
		}
		prev = tok.End + 1
	}
}

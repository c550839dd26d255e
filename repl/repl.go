package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/radicle-lang/radicle/lisp"
	"github.com/radicle-lang/radicle/parser/rdparser"
)

// ReadEval reads a block of source from r and evaluates each expression in
// order, printing every non-nil result to w.  A parse error is reported and
// nothing is evaluated.  An evaluation error is reported and evaluation
// continues with the next expression.  ReadEval returns the first error
// encountered after the whole block has been handled.
func ReadEval(env *lisp.Env, w io.Writer, name string, r io.Reader) error {
	if env.Reader == nil {
		return fmt.Errorf("environment has no reader")
	}
	exprs, err := env.Reader.Read(name, r)
	if err != nil {
		fmt.Fprintf(w, "Parse error: %v\n", err)
		return err
	}
	return EvalPrint(env, w, exprs)
}

// EvalPrint evaluates exprs in env, printing each non-nil result or error to
// w, and returns the first error encountered.
func EvalPrint(env *lisp.Env, w io.Writer, exprs []*lisp.Expr) error {
	var first error
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			if first == nil {
				first = err
			}
			continue
		}
		if v.IsNil() {
			continue
		}
		fmt.Fprintln(w, v)
	}
	return first
}

// RunRepl runs an interactive read-eval-print loop in env until the input
// is exhausted.  Input which ends inside an open list is continued on the
// following lines.
func RunRepl(env *lisp.Env, prompt string, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		buf = append(buf, line)
		src := strings.Join(buf, "\n")
		if strings.TrimSpace(src) == "" {
			buf = nil
			continue
		}
		exprs, err := env.Reader.Read("<stdin>", strings.NewReader(src))
		if errors.Is(err, rdparser.ErrUnexpectedEOF) {
			rl.SetPrompt(contPrompt)
			continue
		}
		buf = nil
		rl.SetPrompt(prompt)
		if err != nil {
			fmt.Fprintf(rl.Stdout(), "Parse error: %v\n", err)
			continue
		}
		EvalPrint(env, rl.Stdout(), exprs)
	}
}

package lisptest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/radicle-lang/radicle/lisp"
	"github.com/radicle-lang/radicle/parser"
	"github.com/radicle-lang/radicle/repl"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially in one lisp.Env.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns an environment that reads source with the default parser.
func NewEnv(config ...lisp.Config) (*lisp.Env, error) {
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	return lisp.NewEnv(config...)
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.Envs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env, err := NewEnv()
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			v, err := parser.ReadExpr(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			var result string
			v, err = env.Eval(v)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

// RunGoldenFiles interprets every .lisp file in dir and compares the printed
// output with the contents of the .out file of the same name.
func RunGoldenFiles(t *testing.T, dir string) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lisp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatalf("no test programs in %s", dir)
	}
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Unable to read test file: %v", err)
			}
			expect, err := os.ReadFile(strings.TrimSuffix(path, ".lisp") + ".out")
			if err != nil {
				t.Fatalf("Unable to read expected output: %v", err)
			}
			env, err := NewEnv()
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			repl.ReadEval(env, &buf, filepath.Base(path), bytes.NewReader(source))
			if buf.String() != string(expect) {
				t.Errorf("unexpected output\n--- expected\n%s--- got\n%s", expect, buf.String())
			}
		})
	}
}

package lisp

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sexpr(head string, args ...*Expr) *Expr {
	return List(append([]*Expr{Atom(head)}, args...)...)
}

func assertEval(t *testing.T, env *Env, expect *Expr, expr *Expr) {
	t.Helper()
	v, err := env.Eval(expr)
	if assert.NoError(t, err, "%v", expr) {
		assertExprEqual(t, expect, v)
	}
}

func assertEvalError(t *testing.T, env *Env, expr *Expr) *EvalError {
	t.Helper()
	_, err := env.Eval(expr)
	if !assert.Error(t, err, "%v", expr) {
		return nil
	}
	lerr, ok := err.(*EvalError)
	assert.True(t, ok, "unexpected error type %T", err)
	return lerr
}

func TestEvalSymbol(t *testing.T) {
	env := newTestEnv(t)
	lerr := assertEvalError(t, env, Atom("foo"))
	if lerr != nil {
		assert.Equal(t, "symbol not found: foo", lerr.Error())
	}
	env.Put("foo", Atom("bar"))
	assertEval(t, env, Atom("bar"), Atom("foo"))
}

func TestEvalNil(t *testing.T) {
	assertEval(t, newTestEnv(t), Nil(), Nil())
}

func TestEvalEmptyList(t *testing.T) {
	lerr := assertEvalError(t, newTestEnv(t), EmptyList())
	if lerr != nil {
		assert.Equal(t, "no procedure to call", lerr.Error())
	}
}

func TestEvalQuote(t *testing.T) {
	env := newTestEnv(t)
	list := List(Atom("foo"), Atom("bar"), Atom("baz"))
	assertEval(t, env, EmptyList(), Quote(EmptyList()))
	assertEval(t, env, Atom("foo"), Quote(Atom("foo")))
	assertEval(t, env, list, Quote(list))

	// (quote foo) is foo regardless of what foo is bound to
	env.Put("foo", Atom("bar"))
	assertEval(t, env, Atom("foo"), Quote(Atom("foo")))
	assertEval(t, env, Nil(), Quote(Nil()))

	assertEvalError(t, env, sexpr("quote"))
	lerr := assertEvalError(t, env, sexpr("quote", Atom("a"), Atom("b")))
	if lerr != nil {
		assert.Equal(t, "`quote` expects exactly one argument", lerr.Error())
	}
}

func TestEvalAtom(t *testing.T) {
	env := newTestEnv(t)
	assertEval(t, env, T(), sexpr("atom", Quote(Atom("foo"))))
	assertEval(t, env, T(), sexpr("atom", Quote(EmptyList())))
	assertEval(t, env, EmptyList(), sexpr("atom", Quote(List(Atom("foo"), Atom("bar")))))
	// nil is neither an atom nor the empty list
	assertEval(t, env, EmptyList(), sexpr("atom", sexpr("cond")))
	assertEvalError(t, env, sexpr("atom", Atom("unbound")))
	assertEvalError(t, env, sexpr("atom"))
}

func TestEvalEq(t *testing.T) {
	env := newTestEnv(t)
	qfoo := Quote(Atom("foo"))
	qnil := Quote(EmptyList())

	assertEvalError(t, env, sexpr("eq", Atom("foo"), Atom("foo")))
	assertEvalError(t, env, sexpr("eq", qfoo))
	assertEval(t, env, T(), sexpr("eq", qnil, qnil))
	assertEval(t, env, T(), sexpr("eq", qfoo, qfoo))
	assertEval(t, env, EmptyList(), sexpr("eq", qfoo, Quote(Atom("bar"))))
	assertEval(t, env, EmptyList(), sexpr("eq", qfoo, qnil))
	// lists are never eq, even when structurally equal
	qlist := Quote(List(Atom("a")))
	assertEval(t, env, EmptyList(), sexpr("eq", qlist, qlist))
	// nil is not the empty list
	assertEval(t, env, EmptyList(), sexpr("eq", sexpr("cond"), qnil))
}

func TestEvalFirstRest(t *testing.T) {
	env := newTestEnv(t)
	qabc := Quote(List(Atom("a"), Atom("b"), Atom("c")))
	for _, name := range []string{"first", "car"} {
		assertEval(t, env, Atom("a"), sexpr(name, qabc))
		assertEvalError(t, env, sexpr(name, Quote(Atom("foo"))))
		assertEvalError(t, env, sexpr(name, Quote(EmptyList())))
		assertEvalError(t, env, sexpr(name, qabc, qabc))
	}
	for _, name := range []string{"rest", "cdr"} {
		assertEval(t, env, List(Atom("b"), Atom("c")), sexpr(name, qabc))
		assertEval(t, env, EmptyList(), sexpr(name, Quote(List(Atom("a")))))
		assertEvalError(t, env, sexpr(name, Quote(Atom("foo"))))
		assertEvalError(t, env, sexpr(name, Quote(EmptyList())))
	}
	lerr := assertEvalError(t, env, sexpr("first", Quote(EmptyList())))
	if lerr != nil {
		assert.Contains(t, lerr.Error(), "non-empty list")
	}
}

func TestEvalCons(t *testing.T) {
	env := newTestEnv(t)
	qbar := Quote(List(Atom("bar")))
	assertEvalError(t, env, sexpr("cons", Atom("foo"), Atom("bar")))
	assertEvalError(t, env, sexpr("cons", Quote(Atom("foo")), Quote(Atom("bar"))))
	assertEval(t, env, List(Atom("foo"), Atom("bar")), sexpr("cons", Quote(Atom("foo")), qbar))
	assertEval(t, env,
		List(Atom("7"), Atom("10"), Atom("5"), Atom("9")),
		sexpr("cons", Quote(Atom("7")), Quote(List(Atom("10"), Atom("5"), Atom("9")))))
	assertEval(t, env, List(EmptyList()), sexpr("cons", Quote(EmptyList()), Quote(EmptyList())))
}

func TestEvalCond(t *testing.T) {
	env := newTestEnv(t)
	qfoo := Quote(Atom("foo"))
	qbar := Quote(Atom("bar"))
	qbaz := Quote(Atom("baz"))
	qt := Quote(T())

	assertEval(t, env, Atom("baz"), sexpr("cond", List(qfoo, qbar), List(qt, qbaz)))
	assertEval(t, env, Nil(), sexpr("cond", List(qfoo, qbar)))
	assertEval(t, env, Nil(), sexpr("cond"))
	// f is not special
	assertEval(t, env, Nil(), sexpr("cond", List(Quote(Atom("f")), Quote(Atom("7")))))
	// later clauses are not evaluated
	assertEval(t, env, Atom("bar"), sexpr("cond", List(qt, qbar), List(Atom("unbound"), qbaz)))
	// the result of a failed test is not evaluated
	assertEval(t, env, Nil(), sexpr("cond", List(qfoo, Atom("unbound"))))

	assertEvalError(t, env, sexpr("cond", qfoo))
	assertEvalError(t, env, sexpr("cond", List(qt)))
	assertEvalError(t, env, sexpr("cond", List(qt, qbar, qbaz)))
	assertEvalError(t, env, sexpr("cond", List(Atom("unbound"), qbar)))
}

func TestEvalLambda(t *testing.T) {
	env := newTestEnv(t)
	lambda := sexpr("lambda", List(Atom("x")), sexpr("cons", Atom("x"), Quote(List(Atom("a"), Atom("b")))))
	assertEval(t, env, List(Atom("Z"), Atom("a"), Atom("b")), List(lambda, Quote(Atom("Z"))))

	// arity mismatch
	assertEvalError(t, env, List(lambda, Quote(Atom("Z")), Quote(Atom("Y"))))
	assertEvalError(t, env, List(lambda))

	// lambda expressions have no value
	assertEvalError(t, env, lambda)

	// an operator that evaluates to a lambda
	env.Put("f", lambda)
	assertEval(t, env, List(Atom("Q"), Atom("a"), Atom("b")), sexpr("f", Quote(Atom("Q"))))

	// an operator that evaluates to something else
	env.Put("g", Atom("foo"))
	lerr := assertEvalError(t, env, sexpr("g", Quote(Atom("Q"))))
	if lerr != nil {
		assert.Contains(t, lerr.Error(), "unrecognized expression")
	}
	assertEvalError(t, env, List(Quote(Atom("x"))))
}

func TestEvalLambdaScope(t *testing.T) {
	env := newTestEnv(t)
	env.Put("x", Atom("outer"))
	env.Put("y", Atom("why"))
	// parameters shadow the caller's bindings and callers see their own
	// bindings when the call returns.
	ident := sexpr("lambda", List(Atom("x")), sexpr("cons", Atom("x"), sexpr("cons", Atom("y"), Quote(EmptyList()))))
	assertEval(t, env, List(Atom("inner"), Atom("why")), List(ident, Quote(Atom("inner"))))
	assertEval(t, env, Atom("outer"), Atom("x"))

	// arguments are evaluated in the caller's environment
	assertEval(t, env, List(Atom("outer"), Atom("why")), List(ident, Atom("x")))

	// argument errors propagate
	assertEvalError(t, env, List(ident, Atom("unbound")))
}

// reverse is
//
//	(label rev (lambda (l acc)
//	  (cond ((eq l (quote ())) acc)
//	        ((quote t) (rev (rest l) (cons (first l) acc))))))
func reverseLabel() *Expr {
	return Label("rev", []string{"l", "acc"},
		sexpr("cond",
			List(sexpr("eq", Atom("l"), Quote(EmptyList())), Atom("acc")),
			List(Quote(T()), sexpr("rev", sexpr("rest", Atom("l")), sexpr("cons", sexpr("first", Atom("l")), Atom("acc"))))))
}

func TestEvalLabel(t *testing.T) {
	env := newTestEnv(t)
	abc := List(Atom("a"), Atom("b"), Atom("c"))
	call := List(reverseLabel(), Quote(abc), Quote(EmptyList()))
	assertEval(t, env, List(Atom("c"), Atom("b"), Atom("a")), call)
	assert.Equal(t, 0, env.Stack.Height())

	// the label name is not visible after the call
	_, ok := env.Get("rev")
	assert.False(t, ok)

	// label forms have no value
	assertEvalError(t, env, reverseLabel())
}

func TestEvalDefun(t *testing.T) {
	env := newTestEnv(t)
	defun := sexpr("defun", Atom("rev"), List(Atom("l"), Atom("acc")), reverseLabel().Cells[2].Cells[2])
	assertEval(t, env, Nil(), defun)
	v, ok := env.Get("rev")
	if assert.True(t, ok) {
		assertExprEqual(t, reverseLabel(), v)
	}
	assertEval(t, env, List(Atom("b"), Atom("a")),
		sexpr("rev", Quote(List(Atom("a"), Atom("b"))), Quote(EmptyList())))

	assertEvalError(t, env, sexpr("defun", Atom("f"), List(Atom("x"))))
	assertEvalError(t, env, sexpr("defun", List(Atom("f")), List(Atom("x")), Atom("x")))
	assertEvalError(t, env, sexpr("defun", Atom("f"), Atom("x"), Atom("x")))
	assertEvalError(t, env, sexpr("defun", Atom("f"), List(EmptyList()), Atom("x")))
}

func TestEvalDefunInBody(t *testing.T) {
	env := newTestEnv(t)
	// ((lambda () (cond ((defun g () (quote ok)) (quote no)) ((quote t) (g))))) => ok
	body := sexpr("cond",
		List(sexpr("defun", Atom("g"), EmptyList(), Quote(Atom("ok"))), Quote(Atom("no"))),
		List(Quote(T()), sexpr("g")))
	assertEval(t, env, Atom("ok"), List(sexpr("lambda", EmptyList(), body)))
	// the definition is global
	assertEval(t, env, Atom("ok"), sexpr("g"))
}

func TestEvalPrimitivesNotShadowed(t *testing.T) {
	env := newTestEnv(t)
	env.Put("quote", Atom("shadow"))
	assertEval(t, env, Atom("x"), Quote(Atom("x")))
	assert.True(t, IsPrimitive("cdr"))
	assert.False(t, IsPrimitive("lambda"))
}

func TestEvalMaximumStackHeight(t *testing.T) {
	env := newTestEnv(t, WithMaximumStackHeight(8))
	// (label loop (lambda (x) (loop x)))
	loop := Label("loop", []string{"x"}, sexpr("loop", Atom("x")))
	lerr := assertEvalError(t, env, List(loop, Quote(Atom("a"))))
	if lerr != nil {
		assert.Contains(t, lerr.Error(), "maximum stack height exceeded")
		if assert.NotNil(t, lerr.Stack) {
			assert.Equal(t, 8, lerr.Stack.Height())
			var buf bytes.Buffer
			_, err := lerr.Stack.DebugPrint(&buf)
			assert.NoError(t, err)
			assert.Contains(t, buf.String(), "height 7: loop/1")
		}
	}
	assert.Equal(t, 0, env.Stack.Height())
}

func TestEvalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	env := newTestEnv(t, WithLogger(logger))
	ident := sexpr("lambda", List(Atom("x")), Atom("x"))
	assertEval(t, env, Atom("a"), List(ident, Quote(Atom("a"))))
	assertEval(t, env, Nil(), sexpr("defun", Atom("f"), EmptyList(), Quote(Atom("b"))))
	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=call name=lambda args=1"), out)
	assert.True(t, strings.Contains(out, "msg=defun name=f"), out)
}

func TestEvalAll(t *testing.T) {
	env := newTestEnv(t)
	results, err := env.EvalAll([]*Expr{
		sexpr("defun", Atom("id"), List(Atom("x")), Atom("x")),
		sexpr("id", Quote(Atom("a"))),
		Atom("unbound"),
		Quote(Atom("never")),
	})
	require.Error(t, err)
	if assert.Len(t, results, 2) {
		assertExprEqual(t, Nil(), results[0])
		assertExprEqual(t, Atom("a"), results[1])
	}
}

func TestMatchFunc(t *testing.T) {
	lambda := sexpr("lambda", List(Atom("x"), Atom("y")), Atom("x"))
	fun := MatchFunc(lambda)
	assert.Equal(t, LambdaFunc, fun.Kind)
	assert.Equal(t, []string{"x", "y"}, fun.Params)
	assert.Equal(t, "", fun.Name)
	assertExprEqual(t, Atom("x"), fun.Body)

	fun = MatchFunc(sexpr("label", Atom("f"), lambda))
	assert.Equal(t, LabelFunc, fun.Kind)
	assert.Equal(t, "f", fun.Name)
	assert.Equal(t, []string{"x", "y"}, fun.Params)

	fun = MatchFunc(sexpr("lambda", EmptyList(), Atom("x")))
	assert.Equal(t, LambdaFunc, fun.Kind)
	assert.Empty(t, fun.Params)

	notFuncs := []*Expr{
		Nil(),
		Atom("lambda"),
		EmptyList(),
		sexpr("lambda", List(Atom("x"))),
		sexpr("lambda", Atom("x"), Atom("x")),
		sexpr("lambda", List(List(Atom("x"))), Atom("x")),
		sexpr("lambda", List(Atom("x")), Atom("x"), Atom("y")),
		sexpr("label", List(Atom("f")), lambda),
		sexpr("label", Atom("f"), Atom("g")),
		sexpr("label", Atom("f"), sexpr("label", Atom("g"), lambda)),
		sexpr("quote", lambda),
	}
	for i, expr := range notFuncs {
		assert.Equal(t, NotFunction, MatchFunc(expr).Kind, "test %d: %v", i, expr)
	}
	assert.Equal(t, "label", LabelFunc.String())
}

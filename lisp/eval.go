package lisp

import (
	"log/slog"
)

// Eval evaluates expr in the context of env and returns the resulting
// expression.  Eval never modifies env except through defun.
func (env *Env) Eval(expr *Expr) (*Expr, error) {
	switch expr.Type {
	case ENil:
		return Nil(), nil
	case EAtom:
		v, ok := env.Get(expr.Str)
		if !ok {
			return nil, env.errorf(expr, "symbol not found: %s", expr.Str)
		}
		return v, nil
	case EList:
		return env.evalList(expr)
	default:
		return nil, env.errorf(expr, "invalid expression type: %v", expr.Type)
	}
}

func (env *Env) evalList(expr *Expr) (*Expr, error) {
	if expr.Len() == 0 {
		return nil, env.errorf(expr, "no procedure to call")
	}
	head := expr.Cells[0]
	if head.IsAtom() {
		if prim, ok := primitiveTable[head.Str]; ok {
			return prim.call(env, expr)
		}
	}
	return env.evalCall(expr)
}

// evalCall evaluates a call to a lambda or label function.  The operator is
// only evaluated when it is not already a function literal, lambda and label
// forms have no value of their own.
func (env *Env) evalCall(expr *Expr) (*Expr, error) {
	op := expr.Cells[0]
	args := expr.Cells[1:]

	fun := MatchFunc(op)
	if fun.Kind == NotFunction {
		var err error
		op, err = env.Eval(op)
		if err != nil {
			return nil, err
		}
		fun = MatchFunc(op)
		if fun.Kind == NotFunction {
			return nil, env.errorf(expr, "unrecognized expression: %v", expr.Cells[0])
		}
	}
	if len(fun.Params) != len(args) {
		return nil, env.errorf(expr, "%s expects %d arguments (got %d)",
			fun.displayName(), len(fun.Params), len(args))
	}

	bindings := make(map[string]*Expr, len(args)+1)
	if fun.Kind == LabelFunc {
		bindings[fun.Name] = op
	}
	for i, arg := range args {
		v, err := env.Eval(arg)
		if err != nil {
			return nil, err
		}
		bindings[fun.Params[i]] = v
	}

	err := env.Stack.Push(fun.displayName(), len(args))
	if err != nil {
		return nil, env.errorf(expr, "%v", err)
	}
	defer env.Stack.Pop()
	env.Logger.Debug("call",
		slog.String("name", fun.displayName()),
		slog.Int("args", len(args)),
		slog.Int("stack-height", env.Stack.Height()))

	return env.Extend(bindings).Eval(fun.Body)
}

func (fun *FuncLiteral) displayName() string {
	if fun.Kind == LabelFunc {
		return fun.Name
	}
	return "lambda"
}

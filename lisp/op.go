package lisp

import (
	"log/slog"
)

// primitive is a built-in operation recognized by name in operator position.
// Primitives are not bound in any environment and cannot be shadowed.
type primitive struct {
	name  string
	nargs int // -1 for a variable number of arguments
	fn    func(env *Env, expr *Expr, args []*Expr) (*Expr, error)
}

var langPrimitives = []*primitive{
	{"quote", 1, opQuote},
	{"atom", 1, opAtom},
	{"eq", 2, opEq},
	{"first", 1, opFirst},
	{"car", 1, opFirst},
	{"rest", 1, opRest},
	{"cdr", 1, opRest},
	{"cons", 2, opCons},
	{"cond", -1, opCond},
	{"defun", 3, opDefun},
}

var primitiveTable map[string]*primitive

func init() {
	primitiveTable = make(map[string]*primitive, len(langPrimitives))
	for _, p := range langPrimitives {
		primitiveTable[p.name] = p
	}
}

// IsPrimitive returns true if name is the name of a primitive operation.
func IsPrimitive(name string) bool {
	_, ok := primitiveTable[name]
	return ok
}

var countWords = []string{"zero", "one", "two", "three"}

func (p *primitive) call(env *Env, expr *Expr) (*Expr, error) {
	args := expr.Cells[1:]
	if p.nargs >= 0 && len(args) != p.nargs {
		plural := "s"
		if p.nargs == 1 {
			plural = ""
		}
		return nil, env.errorf(expr, "`%s` expects exactly %s argument%s",
			p.name, countWords[p.nargs], plural)
	}
	return p.fn(env, expr, args)
}

func opQuote(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	return args[0], nil
}

func opAtom(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	v, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if v.IsAtom() || v.IsEmptyList() {
		return T(), nil
	}
	return EmptyList(), nil
}

func opEq(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	a, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	b, err := env.Eval(args[1])
	if err != nil {
		return nil, err
	}
	if a.IsEmptyList() && b.IsEmptyList() {
		return T(), nil
	}
	if a.IsAtom() && b.IsAtom() && a.Str == b.Str {
		return T(), nil
	}
	return EmptyList(), nil
}

func evalNonEmptyList(env *Env, expr *Expr, arg *Expr) (*Expr, error) {
	v, err := env.Eval(arg)
	if err != nil {
		return nil, err
	}
	if !v.IsList() || v.IsEmptyList() {
		return nil, env.errorf(expr, "`%s`'s argument must be a non-empty list (got %v)",
			expr.Cells[0].Str, describe(v))
	}
	return v, nil
}

func opFirst(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	v, err := evalNonEmptyList(env, expr, args[0])
	if err != nil {
		return nil, err
	}
	return v.Cells[0], nil
}

func opRest(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	v, err := evalNonEmptyList(env, expr, args[0])
	if err != nil {
		return nil, err
	}
	return List(v.Cells[1:]...), nil
}

func opCons(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	head, err := env.Eval(args[0])
	if err != nil {
		return nil, err
	}
	tail, err := env.Eval(args[1])
	if err != nil {
		return nil, err
	}
	if !tail.IsList() {
		return nil, env.errorf(expr, "`cons`'s second argument must be a list (got %v)", describe(tail))
	}
	cells := make([]*Expr, 0, len(tail.Cells)+1)
	cells = append(cells, head)
	cells = append(cells, tail.Cells...)
	return List(cells...), nil
}

// opCond evaluates to Nil when no test evaluates to t.
func opCond(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	for _, clause := range args {
		if !clause.IsList() || clause.Len() != 2 {
			return nil, env.errorf(expr, "invalid argument to `cond`: %v", describe(clause))
		}
		test, err := env.Eval(clause.Cells[0])
		if err != nil {
			return nil, err
		}
		if test.IsSymbol(TrueSymbol) {
			return env.Eval(clause.Cells[1])
		}
	}
	return Nil(), nil
}

// opDefun binds a name in the global environment to the label expression
// equivalent to (defun name params body).
func opDefun(env *Env, expr *Expr, args []*Expr) (*Expr, error) {
	if !args[0].IsAtom() {
		return nil, env.errorf(expr, "first argument to `defun` must be a symbol")
	}
	if !args[1].IsList() {
		return nil, env.errorf(expr, "second argument to `defun` must be a list of params")
	}
	params := make([]string, len(args[1].Cells))
	for i, p := range args[1].Cells {
		if !p.IsAtom() {
			return nil, env.errorf(expr, "second argument to `defun` must be a list of params")
		}
		params[i] = p.Str
	}
	name := args[0].Str
	env.PutGlobal(name, Label(name, params, args[2]))
	env.Logger.Debug("defun",
		slog.String("name", name),
		slog.Int("params", len(params)))
	return Nil(), nil
}

func describe(v *Expr) string {
	if v.IsNil() {
		return "nil"
	}
	return v.String()
}

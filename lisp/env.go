package lisp

import (
	"io"
	"log/slog"
)

// Env is a lisp environment.  An Env is a flat mapping from symbols to
// expressions backed by the global environment.  Function calls do not chain
// environments, they evaluate their body in a copy of the caller's local
// bindings extended with the call's bindings.  As a consequence functions do
// not close over the environment in which they were defined.  Global
// bindings are never copied, so a definition made during a call is visible
// to every frame that does not shadow it.
type Env struct {
	Scope  map[string]*Expr
	Stack  *CallStack
	Reader Reader
	Logger *slog.Logger

	root *Env
}

// NewEnv initializes and returns a new global environment.
func NewEnv(config ...Config) (*Env, error) {
	env := &Env{
		Scope:  make(map[string]*Expr),
		Stack:  &CallStack{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

// Root returns the global environment env was extended from.
func (env *Env) Root() *Env {
	if env.root != nil {
		return env.root
	}
	return env
}

// IsRoot returns true if env is a global environment.
func (env *Env) IsRoot() bool {
	return env.root == nil
}

// Get returns the expression bound to name in env.  Names without a local
// binding are looked up in the global environment.
func (env *Env) Get(name string) (*Expr, bool) {
	v, ok := env.Scope[name]
	if !ok && env.root != nil {
		v, ok = env.root.Scope[name]
	}
	return v, ok
}

// Put binds name to v in env.
func (env *Env) Put(name string, v *Expr) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
}

// PutGlobal binds name to v in the global environment.  A local binding of
// name in env continues to shadow it.
func (env *Env) PutGlobal(name string, v *Expr) {
	env.Root().Put(name, v)
}

// Extend returns a copy of env's local bindings with bindings added.
// Bindings shadow any binding of the same name in env.  The returned Env
// shares its call stack, reader, logger and global environment with env.
func (env *Env) Extend(bindings map[string]*Expr) *Env {
	cp := &Env{}
	*cp = *env
	cp.root = env.Root()
	var locals map[string]*Expr
	if !env.IsRoot() {
		locals = env.Scope
	}
	cp.Scope = make(map[string]*Expr, len(locals)+len(bindings))
	for k, v := range locals {
		cp.Scope[k] = v
	}
	for k, v := range bindings {
		cp.Scope[k] = v
	}
	return cp
}

// Load reads a program from r using env.Reader and evaluates each top-level
// expression in order.  Load stops at the first error, returning the results
// of the expressions evaluated before it.
func (env *Env) Load(name string, r io.Reader) ([]*Expr, error) {
	if env.Reader == nil {
		return nil, Errorf("no reader for environment")
	}
	exprs, err := env.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return env.EvalAll(exprs)
}

// EvalAll evaluates exprs in order and returns their results.  EvalAll stops
// at the first error.
func (env *Env) EvalAll(exprs []*Expr) ([]*Expr, error) {
	results := make([]*Expr, 0, len(exprs))
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return results, err
		}
		results = append(results, v)
	}
	return results, nil
}

package lisp

import "fmt"

// EvalError is the error returned when an expression cannot be evaluated.
// The message describes the failure while Expr, when set, is the
// expression being evaluated.  Stack is a copy of the call stack at the
// point of failure.
type EvalError struct {
	Msg   string
	Expr  *Expr
	Stack *CallStack
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Msg
}

// Errorf returns an EvalError with a formatted message.
func Errorf(format string, v ...interface{}) *EvalError {
	return &EvalError{Msg: fmt.Sprintf(format, v...)}
}

// errorf returns an EvalError with the current call stack attached.
func (env *Env) errorf(expr *Expr, format string, v ...interface{}) error {
	return &EvalError{
		Msg:   fmt.Sprintf(format, v...),
		Expr:  expr,
		Stack: env.Stack.Copy(),
	}
}

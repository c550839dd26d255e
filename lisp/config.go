package lisp

import "log/slog"

// Config is a function that configures a root environment.
type Config func(env *Env) error

// WithMaximumStackHeight returns a Config that will prevent an environment
// from allowing the height of its call stack to exceed n.  Exceeding the
// height is reported as an evaluation error.  A value of zero removes the
// limit.
func WithMaximumStackHeight(n int) Config {
	return func(env *Env) error {
		if n < 0 {
			return Errorf("negative maximum stack height: %d", n)
		}
		env.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *Env) error {
		env.Reader = r
		return nil
	}
}

// WithLogger returns a Config that makes environments write trace records to
// logger instead of discarding them.
func WithLogger(logger *slog.Logger) Config {
	return func(env *Env) error {
		env.Logger = logger
		return nil
	}
}

package lisp

import (
	"fmt"
	"io"
)

// CallStack is a function call stack.  Only calls to lambda and label
// functions push frames, primitives do not.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int // zero means no limit
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name  string // label name or "lambda"
	NArgs int
}

// Copy creates a copy of the current stack so that it can be attached to an
// evaluation error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame onto s.  Push returns an error instead of
// pushing if doing so would exceed s.MaxHeight.
func (s *CallStack) Push(name string, nargs int) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return fmt.Errorf("maximum stack height exceeded (%d)", s.MaxHeight)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, NArgs: nargs})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		_n, err := fmt.Fprintf(w, "%sheight %d: %s/%d\n", indent, i, f.Name, f.NArgs)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

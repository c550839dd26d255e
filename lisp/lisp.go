package lisp

import (
	"bytes"
)

// ExprType is the type of an Expr
type ExprType uint

// Possible ExprType values
const (
	ENil ExprType = iota
	EAtom
	EList
)

var exprTypeStrings = []string{
	ENil:  "nil",
	EAtom: "atom",
	EList: "list",
}

func (t ExprType) String() string {
	if int(t) >= len(exprTypeStrings) {
		return "INVALID"
	}
	return exprTypeStrings[t]
}

// TrueSymbol is the text of the atom that cond tests against and that atom
// and eq return for a true result.
const TrueSymbol = "t"

// Expr is a lisp expression.  The same type represents both code and data.
// An Expr is never modified after construction, operations that "update" an
// expression return a new one.
type Expr struct {
	Type  ExprType
	Str   string
	Cells []*Expr
}

// Nil returns an Expr representing the absence of a value.  Nil is distinct
// from the empty list.
func Nil() *Expr {
	return &Expr{Type: ENil}
}

// Atom returns an Expr representing the symbol s.
func Atom(s string) *Expr {
	return &Expr{
		Type: EAtom,
		Str:  s,
	}
}

// T returns the atom t.
func T() *Expr {
	return Atom(TrueSymbol)
}

// List returns an Expr containing cells.
func List(cells ...*Expr) *Expr {
	return &Expr{
		Type:  EList,
		Cells: cells,
	}
}

// EmptyList returns the list ().
func EmptyList() *Expr {
	return &Expr{Type: EList}
}

// Quote returns the expression (quote v).
func Quote(v *Expr) *Expr {
	return List(Atom("quote"), v)
}

// IsNil returns true if v is the Nil value.
func (v *Expr) IsNil() bool {
	return v.Type == ENil
}

// IsAtom returns true if v is an atom.
func (v *Expr) IsAtom() bool {
	return v.Type == EAtom
}

// IsList returns true if v is a list (possibly empty).  Nil is not a list.
func (v *Expr) IsList() bool {
	return v.Type == EList
}

// IsEmptyList returns true if v is ().
func (v *Expr) IsEmptyList() bool {
	return v.Type == EList && len(v.Cells) == 0
}

// IsSymbol returns true if v is an atom with text name.
func (v *Expr) IsSymbol(name string) bool {
	return v.Type == EAtom && v.Str == name
}

// AtomText returns the text of atom v.  AtomText panics if v is not an atom.
func (v *Expr) AtomText() string {
	if v.Type != EAtom {
		panic("called AtomText on non-atom: " + v.Type.String())
	}
	return v.Str
}

// ListCells returns the children of list v.  ListCells panics if v is not a
// list.  The returned slice must not be modified.
func (v *Expr) ListCells() []*Expr {
	if v.Type != EList {
		panic("called ListCells on non-list: " + v.Type.String())
	}
	return v.Cells
}

// Len returns the number of cells in v.
func (v *Expr) Len() int {
	return len(v.Cells)
}

// Copy creates a deep copy of the receiver.
func (v *Expr) Copy() *Expr {
	if v == nil {
		return nil
	}
	cp := &Expr{}
	*cp = *v
	cp.Cells = v.copyCells()
	return cp
}

func (v *Expr) copyCells() []*Expr {
	if len(v.Cells) == 0 {
		return nil
	}
	cells := make([]*Expr, len(v.Cells))
	for i := range cells {
		cells[i] = v.Cells[i].Copy()
	}
	return cells
}

// Equal returns true if v and other have the same structure.
func (v *Expr) Equal(other *Expr) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case EAtom:
		return v.Str == other.Str
	case EList:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String returns the canonical textual form of v.  Nil prints as nothing.
func (v *Expr) String() string {
	var buf bytes.Buffer
	v.writeTo(&buf)
	return buf.String()
}

func (v *Expr) writeTo(buf *bytes.Buffer) {
	switch v.Type {
	case EAtom:
		buf.WriteString(v.Str)
	case EList:
		buf.WriteString("(")
		for i, c := range v.Cells {
			if i > 0 {
				buf.WriteString(" ")
			}
			c.writeTo(buf)
		}
		buf.WriteString(")")
	}
}

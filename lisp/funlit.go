package lisp

// FuncKind identifies the shape of a function literal.
type FuncKind uint

// Possible FuncKind values
const (
	NotFunction FuncKind = iota
	LambdaFunc
	LabelFunc
)

func (k FuncKind) String() string {
	switch k {
	case LambdaFunc:
		return "lambda"
	case LabelFunc:
		return "label"
	default:
		return "not-function"
	}
}

// FuncLiteral is the parsed form of a lambda or label expression.  Name is
// only set for label literals.
type FuncLiteral struct {
	Kind   FuncKind
	Name   string
	Params []string
	Body   *Expr
}

// MatchFunc matches expr against the function literal forms
//
//	(lambda (p1 ... pn) body)
//	(label name (lambda (p1 ... pn) body))
//
// and returns the parsed literal.  If expr has neither shape the returned
// literal has kind NotFunction.
func MatchFunc(expr *Expr) FuncLiteral {
	if lit, ok := matchLambda(expr); ok {
		return lit
	}
	if lit, ok := matchLabel(expr); ok {
		return lit
	}
	return FuncLiteral{Kind: NotFunction}
}

func matchLambda(expr *Expr) (FuncLiteral, bool) {
	if !expr.IsList() || expr.Len() != 3 {
		return FuncLiteral{}, false
	}
	cells := expr.Cells
	if !cells[0].IsSymbol("lambda") || !cells[1].IsList() {
		return FuncLiteral{}, false
	}
	params := make([]string, len(cells[1].Cells))
	for i, p := range cells[1].Cells {
		if !p.IsAtom() {
			return FuncLiteral{}, false
		}
		params[i] = p.Str
	}
	return FuncLiteral{Kind: LambdaFunc, Params: params, Body: cells[2]}, true
}

func matchLabel(expr *Expr) (FuncLiteral, bool) {
	if !expr.IsList() || expr.Len() != 3 {
		return FuncLiteral{}, false
	}
	cells := expr.Cells
	if !cells[0].IsSymbol("label") || !cells[1].IsAtom() {
		return FuncLiteral{}, false
	}
	lit, ok := matchLambda(cells[2])
	if !ok {
		return FuncLiteral{}, false
	}
	lit.Kind = LabelFunc
	lit.Name = cells[1].Str
	return lit, true
}

// Label returns the expression (label name (lambda params body)).
func Label(name string, params []string, body *Expr) *Expr {
	formals := make([]*Expr, len(params))
	for i := range params {
		formals[i] = Atom(params[i])
	}
	return List(Atom("label"), Atom(name), List(Atom("lambda"), List(formals...), body))
}

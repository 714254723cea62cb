package types

import "github.com/lumina-lang/lumina/internal/ast"

// ConstEvalError distinguishes the two const-evaluation failure codes
// named by the spec from an ordinary unresolved-parameter case (which is
// not an error: it just means the expression can't be folded yet).
type ConstEvalError struct {
	Code    string // "CONST-DIV-ZERO"
	Message string
}

func (e *ConstEvalError) Error() string { return e.Message }

// EvalConstExpr folds a const-generic expression tree to an int64,
// looking up bound const parameters in bindings. It returns (0, false,
// nil) when the expression depends on a parameter absent from
// bindings (not yet resolvable, not an error), and a *ConstEvalError for
// genuine evaluation failures such as division by zero.
func EvalConstExpr(e ast.ConstExpr, bindings map[string]int64) (int64, bool, error) {
	switch n := e.(type) {
	case *ast.ConstLiteral:
		return n.Value, true, nil
	case *ast.ConstParam:
		v, ok := bindings[n.Name]
		return v, ok, nil
	case *ast.ConstBinary:
		l, lok, err := EvalConstExpr(n.Left, bindings)
		if err != nil || !lok {
			return 0, false, err
		}
		r, rok, err := EvalConstExpr(n.Right, bindings)
		if err != nil || !rok {
			return 0, false, err
		}
		switch n.Op {
		case "+":
			return l + r, true, nil
		case "-":
			return l - r, true, nil
		case "*":
			return l * r, true, nil
		case "/":
			if r == 0 {
				return 0, false, &ConstEvalError{Code: "CONST-DIV-ZERO", Message: "division by zero in const expression"}
			}
			return l / r, true, nil
		case "%":
			if r == 0 {
				return 0, false, &ConstEvalError{Code: "CONST-DIV-ZERO", Message: "modulo by zero in const expression"}
			}
			return l % r, true, nil
		}
	}
	return 0, false, nil
}

// CheckArraySize compares a declared array type's folded const size
// against an observed length (e.g. an array literal's element count),
// returning a CONST-SIZE-MISMATCH error on mismatch. declared == nil
// (unsized) always matches.
func CheckArraySize(declared ast.ConstExpr, bindings map[string]int64, observed int64) error {
	if declared == nil {
		return nil
	}
	size, ok, err := EvalConstExpr(declared, bindings)
	if err != nil {
		return err
	}
	if !ok {
		return nil // depends on an unbound parameter; reported as no mismatch
	}
	if size != observed {
		return &ConstEvalError{
			Code:    "CONST-SIZE-MISMATCH",
			Message: "array size mismatch: declared length does not match literal length",
		}
	}
	return nil
}

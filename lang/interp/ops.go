package interp

import (
	"math"

	"github.com/aiscript-lang/aiscript-go/lang/token"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// evalBinaryOp implements every binary operator except && and ||, which
// short-circuit and are therefore evaluated directly in evalBinaryExpr.
func evalBinaryOp(op token.Kind, l, r value.Value) (value.Value, error) {
	switch op {
	case token.EQEQ:
		return value.Bool(value.Equal(l, r)), nil
	case token.NEQ:
		return value.Bool(!value.Equal(l, r)), nil
	}

	if op == token.PLUS {
		if ls, ok := l.(value.Str); ok {
			rs, ok := r.(value.Str)
			if !ok {
				return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "+: cannot add str and %s", r.Type())
			}
			return ls + rs, nil
		}
	}

	ln, ok := l.(value.Num)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "%s: left operand must be num, got %s", op, l.Type())
	}
	rn, ok := r.(value.Num)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "%s: right operand must be num, got %s", op, r.Type())
	}

	switch op {
	case token.PLUS:
		return ln + rn, nil
	case token.MINUS:
		return ln - rn, nil
	case token.STAR:
		return ln * rn, nil
	case token.SLASH:
		return ln / rn, nil
	case token.PERCENT:
		return value.Num(math.Mod(float64(ln), float64(rn))), nil
	case token.STARSTAR:
		return value.Num(math.Pow(float64(ln), float64(rn))), nil
	case token.LT:
		return value.Bool(ln < rn), nil
	case token.GT:
		return value.Bool(ln > rn), nil
	case token.LE:
		return value.Bool(ln <= rn), nil
	case token.GE:
		return value.Bool(ln >= rn), nil
	default:
		return nil, value.NewRuntimeError(value.CategoryInternal, "unknown binary operator %s", op)
	}
}

func evalUnaryOp(op token.Kind, x value.Value) (value.Value, error) {
	switch op {
	case token.BANG:
		b, ok := x.(value.Bool)
		if !ok {
			return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "!: operand must be bool, got %s", x.Type())
		}
		return !b, nil
	case token.MINUS:
		n, ok := x.(value.Num)
		if !ok {
			return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "-: operand must be num, got %s", x.Type())
		}
		return -n, nil
	case token.PLUS:
		n, ok := x.(value.Num)
		if !ok {
			return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "+: operand must be num, got %s", x.Type())
		}
		return n, nil
	default:
		return nil, value.NewRuntimeError(value.CategoryInternal, "unknown unary operator %s", op)
	}
}

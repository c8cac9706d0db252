package interp

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/token"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// assignPattern writes v into target, which may be a plain identifier, an
// index or property expression, or a destructuring array/object pattern.
func (e *Evaluator) assignPattern(target ast.Pattern, v value.Value, scope *value.Scope) error {
	switch target := target.(type) {
	case *ast.IdentExpr:
		return scope.Assign(target.Name, v)

	case *ast.IndexExpr:
		tv, err := e.evalExpr(target.Target, scope)
		if err != nil {
			return err
		}
		idx, err := e.evalExpr(target.Index, scope)
		if err != nil {
			return err
		}
		si, ok := tv.(value.SetIndexable)
		if !ok {
			return value.NewRuntimeError(value.CategoryInvalidAssignment, "cannot assign into an index of %s", tv.Type())
		}
		return si.SetIndex(idx, v)

	case *ast.PropExpr:
		tv, err := e.evalExpr(target.Target, scope)
		if err != nil {
			return err
		}
		obj, ok := tv.(*value.Obj)
		if !ok {
			return value.NewRuntimeError(value.CategoryInvalidAssignment, "cannot assign to a property of %s", tv.Type())
		}
		obj.Set(target.Name, v)
		return nil

	case *ast.ArrayPattern:
		arr, ok := v.(*value.Arr)
		if !ok {
			return value.NewRuntimeError(value.CategoryTypeMismatch, "cannot destructure %s as an array pattern", v.Type())
		}
		for i, elemPat := range target.Elems {
			var elemVal value.Value = value.Null{}
			if i < len(arr.Elems) {
				elemVal = arr.Elems[i]
			}
			if err := e.assignPattern(elemPat, elemVal, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.ObjectPattern:
		obj, ok := v.(*value.Obj)
		if !ok {
			return value.NewRuntimeError(value.CategoryTypeMismatch, "cannot destructure %s as an object pattern", v.Type())
		}
		for i, key := range target.Keys {
			elemVal, found := obj.Get(key)
			if !found {
				elemVal = value.Null{}
			}
			if err := e.assignPattern(target.Elems[i], elemVal, scope); err != nil {
				return err
			}
		}
		return nil

	default:
		return value.NewRuntimeError(value.CategoryInvalidAssignment, "invalid assignment target %T", target)
	}
}

// readTarget evaluates an identifier/index/prop assignment target as a
// read, for the read-modify-write compound assignments.
func (e *Evaluator) readTarget(target ast.Pattern, scope *value.Scope) (value.Value, error) {
	switch target := target.(type) {
	case *ast.IdentExpr:
		return e.evalExpr(target, scope)
	case *ast.IndexExpr:
		return e.evalExpr(target, scope)
	case *ast.PropExpr:
		return e.evalExpr(target, scope)
	default:
		return nil, value.NewRuntimeError(value.CategoryInvalidAssignment, "invalid compound assignment target %T", target)
	}
}

// execCompoundAssign implements `target += expr` and `target -= expr`:
// the target is read, both sides must be num, and the result is written
// back through the same target.
func (e *Evaluator) execCompoundAssign(stmt *ast.CompoundAssignStmt, scope *value.Scope) error {
	cur, err := e.readTarget(stmt.Target, scope)
	if err != nil {
		return err
	}
	rhs, err := e.evalExpr(stmt.Value, scope)
	if err != nil {
		return err
	}
	curN, ok := cur.(value.Num)
	if !ok {
		return value.NewRuntimeError(value.CategoryTypeMismatch, "%s: target must be num, got %s", stmt.Op, cur.Type())
	}
	rhsN, ok := rhs.(value.Num)
	if !ok {
		return value.NewRuntimeError(value.CategoryTypeMismatch, "%s: operand must be num, got %s", stmt.Op, rhs.Type())
	}
	var result value.Num
	switch stmt.Op {
	case token.PLUS_EQ:
		result = curN + rhsN
	case token.MINUS_EQ:
		result = curN - rhsN
	default:
		return value.NewRuntimeError(value.CategoryInternal, "unknown compound assignment operator %s", stmt.Op)
	}
	return e.assignPattern(stmt.Target, result, scope)
}

package interp

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// execStmt evaluates one statement in scope. Most statements return
// value.Null{}; ExprStmt returns the expression's value (so that the last
// statement of a block can supply the block's value when used as an
// expression), and ReturnStmt/BreakStmt/ContinueStmt return the
// corresponding marker so callers up the call/loop stack can unwind
// appropriately.
func (e *Evaluator) execStmt(stmt ast.Stmt, scope *value.Scope) (value.Value, error) {
	if e.stopped() {
		return value.Null{}, nil
	}
	if err := e.tick(); err != nil {
		return nil, err
	}

	switch stmt := stmt.(type) {
	case *ast.DefStmt:
		v, err := e.evalExpr(stmt.Value, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		attrs, err := e.evalAttrs(stmt.Attrs, scope)
		if err != nil {
			return nil, err
		}
		if fn, ok := v.(*value.Fn); ok {
			if fn.Name == "" {
				fn.Name = stmt.Name
			}
			fn.Attrs = append(fn.Attrs, attrs...)
		}
		if err := scope.Define(stmt.Name, v, stmt.Mutable); err != nil {
			return nil, err
		}
		return value.Null{}, nil

	case *ast.ReturnStmt:
		v, err := e.evalOptional(stmt.Value, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		return returnMarker{value: v}, nil

	case *ast.BreakStmt:
		var v value.Value
		if stmt.Value != nil {
			bv, err := e.evalExpr(stmt.Value, scope)
			if err != nil {
				return nil, err
			}
			if isMarker(bv) {
				return bv, nil
			}
			v = bv
		}
		return breakMarker{label: stmt.Label, value: v}, nil

	case *ast.ContinueStmt:
		return continueMarker{label: stmt.Label}, nil

	case *ast.PrintStmt:
		v, err := e.evalExpr(stmt.Value, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		e.print(v)
		return value.Null{}, nil

	case *ast.ExprStmt:
		return e.evalExpr(stmt.X, scope)

	case *ast.AssignStmt:
		v, err := e.evalExpr(stmt.Value, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		return value.Null{}, e.assignPattern(stmt.Target, v, scope)

	case *ast.CompoundAssignStmt:
		return value.Null{}, e.execCompoundAssign(stmt, scope)

	case *ast.EachStmt:
		return e.execEachStmt(stmt, scope)

	case *ast.ForStmt:
		return e.execForStmt(stmt, scope)

	case *ast.ForLetStmt:
		return e.execForLetStmt(stmt, scope)

	case *ast.LoopStmt:
		return e.execLoopStmt(stmt, scope)

	case *ast.NamespaceDecl:
		// nested namespaces are handled by the enclosing declaration pass; a
		// namespace in statement position outside one is a no-op here.
		return value.Null{}, nil

	default:
		return nil, value.NewRuntimeError(value.CategoryInternal, "unknown statement type %T", stmt)
	}
}

func (e *Evaluator) evalOptional(x ast.Expr, scope *value.Scope) (value.Value, error) {
	if x == nil {
		return value.Null{}, nil
	}
	return e.evalExpr(x, scope)
}

// execBlock runs a block's statements in a fresh child scope, returning the
// value of its last statement (or null), or propagating any
// return/break/continue marker produced along the way.
func (e *Evaluator) execBlock(b *ast.Block, parent *value.Scope) (value.Value, error) {
	scope := value.NewScope(parent)
	var last value.Value = value.Null{}
	for _, stmt := range b.Stmts {
		v, err := e.execStmt(stmt, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func isMarker(v value.Value) bool {
	_, ok := v.(marker)
	return ok
}

// targetsLoop reports whether a break/continue label targets the loop
// carrying ownLabel: an empty marker label always targets the nearest
// enclosing loop.
func targetsLoop(markerLabel, ownLabel string) bool {
	return markerLabel == "" || markerLabel == ownLabel
}

// loopControl inspects the result of one loop-body iteration. done means
// the loop must stop returning out; next means continue with the next
// iteration.
func (e *Evaluator) loopControl(v value.Value, ownLabel string) (out value.Value, done, next bool) {
	switch m := v.(type) {
	case breakMarker:
		if targetsLoop(m.label, ownLabel) {
			return m.result(), true, false
		}
		return m, true, false
	case continueMarker:
		if targetsLoop(m.label, ownLabel) {
			return nil, false, true
		}
		return m, true, false
	case returnMarker:
		return m, true, false
	}
	return nil, false, false
}

func (e *Evaluator) execEachStmt(stmt *ast.EachStmt, scope *value.Scope) (value.Value, error) {
	items, err := e.evalExpr(stmt.Items, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(items) {
		return items, nil
	}
	arr, ok := items.(*value.Arr)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "each: expected arr, got %s", items.Type())
	}
	// iterate a snapshot: mutations to the array inside the body are not
	// observed by the iteration itself.
	it := arr.Iterate()
	for {
		if e.stopped() {
			return value.Null{}, nil
		}
		if err := e.tick(); err != nil {
			return nil, err
		}
		item, ok := it.Next()
		if !ok {
			break
		}
		iterScope := value.NewScope(scope)
		if err := iterScope.Define(stmt.Var, item, false); err != nil {
			return nil, err
		}
		v, err := e.execBlock(stmt.Body, iterScope)
		if err != nil {
			return nil, err
		}
		if out, done, next := e.loopControl(v, stmt.Label); done {
			return out, nil
		} else if next {
			continue
		}
	}
	return value.Null{}, nil
}

func (e *Evaluator) execForStmt(stmt *ast.ForStmt, scope *value.Scope) (value.Value, error) {
	timesV, err := e.evalExpr(stmt.Times, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(timesV) {
		return timesV, nil
	}
	times, ok := timesV.(value.Num)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "for: expected num, got %s", timesV.Type())
	}
	for i := 0; float64(i) < float64(times); i++ {
		if e.stopped() {
			return value.Null{}, nil
		}
		if err := e.tick(); err != nil {
			return nil, err
		}
		v, err := e.execBlock(stmt.Body, value.NewScope(scope))
		if err != nil {
			return nil, err
		}
		if out, done, next := e.loopControl(v, stmt.Label); done {
			return out, nil
		} else if next {
			continue
		}
	}
	return value.Null{}, nil
}

// execForLetStmt implements the half-open interval `for let i = from, to`:
// i ranges over [from, to), with from and to evaluated once at entry and i
// bound immutably in a fresh scope each iteration.
func (e *Evaluator) execForLetStmt(stmt *ast.ForLetStmt, scope *value.Scope) (value.Value, error) {
	fromV, err := e.evalExpr(stmt.From, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(fromV) {
		return fromV, nil
	}
	toV, err := e.evalExpr(stmt.To, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(toV) {
		return toV, nil
	}
	from, ok := fromV.(value.Num)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "for: expected num, got %s", fromV.Type())
	}
	to, ok := toV.(value.Num)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "for: expected num, got %s", toV.Type())
	}
	for i := from; i < to; i++ {
		if e.stopped() {
			return value.Null{}, nil
		}
		if err := e.tick(); err != nil {
			return nil, err
		}
		iterScope := value.NewScope(scope)
		if err := iterScope.Define(stmt.Var, i, false); err != nil {
			return nil, err
		}
		v, err := e.execBlock(stmt.Body, iterScope)
		if err != nil {
			return nil, err
		}
		if out, done, next := e.loopControl(v, stmt.Label); done {
			return out, nil
		} else if next {
			continue
		}
	}
	return value.Null{}, nil
}

func (e *Evaluator) execLoopStmt(stmt *ast.LoopStmt, scope *value.Scope) (value.Value, error) {
	for {
		if e.stopped() {
			return value.Null{}, nil
		}
		if err := e.tick(); err != nil {
			return nil, err
		}
		v, err := e.execBlock(stmt.Body, value.NewScope(scope))
		if err != nil {
			return nil, err
		}
		if out, done, next := e.loopControl(v, stmt.Label); done {
			return out, nil
		} else if next {
			continue
		}
	}
}

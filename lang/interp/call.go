package interp

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func (e *Evaluator) callFn(f *value.Fn, args []value.Value) (value.Value, error) {
	if e.stopped() {
		return value.Null{}, nil
	}
	if err := e.tick(); err != nil {
		return nil, err
	}

	if f.IsNative() {
		return f.Native(args)
	}

	scope := value.NewScope(f.Closure)
	if err := e.bindParams(scope, f.Params, args); err != nil {
		return nil, err
	}

	// the body's last statement value is the implicit return value; an
	// explicit `return` short-circuits with its own.
	var last value.Value = value.Null{}
	for _, stmt := range f.Body.Stmts {
		v, err := e.execStmt(stmt, scope)
		if err != nil {
			return nil, err
		}
		if m, ok := v.(marker); ok {
			return m.result(), nil
		}
		last = v
	}
	return last, nil
}

// marker is the control-flow sentinel produced by return/break/continue
// statements. Markers travel through the same (value, error) shape every
// other evaluation uses, and are consumed by the nearest legal construct;
// they are never observable to scripts as first-class values.
type marker interface {
	value.Value
	// result is the value the consuming construct yields for this sentinel.
	result() value.Value
}

type returnMarker struct{ value value.Value }

func (returnMarker) Type() string { return "<return>" }
func (returnMarker) Repr() string { return "<return>" }
func (m returnMarker) result() value.Value { return m.value }

type breakMarker struct {
	label string
	value value.Value // nil when the break carried no value
}

func (breakMarker) Type() string { return "<break>" }
func (breakMarker) Repr() string { return "<break>" }
func (m breakMarker) result() value.Value {
	if m.value == nil {
		return value.Null{}
	}
	return m.value
}

type continueMarker struct{ label string }

func (continueMarker) Type() string { return "<continue>" }
func (continueMarker) Repr() string { return "<continue>" }
func (continueMarker) result() value.Value { return value.Null{} }

func (e *Evaluator) bindParams(scope *value.Scope, params []ast.Param, args []value.Value) error {
	for i, p := range params {
		var v value.Value = value.Null{}
		switch {
		case i < len(args):
			v = args[i]
		case p.Default != nil:
			dv, err := e.evalExpr(p.Default, scope)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := scope.Define(p.Name, v, true); err != nil {
			return err
		}
	}
	return nil
}

package interp

import (
	"strings"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/primitive"
	"github.com/aiscript-lang/aiscript-go/lang/token"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func (e *Evaluator) evalExpr(x ast.Expr, scope *value.Scope) (value.Value, error) {
	if e.stopped() {
		return value.Null{}, nil
	}
	if err := e.tick(); err != nil {
		return nil, err
	}

	switch x := x.(type) {
	case *ast.NullLit:
		return value.Null{}, nil
	case *ast.BoolLit:
		return value.Bool(x.Value), nil
	case *ast.NumLit:
		return value.Num(x.Value), nil
	case *ast.StrLit:
		return value.Str(x.Value), nil

	case *ast.TemplateExpr:
		return e.evalTemplate(x, scope)

	case *ast.IdentExpr:
		b, ok := scope.Lookup(x.Name)
		if !ok {
			return nil, value.NewRuntimeError(value.CategoryNoSuchVariable, "no such variable %q in scope %s", x.Name, scope.Name())
		}
		return b.Value, nil

	case *ast.ExistsExpr:
		_, ok := scope.Lookup(x.Name)
		return value.Bool(ok), nil

	case *ast.ArrLit:
		elems := make([]value.Value, len(x.Elems))
		for i, el := range x.Elems {
			v, err := e.evalExpr(el, scope)
			if err != nil {
				return nil, err
			}
			if isMarker(v) {
				return v, nil
			}
			elems[i] = v
		}
		return value.NewArr(elems...), nil

	case *ast.ObjLit:
		obj := value.NewObj()
		for _, entry := range x.Elems {
			v, err := e.evalExpr(entry.Value, scope)
			if err != nil {
				return nil, err
			}
			if isMarker(v) {
				return v, nil
			}
			obj.Set(entry.Key, v)
		}
		return obj, nil

	case *ast.UnaryExpr:
		v, err := e.evalExpr(x.X, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		return evalUnaryOp(x.Op, v)

	case *ast.BinaryExpr:
		return e.evalBinaryExpr(x, scope)

	case *ast.CallExpr:
		return e.evalCallExpr(x, scope)

	case *ast.IndexExpr:
		tv, err := e.evalExpr(x.Target, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(tv) {
			return tv, nil
		}
		iv, err := e.evalExpr(x.Index, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(iv) {
			return iv, nil
		}
		indexable, ok := tv.(value.Indexable)
		if !ok {
			return nil, value.NewRuntimeError(value.CategoryInvalidProperty, "cannot index into %s", tv.Type())
		}
		return indexable.Index(iv)

	case *ast.PropExpr:
		tv, err := e.evalExpr(x.Target, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(tv) {
			return tv, nil
		}
		return e.evalProp(tv, x.Name)

	case *ast.FnExpr:
		fn := &value.Fn{Name: x.Name, Params: x.Sig.Params, Body: x.Body, Closure: scope}
		attrs, err := e.evalAttrs(x.Attrs, scope)
		if err != nil {
			return nil, err
		}
		fn.Attrs = attrs
		return fn, nil

	case *ast.IfExpr:
		return e.evalIfExpr(x, scope)

	case *ast.MatchExpr:
		return e.evalMatchExpr(x, scope)

	case *ast.BlockExpr:
		v, err := e.execBlock(x.Body, scope)
		if err != nil {
			return nil, err
		}
		return consumeLabeledBreak(v, x.Label), nil

	default:
		return nil, value.NewRuntimeError(value.CategoryInternal, "unknown expression type %T", x)
	}
}

// evalProp resolves `target.name`: objects read their own entries (missing
// keys yield null), primitives dispatch to their property tables, and
// everything else has no properties at all.
func (e *Evaluator) evalProp(tv value.Value, name string) (value.Value, error) {
	if obj, ok := tv.(*value.Obj); ok {
		return obj.Attr(name)
	}
	switch tv.(type) {
	case value.Num, value.Str, *value.Arr, *value.Error:
		if v, ok := primitive.Lookup(tv, name); ok {
			return v, nil
		}
		return nil, value.NewRuntimeError(value.CategoryNoSuchProperty, "%s has no property %q", tv.Type(), name)
	default:
		return nil, value.NewRuntimeError(value.CategoryInvalidPrimitiveProperty, "cannot read property %q of %s", name, tv.Type())
	}
}

// evalAttrs evaluates a definition's `#[name expr]` annotations at
// definition time; an attribute without an expression reads as true.
func (e *Evaluator) evalAttrs(attrs []ast.Attribute, scope *value.Scope) ([]value.Attr, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	out := make([]value.Attr, len(attrs))
	for i, a := range attrs {
		var v value.Value = value.Bool(true)
		if a.Value != nil {
			av, err := e.evalExpr(a.Value, scope)
			if err != nil {
				return nil, err
			}
			v = av
		}
		out[i] = value.Attr{Name: a.Name, Value: v}
	}
	return out, nil
}

// consumeLabeledBreak resolves a break marker targeting label, turning it
// into the construct's value; anything else passes through unchanged.
func consumeLabeledBreak(v value.Value, label string) value.Value {
	if bm, ok := v.(breakMarker); ok && label != "" && bm.label == label {
		return bm.result()
	}
	return v
}

// condBool enforces the Bool-operand requirement shared by if conditions
// and the short-circuiting logical operators.
func condBool(v value.Value, what string) (bool, error) {
	b, ok := v.(value.Bool)
	if !ok {
		return false, value.NewRuntimeError(value.CategoryTypeMismatch, "%s must be bool, got %s", what, v.Type())
	}
	return bool(b), nil
}

func (e *Evaluator) evalBinaryExpr(x *ast.BinaryExpr, scope *value.Scope) (value.Value, error) {
	switch x.Op {
	case token.AND, token.OR:
		l, err := e.evalExpr(x.Left, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(l) {
			return l, nil
		}
		lb, err := condBool(l, "left operand of a logical operator")
		if err != nil {
			return nil, err
		}
		// short-circuit: the decisive operand is the result.
		if (x.Op == token.AND && !lb) || (x.Op == token.OR && lb) {
			return l, nil
		}
		r, err := e.evalExpr(x.Right, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(r) {
			return r, nil
		}
		if _, err := condBool(r, "right operand of a logical operator"); err != nil {
			return nil, err
		}
		return r, nil
	}

	l, err := e.evalExpr(x.Left, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(l) {
		return l, nil
	}
	r, err := e.evalExpr(x.Right, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(r) {
		return r, nil
	}
	return evalBinaryOp(x.Op, l, r)
}

func (e *Evaluator) evalCallExpr(x *ast.CallExpr, scope *value.Scope) (value.Value, error) {
	fv, err := e.evalExpr(x.Fn, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(fv) {
		return fv, nil
	}
	fn, ok := fv.(*value.Fn)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "%s is not callable", fv.Type())
	}
	args := make([]value.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := e.evalExpr(a, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		args[i] = v
	}
	return e.callFn(fn, args)
}

func (e *Evaluator) evalIfExpr(x *ast.IfExpr, scope *value.Scope) (value.Value, error) {
	for _, br := range x.Branches {
		cv, err := e.evalExpr(br.Cond, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(cv) {
			return cv, nil
		}
		cb, err := condBool(cv, "if condition")
		if err != nil {
			return nil, err
		}
		if cb {
			v, err := e.execBlock(br.Body, scope)
			if err != nil {
				return nil, err
			}
			return consumeLabeledBreak(v, x.Label), nil
		}
	}
	if x.Else != nil {
		v, err := e.execBlock(x.Else, scope)
		if err != nil {
			return nil, err
		}
		return consumeLabeledBreak(v, x.Label), nil
	}
	return value.Null{}, nil
}

func (e *Evaluator) evalMatchExpr(x *ast.MatchExpr, scope *value.Scope) (value.Value, error) {
	about, err := e.evalExpr(x.About, scope)
	if err != nil {
		return nil, err
	}
	if isMarker(about) {
		return about, nil
	}
	for _, arm := range x.Arms {
		qv, err := e.evalExpr(arm.Q, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(qv) {
			return qv, nil
		}
		if value.Equal(about, qv) {
			v, err := e.evalExpr(arm.A, scope)
			if err != nil {
				return nil, err
			}
			return consumeLabeledBreak(v, x.Label), nil
		}
	}
	if x.Default != nil {
		v, err := e.evalExpr(x.Default, scope)
		if err != nil {
			return nil, err
		}
		return consumeLabeledBreak(v, x.Label), nil
	}
	return value.Null{}, nil
}

func (e *Evaluator) evalTemplate(x *ast.TemplateExpr, scope *value.Scope) (value.Value, error) {
	var b strings.Builder
	for _, piece := range x.Pieces {
		if piece.Expr == nil {
			b.WriteString(piece.Str)
			continue
		}
		v, err := e.evalExpr(piece.Expr, scope)
		if err != nil {
			return nil, err
		}
		if isMarker(v) {
			return v, nil
		}
		// a Str embeds its raw contents; everything else its repr.
		b.WriteString(v.Repr())
	}
	return value.Str(b.String()), nil
}

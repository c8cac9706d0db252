package validator

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// The fixed table of type constructors annotations may reference. Simple
// names take no inner type; generic names take exactly one (defaulting to
// `any` when omitted). Everything else resolves only as an in-scope type
// parameter.
var (
	simpleTypeNames = map[string]bool{
		"null": true, "bool": true, "num": true, "str": true,
		"error": true, "never": true, "any": true, "void": true,
	}
	genericTypeNames = map[string]bool{
		"arr": true, "obj": true,
	}
)

// checkFnSignature validates a function signature's type parameters (no
// duplicate names) and the types of its parameters and return annotation,
// with the signature's own type parameters in scope.
func (v *validator) checkFnSignature(pos token.Pos, sig ast.FnSignature) {
	seen := map[string]bool{}
	for _, tp := range sig.TypeParams {
		if seen[tp] {
			v.errorf(pos, "duplicate type parameter name %q", tp)
		}
		seen[tp] = true
	}
	for _, p := range sig.Params {
		if p.Type != nil {
			v.checkType(p.Type, seen)
		}
		if p.Default != nil {
			v.expr(p.Default)
		}
	}
	if sig.Return != nil {
		v.checkType(sig.Return, seen)
	}
}

// checkType validates t against the fixed type table, resolving bare names
// either as a built-in or as one of typeParams (nil means none are in
// scope, i.e. a top-level `let`/`var` annotation outside any function).
func (v *validator) checkType(t ast.TypeExpr, typeParams map[string]bool) {
	switch t := t.(type) {
	case *ast.SimpleType:
		// a generic name with its argument omitted is also written as a bare
		// name; the inner type defaults to `any`.
		if simpleTypeNames[t.Name] || genericTypeNames[t.Name] || typeParams[t.Name] {
			return
		}
		v.errorf(t.Start, "unknown type %q", t.Name)

	case *ast.GenericType:
		if !genericTypeNames[t.Name] {
			if typeParams[t.Name] {
				v.errorf(t.Start, "type parameter %q cannot take an inner type", t.Name)
			} else {
				v.errorf(t.Start, "unknown generic type %q", t.Name)
			}
		}
		if t.Inner != nil {
			v.checkType(t.Inner, typeParams)
		}

	case *ast.FuncType:
		merged := typeParams
		if len(t.TypeParams) > 0 {
			merged = map[string]bool{}
			for k := range typeParams {
				merged[k] = true
			}
			seen := map[string]bool{}
			for _, tp := range t.TypeParams {
				if seen[tp] {
					v.errorf(t.Start, "duplicate type parameter name %q", tp)
				}
				seen[tp] = true
				merged[tp] = true
			}
		}
		for _, p := range t.Params {
			v.checkType(p, merged)
		}
		if t.Return != nil {
			v.checkType(t.Return, merged)
		}

	case *ast.UnionType:
		for _, m := range t.Members {
			v.checkType(m, typeParams)
		}
	}
}

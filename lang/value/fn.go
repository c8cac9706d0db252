package value

import (
	"strings"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
)

// Attr is one `#[name expr]` annotation evaluated at definition time and
// carried alongside the defined value for host-side introspection; the
// runtime itself never interprets attribute names.
type Attr struct {
	Name  string
	Value Value
}

// Fn is a callable value: either a scripted closure (Body non-nil) or a
// native function backing one of the lang/stdlib namespaces (Native
// non-nil). Exactly one of the two is set.
type Fn struct {
	Name  string
	Attrs []Attr

	// Scripted function fields.
	Params  []ast.Param
	Body    *ast.Block
	Closure *Scope

	// Native function field; Call is invoked directly with evaluated args.
	Native func(args []Value) (Value, error)
}

func (*Fn) Type() string { return "fn" }

// Repr lists the function's parameter names; natives list none since their
// arity lives on the Go side.
func (f *Fn) Repr() string {
	if f.IsNative() || len(f.Params) == 0 {
		return "@() { ... }"
	}
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return "@( " + strings.Join(names, ", ") + " ) { ... }"
}

// IsNative reports whether f is backed by a Go function rather than scripted
// source.
func (f *Fn) IsNative() bool { return f.Native != nil }

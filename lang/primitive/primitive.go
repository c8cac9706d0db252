// Package primitive implements property dispatch for AiScript's primitive
// value types (num, str, arr, error): the methods reachable via `x.prop`
// that are not user-defined object fields but built into the language
// itself, e.g. `"abc".len`, `[1,2].push(3)`, `(3.5).to_str()`.
package primitive

import (
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// Method is a bound primitive method: a native function closing over the
// receiver it was looked up on.
type Method func(args []value.Value) (value.Value, error)

// Lookup resolves name against recv's primitive property table, returning
// either a callable *value.Fn (for method-shaped properties) or a plain
// value.Value (for data properties such as arr.length-as-method — AiScript
// exposes array length only via `len`, listed below), and ok=false if recv's
// type has no such primitive property.
func Lookup(recv value.Value, name string) (value.Value, bool) {
	switch recv := recv.(type) {
	case value.Num:
		return lookupNum(recv, name)
	case value.Str:
		return lookupStr(recv, name)
	case *value.Arr:
		return lookupArr(recv, name)
	case *value.Error:
		return lookupError(recv, name)
	default:
		return nil, false
	}
}

func method(name string, fn Method) *value.Fn {
	return &value.Fn{Name: name, Native: fn}
}

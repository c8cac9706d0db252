// Package stdlib installs AiScript's built-in namespaces (Core, Math, Str,
// Arr, Obj, Json, Date, Uri, Error, Util) into a root lang/value.Scope. Each
// namespace is a value.Scope created with value.NewNamespaceScope so its
// members are reachable both as `Ns:member` from anywhere and, inside the
// namespace's own declaration block if a script re-declares it, unqualified.
package stdlib

import (
	"io"
	"os"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// Stdout is where Core:print and the `<:` debug-print statement write;
// tests may redirect it.
var Stdout io.Writer = os.Stdout

// native builds a value.Fn backed by a Go function, for installation into a
// namespace scope.
func native(name string, fn func(args []value.Value) (value.Value, error)) *value.Fn {
	return &value.Fn{Name: name, Native: fn}
}

// Install populates root with every built-in namespace.
func Install(root *value.Scope) {
	installCore(root)
	installMath(root)
	installStr(root)
	installArr(root)
	installObj(root)
	installJSON(root)
	installDate(root)
	installURI(root)
	installError(root)
	installUtil(root)
}

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Null{}
}

func argNum(args []value.Value, i int) (value.Num, bool) {
	n, ok := arg(args, i).(value.Num)
	return n, ok
}

func argStr(args []value.Value, i int) (value.Str, bool) {
	s, ok := arg(args, i).(value.Str)
	return s, ok
}

// The need* helpers enforce the shared argument discipline of the built-in
// namespaces: an argument that was not supplied at all fails with
// ExpectAny, one of the wrong type with TypeMismatch.
func needArg(fn string, args []value.Value, i int) (value.Value, error) {
	if i >= len(args) {
		return nil, value.NewRuntimeError(value.CategoryExpectAny, "%s: missing argument %d", fn, i+1)
	}
	return args[i], nil
}

func needNum(fn string, args []value.Value, i int) (value.Num, error) {
	v, err := needArg(fn, args, i)
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Num)
	if !ok {
		return 0, typeErr(fn, i, "num", v)
	}
	return n, nil
}

func needBool(fn string, args []value.Value, i int) (value.Bool, error) {
	v, err := needArg(fn, args, i)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, typeErr(fn, i, "bool", v)
	}
	return b, nil
}

func needStr(fn string, args []value.Value, i int) (value.Str, error) {
	v, err := needArg(fn, args, i)
	if err != nil {
		return "", err
	}
	s, ok := v.(value.Str)
	if !ok {
		return "", typeErr(fn, i, "str", v)
	}
	return s, nil
}

func needArr(fn string, args []value.Value, i int) (*value.Arr, error) {
	v, err := needArg(fn, args, i)
	if err != nil {
		return nil, err
	}
	a, ok := v.(*value.Arr)
	if !ok {
		return nil, typeErr(fn, i, "arr", v)
	}
	return a, nil
}

func needObj(fn string, args []value.Value, i int) (*value.Obj, error) {
	v, err := needArg(fn, args, i)
	if err != nil {
		return nil, err
	}
	o, ok := v.(*value.Obj)
	if !ok {
		return nil, typeErr(fn, i, "obj", v)
	}
	return o, nil
}

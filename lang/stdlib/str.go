package stdlib

import (
	"strings"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func installStr(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Str")

	ns.Define("lf", value.Str("\n"), false)

	ns.Define("from_codepoint", native("from_codepoint", func(args []value.Value) (value.Value, error) {
		n, err := needNum("from_codepoint", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(string(rune(n))), nil
	}), false)

	ns.Define("from_unicode_codepoints", native("from_unicode_codepoints", func(args []value.Value) (value.Value, error) {
		arr, err := needArr("from_unicode_codepoints", args, 0)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		for _, e := range arr.Elems {
			n, ok := e.(value.Num)
			if !ok {
				return nil, typeErr("from_unicode_codepoints", 0, "arr<num>", e)
			}
			b.WriteRune(rune(n))
		}
		return value.Str(b.String()), nil
	}), false)

	ns.Define("from_utf8_bytes", native("from_utf8_bytes", func(args []value.Value) (value.Value, error) {
		arr, err := needArr("from_utf8_bytes", args, 0)
		if err != nil {
			return nil, err
		}
		bs := make([]byte, len(arr.Elems))
		for i, e := range arr.Elems {
			n, ok := e.(value.Num)
			if !ok {
				return nil, typeErr("from_utf8_bytes", 0, "arr<num>", e)
			}
			bs[i] = byte(n)
		}
		return value.Str(bs), nil
	}), false)

	ns.Define("lt", native("lt", func(args []value.Value) (value.Value, error) {
		a, err := needStr("lt", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := needStr("lt", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(a < b), nil
	}), false)

	ns.Define("gt", native("gt", func(args []value.Value) (value.Value, error) {
		a, err := needStr("gt", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := needStr("gt", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(a > b), nil
	}), false)
}

package stdlib

import (
	"fmt"
	"math"
	"time"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func installCore(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Core")

	ns.Define("print", native("print", func(args []value.Value) (value.Value, error) {
		fmt.Fprintln(Stdout, value.Display(arg(args, 0)))
		return value.Null{}, nil
	}), false)

	ns.Define("range", native("range", func(args []value.Value) (value.Value, error) {
		a, err := needNum("range", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := needNum("range", args, 1)
		if err != nil {
			return nil, err
		}
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		var elems []value.Value
		for n := lo; n <= hi; n++ {
			elems = append(elems, n)
		}
		return value.NewArr(elems...), nil
	}), false)

	ns.Define("to_str", native("to_str", func(args []value.Value) (value.Value, error) {
		v := arg(args, 0)
		if s, ok := v.(value.Str); ok {
			return s, nil
		}
		return value.Str(v.Repr()), nil
	}), false)

	ns.Define("type", native("type", func(args []value.Value) (value.Value, error) {
		return value.Str(arg(args, 0).Type()), nil
	}), false)

	binNum := func(name string, fn func(a, b value.Num) value.Value) {
		ns.Define(name, native(name, func(args []value.Value) (value.Value, error) {
			a, err := needNum(name, args, 0)
			if err != nil {
				return nil, err
			}
			b, err := needNum(name, args, 1)
			if err != nil {
				return nil, err
			}
			return fn(a, b), nil
		}), false)
	}
	binNum("add", func(a, b value.Num) value.Value { return a + b })
	binNum("sub", func(a, b value.Num) value.Value { return a - b })
	binNum("mul", func(a, b value.Num) value.Value { return a * b })
	binNum("div", func(a, b value.Num) value.Value { return a / b })
	binNum("mod", func(a, b value.Num) value.Value { return value.Num(math.Mod(float64(a), float64(b))) })
	binNum("pow", func(a, b value.Num) value.Value { return value.Num(math.Pow(float64(a), float64(b))) })

	ns.Define("eq", native("eq", func(args []value.Value) (value.Value, error) {
		return value.Bool(value.Equal(arg(args, 0), arg(args, 1))), nil
	}), false)
	ns.Define("neq", native("neq", func(args []value.Value) (value.Value, error) {
		return value.Bool(!value.Equal(arg(args, 0), arg(args, 1))), nil
	}), false)
	binBool := func(name string, fn func(a, b bool) bool) {
		ns.Define(name, native(name, func(args []value.Value) (value.Value, error) {
			a, err := needBool(name, args, 0)
			if err != nil {
				return nil, err
			}
			b, err := needBool(name, args, 1)
			if err != nil {
				return nil, err
			}
			return value.Bool(fn(bool(a), bool(b))), nil
		}), false)
	}
	binBool("and", func(a, b bool) bool { return a && b })
	binBool("or", func(a, b bool) bool { return a || b })
	ns.Define("not", native("not", func(args []value.Value) (value.Value, error) {
		b, err := needBool("not", args, 0)
		if err != nil {
			return nil, err
		}
		return !b, nil
	}), false)

	ns.Define("abort", native("abort", func(args []value.Value) (value.Value, error) {
		msg, err := needStr("abort", args, 0)
		if err != nil {
			return nil, err
		}
		return nil, value.NewRuntimeError(value.CategoryUser, "%s", string(msg))
	}), false)

	ns.Define("get_all", native("get_all", func(args []value.Value) (value.Value, error) {
		names := root.Names()
		elems := make([]value.Value, len(names))
		for i, n := range names {
			elems[i] = value.Str(n)
		}
		return value.NewArr(elems...), nil
	}), false)

	ns.Define("now", native("now", func(args []value.Value) (value.Value, error) {
		return value.Num(time.Now().UnixMilli()), nil
	}), false)
}

package primitive

import (
	"math"
	"sort"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// Caller is the minimal capability lookupArr needs from the evaluator to run
// scripted callbacks passed to higher-order methods like map/filter/reduce.
// lang/interp supplies the concrete implementation; primitive cannot import
// interp (it would create an import cycle), so the callback is injected via
// a package-level hook set once at interpreter startup.
type Caller func(fn value.Value, args []value.Value) (value.Value, error)

// CallFn is set by lang/interp during initialization. It is the single seam
// through which primitive's higher-order array methods invoke scripted
// callbacks.
var CallFn Caller

func callback(fn value.Value, args ...value.Value) (value.Value, error) {
	if CallFn == nil {
		return nil, value.NewRuntimeError(value.CategoryInternal, "no callback invoker installed")
	}
	return CallFn(fn, args)
}

func lookupArr(a *value.Arr, name string) (value.Value, bool) {
	switch name {
	case "len":
		return value.Num(a.Len()), true

	case "push":
		return method(name, func(args []value.Value) (value.Value, error) {
			a.Elems = append(a.Elems, args...)
			return a, nil
		}), true

	case "unshift":
		return method(name, func(args []value.Value) (value.Value, error) {
			a.Elems = append(append([]value.Value{}, args...), a.Elems...)
			return a, nil
		}), true

	case "pop":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(a.Elems) == 0 {
				return value.Null{}, nil
			}
			last := a.Elems[len(a.Elems)-1]
			a.Elems = a.Elems[:len(a.Elems)-1]
			return last, nil
		}), true

	case "shift":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(a.Elems) == 0 {
				return value.Null{}, nil
			}
			first := a.Elems[0]
			a.Elems = a.Elems[1:]
			return first, nil
		}), true

	case "reverse":
		return method(name, func(args []value.Value) (value.Value, error) {
			for i, j := 0, len(a.Elems)-1; i < j; i, j = i+1, j-1 {
				a.Elems[i], a.Elems[j] = a.Elems[j], a.Elems[i]
			}
			return a, nil
		}), true

	case "sort":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "sort: missing comparator function")
			}
			comp := args[0]
			var sortErr error
			sort.SliceStable(a.Elems, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				res, err := callback(comp, a.Elems[i], a.Elems[j])
				if err != nil {
					sortErr = err
					return false
				}
				n, ok := res.(value.Num)
				if !ok {
					sortErr = value.NewRuntimeError(value.CategoryTypeMismatch, "sort: comparator must return num, got %s", res.Type())
					return false
				}
				return n < 0
			})
			return a, sortErr
		}), true

	case "fill":
		// fills [start, end) in place without resizing.
		return method(name, func(args []value.Value) (value.Value, error) {
			var fillVal value.Value = value.Null{}
			if len(args) > 0 {
				fillVal = args[0]
			}
			start, end := 0, len(a.Elems)
			if len(args) > 1 {
				n, err := argNum(args, 1)
				if err != nil {
					return nil, err
				}
				start = clampIndex(n, len(a.Elems))
			}
			if len(args) > 2 {
				n, err := argNum(args, 2)
				if err != nil {
					return nil, err
				}
				end = clampIndex(n, len(a.Elems))
			}
			for i := start; i < end; i++ {
				a.Elems[i] = fillVal
			}
			return a, nil
		}), true

	case "splice":
		return method(name, func(args []value.Value) (value.Value, error) {
			idx, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			idx = clampIndex(idx, len(a.Elems))
			count := len(a.Elems) - idx
			if len(args) > 1 {
				if n, ok := args[1].(value.Num); ok {
					count = int(n)
				}
			}
			if count < 0 {
				count = 0
			}
			if idx+count > len(a.Elems) {
				count = len(a.Elems) - idx
			}
			removed := append([]value.Value{}, a.Elems[idx:idx+count]...)
			var items []value.Value
			if len(args) > 2 {
				ins, ok := args[2].(*value.Arr)
				if !ok {
					return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "splice: argument 3: expected arr, got %s", args[2].Type())
				}
				items = ins.Elems
			}
			tail := append([]value.Value{}, a.Elems[idx+count:]...)
			a.Elems = append(append(a.Elems[:idx], items...), tail...)
			return value.NewArr(removed...), nil
		}), true

	case "insert":
		return method(name, func(args []value.Value) (value.Value, error) {
			idx, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "insert: missing value argument")
			}
			idx = clampIndex(idx, len(a.Elems))
			tail := append([]value.Value{}, a.Elems[idx:]...)
			a.Elems = append(append(a.Elems[:idx], args[1]), tail...)
			return a, nil
		}), true

	case "remove":
		return method(name, func(args []value.Value) (value.Value, error) {
			idx, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			idx = clampIndex(idx, len(a.Elems))
			if idx >= len(a.Elems) {
				return value.Null{}, nil
			}
			removed := a.Elems[idx]
			a.Elems = append(a.Elems[:idx], a.Elems[idx+1:]...)
			return removed, nil
		}), true

	case "concat":
		return method(name, func(args []value.Value) (value.Value, error) {
			out := append([]value.Value{}, a.Elems...)
			for _, arg := range args {
				other, ok := arg.(*value.Arr)
				if !ok {
					return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "concat: argument must be arr, got %s", arg.Type())
				}
				out = append(out, other.Elems...)
			}
			return value.NewArr(out...), nil
		}), true

	case "slice":
		return method(name, func(args []value.Value) (value.Value, error) {
			begin := 0
			end := len(a.Elems)
			if len(args) > 0 {
				b, err := argNum(args, 0)
				if err != nil {
					return nil, err
				}
				begin = clampIndex(b, len(a.Elems))
			}
			if len(args) > 1 {
				e, err := argNum(args, 1)
				if err != nil {
					return nil, err
				}
				end = clampIndex(e, len(a.Elems))
			}
			if begin > end {
				return value.NewArr(), nil
			}
			return value.NewArr(append([]value.Value{}, a.Elems[begin:end]...)...), nil
		}), true

	case "join":
		return method(name, func(args []value.Value) (value.Value, error) {
			sep := ""
			if len(args) > 0 {
				s, err := argStr(args, 0)
				if err != nil {
					return nil, err
				}
				sep = s
			}
			var out []byte
			for i, e := range a.Elems {
				if i > 0 {
					out = append(out, sep...)
				}
				s, ok := e.(value.Str)
				if ok {
					out = append(out, string(s)...)
				} else {
					out = append(out, e.Repr()...)
				}
			}
			return value.Str(out), nil
		}), true

	case "map":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "map: missing callback function")
			}
			out := make([]value.Value, len(a.Elems))
			for i, e := range a.Elems {
				v, err := callback(args[0], e, value.Num(i))
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return value.NewArr(out...), nil
		}), true

	case "filter":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "filter: missing callback function")
			}
			var out []value.Value
			for i, e := range a.Elems {
				v, err := callback(args[0], e, value.Num(i))
				if err != nil {
					return nil, err
				}
				keep, err := cbBool("filter", v)
				if err != nil {
					return nil, err
				}
				if keep {
					out = append(out, e)
				}
			}
			return value.NewArr(out...), nil
		}), true

	case "reduce":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "reduce: missing callback function")
			}
			elems := a.Elems
			var acc value.Value
			start := 0
			if len(args) > 1 {
				acc = args[1]
			} else {
				if len(elems) == 0 {
					return nil, value.NewRuntimeError(value.CategoryReduceWithoutInitialValue, "reduce: empty array with no initial value")
				}
				acc = elems[0]
				start = 1
			}
			for i := start; i < len(elems); i++ {
				v, err := callback(args[0], acc, elems[i], value.Num(i))
				if err != nil {
					return nil, err
				}
				acc = v
			}
			return acc, nil
		}), true

	case "find":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "find: missing callback function")
			}
			for i, e := range a.Elems {
				v, err := callback(args[0], e, value.Num(i))
				if err != nil {
					return nil, err
				}
				found, err := cbBool("find", v)
				if err != nil {
					return nil, err
				}
				if found {
					return e, nil
				}
			}
			return value.Null{}, nil
		}), true

	case "incl":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Bool(false), nil
			}
			for _, e := range a.Elems {
				if value.Equal(e, args[0]) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}), true

	case "index_of":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Num(-1), nil
			}
			from := 0
			if len(args) > 1 {
				n, err := argNum(args, 1)
				if err != nil {
					return nil, err
				}
				from = clampIndex(n, len(a.Elems))
			}
			for i := from; i < len(a.Elems); i++ {
				if value.Equal(a.Elems[i], args[0]) {
					return value.Num(i), nil
				}
			}
			return value.Num(-1), nil
		}), true

	case "copy":
		return method(name, func(args []value.Value) (value.Value, error) {
			return value.NewArr(append([]value.Value{}, a.Elems...)...), nil
		}), true

	case "repeat":
		return method(name, func(args []value.Value) (value.Value, error) {
			v, err := argAny(args, 0)
			if err != nil {
				return nil, err
			}
			n, ok := v.(value.Num)
			if !ok {
				return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "repeat: argument 1: expected num, got %s", v.Type())
			}
			if float64(n) != math.Trunc(float64(n)) {
				return nil, value.NewRuntimeError(value.CategoryUnexpectedNonInteger, "repeat: count must be an integer, got %s", n.Repr())
			}
			if n < 0 {
				return nil, value.NewRuntimeError(value.CategoryUnexpectedNegative, "repeat: count must not be negative, got %s", n.Repr())
			}
			var out []value.Value
			for i := 0; i < int(n); i++ {
				out = append(out, a.Elems...)
			}
			return value.NewArr(out...), nil
		}), true

	case "flat":
		return method(name, func(args []value.Value) (value.Value, error) {
			depth := 1
			if len(args) > 0 {
				if n, ok := args[0].(value.Num); ok {
					depth = int(n)
				}
			}
			return value.NewArr(flatten(a.Elems, depth)...), nil
		}), true

	case "flat_map":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "flat_map: missing callback function")
			}
			var out []value.Value
			for i, e := range a.Elems {
				v, err := callback(args[0], e, value.Num(i))
				if err != nil {
					return nil, err
				}
				out = append(out, flatten([]value.Value{v}, 1)...)
			}
			return value.NewArr(out...), nil
		}), true

	case "every":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "every: missing callback function")
			}
			for i, e := range a.Elems {
				v, err := callback(args[0], e, value.Num(i))
				if err != nil {
					return nil, err
				}
				ok, err := cbBool("every", v)
				if err != nil {
					return nil, err
				}
				if !ok {
					return value.Bool(false), nil
				}
			}
			return value.Bool(true), nil
		}), true

	case "some":
		return method(name, func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, value.NewRuntimeError(value.CategoryExpectAny, "some: missing callback function")
			}
			for i, e := range a.Elems {
				v, err := callback(args[0], e, value.Num(i))
				if err != nil {
					return nil, err
				}
				ok, err := cbBool("some", v)
				if err != nil {
					return nil, err
				}
				if ok {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}), true

	case "at":
		return method(name, func(args []value.Value) (value.Value, error) {
			i, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			if i < 0 {
				i += len(a.Elems)
			}
			if i < 0 || i >= len(a.Elems) {
				if len(args) > 1 {
					return args[1], nil
				}
				return value.Null{}, nil
			}
			return a.Elems[i], nil
		}), true
	}
	return nil, false
}

func flatten(elems []value.Value, depth int) []value.Value {
	var out []value.Value
	for _, e := range elems {
		if arr, ok := e.(*value.Arr); ok && depth > 0 {
			out = append(out, flatten(arr.Elems, depth-1)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

// cbBool enforces that a predicate callback returned a bool.
func cbBool(fn string, v value.Value) (bool, error) {
	b, ok := v.(value.Bool)
	if !ok {
		return false, value.NewRuntimeError(value.CategoryTypeMismatch, "%s: callback must return bool, got %s", fn, v.Type())
	}
	return bool(b), nil
}

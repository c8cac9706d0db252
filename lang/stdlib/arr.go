package stdlib

import (
	"math"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func installArr(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Arr")

	ns.Define("create", native("create", func(args []value.Value) (value.Value, error) {
		n, err := needNum("create", args, 0)
		if err != nil {
			return nil, err
		}
		if float64(n) != math.Trunc(float64(n)) {
			return nil, value.NewRuntimeError(value.CategoryUnexpectedNonInteger, "create: length must be an integer, got %s", n.Repr())
		}
		if n < 0 {
			return nil, value.NewRuntimeError(value.CategoryUnexpectedNegative, "create: length must not be negative, got %s", n.Repr())
		}
		var fill value.Value = value.Null{}
		if len(args) > 1 {
			fill = args[1]
		}
		elems := make([]value.Value, int(n))
		for i := range elems {
			elems[i] = fill
		}
		return value.NewArr(elems...), nil
	}), false)
}

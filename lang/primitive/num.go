package primitive

import (
	"math"
	"strconv"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func lookupNum(n value.Num, name string) (value.Value, bool) {
	switch name {
	case "to_str":
		return method(name, func(args []value.Value) (value.Value, error) {
			return value.Str(n.Repr()), nil
		}), true
	case "to_hex":
		return method(name, func(args []value.Value) (value.Value, error) {
			if n < 0 {
				return nil, value.NewRuntimeError(value.CategoryUnexpectedNegative, "to_hex: %s is negative", n.Repr())
			}
			if n != value.Num(math.Trunc(float64(n))) {
				return nil, value.NewRuntimeError(value.CategoryUnexpectedNonInteger, "to_hex: %s is not an integer", n.Repr())
			}
			return value.Str(strconv.FormatInt(int64(n), 16)), nil
		}), true
	}
	return nil, false
}

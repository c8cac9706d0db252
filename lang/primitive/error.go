package primitive

import "github.com/aiscript-lang/aiscript-go/lang/value"

func lookupError(e *value.Error, name string) (value.Value, bool) {
	switch name {
	case "name":
		return value.Str(e.Name), true
	case "info":
		if e.Info == nil {
			return value.Null{}, true
		}
		return e.Info, true
	}
	return nil, false
}

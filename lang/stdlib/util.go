package stdlib

import (
	"github.com/google/uuid"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func installUtil(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Util")

	ns.Define("uuid", native("uuid", func(args []value.Value) (value.Value, error) {
		return value.Str(uuid.NewString()), nil
	}), false)
}

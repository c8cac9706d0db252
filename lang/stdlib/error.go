package stdlib

import "github.com/aiscript-lang/aiscript-go/lang/value"

func installError(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Error")

	ns.Define("create", native("create", func(args []value.Value) (value.Value, error) {
		name, err := needStr("create", args, 0)
		if err != nil {
			return nil, err
		}
		var info value.Value
		if len(args) > 1 {
			info = args[1]
		}
		return &value.Error{Name: string(name), Info: info}, nil
	}), false)
}

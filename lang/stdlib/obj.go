package stdlib

import "github.com/aiscript-lang/aiscript-go/lang/value"

func installObj(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Obj")

	ns.Define("keys", native("keys", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("keys", args, 0)
		if err != nil {
			return nil, err
		}
		keys := obj.Keys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			elems[i] = value.Str(k)
		}
		return value.NewArr(elems...), nil
	}), false)

	ns.Define("vals", native("vals", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("vals", args, 0)
		if err != nil {
			return nil, err
		}
		keys := obj.Keys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := obj.Get(k)
			elems[i] = v
		}
		return value.NewArr(elems...), nil
	}), false)

	ns.Define("kvs", native("kvs", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("kvs", args, 0)
		if err != nil {
			return nil, err
		}
		keys := obj.Keys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := obj.Get(k)
			elems[i] = value.NewArr(value.Str(k), v)
		}
		return value.NewArr(elems...), nil
	}), false)

	ns.Define("get", native("get", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("get", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := needStr("get", args, 1)
		if err != nil {
			return nil, err
		}
		v, found := obj.Get(string(key))
		if !found {
			return value.Null{}, nil
		}
		return v, nil
	}), false)

	ns.Define("set", native("set", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("set", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := needStr("set", args, 1)
		if err != nil {
			return nil, err
		}
		obj.Set(string(key), arg(args, 2))
		return value.Null{}, nil
	}), false)

	ns.Define("has", native("has", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("has", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := needStr("has", args, 1)
		if err != nil {
			return nil, err
		}
		_, found := obj.Get(string(key))
		return value.Bool(found), nil
	}), false)

	ns.Define("merge", native("merge", func(args []value.Value) (value.Value, error) {
		a, err := needObj("merge", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := needObj("merge", args, 1)
		if err != nil {
			return nil, err
		}
		out := value.NewObj()
		for _, k := range a.Keys() {
			v, _ := a.Get(k)
			out.Set(k, v)
		}
		for _, k := range b.Keys() {
			v, _ := b.Get(k)
			out.Set(k, v)
		}
		return out, nil
	}), false)

	ns.Define("pick", native("pick", func(args []value.Value) (value.Value, error) {
		obj, err := needObj("pick", args, 0)
		if err != nil {
			return nil, err
		}
		keys, err := needArr("pick", args, 1)
		if err != nil {
			return nil, err
		}
		out := value.NewObj()
		for _, ke := range keys.Elems {
			k, ok := ke.(value.Str)
			if !ok {
				return nil, typeErr("pick", 1, "arr<str>", ke)
			}
			if v, found := obj.Get(string(k)); found {
				out.Set(string(k), v)
			}
		}
		return out, nil
	}), false)

	ns.Define("from_kvs", native("from_kvs", func(args []value.Value) (value.Value, error) {
		kvs, err := needArr("from_kvs", args, 0)
		if err != nil {
			return nil, err
		}
		out := value.NewObj()
		for _, e := range kvs.Elems {
			pair, ok := e.(*value.Arr)
			if !ok || len(pair.Elems) != 2 {
				return nil, typeErr("from_kvs", 0, "arr<[str,any]>", e)
			}
			k, ok := pair.Elems[0].(value.Str)
			if !ok {
				return nil, typeErr("from_kvs", 0, "arr<[str,any]>", pair.Elems[0])
			}
			out.Set(string(k), pair.Elems[1])
		}
		return out, nil
	}), false)
}

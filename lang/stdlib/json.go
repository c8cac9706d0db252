package stdlib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// installJSON wires the Json namespace. Json:parsable delegates to
// github.com/tidwall/gjson's fast validity probe; Json:stringify and
// Json:parse round-trip through encoding/json by necessity, not
// preference: AiScript values are a tagged union with insertion-ordered
// objects and first-class functions, which no generic JSON library can walk
// without the same custom encode/decode this file writes by hand, so
// reaching for a library there would buy nothing over the standard one.
func installJSON(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Json")

	ns.Define("stringify", native("stringify", func(args []value.Value) (value.Value, error) {
		var b bytes.Buffer
		if err := encodeJSON(&b, arg(args, 0), map[any]bool{}); err != nil {
			if err == errCyclic {
				return &value.Error{Name: "cyclic_reference"}, nil
			}
			return nil, err
		}
		return value.Str(b.String()), nil
	}), false)

	ns.Define("parse", native("parse", func(args []value.Value) (value.Value, error) {
		s, err := needStr("parse", args, 0)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(strings.NewReader(string(s)))
		dec.UseNumber()
		v, err := decodeJSONValue(dec)
		if err != nil {
			return &value.Error{Name: "not_json", Info: value.Str(err.Error())}, nil
		}
		return v, nil
	}), false)

	ns.Define("parsable", native("parsable", func(args []value.Value) (value.Value, error) {
		s, err := needStr("parsable", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(gjson.Valid(string(s))), nil
	}), false)
}

// errCyclic is a sentinel encodeJSON returns when it revisits an array or
// object it is already in the middle of encoding; the caller turns it into
// an AiScript Error("cyclic_reference") value rather than a Go error.
var errCyclic = fmt.Errorf("cyclic reference")

func encodeJSON(b *bytes.Buffer, v value.Value, seen map[any]bool) error {
	switch v := v.(type) {
	case value.Null:
		b.WriteString("null")
	case value.Bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.Num:
		enc, err := json.Marshal(float64(v))
		if err != nil {
			return err
		}
		b.Write(enc)
	case value.Str:
		enc, err := json.Marshal(string(v))
		if err != nil {
			return err
		}
		b.Write(enc)
	case *value.Arr:
		if seen[v] {
			return errCyclic
		}
		seen[v] = true
		defer delete(seen, v)
		b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeJSON(b, e, seen); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *value.Obj:
		if seen[v] {
			return errCyclic
		}
		seen[v] = true
		defer delete(seen, v)
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			keyEnc, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(keyEnc)
			b.WriteByte(':')
			ev, _ := v.Get(k)
			if err := encodeJSON(b, ev, seen); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case *value.Fn:
		// Functions have no JSON representation; they stringify as the
		// string "<function>", written literally because json.Marshal
		// would escape the angle brackets.
		b.WriteString(`"<function>"`)
	default:
		return fmt.Errorf("stringify: cannot serialize %s", v.Type())
	}
	return nil
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return value.Num(f), nil
	case string:
		return value.Str(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := value.NewArr()
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Elems = append(arr.Elems, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := value.NewObj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("parse: expected object key, got %v", keyTok)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("parse: unexpected token %v", tok)
}

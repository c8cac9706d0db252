package stdlib

import (
	"net/url"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// installURI wires the Uri namespace: decoding uses net/url's PathUnescape,
// and encoding is a byte-wise percent-escape over the fixed safe sets below.
// No repo in the retrieved pack pulls in an alternative URI/URL library, so
// there is no third-party candidate to prefer here.
func installURI(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Uri")

	ns.Define("encode_full", native("encode_full", func(args []value.Value) (value.Value, error) {
		s, err := needStr("encode_full", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(encodeFullURI(string(s))), nil
	}), false)

	ns.Define("encode_component", native("encode_component", func(args []value.Value) (value.Value, error) {
		s, err := needStr("encode_component", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str(escapeURI(string(s), componentSafe)), nil
	}), false)

	ns.Define("decode_full", native("decode_full", func(args []value.Value) (value.Value, error) {
		s, err := needStr("decode_full", args, 0)
		if err != nil {
			return nil, err
		}
		decoded, err := url.PathUnescape(string(s))
		if err != nil {
			return &value.Error{Name: "invalid_uri", Info: value.Str(err.Error())}, nil
		}
		return value.Str(decoded), nil
	}), false)

	ns.Define("decode_component", native("decode_component", func(args []value.Value) (value.Value, error) {
		s, err := needStr("decode_component", args, 0)
		if err != nil {
			return nil, err
		}
		decoded, err := url.PathUnescape(string(s))
		if err != nil {
			return &value.Error{Name: "invalid_uri", Info: value.Str(err.Error())}, nil
		}
		return value.Str(decoded), nil
	}), false)
}

// The characters each encoder leaves untouched: encode_full preserves the
// full reserved set so a complete URI survives, encode_component escapes
// everything but the unreserved characters.
const (
	fullSafe      = "!#$&'()*+,/:;=?@-._~0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	componentSafe = "!'()*-._~0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

func encodeFullURI(s string) string {
	return escapeURI(s, fullSafe)
}

func escapeURI(s, safe string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if containsByte(safe, c) {
			out = append(out, c)
		} else {
			out = append(out, '%', hexDigit(c>>4), hexDigit(c&0xf))
		}
	}
	return string(out)
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + n - 10
}

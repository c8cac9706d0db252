package primitive

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// missing arguments fail with ExpectAny, present-but-mistyped arguments
// with TypeMismatch, mirroring the stdlib namespaces.
func argAny(args []value.Value, i int) (value.Value, error) {
	if i >= len(args) {
		return nil, value.NewRuntimeError(value.CategoryExpectAny, "missing argument %d", i+1)
	}
	return args[i], nil
}

func argNum(args []value.Value, i int) (int, error) {
	v, err := argAny(args, i)
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Num)
	if !ok {
		return 0, value.NewRuntimeError(value.CategoryTypeMismatch, "argument %d: expected num, got %s", i+1, v.Type())
	}
	return int(n), nil
}

func argStr(args []value.Value, i int) (string, error) {
	v, err := argAny(args, i)
	if err != nil {
		return "", err
	}
	s, ok := v.(value.Str)
	if !ok {
		return "", value.NewRuntimeError(value.CategoryTypeMismatch, "argument %d: expected str, got %s", i+1, v.Type())
	}
	return string(s), nil
}

func lookupStr(s value.Str, name string) (value.Value, bool) {
	graphemes := func() []string { return s.Graphemes() }

	switch name {
	case "len":
		return value.Num(len(graphemes())), true

	case "pick":
		return method(name, func(args []value.Value) (value.Value, error) {
			i, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			gs := graphemes()
			if i < 0 || i >= len(gs) {
				return value.Null{}, nil
			}
			return value.Str(gs[i]), nil
		}), true

	case "slice":
		return method(name, func(args []value.Value) (value.Value, error) {
			begin, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			end, err := argNum(args, 1)
			if err != nil {
				return nil, err
			}
			gs := graphemes()
			begin = clampIndex(begin, len(gs))
			end = clampIndex(end, len(gs))
			if begin > end {
				return value.Str(""), nil
			}
			return value.Str(strings.Join(gs[begin:end], "")), nil
		}), true

	case "index_of":
		return method(name, func(args []value.Value) (value.Value, error) {
			needle, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			gs := graphemes()
			from := 0
			if len(args) > 1 {
				from, err = argNum(args, 1)
				if err != nil {
					return nil, err
				}
				from = clampIndex(from, len(gs))
			}
			ng := value.Str(needle).Graphemes()
			for i := from; i+len(ng) <= len(gs); i++ {
				if joinEq(gs[i:i+len(ng)], ng) {
					return value.Num(i), nil
				}
			}
			return value.Num(-1), nil
		}), true

	case "incl":
		return method(name, func(args []value.Value) (value.Value, error) {
			needle, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			return value.Bool(strings.Contains(string(s), needle)), nil
		}), true

	case "starts_with":
		return method(name, func(args []value.Value) (value.Value, error) {
			prefix, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			gs := graphemes()
			from := 0
			if len(args) > 1 {
				from, err = argNum(args, 1)
				if err != nil {
					return nil, err
				}
				from = clampIndex(from, len(gs))
			}
			rest := strings.Join(gs[from:], "")
			return value.Bool(strings.HasPrefix(rest, prefix)), nil
		}), true

	case "ends_with":
		return method(name, func(args []value.Value) (value.Value, error) {
			suffix, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			gs := graphemes()
			// the optional second argument is the position the string is
			// considered to end at, default its full length.
			end := len(gs)
			if len(args) > 1 {
				end, err = argNum(args, 1)
				if err != nil {
					return nil, err
				}
				end = clampIndex(end, len(gs))
			}
			head := strings.Join(gs[:end], "")
			return value.Bool(strings.HasSuffix(head, suffix)), nil
		}), true

	case "pad_start":
		return method(name, func(args []value.Value) (value.Value, error) {
			return padGraphemes(graphemes(), args, true)
		}), true

	case "pad_end":
		return method(name, func(args []value.Value) (value.Value, error) {
			return padGraphemes(graphemes(), args, false)
		}), true

	case "split":
		return method(name, func(args []value.Value) (value.Value, error) {
			sep := ""
			if len(args) > 0 {
				var err error
				sep, err = argStr(args, 0)
				if err != nil {
					return nil, err
				}
			}
			var parts []string
			if sep == "" {
				parts = graphemes()
			} else {
				parts = strings.Split(string(s), sep)
			}
			elems := make([]value.Value, len(parts))
			for i, p := range parts {
				elems[i] = value.Str(p)
			}
			return value.NewArr(elems...), nil
		}), true

	case "replace":
		return method(name, func(args []value.Value) (value.Value, error) {
			old, err := argStr(args, 0)
			if err != nil {
				return nil, err
			}
			rep, err := argStr(args, 1)
			if err != nil {
				return nil, err
			}
			return value.Str(strings.ReplaceAll(string(s), old, rep)), nil
		}), true

	case "trim":
		return method(name, func(args []value.Value) (value.Value, error) {
			return value.Str(strings.TrimSpace(string(s))), nil
		}), true

	case "upper":
		return method(name, func(args []value.Value) (value.Value, error) {
			return value.Str(strings.ToUpper(string(s))), nil
		}), true

	case "lower":
		return method(name, func(args []value.Value) (value.Value, error) {
			return value.Str(strings.ToLower(string(s))), nil
		}), true

	case "to_num":
		return method(name, func(args []value.Value) (value.Value, error) {
			f, err := strconv.ParseFloat(string(s), 64)
			if err != nil {
				return value.Null{}, nil
			}
			return value.Num(f), nil
		}), true

	case "to_arr":
		return method(name, func(args []value.Value) (value.Value, error) {
			gs := graphemes()
			elems := make([]value.Value, len(gs))
			for i, g := range gs {
				elems[i] = value.Str(g)
			}
			return value.NewArr(elems...), nil
		}), true

	case "to_char_arr":
		// UTF-16 code units, each rendered as a single-unit string; lone
		// surrogate halves decode to the replacement character.
		return method(name, func(args []value.Value) (value.Value, error) {
			units := utf16.Encode([]rune(string(s)))
			elems := make([]value.Value, len(units))
			for i, u := range units {
				elems[i] = value.Str(string(utf16.Decode([]uint16{u})))
			}
			return value.NewArr(elems...), nil
		}), true

	case "to_unicode_arr":
		return method(name, func(args []value.Value) (value.Value, error) {
			var elems []value.Value
			for _, r := range string(s) {
				elems = append(elems, value.Str(string(r)))
			}
			return value.NewArr(elems...), nil
		}), true

	case "to_unicode_codepoint_arr", "to_codepoint_arr":
		return method(name, func(args []value.Value) (value.Value, error) {
			var elems []value.Value
			for _, r := range string(s) {
				elems = append(elems, value.Num(r))
			}
			return value.NewArr(elems...), nil
		}), true

	case "to_charcode_arr":
		return method(name, func(args []value.Value) (value.Value, error) {
			units := utf16.Encode([]rune(string(s)))
			elems := make([]value.Value, len(units))
			for i, u := range units {
				elems[i] = value.Num(u)
			}
			return value.NewArr(elems...), nil
		}), true

	case "to_utf8_byte_arr":
		return method(name, func(args []value.Value) (value.Value, error) {
			bs := []byte(string(s))
			elems := make([]value.Value, len(bs))
			for i, b := range bs {
				elems[i] = value.Num(b)
			}
			return value.NewArr(elems...), nil
		}), true

	case "charcode_at":
		return method(name, func(args []value.Value) (value.Value, error) {
			i, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			units := utf16.Encode([]rune(string(s)))
			if i < 0 || i >= len(units) {
				return value.Null{}, nil
			}
			return value.Num(units[i]), nil
		}), true

	case "codepoint_at":
		return method(name, func(args []value.Value) (value.Value, error) {
			i, err := argNum(args, 0)
			if err != nil {
				return nil, err
			}
			rs := []rune(string(s))
			if i < 0 || i >= len(rs) {
				return value.Null{}, nil
			}
			return value.Num(rs[i]), nil
		}), true
	}
	return nil, false
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func joinEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func padGraphemes(gs []string, args []value.Value, start bool) (value.Value, error) {
	target, err := argNum(args, 0)
	if err != nil {
		return nil, err
	}
	pad := " "
	if len(args) > 1 {
		pad, err = argStr(args, 1)
		if err != nil {
			return nil, err
		}
	}
	if len(gs) >= target || pad == "" {
		return value.Str(strings.Join(gs, "")), nil
	}
	padGs := value.Str(pad).Graphemes()
	var fill strings.Builder
	for fill.Len() == 0 || utf8.RuneCountInString(fill.String()) < target-len(gs) {
		for _, g := range padGs {
			fill.WriteString(g)
		}
	}
	fillGs := value.Str(fill.String()).Graphemes()
	need := target - len(gs)
	if need > len(fillGs) {
		need = len(fillGs)
	}
	fillStr := strings.Join(fillGs[:need], "")
	base := strings.Join(gs, "")
	if start {
		return value.Str(fillStr + base), nil
	}
	return value.Str(base + fillStr), nil
}

package value

import (
	"strings"
)

// Display renders v the way the debug-print statement shows it: like Repr,
// except that a top-level string is quoted exactly as it would be inside an
// array or object display. Templates and Core:to_str use Repr instead,
// where a string contributes its raw contents.
func Display(v Value) string {
	var b strings.Builder
	display(&b, v, map[Value]bool{})
	return b.String()
}

// display renders v for embedding inside an array/object display: strings
// are quoted with backslash, newline and carriage-return escaped, and
// arrays/objects already being rendered further up the walk print "..." for
// the back-edge instead of recursing forever.
func display(b *strings.Builder, v Value, seen map[Value]bool) {
	switch v := v.(type) {
	case Str:
		b.WriteByte('"')
		for _, r := range string(v) {
			switch r {
			case '\\':
				b.WriteString(`\\`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('"')

	case *Arr:
		if seen[v] {
			b.WriteString("...")
			return
		}
		seen[v] = true
		defer delete(seen, v)
		if len(v.Elems) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[ ")
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			display(b, e, seen)
		}
		b.WriteString(" ]")

	case *Obj:
		if seen[v] {
			b.WriteString("...")
			return
		}
		seen[v] = true
		defer delete(seen, v)
		if v.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			ev, _ := v.Get(k)
			display(b, ev, seen)
		}
		b.WriteString(" }")

	default:
		b.WriteString(v.Repr())
	}
}

package stdlib

import (
	"time"

	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// installDate wires the Date namespace over the standard time package: no
// example in the retrieved pack pulls in a third-party calendar/date
// library, and time's Unix millisecond arithmetic is sufficient for every
// operation this namespace exposes.
func installDate(root *value.Scope) {
	ns := value.NewNamespaceScope(root, "Date")

	ns.Define("now", native("now", func(args []value.Value) (value.Value, error) {
		return value.Num(time.Now().UnixMilli()), nil
	}), false)

	field := func(name string, fn func(time.Time) int) {
		ns.Define(name, native(name, func(args []value.Value) (value.Value, error) {
			t := timeArg(args, 0)
			return value.Num(fn(t)), nil
		}), false)
	}
	field("year", func(t time.Time) int { return t.Year() })
	field("month", func(t time.Time) int { return int(t.Month()) })
	field("day", func(t time.Time) int { return t.Day() })
	field("hour", func(t time.Time) int { return t.Hour() })
	field("minute", func(t time.Time) int { return t.Minute() })
	field("second", func(t time.Time) int { return t.Second() })
	field("millisecond", func(t time.Time) int { return t.Nanosecond() / 1e6 })
	field("day_of_week", func(t time.Time) int { return int(t.Weekday()) })

	ns.Define("parse", native("parse", func(args []value.Value) (value.Value, error) {
		s, err := needStr("parse", args, 0)
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, string(s))
		if err != nil {
			return &value.Error{Name: "not_date", Info: value.Str(err.Error())}, nil
		}
		return value.Num(t.UnixMilli()), nil
	}), false)

	ns.Define("to_iso_str", native("to_iso_str", func(args []value.Value) (value.Value, error) {
		t := timeArg(args, 0)
		if len(args) > 1 {
			tzMin, err := needNum("to_iso_str", args, 1)
			if err != nil {
				return nil, err
			}
			if tzMin == 0 {
				return value.Str(t.UTC().Format("2006-01-02T15:04:05.000Z")), nil
			}
			t = t.In(time.FixedZone("", int(tzMin)*60))
		}
		return value.Str(t.Format("2006-01-02T15:04:05.000Z07:00")), nil
	}), false)
}

// timeArg reads an optional millisecond-since-epoch argument in local time,
// defaulting to the current instant when omitted.
func timeArg(args []value.Value, i int) time.Time {
	if n, ok := argNum(args, i); ok {
		return time.UnixMilli(int64(n)).Local()
	}
	return time.Now().Local()
}

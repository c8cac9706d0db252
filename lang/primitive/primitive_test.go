package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-lang/aiscript-go/lang/primitive"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// call looks up a method property on recv and invokes it natively.
func call(t *testing.T, recv value.Value, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	v, ok := primitive.Lookup(recv, name)
	require.True(t, ok, "no property %q on %s", name, recv.Type())
	fn, ok := v.(*value.Fn)
	require.True(t, ok, "property %q is not a method", name)
	return fn.Native(args)
}

func mustCall(t *testing.T, recv value.Value, name string, args ...value.Value) value.Value {
	t.Helper()
	v, err := call(t, recv, name, args...)
	require.NoError(t, err)
	return v
}

func TestNumToStr(t *testing.T) {
	require.Equal(t, value.Str("42"), mustCall(t, value.Num(42), "to_str"))
	require.Equal(t, value.Str("1.5"), mustCall(t, value.Num(1.5), "to_str"))
}

func TestNumToHex(t *testing.T) {
	require.Equal(t, value.Str("ff"), mustCall(t, value.Num(255), "to_hex"))

	_, err := call(t, value.Num(-1), "to_hex")
	requireCategory(t, err, value.CategoryUnexpectedNegative)

	_, err = call(t, value.Num(1.5), "to_hex")
	requireCategory(t, err, value.CategoryUnexpectedNonInteger)
}

func TestStrLenIsGraphemeBased(t *testing.T) {
	v, ok := primitive.Lookup(value.Str("👨‍👦abc"), "len")
	require.True(t, ok)
	require.Equal(t, value.Num(4), v)
}

func TestStrPickSliceGraphemes(t *testing.T) {
	s := value.Str("👨‍👦abc")
	require.Equal(t, value.Str("👨‍👦"), mustCall(t, s, "pick", value.Num(0)))
	require.Equal(t, value.Str("ab"), mustCall(t, s, "slice", value.Num(1), value.Num(3)))
	require.Equal(t, value.Null{}, mustCall(t, s, "pick", value.Num(9)))
}

func TestStrIndexOf(t *testing.T) {
	s := value.Str("hello hello")
	require.Equal(t, value.Num(0), mustCall(t, s, "index_of", value.Str("hello")))
	require.Equal(t, value.Num(6), mustCall(t, s, "index_of", value.Str("hello"), value.Num(1)))
	// a negative from counts back from the end.
	require.Equal(t, value.Num(6), mustCall(t, s, "index_of", value.Str("hello"), value.Num(-5)))
	require.Equal(t, value.Num(-1), mustCall(t, s, "index_of", value.Str("nope")))
}

func TestStrSplit(t *testing.T) {
	parts := mustCall(t, value.Str("a,b,c"), "split", value.Str(",")).(*value.Arr)
	require.Equal(t, []value.Value{value.Str("a"), value.Str("b"), value.Str("c")}, parts.Elems)

	// empty splitter yields graphemes.
	gs := mustCall(t, value.Str("👨‍👦x"), "split").(*value.Arr)
	require.Equal(t, []value.Value{value.Str("👨‍👦"), value.Str("x")}, gs.Elems)
}

func TestStrPad(t *testing.T) {
	require.Equal(t, value.Str("00042"), mustCall(t, value.Str("42"), "pad_start", value.Num(5), value.Str("0")))
	require.Equal(t, value.Str("42   "), mustCall(t, value.Str("42"), "pad_end", value.Num(5)))
	require.Equal(t, value.Str("42"), mustCall(t, value.Str("42"), "pad_start", value.Num(1)))
}

func TestStrReplaceAll(t *testing.T) {
	require.Equal(t, value.Str("b.b.b"), mustCall(t, value.Str("a.a.a"), "replace", value.Str("a"), value.Str("b")))
}

func TestStrCaseAndTrim(t *testing.T) {
	require.Equal(t, value.Str("ABC"), mustCall(t, value.Str("abc"), "upper"))
	require.Equal(t, value.Str("abc"), mustCall(t, value.Str("ABC"), "lower"))
	require.Equal(t, value.Str("x"), mustCall(t, value.Str("  x\n"), "trim"))
}

func TestStrToNum(t *testing.T) {
	require.Equal(t, value.Num(1.5), mustCall(t, value.Str("1.5"), "to_num"))
	require.Equal(t, value.Null{}, mustCall(t, value.Str("nope"), "to_num"))
}

func TestStrCharcodeSurfaces(t *testing.T) {
	// "𩸽" is U+29E3D, one astral code point, two UTF-16 units.
	s := value.Str("𩸽")
	units := mustCall(t, s, "to_charcode_arr").(*value.Arr)
	require.Len(t, units.Elems, 2)
	require.Equal(t, value.Num(0xD867), units.Elems[0])
	require.Equal(t, value.Num(0xDE3D), units.Elems[1])

	chars := mustCall(t, s, "to_char_arr").(*value.Arr)
	require.Len(t, chars.Elems, 2)

	require.Equal(t, value.Num(0xD867), mustCall(t, s, "charcode_at", value.Num(0)))

	cps := mustCall(t, s, "to_unicode_codepoint_arr").(*value.Arr)
	require.Equal(t, []value.Value{value.Num(0x29E3D)}, cps.Elems)
}

func TestStrUtf8Bytes(t *testing.T) {
	bs := mustCall(t, value.Str("aé"), "to_utf8_byte_arr").(*value.Arr)
	require.Equal(t, []value.Value{value.Num('a'), value.Num(0xC3), value.Num(0xA9)}, bs.Elems)
}

func TestStrStartsEndsWith(t *testing.T) {
	s := value.Str("hello world")
	require.Equal(t, value.Bool(true), mustCall(t, s, "starts_with", value.Str("hello")))
	require.Equal(t, value.Bool(true), mustCall(t, s, "starts_with", value.Str("world"), value.Num(6)))
	require.Equal(t, value.Bool(true), mustCall(t, s, "ends_with", value.Str("world")))
	require.Equal(t, value.Bool(true), mustCall(t, s, "ends_with", value.Str("hello"), value.Num(5)))
	require.Equal(t, value.Bool(false), mustCall(t, s, "ends_with", value.Str("world"), value.Num(5)))
}

func TestArrPushPopShiftUnshift(t *testing.T) {
	a := value.NewArr(value.Num(2))
	mustCall(t, a, "push", value.Num(3))
	mustCall(t, a, "unshift", value.Num(1))
	require.Equal(t, []value.Value{value.Num(1), value.Num(2), value.Num(3)}, a.Elems)

	require.Equal(t, value.Num(3), mustCall(t, a, "pop"))
	require.Equal(t, value.Num(1), mustCall(t, a, "shift"))
	require.Equal(t, []value.Value{value.Num(2)}, a.Elems)

	empty := value.NewArr()
	require.Equal(t, value.Null{}, mustCall(t, empty, "pop"))
	require.Equal(t, value.Null{}, mustCall(t, empty, "shift"))
}

func TestArrReverseInPlace(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(2), value.Num(3))
	mustCall(t, a, "reverse")
	require.Equal(t, []value.Value{value.Num(3), value.Num(2), value.Num(1)}, a.Elems)
}

func TestArrFillRange(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(2), value.Num(3), value.Num(4))
	mustCall(t, a, "fill", value.Num(0), value.Num(1), value.Num(3))
	require.Equal(t, []value.Value{value.Num(1), value.Num(0), value.Num(0), value.Num(4)}, a.Elems)
	require.Equal(t, 4, a.Len())
}

func TestArrSplice(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(2), value.Num(3), value.Num(4))
	removed := mustCall(t, a, "splice", value.Num(1), value.Num(2), value.NewArr(value.Str("x"))).(*value.Arr)
	require.Equal(t, []value.Value{value.Num(2), value.Num(3)}, removed.Elems)
	require.Equal(t, []value.Value{value.Num(1), value.Str("x"), value.Num(4)}, a.Elems)
}

func TestArrInsertRemove(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(3))
	mustCall(t, a, "insert", value.Num(1), value.Num(2))
	require.Equal(t, []value.Value{value.Num(1), value.Num(2), value.Num(3)}, a.Elems)

	require.Equal(t, value.Num(2), mustCall(t, a, "remove", value.Num(1)))
	require.Equal(t, []value.Value{value.Num(1), value.Num(3)}, a.Elems)
	require.Equal(t, value.Null{}, mustCall(t, a, "remove", value.Num(9)))
}

func TestArrConcatSliceCopyNonMutating(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(2))
	b := mustCall(t, a, "concat", value.NewArr(value.Num(3))).(*value.Arr)
	require.Equal(t, 2, a.Len())
	require.Equal(t, 3, b.Len())

	s := mustCall(t, a, "slice", value.Num(0), value.Num(1)).(*value.Arr)
	require.Equal(t, []value.Value{value.Num(1)}, s.Elems)

	c := mustCall(t, a, "copy").(*value.Arr)
	c.Elems[0] = value.Num(9)
	require.Equal(t, value.Num(1), a.Elems[0])
}

func TestArrJoin(t *testing.T) {
	a := value.NewArr(value.Str("a"), value.Num(1), value.Str("b"))
	require.Equal(t, value.Str("a-1-b"), mustCall(t, a, "join", value.Str("-")))
	require.Equal(t, value.Str("a1b"), mustCall(t, a, "join"))
}

func TestArrInclIndexOfStructural(t *testing.T) {
	a := value.NewArr(value.NewArr(value.Num(1)), value.Num(2))
	require.Equal(t, value.Bool(true), mustCall(t, a, "incl", value.NewArr(value.Num(1))))
	require.Equal(t, value.Num(0), mustCall(t, a, "index_of", value.NewArr(value.Num(1))))
	require.Equal(t, value.Num(-1), mustCall(t, a, "index_of", value.Num(9)))
}

func TestArrRepeat(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(2))
	r := mustCall(t, a, "repeat", value.Num(2)).(*value.Arr)
	require.Equal(t, 4, r.Len())

	zero := mustCall(t, a, "repeat", value.Num(0)).(*value.Arr)
	require.Equal(t, 0, zero.Len())

	_, err := call(t, a, "repeat", value.Num(-1))
	requireCategory(t, err, value.CategoryUnexpectedNegative)

	_, err = call(t, a, "repeat", value.Num(1.5))
	requireCategory(t, err, value.CategoryUnexpectedNonInteger)
}

func TestArrFlat(t *testing.T) {
	a := value.NewArr(
		value.Num(1),
		value.NewArr(value.Num(2), value.NewArr(value.Num(3))),
	)
	f1 := mustCall(t, a, "flat").(*value.Arr)
	require.Len(t, f1.Elems, 3)
	_, isArr := f1.Elems[2].(*value.Arr)
	require.True(t, isArr)

	f2 := mustCall(t, a, "flat", value.Num(2)).(*value.Arr)
	require.Equal(t, []value.Value{value.Num(1), value.Num(2), value.Num(3)}, f2.Elems)
}

func TestArrAtWithNegativeIndex(t *testing.T) {
	a := value.NewArr(value.Num(1), value.Num(2), value.Num(3))
	require.Equal(t, value.Num(3), mustCall(t, a, "at", value.Num(-1)))
	require.Equal(t, value.Null{}, mustCall(t, a, "at", value.Num(9)))
}

func TestErrorProperties(t *testing.T) {
	e := &value.Error{Name: "not_found", Info: value.Num(404)}
	name, ok := primitive.Lookup(e, "name")
	require.True(t, ok)
	require.Equal(t, value.Str("not_found"), name)
	info, ok := primitive.Lookup(e, "info")
	require.True(t, ok)
	require.Equal(t, value.Num(404), info)
}

func TestMissingArgIsExpectAny(t *testing.T) {
	_, err := call(t, value.Str("x"), "pick")
	requireCategory(t, err, value.CategoryExpectAny)

	_, err = call(t, value.NewArr(), "map")
	requireCategory(t, err, value.CategoryExpectAny)
}

func requireCategory(t *testing.T, err error, category string) {
	t.Helper()
	require.Error(t, err)
	rerr, ok := err.(*value.RuntimeError)
	require.True(t, ok, "expected *value.RuntimeError, got %T", err)
	require.Equal(t, category, rerr.Category)
}

package interp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-lang/aiscript-go/lang/interp"
	"github.com/aiscript-lang/aiscript-go/lang/parser"
	"github.com/aiscript-lang/aiscript-go/lang/validator"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// run executes src with the plain Evaluator and returns the program's final
// value.
func run(t *testing.T, src string) value.Value {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	require.Empty(t, validator.Validate(prog))

	e := interp.New(context.Background(), 0)
	v, err := e.Exec(prog)
	require.NoError(t, err)
	return v
}

// runPrints executes src through the Interpreter facade and returns every
// `<:` line it produced.
func runPrints(t *testing.T, src string) []string {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	require.Empty(t, validator.Validate(prog))

	var prints []string
	it, err := interp.NewInterpreter(context.Background(), interp.Config{
		Out: func(v value.Value) { prints = append(prints, value.Display(v)) },
	})
	require.NoError(t, err)
	_, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.True(t, ok)
	return prints
}

func runError(t *testing.T, src string) *value.RuntimeError {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)

	e := interp.New(context.Background(), 0)
	_, err = e.Exec(prog)
	require.Error(t, err)
	rerr, ok := err.(*value.RuntimeError)
	require.True(t, ok, "expected *value.RuntimeError, got %T: %v", err, err)
	return rerr
}

func TestExecArithmetic(t *testing.T) {
	v := run(t, `(1 + 2) * 3`)
	require.Equal(t, value.Num(9), v)
}

func TestExecLetVar(t *testing.T) {
	v := run(t, `
		let a = 1
		var b = 2
		b = b + a
		b
	`)
	require.Equal(t, value.Num(3), v)
}

func TestExecCompoundAssignChain(t *testing.T) {
	got := runPrints(t, `
		var a = 0
		a += 1
		a += 2
		a += 3
		<: a
	`)
	require.Equal(t, []string{"6"}, got)
}

func TestExecRecursiveFactorial(t *testing.T) {
	got := runPrints(t, `
		@fact(n) {
			if n == 0 { 1 } else { fact(n - 1) * n }
		}
		<: fact(5)
	`)
	require.Equal(t, []string{"120"}, got)
}

func TestExecArrayElementAssignDisplay(t *testing.T) {
	got := runPrints(t, `
		let arr = ["ai", "chan", "kawaii"]
		arr[1] = "taso"
		<: arr
	`)
	require.Equal(t, []string{`[ "ai", "taso", "kawaii" ]`}, got)
}

func TestExecGraphemeLenAndPick(t *testing.T) {
	got := runPrints(t, "let s = \"👨‍👦abc\"\n<: [s.len, s.pick(0)]")
	require.Equal(t, []string{`[ 4, "👨‍👦" ]`}, got)
}

func TestExecLabeledLoopBreak(t *testing.T) {
	got := runPrints(t, `
		var c = 0
		#L: loop {
			c += 1
			if c == 3 { break #L }
		}
		<: c
	`)
	require.Equal(t, []string{"3"}, got)
}

func TestExecNamespaceMemberAccess(t *testing.T) {
	got := runPrints(t, `
		:: N { let x = 1 }
		<: N:x
	`)
	require.Equal(t, []string{"1"}, got)
}

func TestExecNamespaceDeclaredBelowUse(t *testing.T) {
	// namespaces are declared in a pass before ordinary statements run.
	got := runPrints(t, `
		<: N:x
		:: N { let x = 41 }
	`)
	require.Equal(t, []string{"41"}, got)
}

func TestExecNestedNamespace(t *testing.T) {
	got := runPrints(t, `
		:: A {
			let y = 2
			:: B { let x = 1 }
		}
		<: A:B:x
		<: A:y
	`)
	require.Equal(t, []string{"1", "2"}, got)
}

func TestExecNamespaceRejectsVar(t *testing.T) {
	rerr := runError(t, `:: N { var x = 1 }`)
	require.Equal(t, value.CategoryNoMutableInNamespace, rerr.Category)
}

func TestExecReduceWithoutInit(t *testing.T) {
	got := runPrints(t, `<: [1, 2, 3, 4].reduce(@(a, b) { a + b })`)
	require.Equal(t, []string{"10"}, got)
}

func TestExecReduceEmptyWithoutInitFails(t *testing.T) {
	rerr := runError(t, `[].reduce(@(a, b) { a + b })`)
	require.Equal(t, value.CategoryReduceWithoutInitialValue, rerr.Category)
}

func TestExecObjPropCompoundAssign(t *testing.T) {
	got := runPrints(t, `
		let o = { a: 1 }
		o.a += 1
		<: o.a
	`)
	require.Equal(t, []string{"2"}, got)
}

func TestExecGenericIdentity(t *testing.T) {
	got := runPrints(t, `
		@f<T>(v: T): T { v }
		<: f("x")
	`)
	require.Equal(t, []string{`"x"`}, got)
}

func TestExecMatch(t *testing.T) {
	got := runPrints(t, `<: match 2 { case 1 => "a", case 2 => "b", default => "c" }`)
	require.Equal(t, []string{`"b"`}, got)
}

func TestExecMatchDefault(t *testing.T) {
	v := run(t, `match 9 { case 1 => "a", default => "z" }`)
	require.Equal(t, value.Str("z"), v)
}

func TestExecMatchStructuralEquality(t *testing.T) {
	v := run(t, `match [1, 2] { case [1, 2] => "yes", default => "no" }`)
	require.Equal(t, value.Str("yes"), v)
}

func TestExecIfExpr(t *testing.T) {
	v := run(t, `if 1 < 2 { "yes" } else { "no" }`)
	require.Equal(t, value.Str("yes"), v)
}

func TestExecIfConditionMustBeBool(t *testing.T) {
	rerr := runError(t, `if 1 { "x" }`)
	require.Equal(t, value.CategoryTypeMismatch, rerr.Category)
}

func TestExecLogicalOperandsMustBeBool(t *testing.T) {
	rerr := runError(t, `1 && true`)
	require.Equal(t, value.CategoryTypeMismatch, rerr.Category)
}

func TestExecShortCircuitSkipsRight(t *testing.T) {
	// the call on the right, which would set called, is never evaluated.
	v := run(t, `
		var called = false
		@f() { called = true; true }
		let a = false && f()
		let b = true || f()
		[a, b, called]
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Bool(false), value.Bool(true), value.Bool(false)}, arr.Elems)
}

func TestExecLoopWithBreakValue(t *testing.T) {
	v := run(t, `
		var i = 0
		loop {
			i += 1
			if i == 5 { break i }
		}
	`)
	require.Equal(t, value.Num(5), v)
}

func TestExecLabeledEvalBreakValue(t *testing.T) {
	v := run(t, `
		#b: eval {
			let x = 40
			break #b x + 2
			99
		}
	`)
	require.Equal(t, value.Num(42), v)
}

func TestExecForLetWithContinue(t *testing.T) {
	v := run(t, `
		var sum = 0
		for let i = 0, 5 {
			if i == 2 { continue }
			sum += i
		}
		sum
	`)
	require.Equal(t, value.Num(8), v)
}

func TestExecForLetHalfOpen(t *testing.T) {
	v := run(t, `
		var n = 0
		for let i = 2, 5 { n += 1 }
		n
	`)
	require.Equal(t, value.Num(3), v)
}

func TestExecForTimes(t *testing.T) {
	v := run(t, `
		var n = 0
		for (4) { n += 1 }
		n
	`)
	require.Equal(t, value.Num(4), v)
}

func TestExecNestedLoopLabeledBreak(t *testing.T) {
	v := run(t, `
		var hits = 0
		#outer: for (3) {
			for (3) {
				hits += 1
				if hits == 4 { break #outer }
			}
		}
		hits
	`)
	require.Equal(t, value.Num(4), v)
}

func TestExecEachSnapshot(t *testing.T) {
	// pushing while iterating must not extend the iteration.
	v := run(t, `
		let xs = [1, 2, 3]
		var seen = 0
		each let x, xs {
			seen += 1
			xs.push(99)
		}
		seen
	`)
	require.Equal(t, value.Num(3), v)
}

func TestExecArrayAliasing(t *testing.T) {
	v := run(t, `
		let a = [1]
		let b = a
		b.push(2)
		a
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Num(1), value.Num(2)}, arr.Elems)
}

func TestExecScopeEncapsulation(t *testing.T) {
	v := run(t, `
		eval { let hidden = 1 }
		exists hidden
	`)
	require.Equal(t, value.Bool(false), v)
}

func TestExecExists(t *testing.T) {
	v := run(t, `
		let x = 1
		[exists x, exists nope]
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Bool(true), value.Bool(false)}, arr.Elems)
}

func TestExecFunctionClosure(t *testing.T) {
	v := run(t, `
		@make_counter() {
			var n = 0
			@() {
				n += 1
				n
			}
		}
		let c = make_counter()
		c()
		c()
		c()
	`)
	require.Equal(t, value.Num(3), v)
}

func TestExecFunctionDefaultParams(t *testing.T) {
	v := run(t, `
		@greet(name, punct = "!") { name + punct }
		[greet("hi"), greet("yo", "?"), greet()]
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Str("hi!"), value.Str("yo?"), value.Str("null!")}, arr.Elems)
}

func TestExecTemplate(t *testing.T) {
	v := run(t, "let x = 3\n`value is {x + 1}.`")
	require.Equal(t, value.Str("value is 4."), v)
}

func TestExecTemplateEmbedsRawStrings(t *testing.T) {
	v := run(t, "let s = \"abc\"\n`<{s}>`")
	require.Equal(t, value.Str("<abc>"), v)
}

func TestExecDestructuringAssignment(t *testing.T) {
	v := run(t, `
		var a = 0
		var b = 0
		var c = 0
		[a, b, c] = [1, 2]
		{ x: a } = { x: 9 }
		[a, b, c]
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Num(9), value.Num(2), value.Null{}}, arr.Elems)
}

func TestExecRedeclareFails(t *testing.T) {
	rerr := runError(t, "let x = 1\nlet x = 2")
	require.Equal(t, value.CategoryVariableAlreadyExists, rerr.Category)
}

func TestExecAssignToConstFails(t *testing.T) {
	rerr := runError(t, "let x = 1\nx = 2")
	require.Equal(t, value.CategoryAssignmentToImmutable, rerr.Category)
}

func TestExecAssignUndefinedFails(t *testing.T) {
	rerr := runError(t, "nope = 2")
	require.Equal(t, value.CategoryNoSuchVariable, rerr.Category)
}

func TestExecIndexOutOfRange(t *testing.T) {
	rerr := runError(t, "let a = [1]\na[1]")
	require.Equal(t, value.CategoryIndexOutOfRange, rerr.Category)
}

func TestExecIndexAssignMustNotGrow(t *testing.T) {
	rerr := runError(t, "let a = [1]\na[1] = 2")
	require.Equal(t, value.CategoryIndexOutOfRange, rerr.Category)
}

func TestExecObjMissingKeyIsNull(t *testing.T) {
	v := run(t, `
		let o = { a: 1 }
		[o["nope"], o.nope]
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Null{}, value.Null{}}, arr.Elems)
}

func TestExecPrimitiveNoSuchProperty(t *testing.T) {
	rerr := runError(t, `"abc".frobnicate`)
	require.Equal(t, value.CategoryNoSuchProperty, rerr.Category)
}

func TestExecPropOnNullFails(t *testing.T) {
	rerr := runError(t, `null.x`)
	require.Equal(t, value.CategoryInvalidPrimitiveProperty, rerr.Category)
}

func TestExecUserAbort(t *testing.T) {
	rerr := runError(t, `Core:abort("boom")`)
	require.Equal(t, value.CategoryUser, rerr.Category)
	require.Equal(t, "boom", rerr.Message)
}

func TestExecErrorValues(t *testing.T) {
	v := run(t, `
		let e = Error:create("not_found", 404)
		[e.name, e.info, Core:type(e)]
	`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Str("not_found"), value.Num(404), value.Str("error")}, arr.Elems)
}

func TestExecControlSentinelsNotObservable(t *testing.T) {
	// a break consumed by its loop never becomes a value; r holds the
	// loop's value, null.
	v := run(t, `
		let r = eval {
			var x = 0
			loop {
				x += 1
				if x == 2 { break }
			}
		}
		Core:type(r)
	`)
	require.Equal(t, value.Str("null"), v)
}

func TestExecStepBudgetExceeded(t *testing.T) {
	prog, err := parser.Parse([]byte(`loop { }`))
	require.NoError(t, err)

	e := interp.New(context.Background(), 50)
	_, err = e.Exec(prog)
	require.Error(t, err)

	rerr, ok := err.(*value.RuntimeError)
	require.True(t, ok)
	require.Equal(t, value.CategoryMaxStepExceeded, rerr.Category)
}

func TestExecStepBudgetTripsOnEmptyLoopBodies(t *testing.T) {
	// even a body that contributes no statement steps must advance the
	// counter once per iteration.
	for _, src := range []string{
		`for (Math:Infinity) {}`,
		`for let i = 0, Math:Infinity {}`,
		`loop {}`,
	} {
		prog, err := parser.Parse([]byte(src))
		require.NoError(t, err)

		e := interp.New(context.Background(), 100)
		_, err = e.Exec(prog)
		require.Error(t, err, "source: %s", src)
		rerr, ok := err.(*value.RuntimeError)
		require.True(t, ok)
		require.Equal(t, value.CategoryMaxStepExceeded, rerr.Category, "source: %s", src)
	}
}

func TestExecStepBudgetTripsOnEmptyEachBody(t *testing.T) {
	prog, err := parser.Parse([]byte(`each let v, Arr:create(500) {}`))
	require.NoError(t, err)

	e := interp.New(context.Background(), 100)
	_, err = e.Exec(prog)
	require.Error(t, err)
	rerr, ok := err.(*value.RuntimeError)
	require.True(t, ok)
	require.Equal(t, value.CategoryMaxStepExceeded, rerr.Category)
}

func TestExecStepsMonotonic(t *testing.T) {
	e := interp.New(context.Background(), 0)
	prog, err := parser.Parse([]byte(`1 + 2`))
	require.NoError(t, err)
	_, err = e.Exec(prog)
	require.NoError(t, err)
	require.Greater(t, e.Steps(), uint64(0))
}

func TestExecGenRngDeterministic(t *testing.T) {
	src := `
		let rng = Math:gen_rng("seed")
		[rng(), rng(), rng()]
	`
	v1 := run(t, src)
	v2 := run(t, src)
	require.True(t, value.Equal(v1, v2))
}

func TestExecGenRngInvalidSeed(t *testing.T) {
	rerr := runError(t, `Math:gen_rng(null)`)
	require.Equal(t, value.CategoryInvalidSeed, rerr.Category)
}

func TestExecJsonRoundTrip(t *testing.T) {
	v := run(t, `Json:parse(Json:stringify({ a: [1, "x", null], b: true }))`)
	obj, ok := v.(*value.Obj)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, obj.Keys())
}

func TestExecJsonStringifyCycle(t *testing.T) {
	v := run(t, `
		let a = [1]
		a.push(a)
		Json:stringify(a)
	`)
	e, ok := v.(*value.Error)
	require.True(t, ok)
	require.Equal(t, "cyclic_reference", e.Name)
}

func TestExecJsonParseInvalid(t *testing.T) {
	v := run(t, `Json:parse("{nope")`)
	e, ok := v.(*value.Error)
	require.True(t, ok)
	require.Equal(t, "not_json", e.Name)
}

func TestExecJsonParsable(t *testing.T) {
	v := run(t, `[Json:parsable("[1,2]"), Json:parsable("{nope")]`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Bool(true), value.Bool(false)}, arr.Elems)
}

func TestExecCoreRange(t *testing.T) {
	v := run(t, `[Core:range(1, 3), Core:range(3, 1)]`)
	arr, ok := v.(*value.Arr)
	require.True(t, ok)
	first := arr.Elems[0].(*value.Arr)
	require.Equal(t, []value.Value{value.Num(1), value.Num(2), value.Num(3)}, first.Elems)
	second := arr.Elems[1].(*value.Arr)
	require.Equal(t, []value.Value{value.Num(1), value.Num(2), value.Num(3)}, second.Elems)
}

func TestExecMissingStdlibArg(t *testing.T) {
	rerr := runError(t, `Core:range(1)`)
	require.Equal(t, value.CategoryExpectAny, rerr.Category)
}

func TestExecAttrsOnDefinition(t *testing.T) {
	v := run(t, `
		#[tag "x"]
		@f() { 1 }
		f()
	`)
	require.Equal(t, value.Num(1), v)
}

func TestCallFromHost(t *testing.T) {
	prog, err := parser.Parse([]byte(`@double(n) { n * 2 }`))
	require.NoError(t, err)

	e := interp.New(context.Background(), 0)
	_, err = e.Exec(prog)
	require.NoError(t, err)

	b, ok := e.Root().Lookup("double")
	require.True(t, ok)
	fn, ok := b.Value.(*value.Fn)
	require.True(t, ok)

	v, err := e.Call(fn, []value.Value{value.Num(21)})
	require.NoError(t, err)
	require.Equal(t, value.Num(42), v)
}

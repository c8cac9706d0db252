package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-lang/aiscript-go/lang/parser"
	"github.com/aiscript-lang/aiscript-go/lang/validator"
)

func validate(t *testing.T, src string) []error {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return validator.Validate(prog)
}

func TestValidateOK(t *testing.T) {
	errs := validate(t, `let x: num = 1 + 2`)
	require.Empty(t, errs)
}

func TestValidateBreakOutsideLoop(t *testing.T) {
	errs := validate(t, `break`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "break used outside of a loop")
}

func TestValidateContinueOutsideLoop(t *testing.T) {
	errs := validate(t, `continue`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "continue used outside of a loop")
}

func TestValidateBreakTargetsUnknownLabel(t *testing.T) {
	errs := validate(t, `loop { break #nope }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), `targets undefined label "nope"`)
}

func TestValidateBreakTargetsKnownLabel(t *testing.T) {
	errs := validate(t, `#outer: loop { break #outer }`)
	require.Empty(t, errs)
}

func TestValidateReturnOutsideFunction(t *testing.T) {
	errs := validate(t, `return 1`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "return used outside of a function")
}

func TestValidateReturnInsideFunctionOK(t *testing.T) {
	errs := validate(t, `@f() { return 1 }`)
	require.Empty(t, errs)
}

func TestValidateUnknownTypeName(t *testing.T) {
	errs := validate(t, `let x: frobnicator = 1`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), `unknown type "frobnicator"`)
}

func TestValidateDuplicateTypeParam(t *testing.T) {
	errs := validate(t, `@f<T, T>(x: T) { return x }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), `duplicate type parameter name "T"`)
}

func TestValidateTypeParamInScopeForParam(t *testing.T) {
	errs := validate(t, `@f<T>(x: T): T { return x }`)
	require.Empty(t, errs)
}

func TestValidateTypeTable(t *testing.T) {
	for _, src := range []string{
		`let a: never = 1`,
		`let b: void = 1`,
		`let c: arr<num> = [1]`,
		`let d: obj = { x: 1 }`,
		`let e: num | null = 1`,
	} {
		require.Empty(t, validate(t, src), "source: %s", src)
	}
}

func TestValidateTypeParamWithInnerTypeFails(t *testing.T) {
	errs := validate(t, `@f<T>(x: T<num>) { return x }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), `type parameter "T" cannot take an inner type`)
}

func TestValidateUnknownGenericFails(t *testing.T) {
	errs := validate(t, `let x: frob<num> = 1`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), `unknown generic type "frob"`)
}

func TestValidateBreakValueToStatementLoopFails(t *testing.T) {
	errs := validate(t, `#L: for (3) { break #L 1 }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "cannot carry a value")
}

func TestValidateBreakValueToLabeledEvalOK(t *testing.T) {
	errs := validate(t, `let x = #b: eval { break #b 1 }`)
	require.Empty(t, errs)
}

func TestValidateUnlabeledBreakValueInLoopOK(t *testing.T) {
	errs := validate(t, `loop { break 1 }`)
	require.Empty(t, errs)
}

func TestValidateContinueToExprLabelFails(t *testing.T) {
	errs := validate(t, `loop { let x = #b: eval { continue #b } }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "does not target a loop")
}

func TestValidateJumpCannotCrossFunction(t *testing.T) {
	errs := validate(t, `loop { @f() { break } f() }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "break used outside of a loop")
}

func TestValidateVarInNamespaceFails(t *testing.T) {
	errs := validate(t, `:: N { var x = 1 }`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "mutable variable")
}

func TestValidateNestedNamespaceOK(t *testing.T) {
	errs := validate(t, `:: A { let y = 1 :: B { let x = 2 } }`)
	require.Empty(t, errs)
}

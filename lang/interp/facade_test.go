package interp_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-lang/aiscript-go/lang/interp"
	"github.com/aiscript-lang/aiscript-go/lang/parser"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

func TestInterpreterConstants(t *testing.T) {
	prog, err := parser.Parse([]byte(`THE_ANSWER + 1`))
	require.NoError(t, err)

	it, err := interp.NewInterpreter(context.Background(), interp.Config{
		Constants: map[string]value.Value{"THE_ANSWER": value.Num(41)},
	})
	require.NoError(t, err)

	v, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value.Num(42), v)
}

func TestInterpreterConstantsAreImmutable(t *testing.T) {
	prog, err := parser.Parse([]byte(`C = 1`))
	require.NoError(t, err)

	it, err := interp.NewInterpreter(context.Background(), interp.Config{
		Constants: map[string]value.Value{"C": value.Num(0)},
	})
	require.NoError(t, err)

	_, _, err = it.Exec(prog)
	require.Error(t, err)
	rerr, ok := err.(*value.RuntimeError)
	require.True(t, ok)
	require.Equal(t, value.CategoryAssignmentToImmutable, rerr.Category)
}

func TestInterpreterErrorSinkFiresOnce(t *testing.T) {
	// a callback failing inside a map over several elements must reach the
	// sink a single time.
	prog, err := parser.Parse([]byte(`[1, 2, 3].map(@(x) { Core:abort("bad") })`))
	require.NoError(t, err)

	var sunk []error
	it, err := interp.NewInterpreter(context.Background(), interp.Config{
		Err: func(err error) { sunk = append(sunk, err) },
	})
	require.NoError(t, err)

	v, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, v)
	require.Len(t, sunk, 1)
	rerr, isRT := sunk[0].(*value.RuntimeError)
	require.True(t, isRT)
	require.Equal(t, value.CategoryUser, rerr.Category)
}

func TestInterpreterNoSinkSurfacesError(t *testing.T) {
	prog, err := parser.Parse([]byte(`Core:abort("bad")`))
	require.NoError(t, err)

	it, err := interp.NewInterpreter(context.Background(), interp.Config{})
	require.NoError(t, err)

	_, ok, err := it.Exec(prog)
	require.False(t, ok)
	require.Error(t, err)
}

func TestInterpreterAbortShortCircuitsToNull(t *testing.T) {
	prog, err := parser.Parse([]byte(`
		var n = 0
		loop { n += 1 }
	`))
	require.NoError(t, err)

	it, err := interp.NewInterpreter(context.Background(), interp.Config{})
	require.NoError(t, err)

	done := make(chan struct{})
	var execV value.Value
	var execErr error
	go func() {
		defer close(done)
		execV, _, execErr = it.Exec(prog)
	}()

	for it.Steps() == 0 {
		runtime.Gosched()
	}
	it.Abort()
	<-done

	// an aborted run terminates without an error; the interrupted nodes
	// all evaluated to null.
	require.NoError(t, execErr)
	require.Equal(t, value.Null{}, execV)
}

func TestInterpreterExecResetsAbort(t *testing.T) {
	it, err := interp.NewInterpreter(context.Background(), interp.Config{})
	require.NoError(t, err)
	it.Abort()

	prog, err := parser.Parse([]byte(`1 + 1`))
	require.NoError(t, err)
	v, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value.Num(2), v)
}

func TestInterpreterContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	it, err := interp.NewInterpreter(ctx, interp.Config{})
	require.NoError(t, err)

	prog, err := parser.Parse([]byte(`loop { 1 }`))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = it.Exec(prog)
	}()
	cancel()
	<-done
}

func TestInterpreterReadline(t *testing.T) {
	prog, err := parser.Parse([]byte(`readline("> ")`))
	require.NoError(t, err)

	var seenPrompt string
	it, err := interp.NewInterpreter(context.Background(), interp.Config{
		In: func(prompt string) (string, error) {
			seenPrompt = prompt
			return "typed", nil
		},
	})
	require.NoError(t, err)

	v, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value.Str("typed"), v)
	require.Equal(t, "> ", seenPrompt)
}

func TestInterpreterPrintBuiltin(t *testing.T) {
	prog, err := parser.Parse([]byte(`print("hi")`))
	require.NoError(t, err)

	var out []string
	it, err := interp.NewInterpreter(context.Background(), interp.Config{
		Out: func(v value.Value) { out = append(out, value.Display(v)) },
	})
	require.NoError(t, err)

	_, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{`"hi"`}, out)
}

func TestInterpreterGetAll(t *testing.T) {
	prog, err := parser.Parse([]byte(`
		let answer = 42
		:: N { let x = 1 }
	`))
	require.NoError(t, err)

	it, err := interp.NewInterpreter(context.Background(), interp.Config{})
	require.NoError(t, err)
	_, ok, err := it.Exec(prog)
	require.NoError(t, err)
	require.True(t, ok)

	all := it.GetAll()
	require.Equal(t, value.Num(42), all["answer"])
	require.Equal(t, value.Num(1), all["N:x"])
	require.Contains(t, all, "Core:type")
}

func TestCollectMetadata(t *testing.T) {
	prog, err := parser.Parse([]byte(`
		### name "my-script"
		### version 2
		### tags ["a", "b"]
		### config { debug: true }
		### computed 1 + 2
		let x = 1
	`))
	require.NoError(t, err)

	meta := interp.CollectMetadata(prog)
	require.Equal(t, value.Str("my-script"), meta["name"])
	require.Equal(t, value.Num(2), meta["version"])

	tags, ok := meta["tags"].(*value.Arr)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Str("a"), value.Str("b")}, tags.Elems)

	cfg, ok := meta["config"].(*value.Obj)
	require.True(t, ok)
	v, _ := cfg.Get("debug")
	require.Equal(t, value.Bool(true), v)

	// non-literal expressions collapse to null.
	require.Equal(t, value.Null{}, meta["computed"])
}

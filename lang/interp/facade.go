package interp

import (
	"context"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// Config carries the host-supplied collaborators of an Interpreter: named
// constants predeclared into the root scope, the readline/print callbacks
// backing the `readline` and `print` built-ins and the `<:` statement, an
// optional error sink, and the hard step budget (0 means unlimited).
type Config struct {
	Constants map[string]value.Value

	// In supplies a line of input when a script calls `readline(prompt)`.
	In func(prompt string) (string, error)
	// Out receives every printed value. Defaults to writing the value's
	// value.Display form (top-level strings quoted) on stdlib.Stdout.
	Out func(v value.Value)
	// Err, if set, receives the runtime error that aborted an Exec; when it
	// is set Exec reports failure by returning ok=false instead of the
	// error itself. The sink fires at most once per Exec, no matter how
	// many nested callbacks were in flight when the error unwound.
	Err func(err error)

	MaxStep int
}

// Interpreter is the host-facing entry point tying an Evaluator to its host
// callbacks. A single Interpreter is not safe for concurrent Exec calls,
// but Abort and Steps may be called from other goroutines while a script
// runs.
type Interpreter struct {
	cfg  Config
	eval *Evaluator
}

// NewInterpreter builds an Interpreter whose root scope holds the standard
// library, the host constants, and the `print`/`readline` built-ins.
// Cancelling ctx has the same effect as Abort.
func NewInterpreter(ctx context.Context, cfg Config) (*Interpreter, error) {
	i := &Interpreter{cfg: cfg, eval: New(ctx, cfg.MaxStep)}
	if cfg.Out != nil {
		i.eval.SetOut(cfg.Out)
	}

	root := i.eval.Root()
	for name, v := range cfg.Constants {
		if err := root.Define(name, v, false); err != nil {
			return nil, err
		}
	}

	if err := root.Define("print", &value.Fn{Name: "print", Native: func(args []value.Value) (value.Value, error) {
		var v value.Value = value.Null{}
		if len(args) > 0 {
			v = args[0]
		}
		i.eval.print(v)
		return value.Null{}, nil
	}}, false); err != nil {
		return nil, err
	}

	if err := root.Define("readline", &value.Fn{Name: "readline", Native: func(args []value.Value) (value.Value, error) {
		if i.cfg.In == nil {
			return value.Null{}, nil
		}
		prompt := ""
		if len(args) > 0 {
			if s, ok := args[0].(value.Str); ok {
				prompt = string(s)
			}
		}
		line, err := i.cfg.In(prompt)
		if err != nil {
			return value.Null{}, nil
		}
		return value.Str(line), nil
	}}, false); err != nil {
		return nil, err
	}

	return i, nil
}

// Exec evaluates a full program. With no error sink configured, it behaves
// like Evaluator.Exec: the final value or the error. With a sink, a failed
// run aborts the interpreter, feeds the error to the sink exactly once and
// reports (nil, false); the error itself never reaches the caller.
func (i *Interpreter) Exec(prog *ast.Program) (value.Value, bool, error) {
	v, err := i.eval.Exec(prog)
	if err != nil {
		if i.cfg.Err != nil {
			i.eval.Abort()
			i.cfg.Err(err)
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// Call invokes a function value from host code.
func (i *Interpreter) Call(fn *value.Fn, args []value.Value) (value.Value, error) {
	return i.eval.Call(fn, args)
}

// Abort stops the running script: every node entered afterwards
// short-circuits to null. A fresh Exec resets the flag.
func (i *Interpreter) Abort() { i.eval.Abort() }

// Steps reports the number of nodes evaluated so far; safe to read while a
// script runs.
func (i *Interpreter) Steps() uint64 { return i.eval.Steps() }

// GetAll returns a flattened view of every binding reachable from the root
// scope, including qualified namespace re-exports.
func (i *Interpreter) GetAll() map[string]value.Value { return i.eval.Root().All() }

// CollectMetadata extracts the program's `### name expr` meta declarations.
// Only static literal forms (null, bool, num, str, and arrays/objects of
// those) are retained; any other expression collapses to null.
func CollectMetadata(prog *ast.Program) map[string]value.Value {
	out := make(map[string]value.Value)
	for _, item := range prog.Items {
		m, ok := item.(*ast.MetaDecl)
		if !ok {
			continue
		}
		out[m.Name] = staticValue(m.Value)
	}
	return out
}

func staticValue(x ast.Expr) value.Value {
	switch x := x.(type) {
	case *ast.NullLit:
		return value.Null{}
	case *ast.BoolLit:
		return value.Bool(x.Value)
	case *ast.NumLit:
		return value.Num(x.Value)
	case *ast.StrLit:
		return value.Str(x.Value)
	case *ast.ArrLit:
		elems := make([]value.Value, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = staticValue(el)
		}
		return value.NewArr(elems...)
	case *ast.ObjLit:
		obj := value.NewObj()
		for _, entry := range x.Elems {
			obj.Set(entry.Key, staticValue(entry.Value))
		}
		return obj
	default:
		return value.Null{}
	}
}

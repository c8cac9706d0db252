// Package interp implements the tree-walking evaluator and the host-facing
// interpreter facade: statement and expression dispatch over the lang/ast
// tree, operating on lang/value values and lang/primitive's property
// tables, with a step budget, cooperative yielding and host-driven
// cancellation (context.Context plus an atomic stop flag, so a host may
// cancel a CPU-bound script without cooperation from the script itself).
package interp

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/primitive"
	"github.com/aiscript-lang/aiscript-go/lang/stdlib"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// irqRate is how many evaluation steps pass between cooperative yields: a
// CPU-bound script pauses for irqPause every irqRate statement-or-expression
// nodes so a host event loop sharing the thread is never starved.
const (
	irqRate  = 300
	irqPause = 5 * time.Millisecond
)

// Evaluator walks an *ast.Program, threading a step budget and a stop flag
// through every statement and expression it visits.
type Evaluator struct {
	root     *value.Scope
	steps    atomic.Uint64
	maxSteps uint64
	stop     atomic.Bool
	ctx      context.Context

	// out receives the value of every `<:` statement; defaults to printing
	// its value.Display form on stdlib.Stdout.
	out func(value.Value)
}

// New creates an Evaluator. maxSteps <= 0 means unlimited. The root scope is
// pre-populated with every lang/stdlib namespace, and ctx cancellation sets
// the stop flag: every node visited after that returns null immediately.
func New(ctx context.Context, maxSteps int) *Evaluator {
	if ctx == nil {
		ctx = context.Background()
	}
	e := &Evaluator{ctx: ctx}
	if maxSteps > 0 {
		e.maxSteps = uint64(maxSteps)
	} else {
		e.maxSteps-- // saturate to MaxUint64: unlimited
	}
	e.root = value.NewScope(nil)
	stdlib.Install(e.root)
	primitive.CallFn = e.callValue

	context.AfterFunc(ctx, func() {
		e.stop.Store(true)
	})

	return e
}

// Root returns the evaluator's root scope, useful for introspection or for
// injecting extra predeclared bindings before Exec.
func (e *Evaluator) Root() *value.Scope { return e.root }

// Steps reports how many statement-or-expression nodes have been evaluated;
// it may be read concurrently with a running script.
func (e *Evaluator) Steps() uint64 { return e.steps.Load() }

// Abort sets the stop flag: every node entered from now on short-circuits
// to null, terminating the script without an error.
func (e *Evaluator) Abort() { e.stop.Store(true) }

// reset clears the stop flag and step counter so an aborted evaluator can
// run a fresh program.
func (e *Evaluator) reset() {
	e.stop.Store(false)
	e.steps.Store(0)
}

// SetOut redirects `<:` output to fn.
func (e *Evaluator) SetOut(fn func(value.Value)) { e.out = fn }

// stopped also reports a cancelled ctx, which reset does not clear.
func (e *Evaluator) stopped() bool { return e.stop.Load() || e.ctx.Err() != nil }

// tick advances the step counter, enforcing the step budget and pausing
// briefly every irqRate steps so the host scheduler gets a turn. It is
// called once per statement and expression node visited, once per function
// call and once per loop iteration.
func (e *Evaluator) tick() error {
	n := e.steps.Add(1)
	if n > e.maxSteps {
		return value.NewRuntimeError(value.CategoryMaxStepExceeded, "exceeded maximum step count (%d)", e.maxSteps)
	}
	if n%irqRate == 0 {
		time.Sleep(irqPause)
	}
	return nil
}

// Exec runs every top-level item of prog in the root scope, returning the
// value of the last statement (or null). Namespace declarations are
// collected and their members declared eagerly in a first pass, before any
// ordinary statement runs, so a script can call `N:f()` above the textual
// `:: N { ... }` block that defines it.
func (e *Evaluator) Exec(prog *ast.Program) (value.Value, error) {
	e.reset()

	for _, item := range prog.Items {
		if ns, ok := item.(*ast.NamespaceDecl); ok {
			if err := e.execNamespaceDecl(ns, e.root); err != nil {
				return nil, err
			}
		}
	}

	var last value.Value = value.Null{}
	for _, item := range prog.Items {
		v, err := e.execTopLevel(item)
		if err != nil {
			return nil, err
		}
		if v != nil {
			last = v
		}
	}
	if m, ok := last.(marker); ok {
		// control sentinels never escape to callers.
		last = m.result()
	}
	return last, nil
}

func (e *Evaluator) execTopLevel(item ast.TopLevel) (value.Value, error) {
	switch item := item.(type) {
	case *ast.StmtTopLevel:
		return e.execStmt(item.Stmt, e.root)
	case *ast.NamespaceDecl:
		// already declared by the eager pass.
		return nil, nil
	case *ast.MetaDecl:
		// metadata is host-facing only; see CollectMetadata.
		return nil, nil
	default:
		return nil, value.NewRuntimeError(value.CategoryInternal, "unknown top-level item %T", item)
	}
}

// execNamespaceDecl declares a namespace's members eagerly in a fresh
// namespace child scope. Members must be immutable definitions or nested
// namespaces; the validator rejects anything else before execution, but the
// same conditions are enforced here for hosts that skip validation.
func (e *Evaluator) execNamespaceDecl(decl *ast.NamespaceDecl, parent *value.Scope) error {
	ns := value.NewNamespaceScope(parent, decl.Name)
	for _, stmt := range decl.Members {
		switch stmt := stmt.(type) {
		case *ast.DefStmt:
			if stmt.Mutable {
				return value.NewRuntimeError(value.CategoryNoMutableInNamespace, "namespaces do not allow mutable variable declarations (%q)", stmt.Name)
			}
			if _, err := e.execStmt(stmt, ns); err != nil {
				return err
			}
		case *ast.NamespaceDecl:
			if err := e.execNamespaceDecl(stmt, ns); err != nil {
				return err
			}
		default:
			return value.NewRuntimeError(value.CategoryInvalidDefinition, "namespaces allow only definitions and nested namespaces")
		}
	}
	return nil
}

// callValue is installed as primitive.CallFn so that native higher-order
// array/obj methods (map, filter, reduce, sort, ...) can invoke scripted
// callbacks without lang/primitive importing lang/interp.
func (e *Evaluator) callValue(fn value.Value, args []value.Value) (value.Value, error) {
	f, ok := fn.(*value.Fn)
	if !ok {
		return nil, value.NewRuntimeError(value.CategoryTypeMismatch, "value of type %s is not callable", fn.Type())
	}
	return e.callFn(f, args)
}

// Call invokes fn (native or scripted) with args, for use by host code
// embedding the interpreter.
func (e *Evaluator) Call(fn *value.Fn, args []value.Value) (value.Value, error) {
	return e.callFn(fn, args)
}

func (e *Evaluator) print(v value.Value) {
	if e.out != nil {
		e.out(v)
		return
	}
	fmt.Fprintln(stdlib.Stdout, value.Display(v))
}

// Package validator performs a pre-execution AST walk over a parsed program
// without running it: type annotations are resolved against the fixed table
// of type constructors, break/continue/return are checked to appear only
// where they are legal, and namespace bodies are checked for member kinds
// the runtime would reject. It follows the environment-chaining walk style
// used for name resolution elsewhere in this codebase: a small stack of
// lexical facts (in-scope type parameters, enclosing labels, function
// nesting depth) threaded through a recursive descent, with errors
// collected rather than raised so a single pass reports every problem.
package validator

import (
	"fmt"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// Error is a single validation failure.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// Validate runs the type-annotation, jump-target and namespace checks over
// prog, returning every error found (nil if the program is valid).
func Validate(prog *ast.Program) []error {
	v := &validator{}
	for _, item := range prog.Items {
		v.topLevel(item)
	}
	return v.errs
}

// labelKind classifies what a jump label is attached to: statement loops
// reject `break #label value`, expression constructs accept it, and only
// loop-like constructs are valid continue targets.
type labelKind int

const (
	kindStmtLoop labelKind = iota // for, for-let, each, loop
	kindExpr                      // labeled if, match, eval block
)

type labelCtx struct {
	name string // "" for an unlabeled loop
	kind labelKind
}

type validator struct {
	errs []error

	// labels in scope, innermost last; reset at function boundaries.
	labels []labelCtx
	// funcDepth > 0 means the current position is inside a function body.
	funcDepth int
}

func (v *validator) errorf(pos token.Pos, format string, args ...any) {
	v.errs = append(v.errs, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (v *validator) topLevel(item ast.TopLevel) {
	switch item := item.(type) {
	case *ast.StmtTopLevel:
		v.stmt(item.Stmt)
	case *ast.NamespaceDecl:
		v.namespace(item)
	case *ast.MetaDecl:
		v.expr(item.Value)
	}
}

// namespace checks a namespace body: members must be immutable definitions
// or nested namespaces.
func (v *validator) namespace(decl *ast.NamespaceDecl) {
	for _, s := range decl.Members {
		switch s := s.(type) {
		case *ast.DefStmt:
			if s.Mutable {
				v.errorf(s.Start, "namespaces do not allow mutable variable declarations (%q)", s.Name)
			}
			v.stmt(s)
		case *ast.NamespaceDecl:
			v.namespace(s)
		default:
			v.errorf(s.Pos(), "namespaces allow only definitions and nested namespaces")
		}
	}
}

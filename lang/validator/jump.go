package validator

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
)

func (v *validator) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.DefStmt:
		if s.Type != nil {
			v.checkType(s.Type, nil)
		}
		for _, a := range s.Attrs {
			v.expr(a.Value)
		}
		v.expr(s.Value)

	case *ast.ReturnStmt:
		if v.funcDepth == 0 {
			v.errorf(s.Start, "return used outside of a function")
		}
		if s.Value != nil {
			v.expr(s.Value)
		}

	case *ast.BreakStmt:
		v.checkBreak(s)
		if s.Value != nil {
			v.expr(s.Value)
		}

	case *ast.ContinueStmt:
		v.checkContinue(s)

	case *ast.EachStmt:
		v.expr(s.Items)
		v.withLabel(s.Label, kindStmtLoop, func() { v.block(s.Body) })

	case *ast.ForStmt:
		v.expr(s.Times)
		v.withLabel(s.Label, kindStmtLoop, func() { v.block(s.Body) })

	case *ast.ForLetStmt:
		v.expr(s.From)
		v.expr(s.To)
		v.withLabel(s.Label, kindStmtLoop, func() { v.block(s.Body) })

	case *ast.LoopStmt:
		v.withLabel(s.Label, kindStmtLoop, func() { v.block(s.Body) })

	case *ast.AssignStmt:
		v.expr(s.Value)

	case *ast.CompoundAssignStmt:
		v.expr(s.Value)

	case *ast.ExprStmt:
		v.expr(s.X)

	case *ast.PrintStmt:
		v.expr(s.Value)

	case *ast.NamespaceDecl:
		v.namespace(s)
	}
}

func (v *validator) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		v.stmt(s)
	}
}

func (v *validator) withLabel(label string, kind labelKind, body func()) {
	v.labels = append(v.labels, labelCtx{name: label, kind: kind})
	body()
	v.labels = v.labels[:len(v.labels)-1]
}

// resolveLabel finds the innermost label context matching name ("" matches
// the innermost loop-like construct, skipping labeled expression blocks).
func (v *validator) resolveLabel(name string) (labelCtx, bool) {
	for i := len(v.labels) - 1; i >= 0; i-- {
		lc := v.labels[i]
		if name == "" {
			if lc.kind == kindStmtLoop {
				return lc, true
			}
			continue
		}
		if lc.name == name {
			return lc, true
		}
	}
	return labelCtx{}, false
}

func (v *validator) checkBreak(s *ast.BreakStmt) {
	lc, ok := v.resolveLabel(s.Label)
	if !ok {
		if s.Label == "" {
			v.errorf(s.Start, "break used outside of a loop")
		} else {
			v.errorf(s.Start, "break targets undefined label %q", s.Label)
		}
		return
	}
	// a labeled break may only carry a value when its target is an
	// expression construct whose result the value becomes.
	if s.Value != nil && s.Label != "" && lc.kind == kindStmtLoop {
		v.errorf(s.Start, "break #%s cannot carry a value: label names a statement", s.Label)
	}
}

func (v *validator) checkContinue(s *ast.ContinueStmt) {
	lc, ok := v.resolveLabel(s.Label)
	if !ok {
		if s.Label == "" {
			v.errorf(s.Start, "continue used outside of a loop")
		} else {
			v.errorf(s.Start, "continue targets undefined label %q", s.Label)
		}
		return
	}
	if lc.kind != kindStmtLoop {
		v.errorf(s.Start, "continue #%s does not target a loop", s.Label)
	}
}

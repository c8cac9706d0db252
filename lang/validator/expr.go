package validator

import "github.com/aiscript-lang/aiscript-go/lang/ast"

func (v *validator) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.ArrLit:
		for _, el := range e.Elems {
			v.expr(el)
		}
	case *ast.ObjLit:
		for _, entry := range e.Elems {
			v.expr(entry.Value)
		}
	case *ast.TemplateExpr:
		for _, p := range e.Pieces {
			if p.Expr != nil {
				v.expr(p.Expr)
			}
		}
	case *ast.UnaryExpr:
		v.expr(e.X)
	case *ast.BinaryExpr:
		v.expr(e.Left)
		v.expr(e.Right)
	case *ast.CallExpr:
		v.expr(e.Fn)
		for _, a := range e.Args {
			v.expr(a)
		}
	case *ast.IndexExpr:
		v.expr(e.Target)
		v.expr(e.Index)
	case *ast.PropExpr:
		v.expr(e.Target)
	case *ast.FnExpr:
		v.checkFnSignature(e.Start, e.Sig)
		for _, a := range e.Attrs {
			v.expr(a.Value)
		}
		// jumps cannot cross a function boundary.
		v.funcDepth++
		savedLabels := v.labels
		v.labels = nil
		v.block(e.Body)
		v.labels = savedLabels
		v.funcDepth--
	case *ast.IfExpr:
		v.inExprLabel(e.Label, func() {
			for _, br := range e.Branches {
				v.expr(br.Cond)
				v.block(br.Body)
			}
			v.block(e.Else)
		})
	case *ast.MatchExpr:
		v.expr(e.About)
		v.inExprLabel(e.Label, func() {
			for _, arm := range e.Arms {
				v.expr(arm.Q)
				v.expr(arm.A)
			}
			if e.Default != nil {
				v.expr(e.Default)
			}
		})
	case *ast.BlockExpr:
		v.inExprLabel(e.Label, func() { v.block(e.Body) })
	}
}

// inExprLabel makes a labeled expression construct a valid break target
// while its body is validated; an unlabeled one contributes nothing.
func (v *validator) inExprLabel(label string, body func()) {
	if label == "" {
		body()
		return
	}
	v.withLabel(label, kindExpr, body)
}

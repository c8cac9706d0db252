package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/parser"
)

func TestParseDefStmt(t *testing.T) {
	prog, err := parser.Parse([]byte(`let x: num = 1 + 2`))
	require.NoError(t, err)
	require.Len(t, prog.Items, 1)

	top, ok := prog.Items[0].(*ast.StmtTopLevel)
	require.True(t, ok)
	def, ok := top.Stmt.(*ast.DefStmt)
	require.True(t, ok)
	require.Equal(t, "x", def.Name)
	require.False(t, def.Mutable)
	require.IsType(t, &ast.SimpleType{}, def.Type)
	require.IsType(t, &ast.BinaryExpr{}, def.Value)
}

func TestParseNamespaceDecl(t *testing.T) {
	prog, err := parser.Parse([]byte(`:: Things { let a = 1 let b = 2 }`))
	require.NoError(t, err)
	require.Len(t, prog.Items, 1)

	ns, ok := prog.Items[0].(*ast.NamespaceDecl)
	require.True(t, ok)
	require.Equal(t, "Things", ns.Name)
	require.Len(t, ns.Members, 2)
}

func TestParseIfExprAsValue(t *testing.T) {
	prog, err := parser.Parse([]byte(`let x = if true { 1 } else { 2 }`))
	require.NoError(t, err)
	def := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	ie, ok := def.Value.(*ast.IfExpr)
	require.True(t, ok)
	require.Len(t, ie.Branches, 1)
	require.NotNil(t, ie.Else)
}

func TestParseNamedFnDef(t *testing.T) {
	prog, err := parser.Parse([]byte(`@add(a, b) { return a + b }`))
	require.NoError(t, err)
	def := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	require.Equal(t, "add", def.Name)
	fn, ok := def.Value.(*ast.FnExpr)
	require.True(t, ok)
	require.Len(t, fn.Sig.Params, 2)
}

func TestParseTemplateLiteral(t *testing.T) {
	prog, err := parser.Parse([]byte("let x = 1\nlet y = `a{x}b`"))
	require.NoError(t, err)
	def := prog.Items[1].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	tmpl, ok := def.Value.(*ast.TemplateExpr)
	require.True(t, ok)
	require.Len(t, tmpl.Pieces, 3)
	require.Equal(t, "a", tmpl.Pieces[0].Str)
	require.NotNil(t, tmpl.Pieces[1].Expr)
	require.Equal(t, "b", tmpl.Pieces[2].Str)
}

func TestParseBreakContinueWithLabel(t *testing.T) {
	prog, err := parser.Parse([]byte(`#outer: for (3) { break #outer }`))
	require.NoError(t, err)
	top := prog.Items[0].(*ast.StmtTopLevel).Stmt
	loop, ok := top.(*ast.ForStmt)
	require.True(t, ok)
	require.Equal(t, "outer", loop.Label)
	brk := loop.Body.Stmts[0].(*ast.BreakStmt)
	require.Equal(t, "outer", brk.Label)
}

func TestParseAssignAndCompoundAssign(t *testing.T) {
	prog, err := parser.Parse([]byte("var x = 1\nx += 2\nx = 3"))
	require.NoError(t, err)
	require.Len(t, prog.Items, 3)
	require.IsType(t, &ast.CompoundAssignStmt{}, prog.Items[1].(*ast.StmtTopLevel).Stmt)
	require.IsType(t, &ast.AssignStmt{}, prog.Items[2].(*ast.StmtTopLevel).Stmt)
}

func TestParseErrorRecovery(t *testing.T) {
	_, err := parser.Parse([]byte(`let x = `))
	require.Error(t, err)
}

func TestParseNestedNamespace(t *testing.T) {
	prog, err := parser.Parse([]byte(`:: A { let y = 1 :: B { let x = 2 } }`))
	require.NoError(t, err)
	ns := prog.Items[0].(*ast.NamespaceDecl)
	require.Len(t, ns.Members, 2)
	inner, ok := ns.Members[1].(*ast.NamespaceDecl)
	require.True(t, ok)
	require.Equal(t, "B", inner.Name)
}

func TestParseMetaDecl(t *testing.T) {
	prog, err := parser.Parse([]byte("### name \"demo\"\nlet x = 1"))
	require.NoError(t, err)
	require.Len(t, prog.Items, 2)
	meta, ok := prog.Items[0].(*ast.MetaDecl)
	require.True(t, ok)
	require.Equal(t, "name", meta.Name)
	require.IsType(t, &ast.StrLit{}, meta.Value)
}

func TestParseAttributesOnDef(t *testing.T) {
	prog, err := parser.Parse([]byte("#[tag \"x\"]\n#[flagged]\nlet v = 1"))
	require.NoError(t, err)
	def := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	require.Len(t, def.Attrs, 2)
	require.Equal(t, "tag", def.Attrs[0].Name)
	require.NotNil(t, def.Attrs[0].Value)
	require.Equal(t, "flagged", def.Attrs[1].Name)
	require.Nil(t, def.Attrs[1].Value)
}

func TestParseAttributesOnNamedFn(t *testing.T) {
	prog, err := parser.Parse([]byte("#[skip_test true]\n@f() { 1 }"))
	require.NoError(t, err)
	def := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	require.Len(t, def.Attrs, 1)
	require.Equal(t, "skip_test", def.Attrs[0].Name)
}

func TestParseUnionAndGenericTypes(t *testing.T) {
	prog, err := parser.Parse([]byte(`let x: arr<num | null> = [1]`))
	require.NoError(t, err)
	def := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	gen, ok := def.Type.(*ast.GenericType)
	require.True(t, ok)
	require.Equal(t, "arr", gen.Name)
	union, ok := gen.Inner.(*ast.UnionType)
	require.True(t, ok)
	require.Len(t, union.Members, 2)
}

func TestParseFnTypeAnnotation(t *testing.T) {
	prog, err := parser.Parse([]byte(`let f: @<T>(T, num) => T = @(v, n) { v }`))
	require.NoError(t, err)
	def := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.DefStmt)
	ft, ok := def.Type.(*ast.FuncType)
	require.True(t, ok)
	require.Equal(t, []string{"T"}, ft.TypeParams)
	require.Len(t, ft.Params, 2)
	require.NotNil(t, ft.Return)
}

func TestParseDestructuringAssign(t *testing.T) {
	prog, err := parser.Parse([]byte("var a = 0\n[a] = [1]"))
	require.NoError(t, err)
	assign := prog.Items[1].(*ast.StmtTopLevel).Stmt.(*ast.AssignStmt)
	require.IsType(t, &ast.ArrayPattern{}, assign.Target)
}

func TestParseExistsExpr(t *testing.T) {
	prog, err := parser.Parse([]byte(`exists foo`))
	require.NoError(t, err)
	stmt := prog.Items[0].(*ast.StmtTopLevel).Stmt.(*ast.ExprStmt)
	ex, ok := stmt.X.(*ast.ExistsExpr)
	require.True(t, ok)
	require.Equal(t, "foo", ex.Name)
}

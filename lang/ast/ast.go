// Package ast defines the abstract syntax tree produced by lang/parser and
// consumed by lang/validator and lang/interp. A program is a sequence of
// namespace declarations, meta declarations and statements, statements carry
// optional labels for loop-like and block constructs, and every node records
// its source position for error reporting.
package ast

import "github.com/aiscript-lang/aiscript-go/lang/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Pos
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed chunk: a sequence of top-level items in
// source order.
type Program struct {
	Items []TopLevel
}

func (p *Program) Pos() token.Pos {
	if len(p.Items) == 0 {
		return token.Pos{}
	}
	return p.Items[0].Pos()
}

// TopLevel is implemented by namespace declarations, meta declarations and
// ordinary statements, the three things that may appear directly in a
// program.
type TopLevel interface {
	Node
	topLevelNode()
}

// Attribute is a `#[name expr]` annotation attached to a definition.
type Attribute struct {
	NamePos token.Pos
	Name    string
	Value   Expr
}

// NamespaceDecl is a `:: Name { ... }` declaration. It appears at the top
// level of a program and, for nested namespaces (which compose their
// qualified names, `A:B:x`), as a member statement of an enclosing
// NamespaceDecl. Members must be immutable definitions or further namespace
// declarations; `var` members are rejected before execution.
type NamespaceDecl struct {
	Start   token.Pos
	Name    string
	Members []Stmt
}

func (n *NamespaceDecl) Pos() token.Pos { return n.Start }
func (n *NamespaceDecl) topLevelNode()  {}
func (n *NamespaceDecl) stmtNode()      {}

// MetaDecl is a `### name expr` top-level declaration.
type MetaDecl struct {
	Start token.Pos
	Name  string
	Value Expr
}

func (n *MetaDecl) Pos() token.Pos { return n.Start }
func (n *MetaDecl) topLevelNode()  {}

// StmtTopLevel wraps an ordinary statement so it can appear as a TopLevel
// item.
type StmtTopLevel struct {
	Stmt Stmt
}

func (n *StmtTopLevel) Pos() token.Pos { return n.Stmt.Pos() }
func (n *StmtTopLevel) topLevelNode()  {}

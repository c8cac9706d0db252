package ast

import "github.com/aiscript-lang/aiscript-go/lang/token"

// TypeExpr is implemented by the syntactic forms a type annotation may take:
// *SimpleType, *GenericType, *FuncType and *UnionType. Annotations are
// validated for well-formedness by lang/validator but never enforced at
// runtime.
type TypeExpr interface {
	Node
	typeNode()
}

// SimpleType is a bare type name with no inner type, e.g. `num` or a type
// parameter reference such as `T`.
type SimpleType struct {
	Start token.Pos
	Name  string
}

func (n *SimpleType) Pos() token.Pos { return n.Start }
func (n *SimpleType) typeNode()      {}

// GenericType is a one-argument generic type, e.g. `arr<num>`. Inner is nil
// when the argument was omitted, in which case it defaults to `any`.
type GenericType struct {
	Start token.Pos
	Name  string
	Inner TypeExpr
}

func (n *GenericType) Pos() token.Pos { return n.Start }
func (n *GenericType) typeNode()      {}

// FuncType is a function type `@<T,...>(A,...) => R`.
type FuncType struct {
	Start      token.Pos
	TypeParams []string
	Params     []TypeExpr
	Return     TypeExpr
}

func (n *FuncType) Pos() token.Pos { return n.Start }
func (n *FuncType) typeNode()      {}

// UnionType is `A | B | ...`.
type UnionType struct {
	Start   token.Pos
	Members []TypeExpr
}

func (n *UnionType) Pos() token.Pos { return n.Start }
func (n *UnionType) typeNode()      {}

package ast

import "github.com/aiscript-lang/aiscript-go/lang/token"

// Param is a function parameter: a name, optional type annotation, optional
// default expression and the `?` optional marker, which is accepted but
// behaves identically to an absent default.
type Param struct {
	Name     string
	Type     TypeExpr // may be nil
	Optional bool
	Default  Expr // may be nil
}

// FnSignature groups together a function's type parameters, value
// parameters and return type annotation.
type FnSignature struct {
	TypeParams []string
	Params     []Param
	Return     TypeExpr // may be nil
}

// NullLit, BoolLit, NumLit and StrLit are the scalar literal expressions.
type (
	NullLit struct{ Start token.Pos }
	BoolLit struct {
		Start token.Pos
		Value bool
	}
	NumLit struct {
		Start token.Pos
		Value float64
	}
	StrLit struct {
		Start token.Pos
		Value string
	}
)

func (n *NullLit) Pos() token.Pos { return n.Start }
func (n *NullLit) exprNode()      {}
func (n *BoolLit) Pos() token.Pos { return n.Start }
func (n *BoolLit) exprNode()      {}
func (n *NumLit) Pos() token.Pos  { return n.Start }
func (n *NumLit) exprNode()       {}
func (n *StrLit) Pos() token.Pos  { return n.Start }
func (n *StrLit) exprNode()       {}

// ArrLit is an array literal `[e1, e2, ...]`.
type ArrLit struct {
	Start token.Pos
	Elems []Expr
}

func (n *ArrLit) Pos() token.Pos { return n.Start }
func (n *ArrLit) exprNode()      {}

// ObjEntry is a single `key: value` pair of an object literal.
type ObjEntry struct {
	Key   string
	Value Expr
}

// ObjLit is an object literal `{ k1: v1, ... }`.
type ObjLit struct {
	Start token.Pos
	Elems []ObjEntry
}

func (n *ObjLit) Pos() token.Pos { return n.Start }
func (n *ObjLit) exprNode()      {}

// TemplatePiece is either a literal string chunk (Expr == nil) or an
// embedded expression (Str == "").
type TemplatePiece struct {
	Str  string
	Expr Expr
}

// TemplateExpr is a string template mixing literal text and embedded
// expressions, whose values are concatenated using their repr.
type TemplateExpr struct {
	Start  token.Pos
	Pieces []TemplatePiece
}

func (n *TemplateExpr) Pos() token.Pos { return n.Start }
func (n *TemplateExpr) exprNode()      {}

// IdentExpr is an identifier reference, possibly namespace-qualified
// (`N:x`), in which case Name is the full colon-joined spelling (e.g.
// "N:x").
type IdentExpr struct {
	Start token.Pos
	Name  string
}

func (n *IdentExpr) Pos() token.Pos { return n.Start }
func (n *IdentExpr) exprNode()      {}

// ExistsExpr is `exists x`: reports whether x resolves, without evaluating
// it.
type ExistsExpr struct {
	Start token.Pos
	Name  string
}

func (n *ExistsExpr) Pos() token.Pos { return n.Start }
func (n *ExistsExpr) exprNode()      {}

// UnaryExpr is a prefix unary operation: +x, -x or !x.
type UnaryExpr struct {
	Start token.Pos
	Op    token.Kind
	X     Expr
}

func (n *UnaryExpr) Pos() token.Pos { return n.Start }
func (n *UnaryExpr) exprNode()      {}

// BinaryExpr is an infix binary operation.
type BinaryExpr struct {
	Start       token.Pos
	Op          token.Kind
	Left, Right Expr
}

func (n *BinaryExpr) Pos() token.Pos { return n.Start }
func (n *BinaryExpr) exprNode()      {}

// CallExpr is a function call `fn(args...)`.
type CallExpr struct {
	Start token.Pos
	Fn    Expr
	Args  []Expr
}

func (n *CallExpr) Pos() token.Pos { return n.Start }
func (n *CallExpr) exprNode()      {}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Start  token.Pos
	Target Expr
	Index  Expr
}

func (n *IndexExpr) Pos() token.Pos { return n.Start }
func (n *IndexExpr) exprNode()      {}

// PropExpr is `target.name`.
type PropExpr struct {
	Start  token.Pos
	Target Expr
	Name   string
}

func (n *PropExpr) Pos() token.Pos { return n.Start }
func (n *PropExpr) exprNode()      {}

// FnExpr is a function literal `@(params) { body }` (or `@name(params) {
// body }` when parsed as sugar for a named definition).
type FnExpr struct {
	Start token.Pos
	Name  string // non-empty only for the named-definition sugar form
	Sig   FnSignature
	Body  *Block
	Attrs []Attribute
}

func (n *FnExpr) Pos() token.Pos { return n.Start }
func (n *FnExpr) exprNode()      {}

// IfBranch is one `if`/`elif` condition-and-block pair.
type IfBranch struct {
	Cond Expr
	Body *Block
}

// IfExpr is the `if cond {...} elif cond {...} else {...}` expression.
type IfExpr struct {
	Start    token.Pos
	Label    string
	Branches []IfBranch // first is the `if`, rest are `elif`
	Else     *Block     // nil if no else branch
}

func (n *IfExpr) Pos() token.Pos { return n.Start }
func (n *IfExpr) exprNode()      {}

// MatchArm is one `case q => a` arm of a match expression.
type MatchArm struct {
	Q Expr
	A Expr
}

// MatchExpr is `match about { case q => a, ..., default => d }`.
type MatchExpr struct {
	Start   token.Pos
	Label   string
	About   Expr
	Arms    []MatchArm
	Default Expr // nil if absent
}

func (n *MatchExpr) Pos() token.Pos { return n.Start }
func (n *MatchExpr) exprNode()      {}

// BlockExpr is `eval { ... }`, optionally labeled.
type BlockExpr struct {
	Start token.Pos
	Label string
	Body  *Block
}

func (n *BlockExpr) Pos() token.Pos { return n.Start }
func (n *BlockExpr) exprNode()      {}

package parser

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// parseType parses a type annotation: a simple name, a one-argument generic
// `name<T>`, a function type `@<T,...>(A,...) => R`, or a `|`-separated
// union of any of the above (see lang/ast/types.go).
func (p *Parser) parseType() ast.TypeExpr {
	first := p.parseTypeAtom()
	if !p.at(token.PIPE) {
		return first
	}
	union := &ast.UnionType{Start: first.Pos(), Members: []ast.TypeExpr{first}}
	for p.at(token.PIPE) {
		p.next()
		union.Members = append(union.Members, p.parseTypeAtom())
	}
	return union
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	start := p.tok.Pos

	if p.at(token.AT) {
		p.next()
		sig := &ast.FuncType{Start: start}
		if p.at(token.LT) {
			p.next()
			for !p.at(token.GT) {
				sig.TypeParams = append(sig.TypeParams, p.tok.Lit)
				p.expect(token.IDENT)
				if p.at(token.COMMA) {
					p.next()
				}
			}
			p.expect(token.GT)
		}
		p.expect(token.LPAREN)
		for !p.at(token.RPAREN) {
			sig.Params = append(sig.Params, p.parseType())
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
		if p.at(token.ARROW) {
			p.next()
			sig.Return = p.parseType()
		}
		return sig
	}

	var name string
	if p.at(token.NULL) {
		// `null` doubles as a type name but scans as a keyword.
		name = "null"
		p.next()
	} else {
		name = p.tok.Lit
		p.expect(token.IDENT)
	}
	if p.at(token.LT) {
		p.next()
		var inner ast.TypeExpr
		if !p.at(token.GT) {
			inner = p.parseType()
		}
		p.expect(token.GT)
		return &ast.GenericType{Start: start, Name: name, Inner: inner}
	}
	return &ast.SimpleType{Start: start, Name: name}
}

// parseFnSignature parses the `<T,...>(params) : ret` part of a function
// literal or named-def sugar, shared between `@(...)` and `@name(...)`.
func (p *Parser) parseFnSignature() ast.FnSignature {
	var sig ast.FnSignature
	if p.at(token.LT) {
		p.next()
		for !p.at(token.GT) {
			sig.TypeParams = append(sig.TypeParams, p.tok.Lit)
			p.expect(token.IDENT)
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.GT)
	}
	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) {
		var param ast.Param
		param.Name = p.tok.Lit
		p.expect(token.IDENT)
		if p.at(token.QUESTION) {
			param.Optional = true
			p.next()
		}
		if p.at(token.COLON) {
			p.next()
			param.Type = p.parseType()
		}
		if p.at(token.EQ) {
			p.next()
			param.Default = p.parseExpr()
		}
		sig.Params = append(sig.Params, param)
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	if p.at(token.COLON) {
		p.next()
		sig.Return = p.parseType()
	}
	return sig
}

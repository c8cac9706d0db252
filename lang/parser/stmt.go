package parser

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// parseAttrs parses a run of `#[name expr]` attribute annotations.
func (p *Parser) parseAttrs() []ast.Attribute {
	var attrs []ast.Attribute
	for p.at(token.HASH) {
		// an attribute is always `#[`; anything else starting with HASH (a
		// label, or the `###` meta form) is not an attribute run.
		save := p.sc.Save()
		savedTok := p.tok
		p.next()
		if !p.at(token.LBRACK) {
			p.tok = savedTok
			p.sc.Restore(save)
			break
		}
		namePos := p.tok.Pos
		p.next() // consume '['
		name := p.tok.Lit
		p.expect(token.IDENT)
		var val ast.Expr
		if !p.at(token.RBRACK) {
			val = p.parseExpr()
		}
		p.expect(token.RBRACK)
		attrs = append(attrs, ast.Attribute{NamePos: namePos, Name: name, Value: val})
	}
	return attrs
}

func (p *Parser) parseStmt() ast.Stmt {
	attrs := p.parseAttrs()

	savedTok, savedState := p.tok, p.sc.Save()
	label := p.parseLabel()
	if label != "" && !p.at(token.EACH) && !p.at(token.FOR) && !p.at(token.LOOP) {
		// a labeled if/match/eval is an expression: let parsePrimaryExpr
		// read the label again and attach it.
		p.tok = savedTok
		p.sc.Restore(savedState)
		label = ""
	}

	switch {
	case p.at(token.VAR) || p.at(token.LET):
		return p.parseDefStmt(attrs)

	case p.at(token.AT):
		return p.parseNamedFnDefStmt(attrs)

	case len(attrs) > 0:
		p.errorf(p.tok.Pos, "attributes may only precede a definition")
		return p.parseDefStmtFallback()

	case p.at(token.RETURN):
		start := p.tok.Pos
		p.next()
		var val ast.Expr
		if !p.at(token.SEMI) && !p.at(token.RBRACE) && !p.at(token.EOF) {
			val = p.parseExpr()
		}
		p.skipSemi()
		return &ast.ReturnStmt{Start: start, Value: val}

	case p.at(token.EACH):
		return p.parseEachStmt(label)

	case p.at(token.FOR):
		return p.parseForStmt(label)

	case p.at(token.LOOP):
		start := p.tok.Pos
		p.next()
		body := p.parseBlock()
		return &ast.LoopStmt{Start: start, Label: label, Body: body}

	case p.at(token.BREAK):
		start := p.tok.Pos
		p.next()
		lbl := p.parseBreakLabel()
		var val ast.Expr
		if !p.at(token.SEMI) && !p.at(token.RBRACE) && !p.at(token.EOF) {
			val = p.parseExpr()
		}
		p.skipSemi()
		return &ast.BreakStmt{Start: start, Label: lbl, Value: val}

	case p.at(token.CONTINUE):
		start := p.tok.Pos
		p.next()
		lbl := p.parseBreakLabel()
		p.skipSemi()
		return &ast.ContinueStmt{Start: start, Label: lbl}

	case p.atIllegal("<:"):
		start := p.tok.Pos
		p.next()
		val := p.parseExpr()
		p.skipSemi()
		return &ast.PrintStmt{Start: start, Value: val}

	default:
		return p.parseAssignOrExprStmt()
	}
}

// parseBreakLabel parses an optional `#name` label reference after break or
// continue.
func (p *Parser) parseBreakLabel() string {
	if !p.at(token.HASH) {
		return ""
	}
	p.next()
	name := p.tok.Lit
	p.expect(token.IDENT)
	return name
}

func (p *Parser) parseDefStmtFallback() ast.Stmt {
	// best-effort recovery: parse whatever follows as an expression statement.
	return &ast.ExprStmt{X: p.parseExpr()}
}

func (p *Parser) parseDefStmt(attrs []ast.Attribute) ast.Stmt {
	start := p.tok.Pos
	mutable := p.at(token.VAR)
	p.next() // consume var/let

	name := p.tok.Lit
	p.expect(token.IDENT)

	var typ ast.TypeExpr
	if p.at(token.COLON) {
		p.next()
		typ = p.parseType()
	}
	p.expect(token.EQ)
	val := p.parseExpr()
	p.skipSemi()
	return &ast.DefStmt{Start: start, Mutable: mutable, Name: name, Type: typ, Attrs: attrs, Value: val}
}

// parseNamedFnDefStmt parses `@name<T,...>(params) : ret { body }`, sugar
// for `let name = @<T,...>(params): ret { body }`.
func (p *Parser) parseNamedFnDefStmt(attrs []ast.Attribute) ast.Stmt {
	start := p.tok.Pos
	p.next() // consume '@'
	if !p.at(token.IDENT) {
		// anonymous `@(...) { ... }` in statement position: a plain
		// expression statement.
		sig := p.parseFnSignature()
		body := p.parseBlock()
		return &ast.ExprStmt{X: &ast.FnExpr{Start: start, Sig: sig, Body: body}}
	}
	name := p.tok.Lit
	p.expect(token.IDENT)
	sig := p.parseFnSignature()
	body := p.parseBlock()
	fn := &ast.FnExpr{Start: start, Name: name, Sig: sig, Body: body}
	return &ast.DefStmt{Start: start, Mutable: false, Name: name, Attrs: attrs, Value: fn}
}

func (p *Parser) parseEachStmt(label string) ast.Stmt {
	start := p.tok.Pos
	p.next() // consume 'each'
	p.expect(token.LET)
	name := p.tok.Lit
	p.expect(token.IDENT)
	p.expect(token.COMMA)
	items := p.parseExpr()
	body := p.parseBlock()
	return &ast.EachStmt{Start: start, Label: label, Var: name, Items: items, Body: body}
}

func (p *Parser) parseForStmt(label string) ast.Stmt {
	start := p.tok.Pos
	p.next() // consume 'for'
	if p.at(token.LET) {
		p.next()
		name := p.tok.Lit
		p.expect(token.IDENT)
		p.expect(token.EQ)
		from := p.parseExpr()
		p.expect(token.COMMA)
		to := p.parseExpr()
		body := p.parseBlock()
		return &ast.ForLetStmt{Start: start, Label: label, Var: name, From: from, To: to, Body: body}
	}
	p.expect(token.LPAREN)
	times := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.ForStmt{Start: start, Label: label, Times: times, Body: body}
}

// exprToPattern converts a previously parsed expression into an assignment
// pattern, as required by destructuring assignment.
func exprToPattern(e ast.Expr) ast.Pattern {
	switch e := e.(type) {
	case *ast.IdentExpr:
		return e
	case *ast.IndexExpr:
		return e
	case *ast.PropExpr:
		return e
	case *ast.ArrLit:
		pat := &ast.ArrayPattern{Start: e.Start}
		for _, el := range e.Elems {
			pat.Elems = append(pat.Elems, exprToPattern(el))
		}
		return pat
	case *ast.ObjLit:
		pat := &ast.ObjectPattern{Start: e.Start}
		for _, entry := range e.Elems {
			pat.Keys = append(pat.Keys, entry.Key)
			pat.Elems = append(pat.Elems, exprToPattern(entry.Value))
		}
		return pat
	default:
		return nil
	}
}

func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	start := p.tok.Pos
	e := p.parseExpr()

	switch {
	case p.at(token.EQ):
		p.next()
		val := p.parseExpr()
		p.skipSemi()
		pat := exprToPattern(e)
		if pat == nil {
			p.errorf(start, "invalid assignment target")
			pat = &ast.IdentExpr{Start: start, Name: "_"}
		}
		return &ast.AssignStmt{Start: start, Target: pat, Value: val}

	case p.at(token.PLUS_EQ) || p.at(token.MINUS_EQ):
		op := p.tok.Kind
		p.next()
		val := p.parseExpr()
		p.skipSemi()
		pat := exprToPattern(e)
		if pat == nil {
			p.errorf(start, "invalid assignment target")
			pat = &ast.IdentExpr{Start: start, Name: "_"}
		}
		return &ast.CompoundAssignStmt{Start: start, Op: op, Target: pat, Value: val}

	default:
		p.skipSemi()
		return &ast.ExprStmt{X: e}
	}
}

package parser

import (
	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// parseExpr is the entry point of the precedence-climbing expression parser.
// Precedence, loosest to tightest: or, and, equality, relational, additive,
// multiplicative, power (right-assoc), unary, postfix/primary.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOrExpr()
}

func (p *Parser) parseOrExpr() ast.Expr {
	left := p.parseAndExpr()
	for p.at(token.OR) {
		start := p.tok.Pos
		p.next()
		right := p.parseAndExpr()
		left = &ast.BinaryExpr{Start: start, Op: token.OR, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAndExpr() ast.Expr {
	left := p.parseEqExpr()
	for p.at(token.AND) {
		start := p.tok.Pos
		p.next()
		right := p.parseEqExpr()
		left = &ast.BinaryExpr{Start: start, Op: token.AND, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEqExpr() ast.Expr {
	left := p.parseRelExpr()
	for p.at(token.EQEQ) || p.at(token.NEQ) {
		op := p.tok.Kind
		start := p.tok.Pos
		p.next()
		right := p.parseRelExpr()
		left = &ast.BinaryExpr{Start: start, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelExpr() ast.Expr {
	left := p.parseAddExpr()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LE) || p.at(token.GE) {
		op := p.tok.Kind
		start := p.tok.Pos
		p.next()
		right := p.parseAddExpr()
		left = &ast.BinaryExpr{Start: start, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAddExpr() ast.Expr {
	left := p.parseMulExpr()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.tok.Kind
		start := p.tok.Pos
		p.next()
		right := p.parseMulExpr()
		left = &ast.BinaryExpr{Start: start, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMulExpr() ast.Expr {
	left := p.parsePowExpr()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.tok.Kind
		start := p.tok.Pos
		p.next()
		right := p.parsePowExpr()
		left = &ast.BinaryExpr{Start: start, Op: op, Left: left, Right: right}
	}
	return left
}

// parsePowExpr is right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2).
func (p *Parser) parsePowExpr() ast.Expr {
	left := p.parseUnaryExpr()
	if p.at(token.STARSTAR) {
		start := p.tok.Pos
		p.next()
		right := p.parsePowExpr()
		return &ast.BinaryExpr{Start: start, Op: token.STARSTAR, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.at(token.PLUS) || p.at(token.MINUS) || p.at(token.BANG) {
		op := p.tok.Kind
		start := p.tok.Pos
		p.next()
		x := p.parseUnaryExpr()
		return &ast.UnaryExpr{Start: start, Op: op, X: x}
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() ast.Expr {
	x := p.parsePrimaryExpr()
	for {
		switch {
		case p.at(token.LPAREN):
			start := p.tok.Pos
			p.next()
			var args []ast.Expr
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				args = append(args, p.parseExpr())
				if p.at(token.COMMA) {
					p.next()
				} else {
					break
				}
			}
			p.expect(token.RPAREN)
			x = &ast.CallExpr{Start: start, Fn: x, Args: args}

		case p.at(token.LBRACK):
			start := p.tok.Pos
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			x = &ast.IndexExpr{Start: start, Target: x, Index: idx}

		case p.at(token.DOT):
			start := p.tok.Pos
			p.next()
			name := p.tok.Lit
			p.expect(token.IDENT)
			x = &ast.PropExpr{Start: start, Target: x, Name: name}

		default:
			return x
		}
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	// a label may prefix if/match/eval when used as an expression, e.g.
	// `let v = #done: if cond { ... } else { ... }`.
	label := p.parseLabel()

	switch {
	case p.at(token.NULL):
		start := p.tok.Pos
		p.next()
		return &ast.NullLit{Start: start}

	case p.at(token.TRUE):
		start := p.tok.Pos
		p.next()
		return &ast.BoolLit{Start: start, Value: true}

	case p.at(token.FALSE):
		start := p.tok.Pos
		p.next()
		return &ast.BoolLit{Start: start, Value: false}

	case p.at(token.NUM):
		start, val := p.tok.Pos, p.tok.Num
		p.next()
		return &ast.NumLit{Start: start, Value: val}

	case p.at(token.STR):
		start, lit := p.tok.Pos, p.tok.Lit
		p.next()
		return &ast.StrLit{Start: start, Value: lit}

	case p.atIllegal("`"):
		return p.parseTemplate()

	case p.at(token.EXISTS):
		start := p.tok.Pos
		p.next()
		name := p.tok.Lit
		p.expect(token.IDENT)
		return &ast.ExistsExpr{Start: start, Name: name}

	case p.at(token.IDENT):
		start, name := p.tok.Pos, p.tok.Lit
		p.next()
		for p.at(token.COLON) {
			p.next()
			name += ":" + p.tok.Lit
			p.expect(token.IDENT)
		}
		return &ast.IdentExpr{Start: start, Name: name}

	case p.at(token.LPAREN):
		p.next()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e

	case p.at(token.LBRACK):
		return p.parseArrLit()

	case p.at(token.LBRACE):
		return p.parseObjLit()

	case p.at(token.AT):
		return p.parseFnExpr()

	case p.at(token.IF):
		return p.parseIfExpr(label)

	case p.at(token.MATCH):
		return p.parseMatchExpr(label)

	case p.at(token.EVAL):
		return p.parseEvalExpr(label)

	default:
		p.errorf(p.tok.Pos, "unexpected token %s in expression", p.tok.Kind)
		pos := p.tok.Pos
		p.next()
		return &ast.NullLit{Start: pos}
	}
}

// parseTemplate parses a backtick-delimited template literal. It is entered
// right after the scanner has consumed the opening backtick (which Scan
// reports as an ILLEGAL "`" token, since template lexing is driven by the
// parser rather than the regular token stream) and drives the scanner's
// template-mode methods directly until the closing backtick.
func (p *Parser) parseTemplate() ast.Expr {
	start := p.tok.Pos
	tmpl := &ast.TemplateExpr{Start: start}
	for {
		text, hasInterp := p.sc.ScanTemplateText()
		tmpl.Pieces = append(tmpl.Pieces, ast.TemplatePiece{Str: text})
		if !hasInterp {
			break
		}
		p.next() // prime the normal token stream for the embedded expression
		e := p.parseExpr()
		if p.tok.Kind != token.RBRACE {
			p.errorf(p.tok.Pos, "expected '}' to close template interpolation, found %s", p.tok.Kind)
		}
		tmpl.Pieces = append(tmpl.Pieces, ast.TemplatePiece{Expr: e})
	}
	p.next() // resume the normal token stream after the closing backtick
	return tmpl
}

func (p *Parser) parseIfExpr(label string) ast.Expr {
	start := p.tok.Pos
	p.next() // consume 'if'
	cond := p.parseExpr()
	body := p.parseBlock()
	ie := &ast.IfExpr{Start: start, Label: label, Branches: []ast.IfBranch{{Cond: cond, Body: body}}}
	for p.at(token.ELIF) {
		p.next()
		c := p.parseExpr()
		b := p.parseBlock()
		ie.Branches = append(ie.Branches, ast.IfBranch{Cond: c, Body: b})
	}
	if p.at(token.ELSE) {
		p.next()
		ie.Else = p.parseBlock()
	}
	return ie
}

func (p *Parser) parseMatchExpr(label string) ast.Expr {
	start := p.tok.Pos
	p.next() // consume 'match'
	about := p.parseExpr()
	p.expect(token.LBRACE)
	me := &ast.MatchExpr{Start: start, Label: label, About: about}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.DEFAULT) {
			p.next()
			p.expect(token.ARROW)
			me.Default = p.parseExpr()
		} else {
			p.expect(token.CASE)
			q := p.parseExpr()
			p.expect(token.ARROW)
			a := p.parseExpr()
			me.Arms = append(me.Arms, ast.MatchArm{Q: q, A: a})
		}
		if p.at(token.COMMA) {
			p.next()
		}
		p.skipSemi()
	}
	p.expect(token.RBRACE)
	return me
}

func (p *Parser) parseEvalExpr(label string) ast.Expr {
	start := p.tok.Pos
	p.next() // consume 'eval'
	body := p.parseBlock()
	return &ast.BlockExpr{Start: start, Label: label, Body: body}
}

func (p *Parser) parseFnExpr() ast.Expr {
	start := p.tok.Pos
	p.next() // consume '@'
	sig := p.parseFnSignature()
	body := p.parseBlock()
	return &ast.FnExpr{Start: start, Sig: sig, Body: body}
}

func (p *Parser) parseArrLit() ast.Expr {
	start := p.expect(token.LBRACK)
	lit := &ast.ArrLit{Start: start}
	for !p.at(token.RBRACK) && !p.at(token.EOF) {
		lit.Elems = append(lit.Elems, p.parseExpr())
		if p.at(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return lit
}

func (p *Parser) parseObjLit() ast.Expr {
	start := p.expect(token.LBRACE)
	lit := &ast.ObjLit{Start: start}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var key string
		if p.at(token.STR) {
			key = p.tok.Lit
			p.next()
		} else {
			key = p.tok.Lit
			p.expect(token.IDENT)
		}
		p.expect(token.COLON)
		val := p.parseExpr()
		lit.Elems = append(lit.Elems, ast.ObjEntry{Key: key, Value: val})
		if p.at(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return lit
}

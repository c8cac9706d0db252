// Package parser implements a recursive-descent, precedence-climbing parser
// that turns source text into the AST defined by lang/ast.
package parser

import (
	"fmt"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/scanner"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// Error is a parse error with its source position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// Parser turns tokens from a scanner.Scanner into an *ast.Program.
type Parser struct {
	sc   *scanner.Scanner
	tok  scanner.Token
	errs []error
}

// Parse scans and parses src, returning the resulting program. If errors
// were encountered, the returned error is non-nil and the program may be
// partial or nil.
func Parse(src []byte) (*ast.Program, error) {
	p := &Parser{sc: scanner.New(src)}
	p.next()
	prog := p.parseProgram()
	p.errs = append(p.errs, toErrors(p.sc.Errors())...)
	if len(p.errs) > 0 {
		return prog, &ErrorList{Errs: p.errs}
	}
	return prog, nil
}

func toErrors(errs []error) []error { return errs }

// ErrorList aggregates every parse/scan error produced while parsing a
// chunk.
type ErrorList struct{ Errs []error }

func (el *ErrorList) Error() string {
	if len(el.Errs) == 0 {
		return "no errors"
	}
	s := el.Errs[0].Error()
	if len(el.Errs) > 1 {
		s += fmt.Sprintf(" (and %d more errors)", len(el.Errs)-1)
	}
	return s
}

func (p *Parser) next() {
	p.tok = p.sc.Scan()
}

func (p *Parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs = append(p.errs, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(k token.Kind) token.Pos {
	pos := p.tok.Pos
	if p.tok.Kind != k {
		p.errorf(pos, "expected %s, found %s", k, p.tok.Kind)
		return pos
	}
	p.next()
	return pos
}

func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

func (p *Parser) atIllegal(lit string) bool {
	return p.tok.Kind == token.ILLEGAL && p.tok.Lit == lit
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.tok.Kind != token.EOF {
		item := p.parseTopLevel()
		if item != nil {
			prog.Items = append(prog.Items, item)
		} else {
			// avoid infinite loop on unrecoverable token
			p.next()
		}
	}
	return prog
}

func (p *Parser) parseTopLevel() ast.TopLevel {
	switch {
	case p.at(token.COLONCOLON):
		return p.parseNamespaceDecl()
	case p.at(token.HASH):
		// could be `### name expr` (meta) or `#[attr]` prefixing a DefStmt,
		// handled uniformly by parseStmt via attribute collection, except the
		// triple-hash meta form which is top-level only.
		if p.isMetaDecl() {
			return p.parseMetaDecl()
		}
		fallthrough
	default:
		s := p.parseStmt()
		if s == nil {
			return nil
		}
		return &ast.StmtTopLevel{Stmt: s}
	}
}

// isMetaDecl peeks past the current HASH token to tell a `### name expr`
// meta declaration apart from an attribute (`#[`) or a label (`#name:`)
// prefixing an ordinary statement, without permanently consuming tokens.
func (p *Parser) isMetaDecl() bool {
	savedTok := p.tok
	savedState := p.sc.Save()

	p.next() // consume the first HASH
	isMeta := p.tok.Kind == token.HASH
	if isMeta {
		p.next()
		isMeta = p.tok.Kind == token.HASH
	}

	p.tok = savedTok
	p.sc.Restore(savedState)
	return isMeta
}

func (p *Parser) parseMetaDecl() ast.TopLevel {
	start := p.expect(token.HASH)
	p.expect(token.HASH)
	p.expect(token.HASH)
	namePos := p.tok.Pos
	name := p.tok.Lit
	p.expect(token.IDENT)
	_ = namePos
	val := p.parseExpr()
	p.skipSemi()
	return &ast.MetaDecl{Start: start, Name: name, Value: val}
}

func (p *Parser) parseNamespaceDecl() *ast.NamespaceDecl {
	start := p.expect(token.COLONCOLON)
	name := p.tok.Lit
	p.expect(token.IDENT)
	p.expect(token.LBRACE)
	var members []ast.Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.COLONCOLON) {
			members = append(members, p.parseNamespaceDecl())
			continue
		}
		members = append(members, p.parseStmt())
	}
	p.expect(token.RBRACE)
	return &ast.NamespaceDecl{Start: start, Name: name, Members: members}
}

func (p *Parser) skipSemi() {
	for p.at(token.SEMI) {
		p.next()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(token.LBRACE)
	b := &ast.Block{Start: start}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		s := p.parseStmt()
		if s == nil {
			p.next()
			continue
		}
		b.Stmts = append(b.Stmts, s)
	}
	b.End = p.tok.Pos
	p.expect(token.RBRACE)
	return b
}

// parseLabel parses an optional `#name:` label prefix, returning "" if no
// label is present. It distinguishes the label form from the attribute form
// (`#[`) by lookahead on the token after HASH.
func (p *Parser) parseLabel() string {
	if !p.at(token.HASH) {
		return ""
	}
	// We need one token of lookahead past HASH; use a tiny sub-parse: peek by
	// speculatively advancing, relying on the fact that labels are only valid
	// immediately before a loop/if/match/block/each/for/loop keyword, never
	// before LBRACK (which always means an attribute).
	savedTok := p.tok
	savedState := p.sc.Save()
	p.next() // consume HASH
	if p.tok.Kind != token.IDENT {
		p.tok = savedTok
		p.sc.Restore(savedState)
		return ""
	}
	name := p.tok.Lit
	p.next()
	if p.tok.Kind != token.COLON {
		p.tok = savedTok
		p.sc.Restore(savedState)
		return ""
	}
	p.next() // consume COLON
	return name
}

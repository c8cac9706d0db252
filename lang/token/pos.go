// Package token defines the lexical token kinds and source positions shared
// by the scanner, parser, AST, validator and evaluator.
package token

import "fmt"

// Pos is a 1-based line/column source position.
type Pos struct {
	Line, Col int
}

// Valid reports whether p designates a real source position.
func (p Pos) Valid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

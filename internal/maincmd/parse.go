package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/aiscript-lang/aiscript-go/lang/ast"
	"github.com/aiscript-lang/aiscript-go/lang/parser"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			firstErr = printError(stdio, err)
			continue
		}
		prog, err := parser.Parse(src)
		if err != nil {
			firstErr = printError(stdio, fmt.Errorf("%s: %w", file, err))
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%s: %d top-level item(s)\n", file, len(prog.Items))
		for i, item := range prog.Items {
			fmt.Fprintf(stdio.Stdout, "  [%d] %s @ %s\n", i, dumpTopLevel(item), item.Pos())
		}
	}
	return firstErr
}

// dumpTopLevel renders a one-line label for a top-level item, enough for a
// human skimming `aiscript parse` output to recognize the program's shape
// without a full tree printer.
func dumpTopLevel(item ast.TopLevel) string {
	switch item := item.(type) {
	case *ast.StmtTopLevel:
		return fmt.Sprintf("%T", item.Stmt)
	case *ast.NamespaceDecl:
		return fmt.Sprintf("namespace %s (%d member(s))", item.Name, len(item.Members))
	case *ast.MetaDecl:
		return fmt.Sprintf("meta %s", item.Name)
	default:
		return fmt.Sprintf("%T", item)
	}
}

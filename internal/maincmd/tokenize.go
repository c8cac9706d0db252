package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/aiscript-lang/aiscript-go/lang/scanner"
	"github.com/aiscript-lang/aiscript-go/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			firstErr = printError(stdio, err)
			continue
		}
		sc := scanner.New(src)
		for {
			tok := sc.Scan()
			fmt.Fprintf(stdio.Stdout, "%s: %s", tok.Pos, tok.Kind)
			if tok.Lit != "" {
				fmt.Fprintf(stdio.Stdout, " %q", tok.Lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok.Kind == token.EOF {
				break
			}
		}
		for _, serr := range sc.Errors() {
			firstErr = printError(stdio, serr)
		}
	}
	return firstErr
}

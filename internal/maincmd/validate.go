package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/aiscript-lang/aiscript-go/lang/parser"
	"github.com/aiscript-lang/aiscript-go/lang/validator"
)

func (c *Cmd) validateCmd(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ValidateFiles(ctx, stdio, args...)
}

func ValidateFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
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
		errs := validator.Validate(prog)
		if len(errs) == 0 {
			fmt.Fprintf(stdio.Stdout, "%s: ok\n", file)
			continue
		}
		for _, verr := range errs {
			firstErr = printError(stdio, fmt.Errorf("%s: %w", file, verr))
		}
	}
	return firstErr
}

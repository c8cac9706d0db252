package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"

	"github.com/aiscript-lang/aiscript-go/lang/interp"
	"github.com/aiscript-lang/aiscript-go/lang/parser"
	"github.com/aiscript-lang/aiscript-go/lang/stdlib"
	"github.com/aiscript-lang/aiscript-go/lang/validator"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

// runEnv holds the environment overrides honored by the run command, for
// batch/CI invocations where passing flags is inconvenient.
type runEnv struct {
	MaxStep int `env:"AISCRIPT_MAX_STEP"`
}

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	maxStep := c.MaxStep
	var envCfg runEnv
	if err := env.Parse(&envCfg); err == nil && maxStep == 0 {
		maxStep = envCfg.MaxStep
	}
	return RunFiles(ctx, stdio, maxStep, args...)
}

// RunFiles parses, validates and executes each file in order, printing every
// `<:` value and the final result of each program on stdio.Stdout and any
// failure on stdio.Stderr. The first error encountered is returned after all
// files have been attempted.
func RunFiles(ctx context.Context, stdio mainer.Stdio, maxStep int, files ...string) error {
	stdlib.Stdout = stdio.Stdout

	var firstErr error
	setErr := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			setErr(printError(stdio, err))
			continue
		}
		prog, err := parser.Parse(src)
		if err != nil {
			setErr(printError(stdio, fmt.Errorf("%s: %w", file, err)))
			continue
		}
		if errs := validator.Validate(prog); len(errs) > 0 {
			for _, verr := range errs {
				setErr(printError(stdio, fmt.Errorf("%s: %w", file, verr)))
			}
			continue
		}

		it, err := interp.NewInterpreter(ctx, interp.Config{
			Out: func(v value.Value) {
				fmt.Fprintln(stdio.Stdout, value.Display(v))
			},
			MaxStep: maxStep,
		})
		if err != nil {
			setErr(printError(stdio, err))
			continue
		}
		last, _, err := it.Exec(prog)
		if err != nil {
			setErr(printError(stdio, fmt.Errorf("%s: %w", file, err)))
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%s: %s\n", file, value.Display(last))
	}
	return firstErr
}

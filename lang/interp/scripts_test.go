package interp_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-lang/aiscript-go/internal/filetest"
	"github.com/aiscript-lang/aiscript-go/lang/interp"
	"github.com/aiscript-lang/aiscript-go/lang/parser"
	"github.com/aiscript-lang/aiscript-go/lang/validator"
	"github.com/aiscript-lang/aiscript-go/lang/value"
)

var testUpdateScriptsTests = flag.Bool("test.update-scripts-tests", false, "if set, rewrite the golden files of the scripts tests")

// TestScripts runs every testdata/scripts/*.ais program end to end and compares the
// sequence of `<:` lines plus the final value against the .want golden file.
func TestScripts(t *testing.T) {
	dir := filepath.Join("testdata", "scripts")
	files := filetest.SourceFiles(t, dir, ".ais")
	require.NotEmpty(t, files)

	for _, fi := range files {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			require.NoError(t, err)

			prog, err := parser.Parse(src)
			require.NoError(t, err)
			require.Empty(t, validator.Validate(prog))

			var out strings.Builder
			it, err := interp.NewInterpreter(context.Background(), interp.Config{
				Out: func(v value.Value) { fmt.Fprintln(&out, value.Display(v)) },
			})
			require.NoError(t, err)

			last, ok, err := it.Exec(prog)
			require.NoError(t, err)
			require.True(t, ok)
			fmt.Fprintf(&out, "=> %s\n", value.Display(last))

			filetest.DiffOutput(t, fi, out.String(), dir, testUpdateScriptsTests)
		})
	}
}

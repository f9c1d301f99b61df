package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ztrue/tracerr"

	"github.com/tinyscript-lang/tinyscript/internal/ast"
	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/frontend"
)

// runREPL reads declarations interactively. Each submitted line is
// appended to the accumulated program and the whole source is re-run
// through the pipeline, so earlier consts stay visible. Lines that
// produce errors are reported and rolled back.
func runREPL() error {
	rl, err := readline.New(">>> ")
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer rl.Close()

	var history strings.Builder
	printed := 0

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println(err)
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return tracerr.Wrap(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		candidate := history.String() + line + "\n"
		prog, diags := frontend.Check(candidate, frontend.WithFilename("<stdin>"))
		if diag.HasErrors(diags) {
			f := diag.NewFormatter(os.Stderr, candidate)
			f.FormatAll(diags)
			continue
		}

		history.WriteString(line + "\n")
		printed = printDecls(prog, printed)
	}
}

// printDecls prints `name: Type` for each top-level declaration past
// the already-reported prefix and returns the new high-water mark.
func printDecls(prog *ast.Program, from int) int {
	if prog == nil {
		return from
	}
	for _, stmt := range prog.Stmts[from:] {
		if decl, ok := stmt.(*ast.ConstDecl); ok && decl.Inferred != nil {
			fmt.Printf("%s: %s\n", decl.Name.Name, decl.Inferred.String())
		}
	}
	return len(prog.Stmts)
}

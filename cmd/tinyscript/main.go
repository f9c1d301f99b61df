package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/tinyscript-lang/tinyscript/internal/diag"
	"github.com/tinyscript-lang/tinyscript/internal/frontend"
)

func readSource(c *cli.Context) (string, string, error) {
	file := c.Args().First()
	if file == "" {
		return "", "", cli.Exit("no input file provided", 1)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		tracerr.PrintSourceColor(tracerr.Wrap(err))
		os.Exit(1)
	}

	return file, string(data), nil
}

func main() {
	app := &cli.App{
		Name:  "tinyscript",
		Usage: "tinyscript front end",
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if exitErr, ok := err.(cli.ExitCoder); ok {
				if err.Error() != "" {
					fmt.Fprintln(os.Stderr, err)
				}
				os.Exit(exitErr.ExitCode())
			}
			log.Fatalf("error with tinyscript: %s", err)
		},
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "analyze a file and report diagnostics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "text",
						Usage: "diagnostic output format: text or yaml",
					},
				},
				Action: func(c *cli.Context) error {
					file, src, err := readSource(c)
					if err != nil {
						return err
					}

					_, diags := frontend.Check(src, frontend.WithFilename(file))

					switch c.String("format") {
					case "yaml":
						out, err := yaml.Marshal(diags)
						if err != nil {
							return tracerr.Wrap(err)
						}
						os.Stdout.Write(out)
					default:
						f := diag.NewFormatter(os.Stderr, src)
						f.FormatAll(diags)
					}

					if diag.HasErrors(diags) {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:  "ast",
				Usage: "dump the typed syntax tree of a file",
				Action: func(c *cli.Context) error {
					file, src, err := readSource(c)
					if err != nil {
						return err
					}

					prog, diags := frontend.Check(src, frontend.WithFilename(file))
					if diag.HasErrors(diags) {
						f := diag.NewFormatter(os.Stderr, src)
						f.FormatAll(diags)
						return cli.Exit("", 1)
					}

					repr.Println(prog)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "interactive session: declarations accumulate, types print",
				Action: func(c *cli.Context) error {
					return runREPL()
				},
			},
		},
	}
	app.Run(os.Args)
}

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/xerian-dev/xerian-structurizr/analysis"
	"github.com/xerian-dev/xerian-structurizr/langdef/structurizr"
	"github.com/xerian-dev/xerian-structurizr/lsp"
	"github.com/xerian-dev/xerian-structurizr/util"
)

var errFindings = cli.Exit("", 1)

func lint(ctx *cli.Context) error {
	lang := structurizr.BuiltinLanguage()

	targets := ctx.Args().Slice()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	sawError := false
	for _, target := range targets {
		err := walkDslFiles(target, func(path string, d fs.DirEntry, err error) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file %s while linting: %w", path, err)
			}

			diags := analysis.ComputeDiagnostics(ctx.Context, lang, string(data))
			for _, out := range diags {
				fmt.Printf("%d:%d - %d:%d\t%s\t%s (%s)\n",
					out.Range.Start.Line, out.Range.Start.Character,
					out.Range.End.Line, out.Range.End.Character,
					path,
					out.Message, out.Source,
				)
				if out.Severity == lsp.SeverityError {
					sawError = true
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if sawError {
		return errFindings
	}
	return nil
}

func parse(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("i need a file to parse")
	}

	path := ctx.Args().Get(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc := analysis.Parse(structurizr.BuiltinLanguage(), string(data))

	fmt.Printf("workspace %q\n", doc.Name)
	for _, el := range doc.Elements {
		fmt.Printf("%d\telement\t%s\t%s %q", el.Line+1, el.Type, el.Identifier, el.Name)
		if el.Technology != "" {
			fmt.Printf(" [%s]", el.Technology)
		}
		fmt.Printf("\n")
	}
	for _, rel := range doc.Relationships {
		fmt.Printf("%d\trelationship\t%s -> %s %q\n", rel.Line+1, rel.Source, rel.Target, rel.Description)
	}
	for _, v := range doc.Views {
		fmt.Printf("%d\tview\t%s", v.Line+1, v.Type)
		if v.Scope != "" {
			fmt.Printf(" of %s", v.Scope)
		}
		if v.Key != "" {
			fmt.Printf(" %q", v.Key)
		}
		if v.AutoLayout != "" {
			fmt.Printf(" autoLayout=%s", v.AutoLayout)
		}
		fmt.Printf("\n")
	}
	return nil
}

func blockContext(ctx *cli.Context) error {
	if ctx.Args().Len() < 2 {
		return fmt.Errorf("i need a file and a 1-indexed line number")
	}

	path := ctx.Args().Get(0)
	line, err := strconv.Atoi(ctx.Args().Get(1))
	if err != nil || line < 1 {
		return fmt.Errorf("i didn't understand your line number: %q", ctx.Args().Get(1))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	fmt.Println(analysis.ContextAt(structurizr.BuiltinLanguage(), string(data), line-1))
	return nil
}

func walkDslFiles(from string, walk fs.WalkDirFunc) error {
	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return walk(from, nil, nil)
	}

	return filepath.WalkDir(from, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".dsl") {
			return nil
		}
		return walk(path, d, err)
	})
}

func main() {
	godotenv.Load()
	util.SetupLogging(os.Getenv("STRUCTURIZR_LSP_LOG"))

	app := cli.App{
		Name:  "structurizr-lint",
		Usage: "lint and inspect Structurizr DSL workspaces",
		ExitErrHandler: func(ctx *cli.Context, err error) {
			if err == nil {
				return
			}
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			if code, ok := err.(cli.ExitCoder); ok {
				os.Exit(code.ExitCode())
			}
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "lint",
				Usage:     "report diagnostics for .dsl files",
				ArgsUsage: "[files or directories]",
				Action:    lint,
			},
			{
				Name:      "parse",
				Usage:     "dump the structure extracted from one file",
				ArgsUsage: "<file>",
				Action:    parse,
			},
			{
				Name:      "context",
				Usage:     "print the block context at a line",
				ArgsUsage: "<file> <line>",
				Action:    blockContext,
			},
		},
	}
	app.Run(os.Args)
}

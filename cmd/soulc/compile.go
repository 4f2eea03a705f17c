package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hassandahiru/soulc/internal/ast"
	"github.com/hassandahiru/soulc/internal/config"
	"github.com/hassandahiru/soulc/internal/diag"
	"github.com/hassandahiru/soulc/internal/ir"
	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/parser"
	"github.com/hassandahiru/soulc/internal/pipeline"
)

func newCompileCmd() *cobra.Command {
	var (
		printAST      bool
		printIR       bool
		maxErrorDepth int
		configPath    string
	)

	cmd := &cobra.Command{
		Use:   "compile <source-file>",
		Short: "Compile a soul source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.OutOrStdout(), args[0], compileOptions{
				printAST:      printAST,
				printIR:       printIR,
				maxErrorDepth: maxErrorDepth,
				configPath:    configPath,
			})
		},
	}

	cmd.Flags().BoolVar(&printAST, "print-ast", false, "print the parsed AST before compiling")
	cmd.Flags().BoolVar(&printIR, "print-ir", false, "print the generated IR on success")
	cmd.Flags().IntVar(&maxErrorDepth, "max-error-depth", -1, "override soulc.yaml's error_collector.max_depth (-1: use config)")
	cmd.Flags().StringVar(&configPath, "config", "soulc.yaml", "path to the optional soulc.yaml config file")

	return cmd
}

type compileOptions struct {
	printAST      bool
	printIR       bool
	maxErrorDepth int
	configPath    string
}

func runCompile(out io.Writer, path string, opts compileOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("soulc: %w", err)
	}
	if opts.maxErrorDepth >= 0 {
		depth := opts.maxErrorDepth
		cfg.ErrorCollector.MaxDepth = &depth
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("soulc: read %s: %w", path, err)
	}

	moduleName := strings.TrimSuffix(filenameOnly(path), ".soul")
	l := lexer.New(string(source), path)
	p := parser.New(l)
	module := p.ParseModule(moduleName)

	if opts.printAST {
		dump, err := ast.Stringify(module, cfg.Stringifier.PrintTypes)
		if err != nil {
			return fmt.Errorf("soulc: stringify AST: %w", err)
		}
		fmt.Fprintln(out, "=== AST ===")
		fmt.Fprintln(out, dump)
	}

	maxErrorDepth := math.MaxInt
	if cfg.ErrorCollector.MaxDepth != nil {
		maxErrorDepth = *cfg.ErrorCollector.MaxDepth
	}

	result, err := pipeline.CompileWithMaxErrorDepth(module, maxErrorDepth)
	if err != nil {
		return fmt.Errorf("soulc: %w", err)
	}

	if len(result.Diagnostics) > 0 {
		printDiagnostics(out, result.Diagnostics)
		return fmt.Errorf("soulc: compilation failed with %d diagnostic(s)", len(result.Diagnostics))
	}

	if opts.printIR {
		fmt.Fprintln(out, "=== IR ===")
		fmt.Fprint(out, ir.Print(result.Module))
	}

	return nil
}

func filenameOnly(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// printDiagnostics renders one line per diag.Diagnostic, colored by
// severity: red for Error, yellow for Warning, cyan for Hint.
func printDiagnostics(out io.Writer, diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		line := d.String()
		switch d.Severity {
		case diag.Error:
			fmt.Fprintln(out, color.RedString(line))
		case diag.Warning:
			fmt.Fprintln(out, color.YellowString(line))
		case diag.Hint:
			fmt.Fprintln(out, color.CyanString(line))
		default:
			fmt.Fprintln(out, line)
		}
	}
}


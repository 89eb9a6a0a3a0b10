package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nkl/internal/ast"
	"nkl/internal/diagfmt"
	"nkl/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.nkl",
	Short: "Parse an nkl source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	switch format {
	case "pretty":
		if err := printDiagnostics(g, result.Bag, result.FileSet); err != nil {
			return err
		}
		if !result.Failed && result.AST != nil {
			if err := ast.Fprint(os.Stdout, result.Builder, result.AST); err != nil {
				return err
			}
		}
	case "json":
		// в json печатается только диагностика: дерево смотрят через ir
		opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Failed || result.Bag.HasErrors() {
		return errDiagnostics{errors: countErrors(result.Bag)}
	}
	return nil
}

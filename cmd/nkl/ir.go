package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nkl/internal/bound"
	"nkl/internal/driver"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] file.nkl",
	Short: "Bind an nkl source file and dump the bound graph",
	Long: `ir parses and binds a file, then prints the bound node graph rooted at the
file block. Use --entry to also require a valid main procedure.`,
	Args: cobra.ExactArgs(1),
	RunE: runIR,
}

func init() {
	irCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	irCmd.Flags().Bool("entry", false, "check the main entry point")
}

func runIR(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	entry, err := cmd.Flags().GetBool("entry")
	if err != nil {
		return fmt.Errorf("failed to get entry flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Compile(cmd.Context(), args[0], driver.CompileOptions{
		MaxDiagnostics: g.maxDiagnostics,
		SkipEntry:      !entry,
	})
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if err := printDiagnostics(g, result.Bag, result.FileSet); err != nil {
		return err
	}
	printTimings(os.Stderr, g, "ir", result.Timing)

	if !result.Root.IsValid() {
		return errDiagnostics{errors: countErrors(result.Bag)}
	}
	dump := result.Universe.Dumper().Dump(result.Root)
	if err := writeDump(os.Stdout, format, dump); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics{errors: countErrors(result.Bag)}
	}
	return nil
}

func writeDump(w io.Writer, format string, dump *bound.DumpNode) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	default:
		return bound.Fprint(w, dump)
	}
}

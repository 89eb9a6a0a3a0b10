package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nkl/internal/diag"
	"nkl/internal/diagfmt"
	"nkl/internal/observ"
	"nkl/internal/project"
	"nkl/internal/source"
)

// globalFlags holds the persistent flags every command reads.
type globalFlags struct {
	color          switchMode
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	flags := cmd.Root().PersistentFlags()

	colorStr, err := flags.GetString("color")
	if err != nil {
		return globalFlags{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readSwitch("color", colorStr)
	if err != nil {
		return globalFlags{}, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return globalFlags{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return globalFlags{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return globalFlags{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return globalFlags{
		color:          mode,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
	}, nil
}

// applyManifest берёт max_diagnostics из nkl.toml, если флаг не задан явно.
func (g *globalFlags) applyManifest(cmd *cobra.Command, m *project.Manifest) {
	if m == nil || m.Config.Build.MaxDiagnostics <= 0 {
		return
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		return
	}
	g.maxDiagnostics = m.Config.Build.MaxDiagnostics
}

// printDiagnostics пишет диагностику в stderr в человекочитаемом виде.
func printDiagnostics(g globalFlags, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	opts := diagfmt.PrettyOpts{
		Color:     g.color.enabled(os.Stderr),
		Context:   2,
		ShowNotes: true,
	}
	return diagfmt.Pretty(os.Stderr, bag, fs, opts)
}

func printTimings(out io.Writer, g globalFlags, label string, report observ.Report) {
	if !g.timings || out == nil {
		return
	}
	c := color.New(color.Faint)
	if g.color.enabled(os.Stderr) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(out, "%s %.1f ms\n", label, report.TotalMS)
	for _, ph := range report.Phases {
		line := fmt.Sprintf("  %-8s %.1f ms", ph.Name, ph.DurationMS)
		if ph.Note != "" {
			line += " (" + ph.Note + ")"
		}
		c.Fprintln(out, line)
	}
}

// errDiagnostics сообщает cobra о неуспехе, когда диагностика уже напечатана.
type errDiagnostics struct {
	errors int
}

func (e errDiagnostics) Error() string {
	if e.errors == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", e.errors)
}

func countErrors(bag *diag.Bag) int {
	if bag == nil {
		return 0
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

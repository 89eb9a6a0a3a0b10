package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nkl/internal/diagfmt"
	"nkl/internal/driver"
	"nkl/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.nkl|dir]...",
	Short: "Bind nkl programs and report diagnostics",
	Long: `check compiles every given file, or every .nkl file under the given
directories, as a separate program. Without arguments the [build].main
target of the nearest nkl.toml is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("watch", false, "re-check when sources change")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop cached results before checking")
}

// checkRun собирает всё, что нужно для одного прохода проверки.
type checkRun struct {
	g      globalFlags
	format string
	ui     switchMode
	roots  []string
	opts   driver.CheckOptions
}

// openCheckCache открывает кэш результатов. С drop кэш сначала очищается,
// даже если noCache запрещает им пользоваться.
func openCheckCache(app string, noCache, drop bool) (*driver.DiskCache, error) {
	if noCache && !drop {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache(app)
	if err != nil {
		return nil, err
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	if noCache {
		return nil, nil
	}
	return cache, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	ui, err := readSwitch("ui", uiStr)
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	roots, err := resolveCheckRoots(cmd, &g, args)
	if err != nil {
		return err
	}

	run := &checkRun{
		g:      g,
		format: format,
		ui:     ui,
		roots:  roots,
		opts: driver.CheckOptions{
			Jobs:           jobs,
			MaxDiagnostics: g.maxDiagnostics,
		},
	}
	cache, cerr := openCheckCache("nkl", noCache, clearCache)
	if cerr != nil && !g.quiet {
		fmt.Fprintf(os.Stderr, "warning: result cache disabled: %v\n", cerr)
	}
	if cache != nil {
		run.opts.Cache = cache
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !watch {
		return run.once(ctx, os.Stdout)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	// в режиме наблюдения ошибки проверки не завершают процесс
	if err := run.once(ctx, os.Stdout); err != nil && !errors.As(err, new(errDiagnostics)) {
		return err
	}
	watcher, err := driver.NewWatcher(roots)
	if err != nil {
		return err
	}
	defer watcher.Close()
	if !g.quiet {
		fmt.Fprintln(os.Stderr, "watching for changes, press Ctrl+C to stop")
	}
	return watcher.Run(ctx, 150*time.Millisecond, func(changed []string) {
		if !g.quiet {
			fmt.Fprintf(os.Stderr, "\n%d file(s) changed, re-checking\n", len(changed))
		}
		if err := run.once(ctx, os.Stdout); err != nil && !errors.As(err, new(errDiagnostics)) {
			fmt.Fprintf(os.Stderr, "check: %v\n", err)
		}
	})
}

// resolveCheckRoots возвращает аргументы как есть или цель из nkl.toml.
func resolveCheckRoots(cmd *cobra.Command, g *globalFlags, args []string) ([]string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, found, err := project.Load(wd)
	if err != nil {
		return nil, err
	}
	if found {
		if err := manifest.CheckCompiler(); err != nil {
			return nil, err
		}
		g.applyManifest(cmd, manifest)
	}
	if len(args) > 0 {
		return args, nil
	}
	if !found {
		return nil, fmt.Errorf("no %s found in %s or its parents; pass files or directories", project.ManifestName, wd)
	}
	target, _, err := manifest.Target()
	if err != nil {
		return nil, err
	}
	return []string{target}, nil
}

// expandRoots раскрывает каталоги в отсортированные списки .nkl файлов.
func expandRoots(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		st, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			files = append(files, root)
			continue
		}
		listed, err := driver.ListSourceFiles(root)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}
	return files, nil
}

func (r *checkRun) once(ctx context.Context, out io.Writer) error {
	files, err := expandRoots(r.roots)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", project.SourceExt)
	}

	var results []driver.CheckResult
	if r.format == "pretty" && !r.g.quiet && len(files) > 1 && r.ui.enabled(os.Stdout) {
		results, err = runCheckWithUI(ctx, "nkl check", files, r.opts)
	} else {
		results, err = driver.CheckFiles(ctx, files, r.opts)
	}
	if err != nil {
		return err
	}

	failed, errs := 0, 0
	for _, res := range results {
		if n := countErrors(res.Bag); n > 0 {
			failed++
			errs += n
		}
	}

	if r.format == "json" {
		if err := writeCheckJSON(out, results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if err := printDiagnostics(r.g, res.Bag, res.FileSet); err != nil {
				return err
			}
			printTimings(os.Stderr, r.g, res.Path, res.Timing)
		}
		if !r.g.quiet {
			printCheckSummary(out, r.g, len(results), failed)
		}
	}

	if errs > 0 {
		return errDiagnostics{errors: errs}
	}
	return nil
}

func printCheckSummary(out io.Writer, g globalFlags, total, failed int) {
	c := color.New(color.FgGreen, color.Bold)
	if failed > 0 {
		c = color.New(color.FgRed, color.Bold)
	}
	if g.color.enabled(os.Stdout) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	word := "files"
	if total == 1 {
		word = "file"
	}
	c.Fprintf(out, "checked %d %s, %d failed\n", total, word, failed)
}

type checkFileJSON struct {
	Path        string                    `json:"path"`
	Cached      bool                      `json:"cached"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

type checkOutputJSON struct {
	Files  []checkFileJSON `json:"files"`
	Failed int             `json:"failed"`
}

func writeCheckJSON(out io.Writer, results []driver.CheckResult) error {
	payload := checkOutputJSON{Files: make([]checkFileJSON, 0, len(results))}
	opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
	for _, res := range results {
		if res.Bag.HasErrors() {
			payload.Failed++
		}
		payload.Files = append(payload.Files, checkFileJSON{
			Path:        res.Path,
			Cached:      res.Cached,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, opts),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

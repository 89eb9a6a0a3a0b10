package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nkl/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new nkl project",
	Long: `Initialize a new nkl project by creating a project manifest (nkl.toml)
and an entry point (main.nkl). If [path|name] is omitted, initializes the
current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	res, err := project.Init(target)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	rel := res.Root
	if r, err := filepath.Rel(wd, res.Root); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized nkl project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if res.CreatedMain {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(res.Main))
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", filepath.Base(res.Main))
	}
	return nil
}

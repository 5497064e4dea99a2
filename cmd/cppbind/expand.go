package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cppbind/internal/config"
	"cppbind/internal/diagfmt"
	"cppbind/internal/driver"
	"cppbind/internal/ui"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] file.i",
	Short: "Expand the template instantiation requests of an interface file",
	Long: `Expand parses an interface file, resolves every %template request against
the declared templates and reports the resulting instantiations`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("tree", false, "dump the expanded declaration tree")
	expandCmd.Flags().Bool("no-cache", false, "skip the expansion summary cache")
	expandCmd.Flags().Bool("timings", false, "report per-phase timings on stderr")
}

func runExpand(cmd *cobra.Command, args []string) error {
	path := args[0]
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	dumpTree, _ := cmd.Flags().GetBool("tree")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	timings, _ := cmd.Flags().GetBool("timings")

	cfg, _, err := config.LoadFrom(".")
	if err != nil {
		return err
	}
	if maxDiagnostics == 100 && cfg.Diagnostics.Max != 0 {
		maxDiagnostics = cfg.Diagnostics.Max
	}

	result, err := driver.ProcessFile(path, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	if cfg.Cache.Enabled && !noCache {
		if cache, err := driver.OpenDiskCache("cppbind", cfg.Cache.Dir); err == nil {
			payload := driver.SummaryPayload(path, result)
			if err := cache.Put(driver.Digest(result.File.Hash), payload); err != nil && !quiet {
				fmt.Fprintf(os.Stderr, "cache write failed: %v\n", err)
			}
		}
	}

	if dumpTree {
		if err := diagfmt.DumpTree(os.Stdout, result.Tree.Root); err != nil {
			return err
		}
	} else if !quiet {
		rows := make([]ui.Row, 0, result.Recorder.Len())
		for _, inst := range result.Recorder.All() {
			rows = append(rows, ui.Row{
				Symbol:   inst.SymName,
				Template: inst.Name,
				Args:     inst.Args,
				Uses:     len(inst.Uses),
			})
		}
		ui.RenderSummary(os.Stdout, rows, useColor(cmd, os.Stdout))
	}

	if timings {
		fmt.Fprint(os.Stderr, result.Timings.Summary())
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("expansion completed with errors")
	}
	return nil
}

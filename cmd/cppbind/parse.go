package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cppbind/internal/diagfmt"
	"cppbind/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.i",
	Short: "Parse an interface file and dump its declaration tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	if err := diagfmt.DumpTree(os.Stdout, result.Tree.Root); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("parse completed with errors")
	}
	return nil
}

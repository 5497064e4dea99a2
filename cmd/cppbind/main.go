package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cppbind/internal/prof"
	"cppbind/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cppbind",
	Short: "C++ interface binding generator front end",
	Long:  `cppbind parses C++ interface files and expands their template instantiation requests`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("cpuprofile"); path != "" {
			if err := prof.StartCPU(path); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("trace"); path != "" {
			if err := prof.StartTrace(path); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		prof.StopCPU()
		prof.StopTrace()
		if path, _ := cmd.Flags().GetString("memprofile"); path != "" {
			return prof.WriteMem(path)
		}
		return nil
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to the given file on exit")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to the given file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the stream it writes to.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"framelint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "framelint",
	Short: "Design lint engine for exported node trees",
	Long:  `Framelint audits exported design snapshots for layout, spacing, hierarchy, accessibility and performance problems, and can apply the safe fixes.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to framelint.toml (default: search upward from the target)")
	rootCmd.PersistentFlags().String("trace", "off", "trace level (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-out", "", "trace output file (default: stderr)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}

// Command aotc compiles a single source file to LLVM IR (and, optionally,
// bitcode or a native object).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aotc [flags] <source-file>",
	Short: "Ahead-of-time compiler for the exercise language",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.Flags().StringP("out", "o", "", "output path (defaults to the source file's stem)")
	rootCmd.Flags().Bool("emit-ir", false, "stop after writing textual LLVM IR (.ll); skip assembling bitcode")
	rootCmd.Flags().String("log-level", "error", "diagnostic verbosity (silent|error|warn|verbose)")
	rootCmd.Flags().String("config", "", "path to an aotc.toml build manifest (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

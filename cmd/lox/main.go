package main

import (
	"os"

	"github.com/spf13/cobra"

	"loxvm/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "lox is a bytecode compiler and virtual machine for a small dynamic scripting language",
	Long: `lox compiles and runs programs in a dynamically-typed, class-based
scripting language. With no arguments it starts an interactive REPL;
given a file, it compiles and runs it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(disasmCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file overriding VM tunables")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

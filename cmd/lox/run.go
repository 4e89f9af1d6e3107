package main

import (
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and execute a lox script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, colors, err := flagsFor(cmd)
		if err != nil {
			return err
		}
		if code := execFile(args[0], cfg, colors); code != exitOK {
			os.Exit(code)
		}
		return nil
	},
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

func flagsFor(cmd *cobra.Command) (cfg config, colors bool, err error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config{}, false, err
	}
	cfg, err = loadConfig(path)
	if err != nil {
		return config{}, false, err
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return config{}, false, err
	}
	return cfg, colorsEnabled(colorMode, os.Stdout), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, colors, err := flagsFor(cmd)
	if err != nil {
		return err
	}
	var code int
	if len(args) == 0 {
		code = runREPL(cfg, colors)
	} else {
		code = execFile(args[0], cfg, colors)
	}
	if code != exitOK {
		os.Exit(code)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/heap"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <file>",
	Short: "Compile a lox script and print its disassembly without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, colors, err := flagsFor(cmd)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lox: %v\n", err)
			os.Exit(exitIOError)
		}

		h := heap.New()
		h.StressGC = cfg.StressGC
		bag := diag.NewBag()
		fn, ok := compiler.Compile(string(data), h, diag.BagReporter{Bag: bag})
		if !ok {
			reportDiagnostics(os.Stderr, bag.Items(), colors)
			os.Exit(exitCompileError)
		}
		fmt.Fprint(cmd.OutOrStdout(), bytecode.Disassemble(h.Get(fn).Chunk, args[0]))
		return nil
	},
}

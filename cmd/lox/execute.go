package main

import (
	"fmt"
	"os"

	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/heap"
	"loxvm/internal/vm"
)

// Exit codes: success, compile error, runtime error, I/O error.
const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

// newMachine builds a heap and VM wired per cfg: stress-GC forced if the
// config asks for it, plus str() if the config's extra natives name it.
// Any other name in that list is ignored.
func newMachine(cfg config) (*heap.Heap, *vm.VM) {
	h := heap.New()
	h.StressGC = cfg.StressGC
	machine := vm.New(h)
	for _, name := range cfg.ExtraNatives {
		if name == "str" {
			machine.DefineNative("str", machine.StrNative)
		}
	}
	return h, machine
}

// execSource compiles and runs src, reporting diagnostics or a runtime
// error to stderr, and returns the process exit code to use.
func execSource(src string, cfg config, colors bool) int {
	h, machine := newMachine(cfg)
	bag := diag.NewBag()
	fn, ok := compiler.Compile(src, h, diag.BagReporter{Bag: bag})
	if !ok {
		reportDiagnostics(os.Stderr, bag.Items(), colors)
		return exitCompileError
	}
	if err := machine.Run(fn); err != nil {
		if re, isRuntime := err.(*vm.RuntimeError); isRuntime {
			reportRuntimeError(os.Stderr, re, colors)
			return exitRuntimeError
		}
		fmt.Fprintln(os.Stderr, err)
		return exitRuntimeError
	}
	return exitOK
}

func execFile(path string, cfg config, colors bool) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %v\n", err)
		return exitIOError
	}
	return execSource(string(data), cfg, colors)
}

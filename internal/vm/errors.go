package vm

import "fmt"

// CompileError describes a failed compile by its diagnostic count. Compile
// itself reports failure through its bool result, and cmd/lox maps that
// result to exit code 65 without constructing a CompileError.
type CompileError struct {
	Diagnostics int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error (%d diagnostics)", e.Diagnostics)
}

// RuntimeError is a failure raised while running already-compiled
// bytecode; cmd/lox maps it to exit code 70. Trace holds the call-stack
// walk captured at the point of failure, innermost frame first, in the
// "[line N] in fn" form.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

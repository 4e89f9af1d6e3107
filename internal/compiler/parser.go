// Package compiler implements the single-pass Pratt compiler: it turns a
// token stream directly into bytecode with no intermediate AST, resolving
// locals and upvalues as it goes.
package compiler

import (
	"loxvm/internal/diag"
	"loxvm/internal/heap"
	"loxvm/internal/lexer"
	"loxvm/internal/token"
	"loxvm/internal/value"
)

// classCompiler tracks the class currently being compiled, so `this` and
// `super` resolve correctly and nested classes restore their enclosing
// class's state when the inner one finishes.
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// parser is the single-pass compiler's mutable state: the token stream, the
// current function-compiler stack (via cc), the current class (via class),
// and panic-mode error bookkeeping.
type parser struct {
	lex      *lexer.Lexer
	heap     *heap.Heap
	reporter diag.Reporter

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool

	cc    *Compiler
	class *classCompiler
}

// chainRoots exposes the compiler chain as a heap.RootSource for the
// duration of a single Compile call: every in-progress Function must
// survive any GC triggered while it's still being built, since it isn't
// reachable from the stack or globals yet. It also forwards to the root
// source installed before the compile (normally the VM), so that source's
// roots stay marked too.
type chainRoots struct {
	p    *parser
	prev heap.RootSource
}

func (r chainRoots) MarkRoots(h *heap.Heap) {
	if r.prev != nil {
		r.prev.MarkRoots(h)
	}
	for c := r.p.cc; c != nil; c = c.enclosing {
		h.Mark(c.fn)
	}
}

// Compile compiles source into a top-level script Function and reports
// whether compilation succeeded. On failure the returned handle is the
// partially built function and must not be run; diagnostics were already
// sent to reporter.
func Compile(source string, h *heap.Heap, reporter diag.Reporter) (value.Handle, bool) {
	p := &parser{lex: lexer.New(source), heap: h, reporter: reporter}
	p.cc = newCompiler(nil, typeScript, h.NewFunction())

	prevRoots := h.Roots
	h.SetRoots(chainRoots{p: p, prev: prevRoots})
	defer h.SetRoots(prevRoots)

	p.advance()
	for !p.check(token.EOF) {
		p.declaration()
	}
	fn := p.endCompiler()
	return fn, !p.hadError
}

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.Next()
		if !p.current.Is(token.Error) {
			break
		}
		p.errorAtCurrent(p.current.Text)
	}
}

func (p *parser) check(k token.Kind) bool {
	return p.current.Is(k)
}

func (p *parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(k token.Kind, message string) {
	if p.current.Is(k) {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

func (p *parser) errorAtPrevious(message string) {
	p.errorAt(p.previous, message)
}

func (p *parser) errorAt(t token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	if p.reporter == nil {
		return
	}
	p.reporter.Report(diag.Diagnostic{
		Severity: diag.SevError,
		Line:     t.Line,
		AtEnd:    t.Is(token.EOF),
		Lexeme:   t.Lexeme(),
		Message:  message,
	})
}

// synchronize skips tokens until it finds a likely statement boundary,
// implementing panic-mode recovery: once one syntax error is reported,
// further cascading errors within the same statement are suppressed.
func (p *parser) synchronize() {
	p.panicMode = false
	for !p.check(token.EOF) {
		if p.previous.Is(token.Semicolon) {
			return
		}
		if p.current.Kind.StartsStatement() {
			return
		}
		p.advance()
	}
}

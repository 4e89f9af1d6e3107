package compiler_test

import (
	"strconv"
	"strings"
	"testing"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/heap"
)

func compileOK(t *testing.T, src string) *bytecode.Chunk {
	t.Helper()
	h := heap.New()
	bag := diag.NewBag()
	fn, ok := compiler.Compile(src, h, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("compile(%q) failed: %v", src, bag.Items())
	}
	return h.Get(fn).Chunk
}

func compileErr(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	h := heap.New()
	bag := diag.NewBag()
	_, ok := compiler.Compile(src, h, diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("compile(%q) unexpectedly succeeded", src)
	}
	return bag.Items()
}

func TestCompile_ArithmeticPrecedence(t *testing.T) {
	chunk := compileOK(t, "print 1 + 2 * 3;")
	dump := bytecode.Disassemble(chunk, "test")
	mul, add := strings.Index(dump, "OP_MULTIPLY"), strings.Index(dump, "OP_ADD")
	if mul < 0 || add < 0 || mul > add {
		t.Fatalf("expected multiply before add in disassembly, got:\n%s", dump)
	}
}

func TestCompile_StringConcatDeclarations(t *testing.T) {
	compileOK(t, `var a = "foo"; var b = "bar"; print a + b;`)
}

func TestCompile_ClosureCapture(t *testing.T) {
	compileOK(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var c = makeCounter();
		c();
	`)
}

func TestCompile_ClassInheritanceAndSuper(t *testing.T) {
	compileOK(t, `
		class A { greet() { print "A"; } }
		class B < A { greet() { super.greet(); print "B"; } }
		B().greet();
	`)
}

func TestCompile_ReturnAtScriptLevelIsError(t *testing.T) {
	items := compileErr(t, `return 1;`)
	if len(items) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

func TestCompile_ReturnValueFromInitializerIsError(t *testing.T) {
	compileErr(t, `class Foo { init() { return 1; } }`)
}

func TestCompile_InvalidAssignmentTarget(t *testing.T) {
	compileErr(t, `a + b = c;`)
}

func TestCompile_RedeclaredLocalInSameScope(t *testing.T) {
	compileErr(t, `{ var a = 1; var a = 2; }`)
}

func TestCompile_ReadLocalInOwnInitializer(t *testing.T) {
	compileErr(t, `{ var a = a; }`)
}

func TestCompile_TooManyLocals(t *testing.T) {
	var b strings.Builder
	b.WriteString("{\n")
	for i := 0; i < 257; i++ {
		b.WriteString("var v")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" = 0;\n")
	}
	b.WriteString("}\n")
	compileErr(t, b.String())
}

func TestCompile_TooManyConstants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 257; i++ {
		b.WriteString("print ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(".5;\n")
	}
	compileErr(t, b.String())
}

func TestCompile_TooManyCallArguments(t *testing.T) {
	var b strings.Builder
	b.WriteString("fun f() {}\nf(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteString(");\n")
	compileErr(t, b.String())
}

func TestCompile_DisassembleIsStable(t *testing.T) {
	chunk := compileOK(t, `print 1 + 2 * 3;`)
	first := bytecode.Disassemble(chunk, "test")
	second := bytecode.Disassemble(chunk, "test")
	if first != second {
		t.Fatalf("disassembly is not stable:\n%s\n---\n%s", first, second)
	}
}


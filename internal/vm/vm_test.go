package vm_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/heap"
	"loxvm/internal/vm"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	h := heap.New()
	bag := diag.NewBag()
	fn, ok := compiler.Compile(src, h, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("compile(%q) failed: %v", src, bag.Items())
	}
	machine := vm.New(h)
	machine.DefineNative("str", machine.StrNative)
	var out bytes.Buffer
	machine.Stdout = &out
	err := machine.Run(fn)
	return out.String(), err
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("run(%q) failed: %v", src, err)
	}
	return out
}

func TestRun_ArithmeticPrecedence(t *testing.T) {
	out := runOK(t, "print 1 + 2 * 3;")
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want 7", out)
	}
}

func TestRun_StringConcatenation(t *testing.T) {
	out := runOK(t, `var a = "foo"; var b = "bar"; print a + b;`)
	if strings.TrimSpace(out) != "foobar" {
		t.Fatalf("got %q, want foobar", out)
	}
}

func TestRun_ClosureCapturesAndMutatesUpvalue(t *testing.T) {
	out := runOK(t, `
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
		c();
		c();
	`)
	lines := strings.Fields(out)
	if strings.Join(lines, ",") != "1,2,3" {
		t.Fatalf("got %q, want 1 2 3", out)
	}
}

func TestRun_UpvalueEscapesAfterScopeExit(t *testing.T) {
	out := runOK(t, `
		fun outer() {
			var x = "value";
			fun inner() {
				print x;
			}
			return inner;
		}
		var closure = outer();
		closure();
	`)
	if strings.TrimSpace(out) != "value" {
		t.Fatalf("got %q, want value", out)
	}
}

func TestRun_TwoClosuresShareTheSameUpvalue(t *testing.T) {
	out := runOK(t, `
		fun makePair() {
			var x = 0;
			fun get() { return x; }
			fun set(v) { x = v; }
			set(42);
			print get();
		}
		makePair();
	`)
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("got %q, want 42", out)
	}
}

func TestRun_ClassInheritanceAndSuper(t *testing.T) {
	out := runOK(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "Woof";
			}
		}
		Dog().speak();
	`)
	if strings.TrimSpace(out) != "...\nWoof" {
		t.Fatalf("got %q", out)
	}
}

func TestRun_MethodsAndFields(t *testing.T) {
	out := runOK(t, `
		class Counter {
			init() {
				this.count = 0;
			}
			increment() {
				this.count = this.count + 1;
				return this.count;
			}
		}
		var c = Counter();
		c.increment();
		c.increment();
		print c.increment();
	`)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want 3", out)
	}
}

func TestRun_UndefinedGlobalIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undefined_name;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	re, ok := err.(*vm.RuntimeError)
	if !ok {
		t.Fatalf("got %T, want *vm.RuntimeError", err)
	}
	if !strings.Contains(re.Message, "Undefined variable") {
		t.Fatalf("got message %q", re.Message)
	}
}

func TestRun_TypeErrorOnAddingIncompatibleOperands(t *testing.T) {
	_, err := run(t, `print 1 + "x";`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestRun_StackOverflowOnUnboundedRecursion(t *testing.T) {
	_, err := run(t, `
		fun recurse() {
			recurse();
		}
		recurse();
	`)
	if err == nil {
		t.Fatal("expected a stack overflow runtime error")
	}
	re, ok := err.(*vm.RuntimeError)
	if !ok {
		t.Fatalf("got %T, want *vm.RuntimeError", err)
	}
	if !strings.Contains(re.Message, "Stack overflow") {
		t.Fatalf("got message %q", re.Message)
	}
}

func TestRun_ClockNativeReturnsANumber(t *testing.T) {
	out := runOK(t, `print clock() >= 0;`)
	if strings.TrimSpace(out) != "true" {
		t.Fatalf("got %q, want true", out)
	}
}

// TestRun_GCStressSurvivesManyTemporaryStrings builds many short-lived
// interned strings via str() and runtime concatenation. The heap in this
// package is not put in stress mode, and the loop allocates well below the
// default 1 MiB collection threshold, so no collection is forced here; the
// test checks that the churn runs to completion with the right result.
func TestRun_GCStressSurvivesManyTemporaryStrings(t *testing.T) {
	var b strings.Builder
	b.WriteString(`var total = 0;
	for (var i = 0; i < 2000; i = i + 1) {
		var s = "temp-" + str(i);
		if (s == "unreachable") {
			total = total + 1;
		}
	}
	print total;
	`)
	out := runOK(t, b.String())
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("got %q, want 0", out)
	}
}

func TestRun_BoundMethodKeepsReceiverAfterBeingStoredInAVariable(t *testing.T) {
	out := runOK(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print this.name;
			}
		}
		var g = Greeter("Ada");
		var m = g.greet;
		m();
	`)
	if strings.TrimSpace(out) != "Ada" {
		t.Fatalf("got %q, want Ada", out)
	}
}

func TestRun_ManyArgumentsUpToTheLimit(t *testing.T) {
	var params strings.Builder
	var args strings.Builder
	for i := 0; i < 255; i++ {
		if i > 0 {
			params.WriteString(", ")
			args.WriteString(", ")
		}
		params.WriteString("a" + strconv.Itoa(i))
		args.WriteString("z")
	}
	// The arguments read a block-local variable rather than 255 numeric
	// literals, so the call site stays within the 256-entry constant pool.
	src := "fun sum(" + params.String() + ") { return a0; }\n{ var z = 0; print sum(" + args.String() + "); }"
	out := runOK(t, src)
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("got %q, want 0", out)
	}
}

package value_test

import (
	"testing"

	"loxvm/internal/value"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    value.Value
		want bool
	}{
		{value.Nil(), false},
		{value.Bool(false), false},
		{value.Bool(true), true},
		{value.Number(0), true},
		{value.Number(-1), true},
		{value.Obj(value.Handle(1)), true},
	}
	for _, c := range cases {
		if got := value.Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !value.Equal(value.Number(1), value.Number(1)) {
		t.Error("1 == 1 should be true")
	}
	if value.Equal(value.Number(1), value.Number(2)) {
		t.Error("1 == 2 should be false")
	}
	if value.Equal(value.Nil(), value.Bool(false)) {
		t.Error("nil should not equal false")
	}
	if !value.Equal(value.Obj(value.Handle(5)), value.Obj(value.Handle(5))) {
		t.Error("equal handles should compare equal")
	}
	if value.Equal(value.Obj(value.Handle(5)), value.Obj(value.Handle(6))) {
		t.Error("distinct handles should not compare equal")
	}
}

func TestKindRoundTrip(t *testing.T) {
	if value.Number(3.5).Kind() != value.KindNumber {
		t.Error("Number should report KindNumber")
	}
	if value.Bool(true).Kind() != value.KindBool {
		t.Error("Bool should report KindBool")
	}
	if value.Nil().Kind() != value.KindNil {
		t.Error("Nil should report KindNil")
	}
	if value.Obj(value.Handle(1)).Kind() != value.KindObj {
		t.Error("Obj should report KindObj")
	}
}

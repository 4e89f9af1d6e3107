//go:build !loxnan

package value

// Value is the tagged-struct representation: an explicit Kind tag plus a
// union of the three payload fields a Lox value can carry. This is the
// default build; see value_nanbox.go for the alternative 64-bit packed
// representation selected with -tags loxnan.
type Value struct {
	kind Kind
	num  float64
	b    bool
	obj  Handle
}

var nilValue = Value{kind: KindNil}

func Nil() Value                { return nilValue }
func Bool(b bool) Value         { return Value{kind: KindBool, b: b} }
func Number(n float64) Value    { return Value{kind: KindNumber, num: n} }
func Obj(h Handle) Value        { return Value{kind: KindObj, obj: h} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNil() bool     { return v.kind == KindNil }
func (v Value) IsBool() bool    { return v.kind == KindBool }
func (v Value) IsNumber() bool  { return v.kind == KindNumber }
func (v Value) IsObj() bool     { return v.kind == KindObj }

func (v Value) AsBool() bool     { return v.b }
func (v Value) AsNumber() float64 { return v.num }
func (v Value) AsHandle() Handle  { return v.obj }

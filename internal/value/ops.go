package value

// Truthy implements Lox's truthiness rule: exactly nil and false are
// falsey; every other value, including 0 and "", is truthy.
func Truthy(v Value) bool {
	switch v.Kind() {
	case KindNil:
		return false
	case KindBool:
		return v.AsBool()
	default:
		return true
	}
}

// Equal implements by-type equality: numbers by IEEE equality, booleans and
// nil by identity, and objects by pointer (Handle) identity. Because
// Strings are interned, Handle identity also implements string content
// equality without a byte comparison.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNil:
		return true
	case KindBool:
		return a.AsBool() == b.AsBool()
	case KindNumber:
		return a.AsNumber() == b.AsNumber()
	case KindObj:
		return a.AsHandle() == b.AsHandle()
	default:
		return false
	}
}

// Package value defines the runtime datum the VM operates on (Value) and
// its heap-allocated payload (Object).
package value

import "strconv"

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindBool
	KindObject
)

// Value is the tagged union the VM pushes, pops, and stores in globals.
// Every Value is self-contained: it either holds its scalar payload inline
// (Number, Bool) or a pointer to a heap Object it does not own exclusively
// (copies of a Value share the same *Object, which is fine since Objects
// are immutable once constructed).
type Value struct {
	kind Kind
	num  float64
	b    bool
	obj  *Object
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Number constructs a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool constructs a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// FromObject constructs an object-backed Value (currently: a string).
func FromObject(o *Object) Value {
	return Value{kind: KindObject, obj: o}
}

func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsString reports whether v holds a string Object.
func (v Value) IsString() bool {
	return v.kind == KindObject && v.obj.Kind == ObjString
}

// AsNumber returns the numeric payload. Callers must check IsNumber first;
// this mirrors the VM's opcode contract where the compiler guarantees well
// typed bytecode and only runtime values are checked dynamically.
func (v Value) AsNumber() float64 { return v.num }

// AsBool returns the boolean payload.
func (v Value) AsBool() bool { return v.b }

// AsString returns the underlying Go string payload. Callers must check
// IsString first, same as AsNumber/AsBool.
func (v Value) AsString() string { return v.obj.Str }

// IsFalsy reports the language's falsiness rule: nil and false are falsy,
// everything else (including 0 and the empty string) is truthy.
func (v Value) IsFalsy() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return !v.b
	default:
		return false
	}
}

// Equal implements the value-equality used by OP_EQUAL: structural
// equality within a variant, false across variants. Never errors.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}

// String formats the value the way OP_PRINT and the disassembler do:
// numbers in their shortest round-tripping decimal form, booleans as
// true/false, nil as "nil", and strings quoted.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindObject:
		return v.obj.Format()
	default:
		return "<invalid value>"
	}
}

// Package value implements the compiler's literal value algebra: a small
// tagged union over the handful of shapes a Literal node's held constant can
// take. It is deliberately narrower than the type system in internal/types —
// a Value only remembers enough to print and compare the bits a literal
// carries; the finer distinction between, say, int32 and int64 literals
// lives on the owning Literal node's LiteralType, not here.
package value

import (
	"fmt"
	"strconv"
)

// Kind discriminates the Value union.
type Kind int

const (
	Unknown Kind = iota
	Bool
	I64
	F64
	String
	Char
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Bool:
		return "bool"
	case I64:
		return "i64"
	case F64:
		return "f64"
	case String:
		return "string"
	case Char:
		return "char"
	default:
		return "<bad-kind>"
	}
}

// Value is a tagged union over {Unknown, bool, i64, f64, string, char}.
//
// Only one of the payload fields is meaningful, selected by Kind. This
// mirrors the source's variant storage without resorting to interface{}
// boxing for the common cases, at the cost of carrying a few unused fields
// per instance — a deliberate trade against allocation churn, since Values
// are constructed once per literal and then only ever read.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	c    rune
}

// Nil is the monostate "no value" instance.
var Nil = Value{kind: Unknown}

func NewBool(b bool) Value     { return Value{kind: Bool, b: b} }
func NewI64(i int64) Value     { return Value{kind: I64, i: i} }
func NewF64(f float64) Value   { return Value{kind: F64, f: f} }
func NewString(s string) Value { return Value{kind: String, s: s} }
func NewChar(c rune) Value     { return Value{kind: Char, c: c} }

// NewIdentifier builds the Value carried by a Literal whose LiteralType is
// Identifier: a String-kinded Value holding the identifier's name. See the
// invariant in spec §3.
func NewIdentifier(name string) Value { return Value{kind: String, s: name} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUnknown() bool { return v.kind == Unknown }

// IsBool reports whether v holds a bool, and AsBool projects it.
// AsBool panics if v does not hold a bool — callers must discriminate with
// Kind()/IsBool() first, per §4.1's "caller must have discriminated first".
func (v Value) IsBool() bool  { return v.kind == Bool }
func (v Value) AsBool() bool {
	if v.kind != Bool {
		panic(fmt.Sprintf("value: AsBool on a %s value", v.kind))
	}
	return v.b
}

func (v Value) IsI64() bool { return v.kind == I64 }
func (v Value) AsI64() int64 {
	if v.kind != I64 {
		panic(fmt.Sprintf("value: AsI64 on a %s value", v.kind))
	}
	return v.i
}

func (v Value) IsF64() bool { return v.kind == F64 }
func (v Value) AsF64() float64 {
	if v.kind != F64 {
		panic(fmt.Sprintf("value: AsF64 on a %s value", v.kind))
	}
	return v.f
}

func (v Value) IsString() bool { return v.kind == String }
func (v Value) AsString() string {
	if v.kind != String {
		panic(fmt.Sprintf("value: AsString on a %s value", v.kind))
	}
	return v.s
}

func (v Value) IsChar() bool { return v.kind == Char }
func (v Value) AsChar() rune {
	if v.kind != Char {
		panic(fmt.Sprintf("value: AsChar on a %s value", v.kind))
	}
	return v.c
}

// Equal is the total comparison required by §4.1: two Values compare equal
// iff their Kind and payload match.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Unknown:
		return true
	case Bool:
		return v.b == o.b
	case I64:
		return v.i == o.i
	case F64:
		return v.f == o.f
	case String:
		return v.s == o.s
	case Char:
		return v.c == o.c
	default:
		return false
	}
}

// Less gives Value a total order: first by Kind, then by payload. Used by
// the deterministic printers and by tests asserting canonical ordering.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case Bool:
		return !v.b && o.b
	case I64:
		return v.i < o.i
	case F64:
		return v.f < o.f
	case String:
		return v.s < o.s
	case Char:
		return v.c < o.c
	default:
		return false
	}
}

// String gives the deterministic textual form used by the printers:
// bool as true/false, numbers in base-10, strings unquoted, monostate as
// the literal token __unknown__.
func (v Value) String() string {
	switch v.kind {
	case Unknown:
		return "__unknown__"
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case I64:
		return strconv.FormatInt(v.i, 10)
	case F64:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case String:
		return v.s
	case Char:
		return string(v.c)
	default:
		return "__unknown__"
	}
}

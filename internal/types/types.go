// Package types implements the compiler's Type algebra described in
// spec §3/§4.1: a tagged union over Primitive(kind), Array(element), and
// Struct(fields). Like the source it is distilled from, Type is total-order
// comparable and structurally equal; unlike the teacher repo this package
// generalizes from (bool, char, string, void, int, float) to the nine
// primitive kinds the richer cast lattice in §4.6 needs.
package types

import "strings"

// PrimitiveKind enumerates the primitive kinds named in spec §3.
type PrimitiveKind int

const (
	Unknown PrimitiveKind = iota
	Void
	Boolean
	Char
	Int32
	Int64
	Float32
	Float64
	String
)

func (k PrimitiveKind) String() string {
	switch k {
	case Unknown:
		return "__unknown__"
	case Void:
		return "void"
	case Boolean:
		return "bool"
	case Char:
		return "char"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "<bad-primitive-kind>"
	}
}

// builtinNames maps the identifier spelling used in source text (spec §4.5:
// "bool, chr, f32, f64, i32, i64, str, void") to the PrimitiveKind it seeds
// the TypeDiscoverer map with.
var builtinNames = map[string]PrimitiveKind{
	"bool": Boolean,
	"chr":  Char,
	"f32":  Float32,
	"f64":  Float64,
	"i32":  Int32,
	"i64":  Int64,
	"str":  String,
	"void": Void,
}

// LookupBuiltin resolves a builtin type identifier to its Primitive Type, or
// reports ok=false if name does not name a builtin primitive.
func LookupBuiltin(name string) (Type, bool) {
	k, ok := builtinNames[name]
	if !ok {
		return Type{}, false
	}
	return Primitive(k), true
}

// variantTag orders the three Type variants for the total order required by
// §3 ("lexicographic over variant tag then payload").
type variantTag int

const (
	tagPrimitive variantTag = iota
	tagArray
	tagStruct
)

// Type is the tagged union: Primitive(kind) | Array(element) | Struct(fields).
//
// DESIGN CHOICE: modeled as a single struct with a discriminant, following
// the same "flat struct with a Kind tag" idiom the literal Value type
// (internal/value) and this package's own PrimitiveKind use, rather than a
// three-way interface hierarchy — a Type is copied by value constantly
// (every AST node carries one), so avoiding interface boxing here matters.
type Type struct {
	tag       variantTag
	primitive PrimitiveKind
	elem      *Type        // Array
	fields    []Type       // Struct
}

// Primitive constructs a Primitive(kind) Type.
func Primitive(kind PrimitiveKind) Type {
	return Type{tag: tagPrimitive, primitive: kind}
}

// UnknownType is the zero-value Type every AST node is initialized with.
var UnknownType = Primitive(Unknown)

// Array constructs an Array(element) Type; element is owned (copied).
func Array(element Type) Type {
	e := element
	return Type{tag: tagArray, elem: &e}
}

// Struct constructs a Struct(fields) Type over an ordered tuple of field
// types. fields is copied so the caller's slice may be reused/mutated.
func Struct(fields []Type) Type {
	cp := make([]Type, len(fields))
	copy(cp, fields)
	return Type{tag: tagStruct, fields: cp}
}

func (t Type) IsPrimitive() bool { return t.tag == tagPrimitive }
func (t Type) IsArray() bool     { return t.tag == tagArray }
func (t Type) IsStruct() bool    { return t.tag == tagStruct }

func (t Type) IsUnknown() bool { return t.tag == tagPrimitive && t.primitive == Unknown }

// Kind returns the payload of a Primitive Type. Callers must have
// discriminated with IsPrimitive() first; it returns Unknown otherwise.
func (t Type) Kind() PrimitiveKind {
	if t.tag != tagPrimitive {
		return Unknown
	}
	return t.primitive
}

// Element returns the element Type of an Array Type. Callers must have
// discriminated with IsArray() first.
func (t Type) Element() Type {
	if t.tag != tagArray || t.elem == nil {
		return UnknownType
	}
	return *t.elem
}

// Fields returns the ordered field tuple of a Struct Type.
func (t Type) Fields() []Type {
	if t.tag != tagStruct {
		return nil
	}
	return t.fields
}

// Equal is structural equality, per §3.
func (t Type) Equal(o Type) bool {
	if t.tag != o.tag {
		return false
	}
	switch t.tag {
	case tagPrimitive:
		return t.primitive == o.primitive
	case tagArray:
		return t.Element().Equal(o.Element())
	case tagStruct:
		if len(t.fields) != len(o.fields) {
			return false
		}
		for i := range t.fields {
			if !t.fields[i].Equal(o.fields[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less gives Type the total order required by §3: lexicographic over
// variant tag, then payload.
func (t Type) Less(o Type) bool {
	if t.tag != o.tag {
		return t.tag < o.tag
	}
	switch t.tag {
	case tagPrimitive:
		return t.primitive < o.primitive
	case tagArray:
		return t.Element().Less(o.Element())
	case tagStruct:
		for i := 0; i < len(t.fields) && i < len(o.fields); i++ {
			if !t.fields[i].Equal(o.fields[i]) {
				return t.fields[i].Less(o.fields[i])
			}
		}
		return len(t.fields) < len(o.fields)
	default:
		return false
	}
}

// String stringifies per §4.1: primitive by name, array as "<elem>[]",
// struct as "(t1, t2, …)".
func (t Type) String() string {
	switch t.tag {
	case tagPrimitive:
		return t.primitive.String()
	case tagArray:
		return t.Element().String() + "[]"
	case tagStruct:
		parts := make([]string, len(t.fields))
		for i, f := range t.fields {
			parts[i] = f.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "__unknown__"
	}
}

// IsNumeric reports whether t is one of the four numeric primitive kinds.
func IsNumeric(t Type) bool {
	if !t.IsPrimitive() {
		return false
	}
	switch t.Kind() {
	case Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsBooleanType reports whether t is Primitive(Boolean).
func IsBooleanType(t Type) bool {
	return t.IsPrimitive() && t.Kind() == Boolean
}

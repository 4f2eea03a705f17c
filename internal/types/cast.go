package types

// Castability classifies how a value of one primitive kind may be cast to
// another, per the explicit lattice in spec §4.6.
type Castability int

const (
	Impossible Castability = iota
	Implicit
	Explicit
)

func (c Castability) String() string {
	switch c {
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	default:
		return "impossible"
	}
}

// castRow/castTable encode exactly the table in §4.6. Rows and columns run
// over {Bool, Char, F32, F64, I32, I64, Str}; equality is always Implicit;
// an absent entry defaults to Impossible, per DESIGN NOTES §9 ("Encode as a
// static table ... default to Impossible").
var castTable = map[PrimitiveKind]map[PrimitiveKind]Castability{
	Boolean: {
		Boolean: Implicit,
		Int32:   Explicit,
		Int64:   Explicit,
		String:  Explicit,
	},
	Char: {
		Char:   Implicit,
		String: Implicit,
	},
	Float32: {
		Boolean: Explicit,
		Float32: Implicit,
		Float64: Implicit,
		Int32:   Explicit,
		Int64:   Explicit,
		String:  Explicit,
	},
	Float64: {
		Float32: Explicit,
		Float64: Implicit,
		Int32:   Explicit,
		Int64:   Explicit,
		String:  Explicit,
	},
	Int32: {
		Boolean: Explicit,
		Float32: Implicit,
		Float64: Implicit,
		Int32:   Implicit,
		Int64:   Implicit,
		String:  Explicit,
	},
	Int64: {
		Boolean: Explicit,
		Float32: Implicit,
		Float64: Implicit,
		Int32:   Explicit,
		Int64:   Implicit,
		String:  Explicit,
	},
	String: {
		Float32: Explicit,
		Float64: Explicit,
		Int32:   Explicit,
		Int64:   Explicit,
		String:  Implicit,
	},
}

// CastabilityOf reports how a value of primitive kind `from` may cast to
// primitive kind `to`. Every kind casts to itself Implicitly; Unknown and
// Void have no row or column in the lattice, so a cast between either of
// them and a different kind is Impossible.
func CastabilityOf(from, to PrimitiveKind) Castability {
	if from == to {
		return Implicit
	}
	row, ok := castTable[from]
	if !ok {
		return Impossible
	}
	c, ok := row[to]
	if !ok {
		return Impossible
	}
	return c
}

// Cast reports the Castability of casting a value of Type `from` to Type
// `to`. Array-to-array casts delegate to their element types (§4.6); struct
// casts are always Impossible; any Primitive/Array or Primitive/Struct
// mismatch is Impossible.
func Cast(from, to Type) Castability {
	switch {
	case from.IsPrimitive() && to.IsPrimitive():
		return CastabilityOf(from.Kind(), to.Kind())
	case from.IsArray() && to.IsArray():
		return Cast(from.Element(), to.Element())
	default:
		return Impossible
	}
}

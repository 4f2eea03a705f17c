// Package diag implements the Diagnostic record §6 names for the pipeline's
// external interface: a closed severity enum, a closed error-code enum, and
// the Diagnostic struct itself, pairing a formatted message with the
// source_location it was raised at. Modeled on the (ErrorType, SourceLocation)
// shape of the sentra-language-sentra retrieval pack entry, generalized to a
// numeric code instead of a string type tag since §6.3 calls for "code:
// small integer" specifically.
package diag

import "fmt"

// Severity discriminates how a Diagnostic should be treated by a caller:
// Error aborts the pipeline (§6.2's "stops at the first pass whose
// post-validation collects any errors"), Warning and Hint do not.
type Severity int

const (
	Error Severity = iota
	Warning
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code is the closed error-code enum §6.3 requires "at minimum". Lexer and
// parser codes (E0001-E0005) are reserved for those collaborators; semantic
// codes start at E0100 so a future lexer/parser addition never collides
// with one added here.
type Code int

const (
	// Lexer (collaborator-owned; reserved here so the enum stays one
	// closed list across the whole pipeline).
	ErrUnrecognizedToken Code = 1 + iota
	ErrNotANumber
	ErrValueOutOfRange
	ErrUnterminatedString
	ErrParserPeekOutOfRange
)

const (
	// Semantic (TypeDiscoverer/TypeResolver/DesugarVisitor).
	ErrRedefinitionOfType Code = 100 + iota
	ErrUnknownTypeIdentifier
	ErrImpossibleCast
	ErrTypeMismatchInBinary
	ErrUnknownIdentifier
)

func (c Code) String() string {
	switch c {
	case ErrUnrecognizedToken:
		return "E0001"
	case ErrNotANumber:
		return "E0002"
	case ErrValueOutOfRange:
		return "E0003"
	case ErrUnterminatedString:
		return "E0004"
	case ErrParserPeekOutOfRange:
		return "E0005"
	case ErrRedefinitionOfType:
		return "E0100"
	case ErrUnknownTypeIdentifier:
		return "E0101"
	case ErrImpossibleCast:
		return "E0102"
	case ErrTypeMismatchInBinary:
		return "E0103"
	case ErrUnknownIdentifier:
		return "E0104"
	default:
		return fmt.Sprintf("E%04d", int(c))
	}
}

// Location is the source_location pair §6.3 names, kept separate from
// internal/lexer.Position (which also carries Filename/Offset) since a
// Diagnostic only needs to report the two fields a human reads.
type Location struct {
	Row    uint32
	Column uint32
}

// Diagnostic is §6.3's record: severity, code, a formatted message, and the
// source location the offending node was found at.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Location Location
}

// New builds a Diagnostic at Error severity, the common case — pipeline
// passes downgrade to WithSeverity when they need a Warning or Hint.
func New(code Code, location Location, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// WithSeverity returns a copy of d with Severity replaced.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

// String renders a Diagnostic the way a CLI would print one line of
// compiler output: "error[E0100]: redefinition of type 'x' (12:4)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s]: %s (%d:%d)", d.Severity, d.Code, d.Message, d.Location.Row, d.Location.Column)
}

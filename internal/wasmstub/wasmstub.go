// Package wasmstub implements §6.6's stub WebAssembly serializer: the
// binary-module envelope only — 4-byte magic, 4-byte version, then a
// sequence of section records, each `{type: u8, size: uLEB128, payload}`,
// in monotonically-increasing section-type order, per the WebAssembly
// binary format. Building a section's actual payload (encoding types,
// functions, code) is explicitly out of scope (§6.6's "stub in source");
// this package only knows how to frame whatever payload bytes a future
// backend hands it.
package wasmstub

import (
	"bytes"

	"github.com/pkg/errors"
)

// Magic is the 4-byte WebAssembly binary module header: "\0asm".
var Magic = [4]byte{0x00, 0x61, 0x73, 0x6D}

// Version is the binary format version this envelope targets (MVP, 1).
var Version = [4]byte{0x01, 0x00, 0x00, 0x00}

// SectionType is the WebAssembly section id space (u8), in the order a
// well-formed module's sections must appear.
type SectionType byte

const (
	SectionCustom SectionType = iota
	SectionType_
	SectionImport
	SectionFunction
	SectionTable
	SectionMemory
	SectionGlobal
	SectionExport
	SectionStart
	SectionElement
	SectionCode
	SectionData
	SectionDataCount
)

// Section pairs a section id with its already-encoded payload. Custom
// sections (id 0) are exempt from the monotonic-order requirement, per the
// binary format spec — they may appear anywhere.
type Section struct {
	Type    SectionType
	Payload []byte
}

// Envelope renders sections into a binary module: magic, version, then
// each section framed as {type, uLEB128(len(payload)), payload}. Non-custom
// section types must appear in strictly increasing order; Envelope returns
// an error rather than silently reordering them, since a reordered module
// is invalid WebAssembly, not just unusually formatted.
func Envelope(sections []Section) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.Write(Version[:])

	last := SectionCustom
	seenNonCustom := false
	for _, s := range sections {
		if s.Type != SectionCustom {
			if seenNonCustom && s.Type <= last {
				return nil, errors.Errorf("wasmstub: section type %d out of order after %d", s.Type, last)
			}
			last = s.Type
			seenNonCustom = true
		}
		buf.WriteByte(byte(s.Type))
		writeULEB128(&buf, uint64(len(s.Payload)))
		buf.Write(s.Payload)
	}
	return buf.Bytes(), nil
}

// writeULEB128 appends v to buf as an unsigned LEB128 integer, the size
// encoding the binary format uses for every variable-length count.
func writeULEB128(buf *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

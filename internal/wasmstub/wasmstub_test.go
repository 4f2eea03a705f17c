package wasmstub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeHeaderIsMagicThenVersion(t *testing.T) {
	out, err := Envelope(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, out)
}

func TestEnvelopeFramesSectionWithULEB128Size(t *testing.T) {
	out, err := Envelope([]Section{
		{Type: SectionType_, Payload: []byte{0xAA, 0xBB, 0xCC}},
	})
	require.NoError(t, err)

	header := out[:8]
	assert.Equal(t, byte(SectionType_), out[8])
	assert.Equal(t, byte(3), out[9]) // uLEB128(3) == single byte 0x03
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, out[10:])
	assert.Len(t, header, 8)
}

func TestEnvelopeEncodesLargeSizeAsMultiByteULEB128(t *testing.T) {
	payload := make([]byte, 200)
	out, err := Envelope([]Section{{Type: SectionCode, Payload: payload}})
	require.NoError(t, err)

	// 200 = 0b1100_1000 -> low 7 bits 0x48 with continuation, then 0x01.
	assert.Equal(t, []byte{0xC8, 0x01}, out[9:11])
}

func TestEnvelopeRejectsOutOfOrderSections(t *testing.T) {
	_, err := Envelope([]Section{
		{Type: SectionCode, Payload: nil},
		{Type: SectionFunction, Payload: nil},
	})
	assert.Error(t, err)
}

func TestEnvelopeAllowsRepeatedOrInterleavedCustomSections(t *testing.T) {
	out, err := Envelope([]Section{
		{Type: SectionCustom, Payload: []byte("name")},
		{Type: SectionFunction, Payload: nil},
		{Type: SectionCustom, Payload: []byte("more")},
		{Type: SectionCode, Payload: nil},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

package isa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cycleacc/rv32pipe/isa"
)

func encodeR(funct7, rs2, rs1, funct3, rd, opcode uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func TestDecodeOpImmFamily(t *testing.T) {
	cases := []struct {
		op     isa.Op
		funct3 uint32
		bit30  uint32
	}{
		{isa.OpADDI, 0b000, 0}, {isa.OpSLLI, 0b001, 0}, {isa.OpSLTI, 0b010, 0},
		{isa.OpSLTIU, 0b011, 0}, {isa.OpXORI, 0b100, 0}, {isa.OpSRLI, 0b101, 0},
		{isa.OpSRAI, 0b101, 1}, {isa.OpORI, 0b110, 0}, {isa.OpANDI, 0b111, 0},
	}
	for _, c := range cases {
		enc := c.bit30<<30 | c.funct3<<12 | 0b0010011
		op, err := isa.Decode(enc)
		assert.NoError(t, err)
		assert.Equal(t, c.op, op)
	}
}

func TestDecodeOpFamilyAddSubSrlSra(t *testing.T) {
	add, err := isa.Decode(encodeR(0, 0, 0, 0b000, 0, 0b0110011))
	assert.NoError(t, err)
	assert.Equal(t, isa.OpADD, add)

	sub, err := isa.Decode(encodeR(0b0100000, 0, 0, 0b000, 0, 0b0110011))
	assert.NoError(t, err)
	assert.Equal(t, isa.OpSUB, sub)

	srl, err := isa.Decode(encodeR(0, 0, 0, 0b101, 0, 0b0110011))
	assert.NoError(t, err)
	assert.Equal(t, isa.OpSRL, srl)

	sra, err := isa.Decode(encodeR(0b0100000, 0, 0, 0b101, 0, 0b0110011))
	assert.NoError(t, err)
	assert.Equal(t, isa.OpSRA, sra)
}

func TestDecodeUJFormats(t *testing.T) {
	op, err := isa.Decode(0b0110111)
	assert.NoError(t, err)
	assert.Equal(t, isa.OpLUI, op)

	op, err = isa.Decode(0b0010111)
	assert.NoError(t, err)
	assert.Equal(t, isa.OpAUIPC, op)

	op, err = isa.Decode(0b1101111)
	assert.NoError(t, err)
	assert.Equal(t, isa.OpJAL, op)

	op, err = isa.Decode(0b1100111)
	assert.NoError(t, err)
	assert.Equal(t, isa.OpJALR, op)
}

func TestDecodeBranches(t *testing.T) {
	want := map[uint32]isa.Op{
		0b000: isa.OpBEQ, 0b001: isa.OpBNE, 0b100: isa.OpBLT,
		0b101: isa.OpBGE, 0b110: isa.OpBLTU, 0b111: isa.OpBGEU,
	}
	for funct3, op := range want {
		got, err := isa.Decode(funct3<<12 | 0b1100011)
		assert.NoError(t, err)
		assert.Equal(t, op, got)
	}
}

func TestDecodeLoadsAndStores(t *testing.T) {
	loads := map[uint32]isa.Op{0b000: isa.OpLB, 0b001: isa.OpLH, 0b010: isa.OpLW, 0b100: isa.OpLBU, 0b101: isa.OpLHU}
	for funct3, op := range loads {
		got, err := isa.Decode(funct3<<12 | 0b0000011)
		assert.NoError(t, err)
		assert.Equal(t, op, got)
	}
	stores := map[uint32]isa.Op{0b000: isa.OpSB, 0b001: isa.OpSH, 0b010: isa.OpSW}
	for funct3, op := range stores {
		got, err := isa.Decode(funct3<<12 | 0b0100011)
		assert.NoError(t, err)
		assert.Equal(t, op, got)
	}
}

func TestDecodeSentinelIsAddi(t *testing.T) {
	op, err := isa.Decode(isa.Sentinel)
	assert.NoError(t, err)
	assert.Equal(t, isa.OpADDI, op)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, err := isa.Decode(0b1111111)
	assert.ErrorIs(t, err, isa.ErrUnknownEncoding)
}

func TestDecodeRoundTripAllOps(t *testing.T) {
	// every canonical encoding decodes back to its own tag
	encodings := map[isa.Op]uint32{
		isa.OpADDI: 0b000<<12 | 0b0010011,
		isa.OpSLTI: 0b010<<12 | 0b0010011,
		isa.OpADD:  encodeR(0, 0, 0, 0b000, 0, 0b0110011),
		isa.OpSUB:  encodeR(0b0100000, 0, 0, 0b000, 0, 0b0110011),
		isa.OpLUI:  0b0110111,
		isa.OpJAL:  0b1101111,
		isa.OpBEQ:  0b1100011,
		isa.OpLW:   0b010<<12 | 0b0000011,
		isa.OpSW:   0b010<<12 | 0b0100011,

		isa.OpSLTIU: 0b011<<12 | 0b0010011,
		isa.OpXORI:  0b100<<12 | 0b0010011,
		isa.OpORI:   0b110<<12 | 0b0010011,
		isa.OpANDI:  0b111<<12 | 0b0010011,
		isa.OpSLLI:  0b001<<12 | 0b0010011,
		isa.OpSRLI:  0b101<<12 | 0b0010011,
		isa.OpSRAI:  1<<30 | 0b101<<12 | 0b0010011,
		isa.OpAUIPC: 0b0010111,
		isa.OpSLT:   encodeR(0, 0, 0, 0b010, 0, 0b0110011),
		isa.OpSLTU:  encodeR(0, 0, 0, 0b011, 0, 0b0110011),
		isa.OpXOR:   encodeR(0, 0, 0, 0b100, 0, 0b0110011),
		isa.OpSLL:   encodeR(0, 0, 0, 0b001, 0, 0b0110011),
		isa.OpSRL:   encodeR(0, 0, 0, 0b101, 0, 0b0110011),
		isa.OpSRA:   encodeR(0b0100000, 0, 0, 0b101, 0, 0b0110011),
		isa.OpOR:    encodeR(0, 0, 0, 0b110, 0, 0b0110011),
		isa.OpAND:   encodeR(0, 0, 0, 0b111, 0, 0b0110011),
		isa.OpJALR:  0b1100111,
		isa.OpBNE:   0b001<<12 | 0b1100011,
		isa.OpBLT:   0b100<<12 | 0b1100011,
		isa.OpBGE:   0b101<<12 | 0b1100011,
		isa.OpBLTU:  0b110<<12 | 0b1100011,
		isa.OpBGEU:  0b111<<12 | 0b1100011,
		isa.OpLB:    0b000<<12 | 0b0000011,
		isa.OpLH:    0b001<<12 | 0b0000011,
		isa.OpLBU:   0b100<<12 | 0b0000011,
		isa.OpLHU:   0b101<<12 | 0b0000011,
		isa.OpSB:    0b000<<12 | 0b0100011,
		isa.OpSH:    0b001<<12 | 0b0100011,
	}
	assert.Len(t, encodings, 37)
	for op, enc := range encodings {
		got, err := isa.Decode(enc)
		assert.NoError(t, err)
		assert.Equal(t, op, got)
	}
}

package isa

// Rd extracts the rd field (bits 11:7), common to R/I/U/J formats.
func Rd(encoding uint32) uint32 { return ExtractBits(encoding, 11, 7) }

// Rs1 extracts the rs1 field (bits 19:15), common to R/I/S/B formats.
func Rs1(encoding uint32) uint32 { return ExtractBits(encoding, 19, 15) }

// Rs2 extracts the rs2 field (bits 24:20), common to R/S/B formats.
func Rs2(encoding uint32) uint32 { return ExtractBits(encoding, 24, 20) }

// ImmI reconstructs and sign-extends the 12-bit I-format immediate: bits[31:20].
func ImmI(encoding uint32) int32 {
	return int32(SignExtend(ExtractBits(encoding, 31, 20), 12))
}

// ImmS reconstructs and sign-extends the 12-bit S-format immediate:
// (bits[31:25] << 5) | bits[11:7].
func ImmS(encoding uint32) int32 {
	raw := (ExtractBits(encoding, 31, 25) << 5) | ExtractBits(encoding, 11, 7)
	return int32(SignExtend(raw, 12))
}

// ImmB reconstructs and sign-extends the 13-bit B-format immediate:
// (bit[31]<<12) | (bit[7]<<11) | (bits[30:25]<<5) | (bits[11:8]<<1), LSB zero.
func ImmB(encoding uint32) int32 {
	raw := (ExtractBits(encoding, 31, 31) << 12) |
		(ExtractBits(encoding, 7, 7) << 11) |
		(ExtractBits(encoding, 30, 25) << 5) |
		(ExtractBits(encoding, 11, 8) << 1)
	return int32(SignExtend(raw, 13))
}

// ImmU reconstructs the 32-bit U-format immediate: bits[31:12] << 12. This
// is already 32-bit aligned and needs no further sign extension.
func ImmU(encoding uint32) int32 {
	return int32(ExtractBits(encoding, 31, 12) << 12)
}

// ImmJ reconstructs and sign-extends the 21-bit J-format immediate:
// (bit[31]<<20) | (bits[19:12]<<12) | (bit[20]<<11) | (bits[30:21]<<1), LSB zero.
func ImmJ(encoding uint32) int32 {
	raw := (ExtractBits(encoding, 31, 31) << 20) |
		(ExtractBits(encoding, 19, 12) << 12) |
		(ExtractBits(encoding, 20, 20) << 11) |
		(ExtractBits(encoding, 30, 21) << 1)
	return int32(SignExtend(raw, 21))
}

// ShiftAmount extracts the 5-bit shift amount immediate from an I-format
// shift encoding (SLLI/SRLI/SRAI), masking off the funct7-style discriminator
// bits (bit 30 for SRLI/SRAI) that otherwise overlap the I-immediate field.
func ShiftAmount(encoding uint32) uint32 {
	return ExtractBits(encoding, 24, 20)
}

package isa

import "fmt"

// ErrUnknownEncoding is returned by Decode when the opcode/funct3/funct7
// combination does not match any of the 37 supported operations.
var ErrUnknownEncoding = fmt.Errorf("isa: unknown encoding")

// Decode inspects the opcode (bits 6:0), then funct3 (14:12) if needed, then
// funct7 (31:25) or bit 30 for the shift-immediate discriminator, and returns
// the operation tag. It is a pure function of the 32-bit encoding.
func Decode(encoding uint32) (Op, error) {
	opcode := ExtractBits(encoding, 6, 0)
	funct3 := ExtractBits(encoding, 14, 12)

	switch opcode {
	case opcodeOPIMM:
		switch funct3 {
		case 0b000:
			return OpADDI, nil
		case 0b010:
			return OpSLTI, nil
		case 0b011:
			return OpSLTIU, nil
		case 0b100:
			return OpXORI, nil
		case 0b110:
			return OpORI, nil
		case 0b111:
			return OpANDI, nil
		case 0b001:
			return OpSLLI, nil
		case 0b101:
			if ExtractBits(encoding, 30, 30) == 0 {
				return OpSRLI, nil
			}
			return OpSRAI, nil
		}

	case opcodeOP:
		funct7 := ExtractBits(encoding, 31, 25)
		switch funct3 {
		case 0b000:
			if funct7 == 0b0100000 {
				return OpSUB, nil
			}
			return OpADD, nil
		case 0b001:
			return OpSLL, nil
		case 0b010:
			return OpSLT, nil
		case 0b011:
			return OpSLTU, nil
		case 0b100:
			return OpXOR, nil
		case 0b101:
			if funct7 == 0b0100000 {
				return OpSRA, nil
			}
			return OpSRL, nil
		case 0b110:
			return OpOR, nil
		case 0b111:
			return OpAND, nil
		}

	case opcodeLUI:
		return OpLUI, nil
	case opcodeAUIPC:
		return OpAUIPC, nil
	case opcodeJAL:
		return OpJAL, nil
	case opcodeJALR:
		if funct3 == 0b000 {
			return OpJALR, nil
		}

	case opcodeBRANCH:
		switch funct3 {
		case 0b000:
			return OpBEQ, nil
		case 0b001:
			return OpBNE, nil
		case 0b100:
			return OpBLT, nil
		case 0b101:
			return OpBGE, nil
		case 0b110:
			return OpBLTU, nil
		case 0b111:
			return OpBGEU, nil
		}

	case opcodeLOAD:
		switch funct3 {
		case 0b000:
			return OpLB, nil
		case 0b001:
			return OpLH, nil
		case 0b010:
			return OpLW, nil
		case 0b100:
			return OpLBU, nil
		case 0b101:
			return OpLHU, nil
		}

	case opcodeSTORE:
		switch funct3 {
		case 0b000:
			return OpSB, nil
		case 0b001:
			return OpSH, nil
		case 0b010:
			return OpSW, nil
		}
	}

	return OpUnknown, fmt.Errorf("%w: opcode=0x%02x funct3=0x%x encoding=0x%08x", ErrUnknownEncoding, opcode, funct3, encoding)
}

package isa

// Format identifies one of the six RV32I base encoding formats.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatU:
		return "U"
	case FormatJ:
		return "J"
	default:
		return "unknown"
	}
}

// Op is an operation tag: one of the 37 RV32I integer operations this core
// supports, grouped by Format.
type Op uint8

const (
	OpUnknown Op = iota

	// I-format register-immediate ALU ops
	OpADDI
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpSLLI
	OpSRLI
	OpSRAI

	// U-format
	OpLUI
	OpAUIPC

	// R-format register-register ALU ops
	OpADD
	OpSLT
	OpSLTU
	OpAND
	OpOR
	OpXOR
	OpSLL
	OpSRL
	OpSUB
	OpSRA

	// J-format
	OpJAL

	// I-format JALR
	OpJALR

	// B-format conditional branches
	OpBEQ
	OpBNE
	OpBLT
	OpBLTU
	OpBGE
	OpBGEU

	// I-format loads
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU

	// S-format stores
	OpSB
	OpSH
	OpSW
)

// opcodeName is used by dump output and error messages; not exhaustive
// documentation, just a readable label.
var opcodeName = map[Op]string{
	OpADDI: "ADDI", OpSLTI: "SLTI", OpSLTIU: "SLTIU", OpANDI: "ANDI",
	OpORI: "ORI", OpXORI: "XORI", OpSLLI: "SLLI", OpSRLI: "SRLI", OpSRAI: "SRAI",
	OpLUI: "LUI", OpAUIPC: "AUIPC",
	OpADD: "ADD", OpSLT: "SLT", OpSLTU: "SLTU", OpAND: "AND", OpOR: "OR",
	OpXOR: "XOR", OpSLL: "SLL", OpSRL: "SRL", OpSUB: "SUB", OpSRA: "SRA",
	OpJAL: "JAL", OpJALR: "JALR",
	OpBEQ: "BEQ", OpBNE: "BNE", OpBLT: "BLT", OpBLTU: "BLTU", OpBGE: "BGE", OpBGEU: "BGEU",
	OpLB: "LB", OpLH: "LH", OpLW: "LW", OpLBU: "LBU", OpLHU: "LHU",
	OpSB: "SB", OpSH: "SH", OpSW: "SW",
}

func (o Op) String() string {
	if s, ok := opcodeName[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// FormatOf reports the encoding format a given operation belongs to.
func FormatOf(op Op) Format {
	switch op {
	case OpADDI, OpSLTI, OpSLTIU, OpANDI, OpORI, OpXORI, OpSLLI, OpSRLI, OpSRAI,
		OpJALR, OpLB, OpLH, OpLW, OpLBU, OpLHU:
		return FormatI
	case OpLUI, OpAUIPC:
		return FormatU
	case OpADD, OpSLT, OpSLTU, OpAND, OpOR, OpXOR, OpSLL, OpSRL, OpSUB, OpSRA:
		return FormatR
	case OpJAL:
		return FormatJ
	case OpBEQ, OpBNE, OpBLT, OpBLTU, OpBGE, OpBGEU:
		return FormatB
	case OpSB, OpSH, OpSW:
		return FormatS
	default:
		return FormatUnknown
	}
}

// IsLoad reports whether op is one of LB/LH/LW/LBU/LHU.
func IsLoad(op Op) bool {
	switch op {
	case OpLB, OpLH, OpLW, OpLBU, OpLHU:
		return true
	default:
		return false
	}
}

// IsStore reports whether op is one of SB/SH/SW.
func IsStore(op Op) bool {
	switch op {
	case OpSB, OpSH, OpSW:
		return true
	default:
		return false
	}
}

// IsBranch reports whether op is one of the six conditional branches.
func IsBranch(op Op) bool {
	switch op {
	case OpBEQ, OpBNE, OpBLT, OpBLTU, OpBGE, OpBGEU:
		return true
	default:
		return false
	}
}

// Opcode field values (bits [6:0]) for the nine opcodes this core decodes.
const (
	opcodeOPIMM  = 0b0010011
	opcodeOP     = 0b0110011
	opcodeLUI    = 0b0110111
	opcodeAUIPC  = 0b0010111
	opcodeJAL    = 0b1101111
	opcodeJALR   = 0b1100111
	opcodeBRANCH = 0b1100011
	opcodeLOAD   = 0b0000011
	opcodeSTORE  = 0b0100011
)

// Sentinel is the encoding that, when it reaches MEM, ends the simulation:
// `addi a0, zero, 255` used by convention as the program's terminator.
const Sentinel uint32 = 0x0ff00513

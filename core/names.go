package core

// NumericNames holds the plain x0..x31 register names.
var NumericNames = [32]string{
	"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7",
	"x8", "x9", "x10", "x11", "x12", "x13", "x14", "x15",
	"x16", "x17", "x18", "x19", "x20", "x21", "x22", "x23",
	"x24", "x25", "x26", "x27", "x28", "x29", "x30", "x31",
}

// ABINames holds the RV32I calling-convention register names.
var ABINames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterName returns the register name for index, using ABI names when
// abi is set (spec.md §6 display option) and the plain x0..x31 form
// otherwise.
func RegisterName(index uint32, abi bool) string {
	if abi {
		return ABINames[index]
	}
	return NumericNames[index]
}

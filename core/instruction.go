// Package core implements the per-fetched-instruction record and the
// per-operation Execute/Mem/Writeback datapath transformations for every
// one of the 37 supported RV32I operations (spec.md §3, §4.4).
package core

import "github.com/cycleacc/rv32pipe/isa"

// Instruction is a per-fetched-instruction record. It starts out "raw"
// (only Encoding and PC populated, Op == isa.OpUnknown) as produced by
// fetch, and is specialized in place by Decode once it reaches ID.
type Instruction struct {
	Encoding uint32
	PC       uint32

	Op     isa.Op
	Format isa.Format

	Rs1, Rs2, Rd uint32
	Imm          int32

	// Latched source operands, set when the instruction is decoded and
	// refreshed by forwarding while it sits in ID (spec.md §4.5 Phase 1).
	Rs1v, Rs2v uint32

	// Result slots, populated by Execute/MemAccess.
	Rdv  uint32
	Pcv  uint32
	Addr uint32
	Cond bool

	// PredictedTaken records what the controller predicted for a branch
	// at ID time, so EX can detect a misprediction by comparing against
	// the resolved Cond (spec.md §4.5 Phase 3, EX branch resolution).
	PredictedTaken bool
}

// Raw constructs the unspecialized record fetch installs into IF.
func Raw(encoding, pc uint32) *Instruction {
	return &Instruction{Encoding: encoding, PC: pc}
}

// Decode specializes a raw instruction in place: it decodes the operation
// tag, determines its format, and extracts the format's register selectors
// and immediate. rs1v/rs2v are left for the caller to latch from the
// register file (LatchOperands).
func Decode(inst *Instruction) error {
	op, err := isa.Decode(inst.Encoding)
	if err != nil {
		return err
	}
	inst.Op = op
	inst.Format = isa.FormatOf(op)

	switch inst.Format {
	case isa.FormatR:
		inst.Rs1 = isa.Rs1(inst.Encoding)
		inst.Rs2 = isa.Rs2(inst.Encoding)
		inst.Rd = isa.Rd(inst.Encoding)
	case isa.FormatI:
		inst.Rs1 = isa.Rs1(inst.Encoding)
		inst.Rd = isa.Rd(inst.Encoding)
		if op == isa.OpSLLI || op == isa.OpSRLI || op == isa.OpSRAI {
			inst.Imm = int32(isa.ShiftAmount(inst.Encoding))
		} else {
			inst.Imm = isa.ImmI(inst.Encoding)
		}
	case isa.FormatS:
		inst.Rs1 = isa.Rs1(inst.Encoding)
		inst.Rs2 = isa.Rs2(inst.Encoding)
		inst.Imm = isa.ImmS(inst.Encoding)
	case isa.FormatB:
		inst.Rs1 = isa.Rs1(inst.Encoding)
		inst.Rs2 = isa.Rs2(inst.Encoding)
		inst.Imm = isa.ImmB(inst.Encoding)
	case isa.FormatU:
		inst.Rd = isa.Rd(inst.Encoding)
		inst.Imm = isa.ImmU(inst.Encoding)
	case isa.FormatJ:
		inst.Rd = isa.Rd(inst.Encoding)
		inst.Imm = isa.ImmJ(inst.Encoding)
	}

	return nil
}

// RegSource is anything that can answer a register-file read, satisfied by
// regfile.File. Kept as a narrow interface so core does not import regfile.
type RegSource interface {
	Read(index uint32) uint32
}

// LatchOperands reads rs1v/rs2v from src for the instruction's decoded
// register selectors. Formats with no rs1/rs2 (U, J) simply read register 0.
func LatchOperands(inst *Instruction, src RegSource) {
	inst.Rs1v = src.Read(inst.Rs1)
	inst.Rs2v = src.Read(inst.Rs2)
}

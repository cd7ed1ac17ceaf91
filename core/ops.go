package core

import (
	"fmt"

	"github.com/cycleacc/rv32pipe/isa"
)

// MemSource is the narrow memory interface Execute/MemAccess need,
// satisfied by *memory.Memory.
type MemSource interface {
	LoadByte(address uint32) (uint8, error)
	StoreByte(address uint32, value uint8) error
	LoadHalfword(address uint32) (uint16, error)
	StoreHalfword(address uint32, value uint16) error
	LoadWord(address uint32) (uint32, error)
	StoreWord(address uint32, value uint32) error
}

// RegSink is the narrow register-file write interface Writeback needs.
type RegSink interface {
	Write(index uint32, value uint32)
}

func i32(v uint32) int32 { return int32(v) }
func u32(v int32) uint32 { return uint32(v) }

// Execute performs the per-operation Execute phase (spec.md §4.4): pure
// arithmetic/address/condition computation over latched Rs1v/Rs2v/Imm/PC,
// writing into Rdv/Pcv/Addr/Cond as appropriate. 32-bit arithmetic wraps
// unless explicitly signed.
func Execute(inst *Instruction) error {
	switch inst.Op {
	case isa.OpADDI:
		inst.Rdv = u32(i32(inst.Rs1v) + inst.Imm)
	case isa.OpSLTI:
		inst.Rdv = boolToU32(i32(inst.Rs1v) < inst.Imm)
	case isa.OpSLTIU:
		inst.Rdv = boolToU32(inst.Rs1v < u32(inst.Imm))
	case isa.OpXORI:
		inst.Rdv = inst.Rs1v ^ u32(inst.Imm)
	case isa.OpORI:
		inst.Rdv = inst.Rs1v | u32(inst.Imm)
	case isa.OpANDI:
		inst.Rdv = inst.Rs1v & u32(inst.Imm)
	case isa.OpSLLI:
		inst.Rdv = inst.Rs1v << uint(inst.Imm&0x1F)
	case isa.OpSRLI:
		inst.Rdv = inst.Rs1v >> uint(inst.Imm&0x1F)
	case isa.OpSRAI:
		inst.Rdv = u32(i32(inst.Rs1v) >> uint(inst.Imm&0x1F))

	case isa.OpLUI:
		inst.Rdv = u32(inst.Imm)
	case isa.OpAUIPC:
		inst.Rdv = inst.PC + u32(inst.Imm)

	case isa.OpADD:
		inst.Rdv = inst.Rs1v + inst.Rs2v
	case isa.OpSLT:
		inst.Rdv = boolToU32(i32(inst.Rs1v) < i32(inst.Rs2v))
	case isa.OpSLTU:
		inst.Rdv = boolToU32(inst.Rs1v < inst.Rs2v)
	case isa.OpAND:
		inst.Rdv = inst.Rs1v & inst.Rs2v
	case isa.OpOR:
		inst.Rdv = inst.Rs1v | inst.Rs2v
	case isa.OpXOR:
		inst.Rdv = inst.Rs1v ^ inst.Rs2v
	case isa.OpSLL:
		inst.Rdv = inst.Rs1v << (inst.Rs2v & 0x1F)
	case isa.OpSRL:
		inst.Rdv = inst.Rs1v >> (inst.Rs2v & 0x1F)
	case isa.OpSUB:
		inst.Rdv = inst.Rs1v - inst.Rs2v
	case isa.OpSRA:
		inst.Rdv = u32(i32(inst.Rs1v) >> (inst.Rs2v & 0x1F))

	case isa.OpJAL:
		inst.Rdv = inst.PC + 4
		inst.Pcv = inst.PC + u32(inst.Imm)
	case isa.OpJALR:
		inst.Rdv = inst.PC + 4
		inst.Pcv = (inst.Rs1v + u32(inst.Imm)) &^ 1

	case isa.OpBEQ:
		inst.Pcv = inst.PC + u32(inst.Imm)
		inst.Cond = inst.Rs1v == inst.Rs2v
	case isa.OpBNE:
		inst.Pcv = inst.PC + u32(inst.Imm)
		inst.Cond = inst.Rs1v != inst.Rs2v
	case isa.OpBLT:
		inst.Pcv = inst.PC + u32(inst.Imm)
		inst.Cond = i32(inst.Rs1v) < i32(inst.Rs2v)
	case isa.OpBGE:
		inst.Pcv = inst.PC + u32(inst.Imm)
		inst.Cond = i32(inst.Rs1v) >= i32(inst.Rs2v)
	case isa.OpBLTU:
		inst.Pcv = inst.PC + u32(inst.Imm)
		inst.Cond = inst.Rs1v < inst.Rs2v
	case isa.OpBGEU:
		inst.Pcv = inst.PC + u32(inst.Imm)
		inst.Cond = inst.Rs1v >= inst.Rs2v

	case isa.OpLB, isa.OpLH, isa.OpLW, isa.OpLBU, isa.OpLHU:
		inst.Rdv = inst.Rs1v + u32(inst.Imm) // address, refined in MemAccess
	case isa.OpSB, isa.OpSH, isa.OpSW:
		inst.Addr = inst.Rs1v + u32(inst.Imm)

	default:
		return fmt.Errorf("core: execute: unhandled op %v", inst.Op)
	}
	return nil
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// MemAccess performs the per-operation MemAccess phase for loads and
// stores; it is a no-op for every other operation.
func MemAccess(inst *Instruction, mem MemSource) error {
	switch inst.Op {
	case isa.OpLB:
		v, err := mem.LoadByte(inst.Rdv)
		if err != nil {
			return err
		}
		inst.Rdv = u32(int32(int8(v)))
	case isa.OpLH:
		v, err := mem.LoadHalfword(inst.Rdv)
		if err != nil {
			return err
		}
		inst.Rdv = u32(int32(int16(v)))
	case isa.OpLW:
		v, err := mem.LoadWord(inst.Rdv)
		if err != nil {
			return err
		}
		inst.Rdv = v
	case isa.OpLBU:
		v, err := mem.LoadByte(inst.Rdv)
		if err != nil {
			return err
		}
		inst.Rdv = uint32(v)
	case isa.OpLHU:
		v, err := mem.LoadHalfword(inst.Rdv)
		if err != nil {
			return err
		}
		inst.Rdv = uint32(v)

	case isa.OpSB:
		return mem.StoreByte(inst.Addr, uint8(inst.Rs2v))
	case isa.OpSH:
		return mem.StoreHalfword(inst.Addr, uint16(inst.Rs2v))
	case isa.OpSW:
		return mem.StoreWord(inst.Addr, inst.Rs2v)
	}
	return nil
}

// Writeback performs the per-operation Writeback phase: a register-file
// commit for ops with a destination. JAL/JALR's PC redirect already took
// effect back at the ID-decode/EX-execute cycle that resolved it (§4.5);
// re-applying it here, a few cycles later at WB, would stomp on PC state
// the fetch unit has since moved past, so WB only ever commits rd.
func Writeback(inst *Instruction, regs RegSink) {
	switch inst.Op {
	case isa.OpBEQ, isa.OpBNE, isa.OpBLT, isa.OpBGE, isa.OpBLTU, isa.OpBGEU,
		isa.OpSB, isa.OpSH, isa.OpSW:
		// no register destination
	default:
		if inst.Rd != 0 {
			regs.Write(inst.Rd, inst.Rdv)
		}
	}
}

// Package pipeline implements the five-stage pipeline controller: the
// per-cycle driver that owns the IF/ID/EX/MEM/WB stage slots, the program
// counter, the register file, the stall and kill signals, and the branch
// predictor, and sequences them exactly as spec.md §4.5 describes (grounded
// on the reference simulator's Executor::exec cycle body).
package pipeline

import (
	"fmt"

	"github.com/cycleacc/rv32pipe/core"
	"github.com/cycleacc/rv32pipe/isa"
	"github.com/cycleacc/rv32pipe/memory"
	"github.com/cycleacc/rv32pipe/predictor"
	"github.com/cycleacc/rv32pipe/regfile"
)

// Stats accumulates run-wide counters reported once a run ends (spec.md's
// supplemented prediction-accuracy and cycle-count dumps).
type Stats struct {
	Cycles       uint64
	Retired      bool
	ReturnValue  uint32
	Branches     uint64
	Mispredicts  uint64
	ClockLimited bool
}

// Controller drives the pipeline one cycle at a time. The zero value is not
// usable; construct with New.
type Controller struct {
	mem  *memory.Memory
	regs regfile.File
	pc   regfile.Register
	pred *predictor.Predictor

	IF, ID, EX, MEM, WB *core.Instruction

	stall stallSignal
	kill  killSignal

	memPending *core.Instruction
	memWait    int

	stats Stats
}

// New returns a Controller over mem, with a predictor sized to mem's
// address space and enabled/disabled per predictorEnabled.
func New(mem *memory.Memory, predictorEnabled bool) *Controller {
	return &Controller{
		mem:  mem,
		pred: predictor.New(mem.Size(), predictorEnabled),
	}
}

// RegisterFile exposes the committed (post-tick) register values, e.g. for
// a debugger dump. Register 0 always reads 0.
func (c *Controller) RegisterFile() *regfile.File { return &c.regs }

// PC returns the current (output-side) program counter.
func (c *Controller) PC() uint32 { return c.pc.Read() }

// Stats returns a copy of the accumulated run statistics so far.
func (c *Controller) Stats() Stats { return c.stats }

// Slots returns the five stage slots in IF..WB order, for display; entries
// are nil where the stage holds a bubble.
func (c *Controller) Slots() [5]*core.Instruction {
	return [5]*core.Instruction{c.IF, c.ID, c.EX, c.MEM, c.WB}
}

// Run drives the pipeline to retirement or until clockLimit cycles have
// elapsed (0 means unlimited), invoking onCycle after every completed cycle
// when non-nil. It returns the final statistics.
func (c *Controller) Run(clockLimit uint64, onCycle func(*Controller)) (Stats, error) {
	for clockLimit == 0 || c.stats.Cycles < clockLimit {
		retired, err := c.Step()
		if err != nil {
			return c.stats, err
		}
		c.stats.Cycles++
		if onCycle != nil {
			onCycle(c)
		}
		if retired {
			c.stats.Retired = true
			return c.stats, nil
		}
	}
	c.stats.ClockLimited = true
	return c.stats, nil
}

// Step advances the pipeline by exactly one cycle, following spec.md
// §4.5's five phases. It returns retired=true once MEM holds the sentinel
// encoding and that cycle's effects are visible; c.stats.ReturnValue is set
// at that point.
//
// Phase 3's sub-steps run in the order Fetch, WriteBack, Decode, Execute,
// MemAccess: Fetch must run before Decode/Execute so a taken-branch
// redirect they issue later in the same phase is not clobbered by Fetch's
// default PC.input := PC.output + 4 (grounded on lib/Executor.cpp's actual
// call order, which spec.md's prose listing does not make explicit).
//
// The register file is ticked immediately after WriteBack, not deferred to
// Phase 4: InstWriteBack in the reference ticks RF right after writing it,
// before exec() moves on to InstDecode, so a distance-3 RAW producer
// sitting in WB that cycle becomes visible to its consumer decoding in ID
// the same cycle. forward() only resolves EX/MEM producers; ticking late
// would leave WB's result invisible to LatchOperands for one extra cycle.
func (c *Controller) Step() (retired bool, err error) {
	c.forward()

	c.pc.Tick()
	c.WB = c.MEM
	c.MEM = c.EX
	if !c.stall.stalls(stallEX) {
		c.EX = c.ID
	} else if c.stall.bubble {
		c.EX = nil
	}
	if !c.stall.stalls(stallID) {
		c.ID = c.IF
	}

	if !c.stall.stalls(stallIF) {
		if err := c.fetch(); err != nil {
			return false, err
		}
	}

	if c.WB != nil {
		core.Writeback(c.WB, &c.regs)
	}
	c.regs.Tick()

	// A word that fails to decode stays OpUnknown instead of ending the run:
	// it may be a wrong-path fetch that EX kills this same cycle, or a word
	// past the sentinel that never reaches MEM. EX skips it, and it is
	// reported as a decode error once it reaches MEM.
	if !c.stall.stalls(stallID) && c.ID != nil {
		_ = c.decodeID()
	}

	if !c.stall.stalls(stallEX) && c.EX != nil && c.EX.Op != isa.OpUnknown {
		if err := c.executeEX(); err != nil {
			return false, err
		}
	}

	if err := c.memAccess(); err != nil {
		return false, err
	}
	if c.MEM != nil && c.MEM.Op == isa.OpUnknown {
		_, err := isa.Decode(c.MEM.Encoding)
		return false, fmt.Errorf("pipeline: decode at 0x%08x: %w", c.MEM.PC, err)
	}

	c.stall.countDown()
	if c.stall.noStall() && c.EX != nil && isa.IsLoad(c.EX.Op) && c.ID != nil {
		if c.EX.Rd != 0 && (c.EX.Rd == c.ID.Rs1 || c.EX.Rd == c.ID.Rs2) {
			c.stall.set(stallMEM, 1, true)
		}
	}

	if c.kill.kills(killIF) {
		c.IF = nil
	}
	if c.kill.kills(killID) {
		c.ID = nil
	}
	c.kill.reset()

	if c.MEM != nil && c.MEM.Encoding == isa.Sentinel {
		c.stats.ReturnValue = c.regs.Read(10) & 0xFF
		return true, nil
	}
	return false, nil
}

// forward implements Phase 1: for each of ID's nonzero source registers,
// prefer EX's result (unless EX is a load, whose value isn't ready yet),
// falling back to MEM's result.
func (c *Controller) forward() {
	if c.ID == nil {
		return
	}
	if c.ID.Rs1 != 0 {
		switch {
		case c.EX != nil && c.EX.Rd == c.ID.Rs1 && !isa.IsLoad(c.EX.Op):
			c.ID.Rs1v = c.EX.Rdv
		case c.MEM != nil && c.MEM.Rd == c.ID.Rs1:
			c.ID.Rs1v = c.MEM.Rdv
		}
	}
	if c.ID.Rs2 != 0 {
		switch {
		case c.EX != nil && c.EX.Rd == c.ID.Rs2 && !isa.IsLoad(c.EX.Op):
			c.ID.Rs2v = c.EX.Rdv
		case c.MEM != nil && c.MEM.Rd == c.ID.Rs2:
			c.ID.Rs2v = c.MEM.Rdv
		}
	}
}

// fetch reads one word at the current PC into a fresh raw instruction and
// advances the PC input side by 4; Decode/Execute later in this same phase
// may override that default with a redirect.
func (c *Controller) fetch() error {
	pc := c.pc.Read()
	encoding, err := c.mem.LoadWord(pc)
	if err != nil {
		return fmt.Errorf("pipeline: fetch at 0x%08x: %w", pc, err)
	}
	c.IF = core.Raw(encoding, pc)
	c.pc.Write(pc + 4)
	return nil
}

// decodeID specializes a freshly-arrived ID instruction (ID only takes a new
// instruction on cycles where it is not stalled, and Step runs decode on
// exactly those cycles, so each instruction is decoded the cycle it arrives)
// and resolves control flow that is decided at decode time: unconditional
// jumps and predicted-taken branches redirect the PC and flush everything
// strictly earlier than ID. An encoding that fails to decode is left as
// OpUnknown and its error returned; Step defers reporting it (see Step).
func (c *Controller) decodeID() error {
	if c.ID.Op == isa.OpUnknown {
		if err := core.Decode(c.ID); err != nil {
			return fmt.Errorf("pipeline: decode at 0x%08x: %w", c.ID.PC, err)
		}
		core.LatchOperands(c.ID, &c.regs)
	}

	switch {
	case c.ID.Op == isa.OpJAL:
		c.pc.Write(c.ID.PC + uint32(c.ID.Imm))
		c.kill.set(killID)
	case isa.IsBranch(c.ID.Op):
		predicted := c.pred.Predict(c.ID.PC)
		c.ID.PredictedTaken = predicted
		if predicted {
			c.pc.Write(c.ID.PC + uint32(c.ID.Imm))
			c.kill.set(killID)
		}
	}
	return nil
}

// executeEX runs the EX slot's datapath computation, then resolves control
// flow that is only known at execute time: JALR's computed target always
// redirects; a branch's resolved condition redirects only on misprediction
// against what decodeID guessed.
func (c *Controller) executeEX() error {
	if err := core.Execute(c.EX); err != nil {
		return fmt.Errorf("pipeline: execute at 0x%08x: %w", c.EX.PC, err)
	}

	switch {
	case c.EX.Op == isa.OpJALR:
		c.pc.Write(c.EX.Pcv)
		c.kill.set(killEX)
	case isa.IsBranch(c.EX.Op):
		c.stats.Branches++
		c.pred.Report(c.EX.PC, c.EX.Cond)
		if c.EX.Cond != c.EX.PredictedTaken {
			c.stats.Mispredicts++
			if c.EX.Cond {
				c.pc.Write(c.EX.Pcv)
			} else {
				c.pc.Write(c.EX.PC + 4)
			}
			c.kill.set(killEX)
		}
	}
	return nil
}

// memAccess implements the buffered 3-cycle memory stage: the first cycle
// a load/store reaches MEM, it is pulled into a private buffer and a
// 3-cycle stall is asserted (no bubble: EX/ID/IF simply hold in place);
// MEM shows ∅ to WB for the next two cycles, then performs the real access
// on the third and resumes passing through normally.
func (c *Controller) memAccess() error {
	if c.memWait == 0 {
		if c.MEM == nil || !(isa.IsLoad(c.MEM.Op) || isa.IsStore(c.MEM.Op)) {
			return nil
		}
		c.memPending = c.MEM
		c.memWait = 3
		c.stall.set(stallMEM, 3, false)
	}

	c.memWait--
	if c.memWait == 0 {
		c.MEM = c.memPending
		c.memPending = nil
		if err := core.MemAccess(c.MEM, c.mem); err != nil {
			return fmt.Errorf("pipeline: mem access at 0x%08x: %w", c.MEM.PC, err)
		}
		return nil
	}
	c.MEM = nil
	return nil
}

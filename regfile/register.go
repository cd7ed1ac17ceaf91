// Package regfile implements the synchronous register abstraction that
// underlies both the program counter and the 32-entry general-purpose
// register file (spec.md §4.6): separate input/output sides, with an
// explicit tick that copies input into output once per cycle. This is what
// forces the pipeline controller to forward explicitly rather than reading
// a register file that updates itself mid-cycle.
package regfile

// Register is a single synchronous storage cell with distinct read
// ("output") and write ("input") sides.
type Register struct {
	input, output uint32
}

// NewRegister returns a Register whose output (and input) are initialized
// to value.
func NewRegister(value uint32) Register {
	return Register{input: value, output: value}
}

// Read returns the current (output) value.
func (r *Register) Read() uint32 { return r.output }

// Write latches value into the input side; it is not visible via Read
// until the next Tick.
func (r *Register) Write(value uint32) { r.input = value }

// Tick copies input into output.
func (r *Register) Tick() { r.output = r.input }

// File is the 32-entry general-purpose register file. Register 0 is
// hard-wired to zero: writes to it are suppressed and it never ticks.
type File struct {
	regs [32]Register
}

// Read returns the current value of register index (0 always reads 0).
func (f *File) Read(index uint32) uint32 {
	if index == 0 {
		return 0
	}
	return f.regs[index].Read()
}

// Write latches value into register index's input side. Writes to index 0
// are suppressed.
func (f *File) Write(index uint32, value uint32) {
	if index == 0 {
		return
	}
	f.regs[index].Write(value)
}

// Tick copies input to output for registers 1..31; register 0 is skipped
// so it can never observe a stray write.
func (f *File) Tick() {
	for i := 1; i < 32; i++ {
		f.regs[i].Tick()
	}
}

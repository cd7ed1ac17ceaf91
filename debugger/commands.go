package debugger

import (
	"fmt"
)

// cmdContinue resumes free-running execution.
func (d *Debugger) cmdContinue(args []string) error {
	d.StepMode = StepNone
	d.Running = true
	d.Println("Continuing...")
	return nil
}

// cmdStep executes exactly one cycle.
func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

// cmdBreak sets a breakpoint on the fetch PC.
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address>")
	}
	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(address, false)
	d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, address)
	return nil
}

// cmdTBreak sets a breakpoint that deletes itself after its first hit.
func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address>")
	}
	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(address, true)
	d.Printf("Temporary breakpoint %d at 0x%08X\n", bp.ID, address)
	return nil
}

// cmdDelete removes a breakpoint by ID, or every breakpoint if no ID given.
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}
	id, err := parseInt(args[0])
	if err != nil {
		return fmt.Errorf("usage: delete [id]")
	}
	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <id>")
	}
	id, err := parseInt(args[0])
	if err != nil {
		return fmt.Errorf("usage: enable <id>")
	}
	return d.Breakpoints.EnableBreakpoint(id)
}

func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <id>")
	}
	id, err := parseInt(args[0])
	if err != nil {
		return fmt.Errorf("usage: disable <id>")
	}
	return d.Breakpoints.DisableBreakpoint(id)
}

// cmdInfo prints the breakpoint table.
func (d *Debugger) cmdInfo(args []string) error {
	bps := d.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		d.Println("No breakpoints set")
		return nil
	}
	for _, bp := range bps {
		state := "enabled"
		if !bp.Enabled {
			state = "disabled"
		}
		d.Printf("%-3d 0x%08X %-8s hits=%d\n", bp.ID, bp.Address, state, bp.HitCount)
	}
	return nil
}

// cmdRegs prints every general-purpose register.
func (d *Debugger) cmdRegs(args []string) error {
	regs := d.Controller.RegisterFile()
	for i := 0; i < 32; i += 4 {
		d.Printf("x%-2d=%08x  x%-2d=%08x  x%-2d=%08x  x%-2d=%08x\n",
			i, regs.Read(uint32(i)),
			i+1, regs.Read(uint32(i+1)),
			i+2, regs.Read(uint32(i+2)),
			i+3, regs.Read(uint32(i+3)))
	}
	d.Printf("pc=%08x\n", d.Controller.PC())
	return nil
}

// cmdStage prints the instruction currently occupying each pipeline slot.
func (d *Debugger) cmdStage(args []string) error {
	names := [5]string{"IF", "ID", "EX", "MEM", "WB"}
	for i, inst := range d.Controller.Slots() {
		if inst == nil {
			d.Printf("%-3s  (bubble)\n", names[i])
			continue
		}
		d.Printf("%-3s  0x%08x  %s\n", names[i], inst.PC, inst.Op)
	}
	return nil
}

// cmdHistory lists recorded command lines, optionally filtered by prefix, or
// clears the history when the first argument is "clear".
func (d *Debugger) cmdHistory(args []string) error {
	if len(args) > 0 && args[0] == "clear" {
		d.History.Clear()
		d.Println("History cleared")
		return nil
	}

	entries := d.History.GetAll()
	if len(args) > 0 {
		entries = d.History.Search(args[0])
	}
	if len(entries) == 0 {
		d.Println("No history")
		return nil
	}
	for i, cmd := range entries {
		d.Printf("%4d  %s\n", i+1, cmd)
	}
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println("commands:")
	d.Println("  continue, c          resume until a breakpoint or retirement")
	d.Println("  step, s              advance exactly one cycle")
	d.Println("  break, b <addr>      set a breakpoint on a fetch address")
	d.Println("  tbreak, tb <addr>    set a one-shot breakpoint")
	d.Println("  delete, d [id]       delete a breakpoint, or all of them")
	d.Println("  enable/disable <id>  toggle a breakpoint")
	d.Println("  info, i              list breakpoints")
	d.Println("  regs, r              dump the register file")
	d.Println("  stage                show the five pipeline slots")
	d.Println("  history [prefix]     list command history, filtered by prefix")
	d.Println("  history clear        clear command history")
	d.Println("  help, h, ?           this text")
	d.Println("  quit, q              exit the debugger")
	return nil
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// Package debugger provides an interactive front end for single-stepping
// the pipeline, inspecting its five stage slots and register file, and
// pausing at address breakpoints — over both a line-oriented CLI and a
// tcell/tview TUI.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cycleacc/rv32pipe/pipeline"
)

// StepMode controls how ShouldBreak decides to pause execution.
type StepMode int

const (
	StepNone   StepMode = iota // run freely until breakpoint or retirement
	StepSingle                 // pause after exactly one cycle
)

// Debugger wraps a pipeline.Controller with breakpoints, command history,
// and an output buffer shared by both front ends.
type Debugger struct {
	Controller *pipeline.Controller

	Breakpoints *BreakpointManager
	History     *History

	Running  bool
	StepMode StepMode

	LastCommand string
	Output      strings.Builder
}

// NewDebugger creates a debugger around an already-constructed controller.
func NewDebugger(c *pipeline.Controller) *Debugger {
	return &Debugger{
		Controller:  c,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
		StepMode:    StepNone,
	}
}

// ResolveAddress parses a decimal or 0x-prefixed hex address literal.
func (d *Debugger) ResolveAddress(addrStr string) (uint32, error) {
	s := addrStr
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", addrStr)
	}
	return uint32(v), nil
}

// ExecuteCommand parses and dispatches a single command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s":
		return d.cmdStep(args)
	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdTBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdEnable(args)
	case "disable":
		return d.cmdDisable(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "regs", "r":
		return d.cmdRegs(args)
	case "stage":
		return d.cmdStage(args)
	case "history":
		return d.cmdHistory(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak reports whether execution should pause before the next cycle,
// checking single-step mode first and then any breakpoint on the fetch PC.
func (d *Debugger) ShouldBreak() (bool, string) {
	if d.StepMode == StepSingle {
		d.StepMode = StepNone
		return true, "single step"
	}

	pc := d.Controller.PC()
	bp := d.Breakpoints.GetBreakpoint(pc)
	if bp == nil || !bp.Enabled {
		return false, ""
	}

	processed := d.Breakpoints.ProcessHit(pc)
	if processed.Temporary {
		return true, fmt.Sprintf("temporary breakpoint %d", processed.ID)
	}
	return true, fmt.Sprintf("breakpoint %d", processed.ID)
}

// GetOutput returns and clears the accumulated output buffer.
func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

func (d *Debugger) Printf(format string, args ...interface{}) {
	d.Output.WriteString(fmt.Sprintf(format, args...))
}

func (d *Debugger) Println(args ...interface{}) {
	d.Output.WriteString(fmt.Sprintln(args...))
}

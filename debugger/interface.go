package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RunCLI drives the debugger from a line-oriented REPL on stdin/stdout.
func RunCLI(d *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(rv32pipe) ")
		if !scanner.Scan() {
			break
		}

		cmdLine := strings.TrimSpace(scanner.Text())
		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := d.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		if out := d.GetOutput(); out != "" {
			fmt.Print(out)
		}

		if d.Running {
			runUntilPause(d)
		}
	}

	return scanner.Err()
}

// runUntilPause single-steps the controller until ShouldBreak fires, the
// program retires, or a cycle error occurs.
func runUntilPause(d *Debugger) {
	for d.Running {
		if shouldBreak, reason := d.ShouldBreak(); shouldBreak {
			d.Running = false
			fmt.Printf("Stopped: %s at pc=0x%08x\n", reason, d.Controller.PC())
			return
		}

		retired, err := d.Controller.Step()
		if err != nil {
			d.Running = false
			fmt.Printf("Runtime error: %v\n", err)
			return
		}
		if retired {
			d.Running = false
			stats := d.Controller.Stats()
			fmt.Printf("Program retired: return value %d, %d cycles\n", stats.ReturnValue, stats.Cycles)
			return
		}
	}
}

// RunTUI drives the debugger from the tcell/tview text interface.
func RunTUI(d *Debugger) error {
	tui := NewTUI(d)
	return tui.Run()
}

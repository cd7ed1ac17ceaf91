package debugger

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// displayUpdateFrequency bounds how often the TUI redraws during a free
// run, so a multi-million-cycle program doesn't thrash the terminal.
const displayUpdateFrequency = 100

// TUI is the tcell/tview front end: a pipeline-slot view, a register-file
// view, an output log, and a command line.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	StageView    *tview.TextView
	RegisterView *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField
}

func NewTUI(d *Debugger) *TUI {
	t := &TUI{Debugger: d, App: tview.NewApplication()}
	t.build()
	return t
}

func (t *TUI) build() {
	t.StageView = tview.NewTextView().SetDynamicColors(true)
	t.StageView.SetBorder(true).SetTitle(" pipeline ")

	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" registers ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.OutputView.SetBorder(true).SetTitle(" output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
	t.CommandInput.SetInputCapture(t.handleHistoryKey)
	t.CommandInput.SetBorder(true).SetTitle(" command ")

	top := tview.NewFlex().
		AddItem(t.StageView, 0, 1, false).
		AddItem(t.RegisterView, 0, 1, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 0, 2, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.App.SetRoot(layout, true).SetFocus(t.CommandInput)
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})

	t.RefreshAll()
}

// handleHistoryKey lets the up/down arrows walk command recall the way a
// shell's line editor does, leaving every other key untouched.
func (t *TUI) handleHistoryKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		if cmd := t.Debugger.History.Previous(); cmd != "" {
			t.CommandInput.SetText(cmd)
		}
		return nil
	case tcell.KeyDown:
		t.CommandInput.SetText(t.Debugger.History.Next())
		return nil
	}
	return event
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	if cmd == "quit" || cmd == "q" {
		t.App.Stop()
		return
	}
	t.executeCommand(cmd)
	t.CommandInput.SetText("")
}

func (t *TUI) executeCommand(cmd string) {
	if err := t.Debugger.ExecuteCommand(cmd); err != nil {
		t.WriteOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
	}
	if out := t.Debugger.GetOutput(); out != "" {
		t.WriteOutput(out)
	}

	if t.Debugger.Running {
		t.runUntilPauseOrRedraw()
	}
	t.RefreshAll()
}

// runUntilPauseOrRedraw single-steps the controller, redrawing every
// displayUpdateFrequency cycles so a long free run stays responsive.
func (t *TUI) runUntilPauseOrRedraw() {
	d := t.Debugger
	cycles := 0
	for d.Running {
		if shouldBreak, reason := d.ShouldBreak(); shouldBreak {
			d.Running = false
			t.WriteOutput(fmt.Sprintf("stopped: %s at pc=0x%08x\n", reason, d.Controller.PC()))
			return
		}

		retired, err := d.Controller.Step()
		if err != nil {
			d.Running = false
			t.WriteOutput(fmt.Sprintf("runtime error: %v\n", err))
			return
		}
		if retired {
			d.Running = false
			stats := d.Controller.Stats()
			t.WriteOutput(fmt.Sprintf("retired: return value %d, %d cycles\n", stats.ReturnValue, stats.Cycles))
			return
		}

		cycles++
		if cycles%displayUpdateFrequency == 0 {
			t.RefreshAll()
		}
	}
}

func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

func (t *TUI) RefreshAll() {
	t.updateStageView()
	t.updateRegisterView()
	t.App.Draw()
}

func (t *TUI) updateStageView() {
	names := [5]string{"IF", "ID", "EX", "MEM", "WB"}
	text := ""
	for i, inst := range t.Debugger.Controller.Slots() {
		if inst == nil {
			text += fmt.Sprintf("%-3s  [gray](bubble)[white]\n", names[i])
			continue
		}
		text += fmt.Sprintf("%-3s  0x%08x  %s\n", names[i], inst.PC, inst.Op)
	}
	t.StageView.SetText(text)
}

func (t *TUI) updateRegisterView() {
	regs := t.Debugger.Controller.RegisterFile()
	text := ""
	for i := 0; i < 32; i += 2 {
		text += fmt.Sprintf("x%-2d=%08x  x%-2d=%08x\n", i, regs.Read(uint32(i)), i+1, regs.Read(uint32(i+1)))
	}
	text += fmt.Sprintf("pc=%08x\n", t.Debugger.Controller.PC())
	t.RegisterView.SetText(text)
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	return t.App.Run()
}

// rv32pipe simulates a five-stage pipelined RV32I core. It reads a memory
// image on stdin, runs the pipeline to retirement (or a clock limit), and
// writes the return value to stdout. Diagnostics go to stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cycleacc/rv32pipe/config"
	"github.com/cycleacc/rv32pipe/core"
	"github.com/cycleacc/rv32pipe/debugger"
	"github.com/cycleacc/rv32pipe/memory"
	"github.com/cycleacc/rv32pipe/pipeline"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		debugMode   = flag.Bool("debug", false, "Start in debugger mode (CLI)")
		tuiMode     = flag.Bool("tui", false, "Start in TUI debugger mode")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")

		memSize      = flag.Int("memory-size", 0, "Memory capacity in bytes (0: use config default)")
		clockLimit   = flag.Uint64("clock-limit", 0, "Stop after this many cycles (0: use config default)")
		predictorOff = flag.Bool("no-predictor", false, "Disable the branch predictor (all branches predict not-taken)")
		abiNames     = flag.Bool("abi-names", false, "Force ABI register names in dumps")
		numericNames = flag.Bool("numeric-names", false, "Force numeric x0..x31 register names in dumps")

		dumpRegState = flag.Bool("dump-regs", false, "Dump the register file on retirement")
		dumpAccuracy = flag.Bool("dump-accuracy", false, "Dump branch prediction accuracy on retirement")
		dumpCycles   = flag.Bool("dump-cycles", false, "Dump total cycle count on retirement")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("rv32pipe %s (%s)\n", Version, Commit)
		os.Exit(0)
	}
	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rv32pipe: %v\n", err)
		os.Exit(1)
	}

	if *memSize > 0 {
		cfg.Memory.SizeBytes = *memSize
	}
	if *clockLimit > 0 {
		cfg.Clock.Limit = *clockLimit
	}
	if *predictorOff {
		cfg.Predictor.Adaptive = false
	}
	if *abiNames {
		cfg.Display.ABINames = true
	}
	if *numericNames {
		cfg.Display.ABINames = false
	}
	if *dumpRegState {
		cfg.Dump.RegState = true
	}
	if *dumpAccuracy {
		cfg.Dump.PredictionAccuracy = true
	}
	if *dumpCycles {
		cfg.Dump.TotalClockCycle = true
	}

	mem := memory.New(cfg.Memory.SizeBytes)
	if err := memory.LoadImage(mem, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "rv32pipe: loading image: %v\n", err)
		os.Exit(1)
	}

	controller := pipeline.New(mem, cfg.Predictor.Adaptive)

	if *debugMode || *tuiMode {
		dbg := debugger.NewDebugger(controller)
		var runErr error
		if *tuiMode {
			runErr = debugger.RunTUI(dbg)
		} else {
			fmt.Println("rv32pipe debugger - type 'help' for commands")
			runErr = debugger.RunCLI(dbg)
		}
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "rv32pipe: debugger: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	start := time.Now()
	stats, err := controller.Run(cfg.Clock.Limit, buildDumper(cfg))
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "rv32pipe: %v\n", err)
		os.Exit(1)
	}

	dumpOnExit(cfg, controller, stats, elapsed)

	fmt.Println(stats.ReturnValue)

	if !stats.Retired {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// buildDumper returns the per-cycle onCycle callback that implements
// Config.Dump.Inst as a stderr line naming the instruction in WB, or nil
// when Dump.Inst is off so Run skips the hook entirely. Config.Trace.MemOps
// is not read; no memory-operation trace is written.
func buildDumper(cfg *config.Config) func(*pipeline.Controller) {
	if !cfg.Dump.Inst {
		return nil
	}
	return func(c *pipeline.Controller) {
		wb := c.Slots()[4]
		if wb == nil {
			return
		}
		if cfg.Dump.TargetAddr {
			fmt.Fprintf(os.Stderr, "cycle %d: wb pc=0x%08x %s\n", c.Stats().Cycles, wb.PC, wb.Op)
		} else {
			fmt.Fprintf(os.Stderr, "cycle %d: wb %s\n", c.Stats().Cycles, wb.Op)
		}
	}
}

func dumpOnExit(cfg *config.Config, c *pipeline.Controller, stats pipeline.Stats, elapsed time.Duration) {
	if cfg.Dump.RetValue {
		fmt.Fprintf(os.Stderr, "return value: %d\n", stats.ReturnValue)
	}
	if cfg.Dump.RegState {
		regs := c.RegisterFile()
		for i := uint32(0); i < 32; i++ {
			fmt.Fprintf(os.Stderr, "%-5s = 0x%08x\n", core.RegisterName(i, cfg.Display.ABINames), regs.Read(i))
		}
	}
	if cfg.Dump.TotalClockCycle {
		fmt.Fprintf(os.Stderr, "total cycles: %d\n", stats.Cycles)
	}
	if cfg.Dump.PredictionAccuracy {
		rate := 0.0
		if stats.Branches > 0 {
			rate = 100 * float64(stats.Branches-stats.Mispredicts) / float64(stats.Branches)
		}
		fmt.Fprintf(os.Stderr, "branches: %d  mispredicts: %d  accuracy: %.1f%%\n",
			stats.Branches, stats.Mispredicts, rate)
	}
	if cfg.Dump.TotalTime {
		fmt.Fprintf(os.Stderr, "wall time: %s\n", elapsed)
	}
}

func printHelp() {
	fmt.Print(`rv32pipe - a cycle-accurate five-stage pipelined RV32I simulator

Usage:
  rv32pipe [options] < image.hex

The memory image format (spec.md §6) is read from stdin: '@' lines set
the write cursor, other non-empty lines list whitespace-separated
two-hex-digit bytes stored from the cursor onward.

Options:
  -help                 Show this help message
  -version               Show version information
  -config PATH           Load configuration from PATH instead of the
                          platform default (~/.config/rv32pipe/config.toml)
  -memory-size N         Override the configured memory capacity
  -clock-limit N         Override the configured clock limit (0: unlimited)
  -no-predictor          Disable the branch predictor
  -abi-names             Force ABI register names in dumps
  -numeric-names         Force numeric x0..x31 register names in dumps
  -dump-regs             Dump the register file on retirement
  -dump-accuracy         Dump branch prediction accuracy on retirement
  -dump-cycles           Dump total cycle count on retirement
  -debug                 Start the line-oriented debugger
  -tui                   Start the tcell/tview debugger

The retired return value (a0 & 0xFF at the moment the sentinel reaches
MEM) is printed on stdout as a single decimal line; all other output goes
to stderr.
`)
}

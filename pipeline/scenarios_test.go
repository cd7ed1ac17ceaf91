package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: a straight-line ADDI chain; the sentinel's own (255) write must never
// commit, so the retired value is whatever the prior ADDI chain left in a0.
func TestScenarioADDIChain(t *testing.T) {
	words := []uint32{
		addi(a0, zero, 39),
		addi(a0, a0, 1),
		addi(a0, a0, 1),
		sentinel,
	}
	_, stats := run(t, assemble(t, words), true)
	assert.Equal(t, uint32(41), stats.ReturnValue)
}

// S2: a load immediately followed by a dependent use must cost exactly one
// extra cycle relative to an otherwise-identical program with no data
// dependency between the load and the following instruction.
func TestScenarioLoadUseHazardCostsExactlyOneBubble(t *testing.T) {
	const scratch = 0x100

	dependent := []uint32{
		addi(a0, zero, 77),
		addi(t0, zero, scratch),
		sw(a0, t0, 0),
		lw(t1, t0, 0),
		add(a0, t1, zero), // consumes t1 the cycle after its load
		sentinel,
	}
	independent := []uint32{
		addi(a0, zero, 77),
		addi(t0, zero, scratch),
		sw(a0, t0, 0),
		lw(t1, t0, 0),
		add(a0, zero, zero), // same shape, no dependency on t1
		sentinel,
	}

	_, depStats := run(t, assemble(t, dependent), true)
	_, indepStats := run(t, assemble(t, independent), true)

	assert.Equal(t, uint32(77), depStats.ReturnValue, "loaded value must reach a0 despite the hazard")
	assert.Equal(t, indepStats.Cycles+1, depStats.Cycles, "load-use hazard must cost exactly one bubble cycle")
}

// S3: a countdown loop whose branch is taken on every iteration but the
// last. The predictor starts cold and selects its 2-bit counter by the
// branch's 2-bit local history, which shifts in every outcome: the first
// two taken reports train the history-00 and history-01 counters, and the
// history-11 counter only reaches the taken threshold (2) after the third
// and fourth taken reports. So all four taken occurrences are predicted
// not-taken, and the final not-taken occurrence is predicted taken: all
// five mispredict.
func TestScenarioBranchPredictorWarmup(t *testing.T) {
	const start = 5 // 4 taken iterations (5->4->3->2->1) + 1 not-taken (1->0)
	// loop:
	//   addi t0, t0, -1
	//   bne  t0, zero, loop
	// sentinel
	words := []uint32{
		addi(t0, zero, start), // pc 0
		addi(t0, t0, -1),      // pc 4  (loop target)
		bne(t0, zero, -4),     // pc 8  branch back to pc 4
		sentinel,              // pc 12
	}
	_, stats := run(t, assemble(t, words), true)

	assert.Equal(t, uint32(0), stats.ReturnValue)
	assert.EqualValues(t, start, stats.Branches)
	assert.EqualValues(t, 5, stats.Mispredicts, "four cold-history taken mispredicts plus the final not-taken mispredict")
}

// S4: call a leaf via JAL, compute in the callee, return via JALR; verifies
// absolute-target computation and that JALR clears the LSB.
func TestScenarioJALRReturnSequence(t *testing.T) {
	// pc 0:  addi a0, zero, 5
	// pc 4:  jal  ra, leaf        (leaf at pc 12, offset = 12-4 = 8)
	// pc 8:  sentinel             (return address; ra = pc(jal)+4 = 8)
	// pc 12: addi a0, a0, 10      (leaf body)
	// pc 16: jalr zero, ra, 0     (return)
	words := []uint32{
		addi(a0, zero, 5),
		jal(ra, 8),
		sentinel,
		addi(a0, a0, 10),
		jalr(zero, ra, 0),
	}
	_, stats := run(t, assemble(t, words), true)
	assert.Equal(t, uint32(15), stats.ReturnValue)
}

// S5: store/load round trip across every width and sign/zero-extension
// variant, checked directly against register-file state (the retirement
// channel only ever exposes a0's low byte).
func TestScenarioStoreLoadRoundTrip(t *testing.T) {
	const (
		base = 0x40
		t2   = 7
		t3   = 28
		t4   = 29
	)
	words := []uint32{
		addi(t0, zero, base),
		lb(t1, t0, 0),
		lbu(t2, t0, 0),
		lh(t3, t0, 0),
		lhu(t4, t0, 0),
		lw(a0, t0, 0),
		sentinel,
	}
	m := assemble(t, words)
	require.NoError(t, m.StoreWord(base, 0xFFEEDDCC))

	c, stats := run(t, m, true)
	assert.Equal(t, uint32(0xFFEEDDCC)&0xFF, stats.ReturnValue)
	assert.Equal(t, uint32(0xFFFFFFCC), c.RegisterFile().Read(t1), "LB must sign-extend")
	assert.Equal(t, uint32(0x000000CC), c.RegisterFile().Read(t2), "LBU must zero-extend")
	assert.Equal(t, uint32(0xFFFFDDCC), c.RegisterFile().Read(t3), "LH must sign-extend")
	assert.Equal(t, uint32(0x0000DDCC), c.RegisterFile().Read(t4), "LHU must zero-extend")
	assert.Equal(t, uint32(0xFFEEDDCC), c.RegisterFile().Read(a0), "LW must pass through unmodified")
}

// SB/SH truncate on store regardless of the source register's upper bits.
func TestScenarioNarrowStoresTruncate(t *testing.T) {
	const base = 0x80
	words := []uint32{
		addi(t0, zero, base),
		addi(t1, zero, -1), // 0xFFFFFFFF
		sb(t1, t0, 0),
		lbu(a0, t0, 0),
		sentinel,
	}
	_, stats := run(t, assemble(t, words), true)
	assert.Equal(t, uint32(0xFF), stats.ReturnValue)
}

// S6: the reported cycle count is exactly the number of cycles from t=0
// until MEM holds the sentinel; re-running the same program is deterministic.
func TestScenarioSentinelRetirementIsDeterministic(t *testing.T) {
	words := []uint32{
		addi(a0, zero, 39),
		addi(a0, a0, 1),
		addi(a0, a0, 1),
		sentinel,
	}
	_, first := run(t, assemble(t, words), true)
	_, second := run(t, assemble(t, words), true)
	assert.Equal(t, first.Cycles, second.Cycles)
	assert.Greater(t, first.Cycles, uint64(0))
}

// S7: a distance-3 RAW dependency (producer three instructions ahead of its
// consumer) is resolved by write-before-read register-file ticking, not by
// forwarding: by the cycle x4's ADD reaches ID, x1's ADDI sits in WB, past
// where forward() (EX/MEM only) ever looks. The register file must commit
// WB's write before that same cycle's decode reads it.
func TestScenarioDistanceThreeRAWResolvedAtWriteback(t *testing.T) {
	const x1, x2, x3, x4 = 1, 2, 3, 4
	words := []uint32{
		addi(x1, zero, 5),
		addi(x2, zero, 0),
		addi(x3, zero, 0),
		add(x4, x1, zero),
		addi(a0, x4, 0),
		sentinel,
	}
	_, stats := run(t, assemble(t, words), true)
	assert.Equal(t, uint32(5), stats.ReturnValue)
}

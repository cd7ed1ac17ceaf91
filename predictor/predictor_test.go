package predictor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cycleacc/rv32pipe/predictor"
)

func TestInitialStateIsNotTaken(t *testing.T) {
	p := predictor.New(4096, true)
	assert.False(t, p.Predict(0x100))
}

func TestWarmupToTaken(t *testing.T) {
	p := predictor.New(4096, true)
	pc := uint32(0x200)
	// counters and history start at 0; each report bumps the counter selected
	// by the current history, then shifts the outcome into the history. The
	// first two taken reports train the history-00 and history-01 counters;
	// only the third and fourth reach the history-11 counter and take it to 2.
	for i := 0; i < 3; i++ {
		p.Report(pc, true)
	}
	assert.False(t, p.Predict(pc))
	p.Report(pc, true)
	assert.True(t, p.Predict(pc))
}

func TestSaturatesAtBounds(t *testing.T) {
	p := predictor.New(4096, true)
	pc := uint32(0x300)
	for i := 0; i < 10; i++ {
		p.Report(pc, true)
	}
	assert.True(t, p.Predict(pc))
	for i := 0; i < 10; i++ {
		p.Report(pc, false)
	}
	assert.False(t, p.Predict(pc))
}

func TestDisabledAlwaysNotTaken(t *testing.T) {
	p := predictor.New(4096, false)
	pc := uint32(0x400)
	for i := 0; i < 5; i++ {
		p.Report(pc, true)
	}
	assert.False(t, p.Predict(pc))
}

func TestDistinctPCsDoNotAlias(t *testing.T) {
	p := predictor.New(1<<20, true)
	// four taken reports train 0x1000's history-11 counter to taken
	for i := 0; i < 4; i++ {
		p.Report(0x1000, true)
	}
	assert.True(t, p.Predict(0x1000))
	assert.False(t, p.Predict(0x2000))
}

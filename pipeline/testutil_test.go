package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cycleacc/rv32pipe/memory"
	"github.com/cycleacc/rv32pipe/pipeline"
)

// safetyClockLimit bounds every scenario run so a controller bug (e.g. a
// redirect that never kills the wrong-path fetch) fails the test instead of
// hanging it.
const safetyClockLimit = 10_000

func assemble(t *testing.T, words []uint32) *memory.Memory {
	t.Helper()
	m := memory.New(memory.DefaultSize)
	for i, w := range words {
		require.NoError(t, m.StoreWord(uint32(i*4), w))
	}
	return m
}

func run(t *testing.T, m *memory.Memory, predictorEnabled bool) (*pipeline.Controller, pipeline.Stats) {
	t.Helper()
	c := pipeline.New(m, predictorEnabled)
	stats, err := c.Run(safetyClockLimit, nil)
	require.NoError(t, err)
	require.True(t, stats.Retired, "program did not retire within %d cycles", safetyClockLimit)
	return c, stats
}

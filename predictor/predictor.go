// Package predictor implements the two-level adaptive branch predictor
// (spec.md §4.7): per-PC local history of HistoryBits bits indexing a table
// of CounterWidth-bit saturating counters. The design is a simplified
// instance of the same idea as a TAGE-style predictor's base table —
// geometric history lengths and tagged entries are overkill for a 2-bit
// local history, so this keeps exactly one (untagged) table.
package predictor

// HistoryBits and CounterWidth are fixed at the values spec.md §4.7
// configures: 2-bit local history, 2-bit saturating counters.
const (
	HistoryBits  = 2
	CounterWidth = 2
	maxCounter   = (1 << CounterWidth) - 1
	historyMask  = (1 << HistoryBits) - 1
)

// Predictor is a two-level adaptive branch predictor with per-instruction
// local history. Tables are sized to the address space passed to New: one
// history byte per 4-byte instruction slot, one counter per
// (instruction-slot, history) pair — memSize << (HistoryBits - 2) counters,
// matching the reference sizing rule for HistoryBits >= 2 (spec.md §9).
type Predictor struct {
	enabled  bool
	history  []uint8
	counters []uint8
}

// New returns a Predictor sized for an address space of memSize bytes.
// When enabled is false, Predict always returns false (not-taken) and
// Report returns without mutating any table; hit/miss counting is left to
// the caller (spec.md §4.7: "when disabled, all branches predict not-taken").
func New(memSize int, enabled bool) *Predictor {
	slots := memSize / 4
	if slots == 0 {
		slots = 1
	}
	return &Predictor{
		enabled:  enabled,
		history:  make([]uint8, slots),
		counters: make([]uint8, slots<<HistoryBits),
	}
}

func (p *Predictor) slot(pc uint32) int { return int(pc>>2) % len(p.history) }

func (p *Predictor) counterIndex(pc uint32) int {
	s := p.slot(pc)
	return s<<HistoryBits | int(p.history[s])
}

// Predict returns true (taken) iff the indexed counter is >= 2 (weakly or
// strongly taken).
func (p *Predictor) Predict(pc uint32) bool {
	if !p.enabled {
		return false
	}
	return p.counters[p.counterIndex(pc)] >= 2
}

// Report updates the predictor with the actual outcome of a branch at pc:
// the counter saturates toward 3 if taken, toward 0 otherwise, and the
// local history shifts in the new outcome bit. Disabled predictors do not
// mutate any table, matching Predict's fixed not-taken behavior.
func (p *Predictor) Report(pc uint32, taken bool) {
	if !p.enabled {
		return
	}

	idx := p.counterIndex(pc)
	if taken {
		if p.counters[idx] < maxCounter {
			p.counters[idx]++
		}
	} else if p.counters[idx] > 0 {
		p.counters[idx]--
	}

	s := p.slot(pc)
	next := p.history[s] << 1
	if taken {
		next |= 1
	}
	p.history[s] = next & historyMask
}

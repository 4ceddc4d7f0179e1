package hashtable

import "math"

// NotFound is returned by PawnTable.Probe on a miss. No pawn-structure
// score can take this value.
const NotFound int32 = math.MinInt32

// PawnTable caches a side's pawn-structure score.
type PawnTable struct {
	t *table[int32]
}

// NewPawnTable creates a pawn table with the given size in MB.
func NewPawnTable(sizeMB int) *PawnTable {
	return &PawnTable{t: newTable[int32](sizeMB, 24)}
}

// Probe returns the cached score for k, or NotFound.
func (pt *PawnTable) Probe(k Key) int32 {
	v, ok := pt.t.probe(k)
	if !ok {
		return NotFound
	}
	return v
}

// Record stores a pawn-structure score for k.
func (pt *PawnTable) Record(k Key, score int32) {
	pt.t.record(k, score)
}

// Clear empties the table and resets its counters.
func (pt *PawnTable) Clear() {
	pt.t.clear()
}

// Stats returns the table's usage counters.
func (pt *PawnTable) Stats() Stats {
	return pt.t.stats()
}

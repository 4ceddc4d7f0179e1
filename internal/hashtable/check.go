package hashtable

// CheckTable caches whether a side's king is attacked in a position.
type CheckTable struct {
	t *table[bool]
}

// NewCheckTable creates a check table with the given size in MB.
func NewCheckTable(sizeMB int) *CheckTable {
	// 8+8+1 key, 1 used, 1 value, padded to 24
	return &CheckTable{t: newTable[bool](sizeMB, 24)}
}

// Probe returns the cached check status and whether it was found.
func (ct *CheckTable) Probe(k Key) (inCheck, found bool) {
	return ct.t.probe(k)
}

// Record stores the check status for k.
func (ct *CheckTable) Record(k Key, inCheck bool) {
	ct.t.record(k, inCheck)
}

// Clear empties the table and resets its counters.
func (ct *CheckTable) Clear() {
	ct.t.clear()
}

// Stats returns the table's usage counters.
func (ct *CheckTable) Stats() Stats {
	return ct.t.stats()
}

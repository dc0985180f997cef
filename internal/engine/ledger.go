package engine

// PairLedger remembers every critical pair a session has produced.
//
// Critical pairs are keyed by their canonical form, so the same pair found
// through a different overlap, or with its sides swapped, is recognized.
// A pair seen once is never added again.
type PairLedger struct {
	seen map[string]bool
}

// NewPairLedger creates an empty ledger.
func NewPairLedger() *PairLedger {
	return &PairLedger{seen: make(map[string]bool)}
}

// Seen reports whether either key has been recorded.
func (l *PairLedger) Seen(keys ...string) bool {
	for _, k := range keys {
		if l.seen[k] {
			return true
		}
	}
	return false
}

// Record marks every key as seen.
func (l *PairLedger) Record(keys ...string) {
	for _, k := range keys {
		l.seen[k] = true
	}
}

// Size returns the number of recorded keys.
func (l *PairLedger) Size() int {
	return len(l.seen)
}

// Clear forgets everything.
func (l *PairLedger) Clear() {
	clear(l.seen)
}

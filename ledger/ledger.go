// Package ledger tallies closed trades. It only ever consumes closing
// fills; it never influences order placement or position state.
package ledger

import "github.com/evdnx/gostrat/types"

// Ledger appends one immutable TradeRecord per closing fill (partial exits
// and full closes each count as their own record) and keeps running
// trade/win counters.
type Ledger struct {
	records []types.TradeRecord
	wins    int
}

func New() *Ledger { return &Ledger{} }

// Append records a closing fill. A record counts as a win when the lot
// exited above its entry price.
func (l *Ledger) Append(rec types.TradeRecord) {
	l.records = append(l.records, rec)
	if rec.Win() {
		l.wins++
	}
}

// Records returns a copy of all trade records in close order.
func (l *Ledger) Records() []types.TradeRecord {
	out := make([]types.TradeRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) TradeCount() int { return len(l.records) }

func (l *Ledger) WinCount() int { return l.wins }

// WinRate returns wins over total closes, zero when no trade closed yet.
func (l *Ledger) WinRate() float64 {
	if len(l.records) == 0 {
		return 0
	}
	return float64(l.wins) / float64(len(l.records))
}

// RealizedPnL sums the realized profit across all records.
func (l *Ledger) RealizedPnL() float64 {
	total := 0.0
	for _, r := range l.records {
		total += r.PnL
	}
	return total
}

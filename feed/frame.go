// Package feed exposes precomputed indicator series to the strategies as
// point-in-time snapshots. A snapshot can read the current bar (offset 0)
// and strictly past bars (negative offsets); positive offsets are refused
// so a strategy can never peek at data the live run would not have had.
package feed

import (
	"math"

	"github.com/pkg/errors"
)

// Canonical series names. A frame may carry any subset; evaluators treat a
// missing series as "condition not satisfiable this bar".
const (
	Open   = "open"
	High   = "high"
	Low    = "low"
	Close  = "close"
	Volume = "volume"

	ATR      = "atr"
	EMAFast  = "ema_fast"
	EMASlow  = "ema_slow"
	TrendEMA = "trend_ema"

	RSI        = "rsi"
	ADX        = "adx"
	MACD       = "macd"
	MACDSignal = "macd_signal"
	Stochastic = "stoch"
	VolumeMA   = "volume_ma"

	Resistance = "resistance"
	Support    = "support"
	TrueRange  = "true_range"
	ATRMean    = "atr_mean"

	ROC5  = "roc_5"
	ROC10 = "roc_10"
	ROC20 = "roc_20"
	SMA10 = "sma_10"
	SMA20 = "sma_20"
	SMA50 = "sma_50"

	BBUpper = "bb_upper"
	BBLower = "bb_lower"
	ZScore  = "zscore"
)

// Frame holds the finalized series for one instrument and a cursor over
// them. The cursor only moves forward.
type Frame struct {
	series map[string][]float64
	length int
	idx    int
}

// NewFrame validates that every series has the same length and returns a
// frame positioned before the first bar (call Next to reach bar 0).
func NewFrame(series map[string][]float64) (*Frame, error) {
	if len(series) == 0 {
		return nil, errors.New("feed: no series supplied")
	}
	length := -1
	for name, vals := range series {
		if length == -1 {
			length = len(vals)
			continue
		}
		if len(vals) != length {
			return nil, errors.Errorf("feed: series %q has %d bars, want %d", name, len(vals), length)
		}
	}
	if length == 0 {
		return nil, errors.New("feed: empty series")
	}
	return &Frame{series: series, length: length, idx: -1}, nil
}

// Len returns the number of bars in the frame.
func (f *Frame) Len() int { return f.length }

// Next advances the cursor by one bar. It returns false once the frame is
// exhausted.
func (f *Frame) Next() bool {
	if f.idx+1 >= f.length {
		return false
	}
	f.idx++
	return true
}

// Snapshot returns the read-only view at the current cursor position.
func (f *Frame) Snapshot() *Snapshot {
	return &Snapshot{f: f, idx: f.idx}
}

// Snapshot is a point-in-time view over a frame. It is only valid for the
// step it was taken at.
type Snapshot struct {
	f   *Frame
	idx int
}

// Step returns the zero-based bar index of the snapshot.
func (s *Snapshot) Step() int { return s.idx }

// At reads a series at the given offset. Offset 0 is the current bar,
// negative offsets reach into the past. Positive offsets, unknown series,
// and reads before the start of history all report ok == false.
func (s *Snapshot) At(name string, offset int) (float64, bool) {
	if offset > 0 {
		return 0, false
	}
	i := s.idx + offset
	if i < 0 {
		return 0, false
	}
	vals, exists := s.f.series[name]
	if !exists {
		return 0, false
	}
	v := vals[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Value reads the current bar of a series, returning NaN when the series
// is missing or not yet defined at this step.
func (s *Snapshot) Value(name string) float64 {
	v, ok := s.At(name, 0)
	if !ok {
		return math.NaN()
	}
	return v
}

// Has reports whether the series is present and defined on the current bar.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.At(name, 0)
	return ok
}

// CrossedAbove reports whether series a moved from at-or-below series b on
// the previous bar to above it on the current bar.
func (s *Snapshot) CrossedAbove(a, b string) bool {
	a0, ok1 := s.At(a, 0)
	b0, ok2 := s.At(b, 0)
	a1, ok3 := s.At(a, -1)
	b1, ok4 := s.At(b, -1)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return a1 <= b1 && a0 > b0
}

// CrossedBelow is the symmetric downward crossover.
func (s *Snapshot) CrossedBelow(a, b string) bool {
	a0, ok1 := s.At(a, 0)
	b0, ok2 := s.At(b, 0)
	a1, ok3 := s.At(a, -1)
	b1, ok4 := s.At(b, -1)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return a1 >= b1 && a0 < b0
}

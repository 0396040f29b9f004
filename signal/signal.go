// Package signal holds the per-variant entry/exit evaluators. Evaluators
// are stateless: everything they need beyond the current snapshot (entry
// price, bars held) is controller-owned state passed in explicitly, so the
// same evaluator value can be shared across runs.
package signal

import "github.com/evdnx/gostrat/feed"

// Verdict is the evaluator output for one bar.
type Verdict struct {
	Enter bool
	Exit  bool
}

// Context carries the position state an exit rule may condition on.
type Context struct {
	InPosition bool
	EntryPrice float64
	HoldBars   int
}

// Evaluator turns the current snapshot into an entry/exit verdict.
// Implementations must only read the current bar and strictly past bars.
type Evaluator interface {
	Name() string
	Evaluate(s *feed.Snapshot, pc Context) Verdict
}

// profitFraction returns the unrealized gain relative to entry, or 0 when
// it cannot be computed.
func profitFraction(s *feed.Snapshot, pc Context) float64 {
	close, ok := s.At(feed.Close, 0)
	if !ok || !pc.InPosition || pc.EntryPrice <= 0 {
		return 0
	}
	return (close - pc.EntryPrice) / pc.EntryPrice
}

// filterAbove applies a threshold filter that passes when the series is
// absent, matching the originals' optional-filter behavior.
func filterAbove(s *feed.Snapshot, name string, threshold float64) bool {
	v, ok := s.At(name, 0)
	if !ok {
		return true
	}
	return v > threshold
}

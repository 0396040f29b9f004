package signal

import (
	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

// MLScore ensembles four equally weighted factor groups (momentum, trend,
// mean-reversion neutrality, sentiment) into a long probability and trades
// the probability bands. Each factor group scores the fraction of its
// conditions that hold; groups with no available inputs score a neutral
// 0.5.
type MLScore struct {
	cfg config.StrategyConfig
}

func NewMLScore(cfg config.StrategyConfig) MLScore { return MLScore{cfg: cfg} }

func (MLScore) Name() string { return "ml_score" }

func (m MLScore) Evaluate(s *feed.Snapshot, pc Context) Verdict {
	prob := m.Score(s)

	exit := false
	if pc.InPosition {
		profit := profitFraction(s, pc)
		exit = prob <= m.cfg.MLShortThreshold ||
			profit > m.cfg.TakeProfitPct ||
			profit < -m.cfg.StopLossPct
		if m.cfg.MaxHoldBars > 0 && pc.HoldBars >= m.cfg.MaxHoldBars {
			exit = true
		}
	}

	return Verdict{
		Enter: prob >= m.cfg.MLLongThreshold,
		Exit:  exit,
	}
}

// Score returns the ensembled long probability in [0,1].
func (m MLScore) Score(s *feed.Snapshot) float64 {
	momentum := factor(
		above(s, feed.ROC5, 0),
		above(s, feed.ROC10, 0),
		above(s, feed.ROC20, 0),
	)

	trend := factor(
		ratioAbove(s, feed.Close, feed.SMA10),
		ratioAbove(s, feed.Close, feed.SMA20),
		seriesAbove(s, feed.MACD, feed.MACDSignal),
	)

	meanRev := factor(
		within(s, feed.RSI, m.cfg.RSIOversold, m.cfg.RSIOverbought),
		bbWithin(s, 0.2, 0.8),
		within(s, feed.Stochastic, m.cfg.StochOversold, m.cfg.StochOverbought),
	)

	sentiment := factor(
		volumeActive(s, m.cfg.VolumeThreshold),
		seriesAbove(s, feed.Close, feed.Open),
		calmVolatility(s, 0.04),
	)

	return (momentum + trend + meanRev + sentiment) / 4
}

// cond is a ternary condition: satisfied, unsatisfied, or unavailable.
type cond int

const (
	condMissing cond = iota
	condFalse
	condTrue
)

func factor(conds ...cond) float64 {
	hits, total := 0, 0
	for _, c := range conds {
		if c == condMissing {
			continue
		}
		total++
		if c == condTrue {
			hits++
		}
	}
	if total == 0 {
		return 0.5
	}
	return float64(hits) / float64(total)
}

func above(s *feed.Snapshot, name string, threshold float64) cond {
	v, ok := s.At(name, 0)
	if !ok {
		return condMissing
	}
	if v > threshold {
		return condTrue
	}
	return condFalse
}

func within(s *feed.Snapshot, name string, lo, hi float64) cond {
	v, ok := s.At(name, 0)
	if !ok {
		return condMissing
	}
	if v > lo && v < hi {
		return condTrue
	}
	return condFalse
}

func seriesAbove(s *feed.Snapshot, a, b string) cond {
	av, ok1 := s.At(a, 0)
	bv, ok2 := s.At(b, 0)
	if !ok1 || !ok2 {
		return condMissing
	}
	if av > bv {
		return condTrue
	}
	return condFalse
}

func ratioAbove(s *feed.Snapshot, a, b string) cond {
	av, ok1 := s.At(a, 0)
	bv, ok2 := s.At(b, 0)
	if !ok1 || !ok2 || bv <= 0 {
		return condMissing
	}
	if av/bv-1 > 0 {
		return condTrue
	}
	return condFalse
}

func bbWithin(s *feed.Snapshot, lo, hi float64) cond {
	pos, ok := bollingerPosition(s)
	if !ok {
		return condMissing
	}
	if pos > lo && pos < hi {
		return condTrue
	}
	return condFalse
}

func volumeActive(s *feed.Snapshot, threshold float64) cond {
	vol, ok1 := s.At(feed.Volume, 0)
	volMA, ok2 := s.At(feed.VolumeMA, 0)
	if !ok1 || !ok2 || volMA <= 0 {
		return condMissing
	}
	if vol/volMA > threshold {
		return condTrue
	}
	return condFalse
}

func calmVolatility(s *feed.Snapshot, ceiling float64) cond {
	atr, ok1 := s.At(feed.ATR, 0)
	close, ok2 := s.At(feed.Close, 0)
	if !ok1 || !ok2 || close <= 0 {
		return condMissing
	}
	if atr/close < ceiling {
		return condTrue
	}
	return condFalse
}

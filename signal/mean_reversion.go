package signal

import (
	"math"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

// MeanReversion buys an oversold extreme once an RSI reversal confirms it,
// and exits when price reverts to the mean, the hold expires, or the fixed
// profit/loss fractions are hit.
type MeanReversion struct {
	cfg config.StrategyConfig
}

func NewMeanReversion(cfg config.StrategyConfig) MeanReversion {
	return MeanReversion{cfg: cfg}
}

func (MeanReversion) Name() string { return "mean_reversion" }

func (m MeanReversion) Evaluate(s *feed.Snapshot, pc Context) Verdict {
	bbPos, bbOK := bollingerPosition(s)
	rsi, rsiOK := s.At(feed.RSI, 0)
	stoch, stochOK := s.At(feed.Stochastic, 0)

	oversold := (bbOK && bbPos < 0.05) ||
		(rsiOK && rsi < m.cfg.RSIOversold) ||
		(stochOK && stoch < m.cfg.StochOversold)

	overbought := (bbOK && bbPos > 0.95) ||
		(rsiOK && rsi > m.cfg.RSIOverbought) ||
		(stochOK && stoch > m.cfg.StochOverbought)

	// Reversal confirmation: RSI crossing back up through the oversold band.
	reversal := false
	if rsiOK {
		if prev, ok := s.At(feed.RSI, -1); ok {
			reversal = prev <= m.cfg.RSIOversold && rsi > m.cfg.RSIOversold
		}
	}

	volOK := true
	if vol, ok := s.At(feed.Volume, 0); ok {
		if volMA, ok2 := s.At(feed.VolumeMA, 0); ok2 && volMA > 0 {
			volOK = vol/volMA > m.cfg.VolumeThreshold
		}
	}

	enter := oversold && reversal && volOK

	exit := false
	if pc.InPosition {
		profit := profitFraction(s, pc)
		exit = profit > m.cfg.TakeProfitPct || profit < -m.cfg.StopLossPct
		if z, ok := s.At(feed.ZScore, 0); ok && math.Abs(z) < m.cfg.ZScoreExit {
			exit = true
		}
		if overbought && pc.HoldBars > m.cfg.MinHoldBars {
			exit = true
		}
		if m.cfg.MaxHoldBars > 0 && pc.HoldBars >= m.cfg.MaxHoldBars {
			exit = true
		}
	}

	return Verdict{Enter: enter, Exit: exit}
}

// bollingerPosition places the close inside the band: 0 at the lower band,
// 1 at the upper.
func bollingerPosition(s *feed.Snapshot) (float64, bool) {
	close, ok1 := s.At(feed.Close, 0)
	upper, ok2 := s.At(feed.BBUpper, 0)
	lower, ok3 := s.At(feed.BBLower, 0)
	if !ok1 || !ok2 || !ok3 || upper <= lower {
		return 0, false
	}
	return (close - lower) / (upper - lower), true
}

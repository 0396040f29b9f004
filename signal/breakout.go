package signal

import (
	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

// Breakout looks for a price breakout from a tight, low-volatility
// consolidation on heavy volume with positive short-term momentum. A
// breakdown through support flags a failed breakout and exits.
type Breakout struct {
	cfg config.StrategyConfig

	// minConsolidationBars guards against trading right at the start of
	// history where the channel is not meaningful yet.
	minConsolidationBars int
}

func NewBreakout(cfg config.StrategyConfig) Breakout {
	return Breakout{cfg: cfg, minConsolidationBars: 10}
}

func (Breakout) Name() string { return "breakout" }

func (b Breakout) Evaluate(s *feed.Snapshot, pc Context) Verdict {
	close, okClose := s.At(feed.Close, 0)
	resistance, okRes := s.At(feed.Resistance, 0)
	support, okSup := s.At(feed.Support, 0)
	if !okClose || !okRes || !okSup || close <= 0 {
		return Verdict{}
	}

	tight := (resistance-support)/close < b.cfg.ConsolidationMax

	lowVol := true
	if tr, ok := s.At(feed.TrueRange, 0); ok {
		if mean, ok2 := s.At(feed.ATRMean, 0); ok2 && mean > 0 {
			lowVol = tr/mean < b.cfg.VolatilityRatio
		}
	}

	volConfirm := true
	if vol, ok := s.At(feed.Volume, 0); ok {
		if volMA, ok2 := s.At(feed.VolumeMA, 0); ok2 && volMA > 0 {
			volConfirm = vol/volMA > b.cfg.VolumeMultiplier
		}
	}

	momentum := filterAbove(s, feed.ROC5, 0)
	seasoned := s.Step() > b.minConsolidationBars

	enter := s.CrossedAbove(feed.High, feed.Resistance) &&
		tight && lowVol && seasoned && volConfirm && momentum

	breakdown := s.CrossedBelow(feed.Low, feed.Support)
	profit := profitFraction(s, pc)
	exit := breakdown
	if pc.InPosition {
		exit = exit || profit > b.cfg.TakeProfitPct || profit < -b.cfg.StopLossPct
	}

	return Verdict{Enter: enter, Exit: exit}
}

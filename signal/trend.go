package signal

import (
	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

// Trend requires the crossover, the trend filter, an RSI momentum window,
// MACD confirmation, and relative volume. It exits on the dead cross, a
// fixed stop-loss fraction, or the take-profit fraction.
type Trend struct {
	cfg config.StrategyConfig
}

func NewTrend(cfg config.StrategyConfig) Trend { return Trend{cfg: cfg} }

func (Trend) Name() string { return "trend" }

func (t Trend) Evaluate(s *feed.Snapshot, pc Context) Verdict {
	close, okClose := s.At(feed.Close, 0)
	trend, okTrend := s.At(feed.TrendEMA, 0)
	if !okClose || !okTrend {
		return Verdict{}
	}

	trendUp := close > trend
	if fast, ok := s.At(feed.EMAFast, 0); ok {
		if slow, ok2 := s.At(feed.EMASlow, 0); ok2 {
			trendUp = trendUp && fast > slow
		}
	}

	momentumOK := true
	if rsi, ok := s.At(feed.RSI, 0); ok {
		momentumOK = rsi > 40 && rsi < 80
	}
	if macd, ok := s.At(feed.MACD, 0); ok {
		if sig, ok2 := s.At(feed.MACDSignal, 0); ok2 {
			momentumOK = momentumOK && macd > sig
		}
	}

	volOK := true
	if vol, ok := s.At(feed.Volume, 0); ok {
		if volMA, ok2 := s.At(feed.VolumeMA, 0); ok2 && volMA > 0 {
			volOK = vol/volMA > t.cfg.VolumeThreshold
		}
	}

	enter := trendUp && momentumOK && volOK && s.CrossedAbove(feed.EMAFast, feed.EMASlow)

	profit := profitFraction(s, pc)
	exit := s.CrossedBelow(feed.EMAFast, feed.EMASlow)
	if pc.InPosition {
		exit = exit || profit < -t.cfg.StopLossPct || profit > t.cfg.TakeProfitPct
	}

	return Verdict{Enter: enter, Exit: exit}
}

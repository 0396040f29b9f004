package signal

import (
	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

// DualMA is the flagship variant: an EMA golden cross filtered by a
// long-term trend EMA, RSI regime, relative volume, and ADX trend
// strength. Its dead cross drives the partial-exit path rather than a full
// close.
type DualMA struct {
	cfg config.StrategyConfig
}

func NewDualMA(cfg config.StrategyConfig) DualMA { return DualMA{cfg: cfg} }

func (DualMA) Name() string { return "dual_ma" }

func (d DualMA) Evaluate(s *feed.Snapshot, _ Context) Verdict {
	close, okClose := s.At(feed.Close, 0)
	trend, okTrend := s.At(feed.TrendEMA, 0)
	if !okClose || !okTrend {
		return Verdict{}
	}

	goldenCross := s.CrossedAbove(feed.EMAFast, feed.EMASlow)
	trendOK := close > trend
	rsiOK := filterAbove(s, feed.RSI, 50)
	adxOK := filterAbove(s, feed.ADX, d.cfg.ADXThreshold)

	volOK := true
	if vol, ok := s.At(feed.Volume, 0); ok {
		if volMA, ok2 := s.At(feed.VolumeMA, 0); ok2 && volMA > 0 {
			volOK = vol > volMA*d.cfg.VolumeThreshold
		}
	}

	return Verdict{
		Enter: goldenCross && trendOK && rsiOK && volOK && adxOK,
		Exit:  s.CrossedBelow(feed.EMAFast, feed.EMASlow),
	}
}

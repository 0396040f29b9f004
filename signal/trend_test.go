package signal

import (
	"testing"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

func TestTrendEntersOnConfirmedCross(t *testing.T) {
	eval := NewTrend(config.Default())
	snaps := snapSeq(t, map[string][]float64{
		feed.Close:      {50, 50.5},
		feed.EMAFast:    {10, 20},
		feed.EMASlow:    {15, 15},
		feed.TrendEMA:   {40, 40},
		feed.RSI:        {55, 55},
		feed.MACD:       {1, 1},
		feed.MACDSignal: {0.5, 0.5},
		feed.Volume:     {100, 100},
		feed.VolumeMA:   {100, 100},
	})
	if v := eval.Evaluate(snaps[1], Context{}); !v.Enter {
		t.Fatalf("confirmed trend cross did not enter")
	}
}

func TestTrendRejectsOverheatedRSI(t *testing.T) {
	eval := NewTrend(config.Default())
	snaps := snapSeq(t, map[string][]float64{
		feed.Close:    {50, 50.5},
		feed.EMAFast:  {10, 20},
		feed.EMASlow:  {15, 15},
		feed.TrendEMA: {40, 40},
		feed.RSI:      {85, 85},
	})
	if v := eval.Evaluate(snaps[1], Context{}); v.Enter {
		t.Fatalf("entered with RSI outside the momentum window")
	}
}

func TestTrendFixedFractionExits(t *testing.T) {
	cfg := config.Default()
	eval := NewTrend(cfg)
	snaps := snapSeq(t, map[string][]float64{
		feed.Close:    {50, 46},
		feed.EMAFast:  {20, 20},
		feed.EMASlow:  {15, 15},
		feed.TrendEMA: {40, 40},
	})
	// 46 from 50 is an 8 % drawdown, past the 3 % stop-loss fraction.
	v := eval.Evaluate(snaps[1], Context{InPosition: true, EntryPrice: 50, HoldBars: 4})
	if !v.Exit {
		t.Fatalf("stop-loss fraction breach did not exit")
	}
	if w := eval.Evaluate(snaps[1], Context{}); w.Exit {
		t.Fatalf("fixed-fraction exit fired while flat")
	}
}

package signal

import (
	"testing"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
)

func bullishSeries() map[string][]float64 {
	return map[string][]float64{
		feed.Open:       {49.5},
		feed.Close:      {50},
		feed.ROC5:       {1},
		feed.ROC10:      {2},
		feed.ROC20:      {3},
		feed.SMA10:      {49},
		feed.SMA20:      {48},
		feed.MACD:       {1},
		feed.MACDSignal: {0.5},
		feed.RSI:        {55},
		feed.Stochastic: {50},
		feed.BBUpper:    {52},
		feed.BBLower:    {48},
		feed.Volume:     {120},
		feed.VolumeMA:   {100},
		feed.ATR:        {0.5},
	}
}

func TestMLScoreAllBullish(t *testing.T) {
	eval := NewMLScore(config.Default())
	snaps := snapSeq(t, bullishSeries())

	if got := eval.Score(snaps[0]); got != 1 {
		t.Fatalf("all-bullish score = %v, want 1", got)
	}
	if v := eval.Evaluate(snaps[0], Context{}); !v.Enter {
		t.Fatalf("probability 1 did not enter")
	}
}

func TestMLScoreAllBearishExits(t *testing.T) {
	eval := NewMLScore(config.Default())
	snaps := snapSeq(t, map[string][]float64{
		feed.Open:       {50.5},
		feed.Close:      {50},
		feed.ROC5:       {-1},
		feed.ROC10:      {-2},
		feed.ROC20:      {-3},
		feed.SMA10:      {51},
		feed.SMA20:      {52},
		feed.MACD:       {-1},
		feed.MACDSignal: {0},
		feed.RSI:        {85},
		feed.Stochastic: {90},
		feed.BBUpper:    {50.5},
		feed.BBLower:    {45},
		feed.Volume:     {50},
		feed.VolumeMA:   {100},
		feed.ATR:        {3},
	})

	if got := eval.Score(snaps[0]); got != 0 {
		t.Fatalf("all-bearish score = %v, want 0", got)
	}
	v := eval.Evaluate(snaps[0], Context{InPosition: true, EntryPrice: 50, HoldBars: 2})
	if v.Enter {
		t.Fatalf("entered on probability 0")
	}
	if !v.Exit {
		t.Fatalf("probability 0 did not exit an open position")
	}
}

func TestMLScoreMissingGroupsAreNeutral(t *testing.T) {
	eval := NewMLScore(config.Default())
	snaps := snapSeq(t, map[string][]float64{feed.Close: {50}})

	// With no factor inputs every group scores 0.5.
	if got := eval.Score(snaps[0]); got != 0.5 {
		t.Fatalf("score with no inputs = %v, want neutral 0.5", got)
	}
	if v := eval.Evaluate(snaps[0], Context{}); v.Enter {
		t.Fatalf("neutral probability must not enter")
	}
}

func TestMLScoreMaxHoldExit(t *testing.T) {
	cfg := config.Default()
	eval := NewMLScore(cfg)
	snaps := snapSeq(t, bullishSeries())

	pc := Context{InPosition: true, EntryPrice: 50, HoldBars: cfg.MaxHoldBars}
	if v := eval.Evaluate(snaps[0], pc); !v.Exit {
		t.Fatalf("expired hold did not exit despite the bullish score")
	}
}

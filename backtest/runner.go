// Package backtest drives a strategy over a finalized frame using the
// simulated gateway. It is a thin bar loop: the interesting state lives in
// the strategy's controller and the gateway.
package backtest

import (
	"github.com/pkg/errors"

	"github.com/evdnx/gostrat/feed"
	"github.com/evdnx/gostrat/gateway"
	"github.com/evdnx/gostrat/strategy"
)

// Summary reports the run the way the research scripts did: final equity,
// trade counts, and realized result.
type Summary struct {
	FinalEquity float64
	Trades      int
	Wins        int
	WinRate     float64
	RealizedPnL float64
}

// Run iterates the frame bar by bar. For each bar the gateway matches
// resting orders first, so the strategy's reconciliation pass sees every
// fill from earlier submissions before it decides anything new.
func Run(frame *feed.Frame, gw *gateway.SimGateway, st *strategy.Strategy, symbol string) (Summary, error) {
	if frame == nil {
		return Summary{}, errors.New("backtest: nil frame")
	}
	for frame.Next() {
		s := frame.Snapshot()
		close, ok := s.At(feed.Close, 0)
		if !ok {
			continue
		}
		open := seriesOr(s, feed.Open, close)
		high := seriesOr(s, feed.High, close)
		low := seriesOr(s, feed.Low, close)

		gw.MarkBar(symbol, open, high, low, close)
		st.OnBar(s)
	}

	led := st.Ledger()
	return Summary{
		FinalEquity: gw.Equity(),
		Trades:      led.TradeCount(),
		Wins:        led.WinCount(),
		WinRate:     led.WinRate(),
		RealizedPnL: led.RealizedPnL(),
	}, nil
}

func seriesOr(s *feed.Snapshot, name string, fallback float64) float64 {
	if v, ok := s.At(name, 0); ok {
		return v
	}
	return fallback
}

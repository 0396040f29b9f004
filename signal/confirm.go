package signal

import (
	"github.com/evdnx/goti"

	"github.com/evdnx/gostrat/config"
)

// Confirmer is an optional veto layer on top of the pure evaluators. It
// feeds the raw bars to a goti indicator suite and vetoes a long entry
// when the suite's own oscillators flag a bearish turn on the same bar.
type Confirmer struct {
	suite *goti.IndicatorSuite
}

// NewConfirmer builds a suite with the strategy's RSI bands; the remaining
// suite parameters keep their goti defaults.
func NewConfirmer(cfg config.StrategyConfig) (*Confirmer, error) {
	ic := goti.DefaultConfig()
	ic.RSIOverbought = cfg.RSIOverbought
	ic.RSIOversold = cfg.RSIOversold
	suite, err := goti.NewIndicatorSuiteWithConfig(ic)
	if err != nil {
		return nil, err
	}
	return &Confirmer{suite: suite}, nil
}

// Observe feeds one bar into the suite.
func (c *Confirmer) Observe(high, low, close, volume float64) error {
	return c.suite.Add(high, low, close, volume)
}

// VetoLong reports whether the suite sees a bearish turn on the current
// bar. During warm-up nothing is vetoed.
func (c *Confirmer) VetoLong() bool {
	if len(c.suite.GetRSI().GetCloses()) < 14 {
		return false
	}
	if ok, err := c.suite.GetHMA().IsBearishCrossover(); err == nil && ok {
		return true
	}
	if ok, err := c.suite.GetRSI().IsBearishCrossover(); err == nil && ok {
		return true
	}
	return c.suite.GetATSO().IsBearishCrossover()
}

package risk

import (
	"math"

	"github.com/evdnx/gostrat/config"
)

// Units sizes a new position from account equity and current volatility.
//
// risk_money   = equity * RiskFraction
// per_unit     = atr * StopMultiplier
// raw units    = floor(risk_money / per_unit)
// capped at      floor(equity * MaxPositionFraction / price)
//
// Non-positive equity, price, or ATR means "do not trade this bar" and
// sizes to zero rather than erroring: the run must never halt on one bad
// input (a zero ATR happens on flat warm-up data).
func Units(equity, price, atr float64, cfg config.StrategyConfig) int {
	// Negated form so NaN inputs also size to zero.
	if !(equity > 0 && price > 0 && atr > 0) {
		return 0
	}
	perUnit := atr * cfg.StopMultiplier
	if perUnit <= 0 {
		return 0
	}
	raw := int(math.Floor(equity * cfg.RiskFraction / perUnit))
	capUnits := int(math.Floor(equity * cfg.MaxPositionFraction / price))
	if raw > capUnits {
		raw = capUnits
	}
	if raw < 0 {
		return 0
	}
	return raw
}

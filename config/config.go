package config

import (
	"errors"
	"fmt"
)

// StrategyConfig holds all tunable parameters for a strategy run. The
// struct is immutable once handed to a strategy: nothing in the trading
// path writes it back.
type StrategyConfig struct {
	// Risk parameters driving the position sizer and the stop lifecycle.
	RiskFraction        float64 `mapstructure:"risk_fraction"`         // e.g. 0.02 = 2 % of equity per trade
	ATRPeriod           int     `mapstructure:"atr_period"`            // period of the ATR series the feed supplies
	StopMultiplier      float64 `mapstructure:"stop_multiplier"`       // stop distance = ATR * multiplier
	MaxPositionFraction float64 `mapstructure:"max_position_fraction"` // exposure cap as fraction of equity
	RetainFraction      float64 `mapstructure:"retain_fraction"`       // position kept on a partial exit
	AntiChurnThreshold  float64 `mapstructure:"anti_churn_threshold"`  // min relative stop improvement before replacing
	BreakEvenTrigger    float64 `mapstructure:"break_even_trigger"`    // fraction of initial risk that arms break-even
	BreakEvenBuffer     float64 `mapstructure:"break_even_buffer"`     // stop lands at entry * (1 + buffer)

	// Moving-average signal periods (dual-MA / trend variants).
	FastPeriod  int `mapstructure:"fast_period"`
	SlowPeriod  int `mapstructure:"slow_period"`
	TrendPeriod int `mapstructure:"trend_period"`

	// Oscillator bands shared by the variants.
	RSIOversold     float64 `mapstructure:"rsi_oversold"`
	RSIOverbought   float64 `mapstructure:"rsi_overbought"`
	StochOversold   float64 `mapstructure:"stoch_oversold"`
	StochOverbought float64 `mapstructure:"stoch_overbought"`
	ADXThreshold    float64 `mapstructure:"adx_threshold"`

	// Volume and volatility filters.
	VolumeThreshold  float64 `mapstructure:"volume_threshold"`  // min volume / volume-MA ratio
	VolumeMultiplier float64 `mapstructure:"volume_multiplier"` // breakout volume confirmation
	VolatilityRatio  float64 `mapstructure:"volatility_ratio"`  // breakout compression ceiling
	ConsolidationMax float64 `mapstructure:"consolidation_max"` // breakout range / close ceiling

	// Fixed-fraction exits used by the non-flagship variants.
	StopLossPct   float64 `mapstructure:"stop_loss_pct"`
	TakeProfitPct float64 `mapstructure:"take_profit_pct"`

	// Mean-reversion hold management.
	ZScoreExit  float64 `mapstructure:"zscore_exit"`
	MinHoldBars int     `mapstructure:"min_hold_bars"`
	MaxHoldBars int     `mapstructure:"max_hold_bars"`

	// ML-scored variant probability bands.
	MLLongThreshold  float64 `mapstructure:"ml_long_threshold"`
	MLShortThreshold float64 `mapstructure:"ml_short_threshold"`
}

// Default returns the parameter set the original research settled on.
func Default() StrategyConfig {
	return StrategyConfig{
		RiskFraction:        0.02,
		ATRPeriod:           14,
		StopMultiplier:      2.0,
		MaxPositionFraction: 0.8,
		RetainFraction:      0.15,
		AntiChurnThreshold:  0.005,
		BreakEvenTrigger:    0.6,
		BreakEvenBuffer:     0.001,

		FastPeriod:  10,
		SlowPeriod:  30,
		TrendPeriod: 60,

		RSIOversold:     30,
		RSIOverbought:   70,
		StochOversold:   20,
		StochOverbought: 80,
		ADXThreshold:    25,

		VolumeThreshold:  0.8,
		VolumeMultiplier: 1.5,
		VolatilityRatio:  0.7,
		ConsolidationMax: 0.08,

		StopLossPct:   0.03,
		TakeProfitPct: 0.08,

		ZScoreExit:  0.5,
		MinHoldBars: 3,
		MaxHoldBars: 10,

		MLLongThreshold:  0.65,
		MLShortThreshold: 0.35,
	}
}

// Validate checks that all numeric fields are within sensible bounds.
// It returns the first encountered error, allowing the caller to surface a
// clear configuration problem before any trading starts.
func (c *StrategyConfig) Validate() error {
	if c.RiskFraction <= 0 || c.RiskFraction > 0.5 {
		return fmt.Errorf("RiskFraction (%f) must be >0 and <=0.5", c.RiskFraction)
	}
	if c.ATRPeriod <= 0 {
		return errors.New("ATRPeriod must be positive")
	}
	if c.StopMultiplier <= 0 {
		return errors.New("StopMultiplier must be positive")
	}
	if c.MaxPositionFraction <= 0 || c.MaxPositionFraction > 1 {
		return fmt.Errorf("MaxPositionFraction (%f) must be >0 and <=1", c.MaxPositionFraction)
	}
	if c.RetainFraction < 0 || c.RetainFraction >= 1 {
		return fmt.Errorf("RetainFraction (%f) must be >=0 and <1", c.RetainFraction)
	}
	if c.AntiChurnThreshold < 0 || c.AntiChurnThreshold > 0.2 {
		return fmt.Errorf("AntiChurnThreshold (%f) out of realistic range", c.AntiChurnThreshold)
	}
	if c.BreakEvenTrigger <= 0 || c.BreakEvenTrigger > 2 {
		return fmt.Errorf("BreakEvenTrigger (%f) must be >0 and <=2", c.BreakEvenTrigger)
	}
	if c.BreakEvenBuffer < 0 || c.BreakEvenBuffer > 0.05 {
		return fmt.Errorf("BreakEvenBuffer (%f) out of realistic range", c.BreakEvenBuffer)
	}
	if c.FastPeriod <= 0 || c.SlowPeriod <= 0 || c.TrendPeriod <= 0 {
		return errors.New("moving-average periods must be positive")
	}
	if c.FastPeriod >= c.SlowPeriod {
		return fmt.Errorf("FastPeriod (%d) must be shorter than SlowPeriod (%d)", c.FastPeriod, c.SlowPeriod)
	}
	if c.RSIOversold >= c.RSIOverbought {
		return errors.New("RSIOversold must be below RSIOverbought")
	}
	if c.StochOversold >= c.StochOverbought {
		return errors.New("StochOversold must be below StochOverbought")
	}
	if c.ADXThreshold < 0 || c.ADXThreshold > 100 {
		return fmt.Errorf("ADXThreshold (%f) must be within [0,100]", c.ADXThreshold)
	}
	if c.VolumeThreshold < 0 {
		return errors.New("VolumeThreshold cannot be negative")
	}
	if c.StopLossPct <= 0 || c.StopLossPct > 0.2 {
		return fmt.Errorf("StopLossPct (%f) must be >0 and <=0.2", c.StopLossPct)
	}
	if c.TakeProfitPct < 0 || c.TakeProfitPct > 5 {
		return fmt.Errorf("TakeProfitPct (%f) out of realistic range", c.TakeProfitPct)
	}
	if c.MinHoldBars < 0 || c.MaxHoldBars < 0 {
		return errors.New("hold-bar limits cannot be negative")
	}
	if c.MaxHoldBars > 0 && c.MinHoldBars > c.MaxHoldBars {
		return errors.New("MinHoldBars cannot exceed MaxHoldBars")
	}
	if c.MLShortThreshold >= c.MLLongThreshold {
		return errors.New("MLShortThreshold must be below MLLongThreshold")
	}
	return nil
}

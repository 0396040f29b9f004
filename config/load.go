package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Load reads a StrategyConfig from the given YAML file, applying
// GOSTRAT_-prefixed environment overrides on top (e.g.
// GOSTRAT_RISK_FRACTION=0.01). Missing keys fall back to Default().
func Load(path string) (StrategyConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("GOSTRAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return StrategyConfig{}, errors.Wrapf(err, "read config %s", path)
	}

	var cfg StrategyConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return StrategyConfig{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return StrategyConfig{}, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("risk_fraction", def.RiskFraction)
	v.SetDefault("atr_period", def.ATRPeriod)
	v.SetDefault("stop_multiplier", def.StopMultiplier)
	v.SetDefault("max_position_fraction", def.MaxPositionFraction)
	v.SetDefault("retain_fraction", def.RetainFraction)
	v.SetDefault("anti_churn_threshold", def.AntiChurnThreshold)
	v.SetDefault("break_even_trigger", def.BreakEvenTrigger)
	v.SetDefault("break_even_buffer", def.BreakEvenBuffer)
	v.SetDefault("fast_period", def.FastPeriod)
	v.SetDefault("slow_period", def.SlowPeriod)
	v.SetDefault("trend_period", def.TrendPeriod)
	v.SetDefault("rsi_oversold", def.RSIOversold)
	v.SetDefault("rsi_overbought", def.RSIOverbought)
	v.SetDefault("stoch_oversold", def.StochOversold)
	v.SetDefault("stoch_overbought", def.StochOverbought)
	v.SetDefault("adx_threshold", def.ADXThreshold)
	v.SetDefault("volume_threshold", def.VolumeThreshold)
	v.SetDefault("volume_multiplier", def.VolumeMultiplier)
	v.SetDefault("volatility_ratio", def.VolatilityRatio)
	v.SetDefault("consolidation_max", def.ConsolidationMax)
	v.SetDefault("stop_loss_pct", def.StopLossPct)
	v.SetDefault("take_profit_pct", def.TakeProfitPct)
	v.SetDefault("zscore_exit", def.ZScoreExit)
	v.SetDefault("min_hold_bars", def.MinHoldBars)
	v.SetDefault("max_hold_bars", def.MaxHoldBars)
	v.SetDefault("ml_long_threshold", def.MLLongThreshold)
	v.SetDefault("ml_short_threshold", def.MLShortThreshold)
}

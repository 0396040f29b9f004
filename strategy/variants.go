package strategy

import (
	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/gateway"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/signal"
)

// The five variants share one controller; each constructor only picks the
// evaluator.

// NewDualMA builds the flagship dual moving-average strategy.
func NewDualMA(symbol string, cfg config.StrategyConfig, gw gateway.Gateway, log logger.Logger) (*Strategy, error) {
	return New(symbol, cfg, gw, signal.NewDualMA(cfg), log)
}

// NewTrend builds the trend-following strategy.
func NewTrend(symbol string, cfg config.StrategyConfig, gw gateway.Gateway, log logger.Logger) (*Strategy, error) {
	return New(symbol, cfg, gw, signal.NewTrend(cfg), log)
}

// NewBreakout builds the consolidation-breakout strategy.
func NewBreakout(symbol string, cfg config.StrategyConfig, gw gateway.Gateway, log logger.Logger) (*Strategy, error) {
	return New(symbol, cfg, gw, signal.NewBreakout(cfg), log)
}

// NewMeanReversion builds the oversold mean-reversion strategy.
func NewMeanReversion(symbol string, cfg config.StrategyConfig, gw gateway.Gateway, log logger.Logger) (*Strategy, error) {
	return New(symbol, cfg, gw, signal.NewMeanReversion(cfg), log)
}

// NewMLScore builds the factor-ensemble strategy.
func NewMLScore(symbol string, cfg config.StrategyConfig, gw gateway.Gateway, log logger.Logger) (*Strategy, error) {
	return New(symbol, cfg, gw, signal.NewMLScore(cfg), log)
}

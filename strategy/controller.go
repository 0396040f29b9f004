package strategy

import (
	"math"
	"time"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/feed"
	"github.com/evdnx/gostrat/gateway"
	"github.com/evdnx/gostrat/ledger"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/metrics"
	"github.com/evdnx/gostrat/risk"
	"github.com/evdnx/gostrat/signal"
	"github.com/evdnx/gostrat/types"
)

// recentLowLookback bounds the window used for the retained-position stop
// floor after a partial exit.
const recentLowLookback = 5

// Controller owns the position and its single protective stop order for
// the lifetime of a trade. It sizes entries from volatility and account
// risk, promotes the stop to break-even once, ratchets it upward as price
// trails, and keeps stop size in sync with position size across partial
// exits.
//
// The stop trigger only ever moves up: every replacement is checked
// against the last accepted trigger, and a downgrade is skipped rather
// than applied.
type Controller struct {
	gw   gateway.Gateway
	log  logger.Logger
	cfg  config.StrategyConfig
	led  *ledger.Ledger
	name string

	symbol string

	size       int
	entryPrice float64
	holdBars   int

	initialStop   float64
	breakEvenDone bool

	entryOrder types.OrderID
	exitOrder  types.OrderID
	stopOrder  types.OrderID
	stopQty    int
	lastStop   float64 // last accepted stop trigger; ratchet floor

	lows *priceBuffer
	now  func() time.Time
}

func NewController(name, symbol string, cfg config.StrategyConfig,
	gw gateway.Gateway, led *ledger.Ledger, log logger.Logger) *Controller {

	return &Controller{
		gw:     gw,
		log:    log,
		cfg:    cfg,
		led:    led,
		name:   name,
		symbol: symbol,
		lows:   newPriceBuffer(64),
		now:    time.Now,
	}
}

func (c *Controller) Size() int           { return c.size }
func (c *Controller) EntryPrice() float64 { return c.entryPrice }
func (c *Controller) HoldBars() int       { return c.holdBars }

// StopPrice returns the trigger of the outstanding protective stop, or 0
// when no stop is outstanding.
func (c *Controller) StopPrice() float64 {
	if c.stopOrder == 0 {
		return 0
	}
	return c.lastStop
}

// StopQty returns the size of the outstanding protective stop.
func (c *Controller) StopQty() int {
	if c.stopOrder == 0 {
		return 0
	}
	return c.stopQty
}

// Step reconciles pending notifications and then runs the bar's decisions.
func (c *Controller) Step(s *feed.Snapshot, v signal.Verdict) {
	c.Reconcile(s)
	c.Decide(s, v)
}

// Reconcile drains the gateway's notifications. It must run before any
// decision for the bar so the ratchet and size-sync checks see the latest
// confirmed state.
func (c *Controller) Reconcile(s *feed.Snapshot) {
	for _, n := range c.gw.Poll() {
		switch n.ID {
		case c.entryOrder:
			c.onEntryNotification(s, n)
		case c.stopOrder:
			c.onStopNotification(n)
		case c.exitOrder:
			c.onExitNotification(n)
		default:
			// A fill on an order we no longer track is the cancel/fill
			// race: the cancel lost and the fill is authoritative.
			if n.Status == types.Filled {
				c.applyClose(n.Price, n.Qty, "late_fill")
			}
		}
	}
}

func (c *Controller) onEntryNotification(s *feed.Snapshot, n types.Notification) {
	switch n.Status {
	case types.Filled:
		c.entryOrder = 0
		c.size += n.Qty
		c.entryPrice = n.Price
		c.holdBars = 0
		c.breakEvenDone = false
		metrics.PositionsOpen.WithLabelValues(c.name).Inc()
		c.log.Info("entry_filled",
			logger.String("symbol", c.symbol),
			logger.Float64("price", n.Price),
			logger.Int("qty", n.Qty),
		)
		stop := n.Price - c.stopATR(s, n.Price)*c.cfg.StopMultiplier
		c.initialStop = stop
		c.lastStop = 0
		c.placeStop(stop, c.size, "initial")
	case types.Canceled, types.Rejected:
		c.entryOrder = 0
		c.log.Warn("entry_order_lost",
			logger.String("symbol", c.symbol),
			logger.String("status", string(n.Status)),
			logger.String("reason", n.Reason),
		)
	}
}

func (c *Controller) onStopNotification(n types.Notification) {
	switch n.Status {
	case types.Filled:
		c.stopOrder = 0
		c.stopQty = 0
		c.applyClose(n.Price, n.Qty, "stop")
	case types.Canceled, types.Rejected:
		// Recoverable: clear the stale reference so the next bar's
		// re-protect pass may submit a fresh stop. The ratchet floor in
		// lastStop survives.
		c.stopOrder = 0
		c.stopQty = 0
		if n.Status == types.Rejected {
			c.log.Warn("stop_order_rejected",
				logger.String("symbol", c.symbol),
				logger.String("reason", n.Reason),
			)
		}
	}
}

func (c *Controller) onExitNotification(n types.Notification) {
	switch n.Status {
	case types.Filled:
		c.exitOrder = 0
		c.applyClose(n.Price, n.Qty, "exit")
	case types.Canceled, types.Rejected:
		c.exitOrder = 0
		c.log.Warn("exit_order_lost",
			logger.String("symbol", c.symbol),
			logger.String("status", string(n.Status)),
			logger.String("reason", n.Reason),
		)
	}
}

// applyClose books a closing fill: one immutable trade record per fill,
// partial or full.
func (c *Controller) applyClose(price float64, qty int, source string) {
	if c.size <= 0 {
		return
	}
	if qty > c.size {
		qty = c.size
	}
	pnl := (price - c.entryPrice) * float64(qty)
	rec := types.TradeRecord{
		Symbol:     c.symbol,
		EntryPrice: c.entryPrice,
		ExitPrice:  price,
		Qty:        qty,
		PnL:        pnl,
		ClosedAt:   c.now(),
	}
	c.led.Append(rec)
	outcome := "loss"
	if rec.Win() {
		outcome = "win"
	}
	metrics.TradesClosed.WithLabelValues(c.name, outcome).Inc()
	c.log.Info("trade_closed",
		logger.String("symbol", c.symbol),
		logger.String("source", source),
		logger.Float64("exit", price),
		logger.Int("qty", qty),
		logger.Float64("pnl", pnl),
	)

	c.size -= qty
	if c.size > 0 {
		return
	}
	// Full close: clear the trade's lifetime state.
	c.entryPrice = 0
	c.initialStop = 0
	c.breakEvenDone = false
	c.lastStop = 0
	c.holdBars = 0
	if c.stopOrder != 0 {
		_ = c.gw.Cancel(c.stopOrder)
		c.stopOrder = 0
		c.stopQty = 0
	}
	metrics.PositionsOpen.WithLabelValues(c.name).Dec()
}

// Decide runs the bar's entry or in-position management. Ordering within
// a bar is fixed: break-even promotion, then trailing update, then the
// partial-exit signal, so the partial exit sees the freshest stop price
// when computing the retained stop's floor.
func (c *Controller) Decide(s *feed.Snapshot, v signal.Verdict) {
	equity := c.gw.Equity()
	metrics.EquityGauge.Set(equity)

	price, okPrice := s.At(feed.Close, 0)
	if !okPrice || price <= 0 {
		return
	}
	if low, ok := s.At(feed.Low, 0); ok {
		c.lows.Add(low)
	} else {
		c.lows.Add(price)
	}

	// An in-flight market order blocks new decisions for the bar, exactly
	// one order-churn per signal.
	if c.entryOrder != 0 || c.exitOrder != 0 {
		return
	}

	atr, _ := s.At(feed.ATR, 0)

	if c.size == 0 {
		if !v.Enter {
			return
		}
		units := risk.Units(equity, price, atr, c.cfg)
		if units <= 0 {
			return
		}
		id, err := c.gw.SubmitMarket(c.symbol, types.Buy, units)
		if err != nil {
			c.log.Error("order_submit_failed",
				logger.String("symbol", c.symbol),
				logger.String("side", string(types.Buy)),
				logger.Int("qty", units),
				logger.Err(err),
			)
			return
		}
		c.entryOrder = id
		metrics.OrdersSubmitted.WithLabelValues(c.name, string(types.Market)).Inc()
		c.log.Info("entry_submitted",
			logger.String("symbol", c.symbol),
			logger.Int("qty", units),
			logger.Float64("price", price),
			logger.Float64("atr", atr),
		)
		return
	}

	c.holdBars++
	stopDist := c.stopATR(s, price) * c.cfg.StopMultiplier

	c.promoteBreakEven(price)
	c.trailStop(price, stopDist)
	if v.Exit {
		c.partialExit(price, stopDist)
	}
}

// promoteBreakEven moves the stop to just above entry once unrealized gain
// clears the configured fraction of initial risk. It fires at most once
// per position lifetime; if a trailing update already carried the stop
// above the break-even level, the promotion is recorded as done without
// touching the stop.
func (c *Controller) promoteBreakEven(price float64) {
	if c.breakEvenDone || c.entryPrice <= 0 || c.initialStop <= 0 {
		return
	}
	initialRisk := c.entryPrice - c.initialStop
	if initialRisk <= 0 {
		return
	}
	if price-c.entryPrice <= initialRisk*c.cfg.BreakEvenTrigger {
		return
	}
	newStop := c.entryPrice * (1 + c.cfg.BreakEvenBuffer)
	if c.stopOrder != 0 && newStop <= c.lastStop {
		c.breakEvenDone = true
		metrics.StopUpdatesSkipped.WithLabelValues(c.name, "ratchet").Inc()
		return
	}
	c.replaceStop(newStop, c.size, "break_even")
	c.breakEvenDone = true
}

// trailStop ratchets the stop toward price - ATR*multiplier. The dual
// condition (above the anti-churn threshold AND above the last trigger)
// suppresses replacement storms from tiny favorable moves while never
// letting the stop regress. With no stop outstanding it re-protects at the
// ratchet floor.
func (c *Controller) trailStop(price, stopDist float64) {
	dynamic := price - stopDist
	if c.stopOrder == 0 {
		// Submission failed or the order was canceled/rejected earlier.
		reprotect := math.Max(dynamic, c.lastStop)
		if reprotect > 0 {
			c.placeStop(reprotect, c.size, "reprotect")
		}
		return
	}
	if dynamic > c.lastStop*(1+c.cfg.AntiChurnThreshold) && dynamic > c.lastStop {
		c.log.Info("trailing_stop_raised",
			logger.String("symbol", c.symbol),
			logger.Float64("from", c.lastStop),
			logger.Float64("to", dynamic),
		)
		c.replaceStop(dynamic, c.size, "trailing")
		return
	}
	if dynamic > c.lastStop {
		metrics.StopUpdatesSkipped.WithLabelValues(c.name, "churn").Inc()
	}
}

// partialExit sells all but the retained fraction at market, cancels the
// now mis-sized stop unconditionally, and re-arms a stop sized exactly to
// the retained units, floored at the higher of the ratchet and the recent
// low minus one ATR.
func (c *Controller) partialExit(price, stopDist float64) {
	retain := int(math.Floor(float64(c.size) * c.cfg.RetainFraction))
	sellNow := c.size - retain
	if sellNow > 0 {
		id, err := c.gw.SubmitMarket(c.symbol, types.Sell, sellNow)
		if err != nil {
			// Keep the existing stop: its size still matches the position.
			c.log.Error("order_submit_failed",
				logger.String("symbol", c.symbol),
				logger.String("side", string(types.Sell)),
				logger.Int("qty", sellNow),
				logger.Err(err),
			)
			return
		}
		c.exitOrder = id
		metrics.OrdersSubmitted.WithLabelValues(c.name, string(types.Market)).Inc()
		c.log.Info("partial_exit_submitted",
			logger.String("symbol", c.symbol),
			logger.Int("sell", sellNow),
			logger.Int("retain", retain),
			logger.Float64("price", price),
		)
	}

	if c.stopOrder != 0 {
		_ = c.gw.Cancel(c.stopOrder)
		c.stopOrder = 0
		c.stopQty = 0
	}
	if retain == 0 {
		return
	}
	atr := stopDist / c.cfg.StopMultiplier
	floor := math.Max(c.lastStop, c.lows.Min(recentLowLookback)-atr)
	c.placeStop(floor, retain, "partial_exit")
}

// replaceStop is cancel-then-resubmit: the gateway's order model has no
// atomic price amendment.
func (c *Controller) replaceStop(trigger float64, qty int, reason string) {
	if c.stopOrder != 0 {
		_ = c.gw.Cancel(c.stopOrder)
		c.stopOrder = 0
		c.stopQty = 0
	}
	c.placeStop(trigger, qty, reason)
	metrics.StopReplacements.WithLabelValues(c.name, reason).Inc()
}

// placeStop submits the protective stop. A failed submission leaves the
// position unprotected for the bar; the next Decide re-protects. That is
// an accepted, logged risk rather than a fatal error.
func (c *Controller) placeStop(trigger float64, qty int, reason string) {
	if qty <= 0 || trigger <= 0 {
		return
	}
	id, err := c.gw.SubmitStop(c.symbol, types.Sell, qty, trigger)
	if err != nil {
		c.log.Warn("stop_submit_failed",
			logger.String("symbol", c.symbol),
			logger.String("reason", reason),
			logger.Float64("trigger", trigger),
			logger.Err(err),
		)
		return
	}
	c.stopOrder = id
	c.stopQty = qty
	c.lastStop = trigger
	metrics.OrdersSubmitted.WithLabelValues(c.name, string(types.Stop)).Inc()
	c.log.Info("stop_placed",
		logger.String("symbol", c.symbol),
		logger.String("mode", reason),
		logger.Float64("trigger", trigger),
		logger.Int("qty", qty),
	)
}

// stopATR returns the ATR used for stop distances, falling back to the
// rolling low volatility (and finally a price fraction) when the feed's
// ATR is missing or degenerate. Entry sizing deliberately does not use
// this fallback: a bad ATR means no new trade.
func (c *Controller) stopATR(s *feed.Snapshot, price float64) float64 {
	atr, ok := s.At(feed.ATR, 0)
	if ok && atr > 0 {
		return atr
	}
	if fallback := c.lows.Volatility(); fallback > 0 {
		return fallback
	}
	return price * 0.02
}

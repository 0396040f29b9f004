package gateway

import (
	"math"

	"github.com/pkg/errors"

	"github.com/evdnx/gostrat/types"
)

// SimGateway is the in-process paper gateway used by backtests. It shares
// the step-synchronous model of the strategies: MarkBar is called once per
// bar before the strategy runs, matching any resting orders against that
// bar and queueing the resulting notifications for the next Poll.
//
// Market orders fill at the open of the bar after submission. Stop sells
// fill at their trigger, or at the open when the bar gaps through it.
type SimGateway struct {
	cash       float64
	commission float64
	lastPrice  map[string]float64
	positions  map[string]int
	nextID     types.OrderID
	resting    []*simOrder
	queue      []types.Notification
}

type simOrder struct {
	order    types.Order
	terminal bool
}

func NewSimGateway(startCash, commission float64) *SimGateway {
	return &SimGateway{
		cash:       startCash,
		commission: commission,
		lastPrice:  make(map[string]float64),
		positions:  make(map[string]int),
	}
}

func (g *SimGateway) SubmitMarket(symbol string, side types.Side, qty int) (types.OrderID, error) {
	if qty <= 0 {
		return 0, errors.New("sim: quantity must be positive")
	}
	return g.accept(types.Order{Symbol: symbol, Side: side, Type: types.Market, Qty: qty}), nil
}

func (g *SimGateway) SubmitStop(symbol string, side types.Side, qty int, trigger float64) (types.OrderID, error) {
	if qty <= 0 {
		return 0, errors.New("sim: quantity must be positive")
	}
	if trigger <= 0 || math.IsNaN(trigger) {
		return 0, errors.New("sim: stop trigger must be positive")
	}
	return g.accept(types.Order{Symbol: symbol, Side: side, Type: types.Stop, Qty: qty, Trigger: trigger}), nil
}

func (g *SimGateway) accept(o types.Order) types.OrderID {
	g.nextID++
	o.ID = g.nextID
	g.resting = append(g.resting, &simOrder{order: o})
	g.queue = append(g.queue, types.Notification{ID: o.ID, Status: types.Accepted})
	return o.ID
}

// Cancel marks a resting order canceled. Orders that already filled (or
// were canceled/rejected) are left untouched: the fill notification that
// is already queued stays authoritative.
func (g *SimGateway) Cancel(id types.OrderID) error {
	for _, so := range g.resting {
		if so.order.ID != id || so.terminal {
			continue
		}
		so.terminal = true
		g.queue = append(g.queue, types.Notification{ID: id, Status: types.Canceled})
		return nil
	}
	return nil
}

func (g *SimGateway) Poll() []types.Notification {
	out := g.queue
	g.queue = nil
	return out
}

func (g *SimGateway) Equity() float64 {
	eq := g.cash
	for sym, qty := range g.positions {
		eq += float64(qty) * g.lastPrice[sym]
	}
	return eq
}

// Position returns the current signed quantity held for a symbol.
func (g *SimGateway) Position(symbol string) int { return g.positions[symbol] }

// Cash returns the free cash balance.
func (g *SimGateway) Cash() float64 { return g.cash }

// MarkBar matches resting orders for symbol against a new bar and updates
// the mark price used for equity. Call it once per step, before draining
// notifications into the strategy.
func (g *SimGateway) MarkBar(symbol string, open, high, low, close float64) {
	g.lastPrice[symbol] = close

	kept := g.resting[:0]
	for _, so := range g.resting {
		if so.terminal || so.order.Symbol != symbol {
			if !so.terminal {
				kept = append(kept, so)
			}
			continue
		}
		switch so.order.Type {
		case types.Market:
			g.fill(so, open)
		case types.Stop:
			price, triggered := stopFillPrice(so.order, open, high, low)
			if !triggered {
				kept = append(kept, so)
				continue
			}
			g.fill(so, price)
		}
	}
	g.resting = kept
}

func stopFillPrice(o types.Order, open, high, low float64) (float64, bool) {
	if o.Side == types.Sell {
		if open <= o.Trigger {
			return open, true
		}
		if low <= o.Trigger {
			return o.Trigger, true
		}
		return 0, false
	}
	// Buy stop: triggers at or above the price.
	if open >= o.Trigger {
		return open, true
	}
	if high >= o.Trigger {
		return o.Trigger, true
	}
	return 0, false
}

func (g *SimGateway) fill(so *simOrder, price float64) {
	o := so.order
	so.terminal = true

	gross := price * float64(o.Qty)
	fee := gross * g.commission

	if o.Side == types.Buy {
		if gross+fee > g.cash {
			g.queue = append(g.queue, types.Notification{
				ID: o.ID, Status: types.Rejected, Reason: "insufficient cash",
			})
			return
		}
		g.cash -= gross + fee
		g.positions[o.Symbol] += o.Qty
	} else {
		if g.positions[o.Symbol] < o.Qty {
			g.queue = append(g.queue, types.Notification{
				ID: o.ID, Status: types.Rejected, Reason: "insufficient position",
			})
			return
		}
		g.cash += gross - fee
		g.positions[o.Symbol] -= o.Qty
	}
	g.queue = append(g.queue, types.Notification{
		ID: o.ID, Status: types.Filled, Price: price, Qty: o.Qty,
	})
}

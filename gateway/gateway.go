// Package gateway defines the execution boundary the strategies trade
// through. Submissions are acknowledged immediately; their effects (fills,
// cancellations, rejections) arrive later as notifications that callers
// drain via Poll before making any decisions for the new bar.
package gateway

import "github.com/evdnx/gostrat/types"

type Gateway interface {
	// SubmitMarket places an immediate order for qty units.
	SubmitMarket(symbol string, side types.Side, qty int) (types.OrderID, error)

	// SubmitStop places a protective stop that triggers at the given price.
	SubmitStop(symbol string, side types.Side, qty int, trigger float64) (types.OrderID, error)

	// Cancel is best-effort: cancelling an order that already reached a
	// terminal state is a no-op, not an error. A fill that races a cancel
	// wins; the fill notification is authoritative.
	Cancel(id types.OrderID) error

	// Poll drains all notifications accumulated since the last call, in
	// the order the events occurred.
	Poll() []types.Notification

	// Equity reports current account value (cash plus open positions at
	// the last marked price).
	Equity() float64
}

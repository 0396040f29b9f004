package types

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// OrderType distinguishes immediate market orders from protective stops.
type OrderType string

const (
	Market OrderType = "MARKET"
	Stop   OrderType = "STOP"
)

// OrderID is the gateway-assigned handle for a submitted order. Zero means
// "no order".
type OrderID uint64

// OrderStatus follows the gateway's notification lifecycle.
type OrderStatus string

const (
	Accepted OrderStatus = "ACCEPTED"
	Filled   OrderStatus = "FILLED"
	Canceled OrderStatus = "CANCELED"
	Rejected OrderStatus = "REJECTED"
)

type Order struct {
	ID      OrderID
	Symbol  string
	Side    Side
	Type    OrderType
	Qty     int
	Trigger float64 // stop trigger price; unused for market orders
	Comment string
}

// Notification reports a terminal or accepted state for a previously
// submitted order. Price and Qty are only meaningful when Status == Filled.
type Notification struct {
	ID     OrderID
	Status OrderStatus
	Price  float64
	Qty    int
	Reason string // populated on rejection
}

// TradeRecord is appended to the ledger on every closing fill, partial or
// full. Records are never mutated after creation.
type TradeRecord struct {
	Symbol     string
	EntryPrice float64
	ExitPrice  float64
	Qty        int
	PnL        float64
	ClosedAt   time.Time
}

// Win reports whether the closed lot exited above its entry.
func (t TradeRecord) Win() bool {
	return t.ExitPrice > t.EntryPrice
}

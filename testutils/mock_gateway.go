package testutils

import (
	"github.com/evdnx/gostrat/types"
)

// MockGateway implements the gateway interface in-memory. Submissions are
// captured for assertions; notifications are whatever the test scripted
// via Push, so tests control exactly when fills and rejections arrive.
type MockGateway struct {
	equity    float64
	nextID    types.OrderID
	submitted []types.Order
	canceled  []types.OrderID
	queue     []types.Notification

	// MarketErr / StopErr, when set, make the matching submit call fail.
	MarketErr error
	StopErr   error
}

// NewMockGateway creates a gateway reporting the supplied equity.
func NewMockGateway(equity float64) *MockGateway {
	return &MockGateway{equity: equity}
}

func (m *MockGateway) SubmitMarket(symbol string, side types.Side, qty int) (types.OrderID, error) {
	if m.MarketErr != nil {
		return 0, m.MarketErr
	}
	m.nextID++
	m.submitted = append(m.submitted, types.Order{
		ID: m.nextID, Symbol: symbol, Side: side, Type: types.Market, Qty: qty,
	})
	return m.nextID, nil
}

func (m *MockGateway) SubmitStop(symbol string, side types.Side, qty int, trigger float64) (types.OrderID, error) {
	if m.StopErr != nil {
		return 0, m.StopErr
	}
	m.nextID++
	m.submitted = append(m.submitted, types.Order{
		ID: m.nextID, Symbol: symbol, Side: side, Type: types.Stop, Qty: qty, Trigger: trigger,
	})
	return m.nextID, nil
}

// Cancel records the request. Whether a Canceled notification follows is
// up to the test (a fill may win the race instead).
func (m *MockGateway) Cancel(id types.OrderID) error {
	m.canceled = append(m.canceled, id)
	return nil
}

func (m *MockGateway) Poll() []types.Notification {
	out := m.queue
	m.queue = nil
	return out
}

func (m *MockGateway) Equity() float64 { return m.equity }

// SetEquity adjusts the reported account value mid-test.
func (m *MockGateway) SetEquity(v float64) { m.equity = v }

// Push queues a notification for the next Poll.
func (m *MockGateway) Push(n types.Notification) {
	m.queue = append(m.queue, n)
}

// Fill queues a fill notification for the given order.
func (m *MockGateway) Fill(id types.OrderID, price float64, qty int) {
	m.Push(types.Notification{ID: id, Status: types.Filled, Price: price, Qty: qty})
}

// Orders returns a copy of all captured submissions.
func (m *MockGateway) Orders() []types.Order {
	out := make([]types.Order, len(m.submitted))
	copy(out, m.submitted)
	return out
}

// LastOrder returns the most recent submission; the zero Order when none.
func (m *MockGateway) LastOrder() types.Order {
	if len(m.submitted) == 0 {
		return types.Order{}
	}
	return m.submitted[len(m.submitted)-1]
}

// StopOrders returns only the captured stop submissions, in order.
func (m *MockGateway) StopOrders() []types.Order {
	var out []types.Order
	for _, o := range m.submitted {
		if o.Type == types.Stop {
			out = append(out, o)
		}
	}
	return out
}

// CanceledIDs returns all cancel requests, in order.
func (m *MockGateway) CanceledIDs() []types.OrderID {
	out := make([]types.OrderID, len(m.canceled))
	copy(out, m.canceled)
	return out
}

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/types"
)

const testInstrument = types.InstrumentID(1)

func newTestEngine(t *testing.T, poolSize int) (*Engine, *recorder) {
	t.Helper()
	e := NewEngine(testInstrument, poolSize, logging.NewDevelopment())
	rec := newRecorder()
	e.OnAny(rec.record)
	return e, rec
}

// recorder captures every event an Engine emits, in order, for
// assertions against literal end-to-end scenarios.
type recorder struct {
	events []Event
}

func newRecorder() *recorder { return &recorder{} }

func (r *recorder) record(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func buyOrder(session types.SessionID, clOrdID string, price types.Price, qty types.Quantity) types.NewOrderSingle {
	return types.NewOrderSingle{
		SessionID:     session,
		InstrumentID:  testInstrument,
		ClientOrderID: types.ClientOrderID(clOrdID),
		Side:          types.SideBuy,
		OrderType:     types.OrderTypeLimit,
		TimeInForce:   types.TimeInForceDay,
		OrderPrice:    price,
		OrderQuantity: qty,
	}
}

func sellOrder(session types.SessionID, clOrdID string, price types.Price, qty types.Quantity) types.NewOrderSingle {
	o := buyOrder(session, clOrdID, price, qty)
	o.Side = types.SideSell
	return o
}

// Scenario 1: simple match.
func TestEngine_SimpleMatch(t *testing.T) {
	e, rec := newTestEngine(t, 16)

	e.Add(buyOrder(1, "b1", 21, 10))
	e.Add(sellOrder(2, "s1", 21, 10))

	require.Equal(t, []EventKind{
		EventOrderPendingNew, EventOrderNew,
		EventOrderPendingNew, EventOrderNew,
		EventOrderFilled, EventOrderFilled,
	}, rec.kinds())

	last := rec.events[len(rec.events)-2]
	assert.Equal(t, types.Price(21), last.Report.Order.LastPrice)
	assert.Equal(t, types.Quantity(10), last.Report.Order.LastQuantity)
	assert.True(t, e.IsEmpty())
}

// Scenario 2: partial then fill.
func TestEngine_PartialThenFill(t *testing.T) {
	e, rec := newTestEngine(t, 16)

	e.Add(buyOrder(1, "b1", 21, 10))
	e.Add(sellOrder(2, "s1", 21, 5))
	e.Add(sellOrder(2, "s2", 21, 5))

	kinds := rec.kinds()
	// PendingNew/New(B), PendingNew/New(S1), PartiallyFilled(B), Filled(S1),
	// PendingNew/New(S2), Filled(B), Filled(S2).
	require.Equal(t, []EventKind{
		EventOrderPendingNew, EventOrderNew,
		EventOrderPendingNew, EventOrderNew,
		EventOrderPartiallyFilled, EventOrderFilled,
		EventOrderPendingNew, EventOrderNew,
		EventOrderFilled, EventOrderFilled,
	}, kinds)
	assert.True(t, e.IsEmpty())
}

// Scenario 3: aggressor pricing.
func TestEngine_AggressorPricing(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 22, 10))
	e.Add(sellOrder(2, "s1", 21, 10))

	var fillPrice types.Price
	for _, ev := range rec.events {
		if ev.Kind == EventOrderFilled {
			fillPrice = ev.Report.Order.LastPrice
			break
		}
	}
	assert.Equal(t, types.Price(22), fillPrice)

	e2, rec2 := newTestEngine(t, 16)
	e2.Add(sellOrder(1, "s1", 21, 10))
	e2.Add(buyOrder(2, "b1", 22, 10))
	for _, ev := range rec2.events {
		if ev.Kind == EventOrderFilled {
			fillPrice = ev.Report.Order.LastPrice
			break
		}
	}
	assert.Equal(t, types.Price(21), fillPrice)
}

// Scenario 4: modify preserves priority on a quantity decrease.
func TestEngine_ModifyPreservesPriorityOnQtyDown(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 21, 10)) // id=1
	e.Add(buyOrder(1, "b2", 21, 10)) // id=2

	e.Modify(types.OrderCancelReplaceRequest{
		SessionID:         1,
		InstrumentID:      testInstrument,
		OrderID:           1,
		OrigClientOrderID: "b1",
		ClientOrderID:     "b1m",
		Side:              types.SideBuy,
		OrderPrice:        21,
		OrderQuantity:     8,
	})

	e.Add(sellOrder(2, "s1", 21, 10))

	var id1Final, id2Final types.RestingOrder
	for _, ev := range rec.events {
		if ev.Kind == EventOrderFilled && ev.Report.Order.OrderID == 1 {
			id1Final = ev.Report.Order
		}
		if ev.Kind == EventOrderPartiallyFilled && ev.Report.Order.OrderID == 2 {
			id2Final = ev.Report.Order
		}
	}
	assert.Equal(t, types.OrderStatusFilled, id1Final.OrderStatus)
	assert.Equal(t, types.Quantity(8), id1Final.ExecutedQuantity)
	assert.Equal(t, types.Quantity(8), id2Final.LeavesQuantity)
}

// Scenario 5: modify forfeits priority on a quantity increase.
func TestEngine_ModifyForfeitsPriorityOnQtyUp(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 21, 10)) // id=1
	e.Add(buyOrder(1, "b2", 21, 10)) // id=2

	e.Modify(types.OrderCancelReplaceRequest{
		SessionID:         1,
		InstrumentID:      testInstrument,
		OrderID:           1,
		OrigClientOrderID: "b1",
		ClientOrderID:     "b1m",
		Side:              types.SideBuy,
		OrderPrice:        21,
		OrderQuantity:     12,
	})

	e.Add(sellOrder(2, "s1", 21, 10))

	var id2Filled bool
	var id1Leaves types.Quantity = -1
	for _, ev := range rec.events {
		if ev.Kind == EventOrderFilled && ev.Report.Order.OrderID == 2 {
			id2Filled = true
		}
		if ev.Report.Order.OrderID == 1 {
			id1Leaves = ev.Report.Order.LeavesQuantity
		}
	}
	assert.True(t, id2Filled)
	assert.Equal(t, types.Quantity(12), id1Leaves)
}

// Scenario 6: cancel reject on unknown order.
func TestEngine_CancelRejectOnUnknown(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Cancel(types.OrderCancelRequest{
		SessionID:    1,
		InstrumentID: testInstrument,
		OrderID:      999,
		Side:         types.SideBuy,
	})

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, EventOrderCancelRejected, ev.Kind)
	assert.Equal(t, types.CancelRejectResponseToOrderCancelRequest, ev.Reject.ResponseTo)
	assert.True(t, e.IsEmpty())
}

// L1: Add then Cancel an otherwise-unmatched order leaves the book empty.
func TestEngine_AddThenCancel_L1(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 21, 10))
	e.Cancel(types.OrderCancelRequest{SessionID: 1, InstrumentID: testInstrument, OrderID: 1, Side: types.SideBuy})

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventOrderCancelled, last.Kind)
	assert.Equal(t, types.Quantity(0), last.Report.Order.LeavesQuantity)
	assert.True(t, e.IsEmpty())
}

// B1: duplicate (SessionId, ClientOrderId) on Add emits OrderRejected.
func TestEngine_DuplicateClientOrderID_B1(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "dup", 21, 10))
	e.Add(buyOrder(1, "dup", 22, 5))

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventOrderRejected, last.Kind)
	assert.Equal(t, 1, e.bids.count())
}

// B2: Modify with order_quantity < resting.executed_quantity is rejected.
func TestEngine_ModifyBelowExecuted_B2(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 21, 10))
	e.Add(sellOrder(2, "s1", 21, 4)) // id=1 partially fills to executed=4

	e.Modify(types.OrderCancelReplaceRequest{
		SessionID:         1,
		InstrumentID:      testInstrument,
		OrderID:           1,
		OrigClientOrderID: "b1",
		ClientOrderID:     "b1m",
		Side:              types.SideBuy,
		OrderPrice:        21,
		OrderQuantity:     2,
	})

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventOrderCancelRejected, last.Kind)
	assert.Equal(t, types.CancelRejectResponseToOrderCancelReplaceRequest, last.Reject.ResponseTo)
}

// B3: pool at capacity rejects the next Add.
func TestEngine_PoolExhaustion_B3(t *testing.T) {
	e, rec := newTestEngine(t, 1)
	e.Add(buyOrder(1, "b1", 21, 10))
	e.Add(buyOrder(1, "b2", 21, 10))

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventOrderRejected, last.Kind)
}

// B4: Cancel of an unknown OrderId emits OrderCancelRejected.
func TestEngine_CancelUnknown_B4(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Cancel(types.OrderCancelRequest{SessionID: 1, InstrumentID: testInstrument, OrderID: 42, Side: types.SideSell})

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventOrderCancelRejected, rec.events[0].Kind)
}

// P4: after Reset, both half-books are empty.
func TestEngine_Reset_P4(t *testing.T) {
	e, _ := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 21, 10))
	e.Add(sellOrder(2, "s1", 20, 5))
	require.False(t, e.IsEmpty())

	e.Reset()
	assert.True(t, e.IsEmpty())
	assert.True(t, e.bids.isEmpty())
	assert.True(t, e.asks.isEmpty())
}

// CancelAllBySession removes every resting order for a session from both
// sides and emits CancelOnDisconnect for each.
func TestEngine_CancelAllBySession(t *testing.T) {
	e, rec := newTestEngine(t, 16)
	e.Add(buyOrder(1, "b1", 21, 10))
	e.Add(buyOrder(1, "b2", 20, 5))
	e.Add(sellOrder(2, "s1", 25, 3))

	e.CancelAllBySession(1)

	assert.Equal(t, 0, e.bids.count())
	assert.Equal(t, 1, e.asks.count())

	var disconnects int
	for _, ev := range rec.events {
		if ev.Kind == EventCancelOnDisconnect {
			disconnects++
		}
	}
	assert.Equal(t, 2, disconnects)
}

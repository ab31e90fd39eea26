package types

import "time"

// NewOrderSingle is an inbound request to add a new order. It carries no
// server-assigned OrderID; the engine synthesizes one on acceptance.
type NewOrderSingle struct {
	RoutingID      RoutingID
	SessionID      SessionID
	AccountID      AccountID
	InstrumentID   InstrumentID
	ClientOrderID  ClientOrderID
	Side           Side
	OrderType      OrderType
	TimeInForce    TimeInForce
	OrderPrice     Price
	OrderQuantity  Quantity
}

// OrderCancelReplaceRequest carries the server OrderID of the order being
// amended, its previous client id, and the intended new price/quantity.
type OrderCancelReplaceRequest struct {
	RoutingID         RoutingID
	SessionID         SessionID
	AccountID         AccountID
	InstrumentID      InstrumentID
	OrderID           OrderID
	OrigClientOrderID ClientOrderID
	ClientOrderID     ClientOrderID
	Side              Side
	OrderPrice        Price
	OrderQuantity     Quantity
}

// OrderCancelRequest carries the server OrderID plus fields used to
// validate the cancel against the resting order.
type OrderCancelRequest struct {
	RoutingID         RoutingID
	SessionID         SessionID
	AccountID         AccountID
	InstrumentID      InstrumentID
	OrderID           OrderID
	ClientOrderID     ClientOrderID
	OrigClientOrderID ClientOrderID
	Side              Side
	OrderPrice        Price
	OrderQuantity     Quantity
}

// RestingOrder is the entity stored in the book. Pool slots are
// reused across the lifetime of an engine, so RestingOrder.Reset must be
// kept in step with every field added here.
type RestingOrder struct {
	OrderID      OrderID
	RoutingID    RoutingID
	SessionID    SessionID
	AccountID    AccountID
	InstrumentID InstrumentID

	Side        Side
	OrderType   OrderType
	TimeInForce TimeInForce

	OrderPrice    Price
	OrderQuantity Quantity
	LeavesQuantity Quantity
	ExecutedQuantity Quantity
	ExecutedValue    ExecutedValue

	LastPrice    Price
	LastQuantity Quantity

	OrderStatus OrderStatus

	ClientOrderID     ClientOrderID
	OrigClientOrderID ClientOrderID

	CreateTime     time.Time
	LastModifyTime time.Time
}

// Reset clears a RestingOrder to its zero value so a pool slot can be
// reused without leaking a previous order's identity.
func (o *RestingOrder) Reset() {
	*o = RestingOrder{}
}

// Snapshot returns a value copy suitable for embedding in an
// ExecutionReport without exposing the pool-owned pointer.
func (o *RestingOrder) Snapshot() RestingOrder {
	return *o
}

// ExecutionReport is a snapshot of a resting order plus the identifiers of
// the event that produced it.
type ExecutionReport struct {
	Order         RestingOrder
	ExecutionID   ExecutionID
	TransactionID TransactionID
}

// OrderCancelReject reports a failed Modify or Cancel.
type OrderCancelReject struct {
	OrderID           OrderID
	SessionID         SessionID
	ClientOrderID     ClientOrderID
	OrigClientOrderID ClientOrderID
	InstrumentID      InstrumentID
	ResponseTo        CancelRejectResponseTo
	Reason            string
	TransactionID     TransactionID
}

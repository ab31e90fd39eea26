package types

// Side identifies the direction of an order.
type Side uint8

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
	SideSellShort
	SideBuyCover
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	case SideSellShort:
		return "SellShort"
	case SideBuyCover:
		return "BuyCover"
	default:
		return "Unknown"
	}
}

// IsBuyLike reports whether the side is Buy or BuyCover.
func (s Side) IsBuyLike() bool { return s == SideBuy || s == SideBuyCover }

// IsSellLike reports whether the side is Sell or SellShort.
func (s Side) IsSellLike() bool { return s == SideSell || s == SideSellShort }

// OrderStatus is the lifecycle state of an order.
type OrderStatus uint8

const (
	OrderStatusUnknown OrderStatus = iota
	OrderStatusPendingNew
	OrderStatusPendingModify
	OrderStatusPendingCancel
	OrderStatusRejected
	OrderStatusNew
	OrderStatusPartiallyFilled
	OrderStatusFilled
	OrderStatusCancelled
	OrderStatusCompleted
	OrderStatusCancelRejected
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPendingNew:
		return "PendingNew"
	case OrderStatusPendingModify:
		return "PendingModify"
	case OrderStatusPendingCancel:
		return "PendingCancel"
	case OrderStatusRejected:
		return "Rejected"
	case OrderStatusNew:
		return "New"
	case OrderStatusPartiallyFilled:
		return "PartiallyFilled"
	case OrderStatusFilled:
		return "Filled"
	case OrderStatusCancelled:
		return "Cancelled"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelRejected:
		return "CancelRejected"
	default:
		return "Unknown"
	}
}

// StatusFromQuantities derives OrderStatus from executed/order quantity.
// It never returns a terminal status (Cancelled, Rejected, Completed) —
// those are set explicitly by the operation that produces them.
func StatusFromQuantities(executed, ordered Quantity) OrderStatus {
	switch {
	case executed >= ordered:
		return OrderStatusFilled
	case executed == 0:
		return OrderStatusNew
	default:
		return OrderStatusPartiallyFilled
	}
}

// OrderType classifies the order's execution style. Only Limit is honored
// by the matching engine; the others are accepted at the type level so
// gateway/ingress validation can reject them explicitly.
type OrderType uint8

const (
	OrderTypeUnknown OrderType = iota
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStop
	OrderTypeStopLimit
)

// TimeInForce is accepted and stored on every order, but this engine only
// implements Day semantics: every resting order matches under the same
// price-time priority rules regardless of TimeInForce, and IOC/FOK/GTC
// carry no distinct cancel-remainder or persistence behavior yet.
type TimeInForce uint8

const (
	TimeInForceUnknown TimeInForce = iota
	TimeInForceDay
	TimeInForceGTC
	TimeInForceIOC
	TimeInForceFOK
)

// CancelRejectResponseTo discriminates which request an OrderCancelReject
// event is responding to.
type CancelRejectResponseTo uint8

const (
	CancelRejectResponseToUnknown CancelRejectResponseTo = iota
	CancelRejectResponseToOrderCancelRequest
	CancelRejectResponseToOrderCancelReplaceRequest
)

func (r CancelRejectResponseTo) String() string {
	switch r {
	case CancelRejectResponseToOrderCancelRequest:
		return "OrderCancelRequest"
	case CancelRejectResponseToOrderCancelReplaceRequest:
		return "OrderCancelReplaceRequest"
	default:
		return "Unknown"
	}
}

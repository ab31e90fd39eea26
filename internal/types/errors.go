package types

import "github.com/pkg/errors"

// Ingress-boundary errors, raised by internal/matching's validation
// functions before a request is routed to an Engine.
var (
	ErrUnknownInstrument   = errors.New("instrument id is not known")
	ErrInvalidSide         = errors.New("side is not one of Buy, Sell, BuyCover, SellShort")
	ErrInvalidOrderType    = errors.New("order type must be Limit")
	ErrInvalidQuantity     = errors.New("order quantity must be > 0")
	ErrInvalidPrice        = errors.New("order price must be > 0")
	ErrEmptyClientOrderID  = errors.New("client order id must not be empty")
)

// Engine/half-book errors; these correspond to reject reasons surfaced on
// OrderRejected/OrderCancelReject events.
var (
	ErrDuplicateClientOrderID = errors.New("duplicate (session, client order id)")
	ErrOrderNotFound          = errors.New("order id not found on this side of the book")
	ErrSessionMismatch        = errors.New("resting order belongs to a different session")
	ErrClientOrderIDMismatch  = errors.New("orig client order id does not match resting order")
	ErrQuantityBelowExecuted  = errors.New("order quantity is below already-executed quantity")
	ErrPoolExhausted          = errors.New("no capacity")
	ErrNotLimitOrder          = errors.New("only Limit orders are honored by the matching engine")
	ErrPriceNotFound          = errors.New("no resting order at that price")
)

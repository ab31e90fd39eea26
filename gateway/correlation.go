package gateway

import "github.com/google/uuid"

// CorrelationID identifies one ingress request end-to-end across gateway
// hops, independent of the engine's own OrderId/TransactionId sequences.
// It never reaches the matching engine itself: the core has no notion of
// a wire-level correlation token.
type CorrelationID string

// NewCorrelationID mints a fresh correlation id for an inbound request.
func NewCorrelationID() CorrelationID {
	return CorrelationID(uuid.NewString())
}

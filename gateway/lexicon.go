// Package gateway sketches the ingress/egress boundary between an
// external wire protocol and the matching engine. Wire framing and
// transport are explicitly out of scope; this package only owns the
// egress translation table and ingress correlation ids. Ingress
// validation runs in internal/matching's Router.
package gateway

import "code.quantvenue.io/matchcore/internal/matching"

// ExecType and OrdStatus are the FIX-style lexicon values a gateway
// implementation maps EventKinds onto.
type ExecType string
type OrdStatus string

const (
	ExecTypeNew         ExecType = "NEW"
	ExecTypePartialFill ExecType = "PARTIAL_FILL"
	ExecTypeFill        ExecType = "FILL"
	ExecTypeReplaced    ExecType = "REPLACED"
	ExecTypeCancelled   ExecType = "CANCELLED"
	ExecTypeRejected    ExecType = "REJECTED"

	OrdStatusPendingNew      OrdStatus = "PENDING_NEW"
	OrdStatusNew             OrdStatus = "NEW"
	OrdStatusPartiallyFilled OrdStatus = "PARTIALLY_FILLED"
	OrdStatusFilled          OrdStatus = "FILLED"
	OrdStatusReplaced        OrdStatus = "REPLACED"
	OrdStatusCanceled        OrdStatus = "CANCELED"
	OrdStatusRejected        OrdStatus = "REJECTED"
)

// lexicon maps EventKinds the engine emits onto the (ExecType, OrdStatus)
// pair a FIX-style egress adapter would publish. OrderCancelRejected falls
// outside this table: it carries its own CxlRejResponseTo discriminator
// instead of an ExecType/OrdStatus pair. OrderPendingModify, which the
// engine also emits, has no entry.
var lexicon = map[matching.EventKind]struct {
	ExecType
	OrdStatus
}{
	matching.EventOrderPendingNew:       {ExecTypeNew, OrdStatusPendingNew},
	matching.EventOrderNew:              {ExecTypeNew, OrdStatusNew},
	matching.EventOrderPartiallyFilled:  {ExecTypePartialFill, OrdStatusPartiallyFilled},
	matching.EventOrderFilled:           {ExecTypeFill, OrdStatusFilled},
	matching.EventOrderModified:         {ExecTypeReplaced, OrdStatusReplaced},
	matching.EventOrderCancelled:        {ExecTypeCancelled, OrdStatusCanceled},
	matching.EventOrderRejected:         {ExecTypeRejected, OrdStatusRejected},
	matching.EventCancelOnDisconnect:    {ExecTypeCancelled, OrdStatusCanceled},
}

// Translate returns the FIX-style (ExecType, OrdStatus) pair for kind, or
// ok=false for kinds the lexicon does not cover — OrderCancelRejected
// carries its own CxlRejResponseTo discriminator instead, and the
// PendingModify/PendingCancel/Completed kinds have no FIX egress mapping
// defined by this table.
func Translate(kind matching.EventKind) (execType ExecType, ordStatus OrdStatus, ok bool) {
	v, found := lexicon[kind]
	if !found {
		return "", "", false
	}
	return v.ExecType, v.OrdStatus, true
}

package matching

import (
	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/types"
)

// knownInstruments is the set of instrument ids validated at ingress:
// instrument_id is known; side is a recognized enumerator; order type is
// Limit; quantity and price are strictly positive; client order id is
// non-empty. Chained if/else-if follows the teacher's
// matching/validation.go idiom.
type knownInstruments map[types.InstrumentID]bool

func validateNewOrderSingle(req types.NewOrderSingle, known knownInstruments, log *logging.Logger) (err error) {
	if !known[req.InstrumentID] {
		log.Debug("unknown instrument", logging.Uint64("instrument", uint64(req.InstrumentID)))
		err = types.ErrUnknownInstrument
	} else if req.Side != types.SideBuy && req.Side != types.SideSell && req.Side != types.SideBuyCover && req.Side != types.SideSellShort {
		err = types.ErrInvalidSide
	} else if req.OrderType != types.OrderTypeLimit {
		err = types.ErrInvalidOrderType
	} else if req.OrderQuantity <= 0 {
		err = types.ErrInvalidQuantity
	} else if req.OrderPrice <= 0 {
		err = types.ErrInvalidPrice
	} else if len(req.ClientOrderID) == 0 {
		err = types.ErrEmptyClientOrderID
	}
	return err
}

func validateCancelReplace(req types.OrderCancelReplaceRequest, known knownInstruments) (err error) {
	if !known[req.InstrumentID] {
		err = types.ErrUnknownInstrument
	} else if req.OrderQuantity <= 0 {
		err = types.ErrInvalidQuantity
	} else if req.OrderPrice <= 0 {
		err = types.ErrInvalidPrice
	} else if len(req.ClientOrderID) == 0 {
		err = types.ErrEmptyClientOrderID
	}
	return err
}

func validateCancel(req types.OrderCancelRequest, known knownInstruments) (err error) {
	if !known[req.InstrumentID] {
		err = types.ErrUnknownInstrument
	}
	return err
}

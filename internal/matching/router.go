package matching

import (
	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/types"
)

// Router multiplexes requests across one Engine per instrument, running
// ingress validation before a request ever reaches an Engine. Grounded
// on the teacher's oldest generation, matching.go's
// matchingEngine{markets map[string]*OrderBook}, generalized from a
// single flat SubmitOrder/CancelOrder pair to the full Add/Modify/
// Cancel/CancelAllBySession surface.
type Router struct {
	engines map[types.InstrumentID]*Engine
	known   knownInstruments
	log     *logging.Logger
}

// NewRouter constructs a Router with one Engine per instrument in cfg.
func NewRouter(cfg *Config, log *logging.Logger) *Router {
	r := &Router{
		engines: cfg.Engines(),
		known:   make(knownInstruments, len(cfg.InstrumentIDs)),
		log:     log.Named(namedLogger),
	}
	for _, id := range cfg.InstrumentIDs {
		r.known[id] = true
	}
	return r
}

// Engine returns the Engine for instrument, or nil if it is not
// configured.
func (r *Router) Engine(instrument types.InstrumentID) *Engine {
	return r.engines[instrument]
}

// OnAny registers l on every configured Engine.
func (r *Router) OnAny(l Listener) {
	for _, e := range r.engines {
		e.OnAny(l)
	}
}

// Add validates req against ingress rules and, if valid, routes it to
// the matching instrument's Engine.
func (r *Router) Add(req types.NewOrderSingle) {
	if err := validateNewOrderSingle(req, r.known, r.log); err != nil {
		r.log.Debug("ingress reject", logging.Error(err))
		return
	}
	r.engines[req.InstrumentID].Add(req)
}

// Modify validates req against ingress rules and, if valid, routes it.
func (r *Router) Modify(req types.OrderCancelReplaceRequest) {
	if err := validateCancelReplace(req, r.known); err != nil {
		r.log.Debug("ingress reject", logging.Error(err))
		return
	}
	r.engines[req.InstrumentID].Modify(req)
}

// Cancel validates req against ingress rules and, if valid, routes it.
func (r *Router) Cancel(req types.OrderCancelRequest) {
	if err := validateCancel(req, r.known); err != nil {
		r.log.Debug("ingress reject", logging.Error(err))
		return
	}
	r.engines[req.InstrumentID].Cancel(req)
}

// CancelAllBySession forwards a session disconnect to every engine.
func (r *Router) CancelAllBySession(session types.SessionID) {
	for _, e := range r.engines {
		e.CancelAllBySession(session)
	}
}

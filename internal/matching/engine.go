package matching

import (
	"strconv"
	"time"

	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/metrics"
	"code.quantvenue.io/matchcore/internal/pool"
	"code.quantvenue.io/matchcore/internal/types"
)

// Engine is a single-instrument, single-threaded matching state machine.
// It owns two half-books, an event dispatcher, and the three monotonic
// counters that provide the engine's total order over events. Grounded
// on the teacher's oldest generation, matching.go's
// map[string]*OrderBook idiom, at the granularity of one OrderBook per
// instrument; the matching loop itself replaces every generation's
// pro-rata uncross with strict FIFO price-time priority per this system's
// scope.
type Engine struct {
	instrument   types.InstrumentID
	instrumentLb string // metrics/log label

	bids *halfBook
	asks *halfBook

	orderIDSeq     types.OrderID
	transactionSeq types.TransactionID
	executionSeq   types.ExecutionID

	disp *dispatcher
	log  *logging.Logger
}

// NewEngine constructs an Engine for one instrument with poolSize slots
// per side.
func NewEngine(instrument types.InstrumentID, poolSize int, log *logging.Logger) *Engine {
	label := strconv.FormatUint(uint64(instrument), 10)
	bidPool := pool.New(poolSize, label, "bid", log)
	askPool := pool.New(poolSize, label, "ask", log)
	return &Engine{
		instrument:   instrument,
		instrumentLb: label,
		bids:         newHalfBook(true, bidPool),
		asks:         newHalfBook(false, askPool),
		disp:         newDispatcher(),
		log:          log.Named("engine"),
	}
}

// On registers a listener for one EventKind.
func (e *Engine) On(kind EventKind, l Listener) { e.disp.on(kind, l) }

// OnAny registers a listener invoked for every EventKind, after any
// kind-specific listeners.
func (e *Engine) OnAny(l Listener) { e.disp.onAny(l) }

// IsEmpty reports whether both half-books hold no resting orders.
func (e *Engine) IsEmpty() bool { return e.bids.isEmpty() && e.asks.isEmpty() }

// Reset drops every resting order from both half-books without emitting
// events, returning the engine to its post-construction state except for
// the monotonic counters, which never rewind.
func (e *Engine) Reset() {
	e.bids.clear()
	e.asks.clear()
}

func (e *Engine) nextOrderID() types.OrderID {
	e.orderIDSeq++
	return e.orderIDSeq
}

func (e *Engine) nextTransactionID() types.TransactionID {
	e.transactionSeq++
	return e.transactionSeq
}

func (e *Engine) nextExecutionID() types.ExecutionID {
	e.executionSeq++
	return e.executionSeq
}

func (e *Engine) ownBook(side types.Side) *halfBook {
	if side.IsBuyLike() {
		return e.bids
	}
	return e.asks
}

func (e *Engine) emitReport(kind EventKind, o types.RestingOrder) {
	e.disp.emit(Event{
		Kind: kind,
		Report: types.ExecutionReport{
			Order:         o,
			ExecutionID:   e.nextExecutionID(),
			TransactionID: e.nextTransactionID(),
		},
	})
}

func (e *Engine) emitReject(o types.RestingOrder) {
	e.emitReport(EventOrderRejected, o)
}

func (e *Engine) emitCancelReject(reject types.OrderCancelReject) {
	reject.TransactionID = e.nextTransactionID()
	e.disp.emit(Event{Kind: EventOrderCancelRejected, Reject: reject})
}

// Add validates and books a NewOrderSingle. It always
// emits OrderPendingNew; on success OrderNew follows, then any resulting
// fills from Match(aggressor=req.Side). PendingNew and New are never
// fused, even for an immediately marketable limit order.
func (e *Engine) Add(req types.NewOrderSingle) {
	tc := metrics.NewTimeCounter(e.instrumentLb, "add")
	defer tc.Observe()

	now := time.Now()
	pending := types.RestingOrder{
		RoutingID:      req.RoutingID,
		SessionID:      req.SessionID,
		AccountID:      req.AccountID,
		InstrumentID:   req.InstrumentID,
		Side:           req.Side,
		OrderType:      req.OrderType,
		TimeInForce:    req.TimeInForce,
		OrderPrice:     req.OrderPrice,
		OrderQuantity:  req.OrderQuantity,
		LeavesQuantity: req.OrderQuantity,
		OrderStatus:    types.OrderStatusPendingNew,
		ClientOrderID:  req.ClientOrderID,
		CreateTime:     now,
		LastModifyTime: now,
	}
	pending.OrderID = e.nextOrderID()
	e.emitReport(EventOrderPendingNew, pending)

	own := e.ownBook(req.Side)

	if req.OrderType != types.OrderTypeLimit || req.OrderQuantity <= 0 {
		rejected := pending
		rejected.OrderStatus = types.OrderStatusRejected
		e.emitReject(rejected)
		return
	}

	if _, _, exists := own.clientOrder(req.SessionID, req.ClientOrderID); exists {
		rejected := pending
		rejected.OrderStatus = types.OrderStatusRejected
		e.emitReject(rejected)
		return
	}

	handle, slot, ok := own.pool.Take()
	if !ok {
		rejected := pending
		rejected.OrderStatus = types.OrderStatusRejected
		e.emitReject(rejected)
		return
	}
	*slot = pending
	slot.OrderStatus = types.OrderStatusNew
	if err := own.add(slot, handle); err != nil {
		own.pool.Offer(handle)
		rejected := pending
		rejected.OrderStatus = types.OrderStatusRejected
		e.emitReject(rejected)
		return
	}
	e.emitReport(EventOrderNew, *slot)

	e.match(req.Side)
}

// Modify applies an OrderCancelReplaceRequest. On any
// validation failure it emits OrderCancelRejected with
// response_to=OrderCancelReplaceRequest and leaves the book untouched.
func (e *Engine) Modify(req types.OrderCancelReplaceRequest) {
	tc := metrics.NewTimeCounter(e.instrumentLb, "modify")
	defer tc.Observe()

	own := e.ownBook(req.Side)
	o, be, ok := own.lookup(req.OrderID)
	if !ok || o.SessionID != req.SessionID || o.ClientOrderID != req.OrigClientOrderID {
		e.rejectModify(req)
		return
	}
	if req.OrderQuantity < o.ExecutedQuantity {
		e.rejectModify(req)
		return
	}

	e.emitReport(EventOrderPendingModify, *o)

	delete(own.byClient, clientKey{session: o.SessionID, clOrdID: o.ClientOrderID})

	priceChanged := req.OrderPrice != o.OrderPrice
	qtyUp := req.OrderQuantity > o.OrderQuantity
	qtyDown := req.OrderQuantity < o.OrderQuantity

	o.ClientOrderID = req.ClientOrderID
	o.OrigClientOrderID = req.OrigClientOrderID
	o.LastModifyTime = time.Now()

	oldLeaves := o.LeavesQuantity

	switch {
	case priceChanged:
		newLeaves := req.OrderQuantity - o.ExecutedQuantity
		o.OrderPrice = req.OrderPrice
		o.OrderQuantity = req.OrderQuantity
		o.LeavesQuantity = newLeaves
		be = own.moveToNewPrice(o, be, oldLeaves, req.OrderPrice, newLeaves)
	case qtyDown:
		delta := o.OrderQuantity - req.OrderQuantity
		o.OrderQuantity = req.OrderQuantity
		o.LeavesQuantity -= delta
		own.reduceInPlace(be, delta)
		own.byOrderID[o.OrderID] = be
		own.byClient[clientKey{session: o.SessionID, clOrdID: o.ClientOrderID}] = be
	case qtyUp:
		newLeaves := o.LeavesQuantity + (req.OrderQuantity - o.OrderQuantity)
		o.OrderQuantity = req.OrderQuantity
		o.LeavesQuantity = newLeaves
		be = own.moveToNewPrice(o, be, oldLeaves, o.OrderPrice, newLeaves)
	default:
		own.byOrderID[o.OrderID] = be
		own.byClient[clientKey{session: o.SessionID, clOrdID: o.ClientOrderID}] = be
	}

	o.OrderStatus = types.StatusFromQuantities(o.ExecutedQuantity, o.OrderQuantity)
	e.emitReport(EventOrderModified, *o)

	e.match(req.Side)
}

func (e *Engine) rejectModify(req types.OrderCancelReplaceRequest) {
	e.emitCancelReject(types.OrderCancelReject{
		OrderID:           req.OrderID,
		SessionID:         req.SessionID,
		ClientOrderID:     req.ClientOrderID,
		OrigClientOrderID: req.OrigClientOrderID,
		InstrumentID:      req.InstrumentID,
		ResponseTo:        types.CancelRejectResponseToOrderCancelReplaceRequest,
		Reason:            "modify rejected",
	})
}

// Cancel applies an OrderCancelRequest. On
// success the resting order's terminal snapshot has leaves_quantity=0,
// order_quantity=executed_quantity, last_price/last_quantity zeroed, and
// status Cancelled.
func (e *Engine) Cancel(req types.OrderCancelRequest) {
	tc := metrics.NewTimeCounter(e.instrumentLb, "cancel")
	defer tc.Observe()

	own := e.ownBook(req.Side)
	o, be, ok := own.lookup(req.OrderID)
	if !ok || o.SessionID != req.SessionID {
		e.emitCancelReject(types.OrderCancelReject{
			OrderID:           req.OrderID,
			SessionID:         req.SessionID,
			ClientOrderID:     req.ClientOrderID,
			OrigClientOrderID: req.OrigClientOrderID,
			InstrumentID:      req.InstrumentID,
			ResponseTo:        types.CancelRejectResponseToOrderCancelRequest,
			Reason:            "unknown order",
		})
		return
	}

	snap := *o
	snap.OrderQuantity = snap.ExecutedQuantity
	snap.LeavesQuantity = 0
	snap.LastPrice = 0
	snap.LastQuantity = 0
	snap.OrderStatus = types.OrderStatusCancelled
	snap.LastModifyTime = time.Now()

	own.remove(o, be)
	e.emitReport(EventOrderCancelled, snap)
}

// CancelAllBySession removes every resting order for session from both
// half-books, emitting CancelOnDisconnect for each.
func (e *Engine) CancelAllBySession(session types.SessionID) {
	for _, hb := range []*halfBook{e.bids, e.asks} {
		for _, id := range hb.sessionOrders(session) {
			o, be, ok := hb.lookup(id)
			if !ok {
				continue
			}
			snap := *o
			snap.OrderQuantity = snap.ExecutedQuantity
			snap.LeavesQuantity = 0
			snap.LastPrice = 0
			snap.LastQuantity = 0
			snap.OrderStatus = types.OrderStatusCancelled
			snap.LastModifyTime = time.Now()
			hb.remove(o, be)
			e.emitReport(EventCancelOnDisconnect, snap)
		}
	}
}

// Match runs the price-time priority matching loop until the book is
// uncrossed or one side empties. aggressor picks the execution price:
// trade at the resting ask's price if the aggressor is buy-like, at the
// resting bid's price if sell-like. Add and Modify run it after every
// accepted request.
func (e *Engine) Match(aggressor types.Side) { e.match(aggressor) }

func (e *Engine) match(aggressor types.Side) {
	tc := metrics.NewTimeCounter(e.instrumentLb, "match")
	defer tc.Observe()

	for {
		bidLvl := e.bids.levels.best()
		askLvl := e.asks.levels.best()
		if bidLvl == nil || askLvl == nil || !e.bids.levels.crosses(bidLvl, askLvl.price) {
			return
		}

		bidEntry := bidLvl.front()
		askEntry := askLvl.front()
		bid := e.bids.pool.Get(bidEntry.handle)
		ask := e.asks.pool.Get(askEntry.handle)

		price := ask.OrderPrice
		if aggressor.IsSellLike() {
			price = bid.OrderPrice
		}
		qty := bid.LeavesQuantity
		if ask.LeavesQuantity < qty {
			qty = ask.LeavesQuantity
		}

		e.applyFill(bid, price, qty)
		e.applyFill(ask, price, qty)
		bidLvl.adjustVolume(-qty)
		askLvl.adjustVolume(-qty)

		bidKind, bidDone := terminalKind(bid)
		e.emitReport(bidKind, *bid)
		askKind, askDone := terminalKind(ask)
		e.emitReport(askKind, *ask)

		if bidDone {
			e.bids.remove(bid, bidEntry)
		}
		if askDone {
			e.asks.remove(ask, askEntry)
		}
	}
}

func (e *Engine) applyFill(o *types.RestingOrder, price types.Price, qty types.Quantity) {
	o.ExecutedQuantity += qty
	o.ExecutedValue += types.ExecutedValue(int64(price) * int64(qty))
	o.LeavesQuantity -= qty
	o.LastPrice = price
	o.LastQuantity = qty
	o.LastModifyTime = time.Now()
	o.OrderStatus = types.StatusFromQuantities(o.ExecutedQuantity, o.OrderQuantity)
}

func terminalKind(o *types.RestingOrder) (kind EventKind, filled bool) {
	if o.LeavesQuantity > 0 {
		return EventOrderPartiallyFilled, false
	}
	return EventOrderFilled, true
}

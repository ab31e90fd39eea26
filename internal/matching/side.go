package matching

import (
	"crypto/sha256"
	"encoding/binary"

	"code.quantvenue.io/matchcore/internal/pool"
	"code.quantvenue.io/matchcore/internal/types"
)

// clientKey identifies a resting order by the (session, client order id)
// pair used for duplicate detection and cancel/replace lookups.
type clientKey struct {
	session types.SessionID
	clOrdID types.ClientOrderID
}

// halfBook is one side (bids or asks) of an instrument's book: an ordered
// set of price levels plus the indexes needed to find a resting order in
// O(1) by server id or by (session, client order id). Grounded on the
// teacher's matching/side.go (OrderBookSide), generalized from pro-rata
// to strict FIFO time priority and from a slice-of-levels to the
// btree-backed priceLevels container in pricelevel.go.
type halfBook struct {
	buy    bool
	levels *priceLevels
	pool   *pool.Pool

	byOrderID map[types.OrderID]*bookEntry
	byClient  map[clientKey]*bookEntry

	orderCount int
}

func newHalfBook(buy bool, p *pool.Pool) *halfBook {
	return &halfBook{
		buy:       buy,
		levels:    newPriceLevels(buy),
		pool:      p,
		byOrderID: make(map[types.OrderID]*bookEntry),
		byClient:  make(map[clientKey]*bookEntry),
	}
}

func (h *halfBook) isEmpty() bool { return h.orderCount == 0 }

func (h *halfBook) count() int { return h.orderCount }

// front returns the resting order with top priority on this side, or nil.
func (h *halfBook) front() *types.RestingOrder {
	lvl := h.levels.best()
	if lvl == nil {
		return nil
	}
	be := lvl.front()
	if be == nil {
		return nil
	}
	return h.pool.Get(be.handle)
}

// available returns residual pool capacity for this half-book.
func (h *halfBook) available() int { return h.pool.Cap() - h.pool.Depth() }

// clear removes every resting order from this half-book without emitting
// events, returning it to its post-construction state. Used by
// Engine.Reset.
func (h *halfBook) clear() {
	for _, be := range h.byOrderID {
		o := h.pool.Get(be.handle)
		h.remove(o, be)
	}
}

// add inserts a brand-new resting order at the tail of its price level.
// The caller (engine) has already taken the pool slot and populated it;
// add wires it into the indexes.
func (h *halfBook) add(o *types.RestingOrder, handle pool.Handle) error {
	key := clientKey{session: o.SessionID, clOrdID: o.ClientOrderID}
	if _, dup := h.byClient[key]; dup {
		return types.ErrDuplicateClientOrderID
	}
	lvl := h.levels.getOrCreate(o.OrderPrice)
	be := lvl.pushBack(handle, o.LeavesQuantity)
	h.byOrderID[o.OrderID] = be
	h.byClient[key] = be
	h.orderCount++
	return nil
}

// lookup resolves a resting order by server id.
func (h *halfBook) lookup(id types.OrderID) (*types.RestingOrder, *bookEntry, bool) {
	be, ok := h.byOrderID[id]
	if !ok {
		return nil, nil, false
	}
	return h.pool.Get(be.handle), be, true
}

// remove fully removes a resting order (Cancel, full Fill, or the erase
// half of a price-changing Modify) and releases its pool slot.
func (h *halfBook) remove(o *types.RestingOrder, be *bookEntry) {
	lvl := be.level
	lvl.erase(be, o.LeavesQuantity)
	h.levels.removeIfEmpty(lvl)
	delete(h.byOrderID, o.OrderID)
	delete(h.byClient, clientKey{session: o.SessionID, clOrdID: o.ClientOrderID})
	h.orderCount--
	h.pool.Offer(be.handle)
}

// reduceInPlace lowers the level volume by delta without moving the
// order in its queue, for a quantity-down Modify that preserves time
// priority. The caller updates the order's own quantities.
func (h *halfBook) reduceInPlace(be *bookEntry, delta types.Quantity) {
	be.level.adjustVolume(-delta)
}

// moveToNewPrice removes an order from its current level and re-inserts
// it at the tail of the level for newPrice, used by a price-changing
// Modify (which always forfeits time priority) and by a quantity-up
// Modify at the same price (which also forfeits priority).
func (h *halfBook) moveToNewPrice(o *types.RestingOrder, be *bookEntry, oldQty types.Quantity, newPrice types.Price, newQty types.Quantity) *bookEntry {
	oldLvl := be.level
	oldLvl.erase(be, oldQty)
	h.levels.removeIfEmpty(oldLvl)

	newLvl := h.levels.getOrCreate(newPrice)
	nbe := newLvl.pushBack(be.handle, newQty)

	h.byOrderID[o.OrderID] = nbe
	h.byClient[clientKey{session: o.SessionID, clOrdID: o.ClientOrderID}] = nbe
	return nbe
}

// clientOrder resolves a resting order by (session, client order id),
// used by Engine.Add to detect a duplicate client order id.
func (h *halfBook) clientOrder(session types.SessionID, clOrdID types.ClientOrderID) (*types.RestingOrder, *bookEntry, bool) {
	be, ok := h.byClient[clientKey{session: session, clOrdID: clOrdID}]
	if !ok {
		return nil, nil, false
	}
	return h.pool.Get(be.handle), be, true
}

// sessionOrders returns every resting order belonging to session, for
// CancelAllBySession. It copies ids up front so the caller can remove
// entries from h while iterating the result.
func (h *halfBook) sessionOrders(session types.SessionID) []types.OrderID {
	var ids []types.OrderID
	for id, be := range h.byOrderID {
		o := h.pool.Get(be.handle)
		if o.SessionID == session {
			ids = append(ids, id)
		}
	}
	return ids
}

// Hash returns a deterministic digest of this side's resting state: the
// price and aggregate volume of every level, ordered best price first.
// Two half-books that have processed the same request sequence hash
// identically; used by tests to compare independently built books
// without exposing level internals.
func (h *halfBook) Hash() []byte {
	buf := make([]byte, 0, h.levels.len()*16)
	h.levels.ascend(func(lvl *priceLevel) bool {
		var pv [16]byte
		binary.BigEndian.PutUint64(pv[0:8], uint64(lvl.price))
		binary.BigEndian.PutUint64(pv[8:16], uint64(lvl.volume))
		buf = append(buf, pv[:]...)
		return true
	})
	sum := sha256.Sum256(buf)
	return sum[:]
}

// GetVolume returns the aggregate resting volume at price, or
// ErrPriceNotFound if no order rests there.
func (h *halfBook) GetVolume(price types.Price) (types.Quantity, error) {
	lvl := h.levels.get(price)
	if lvl == nil {
		return 0, types.ErrPriceNotFound
	}
	return lvl.volume, nil
}

// BestPriceAndVolume returns the top-of-book price and its aggregate
// volume, or ErrPriceNotFound if this side is empty.
func (h *halfBook) BestPriceAndVolume() (types.Price, types.Quantity, error) {
	lvl := h.levels.best()
	if lvl == nil {
		return 0, 0, types.ErrPriceNotFound
	}
	return lvl.price, lvl.volume, nil
}

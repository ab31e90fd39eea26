package matching

import (
	"container/list"

	"code.quantvenue.io/matchcore/internal/pool"
	"code.quantvenue.io/matchcore/internal/types"
	"github.com/google/btree"
)

// priceLevel holds every resting order at one price on one side, in
// strict time priority. It is grounded on the teacher's oldest
// generation, src/matching/pricelevel.go, which pairs a container/list
// FIFO queue with an *list.Element handle stashed on each entry for O(1)
// erase-by-position; we drop that generation's volumeByTimestamp
// bookkeeping since pro-rata allocation is out of scope here.
type priceLevel struct {
	price  types.Price
	orders *list.List // of *bookEntry
	volume types.Quantity
}

func newPriceLevel(price types.Price) *priceLevel {
	return &priceLevel{price: price, orders: list.New()}
}

// bookEntry is the FIFO queue payload: a pool handle plus the *list.Element
// needed to erase it from its priceLevel in O(1) without a scan.
type bookEntry struct {
	handle pool.Handle
	elem   *list.Element
	level  *priceLevel
}

func (l *priceLevel) front() *bookEntry {
	if e := l.orders.Front(); e != nil {
		return e.Value.(*bookEntry)
	}
	return nil
}

func (l *priceLevel) isEmpty() bool { return l.orders.Len() == 0 }

// pushBack appends an entry to the tail of the queue, i.e. it loses (or
// starts fresh at) time priority within this price level.
func (l *priceLevel) pushBack(h pool.Handle, qty types.Quantity) *bookEntry {
	be := &bookEntry{handle: h, level: l}
	be.elem = l.orders.PushBack(be)
	l.volume += qty
	return be
}

// erase removes an entry given its handle in O(1) using the stashed
// *list.Element, matching src/matching/pricelevel.go's removeOrder.
func (l *priceLevel) erase(be *bookEntry, qty types.Quantity) {
	l.orders.Remove(be.elem)
	be.elem = nil
	be.level = nil
	l.volume -= qty
}

// adjustVolume updates the level's running volume after a fill or a
// quantity-down modify that keeps the order in place in the queue.
func (l *priceLevel) adjustVolume(delta types.Quantity) {
	l.volume += delta
}

// priceLevels is the ordered price -> priceLevel container backing one
// half-book (bids or asks), keyed for O(log P) lookup by
// github.com/google/btree — the same dependency the teacher's middle
// generation (matching/pricelevel.go) already imports but never actually
// uses as an ordered map; here it does the job it was imported for.
type priceLevels struct {
	buy  bool // true: iterate highest price first (bids); false: lowest first (asks)
	tree *btree.BTreeG[*priceLevel]
}

func newPriceLevels(buy bool) *priceLevels {
	less := func(a, b *priceLevel) bool { return a.price < b.price }
	if buy {
		less = func(a, b *priceLevel) bool { return a.price > b.price }
	}
	return &priceLevels{buy: buy, tree: btree.NewG(32, less)}
}

func (pl *priceLevels) get(price types.Price) *priceLevel {
	probe := &priceLevel{price: price}
	found, ok := pl.tree.Get(probe)
	if !ok {
		return nil
	}
	return found
}

// getOrCreate returns the level at price, creating an empty one if absent.
func (pl *priceLevels) getOrCreate(price types.Price) *priceLevel {
	if lvl := pl.get(price); lvl != nil {
		return lvl
	}
	lvl := newPriceLevel(price)
	pl.tree.ReplaceOrInsert(lvl)
	return lvl
}

// removeIfEmpty drops a level from the tree once its queue is drained, so
// best() never returns a hollow level.
func (pl *priceLevels) removeIfEmpty(lvl *priceLevel) {
	if lvl.isEmpty() {
		pl.tree.Delete(lvl)
	}
}

// best returns the level nearest the touch (highest bid / lowest ask), or
// nil if the side is empty.
func (pl *priceLevels) best() *priceLevel {
	var found *priceLevel
	pl.tree.Ascend(func(lvl *priceLevel) bool {
		found = lvl
		return false
	})
	return found
}

func (pl *priceLevels) len() int { return pl.tree.Len() }

// ascend visits every level from best to worst, stopping early if fn
// returns false.
func (pl *priceLevels) ascend(fn func(lvl *priceLevel) bool) {
	pl.tree.Ascend(fn)
}

// crosses reports whether a resting level at lvl.price would trade against
// an incoming order priced at price on the opposite side: for the bid
// book, an incoming sell crosses when its price <= the bid; for the ask
// book, an incoming buy crosses when its price >= the ask.
func (pl *priceLevels) crosses(lvl *priceLevel, price types.Price) bool {
	if pl.buy {
		return price <= lvl.price
	}
	return price >= lvl.price
}

// Package pool implements the bounded arena of RestingOrder slots each
// half-book draws from. It is grounded on the teacher's own slot-reuse
// discipline in core/matching/cached_orderbook.go, which never lets a
// *types.Order escape the book without going through a copy/reset step,
// generalized here into an explicit Take/Offer arena so the engine never
// allocates on the hot path once warmed up. Take fails closed on
// exhaustion rather than growing the arena, so a pool's capacity is a
// hard ceiling an operator can size and reason about up front.
package pool

import (
	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/metrics"
	"code.quantvenue.io/matchcore/internal/types"
)

// Handle identifies a slot within a Pool. The zero Handle is never valid;
// valid handles are always >= 1 so a Handle can double as an "absent"
// sentinel in maps and structs that also need a zero value.
type Handle uint32

// Pool is a fixed-capacity arena of *types.RestingOrder slots. It is not
// safe for concurrent use; the engine that owns an instrument's Pool is
// expected to run single-threaded.
type Pool struct {
	instrument string
	side       string

	slots []types.RestingOrder
	free  []Handle // stack of free slot indices, 1-based

	depth    int
	maxDepth int

	log *logging.Logger
}

// New allocates a Pool with room for size resting orders. instrument and
// side are metric label values only.
func New(size int, instrument, side string, log *logging.Logger) *Pool {
	p := &Pool{
		instrument: instrument,
		side:       side,
		slots:      make([]types.RestingOrder, size+1), // index 0 unused
		free:       make([]Handle, 0, size),
		log:        log.Named("pool"),
	}
	for i := size; i >= 1; i-- {
		p.free = append(p.free, Handle(i))
	}
	return p
}

// Cap reports the pool's fixed capacity.
func (p *Pool) Cap() int { return len(p.slots) - 1 }

// Depth reports the current number of live (taken) slots.
func (p *Pool) Depth() int { return p.depth }

// MaxDepth reports the high-water mark of Depth since construction.
func (p *Pool) MaxDepth() int { return p.maxDepth }

// Take reserves a slot and returns its handle and a pointer to the zeroed
// RestingOrder backing it. It returns ok=false when the pool is exhausted
// (types.ErrPoolExhausted is the caller's responsibility to surface).
func (p *Pool) Take() (Handle, *types.RestingOrder, bool) {
	if len(p.free) == 0 {
		return 0, nil, false
	}
	n := len(p.free) - 1
	h := p.free[n]
	p.free = p.free[:n]

	p.depth++
	if p.depth > p.maxDepth {
		p.maxDepth = p.depth
		metrics.PoolMaxDepth.WithLabelValues(p.instrument, p.side).Set(float64(p.maxDepth))
	}
	metrics.PoolDepth.WithLabelValues(p.instrument, p.side).Set(float64(p.depth))

	slot := &p.slots[h]
	slot.Reset()
	return h, slot, true
}

// Get returns the RestingOrder backing a live handle. Callers must only
// pass handles they still own (returned by Take and not yet Offer'd).
func (p *Pool) Get(h Handle) *types.RestingOrder {
	return &p.slots[h]
}

// Offer releases a slot back to the free stack. The caller must not use
// the pointer returned by the corresponding Take/Get again afterward.
func (p *Pool) Offer(h Handle) {
	p.slots[h].Reset()
	p.free = append(p.free, h)
	p.depth--
	metrics.PoolDepth.WithLabelValues(p.instrument, p.side).Set(float64(p.depth))
}

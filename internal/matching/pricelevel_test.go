package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.quantvenue.io/matchcore/internal/types"
)

func TestPriceLevels_BidOrdering(t *testing.T) {
	pl := newPriceLevels(true)
	pl.getOrCreate(21)
	pl.getOrCreate(23)
	pl.getOrCreate(19)

	best := pl.best()
	require.NotNil(t, best)
	assert.Equal(t, types.Price(23), best.price, "bids order highest price first")
}

func TestPriceLevels_AskOrdering(t *testing.T) {
	pl := newPriceLevels(false)
	pl.getOrCreate(21)
	pl.getOrCreate(23)
	pl.getOrCreate(19)

	best := pl.best()
	require.NotNil(t, best)
	assert.Equal(t, types.Price(19), best.price, "asks order lowest price first")
}

func TestPriceLevels_RemoveIfEmpty(t *testing.T) {
	pl := newPriceLevels(true)
	lvl := pl.getOrCreate(21)
	assert.Equal(t, 1, pl.len())

	lvl.pushBack(1, 10)
	pl.removeIfEmpty(lvl)
	assert.Equal(t, 1, pl.len(), "non-empty level must survive")

	be := lvl.front()
	lvl.erase(be, 10)
	pl.removeIfEmpty(lvl)
	assert.Equal(t, 0, pl.len(), "drained level must be removed")
}

func TestPriceLevel_FIFOOrder(t *testing.T) {
	lvl := newPriceLevel(21)
	lvl.pushBack(1, 5)
	lvl.pushBack(2, 5)
	lvl.pushBack(3, 5)

	first := lvl.front()
	assert.Equal(t, uint32(1), uint32(first.handle))
	assert.Equal(t, types.Quantity(15), lvl.volume)
}

func TestPriceLevels_Crosses(t *testing.T) {
	bids := newPriceLevels(true)
	lvl := bids.getOrCreate(21)
	assert.True(t, bids.crosses(lvl, 21), "sell at bid price crosses")
	assert.True(t, bids.crosses(lvl, 20), "sell below bid price crosses")
	assert.False(t, bids.crosses(lvl, 22), "sell above bid price does not cross")

	asks := newPriceLevels(false)
	alvl := asks.getOrCreate(21)
	assert.True(t, asks.crosses(alvl, 21), "buy at ask price crosses")
	assert.True(t, asks.crosses(alvl, 22), "buy above ask price crosses")
	assert.False(t, asks.crosses(alvl, 20), "buy below ask price does not cross")
}

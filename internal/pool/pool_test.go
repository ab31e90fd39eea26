package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.quantvenue.io/matchcore/internal/logging"
)

func TestPool_TakeOfferRoundTrip(t *testing.T) {
	p := New(2, "TEST", "bid", logging.NewDevelopment())

	h1, slot1, ok := p.Take()
	require.True(t, ok)
	slot1.OrderID = 7
	assert.Equal(t, 1, p.Depth())

	h2, _, ok := p.Take()
	require.True(t, ok)
	assert.Equal(t, 2, p.Depth())
	assert.Equal(t, 2, p.MaxDepth())

	p.Offer(h1)
	assert.Equal(t, 1, p.Depth())

	h3, slot3, ok := p.Take()
	require.True(t, ok)
	assert.Equal(t, uint32(0), uint32(slot3.OrderID), "reused slot must be reset")
	assert.Equal(t, 2, p.Depth())
	assert.Equal(t, 2, p.MaxDepth(), "high-water mark must not drop")

	_, _, ok = p.Take()
	assert.False(t, ok, "pool exhausted beyond capacity")

	_ = h2
	_ = h3
}

func TestPool_Cap(t *testing.T) {
	p := New(16, "TEST", "ask", logging.NewDevelopment())
	assert.Equal(t, 16, p.Cap())
}

package matching

import (
	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/types"
)

// namedLogger identifies this package's hierarchical logger name,
// following internal/matching/config.go's own convention.
const namedLogger = "matching"

// Config carries the construction-time parameters recognized by the
// matching engine. Unlike the teacher's ProRataMode flag, this engine
// only ever runs strict FIFO price-time priority; the flag has no
// counterpart here.
type Config struct {
	log   *logging.Logger
	level logging.Level

	PoolSize      int                  `mapstructure:"pool_size"`
	InstrumentIDs []types.InstrumentID `mapstructure:"instrument_ids"`
	PriceScale    int64                `mapstructure:"price_scale"`

	LogPriceLevelsDebug   bool `mapstructure:"log_price_levels_debug"`
	LogRemovedOrdersDebug bool `mapstructure:"log_removed_orders_debug"`
}

// NewConfig returns the default Config: no instruments, a 1024-slot pool
// per half-book, and the default price scale (10^6).
func NewConfig(logger *logging.Logger) *Config {
	logger = logger.Named(namedLogger)
	return &Config{
		log:   logger,
		level: logging.InfoLevel,

		PoolSize:   1024,
		PriceScale: types.PriceScale,
	}
}

// Engines constructs one Engine per configured instrument.
func (c *Config) Engines() map[types.InstrumentID]*Engine {
	engines := make(map[types.InstrumentID]*Engine, len(c.InstrumentIDs))
	for _, id := range c.InstrumentIDs {
		engines[id] = NewEngine(id, c.PoolSize, c.log)
	}
	return engines
}

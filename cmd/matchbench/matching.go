package main

import (
	"fmt"
	"math/rand"
	"time"

	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/matching"
	"code.quantvenue.io/matchcore/internal/types"
)

const instrumentID = types.InstrumentID(1)

// RunBenchmark drives one engine with synthetic order flow and reports
// achieved throughput, grounded on cmd/vegabench/matching.go's
// BenchmarkMatching loop, generalized from testing.B to a free-standing
// timer since this is a CLI, not a go test benchmark.
func RunBenchmark(numberOfOrders, poolSize int, uniform bool, reportInterval int) {
	log := logging.NewProduction()
	defer log.AtExit()

	engine := matching.NewEngine(instrumentID, poolSize, log)

	var fills int
	engine.On(matching.EventOrderFilled, func(matching.Event) { fills++ })

	start := time.Now()
	lastReport := start

	session := types.SessionID(1)
	for i := 0; i < numberOfOrders; i++ {
		side := types.SideBuy
		if rand.Intn(2) == 1 {
			side = types.SideSell
		}
		qty := types.Quantity(50)
		if !uniform {
			qty = types.Quantity(rand.Intn(250) + 1)
		}
		engine.Add(types.NewOrderSingle{
			SessionID:     session,
			InstrumentID:  instrumentID,
			ClientOrderID: types.ClientOrderID(fmt.Sprintf("bench-%d", i)),
			Side:          side,
			OrderType:     types.OrderTypeLimit,
			TimeInForce:   types.TimeInForceDay,
			OrderPrice:    types.Price((rand.Intn(100) + 50) * types.PriceScale),
			OrderQuantity: qty,
		})

		if (i+1)%reportInterval == 0 {
			elapsed := time.Since(lastReport)
			log.Info("throughput",
				logging.Int64("orders", int64(i+1)),
				logging.Int64("fills", int64(fills)),
				logging.String("rate", fmt.Sprintf("%.0f/s", float64(reportInterval)/elapsed.Seconds())))
			lastReport = time.Now()
		}
	}

	log.Info("done",
		logging.Int64("orders", int64(numberOfOrders)),
		logging.Int64("fills", int64(fills)),
		logging.String("total", time.Since(start).String()))
}

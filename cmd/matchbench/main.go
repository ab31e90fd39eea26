// cmd/matchbench/main.go
package main

import "flag"

func main() {
	numberOfOrders := flag.Int("orders", 50000, "number of orders to submit")
	poolSize := flag.Int("pool", 1<<16, "resting-order pool size per half-book")
	uniform := flag.Bool("uniform", false, "use the same quantity for every order")
	reportInterval := flag.Int("reportEvery", 0, "log throughput every n orders")
	flag.Parse()

	if *reportInterval == 0 {
		*reportInterval = *numberOfOrders
	}

	RunBenchmark(*numberOfOrders, *poolSize, *uniform, *reportInterval)
}

// cmd/matchengine/main.go
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"code.quantvenue.io/matchcore/internal/config"
	"code.quantvenue.io/matchcore/internal/logging"
	"code.quantvenue.io/matchcore/internal/matching"
)

type options struct {
	ConfigPath string `short:"c" long:"config" description:"path to config file" default:"config.yaml"`
	Dev        bool   `long:"dev" description:"use development logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	log := logging.NewDevelopment()
	if !opts.Dev {
		log = logging.NewProduction()
	}
	defer log.AtExit()

	cfg, err := config.ReadConfigFromFile(opts.ConfigPath, log)
	if err != nil {
		log.Warn("falling back to default configuration", logging.Error(err))
		cfg = config.NewConfig(log)
	}

	router := matching.NewRouter(&cfg.Matching, log)
	router.OnAny(func(ev matching.Event) {
		log.Info(ev.Kind.String(),
			logging.Uint64("orderID", uint64(ev.Report.Order.OrderID)),
			logging.Int64("leaves", int64(ev.Report.Order.LeavesQuantity)))
	})

	if err := config.WatchForChanges(opts.ConfigPath, cfg, func(*config.Config) {
		log.Info("configuration reloaded")
	}); err != nil {
		log.Warn("config hot-reload disabled", logging.Error(err))
	}

	log.Info("matchengine ready", logging.Int64("instruments", int64(len(cfg.Matching.InstrumentIDs))))

	// Serving a real ingress transport is out of this engine's scope; a
	// production build would start the gateway's listener(s) here and
	// block on it. We keep the process alive so config hot-reload and
	// the ready log line are observable.
	select {}
}

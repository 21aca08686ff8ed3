// README: Offline batch runner; prices a destinations workbook against a hubs workbook and writes the rates workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"freight/internal/config"
	"freight/internal/infra"
	"freight/internal/maps"
	"freight/internal/modules/batch"
	"freight/internal/modules/location"
)

type Options struct {
	HubsPath string
	DestPath string
	OutPath  string
	Persist  bool
	Timeout  time.Duration
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	opts := loadOptions()
	if opts.HubsPath == "" || opts.DestPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := infra.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	hubs, err := readSheet(opts.HubsPath)
	if err != nil {
		logger.Fatal("read hubs", zap.Error(err))
	}
	dests, err := readSheet(opts.DestPath)
	if err != nil {
		logger.Fatal("read destinations", zap.Error(err))
	}

	geocoder, err := maps.NewGeocoderByName(cfg.Geocode)
	if err != nil {
		logger.Fatal("geocoder init", zap.Error(err))
	}
	resolver := location.NewResolver(geocoder, cfg.Geocode.Timeout, logger.Named("resolver"))
	if redisClient := infra.NewRedis(cfg.Redis.Addr); redisClient != nil {
		defer redisClient.Close()
		resolver.UseSharedCache(location.NewStore(redisClient, cfg.Geocode.CacheTTL))
	}

	var store batch.RecordStore
	if opts.Persist {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("db init", zap.Error(err))
		}
		defer dbPool.Close()
		store = batch.NewStore(dbPool)
	}

	engine := batch.NewEngine(resolver, store, cfg.Anchor.Place, cfg.Anchor.State, logger.Named("batch"))
	res, err := engine.Run(ctx, hubs, dests)
	if err != nil {
		logger.Fatal("batch run", zap.Error(err))
	}

	if err := writeOutput(opts.OutPath, res.Rows); err != nil {
		logger.Fatal("write output", zap.Error(err))
	}

	failed := 0
	for _, r := range res.Rows {
		if !r.Priced() {
			failed++
		}
	}
	fmt.Printf("run=%s rows=%d unpriced=%d out=%s\n", res.RunID, len(res.Rows), failed, opts.OutPath)
}

func loadOptions() Options {
	var o Options
	flag.StringVar(&o.HubsPath, "hubs", "", "Hubs workbook (.xlsx)")
	flag.StringVar(&o.DestPath, "destinations", "", "Destinations workbook (.xlsx)")
	flag.StringVar(&o.OutPath, "out", "calculated_rates.xlsx", "Output workbook path")
	flag.BoolVar(&o.Persist, "persist", false, "Store priced rows in FREIGHT_DB_DSN")
	flag.DurationVar(&o.Timeout, "timeout", 30*time.Minute, "Total run timeout")
	flag.Parse()
	return o
}

func readSheet(path string) (batch.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return batch.Sheet{}, err
	}
	defer f.Close()
	return batch.ReadSheet(f)
}

func writeOutput(path string, rows []batch.OutputRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := batch.WriteOutput(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

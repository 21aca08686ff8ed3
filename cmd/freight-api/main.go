// README: Entry point; loads config, wires geocoding, hubs and rate services, serves the HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freight/internal/config"
	httptransport "freight/internal/http"
	"freight/internal/infra"
	"freight/internal/maps"
	"freight/internal/modules/batch"
	"freight/internal/modules/hub"
	"freight/internal/modules/location"
	"freight/internal/modules/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := infra.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("db init", zap.Error(err))
	}
	defer dbPool.Close()

	geocoder, err := maps.NewGeocoderByName(cfg.Geocode)
	if err != nil {
		logger.Fatal("geocoder init", zap.Error(err))
	}
	resolver := location.NewResolver(geocoder, cfg.Geocode.Timeout, logger.Named("resolver"))
	if redisClient := infra.NewRedis(cfg.Redis.Addr); redisClient != nil {
		defer redisClient.Close()
		resolver.UseSharedCache(location.NewStore(redisClient, cfg.Geocode.CacheTTL))
	}

	hubIndex := hub.NewIndex(resolver, hub.NewStore(dbPool), logger.Named("hubs"))
	if err := hubIndex.Load(ctx); err != nil {
		logger.Fatal("hub load", zap.Error(err))
	}

	rateSvc := rate.NewService(resolver, hubIndex, rate.NewStore(dbPool), cfg.Anchor.Place, logger.Named("rates"))
	engine := batch.NewEngine(resolver, batch.NewStore(dbPool), cfg.Anchor.Place, cfg.Anchor.State, logger.Named("batch"))

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Hubs:           hubIndex,
		Rates:          rateSvc,
		Batch:          engine,
		UploadMaxBytes: cfg.HTTP.UploadMaxBytes,
		Logger:         logger.Named("http"),
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("api listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("geocoder", geocoder.Name()),
		zap.String("anchor", cfg.Anchor.Place),
		zap.Int("hubs", hubIndex.Len()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}

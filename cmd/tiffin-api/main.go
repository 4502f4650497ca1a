// README: Entry point; loads config, wires modules, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tiffin/internal/config"
	httptransport "tiffin/internal/http"
	"tiffin/internal/infra"
	"tiffin/internal/logger"
	"tiffin/internal/maps"
	"tiffin/internal/modules/catalog"
	"tiffin/internal/modules/notify"
	"tiffin/internal/modules/order"
	"tiffin/internal/modules/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	slogger := logger.New("tiffin-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("TIFFIN_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	// Notifications are best-effort end to end; a broker outage must not
	// keep the API from serving orders.
	var notifier order.Notifier
	if amqpConn, err := infra.NewAMQP(cfg.RabbitMQ.URL); err != nil {
		slogger.Error("rabbitmq unavailable, notifications disabled", "err", err)
	} else {
		publisher, err := notify.NewPublisher(amqpConn, slogger)
		if err != nil {
			slogger.Error("notify publisher init failed, notifications disabled", "err", err)
		} else {
			notifier = publisher
			defer publisher.Close()
		}
	}

	searchStore := search.NewStore(redisClient)

	catalogStore := catalog.NewStore(dbPool)
	catalogSvc := catalog.NewService(catalogStore, searchStore, slogger)

	searchSvc := search.NewService(catalogStore, searchStore, cfg.Search, slogger)

	orderStore := order.NewStore(dbPool)
	orderSvc := order.NewService(orderStore, catalogStore, notifier, slogger)

	deps := httptransport.RouterDeps{
		Order:    orderSvc,
		Search:   searchSvc,
		Catalog:  catalogSvc,
		Verifier: verifier,
	}
	if cfg.Maps.APIKey != "" {
		geo, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		deps.Geocoder = geo
	}

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(deps)}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	slogger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/example/shipment-label-service/internal/adapter/cache"
	"github.com/example/shipment-label-service/internal/adapter/httpapi"
	"github.com/example/shipment-label-service/internal/adapter/natsstan"
	"github.com/example/shipment-label-service/internal/adapter/repo"
	"github.com/example/shipment-label-service/internal/config"
	"github.com/example/shipment-label-service/internal/dhl"
	"github.com/example/shipment-label-service/internal/domain"
	"github.com/example/shipment-label-service/internal/usecase"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logrus.New()
	cfg := config.New()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	shipments := repo.NewPostgresShipmentRepo(pool)
	memCache := cache.NewMemoryShipmentCache()
	if err := (usecase.WarmCache{Repo: shipments, Cache: memCache}).Execute(ctx); err != nil {
		log.Fatalf("warm cache: %v", err)
	}

	// события накладных best-effort: без NATS сервис продолжает работать
	var publisher domain.LabelEventPublisher
	stanPub, err := natsstan.Connect(cfg.StanClusterID, cfg.StanClientID, cfg.NatsURL, cfg.StanSubject)
	if err != nil {
		log.WithError(err).Warn("stan connect failed, label events disabled")
	} else {
		defer stanPub.Close()
		publisher = stanPub
	}

	if !cfg.CarrierConfigured() {
		log.Warn("carrier credentials are not configured, label creation will fail")
	}

	carrier := &dhl.Client{
		BaseURL:      cfg.DHLAPIURL,
		ClientID:     cfg.DHLClientID,
		ClientSecret: cfg.DHLClientSecret,
	}
	accounts := dhl.AccountConfig{
		ExportAccount: cfg.DHLAccountExport,
		ImportAccount: cfg.DHLAccountImport,
	}

	server := httpapi.NewServer(httpapi.UseCases{
		Create: usecase.CreateShipment{Repo: shipments, Cache: memCache},
		Get:    usecase.GetShipment{Repo: shipments, Cache: memCache},
		Update: usecase.UpdateShipment{Repo: shipments, Cache: memCache},
		Delete: usecase.DeleteShipment{Repo: shipments, Cache: memCache},
		List:   usecase.ListShipments{Repo: shipments},
		Stats:  usecase.GetShipmentStats{Repo: shipments},
		Label: usecase.CreateLabel{
			Repo:      shipments,
			Cache:     memCache,
			Carrier:   carrier,
			Publisher: publisher,
			Accounts:  accounts,
			Log:       log,
		},
	}, log)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Router}
	go func() {
		log.Infof("http listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/luisherrera/shopdesk-backend/api/routes"
	"github.com/luisherrera/shopdesk-backend/internal/persistence"
	"github.com/luisherrera/shopdesk-backend/internal/store"
	"github.com/luisherrera/shopdesk-backend/pkg/config"
	"github.com/luisherrera/shopdesk-backend/pkg/db"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
	"github.com/luisherrera/shopdesk-backend/pkg/metrics"
	"github.com/luisherrera/shopdesk-backend/pkg/migrate"
	"github.com/luisherrera/shopdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recordsMetrics := metrics.NewRecordsMetrics(registry)

	var (
		dbClient    *db.Client
		redisClient *redis.Client
		collections store.Params
	)

	if cfg.FeatureFlags.OfflineMode {
		localClient, err := db.NewLocal(context.Background(), cfg.LocalCache, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to open local cache", err)
			os.Exit(1)
		}
		defer closeQuietly(localClient, logg)
		dbClient = localClient

		collections, err = localCollections(localClient)
		if err != nil {
			logg.Error(context.Background(), "failed to build local collections", err)
			os.Exit(1)
		}
	} else {
		remoteClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer closeQuietly(remoteClient, logg)
		dbClient = remoteClient

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, remoteClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}

		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		collections, err = remoteCollections(remoteClient, redis.NewNotifier(redisClient), cfg.Bulk.MaxBatchOps)
		if err != nil {
			logg.Error(context.Background(), "failed to build remote collections", err)
			os.Exit(1)
		}
	}

	collections.Logger = logg
	collections.Metrics = recordsMetrics

	recordsStore, err := store.New(collections)
	if err != nil {
		logg.Error(context.Background(), "failed to create records store", err)
		os.Exit(1)
	}
	if err := recordsStore.Start(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to start records store", err)
		os.Exit(1)
	}
	defer recordsStore.Stop()

	var redisPinger db.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"offline": cfg.FeatureFlags.OfflineMode,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisPinger, recordsStore, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func remoteCollections(client *db.Client, notifier *redis.Notifier, maxBatch int) (store.Params, error) {
	clients, err := persistence.NewRemote[models.Client](client.DB(), notifier, "shop_id", maxBatch)
	if err != nil {
		return store.Params{}, err
	}
	orders, err := persistence.NewRemote[models.Order](client.DB(), notifier, "order_id", maxBatch)
	if err != nil {
		return store.Params{}, err
	}
	deposits, err := persistence.NewRemote[models.Deposit](client.DB(), notifier, "deposit_id", maxBatch)
	if err != nil {
		return store.Params{}, err
	}
	withdrawals, err := persistence.NewRemote[models.Withdrawal](client.DB(), notifier, "withdrawal_id", maxBatch)
	if err != nil {
		return store.Params{}, err
	}
	requests, err := persistence.NewRemote[models.OrderRequest](client.DB(), notifier, "id", maxBatch)
	if err != nil {
		return store.Params{}, err
	}
	return store.Params{
		Clients:     clients,
		Orders:      orders,
		Deposits:    deposits,
		Withdrawals: withdrawals,
		Requests:    requests,
	}, nil
}

func localCollections(client *db.Client) (store.Params, error) {
	clients, err := persistence.NewLocal[models.Client](client.DB())
	if err != nil {
		return store.Params{}, err
	}
	orders, err := persistence.NewLocal[models.Order](client.DB())
	if err != nil {
		return store.Params{}, err
	}
	deposits, err := persistence.NewLocal[models.Deposit](client.DB())
	if err != nil {
		return store.Params{}, err
	}
	withdrawals, err := persistence.NewLocal[models.Withdrawal](client.DB())
	if err != nil {
		return store.Params{}, err
	}
	requests, err := persistence.NewLocal[models.OrderRequest](client.DB())
	if err != nil {
		return store.Params{}, err
	}
	return store.Params{
		Clients:     clients,
		Orders:      orders,
		Deposits:    deposits,
		Withdrawals: withdrawals,
		Requests:    requests,
	}, nil
}

func closeQuietly(client *db.Client, logg *logger.Logger) {
	if err := client.Close(); err != nil {
		logg.Error(context.Background(), "error closing database", err)
	}
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luisherrera/shopdesk-backend/api/controllers"
	"github.com/luisherrera/shopdesk-backend/api/middleware"
	"github.com/luisherrera/shopdesk-backend/internal/store"
	"github.com/luisherrera/shopdesk-backend/pkg/config"
	"github.com/luisherrera/shopdesk-backend/pkg/db"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
)

// NewRouter wires middleware and the records routes. dbP and redisPinger may
// be nil in offline mode; registry may be nil when metrics are disabled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisPinger db.Pinger,
	recordsStore *store.Store,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg, logg))

		r.Post("/records/refresh", controllers.RecordsRefresh(recordsStore, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientList(recordsStore, logg))
			r.Post("/", controllers.ClientCreate(recordsStore, logg))
			r.Get("/availability", controllers.ClientShopIDAvailability(recordsStore, logg))
			r.Get("/export", controllers.ClientExport(recordsStore, logg))
			r.Post("/import", controllers.ClientImport(recordsStore, logg))
			r.Post("/import/preview", controllers.ClientImportPreview(logg))
			r.Post("/bulk-delete", controllers.ClientBulkDelete(recordsStore, logg))
			r.Put("/{shopId}", controllers.ClientUpdate(recordsStore, logg))
			r.Delete("/{shopId}", controllers.ClientDelete(recordsStore, logg))
		})

		r.Route("/agents", func(r chi.Router) {
			r.Post("/import", controllers.AgentImport(recordsStore, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(recordsStore, logg))
			r.Post("/", controllers.OrderCreate(recordsStore, logg))
			r.Get("/export", controllers.OrderExport(recordsStore, logg))
			r.Post("/import", controllers.OrderImport(recordsStore, logg))
			r.Post("/import/preview", controllers.OrderImportPreview(logg))
			r.Put("/{orderId}", controllers.OrderUpdate(recordsStore, logg))
			r.Delete("/{orderId}", controllers.OrderDelete(recordsStore, logg))
		})

		r.Route("/deposits", func(r chi.Router) {
			r.Get("/", controllers.DepositList(recordsStore, logg))
			r.Post("/", controllers.DepositCreate(recordsStore, logg))
			r.Get("/export", controllers.DepositExport(recordsStore, logg))
			r.Post("/import", controllers.DepositImport(recordsStore, logg))
			r.Post("/import/preview", controllers.DepositImportPreview(logg))
			r.Put("/{depositId}", controllers.DepositUpdate(recordsStore, logg))
			r.Delete("/{depositId}", controllers.DepositDelete(recordsStore, logg))
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", controllers.WithdrawalList(recordsStore, logg))
			r.Post("/", controllers.WithdrawalCreate(recordsStore, logg))
			r.Get("/export", controllers.WithdrawalExport(recordsStore, logg))
			r.Post("/import", controllers.WithdrawalImport(recordsStore, logg))
			r.Post("/import/preview", controllers.WithdrawalImportPreview(logg))
			r.Put("/{withdrawalId}", controllers.WithdrawalUpdate(recordsStore, logg))
			r.Delete("/{withdrawalId}", controllers.WithdrawalDelete(recordsStore, logg))
		})

		r.Route("/order-requests", func(r chi.Router) {
			r.Get("/", controllers.OrderRequestList(recordsStore, logg))
			r.Post("/", controllers.OrderRequestCreate(recordsStore, logg))
			r.Delete("/{requestId}", controllers.OrderRequestDelete(recordsStore, logg))
			r.Post("/{requestId}/approve", controllers.OrderRequestApprove(recordsStore, logg))
			r.Post("/{requestId}/reject", controllers.OrderRequestReject(recordsStore, logg))
		})
	})

	return r
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/luisherrera/shopdesk-backend/api/responses"
	"github.com/luisherrera/shopdesk-backend/api/validators"
	"github.com/luisherrera/shopdesk-backend/internal/importer"
	"github.com/luisherrera/shopdesk-backend/internal/store"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
)

// OrderList returns the order working set.
func OrderList(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, s.Orders())
	}
}

type orderPayload struct {
	ShopID   string `json:"shopId" validate:"required"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Status   string `json:"status" validate:"required"`
}

func (p orderPayload) toModel() (models.Order, error) {
	status, err := enums.ParseOrderStatus(p.Status)
	if err != nil {
		return models.Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	price, err := parseMoneyField(p.Price, "price")
	if err != nil {
		return models.Order{}, err
	}
	date, err := parseDateField(p.Date, "date")
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		ShopID:   strings.TrimSpace(p.ShopID),
		Date:     date,
		Location: strings.TrimSpace(p.Location),
		Price:    price,
		Status:   status,
	}, nil
}

// OrderCreate adds an order. The order id is generated server-side.
func OrderCreate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := s.AddOrder(r.Context(), order)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// OrderUpdate edits an order in place.
func OrderUpdate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderId")
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		var payload orderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order.OrderID = orderID
		order.ClientName, order.Agent = clientIdentityFor(s, order.ShopID)

		updated, err := s.UpdateOrder(r.Context(), order)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// OrderDelete removes a single order.
func OrderDelete(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderId")
		if err := s.DeleteOrder(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": orderID})
	}
}

// OrderImportPreview parses the first rows of an order CSV.
func OrderImportPreview(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.PreviewOrders(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		responses.WriteSuccess(w, map[string]any{"records": records, "summary": summary})
	}
}

// OrderImport parses a full order CSV and commits the parsed rows. Ids are
// assigned sequentially by the store.
func OrderImport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.ParseOrders(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		s.Metrics().ObserveImportRows("orders", summary.SuccessCount, summary.ErrorCount)

		if err := s.BulkAddOrders(r.Context(), records); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// OrderExport renders the order collection as CSV.
func OrderExport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, "orders.csv", importer.OrdersCSV(s.Orders()))
	}
}

// clientIdentityFor resolves the denormalized identity pair from the working
// set so edits keep name and agent in sync with the owning client.
func clientIdentityFor(s *store.Store, shopID string) (string, string) {
	for _, c := range s.Clients() {
		if c.ShopID == shopID {
			return c.ClientName, c.Agent
		}
	}
	return store.UnknownClient, store.UnknownAgent
}

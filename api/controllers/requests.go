package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/luisherrera/shopdesk-backend/api/responses"
	"github.com/luisherrera/shopdesk-backend/api/validators"
	"github.com/luisherrera/shopdesk-backend/internal/store"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
)

// OrderRequestList returns the order-request working set.
func OrderRequestList(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, s.OrderRequests())
	}
}

type orderRequestPayload struct {
	ShopID   string `json:"shopId" validate:"required"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location" validate:"required"`
	Price    string `json:"price" validate:"required"`
}

func (p orderRequestPayload) toModel() (models.OrderRequest, error) {
	price, err := parseMoneyField(p.Price, "price")
	if err != nil {
		return models.OrderRequest{}, err
	}
	date, err := parseDateField(p.Date, "date")
	if err != nil {
		return models.OrderRequest{}, err
	}
	return models.OrderRequest{
		ShopID:   strings.TrimSpace(p.ShopID),
		Date:     date,
		Location: strings.TrimSpace(p.Location),
		Price:    price,
	}, nil
}

// OrderRequestCreate submits a new request. Id, Pending status and the
// creation timestamp are assigned by the store.
func OrderRequestCreate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := s.AddOrderRequest(r.Context(), request)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// OrderRequestDelete removes a single request.
func OrderRequestDelete(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "requestId")
		if err := s.DeleteOrderRequest(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": id})
	}
}

// OrderRequestApprove converts a pending request into an order.
func OrderRequestApprove(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "requestId")
		order, err := s.ApproveOrderRequest(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderRequestReject marks a pending request rejected.
func OrderRequestReject(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "requestId")
		request, err := s.RejectOrderRequest(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

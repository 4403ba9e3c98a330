package controllers

import (
	"errors"
	"fmt"
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

// ClientList returns the client working set.
func ClientList(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, s.Clients())
	}
}

type clientPayload struct {
	ShopID     string `json:"shopId" validate:"required"`
	ClientName string `json:"clientName" validate:"required"`
	Agent      string `json:"agent" validate:"required"`
	KYCDate    string `json:"kycDate,omitempty"`
	Status     string `json:"status" validate:"required"`
}

func (p clientPayload) toModel() (models.Client, error) {
	status, err := enums.ParseClientStatus(p.Status)
	if err != nil {
		return models.Client{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	kycDate, err := parseDateField(p.KYCDate, "kyc date")
	if err != nil {
		return models.Client{}, err
	}
	return models.Client{
		ShopID:     strings.TrimSpace(p.ShopID),
		ClientName: strings.TrimSpace(p.ClientName),
		Agent:      strings.TrimSpace(p.Agent),
		KYCDate:    kycDate,
		Status:     status,
	}, nil
}

// ClientCreate adds a client with a caller-supplied shop id.
func ClientCreate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload clientPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := s.AddClient(r.Context(), client)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ClientUpdate edits a client in place. The shop id comes from the URL; the
// body cannot move a client to a different id.
func ClientUpdate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := chi.URLParam(r, "shopId")
		if shopID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required"))
			return
		}

		var payload clientPayload
		payload.ShopID = shopID
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.ShopID != shopID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shop id cannot change"))
			return
		}

		client, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := s.UpdateClient(r.Context(), client)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ClientDelete removes a client and cascades over its transaction records.
func ClientDelete(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := chi.URLParam(r, "shopId")
		if err := s.DeleteClient(r.Context(), shopID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": shopID})
	}
}

type bulkDeleteClientsPayload struct {
	ShopIDs []string `json:"shopIds" validate:"required,min=1,dive,required"`
}

// ClientBulkDelete removes a batch of clients and cascades per shop.
func ClientBulkDelete(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkDeleteClientsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := s.BulkDeleteClients(r.Context(), payload.ShopIDs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"deleted": len(payload.ShopIDs)})
	}
}

// ClientShopIDAvailability reports whether a shop id is free. excluding allows
// edit forms to re-validate a record against itself.
func ClientShopIDAvailability(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := strings.TrimSpace(r.URL.Query().Get("shopId"))
		excluding := strings.TrimSpace(r.URL.Query().Get("excluding"))

		available, err := s.IsShopIDUnique(r.Context(), shopID, excluding)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"available": available})
	}
}

// ClientImportPreview parses the first rows of a client CSV without
// committing anything.
func ClientImportPreview(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.PreviewClients(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		responses.WriteSuccess(w, map[string]any{"records": records, "summary": summary})
	}
}

// ClientImport parses a full client CSV and commits the parsed rows in
// chunks. Row errors, including shop ids already taken or repeated within the
// file, are reported in the summary, not fatal.
func ClientImport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.ParseClients(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}

		unique, duplicates := s.FilterUniqueClients(records)
		for _, shopID := range duplicates {
			summary.SuccessCount--
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, fmt.Sprintf("shop id %s is already in use", shopID))
		}
		s.Metrics().ObserveImportRows("clients", summary.SuccessCount, summary.ErrorCount)

		if err := s.BulkAddClients(r.Context(), unique); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ClientExport renders the client collection as CSV.
func ClientExport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, "clients.csv", importer.ClientsCSV(s.Clients()))
	}
}

// AgentImport parses an agent-reassignment CSV and applies it to the
// identified clients. Unknown shop ids are reported in the summary.
func AgentImport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignments, summary, err := importer.ParseAgents(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}

		s.Metrics().ObserveImportRows("agents", summary.SuccessCount, summary.ErrorCount)

		byShop := make(map[string]string, len(assignments))
		for _, a := range assignments {
			byShop[a.ShopID] = a.Agent
		}
		if err := s.AssignAgents(r.Context(), byShop); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign agents"))
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// importError translates importer failures: a missing-columns error is the
// caller's fault, anything else is internal.
func importError(err error) error {
	var missing *importer.MissingFieldsError
	if errors.As(err, &missing) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid import file").WithDetails(map[string]any{"missing": missing.Missing})
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "import failed")
}

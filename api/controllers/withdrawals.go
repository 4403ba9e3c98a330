package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luisherrera/shopdesk-backend/api/responses"
	"github.com/luisherrera/shopdesk-backend/api/validators"
	"github.com/luisherrera/shopdesk-backend/internal/importer"
	"github.com/luisherrera/shopdesk-backend/internal/store"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
)

// WithdrawalList returns the withdrawal working set.
func WithdrawalList(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, s.Withdrawals())
	}
}

func (p transactionPayload) toWithdrawal() (models.Withdrawal, error) {
	deposit, err := p.toDeposit()
	if err != nil {
		return models.Withdrawal{}, err
	}
	return models.Withdrawal{
		ShopID:      deposit.ShopID,
		Date:        deposit.Date,
		Amount:      deposit.Amount,
		PaymentMode: deposit.PaymentMode,
	}, nil
}

// WithdrawalCreate adds a withdrawal. The withdrawal id is generated
// server-side.
func WithdrawalCreate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload transactionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		withdrawal, err := payload.toWithdrawal()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := s.AddWithdrawal(r.Context(), withdrawal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// WithdrawalUpdate edits a withdrawal in place.
func WithdrawalUpdate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withdrawalID := chi.URLParam(r, "withdrawalId")
		if withdrawalID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "withdrawal id is required"))
			return
		}

		var payload transactionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		withdrawal, err := payload.toWithdrawal()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		withdrawal.WithdrawalID = withdrawalID
		withdrawal.ClientName, withdrawal.Agent = clientIdentityFor(s, withdrawal.ShopID)

		updated, err := s.UpdateWithdrawal(r.Context(), withdrawal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// WithdrawalDelete removes a single withdrawal.
func WithdrawalDelete(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withdrawalID := chi.URLParam(r, "withdrawalId")
		if err := s.DeleteWithdrawal(r.Context(), withdrawalID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": withdrawalID})
	}
}

// WithdrawalImportPreview parses the first rows of a withdrawal CSV.
func WithdrawalImportPreview(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.PreviewWithdrawals(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		responses.WriteSuccess(w, map[string]any{"records": records, "summary": summary})
	}
}

// WithdrawalImport parses a full withdrawal CSV and commits the parsed rows.
func WithdrawalImport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.ParseWithdrawals(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		s.Metrics().ObserveImportRows("withdrawals", summary.SuccessCount, summary.ErrorCount)

		if err := s.BulkAddWithdrawals(r.Context(), records); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// WithdrawalExport renders the withdrawal collection as CSV.
func WithdrawalExport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, "withdrawals.csv", importer.WithdrawalsCSV(s.Withdrawals()))
	}
}

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

// DepositList returns the deposit working set.
func DepositList(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, s.Deposits())
	}
}

type transactionPayload struct {
	ShopID      string `json:"shopId" validate:"required"`
	Date        string `json:"date,omitempty"`
	Amount      string `json:"amount" validate:"required"`
	PaymentMode string `json:"paymentMode" validate:"required"`
}

func (p transactionPayload) toDeposit() (models.Deposit, error) {
	mode, err := enums.ParsePaymentMode(p.PaymentMode)
	if err != nil {
		return models.Deposit{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment mode")
	}
	amount, err := parseMoneyField(p.Amount, "amount")
	if err != nil {
		return models.Deposit{}, err
	}
	date, err := parseDateField(p.Date, "date")
	if err != nil {
		return models.Deposit{}, err
	}
	return models.Deposit{
		ShopID:      strings.TrimSpace(p.ShopID),
		Date:        date,
		Amount:      amount,
		PaymentMode: mode,
	}, nil
}

// DepositCreate adds a deposit. The deposit id is generated server-side.
func DepositCreate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload transactionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deposit, err := payload.toDeposit()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := s.AddDeposit(r.Context(), deposit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// DepositUpdate edits a deposit in place.
func DepositUpdate(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		depositID := chi.URLParam(r, "depositId")
		if depositID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "deposit id is required"))
			return
		}

		var payload transactionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deposit, err := payload.toDeposit()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deposit.DepositID = depositID
		deposit.ClientName, deposit.Agent = clientIdentityFor(s, deposit.ShopID)

		updated, err := s.UpdateDeposit(r.Context(), deposit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DepositDelete removes a single deposit.
func DepositDelete(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		depositID := chi.URLParam(r, "depositId")
		if err := s.DeleteDeposit(r.Context(), depositID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": depositID})
	}
}

// DepositImportPreview parses the first rows of a deposit CSV.
func DepositImportPreview(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.PreviewDeposits(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		responses.WriteSuccess(w, map[string]any{"records": records, "summary": summary})
	}
}

// DepositImport parses a full deposit CSV and commits the parsed rows.
func DepositImport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload importPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, summary, err := importer.ParseDeposits(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, importError(err))
			return
		}
		s.Metrics().ObserveImportRows("deposits", summary.SuccessCount, summary.ErrorCount)

		if err := s.BulkAddDeposits(r.Context(), records); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// DepositExport renders the deposit collection as CSV.
func DepositExport(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, "deposits.csv", importer.DepositsCSV(s.Deposits()))
	}
}

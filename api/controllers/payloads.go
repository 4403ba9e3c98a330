package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
)

var payloadDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// parseDateField parses an API date field. Empty means "now"; anything else
// must match a known layout.
func parseDateField(value, name string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	for _, layout := range payloadDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
}

func parseMoneyField(value, name string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	if !amount.IsPositive() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, name+" must be greater than zero")
	}
	return amount, nil
}

// importPayload carries raw CSV text for the import endpoints.
type importPayload struct {
	Data string `json:"data" validate:"required"`
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

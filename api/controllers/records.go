package controllers

import (
	"net/http"

	"github.com/luisherrera/shopdesk-backend/api/responses"
	"github.com/luisherrera/shopdesk-backend/internal/store"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
)

// RecordsRefresh re-lists every collection from the store of record,
// reconciling the in-memory working set.
func RecordsRefresh(s *store.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "refreshed"})
	}
}

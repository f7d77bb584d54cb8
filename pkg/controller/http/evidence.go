package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/service/evidence"
	"github.com/cybermatters/themis/pkg/usecase"
	"github.com/cybermatters/themis/pkg/utils/safe"
)

// uploadEvidenceHandler stores an evidence document for a risk. The risk
// must exist and belong to the tenant before anything is written.
func uploadEvidenceHandler(uc *usecase.UseCases, store evidence.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())
		riskID := types.RiskID(chi.URLParam(r, "riskID"))
		name := chi.URLParam(r, "name")

		if _, err := uc.Risk.GetRisk(r.Context(), tenant.ID, riskID); err != nil {
			respondError(r.Context(), w, err)
			return
		}

		if err := store.Put(r.Context(), tenant.ID, riskID, name, r.Body); err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Evidence uploaded successfully",
		})
	}
}

func downloadEvidenceHandler(uc *usecase.UseCases, store evidence.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())
		riskID := types.RiskID(chi.URLParam(r, "riskID"))
		name := chi.URLParam(r, "name")

		if _, err := uc.Risk.GetRisk(r.Context(), tenant.ID, riskID); err != nil {
			respondError(r.Context(), w, err)
			return
		}

		obj, err := store.Get(r.Context(), tenant.ID, riskID, name)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}
		defer safe.Close(r.Context(), obj)

		w.Header().Set("Content-Type", "application/octet-stream")
		safe.Copy(r.Context(), w, obj)
	}
}

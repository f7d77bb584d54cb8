package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/usecase"
)

type frameworkResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	FrameworkType          string `json:"framework_type"`
	Category               string `json:"category"`
	IssuingBody            string `json:"issuing_body"`
	StandardNumber         string `json:"standard_number"`
	CertificationAvailable bool   `json:"certification_available"`
	Subscribed             *bool  `json:"subscribed,omitempty"`
}

func toFrameworkResponse(f *model.Framework, subscribed *bool) frameworkResponse {
	return frameworkResponse{
		ID:                     f.ID.String(),
		Name:                   f.Name,
		Description:            f.Description,
		FrameworkType:          f.FrameworkType,
		Category:               f.Category,
		IssuingBody:            f.IssuingBody,
		StandardNumber:         f.StandardNumber,
		CertificationAvailable: f.CertificationAvailable,
		Subscribed:             subscribed,
	}
}

func frameworksHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frameworks, err := uc.Framework.ListFrameworks(r.Context())
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		resp := make([]frameworkResponse, len(frameworks))
		for i, f := range frameworks {
			resp[i] = toFrameworkResponse(f, nil)
		}
		respondData(w, resp)
	}
}

func tenantFrameworksHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())

		frameworks, err := uc.Framework.ListTenantFrameworks(r.Context(), tenant.ID)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		resp := make([]frameworkResponse, len(frameworks))
		for i, f := range frameworks {
			subscribed := f.Subscribed
			resp[i] = toFrameworkResponse(&f.Framework, &subscribed)
		}
		respondData(w, resp)
	}
}

func subscribeHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())
		frameworkID := types.FrameworkID(chi.URLParam(r, "frameworkID"))

		if err := uc.Framework.Subscribe(r.Context(), tenant.ID, frameworkID); err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Framework subscribed successfully",
		})
	}
}

func dashboardHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())

		metrics, err := uc.Dashboard.Metrics(r.Context(), tenant.ID)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondData(w, map[string]any{
			"tenant": map[string]string{
				"name": tenant.Name,
				"hash": tenant.Hash,
			},
			"metrics": map[string]int{
				"totalRisks":       metrics.RiskCount,
				"activeFrameworks": metrics.SubscribedFrameworks,
				"highRisks":        metrics.HighRiskCount,
			},
		})
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/usecase"
)

type riskResponse struct {
	ID                       string     `json:"id"`
	RiskCode                 string     `json:"risk_code"`
	Title                    string     `json:"title"`
	Description              string     `json:"description"`
	RiskCategory             string     `json:"risk_category"`
	Likelihood               int        `json:"likelihood"`
	Impact                   int        `json:"impact"`
	InherentRiskScore        int        `json:"inherent_risk_score"`
	Status                   string     `json:"status"`
	Owner                    string     `json:"owner,omitempty"`
	ThreatDescription        string     `json:"threat_description,omitempty"`
	VulnerabilityDescription string     `json:"vulnerability_description,omitempty"`
	BusinessImpact           string     `json:"business_impact,omitempty"`
	ReviewFrequency          string     `json:"review_frequency,omitempty"`
	NextReviewDate           *time.Time `json:"next_review_date,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

func toRiskResponse(risk *model.Risk) riskResponse {
	return riskResponse{
		ID:                       risk.ID.String(),
		RiskCode:                 risk.RiskCode,
		Title:                    risk.Title,
		Description:              risk.Description,
		RiskCategory:             risk.Category.String(),
		Likelihood:               risk.Likelihood,
		Impact:                   risk.Impact,
		InherentRiskScore:        risk.InherentScore,
		Status:                   risk.Status.String(),
		Owner:                    risk.Owner,
		ThreatDescription:        risk.ThreatDescription,
		VulnerabilityDescription: risk.VulnerabilityDescription,
		BusinessImpact:           risk.BusinessImpactDescription,
		ReviewFrequency:          risk.ReviewFrequency.String(),
		NextReviewDate:           risk.NextReviewDate,
		CreatedAt:                risk.CreatedAt,
	}
}

func listRisksHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())

		risks, err := uc.Risk.ListRisks(r.Context(), tenant.ID)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		resp := make([]riskResponse, len(risks))
		for i, risk := range risks {
			resp[i] = toRiskResponse(risk)
		}
		respondData(w, resp)
	}
}

func getRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())
		riskID := types.RiskID(chi.URLParam(r, "riskID"))

		risk, err := uc.Risk.GetRisk(r.Context(), tenant.ID, riskID)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondData(w, toRiskResponse(risk))
	}
}

func createRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		RiskCategory string `json:"risk_category"`
		Likelihood   int    `json:"likelihood"`
		Impact       int    `json:"impact"`
		Owner        string `json:"owner"`

		// When set, the scores are produced by the AI assessment instead
		// of the caller
		UseAssessment bool   `json:"use_assessment"`
		Industry      string `json:"industry"`
		CompanySize   string `json:"company_size"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())

		var req request
		if err := decodeBody(r, &req); err != nil {
			respondError(r.Context(), w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		if req.UseAssessment {
			risk, output, err := uc.Risk.CreateRiskWithAssessment(r.Context(), tenant.ID, &model.AssessmentRequest{
				Title:       req.Title,
				Description: req.Description,
				Category:    types.RiskCategory(req.RiskCategory),
				Industry:    req.Industry,
				CompanySize: req.CompanySize,
			}, req.Owner)
			if err != nil {
				respondError(r.Context(), w, err)
				return
			}

			respondJSON(w, http.StatusOK, map[string]any{
				"success":  true,
				"message":  "Risk created successfully",
				"id":       risk.ID.String(),
				"data":     toRiskResponse(risk),
				"degraded": output.Degraded || output.ServiceFailed,
			})
			return
		}

		risk, err := uc.Risk.CreateRisk(r.Context(), tenant.ID, &usecase.CreateRiskInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    types.RiskCategory(req.RiskCategory),
			Likelihood:  req.Likelihood,
			Impact:      req.Impact,
			Owner:       req.Owner,
		})
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Risk created successfully",
			"id":      risk.ID.String(),
		})
	}
}

func assessRiskHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		RiskCategory string `json:"risk_category"`
		Industry     string `json:"industry"`
		CompanySize  string `json:"company_size"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())

		var req request
		if err := decodeBody(r, &req); err != nil {
			respondError(r.Context(), w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
			return
		}

		output, err := uc.Risk.AssessRisk(r.Context(), &model.AssessmentRequest{
			Title:       req.Title,
			Description: req.Description,
			Category:    types.RiskCategory(req.RiskCategory),
			Industry:    req.Industry,
			CompanySize: req.CompanySize,
		}, tenant.ID)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success":         true,
			"data":            output.Assessment,
			"degraded":        output.Degraded,
			"degraded_reason": output.DegradedReason,
			"service_failed":  output.ServiceFailed,
		})
	}
}

func assessmentLogsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type logResponse struct {
		ID        string    `json:"id"`
		RiskTitle string    `json:"risk_title"`
		Degraded  bool      `json:"degraded"`
		Reason    string    `json:"reason,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantFrom(r.Context())

		logs, err := uc.Risk.AssessmentLogs(r.Context(), tenant.ID, 50)
		if err != nil {
			respondError(r.Context(), w, err)
			return
		}

		resp := make([]logResponse, len(logs))
		for i, entry := range logs {
			resp[i] = logResponse{
				ID:        string(entry.ID),
				RiskTitle: entry.RiskTitle,
				Degraded:  entry.Degraded,
				Reason:    entry.Reason,
				CreatedAt: entry.CreatedAt,
			}
		}
		respondData(w, resp)
	}
}

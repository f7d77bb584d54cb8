package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/service/notify"
	"github.com/cybermatters/themis/pkg/utils/async"
	"github.com/cybermatters/themis/pkg/utils/logging"
)

// criticalScoreThreshold is the inherent score at or above which a new
// risk triggers an alert (maximum possible score is 25).
const criticalScoreThreshold = 15

type RiskUseCase struct {
	repo     interfaces.Repository
	llm      gollem.LLMClient
	notifier notify.Service
}

func newRiskUseCase(repo interfaces.Repository, llm gollem.LLMClient, notifier notify.Service) *RiskUseCase {
	return &RiskUseCase{
		repo:     repo,
		llm:      llm,
		notifier: notifier,
	}
}

// CreateRiskInput is the input to manual risk creation
type CreateRiskInput struct {
	Title       string
	Description string
	Category    types.RiskCategory
	Likelihood  int
	Impact      int
	Owner       string
}

func (x *CreateRiskInput) Validate() error {
	if x.Title == "" {
		return goerr.New("risk title is required")
	}
	if err := x.Category.Validate(); err != nil {
		return err
	}
	if x.Likelihood < model.ScoreMin || x.Likelihood > model.ScoreMax {
		return goerr.New("likelihood must be between 1 and 5", goerr.V("likelihood", x.Likelihood))
	}
	if x.Impact < model.ScoreMin || x.Impact > model.ScoreMax {
		return goerr.New("impact must be between 1 and 5", goerr.V("impact", x.Impact))
	}
	return nil
}

// CreateRisk registers a manually scored risk for a tenant
func (uc *RiskUseCase) CreateRisk(ctx context.Context, tenantID types.TenantID, input *CreateRiskInput) (*model.Risk, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	now := time.Now()
	risk := &model.Risk{
		ID:            types.NewRiskID(),
		TenantID:      tenantID,
		RiskCode:      model.NewRiskCode(now),
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Likelihood:    input.Likelihood,
		Impact:        input.Impact,
		InherentScore: model.InherentScore(input.Likelihood, input.Impact),
		Status:        types.RiskStatusOpen,
		Owner:         input.Owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store risk", goerr.V("tenant_id", tenantID))
	}

	uc.alertIfCritical(ctx, created)

	return created, nil
}

// CreateRiskWithAssessment runs the AI assessment workflow and persists the
// resulting risk in a single call. The risk record is always created, even
// when the model service fails; the caller can inspect the returned output
// to see whether the assessment was degraded.
func (uc *RiskUseCase) CreateRiskWithAssessment(ctx context.Context, tenantID types.TenantID, req *model.AssessmentRequest, owner string) (*model.Risk, *AssessmentOutput, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	output, err := uc.AssessRisk(ctx, req, tenantID)
	if err != nil {
		return nil, nil, err
	}

	risk := mergeAssessment(tenantID, req, output.Assessment, owner, time.Now())

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to store assessed risk",
			goerr.V("tenant_id", tenantID),
			goerr.V("title", req.Title),
		)
	}

	uc.alertIfCritical(ctx, created)

	return created, output, nil
}

// mergeAssessment folds a reconciled assessment into a new risk record.
// The inherent score is recomputed from the assessment scores rather than
// copied, so the stored invariant holds regardless of what the model said.
func mergeAssessment(tenantID types.TenantID, req *model.AssessmentRequest, a *model.RiskAssessment, owner string, now time.Time) *model.Risk {
	nextReview := now.Add(model.ReviewInterval)

	return &model.Risk{
		ID:            types.NewRiskID(),
		TenantID:      tenantID,
		RiskCode:      model.NewRiskCode(now),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Likelihood:    a.Likelihood.Score,
		Impact:        a.Impact.Score,
		InherentScore: model.InherentScore(a.Likelihood.Score, a.Impact.Score),
		Status:        types.RiskStatusOpen,
		Owner:         owner,

		ThreatDescription:         strings.Join(a.ThreatSources, ", "),
		VulnerabilityDescription:  strings.Join(a.Vulnerabilities, ", "),
		BusinessImpactDescription: a.BusinessImpacts.Financial,
		ReviewFrequency:           a.ReviewFrequency.OrDefault(),
		NextReviewDate:            &nextReview,

		CreatedAt: now,
		UpdatedAt: now,
	}
}

// alertIfCritical fires a non-blocking notification when a new risk
// crosses the critical threshold. Notification failures are logged, never
// surfaced: an alert outage must not block risk registration.
func (uc *RiskUseCase) alertIfCritical(ctx context.Context, risk *model.Risk) {
	if uc.notifier == nil || risk.InherentScore < criticalScoreThreshold {
		return
	}

	tenant, err := uc.repo.Tenant().GetTenant(ctx, risk.TenantID)
	if err != nil {
		logging.From(ctx).Warn("failed to resolve tenant for critical risk alert",
			"tenant_id", risk.TenantID, "error", err)
		tenant = &model.Tenant{ID: risk.TenantID, Name: fmt.Sprintf("tenant %s", risk.TenantID)}
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.NotifyCriticalRisk(ctx, tenant, risk)
	})
}

// GetRisk retrieves one risk of a tenant
func (uc *RiskUseCase) GetRisk(ctx context.Context, tenantID types.TenantID, id types.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrRiskNotFound, "risk lookup failed",
				goerr.V("tenant_id", tenantID),
				goerr.V("risk_id", id),
			)
		}
		return nil, err
	}
	return risk, nil
}

// ListRisks returns the tenant's risk register, highest inherent score first
func (uc *RiskUseCase) ListRisks(ctx context.Context, tenantID types.TenantID) ([]*model.Risk, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}
	return uc.repo.Risk().List(ctx, tenantID)
}

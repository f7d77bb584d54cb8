package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/service/assess"
	"github.com/cybermatters/themis/pkg/utils/async"
	"github.com/cybermatters/themis/pkg/utils/logging"
)

// AssessmentOutput is the result of one AI assessment run. ServiceFailed
// distinguishes "the model call itself failed" from "the model answered
// but the output had to be repaired or replaced" (Degraded).
type AssessmentOutput struct {
	Assessment     *model.RiskAssessment
	Degraded       bool
	DegradedReason string
	ServiceFailed  bool
}

// AssessRisk runs the AI assessment workflow for a single risk: build the
// prompt, call the model, reconcile the output. It never returns an error
// for model-side failures; those degrade to the fallback assessment so
// risk creation can always proceed. Only invalid input fails.
func (uc *RiskUseCase) AssessRisk(ctx context.Context, req *model.AssessmentRequest, tenantID types.TenantID) (*AssessmentOutput, error) {
	if err := req.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	output := uc.runAssessment(ctx, req)

	uc.recordAssessment(ctx, tenantID, req.Title, output)

	return output, nil
}

func (uc *RiskUseCase) runAssessment(ctx context.Context, req *model.AssessmentRequest) *AssessmentOutput {
	logger := logging.From(ctx)

	if uc.llm == nil {
		return &AssessmentOutput{
			Assessment:     assess.Fallback(),
			Degraded:       true,
			DegradedReason: "no model client configured",
			ServiceFailed:  true,
		}
	}

	requestor, err := assess.NewRequestor(uc.llm)
	if err != nil {
		return &AssessmentOutput{
			Assessment:     assess.Fallback(),
			Degraded:       true,
			DegradedReason: err.Error(),
			ServiceFailed:  true,
		}
	}

	raw, err := requestor.Request(ctx, req)
	if err != nil {
		if errors.Is(err, assess.ErrExternalService) {
			logger.Warn("model service failed, falling back to manual review defaults",
				"title", req.Title, "error", err)
			return &AssessmentOutput{
				Assessment:     assess.Fallback(),
				Degraded:       true,
				DegradedReason: "model service unavailable",
				ServiceFailed:  true,
			}
		}
		// Prompt construction failures are also unrecoverable here
		logger.Error("assessment request failed", "title", req.Title, "error", err)
		return &AssessmentOutput{
			Assessment:     assess.Fallback(),
			Degraded:       true,
			DegradedReason: err.Error(),
			ServiceFailed:  true,
		}
	}

	result := assess.Reconcile(raw)
	return &AssessmentOutput{
		Assessment:     result.Assessment,
		Degraded:       result.Degraded,
		DegradedReason: result.Reason,
	}
}

// recordAssessment writes an audit log entry without blocking the caller
func (uc *RiskUseCase) recordAssessment(ctx context.Context, tenantID types.TenantID, title string, output *AssessmentOutput) {
	reason := output.DegradedReason
	if output.ServiceFailed && reason == "" {
		reason = "model service unavailable"
	}

	entry := &model.AssessmentLog{
		ID:        model.NewAssessmentLogID(),
		TenantID:  tenantID,
		RiskTitle: title,
		Degraded:  output.Degraded,
		Reason:    reason,
		CreatedAt: time.Now(),
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.repo.AssessmentLog().Create(ctx, entry)
		return err
	})
}

// AssessmentLogs returns recent assessment audit entries for a tenant
func (uc *RiskUseCase) AssessmentLogs(ctx context.Context, tenantID types.TenantID, limit int) ([]*model.AssessmentLog, error) {
	return uc.repo.AssessmentLog().List(ctx, tenantID, limit)
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/usecase"
)

func TestAssessRisk(t *testing.T) {
	ctx := context.Background()

	req := func() *model.AssessmentRequest {
		return &model.AssessmentRequest{
			Title:       "Cloud provider outage",
			Description: "Primary region becomes unavailable",
			Category:    types.CategoryOperational,
		}
	}

	t.Run("clean model output passes through", func(t *testing.T) {
		uc := testUseCases(usecase.WithLLM(&staticLLM{response: validAssessmentJSON}))
		tenantID := testTenant(t, uc)

		output, err := uc.Risk.AssessRisk(ctx, req(), tenantID)
		gt.NoError(t, err).Required()
		gt.Bool(t, output.Degraded).False()
		gt.Bool(t, output.ServiceFailed).False()
		gt.Value(t, output.Assessment.RiskScore).Equal(20)
	})

	t.Run("garbage model output degrades to fallback", func(t *testing.T) {
		uc := testUseCases(usecase.WithLLM(&staticLLM{response: "I cannot help with that."}))
		tenantID := testTenant(t, uc)

		output, err := uc.Risk.AssessRisk(ctx, req(), tenantID)
		gt.NoError(t, err).Required()
		gt.Bool(t, output.Degraded).True()
		gt.Bool(t, output.ServiceFailed).False()
		gt.Value(t, output.Assessment.RiskScore).Equal(9)
	})

	t.Run("missing model client is a service failure", func(t *testing.T) {
		uc := testUseCases()
		tenantID := testTenant(t, uc)

		output, err := uc.Risk.AssessRisk(ctx, req(), tenantID)
		gt.NoError(t, err).Required()
		gt.Bool(t, output.ServiceFailed).True()
		gt.Value(t, output.Assessment.RiskScore).Equal(9)
	})

	t.Run("invalid request fails instead of degrading", func(t *testing.T) {
		uc := testUseCases(usecase.WithLLM(&staticLLM{response: validAssessmentJSON}))
		tenantID := testTenant(t, uc)

		_, err := uc.Risk.AssessRisk(ctx, &model.AssessmentRequest{Title: "no description"}, tenantID)
		gt.Error(t, err)
	})

	t.Run("each run is recorded in the audit log", func(t *testing.T) {
		uc := testUseCases(usecase.WithLLM(&staticLLM{response: "not json at all"}))
		tenantID := testTenant(t, uc)

		_, err := uc.Risk.AssessRisk(ctx, req(), tenantID)
		gt.NoError(t, err).Required()

		// The log write is dispatched asynchronously
		var logs []*model.AssessmentLog
		for i := 0; i < 50; i++ {
			logs, err = uc.Risk.AssessmentLogs(ctx, tenantID, 10)
			gt.NoError(t, err).Required()
			if len(logs) > 0 {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		gt.Array(t, logs).Length(1)
		gt.Value(t, logs[0].RiskTitle).Equal("Cloud provider outage")
		gt.Bool(t, logs[0].Degraded).True()
	})
}

package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type DashboardUseCase struct {
	repo interfaces.Repository
}

func newDashboardUseCase(repo interfaces.Repository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// DashboardMetrics is the tenant home page summary
type DashboardMetrics struct {
	RiskCount            int `json:"risk_count"`
	SubscribedFrameworks int `json:"subscribed_frameworks"`
	HighRiskCount        int `json:"high_risk_count"`
}

// highRiskFloor is the inherent score from which a risk counts as high
const highRiskFloor = 15

// Metrics gathers the dashboard counters. The queries are independent, so
// they run concurrently and the first failure cancels the rest.
func (uc *DashboardUseCase) Metrics(ctx context.Context, tenantID types.TenantID) (*DashboardMetrics, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	metrics := &DashboardMetrics{}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		count, err := uc.repo.Risk().Count(ctx, tenantID)
		if err != nil {
			return goerr.Wrap(err, "failed to count risks")
		}
		metrics.RiskCount = count
		return nil
	})

	eg.Go(func() error {
		count, err := uc.repo.Framework().CountSubscribed(ctx, tenantID)
		if err != nil {
			return goerr.Wrap(err, "failed to count subscribed frameworks")
		}
		metrics.SubscribedFrameworks = count
		return nil
	})

	eg.Go(func() error {
		risks, err := uc.repo.Risk().List(ctx, tenantID)
		if err != nil {
			return goerr.Wrap(err, "failed to list risks")
		}
		high := 0
		for _, r := range risks {
			if r.InherentScore >= highRiskFloor {
				high++
			}
		}
		metrics.HighRiskCount = high
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to gather dashboard metrics", goerr.V("tenant_id", tenantID))
	}

	return metrics, nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type FrameworkUseCase struct {
	repo interfaces.Repository
}

func newFrameworkUseCase(repo interfaces.Repository) *FrameworkUseCase {
	return &FrameworkUseCase{repo: repo}
}

// ListFrameworks returns the public catalog of active frameworks
func (uc *FrameworkUseCase) ListFrameworks(ctx context.Context) ([]*model.Framework, error) {
	return uc.repo.Framework().List(ctx)
}

// ListTenantFrameworks returns the catalog annotated with the tenant's
// subscription state
func (uc *FrameworkUseCase) ListTenantFrameworks(ctx context.Context, tenantID types.TenantID) ([]*model.TenantFramework, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}
	return uc.repo.Framework().ListByTenant(ctx, tenantID)
}

// Subscribe enables a framework for a tenant. The framework must exist in
// the active catalog; subscribing twice is a no-op.
func (uc *FrameworkUseCase) Subscribe(ctx context.Context, tenantID types.TenantID, frameworkID types.FrameworkID) error {
	if err := tenantID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, err.Error())
	}
	if err := frameworkID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, err.Error())
	}

	frameworks, err := uc.repo.Framework().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load framework catalog")
	}
	found := false
	for _, f := range frameworks {
		if f.ID == frameworkID {
			found = true
			break
		}
	}
	if !found {
		return goerr.Wrap(ErrFrameworkNotFound, "cannot subscribe", goerr.V("framework_id", frameworkID))
	}

	if err := uc.repo.Framework().Subscribe(ctx, tenantID, frameworkID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrFrameworkNotFound, "cannot subscribe", goerr.V("framework_id", frameworkID))
		}
		return goerr.Wrap(err, "failed to subscribe",
			goerr.V("tenant_id", tenantID),
			goerr.V("framework_id", frameworkID),
		)
	}

	return nil
}

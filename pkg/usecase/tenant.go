package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
	"github.com/cybermatters/themis/pkg/domain/model"
)

// ResolveTenant looks up a tenant by its public hash, the identifier used
// in tenant-scoped URLs.
func (uc *AuthUseCase) ResolveTenant(ctx context.Context, hash string) (*model.Tenant, error) {
	if hash == "" {
		return nil, goerr.Wrap(ErrTenantNotFound, "empty tenant hash")
	}

	tenant, err := uc.repo.Tenant().GetTenantByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTenantNotFound, "unknown tenant hash", goerr.V("hash", hash))
		}
		return nil, goerr.Wrap(err, "failed to resolve tenant", goerr.V("hash", hash))
	}

	return tenant, nil
}

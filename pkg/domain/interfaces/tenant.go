package interfaces

import (
	"context"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type TenantRepository interface {
	// CreateTenant stores a new tenant
	CreateTenant(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error)

	// GetTenant retrieves a tenant by ID
	GetTenant(ctx context.Context, id types.TenantID) (*model.Tenant, error)

	// GetTenantByHash retrieves a tenant by its public hash
	GetTenantByHash(ctx context.Context, hash string) (*model.Tenant, error)

	// CreateUser stores a new tenant user
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByEmail retrieves a user by email across all tenants
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByEmailAndTenant retrieves a user by email scoped to one tenant
	GetUserByEmailAndTenant(ctx context.Context, email string, tenantID types.TenantID) (*model.User, error)
}

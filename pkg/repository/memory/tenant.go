package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type tenantRepository struct {
	mu      sync.RWMutex
	tenants map[types.TenantID]*model.Tenant
	users   map[types.UserID]*model.User
}

func newTenantRepository() *tenantRepository {
	return &tenantRepository{
		tenants: make(map[types.TenantID]*model.Tenant),
		users:   make(map[types.UserID]*model.User),
	}
}

func (r *tenantRepository) CreateTenant(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tenants[tenant.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "tenant already exists", goerr.V("id", tenant.ID))
	}

	created := *tenant
	created.CreatedAt = time.Now().UTC()
	r.tenants[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *tenantRepository) GetTenant(ctx context.Context, id types.TenantID) (*model.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tenant, exists := r.tenants[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "tenant not found", goerr.V("id", id))
	}

	copied := *tenant
	return &copied, nil
}

func (r *tenantRepository) GetTenantByHash(ctx context.Context, hash string) (*model.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tenant := range r.tenants {
		if tenant.Hash == hash {
			copied := *tenant
			return &copied, nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "tenant not found", goerr.V("hash", hash))
}

func (r *tenantRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, goerr.Wrap(ErrAlreadyExists, "email already registered", goerr.V("email", user.Email))
		}
	}

	created := *user
	created.CreatedAt = time.Now().UTC()
	r.users[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *tenantRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
}

func (r *tenantRepository) GetUserByEmailAndTenant(ctx context.Context, email string, tenantID types.TenantID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email && user.TenantID == tenantID {
			copied := *user
			return &copied, nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "user not found",
		goerr.V("email", email),
		goerr.V("tenantID", tenantID),
	)
}

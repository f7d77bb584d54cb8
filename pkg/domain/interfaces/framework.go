package interfaces

import (
	"context"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type FrameworkRepository interface {
	// Put stores or replaces a framework in the catalog
	Put(ctx context.Context, framework *model.Framework) error

	// List retrieves all active frameworks, ordered by category then name
	List(ctx context.Context) ([]*model.Framework, error)

	// ListByTenant retrieves active frameworks annotated with the tenant's
	// subscription state
	ListByTenant(ctx context.Context, tenantID types.TenantID) ([]*model.TenantFramework, error)

	// Subscribe enables a framework for a tenant. Subscribing twice is a no-op.
	Subscribe(ctx context.Context, tenantID types.TenantID, frameworkID types.FrameworkID) error

	// CountSubscribed returns the number of frameworks a tenant has enabled
	CountSubscribed(ctx context.Context, tenantID types.TenantID) (int, error)
}

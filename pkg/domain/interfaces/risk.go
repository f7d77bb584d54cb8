package interfaces

import (
	"context"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type RiskRepository interface {
	// Create stores a new risk record with a single atomic write
	Create(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Get retrieves a risk by tenant and ID
	Get(ctx context.Context, tenantID types.TenantID, id types.RiskID) (*model.Risk, error)

	// List retrieves all risks of a tenant, ordered by inherent score
	// descending, then creation time descending
	List(ctx context.Context, tenantID types.TenantID) ([]*model.Risk, error)

	// Count returns the number of risks registered for a tenant
	Count(ctx context.Context, tenantID types.TenantID) (int, error)
}

package interfaces

import (
	"context"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type AssessmentLogRepository interface {
	// Create stores a new assessment log entry
	Create(ctx context.Context, log *model.AssessmentLog) (*model.AssessmentLog, error)

	// List retrieves assessment log entries of a tenant, newest first
	List(ctx context.Context, tenantID types.TenantID, limit int) ([]*model.AssessmentLog, error)
}

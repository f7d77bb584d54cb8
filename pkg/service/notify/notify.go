package notify

import (
	"context"

	"github.com/cybermatters/themis/pkg/domain/model"
)

// Service posts alerts about notable risk register events
type Service interface {
	// NotifyCriticalRisk announces a newly created risk whose inherent
	// score crossed the critical threshold
	NotifyCriticalRisk(ctx context.Context, tenant *model.Tenant, risk *model.Risk) error
}

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/cybermatters/themis/pkg/domain/types"
)

// AssessmentLogID represents a unique identifier for an assessment log entry
type AssessmentLogID string

// NewAssessmentLogID generates a new random AssessmentLogID
func NewAssessmentLogID() AssessmentLogID {
	return AssessmentLogID(uuid.New().String())
}

// AssessmentLog records one AI assessment invocation for audit purposes.
// Degraded is set when the reconciler substituted defaults or the full
// fallback because the model output was unusable.
type AssessmentLog struct {
	ID        AssessmentLogID
	TenantID  types.TenantID
	RiskTitle string
	Degraded  bool
	Reason    string
	CreatedAt time.Time
}

package model

import (
	"fmt"
	"time"

	"github.com/cybermatters/themis/pkg/domain/types"
)

// Risk is a persisted entry of a tenant's risk register.
//
// InherentScore is always recomputed from Likelihood and Impact at write
// time; it is never accepted verbatim from a caller. The narrative fields
// (ThreatDescription, VulnerabilityDescription, BusinessImpactDescription)
// are populated only when the risk was created through the AI-assisted path.
type Risk struct {
	ID            types.RiskID
	TenantID      types.TenantID
	RiskCode      string
	Title         string
	Description   string
	Category      types.RiskCategory
	Likelihood    int
	Impact        int
	InherentScore int
	Status        types.RiskStatus
	Owner         string

	ThreatDescription         string
	VulnerabilityDescription  string
	BusinessImpactDescription string
	ReviewFrequency           types.ReviewFrequency
	NextReviewDate            *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InherentScore computes likelihood × impact, the risk score before any
// treatment is applied.
func InherentScore(likelihood, impact int) int {
	return likelihood * impact
}

// NewRiskCode generates a human-readable, tenant-unique risk code with a
// creation-timestamp suffix, e.g. "RISK-1735689600123".
func NewRiskCode(now time.Time) string {
	return fmt.Sprintf("RISK-%d", now.UnixMilli())
}

// ReviewInterval is how far ahead the next review of an AI-assessed risk
// is scheduled.
const ReviewInterval = 90 * 24 * time.Hour

package memory

import (
	"github.com/cybermatters/themis/pkg/domain/interfaces"
)

// Sentinel errors shared with the other repository backends
var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)

type Memory struct {
	tenant        *tenantRepository
	risk          *riskRepository
	framework     *frameworkRepository
	assessmentLog *assessmentLogRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		tenant:        newTenantRepository(),
		risk:          newRiskRepository(),
		framework:     newFrameworkRepository(),
		assessmentLog: newAssessmentLogRepository(),
	}
}

func (m *Memory) Tenant() interfaces.TenantRepository {
	return m.tenant
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Framework() interfaces.FrameworkRepository {
	return m.framework
}

func (m *Memory) AssessmentLog() interfaces.AssessmentLogRepository {
	return m.assessmentLog
}

func (m *Memory) Close() error {
	return nil
}

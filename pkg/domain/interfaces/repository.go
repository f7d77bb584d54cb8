package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Tenant() TenantRepository
	Risk() RiskRepository
	Framework() FrameworkRepository
	AssessmentLog() AssessmentLogRepository

	Close() error
}

package usecase

import (
	"github.com/m-mizutani/gollem"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
	"github.com/cybermatters/themis/pkg/service/notify"
)

type UseCases struct {
	repo        interfaces.Repository
	llm         gollem.LLMClient
	notifier    notify.Service
	tokenSecret []byte

	Auth      *AuthUseCase
	Risk      *RiskUseCase
	Framework *FrameworkUseCase
	Dashboard *DashboardUseCase
}

type Option func(*UseCases)

// WithLLM sets the model client used by the AI assessment workflow.
// Without it, risk creation falls back to manual scoring only.
func WithLLM(llm gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llm = llm
	}
}

// WithNotifier sets the alert destination for critical risks
func WithNotifier(n notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithTokenSecret sets the HMAC secret for session token signing
func WithTokenSecret(secret []byte) Option {
	return func(uc *UseCases) {
		uc.tokenSecret = secret
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Auth = newAuthUseCase(repo, uc.tokenSecret)
	uc.Risk = newRiskUseCase(repo, uc.llm, uc.notifier)
	uc.Framework = newFrameworkUseCase(repo)
	uc.Dashboard = newDashboardUseCase(repo)

	return uc
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type riskKey struct {
	tenantID types.TenantID
	riskID   types.RiskID
}

type riskRepository struct {
	mu    sync.RWMutex
	risks map[riskKey]*model.Risk

	// failNext simulates a storage failure on the next write, for tests
	failNext error
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks: make(map[riskKey]*model.Risk),
	}
}

// FailNextWrite makes the next Create call fail with the given error.
// Test helper for storage failure scenarios.
func (r *riskRepository) FailNextWrite(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	key := riskKey{tenantID: risk.TenantID, riskID: risk.ID}
	if _, exists := r.risks[key]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "risk already exists", goerr.V("id", risk.ID))
	}

	now := time.Now().UTC()
	created := *risk
	created.CreatedAt = now
	created.UpdatedAt = now
	r.risks[key] = &created

	copied := created
	return &copied, nil
}

func (r *riskRepository) Get(ctx context.Context, tenantID types.TenantID, id types.RiskID) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[riskKey{tenantID: tenantID, riskID: id}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found",
			goerr.V("tenantID", tenantID),
			goerr.V("id", id),
		)
	}

	copied := *risk
	return &copied, nil
}

func (r *riskRepository) List(ctx context.Context, tenantID types.TenantID) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0)
	for key, risk := range r.risks {
		if key.tenantID != tenantID {
			continue
		}
		copied := *risk
		risks = append(risks, &copied)
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].InherentScore != risks[j].InherentScore {
			return risks[i].InherentScore > risks[j].InherentScore
		}
		return risks[i].CreatedAt.After(risks[j].CreatedAt)
	})

	return risks, nil
}

func (r *riskRepository) Count(ctx context.Context, tenantID types.TenantID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.risks {
		if key.tenantID == tenantID {
			count++
		}
	}

	return count, nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type assessmentLogRepository struct {
	mu   sync.RWMutex
	logs map[model.AssessmentLogID]*model.AssessmentLog
}

func newAssessmentLogRepository() *assessmentLogRepository {
	return &assessmentLogRepository{
		logs: make(map[model.AssessmentLogID]*model.AssessmentLog),
	}
}

func (r *assessmentLogRepository) Create(ctx context.Context, log *model.AssessmentLog) (*model.AssessmentLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *log
	if created.ID == "" {
		created.ID = model.NewAssessmentLogID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.logs[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *assessmentLogRepository) List(ctx context.Context, tenantID types.TenantID, limit int) ([]*model.AssessmentLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]*model.AssessmentLog, 0)
	for _, log := range r.logs {
		if log.TenantID != tenantID {
			continue
		}
		copied := *log
		logs = append(logs, &copied)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})

	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}

	return logs, nil
}

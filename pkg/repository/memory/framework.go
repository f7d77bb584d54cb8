package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type subscriptionKey struct {
	tenantID    types.TenantID
	frameworkID types.FrameworkID
}

type frameworkRepository struct {
	mu            sync.RWMutex
	frameworks    map[types.FrameworkID]*model.Framework
	subscriptions map[subscriptionKey]*model.Subscription
}

func newFrameworkRepository() *frameworkRepository {
	return &frameworkRepository{
		frameworks:    make(map[types.FrameworkID]*model.Framework),
		subscriptions: make(map[subscriptionKey]*model.Subscription),
	}
}

func (r *frameworkRepository) Put(ctx context.Context, framework *model.Framework) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *framework
	r.frameworks[framework.ID] = &copied
	return nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frameworks := make([]*model.Framework, 0)
	for _, fw := range r.frameworks {
		if !fw.Active {
			continue
		}
		copied := *fw
		frameworks = append(frameworks, &copied)
	}

	sortFrameworks(frameworks)
	return frameworks, nil
}

func (r *frameworkRepository) ListByTenant(ctx context.Context, tenantID types.TenantID) ([]*model.TenantFramework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frameworks := make([]*model.TenantFramework, 0)
	for _, fw := range r.frameworks {
		if !fw.Active {
			continue
		}
		sub, ok := r.subscriptions[subscriptionKey{tenantID: tenantID, frameworkID: fw.ID}]
		frameworks = append(frameworks, &model.TenantFramework{
			Framework:  *fw,
			Subscribed: ok && sub.Enabled,
		})
	}

	sort.Slice(frameworks, func(i, j int) bool {
		if frameworks[i].Category != frameworks[j].Category {
			return frameworks[i].Category < frameworks[j].Category
		}
		return frameworks[i].Name < frameworks[j].Name
	})

	return frameworks, nil
}

func (r *frameworkRepository) Subscribe(ctx context.Context, tenantID types.TenantID, frameworkID types.FrameworkID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subscriptions[subscriptionKey{tenantID: tenantID, frameworkID: frameworkID}] = &model.Subscription{
		TenantID:     tenantID,
		FrameworkID:  frameworkID,
		Enabled:      true,
		SubscribedAt: time.Now().UTC(),
	}

	return nil
}

func (r *frameworkRepository) CountSubscribed(ctx context.Context, tenantID types.TenantID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key, sub := range r.subscriptions {
		if key.tenantID == tenantID && sub.Enabled {
			count++
		}
	}

	return count, nil
}

func sortFrameworks(frameworks []*model.Framework) {
	sort.Slice(frameworks, func(i, j int) bool {
		if frameworks[i].Category != frameworks[j].Category {
			return frameworks[i].Category < frameworks[j].Category
		}
		return frameworks[i].Name < frameworks[j].Name
	})
}

package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/repository/memory"
)

func newTenant(name string) *model.Tenant {
	id := types.NewTenantID()
	return &model.Tenant{
		ID:        id,
		Hash:      model.NewTenantHash(id),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

func TestTenantRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	tenant := newTenant("Acme Corp")
	_, err := repo.Tenant().CreateTenant(ctx, tenant)
	gt.NoError(t, err).Required()

	t.Run("get by ID and by hash", func(t *testing.T) {
		got, err := repo.Tenant().GetTenant(ctx, tenant.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Acme Corp")

		byHash, err := repo.Tenant().GetTenantByHash(ctx, tenant.Hash)
		gt.NoError(t, err).Required()
		gt.Value(t, byHash.ID).Equal(tenant.ID)
	})

	t.Run("unknown tenant yields not found", func(t *testing.T) {
		_, err := repo.Tenant().GetTenant(ctx, types.NewTenantID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})

	t.Run("user lookup by email", func(t *testing.T) {
		user := &model.User{
			ID:       types.NewUserID(),
			TenantID: tenant.ID,
			Email:    "alice@example.com",
			Role:     model.RoleAdmin,
		}
		_, err := repo.Tenant().CreateUser(ctx, user)
		gt.NoError(t, err).Required()

		got, err := repo.Tenant().GetUserByEmail(ctx, "alice@example.com")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(user.ID)

		scoped, err := repo.Tenant().GetUserByEmailAndTenant(ctx, "alice@example.com", tenant.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, scoped.ID).Equal(user.ID)

		_, err = repo.Tenant().GetUserByEmailAndTenant(ctx, "alice@example.com", types.NewTenantID())
		gt.Error(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := repo.Tenant().CreateUser(ctx, &model.User{
			ID:       types.NewUserID(),
			TenantID: tenant.ID,
			Email:    "alice@example.com",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrAlreadyExists)).True()
	})
}

func newRisk(tenantID types.TenantID, likelihood, impact int, createdAt time.Time) *model.Risk {
	return &model.Risk{
		ID:            types.NewRiskID(),
		TenantID:      tenantID,
		RiskCode:      model.NewRiskCode(createdAt),
		Title:         "Risk",
		Category:      types.CategoryOperational,
		Likelihood:    likelihood,
		Impact:        impact,
		InherentScore: model.InherentScore(likelihood, impact),
		Status:        types.RiskStatusOpen,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestRiskRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	tenantID := types.NewTenantID()

	now := time.Now()
	risks := []*model.Risk{
		newRisk(tenantID, 1, 2, now.Add(-3*time.Hour)),
		newRisk(tenantID, 5, 5, now.Add(-2*time.Hour)),
		newRisk(tenantID, 5, 5, now.Add(-1*time.Hour)),
		newRisk(tenantID, 3, 3, now),
	}
	for _, r := range risks {
		_, err := repo.Risk().Create(ctx, r)
		gt.NoError(t, err).Required()
	}

	t.Run("list orders by score desc then created desc", func(t *testing.T) {
		list, err := repo.Risk().List(ctx, tenantID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(4)
		gt.Value(t, list[0].InherentScore).Equal(25)
		gt.Value(t, list[1].InherentScore).Equal(25)
		gt.Bool(t, list[0].CreatedAt.After(list[1].CreatedAt)).True()
		gt.Value(t, list[2].InherentScore).Equal(9)
		gt.Value(t, list[3].InherentScore).Equal(2)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Risk().Count(ctx, tenantID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(4)
	})

	t.Run("cross tenant access is not found", func(t *testing.T) {
		otherID := types.NewTenantID()
		_, err := repo.Risk().Get(ctx, otherID, risks[0].ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()

		list, err := repo.Risk().List(ctx, otherID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})

	t.Run("duplicate ID is rejected", func(t *testing.T) {
		_, err := repo.Risk().Create(ctx, risks[0])
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrAlreadyExists)).True()
	})

	t.Run("stored risk is isolated from caller mutation", func(t *testing.T) {
		risk := newRisk(tenantID, 2, 2, now)
		_, err := repo.Risk().Create(ctx, risk)
		gt.NoError(t, err).Required()

		risk.Title = "mutated"
		got, err := repo.Risk().Get(ctx, tenantID, risk.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Risk")
	})
}

func TestFrameworkRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	tenantID := types.NewTenantID()

	frameworks := []*model.Framework{
		{ID: "soc2", Name: "SOC 2", Category: "security", Active: true},
		{ID: "gdpr", Name: "GDPR", Category: "privacy", Active: true},
		{ID: "iso-27001", Name: "ISO/IEC 27001", Category: "security", Active: true},
		{ID: "old", Name: "Old", Category: "security", Active: false},
	}
	for _, f := range frameworks {
		gt.NoError(t, repo.Framework().Put(ctx, f)).Required()
	}

	t.Run("list returns active ordered by category and name", func(t *testing.T) {
		list, err := repo.Framework().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)
		gt.Value(t, list[0].ID).Equal(types.FrameworkID("gdpr"))
		gt.Value(t, list[1].ID).Equal(types.FrameworkID("iso-27001"))
		gt.Value(t, list[2].ID).Equal(types.FrameworkID("soc2"))
	})

	t.Run("subscribe is idempotent", func(t *testing.T) {
		gt.NoError(t, repo.Framework().Subscribe(ctx, tenantID, "soc2")).Required()
		gt.NoError(t, repo.Framework().Subscribe(ctx, tenantID, "soc2")).Required()

		count, err := repo.Framework().CountSubscribed(ctx, tenantID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)
	})

	t.Run("tenant view carries subscription state", func(t *testing.T) {
		list, err := repo.Framework().ListByTenant(ctx, tenantID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)
		for _, f := range list {
			gt.Value(t, f.Subscribed).Equal(f.ID == "soc2")
		}
	})
}

func TestAssessmentLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	tenantID := types.NewTenantID()

	for i := 0; i < 5; i++ {
		_, err := repo.AssessmentLog().Create(ctx, &model.AssessmentLog{
			TenantID:  tenantID,
			RiskTitle: "Risk",
			Degraded:  i%2 == 0,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		gt.NoError(t, err).Required()
	}

	logs, err := repo.AssessmentLog().List(ctx, tenantID, 3)
	gt.NoError(t, err).Required()
	gt.Array(t, logs).Length(3)
	gt.Bool(t, logs[0].CreatedAt.After(logs[1].CreatedAt)).True()
	gt.Bool(t, logs[1].CreatedAt.After(logs[2].CreatedAt)).True()

	other, err := repo.AssessmentLog().List(ctx, types.NewTenantID(), 10)
	gt.NoError(t, err).Required()
	gt.Array(t, other).Length(0)
}

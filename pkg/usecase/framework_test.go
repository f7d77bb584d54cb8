package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
	"github.com/cybermatters/themis/pkg/repository/memory"
	"github.com/cybermatters/themis/pkg/usecase"
)

func seedFrameworks(t *testing.T, repo *memory.Memory) {
	t.Helper()
	ctx := context.Background()
	frameworks := []*model.Framework{
		{ID: "iso-27001", Name: "ISO/IEC 27001", Category: "security", Active: true},
		{ID: "soc2", Name: "SOC 2", Category: "security", Active: true},
		{ID: "gdpr", Name: "GDPR", Category: "privacy", Active: true},
		{ID: "retired", Name: "Retired Standard", Category: "security", Active: false},
	}
	for _, f := range frameworks {
		gt.NoError(t, repo.Framework().Put(ctx, f)).Required()
	}
}

func TestFramework_Catalog(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedFrameworks(t, repo)
	uc := usecase.New(repo, usecase.WithTokenSecret([]byte("test-secret-for-session-tokens")))

	frameworks, err := uc.Framework.ListFrameworks(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, frameworks).Length(3)
	for _, f := range frameworks {
		gt.Bool(t, f.Active).True()
	}
}

func TestFramework_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedFrameworks(t, repo)
	uc := usecase.New(repo, usecase.WithTokenSecret([]byte("test-secret-for-session-tokens")))
	tenantID := testTenant(t, uc)

	gt.NoError(t, uc.Framework.Subscribe(ctx, tenantID, "iso-27001")).Required()

	t.Run("subscription shows up in the tenant view", func(t *testing.T) {
		list, err := uc.Framework.ListTenantFrameworks(ctx, tenantID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)

		subscribed := 0
		for _, f := range list {
			if f.Subscribed {
				subscribed++
				gt.Value(t, f.ID).Equal(types.FrameworkID("iso-27001"))
			}
		}
		gt.Value(t, subscribed).Equal(1)
	})

	t.Run("subscribing twice is a no-op", func(t *testing.T) {
		gt.NoError(t, uc.Framework.Subscribe(ctx, tenantID, "iso-27001")).Required()

		count, err := repo.Framework().CountSubscribed(ctx, tenantID)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)
	})

	t.Run("unknown framework is rejected", func(t *testing.T) {
		err := uc.Framework.Subscribe(ctx, tenantID, "no-such-framework")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrFrameworkNotFound)).True()
	})

	t.Run("inactive framework is rejected", func(t *testing.T) {
		err := uc.Framework.Subscribe(ctx, tenantID, "retired")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrFrameworkNotFound)).True()
	})
}

func TestDashboard_Metrics(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedFrameworks(t, repo)
	uc := usecase.New(repo, usecase.WithTokenSecret([]byte("test-secret-for-session-tokens")))
	tenantID := testTenant(t, uc)

	gt.NoError(t, uc.Framework.Subscribe(ctx, tenantID, "iso-27001")).Required()
	gt.NoError(t, uc.Framework.Subscribe(ctx, tenantID, "gdpr")).Required()

	scores := [][2]int{{5, 5}, {3, 5}, {2, 2}}
	for _, s := range scores {
		_, err := uc.Risk.CreateRisk(ctx, tenantID, &usecase.CreateRiskInput{
			Title:      "Risk",
			Category:   types.CategoryOperational,
			Likelihood: s[0],
			Impact:     s[1],
		})
		gt.NoError(t, err).Required()
	}

	metrics, err := uc.Dashboard.Metrics(ctx, tenantID)
	gt.NoError(t, err).Required()
	gt.Value(t, metrics.RiskCount).Equal(3)
	gt.Value(t, metrics.SubscribedFrameworks).Equal(2)
	gt.Value(t, metrics.HighRiskCount).Equal(2)
}

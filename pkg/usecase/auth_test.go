package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/repository/memory"
	"github.com/cybermatters/themis/pkg/usecase"
)

func testUseCases(opts ...usecase.Option) *usecase.UseCases {
	base := []usecase.Option{
		usecase.WithTokenSecret([]byte("test-secret-for-session-tokens")),
	}
	return usecase.New(memory.New(), append(base, opts...)...)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc := testUseCases()

	input := &usecase.RegisterInput{
		CompanyName: "Acme Corp",
		Email:       "alice@example.com",
		Password:    "correct horse battery",
		FirstName:   "Alice",
	}

	reg, err := uc.Auth.Register(ctx, input)
	gt.NoError(t, err).Required()
	gt.Value(t, reg.Role).Equal(model.RoleAdmin)
	gt.Value(t, len(reg.TenantHash)).Equal(12)
	gt.Bool(t, reg.Token != "").True()

	t.Run("login returns a fresh token for the same identity", func(t *testing.T) {
		out, err := uc.Auth.Login(ctx, "alice@example.com", "correct horse battery", "")
		gt.NoError(t, err).Required()
		gt.Value(t, out.TenantID).Equal(reg.TenantID)
		gt.Value(t, out.TenantHash).Equal(reg.TenantHash)
		gt.Value(t, out.UserID).Equal(reg.UserID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := uc.Auth.Login(ctx, "alice@example.com", "wrong password", "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
	})

	t.Run("unknown email yields the same error as wrong password", func(t *testing.T) {
		_, err := uc.Auth.Login(ctx, "nobody@example.com", "correct horse battery", "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
	})

	t.Run("tenant hash scopes the login to that tenant", func(t *testing.T) {
		out, err := uc.Auth.Login(ctx, "alice@example.com", "correct horse battery", reg.TenantHash)
		gt.NoError(t, err).Required()
		gt.Value(t, out.TenantID).Equal(reg.TenantID)
		gt.Value(t, out.TenantHash).Equal(reg.TenantHash)
	})

	t.Run("unknown tenant hash yields the same error as bad credentials", func(t *testing.T) {
		_, err := uc.Auth.Login(ctx, "alice@example.com", "correct horse battery", "000000000000")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
	})

	t.Run("hash of a tenant the user does not belong to is rejected", func(t *testing.T) {
		other, err := uc.Auth.Register(ctx, &usecase.RegisterInput{
			CompanyName: "Globex",
			Email:       "carol@example.com",
			Password:    "another long password",
			FirstName:   "Carol",
		})
		gt.NoError(t, err).Required()

		_, err = uc.Auth.Login(ctx, "alice@example.com", "correct horse battery", other.TenantHash)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
	})

	t.Run("duplicate email cannot register a second tenant", func(t *testing.T) {
		_, err := uc.Auth.Register(ctx, &usecase.RegisterInput{
			CompanyName: "Acme Clone",
			Email:       "alice@example.com",
			Password:    "another password",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrEmailAlreadyRegistered)).True()
	})
}

func TestAuth_ValidateToken(t *testing.T) {
	ctx := context.Background()
	uc := testUseCases()

	reg, err := uc.Auth.Register(ctx, &usecase.RegisterInput{
		CompanyName: "Acme Corp",
		Email:       "bob@example.com",
		Password:    "a long enough password",
	})
	gt.NoError(t, err).Required()

	t.Run("valid token carries the session identity", func(t *testing.T) {
		session, err := uc.Auth.ValidateToken(ctx, reg.Token)
		gt.NoError(t, err).Required()
		gt.Value(t, session.UserID).Equal(reg.UserID)
		gt.Value(t, session.TenantID).Equal(reg.TenantID)
		gt.Value(t, session.TenantHash).Equal(reg.TenantHash)
		gt.Value(t, session.Role).Equal(model.RoleAdmin)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		_, err := uc.Auth.ValidateToken(ctx, reg.Token+"x")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidToken)).True()
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := testUseCases(usecase.WithTokenSecret([]byte("a different secret entirely")))
		_, err := other.Auth.ValidateToken(ctx, reg.Token)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidToken)).True()
	})
}

func TestAuth_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	uc := testUseCases()

	cases := map[string]*usecase.RegisterInput{
		"missing company name": {Email: "x@example.com", Password: "long enough pw"},
		"missing email":        {CompanyName: "Acme", Password: "long enough pw"},
		"short password":       {CompanyName: "Acme", Email: "x@example.com", Password: "short"},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Auth.Register(ctx, input)
			gt.Error(t, err)
		})
	}
}

func TestAuth_ResolveTenant(t *testing.T) {
	ctx := context.Background()
	uc := testUseCases()

	reg, err := uc.Auth.Register(ctx, &usecase.RegisterInput{
		CompanyName: "Acme Corp",
		Email:       "carol@example.com",
		Password:    "a long enough password",
	})
	gt.NoError(t, err).Required()

	tenant, err := uc.Auth.ResolveTenant(ctx, reg.TenantHash)
	gt.NoError(t, err).Required()
	gt.Value(t, tenant.ID).Equal(reg.TenantID)
	gt.Value(t, tenant.Name).Equal("Acme Corp")

	_, err = uc.Auth.ResolveTenant(ctx, "ffffffffffff")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrTenantNotFound)).True()
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

// bcryptCost trades login latency for resistance to offline cracking
const bcryptCost = 12

// tokenLifetime is how long an issued session token stays valid
const tokenLifetime = 24 * time.Hour

type AuthUseCase struct {
	repo   interfaces.Repository
	secret []byte
}

func newAuthUseCase(repo interfaces.Repository, secret []byte) *AuthUseCase {
	return &AuthUseCase{
		repo:   repo,
		secret: secret,
	}
}

// RegisterInput is the input to tenant registration
type RegisterInput struct {
	CompanyName string
	Email       string
	Password    string `masq:"secret"`
	FirstName   string
}

func (x *RegisterInput) Validate() error {
	if x.CompanyName == "" {
		return goerr.New("company name is required")
	}
	if x.Email == "" {
		return goerr.New("email is required")
	}
	if len(x.Password) < 8 {
		return goerr.New("password must be at least 8 characters")
	}
	return nil
}

// Session is the authenticated identity carried by a validated token
type Session struct {
	UserID     types.UserID
	TenantID   types.TenantID
	TenantHash string
	Role       string
}

// RegisterOutput is the result of a successful registration or login
type RegisterOutput struct {
	Token      string
	TenantID   types.TenantID
	TenantHash string
	UserID     types.UserID
	Role       string
}

// Register creates a new tenant with its first admin user and returns a
// signed session token. The email must not be in use by any tenant.
func (uc *AuthUseCase) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	if _, err := uc.repo.Tenant().GetUserByEmail(ctx, input.Email); err == nil {
		return nil, goerr.Wrap(ErrEmailAlreadyRegistered, "registration rejected", goerr.V("email", input.Email))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to check existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	tenant := &model.Tenant{
		ID:        types.NewTenantID(),
		Name:      input.CompanyName,
		CreatedAt: now,
	}
	tenant.Hash = model.NewTenantHash(tenant.ID)

	if _, err := uc.repo.Tenant().CreateTenant(ctx, tenant); err != nil {
		return nil, goerr.Wrap(err, "failed to create tenant", goerr.V("name", tenant.Name))
	}

	user := &model.User{
		ID:           types.NewUserID(),
		TenantID:     tenant.ID,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		FirstName:    input.FirstName,
		CreatedAt:    now,
	}

	if _, err := uc.repo.Tenant().CreateUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("tenant_id", tenant.ID))
	}

	token, err := uc.signToken(user, tenant)
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{
		Token:      token,
		TenantID:   tenant.ID,
		TenantHash: tenant.Hash,
		UserID:     user.ID,
		Role:       user.Role,
	}, nil
}

// Login verifies email and password and returns a fresh session token.
// A non-empty tenantHash scopes the lookup to that tenant, for users who
// belong to more than one. Unknown email, unknown tenant hash and wrong
// password all yield the same error so login cannot be used to probe for
// registered addresses or tenant hashes.
func (uc *AuthUseCase) Login(ctx context.Context, email, password, tenantHash string) (*RegisterOutput, error) {
	user, tenant, err := uc.findLoginUser(ctx, email, tenantHash)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "login failed", goerr.V("email", email))
		}
		return nil, goerr.Wrap(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed", goerr.V("email", email))
	}

	if tenant == nil {
		tenant, err = uc.repo.Tenant().GetTenant(ctx, user.TenantID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to look up tenant", goerr.V("tenant_id", user.TenantID))
		}
	}

	token, err := uc.signToken(user, tenant)
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{
		Token:      token,
		TenantID:   tenant.ID,
		TenantHash: tenant.Hash,
		UserID:     user.ID,
		Role:       user.Role,
	}, nil
}

// findLoginUser resolves the user for a login attempt. With a tenant hash
// the lookup is scoped to that tenant and the resolved tenant is returned
// alongside; without one the user is found across all tenants and the
// tenant is left for the caller to fetch.
func (uc *AuthUseCase) findLoginUser(ctx context.Context, email, tenantHash string) (*model.User, *model.Tenant, error) {
	if tenantHash == "" {
		user, err := uc.repo.Tenant().GetUserByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		return user, nil, nil
	}

	tenant, err := uc.repo.Tenant().GetTenantByHash(ctx, tenantHash)
	if err != nil {
		return nil, nil, err
	}

	user, err := uc.repo.Tenant().GetUserByEmailAndTenant(ctx, email, tenant.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tenant, nil
}

func (uc *AuthUseCase) signToken(user *model.User, tenant *model.Tenant) (string, error) {
	if len(uc.secret) == 0 {
		return "", goerr.New("token secret is not configured")
	}

	now := time.Now()
	token, err := jwt.NewBuilder().
		Subject(user.ID.String()).
		IssuedAt(now).
		Expiration(now.Add(tokenLifetime)).
		Claim("user_id", user.ID.String()).
		Claim("tenant_id", tenant.ID.String()).
		Claim("tenant_hash", tenant.Hash).
		Claim("role", user.Role).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}

	return string(signed), nil
}

// ValidateToken verifies the signature and expiry of a session token and
// returns the embedded identity.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, raw string) (*Session, error) {
	if len(uc.secret) == 0 {
		return nil, goerr.New("token secret is not configured")
	}

	token, err := jwt.Parse([]byte(raw), jwt.WithKey(jwa.HS256, uc.secret), jwt.WithValidate(true))
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "token verification failed", goerr.V("cause", err.Error()))
	}

	session := &Session{}
	for _, name := range []string{"user_id", "tenant_id", "tenant_hash", "role"} {
		v, ok := token.Get(name)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidToken, "missing claim", goerr.V("claim", name))
		}
		s, ok := v.(string)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidToken, "claim is not a string", goerr.V("claim", name))
		}
		switch name {
		case "user_id":
			session.UserID = types.UserID(s)
		case "tenant_id":
			session.TenantID = types.TenantID(s)
		case "tenant_hash":
			session.TenantHash = s
		case "role":
			session.Role = s
		}
	}

	return session, nil
}

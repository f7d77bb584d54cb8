package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type tenantDocument struct {
	ID        string    `firestore:"id"`
	Hash      string    `firestore:"hash"`
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"created_at"`
}

type userDocument struct {
	ID           string    `firestore:"id"`
	TenantID     string    `firestore:"tenant_id"`
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"password_hash"`
	Role         string    `firestore:"role"`
	FirstName    string    `firestore:"first_name"`
	CreatedAt    time.Time `firestore:"created_at"`
}

type tenantRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTenantRepository(client *firestore.Client) *tenantRepository {
	return &tenantRepository{client: client}
}

func (r *tenantRepository) tenantsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tenants"
	}
	return "tenants"
}

func (r *tenantRepository) usersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tenant_users"
	}
	return "tenant_users"
}

func (r *tenantRepository) CreateTenant(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error) {
	doc := &tenantDocument{
		ID:        tenant.ID.String(),
		Hash:      tenant.Hash,
		Name:      tenant.Name,
		CreatedAt: time.Now().UTC(),
	}

	docRef := r.client.Collection(r.tenantsCollection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "tenant already exists", goerr.V("id", doc.ID))
		}
		return nil, goerr.Wrap(err, "failed to create tenant", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (d *tenantDocument) toModel() *model.Tenant {
	return &model.Tenant{
		ID:        types.TenantID(d.ID),
		Hash:      d.Hash,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:           types.UserID(d.ID),
		TenantID:     types.TenantID(d.TenantID),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		FirstName:    d.FirstName,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *tenantRepository) GetTenant(ctx context.Context, id types.TenantID) (*model.Tenant, error) {
	doc, err := r.client.Collection(r.tenantsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "tenant not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get tenant", goerr.V("id", id))
	}

	var tenantDoc tenantDocument
	if err := doc.DataTo(&tenantDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal tenant", goerr.V("id", id))
	}

	return tenantDoc.toModel(), nil
}

func (r *tenantRepository) GetTenantByHash(ctx context.Context, hash string) (*model.Tenant, error) {
	iter := r.client.Collection(r.tenantsCollection()).
		Where("hash", "==", hash).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "tenant not found", goerr.V("hash", hash))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query tenant", goerr.V("hash", hash))
	}

	var tenantDoc tenantDocument
	if err := doc.DataTo(&tenantDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal tenant", goerr.V("hash", hash))
	}

	return tenantDoc.toModel(), nil
}

func (r *tenantRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	// Reject duplicate emails before the write. Firestore has no unique
	// constraint on fields, so this is a best-effort guard.
	if existing, err := r.GetUserByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, goerr.Wrap(ErrAlreadyExists, "email already registered", goerr.V("email", user.Email))
	}

	doc := &userDocument{
		ID:           user.ID.String(),
		TenantID:     user.TenantID.String(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		FirstName:    user.FirstName,
		CreatedAt:    time.Now().UTC(),
	}

	docRef := r.client.Collection(r.usersCollection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "user already exists", goerr.V("id", doc.ID))
		}
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *tenantRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.client.Collection(r.usersCollection()).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user", goerr.V("email", email))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("email", email))
	}

	return userDoc.toModel(), nil
}

func (r *tenantRepository) GetUserByEmailAndTenant(ctx context.Context, email string, tenantID types.TenantID) (*model.User, error) {
	iter := r.client.Collection(r.usersCollection()).
		Where("email", "==", email).
		Where("tenant_id", "==", tenantID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found",
			goerr.V("email", email),
			goerr.V("tenantID", tenantID),
		)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user", goerr.V("email", email))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("email", email))
	}

	return userDoc.toModel(), nil
}

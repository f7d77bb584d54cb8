package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/interfaces"
)

// Sentinel errors shared with the other repository backends
var (
	ErrNotFound      = interfaces.ErrNotFound
	ErrAlreadyExists = interfaces.ErrAlreadyExists
)

type Firestore struct {
	client        *firestore.Client
	tenant        *tenantRepository
	risk          *riskRepository
	framework     *frameworkRepository
	assessmentLog *assessmentLogRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.tenant.collectionPrefix = prefix
		f.risk.collectionPrefix = prefix
		f.framework.collectionPrefix = prefix
		f.assessmentLog.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:        client,
		tenant:        newTenantRepository(client),
		risk:          newRiskRepository(client),
		framework:     newFrameworkRepository(client),
		assessmentLog: newAssessmentLogRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Tenant() interfaces.TenantRepository {
	return f.tenant
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Framework() interfaces.FrameworkRepository {
	return f.framework
}

func (f *Firestore) AssessmentLog() interfaces.AssessmentLogRepository {
	return f.assessmentLog
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type frameworkDocument struct {
	ID                     string `firestore:"id"`
	Name                   string `firestore:"name"`
	Description            string `firestore:"description"`
	FrameworkType          string `firestore:"framework_type"`
	Category               string `firestore:"category"`
	IssuingBody            string `firestore:"issuing_body"`
	StandardNumber         string `firestore:"standard_number"`
	CertificationAvailable bool   `firestore:"certification_available"`
	Active                 bool   `firestore:"is_active"`
}

type subscriptionDocument struct {
	TenantID     string    `firestore:"tenant_id"`
	FrameworkID  string    `firestore:"framework_id"`
	Enabled      bool      `firestore:"enabled"`
	SubscribedAt time.Time `firestore:"subscribed_at"`
}

type frameworkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFrameworkRepository(client *firestore.Client) *frameworkRepository {
	return &frameworkRepository{client: client}
}

func (r *frameworkRepository) frameworksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_frameworks"
	}
	return "frameworks"
}

func (r *frameworkRepository) subscriptionsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tenant_frameworks"
	}
	return "tenant_frameworks"
}

func (d *frameworkDocument) toModel() *model.Framework {
	return &model.Framework{
		ID:                     types.FrameworkID(d.ID),
		Name:                   d.Name,
		Description:            d.Description,
		FrameworkType:          d.FrameworkType,
		Category:               d.Category,
		IssuingBody:            d.IssuingBody,
		StandardNumber:         d.StandardNumber,
		CertificationAvailable: d.CertificationAvailable,
		Active:                 d.Active,
	}
}

func (r *frameworkRepository) Put(ctx context.Context, framework *model.Framework) error {
	doc := &frameworkDocument{
		ID:                     framework.ID.String(),
		Name:                   framework.Name,
		Description:            framework.Description,
		FrameworkType:          framework.FrameworkType,
		Category:               framework.Category,
		IssuingBody:            framework.IssuingBody,
		StandardNumber:         framework.StandardNumber,
		CertificationAvailable: framework.CertificationAvailable,
		Active:                 framework.Active,
	}

	docRef := r.client.Collection(r.frameworksCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put framework", goerr.V("id", doc.ID))
	}

	return nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	iter := r.client.Collection(r.frameworksCollection()).
		Where("is_active", "==", true).
		OrderBy("category", firestore.Asc).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var frameworks []*model.Framework
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate frameworks")
		}

		var fwDoc frameworkDocument
		if err := doc.DataTo(&fwDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal framework")
		}

		frameworks = append(frameworks, fwDoc.toModel())
	}

	return frameworks, nil
}

func (r *frameworkRepository) ListByTenant(ctx context.Context, tenantID types.TenantID) ([]*model.TenantFramework, error) {
	frameworks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	subscribed := make(map[string]bool)
	subIter := r.client.Collection(r.subscriptionsCollection()).
		Where("tenant_id", "==", tenantID.String()).
		Where("enabled", "==", true).
		Documents(ctx)
	defer subIter.Stop()

	for {
		doc, err := subIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate subscriptions", goerr.V("tenantID", tenantID))
		}

		var subDoc subscriptionDocument
		if err := doc.DataTo(&subDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal subscription")
		}
		subscribed[subDoc.FrameworkID] = true
	}

	result := make([]*model.TenantFramework, 0, len(frameworks))
	for _, fw := range frameworks {
		result = append(result, &model.TenantFramework{
			Framework:  *fw,
			Subscribed: subscribed[fw.ID.String()],
		})
	}

	return result, nil
}

func (r *frameworkRepository) subscriptionDocID(tenantID types.TenantID, frameworkID types.FrameworkID) string {
	return fmt.Sprintf("%s:%s", tenantID, frameworkID)
}

func (r *frameworkRepository) Subscribe(ctx context.Context, tenantID types.TenantID, frameworkID types.FrameworkID) error {
	doc := &subscriptionDocument{
		TenantID:     tenantID.String(),
		FrameworkID:  frameworkID.String(),
		Enabled:      true,
		SubscribedAt: time.Now().UTC(),
	}

	docRef := r.client.Collection(r.subscriptionsCollection()).Doc(r.subscriptionDocID(tenantID, frameworkID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to subscribe to framework",
			goerr.V("tenantID", tenantID),
			goerr.V("frameworkID", frameworkID),
		)
	}

	return nil
}

func (r *frameworkRepository) CountSubscribed(ctx context.Context, tenantID types.TenantID) (int, error) {
	iter := r.client.Collection(r.subscriptionsCollection()).
		Where("tenant_id", "==", tenantID.String()).
		Where("enabled", "==", true).
		Select().
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count subscriptions", goerr.V("tenantID", tenantID))
		}
		count++
	}

	return count, nil
}

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

type riskDocument struct {
	ID            string    `firestore:"id"`
	TenantID      string    `firestore:"tenant_id"`
	RiskCode      string    `firestore:"risk_code"`
	Title         string    `firestore:"title"`
	Description   string    `firestore:"description"`
	Category      string    `firestore:"risk_category"`
	Likelihood    int       `firestore:"likelihood"`
	Impact        int       `firestore:"impact"`
	InherentScore int       `firestore:"inherent_risk_score"`
	Status        string    `firestore:"status"`
	Owner         string    `firestore:"owner"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`

	ThreatDescription         string     `firestore:"threat_description"`
	VulnerabilityDescription  string     `firestore:"vulnerability_description"`
	BusinessImpactDescription string     `firestore:"business_impact_description"`
	ReviewFrequency           string     `firestore:"review_frequency"`
	NextReviewDate            *time.Time `firestore:"next_review_date"`
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func toRiskDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		ID:            risk.ID.String(),
		TenantID:      risk.TenantID.String(),
		RiskCode:      risk.RiskCode,
		Title:         risk.Title,
		Description:   risk.Description,
		Category:      risk.Category.String(),
		Likelihood:    risk.Likelihood,
		Impact:        risk.Impact,
		InherentScore: risk.InherentScore,
		Status:        risk.Status.String(),
		Owner:         risk.Owner,
		CreatedAt:     risk.CreatedAt,
		UpdatedAt:     risk.UpdatedAt,

		ThreatDescription:         risk.ThreatDescription,
		VulnerabilityDescription:  risk.VulnerabilityDescription,
		BusinessImpactDescription: risk.BusinessImpactDescription,
		ReviewFrequency:           risk.ReviewFrequency.String(),
		NextReviewDate:            risk.NextReviewDate,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:            types.RiskID(d.ID),
		TenantID:      types.TenantID(d.TenantID),
		RiskCode:      d.RiskCode,
		Title:         d.Title,
		Description:   d.Description,
		Category:      types.RiskCategory(d.Category),
		Likelihood:    d.Likelihood,
		Impact:        d.Impact,
		InherentScore: d.InherentScore,
		Status:        types.RiskStatus(d.Status),
		Owner:         d.Owner,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,

		ThreatDescription:         d.ThreatDescription,
		VulnerabilityDescription:  d.VulnerabilityDescription,
		BusinessImpactDescription: d.BusinessImpactDescription,
		ReviewFrequency:           types.ReviewFrequency(d.ReviewFrequency),
		NextReviewDate:            d.NextReviewDate,
	}
}

// Create writes the risk as a single document. The write is atomic: a
// failure leaves no partial record behind.
func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	now := time.Now().UTC()
	created := *risk
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := toRiskDocument(&created)
	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "risk already exists", goerr.V("id", doc.ID))
		}
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *riskRepository) Get(ctx context.Context, tenantID types.TenantID, id types.RiskID) (*model.Risk, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var riskDoc riskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}

	// Document IDs are globally unique; the tenant check enforces isolation
	if riskDoc.TenantID != tenantID.String() {
		return nil, goerr.Wrap(ErrNotFound, "risk not found",
			goerr.V("id", id),
			goerr.V("tenantID", tenantID),
		)
	}

	return riskDoc.toModel(), nil
}

func (r *riskRepository) List(ctx context.Context, tenantID types.TenantID) ([]*model.Risk, error) {
	iter := r.client.Collection(r.collection()).
		Where("tenant_id", "==", tenantID.String()).
		OrderBy("inherent_risk_score", firestore.Desc).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks", goerr.V("tenantID", tenantID))
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk")
		}

		risks = append(risks, riskDoc.toModel())
	}

	return risks, nil
}

func (r *riskRepository) Count(ctx context.Context, tenantID types.TenantID) (int, error) {
	iter := r.client.Collection(r.collection()).
		Where("tenant_id", "==", tenantID.String()).
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
			return 0, goerr.Wrap(err, "failed to count risks", goerr.V("tenantID", tenantID))
		}
		count++
	}

	return count, nil
}

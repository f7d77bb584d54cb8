package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

type assessmentLogDocument struct {
	ID        string    `firestore:"id"`
	TenantID  string    `firestore:"tenant_id"`
	RiskTitle string    `firestore:"risk_title"`
	Degraded  bool      `firestore:"degraded"`
	Reason    string    `firestore:"reason"`
	CreatedAt time.Time `firestore:"created_at"`
}

type assessmentLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentLogRepository(client *firestore.Client) *assessmentLogRepository {
	return &assessmentLogRepository{client: client}
}

func (r *assessmentLogRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessment_logs"
	}
	return "assessment_logs"
}

func (r *assessmentLogRepository) Create(ctx context.Context, log *model.AssessmentLog) (*model.AssessmentLog, error) {
	created := *log
	if created.ID == "" {
		created.ID = model.NewAssessmentLogID()
	}
	created.CreatedAt = time.Now().UTC()

	doc := &assessmentLogDocument{
		ID:        string(created.ID),
		TenantID:  created.TenantID.String(),
		RiskTitle: created.RiskTitle,
		Degraded:  created.Degraded,
		Reason:    created.Reason,
		CreatedAt: created.CreatedAt,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment log", goerr.V("id", doc.ID))
	}

	return &created, nil
}

func (r *assessmentLogRepository) List(ctx context.Context, tenantID types.TenantID, limit int) ([]*model.AssessmentLog, error) {
	query := r.client.Collection(r.collection()).
		Where("tenant_id", "==", tenantID.String()).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var logs []*model.AssessmentLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessment logs", goerr.V("tenantID", tenantID))
		}

		var logDoc assessmentLogDocument
		if err := doc.DataTo(&logDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment log")
		}

		logs = append(logs, &model.AssessmentLog{
			ID:        model.AssessmentLogID(logDoc.ID),
			TenantID:  types.TenantID(logDoc.TenantID),
			RiskTitle: logDoc.RiskTitle,
			Degraded:  logDoc.Degraded,
			Reason:    logDoc.Reason,
			CreatedAt: logDoc.CreatedAt,
		})
	}

	return logs, nil
}

package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

const auditCollection = "auth_audit"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRecorder {
	return &AuditRepository{db: db}
}

// Record persists an auth event to the audit collection.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := bson.M{
		"subject":     event.Subject,
		"action":      string(event.Action),
		"success":     event.Success,
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	_, err := r.db.Collection(auditCollection).InsertOne(ctx, doc)
	return err
}

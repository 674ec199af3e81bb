package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// AuditTrail accepts auth events for asynchronous recording. Enqueue must not
// block the request path beyond channel backpressure.
type AuditTrail interface {
	Enqueue(event domain.AuditEvent)
}

// AuditRecorder persists audit events. Implemented by the mongo repository.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

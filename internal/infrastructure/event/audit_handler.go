package event

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditHandler writes every published event to the log.
// Register it without event types to receive everything.
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates an audit handler
func NewAuditHandler(l *zap.Logger) *AuditHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditHandler{logger: l.Named("events")}
}

// EventTypes returns nil so the handler is a wildcard subscriber
func (h *AuditHandler) EventTypes() []string {
	return nil
}

// Handle logs the event envelope
func (h *AuditHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	logger.WithLogger(ctx, h.logger).Info("domain event",
		zap.String("event_id", e.EventID().String()),
		zap.String("event_type", e.EventType()),
		zap.String("aggregate_type", e.AggregateType()),
		zap.String("aggregate_id", e.AggregateID()),
		zap.Time("occurred_at", e.OccurredAt()),
	)
	return nil
}

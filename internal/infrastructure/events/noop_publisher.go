package events

import (
	"context"

	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

// NoopPublisher logs events instead of sending them. It is used when no
// message bus is configured.
type NoopPublisher struct {
	logger *logging.Logger
}

func NewNoopPublisher(logger *logging.Logger) *NoopPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, subject string, _ any, dedupID string) error {
	p.logger.DebugContext(ctx, "event dropped, no bus configured", "subject", subject, "event_id", dedupID)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

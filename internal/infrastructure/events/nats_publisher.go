package events

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerEventID   = "Event-ID"
	headerEventType = "Event-Type"
)

type NATSConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	DuplicateWindow time.Duration
	MaxAge          time.Duration
	PublishTimeout  time.Duration
	CircuitBreaker  resilience.CircuitBreakerConfig
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:             nats.DefaultURL,
		StreamName:      "RL_FANTASY_EVENTS",
		SubjectPrefix:   "rlfantasy",
		MaxReconnects:   -1,
		ReconnectWait:   2 * time.Second,
		DuplicateWindow: 2 * time.Hour,
		MaxAge:          7 * 24 * time.Hour,
		PublishTimeout:  5 * time.Second,
		CircuitBreaker:  resilience.DefaultCircuitBreakerConfig(),
	}
}

// streamPublisher is the part of jetstream.JetStream the publisher needs.
type streamPublisher interface {
	PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Envelope wraps every payload published on the bus.
type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NATSPublisher publishes domain events to a JetStream stream. The dedup
// id doubles as the JetStream message id, so a retried publish inside the
// duplicate window is stored once.
type NATSPublisher struct {
	nc      *nats.Conn
	js      streamPublisher
	cfg     NATSConfig
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

func NewNATSPublisher(ctx context.Context, cfg NATSConfig, logger *logging.Logger) (*NATSPublisher, error) {
	cfg = normalizeNATSConfig(cfg)
	if logger == nil {
		logger = logging.Default()
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("rl-fantasy"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, crerr.Wrapf(err, "connect to nats url=%s", cfg.URL)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, crerr.Wrap(err, "create jetstream context")
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        cfg.StreamName,
		Description: "Fantasy scoring and roster events",
		Subjects:    []string{cfg.SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		Storage:     jetstream.FileStorage,
		MaxAge:      cfg.MaxAge,
		Duplicates:  cfg.DuplicateWindow,
	})
	if err != nil {
		nc.Close()
		return nil, crerr.Wrapf(err, "ensure stream %s", cfg.StreamName)
	}

	logger.Info("nats publisher ready", "url", nc.ConnectedUrl(), "stream", cfg.StreamName)
	return newNATSPublisher(nc, js, cfg, logger), nil
}

func newNATSPublisher(nc *nats.Conn, js streamPublisher, cfg NATSConfig, logger *logging.Logger) *NATSPublisher {
	return &NATSPublisher{
		nc:      nc,
		js:      js,
		cfg:     cfg,
		logger:  logger,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		now:     time.Now,
	}
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any, dedupID string) error {
	subject = strings.Trim(strings.TrimSpace(subject), ".")
	if subject == "" {
		return crerr.New("event subject is required")
	}
	dedupID = strings.TrimSpace(dedupID)

	msg, err := p.buildMessage(subject, payload, dedupID)
	if err != nil {
		return err
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("messaging.system", "nats"),
			attribute.String("messaging.destination", msg.Subject),
			attribute.String("messaging.message_id", dedupID),
		)
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	defer cancel()

	var opts []jetstream.PublishOpt
	if dedupID != "" {
		opts = append(opts, jetstream.WithMsgID(dedupID))
	}
	var ack *jetstream.PubAck
	err = p.breaker.Run(func() error {
		var pubErr error
		ack, pubErr = p.js.PublishMsg(publishCtx, msg, opts...)
		return pubErr
	}, isBusFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		p.logger.WarnContext(ctx, "nats circuit breaker rejected publish", "subject", subject, "state", p.breaker.State())
		return crerr.Wrap(err, "event bus is temporarily unavailable")
	}
	if err != nil {
		return crerr.Wrapf(err, "publish event subject=%s", msg.Subject)
	}

	p.logger.DebugContext(ctx, "event published",
		"subject", msg.Subject,
		"event_id", dedupID,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
		"duplicate", ack.Duplicate,
	)
	return nil
}

func (p *NATSPublisher) buildMessage(subject string, payload any, dedupID string) (*nats.Msg, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := sonic.Marshal(Envelope{
		EventID:    dedupID,
		EventType:  subject,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "marshal event subject=%s", subject)
	}

	msg := nats.NewMsg(p.cfg.SubjectPrefix + "." + subject)
	msg.Data = data
	msg.Header.Set(headerEventType, subject)
	if dedupID != "" {
		msg.Header.Set(headerEventID, dedupID)
	}
	return msg, nil
}

// isBusFailure ignores callers giving up.
func isBusFailure(err error) bool {
	return !stderrors.Is(err, context.Canceled)
}

// Close drains pending publishes before closing the connection.
func (p *NATSPublisher) Close() error {
	if p == nil || p.nc == nil {
		return nil
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return crerr.Wrap(err, "drain nats connection")
	}
	return nil
}

func normalizeNATSConfig(cfg NATSConfig) NATSConfig {
	defaults := DefaultNATSConfig()
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = defaults.URL
	}
	if strings.TrimSpace(cfg.StreamName) == "" {
		cfg.StreamName = defaults.StreamName
	}
	cfg.SubjectPrefix = strings.Trim(strings.TrimSpace(cfg.SubjectPrefix), ".")
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = defaults.SubjectPrefix
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = defaults.ReconnectWait
	}
	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = defaults.DuplicateWindow
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaults.MaxAge
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaults.PublishTimeout
	}
	return cfg
}

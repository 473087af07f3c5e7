package events

import (
	"context"
	"errors"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

type recordingStream struct {
	msgs  []*nats.Msg
	opts  int
	err   error
	calls int
}

func (s *recordingStream) PublishMsg(_ context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.msgs = append(s.msgs, msg)
	s.opts += len(opts)
	return &jetstream.PubAck{Stream: "RL_FANTASY_EVENTS", Sequence: uint64(s.calls)}, nil
}

func newTestPublisher(stream streamPublisher, breaker resilience.CircuitBreakerConfig) *NATSPublisher {
	cfg := normalizeNATSConfig(NATSConfig{SubjectPrefix: "rlfantasy.", CircuitBreaker: breaker})
	p := newNATSPublisher(nil, stream, cfg, logging.NewNop())
	p.now = func() time.Time { return time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC) }
	return p
}

func TestNATSPublisher_PublishEnvelope(t *testing.T) {
	stream := &recordingStream{}
	p := newTestPublisher(stream, resilience.CircuitBreakerConfig{})

	payload := map[string]any{"week_id": 3, "teams_scored": 12}
	err := p.Publish(t.Context(), "week.scores_published", payload, "week-3-1")
	require.NoError(t, err)
	require.Len(t, stream.msgs, 1)

	msg := stream.msgs[0]
	require.Equal(t, "rlfantasy.week.scores_published", msg.Subject)
	require.Equal(t, "week-3-1", msg.Header.Get(headerEventID))
	require.Equal(t, "week.scores_published", msg.Header.Get(headerEventType))
	require.Equal(t, 1, stream.opts, "dedup id must be passed as a message id option")

	var decoded struct {
		EventID    string         `json:"event_id"`
		EventType  string         `json:"event_type"`
		OccurredAt time.Time      `json:"occurred_at"`
		Payload    map[string]int `json:"payload"`
	}
	require.NoError(t, sonic.Unmarshal(msg.Data, &decoded))
	require.Equal(t, "week-3-1", decoded.EventID)
	require.Equal(t, 3, decoded.Payload["week_id"])
	require.True(t, decoded.OccurredAt.Equal(time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)))
}

func TestNATSPublisher_RequiresSubject(t *testing.T) {
	stream := &recordingStream{}
	p := newTestPublisher(stream, resilience.CircuitBreakerConfig{})

	require.Error(t, p.Publish(t.Context(), " . ", nil, ""))
	require.Zero(t, stream.calls)
}

func TestNATSPublisher_CircuitOpensAfterFailures(t *testing.T) {
	stream := &recordingStream{err: errors.New("no responders")}
	p := newTestPublisher(stream, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for range 2 {
		require.Error(t, p.Publish(t.Context(), "roster.transfer_executed", nil, ""))
	}
	err := p.Publish(t.Context(), "roster.transfer_executed", nil, "")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.Equal(t, 2, stream.calls, "open circuit must not reach the bus")
}

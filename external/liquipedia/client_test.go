package liquipedia

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/rl-fantasy/internal/usecase"
)

func wikitextPayload(t *testing.T, text string) []byte {
	t.Helper()
	raw, err := sonic.Marshal(map[string]any{
		"parse": map[string]any{
			"title":    "League Play",
			"wikitext": map[string]string{"*": text},
		},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestClient_FetchResults(t *testing.T) {
	var gotQuery, gotAgent string
	payload := wikitextPayload(t, sampleWikitext)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL + "/rocketleague/api.php",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})

	results, err := client.FetchResults(t.Context())
	if err != nil {
		t.Fatalf("fetch results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if gotAgent != defaultUserAgent {
		t.Fatalf("expected user agent %q, got %q", defaultUserAgent, gotAgent)
	}
	wantQuery := "action=parse&format=json&page=Icelandic_Esports_League%2FSeason_11%2FLeague_Play&prop=wikitext"
	if gotQuery != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, gotQuery)
	}
}

func TestClient_APIErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":"missingtitle","info":"The page you specified doesn't exist."}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Page: "Missing", Logger: logging.NewNop()})
	if _, err := client.FetchResults(t.Context()); err == nil {
		t.Fatalf("expected api error")
	}
}

func TestClient_CircuitOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for range 2 {
		if _, err := client.FetchResults(t.Context()); err == nil {
			t.Fatalf("expected upstream error")
		}
	}
	_, err := client.FetchResults(t.Context())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected open circuit to skip upstream, got %d calls", calls.Load())
	}
}

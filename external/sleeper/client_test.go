package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/draft-assistant/internal/platform/resilience"
	"github.com/riskibarqy/draft-assistant/internal/usecase"
)

const samplePlayersPayload = `{
	"4984": {"player_id": "4984", "active": true, "position": "QB", "fantasy_positions": ["QB"], "full_name": "Josh Allen", "first_name": "Josh", "last_name": "Allen", "team": "BUF", "adp": 22.5},
	"KC": {"player_id": "KC", "active": true, "position": "DEF", "fantasy_positions": ["DEF"], "first_name": "Kansas City", "last_name": "Chiefs", "team": "KC"},
	"1466": {"player_id": "1466", "active": false, "position": "TE", "fantasy_positions": null, "full_name": "Retired Tight End", "team": null},
	"96": {"active": true, "position": "wr", "fantasy_positions": ["WR"], "last_name": "Lastnameonly"}
}`

func newTestClient(t *testing.T, baseURL string, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	c := NewClient(ClientConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		CircuitBreaker: breaker,
	})
	c.backoff = func(int) time.Duration { return time.Millisecond }
	return c
}

func TestClient_FetchRecords_DecodesAndOrders(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePlayersPayload))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 0, resilience.CircuitBreakerConfig{})
	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	if gotPath != "/players/nfl" {
		t.Fatalf("unexpected request path: %s", gotPath)
	}

	wantIDs := []string{"96", "1466", "4984", "KC"}
	if len(records) != len(wantIDs) {
		t.Fatalf("expected %d records, got %d", len(wantIDs), len(records))
	}
	for i, id := range wantIDs {
		if records[i].ExternalID != id {
			t.Fatalf("record %d: expected id %s, got %s", i, id, records[i].ExternalID)
		}
	}

	allen := records[2]
	if allen.FullName != "Josh Allen" || !allen.Active || allen.Position != "QB" {
		t.Fatalf("unexpected mapped record: %+v", allen)
	}
	if allen.ADP == nil || *allen.ADP != 22.5 {
		t.Fatalf("expected adp 22.5, got %v", allen.ADP)
	}
	if records[1].ADP != nil || len(records[1].FantasyPositions) != 0 {
		t.Fatalf("expected empty optional fields, got %+v", records[1])
	}
	if records[0].Position != "wr" || records[0].LastName != "Lastnameonly" {
		t.Fatalf("expected position kept verbatim and key fallback id, got %+v", records[0])
	}
}

func TestClient_FetchRecords_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(samplePlayersPayload))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 2, resilience.CircuitBreakerConfig{})
	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestClient_FetchRecords_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown sport"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 3, resilience.CircuitBreakerConfig{})
	if _, err := client.FetchRecords(context.Background()); err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestClient_FetchRecords_MalformedPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["not", "an", "object"]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 0, resilience.CircuitBreakerConfig{})
	if _, err := client.FetchRecords(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_FetchRecords_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	if _, err := client.FetchRecords(context.Background()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := client.FetchRecords(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable while circuit is open, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected open circuit to skip the upstream, got %d calls", got)
	}
}

func TestClient_FetchRecords_RateLimitedRetryRespectsDeadline(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:           srv.URL,
		MaxRetries:        3,
		RequestsPerSecond: 0.01,
	})
	client.backoff = func(int) time.Duration { return time.Millisecond }

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if _, err := client.FetchRecords(ctx); err == nil {
		t.Fatalf("expected rate limiter to stop the retry")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected only the first attempt to reach the server, got %d", got)
	}
}

func TestClient_FetchRecords_LimiterPacesRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:           srv.URL,
		MaxRetries:        2,
		RequestsPerSecond: 10,
	})
	var backoffCalls atomic.Int32
	client.backoff = func(int) time.Duration {
		backoffCalls.Add(1)
		return time.Millisecond
	}

	started := time.Now()
	if _, err := client.FetchRecords(context.Background()); err == nil {
		t.Fatalf("expected failure after retries")
	}
	elapsed := time.Since(started)

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	if got := backoffCalls.Load(); got != 0 {
		t.Fatalf("expected limiter to replace the backoff, backoff used %d times", got)
	}
	// two waits of 100ms each at 10 rps
	if elapsed < 150*time.Millisecond {
		t.Fatalf("expected retries to be paced by the limiter, took %s", elapsed)
	}
}

func TestClient_FetchRecords_KeepsPositionCase(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"7": {"player_id": "7", "active": true, "position": " qb ", "fantasy_positions": ["QB"], "full_name": "Lower Case"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 0, resilience.CircuitBreakerConfig{})
	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	if len(records) != 1 || records[0].Position != "qb" {
		t.Fatalf("expected trimmed lowercase position, got %+v", records)
	}
}

func TestClient_FetchRecords_UsesConfiguredSport(t *testing.T) {
	t.Parallel()

	adp := 12.5
	team := "KC"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/nba" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = jsoniter.NewEncoder(w).Encode(PlayersResponse{
			"1": {PlayerID: "1", Active: true, Position: "PG", FantasyPositions: []string{"PG"}, FullName: "Point Guard", Team: &team, ADP: &adp},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL + "/", Sport: " NBA "})
	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	if len(records) != 1 || records[0].Position != "PG" || records[0].ADP == nil || *records[0].ADP != adp {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLessExternalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		left, right string
		want        bool
	}{
		{left: "96", right: "1466", want: true},
		{left: "1466", right: "96", want: false},
		{left: "4984", right: "KC", want: true},
		{left: "ARI", right: "4984", want: false},
		{left: "ARI", right: "KC", want: true},
	}

	for _, tc := range tests {
		if got := lessExternalID(tc.left, tc.right); got != tc.want {
			t.Fatalf("lessExternalID(%q, %q) = %v, want %v", tc.left, tc.right, got, tc.want)
		}
	}
}

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/finbook/internal/adapter/http/middleware"
)

type fakeIdempotencyStore struct {
	responses map[string][]byte
	inFlight  map[string]bool
	updates   int
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{
		responses: make(map[string][]byte),
		inFlight:  make(map[string]bool),
	}
}

func (s *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if resp, ok := s.responses[key]; ok {
		return true, resp, nil
	}
	if s.inFlight[key] {
		return true, nil, nil
	}
	s.inFlight[key] = true
	return false, nil, nil
}

func (s *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.responses[key] = append([]byte(nil), response...)
	s.updates++
	return nil
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()

	var calls int
	handler := middleware.NewIdempotencyMiddleware(store, time.Hour).Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"entry-1"}`))
		}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
	if store.updates != 1 {
		t.Errorf("expected the response to be stored, got %d updates", store.updates)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if calls != 1 {
		t.Errorf("replay must not reach the handler, got %d calls", calls)
	}
	if rec.Header().Get(middleware.IdempotencyReplayHeader) != "true" {
		t.Error("expected the replay marker header")
	}
	if rec.Body.String() != `{"id":"entry-1"}` {
		t.Errorf("expected the stored body, got %q", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_InFlightKeyPassesThrough(t *testing.T) {
	store := newFakeIdempotencyStore()
	store.inFlight["key-1"] = true

	var calls int
	handler := middleware.NewIdempotencyMiddleware(store, time.Hour).Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte("{}"))
		}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if calls != 1 {
		t.Errorf("in-flight key must not block the request, got %d calls", calls)
	}
	if rec.Header().Get(middleware.IdempotencyReplayHeader) != "" {
		t.Error("in-flight request must not be marked as a replay")
	}
}

func TestIdempotencyMiddleware_SkipsReadsAndFailures(t *testing.T) {
	store := newFakeIdempotencyStore()

	handler := middleware.NewIdempotencyMiddleware(store, time.Hour).Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusBadRequest)
			}
		}))

	// Reads bypass the store entirely.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-get")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if store.inFlight["key-get"] {
		t.Error("GET must not claim an idempotency key")
	}

	// Failed responses are not stored for replay.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-bad")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if store.updates != 0 {
		t.Errorf("a 400 must not be stored, got %d updates", store.updates)
	}
}

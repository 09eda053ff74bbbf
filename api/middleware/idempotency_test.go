package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
)

type fakeStore struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key], _ = value.(string)
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key], _ = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func buyerRequest(actor types.Actor, body, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/compradores/product/p1/review/", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	return req.WithContext(WithActor(req.Context(), actor))
}

func TestIdempotencyWithoutHeaderRunsEveryTime(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	actor := types.Actor{UserID: uuid.New()}
	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(actor, `{"rating":5}`, ""))
	}
	if calls != 2 {
		t.Fatalf("expected handler to run twice, ran %d", calls)
	}
	if len(store.data) != 0 {
		t.Fatalf("nothing should be stored without a key")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, PurchaseIdempotencyTTL, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	actor := types.Actor{UserID: uuid.New()}
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, buyerRequest(actor, `{"rating":5}`, "abc"))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected first response 201 got %d", first.Code)
	}

	replay := httptest.NewRecorder()
	handler.ServeHTTP(replay, buyerRequest(actor, `{"rating":5}`, "abc"))
	if replay.Code != http.StatusCreated {
		t.Fatalf("expected replay status 201 got %d", replay.Code)
	}
	if replay.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replay marker header")
	}
	if strings.TrimSpace(replay.Body.String()) != `{"ok":true}` {
		t.Fatalf("expected stored body got %s", replay.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
	for _, ttl := range store.ttls {
		if ttl != PurchaseIdempotencyTTL {
			t.Fatalf("expected ttl %v got %v", PurchaseIdempotencyTTL, ttl)
		}
	}
}

func TestIdempotencyKeysAreScopedPerUser(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(types.Actor{UserID: uuid.New()}, `{}`, "same"))
	handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(types.Actor{UserID: uuid.New()}, `{}`, "same"))
	if calls != 2 {
		t.Fatalf("different users must not share a key, handler ran %d times", calls)
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))

	actor := types.Actor{UserID: uuid.New()}
	handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(actor, `{"rating":9}`, "retry"))
	handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(actor, `{"rating":9}`, "retry"))
	if calls != 2 {
		t.Fatalf("failed attempts should be retried, handler ran %d times", calls)
	}
}

func TestIdempotencyDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	handler := Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	actor := types.Actor{UserID: uuid.New()}
	handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(actor, `{"rating":5}`, "xyz"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, buyerRequest(actor, `{"rating":1}`, "xyz"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected error code %s got %s", pkgerrors.CodeIdempotency, payload.Error.Code)
	}
}

func TestIdempotencyRejectsDuplicateWhileFirstRuns(t *testing.T) {
	store := newFakeStore()
	actor := types.Actor{UserID: uuid.New()}
	calls := 0
	duplicate := httptest.NewRecorder()

	var handler http.Handler
	handler = Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			handler.ServeHTTP(duplicate, buyerRequest(actor, `{"rating":5}`, "dup"))
		}
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, buyerRequest(actor, `{"rating":5}`, "dup"))

	if first.Code != http.StatusCreated {
		t.Fatalf("expected first response 201 got %d", first.Code)
	}
	if duplicate.Code != http.StatusConflict {
		t.Fatalf("expected in-flight duplicate to get 409, got %d", duplicate.Code)
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}

	replay := httptest.NewRecorder()
	handler.ServeHTTP(replay, buyerRequest(actor, `{"rating":5}`, "dup"))
	if replay.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected completed request to be replayed")
	}
}

func TestIdempotencyReleasesKeyAfterPanic(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		w.WriteHeader(http.StatusCreated)
	}))

	actor := types.Actor{UserID: uuid.New()}
	func() {
		defer func() { _ = recover() }()
		handler.ServeHTTP(httptest.NewRecorder(), buyerRequest(actor, `{}`, "panic"))
	}()
	if len(store.data) != 0 {
		t.Fatalf("expected reservation to be released, store has %v", store.data)
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, buyerRequest(actor, `{}`, "panic"))
	if resp.Code != http.StatusCreated || calls != 2 {
		t.Fatalf("expected retry to run, got status %d after %d calls", resp.Code, calls)
	}
}

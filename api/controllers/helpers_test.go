package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/artesanos-backend/api/middleware"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type actionEnvelope struct {
	Data struct {
		Message    string          `json:"message"`
		RedirectTo string          `json:"redirect_to"`
		Data       json.RawMessage `json:"data"`
	} `json:"data"`
}

type errorEnvelope struct {
	Error types.APIError `json:"error"`
}

func buyerActor() types.Actor {
	return types.Actor{UserID: uuid.New(), ProfileID: uuid.New(), Username: "ana", Role: enums.RoleBuyer}
}

func sellerActor() types.Actor {
	return types.Actor{UserID: uuid.New(), ProfileID: uuid.New(), Username: "tallerista", Role: enums.RoleArtisan}
}

// newRequest builds a request carrying the actor and chi URL params.
func newRequest(t *testing.T, method, target string, body any, actor types.Actor, params map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middleware.WithActor(ctx, actor))
}

func decodeAction(t *testing.T, resp *httptest.ResponseRecorder) actionEnvelope {
	t.Helper()
	var env actionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	return env
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return env
}

func redirectDetail(t *testing.T, env errorEnvelope) string {
	t.Helper()
	details, ok := env.Error.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %#v", env.Error.Details)
	}
	path, _ := details["redirect_to"].(string)
	return path
}

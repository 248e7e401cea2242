package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recyloop/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakeOrchestrator struct {
	Orchestrator

	createForm func(ctx context.Context, authID string, input types.CreateFormInput) (*types.FormSubmission, error)
}

func (f *fakeOrchestrator) CreateForm(ctx context.Context, authID string, input types.CreateFormInput) (*types.FormSubmission, error) {
	return f.createForm(ctx, authID, input)
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	return f.err
}

func newTestService() *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Service{
		logger: logger,
		config: &types.Config{Environment: "test"},
	}
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind types.ErrorKind
		want int
	}{
		{types.ErrorKindNotFound, http.StatusNotFound},
		{types.ErrorKindForbidden, http.StatusForbidden},
		{types.ErrorKindUnauthorized, http.StatusUnauthorized},
		{types.ErrorKindInvalid, http.StatusBadRequest},
		{types.ErrorKindStorage, http.StatusBadGateway},
		{types.ErrorKindPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusForKind(tt.kind); got != tt.want {
			t.Errorf("statusForKind(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestRespondErrorBody(t *testing.T) {
	s := newTestService()

	rec := httptest.NewRecorder()
	s.respondError(rec, types.ErrFormNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}

	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	if body.Error != types.ErrorKindNotFound {
		t.Errorf("got error kind %s, want %s", body.Error, types.ErrorKindNotFound)
	}
	if body.Message == "" {
		t.Error("expected a display message")
	}
}

func TestRespondErrorUntyped(t *testing.T) {
	s := newTestService()

	rec := httptest.NewRecorder()
	s.respondError(rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestService()

	s.db = &fakePinger{}
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthy: got status %d, want 200", rec.Code)
	}

	s.db = &fakePinger{err: errors.New("down")}
	rec = httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded: got status %d, want 503", rec.Code)
	}
}

func TestHandleCreateFormRejectsUnknownResidue(t *testing.T) {
	s := newTestService()
	s.orchestrator = &fakeOrchestrator{
		createForm: func(context.Context, string, types.CreateFormInput) (*types.FormSubmission, error) {
			t.Fatal("orchestrator should not be called for invalid input")
			return nil, nil
		},
	}

	body := `{"residues":{"URANIUM":{"amount":1}}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/forms", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), contextKeyAuthID, "auth-user"))

	rec := httptest.NewRecorder()
	s.handleCreateForm(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestHandleCreateFormNegativeAmount(t *testing.T) {
	s := newTestService()
	s.orchestrator = &fakeOrchestrator{
		createForm: func(context.Context, string, types.CreateFormInput) (*types.FormSubmission, error) {
			return nil, types.ErrNegativeAmount
		},
	}

	body := `{"residues":{"PLASTIC":{"amount":-5,"invoiceFileNames":["invoice1.pdf"]}}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/forms", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), contextKeyAuthID, "auth-user"))

	rec := httptest.NewRecorder()
	s.handleCreateForm(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}

	var resp errorBody
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	if resp.Error != types.ErrorKindInvalid {
		t.Errorf("got error kind %s, want %s", resp.Error, types.ErrorKindInvalid)
	}
}

func TestHandleCreateForm(t *testing.T) {
	s := newTestService()

	var gotAuthID string
	s.orchestrator = &fakeOrchestrator{
		createForm: func(_ context.Context, authID string, input types.CreateFormInput) (*types.FormSubmission, error) {
			gotAuthID = authID
			return &types.FormSubmission{
				Form:    &types.Form{ID: "form-1", UserID: "user-1"},
				Uploads: []types.ResidueUploads{},
			}, nil
		},
	}

	body := `{"walletAddress":"0xabc","residues":{"PLASTIC":{"amount":10,"invoiceFileNames":["invoice1.pdf"]}}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/forms", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), contextKeyAuthID, "auth-user"))

	rec := httptest.NewRecorder()
	s.handleCreateForm(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201", rec.Code)
	}
	if gotAuthID != "auth-user" {
		t.Errorf("orchestrator called with auth id %q, want %q", gotAuthID, "auth-user")
	}

	var submission types.FormSubmission
	if err := json.NewDecoder(rec.Body).Decode(&submission); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	if submission.Form.ID != "form-1" {
		t.Errorf("got form id %q, want form-1", submission.Form.ID)
	}
}

func TestRequireAdmin(t *testing.T) {
	s := newTestService()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := s.RequireAdmin(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/aggregates", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyGroups, []string{"admin"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin: got status %d, want 204", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/aggregates", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyGroups, []string{"members"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin: got status %d, want 403", rec.Code)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	s := newTestService()

	handler := s.StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/v1/forms/", http.StatusMovedPermanently},
		{http.MethodPost, "/v1/forms/", http.StatusPermanentRedirect},
		{http.MethodPut, "/v1/forms/abc/authorization/", http.StatusPermanentRedirect},
		{http.MethodGet, "/v1/forms", http.StatusNoContent},
		{http.MethodGet, "/", http.StatusNoContent},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s: got status %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}

		if tt.want == http.StatusMovedPermanently || tt.want == http.StatusPermanentRedirect {
			location := rec.Header().Get("Location")
			if strings.HasSuffix(location, "/") {
				t.Errorf("%s %s: redirect location %q keeps the trailing slash", tt.method, tt.path, location)
			}
		}
	}
}

func TestAccessTokenFromRequestBearer(t *testing.T) {
	s := newTestService()

	req := httptest.NewRequest(http.MethodGet, "/v1/forms", nil)
	req.Header.Set("Authorization", "Bearer token-value")

	token, ok := s.accessTokenFromRequest(req)
	if !ok || token != "token-value" {
		t.Errorf("got (%q, %v), want (token-value, true)", token, ok)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/forms", nil)
	if _, ok := s.accessTokenFromRequest(req); ok {
		t.Error("expected no token without header or cookie")
	}
}

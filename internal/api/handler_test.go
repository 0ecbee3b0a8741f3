package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raye/pagesmith/server/internal/compose"
	"github.com/raye/pagesmith/server/internal/github"
	"github.com/raye/pagesmith/server/internal/publish"
	"github.com/raye/pagesmith/server/internal/store"
)

func init() {
	log.SetOutput(io.Discard)
}

type fakePublisher struct {
	res    *publish.Result
	err    error
	called bool
	got    publish.Request
}

func (f *fakePublisher) Publish(_ context.Context, req publish.Request) (*publish.Result, error) {
	f.called = true
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

type fakeValidator struct {
	res github.ValidateResult
}

func (f *fakeValidator) Validate(_ context.Context, _ string) github.ValidateResult {
	return f.res
}

func testHandler(pub *fakePublisher, val *fakeValidator) (*Handler, *store.Store) {
	st := store.NewStore()
	if pub == nil {
		pub = &fakePublisher{res: &publish.Result{Success: true}}
	}
	if val == nil {
		val = &fakeValidator{}
	}
	return NewHandlerWith(st, pub, val), st
}

func TestHandler_Health(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Health: code %d", rec.Code)
	}
	if body := rec.Body.String(); body != "ok" {
		t.Errorf("Health: body %q", body)
	}
}

func TestHandler_Connect(t *testing.T) {
	h, st := testHandler(nil, nil)
	body := bytes.NewBufferString(`{"organizationId":"org1","token":"tk"}`)
	req := httptest.NewRequest(http.MethodPost, "/connect", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Connect(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Connect: code %d body %s", rec.Code, rec.Body.String())
	}
	if tok, ok := st.ResolveAccessToken("org1"); !ok || tok != "tk" {
		t.Fatalf("credential not stored: %q %v", tok, ok)
	}
}

func TestHandler_Connect_orgFromHeader(t *testing.T) {
	h, st := testHandler(nil, nil)
	body := bytes.NewBufferString(`{"token":"tk"}`)
	req := httptest.NewRequest(http.MethodPost, "/connect", body)
	req.Header.Set("X-Pagesmith-Org", "acme")
	rec := httptest.NewRecorder()
	h.Connect(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Connect: code %d", rec.Code)
	}
	if _, ok := st.ResolveAccessToken("acme"); !ok {
		t.Fatal("credential not stored under header org")
	}
}

func TestHandler_Connect_rejectGet(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	rec := httptest.NewRecorder()
	h.Connect(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Connect GET: code %d", rec.Code)
	}
}

func TestHandler_Connect_badJSON(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/connect", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.Connect(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Connect bad JSON: code %d", rec.Code)
	}
}

func TestHandler_Connect_missingFields(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/connect", bytes.NewBufferString(`{"organizationId":"o"}`))
	rec := httptest.NewRecorder()
	h.Connect(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Connect missing fields: code %d", rec.Code)
	}
}

func publishBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(PublishRequest{
		OrganizationID: "org1",
		App:            compose.AppMeta{Name: "Acme"},
		Files:          []compose.GeneratedFile{{Path: "a.tsx", Content: "x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(body)
}

func TestHandler_Publish(t *testing.T) {
	pub := &fakePublisher{res: &publish.Result{
		Success: true, RepoURL: "https://github.com/o/acme", DefaultBranch: "main", FileCount: 9,
	}}
	h, _ := testHandler(pub, nil)
	req := httptest.NewRequest(http.MethodPost, "/publish", publishBody(t))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Publish(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Publish: code %d body %s", rec.Code, rec.Body.String())
	}
	if !pub.called || pub.got.OrgID != "org1" || pub.got.App.Name != "Acme" {
		t.Errorf("publisher request: %+v", pub.got)
	}
	var res publish.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Success || res.FileCount != 9 {
		t.Errorf("response: %+v", res)
	}
}

func TestHandler_Publish_notConnected(t *testing.T) {
	pub := &fakePublisher{err: fmt.Errorf("publish failed: %w", publish.ErrNotConnected)}
	h, _ := testHandler(pub, nil)
	req := httptest.NewRequest(http.MethodPost, "/publish", publishBody(t))
	rec := httptest.NewRecorder()
	h.Publish(rec, req)
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Publish not connected: code %d", rec.Code)
	}
}

func TestHandler_Publish_publisherError(t *testing.T) {
	pub := &fakePublisher{err: fmt.Errorf("publish failed: commit to o/r: boom")}
	h, _ := testHandler(pub, nil)
	req := httptest.NewRequest(http.MethodPost, "/publish", publishBody(t))
	rec := httptest.NewRecorder()
	h.Publish(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Publish error: code %d", rec.Code)
	}
}

func TestHandler_Publish_rejectGet(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/publish", nil)
	rec := httptest.NewRecorder()
	h.Publish(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Publish GET: code %d", rec.Code)
	}
}

func TestHandler_Publish_badJSON(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/publish", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	h.Publish(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Publish bad JSON: code %d", rec.Code)
	}
}

func TestHandler_Validate(t *testing.T) {
	val := &fakeValidator{res: github.ValidateResult{Valid: true, FullName: "o/r"}}
	h, _ := testHandler(nil, val)
	req := httptest.NewRequest(http.MethodGet, "/validate?url=https://github.com/o/r", nil)
	rec := httptest.NewRecorder()
	h.Validate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Validate: code %d", rec.Code)
	}
	var res github.ValidateResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Valid || res.FullName != "o/r" {
		t.Errorf("response: %+v", res)
	}
}

func TestHandler_Validate_invalidStillOK(t *testing.T) {
	val := &fakeValidator{res: github.ValidateResult{Error: "repository o/r not found"}}
	h, _ := testHandler(nil, val)
	req := httptest.NewRequest(http.MethodGet, "/validate?url=https://github.com/o/r", nil)
	rec := httptest.NewRecorder()
	h.Validate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Validate should stay 200: code %d", rec.Code)
	}
	var res github.ValidateResult
	json.NewDecoder(rec.Body).Decode(&res)
	if res.Valid || res.Error == "" {
		t.Errorf("response: %+v", res)
	}
}

func TestHandler_Validate_missingURL(t *testing.T) {
	h, _ := testHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/validate", nil)
	rec := httptest.NewRecorder()
	h.Validate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Validate missing url: code %d", rec.Code)
	}
}

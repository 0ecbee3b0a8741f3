package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractOrg(t *testing.T) {
	defaultOrg := "default"
	mw := ExtractOrg(defaultOrg)
	var gotOrg string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrg = OrgFromRequest(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(next)

	t.Run("health bypass", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if gotOrg != "" {
			t.Errorf("health should not set org, got %q", gotOrg)
		}
	})

	t.Run("basic auth sets org", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/publish", nil)
		req.SetBasicAuth("acme", "secret")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if gotOrg != "acme" {
			t.Errorf("got org %q", gotOrg)
		}
	})

	t.Run("no auth uses default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/publish", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if gotOrg != defaultOrg {
			t.Errorf("got org %q", gotOrg)
		}
	})
}

func TestOrgFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if OrgFromRequest(req) != "" {
		t.Fatal("expected empty without header")
	}
	req.Header.Set("X-Pagesmith-Org", "acme")
	if OrgFromRequest(req) != "acme" {
		t.Fatal("expected acme")
	}
}

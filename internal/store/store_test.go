package store

import (
	"os"
	"testing"
)

func TestStore_ResolveAccessToken(t *testing.T) {
	os.Unsetenv("PAGESMITH_GITHUB_TOKEN")
	s := NewStore()

	if _, ok := s.ResolveAccessToken("org1"); ok {
		t.Fatal("expected no token for unconnected org")
	}

	s.SetCredential("org1", "tk-1")
	tok, ok := s.ResolveAccessToken("org1")
	if !ok || tok != "tk-1" {
		t.Fatalf("got %q ok=%v", tok, ok)
	}
	if _, ok := s.ResolveAccessToken("org2"); ok {
		t.Fatal("org2 should not resolve")
	}
}

func TestStore_ResolveAccessToken_envFallback(t *testing.T) {
	t.Setenv("PAGESMITH_GITHUB_TOKEN", "env-tk")
	s := NewStore()
	tok, ok := s.ResolveAccessToken("any-org")
	if !ok || tok != "env-tk" {
		t.Fatalf("env fallback: got %q ok=%v", tok, ok)
	}
	// Stored credential still wins over the env var.
	s.SetCredential("any-org", "stored")
	tok, _ = s.ResolveAccessToken("any-org")
	if tok != "stored" {
		t.Fatalf("stored token should win, got %q", tok)
	}
}

func TestStore_PublishedRepo(t *testing.T) {
	s := NewStore()
	if got := s.PublishedRepo("o", "app"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	s.SetPublishedRepo("o", "app", "https://github.com/o/app")
	if got := s.PublishedRepo("o", "app"); got != "https://github.com/o/app" {
		t.Fatalf("got %q", got)
	}
	if got := s.PublishedRepo("o", "other"); got != "" {
		t.Fatalf("other app should be empty, got %q", got)
	}
}

package store

import (
	"os"
	"sync"
	"time"
)

// Credential is one organization's GitHub connection.
type Credential struct {
	Token     string
	LinkedAt  int64
	UpdatedAt int64
}

// Record is where an app was last published.
type Record struct {
	RepoURL   string
	UpdatedAt int64
}

type Store struct {
	mu      sync.RWMutex
	creds   map[string]*Credential
	records map[string]*Record // keyed orgID + "/" + appName
}

func NewStore() *Store {
	return &Store{
		creds:   make(map[string]*Credential),
		records: make(map[string]*Record),
	}
}

func (s *Store) SetCredential(orgID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixMilli()
	c := s.creds[orgID]
	if c == nil {
		c = &Credential{LinkedAt: now}
		s.creds[orgID] = c
	}
	c.Token = token
	c.UpdatedAt = now
}

// ResolveAccessToken returns the org's token. ok=false means the org is not
// connected and the caller must stop before any network call. The
// PAGESMITH_GITHUB_TOKEN env var serves any org when set.
func (s *Store) ResolveAccessToken(orgID string) (string, bool) {
	s.mu.RLock()
	c := s.creds[orgID]
	s.mu.RUnlock()
	if c != nil && c.Token != "" {
		return c.Token, true
	}
	if t := os.Getenv("PAGESMITH_GITHUB_TOKEN"); t != "" {
		return t, true
	}
	return "", false
}

func (s *Store) PublishedRepo(orgID, app string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := s.records[orgID+"/"+app]; r != nil {
		return r.RepoURL
	}
	return ""
}

func (s *Store) SetPublishedRepo(orgID, app, repoURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[orgID+"/"+app] = &Record{RepoURL: repoURL, UpdatedAt: time.Now().UnixMilli()}
}

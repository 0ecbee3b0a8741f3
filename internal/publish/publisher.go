package publish

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/raye/pagesmith/server/internal/compose"
	"github.com/raye/pagesmith/server/internal/github"
)

// ErrNotConnected means the organization has no GitHub credential; the
// publish stops before any network call.
var ErrNotConnected = errors.New("organization is not connected to GitHub; connect an account before publishing")

// TokenResolver supplies an organization's GitHub credential. Implemented by
// *store.Store; inject a fake in tests.
type TokenResolver interface {
	ResolveAccessToken(orgID string) (string, bool)
}

// RecordStore persists where an app was last published.
type RecordStore interface {
	PublishedRepo(orgID, app string) string
	SetPublishedRepo(orgID, app, repoURL string)
}

// Remote is the GitHub surface the publisher drives. Implemented by *github.Client.
type Remote interface {
	Provision(ctx context.Context, token, name, description string, private bool) (*github.Repo, error)
	Commit(ctx context.Context, token string, repo *github.Repo, files []compose.File, message string, opts github.CommitOptions) (*github.CommitResult, error)
}

type Request struct {
	OrgID    string                  `json:"organizationId"`
	App      compose.AppMeta         `json:"app"`
	Private  bool                    `json:"private"`
	Files    []compose.GeneratedFile `json:"files"`
	Scaffold []compose.ScaffoldFile  `json:"scaffold,omitempty"`
	Message  string                  `json:"message,omitempty"`
}

type Result struct {
	Success       bool     `json:"success"`
	RepoURL       string   `json:"repoUrl"`
	CloneURL      string   `json:"cloneUrl"`
	DefaultBranch string   `json:"defaultBranch"`
	FileCount     int      `json:"fileCount"`
	CommitSHA     string   `json:"commitSha"`
	Preexisting   bool     `json:"preexisting"`
	SkippedPaths  []string `json:"skippedPaths,omitempty"`
}

type Publisher struct {
	tokens  TokenResolver
	records RecordStore
	remote  Remote
	opts    github.CommitOptions
}

func New(tokens TokenResolver, records RecordStore, remote Remote, opts github.CommitOptions) *Publisher {
	return &Publisher{tokens: tokens, records: records, remote: remote, opts: opts}
}

// Publish runs the whole flow: resolve credential, provision the repository,
// compose the file set, ensure an entry point, commit, and record the result.
// All-or-nothing from the caller's viewpoint: any stage failure surfaces as a
// single wrapped error.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	if req.App.Name == "" {
		return nil, errors.New("publish failed: app name is required")
	}
	if len(req.Files) == 0 && len(req.Scaffold) == 0 {
		return nil, errors.New("publish failed: no files to publish")
	}
	token, ok := p.tokens.ResolveAccessToken(req.OrgID)
	if !ok {
		return nil, fmt.Errorf("publish failed: %w", ErrNotConnected)
	}

	repo, err := p.remote.Provision(ctx, token, req.App.Slug(), req.App.Description, req.Private)
	if err != nil {
		return nil, fmt.Errorf("publish failed: provision repository: %w", err)
	}

	files := compose.Compose(req.App, req.Files, req.Scaffold)
	files = compose.EnsureEntryPoint(files)

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Pagesmith: publish %s", req.App.Name)
	}
	commit, err := p.remote.Commit(ctx, token, repo, files, message, p.opts)
	if err != nil {
		return nil, fmt.Errorf("publish failed: commit to %s: %w", repo.FullName, err)
	}
	if len(commit.SkippedPaths) > 0 {
		log.Printf("[Pagesmith] publish to %s dropped %d files: %v", repo.FullName, len(commit.SkippedPaths), commit.SkippedPaths)
	}

	if p.records != nil && p.records.PublishedRepo(req.OrgID, req.App.Slug()) != repo.HTMLURL {
		p.records.SetPublishedRepo(req.OrgID, req.App.Slug(), repo.HTMLURL)
	}

	log.Printf("[Pagesmith] published %d files to %s@%s (%s)", commit.FileCount, repo.FullName, repo.DefaultBranch, commit.SHA)
	return &Result{
		Success:       true,
		RepoURL:       repo.HTMLURL,
		CloneURL:      repo.CloneURL,
		DefaultBranch: repo.DefaultBranch,
		FileCount:     commit.FileCount,
		CommitSHA:     commit.SHA,
		Preexisting:   repo.Preexisting,
		SkippedPaths:  commit.SkippedPaths,
	}, nil
}

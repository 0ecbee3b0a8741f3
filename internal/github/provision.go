package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"
)

// Repo is the destination repository, created or resolved once per publish.
type Repo struct {
	Owner         string
	Name          string
	FullName      string
	DefaultBranch string
	HTMLURL       string
	CloneURL      string
	Preexisting   bool
}

// Provision creates the destination repository. Repository names are a
// caller-chosen slug that legitimately collides on re-publish, so a name-taken
// conflict resolves to the authenticated account's existing repository instead
// of failing. Any other failure aborts the publish.
func (c *Client) Provision(ctx context.Context, token, name, description string, private bool) (*Repo, error) {
	client := c.api(ctx, token)
	created, _, err := client.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
		AutoInit:    github.Bool(false),
	})
	if err == nil {
		return repoFrom(created, false), nil
	}
	if !isNameTaken(err) {
		return nil, fmt.Errorf("create repository %q: %w", name, err)
	}
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("resolve authenticated user: %w", err)
	}
	existing, _, err := client.Repositories.Get(ctx, user.GetLogin(), name)
	if err != nil {
		return nil, fmt.Errorf("resolve existing repository %s/%s: %w", user.GetLogin(), name, err)
	}
	return repoFrom(existing, true), nil
}

func repoFrom(r *github.Repository, preexisting bool) *Repo {
	owner := r.GetOwner().GetLogin()
	full := r.GetFullName()
	if owner == "" && full != "" {
		if i := strings.IndexByte(full, '/'); i > 0 {
			owner = full[:i]
		}
	}
	branch := r.GetDefaultBranch()
	if branch == "" {
		branch = "main"
	}
	return &Repo{
		Owner:         owner,
		Name:          r.GetName(),
		FullName:      full,
		DefaultBranch: branch,
		HTMLURL:       r.GetHTMLURL(),
		CloneURL:      r.GetCloneURL(),
		Preexisting:   preexisting,
	}
}

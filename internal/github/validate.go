package github

import (
	"context"
	"fmt"
	"strings"
)

// ValidateResult is always structured; the validation path never returns an
// error value to the caller.
type ValidateResult struct {
	Valid         bool   `json:"valid"`
	FullName      string `json:"fullName,omitempty"`
	Description   string `json:"description,omitempty"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	HTMLURL       string `json:"htmlUrl,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Validate checks that an externally-supplied repository URL points at an
// accessible GitHub repository. Unauthenticated; results are cached.
func (c *Client) Validate(ctx context.Context, rawURL string) ValidateResult {
	owner, name, ok := parseRepoURL(rawURL)
	if !ok {
		return ValidateResult{Error: fmt.Sprintf("not a recognizable GitHub repository URL: %q", rawURL)}
	}
	key := owner + "/" + name
	if res, hit := c.validations.Get(key); hit {
		return res
	}

	client := c.api(ctx, "")
	repo, _, err := client.Repositories.Get(ctx, owner, name)
	var res ValidateResult
	if err != nil {
		if isNotFound(err) {
			res = ValidateResult{Error: fmt.Sprintf("repository %s not found or not public", key)}
		} else {
			// Transport-level failures are not cached; they may be transient.
			return ValidateResult{Error: fmt.Sprintf("lookup %s: %v", key, err)}
		}
	} else {
		res = ValidateResult{
			Valid:         true,
			FullName:      repo.GetFullName(),
			Description:   repo.GetDescription(),
			DefaultBranch: repo.GetDefaultBranch(),
			HTMLURL:       repo.GetHTMLURL(),
		}
	}
	c.validations.Add(key, res)
	return res
}

// parseRepoURL accepts https://github.com/owner/repo(.git), the SSH form
// git@github.com:owner/repo.git, and a bare owner/repo.
func parseRepoURL(raw string) (owner, name string, ok bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")
	switch {
	case strings.HasPrefix(s, "git@github.com:"):
		s = strings.TrimPrefix(s, "git@github.com:")
	case strings.Contains(s, "github.com/"):
		_, after, _ := strings.Cut(s, "github.com/")
		s = after
	}
	s = strings.TrimSuffix(s, ".git")
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

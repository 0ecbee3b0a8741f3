package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"

	"github.com/raye/pagesmith/server/internal/compose"
	"github.com/raye/pagesmith/server/internal/encode"
)

// ErrNothingToCommit means no blob was created, so there is no tree to build.
var ErrNothingToCommit = errors.New("nothing to commit: no blobs were created")

const defaultBlobConcurrency = 4

type CommitOptions struct {
	// StrictBlobs aborts the publish on the first blob failure. The default
	// skips the failed file and reports it in CommitResult.SkippedPaths.
	StrictBlobs bool
	// Concurrency bounds parallel blob creation. Zero means the default.
	Concurrency int
}

type CommitResult struct {
	SHA          string
	TreeSHA      string
	FileCount    int
	SkippedPaths []string
}

// Commit publishes files as one commit on the repository's default branch.
// The ref update is the last write: objects created before it are inert, so a
// concurrent reader sees either the old tip or the fully-new tip. Concurrent
// publishes to one repository race on that update and are the caller's job to
// serialize; GitHub's own ref compare-and-swap is the only protection.
func (c *Client) Commit(ctx context.Context, token string, repo *Repo, files []compose.File, message string, opts CommitOptions) (*CommitResult, error) {
	client := c.api(ctx, token)
	branch := repo.DefaultBranch

	parentSHA, baseTreeSHA, err := c.branchTip(ctx, client, repo, branch)
	if err != nil {
		return nil, err
	}

	entries, skipped, err := c.createBlobs(ctx, client, repo, files, opts)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToCommit
	}

	tree, _, err := client.Git.CreateTree(ctx, repo.Owner, repo.Name, baseTreeSHA, entries)
	if err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}

	commit := &github.Commit{
		Message: github.String(message),
		Tree:    tree,
	}
	if parentSHA != "" {
		commit.Parents = []*github.Commit{{SHA: github.String(parentSHA)}}
	}
	created, _, err := client.Git.CreateCommit(ctx, repo.Owner, repo.Name, commit, nil)
	if err != nil {
		return nil, fmt.Errorf("create commit: %w", err)
	}

	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: created.SHA},
	}
	if parentSHA != "" {
		_, _, err = client.Git.UpdateRef(ctx, repo.Owner, repo.Name, ref, true)
	} else {
		_, _, err = client.Git.CreateRef(ctx, repo.Owner, repo.Name, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("update ref heads/%s: %w", branch, err)
	}

	return &CommitResult{
		SHA:          created.GetSHA(),
		TreeSHA:      tree.GetSHA(),
		FileCount:    len(entries),
		SkippedPaths: skipped,
	}, nil
}

// branchTip resolves the current tip commit and tree SHA. A 404 means the
// repository has no commits yet, which is expected for a fresh repository.
func (c *Client) branchTip(ctx context.Context, client *github.Client, repo *Repo, branch string) (parentSHA, treeSHA string, err error) {
	ref, _, err := client.Git.GetRef(ctx, repo.Owner, repo.Name, "heads/"+branch)
	if err != nil {
		if isNotFound(err) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("resolve ref heads/%s: %w", branch, err)
	}
	parentSHA = ref.GetObject().GetSHA()
	tip, _, err := client.Git.GetCommit(ctx, repo.Owner, repo.Name, parentSHA)
	if err != nil {
		return "", "", fmt.Errorf("resolve commit %s: %w", parentSHA, err)
	}
	return parentSHA, tip.GetTree().GetSHA(), nil
}

// createBlobs uploads one blob per file. Blobs have no ordering dependency on
// each other, only on preceding the tree, so they fan out in parallel. Entries
// come back in input order regardless of completion order.
func (c *Client) createBlobs(ctx context.Context, client *github.Client, repo *Repo, files []compose.File, opts CommitOptions) ([]*github.TreeEntry, []string, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBlobConcurrency
	}

	entries := make([]*github.TreeEntry, len(files))
	var mu sync.Mutex
	var skipped []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			blob, _, err := client.Git.CreateBlob(gctx, repo.Owner, repo.Name, &github.Blob{
				Content:  github.String(encode.Base64(f.Content)),
				Encoding: github.String("base64"),
			})
			if err != nil {
				if opts.StrictBlobs {
					return fmt.Errorf("create blob %s: %w", f.Path, err)
				}
				log.Printf("[Pagesmith] blob %s failed, dropping from commit: %v", f.Path, err)
				mu.Lock()
				skipped = append(skipped, f.Path)
				mu.Unlock()
				return nil
			}
			entries[i] = &github.TreeEntry{
				Path: github.String(f.Path),
				Mode: github.String("100644"),
				Type: github.String("blob"),
				SHA:  blob.SHA,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make([]*github.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	sort.Strings(skipped)
	return out, skipped, nil
}

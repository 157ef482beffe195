// Package ghclient wraps the GitHub REST API behind the RepoHost contract.
package ghclient

import (
	"context"
	"fmt"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// GitHubHost implements contract.RepoHost against the GitHub REST API.
type GitHubHost struct {
	client *github.Client
}

// New creates a GitHubHost authenticated with the given personal access token.
func New(ctx context.Context, token string) *GitHubHost {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &GitHubHost{client: github.NewClient(tc)}
}

// NewWithClient creates a GitHubHost from a pre-built client. Used by tests
// to point the host at a local HTTP server.
func NewWithClient(client *github.Client) *GitHubHost {
	return &GitHubHost{client: client}
}

// DefaultBranch returns the default branch name of the repository.
func (g *GitHubHost) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	repository, _, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}
	branch := repository.GetDefaultBranch()
	if branch == "" {
		branch = "main"
	}
	return branch, nil
}

// ListFiles returns the paths of all blobs in the recursive tree at the given branch.
// Tree entries that are not blobs (directories, submodules) are skipped.
func (g *GitHubHost) ListFiles(ctx context.Context, owner, repo, branch string) ([]string, error) {
	tree, _, err := g.client.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		return nil, fmt.Errorf("get tree for %s/%s@%s: %w", owner, repo, branch, err)
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		paths = append(paths, entry.GetPath())
	}
	return paths, nil
}

// FileContent returns the decoded content of a single file. The API returns
// file bodies base64-encoded; GetContent handles the decode.
func (g *GitHubHost) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("get contents of %s: %w", path, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %s is a directory, not a file", path)
	}
	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode contents of %s: %w", path, err)
	}
	return content, nil
}

package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

// DefaultCloneDepth limits how much history a remote clone fetches.
const DefaultCloneDepth = 20

var (
	// ErrInvalidGitHubURL is returned when a URL does not name a GitHub repository.
	ErrInvalidGitHubURL = errors.New("invalid GitHub URL, use format: https://github.com/owner/repo")
	// ErrNoRepository is returned when a local path has no git metadata.
	ErrNoRepository = errors.New("no git repository found")
)

var githubURLPattern = regexp.MustCompile(`github\.com[/:]([^/]+)/([^/?#]+)`)

// CloneOptions configures CloneGitHub.
type CloneOptions struct {
	Depth        int    // Commits to fetch; 0 uses DefaultCloneDepth
	SingleBranch bool   // Fetch only the selected branch
	Branch       string // Branch to clone; empty uses the remote default
	Progress     io.Writer
}

// ParseGitHubURL extracts owner and repository name from a GitHub URL.
func ParseGitHubURL(url string) (owner, repo string, err error) {
	m := githubURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", "", ErrInvalidGitHubURL
	}
	owner = m[1]
	repo = strings.TrimSuffix(strings.TrimSuffix(m[2], "/"), ".git")
	if owner == "" || repo == "" {
		return "", "", ErrInvalidGitHubURL
	}
	return owner, repo, nil
}

// OpenLocal opens the repository containing path.
func OpenLocal(path, branch string) (*GoGitResolver, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w at %s", ErrNoRepository, path)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return NewGoGitResolver(repo, branch), nil
}

// CloneGitHub clones a GitHub repository into memory. No worktree is checked out.
func CloneGitHub(ctx context.Context, url string, opts CloneOptions) (*GoGitResolver, error) {
	owner, name, err := ParseGitHubURL(url)
	if err != nil {
		return nil, err
	}

	depth := opts.Depth
	if depth <= 0 {
		depth = DefaultCloneDepth
	}

	cloneOpts := &gogit.CloneOptions{
		URL:          fmt.Sprintf("https://github.com/%s/%s", owner, name),
		Depth:        depth,
		SingleBranch: opts.SingleBranch,
		Progress:     opts.Progress,
		Tags:         gogit.NoTags,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}

	repo, err := gogit.CloneContext(ctx, memory.NewStorage(), nil, cloneOpts)
	if err != nil {
		return nil, cloneError(owner, name, err)
	}
	return NewGoGitResolver(repo, ""), nil
}

func cloneError(owner, name string, err error) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		strings.Contains(err.Error(), "404"):
		return fmt.Errorf("repository %s/%s not found or is private, check the URL: %w", owner, name, err)
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return fmt.Errorf("repository %s/%s is empty: %w", owner, name, err)
	default:
		return fmt.Errorf("failed to clone %s/%s: %w", owner, name, err)
	}
}

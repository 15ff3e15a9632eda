package vcs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/pders01/knowsync/internal/models"
)

const (
	// DefaultAuthorName is used when neither the options nor the git
	// config provide a committer identity.
	DefaultAuthorName = "knowsync"

	// DefaultAuthorEmail is the matching fallback email.
	DefaultAuthorEmail = "knowsync@localhost"
)

// Options configures how a repository is opened.
type Options struct {
	// Path is any directory inside the working tree. The enclosing
	// repository is discovered the way the git CLI does.
	Path string

	// AuthorName and AuthorEmail override the committer identity from
	// the repository's git config.
	AuthorName  string
	AuthorEmail string

	// Now supplies commit timestamps. Defaults to time.Now.
	Now func() time.Time
}

// GitClient implements Client on top of go-git, so status classification
// is structured at the boundary instead of parsed out of command output.
type GitClient struct {
	repo     *gogit.Repository
	worktree *gogit.Worktree
	opts     Options
}

// Open discovers and opens the repository enclosing opts.Path.
// Returns ErrNotARepository when there is none.
func Open(opts Options) (*GitClient, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	repo, err := gogit.PlainOpenWithOptions(opts.Path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, opts.Path)
		}
		return nil, wrap(err, "failed to open repository")
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, wrap(err, "failed to get worktree")
	}

	return &GitClient{repo: repo, worktree: worktree, opts: opts}, nil
}

// Status classifies the working tree relative to HEAD. A path that was
// deleted and re-created is reported per its final state in the snapshot,
// not per intermediate history.
func (c *GitClient) Status(ctx context.Context) (models.ChangeSet, error) {
	status, err := c.worktree.Status()
	if err != nil {
		return models.ChangeSet{}, wrap(err, "status query failed")
	}

	var cs models.ChangeSet
	for path, fs := range status {
		switch {
		case fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified:
			// Clean entry, nothing to classify.
		case fs.Staging == gogit.Untracked && fs.Worktree == gogit.Untracked:
			cs.Added = append(cs.Added, path)
		case fs.Worktree == gogit.Deleted || fs.Staging == gogit.Deleted:
			cs.Deleted = append(cs.Deleted, path)
		case fs.Staging == gogit.Added && fs.Worktree != gogit.Deleted:
			// Staged by an earlier interrupted run but still new to HEAD.
			cs.Added = append(cs.Added, path)
		default:
			cs.Modified = append(cs.Modified, path)
		}
	}
	cs.Sort()

	return cs, nil
}

// Staged re-reads the index and returns the paths staged for commit.
func (c *GitClient) Staged(ctx context.Context) ([]string, error) {
	status, err := c.worktree.Status()
	if err != nil {
		return nil, wrap(err, "status query failed")
	}

	var staged []string
	for path, fs := range status {
		if fs.Staging != gogit.Untracked && fs.Staging != gogit.Unmodified {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)

	return staged, nil
}

// Add stages each path. go-git stages a deletion when the path no longer
// exists in the working tree, matching git add semantics.
func (c *GitClient) Add(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if _, err := c.worktree.Add(path); err != nil {
			return wrap(err, fmt.Sprintf("failed to stage %q", path))
		}
	}
	return nil
}

// Restore brings the given paths back from HEAD in both the index and the
// working tree, undoing local deletions.
func (c *GitClient) Restore(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	err := c.worktree.Restore(&gogit.RestoreOptions{
		Files:    paths,
		Staged:   true,
		Worktree: true,
	})
	if err != nil {
		return wrap(err, "failed to restore deleted files")
	}
	return nil
}

// Commit creates a commit from the staged changes and returns its hash.
func (c *GitClient) Commit(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", errors.New("commit message cannot be empty")
	}

	name, email := c.author()
	hash, err := c.worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  c.opts.Now(),
		},
	})
	if err != nil {
		if errors.Is(err, gogit.ErrEmptyCommit) {
			return "", ErrNothingToCommit
		}
		return "", wrap(err, "failed to commit")
	}

	return hash.String(), nil
}

// Push updates the remote. With an empty branch the current branch's
// configured refspecs apply; "no remote configured" surfaces as a plain
// push failure, not a distinct kind.
func (c *GitClient) Push(ctx context.Context, remote, branch string) error {
	pushOpts := &gogit.PushOptions{RemoteName: remote}
	if branch != "" {
		spec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
		pushOpts.RefSpecs = []gitconfig.RefSpec{spec}
	}

	err := c.repo.PushContext(ctx, pushOpts)
	if err != nil {
		if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
			return ErrAlreadyUpToDate
		}
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return wrap(err, fmt.Sprintf("remote %q not found", remote))
		}
		return wrap(err, "failed to push")
	}

	return nil
}

// author resolves the committer identity: explicit options first, then
// the repository's merged git config, then the tool identity.
func (c *GitClient) author() (name, email string) {
	name, email = c.opts.AuthorName, c.opts.AuthorEmail
	if name != "" && email != "" {
		return name, email
	}

	if cfg, err := c.repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if name == "" {
			name = cfg.User.Name
		}
		if email == "" {
			email = cfg.User.Email
		}
	}

	if name == "" {
		name = DefaultAuthorName
	}
	if email == "" {
		email = DefaultAuthorEmail
	}
	return name, email
}

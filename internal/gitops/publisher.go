package gitops

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// ErrNothingToPublish is returned when the services tree holds no changes
var ErrNothingToPublish = errors.New("nothing to publish")

// Publisher stages, commits and pushes generated descriptor files
type Publisher struct {
	RepoPath string
	repo     *git.Repository
	auth     *http.BasicAuth
}

// Open opens the repository enclosing path (the .git directory is
// detected upwards, so any directory inside the checkout works)
func Open(path, user, token string) (*Publisher, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	p := &Publisher{
		RepoPath: worktree.Filesystem.Root(),
		repo:     repo,
	}

	if user != "" && token != "" {
		p.auth = &http.BasicAuth{
			Username: user,
			Password: token,
		}
	}

	return p, nil
}

// CurrentBranch returns the name of the checked-out branch
func (p *Publisher) CurrentBranch() (string, error) {
	head, err := p.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// AddServices stages the given directory recursively
func (p *Publisher) AddServices(dir string) error {
	worktree, err := p.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{Path: dir}); err != nil {
		return fmt.Errorf("staging %s: %w", dir, err)
	}

	return nil
}

// Commit creates a commit with the staged changes under a fixed
// automation author. ErrNothingToPublish is returned when the staged
// tree is unchanged.
func (p *Publisher) Commit(message string) error {
	worktree, err := p.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "catalog-sync",
			Email: "catalog-sync@automated",
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return ErrNothingToPublish
	}
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	return nil
}

// Push pushes the current branch to the given remote
func (p *Publisher) Push(remote string) error {
	opts := &git.PushOptions{RemoteName: remote}
	if p.auth != nil {
		opts.Auth = p.auth
	}

	err := p.repo.Push(opts)
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("pushing: %w", err)
	}

	return nil
}

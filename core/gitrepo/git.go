package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/natefinch/atomic"
)

// Git is the go-git backed implementation of Repository.
type Git struct {
	repo *git.Repository
	path string
	auth transport.AuthMethod
	cfg  Config
}

// Open opens the working directory at cfg.Path, cloning it from cfg.URL
// first if it does not exist yet.
func Open(ctx context.Context, cfg Config) (*Git, error) {
	auth, err := authMethod(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth for %s: %w", cfg.URL, err)
	}

	repo, err := git.PlainOpen(cfg.Path)
	if err == git.ErrRepositoryNotExists {
		repo, err = git.PlainCloneContext(ctx, cfg.Path, false, &git.CloneOptions{
			URL:  cfg.URL,
			Auth: auth,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", cfg.Path, err)
	}

	return &Git{repo: repo, path: cfg.Path, auth: auth, cfg: cfg}, nil
}

// Pull integrates the latest remote state into the working directory.
// An already-up-to-date remote is not an error.
func (g *Git) Pull(ctx context.Context) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName: "origin",
		Auth:       g.auth,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull %s: %w", g.cfg.URL, err)
	}
	return nil
}

func (g *Git) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(g.path, name))
}

// WriteFile replaces the file content atomically so a crashed write can
// never leave a half-written document in the working tree.
func (g *Git) WriteFile(name string, data []byte) error {
	return atomic.WriteFile(filepath.Join(g.path, name), bytes.NewReader(data))
}

func (g *Git) RemoveFile(name string) error {
	return os.Remove(filepath.Join(g.path, name))
}

func (g *Git) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(g.path, name))
	return err == nil
}

func (g *Git) List(ext string) ([]string, error) {
	entries, err := os.ReadDir(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to list working directory %s: %w", g.path, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CommitAndPushIfDirty stages all changes and, if the working tree is dirty,
// commits and pushes them. The dirty gate avoids empty commits; it is not
// atomic against concurrent external mutation of the same working directory.
func (g *Git) CommitAndPushIfDirty(ctx context.Context, message string) (bool, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("failed to stage changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read worktree status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.cfg.AuthorName,
			Email: g.cfg.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}

	err = g.repo.PushContext(ctx, &git.PushOptions{Auth: g.auth})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return true, fmt.Errorf("failed to push to %s: %w", g.cfg.URL, err)
	}
	return true, nil
}

// authMethod derives the transport auth from the config. Token wins for
// HTTPS remotes; an SSH key path wins for SSH remotes; with neither set,
// go-git falls back to its default resolution (ssh-agent, netrc).
func authMethod(cfg Config) (transport.AuthMethod, error) {
	if cfg.Token != "" {
		return &githttp.BasicAuth{Username: "git", Password: cfg.Token}, nil
	}
	if cfg.SSHKeyPath != "" {
		return gitssh.NewPublicKeysFromFile("git", cfg.SSHKeyPath, cfg.SSHKeyPassphrase)
	}
	return nil, nil
}

// Package git reads commit history as table rows.
package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const DefaultBatch = 1000

type Service struct {
	repo *gitlib.Repository
	path string
}

func Open(repoPath string) (*Service, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Service{repo: repo, path: root}, nil
}

func (s *Service) RepoPath() string {
	return s.path
}

// WatchPath is the directory whose changes mean the history may have moved:
// the .git directory for a worktree, the repository itself when bare.
func (s *Service) WatchPath() string {
	gitDir := filepath.Join(s.path, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		return gitDir
	}
	return s.path
}

// Commits returns up to limit commits reachable from HEAD, newest first.
// An unborn HEAD yields no commits.
func (s *Service) Commits(ctx context.Context, limit uint) ([]Commit, string, error) {
	if limit == 0 {
		limit = DefaultBatch
	}
	ref, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("resolve HEAD: %w", err)
	}
	iter, err := s.repo.Log(&gitlib.LogOptions{From: ref.Hash(), Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, "", fmt.Errorf("read commits: %w", err)
	}
	defer iter.Close()

	commits := make([]Commit, 0, min(limit, DefaultBatch))
	for uint(len(commits)) < limit {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		c, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, "", fmt.Errorf("iterate commits: %w", err)
		}
		commits = append(commits, fromObject(c))
	}
	head := ref.Name().Short()
	slog.Debug("git commits loaded",
		slog.Int("count", len(commits)),
		slog.String("head", head),
	)
	return commits, head, nil
}

func fromObject(c *object.Commit) Commit {
	return Commit{
		Hash: c.Hash.String(),
		Author: Signature{
			Name:  c.Author.Name,
			Email: c.Author.Email,
			When:  c.Author.When,
		},
		Committer: Signature{
			Name:  c.Committer.Name,
			Email: c.Committer.Email,
			When:  c.Committer.When,
		},
		Message: c.Message,
	}
}

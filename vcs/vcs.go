// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/jeffrom/ghlog/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

type Interface interface {
	// ReadCommits returns the commits matching query in log order, newest
	// first. Tags are set on the commits they point at.
	ReadCommits(ctx context.Context, query CommitQuery) ([]*model.Commit, error)
	// ReadTags lists tags matching a glob pattern, or all tags if it is empty.
	ReadTags(ctx context.Context, pattern string) ([]string, error)
	Fetch(ctx context.Context, upstream string) error
	RepositoryRoot(ctx context.Context) (string, error)
	ReadNameFromRemoteURL(ctx context.Context, upstream string) (owner, repo string, err error)
}

// CommitQuery limits the commits read from the log.
type CommitQuery struct {
	// RevisionRange is passed to git log as is, e.g. "v1.0..HEAD". Empty
	// means all of HEAD's history.
	RevisionRange string
	FirstParent   bool
	// Paths limits commits to those touching the given paths, relative to
	// the working directory.
	Paths []string
}

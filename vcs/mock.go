package vcs

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/jeffrom/ghlog/model"
)

type Mock struct {
	t       time.Time
	tags    []string
	commits []*model.Commit
	owner   string
	repo    string
	root    string

	// Queries records every CommitQuery passed to ReadCommits.
	Queries []CommitQuery
	// Fetched records every upstream passed to Fetch.
	Fetched []string
}

func NewMock() *Mock {
	return &Mock{
		t:    time.Now(),
		root: "/mock",
	}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

// SetCommits sets the commits returned by ReadCommits, in log order. Commits
// without an author date get decreasing dates a minute apart.
func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		c.Tags = append([]string(nil), commit.Tags...)
		c.Files = append([]string(nil), commit.Files...)
		if c.AuthorDate.IsZero() {
			c.AuthorDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

// SetRemote sets the repository name returned by ReadNameFromRemoteURL. An
// empty owner makes it fail as if the upstream had no remote.
func (m *Mock) SetRemote(owner, repo string) *Mock {
	m.owner = owner
	m.repo = repo
	return m
}

func (m *Mock) Fetch(ctx context.Context, upstream string) error {
	m.Fetched = append(m.Fetched, upstream)
	return nil
}

func (m *Mock) RepositoryRoot(ctx context.Context) (string, error) {
	return m.root, nil
}

func (m *Mock) ReadNameFromRemoteURL(ctx context.Context, upstream string) (string, string, error) {
	if m.owner == "" {
		return "", "", NotFoundError{Ref: upstream}
	}
	return m.owner, m.repo, nil
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	var tags []string
	for _, t := range m.tags {
		if globMatches(t, query) {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// ReadCommits returns copies of the configured commits, limited to Paths if
// any are set.
func (m *Mock) ReadCommits(ctx context.Context, query CommitQuery) ([]*model.Commit, error) {
	m.Queries = append(m.Queries, query)
	var commits []*model.Commit
	for _, commit := range m.commits {
		if !touchesAny(commit, query.Paths) {
			continue
		}
		c := *commit
		c.Tags = append([]string(nil), commit.Tags...)
		c.Files = append([]string(nil), commit.Files...)
		commits = append(commits, &c)
	}
	return commits, nil
}

func touchesAny(c *model.Commit, paths []string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, p := range paths {
		p = strings.TrimSuffix(p, "/")
		if p == "" || p == "." {
			return true
		}
		for _, f := range c.Files {
			if f == p || strings.HasPrefix(f, p+"/") {
				return true
			}
		}
	}
	return false
}

// globMatches matches s the way git tag -l matches a pattern. An empty
// glob matches everything.
func globMatches(s string, glob string) bool {
	if glob == "" {
		return true
	}
	ok, err := path.Match(glob, s)
	return err == nil && ok
}

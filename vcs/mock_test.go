package vcs

import (
	"context"
	"errors"
	"testing"

	"github.com/jeffrom/ghlog/model"
)

func TestMockReadCommits(t *testing.T) {
	ctx := context.Background()
	m := NewMock().SetCommits(
		&model.Commit{ID: "b", Files: []string{"cmd/x.go"}},
		&model.Commit{ID: "a", Files: []string{"lib/y.go"}, Tags: []string{"v1"}},
	)

	commits, err := m.ReadCommits(ctx, CommitQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if !commits[0].AuthorDate.After(commits[1].AuthorDate) {
		t.Errorf("expected newest commit first")
	}

	// callers may mutate what they read
	commits[1].Tags[0] = "changed"
	again, _ := m.ReadCommits(ctx, CommitQuery{})
	if again[1].Tags[0] != "v1" {
		t.Errorf("expected mock commits to be unaffected, got %q", again[1].Tags)
	}

	commits, _ = m.ReadCommits(ctx, CommitQuery{Paths: []string{"cmd/"}})
	if len(commits) != 1 || commits[0].ID != "b" {
		t.Errorf("expected only commit b, got %+v", commits)
	}
	if len(m.Queries) != 3 {
		t.Errorf("expected 3 recorded queries, got %d", len(m.Queries))
	}
}

func TestMockReadTags(t *testing.T) {
	m := NewMock().SetTags("v0.1.0", "v1.0.0", "nightly")
	tcs := []struct {
		query  string
		expect int
	}{
		{query: "", expect: 3},
		{query: "v*", expect: 2},
		{query: "v1.*", expect: 1},
		{query: "nightly", expect: 1},
		{query: "x*", expect: 0},
	}
	for _, tc := range tcs {
		t.Run(tc.query, func(t *testing.T) {
			tags, err := m.ReadTags(context.Background(), tc.query)
			if err != nil {
				t.Fatal(err)
			}
			if len(tags) != tc.expect {
				t.Errorf("expected %d tags, got %q", tc.expect, tags)
			}
		})
	}
}

func TestMockRemote(t *testing.T) {
	ctx := context.Background()
	m := NewMock()
	_, _, err := m.ReadNameFromRemoteURL(ctx, "origin")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Ref != "origin" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	owner, repo, err := m.SetRemote("jeffrom", "ghlog").ReadNameFromRemoteURL(ctx, "origin")
	if err != nil {
		t.Fatal(err)
	}
	if owner != "jeffrom" || repo != "ghlog" {
		t.Errorf("unexpected name %s/%s", owner, repo)
	}
}

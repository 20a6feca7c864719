package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jeffrom/ghlog/commit"
	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
	"github.com/jeffrom/ghlog/vcs"
)

// Source is the raw input of a changelog. Commits are in log order, newest
// first.
type Source struct {
	Commits  []*model.Commit
	Issues   []*model.Issue
	Releases []*model.Release
}

// fetch reads commits, issues and releases concurrently. Issues aren't read
// when withIssues is false. Without a tracker, the repository's tags stand in
// for releases. Tags on the commits flow down onto the untagged commits below
// them, and commit authors are resolved against the tracker.
func (r *Runner) fetch(ctx context.Context, withIssues bool) (*Source, error) {
	if r.cfg.Fetch {
		r.cfg.Printf("fetching tags from %s...", r.cfg.Upstream)
		if err := r.vcs.Fetch(ctx, r.cfg.Upstream); err != nil {
			return nil, err
		}
	}

	src := &Source{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		commits, err := r.vcs.ReadCommits(gctx, vcs.CommitQuery{
			RevisionRange: r.cfg.RevisionRange,
			FirstParent:   !r.cfg.AllParents,
			Paths:         r.cfg.Paths,
		})
		if err != nil {
			return fmt.Errorf("reading commits: %w", err)
		}
		src.Commits = commits
		return nil
	})

	g.Go(func() error {
		releases, err := r.releases(gctx)
		if err != nil {
			return err
		}
		src.Releases = releases
		return nil
	})
	if r.tracker != nil && withIssues {
		g.Go(func() error {
			issues, err := r.tracker.ListIssues(gctx)
			if err != nil {
				return fmt.Errorf("reading issues: %w", err)
			}
			src.Issues = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.cfg.Debugf("read %d commits, %d issues, %d releases", len(src.Commits), len(src.Issues), len(src.Releases))

	commit.FlowTags(src.Commits)
	if r.tracker != nil {
		if err := r.tracker.ResolveAuthors(ctx, src.Commits); err != nil {
			return nil, fmt.Errorf("resolving authors: %w", err)
		}
	}
	return src, nil
}

// releases reads the tracker's releases, or the repository's tags as
// releases named after them when there is no tracker.
func (r *Runner) releases(ctx context.Context) ([]*model.Release, error) {
	if r.tracker != nil {
		releases, err := r.tracker.ListReleases(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading releases: %w", err)
		}
		return releases, nil
	}

	tags, err := r.vcs.ReadTags(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	releases := make([]*model.Release, len(tags))
	for i, tag := range tags {
		releases[i] = &model.Release{TagName: tag}
	}
	return releases, nil
}

// ReleaseGroups returns the release group table: the tracker's releases, or
// the repository's tags without a tracker.
func (r *Runner) ReleaseGroups(ctx context.Context) (config.GroupConfig, error) {
	releases, err := r.releases(ctx)
	if err != nil {
		return nil, err
	}
	return commit.ReleaseGroups(releases, r.cfg.UnreleasedGroup), nil
}

// Package runner manages command-line execution
package runner

import (
	"context"

	"golang.org/x/text/language"

	"github.com/jeffrom/ghlog/commit"
	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
	"github.com/jeffrom/ghlog/vcs"
)

// Tracker is a remote issue tracker holding a repository's issues, releases
// and the accounts of commit authors.
type Tracker interface {
	ListIssues(ctx context.Context) ([]*model.Issue, error)
	ListReleases(ctx context.Context) ([]*model.Release, error)
	// ResolveAuthors updates the Author of commits known to the tracker.
	ResolveAuthors(ctx context.Context, commits []*model.Commit) error
}

type Runner struct {
	cfg     config.Config
	vcs     vcs.Interface
	tracker Tracker
	lang    language.Tag
}

// New returns a Runner reading commits from vcs. tracker may be nil, in which
// case commits aren't associated with issues or releases.
func New(cfg config.Config, vcs vcs.Interface, tracker Tracker) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := commit.CompileExcludePattern(cfg.ExcludePattern); err != nil {
		return nil, err
	}
	lang, err := cfg.Language()
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:     cfg,
		vcs:     vcs,
		tracker: tracker,
		lang:    lang,
	}, nil
}

// Changelog is a grouped changelog, ready to render.
type Changelog struct {
	Root    *commit.Group
	Groups  commit.GroupConfigs
	Commits []*model.Commit
}

// Build enriches src's commits and groups them as configured by cfg.
func Build(cfg config.Config, src *Source) (*Changelog, error) {
	enricher, err := commit.NewEnricher(src.Issues, src.Releases, cfg.ExcludePattern)
	if err != nil {
		return nil, err
	}
	commits := enricher.Enrich(src.Commits)

	groups := commit.GroupConfigs{
		Release: commit.ReleaseGroups(src.Releases, cfg.UnreleasedGroup),
		Label:   cfg.LabelGroups,
		Path:    cfg.PathGroups,
	}
	dims := commit.EnabledDimensions(cfg)
	return &Changelog{
		Root:    commit.NewGrouper(groups, dims...).Group(commits),
		Groups:  groups,
		Commits: commits,
	}, nil
}

func (r *Runner) Changelog(ctx context.Context) (*Changelog, error) {
	src, err := r.fetch(ctx, true)
	if err != nil {
		return nil, err
	}
	cl, err := Build(r.cfg, src)
	if err != nil {
		return nil, err
	}
	if r.cfg.Verbose || r.cfg.Debug {
		kept := make(map[*model.Commit]bool, len(cl.Commits))
		for _, c := range cl.Commits {
			kept[c] = true
		}
		for _, c := range src.Commits {
			if !kept[c] {
				r.cfg.Debugf("excluded %s %s", c.ShortID(), c.Subject())
			}
		}
	}
	r.cfg.Debugf("%d of %d commits after exclusions", len(cl.Commits), len(src.Commits))
	return cl, nil
}

// Render renders the changelog document.
func (r *Runner) Render(cl *Changelog) string {
	return NewRenderer(r.lang).Render(cl.Root)
}

// Authors returns the authors of the commits in the configured revision
// range, after exclusions.
func (r *Runner) Authors(ctx context.Context) ([]commit.AuthorEntry, error) {
	src, err := r.fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	cl, err := Build(r.cfg, src)
	if err != nil {
		return nil, err
	}
	return commit.Authors(cl.Commits, r.lang), nil
}

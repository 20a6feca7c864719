package commit

import (
	"regexp"

	"github.com/jeffrom/ghlog/model"
)

// Enricher associates commits with the issue and release they belong to, and
// drops commits matching an exclude pattern.
type Enricher struct {
	issues   map[int]*model.Issue
	releases map[string]*model.Release
	exclude  *regexp.Regexp
}

func NewEnricher(issues []*model.Issue, releases []*model.Release, excludePattern string) (*Enricher, error) {
	exclude, err := CompileExcludePattern(excludePattern)
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		issues:   make(map[int]*model.Issue, len(issues)),
		releases: make(map[string]*model.Release, len(releases)),
		exclude:  exclude,
	}
	for _, issue := range issues {
		if issue == nil {
			continue
		}
		if _, ok := e.issues[issue.Number]; !ok {
			e.issues[issue.Number] = issue
		}
	}
	for _, rel := range releases {
		if rel == nil {
			continue
		}
		if _, ok := e.releases[rel.TagName]; !ok {
			e.releases[rel.TagName] = rel
		}
	}
	return e, nil
}

// Enrich associates every commit and returns the ones that aren't excluded,
// in their original order.
func (e *Enricher) Enrich(commits []*model.Commit) []*model.Commit {
	res := make([]*model.Commit, 0, len(commits))
	for _, c := range commits {
		e.Associate(c)
		if e.Excluded(c) {
			continue
		}
		res = append(res, c)
	}
	return res
}

// Associate sets the commit's Issue and Release. Either is left nil when
// nothing matches.
func (e *Enricher) Associate(c *model.Commit) {
	c.Issue = nil
	if n, ok := IssueNumber(c.Message); ok {
		c.Issue = e.issues[n]
	}

	c.Release = nil
	for _, tag := range c.Tags {
		if rel, ok := e.releases[tag]; ok {
			c.Release = rel
			break
		}
	}
}

// Excluded reports whether any of the commit's keywords match the exclude
// pattern.
func (e *Enricher) Excluded(c *model.Commit) bool {
	if e.exclude == nil {
		return false
	}
	for _, kw := range Keywords(c) {
		if e.exclude.MatchString(kw) {
			return true
		}
	}
	return false
}

// Keywords returns the text an exclude pattern is matched against. The
// commit's own fields are always included, even when empty, so a pattern
// like ^$ matches commits missing one of them. Issue and release fields are
// only included when the commit is associated with one.
func Keywords(c *model.Commit) []string {
	kws := []string{
		c.ID,
		c.Author.Login,
		c.Author.Name,
		c.Author.Email,
		c.Message,
	}
	if issue := c.Issue; issue != nil {
		kws = append(kws, issue.Ref(), issue.Title, issue.Body)
	}
	if rel := c.Release; rel != nil {
		kws = append(kws, rel.TagName, rel.Name, rel.Body)
	}
	return kws
}

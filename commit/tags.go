package commit

import (
	"sort"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
)

// FlowTags gives every untagged commit the tags of the nearest tagged commit
// above it. commits must be in log order, newest first, so tags flow down
// onto the older commits they released. Commits newer than the newest tag
// stay untagged.
func FlowTags(commits []*model.Commit) {
	var curr []string
	for _, c := range commits {
		if len(c.Tags) > 0 {
			curr = c.Tags
			continue
		}
		if curr != nil {
			c.Tags = append([]string(nil), curr...)
		}
	}
}

// ReleaseGroups builds the release GroupConfig: unreleased first, then the
// releases with semver tags from newest to oldest, then any other releases in
// the order given.
func ReleaseGroups(releases []*model.Release, unreleased config.GroupEntry) config.GroupConfig {
	type versioned struct {
		rel *model.Release
		v   semver.Version
		ok  bool
	}
	vs := make([]versioned, 0, len(releases))
	for _, rel := range releases {
		if rel == nil || rel.TagName == "" {
			continue
		}
		v, err := parseTagVersion(rel.TagName)
		vs = append(vs, versioned{rel: rel, v: v, ok: err == nil})
	}
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.v.GT(b.v)
	})

	unreleased.Key = config.DefaultGroupKey
	groups := config.GroupConfig{unreleased}
	seen := make(map[string]bool, len(vs))
	for _, v := range vs {
		if seen[v.rel.TagName] {
			continue
		}
		seen[v.rel.TagName] = true
		groups = append(groups, config.GroupEntry{
			Key:         v.rel.TagName,
			Name:        v.rel.DisplayName(),
			Description: strings.TrimSpace(v.rel.Body),
		})
	}
	return groups
}

// parseTagVersion parses tags like "v1.2.3", "1.2.3-rc.1" or "name/v1.2.3".
func parseTagVersion(tag string) (semver.Version, error) {
	if i := strings.LastIndexByte(tag, '/'); i >= 0 {
		tag = tag[i+1:]
	}
	return semver.ParseTolerant(tag)
}

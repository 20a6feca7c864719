package commit

import (
	"path"
	"strings"

	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
)

// Group is a realized classification bucket. A group either has Children,
// when a further dimension produced structure, or is rendered as a flat list
// of its Commits. Commits always holds every commit in the subtree.
type Group struct {
	Key         string
	Name        string
	Description string
	Dimension   Dimension
	// Level is the logical heading level of the group. The root group has
	// level 0 and no heading.
	Level    int
	Commits  []*model.Commit
	Children []*Group
}

func (g *Group) IsDefault() bool {
	return g.Key == config.DefaultGroupKey
}

// GroupConfigs holds the group table for each dimension.
type GroupConfigs struct {
	Release config.GroupConfig
	Label   config.GroupConfig
	Path    config.GroupConfig
}

func (gc GroupConfigs) For(d Dimension) config.GroupConfig {
	switch d {
	case DimensionRelease:
		return gc.Release
	case DimensionLabel:
		return gc.Label
	case DimensionPath:
		return gc.Path
	}
	return nil
}

// headingLevels maps the chain of dimensions leading to a group, outermost
// first, to the group's heading level.
var headingLevels = []struct {
	chain []Dimension
	level int
}{
	{chain: []Dimension{DimensionRelease}, level: 1},
	{chain: []Dimension{DimensionRelease, DimensionPath}, level: 2},
	{chain: []Dimension{DimensionRelease, DimensionLabel}, level: 3},
	{chain: []Dimension{DimensionRelease, DimensionLabel, DimensionPath}, level: 4},
	{chain: []Dimension{DimensionLabel}, level: 1},
	{chain: []Dimension{DimensionLabel, DimensionPath}, level: 3},
	{chain: []Dimension{DimensionPath}, level: 1},
}

func headingLevel(chain []Dimension) int {
	for _, hl := range headingLevels {
		if sameDimensions(hl.chain, chain) {
			return hl.level
		}
	}
	return len(chain)
}

func sameDimensions(a, b []Dimension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Grouper builds the group tree for a commit sequence.
type Grouper struct {
	configs GroupConfigs
	dims    []Dimension
}

// NewGrouper returns a Grouper attempting dims in release, label, path order
// regardless of the order they're passed in.
func NewGrouper(configs GroupConfigs, dims ...Dimension) *Grouper {
	var ordered []Dimension
	for _, d := range dimensionOrder {
		for _, cand := range dims {
			if cand == d {
				ordered = append(ordered, d)
				break
			}
		}
	}
	return &Grouper{configs: configs, dims: ordered}
}

// Group returns the root of the group tree. The root holds every commit and
// has no children when no dimension produced structure.
func (g *Grouper) Group(commits []*model.Commit) *Group {
	return &Group{
		Commits:  commits,
		Children: g.descend(commits, g.dims, nil),
	}
}

// descend groups commits by the first dimension in dims that yields
// structure, then descends into each group with the dimensions after it. A
// dimension yields structure when some non-default group is non-empty; a
// lone default group is the same as no grouping at all.
func (g *Grouper) descend(commits []*model.Commit, dims []Dimension, chain []Dimension) []*Group {
	if len(commits) == 0 {
		return nil
	}
	for i, dim := range dims {
		groups := Classify(commits, dim, g.configs.For(dim))
		if !hasStructure(groups) {
			continue
		}

		next := make([]Dimension, len(chain)+1)
		copy(next, chain)
		next[len(chain)] = dim
		level := headingLevel(next)
		for _, grp := range groups {
			grp.Level = level
			grp.Children = g.descend(grp.Commits, dims[i+1:], next)
		}
		return groups
	}
	return nil
}

func hasStructure(groups []*Group) bool {
	for _, grp := range groups {
		if !grp.IsDefault() && len(grp.Commits) > 0 {
			return true
		}
	}
	return false
}

// Classify partitions commits along one dimension. Groups are returned in
// table order with commits in input order, and empty groups are dropped.
// Label groups overlap: a commit lands in every label group it matches.
// Release and path groups don't: a commit lands in the first matching group.
// Commits matching no explicit key land in the default group.
func Classify(commits []*model.Commit, dim Dimension, table config.GroupConfig) []*Group {
	groups := make([]*Group, len(table))
	byKey := make(map[string]*Group, len(table))
	for i, entry := range table {
		groups[i] = &Group{
			Key:         entry.Key,
			Name:        entry.Name,
			Description: entry.Description,
			Dimension:   dim,
		}
		byKey[entry.Key] = groups[i]
	}
	keys := table.Keys()
	_, hasDefault := table.Default()

	for _, c := range commits {
		matched := false
		for _, key := range keys {
			if !Matches(c, dim, key) {
				continue
			}
			byKey[key].Commits = append(byKey[key].Commits, c)
			matched = true
			if dim != DimensionLabel {
				break
			}
		}
		if !matched && hasDefault {
			grp := byKey[config.DefaultGroupKey]
			grp.Commits = append(grp.Commits, c)
		}
	}

	res := groups[:0]
	for _, grp := range groups {
		if len(grp.Commits) > 0 {
			res = append(res, grp)
		}
	}
	return res
}

// Matches reports whether commit c belongs to the group with the explicit
// key along dimension dim.
func Matches(c *model.Commit, dim Dimension, key string) bool {
	switch dim {
	case DimensionRelease:
		return c.Release != nil && c.Release.TagName == key
	case DimensionLabel:
		return c.Issue != nil && c.Issue.HasLabel(key)
	case DimensionPath:
		for _, f := range c.Files {
			if pathContains(key, f) {
				return true
			}
		}
	}
	return false
}

// pathContains reports whether file is dir or is under dir.
func pathContains(dir, file string) bool {
	dir = path.Clean("/" + strings.TrimSpace(dir))
	file = path.Clean("/" + strings.TrimSpace(file))
	if dir == "/" {
		return true
	}
	return file == dir || strings.HasPrefix(file, dir+"/")
}

package runner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeffrom/ghlog/commit"
)

// Stats counts commits per group along every dimension, whether or not the
// changelog is grouped by it.
type Stats struct {
	Commits int64
	Authors int64
	Counts  map[string][]*statCount
}

func (s *Stats) Add(bucket, name string, n int64) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(n)

	s.Counts[bucket] = counts
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, len(s.Counts))
	i := 0
	for name := range s.Counts {
		buckets[i] = name
		i++
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
}

func (c *statCount) Add(n int64) {
	c.n += n
}

func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d commits, %d authors\n\n", s.Commits, s.Authors))

	buckets := s.sortedBuckets()
	for _, name := range buckets {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].n > counts[j].n
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for _, count := range counts {
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %20s\t\t%d\n", label, count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Stats counts the changelog's commits by release, label and path group.
// Label counts can add up to more than the number of commits.
func (r *Runner) Stats(cl *Changelog) *Stats {
	stats := &Stats{
		Commits: int64(len(cl.Commits)),
		Authors: int64(len(commit.Authors(cl.Commits, r.lang))),
		Counts:  make(map[string][]*statCount),
	}
	for _, dim := range []commit.Dimension{commit.DimensionRelease, commit.DimensionLabel, commit.DimensionPath} {
		for _, grp := range commit.Classify(cl.Commits, dim, cl.Groups.For(dim)) {
			stats.Add(dim.String(), grp.Name, int64(len(grp.Commits)))
		}
	}
	return stats
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return cases.Title(language.English).String(s)
}

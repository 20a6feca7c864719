package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jeffrom/ghlog/config"
)

func TestStats(t *testing.T) {
	rnr, err := New(config.New(nil), testVCS(), testTracker())
	if err != nil {
		t.Fatal(err)
	}
	cl, err := rnr.Changelog(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	stats := rnr.Stats(cl)
	if stats.Commits != 4 {
		t.Errorf("expected 4 commits, got %d", stats.Commits)
	}
	if stats.Authors != 3 {
		t.Errorf("expected 3 authors, got %d", stats.Authors)
	}
	if len(stats.Counts) != 3 {
		t.Errorf("expected 3 counters, got %d", len(stats.Counts))
	}

	expectCounts := map[string]map[string]int64{
		"release": {"Unreleased": 1, "1.1": 2, "1.0": 1},
		"label":   {"Enhancement": 1, "Bug": 1, "Other": 2},
		"path":    {"Commands": 1, "Documentation": 1, "Other": 2},
	}
	for bucket, expect := range expectCounts {
		counts, ok := stats.Counts[bucket]
		if !ok {
			t.Errorf("expected %q counter", bucket)
			continue
		}
		if len(counts) != len(expect) {
			t.Errorf("%s: expected %d groups, got %d", bucket, len(expect), len(counts))
		}
		for _, c := range counts {
			if expect[c.label] != c.n {
				t.Errorf("%s/%s: expected %d, got %d", bucket, c.label, expect[c.label], c.n)
			}
		}
	}

	b := &bytes.Buffer{}
	if err := stats.TextSummary(b); err != nil {
		t.Fatal(err)
	}
	t.Logf("stats output:\n%s", b.String())
	out := b.String()
	if !strings.HasPrefix(out, "4 commits, 3 authors\n\nLabel:\n") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	for _, expect := range []string{"Release:\n", "Path:\n", "Unreleased\t\t1\n"} {
		if !strings.Contains(out, expect) {
			t.Errorf("expected summary to contain %q", expect)
		}
	}
}

func TestToTitle(t *testing.T) {
	if got := toTitle("commit_type"); got != "Commit Type" {
		t.Errorf("expected %q, got %q", "Commit Type", got)
	}
}

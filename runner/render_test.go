package runner

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/jeffrom/ghlog/commit"
	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
)

var (
	ann = model.Author{ID: "1", Login: "ann", Name: "Ann", Email: "a@x.com"}
	bob = model.Author{ID: "2", Login: "bob", Name: "Bob", Email: "b@x.com"}
)

func scenarioSource() *Source {
	return &Source{
		Commits: []*model.Commit{
			{ID: "a1", Message: "Fix bug (#12)", Author: ann, Tags: []string{"v1.0"}, Files: []string{"lib/x.js"}},
		},
		Issues: []*model.Issue{
			{Number: 12, Title: "Bug", URL: "u", Labels: []model.Label{{Name: "bug"}}},
		},
		Releases: []*model.Release{
			{TagName: "v1.0", Name: "1.0"},
		},
	}
}

func render(t *testing.T, cfg config.Config, src *Source) string {
	t.Helper()
	cl, err := Build(cfg, src)
	if err != nil {
		t.Fatal(err)
	}
	return NewRenderer(language.English).Render(cl.Root)
}

func TestRenderReleaseLabel(t *testing.T) {
	cfg := config.New(&config.Config{GroupBy: []string{config.GroupRelease, config.GroupLabel}})
	got := render(t, cfg, scenarioSource())

	expect := `## 1.0

### Commits (1)

#### Bug
> Something isn't working

### Commits (1)

 * [#12](u) - Bug (a@x.com)

### Authors (1)

* Ann \<a@x.com> ([@ann](https://github.com/ann))

### Authors (1)

* Ann \<a@x.com> ([@ann](https://github.com/ann))
`
	if got != expect {
		t.Fatalf("expected:\n%s\ngot:\n%s", expect, got)
	}
}

func TestRenderFlat(t *testing.T) {
	cfg := config.New(&config.Config{GroupBy: []string{}})
	src := scenarioSource()
	src.Commits = append(src.Commits, &model.Commit{
		ID:      "b2",
		Message: "wip\r\n\r\nmore detail\n",
		Author:  bob,
	})
	got := render(t, cfg, src)

	expect := "### Commits (2)\n\n" +
		"* [#12](u) - Bug (a@x.com)\n" +
		"* wip\n" +
		"  \n" +
		"  more detail (b@x.com)\n\n" +
		"### Authors (2)\n\n" +
		"* Ann \\<a@x.com> ([@ann](https://github.com/ann))\n" +
		"* Bob \\<b@x.com> ([@bob](https://github.com/bob))\n"
	if got != expect {
		t.Fatalf("expected:\n%s\ngot:\n%s", expect, got)
	}
	if strings.Contains(got, "\n## ") || strings.Contains(got, "\n#### ") {
		t.Error("expected no group headings")
	}
}

func TestRenderIssueBody(t *testing.T) {
	cfg := config.New(&config.Config{GroupBy: []string{config.GroupLabel}})
	src := scenarioSource()
	src.Issues[0].Body = "Steps:\n\n1. run it\n2. see it break"
	src.Commits = append(src.Commits, &model.Commit{ID: "b2", Message: "chore", Author: bob})
	got := render(t, cfg, src)

	expect := "## Bug\n" +
		"> Something isn't working\n\n" +
		"### Commits (1)\n\n" +
		"* [#12](u) - Bug (a@x.com)\n\n" +
		"  Steps:\n" +
		"  \n" +
		"  1. run it\n" +
		"  2. see it break\n\n" +
		"### Authors (1)\n\n" +
		"* Ann \\<a@x.com> ([@ann](https://github.com/ann))\n\n" +
		"## Other\n\n" +
		"### Commits (1)\n\n" +
		"* chore (b@x.com)\n\n" +
		"### Authors (1)\n\n" +
		"* Bob \\<b@x.com> ([@bob](https://github.com/bob))\n"
	if got != expect {
		t.Fatalf("expected:\n%s\ngot:\n%s", expect, got)
	}
}

func TestRenderGroupedStartsWithGroup(t *testing.T) {
	cfg := config.New(&config.Config{GroupBy: []string{config.GroupRelease, config.GroupLabel}})
	got := render(t, cfg, scenarioSource())

	if !strings.HasPrefix(got, "## 1.0\n") {
		t.Errorf("expected the document to start with the release heading, got:\n%s", got)
	}
	// one Commits and Authors section per group, none for the whole document
	if n := strings.Count(got, "### Commits ("); n != 2 {
		t.Errorf("expected 2 Commits sections, got %d:\n%s", n, got)
	}
	if n := strings.Count(got, "### Authors ("); n != 2 {
		t.Errorf("expected 2 Authors sections, got %d:\n%s", n, got)
	}
}

func TestIndentText(t *testing.T) {
	tcs := []struct {
		in     string
		indent string
		expect string
	}{
		{in: "a", indent: "  ", expect: "a"},
		{in: "a\nb", indent: "  ", expect: "a\n  b"},
		{in: "a\n\n    code", indent: "  ", expect: "a\n  \n      code"},
		{in: "a\n", indent: "   ", expect: "a\n   "},
	}
	for _, tc := range tcs {
		if got := indentText(tc.in, tc.indent); got != tc.expect {
			t.Errorf("indentText(%q, %q): expected %q, got %q", tc.in, tc.indent, tc.expect, got)
		}
	}
}

func TestRenderDescription(t *testing.T) {
	cfg := config.New(&config.Config{GroupBy: []string{config.GroupRelease}})
	src := scenarioSource()
	src.Releases[0].Body = "First release.\r\n\r\nEnjoy "
	got := render(t, cfg, src)

	expect := "## 1.0\n> First release.\n>\n> Enjoy\n\n### Commits (1)\n\n* [#12](u)"
	if !strings.Contains(got, expect) {
		t.Fatalf("expected output to contain:\n%s\ngot:\n%s", expect, got)
	}
}

func TestRenderEmpty(t *testing.T) {
	cfg := config.New(nil)
	if got := render(t, cfg, &Source{}); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}

	// every commit excluded
	cfg = config.New(&config.Config{ExcludePattern: "."})
	if got := render(t, cfg, scenarioSource()); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}

	if got := NewRenderer(language.English).Render(nil); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}
}

func TestBulletAt(t *testing.T) {
	tcs := []struct {
		depth  int
		expect string
	}{
		{depth: 0, expect: "* "},
		{depth: 1, expect: "* "},
		{depth: 2, expect: " * "},
		{depth: 3, expect: "   * "},
		{depth: 4, expect: "   * "},
	}
	for _, tc := range tcs {
		if got := bulletAt(tc.depth); got != tc.expect {
			t.Errorf("depth %d: expected %q, got %q", tc.depth, tc.expect, got)
		}
	}
}

func TestRenderDeepNesting(t *testing.T) {
	cfg := config.New(&config.Config{GroupBy: []string{config.GroupRelease, config.GroupLabel, config.GroupPath}})
	src := scenarioSource()
	src.Commits[0].Files = []string{"cmd/x.go"}
	got := render(t, cfg, src)
	for _, expect := range []string{"\n## 1.0\n", "\n#### Bug\n", "\n##### Commands\n", "\n   * [#12](u) - Bug (a@x.com)\n"} {
		if !strings.Contains(got, expect) {
			t.Errorf("expected output to contain %q, got:\n%s", expect, got)
		}
	}

	// lib/ matches no path group, so paths yield no structure.
	got = render(t, cfg, scenarioSource())
	if strings.Contains(got, "##### ") {
		t.Errorf("expected no path headings, got:\n%s", got)
	}
	if !strings.Contains(got, "\n * [#12](u) - Bug (a@x.com)\n") {
		t.Errorf("expected a depth 2 list item, got:\n%s", got)
	}

	cl, err := Build(cfg, scenarioSource())
	if err != nil {
		t.Fatal(err)
	}
	var levels []int
	var walk func(g *commit.Group)
	walk = func(g *commit.Group) {
		levels = append(levels, g.Level)
		for _, child := range g.Children {
			walk(child)
		}
	}
	walk(cl.Root)
	if len(levels) != 3 || levels[1] != 1 || levels[2] != 3 {
		t.Errorf("unexpected levels %v", levels)
	}
}

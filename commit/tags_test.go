package commit

import (
	"strings"
	"testing"

	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
)

func TestFlowTags(t *testing.T) {
	commits := []*model.Commit{
		{ID: "6"},
		{ID: "5", Tags: strs("v1.1")},
		{ID: "4"},
		{ID: "3", Tags: strs("v1.0", "stable")},
		{ID: "2"},
		{ID: "1"},
	}
	FlowTags(commits)

	expect := map[string]string{
		"6": "",
		"5": "v1.1",
		"4": "v1.1",
		"3": "v1.0,stable",
		"2": "v1.0,stable",
		"1": "v1.0,stable",
	}
	for _, c := range commits {
		if got := strings.Join(c.Tags, ","); got != expect[c.ID] {
			t.Errorf("commit %s: expected tags %q, got %q", c.ID, expect[c.ID], got)
		}
	}

	// inherited tags are copies
	commits[2].Tags[0] = "changed"
	if commits[1].Tags[0] != "v1.1" {
		t.Error("expected inherited tags not to share storage")
	}
}

func TestReleaseGroups(t *testing.T) {
	releases := []*model.Release{
		{TagName: "nightly", Name: "Nightly"},
		{TagName: "v1.0.0", Name: "1.0.0"},
		{TagName: "v1.10.0", Body: "  big one \n"},
		{TagName: "v1.2.0-rc.1", Name: "1.2.0 RC1"},
		{TagName: "v1.2.0"},
		{TagName: "v1.0.0", Name: "duplicate"},
		nil,
		{TagName: "edge"},
	}
	groups := ReleaseGroups(releases, config.GroupEntry{Name: "Unreleased"})
	if err := groups.Validate(); err != nil {
		t.Fatal(err)
	}

	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	expect := "default,v1.10.0,v1.2.0,v1.2.0-rc.1,v1.0.0,nightly,edge"
	if got := strings.Join(keys, ","); got != expect {
		t.Fatalf("expected order %q, got %q", expect, got)
	}

	if e, _ := groups.Lookup("v1.10.0"); e.Name != "v1.10.0" || e.Description != "big one" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e, _ := groups.Lookup("v1.0.0"); e.Name != "1.0.0" {
		t.Errorf("expected first release for duplicate tag, got %+v", e)
	}
	if e, _ := groups.Default(); e.Name != "Unreleased" {
		t.Errorf("unexpected default entry %+v", e)
	}
}

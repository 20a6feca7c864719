package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultGroupKey is the reserved key whose entry collects commits matching
// no other key in a GroupConfig.
const DefaultGroupKey = "default"

type GroupEntry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GroupConfig maps classification keys (release tags, label names or
// directories) to group descriptors. It is a list so that insertion order,
// which is also output order, survives the config file round trip.
type GroupConfig []GroupEntry

func (g GroupConfig) Lookup(key string) (GroupEntry, bool) {
	for _, e := range g {
		if e.Key == key {
			return e, true
		}
	}
	return GroupEntry{}, false
}

// Default returns the entry for DefaultGroupKey.
func (g GroupConfig) Default() (GroupEntry, bool) {
	return g.Lookup(DefaultGroupKey)
}

// Keys returns the explicit (non-default) keys in order.
func (g GroupConfig) Keys() []string {
	keys := make([]string, 0, len(g))
	for _, e := range g {
		if e.Key == DefaultGroupKey {
			continue
		}
		keys = append(keys, e.Key)
	}
	return keys
}

func (g GroupConfig) Validate() error {
	if len(g) == 0 {
		return errors.New("at least one group is required")
	}
	seen := make(map[string]bool, len(g))
	for i, e := range g {
		if e.Key == "" {
			return fmt.Errorf("group %d: key is required", i)
		}
		if e.Name == "" {
			return fmt.Errorf("group %q: name is required", e.Key)
		}
		if seen[e.Key] {
			return fmt.Errorf("group %q: duplicate key", e.Key)
		}
		seen[e.Key] = true
	}
	if _, ok := g.Default(); !ok {
		return fmt.Errorf("a %q group is required", DefaultGroupKey)
	}
	return nil
}

func (g GroupConfig) TextSummary(w io.Writer, title string) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(fmt.Sprintf("%s:\n", title))
	for _, e := range g {
		bw.WriteString(fmt.Sprintf("  %16s: %s", e.Key, e.Name))
		if e.Description != "" {
			bw.WriteString(fmt.Sprintf(" (%s)", e.Description))
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// Package config holds ghlog's runtime configuration: defaults, group tables,
// file and flag overrides, and the terminal the tool logs to.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imdario/mergo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
)

// Grouping dimension names, in the order they are attempted.
const (
	GroupRelease = "release"
	GroupLabel   = "label"
	GroupPath    = "path"
)

var knownDimensions = []string{GroupRelease, GroupLabel, GroupPath}

// StdoutFile is the OutputFile value that writes to standard output.
const StdoutFile = "-"

type Config struct {
	Verbose bool `json:"verbose,omitempty"`
	Debug   bool `json:"debug,omitempty"`
	Quiet   bool `json:"quiet,omitempty"`

	RevisionRange  string   `json:"revision_range,omitempty"`
	ExcludePattern string   `json:"exclude_pattern,omitempty"`
	OutputFile     string   `json:"output_file,omitempty"`
	OutputEncoding string   `json:"output_encoding,omitempty"`
	AllParents     bool     `json:"all_parents,omitempty"`
	Paths          []string `json:"paths,omitempty"`
	Upstream       string   `json:"upstream,omitempty"`
	Fetch          bool     `json:"fetch,omitempty"`

	Owner     string `json:"owner,omitempty"`
	Repo      string `json:"repo,omitempty"`
	GitHubURL string `json:"github_url,omitempty"`
	Token     string `json:"-"`
	NoGitHub  bool   `json:"no_github,omitempty"`

	Locale          string      `json:"locale,omitempty"`
	GroupBy         []string    `json:"group_by"`
	LabelGroups     GroupConfig `json:"labels,omitempty"`
	PathGroups      GroupConfig `json:"path_groups,omitempty"`
	UnreleasedGroup GroupEntry  `json:"unreleased,omitempty"`

	// AuthorsTemplate is a text/template for the authors command's output.
	AuthorsTemplate string `json:"authors_template,omitempty"`

	Term TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
		// an explicitly empty list disables grouping entirely.
		if overrides.GroupBy != nil && len(overrides.GroupBy) == 0 {
			cfg.GroupBy = []string{}
		}
	}
	return cfg
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose && !c.Debug {
		return
	}
	c.Printf(msg, args...)
}

// Encoding resolves OutputEncoding to a text encoding. Names are WHATWG
// encoding labels, e.g. "utf-8", "utf8", "latin1", "utf-16le".
func (c Config) Encoding() (encoding.Encoding, error) {
	name := c.OutputEncoding
	if name == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("config: unknown output encoding %q: %w", name, err)
	}
	return enc, nil
}

// Language parses Locale, used to collate author names.
func (c Config) Language() (language.Tag, error) {
	if c.Locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("config: invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// Repository returns "owner/repo", or an empty string if either is unknown.
func (c Config) Repository() string {
	if c.Owner == "" || c.Repo == "" {
		return ""
	}
	return c.Owner + "/" + c.Repo
}

func (c Config) Validate() error {
	var errs []string
	for _, dim := range c.GroupBy {
		if !oneOf(dim, knownDimensions) {
			errs = append(errs, fmt.Sprintf("unknown group dimension %q (expected one of %s)", dim, strings.Join(knownDimensions, ", ")))
		}
	}
	if err := c.LabelGroups.Validate(); err != nil {
		errs = append(errs, "labels: "+err.Error())
	}
	if err := c.PathGroups.Validate(); err != nil {
		errs = append(errs, "path_groups: "+err.Error())
	}
	if c.UnreleasedGroup.Name == "" {
		errs = append(errs, "unreleased: name is required")
	}
	if _, err := c.Encoding(); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := c.Language(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

func oneOf(s string, l []string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/runner"
	"github.com/jeffrom/ghlog/vcs"
	"github.com/jeffrom/ghlog/vcs/gitcli"
	"github.com/jeffrom/ghlog/vcs/github"
)

var (
	// overridden by go build -X
	Version string
)

var _ runner.Tracker = (*github.Client)(nil)

// configFileNames are looked for in the working directory and its parents.
var configFileNames = []string{"ghlog.yaml", ".ghlog.yaml"}

var tokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

const (
	cmdChangelog = "changelog"
	cmdAuthors   = "authors"
)

type options struct {
	help        bool
	version     bool
	cfgFile     string
	printConfig bool
	printGroups bool
	stats       bool
	noGroup     bool
}

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	return runWithTerminalIO(rawArgs, config.DefaultTermIO)
}

func runWithTerminalIO(rawArgs []string, termio config.TerminalIO) error {
	name := "ghlog"
	if len(rawArgs) > 0 {
		name = filepath.Base(rawArgs[0])
	}
	args := rawArgs[1:]
	subcmd := cmdChangelog
	if len(args) > 0 && (args[0] == cmdChangelog || args[0] == cmdAuthors) {
		subcmd = args[0]
		args = args[1:]
	}

	cfg := config.NewWithTerminalIO(nil, &termio)
	if subcmd == cmdAuthors {
		cfg.OutputFile = config.StdoutFile
	}
	opts := &options{}
	flags := newFlagSet(name, subcmd, &cfg, opts)
	if err := flags.Parse(args); err != nil {
		return err
	}

	if opts.help {
		usage(cfg, name, flags)
		return nil
	}
	if opts.version {
		cfg.Printf("%s", Version)
		return nil
	}
	if err := loadDotEnv(cfg); err != nil {
		return err
	}

	fileCfg, err := readConfigYAML(opts.cfgFile)
	if err != nil {
		return err
	}
	if fileCfg != nil {
		// defaults < config file < flags
		cfg = config.NewWithTerminalIO(fileCfg, &termio)
		// output_file names the changelog
		if subcmd == cmdAuthors {
			cfg.OutputFile = config.StdoutFile
		}
		flags = newFlagSet(name, subcmd, &cfg, opts)
		if err := flags.Parse(args); err != nil {
			return err
		}
	}
	if opts.noGroup {
		cfg.GroupBy = []string{}
	}
	if cfg.Token == "" {
		cfg.Token = tokenFromEnv()
	}
	if opts.printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return nil
	}

	// keep stdout clean when the document is piped
	docOut := cfg.Term.Stdout
	if writesToStdout(cfg) && !cfg.Term.StdoutIsTerminal() {
		cfg.Term = cfg.Term.ToStderr()
	}

	if cfg.Debug {
		b, err := json.MarshalIndent(cfg, "", "  ")
		die(err)
		cfg.Debugf("config: %s", string(b))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	// done setting up config

	ctx := context.Background()
	git := gitcli.New(cfg, "")
	if len(cfg.Paths) == 0 {
		paths, err := subdirPaths(ctx, git)
		if err != nil {
			return err
		}
		cfg.Paths = paths
	}
	tracker := newTracker(ctx, &cfg, git)

	rnr, err := runner.New(cfg, git, tracker)
	if err != nil {
		return err
	}
	if opts.printGroups {
		return printGroups(ctx, cfg, rnr, docOut)
	}

	if subcmd == cmdAuthors {
		authors, err := rnr.Authors(ctx)
		if err != nil {
			return err
		}
		b := &bytes.Buffer{}
		if err := rnr.WriteAuthors(b, authors); err != nil {
			return err
		}
		return rnr.Write(docOut, b.String())
	}

	cl, err := rnr.Changelog(ctx)
	if err != nil {
		return err
	}
	if opts.stats {
		return rnr.Stats(cl).TextSummary(docOut)
	}
	doc := rnr.Render(cl)
	if doc == "" {
		cfg.Printf("no commits found")
	}
	return rnr.Write(docOut, doc)
}

func newFlagSet(name, subcmd string, cfg *config.Config, opts *options) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name+" "+subcmd, pflag.ContinueOnError)
	flags.BoolVarP(&opts.help, "help", "h", false, "show help")
	flags.BoolVarP(&opts.version, "version", "V", false, "print version and exit")
	flags.StringVarP(&cfg.RevisionRange, "revision-range", "r", cfg.RevisionRange, "git revision `range` containing the commits to include")
	flags.StringVarP(&cfg.ExcludePattern, "exclude-pattern", "x", cfg.ExcludePattern, "regular expression `pattern` matching commits to exclude")
	flags.StringVarP(&cfg.OutputFile, "output-file", "f", cfg.OutputFile, "write output to `file` (- for stdout)")
	flags.StringVarP(&cfg.OutputEncoding, "output-encoding", "e", cfg.OutputEncoding, "output `encoding`")
	flags.StringArrayVarP(&cfg.Paths, "path", "p", cfg.Paths, "only include commits touching `path` (default: the working directory)")
	flags.BoolVar(&cfg.AllParents, "all-parents", cfg.AllParents, "follow all parents of merge commits")
	flags.StringVar(&cfg.Upstream, "upstream", cfg.Upstream, "git `remote` to read the GitHub repository from")
	flags.BoolVar(&cfg.Fetch, "fetch", cfg.Fetch, "fetch tags from the upstream before reading commits")
	flags.StringVar(&cfg.Owner, "owner", cfg.Owner, "GitHub repository `owner`")
	flags.StringVar(&cfg.Repo, "repo", cfg.Repo, "GitHub repository `name`")
	flags.StringVar(&cfg.GitHubURL, "github-url", cfg.GitHubURL, "GitHub Enterprise API `url`")
	flags.BoolVar(&cfg.NoGitHub, "no-github", cfg.NoGitHub, "don't read issues, releases or accounts from GitHub")
	flags.StringVar(&cfg.Locale, "locale", cfg.Locale, "`locale` used to sort authors")
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print additional debugging info")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "print configuration and debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print as little as necessary")
	flags.BoolVar(&opts.printConfig, "print-config", false, "print configuration and exit")
	flags.BoolVar(&opts.printGroups, "print-groups", false, "print group tables and exit")

	switch subcmd {
	case cmdChangelog:
		flags.StringSliceVarP(&cfg.GroupBy, "group-by", "g", cfg.GroupBy, "group commits by `dimension`s (release, label, path)")
		flags.BoolVar(&opts.noGroup, "no-group", false, "don't group commits")
		flags.BoolVarP(&opts.stats, "stats", "S", false, "print changelog stats instead of the changelog")
	case cmdAuthors:
		flags.StringVar(&cfg.AuthorsTemplate, "template", cfg.AuthorsTemplate, "go text/template `format` for the author list")
	}
	return flags
}

func writesToStdout(cfg config.Config) bool {
	return cfg.OutputFile == "" || cfg.OutputFile == config.StdoutFile
}

func tokenFromEnv() string {
	for _, name := range tokenEnvVars {
		if token := os.Getenv(name); token != "" {
			return token
		}
	}
	return ""
}

// loadDotEnv loads .env from the working directory. Variables already set
// in the environment win.
func loadDotEnv(cfg config.Config) error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading .env: %w", err)
	}
	cfg.Debugf("loaded .env")
	return nil
}

// subdirPaths limits commits to the working directory when it's below the
// repository root.
func subdirPaths(ctx context.Context, v vcs.Interface) ([]string, error) {
	root, err := v.RepositoryRoot(ctx)
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, _ = filepath.EvalSymlinks(root)
	wd, _ = filepath.EvalSymlinks(wd)
	rel, err := filepath.Rel(root, wd)
	if err != nil || rel == "." {
		return nil, nil
	}
	return []string{"."}, nil
}

// newTracker returns a GitHub client for the repository, or nil if GitHub is
// disabled or the repository can't be determined.
func newTracker(ctx context.Context, cfg *config.Config, v vcs.Interface) runner.Tracker {
	if cfg.NoGitHub {
		return nil
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		owner, repo, err := v.ReadNameFromRemoteURL(ctx, cfg.Upstream)
		if err != nil {
			cfg.Debugf("not reading from GitHub: %v", err)
			return nil
		}
		if cfg.Owner == "" {
			cfg.Owner = owner
		}
		if cfg.Repo == "" {
			cfg.Repo = repo
		}
	}
	if cfg.Token == "" {
		cfg.Debugf("no GitHub token set in %v, making unauthenticated requests", tokenEnvVars)
	}

	client, err := github.NewClient(*cfg)
	if err != nil {
		cfg.Debugf("not reading from GitHub: %v", err)
		return nil
	}
	cfg.Debugf("reading issues and releases from %s", cfg.Repository())
	return client
}

func printGroups(ctx context.Context, cfg config.Config, rnr *runner.Runner, w io.Writer) error {
	releases, err := rnr.ReleaseGroups(ctx)
	if err != nil {
		return err
	}

	tables := []struct {
		title string
		table config.GroupConfig
	}{
		{title: config.GroupRelease, table: releases},
		{title: config.GroupLabel, table: cfg.LabelGroups},
		{title: config.GroupPath, table: cfg.PathGroups},
	}
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := t.table.TextSummary(w, t.title); err != nil {
			return err
		}
	}
	return nil
}

func die(err error) {
	if err != nil {
		panic(err)
	}
}

func usage(cfg config.Config, name string, flags *pflag.FlagSet) {
	cfg.Printf(`%s [changelog|authors] [flags]

Generates a changelog from git history, grouped by GitHub release, issue
label and path.

FLAGS
%s

CONFIGURATION

ghlog.yaml (or .ghlog.yaml) is read from the working directory or the nearest
parent directory that has one. A GitHub token is read from the GITHUB_TOKEN or
GH_TOKEN environment variables, or from a .env file.

EXAMPLES

# write CHANGELOG.md for the whole history
$ %s

# print the changelog since v1.0.0, excluding bot commits
$ %s -r v1.0.0.. -x robot -f -

# group by release and path only
$ %s --group-by release,path

# list the authors of the commits since v1.0.0
$ %s authors -r v1.0.0..
`, name, flags.FlagUsages(), name, name, name, name)
}

func readConfigYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, err
		}
		return parseConfigYAML(p, b)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range configFileNames {
			candPath := filepath.Join(wd, name)
			b, err := ioutil.ReadFile(candPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, err
			}
			return parseConfigYAML(candPath, b)
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return nil, nil
}

func parseConfigYAML(p string, b []byte) (*config.Config, error) {
	cfg := &config.Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

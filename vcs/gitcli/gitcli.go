// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
	"github.com/jeffrom/ghlog/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

var _ vcs.Interface = (*Git)(nil)

// New returns a Git running commands in wd. Paths in a vcs.CommitQuery are
// relative to wd.
func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

func (g *Git) Fetch(ctx context.Context, upstream string) error {
	if upstream == "" {
		upstream = "origin"
	}
	_, err := g.call(ctx, []string{"fetch", "--tags", upstream})
	return err
}

func (g *Git) RepositoryRoot(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--show-toplevel"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

const (
	logStart = "_START_"
	logSep   = "_SEP_"
	logEnd   = "_END_"

	logFields = 6

	// authorDateLayout is the layout of %ai, e.g. 2020-08-17 16:26:10 -0700
	authorDateLayout = "2006-01-02 15:04:05 -0700"
)

var logFormat = "--pretty=tformat:" + logStart + strings.Join([]string{"%H", "%aN", "%ae", "%ai", "%D", "%B"}, logSep) + logEnd

func (g *Git) ReadCommits(ctx context.Context, query vcs.CommitQuery) ([]*model.Commit, error) {
	args := []string{"log", logFormat, "--decorate=short", "--name-only"}
	if query.FirstParent {
		// -m with --first-parent lists the files a merge brought in
		// relative to its first parent.
		args = append(args, "--first-parent", "-m")
	}
	if query.RevisionRange != "" {
		args = append(args, query.RevisionRange)
	}
	args = append(args, "--")
	args = append(args, query.Paths...)

	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	return ParseLog(b)
}

// ParseLog parses the output of git log as run by ReadCommits.
func ParseLog(b []byte) ([]*model.Commit, error) {
	var commits []*model.Commit
	records := strings.Split(string(b), logStart)
	for _, rec := range records[1:] {
		end := strings.LastIndex(rec, logEnd)
		if end < 0 {
			return nil, fmt.Errorf("gitcli: unterminated git log record: %q", rec)
		}
		// the message comes last so it may contain anything.
		parts := strings.SplitN(rec[:end], logSep, logFields)
		if len(parts) != logFields {
			return nil, fmt.Errorf("gitcli: expected %d parts from git log, got %d", logFields, len(parts))
		}

		authorDate, err := time.Parse(authorDateLayout, parts[3])
		if err != nil {
			return nil, fmt.Errorf("gitcli: parsing author date: %w", err)
		}

		commits = append(commits, &model.Commit{
			ID: parts[0],
			Author: model.Author{
				ID:    parts[2],
				Name:  parts[1],
				Email: parts[2],
			},
			AuthorDate: authorDate,
			Message:    strings.TrimSpace(parts[5]),
			Tags:       ParseDecorations(parts[4]),
			Files:      splitLines(rec[end+len(logEnd):]),
		})
	}
	return commits, nil
}

// ParseDecorations returns the tag names in a %D decoration string, e.g.
// "HEAD -> main, tag: v1.0, origin/main".
func ParseDecorations(s string) []string {
	var tags []string
	for _, ref := range strings.Split(s, ",") {
		ref = strings.TrimSpace(ref)
		if tag := strings.TrimPrefix(ref, "tag: "); tag != ref && tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// splitLines returns the non-blank lines of s, trimmed.
func splitLines(s string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ReadTags lists the repository's tags matching the glob pattern, or all of
// them if pattern is empty.
func (g *Git) ReadTags(ctx context.Context, pattern string) ([]string, error) {
	args := []string{"tag", "--list"}
	if pattern != "" {
		args = append(args, pattern)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	return splitLines(string(b)), nil
}

func (g *Git) ReadNameFromRemoteURL(ctx context.Context, upstream string) (string, string, error) {
	if upstream == "" {
		upstream = "origin"
	}
	b, err := g.call(ctx, []string{"remote", "get-url", upstream})
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode() > 0 {
			g.cfg.Debugf("gitcli: reading remote url: %v", err)
			return "", "", vcs.NotFoundError{Ref: upstream}
		}
		return "", "", err
	}
	return ParseRemoteURL(strings.TrimSpace(string(b)))
}

var (
	sshRemote   = regexp.MustCompile(`^(?:ssh://)?[^@/]+@([^:/]+)(?::\d+/|[:/])([^/]+)/(.+?)(?:\.git)?/?$`)
	httpsRemote = regexp.MustCompile(`^(?:https?|git)://(?:[^@/]+@)?([^/]+)/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// ParseRemoteURL returns the owner and repository name of a remote url like
// git@github.com:owner/repo.git or https://github.com/owner/repo.
func ParseRemoteURL(url string) (string, string, error) {
	for _, re := range []*regexp.Regexp{sshRemote, httpsRemote} {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[2], m[3], nil
		}
	}
	return "", "", fmt.Errorf("gitcli: unrecognized remote url %q", url)
}

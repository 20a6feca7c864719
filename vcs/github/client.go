// Package github reads issues, releases and commit authors from the GitHub
// API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/jeffrom/ghlog/config"
	"github.com/jeffrom/ghlog/model"
)

const perPage = 100

type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

type RepositoriesService interface {
	ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

// APIError is returned when a GitHub API call fails. StatusCode is zero when
// no response was received.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github: %s: %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(op string, resp *github.Response, err error) *APIError {
	apiErr := &APIError{Op: op, Err: err}
	var errResp *github.ErrorResponse
	var rateErr *github.RateLimitError
	switch {
	case resp != nil && resp.Response != nil:
		apiErr.StatusCode = resp.StatusCode
	case errors.As(err, &errResp) && errResp.Response != nil:
		apiErr.StatusCode = errResp.Response.StatusCode
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		apiErr.StatusCode = rateErr.Response.StatusCode
	}
	return apiErr
}

// Client reads a single repository's issues, releases and commit authors.
type Client struct {
	cfg    config.Config
	issues IssuesService
	repos  RepositoriesService
	owner  string
	repo   string
}

// NewClient returns a Client for cfg.Owner/cfg.Repo, authenticated with
// cfg.Token when it's set. cfg.GitHubURL selects a GitHub Enterprise API.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, errors.New("github: owner and repo are required")
	}

	transport := http.DefaultTransport
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	limiter := NewRateLimiter(cfg.Debugf)
	httpClient := &http.Client{Transport: limiter.Middleware(transport)}

	client := github.NewClient(httpClient)
	if cfg.GitHubURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.GitHubURL, cfg.GitHubURL)
		if err != nil {
			return nil, fmt.Errorf("github: invalid url %q: %w", cfg.GitHubURL, err)
		}
	}
	return NewClientWithServices(cfg, client.Issues, client.Repositories), nil
}

func NewClientWithServices(cfg config.Config, issues IssuesService, repos RepositoriesService) *Client {
	return &Client{
		cfg:    cfg,
		issues: issues,
		repos:  repos,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
	}
}

// ListIssues returns every issue and pull request in the repository,
// open or closed.
func (c *Client) ListIssues(ctx context.Context) ([]*model.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var res []*model.Issue
	for {
		issues, resp, err := c.issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, newAPIError("list issues", resp, err)
		}
		for _, issue := range issues {
			res = append(res, convertIssue(issue))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	c.cfg.Debugf("github: read %d issues from %s/%s", len(res), c.owner, c.repo)
	return res, nil
}

func convertIssue(issue *github.Issue) *model.Issue {
	labels := make([]model.Label, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, model.Label{Name: label.GetName()})
	}
	return &model.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		URL:    issue.GetHTMLURL(),
		Labels: labels,
	}
}

// ListReleases returns the repository's releases, newest first.
func (c *Client) ListReleases(ctx context.Context) ([]*model.Release, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var res []*model.Release
	for {
		releases, resp, err := c.repos.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, newAPIError("list releases", resp, err)
		}
		for _, rel := range releases {
			res = append(res, &model.Release{
				TagName: rel.GetTagName(),
				Name:    rel.GetName(),
				Body:    rel.GetBody(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	c.cfg.Debugf("github: read %d releases from %s/%s", len(res), c.owner, c.repo)
	return res, nil
}

// maxCommitPages bounds the history ResolveAuthors walks looking for commits
// GitHub may never return, such as unpushed ones.
const maxCommitPages = 20

// ResolveAuthors replaces the git identity of each commit's author with
// their GitHub account, when GitHub knows the commit and links it to one.
// Commits are looked up by walking the history of the newest commit, or of
// the default branch if GitHub doesn't have it. The walk stops once it is
// older than every commit still missing, or after maxCommitPages pages.
func (c *Client) ResolveAuthors(ctx context.Context, commits []*model.Commit) error {
	pending := make(map[string][]*model.Commit, len(commits))
	for _, commit := range commits {
		pending[commit.ID] = append(pending[commit.ID], commit)
	}
	if len(pending) == 0 {
		return nil
	}

	opts := &github.CommitsListOptions{
		SHA:         commits[0].ID,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	for pages := 0; len(pending) > 0; {
		repoCommits, resp, err := c.repos.ListCommits(ctx, c.owner, c.repo, opts)
		if err != nil {
			apiErr := newAPIError("list commits", resp, err)
			if opts.SHA != "" && opts.Page == 0 && isUnknownCommit(apiErr) {
				c.cfg.Debugf("github: %s not found upstream, using the default branch", commits[0].ShortID())
				opts.SHA = ""
				continue
			}
			return apiErr
		}
		pages++

		for _, rc := range repoCommits {
			matches, ok := pending[rc.GetSHA()]
			if !ok {
				continue
			}
			delete(pending, rc.GetSHA())

			user := rc.GetAuthor()
			if user == nil || user.GetID() == 0 {
				continue
			}
			for _, commit := range matches {
				commit.Author.ID = strconv.FormatInt(user.GetID(), 10)
				commit.Author.Login = user.GetLogin()
				commit.Author.URL = user.GetHTMLURL()
			}
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		if walkedPast(repoCommits, pending) {
			c.cfg.Debugf("github: history is older than the commits left to resolve")
			break
		}
		if pages >= maxCommitPages {
			c.cfg.Debugf("github: stopped resolving authors after %d pages", pages)
			break
		}
		opts.Page = resp.NextPage
	}
	if len(pending) > 0 {
		c.cfg.Debugf("github: %d commits not found upstream", len(pending))
	}
	return nil
}

// walkedPast reports whether the last commit of a page was authored before
// every pending commit. Commits without dates never end the walk.
func walkedPast(page []*github.RepositoryCommit, pending map[string][]*model.Commit) bool {
	if len(page) == 0 {
		return false
	}
	last := page[len(page)-1].GetCommit().GetAuthor().GetDate().Time
	if last.IsZero() {
		return false
	}
	for _, commits := range pending {
		for _, commit := range commits {
			if commit.AuthorDate.IsZero() || !commit.AuthorDate.After(last) {
				return false
			}
		}
	}
	return true
}

func isUnknownCommit(err *APIError) bool {
	return err.StatusCode == http.StatusNotFound || err.StatusCode == http.StatusUnprocessableEntity
}

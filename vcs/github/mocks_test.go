package github

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"
)

func mockResponse(args mock.Arguments) *github.Response {
	if resp, ok := args.Get(1).(*github.Response); ok {
		return resp
	}
	return nil
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	// opts is reused across pages, so record the page asked for.
	args := m.Called(ctx, owner, repo, opts.ListOptions.Page)
	issues, _ := args.Get(0).([]*github.Issue)
	return issues, mockResponse(args), args.Error(2)
}

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts.Page)
	releases, _ := args.Get(0).([]*github.RepositoryRelease)
	return releases, mockResponse(args), args.Error(2)
}

func (m *MockRepoService) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts.SHA, opts.Page)
	commits, _ := args.Get(0).([]*github.RepositoryCommit)
	return commits, mockResponse(args), args.Error(2)
}

package incident

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"statusboard/config"
	"strings"

	"github.com/google/go-github/v66/github"
)

// Tracker is the issue tracker the incidents live in.
type Tracker interface {
	CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error)
	GetIssue(ctx context.Context, number int) (*github.Issue, error)
	ListComments(ctx context.Context, number int) ([]*github.IssueComment, error)
}

type GitHubTracker struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubTracker builds a client for cfg.Owner/cfg.Repo. BaseURL points it
// at a GitHub Enterprise or test server.
func NewGitHubTracker(cfg *config.GitHubConfig, hc *http.Client) (*GitHubTracker, error) {
	client := github.NewClient(hc)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = u
	}

	return &GitHubTracker{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
	}, nil
}

func (t *GitHubTracker) CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error) {
	issue, _, err := t.client.Issues.Create(ctx, t.owner, t.repo, &github.IssueRequest{
		Title:  github.String(title),
		Body:   github.String(body),
		Labels: &labels,
	})
	return issue, err
}

func (t *GitHubTracker) GetIssue(ctx context.Context, number int) (*github.Issue, error) {
	issue, _, err := t.client.Issues.Get(ctx, t.owner, t.repo, number)
	return issue, err
}

// ListComments follows pagination and returns every comment, oldest first.
func (t *GitHubTracker) ListComments(ctx context.Context, number int) ([]*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		Sort:        github.String("created"),
		Direction:   github.String("asc"),
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.IssueComment
	for {
		page, resp, err := t.client.Issues.ListComments(ctx, t.owner, t.repo, number, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

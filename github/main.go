package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v50/github"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Branch is a repository branch as reported by the API.
type Branch struct {
	Name      string
	Protected bool
}

// Client talks to a single GitHub repository.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// Parse splits an "owner/repo" string.
func Parse(repository string) (string, string, error) {
	fields := strings.Split(strings.Trim(repository, "/"), "/")
	if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
		return "", "", errors.Errorf("cannot parse owner/repo from %q", repository)
	}

	return fields[0], fields[1], nil
}

// New creates a client for the given "owner/repo". An empty token means
// anonymous requests, subject to the API rate limits.
func New(ctx context.Context, repository, token string) (*Client, error) {
	owner, repo, err := Parse(repository)
	if err != nil {
		return nil, err
	}

	var httpClient *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	return &Client{
		gh:    gh.NewClient(httpClient),
		owner: owner,
		repo:  repo,
	}, nil
}

// SetBaseURL points the client at a different API root, used by tests.
func (c *Client) SetBaseURL(base string) error {
	parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return errors.Wrap(err, "cannot parse base url")
	}

	c.gh.BaseURL = parsed

	return nil
}

// TagRefs returns the raw tag ref names ("refs/tags/v1.2.3") in API order.
func (c *Client) TagRefs(ctx context.Context) ([]string, error) {
	opts := &gh.ReferenceListOptions{
		Ref:         "tags",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var refs []string

	for {
		page, resp, err := c.gh.Git.ListMatchingRefs(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, classify(err)
		}

		for _, ref := range page {
			refs = append(refs, ref.GetRef())
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	log.WithFields(log.Fields{
		"owner": c.owner,
		"repo":  c.repo,
		"len":   len(refs),
	}).Debug("retrieved tag refs")

	return refs, nil
}

// Branches returns the repository branches in API order.
func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	opts := &gh.BranchListOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var branches []Branch

	for {
		page, resp, err := c.gh.Repositories.ListBranches(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, classify(err)
		}

		for _, branch := range page {
			branches = append(branches, Branch{
				Name:      branch.GetName(),
				Protected: branch.GetProtected(),
			})
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	log.WithFields(log.Fields{
		"owner": c.owner,
		"repo":  c.repo,
		"len":   len(branches),
	}).Debug("retrieved branches")

	return branches, nil
}

// RepoURL returns the browsable repository URL.
func (c *Client) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/", c.owner, c.repo)
}

// RegistryURL returns the raw content URL for the given version.
func (c *Client) RegistryURL(version string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/", c.owner, c.repo, version)
}

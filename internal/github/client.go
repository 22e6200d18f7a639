package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

const (
	DefaultHost      = "github.com"
	DefaultUserAgent = "gh-comment-pace"
	DefaultTimeout   = 30 * time.Second
)

// GraphQLQuerier runs a typed GraphQL query. *api.GraphQLClient implements it.
type GraphQLQuerier interface {
	QueryWithContext(ctx context.Context, name string, q interface{}, variables map[string]interface{}) error
}

var _ GraphQLQuerier = (*api.GraphQLClient)(nil)

// Options configures the API clients
type Options struct {
	// Host is the GitHub host the token belongs to
	Host string
	// BaseURL overrides the REST API root, e.g. "https://api.github.com/".
	// Empty means go-gh derives it from Host.
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
	PageSize  int
	MaxPages  int
	// Transport overrides the HTTP transport
	Transport http.RoundTripper
	// HTTPLog receives a trace of every request when set
	HTTPLog io.Writer
	Logger  *slog.Logger
}

// Client wraps GitHub API clients
type Client struct {
	rest      Requester
	gql       GraphQLQuerier
	paginator *Paginator
	baseURL   string
}

// NewClient builds the REST and GraphQL clients once; they are shared by
// every request of the run.
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("a GitHub token is required")
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BaseURL != "" {
		if err := CheckAPIHost(opts.BaseURL, opts.Host); err != nil {
			return nil, err
		}
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	clientOpts := api.ClientOptions{
		Host:      opts.Host,
		AuthToken: opts.Token,
		Headers: map[string]string{
			"Authorization": "token " + opts.Token,
			"User-Agent":    opts.UserAgent,
			"Accept":        "application/vnd.github+json",
		},
		Timeout:   opts.Timeout,
		Transport: transport,
	}
	if opts.HTTPLog != nil {
		clientOpts.Log = opts.HTTPLog
		clientOpts.LogVerboseHTTP = true
	}

	restClient, err := api.NewRESTClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	gqlClient, err := api.NewGraphQLClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return NewClientWith(restClient, gqlClient, opts), nil
}

// CheckAPIHost fails when apiURL is outside the domain of host. go-gh only
// sends the token to hosts in that domain, so such a client would run
// unauthenticated.
func CheckAPIHost(apiURL, host string) error {
	u, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	if !SameDomain(u.Hostname(), host) {
		return fmt.Errorf("API URL %s is not on host %s; the token would not be sent (set host to match)", apiURL, host)
	}
	return nil
}

// SameDomain reports whether requestHost is domain or one of its subdomains
func SameDomain(requestHost, domain string) bool {
	requestHost = strings.ToLower(requestHost)
	domain = strings.ToLower(domain)
	return requestHost == domain || strings.HasSuffix(requestHost, "."+domain)
}

// NewClientWith wires already constructed transports
func NewClientWith(rest Requester, gql GraphQLQuerier, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		rest:      rest,
		gql:       gql,
		paginator: NewPaginator(rest, opts.PageSize, opts.MaxPages, opts.Logger),
		baseURL:   baseURL,
	}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// GetCurrentUser fetches the authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (models.User, error) {
	resp, err := c.rest.RequestWithContext(ctx, http.MethodGet, c.endpoint("user"), nil)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			err = &RemoteRequestFailedError{Status: httpErr.StatusCode, URL: c.endpoint("user"), Message: httpErr.Message}
		}
		return models.User{}, &AuthenticationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.User{}, &AuthenticationError{
			Err: &RemoteRequestFailedError{Status: resp.StatusCode, URL: c.endpoint("user")},
		}
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return models.User{}, &AuthenticationError{
			Err: &MalformedResponseError{URL: c.endpoint("user"), Err: err},
		}
	}
	if user.Login == "" {
		return models.User{}, &AuthenticationError{Err: fmt.Errorf("response has no login")}
	}
	return user, nil
}

// CommentsPath returns the list endpoint of category for the target
func CommentsPath(target models.PullRequestTarget, category models.CommentCategory) (string, error) {
	switch category {
	case models.ReviewComments:
		return fmt.Sprintf("repos/%s/%s/pulls/%d/comments", target.Owner, target.Repo, target.Number), nil
	case models.Reviews:
		return fmt.Sprintf("repos/%s/%s/pulls/%d/reviews", target.Owner, target.Repo, target.Number), nil
	case models.IssueComments:
		return fmt.Sprintf("repos/%s/%s/issues/%d/comments", target.Owner, target.Repo, target.Number), nil
	default:
		return "", fmt.Errorf("unknown comment category %q", category)
	}
}

// ListComments fetches every record of one comment category of a PR
func (c *Client) ListComments(ctx context.Context, target models.PullRequestTarget, category models.CommentCategory) ([]json.RawMessage, error) {
	path, err := CommentsPath(target, category)
	if err != nil {
		return nil, err
	}
	records, err := c.paginator.FetchAll(ctx, c.endpoint(path))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", category.Label(), err)
	}
	return records, nil
}

// SearchCommentedPRs finds PRs in repo the user has commented on, newest first
func (c *Client) SearchCommentedPRs(ctx context.Context, repo models.Repository, login string) ([]models.PullRequestInfo, error) {
	var q struct {
		Search struct {
			Nodes []struct {
				PullRequest struct {
					Number    int
					Title     string
					State     string
					IsDraft   bool
					UpdatedAt string
					CreatedAt string
					Author    struct {
						Login string
					}
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(type: ISSUE, query: $query, first: $first)"`
	}

	variables := map[string]interface{}{
		"query": graphql.String(fmt.Sprintf("repo:%s/%s is:pr commenter:%s sort:updated-desc", repo.Owner, repo.Name, login)),
		"first": graphql.Int(100),
	}

	if err := c.gql.QueryWithContext(ctx, "CommentedPullRequests", &q, variables); err != nil {
		return nil, fmt.Errorf("failed to search pull requests: %w", err)
	}

	prs := make([]models.PullRequestInfo, 0, len(q.Search.Nodes))
	for _, node := range q.Search.Nodes {
		pr := node.PullRequest
		if pr.Number == 0 {
			continue
		}
		prs = append(prs, models.PullRequestInfo{
			Number:    pr.Number,
			Title:     pr.Title,
			User:      pr.Author.Login,
			State:     pr.State,
			Draft:     pr.IsDraft,
			UpdatedAt: pr.UpdatedAt,
			CreatedAt: pr.CreatedAt,
		})
	}
	return prs, nil
}

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cli/go-gh/v2/pkg/api"
)

const (
	// DefaultPageSize is the largest page GitHub serves for list endpoints
	DefaultPageSize = 100
	// DefaultMaxPages bounds a single paginated fetch
	DefaultMaxPages = 10000

	pageSizeParam = "per_page"
)

// Requester issues a single REST request. *api.RESTClient implements it.
type Requester interface {
	RequestWithContext(ctx context.Context, method string, path string, body io.Reader) (*http.Response, error)
}

var _ Requester = (*api.RESTClient)(nil)

// Paginator walks Link-header pagination of list endpoints
type Paginator struct {
	rest     Requester
	pageSize int
	maxPages int
	logger   *slog.Logger
}

// NewPaginator creates a paginator. Non-positive pageSize and maxPages fall
// back to the defaults.
func NewPaginator(rest Requester, pageSize, maxPages int, logger *slog.Logger) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Paginator{
		rest:     rest,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   logger,
	}
}

// FetchAll returns the items of every page starting at startURL, in order.
// Any failed page fails the whole fetch.
func (p *Paginator) FetchAll(ctx context.Context, startURL string) ([]json.RawMessage, error) {
	current, err := withPageSize(startURL, p.pageSize)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	visited := make(map[string]struct{})
	for page := 1; ; page++ {
		if page > p.maxPages {
			return nil, fmt.Errorf("%w: gave up after %d pages of %s", ErrTooManyPages, p.maxPages, startURL)
		}
		visited[current] = struct{}{}

		pageItems, next, err := p.fetchPage(ctx, current)
		if err != nil {
			return nil, err
		}
		items = append(items, pageItems...)

		p.logger.Debug("fetched page",
			"url", current,
			"page", page,
			"items", len(pageItems),
			"has_next", next != "",
		)

		if next == "" {
			return items, nil
		}
		if _, seen := visited[next]; seen {
			return nil, fmt.Errorf("%w: %s", ErrPaginationLoop, next)
		}
		current = next
	}
}

func (p *Paginator) fetchPage(ctx context.Context, pageURL string) ([]json.RawMessage, string, error) {
	resp, err := p.rest.RequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			return nil, "", &RemoteRequestFailedError{
				Status:  httpErr.StatusCode,
				URL:     pageURL,
				Message: httpErr.Message,
			}
		}
		return nil, "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &RemoteRequestFailedError{Status: resp.StatusCode, URL: pageURL}
	}

	pageItems, err := decodePage(resp.Body)
	if err != nil {
		return nil, "", &MalformedResponseError{URL: pageURL, Err: err}
	}

	return pageItems, NextPageURL(resp.Header.Get("Link")), nil
}

// decodePage reads a body that must be exactly one JSON array
func decodePage(body io.Reader) ([]json.RawMessage, error) {
	dec := json.NewDecoder(body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array, got %.20s", raw)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the JSON array")
	}

	pageItems := []json.RawMessage{}
	if err := json.Unmarshal(raw, &pageItems); err != nil {
		return nil, err
	}
	return pageItems, nil
}

// withPageSize adds the page size parameter unless the URL already carries one
func withPageSize(rawURL string, pageSize int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	q := u.Query()
	if q.Get(pageSizeParam) != "" {
		return rawURL, nil
	}
	q.Set(pageSizeParam, strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

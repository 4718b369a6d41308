// Package github publishes size reports to pull requests through the GitHub REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// commentsPerPage is the page size used when listing comments.
const commentsPerPage = 100

// maxErrorBody caps how much of a failed response is kept in an error.
const maxErrorBody = 2048

// Client is a small GitHub REST client scoped to one repository.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	owner   string
	repo    string
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsForbidden reports whether err is a 403 from the API.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// Comment is an issue or pull request comment.
type Comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

// CheckRunOutput is the rendered output of a check run.
type CheckRunOutput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// CheckRun is a completed check run attached to a commit.
type CheckRun struct {
	ID          int64          `json:"id,omitempty"`
	Name        string         `json:"name"`
	HeadSHA     string         `json:"head_sha"`
	Status      string         `json:"status"`
	Conclusion  string         `json:"conclusion"`
	CompletedAt string         `json:"completed_at,omitempty"`
	Output      CheckRunOutput `json:"output"`
}

// NewClient creates a client for repository ("owner/name") at baseURL.
func NewClient(baseURL, token, repository string) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid github repository '%s'. must be owner/name", repository)
	}
	if token == "" {
		return nil, errors.New("a GitHub token is required. set --repo-token or GITHUB_TOKEN")
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		owner:   owner,
		repo:    repo,
	}, nil
}

// do sends one JSON request and decodes the JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("github: failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

// ListIssueComments returns every comment on an issue or pull request.
func (c *Client) ListIssueComments(ctx context.Context, number int) ([]Comment, error) {
	var all []Comment
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", c.owner, c.repo, number, commentsPerPage, page)
		var batch []Comment
		if err := c.do(ctx, http.MethodGet, path, nil, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < commentsPerPage {
			return all, nil
		}
	}
}

// CreateIssueComment posts a new comment.
func (c *Client) CreateIssueComment(ctx context.Context, number int, body string) (*Comment, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", c.owner, c.repo, number)
	var out Comment
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"body": body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateIssueComment replaces the body of an existing comment.
func (c *Client) UpdateIssueComment(ctx context.Context, id int64, body string) (*Comment, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/comments/%d", c.owner, c.repo, id)
	var out Comment
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"body": body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckRun creates a check run on a commit.
func (c *Client) CreateCheckRun(ctx context.Context, run CheckRun) (*CheckRun, error) {
	path := fmt.Sprintf("/repos/%s/%s/check-runs", c.owner, c.repo)
	var out CheckRun
	if err := c.do(ctx, http.MethodPost, path, run, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Package jira fetches issues from the Jira Cloud REST API v3.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jira "github.com/andygrunwald/go-jira"
	"github.com/danielolaszy/jit/internal/adf"
	"github.com/danielolaszy/jit/internal/config"
	"github.com/danielolaszy/jit/internal/logging"
	"github.com/danielolaszy/jit/pkg/models"
	"golang.org/x/oauth2"
)

// ErrUnexpectedResponse marks a successful response whose body is not the
// expected record shape.
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// FetchError reports a failed request. StatusCode and Body are set when Jira
// answered with a non-success status.
type FetchError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: JIRA API request failed with status: %d %s - %s",
			e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client handles interactions with the JIRA API
type Client struct {
	client      *jira.Client
	sprintField string
}

// NewClient creates a JIRA client from a validated configuration. A personal
// access token selects bearer authentication; otherwise email and API token
// are sent as basic auth.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := jira.NewClient(authenticatedHTTPClient(cfg), cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	sprintField := cfg.SprintField
	if sprintField == "" {
		sprintField = config.DefaultSprintField
	}

	logging.Debug("jira client created",
		"base_url", cfg.BaseURL,
		"bearer_auth", cfg.UsesBearerAuth(),
		"sprint_field", sprintField)

	return &Client{
		client:      client,
		sprintField: sprintField,
	}, nil
}

func authenticatedHTTPClient(cfg *config.Config) *http.Client {
	if cfg.UsesBearerAuth() {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.PersonalAccessToken},
		)
		return oauth2.NewClient(context.Background(), ts)
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.UserEmail,
		Password: cfg.APIToken,
	}
	return tp.Client()
}

// FetchIssue retrieves a single issue by its canonical key.
func (c *Client) FetchIssue(ctx context.Context, key string) (*models.Issue, error) {
	op := fmt.Sprintf("fetching issue %s", key)
	fields := append(append([]string{}, issueFields...), c.sprintField)
	path := fmt.Sprintf("rest/api/3/issue/%s?fields=%s", url.PathEscape(key), strings.Join(fields, ","))

	logging.Debug("fetching issue", "key", key)
	raw, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	issue, err := c.decodeIssue(raw)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	return issue, nil
}

// SearchMyActiveSprintIssues lists the caller's issues in open sprints, most
// recently updated first, at most limit of them.
func (c *Client) SearchMyActiveSprintIssues(ctx context.Context, limit int) ([]models.Issue, error) {
	const op = "searching active sprint issues"
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	body := searchRequest{
		JQL:        myActiveSprintJQL,
		MaxResults: limit,
		Fields:     append(append([]string{}, searchFields...), c.sprintField),
	}

	logging.Debug("searching issues", "jql", body.JQL, "limit", limit)
	raw, err := c.do(ctx, op, http.MethodPost, "rest/api/3/search", body)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)}
	}
	if result.Issues == nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("%w: missing issues", ErrUnexpectedResponse)}
	}

	issues := make([]models.Issue, 0, len(*result.Issues))
	for _, item := range *result.Issues {
		issue, err := c.decodeIssue(item)
		if err != nil {
			return nil, &FetchError{Op: op, Err: err}
		}
		issues = append(issues, *issue)
	}

	logging.Debug("search complete", "count", len(issues))
	return issues, nil
}

// do sends one request through go-jira and returns the raw response body.
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}) (json.RawMessage, error) {
	if c.client == nil {
		return nil, &FetchError{Op: op, Err: errors.New("JIRA client not initialized")}
	}

	req, err := c.client.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}

	var raw json.RawMessage
	resp, err := c.client.Do(req, &raw)
	if err != nil {
		if resp == nil {
			return nil, &FetchError{Op: op, Err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			defer resp.Body.Close()
			data, _ := io.ReadAll(resp.Body)
			logging.Debug("request failed", "op", op, "status", resp.StatusCode)
			return nil, &FetchError{
				Op:         op,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(data)),
				Err:        err,
			}
		}
		return nil, &FetchError{Op: op, Err: fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)}
	}

	return raw, nil
}

func (c *Client) decodeIssue(raw json.RawMessage) (*models.Issue, error) {
	var envelope apiIssue
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if envelope.Key == "" {
		return nil, fmt.Errorf("%w: missing key", ErrUnexpectedResponse)
	}

	var fields apiFields
	if err := json.Unmarshal(envelope.Fields, &fields); err != nil {
		return nil, fmt.Errorf("%w: issue %s: %v", ErrUnexpectedResponse, envelope.Key, err)
	}
	if fields.Summary == nil {
		return nil, fmt.Errorf("%w: issue %s has no summary", ErrUnexpectedResponse, envelope.Key)
	}

	sprints, err := c.decodeSprints(envelope.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: issue %s: %v", ErrUnexpectedResponse, envelope.Key, err)
	}

	issue := &models.Issue{
		Key:      envelope.Key,
		Summary:  *fields.Summary,
		Sprints:  sprints,
		Status:   nameOf(fields.Status),
		Priority: nameOf(fields.Priority),
		Type:     nameOf(fields.IssueType),
		Assignee: displayName(fields.Assignee),
		Reporter: displayName(fields.Reporter),
		Created:  deref(fields.Created),
		Updated:  deref(fields.Updated),
		DueDate:  deref(fields.DueDate),
	}

	if description := bytes.TrimSpace(fields.Description); len(description) > 0 && !bytes.Equal(description, []byte("null")) {
		issue.RawDescription = description
		doc, err := adf.Parse(description)
		if err != nil {
			logging.Debug("description is not a rich-text document", "key", issue.Key, "error", err)
		} else {
			issue.Description = doc
		}
	}

	return issue, nil
}

func (c *Client) decodeSprints(fields json.RawMessage) ([]models.Sprint, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(fields, &all); err != nil {
		return nil, err
	}

	raw, ok := all[c.sprintField]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var sprints []apiSprint
	if err := json.Unmarshal(raw, &sprints); err != nil {
		return nil, fmt.Errorf("sprint field %s: %w", c.sprintField, err)
	}

	result := make([]models.Sprint, 0, len(sprints))
	for _, s := range sprints {
		result = append(result, models.Sprint{Name: s.Name, State: s.State})
	}
	return result, nil
}

func nameOf(n *apiNamed) string {
	if n == nil {
		return ""
	}
	return n.Name
}

func displayName(u *apiUser) string {
	if u == nil {
		return ""
	}
	return u.DisplayName
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

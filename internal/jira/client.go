// Package jira is a thin adapter over the Jira REST API (v2).
//
// The client is constructed once at process start from the loaded
// configuration and injected into whatever needs it. The first remote
// call verifies the connection against /rest/api/2/myself; after that,
// each operation is a single synchronous request with no retries and
// whatever timeouts the transport defaults to. v2 is used deliberately:
// descriptions stay plain strings on both Cloud and Data Center.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jissue/jissue/internal/config"
)

// Client talks to a single Jira instance.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client

	connectMu sync.Mutex
	connected bool
}

// NewClient builds a Client from the config. The credential shape picks
// the auth header; the optional proxy is honored for both http and https.
func NewClient(cfg *config.Config) (*Client, error) {
	method, err := cfg.AuthMethod()
	if err != nil {
		return nil, err
	}

	var authHeader string
	switch method {
	case config.AuthToken:
		authHeader = "Bearer " + cfg.Token
		slog.Info("using token authentication")
	case config.AuthCloud:
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))
		authHeader = "Basic " + creds
		slog.Info("using email + API token authentication (Jira Cloud)")
	case config.AuthBasic:
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		authHeader = "Basic " + creds
		slog.Info("using username + password authentication (Jira Data Center)")
	}

	httpClient := &http.Client{}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", cfg.Proxy, err)
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		slog.Info("using proxy", "proxy", cfg.Proxy)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.JiraURL, "/"),
		authHeader: authHeader,
		httpClient: httpClient,
	}, nil
}

// ensureConnected verifies credentials against the instance. Every
// operation calls it first; a connection failure is surfaced as such
// rather than as an opaque API error. Only success is memoized, so a
// transient outage on one call does not poison the next.
func (c *Client) ensureConnected(ctx context.Context) error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()
	if c.connected {
		return nil
	}

	var me struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	if err := c.get(ctx, "/rest/api/2/myself", nil, &me); err != nil {
		err = fmt.Errorf("connecting to Jira at %s: %w", c.baseURL, err)
		slog.Error("connection to Jira failed", "url", c.baseURL, "error", err)
		return err
	}

	c.connected = true
	slog.Info("connected to Jira", "url", c.baseURL)
	return nil
}

// CreateIssue creates an issue and returns the key assigned by Jira.
func (c *Client) CreateIssue(ctx context.Context, in CreateIssueInput) (string, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return "", fmt.Errorf("Failed to create Jira issue: %w", err)
	}

	fields := issueFields{
		Project:     projectField{Key: in.Project},
		Summary:     in.Summary,
		Description: in.Description,
		IssueType:   nameField{Name: RemoteIssueType(in.IssueType)},
	}
	if in.Priority != "" {
		fields.Priority = &nameField{Name: in.Priority}
	}
	if in.Assignee != "" {
		fields.Assignee = &userField{Name: in.Assignee}
	}

	var created createIssueResponse
	if err := c.post(ctx, "/rest/api/2/issue", createIssueRequest{Fields: fields}, &created); err != nil {
		slog.Error("create issue failed", "project", in.Project, "error", err)
		return "", fmt.Errorf("Failed to create Jira issue: %w", err)
	}

	slog.Info("created issue", "key", created.Key)
	return created.Key, nil
}

// IssueURL returns the browse URL for an issue key. Pure string
// formatting, no network call.
func (c *Client) IssueURL(issueKey string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL, issueKey)
}

// Projects lists the projects visible to the configured user.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return nil, fmt.Errorf("Failed to get Jira projects: %w", err)
	}

	var projects []Project
	if err := c.get(ctx, "/rest/api/2/project", nil, &projects); err != nil {
		slog.Error("list projects failed", "error", err)
		return nil, fmt.Errorf("Failed to get Jira projects: %w", err)
	}
	return projects, nil
}

// SearchIssues runs a text search over summary and description,
// optionally scoped to a project, newest updates first.
func (c *Client) SearchIssues(ctx context.Context, query, project string, maxResults int) ([]Issue, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return nil, fmt.Errorf("Failed to search Jira issues: %w", err)
	}

	params := url.Values{}
	params.Set("jql", BuildJQL(query, project))
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", "summary,issuetype,status,priority,description,assignee")

	var resp searchResponse
	if err := c.get(ctx, "/rest/api/2/search", params, &resp); err != nil {
		slog.Error("search failed", "query", query, "error", err)
		return nil, fmt.Errorf("Failed to search Jira issues: %w", err)
	}

	issues := make([]Issue, 0, len(resp.Issues))
	for _, wi := range resp.Issues {
		issues = append(issues, c.toIssue(wi))
	}
	return issues, nil
}

// GetIssue fetches a single issue by key.
func (c *Client) GetIssue(ctx context.Context, issueKey string) (Issue, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return Issue{}, fmt.Errorf("Failed to get Jira issue %s: %w", issueKey, err)
	}

	params := url.Values{}
	params.Set("fields", "summary,issuetype,status,priority,description,assignee")

	var wi wireIssue
	if err := c.get(ctx, "/rest/api/2/issue/"+url.PathEscape(issueKey), params, &wi); err != nil {
		slog.Error("get issue failed", "key", issueKey, "error", err)
		return Issue{}, fmt.Errorf("Failed to get Jira issue %s: %w", issueKey, err)
	}
	return c.toIssue(wi), nil
}

// ProjectMetadata fetches a project (validating that it exists) together
// with the available priorities and issue types. Priorities and issue
// types are global in Jira, not scoped to the project — preserved as the
// remote exposes them, even though the call is project-keyed.
func (c *Client) ProjectMetadata(ctx context.Context, projectKey string) (ProjectMetadata, error) {
	if err := c.ensureConnected(ctx); err != nil {
		return ProjectMetadata{}, fmt.Errorf("Failed to get project metadata: %w", err)
	}

	var project Project
	if err := c.get(ctx, "/rest/api/2/project/"+url.PathEscape(projectKey), nil, &project); err != nil {
		slog.Error("get project failed", "project", projectKey, "error", err)
		return ProjectMetadata{}, fmt.Errorf("Failed to get project metadata: %w", err)
	}

	var priorities []nameField
	if err := c.get(ctx, "/rest/api/2/priority", nil, &priorities); err != nil {
		slog.Error("get priorities failed", "error", err)
		return ProjectMetadata{}, fmt.Errorf("Failed to get project metadata: %w", err)
	}

	var issueTypes []nameField
	if err := c.get(ctx, "/rest/api/2/issuetype", nil, &issueTypes); err != nil {
		slog.Error("get issue types failed", "error", err)
		return ProjectMetadata{}, fmt.Errorf("Failed to get project metadata: %w", err)
	}

	meta := ProjectMetadata{Project: project}
	for _, p := range priorities {
		meta.Priorities = append(meta.Priorities, p.Name)
	}
	for _, it := range issueTypes {
		meta.IssueTypes = append(meta.IssueTypes, it.Name)
	}
	return meta, nil
}

func (c *Client) toIssue(wi wireIssue) Issue {
	issue := Issue{
		Key:         wi.Key,
		Summary:     wi.Fields.Summary,
		Type:        wi.Fields.IssueType.Name,
		Status:      wi.Fields.Status.Name,
		Description: wi.Fields.Description,
		URL:         c.IssueURL(wi.Key),
	}
	if wi.Fields.Priority != nil {
		issue.Priority = wi.Fields.Priority.Name
	}
	if wi.Fields.Assignee != nil {
		issue.Assignee = wi.Fields.Assignee.DisplayName
	}
	return issue
}

// --- HTTP plumbing ---

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Jira API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// --- Issue type mapping ---

// issueTypeNames maps common lowercase type names to the names Jira
// expects on the wire.
var issueTypeNames = map[string]string{
	"story":   "Story",
	"bug":     "Bug",
	"task":    "Task",
	"spike":   "Spike",
	"epic":    "Epic",
	"subtask": "Sub-task",
}

// RemoteIssueType translates a user-facing type name into the remote
// name. Unrecognized types pass through capitalized verbatim.
func RemoteIssueType(issueType string) string {
	if name, ok := issueTypeNames[strings.ToLower(issueType)]; ok {
		return name
	}
	return capitalize(issueType)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

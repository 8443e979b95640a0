package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jissue/jissue/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a Client pointed at a test server that handles
// the connection check and delegates everything else to handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/api/2/myself" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"tester","displayName":"Tester"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{JiraURL: srv.URL, Token: "secret"})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(&config.Config{JiraURL: "https://jira.example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestNewClient_RejectsAmbiguousCredentials(t *testing.T) {
	_, err := NewClient(&config.Config{
		JiraURL:  "https://jira.example.com",
		Token:    "pat",
		Username: "u",
		Password: "p",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestIssueURL_PureFormatting(t *testing.T) {
	client, err := NewClient(&config.Config{
		JiraURL: "https://jira.example.com/",
		Token:   "secret",
	})
	require.NoError(t, err)

	// No server behind that URL — IssueURL must not need one.
	assert.Equal(t, "https://jira.example.com/browse/PROJ-123", client.IssueURL("PROJ-123"))
	assert.Equal(t, "https://jira.example.com/browse/ABC-1", client.IssueURL("ABC-1"))
}

func TestCreateIssue_MapsIssueType(t *testing.T) {
	cases := map[string]string{
		"bug":       "Bug",
		"subtask":   "Sub-task",
		"weirdtype": "Weirdtype",
	}

	for input, want := range cases {
		var gotReq createIssueRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/rest/api/2/issue", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"10000","key":"PROJ-42"}`))
		})

		key, err := client.CreateIssue(context.Background(), CreateIssueInput{
			Project:     "PROJ",
			IssueType:   input,
			Summary:     "A summary",
			Description: "A description",
		})
		require.NoError(t, err)
		assert.Equal(t, "PROJ-42", key)
		assert.Equal(t, want, gotReq.Fields.IssueType.Name, "issue type for %q", input)
	}
}

func TestCreateIssue_OmitsUnsetOptionalFields(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		raw = payload.Fields
		_, _ = w.Write([]byte(`{"key":"PROJ-7"}`))
	})

	_, err := client.CreateIssue(context.Background(), CreateIssueInput{
		Project:     "PROJ",
		IssueType:   "task",
		Summary:     "s",
		Description: "d",
	})
	require.NoError(t, err)

	_, hasPriority := raw["priority"]
	_, hasAssignee := raw["assignee"]
	assert.False(t, hasPriority, "priority must be absent, not null")
	assert.False(t, hasAssignee, "assignee must be absent, not null")
}

func TestCreateIssue_SendsOptionalFieldsWhenSet(t *testing.T) {
	var gotReq createIssueRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"key":"PROJ-8"}`))
	})

	_, err := client.CreateIssue(context.Background(), CreateIssueInput{
		Project:     "PROJ",
		IssueType:   "bug",
		Summary:     "s",
		Description: "d",
		Priority:    "High",
		Assignee:    "alice",
	})
	require.NoError(t, err)

	require.NotNil(t, gotReq.Fields.Priority)
	assert.Equal(t, "High", gotReq.Fields.Priority.Name)
	require.NotNil(t, gotReq.Fields.Assignee)
	assert.Equal(t, "alice", gotReq.Fields.Assignee.Name)
}

func TestSearchIssues_SendsJQLAndFields(t *testing.T) {
	var gotJQL, gotMax, gotFields string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/search", r.URL.Path)
		gotJQL = r.URL.Query().Get("jql")
		gotMax = r.URL.Query().Get("maxResults")
		gotFields = r.URL.Query().Get("fields")
		_, _ = w.Write([]byte(`{"issues":[]}`))
	})

	_, err := client.SearchIssues(context.Background(), "login", "X", 5)
	require.NoError(t, err)
	assert.Equal(t, `(summary ~ "login" OR description ~ "login") AND project = X ORDER BY updated DESC`, gotJQL)
	assert.Equal(t, "5", gotMax)
	assert.Equal(t, "summary,issuetype,status,priority,description,assignee", gotFields)
}

func TestSearchIssues_DecodesOptionalFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := searchResponse{Issues: []wireIssue{
			{
				Key: "PROJ-1",
				Fields: wireIssueField{
					Summary:     "With everything",
					Description: "desc",
					IssueType:   nameField{Name: "Bug"},
					Status:      nameField{Name: "Open"},
					Priority:    &nameField{Name: "High"},
					Assignee:    &userField{DisplayName: "Alice"},
				},
			},
			{
				Key: "PROJ-2",
				Fields: wireIssueField{
					Summary:   "Bare minimum",
					IssueType: nameField{Name: "Task"},
					Status:    nameField{Name: "Done"},
				},
			},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	issues, err := client.SearchIssues(context.Background(), "", "", 10)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "High", issues[0].Priority)
	assert.Equal(t, "Alice", issues[0].Assignee)
	assert.NotEmpty(t, issues[0].URL)

	assert.Empty(t, issues[1].Priority)
	assert.Empty(t, issues[1].Assignee)
}

func TestSearchIssues_WrapsRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.SearchIssues(context.Background(), "q", "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to search Jira issues")
	assert.Contains(t, err.Error(), "500")
}

func TestGetIssue_WrapsFailureWithKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.GetIssue(context.Background(), "PROJ-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to get Jira issue PROJ-404")
}

func TestProjects_ListsKeyAndName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/project", r.URL.Path)
		_, _ = w.Write([]byte(`[{"key":"PROJ","name":"Project One"},{"key":"OPS","name":"Operations"}]`))
	})

	projects, err := client.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, Project{Key: "PROJ", Name: "Project One"}, projects[0])
}

func TestProjectMetadata_GlobalPrioritiesAndTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/2/project/PROJ":
			_, _ = w.Write([]byte(`{"key":"PROJ","name":"Project One"}`))
		case "/rest/api/2/priority":
			_, _ = w.Write([]byte(`[{"name":"High"},{"name":"Low"}]`))
		case "/rest/api/2/issuetype":
			_, _ = w.Write([]byte(`[{"name":"Bug"},{"name":"Story"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	meta, err := client.ProjectMetadata(context.Background(), "PROJ")
	require.NoError(t, err)
	assert.Equal(t, "PROJ", meta.Project.Key)
	assert.Equal(t, []string{"High", "Low"}, meta.Priorities)
	assert.Equal(t, []string{"Bug", "Story"}, meta.IssueTypes)
}

func TestProjectMetadata_UnknownProjectFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such project", http.StatusNotFound)
	})

	_, err := client.ProjectMetadata(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to get project metadata")
}

func TestEnsureConnected_FailureIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{JiraURL: srv.URL, Token: "wrong"})
	require.NoError(t, err)

	_, err = client.Projects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to Jira at")
	assert.Contains(t, err.Error(), "401")
}

func TestEnsureConnected_RetriesAfterTransientFailure(t *testing.T) {
	myselfCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/2/myself":
			myselfCalls++
			if myselfCalls == 1 {
				http.Error(w, "temporary outage", http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"name":"tester"}`))
		case "/rest/api/2/project":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{JiraURL: srv.URL, Token: "secret"})
	require.NoError(t, err)

	_, err = client.Projects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to Jira at")
	assert.Contains(t, err.Error(), "502")

	// The failed check must not be cached: once the instance is back,
	// the next call connects and succeeds.
	_, err = client.Projects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, myselfCalls)
}

func TestEnsureConnected_CheckedOnce(t *testing.T) {
	myselfCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/2/myself":
			myselfCalls++
			_, _ = w.Write([]byte(`{"name":"tester"}`))
		case "/rest/api/2/project":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{JiraURL: srv.URL, Token: "secret"})
	require.NoError(t, err)

	for range 3 {
		_, err := client.Projects(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, myselfCalls)
}

package jira

// Project is one entry from the project list.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Issue is the local view of a remote issue. Priority and Assignee are
// optional on the remote side; an empty string means the remote reported
// none.
type Issue struct {
	Key         string
	Summary     string
	Type        string
	Status      string
	Priority    string
	Assignee    string
	Description string
	URL         string
}

// ProjectMetadata bundles a project with the priorities and issue types
// the remote exposes.
type ProjectMetadata struct {
	Project    Project
	Priorities []string
	IssueTypes []string
}

// CreateIssueInput carries the fields for a new issue. Priority and
// Assignee are omitted from the remote payload when empty.
type CreateIssueInput struct {
	Project     string
	IssueType   string
	Summary     string
	Description string
	Priority    string
	Assignee    string
}

// --- Wire types (REST API v2 subsets) ---

type nameField struct {
	Name string `json:"name"`
}

type userField struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type projectField struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Project     projectField `json:"project"`
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	IssueType   nameField    `json:"issuetype"`
	Priority    *nameField   `json:"priority,omitempty"`
	Assignee    *userField   `json:"assignee,omitempty"`
}

type createIssueResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

type wireIssue struct {
	Key    string         `json:"key"`
	Fields wireIssueField `json:"fields"`
}

type wireIssueField struct {
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	IssueType   nameField  `json:"issuetype"`
	Status      nameField  `json:"status"`
	Priority    *nameField `json:"priority"`
	Assignee    *userField `json:"assignee"`
}

type searchResponse struct {
	Issues []wireIssue `json:"issues"`
}

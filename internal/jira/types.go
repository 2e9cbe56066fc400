package jira

import (
	"encoding/json"
)

// Fields requested for a single issue, in addition to the sprint field.
var issueFields = []string{
	"summary", "status", "description", "assignee", "reporter",
	"priority", "issuetype", "created", "updated", "duedate",
}

// Fields requested for the sprint listing, in addition to the sprint field.
var searchFields = []string{"summary", "status"}

const myActiveSprintJQL = "assignee = currentUser() AND sprint in openSprints() ORDER BY updated DESC"

// apiIssue is the envelope of GET /rest/api/3/issue/{key}. Fields stay raw
// because the sprint lives in a site-specific custom field.
type apiIssue struct {
	Key    string          `json:"key"`
	Fields json.RawMessage `json:"fields"`
}

type apiFields struct {
	Summary     *string         `json:"summary"`
	Status      *apiNamed       `json:"status"`
	Assignee    *apiUser        `json:"assignee"`
	Reporter    *apiUser        `json:"reporter"`
	Priority    *apiNamed       `json:"priority"`
	IssueType   *apiNamed       `json:"issuetype"`
	Created     *string         `json:"created"`
	Updated     *string         `json:"updated"`
	DueDate     *string         `json:"duedate"`
	Description json.RawMessage `json:"description"`
}

type apiNamed struct {
	Name string `json:"name"`
}

type apiUser struct {
	DisplayName string `json:"displayName"`
}

type apiSprint struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

type searchResponse struct {
	Issues *[]json.RawMessage `json:"issues"`
}

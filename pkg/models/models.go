// Package models defines data structures shared across the application.
package models

import (
	"encoding/json"

	"github.com/danielolaszy/jit/internal/adf"
)

// Sprint state reported by Jira for the sprint currently running.
const SprintStateActive = "active"

// Sprint is one sprint an issue belongs to.
type Sprint struct {
	// Name is the sprint's display name (e.g., "RW Sprint 42")
	Name string `json:"name"`

	// State is "active", "closed" or "future"
	State string `json:"state"`
}

// Issue is a fetched Jira issue reduced to the fields jit displays.
// Optional fields are empty when Jira did not return them.
type Issue struct {
	// Key is the canonical issue key (e.g., "RW-1931")
	Key string

	// Summary is the issue's title
	Summary string

	// Status is the workflow status name
	Status string

	// Sprints lists sprint memberships in the order Jira returned them
	Sprints []Sprint

	// Assignee is the assignee's display name
	Assignee string

	// Reporter is the reporter's display name
	Reporter string

	// Priority is the priority name
	Priority string

	// Type is the issue type name (e.g., "Story", "Bug")
	Type string

	// Created, Updated and DueDate hold Jira's date-time strings unchanged
	Created string
	Updated string
	DueDate string

	// Description is the parsed rich-text description, nil when the raw value
	// was absent or could not be parsed as a document
	Description *adf.Node

	// RawDescription is the description exactly as received; empty when Jira
	// returned no description or null
	RawDescription json.RawMessage
}

// HasDescription reports whether Jira returned a non-null description.
func (i *Issue) HasDescription() bool {
	return len(i.RawDescription) > 0
}

// ActiveSprint returns the first sprint in the active state.
func (i *Issue) ActiveSprint() (Sprint, bool) {
	for _, s := range i.Sprints {
		if s.State == SprintStateActive {
			return s, true
		}
	}
	return Sprint{}, false
}

// CurrentSprint returns the active sprint, or the first membership when none
// is active.
func (i *Issue) CurrentSprint() (Sprint, bool) {
	if s, ok := i.ActiveSprint(); ok {
		return s, true
	}
	if len(i.Sprints) > 0 {
		return i.Sprints[0], true
	}
	return Sprint{}, false
}

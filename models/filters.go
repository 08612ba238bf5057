// models/filters.go
package models

import "time"

// ListOptions carries pagination and sort keys shared by every listing. Sort keys are
// column names, prefixed with '-' for descending order ("-start_date").
type ListOptions struct {
	Page  int
	Limit int
	Sort  []string
}

// First returns options selecting only the first row for the given sort.
func First(sort ...string) ListOptions {
	return ListOptions{Page: 1, Limit: 1, Sort: sort}
}

type LeagueFilter struct {
	ID   string
	Slug string
	ListOptions
}

// SeriesFilter selects series of a league. StartOnOrBefore and EndAfter together select the
// window containing an instant.
type SeriesFilter struct {
	ID              string
	LeagueID        string
	StartOnOrBefore *time.Time
	StartOnOrAfter  *time.Time
	EndBefore       *time.Time
	EndAfter        *time.Time
	ListOptions
}

type AnswerFilter struct {
	ID          string
	LeagueID    string
	SeriesID    string
	ActiveAfter *time.Time // exact match
	ActiveAt    *time.Time // active_after <= t < active_before
	ListOptions
}

type GuessFilter struct {
	UserID   string
	AnswerID string
	ListOptions
}

type MembershipFilter struct {
	UserID   string
	LeagueID string
	Active   *bool
	ListOptions
}

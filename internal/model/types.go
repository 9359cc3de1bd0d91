// Package model defines shared data structures.
package model

import "time"

// Config defines sorting settings.
type Config struct {
	LayoutPath  string
	RankingPath string
	Lengths     []int
	Journal     bool
}

// ViewConfig defines viewer settings.
type ViewConfig struct {
	LayoutPath  string
	RankingPath string
	Watch       bool
}

// Journal actions.
const (
	ActionPlace    = "place"
	ActionPrevious = "previous"
	ActionReset    = "reset"
	ActionSave     = "save"
	ActionLoad     = "load"
)

// SessionInfo describes a sorting session stored in the journal.
type SessionInfo struct {
	StartedAt   time.Time
	LayoutPath  string
	RankingPath string
	Universe    int
}

// PlacementEvent is a single journal entry.
type PlacementEvent struct {
	SessionID string
	At        time.Time
	Action    string
	Seq       KeySeq
	Position  int
	Ordered   int
}

// SessionSummary aggregates a journal session for reporting.
type SessionSummary struct {
	ID          string
	StartedAt   time.Time
	LayoutPath  string
	RankingPath string
	Universe    int
	Placed      int
	Saves       int
	LastOrdered int
}

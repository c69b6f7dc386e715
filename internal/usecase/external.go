package usecase

import (
	"context"

	"github.com/oguzatak/lig-takip/internal/domain/league"
)

// ExternalStanding is one scraped league-table row. Ephemeral: it replaces
// the computed table for display while present but is never persisted.
type ExternalStanding struct {
	Rank           int
	ExternalTeamID int64
	Name           string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDiff       int
	Points         int
	// StatsSuspect marks rows where the positional column assumption failed
	// the goal-difference sanity check.
	StatsSuspect bool
}

// ExternalFixture is one scraped match row, consumed immediately by the
// reconciler.
type ExternalFixture struct {
	Week           int
	HomeExternalID int64
	AwayExternalID int64
	HomeName       string
	AwayName       string
	HomeScore      *int
	AwayScore      *int
	IsPlayed       bool
}

// SourceSnapshot is what one fetched page parses into. Both lists may be
// empty when the page carries no recognizable structure.
type SourceSnapshot struct {
	Standings []ExternalStanding
	Fixtures  []ExternalFixture
}

// GroupSnapshots holds the two parallel sub-leagues published on the single
// amateur federation page.
type GroupSnapshots struct {
	GroupA SourceSnapshot
	GroupB SourceSnapshot
}

// SourceAProvider fetches and parses one federation page for a given week.
type SourceAProvider interface {
	FetchWeek(ctx context.Context, lg league.League, week int) (SourceSnapshot, error)
}

// SourceBProvider fetches and parses the amateur federation page.
type SourceBProvider interface {
	FetchGroups(ctx context.Context) (GroupSnapshots, error)
}

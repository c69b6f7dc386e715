package team

import "context"

// Repository exposes the canonical season teams to use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
}

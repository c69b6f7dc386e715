package fixture

import "context"

// Repository exposes the canonical season fixtures to use cases. The
// persisted, merge-mutated copies live in the season snapshot store.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
}

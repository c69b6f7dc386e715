package season

import "context"

// Repository stores one snapshot per league with replace-whole-value writes.
// Syncs read once at the start and write once at the end, so the store needs
// no finer-grained locking.
type Repository interface {
	Load(ctx context.Context, leagueID string) (Snapshot, bool, error)
	Save(ctx context.Context, leagueID string, snapshot Snapshot) error
}

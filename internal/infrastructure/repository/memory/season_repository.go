package memory

import (
	"context"
	"sync"

	"github.com/oguzatak/lig-takip/internal/domain/season"
)

// SeasonRepository keeps merged season snapshots in process memory. Useful
// for development and tests; production deployments use the postgres store
// so merges survive restarts.
type SeasonRepository struct {
	mu        sync.RWMutex
	snapshots map[string]season.Snapshot
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{snapshots: make(map[string]season.Snapshot)}
}

func (r *SeasonRepository) Load(_ context.Context, leagueID string) (season.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[leagueID]
	if !ok {
		return season.Snapshot{}, false, nil
	}
	return snapshot.Clone(), true, nil
}

func (r *SeasonRepository) Save(_ context.Context, leagueID string, snapshot season.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[leagueID] = snapshot.Clone()
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
)

// FixtureRepository serves the canonical seed schedules. Merge results never
// flow back here; they live in the season snapshot store.
type FixtureRepository struct {
	mu               sync.RWMutex
	fixturesByLeague map[string][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByLeague := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesByLeague[item.LeagueID] = append(fixturesByLeague[item.LeagueID], item)
	}

	return &FixtureRepository{fixturesByLeague: fixturesByLeague}
}

func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return fixture.CloneAll(r.fixturesByLeague[leagueID]), nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oguzatak/lig-takip/internal/domain/season"
)

// SeasonRepository persists one snapshot row per league, replacing the whole
// fixture document on every save.
type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Load(ctx context.Context, leagueID string) (season.Snapshot, bool, error) {
	const query = `SELECT league_id, fingerprint, fixtures, last_forced_sync, updated_at
FROM league_seasons
WHERE league_id = $1`

	var row leagueSeasonRow
	if err := r.db.GetContext(ctx, &row, query, leagueID); err != nil {
		if isNotFound(err) {
			return season.Snapshot{}, false, nil
		}
		return season.Snapshot{}, false, fmt.Errorf("load league season %s: %w", leagueID, err)
	}

	snapshot, err := row.toSnapshot()
	if err != nil {
		return season.Snapshot{}, false, fmt.Errorf("decode league season %s: %w", leagueID, err)
	}
	return snapshot, true, nil
}

func (r *SeasonRepository) Save(ctx context.Context, leagueID string, snapshot season.Snapshot) error {
	const query = `INSERT INTO league_seasons (league_id, fingerprint, fixtures, last_forced_sync, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (league_id)
DO UPDATE SET
    fingerprint = EXCLUDED.fingerprint,
    fixtures = EXCLUDED.fixtures,
    last_forced_sync = EXCLUDED.last_forced_sync,
    updated_at = EXCLUDED.updated_at`

	fixtures, err := encodeFixtures(snapshot.Fixtures)
	if err != nil {
		return fmt.Errorf("encode league season %s: %w", leagueID, err)
	}

	if _, err := r.db.ExecContext(ctx, query, leagueID, snapshot.Fingerprint, fixtures, snapshot.LastForcedSync, time.Now().UTC()); err != nil {
		return fmt.Errorf("save league season %s: %w", leagueID, err)
	}
	return nil
}

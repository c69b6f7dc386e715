package postgres

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/season"
)

type leagueSeasonRow struct {
	LeagueID       string     `db:"league_id"`
	Fingerprint    string     `db:"fingerprint"`
	Fixtures       []byte     `db:"fixtures"`
	LastForcedSync *time.Time `db:"last_forced_sync"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type fixtureDocument struct {
	ID         string `json:"id"`
	Week       int    `json:"week"`
	HomeTeamID int    `json:"homeTeamId"`
	AwayTeamID int    `json:"awayTeamId"`
	HomeScore  *int   `json:"homeScore"`
	AwayScore  *int   `json:"awayScore"`
}

func encodeFixtures(items []fixture.Fixture) ([]byte, error) {
	docs := make([]fixtureDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, fixtureDocument{
			ID:         item.ID,
			Week:       item.Week,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			HomeScore:  fixture.CloneScore(item.HomeScore),
			AwayScore:  fixture.CloneScore(item.AwayScore),
		})
	}
	return sonic.Marshal(docs)
}

func decodeFixtures(leagueID string, raw []byte) ([]fixture.Fixture, error) {
	var docs []fixtureDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fixture.Fixture{
			ID:         doc.ID,
			LeagueID:   leagueID,
			Week:       doc.Week,
			HomeTeamID: doc.HomeTeamID,
			AwayTeamID: doc.AwayTeamID,
			HomeScore:  doc.HomeScore,
			AwayScore:  doc.AwayScore,
		})
	}
	return out, nil
}

func (r leagueSeasonRow) toSnapshot() (season.Snapshot, error) {
	fixtures, err := decodeFixtures(r.LeagueID, r.Fixtures)
	if err != nil {
		return season.Snapshot{}, err
	}

	snapshot := season.Snapshot{
		Fixtures:    fixtures,
		Fingerprint: r.Fingerprint,
	}
	if r.LastForcedSync != nil {
		t := *r.LastForcedSync
		snapshot.LastForcedSync = &t
	}
	return snapshot, nil
}

package usecase

import (
	"testing"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/team"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
)

func TestMergeFixturesUpdatesExistingScore(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	local := []fixture.Fixture{
		{ID: "fx-1", LeagueID: "lig-1", Week: 3, HomeTeamID: 1, AwayTeamID: 2},
	}
	external := []ExternalFixture{
		{Week: 3, HomeName: "Safranboluspor", AwayName: "Yenice Kültürspor", HomeScore: intPtr(2), AwayScore: intPtr(1), IsPlayed: true},
	}

	merged, stats := MergeFixtures(local, external, resolver, MergePolicy{LeagueID: "lig-1"})

	if len(merged) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(merged))
	}
	if merged[0].ID != "fx-1" {
		t.Fatalf("expected merged fixture to keep id fx-1, got %s", merged[0].ID)
	}
	if merged[0].HomeScore == nil || *merged[0].HomeScore != 2 || merged[0].AwayScore == nil || *merged[0].AwayScore != 1 {
		t.Fatalf("expected score 2-1, got %v-%v", merged[0].HomeScore, merged[0].AwayScore)
	}
	if stats.Updated != 1 || stats.Appended != 0 || stats.Dropped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestMergeFixturesIsIdempotent(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	local := []fixture.Fixture{
		{ID: "fx-1", LeagueID: "lig-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2},
		{ID: "fx-2", LeagueID: "lig-1", Week: 2, HomeTeamID: 2, AwayTeamID: 3},
	}
	external := []ExternalFixture{
		{Week: 1, HomeName: "Safranboluspor", AwayName: "Yenice Kültürspor", HomeScore: intPtr(3), AwayScore: intPtr(0), IsPlayed: true},
		{Week: 2, HomeName: "Yenice Kültürspor", AwayName: "Eskipazar Belediyespor", HomeScore: intPtr(1), AwayScore: intPtr(1), IsPlayed: true},
	}
	policy := MergePolicy{AllowAppend: true, SourceTag: "tff", LeagueID: "lig-1"}

	once, _ := MergeFixtures(local, external, resolver, policy)
	twice, stats := MergeFixtures(once, external, resolver, policy)

	if len(twice) != len(once) {
		t.Fatalf("second merge changed fixture count: %d -> %d", len(once), len(twice))
	}
	if stats.Appended != 0 {
		t.Fatalf("second merge appended %d fixtures", stats.Appended)
	}
	for i := range once {
		if once[i].ID != twice[i].ID || once[i].Key() != twice[i].Key() {
			t.Fatalf("fixture %d diverged between merges: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestMergeFixturesNeverDuplicatesKeys(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	local := []fixture.Fixture{
		{ID: "fx-1", LeagueID: "lig-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2},
	}
	external := []ExternalFixture{
		{Week: 1, HomeName: "Safranboluspor", AwayName: "Yenice Kültürspor", HomeScore: intPtr(1), AwayScore: intPtr(0), IsPlayed: true},
		{Week: 1, HomeName: "SAFRANBOLUSPOR", AwayName: "YENİCE KÜLTÜRSPOR", HomeScore: intPtr(1), AwayScore: intPtr(0), IsPlayed: true},
		{Week: 1, HomeName: "Eskipazar Belediyespor", AwayName: "Safranboluspor", IsPlayed: false},
	}

	merged, _ := MergeFixtures(local, external, resolver, MergePolicy{AllowAppend: true, SourceTag: "tff", LeagueID: "lig-1"})

	seen := make(map[fixture.Key]bool, len(merged))
	for _, item := range merged {
		if seen[item.Key()] {
			t.Fatalf("duplicate key %+v in merged fixtures", item.Key())
		}
		seen[item.Key()] = true
	}
}

func TestMergeFixturesConservativeAppend(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	local := []fixture.Fixture{
		{ID: "fx-1", LeagueID: "lig-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2},
	}
	external := []ExternalFixture{
		{Week: 5, HomeName: "Eskipazar Belediyespor", AwayName: "Safranboluspor", HomeScore: intPtr(4), AwayScore: intPtr(2), IsPlayed: true},
	}

	merged, stats := MergeFixtures(local, external, resolver, MergePolicy{LeagueID: "lig-1"})

	if len(merged) != 1 {
		t.Fatalf("append-off merge grew fixture count to %d", len(merged))
	}
	if stats.Dropped != 1 {
		t.Fatalf("expected 1 dropped, got %+v", stats)
	}
}

func TestMergeFixturesAppendUsesDeterministicID(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	external := []ExternalFixture{
		{Week: 5, HomeName: "Eskipazar Belediyespor", AwayName: "Safranboluspor", HomeScore: intPtr(4), AwayScore: intPtr(2), IsPlayed: true},
	}
	policy := MergePolicy{AllowAppend: true, SourceTag: "askf", LeagueID: "lig-1"}

	merged, stats := MergeFixtures(nil, external, resolver, policy)

	if stats.Appended != 1 || len(merged) != 1 {
		t.Fatalf("expected 1 appended fixture, got stats=%+v len=%d", stats, len(merged))
	}
	if merged[0].ID != "askf_5_3_1" {
		t.Fatalf("unexpected appended id %s", merged[0].ID)
	}
	if merged[0].LeagueID != "lig-1" {
		t.Fatalf("appended fixture has league %s", merged[0].LeagueID)
	}
}

func TestMergeFixturesDropsUnresolvedTeams(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	local := []fixture.Fixture{
		{ID: "fx-1", LeagueID: "lig-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2},
	}
	external := []ExternalFixture{
		{Week: 1, HomeName: "Tamamen Bilinmeyen Kulüp", AwayName: "Yenice Kültürspor", HomeScore: intPtr(9), AwayScore: intPtr(0), IsPlayed: true},
	}

	merged, stats := MergeFixtures(local, external, resolver, MergePolicy{AllowAppend: true, LeagueID: "lig-1"})

	if stats.Dropped != 1 {
		t.Fatalf("expected unresolved row to be dropped, got %+v", stats)
	}
	if merged[0].HomeScore != nil {
		t.Fatalf("unresolved row leaked a score update: %+v", merged[0])
	}
}

func TestMergeFixturesUnplayedRowKeepsExistingScore(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()
	local := []fixture.Fixture{
		{ID: "fx-1", LeagueID: "lig-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: intPtr(2), AwayScore: intPtr(2)},
	}
	external := []ExternalFixture{
		{Week: 1, HomeName: "Safranboluspor", AwayName: "Yenice Kültürspor", IsPlayed: false},
	}

	merged, _ := MergeFixtures(local, external, resolver, MergePolicy{LeagueID: "lig-1"})

	if merged[0].HomeScore == nil || *merged[0].HomeScore != 2 {
		t.Fatalf("unplayed scrape erased a known score: %+v", merged[0])
	}
}

func newTestResolver() *TeamResolver {
	lg := league.League{ID: "lig-1", Name: "Test Ligi", Source: league.SourceTFF}
	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Safranboluspor"},
		{ID: 2, LeagueID: "lig-1", Name: "Yenice Kültürspor"},
		{ID: 3, LeagueID: "lig-1", Name: "Eskipazar Belediyespor"},
	}
	return NewTeamResolver(lg, teams, DefaultMatcherConfig(), logging.NewNop())
}

func intPtr(v int) *int {
	return &v
}

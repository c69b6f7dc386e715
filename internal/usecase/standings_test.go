package usecase

import (
	"testing"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/team"
)

func TestComputeStandingsAppliesPlayedFixtures(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Safranboluspor"},
		{ID: 2, LeagueID: "lig-1", Name: "Yenice Kültürspor"},
		{ID: 3, LeagueID: "lig-1", Name: "Eskipazar Belediyespor"},
	}
	fixtures := []fixture.Fixture{
		{ID: "fx-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: intPtr(2), AwayScore: intPtr(0)},
		{ID: "fx-2", Week: 1, HomeTeamID: 3, AwayTeamID: 1, HomeScore: intPtr(1), AwayScore: intPtr(1)},
		{ID: "fx-3", Week: 2, HomeTeamID: 2, AwayTeamID: 3},
	}

	table := ComputeStandings(teams, fixtures)

	if table[0].ID != 1 {
		t.Fatalf("expected team 1 on top, got %d", table[0].ID)
	}
	if table[0].Points != 4 || table[0].Played != 2 || table[0].Won != 1 || table[0].Drawn != 1 {
		t.Fatalf("unexpected leader stats: %+v", table[0])
	}
	if table[0].GoalDiff != table[0].GoalsFor-table[0].GoalsAgainst {
		t.Fatalf("goal difference out of sync: %+v", table[0])
	}
	for _, row := range table {
		if row.Points != 3*row.Won+row.Drawn {
			t.Fatalf("points out of sync for %s: %+v", row.Name, row)
		}
	}
}

func TestComputeStandingsTieBreaksOnGoalsFor(t *testing.T) {
	t.Parallel()

	// Both teams end on equal points and equal goal difference; goals
	// scored decides: 10 ranks above 8.
	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Safranboluspor", Played: 4, Won: 2, Drawn: 0, Lost: 2, GoalsFor: 8, GoalsAgainst: 8, GoalDiff: 0, Points: 6},
		{ID: 2, LeagueID: "lig-1", Name: "Yenice Kültürspor", Played: 4, Won: 2, Drawn: 0, Lost: 2, GoalsFor: 10, GoalsAgainst: 10, GoalDiff: 0, Points: 6},
	}

	table := ComputeStandings(teams, nil)

	if table[0].ID != 2 {
		t.Fatalf("expected the 10-goal team first, got team %d", table[0].ID)
	}
}

func TestComputeStandingsIsDeterministic(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "A"},
		{ID: 2, LeagueID: "lig-1", Name: "B"},
		{ID: 3, LeagueID: "lig-1", Name: "C"},
	}
	fixtures := []fixture.Fixture{
		{ID: "fx-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: intPtr(1), AwayScore: intPtr(1)},
		{ID: "fx-2", Week: 1, HomeTeamID: 2, AwayTeamID: 3, HomeScore: intPtr(1), AwayScore: intPtr(1)},
	}

	first := ComputeStandings(teams, fixtures)
	second := ComputeStandings(teams, fixtures)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order changed between runs at position %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
	// Stable sort keeps fully tied rows in input order.
	if first[len(first)-1].ID != 3 {
		t.Fatalf("expected team 3 last among equal rows, got %d", first[len(first)-1].ID)
	}
}

func TestComputeStandingsDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: 1, LeagueID: "lig-1", Name: "A"}}
	fixtures := []fixture.Fixture{
		{ID: "fx-1", Week: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: intPtr(5), AwayScore: intPtr(0)},
	}

	ComputeStandings(teams, fixtures)

	if teams[0].Played != 0 || teams[0].Points != 0 {
		t.Fatalf("input team mutated: %+v", teams[0])
	}
}

func TestDeriveCurrentWeek(t *testing.T) {
	t.Parallel()

	table := []team.Team{
		{ID: 1, Played: 12},
		{ID: 2, Played: 12},
		{ID: 3, Played: 13},
		{ID: 4, Played: 11},
	}
	if got := DeriveCurrentWeek(table, 1); got != 12 {
		t.Fatalf("DeriveCurrentWeek = %d, want 12", got)
	}
	if got := DeriveCurrentWeek(nil, 7); got != 7 {
		t.Fatalf("empty table should fall back, got %d", got)
	}
	if got := DeriveCurrentWeek([]team.Team{{ID: 1}}, 4); got != 4 {
		t.Fatalf("zero plays should fall back, got %d", got)
	}
}

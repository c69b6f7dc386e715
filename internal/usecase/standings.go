package usecase

import (
	"sort"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/team"
)

// ComputeStandings derives the league table from played fixtures applied on
// top of the canonical seed stats (which may be non-zero for mid-season
// seeds). Pure: inputs are never mutated, and the sort is stable so equal
// (points, goal diff, goals for) rows keep the input team order.
func ComputeStandings(teams []team.Team, fixtures []fixture.Fixture) []team.Team {
	out := make([]team.Team, 0, len(teams))
	indexByID := make(map[int]int, len(teams))
	for _, item := range teams {
		indexByID[item.ID] = len(out)
		out = append(out, item.Clone())
	}

	for _, match := range fixtures {
		if !match.IsPlayed() {
			continue
		}
		homeIdx, homeOK := indexByID[match.HomeTeamID]
		awayIdx, awayOK := indexByID[match.AwayTeamID]
		if !homeOK || !awayOK {
			continue
		}
		out[homeIdx].ApplyResult(*match.HomeScore, *match.AwayScore)
		out[awayIdx].ApplyResult(*match.AwayScore, *match.HomeScore)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDiff != out[j].GoalDiff {
			return out[i].GoalDiff > out[j].GoalDiff
		}
		return out[i].GoalsFor > out[j].GoalsFor
	})

	return out
}

// DeriveCurrentWeek estimates the season's current week as the rounded
// average of played-match counts, falling back to the configured week when
// nothing has been played yet.
func DeriveCurrentWeek(table []team.Team, fallback int) int {
	if len(table) == 0 {
		return fallback
	}
	total := 0
	for _, row := range table {
		total += row.Played
	}
	if total == 0 {
		return fallback
	}
	week := (total + len(table)/2) / len(table)
	if week < 1 {
		week = 1
	}
	return week
}

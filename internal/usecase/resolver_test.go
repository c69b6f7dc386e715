package usecase

import (
	"testing"

	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/team"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
)

func TestTeamResolverExternalIDWins(t *testing.T) {
	t.Parallel()

	lg := league.League{
		ID:     "lig-1",
		Source: league.SourceTFF,
		TeamIDByExternalID: map[int64]int{
			4321: 2,
		},
	}
	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Safranboluspor"},
		{ID: 2, LeagueID: "lig-1", Name: "Yenice Kültürspor"},
	}
	r := NewTeamResolver(lg, teams, DefaultMatcherConfig(), logging.NewNop())

	// The id map is authoritative even when the scraped name points at a
	// different club.
	teamID, ok := r.Resolve(4321, "Safranboluspor")
	if !ok || teamID != 2 {
		t.Fatalf("Resolve(4321) = %d, %v; want 2, true", teamID, ok)
	}
}

func TestTeamResolverNormalizedExactMatch(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	cases := []struct {
		name string
		want int
	}{
		{"SAFRANBOLUSPOR", 1},
		{"Safranbolu Spor Kulübü", 1},
		{"YENİCE KÜLTÜRSPOR", 2},
		{"Eskipazar Belediye Spor", 3},
	}
	for _, tc := range cases {
		teamID, ok := r.Resolve(0, tc.name)
		if !ok || teamID != tc.want {
			t.Fatalf("Resolve(%q) = %d, %v; want %d, true", tc.name, teamID, ok, tc.want)
		}
	}
}

func TestTeamResolverAliasMatch(t *testing.T) {
	t.Parallel()

	lg := league.League{
		ID:     "lig-1",
		Source: league.SourceASKF,
		NameAliases: map[string]string{
			"74 Esnafspor": "Karabük Esnaf Birliği Spor",
		},
	}
	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Karabük Esnaf Birliği Spor"},
		{ID: 2, LeagueID: "lig-1", Name: "Safranboluspor"},
	}
	r := NewTeamResolver(lg, teams, DefaultMatcherConfig(), logging.NewNop())

	teamID, ok := r.Resolve(0, "74 ESNAFSPOR")
	if !ok || teamID != 1 {
		t.Fatalf("alias Resolve = %d, %v; want 1, true", teamID, ok)
	}
}

func TestTeamResolverContainment(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	// Scraped names often carry extra qualifiers around the club name.
	teamID, ok := r.Resolve(0, "Yenice Kültürspor A.Ş.")
	if !ok || teamID != 2 {
		t.Fatalf("containment Resolve = %d, %v; want 2, true", teamID, ok)
	}
}

func TestTeamResolverTokenOverlap(t *testing.T) {
	t.Parallel()

	lg := league.League{ID: "lig-1", Source: league.SourceASKF}
	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Yeşil Yenice Gençlik Spor"},
		{ID: 2, LeagueID: "lig-1", Name: "Ovacık Belediye Spor"},
	}
	r := NewTeamResolver(lg, teams, DefaultMatcherConfig(), logging.NewNop())

	// Word order differs and one token is missing; two long shared tokens
	// still identify the club uniquely.
	teamID, ok := r.Resolve(0, "Yenice Yeşil Spor")
	if !ok || teamID != 1 {
		t.Fatalf("token overlap Resolve = %d, %v; want 1, true", teamID, ok)
	}
}

func TestTeamResolverAmbiguousStaysUnresolved(t *testing.T) {
	t.Parallel()

	lg := league.League{ID: "lig-1", Source: league.SourceASKF}
	teams := []team.Team{
		{ID: 1, LeagueID: "lig-1", Name: "Yenice Gençlik Birliği"},
		{ID: 2, LeagueID: "lig-1", Name: "Yenice Gücü Birliği"},
	}
	r := NewTeamResolver(lg, teams, DefaultMatcherConfig(), logging.NewNop())

	if teamID, ok := r.Resolve(0, "Birliği Yenice Kulübü"); ok {
		t.Fatalf("ambiguous reference resolved to %d", teamID)
	}
}

func TestTeamResolverUnknownStaysUnresolved(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	if teamID, ok := r.Resolve(0, "Ankara Demirspor"); ok {
		t.Fatalf("unknown club resolved to %d", teamID)
	}
	if teamID, ok := r.Resolve(0, ""); ok {
		t.Fatalf("empty name resolved to %d", teamID)
	}
}

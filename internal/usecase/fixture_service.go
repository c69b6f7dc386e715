package usecase

import (
	"context"
	"fmt"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/season"
	"github.com/oguzatak/lig-takip/internal/domain/team"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
)

// StandingsResult is a league table computed from the current season state.
type StandingsResult struct {
	LeagueID    string
	Table       []team.Team
	CurrentWeek int
}

// FixtureService serves reads and manual edits of the season fixture set.
// Edits go through the same guarded snapshot load as syncs, so a manual
// score change can never resurrect a corrupt season.
type FixtureService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	seasonRepo  season.Repository
	logger      *logging.Logger
}

func NewFixtureService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	seasonRepo season.Repository,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		seasonRepo:  seasonRepo,
		logger:      logger,
	}
}

// ListFixtures returns the merged season fixtures, optionally filtered to a
// single week. week <= 0 means all weeks.
func (s *FixtureService) ListFixtures(ctx context.Context, leagueID string, week int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures")
	defer span.End()

	_, snapshot, _, err := s.loadSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if week <= 0 {
		return snapshot.Fixtures, nil
	}

	out := make([]fixture.Fixture, 0, len(snapshot.Fixtures))
	for _, item := range snapshot.Fixtures {
		if item.Week == week {
			out = append(out, item)
		}
	}
	return out, nil
}

// Standings computes the league table from the current season state.
func (s *FixtureService) Standings(ctx context.Context, leagueID string) (StandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Standings")
	defer span.End()

	lg, snapshot, teams, err := s.loadSeason(ctx, leagueID)
	if err != nil {
		return StandingsResult{}, err
	}

	table := ComputeStandings(teams, snapshot.Fixtures)
	return StandingsResult{
		LeagueID:    leagueID,
		Table:       table,
		CurrentWeek: DeriveCurrentWeek(table, lg.CurrentWeek),
	}, nil
}

// UpdateScore sets or clears the result of one fixture. Both scores nil
// marks the match unplayed; a single nil or a negative value is rejected.
func (s *FixtureService) UpdateScore(ctx context.Context, leagueID, fixtureID string, homeScore, awayScore *int) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateScore")
	defer span.End()

	if (homeScore == nil) != (awayScore == nil) {
		return fixture.Fixture{}, fmt.Errorf("%w: scores must be set together or cleared together", ErrInvalidInput)
	}
	if homeScore != nil && (*homeScore < 0 || *awayScore < 0) {
		return fixture.Fixture{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	_, snapshot, _, err := s.loadSeason(ctx, leagueID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	idx := -1
	for i, item := range snapshot.Fixtures {
		if item.ID == fixtureID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %s in league %s", ErrNotFound, fixtureID, leagueID)
	}

	snapshot.Fixtures[idx].HomeScore = fixture.CloneScore(homeScore)
	snapshot.Fixtures[idx].AwayScore = fixture.CloneScore(awayScore)
	if err := s.seasonRepo.Save(ctx, leagueID, snapshot); err != nil {
		return fixture.Fixture{}, fmt.Errorf("save season snapshot league=%s: %w", leagueID, err)
	}

	return snapshot.Fixtures[idx].Clone(), nil
}

// SubstituteTeam swaps one side of a fixture to another team of the same
// league, for correcting a mis-seeded schedule. The swap is rejected when it
// would collide with an existing (week, home, away) key.
func (s *FixtureService) SubstituteTeam(ctx context.Context, leagueID, fixtureID string, side string, newTeamID int) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SubstituteTeam")
	defer span.End()

	if side != "home" && side != "away" {
		return fixture.Fixture{}, fmt.Errorf("%w: side must be home or away", ErrInvalidInput)
	}

	_, snapshot, teams, err := s.loadSeason(ctx, leagueID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	known := false
	for _, item := range teams {
		if item.ID == newTeamID {
			known = true
			break
		}
	}
	if !known {
		return fixture.Fixture{}, fmt.Errorf("%w: team %d in league %s", ErrNotFound, newTeamID, leagueID)
	}

	idx := -1
	for i, item := range snapshot.Fixtures {
		if item.ID == fixtureID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %s in league %s", ErrNotFound, fixtureID, leagueID)
	}

	updated := snapshot.Fixtures[idx].Clone()
	if side == "home" {
		updated.HomeTeamID = newTeamID
	} else {
		updated.AwayTeamID = newTeamID
	}
	if updated.HomeTeamID == updated.AwayTeamID {
		return fixture.Fixture{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	for i, item := range snapshot.Fixtures {
		if i != idx && item.Key() == updated.Key() {
			return fixture.Fixture{}, fmt.Errorf("%w: week %d already has %d vs %d", ErrInvalidInput, updated.Week, updated.HomeTeamID, updated.AwayTeamID)
		}
	}

	snapshot.Fixtures[idx] = updated
	if err := s.seasonRepo.Save(ctx, leagueID, snapshot); err != nil {
		return fixture.Fixture{}, fmt.Errorf("save season snapshot league=%s: %w", leagueID, err)
	}

	return updated.Clone(), nil
}

func (s *FixtureService) loadSeason(ctx context.Context, leagueID string) (league.League, season.Snapshot, []team.Team, error) {
	lg, ok, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, season.Snapshot{}, nil, fmt.Errorf("load league %s: %w", leagueID, err)
	}
	if !ok {
		return league.League{}, season.Snapshot{}, nil, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, season.Snapshot{}, nil, fmt.Errorf("list teams league=%s: %w", leagueID, err)
	}
	seed, err := s.fixtureRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, season.Snapshot{}, nil, fmt.Errorf("list seed fixtures league=%s: %w", leagueID, err)
	}
	persisted, found, err := s.seasonRepo.Load(ctx, leagueID)
	if err != nil {
		return league.League{}, season.Snapshot{}, nil, fmt.Errorf("load season snapshot league=%s: %w", leagueID, err)
	}

	snapshot, reset, reason := EnsureSnapshot(persisted, found, seed, len(teams))
	if reset {
		if found {
			s.logger.WarnContext(ctx, "persisted season discarded, rebuilt from seed",
				"league_id", leagueID,
				"reason", reason,
			)
		}
		if err := s.seasonRepo.Save(ctx, leagueID, snapshot); err != nil {
			return league.League{}, season.Snapshot{}, nil, fmt.Errorf("save rebuilt season league=%s: %w", leagueID, err)
		}
	}

	return lg, snapshot, teams, nil
}

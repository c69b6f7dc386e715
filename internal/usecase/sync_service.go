package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/season"
	"github.com/oguzatak/lig-takip/internal/domain/team"
	"github.com/oguzatak/lig-takip/internal/platform/cache"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
)

const (
	sourceTagTFF  = "tff"
	sourceTagASKF = "askf"

	defaultForceWindow   = 5 * time.Minute
	maxWeekFetchParallel = 8
)

type SyncConfig struct {
	Matcher MatcherConfig
	// ForceWindow rate-limits unconditional full resyncs per league.
	ForceWindow time.Duration
}

// SyncResult is the outcome of one league synchronization.
type SyncResult struct {
	LeagueID string
	// Standings holds the source's own table when it published one; display
	// uses it as-is and falls back to Table otherwise.
	Standings []ExternalStanding
	// Table is the canonical table computed from the merged fixtures.
	Table []team.Team
	// Fixtures is the merged season fixture set after the sync.
	Fixtures    []fixture.Fixture
	CurrentWeek int
	Merge       MergeStats
	// FailedWeeks lists fan-out weeks whose fetch failed; they contributed
	// no update, which is not the same as a week without matches.
	FailedWeeks []int
	// Skipped is set when the force window suppressed a full resync.
	Skipped     bool
	LastUpdated time.Time
}

// GroupSyncResult carries both amateur-federation groups from one page
// fetch.
type GroupSyncResult struct {
	GroupA      SyncResult
	GroupB      SyncResult
	LastUpdated time.Time
}

// SyncService drives fetch, parse, resolve, merge and persist for all
// configured leagues.
type SyncService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	seasonRepo  season.Repository
	sourceA     SourceAProvider
	sourceB     SourceBProvider
	cache       *cache.Store
	cfg         SyncConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewSyncService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	seasonRepo season.Repository,
	sourceA SourceAProvider,
	sourceB SourceBProvider,
	responseCache *cache.Store,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.Matcher = normalizeMatcherConfig(cfg.Matcher)
	if cfg.ForceWindow <= 0 {
		cfg.ForceWindow = defaultForceWindow
	}

	return &SyncService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		seasonRepo:  seasonRepo,
		sourceA:     sourceA,
		sourceB:     sourceB,
		cache:       responseCache,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncSourceA synchronizes one federation league. week > 0 fetches a single
// week's page; week <= 0 runs a full-season fan-out bounded by the force
// window unless force is set.
func (s *SyncService) SyncSourceA(ctx context.Context, leagueID string, week int, force bool) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSourceA")
	defer span.End()

	if s.sourceA == nil {
		return SyncResult{}, fmt.Errorf("%w: federation source is not configured", ErrDependencyUnavailable)
	}

	lg, base, teams, err := s.loadSeason(ctx, leagueID)
	if err != nil {
		return SyncResult{}, err
	}
	if lg.Source != league.SourceTFF {
		return SyncResult{}, fmt.Errorf("%w: league %s is not served by the federation source", ErrInvalidInput, leagueID)
	}

	fullSeason := week <= 0
	if fullSeason && !force && base.LastForcedSync != nil {
		if age := s.now().Sub(*base.LastForcedSync); age < s.cfg.ForceWindow {
			s.logger.InfoContext(ctx, "full resync skipped inside force window",
				"league_id", leagueID,
				"age", age,
			)
			return s.resultFromSnapshot(lg, base, teams, true), nil
		}
	}

	var (
		standings   []ExternalStanding
		external    []ExternalFixture
		failedWeeks []int
	)
	if fullSeason {
		standings, external, failedWeeks = s.fetchFullSeason(ctx, lg)
		if len(failedWeeks) == lg.MaxWeek {
			return SyncResult{}, fmt.Errorf("%w: all %d week fetches failed for league %s", ErrSourceUnavailable, lg.MaxWeek, leagueID)
		}
	} else {
		snapshot, fetchErr := s.sourceA.FetchWeek(ctx, lg, week)
		if fetchErr != nil {
			return SyncResult{}, fmt.Errorf("%w: fetch week %d for league %s: %v", ErrSourceUnavailable, week, leagueID, fetchErr)
		}
		standings = snapshot.Standings
		external = snapshot.Fixtures
	}

	result, err := s.mergeAndSave(ctx, lg, base, teams, standings, external, MergePolicy{
		AllowAppend: lg.AllowAppend,
		SourceTag:   sourceTagTFF,
		LeagueID:    lg.ID,
	}, fullSeason)
	if err != nil {
		return SyncResult{}, err
	}
	result.FailedWeeks = failedWeeks

	return result, nil
}

// SyncSourceB synchronizes both amateur groups from their shared page. The
// response is cached so intermediaries re-requesting inside the window do
// not re-hit the federation site.
func (s *SyncService) SyncSourceB(ctx context.Context) (GroupSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSourceB")
	defer span.End()

	if s.sourceB == nil {
		return GroupSyncResult{}, fmt.Errorf("%w: amateur source is not configured", ErrDependencyUnavailable)
	}

	if s.cache == nil {
		return s.syncSourceB(ctx)
	}
	out, err := s.cache.GetOrLoad(ctx, "sync:source-b", func(ctx context.Context) (any, error) {
		return s.syncSourceB(ctx)
	})
	if err != nil {
		return GroupSyncResult{}, err
	}
	result, ok := out.(GroupSyncResult)
	if !ok {
		return GroupSyncResult{}, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return result, nil
}

func (s *SyncService) syncSourceB(ctx context.Context) (GroupSyncResult, error) {
	groups, err := s.sourceB.FetchGroups(ctx)
	if err != nil {
		return GroupSyncResult{}, fmt.Errorf("%w: fetch amateur page: %v", ErrSourceUnavailable, err)
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return GroupSyncResult{}, fmt.Errorf("list leagues for amateur sync: %w", err)
	}

	out := GroupSyncResult{LastUpdated: s.now().UTC()}
	for _, lg := range leagues {
		if lg.Source != league.SourceASKF {
			continue
		}
		snapshot := groups.GroupA
		if lg.Group == "B" {
			snapshot = groups.GroupB
		}

		_, base, teams, loadErr := s.loadSeason(ctx, lg.ID)
		if loadErr != nil {
			return GroupSyncResult{}, loadErr
		}
		result, mergeErr := s.mergeAndSave(ctx, lg, base, teams, snapshot.Standings, snapshot.Fixtures, MergePolicy{
			AllowAppend: lg.AllowAppend,
			SourceTag:   sourceTagASKF,
			LeagueID:    lg.ID,
		}, false)
		if mergeErr != nil {
			return GroupSyncResult{}, mergeErr
		}

		if lg.Group == "B" {
			out.GroupB = result
		} else {
			out.GroupA = result
		}
	}

	return out, nil
}

// fetchFullSeason fans out one fetch per week and gathers before any merge,
// so concurrent fetches never touch shared state. A failed week contributes
// nothing rather than failing the sync.
func (s *SyncService) fetchFullSeason(ctx context.Context, lg league.League) ([]ExternalStanding, []ExternalFixture, []int) {
	type weekResult struct {
		week     int
		snapshot SourceSnapshot
		err      error
	}

	p := pool.NewWithResults[weekResult]().WithMaxGoroutines(maxWeekFetchParallel)
	for week := 1; week <= lg.MaxWeek; week++ {
		week := week
		p.Go(func() weekResult {
			snapshot, err := s.sourceA.FetchWeek(ctx, lg, week)
			return weekResult{week: week, snapshot: snapshot, err: err}
		})
	}
	results := p.Wait()

	var (
		fixtures      []ExternalFixture
		failedWeeks   []int
		standings     []ExternalStanding
		standingsWeek int
	)
	for _, result := range results {
		if result.err != nil {
			s.logger.WarnContext(ctx, "week fetch failed, treating as no update",
				"league_id", lg.ID,
				"week", result.week,
				"error", result.err,
			)
			failedWeeks = append(failedWeeks, result.week)
			continue
		}
		fixtures = append(fixtures, result.snapshot.Fixtures...)
		// Every page repeats the standings table; keep the freshest copy,
		// preferring the configured current week.
		if len(result.snapshot.Standings) == 0 {
			continue
		}
		if result.week == lg.CurrentWeek || standingsWeek == 0 ||
			(standingsWeek != lg.CurrentWeek && result.week > standingsWeek) {
			standings = result.snapshot.Standings
			standingsWeek = result.week
		}
	}

	return standings, fixtures, failedWeeks
}

func (s *SyncService) mergeAndSave(
	ctx context.Context,
	lg league.League,
	base season.Snapshot,
	teams []team.Team,
	standings []ExternalStanding,
	external []ExternalFixture,
	policy MergePolicy,
	forced bool,
) (SyncResult, error) {
	resolver := NewTeamResolver(lg, teams, s.cfg.Matcher, s.logger)
	merged, stats := MergeFixtures(base.Fixtures, external, resolver, policy)

	snapshot := season.Snapshot{
		Fixtures:       merged,
		Fingerprint:    base.Fingerprint,
		LastForcedSync: base.LastForcedSync,
	}
	if forced {
		now := s.now().UTC()
		snapshot.LastForcedSync = &now
	}
	if err := s.seasonRepo.Save(ctx, lg.ID, snapshot); err != nil {
		return SyncResult{}, fmt.Errorf("save season snapshot league=%s: %w", lg.ID, err)
	}

	if stats.Dropped > 0 {
		s.logger.WarnContext(ctx, "some scraped fixtures were dropped",
			"league_id", lg.ID,
			"dropped", stats.Dropped,
			"updated", stats.Updated,
			"appended", stats.Appended,
		)
	}
	for _, row := range standings {
		if row.StatsSuspect {
			s.logger.WarnContext(ctx, "standings row failed goal-difference sanity check",
				"league_id", lg.ID,
				"team", row.Name,
			)
		}
	}

	result := s.resultFromSnapshot(lg, snapshot, teams, false)
	result.Standings = standings
	result.Merge = stats
	return result, nil
}

func (s *SyncService) resultFromSnapshot(lg league.League, snapshot season.Snapshot, teams []team.Team, skipped bool) SyncResult {
	table := ComputeStandings(teams, snapshot.Fixtures)
	return SyncResult{
		LeagueID:    lg.ID,
		Table:       table,
		Fixtures:    snapshot.Fixtures,
		CurrentWeek: DeriveCurrentWeek(table, lg.CurrentWeek),
		Skipped:     skipped,
		LastUpdated: s.now().UTC(),
	}
}

// loadSeason loads league config, canonical seed and the guarded persisted
// snapshot. Guard resets are persisted immediately so a corrupt base can
// never receive a merge.
func (s *SyncService) loadSeason(ctx context.Context, leagueID string) (league.League, season.Snapshot, []team.Team, error) {
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
				"persisted_count", len(persisted.Fixtures),
				"seed_count", len(seed),
			)
		}
		if err := s.seasonRepo.Save(ctx, leagueID, snapshot); err != nil {
			return league.League{}, season.Snapshot{}, nil, fmt.Errorf("save rebuilt season league=%s: %w", leagueID, err)
		}
	}

	return lg, snapshot, teams, nil
}

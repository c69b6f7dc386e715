package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/team"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
	"github.com/oguzatak/lig-takip/internal/usecase"
)

type Handler struct {
	leagueService  *usecase.LeagueService
	fixtureService *usecase.FixtureService
	syncService    *usecase.SyncService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	fixtureService *usecase.FixtureService,
	syncService *usecase.SyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:  leagueService,
		fixtureService: fixtureService,
		syncService:    syncService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	result, err := h.fixtureService.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsDTO{
		LeagueID:    result.LeagueID,
		CurrentWeek: result.CurrentWeek,
		Table:       tableToDTO(result.Table),
	})
}

func (h *Handler) ListFixturesByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	week, err := optionalIntQuery(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.fixtureService.ListFixtures(ctx, leagueID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateFixtureScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFixtureScore")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	fixtureID := r.PathValue("fixtureID")

	var req updateScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.UpdateScore(ctx, leagueID, fixtureID, req.HomeScore, req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "update score failed",
			"league_id", leagueID,
			"fixture_id", fixtureID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) SubstituteFixtureTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubstituteFixtureTeam")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	fixtureID := r.PathValue("fixtureID")

	var req substituteTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.SubstituteTeam(ctx, leagueID, fixtureID, req.Side, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "substitute team failed",
			"league_id", leagueID,
			"fixture_id", fixtureID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, out any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func optionalIntQuery(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

type updateScoreRequest struct {
	HomeScore *int `json:"homeScore" validate:"omitempty,min=0"`
	AwayScore *int `json:"awayScore" validate:"omitempty,min=0"`
}

type substituteTeamRequest struct {
	Side   string `json:"side" validate:"required,oneof=home away"`
	TeamID int    `json:"teamId" validate:"required,gt=0"`
}

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Source      string `json:"source"`
	Group       string `json:"group,omitempty"`
	MaxWeek     int    `json:"maxWeek"`
	CurrentWeek int    `json:"currentWeek"`
}

type standingsDTO struct {
	LeagueID    string        `json:"leagueId"`
	CurrentWeek int           `json:"currentWeek"`
	Table       []tableRowDTO `json:"table"`
}

type tableRowDTO struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Played       int      `json:"played"`
	Won          int      `json:"won"`
	Drawn        int      `json:"drawn"`
	Lost         int      `json:"lost"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
	GoalDiff     int      `json:"goalDiff"`
	Points       int      `json:"points"`
	Form         []string `json:"form,omitempty"`
}

type fixtureDTO struct {
	ID         string `json:"id"`
	LeagueID   string `json:"leagueId"`
	Week       int    `json:"week"`
	HomeTeamID int    `json:"homeTeamId"`
	AwayTeamID int    `json:"awayTeamId"`
	HomeScore  *int   `json:"homeScore"`
	AwayScore  *int   `json:"awayScore"`
	Played     bool   `json:"played"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:          v.ID,
		Name:        v.Name,
		Source:      v.Source,
		Group:       v.Group,
		MaxWeek:     v.MaxWeek,
		CurrentWeek: v.CurrentWeek,
	}
}

func tableToDTO(rows []team.Team) []tableRowDTO {
	out := make([]tableRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, tableRowDTO{
			ID:           row.ID,
			Name:         row.Name,
			Played:       row.Played,
			Won:          row.Won,
			Drawn:        row.Drawn,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalDiff:     row.GoalDiff,
			Points:       row.Points,
			Form:         append([]string(nil), row.Form...),
		})
	}
	return out
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:         v.ID,
		LeagueID:   v.LeagueID,
		Week:       v.Week,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		HomeScore:  fixture.CloneScore(v.HomeScore),
		AwayScore:  fixture.CloneScore(v.AwayScore),
		Played:     v.IsPlayed(),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/oguzatak/lig-takip/internal/usecase"
)

// SyncSourceA triggers a federation sync. ?week=<n> fetches one week's page;
// no week runs a full-season resync, rate-limited unless ?force=true.
func (h *Handler) SyncSourceA(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncSourceA")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league"))
	if leagueID == "" {
		writeError(ctx, w, fmt.Errorf("%w: league query parameter is required", usecase.ErrInvalidInput))
		return
	}
	week, err := optionalIntQuery(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	force := boolQuery(r, "force")

	result, err := h.syncService.SyncSourceA(ctx, leagueID, week, force)
	if err != nil {
		h.logger.WarnContext(ctx, "federation sync failed",
			"league_id", leagueID,
			"week", week,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultToDTO(result))
}

// SyncSourceB syncs both amateur groups from their shared page.
func (h *Handler) SyncSourceB(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncSourceB")
	defer span.End()

	result, err := h.syncService.SyncSourceB(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "amateur sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupSyncDTO{
		GroupA:      syncResultToDTO(result.GroupA),
		GroupB:      syncResultToDTO(result.GroupB),
		LastUpdated: formatTimestamp(result.LastUpdated),
	})
}

func boolQuery(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

type syncResultDTO struct {
	Success     bool             `json:"success"`
	LeagueID    string           `json:"leagueId"`
	CurrentWeek int              `json:"currentWeek"`
	Standings   []standingRowDTO `json:"standings,omitempty"`
	Table       []tableRowDTO    `json:"table"`
	Fixtures    []fixtureDTO     `json:"fixtures"`
	Merge       mergeStatsDTO    `json:"merge"`
	FailedWeeks []int            `json:"failedWeeks,omitempty"`
	Skipped     bool             `json:"skipped,omitempty"`
	LastUpdated string           `json:"lastUpdated"`
}

type groupSyncDTO struct {
	GroupA      syncResultDTO `json:"groupA"`
	GroupB      syncResultDTO `json:"groupB"`
	LastUpdated string        `json:"lastUpdated"`
}

type mergeStatsDTO struct {
	Updated  int `json:"updated"`
	Appended int `json:"appended"`
	Dropped  int `json:"dropped"`
}

type standingRowDTO struct {
	Rank           int    `json:"rank"`
	ExternalTeamID int64  `json:"externalTeamId,omitempty"`
	Name           string `json:"name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDiff       int    `json:"goalDiff"`
	Points         int    `json:"points"`
	StatsSuspect   bool   `json:"statsSuspect,omitempty"`
}

func syncResultToDTO(v usecase.SyncResult) syncResultDTO {
	standings := make([]standingRowDTO, 0, len(v.Standings))
	for _, row := range v.Standings {
		standings = append(standings, standingRowDTO{
			Rank:           row.Rank,
			ExternalTeamID: row.ExternalTeamID,
			Name:           row.Name,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDiff:       row.GoalDiff,
			Points:         row.Points,
			StatsSuspect:   row.StatsSuspect,
		})
	}

	fixtures := make([]fixtureDTO, 0, len(v.Fixtures))
	for _, f := range v.Fixtures {
		fixtures = append(fixtures, fixtureToDTO(f))
	}

	return syncResultDTO{
		Success:     true,
		LeagueID:    v.LeagueID,
		CurrentWeek: v.CurrentWeek,
		Standings:   standings,
		Table:       tableToDTO(v.Table),
		Fixtures:    fixtures,
		Merge: mergeStatsDTO{
			Updated:  v.Merge.Updated,
			Appended: v.Merge.Appended,
			Dropped:  v.Merge.Dropped,
		},
		FailedWeeks: v.FailedWeeks,
		Skipped:     v.Skipped,
		LastUpdated: formatTimestamp(v.LastUpdated),
	}
}

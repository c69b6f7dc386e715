package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sync/source-a", handler.SyncSourceA)
	mux.HandleFunc("GET /v1/sync/source-b", handler.SyncSourceB)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/fixtures", handler.ListFixturesByLeague)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/fixtures/{fixtureID}/score", handler.UpdateFixtureScore)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/fixtures/{fixtureID}/teams", handler.SubstituteFixtureTeam)
}

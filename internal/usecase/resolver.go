package usecase

import (
	"strings"

	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/team"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
	"github.com/oguzatak/lig-takip/internal/platform/turktext"
)

// MatcherConfig tunes the fuzzy tiers of team identity resolution.
type MatcherConfig struct {
	// MinTokenLen is the shortest token that participates in overlap scoring.
	MinTokenLen int
	// MinOverlap is the shared-token count that lets a unique candidate win.
	MinOverlap int
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{MinTokenLen: 5, MinOverlap: 2}
}

func normalizeMatcherConfig(cfg MatcherConfig) MatcherConfig {
	defaults := DefaultMatcherConfig()
	if cfg.MinTokenLen < 1 {
		cfg.MinTokenLen = defaults.MinTokenLen
	}
	if cfg.MinOverlap < 1 {
		cfg.MinOverlap = defaults.MinOverlap
	}
	return cfg
}

type resolverEntry struct {
	key    string
	tokens []string
	teamID int
}

// TeamResolver maps an external club reference (federation id or scraped
// name) to the canonical team id of one league. Tiers, authoritative first:
// explicit id map, explicit alias, normalized exact, substring containment,
// token-overlap scoring.
type TeamResolver struct {
	cfg          MatcherConfig
	leagueID     string
	byExternalID map[int64]int
	byKey        map[string]int
	aliases      []resolverEntry
	entries      []resolverEntry
	logger       *logging.Logger
}

func NewTeamResolver(lg league.League, teams []team.Team, cfg MatcherConfig, logger *logging.Logger) *TeamResolver {
	if logger == nil {
		logger = logging.Default()
	}

	r := &TeamResolver{
		cfg:          normalizeMatcherConfig(cfg),
		leagueID:     lg.ID,
		byExternalID: make(map[int64]int, len(lg.TeamIDByExternalID)),
		byKey:        make(map[string]int, len(teams)),
		entries:      make([]resolverEntry, 0, len(teams)),
		logger:       logger,
	}
	for externalID, teamID := range lg.TeamIDByExternalID {
		r.byExternalID[externalID] = teamID
	}
	for _, item := range teams {
		key := turktext.NormalizeKey(item.Name)
		if key == "" {
			continue
		}
		if _, exists := r.byKey[key]; !exists {
			r.byKey[key] = item.ID
		}
		r.entries = append(r.entries, resolverEntry{
			key:    key,
			tokens: turktext.Tokens(key),
			teamID: item.ID,
		})
	}
	for alias, canonical := range lg.NameAliases {
		aliasKey := turktext.NormalizeKey(alias)
		teamID, ok := r.byKey[turktext.NormalizeKey(canonical)]
		if aliasKey == "" || !ok {
			continue
		}
		r.aliases = append(r.aliases, resolverEntry{key: aliasKey, teamID: teamID})
	}

	return r
}

// Resolve returns the canonical team id, or false when the reference cannot
// be mapped. Unresolved references are logged; the caller drops the record.
func (r *TeamResolver) Resolve(externalID int64, name string) (int, bool) {
	if externalID > 0 {
		if teamID, ok := r.byExternalID[externalID]; ok {
			return teamID, true
		}
	}

	key := turktext.NormalizeKey(name)
	if key == "" {
		return 0, false
	}

	for _, alias := range r.aliases {
		if alias.key == key {
			return alias.teamID, true
		}
	}
	for _, alias := range r.aliases {
		if strings.Contains(key, alias.key) || strings.Contains(alias.key, key) {
			return alias.teamID, true
		}
	}

	if teamID, ok := r.byKey[key]; ok {
		return teamID, true
	}

	for _, entry := range r.entries {
		if strings.Contains(key, entry.key) || strings.Contains(entry.key, key) {
			return entry.teamID, true
		}
	}

	if teamID, ok := r.resolveByTokenOverlap(key); ok {
		return teamID, true
	}

	r.logger.Warn("unresolved team reference",
		"league_id", r.leagueID,
		"external_id", externalID,
		"name", name,
	)
	return 0, false
}

func (r *TeamResolver) resolveByTokenOverlap(key string) (int, bool) {
	tokens := make([]string, 0, 4)
	for _, token := range turktext.Tokens(key) {
		if len(token) >= r.cfg.MinTokenLen {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return 0, false
	}

	top := 0
	topTeamID := 0
	topCount := 0
	strongTeamID := 0
	strongCount := 0
	for _, entry := range r.entries {
		score := overlapScore(tokens, entry.tokens)
		if score == 0 {
			continue
		}
		if score >= r.cfg.MinOverlap {
			strongCount++
			strongTeamID = entry.teamID
		}
		switch {
		case score > top:
			top = score
			topTeamID = entry.teamID
			topCount = 1
		case score == top:
			topCount++
		}
	}

	if strongCount == 1 {
		return strongTeamID, true
	}
	if top > 0 && topCount == 1 {
		return topTeamID, true
	}
	return 0, false
}

func overlapScore(left, right []string) int {
	score := 0
	for _, a := range left {
		for _, b := range right {
			if a == b {
				score++
				break
			}
		}
	}
	return score
}

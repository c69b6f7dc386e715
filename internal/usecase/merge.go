package usecase

import (
	"fmt"
	"sort"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
)

// MergePolicy controls how the reconciler treats fixtures absent from the
// persisted set.
type MergePolicy struct {
	// AllowAppend permits adding fixtures the canonical seed does not know.
	// Off by default: discarding unknown rows is what keeps repeated syncs
	// from accumulating fixtures without bound.
	AllowAppend bool
	// SourceTag prefixes ids of appended fixtures.
	SourceTag string
	LeagueID  string
}

type MergeStats struct {
	Updated  int
	Appended int
	Dropped  int
}

// MergeFixtures reconciles freshly scraped fixtures into the persisted set.
// Existing entries keep their id and receive only volatile fields, and only
// from played rows, so an empty scrape can never erase known scores. The
// result never contains two fixtures with the same (week, home, away) key,
// and applying the same external list twice is a no-op the second time.
func MergeFixtures(local []fixture.Fixture, external []ExternalFixture, resolver *TeamResolver, policy MergePolicy) ([]fixture.Fixture, MergeStats) {
	out := fixture.CloneAll(local)
	indexByKey := make(map[fixture.Key]int, len(out))
	for i, item := range out {
		indexByKey[item.Key()] = i
	}

	var stats MergeStats
	for _, item := range external {
		if item.Week <= 0 {
			stats.Dropped++
			continue
		}
		homeTeamID, homeOK := resolver.Resolve(item.HomeExternalID, item.HomeName)
		awayTeamID, awayOK := resolver.Resolve(item.AwayExternalID, item.AwayName)
		if !homeOK || !awayOK || homeTeamID == awayTeamID {
			stats.Dropped++
			continue
		}

		key := fixture.Key{Week: item.Week, HomeTeamID: homeTeamID, AwayTeamID: awayTeamID}
		if i, exists := indexByKey[key]; exists {
			if item.IsPlayed {
				out[i].HomeScore = fixture.CloneScore(item.HomeScore)
				out[i].AwayScore = fixture.CloneScore(item.AwayScore)
				stats.Updated++
			}
			continue
		}

		if !policy.AllowAppend {
			stats.Dropped++
			continue
		}

		appended := fixture.Fixture{
			ID:         appendedFixtureID(policy.SourceTag, key),
			LeagueID:   policy.LeagueID,
			Week:       item.Week,
			HomeTeamID: homeTeamID,
			AwayTeamID: awayTeamID,
		}
		if item.IsPlayed {
			appended.HomeScore = fixture.CloneScore(item.HomeScore)
			appended.AwayScore = fixture.CloneScore(item.AwayScore)
		}
		indexByKey[key] = len(out)
		out = append(out, appended)
		stats.Appended++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Week < out[j].Week
	})

	return out, stats
}

// appendedFixtureID is deterministic so that re-appending the same match on
// a later sync reuses the same id instead of minting a new one.
func appendedFixtureID(sourceTag string, key fixture.Key) string {
	if sourceTag == "" {
		sourceTag = "ext"
	}
	return fmt.Sprintf("%s_%d_%d_%d", sourceTag, key.Week, key.HomeTeamID, key.AwayTeamID)
}

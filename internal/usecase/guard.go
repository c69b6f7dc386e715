package usecase

import (
	"fmt"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/season"
)

const (
	guardReasonFresh       = "no persisted state"
	guardReasonFingerprint = "seed fingerprint changed"
	guardReasonCorruption  = "fixture count above corruption threshold"
)

// SeedFingerprint derives a cheap signature of the canonical seed so that a
// seed update (new season, corrected schedule) invalidates persisted state
// without deep comparison.
func SeedFingerprint(seed []fixture.Fixture) string {
	if len(seed) == 0 {
		return "0__"
	}
	return fmt.Sprintf("%d_%s_%s", len(seed), seed[0].ID, seed[len(seed)-1].ID)
}

// CorruptionThreshold is the largest fixture count a persisted season may
// hold before it is considered damaged by a past merge bug: three times the
// seed, or a full double round-robin plus slack, whichever is larger.
func CorruptionThreshold(seedFixtureCount, teamCount int) int {
	fullSeason := teamCount * (teamCount - 1)
	threshold := seedFixtureCount * 3
	if fullSeason+10 > threshold {
		threshold = fullSeason + 10
	}
	return threshold
}

// EnsureSnapshot validates a loaded snapshot against the canonical seed and
// returns the snapshot a sync may merge into. The fingerprint check runs
// before the size check; either trip rebuilds from seed and clears the
// forced-sync timestamp so the next scheduled sync runs unconditionally.
// reset reports whether the caller should persist the returned snapshot.
func EnsureSnapshot(persisted season.Snapshot, found bool, seed []fixture.Fixture, teamCount int) (snapshot season.Snapshot, reset bool, reason string) {
	fingerprint := SeedFingerprint(seed)
	fromSeed := func(why string) (season.Snapshot, bool, string) {
		return season.Snapshot{
			Fixtures:    fixture.CloneAll(seed),
			Fingerprint: fingerprint,
		}, true, why
	}

	if !found {
		return fromSeed(guardReasonFresh)
	}
	if persisted.Fingerprint != fingerprint {
		return fromSeed(guardReasonFingerprint)
	}
	if len(persisted.Fixtures) > CorruptionThreshold(len(seed), teamCount) {
		return fromSeed(guardReasonCorruption)
	}

	return persisted.Clone(), false, ""
}

package usecase

import (
	"fmt"
	"testing"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/season"
)

func TestEnsureSnapshotRebuildsWhenNothingPersisted(t *testing.T) {
	t.Parallel()

	seed := makeSeedFixtures(4)

	snapshot, reset, reason := EnsureSnapshot(season.Snapshot{}, false, seed, 4)

	if !reset {
		t.Fatalf("expected a rebuild for a fresh league")
	}
	if reason != guardReasonFresh {
		t.Fatalf("unexpected reason %q", reason)
	}
	if len(snapshot.Fixtures) != len(seed) {
		t.Fatalf("rebuilt snapshot has %d fixtures, want %d", len(snapshot.Fixtures), len(seed))
	}
	if snapshot.Fingerprint != SeedFingerprint(seed) {
		t.Fatalf("rebuilt snapshot carries fingerprint %q", snapshot.Fingerprint)
	}
}

func TestEnsureSnapshotRejectsChangedFingerprint(t *testing.T) {
	t.Parallel()

	oldSeed := makeSeedFixtures(30)
	newSeed := makeSeedFixtures(32)
	persisted := season.Snapshot{
		Fixtures:    fixture.CloneAll(oldSeed),
		Fingerprint: SeedFingerprint(oldSeed),
	}

	snapshot, reset, reason := EnsureSnapshot(persisted, true, newSeed, 16)

	if !reset {
		t.Fatalf("expected a rebuild after the seed changed")
	}
	if reason != guardReasonFingerprint {
		t.Fatalf("unexpected reason %q", reason)
	}
	if len(snapshot.Fixtures) != 32 {
		t.Fatalf("rebuilt snapshot has %d fixtures, want 32", len(snapshot.Fixtures))
	}
}

func TestEnsureSnapshotCorruptionBoundary(t *testing.T) {
	t.Parallel()

	seed := makeSeedFixtures(10)
	teamCount := 4
	threshold := CorruptionThreshold(len(seed), teamCount)

	// The persisted sets carry the seed's fingerprint so that only the size
	// check can trip.
	atBound := season.Snapshot{
		Fixtures:    makeSeedFixtures(threshold),
		Fingerprint: SeedFingerprint(seed),
	}
	snapshot, reset, _ := EnsureSnapshot(atBound, true, seed, teamCount)
	if reset {
		t.Fatalf("snapshot at the threshold (%d fixtures) should be kept", threshold)
	}
	if len(snapshot.Fixtures) != threshold {
		t.Fatalf("kept snapshot lost fixtures: %d", len(snapshot.Fixtures))
	}

	overBound := season.Snapshot{
		Fixtures:    makeSeedFixtures(threshold + 1),
		Fingerprint: SeedFingerprint(seed),
	}
	snapshot, reset, reason := EnsureSnapshot(overBound, true, seed, teamCount)
	if !reset {
		t.Fatalf("snapshot one past the threshold should be discarded")
	}
	if reason != guardReasonCorruption {
		t.Fatalf("unexpected reason %q", reason)
	}
	if len(snapshot.Fixtures) != len(seed) {
		t.Fatalf("rebuilt snapshot has %d fixtures, want seed size %d", len(snapshot.Fixtures), len(seed))
	}
}

func TestEnsureSnapshotClearsForcedSyncOnReset(t *testing.T) {
	t.Parallel()

	seed := makeSeedFixtures(6)
	persisted := season.Snapshot{
		Fixtures:    makeSeedFixtures(200),
		Fingerprint: SeedFingerprint(seed),
	}

	snapshot, reset, _ := EnsureSnapshot(persisted, true, seed, 4)

	if !reset {
		t.Fatalf("expected a rebuild")
	}
	if snapshot.LastForcedSync != nil {
		t.Fatalf("rebuild kept the forced-sync timestamp")
	}
}

func TestCorruptionThresholdPicksLargerBound(t *testing.T) {
	t.Parallel()

	// 3x seed dominates for large seeds.
	if got := CorruptionThreshold(100, 4); got != 300 {
		t.Fatalf("CorruptionThreshold(100, 4) = %d, want 300", got)
	}
	// Full double round-robin plus slack dominates for small seeds.
	if got := CorruptionThreshold(5, 16); got != 250 {
		t.Fatalf("CorruptionThreshold(5, 16) = %d, want 250", got)
	}
}

func TestSeedFingerprintTracksCountAndEdgeIDs(t *testing.T) {
	t.Parallel()

	seed := makeSeedFixtures(3)
	if got := SeedFingerprint(seed); got != "3_seed-1_seed-3" {
		t.Fatalf("unexpected fingerprint %q", got)
	}
	if got := SeedFingerprint(nil); got != "0__" {
		t.Fatalf("unexpected empty fingerprint %q", got)
	}
}

func makeSeedFixtures(n int) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fixture.Fixture{
			ID:         fmt.Sprintf("seed-%d", i),
			LeagueID:   "lig-1",
			Week:       (i-1)/2 + 1,
			HomeTeamID: i,
			AwayTeamID: i + 1000,
		})
	}
	return out
}

package season

import (
	"time"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
)

// Snapshot is the persisted state of one league season: the merge-mutated
// fixture set, the fingerprint of the seed it was built from, and the last
// time an unconditional full resync ran.
type Snapshot struct {
	Fixtures       []fixture.Fixture
	Fingerprint    string
	LastForcedSync *time.Time
}

// Clone deep-copies the snapshot, so store reads never alias store state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Fixtures:    fixture.CloneAll(s.Fixtures),
		Fingerprint: s.Fingerprint,
	}
	if s.LastForcedSync != nil {
		t := *s.LastForcedSync
		out.LastForcedSync = &t
	}
	return out
}

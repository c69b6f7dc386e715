package fixture

import "fmt"

// Fixture is one scheduled match of a league season. Scores stay nil until
// the match is played or manually scored.
type Fixture struct {
	ID         string
	LeagueID   string
	Week       int
	HomeTeamID int
	AwayTeamID int
	HomeScore  *int
	AwayScore  *int
}

// Key identifies a fixture inside one season; no two fixtures may share it.
type Key struct {
	Week       int
	HomeTeamID int
	AwayTeamID int
}

func (f Fixture) Key() Key {
	return Key{Week: f.Week, HomeTeamID: f.HomeTeamID, AwayTeamID: f.AwayTeamID}
}

// IsPlayed reports whether both scores are known.
func (f Fixture) IsPlayed() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.LeagueID == "" {
		return fmt.Errorf("fixture league id is required")
	}
	if f.Week <= 0 {
		return fmt.Errorf("fixture week must be positive")
	}
	if f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture team ids must be positive")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture teams must differ")
	}

	return nil
}

// CloneScore copies an optional score so snapshots never share pointers.
func CloneScore(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

// Clone returns a deep copy of the fixture.
func (f Fixture) Clone() Fixture {
	out := f
	out.HomeScore = CloneScore(f.HomeScore)
	out.AwayScore = CloneScore(f.AwayScore)
	return out
}

// CloneAll deep-copies a fixture slice.
func CloneAll(items []Fixture) []Fixture {
	out := make([]Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

package team

import "fmt"

// MaxFormLength bounds the recent-form sequence kept per team.
const MaxFormLength = 5

const (
	FormWin  = "W"
	FormDraw = "D"
	FormLoss = "L"
)

// Team is a club row in a league table. Stats are cumulative for the season
// and may start non-zero for leagues seeded mid-season.
type Team struct {
	ID           int
	LeagueID     string
	Name         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
	Form         []string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be positive")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Clone returns a deep copy so that standings computation never mutates seed
// data.
func (t Team) Clone() Team {
	out := t
	out.Form = append([]string(nil), t.Form...)
	return out
}

// ApplyResult folds one played match into the cumulative stats and appends
// the outcome symbol, keeping Points = 3*Won + Drawn and
// GoalDiff = GoalsFor - GoalsAgainst.
func (t *Team) ApplyResult(goalsFor, goalsAgainst int) {
	t.Played++
	t.GoalsFor += goalsFor
	t.GoalsAgainst += goalsAgainst

	switch {
	case goalsFor > goalsAgainst:
		t.Won++
		t.appendForm(FormWin)
	case goalsFor < goalsAgainst:
		t.Lost++
		t.appendForm(FormLoss)
	default:
		t.Drawn++
		t.appendForm(FormDraw)
	}

	t.GoalDiff = t.GoalsFor - t.GoalsAgainst
	t.Points = 3*t.Won + t.Drawn
}

func (t *Team) appendForm(symbol string) {
	t.Form = append(t.Form, symbol)
	if len(t.Form) > MaxFormLength {
		t.Form = t.Form[len(t.Form)-MaxFormLength:]
	}
}

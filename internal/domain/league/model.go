package league

import "fmt"

const (
	SourceTFF  = "tff"
	SourceASKF = "askf"
)

// League configures one tracked competition: where its official data lives,
// how external team references map onto canonical ids, and how conservative
// the fixture merge policy is.
type League struct {
	ID   string
	Name string
	// Source selects which external client serves this league.
	Source string
	// GroupID and PageID parameterize the federation page for TFF leagues.
	GroupID int64
	PageID  int64
	// Group is the sub-league letter on the amateur federation page.
	Group string
	// MaxWeek bounds the per-week fetch fan-out of a full-season sync.
	MaxWeek int
	// CurrentWeek is the configured fallback when no played fixture exists
	// to derive the week from.
	CurrentWeek int
	// AllowAppend lets the reconciler add fixtures missing from the seed.
	// Only enabled for leagues whose canonical schedule is incomplete.
	AllowAppend bool
	// TeamIDByExternalID maps the federation club id to the canonical team id.
	TeamIDByExternalID map[int64]int
	// NameAliases maps a normalized scraped name to the canonical team name,
	// for clubs whose official spelling never fuzzy-matches.
	NameAliases map[string]string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	switch l.Source {
	case SourceTFF:
		if l.GroupID <= 0 || l.PageID <= 0 {
			return fmt.Errorf("tff league needs group and page ids")
		}
	case SourceASKF:
		if l.Group == "" {
			return fmt.Errorf("askf league needs a group letter")
		}
	default:
		return fmt.Errorf("unknown league source %q", l.Source)
	}
	if l.MaxWeek <= 0 {
		return fmt.Errorf("league max week must be positive")
	}

	return nil
}

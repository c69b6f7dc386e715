package memory

import (
	"fmt"
	"sort"

	"github.com/oguzatak/lig-takip/internal/domain/fixture"
	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/domain/team"
)

const (
	LeagueIDKarabuk = "karabuk"
	LeagueIDEflani  = "eflani"
	LeagueIDAmatorA = "amator-a"
	LeagueIDAmatorB = "amator-b"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDKarabuk,
			Name:        "TFF 3. Lig 3. Grup",
			Source:      league.SourceTFF,
			GroupID:     2785,
			PageID:      971,
			MaxWeek:     32,
			CurrentWeek: 23,
		},
		{
			ID:          LeagueIDEflani,
			Name:        "Bölgesel Amatör Lig 4. Grup",
			Source:      league.SourceTFF,
			GroupID:     3304,
			PageID:      1596,
			MaxWeek:     26,
			CurrentWeek: 17,
		},
		{
			ID:          LeagueIDAmatorA,
			Name:        "Karabük 1. Amatör A Grubu",
			Source:      league.SourceASKF,
			Group:       "A",
			MaxWeek:     14,
			CurrentWeek: 7,
			AllowAppend: true,
			NameAliases: map[string]string{
				"Yeşil Yenice Spor":       "Yeşil Yenicespor",
				"Karabük Anadolu GSK":     "Anadolu Gençlikspor",
				"Karabük Anadolu Gençlik": "Anadolu Gençlikspor",
				"Karabük 3 Nisan Spor":    "Esentepe 3 Nisan Spor",
				"78 Bozkurt Spor Kulübü":  "Bozkurt 78 Spor",
			},
		},
		{
			ID:          LeagueIDAmatorB,
			Name:        "Karabük 1. Amatör B Grubu",
			Source:      league.SourceASKF,
			Group:       "B",
			MaxWeek:     14,
			CurrentWeek: 7,
			AllowAppend: true,
			NameAliases: map[string]string{
				"Safranbolu Spor":          "Safranboluspor",
				"Burunsuz Karabükgücüspor": "Burunsuz Karabükgücü",
				"K.Gençlerbirliği Spor":    "Karabük Gençlerbirliği",
				"Karabük Birlik Spor":      "Karabük Birlikspor",
			},
		},
	}
}

// seedTeam compresses the positional stat columns of a published table row.
func seedTeam(leagueID string, id int, name string, stats [8]int) team.Team {
	return team.Team{
		ID:           id,
		LeagueID:     leagueID,
		Name:         name,
		Played:       stats[0],
		Won:          stats[1],
		Drawn:        stats[2],
		Lost:         stats[3],
		GoalsFor:     stats[4],
		GoalsAgainst: stats[5],
		GoalDiff:     stats[6],
		Points:       stats[7],
	}
}

// SeedTeams returns each league's table as published at the seed cut: week
// 22 for karabuk, week 17 for eflani, week 6 for both amateur groups.
func SeedTeams() []team.Team {
	return []team.Team{
		seedTeam(LeagueIDKarabuk, 1, "Sebat Gençlik Spor", [8]int{22, 16, 6, 0, 46, 16, 30, 54}),
		seedTeam(LeagueIDKarabuk, 2, "52 Orduspor FK", [8]int{22, 14, 3, 5, 52, 21, 31, 45}),
		seedTeam(LeagueIDKarabuk, 3, "Fatsa Belediyespor", [8]int{22, 12, 3, 7, 27, 21, 6, 39}),
		seedTeam(LeagueIDKarabuk, 4, "Yozgat Belediye Bozokspor", [8]int{22, 11, 5, 6, 44, 22, 22, 38}),
		seedTeam(LeagueIDKarabuk, 5, "TCH Group Zonguldakspor", [8]int{22, 11, 5, 6, 38, 17, 21, 38}),
		seedTeam(LeagueIDKarabuk, 6, "KDZ. Ereğli Belediye Spor", [8]int{22, 10, 8, 4, 30, 23, 7, 38}),
		seedTeam(LeagueIDKarabuk, 7, "Düzce Cam Düzcespor", [8]int{22, 8, 5, 9, 24, 27, -3, 29}),
		seedTeam(LeagueIDKarabuk, 8, "Pazarspor", [8]int{22, 8, 7, 7, 22, 25, -3, 31}),
		seedTeam(LeagueIDKarabuk, 9, "Tokat Belediye Spor", [8]int{22, 7, 5, 10, 21, 25, -4, 26}),
		seedTeam(LeagueIDKarabuk, 10, "1926 Bulancakspor", [8]int{22, 6, 5, 11, 22, 41, -19, 23}),
		seedTeam(LeagueIDKarabuk, 11, "Orduspor 1967 A.Ş.", [8]int{22, 6, 7, 9, 23, 35, -12, 25}),
		seedTeam(LeagueIDKarabuk, 12, "Karabük İdman Yurdu Spor", [8]int{22, 7, 4, 11, 21, 38, -17, 25}),
		seedTeam(LeagueIDKarabuk, 13, "Amasya Spor FK", [8]int{22, 5, 6, 11, 19, 32, -13, 21}),
		seedTeam(LeagueIDKarabuk, 14, "Artvin Hopaspor", [8]int{22, 6, 4, 12, 23, 33, -10, 22}),
		seedTeam(LeagueIDKarabuk, 15, "Çayeli Spor Kulübü", [8]int{22, 3, 8, 11, 17, 32, -15, 17}),
		seedTeam(LeagueIDKarabuk, 16, "Giresunspor", [8]int{22, 3, 5, 14, 19, 40, -21, 14}),

		seedTeam(LeagueIDEflani, 1, "Çarşambaspor", [8]int{17, 13, 3, 1, 35, 7, 28, 42}),
		seedTeam(LeagueIDEflani, 2, "Çankırı Futbol SK", [8]int{17, 12, 2, 3, 35, 13, 22, 38}),
		seedTeam(LeagueIDEflani, 3, "Ladik Belediyespor", [8]int{17, 9, 6, 2, 26, 14, 12, 33}),
		seedTeam(LeagueIDEflani, 4, "Sorgun Belediyespor", [8]int{17, 9, 5, 3, 27, 15, 12, 32}),
		seedTeam(LeagueIDEflani, 5, "Devrek Belediyespor", [8]int{17, 8, 3, 6, 29, 17, 12, 27}),
		seedTeam(LeagueIDEflani, 6, "1930 Bafra Spor", [8]int{17, 7, 3, 7, 19, 22, -3, 24}),
		seedTeam(LeagueIDEflani, 7, "Turhal 60 Futbol SK", [8]int{17, 5, 8, 4, 28, 19, 9, 23}),
		seedTeam(LeagueIDEflani, 8, "Sinopspor", [8]int{17, 5, 5, 7, 20, 21, -1, 20}),
		seedTeam(LeagueIDEflani, 9, "AVS Çaycuma Spor Kulübü", [8]int{17, 6, 2, 9, 22, 29, -7, 20}),
		seedTeam(LeagueIDEflani, 10, "Merzifonspor", [8]int{17, 6, 4, 7, 17, 22, -5, 22}),
		seedTeam(LeagueIDEflani, 11, "Tavuk Evi Eflani Spor Kulübü", [8]int{17, 4, 7, 6, 20, 23, -3, 19}),
		seedTeam(LeagueIDEflani, 12, "Yeniçağa Spor Kulübü", [8]int{17, 3, 3, 11, 16, 33, -17, 12}),
		seedTeam(LeagueIDEflani, 13, "Bartınspor", [8]int{17, 2, 3, 12, 10, 31, -21, 9}),
		seedTeam(LeagueIDEflani, 14, "Kırşehir Yetişen Yıldızlar Spor", [8]int{17, 2, 2, 13, 14, 52, -38, 8}),

		seedTeam(LeagueIDAmatorA, 1, "Eskipazar Belediyespor", [8]int{6, 5, 1, 0, 51, 7, 44, 16}),
		seedTeam(LeagueIDAmatorA, 2, "Safranbolu Bağlarspor", [8]int{6, 5, 1, 0, 43, 4, 39, 16}),
		seedTeam(LeagueIDAmatorA, 3, "Yeşil Yenicespor", [8]int{6, 3, 1, 2, 16, 23, -7, 10}),
		seedTeam(LeagueIDAmatorA, 4, "Anadolu Gençlikspor", [8]int{6, 3, 0, 3, 15, 19, -4, 9}),
		seedTeam(LeagueIDAmatorA, 5, "Esentepe 3 Nisan Spor", [8]int{6, 1, 2, 3, 12, 21, -9, 5}),
		seedTeam(LeagueIDAmatorA, 6, "Beşbinevler Gücüspor", [8]int{6, 1, 0, 5, 4, 22, -18, 3}),
		seedTeam(LeagueIDAmatorA, 7, "Bozkurt 78 Spor", [8]int{6, 0, 1, 5, 7, 52, -45, 1}),

		seedTeam(LeagueIDAmatorB, 1, "Yortanspor", [8]int{6, 5, 1, 0, 39, 2, 37, 16}),
		seedTeam(LeagueIDAmatorB, 2, "Safranboluspor", [8]int{6, 5, 1, 0, 33, 2, 31, 16}),
		seedTeam(LeagueIDAmatorB, 3, "Rüzgarlı FK", [8]int{6, 4, 0, 2, 17, 16, 1, 12}),
		seedTeam(LeagueIDAmatorB, 4, "5000 Evlerspor", [8]int{6, 3, 0, 3, 15, 12, 3, 9}),
		seedTeam(LeagueIDAmatorB, 5, "Burunsuz Karabükgücü", [8]int{6, 2, 0, 4, 17, 24, -7, 6}),
		seedTeam(LeagueIDAmatorB, 6, "Karabük Gençlerbirliği", [8]int{6, 1, 0, 5, 7, 33, -26, 3}),
		seedTeam(LeagueIDAmatorB, 7, "Karabük Birlikspor", [8]int{6, 0, 0, 6, 8, 47, -39, 0}),
	}
}

// pairing is one scheduled match as (home team id, away team id).
type pairing [2]int

// buildRounds expands a per-week pairing table into seed fixtures with the
// original id scheme: <prefix><week>_<index>. scores holds results for the
// already-played entries, keyed by fixture id.
func buildRounds(leagueID, prefix string, rounds map[int][]pairing, scores map[string][2]int) []fixture.Fixture {
	weeks := make([]int, 0, len(rounds))
	for week := range rounds {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	out := make([]fixture.Fixture, 0, len(rounds)*8)
	for _, week := range weeks {
		for i, pair := range rounds[week] {
			item := fixture.Fixture{
				ID:         fmt.Sprintf("%s%d_%d", prefix, week, i+1),
				LeagueID:   leagueID,
				Week:       week,
				HomeTeamID: pair[0],
				AwayTeamID: pair[1],
			}
			if score, ok := scores[item.ID]; ok {
				home, away := score[0], score[1]
				item.HomeScore = &home
				item.AwayScore = &away
			}
			out = append(out, item)
		}
	}
	return out
}

// SeedFixtures returns the remaining published schedule of each league from
// its seed cut onward.
func SeedFixtures() []fixture.Fixture {
	out := buildRounds(LeagueIDKarabuk, "k", map[int][]pairing{
		22: {{3, 8}, {6, 2}, {1, 9}, {4, 13}, {10, 5}, {15, 12}, {14, 16}, {11, 7}},
		23: {{13, 15}, {12, 10}, {2, 14}, {7, 1}, {8, 4}, {5, 11}, {9, 6}, {16, 3}},
		24: {{10, 13}, {3, 2}, {14, 9}, {6, 7}, {11, 12}, {8, 16}, {1, 5}, {4, 15}},
		25: {{2, 8}, {13, 11}, {15, 10}, {7, 14}, {16, 4}, {12, 1}, {9, 3}, {5, 6}},
		26: {{3, 7}, {16, 2}, {14, 5}, {6, 12}, {11, 15}, {8, 9}, {1, 13}, {4, 10}},
		27: {{2, 4}, {13, 6}, {10, 11}, {15, 1}, {7, 8}, {12, 14}, {9, 16}, {5, 3}},
		28: {{2, 9}, {3, 12}, {16, 7}, {14, 13}, {6, 15}, {8, 5}, {1, 10}, {4, 11}},
		29: {{13, 3}, {10, 6}, {15, 14}, {7, 2}, {12, 8}, {11, 1}, {4, 9}, {5, 16}},
		30: {{2, 5}, {3, 15}, {16, 12}, {14, 10}, {6, 11}, {8, 13}, {1, 4}, {9, 7}},
	}, nil)

	out = append(out, buildRounds(LeagueIDEflani, "e", map[int][]pairing{
		17: {{9, 10}, {8, 5}, {12, 14}, {3, 7}, {13, 11}, {2, 1}, {6, 4}},
		18: {{11, 9}, {14, 13}, {10, 12}, {1, 4}, {7, 2}, {5, 3}, {8, 6}},
		19: {{2, 11}, {12, 13}, {4, 10}, {3, 8}, {9, 14}, {7, 5}, {6, 1}},
		20: {{11, 6}, {13, 9}, {8, 7}, {10, 1}, {5, 2}, {14, 12}, {3, 4}},
		21: {{8, 11}, {2, 3}, {6, 10}, {1, 5}, {7, 14}, {12, 9}, {4, 13}},
		22: {{11, 3}, {13, 6}, {5, 10}, {14, 1}, {9, 7}, {12, 4}, {8, 2}},
		23: {{7, 11}, {3, 8}, {10, 13}, {1, 9}, {4, 5}, {6, 14}, {2, 12}},
		24: {{11, 5}, {13, 3}, {14, 10}, {9, 1}, {12, 7}, {8, 4}, {2, 6}},
		25: {{4, 11}, {5, 13}, {10, 9}, {3, 2}, {7, 1}, {6, 12}, {14, 8}},
		26: {{11, 1}, {13, 7}, {8, 10}, {12, 3}, {2, 4}, {9, 6}, {14, 5}},
	}, map[string][2]int{
		"e17_1": {1, 0},
		"e17_2": {2, 3},
		"e17_3": {0, 0},
		"e17_4": {2, 1},
		"e17_5": {2, 1},
		"e17_6": {1, 0},
		"e17_7": {1, 0},
	})...)

	out = append(out, buildRounds(LeagueIDAmatorA, "a", map[int][]pairing{
		8:  {{7, 3}, {6, 2}, {5, 1}},
		9:  {{2, 4}, {3, 5}, {1, 6}},
		10: {{5, 7}, {4, 1}, {6, 3}},
		11: {{1, 2}, {7, 6}, {3, 4}},
		12: {{6, 5}, {2, 3}, {4, 7}},
		13: {{3, 1}, {5, 4}, {7, 2}},
		14: {{4, 6}, {1, 7}, {2, 5}},
	}, nil)...)

	out = append(out, buildRounds(LeagueIDAmatorB, "b", map[int][]pairing{
		8:  {{6, 3}, {2, 1}, {5, 7}},
		9:  {{1, 4}, {3, 5}, {7, 2}},
		10: {{5, 6}, {4, 7}, {2, 3}},
		11: {{7, 1}, {6, 2}, {3, 4}},
		12: {{2, 5}, {1, 3}, {4, 6}},
		13: {{3, 7}, {5, 4}, {6, 1}},
		14: {{4, 2}, {7, 6}, {1, 5}},
	}, nil)...)

	return out
}

package askf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/oguzatak/lig-takip/internal/platform/turktext"
	"github.com/oguzatak/lig-takip/internal/usecase"
)

// The amateur federation publishes both groups on a single page with no
// stable ids anywhere, so parsing works in fallback tiers: explicit group
// headings first, then the two largest numeric tables, then heading-like
// split points used by newer page layouts.
var (
	groupASectionRegex = regexp.MustCompile(`(?i)A\s*GRUBU([\s\S]*?)(?:B\s*GRUBU|$)`)
	groupBSectionRegex = regexp.MustCompile(`(?i)B\s*GRUBU([\s\S]*?)(?:C\s*GRUBU|$)`)
	groupSplitRegex    = regexp.MustCompile(`(?i)A\s*GRUP|B\s*GRUP|1\.\s*GRUP|2\.\s*GRUP`)
	weekHeaderRegex    = regexp.MustCompile(`(?i)(\d{1,2})\.\s*Hafta`)
	leadingRankRegex   = regexp.MustCompile(`^\d+\.\s*`)
	scoreRegex         = regexp.MustCompile(`^(\d+)-(\d+)$`)
	unplayedRegex      = regexp.MustCompile(`^[-–]$`)

	maxWeekNumber = 50

	// A standings table has at least ten rows of eight numeric columns.
	minNumericCellsPerTable = 20
	minTeamNameLength       = 3
)

// ParsePage extracts both group tables and fixture lists from the amateur
// federation page.
func ParsePage(html string) (usecase.GroupSnapshots, error) {
	out := usecase.GroupSnapshots{}

	if m := groupASectionRegex.FindStringSubmatch(html); m != nil {
		out.GroupA = parseGroupSection(m[1])
	}
	if m := groupBSectionRegex.FindStringSubmatch(html); m != nil {
		out.GroupB = parseGroupSection(m[1])
	}
	if len(out.GroupA.Standings) > 0 || len(out.GroupB.Standings) > 0 {
		return out, nil
	}

	if a, b, ok := parseByTableSize(html); ok {
		out.GroupA.Standings = a
		out.GroupB.Standings = b
		return out, nil
	}

	if sections := groupSplitRegex.Split(html, -1); len(sections) >= 3 {
		out.GroupA = parseGroupSection(sections[1])
		out.GroupB = parseGroupSection(sections[2])
	}

	return out, nil
}

func parseGroupSection(sectionHTML string) usecase.SourceSnapshot {
	snapshot := usecase.SourceSnapshot{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sectionHTML))
	if err != nil {
		return snapshot
	}
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		parsed := parseStandingsTable(table)
		if len(parsed) == 0 {
			return true
		}
		snapshot.Standings = parsed
		return false
	})

	snapshot.Fixtures = parseFixtures(sectionHTML)
	return snapshot
}

// parseByTableSize is the heading-less fallback: the standings tables are
// the ones dense with numeric cells, in page order group A then group B.
func parseByTableSize(html string) ([]usecase.ExternalStanding, []usecase.ExternalStanding, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, false
	}

	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		numeric := 0
		table.Find("td").Each(func(_ int, cell *goquery.Selection) {
			if _, err := strconv.Atoi(strings.TrimSpace(cell.Text())); err == nil {
				numeric++
			}
		})
		if numeric >= minNumericCellsPerTable {
			tables = append(tables, table)
		}
	})

	switch len(tables) {
	case 0:
		return nil, nil, false
	case 1:
		return parseStandingsTable(tables[0]), nil, true
	default:
		return parseStandingsTable(tables[0]), parseStandingsTable(tables[1]), true
	}
}

// parseStandingsTable reads rows positionally: the first text-looking cell
// is the club name, the first eight numeric cells are played, won, drawn,
// lost, goals for, goals against, goal difference, points.
func parseStandingsTable(table *goquery.Selection) []usecase.ExternalStanding {
	out := make([]usecase.ExternalStanding, 0, 12)
	rank := 1

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var nums []int
		name := ""
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			value := strings.ReplaceAll(turktext.CleanHTML(cell.Text()), "*", "")
			value = strings.TrimSpace(value)
			if n, err := strconv.Atoi(value); err == nil {
				nums = append(nums, n)
				return
			}
			if name == "" && len([]rune(value)) >= minTeamNameLength {
				name = strings.TrimSpace(leadingRankRegex.ReplaceAllString(value, ""))
			}
		})

		if name == "" || len(nums) < 8 {
			return
		}
		standing := usecase.ExternalStanding{
			Rank:         rank,
			Name:         name,
			Played:       nums[0],
			Won:          nums[1],
			Drawn:        nums[2],
			Lost:         nums[3],
			GoalsFor:     nums[4],
			GoalsAgainst: nums[5],
			GoalDiff:     nums[6],
			Points:       nums[7],
		}
		standing.StatsSuspect = standing.GoalDiff != standing.GoalsFor-standing.GoalsAgainst
		rank++
		out = append(out, standing)
	})

	return out
}

func parseFixtures(sectionHTML string) []usecase.ExternalFixture {
	headers := weekHeaderRegex.FindAllStringSubmatchIndex(sectionHTML, -1)
	out := make([]usecase.ExternalFixture, 0, 32)
	for i, header := range headers {
		week, err := strconv.Atoi(sectionHTML[header[2]:header[3]])
		if err != nil || week < 1 || week > maxWeekNumber {
			continue
		}
		blockEnd := len(sectionHTML)
		if i+1 < len(headers) {
			blockEnd = headers[i+1][0]
		}
		out = append(out, parseWeekBlock(sectionHTML[header[1]:blockEnd], week)...)
	}
	return out
}

// parseWeekBlock scans each row for a (team, score, team) cell triple. The
// score cell is either "2-1" or a lone dash for an unplayed match. The
// fragment may be cut mid-table, so it is re-wrapped before parsing or the
// parser would drop the orphaned rows.
func parseWeekBlock(blockHTML string, week int) []usecase.ExternalFixture {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + blockHTML + "</table>"))
	if err != nil {
		return nil
	}

	out := make([]usecase.ExternalFixture, 0, 8)
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, turktext.CleanHTML(cell.Text()))
		})
		if len(cells) < 3 {
			return
		}

		for i := 0; i+2 < len(cells); i++ {
			home := cells[i]
			scoreText := strings.ReplaceAll(cells[i+1], " ", "")
			away := cells[i+2]
			if len([]rune(home)) < minTeamNameLength || len([]rune(away)) < minTeamNameLength {
				continue
			}

			if m := scoreRegex.FindStringSubmatch(scoreText); m != nil {
				homeScore, _ := strconv.Atoi(m[1])
				awayScore, _ := strconv.Atoi(m[2])
				out = append(out, usecase.ExternalFixture{
					Week:      week,
					HomeName:  home,
					AwayName:  away,
					HomeScore: &homeScore,
					AwayScore: &awayScore,
					IsPlayed:  true,
				})
				break
			}
			if unplayedRegex.MatchString(scoreText) {
				out = append(out, usecase.ExternalFixture{
					Week:     week,
					HomeName: home,
					AwayName: away,
				})
				break
			}
		}
	})

	return out
}

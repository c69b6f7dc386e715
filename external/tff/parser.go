package tff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/oguzatak/lig-takip/internal/platform/turktext"
	"github.com/oguzatak/lig-takip/internal/usecase"
)

// The federation renders everything into one page. The standings table links
// clubs with a kulupID= query parameter; the fixture list links them with
// kulupId= (lowercase d) and links played scores with macId=. The top-scorer
// table carries kisiID= links and must be skipped.
var (
	clubIDRegex      = regexp.MustCompile(`kulupID=(\d+)`)
	fixtureClubRegex = regexp.MustCompile(`kulupId=(\d+)`)
	matchLinkRegex   = regexp.MustCompile(`macId=\d+`)
	leadingRankRegex = regexp.MustCompile(`^\d+\.?\s*`)
	weekHeaderRegex  = regexp.MustCompile(`(?i)(\d{1,2})\.\s*Hafta`)
	scoreRegex       = regexp.MustCompile(`^(\d+)-(\d+)$`)

	fixtureSectionMarker = "Fikstür Listesi"

	maxWeekNumber = 50
)

// ParsePage extracts the standings table and all fixture week blocks from
// one decoded federation page.
func ParsePage(html string) (usecase.SourceSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return usecase.SourceSnapshot{}, err
	}

	return usecase.SourceSnapshot{
		Standings: parseStandings(doc),
		Fixtures:  parseFixtures(html),
	}, nil
}

// parseStandings picks the table with the most kulupID= club links, skipping
// any table that also carries kisiID= person links (the top-scorer list).
func parseStandings(doc *goquery.Document) []usecase.ExternalStanding {
	var bestTable *goquery.Selection
	bestCount := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if table.Find(`a[href*="kisiID="], a[href*="kisiId="]`).Length() > 0 {
			return
		}
		count := table.Find(`a[href*="kulupID="]`).Length()
		if count > bestCount {
			bestCount = count
			bestTable = table
		}
	})
	if bestTable == nil {
		return nil
	}

	out := make([]usecase.ExternalStanding, 0, 20)
	rank := 1
	bestTable.Find("tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find(`a[href*="kulupID="]`).First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		idMatch := clubIDRegex.FindStringSubmatch(href)
		if idMatch == nil {
			return
		}
		clubID, _ := strconv.ParseInt(idMatch[1], 10, 64)

		name := leadingRankRegex.ReplaceAllString(turktext.CleanHTML(link.Text()), "")
		if len([]rune(name)) < 2 {
			return
		}

		nums := numericCells(link)
		if len(nums) < 8 {
			return
		}

		standing := usecase.ExternalStanding{
			Rank:           rank,
			ExternalTeamID: clubID,
			Name:           turktext.TitleCase(name),
			Played:         nums[0],
			Won:            nums[1],
			Drawn:          nums[2],
			Lost:           nums[3],
			GoalsFor:       nums[4],
			GoalsAgainst:   nums[5],
			GoalDiff:       nums[6],
			Points:         nums[7],
		}
		standing.StatsSuspect = standing.GoalDiff != standing.GoalsFor-standing.GoalsAgainst
		rank++
		out = append(out, standing)
	})

	return out
}

// numericCells collects the integer td values following the club link's
// cell. Cells before the link hold the rank and must not shift the stat
// columns. Asterisks mark point deductions and are ignored.
func numericCells(link *goquery.Selection) []int {
	out := make([]int, 0, 10)
	link.Closest("td").NextAll().Each(func(_ int, cell *goquery.Selection) {
		value := strings.ReplaceAll(turktext.CleanHTML(cell.Text()), "*", "")
		value = strings.ReplaceAll(value, " ", "")
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		out = append(out, n)
	})
	return out
}

// parseFixtures splits the page into "N. Hafta" blocks and parses each. The
// split runs on raw HTML because the week headers are free text between
// tables, not markup goquery could anchor on.
func parseFixtures(html string) []usecase.ExternalFixture {
	section := html
	if idx := strings.Index(html, fixtureSectionMarker); idx >= 0 {
		section = html[idx:]
	}

	headers := weekHeaderRegex.FindAllStringSubmatchIndex(section, -1)
	out := make([]usecase.ExternalFixture, 0, 64)
	for i, header := range headers {
		week, err := strconv.Atoi(section[header[2]:header[3]])
		if err != nil || week < 1 || week > maxWeekNumber {
			continue
		}
		blockEnd := len(section)
		if i+1 < len(headers) {
			blockEnd = headers[i+1][0]
		}
		out = append(out, parseWeekBlock(section[header[1]:blockEnd], week)...)
	}

	return out
}

// parseWeekBlock extracts fixture rows from one week's HTML fragment. A row
// must reference exactly two distinct clubs; the score link text decides
// whether the match is played. The fragment is usually cut mid-table, so it
// is re-wrapped before parsing or the parser would drop the orphaned rows.
func parseWeekBlock(blockHTML string, week int) []usecase.ExternalFixture {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + blockHTML + "</table>"))
	if err != nil {
		return nil
	}

	out := make([]usecase.ExternalFixture, 0, 10)
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		links := row.Find(`a[href*="kulupId="]`)
		if links.Length() < 2 {
			return
		}

		first := links.First()
		last := links.Last()
		homeID, homeName := fixtureClub(first)
		awayID, awayName := fixtureClub(last)
		if homeName == "" || awayName == "" || homeID == awayID {
			return
		}

		item := usecase.ExternalFixture{
			Week:           week,
			HomeExternalID: homeID,
			AwayExternalID: awayID,
			HomeName:       turktext.TitleCase(homeName),
			AwayName:       turktext.TitleCase(awayName),
		}

		row.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, _ := link.Attr("href")
			if !matchLinkRegex.MatchString(href) {
				return true
			}
			scoreText := strings.ReplaceAll(turktext.CleanHTML(link.Text()), " ", "")
			if m := scoreRegex.FindStringSubmatch(scoreText); m != nil {
				home, _ := strconv.Atoi(m[1])
				away, _ := strconv.Atoi(m[2])
				item.HomeScore = &home
				item.AwayScore = &away
				item.IsPlayed = true
			}
			return false
		})

		out = append(out, item)
	})

	return out
}

func fixtureClub(link *goquery.Selection) (int64, string) {
	href, _ := link.Attr("href")
	m := fixtureClubRegex.FindStringSubmatch(href)
	if m == nil {
		return 0, ""
	}
	id, _ := strconv.ParseInt(m[1], 10, 64)
	return id, turktext.CleanHTML(link.Text())
}

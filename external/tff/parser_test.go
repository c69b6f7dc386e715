package tff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<html><body>
<h2>Puan Cetveli</h2>
<table>
<tr><th>Takım</th><th>O</th><th>G</th><th>B</th><th>M</th><th>A</th><th>Y</th><th>AV</th><th>P</th></tr>
<tr><td>1</td><td><a href="/Default.aspx?pageID=29&kulupID=10580">KARABÜK İDMANYURDU</a></td><td>12</td><td>9</td><td>2</td><td>1</td><td>28</td><td>9</td><td>19</td><td>29</td></tr>
<tr><td>2</td><td><a href="/Default.aspx?pageID=29&kulupID=10423">SAFRANBOLUSPOR</a></td><td>12</td><td>8</td><td>3</td><td>1</td><td>25</td><td>10</td><td>14</td><td>27</td></tr>
</table>
<h2>Gol Krallığı</h2>
<table>
<tr><td><a href="/Default.aspx?kisiID=77&kulupID=10580">AHMET YILMAZ</a></td><td>10</td><td>1</td><td>2</td><td>3</td><td>4</td><td>5</td><td>6</td><td>7</td></tr>
</table>
<h3>Fikstür Listesi</h3>
<table>
<tr><td colspan="3">1.Hafta</td></tr>
<tr><td><a href="/Default.aspx?kulupId=10580">KARABÜK İDMANYURDU</a></td><td><a href="/Default.aspx?macId=285551">3 - 1</a></td><td><a href="/Default.aspx?kulupId=10423">SAFRANBOLUSPOR</a></td></tr>
<tr><td colspan="3">2.Hafta</td></tr>
<tr><td><a href="/Default.aspx?kulupId=10423">SAFRANBOLUSPOR</a></td><td>-</td><td><a href="/Default.aspx?kulupId=10580">KARABÜK İDMANYURDU</a></td></tr>
</table>
</body></html>`

func TestParsePageStandings(t *testing.T) {
	t.Parallel()

	snapshot, err := ParsePage(samplePage)
	require.NoError(t, err)
	require.Len(t, snapshot.Standings, 2)

	leader := snapshot.Standings[0]
	require.Equal(t, 1, leader.Rank)
	require.Equal(t, int64(10580), leader.ExternalTeamID)
	require.Equal(t, "Karabük İdmanyurdu", leader.Name)
	require.Equal(t, 12, leader.Played)
	require.Equal(t, 9, leader.Won)
	require.Equal(t, 2, leader.Drawn)
	require.Equal(t, 1, leader.Lost)
	require.Equal(t, 28, leader.GoalsFor)
	require.Equal(t, 9, leader.GoalsAgainst)
	require.Equal(t, 19, leader.GoalDiff)
	require.Equal(t, 29, leader.Points)
	require.False(t, leader.StatsSuspect)

	// The second row advertises AV 14 against a real difference of 15.
	require.True(t, snapshot.Standings[1].StatsSuspect)
}

func TestParsePageSkipsTopScorerTable(t *testing.T) {
	t.Parallel()

	snapshot, err := ParsePage(samplePage)
	require.NoError(t, err)

	for _, row := range snapshot.Standings {
		require.NotEqual(t, "Ahmet Yılmaz", row.Name)
	}
}

func TestParsePageFixtures(t *testing.T) {
	t.Parallel()

	snapshot, err := ParsePage(samplePage)
	require.NoError(t, err)
	require.Len(t, snapshot.Fixtures, 2)

	played := snapshot.Fixtures[0]
	require.Equal(t, 1, played.Week)
	require.Equal(t, int64(10580), played.HomeExternalID)
	require.Equal(t, int64(10423), played.AwayExternalID)
	require.Equal(t, "Karabük İdmanyurdu", played.HomeName)
	require.Equal(t, "Safranboluspor", played.AwayName)
	require.True(t, played.IsPlayed)
	require.NotNil(t, played.HomeScore)
	require.Equal(t, 3, *played.HomeScore)
	require.Equal(t, 1, *played.AwayScore)

	unplayed := snapshot.Fixtures[1]
	require.Equal(t, 2, unplayed.Week)
	require.False(t, unplayed.IsPlayed)
	require.Nil(t, unplayed.HomeScore)
	require.Nil(t, unplayed.AwayScore)
}

func TestParsePageIgnoresInvalidWeeksAndSelfPairs(t *testing.T) {
	t.Parallel()

	page := `<html><body>Fikstür Listesi
<table>
<tr><td>99.Hafta</td></tr>
<tr><td><a href="?kulupId=1">EFLANİ SPOR</a></td><td><a href="?macId=5">2 - 0</a></td><td><a href="?kulupId=2">OVACIK SPOR</a></td></tr>
<tr><td>3.Hafta</td></tr>
<tr><td><a href="?kulupId=7">BULAK SPOR</a></td><td>-</td><td><a href="?kulupId=7">BULAK SPOR</a></td></tr>
</table>
</body></html>`

	snapshot, err := ParsePage(page)
	require.NoError(t, err)
	require.Empty(t, snapshot.Fixtures)
}

func TestParsePageEmptyDocument(t *testing.T) {
	t.Parallel()

	snapshot, err := ParsePage("<html><body><p>Bakım çalışması</p></body></html>")
	require.NoError(t, err)
	require.Empty(t, snapshot.Standings)
	require.Empty(t, snapshot.Fixtures)
}

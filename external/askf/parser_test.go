package askf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<html><body>
<h2>A GRUBU</h2>
<table>
<tr><th>Takım</th><th>O</th><th>G</th><th>B</th><th>M</th><th>A</th><th>Y</th><th>AV</th><th>P</th></tr>
<tr><td>1. KAYADİBİ SPOR</td><td>10</td><td>8</td><td>1</td><td>1</td><td>22</td><td>7</td><td>15</td><td>25</td></tr>
<tr><td>2. ÜÇBÖLÜK SPOR</td><td>10</td><td>7</td><td>2</td><td>1</td><td>19</td><td>8</td><td>11</td><td>23</td></tr>
</table>
<h3>11. Hafta</h3>
<table>
<tr><td>KAYADİBİ SPOR</td><td>3-2</td><td>ÜÇBÖLÜK SPOR</td></tr>
<tr><td>CUMAYANI SPOR</td><td>–</td><td>YEŞİL YENİCE SPOR</td></tr>
</table>
<h2>B GRUBU</h2>
<table>
<tr><td>1. BULAK SPOR</td><td>9</td><td>6</td><td>2</td><td>1</td><td>17</td><td>6</td><td>12</td><td>20</td></tr>
</table>
</body></html>`

func TestParsePageSplitsGroups(t *testing.T) {
	t.Parallel()

	groups, err := ParsePage(samplePage)
	require.NoError(t, err)

	require.Len(t, groups.GroupA.Standings, 2)
	require.Len(t, groups.GroupB.Standings, 1)

	leader := groups.GroupA.Standings[0]
	require.Equal(t, 1, leader.Rank)
	require.Equal(t, "KAYADİBİ SPOR", leader.Name)
	require.Equal(t, 10, leader.Played)
	require.Equal(t, 8, leader.Won)
	require.Equal(t, 1, leader.Drawn)
	require.Equal(t, 1, leader.Lost)
	require.Equal(t, 22, leader.GoalsFor)
	require.Equal(t, 7, leader.GoalsAgainst)
	require.Equal(t, 15, leader.GoalDiff)
	require.Equal(t, 25, leader.Points)
	require.False(t, leader.StatsSuspect)

	require.Equal(t, "BULAK SPOR", groups.GroupB.Standings[0].Name)
	// No stable ids on this site; resolution happens by name downstream.
	require.Zero(t, groups.GroupB.Standings[0].ExternalTeamID)
}

func TestParsePageFixtureTriples(t *testing.T) {
	t.Parallel()

	groups, err := ParsePage(samplePage)
	require.NoError(t, err)
	require.Len(t, groups.GroupA.Fixtures, 2)

	played := groups.GroupA.Fixtures[0]
	require.Equal(t, 11, played.Week)
	require.Equal(t, "KAYADİBİ SPOR", played.HomeName)
	require.Equal(t, "ÜÇBÖLÜK SPOR", played.AwayName)
	require.True(t, played.IsPlayed)
	require.Equal(t, 3, *played.HomeScore)
	require.Equal(t, 2, *played.AwayScore)

	// The en dash marks an unplayed pairing.
	unplayed := groups.GroupA.Fixtures[1]
	require.Equal(t, "CUMAYANI SPOR", unplayed.HomeName)
	require.False(t, unplayed.IsPlayed)
	require.Nil(t, unplayed.HomeScore)
}

func TestParsePageFallsBackToDenseTables(t *testing.T) {
	t.Parallel()

	// No group headings at all; the two stats-dense tables are taken as
	// group A then group B in page order.
	page := `<html><body>
<table>
<tr><td>1. KAYADİBİ SPOR</td><td>10</td><td>8</td><td>1</td><td>1</td><td>22</td><td>7</td><td>15</td><td>25</td></tr>
<tr><td>2. ÜÇBÖLÜK SPOR</td><td>10</td><td>7</td><td>2</td><td>1</td><td>19</td><td>8</td><td>11</td><td>23</td></tr>
<tr><td>3. CUMAYANI SPOR</td><td>10</td><td>6</td><td>2</td><td>2</td><td>15</td><td>9</td><td>6</td><td>20</td></tr>
</table>
<table>
<tr><td>1. BULAK SPOR</td><td>9</td><td>6</td><td>2</td><td>1</td><td>17</td><td>6</td><td>11</td><td>20</td></tr>
<tr><td>2. OVACIK SPOR</td><td>9</td><td>5</td><td>3</td><td>1</td><td>14</td><td>7</td><td>7</td><td>18</td></tr>
<tr><td>3. ESKİPAZAR SPOR</td><td>9</td><td>4</td><td>3</td><td>2</td><td>12</td><td>8</td><td>4</td><td>16</td></tr>
</table>
</body></html>`

	groups, err := ParsePage(page)
	require.NoError(t, err)
	require.Len(t, groups.GroupA.Standings, 3)
	require.Len(t, groups.GroupB.Standings, 3)
	require.Equal(t, "KAYADİBİ SPOR", groups.GroupA.Standings[0].Name)
	require.Equal(t, "BULAK SPOR", groups.GroupB.Standings[0].Name)
}

func TestParsePageMarksInconsistentRows(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<h2>A GRUBU</h2>
<table>
<tr><td>1. KARTALKAYA SPOR</td><td>10</td><td>8</td><td>1</td><td>1</td><td>22</td><td>7</td><td>99</td><td>25</td></tr>
<tr><td>2. DEMİRCİLER SPOR</td><td>10</td><td>7</td><td>2</td><td>1</td><td>19</td><td>8</td><td>11</td><td>23</td></tr>
<tr><td>3. YORTAN SPOR</td><td>10</td><td>6</td><td>2</td><td>2</td><td>16</td><td>9</td><td>7</td><td>20</td></tr>
</table>
</body></html>`

	groups, err := ParsePage(page)
	require.NoError(t, err)
	require.Len(t, groups.GroupA.Standings, 3)
	require.True(t, groups.GroupA.Standings[0].StatsSuspect)
	require.False(t, groups.GroupA.Standings[1].StatsSuspect)
}

func TestParsePageEmptyDocument(t *testing.T) {
	t.Parallel()

	groups, err := ParsePage("<html><body><p>Sezon arası</p></body></html>")
	require.NoError(t, err)
	require.Empty(t, groups.GroupA.Standings)
	require.Empty(t, groups.GroupB.Standings)
}

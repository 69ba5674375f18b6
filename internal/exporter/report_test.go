package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defensecli/internal/playtype"
)

// sampleResult organizes A (competent everywhere), B (never) and C (only
// isolation).
func sampleResult(t *testing.T) *playtype.Result {
	t.Helper()
	records := map[playtype.PlayType][]playtype.PlayRecord{}
	for _, p := range playtype.All {
		records[p] = []playtype.PlayRecord{
			{Player: "A", Possessions: 30, PPP: 0.5},
			{Player: "B", Possessions: 10, PPP: 1.5},
		}
	}
	records[playtype.Isolation] = append(records[playtype.Isolation], playtype.PlayRecord{Player: "C", Possessions: 100, PPP: 0.7})

	res, err := playtype.NewOrganizer(nil).Organize(context.Background(), records)
	require.NoError(t, err)
	return res
}

func TestReportExporter_ExportAll(t *testing.T) {
	_, paths := setupTestEnv(t)
	res := sampleResult(t)

	require.NoError(t, NewReportExporter(paths).ExportAll(res))

	t.Run("annotated tables", func(t *testing.T) {
		lines := readLines(t, paths.GetTablePath("isolation.csv"))
		assert.Equal(t, []string{
			"PLAYER,POSS_isolation,PPP_isolation,COMPETENT_isolation",
			"A,30,0.5,true",
			"B,10,1.5,false",
			"C,100,0.7,true",
		}, lines)

		for _, p := range playtype.All {
			assert.FileExists(t, paths.GetTablePath(p.FileName()))
		}
	})

	t.Run("merged table", func(t *testing.T) {
		lines := readLines(t, paths.MergedCSV)
		require.Len(t, lines, 4)

		header := strings.Split(lines[0], ",")
		assert.Len(t, header, 1+3*len(playtype.All)+1)
		assert.Equal(t, "PLAYER", header[0])
		assert.Equal(t, "POSS_isolation", header[1])
		assert.Equal(t, "TOTAL_COMPETENT", header[len(header)-1])

		assert.True(t, strings.HasPrefix(lines[1], "A,30,0.5,true,"))
		assert.True(t, strings.HasSuffix(lines[1], ",7"))
		assert.Equal(t, "C,100,0.7,true"+strings.Repeat(",0,0,false", 6)+",1", lines[3])
	})

	t.Run("averages", func(t *testing.T) {
		lines := readLines(t, paths.AveragesCSV)
		require.Len(t, lines, 1+len(playtype.All))
		assert.Equal(t, "PLAY_TYPE,LABEL,LEAGUE_PPP,PLAYERS,COMPETENT", lines[0])
		assert.Equal(t, "postup,Post-Up,0.75,2,1", lines[2])
	})
}

func TestReportExporter_ExportMerged(t *testing.T) {
	_, paths := setupTestEnv(t)
	res := sampleResult(t)
	require.NoError(t, NewReportExporter(paths).ExportMerged(res.Merged, "merged.csv"))

	f, err := os.Open(paths.MergedCSV)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+res.Merged.Len())
	assert.Equal(t, MergedHeaders(playtype.All), rows[0])
	assert.Equal(t, []string{"A", "B", "C"}, []string{rows[1][0], rows[2][0], rows[3][0]})

	content, err := os.ReadFile(paths.MergedCSV)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(content, utf8BOM))
}

func TestGenerateSummaries(t *testing.T) {
	res := sampleResult(t)

	summaries, err := GenerateSummaries(res)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "A", summaries[0].Player)
	assert.Equal(t, 7, summaries[0].TotalCompetent)
	assert.Equal(t, 7, summaries[0].PlayTypes)
	assert.Equal(t, 210, summaries[0].Possessions)
	assert.Len(t, summaries[0].CompetentAt, 7)

	assert.Equal(t, "C", summaries[1].Player)
	assert.Equal(t, "isolation", summaries[1].BestPlayType)
	assert.Equal(t, []string{"isolation"}, summaries[1].CompetentAt)

	assert.Equal(t, "B", summaries[2].Player)
	assert.Empty(t, summaries[2].CompetentAt)
	assert.Greater(t, summaries[2].BestDelta, 0.0)

	_, paths := setupTestEnv(t)
	require.NoError(t, NewReportExporter(paths).ExportSummaries(summaries, "summary.csv"))
	lines := readLines(t, paths.GetReportPath("summary.csv"))
	assert.Equal(t, "PLAYER,TOTAL_COMPETENT,PLAY_TYPES,POSS,BEST_PLAY_TYPE,BEST_DELTA,COMPETENT_AT", lines[0])
	assert.Equal(t, "C,1,1,100,isolation,-0.014,isolation", lines[2])
}

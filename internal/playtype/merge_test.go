package playtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "defensecli/internal/errors"
)

func table(p PlayType, records ...Record) *Table {
	return &Table{PlayType: p, Records: records}
}

func rec(player string, poss int, ppp float64, competent bool) Record {
	return Record{PlayRecord: PlayRecord{Player: player, Possessions: poss, PPP: ppp}, Competent: competent}
}

func TestMerge(t *testing.T) {
	tables := []*Table{
		table(Isolation, rec("Cole", 40, 0.7, true), rec("Abe", 10, 1.0, false)),
		table(PostUp, rec("Abe", 30, 0.6, true)),
		table(SpotUp, rec("Bo", 50, 0.9, true), rec("Cole", 60, 0.8, true)),
	}

	merged := Merge(tables)

	assert.Equal(t, []PlayType{Isolation, PostUp, SpotUp}, merged.PlayTypes)
	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, []string{"Abe", "Bo", "Cole"}, merged.Players())

	t.Run("missing cells are zero", func(t *testing.T) {
		assert.Equal(t, Cell{}, merged.Cell("Bo", Isolation))
		assert.Equal(t, Cell{}, merged.Cell("Bo", PostUp))
		assert.Equal(t, Cell{Possessions: 50, PPP: 0.9, Competent: true, Present: true}, merged.Cell("Bo", SpotUp))
		assert.Equal(t, Cell{}, merged.Cell("Bo", Handoff))
		assert.Equal(t, Cell{}, merged.Cell("Nobody", SpotUp))
	})

	t.Run("total competent counts flags", func(t *testing.T) {
		totals := map[string]int{}
		for _, row := range merged.Rows {
			require.Len(t, row.Cells, 3)
			totals[row.Player] = row.TotalCompetent
		}
		assert.Equal(t, map[string]int{"Abe": 1, "Bo": 1, "Cole": 2}, totals)
	})

	t.Run("distribution", func(t *testing.T) {
		assert.Equal(t, []int{0, 2, 1, 0}, merged.CompetencyDistribution())
		assert.Equal(t, []string{"Abe", "Bo"}, merged.WithTotalCompetent(1))
		assert.Empty(t, merged.WithTotalCompetent(3))
	})

	t.Run("inputs untouched", func(t *testing.T) {
		assert.Len(t, tables[0].Records, 2)
		assert.Equal(t, "Cole", tables[0].Records[0].Player)
	})
}

func TestMergeRowCountIsPlayerUnion(t *testing.T) {
	tables := []*Table{
		table(Isolation, rec("A", 1, 1, false), rec("B", 1, 1, false)),
		table(PostUp, rec("B", 1, 1, false), rec("C", 1, 1, false)),
		table(SpotUp, rec("D", 1, 1, false)),
		table(Handoff),
	}

	assert.Equal(t, 4, Merge(tables).Len())
	assert.Equal(t, 0, Merge(nil).Len())
}

func TestMergeLastDuplicateWins(t *testing.T) {
	merged := Merge([]*Table{table(Isolation, rec("A", 10, 1.0, false), rec("A", 40, 0.5, true))})

	require.Equal(t, 1, merged.Len())
	assert.Equal(t, 40, merged.Cell("A", Isolation).Possessions)
	assert.Equal(t, 1, merged.Rows[0].TotalCompetent)
}

func TestLookup(t *testing.T) {
	merged := Merge([]*Table{table(Isolation, rec("A", 30, 0.5, true))})

	row, err := merged.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, "A", row.Player)
	assert.Equal(t, 1, row.TotalCompetent)

	row.Cells[0].PPP = 9
	assert.Equal(t, 0.5, merged.Cell("A", Isolation).PPP)

	_, err = merged.Lookup("Z")
	assert.ErrorIs(t, err, apperrors.ErrUnknownPlayer)
}

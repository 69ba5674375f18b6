package playtype

import (
	"slices"
	"sort"

	apperrors "defensecli/internal/errors"
)

// Cell is one player's entry for one play type in the merged table. A
// player absent from a play type's table gets the zero Cell: no
// possessions and not competent.
type Cell struct {
	Possessions int     `json:"possessions"`
	PPP         float64 `json:"ppp"`
	Competent   bool    `json:"competent"`
	Present     bool    `json:"present"`
}

// MergedRow is one player across all play types. Cells follows the
// PlayTypes order of the owning MergedTable.
type MergedRow struct {
	Player         string `json:"player"`
	Cells          []Cell `json:"cells"`
	TotalCompetent int    `json:"total_competent"`
}

// MergedTable is the outer join of the play-type tables on the player key.
type MergedTable struct {
	PlayTypes []PlayType  `json:"play_types"`
	Rows      []MergedRow `json:"rows"`

	index map[string]int
}

// Merge outer-joins tables on the player name by folding each table into
// the accumulated result. Rows are sorted by player.
func Merge(tables []*Table) *MergedTable {
	merged := &MergedTable{index: map[string]int{}}
	for _, t := range tables {
		merged = outerJoin(merged, t)
	}
	merged.finish()
	return merged
}

// outerJoin returns a new table holding acc plus a column for t. acc is
// left untouched.
func outerJoin(acc *MergedTable, t *Table) *MergedTable {
	col := len(acc.PlayTypes)
	out := &MergedTable{
		PlayTypes: append(slices.Clone(acc.PlayTypes), t.PlayType),
		Rows:      make([]MergedRow, len(acc.Rows), len(acc.Rows)+t.Len()),
		index:     make(map[string]int, len(acc.Rows)+t.Len()),
	}

	for i, row := range acc.Rows {
		cells := make([]Cell, col+1)
		copy(cells, row.Cells)
		out.Rows[i] = MergedRow{Player: row.Player, Cells: cells}
		out.index[row.Player] = i
	}

	for _, rec := range t.Records {
		i, ok := out.index[rec.Player]
		if !ok {
			i = len(out.Rows)
			out.Rows = append(out.Rows, MergedRow{Player: rec.Player, Cells: make([]Cell, col+1)})
			out.index[rec.Player] = i
		}
		out.Rows[i].Cells[col] = Cell{
			Possessions: rec.Possessions,
			PPP:         rec.PPP,
			Competent:   rec.Competent,
			Present:     true,
		}
	}

	return out
}

func (m *MergedTable) finish() {
	sort.SliceStable(m.Rows, func(i, j int) bool {
		return m.Rows[i].Player < m.Rows[j].Player
	})

	m.index = make(map[string]int, len(m.Rows))
	for i := range m.Rows {
		total := 0
		for _, c := range m.Rows[i].Cells {
			if c.Competent {
				total++
			}
		}
		m.Rows[i].TotalCompetent = total
		m.index[m.Rows[i].Player] = i
	}
}

// Len returns the number of distinct players
func (m *MergedTable) Len() int {
	return len(m.Rows)
}

// Players returns the player names in row order
func (m *MergedTable) Players() []string {
	out := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		out[i] = r.Player
	}
	return out
}

// column returns the cell index of p, or -1.
func (m *MergedTable) column(p PlayType) int {
	return slices.Index(m.PlayTypes, p)
}

// Lookup returns a copy of the row for player.
func (m *MergedTable) Lookup(player string) (MergedRow, error) {
	i, ok := m.index[player]
	if !ok {
		return MergedRow{}, apperrors.NewUnknownPlayerError(player)
	}
	row := m.Rows[i]
	row.Cells = slices.Clone(row.Cells)
	return row, nil
}

// Cell returns the player's cell for p; absent players and play types
// yield the zero Cell.
func (m *MergedTable) Cell(player string, p PlayType) Cell {
	i, ok := m.index[player]
	col := m.column(p)
	if !ok || col < 0 {
		return Cell{}
	}
	return m.Rows[i].Cells[col]
}

// WithTotalCompetent lists the players competent at exactly n play types.
func (m *MergedTable) WithTotalCompetent(n int) []string {
	var out []string
	for _, r := range m.Rows {
		if r.TotalCompetent == n {
			out = append(out, r.Player)
		}
	}
	return out
}

// CompetencyDistribution counts players per TotalCompetent value. Index i
// holds the number of players competent at exactly i play types.
func (m *MergedTable) CompetencyDistribution() []int {
	counts := make([]int, len(m.PlayTypes)+1)
	for _, r := range m.Rows {
		counts[r.TotalCompetent]++
	}
	return counts
}

package playtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompetent(t *testing.T) {
	const average = 0.9

	tests := []struct {
		name     string
		record   PlayRecord
		expected bool
	}{
		{"below average with volume", PlayRecord{Player: "A", Possessions: 26, PPP: 0.8}, true},
		{"possessions at threshold", PlayRecord{Player: "A", Possessions: MinPossessions, PPP: 0.8}, false},
		{"ppp equal to average", PlayRecord{Player: "A", Possessions: 100, PPP: average}, false},
		{"above average", PlayRecord{Player: "A", Possessions: 100, PPP: 1.0}, false},
		{"zero ppp small sample", PlayRecord{Player: "A", Possessions: 3, PPP: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCompetent(tt.record, average))
		})
	}
}

func TestAnnotate(t *testing.T) {
	records := []PlayRecord{
		{Player: "A", Possessions: 30, PPP: 0.5},
		{Player: "B", Possessions: 10, PPP: 0.5},
		{Player: "C", Possessions: 40, PPP: 1.2},
	}

	table := Annotate(OffScreen, records, 0.8)

	assert.Equal(t, OffScreen, table.PlayType)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 1, table.CompetentCount())
	assert.Equal(t, []float64{30, 10, 40}, table.Possessions())
	assert.Equal(t, []float64{0.5, 0.5, 1.2}, table.PPPValues())

	a, ok := table.Find("A")
	assert.True(t, ok)
	assert.True(t, a.Competent)

	_, ok = table.Find("Z")
	assert.False(t, ok)
}

package playtype

import (
	"fmt"
	"strings"
)

// PlayType identifies one of the categorized offensive actions a defender
// has to guard.
type PlayType string

const (
	Isolation       PlayType = "isolation"
	PostUp          PlayType = "postup"
	SpotUp          PlayType = "spotup"
	Handoff         PlayType = "handoff"
	PickRollMan     PlayType = "prrm"
	PickRollHandler PlayType = "prbh"
	OffScreen       PlayType = "offscreen"
)

// MinPossessions is the sample size a player must exceed before a play type
// can count as competent.
const MinPossessions = 25

// Required column names of every input table.
const (
	ColumnPlayer      = "PLAYER"
	ColumnPossessions = "POSS"
	ColumnPPP         = "PPP"
)

// All lists the play types in join order.
var All = []PlayType{
	Isolation,
	PostUp,
	SpotUp,
	Handoff,
	PickRollMan,
	PickRollHandler,
	OffScreen,
}

var labels = map[PlayType]string{
	Isolation:       "Isolation",
	PostUp:          "Post-Up",
	SpotUp:          "Spot-Up",
	Handoff:         "Handoff",
	PickRollMan:     "P&R Roll Man",
	PickRollHandler: "P&R Ball Handler",
	OffScreen:       "Off Screen",
}

// String returns the play type key
func (p PlayType) String() string {
	return string(p)
}

// Label returns a human readable name for charts
func (p PlayType) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return string(p)
}

// FileName returns the canonical input file name, e.g. "postup.csv"
func (p PlayType) FileName() string {
	return string(p) + ".csv"
}

// IsValid reports whether p is one of the known play types
func (p PlayType) IsValid() bool {
	_, ok := labels[p]
	return ok
}

// PPPColumn is the play-type qualified PPP column name used once tables are merged.
func (p PlayType) PPPColumn() string {
	return ColumnPPP + "_" + string(p)
}

// PossessionsColumn is the play-type qualified POSS column name.
func (p PlayType) PossessionsColumn() string {
	return ColumnPossessions + "_" + string(p)
}

// CompetentColumn is the play-type qualified competency column name.
func (p PlayType) CompetentColumn() string {
	return "COMPETENT_" + string(p)
}

// Parse converts a key such as "PRBH" or " spotup " into a PlayType.
func Parse(s string) (PlayType, error) {
	p := PlayType(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown play type %q", s)
	}
	return p, nil
}

// PlayRecord is one row of a per-play-type input table.
type PlayRecord struct {
	Player      string  `json:"player" validate:"required"`
	Possessions int     `json:"possessions" validate:"gte=0"`
	PPP         float64 `json:"ppp" validate:"gte=0"`
}

// Record is a PlayRecord annotated with its competency flag.
type Record struct {
	PlayRecord
	Competent bool `json:"competent"`
}

// Table holds the annotated records of one play type in input order.
type Table struct {
	PlayType PlayType `json:"play_type"`
	Records  []Record `json:"records"`
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.Records)
}

// Find returns the record for player, if any.
func (t *Table) Find(player string) (Record, bool) {
	for _, r := range t.Records {
		if r.Player == player {
			return r, true
		}
	}
	return Record{}, false
}

// Possessions returns the POSS column.
func (t *Table) Possessions() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = float64(r.Possessions)
	}
	return out
}

// PPPValues returns the PPP column.
func (t *Table) PPPValues() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.PPP
	}
	return out
}

// CompetentCount returns how many players are competent at this play type.
func (t *Table) CompetentCount() int {
	n := 0
	for _, r := range t.Records {
		if r.Competent {
			n++
		}
	}
	return n
}

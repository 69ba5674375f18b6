package playtype

// IsCompetent applies the competency rule: PPP allowed strictly below the
// league average over strictly more than MinPossessions possessions.
func IsCompetent(r PlayRecord, average float64) bool {
	return r.PPP < average && r.Possessions > MinPossessions
}

// Annotate builds the table of p with competency flags computed against the
// supplied average. records is not modified.
func Annotate(p PlayType, records []PlayRecord, average float64) *Table {
	table := &Table{
		PlayType: p,
		Records:  make([]Record, len(records)),
	}
	for i, r := range records {
		table.Records[i] = Record{
			PlayRecord: r,
			Competent:  IsCompetent(r, average),
		}
	}
	return table
}

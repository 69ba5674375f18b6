package playtype

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	apperrors "defensecli/internal/errors"
)

// LeagueAverages holds the possession-weighted PPP of each play type.
// It is built once by ComputeAverages and never modified afterwards.
type LeagueAverages struct {
	values map[PlayType]float64
}

// NewLeagueAverages copies values into an immutable LeagueAverages.
func NewLeagueAverages(values map[PlayType]float64) LeagueAverages {
	cp := make(map[PlayType]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return LeagueAverages{values: cp}
}

// Get returns the average for p
func (a LeagueAverages) Get(p PlayType) (float64, bool) {
	v, ok := a.values[p]
	return v, ok
}

// Len returns the number of play types with an average
func (a LeagueAverages) Len() int {
	return len(a.values)
}

// Map returns a copy of the averages
func (a LeagueAverages) Map() map[PlayType]float64 {
	cp := make(map[PlayType]float64, len(a.values))
	for k, v := range a.values {
		cp[k] = v
	}
	return cp
}

// Ordered returns the averages following the order of types, using 0 for
// play types without an average.
func (a LeagueAverages) Ordered(types []PlayType) []float64 {
	out := make([]float64, len(types))
	for i, p := range types {
		out[i] = a.values[p]
	}
	return out
}

// WeightedPPP returns sum(PPP*POSS)/sum(POSS) over records. Players with few
// possessions contribute proportionally less to the league baseline.
func WeightedPPP(p PlayType, records []PlayRecord) (float64, error) {
	ppp := make([]float64, len(records))
	weights := make([]float64, len(records))
	var total float64
	for i, r := range records {
		ppp[i] = r.PPP
		weights[i] = float64(r.Possessions)
		total += weights[i]
	}

	if total <= 0 {
		return 0, apperrors.NewDegenerateAverageError(p.String())
	}

	return stat.Mean(ppp, weights), nil
}

// ComputeAverages computes the league average of every play type in
// records, visiting them in the order of All. Degenerate play types are
// reported together and no averages are returned for a partial set.
func ComputeAverages(records map[PlayType][]PlayRecord) (LeagueAverages, error) {
	values := make(map[PlayType]float64, len(records))
	var errs []error
	for _, p := range All {
		recs, ok := records[p]
		if !ok {
			continue
		}
		avg, err := WeightedPPP(p, recs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[p] = avg
	}
	if len(errs) > 0 {
		return LeagueAverages{}, errors.Join(errs...)
	}
	return NewLeagueAverages(values), nil
}

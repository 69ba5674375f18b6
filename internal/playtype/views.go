package playtype

// Profile is one player's PPP across the play types, in the order of All.
// Absent play types carry PPP 0 and Present false.
type Profile struct {
	Player    string
	PlayTypes []PlayType
	PPP       []float64
	Present   []bool
}

// RelativeValue is a player's PPP minus the league average for one play
// type. Negative values mean fewer points allowed than the league.
type RelativeValue struct {
	PlayType PlayType
	PPP      float64
	Average  float64
	Delta    float64
}

// Profile returns the radar input for player.
func (r *Result) Profile(player string) (Profile, error) {
	row, err := r.Merged.Lookup(player)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{
		Player:    row.Player,
		PlayTypes: make([]PlayType, 0, len(All)),
		PPP:       make([]float64, 0, len(All)),
		Present:   make([]bool, 0, len(All)),
	}
	for _, p := range All {
		c := r.Merged.Cell(player, p)
		profile.PlayTypes = append(profile.PlayTypes, p)
		profile.PPP = append(profile.PPP, c.PPP)
		profile.Present = append(profile.Present, c.Present)
	}
	return profile, nil
}

// ValuesOr returns the PPP values with absent play types replaced by absent.
func (p Profile) ValuesOr(absent float64) []float64 {
	out := make([]float64, len(p.PPP))
	for i, v := range p.PPP {
		if i < len(p.Present) && p.Present[i] {
			out[i] = v
			continue
		}
		out[i] = absent
	}
	return out
}

// LeagueProfile returns the league averages shaped like a player Profile.
func (r *Result) LeagueProfile() Profile {
	return Profile{
		Player:    "League Average",
		PlayTypes: append([]PlayType(nil), All...),
		PPP:       r.Averages.Ordered(All),
		Present:   []bool{true, true, true, true, true, true, true},
	}
}

// RelativeProfile returns PPP relative to the league average for every play
// type the player appears in.
func (r *Result) RelativeProfile(player string) ([]RelativeValue, error) {
	if _, err := r.Merged.Lookup(player); err != nil {
		return nil, err
	}

	var out []RelativeValue
	for _, p := range All {
		c := r.Merged.Cell(player, p)
		if !c.Present {
			continue
		}
		avg, _ := r.Averages.Get(p)
		out = append(out, RelativeValue{
			PlayType: p,
			PPP:      c.PPP,
			Average:  avg,
			Delta:    c.PPP - avg,
		})
	}
	return out, nil
}

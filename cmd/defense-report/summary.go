package main

import (
	"fmt"
	"io"
	"strings"

	"defensecli/internal/exporter"
	"defensecli/internal/playtype"
)

const topVersatile = 10

func printSummary(w io.Writer, res *playtype.Result, summaries []exporter.PlayerSummary, eliteTotal int) {
	fmt.Fprintln(w, "\n=== LEAGUE AVERAGE PPP BY PLAY TYPE ===")
	fmt.Fprintln(w, "Play Type        | League PPP | Players | Competent")
	fmt.Fprintln(w, "-----------------|------------|---------|----------")
	for _, t := range res.OrderedTables() {
		avg, _ := res.Averages.Get(t.PlayType)
		fmt.Fprintf(w, "%-16s | %10.3f | %7d | %9d\n", t.PlayType.Label(), avg, t.Len(), t.CompetentCount())
	}

	fmt.Fprintln(w, "\n=== PLAYERS BY NUMBER OF PLAY TYPES DEFENDED ===")
	for n, count := range res.Merged.CompetencyDistribution() {
		fmt.Fprintf(w, "%d: %d\n", n, count)
	}

	elite := res.Merged.WithTotalCompetent(eliteTotal)
	fmt.Fprintf(w, "\n=== ELITE DEFENDERS (COMPETENT AT %d PLAY TYPES) ===\n", eliteTotal)
	if len(elite) == 0 {
		fmt.Fprintln(w, "none")
	}
	for _, player := range elite {
		fmt.Fprintln(w, player)
	}

	n := min(topVersatile, len(summaries))
	fmt.Fprintf(w, "\n=== TOP %d MOST VERSATILE DEFENDERS ===\n", n)
	fmt.Fprintln(w, "Player                   | Total | POSS  | Best Play Type | Delta")
	fmt.Fprintln(w, "-------------------------|-------|-------|----------------|-------")
	for _, s := range summaries[:n] {
		fmt.Fprintf(w, "%-24s | %5d | %5d | %-14s | %+6.3f\n",
			truncate(s.Player, 24), s.TotalCompetent, s.Possessions, s.BestPlayType, s.BestDelta)
	}
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n-1])) + "~"
}

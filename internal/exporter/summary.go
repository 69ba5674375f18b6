package exporter

import (
	"fmt"
	"sort"
	"strings"

	"defensecli/internal/playtype"
)

// PlayerSummary condenses one merged row for the summary report
type PlayerSummary struct {
	Player         string   `json:"player"`
	TotalCompetent int      `json:"total_competent"`
	PlayTypes      int      `json:"play_types"`
	Possessions    int      `json:"possessions"`
	BestPlayType   string   `json:"best_play_type"`
	BestDelta      float64  `json:"best_delta"`
	CompetentAt    []string `json:"competent_at"`
}

// GenerateSummaries builds one summary per player, most versatile first.
func GenerateSummaries(res *playtype.Result) ([]PlayerSummary, error) {
	summaries := make([]PlayerSummary, 0, res.Merged.Len())
	for _, row := range res.Merged.Rows {
		rel, err := res.RelativeProfile(row.Player)
		if err != nil {
			return nil, err
		}

		s := PlayerSummary{
			Player:         row.Player,
			TotalCompetent: row.TotalCompetent,
			PlayTypes:      len(rel),
		}
		for i, v := range rel {
			cell := res.Merged.Cell(row.Player, v.PlayType)
			s.Possessions += cell.Possessions
			if cell.Competent {
				s.CompetentAt = append(s.CompetentAt, v.PlayType.String())
			}
			if i == 0 || v.Delta < s.BestDelta {
				s.BestPlayType = v.PlayType.String()
				s.BestDelta = v.Delta
			}
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalCompetent != summaries[j].TotalCompetent {
			return summaries[i].TotalCompetent > summaries[j].TotalCompetent
		}
		return summaries[i].Player < summaries[j].Player
	})

	return summaries, nil
}

// ExportSummaries writes the player summaries to filePath
func (e *ReportExporter) ExportSummaries(summaries []PlayerSummary, filePath string) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, summaryRow(s))
	}
	if err := e.csvWriter.WriteSimpleCSV(filePath, SummaryHeaders(), rows); err != nil {
		return fmt.Errorf("failed to export player summaries: %w", err)
	}
	return nil
}

// SummaryHeaders returns the columns of the player summary report
func SummaryHeaders() []string {
	return []string{"PLAYER", "TOTAL_COMPETENT", "PLAY_TYPES", "POSS", "BEST_PLAY_TYPE", "BEST_DELTA", "COMPETENT_AT"}
}

func summaryRow(s PlayerSummary) []string {
	return []string{
		s.Player,
		formatInt(s.TotalCompetent),
		formatInt(s.PlayTypes),
		formatInt(s.Possessions),
		s.BestPlayType,
		formatRounded(s.BestDelta),
		strings.Join(s.CompetentAt, ";"),
	}
}

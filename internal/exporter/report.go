package exporter

import (
	"fmt"

	"defensecli/internal/config"
	"defensecli/internal/playtype"
)

// ReportExporter writes the organizer results as CSV reports
type ReportExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
}

// NewReportExporter creates a new report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{
		csvWriter: NewCSVWriter(paths),
		paths:     paths,
	}
}

// ExportAll writes every annotated table, the merged table and the averages.
func (e *ReportExporter) ExportAll(res *playtype.Result) error {
	if err := e.ExportTables(res.OrderedTables()); err != nil {
		return err
	}
	if err := e.ExportMerged(res.Merged, e.paths.MergedCSV); err != nil {
		return err
	}
	return e.ExportAverages(res, e.paths.AveragesCSV)
}

// ExportTables writes each annotated table to tables/<key>.csv
func (e *ReportExporter) ExportTables(tables []*playtype.Table) error {
	for _, t := range tables {
		var rows [][]string
		for _, r := range t.Records {
			rows = append(rows, tableRow(r))
		}
		if err := e.csvWriter.WriteSimpleCSV("tables/"+t.PlayType.FileName(), TableHeaders(t.PlayType), rows); err != nil {
			return fmt.Errorf("failed to export %s table: %w", t.PlayType, err)
		}
	}
	return nil
}

// ExportMerged writes one row per player with the qualified columns of every
// play type followed by TOTAL_COMPETENT.
func (e *ReportExporter) ExportMerged(merged *playtype.MergedTable, filePath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(filePath, MergedHeaders(merged.PlayTypes), false)
	if err != nil {
		return fmt.Errorf("failed to export merged table: %w", err)
	}
	for _, row := range merged.Rows {
		if err := stream.WriteRecord(mergedRow(row)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to export row for %s: %w", row.Player, err)
		}
	}
	return stream.Close()
}

// ExportAverages writes the league average PPP of every play type
func (e *ReportExporter) ExportAverages(res *playtype.Result, filePath string) error {
	var rows [][]string
	for _, t := range res.OrderedTables() {
		rows = append(rows, averageRow(res, t))
	}
	if err := e.csvWriter.WriteSimpleCSV(filePath, AverageHeaders(), rows); err != nil {
		return fmt.Errorf("failed to export averages: %w", err)
	}
	return nil
}

// TableHeaders returns the columns of an annotated play-type table
func TableHeaders(p playtype.PlayType) []string {
	return []string{
		playtype.ColumnPlayer,
		p.PossessionsColumn(),
		p.PPPColumn(),
		p.CompetentColumn(),
	}
}

// MergedHeaders returns the columns of the merged table
func MergedHeaders(types []playtype.PlayType) []string {
	headers := []string{playtype.ColumnPlayer}
	for _, p := range types {
		headers = append(headers, p.PossessionsColumn(), p.PPPColumn(), p.CompetentColumn())
	}
	return append(headers, "TOTAL_COMPETENT")
}

// AverageHeaders returns the columns of the averages report
func AverageHeaders() []string {
	return []string{"PLAY_TYPE", "LABEL", "LEAGUE_PPP", "PLAYERS", "COMPETENT"}
}

func tableRow(r playtype.Record) []string {
	return []string{
		r.Player,
		formatInt(r.Possessions),
		formatFloat(r.PPP),
		formatBool(r.Competent),
	}
}

func mergedRow(row playtype.MergedRow) []string {
	out := []string{row.Player}
	for _, c := range row.Cells {
		out = append(out, formatInt(c.Possessions), formatFloat(c.PPP), formatBool(c.Competent))
	}
	return append(out, formatInt(row.TotalCompetent))
}

func averageRow(res *playtype.Result, t *playtype.Table) []string {
	avg, _ := res.Averages.Get(t.PlayType)
	return []string{
		t.PlayType.String(),
		t.PlayType.Label(),
		formatFloat(avg),
		formatInt(t.Len()),
		formatInt(t.CompetentCount()),
	}
}

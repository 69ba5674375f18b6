package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"defensecli/internal/playtype"
)

const (
	MergedSheet   = "Merged"
	AveragesSheet = "Averages"
	SummarySheet  = "Summary"
)

// WorkbookExporter writes the organizer results into a single XLSX file:
// one sheet per play type plus the merged table, averages and summaries.
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: logger.With(slog.String("component", "workbook_exporter"))}
}

// Build assembles the workbook in memory. The caller closes it.
func (e *WorkbookExporter) Build(res *playtype.Result, summaries []PlayerSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for _, t := range res.OrderedTables() {
		rows := make([][]interface{}, 0, t.Len())
		for _, r := range t.Records {
			rows = append(rows, []interface{}{r.Player, r.Possessions, r.PPP, r.Competent})
		}
		if err := writeSheet(f, t.PlayType.String(), TableHeaders(t.PlayType), rows, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	merged := make([][]interface{}, 0, res.Merged.Len())
	for _, row := range res.Merged.Rows {
		cells := []interface{}{row.Player}
		for _, c := range row.Cells {
			cells = append(cells, c.Possessions, c.PPP, c.Competent)
		}
		merged = append(merged, append(cells, row.TotalCompetent))
	}
	if err := writeSheet(f, MergedSheet, MergedHeaders(res.Merged.PlayTypes), merged, header); err != nil {
		f.Close()
		return nil, err
	}

	var averages [][]interface{}
	for _, t := range res.OrderedTables() {
		avg, _ := res.Averages.Get(t.PlayType)
		averages = append(averages, []interface{}{t.PlayType.String(), t.PlayType.Label(), avg, t.Len(), t.CompetentCount()})
	}
	if err := writeSheet(f, AveragesSheet, AverageHeaders(), averages, header); err != nil {
		f.Close()
		return nil, err
	}

	if summaries != nil {
		rows := make([][]interface{}, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, []interface{}{
				s.Player, s.TotalCompetent, s.PlayTypes, s.Possessions,
				s.BestPlayType, s.BestDelta, strings.Join(s.CompetentAt, ";"),
			})
		}
		if err := writeSheet(f, SummarySheet, SummaryHeaders(), rows, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(MergedSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return f, nil
}

// Export writes the workbook to filePath
func (e *WorkbookExporter) Export(res *playtype.Result, summaries []PlayerSummary, filePath string) error {
	f, err := e.Build(res, summaries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("Workbook exported",
		slog.String("file_path", filePath),
		slog.Int("sheets", f.SheetCount))
	return nil
}

// WriteTo streams the workbook to w
func (e *WorkbookExporter) WriteTo(w io.Writer, res *playtype.Result, summaries []PlayerSummary) error {
	f, err := e.Build(res, summaries)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := setRow(f, name, 1, headerCells); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(name, first, last, headerStyle); err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", name, err)
	}

	for i, row := range rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// Package exporter writes defensive play-type results to CSV and XLSX.
//
// CSVWriter is the low-level writer: headers, appends, streaming and an
// optional UTF-8 BOM for Excel. ReportExporter builds on it to write the
// annotated play-type tables (tables/<key>.csv), the merged table
// (merged.csv) and the league averages (averages.csv); GenerateSummaries
// condenses the merged table into one line per player. WorkbookExporter
// puts the same data into one workbook with excelize.
//
// Example usage:
//
//	reports := exporter.NewReportExporter(paths)
//	if err := reports.ExportAll(result); err != nil {
//		return err
//	}
//	err := exporter.NewWorkbookExporter(logger).Export(result, nil, paths.WorkbookFile)
package exporter

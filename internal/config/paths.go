package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every resolved location used by one report run
type Paths struct {
	BaseDir   string
	DataDir   string
	OutputDir string
	TablesDir string
	ChartsDir string
	LogsDir   string

	// Well-known report files
	MergedCSV    string
	AveragesCSV  string
	WorkbookFile string
}

// GetPaths resolves the configured directories against the working directory
func (c *Config) GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(c.Paths, wd), nil
}

// ResolvePaths resolves pc against base. Empty charts and logs directories
// are placed under the output directory.
func ResolvePaths(pc PathsConfig, base string) *Paths {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	outputDir := abs(pc.OutputDir)
	chartsDir := abs(pc.ChartsDir)
	if chartsDir == "" {
		chartsDir = filepath.Join(outputDir, "charts")
	}
	logsDir := abs(pc.LogsDir)
	if logsDir == "" {
		logsDir = filepath.Join(outputDir, "logs")
	}

	return &Paths{
		BaseDir:      base,
		DataDir:      abs(pc.DataDir),
		OutputDir:    outputDir,
		TablesDir:    filepath.Join(outputDir, "tables"),
		ChartsDir:    chartsDir,
		LogsDir:      logsDir,
		MergedCSV:    filepath.Join(outputDir, "merged.csv"),
		AveragesCSV:  filepath.Join(outputDir, "averages.csv"),
		WorkbookFile: filepath.Join(outputDir, "defense.xlsx"),
	}
}

// EnsureDirectories creates all output directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.TablesDir,
		p.ChartsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetTablePath returns the path for an annotated play-type table
func (p *Paths) GetTablePath(filename string) string {
	return filepath.Join(p.TablesDir, filename)
}

// GetChartPath returns the path for a rendered chart
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}

// GetReportPath returns the path for a report file in the output directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved locations
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("output", p.OutputDir),
			slog.String("tables", p.TablesDir),
			slog.String("charts", p.ChartsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("report_files",
			slog.String("merged_csv", p.MergedCSV),
			slog.String("averages_csv", p.AveragesCSV),
			slog.String("workbook", p.WorkbookFile),
		))
}

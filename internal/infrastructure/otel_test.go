package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defensecli/internal/config"
)

func TestNewOTelConfig(t *testing.T) {
	cfg := NewOTelConfig(config.TelemetryConfig{
		ServiceName:   "svc",
		TraceExporter: "stdout",
		EnableMetrics: true,
		MetricsFile:   "m.prom",
	})

	assert.Equal(t, "svc", cfg.ServiceName)
	assert.Equal(t, ServiceVersion, cfg.ServiceVersion)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.True(t, cfg.EnableMetrics)
}

func TestInitializeOTel_Configurations(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *OTelConfig
		wantErr     bool
		wantTracer  bool
		wantMetrics bool
	}{
		{"disabled", &OTelConfig{ServiceName: "t", TraceExporter: "none"}, false, false, false},
		{"metrics only", &OTelConfig{ServiceName: "t", TraceExporter: "none", EnableMetrics: true}, false, false, true},
		{"stdout tracing", &OTelConfig{ServiceName: "t", TraceExporter: "stdout", TraceWriter: &bytes.Buffer{}}, false, true, false},
		{"unsupported exporter", &OTelConfig{ServiceName: "t", TraceExporter: "otlp"}, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			providers, err := InitializeOTel(ctx, tt.cfg, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer providers.Shutdown(ctx)

			assert.Equal(t, tt.wantTracer, providers.TracerProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.MeterProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.Registry != nil)
		})
	}
}

func TestStdoutTracing_WritesSpans(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	providers, err := InitializeOTel(ctx, &OTelConfig{
		ServiceName:   "trace-test",
		TraceExporter: "stdout",
		TraceWriter:   &out,
	}, nil)
	require.NoError(t, err)

	_, span := providers.Tracer.Start(ctx, "organize")
	span.End()
	require.NoError(t, providers.Shutdown(ctx))

	assert.Contains(t, out.String(), `"Name": "organize"`)
}

func TestWriteMetricsTextfile(t *testing.T) {
	ctx := context.Background()
	providers, err := InitializeOTel(ctx, &OTelConfig{
		ServiceName:   "metrics-test",
		TraceExporter: "none",
		EnableMetrics: true,
	}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(ctx)

	metrics, err := CreateReportMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordExport(ctx, "csv", 3)
	metrics.RecordChart(ctx, "histogram")
	metrics.RecordRun(ctx, 250*time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "defense.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "report_files_exported_total")
	assert.Contains(t, text, `kind="csv"`)
	assert.Contains(t, text, "report_charts_rendered_total")
	assert.Contains(t, text, "report_run_duration_seconds")
}

func TestWriteMetricsTextfile_Disabled(t *testing.T) {
	providers := &OTelProviders{}
	err := providers.WriteMetricsTextfile(filepath.Join(t.TempDir(), "m.prom"))
	assert.True(t, errors.Is(err, ErrMetricsDisabled))
}

func TestReportMetrics_NilIsSafe(t *testing.T) {
	var m *ReportMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordExport(ctx, "csv", 1)
		m.RecordChart(ctx, "radar")
		m.RecordRun(ctx, time.Second, errors.New("boom"))
	})
}

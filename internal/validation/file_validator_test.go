package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name            string
		setupFunc       func(t *testing.T) string
		requiredPattern string
		wantErr         bool
		errorContains   string
	}{
		{
			name: "valid directory with files",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, "postup.csv"), []byte("PLAYER,POSS,PPP\n"), 0644))
				return dir
			},
			requiredPattern: "*.csv",
		},
		{
			name: "valid directory without files",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			requiredPattern: "*.csv",
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return "/non/existent/path"
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "test.txt")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "is not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateInputDirectory(tt.setupFunc(t), tt.requiredPattern)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err), "probe file should be removed")
}

func TestFileValidator_ValidateCSVFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "spotup.csv")
	txtPath := filepath.Join(dir, "spotup.txt")
	require.NoError(t, os.WriteFile(csvPath, []byte("PLAYER,POSS,PPP\n"), 0644))
	require.NoError(t, os.WriteFile(txtPath, []byte("PLAYER,POSS,PPP\n"), 0644))

	v := NewFileValidator(nil)

	assert.NoError(t, v.ValidateCSVFile(csvPath))

	err := v.ValidateCSVFile(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a CSV file")

	err = v.ValidateCSVFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	err = v.ValidateCSVFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestFileValidator_CountFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"isolation.csv", "postup.csv", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0755))

	count, err := NewFileValidator(nil).CountFiles(dir, "*.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

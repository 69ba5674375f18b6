package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"defensecli/internal/playtype"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds the play-type tables of a data directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindCSVFiles lists the CSV files directly inside dir, sorted by name.
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// TableSet is the outcome of matching a directory's CSV files to play types
type TableSet struct {
	Dir          string
	Files        map[playtype.PlayType]FileInfo
	Unrecognized []FileInfo
	Missing      []playtype.PlayType
}

// DiscoverTables matches each CSV file in dir to the play type named by its
// stem, ignoring case, so "PostUp.CSV" serves postup. When several files
// map to one play type the canonical lowercase name wins, otherwise the
// first by name; the rest are reported as unrecognized.
func (d *Discovery) DiscoverTables(dir string) (*TableSet, error) {
	found, err := d.FindCSVFiles(dir)
	if err != nil {
		return nil, err
	}

	set := &TableSet{
		Dir:   d.resolve(dir),
		Files: make(map[playtype.PlayType]FileInfo, len(playtype.All)),
	}
	for _, f := range found {
		p, err := playtype.Parse(strings.TrimSuffix(f.Name, filepath.Ext(f.Name)))
		if err != nil {
			set.Unrecognized = append(set.Unrecognized, f)
			continue
		}
		current, taken := set.Files[p]
		switch {
		case !taken:
			set.Files[p] = f
		case f.Name == p.FileName():
			set.Unrecognized = append(set.Unrecognized, current)
			set.Files[p] = f
		default:
			set.Unrecognized = append(set.Unrecognized, f)
		}
	}

	for _, p := range playtype.All {
		if _, ok := set.Files[p]; !ok {
			set.Missing = append(set.Missing, p)
		}
	}
	sort.Slice(set.Unrecognized, func(i, j int) bool {
		return set.Unrecognized[i].Name < set.Unrecognized[j].Name
	})
	return set, nil
}

// Sources returns the organizer input for the discovered files. Missing play
// types are absent from the mapping.
func (s *TableSet) Sources() playtype.Sources {
	sources := make(playtype.Sources, len(s.Files))
	for p, f := range s.Files {
		sources[p] = playtype.FileSource(f.Path)
	}
	return sources
}

// Complete reports whether every play type has a table.
func (s *TableSet) Complete() bool {
	return len(s.Missing) == 0
}

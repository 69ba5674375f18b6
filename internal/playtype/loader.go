package playtype

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "defensecli/internal/errors"
	"defensecli/internal/validation"
)

var recordValidator = validation.NewStructValidator()

// Source opens the raw table of one play type.
type Source interface {
	Open() (io.ReadCloser, error)
	Name() string
}

// Sources maps each play type to where its table is read from.
type Sources map[PlayType]Source

// FileSource reads a table from a CSV file on disk.
type FileSource string

// Open opens the file
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Name returns the file path
func (f FileSource) Name() string {
	return string(f)
}

// DirSources maps every play type to <dir>/<key>.csv.
func DirSources(dir string) Sources {
	sources := make(Sources, len(All))
	for _, p := range All {
		sources[p] = FileSource(filepath.Join(dir, p.FileName()))
	}
	return sources
}

// LoadRecords opens src, reads its table and closes it on every path.
func LoadRecords(p PlayType, src Source) (records []PlayRecord, err error) {
	if src == nil {
		return nil, apperrors.NewMissingSourceError(p.String(), nil)
	}

	rc, err := src.Open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewMissingSourceError(p.String(), err).WithContext("source", src.Name())
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("open %s", src.Name()), err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = apperrors.NewStorageError(fmt.Sprintf("close %s", src.Name()), cerr)
		}
	}()

	return ReadRecords(p, rc)
}

// ReadRecords parses a comma separated table addressed by header names.
// PLAYER, POSS and PPP are required; other columns are ignored.
func ReadRecords(p PlayType, r io.Reader) ([]PlayRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewMissingColumnError(p.String(), ColumnPlayer)
	}
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s: read header", p), err)
	}

	playerIdx, possIdx, pppIdx := -1, -1, -1
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		switch strings.ToUpper(strings.TrimSpace(col)) {
		case ColumnPlayer:
			playerIdx = i
		case ColumnPossessions:
			possIdx = i
		case ColumnPPP:
			pppIdx = i
		}
	}

	for _, required := range []struct {
		name string
		idx  int
	}{
		{ColumnPlayer, playerIdx},
		{ColumnPossessions, possIdx},
		{ColumnPPP, pppIdx},
	} {
		if required.idx < 0 {
			return nil, apperrors.NewMissingColumnError(p.String(), required.name)
		}
	}

	var records []PlayRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s: read row", p), err)
		}
		line, _ := reader.FieldPos(0)

		poss, err := parsePossessions(row[possIdx])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s line %d: POSS", p, line), err).
				WithContext("line", line)
		}
		ppp, err := parsePPP(row[pppIdx])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s line %d: PPP", p, line), err).
				WithContext("line", line)
		}

		rec := PlayRecord{
			Player:      strings.TrimSpace(row[playerIdx]),
			Possessions: poss,
			PPP:         ppp,
		}
		if err := recordValidator.Struct(rec); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s line %d", p, line), err).
				WithContext("line", line)
		}
		records = append(records, rec)
	}

	return records, nil
}

// parsePossessions accepts integers, including integral floats such as "41.0".
func parsePossessions(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number of possessions", s)
	}
	// float64(math.MaxInt) rounds up to 2^63, which is already out of range
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("%q is out of range for possessions", s)
	}
	return int(f), nil
}

func parsePPP(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite value", s)
	}
	return f, nil
}

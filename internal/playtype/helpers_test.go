package playtype

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureTables puts A (competent everywhere) and B (never competent) in
// every table, plus C who only defends isolations.
func fixtureTables() map[PlayType]string {
	tables := make(map[PlayType]string, len(All))
	for _, p := range All {
		tables[p] = "PLAYER,TEAM,POSS,PPP\nA,BOS,30,0.5\nB,LAL,10,1.5\n"
	}
	tables[Isolation] += "C,MIA,100,0.7\n"
	return tables
}

func writeTables(t *testing.T, tables map[PlayType]string) string {
	t.Helper()
	dir := t.TempDir()
	for p, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, p.FileName()), []byte(content), 0o644))
	}
	return dir
}

// memSource serves a table from memory and records whether it was closed.
type memSource struct {
	name    string
	content string
	closed  *bool
}

func (m memSource) Open() (io.ReadCloser, error) {
	return readCloser{Reader: strings.NewReader(m.content), closed: m.closed}, nil
}

func (m memSource) Name() string {
	return m.name
}

type readCloser struct {
	*strings.Reader
	closed *bool
}

func (r readCloser) Close() error {
	if r.closed != nil {
		*r.closed = true
	}
	return nil
}

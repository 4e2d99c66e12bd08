package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	db, err := Open(MemoryPath)
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "p.db")
	db, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE t (id TEXT PRIMARY KEY)").Error)
	assert.FileExists(t, path)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn(MemoryPath))
	assert.Contains(t, dsn("a.db"), "journal_mode(WAL)")
	assert.Contains(t, dsn("a.db?mode=ro"), "a.db?mode=ro&_pragma")
}

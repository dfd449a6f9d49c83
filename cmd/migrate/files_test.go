package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- header comment
CREATE SEQUENCE products_seq OPTIONS (sequence_kind = 'bit_reversed_positive');

CREATE TABLE products (
  product_id INT64 NOT NULL,
) PRIMARY KEY (product_id);
   -- trailing comment
`
	stmts := splitDDLStatements(content)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE SEQUENCE products_seq OPTIONS (sequence_kind = 'bit_reversed_positive')", stmts[0])
	assert.Equal(t, "CREATE TABLE products (\nproduct_id INT64 NOT NULL,\n) PRIMARY KEY (product_id)", stmts[1])
}

func TestMigrationFilesAndPending(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "001_a.sql", files[0].Version)
	assert.Equal(t, "002_b.sql", files[1].Version)

	todo := pending(files, map[string]bool{"001_a.sql": true})
	require.Len(t, todo, 1)
	assert.Equal(t, "002_b.sql", todo[0].Version)

	content, err := todo[0].read()
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", content)
}

func TestRepositoryMigrationsParse(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations", "spanner"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := files[0].read()
	require.NoError(t, err)
	stmts := splitDDLStatements(content)
	assert.Len(t, stmts, 6)
}

func TestVersionPlan(t *testing.T) {
	plan := versionPlan("001_initial_schema.sql")
	require.False(t, plan.IsEmpty())
	assert.Len(t, plan.Mutations(), 1)
}

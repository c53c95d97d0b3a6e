package sqlset

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numberedAdapter struct{}

func (numberedAdapter) DB() *sql.DB                         { return nil }
func (numberedAdapter) Identifier(n string) (string, error) { return fmt.Sprintf(`"%s"`, n), nil }
func (numberedAdapter) Placeholder(i int) string            { return fmt.Sprintf("$%d", i) }
func (numberedAdapter) IDType() string                      { return "TEXT" }
func (numberedAdapter) ValueType() string                   { return "REAL" }
func (numberedAdapter) Close() error                        { return nil }

func TestCreateStatement(t *testing.T) {
	stmt := createStatement(numberedAdapter{}, `"XL"`, []string{`"name"`, `"B"`, `"perf"`}, []string{"name", "B", "perf"}, "name")
	assert.Equal(t, `CREATE TABLE "XL" ("name" TEXT NOT NULL, "B" REAL NOT NULL, "perf" REAL NOT NULL)`, stmt)
}

func TestInsertStatement(t *testing.T) {
	stmt := insertStatement(numberedAdapter{}, `"XL"`, []string{`"B"`, `"perf"`}, 2)
	assert.Equal(t, `INSERT INTO "XL" ("B", "perf") VALUES ($1, $2), ($3, $4)`, stmt)
}

func TestRowFromRaw(t *testing.T) {
	row, err := rowFromRaw([]interface{}{[]byte("c1"), int64(1), "0", 10.5}, []string{"name", "A", "B", "perf"}, "name")
	require.NoError(t, err)
	assert.Equal(t, "c1", row.ID)
	assert.Equal(t, map[string]float64{"A": 1, "B": 0, "perf": 10.5}, row.Values)

	_, err = rowFromRaw([]interface{}{nil}, []string{"A"}, "")
	assert.Error(t, err)
	_, err = rowFromRaw([]interface{}{"x"}, []string{"A"}, "")
	assert.Error(t, err)
}

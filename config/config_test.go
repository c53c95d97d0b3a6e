package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/perfcart/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader(`
input: data.db
table: X
schema:
  idColumn: name
  target: perf
partitions: source
frontier: redis
redis:
  addr: localhost:6379
  db: 2
`))
	require.NoError(t, err)
	assert.Equal(t, "data.db", c.Input)
	assert.Equal(t, dataset.Schema{IDColumn: "name", Target: "perf"}, c.Schema)
	assert.Equal(t, PartitionsSource, c.Partitions)
	assert.Equal(t, Redis, c.Frontier)
	assert.Equal(t, Memory, c.NodeStore, "unset values keep their defaults")
	assert.Equal(t, "output.txt", c.Report)
	assert.Equal(t, 2, c.Redis.DB)
	assert.Equal(t, SQLite3, c.InputKind())
	assert.Equal(t, "X", c.InputID())
	assert.NoError(t, c.Validate())
}

func TestReadUnknownField(t *testing.T) {
	_, err := Read(strings.NewReader("inptu: X.csv\n"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfcart.yml")
	require.NoError(t, os.WriteFile(path, []byte("input: X.csv\nrootLabel: root\n"), 0644))
	c, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "root", c.RootLabel)
	assert.Equal(t, CSV, c.InputKind())
	assert.Equal(t, "X.csv", c.InputID())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestInputKind(t *testing.T) {
	testCases := map[string]string{
		"":                              CSV,
		"X.csv":                         CSV,
		"runs/perf.db":                  SQLite3,
		"postgres://localhost/perf":     PostgreSQL,
		"postgresql://localhost/perf":   PostgreSQL,
		"mongodb://localhost:27017/run": MongoDB,
	}
	for input, kind := range testCases {
		c := Default()
		c.Input = input
		assert.Equal(t, kind, c.InputKind(), input)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"db input without table", func(c *Config) { c.Input = "perf.db" }, false},
		{"csv partitions without dir", func(c *Config) { c.OutputDir = "" }, false},
		{"source partitions on csv", func(c *Config) { c.Partitions = PartitionsSource }, false},
		{"no partitions", func(c *Config) { c.Partitions = PartitionsNone; c.OutputDir = "" }, true},
		{"unknown partitions", func(c *Config) { c.Partitions = "s3" }, false},
		{"redis without address", func(c *Config) { c.NodeStore = Redis }, false},
		{"redis", func(c *Config) { c.NodeStore = Redis; c.Redis.Addr = "localhost:6379" }, true},
		{"unknown frontier", func(c *Config) { c.Frontier = "kafka" }, false},
	}
	for _, tc := range testCases {
		c := Default()
		tc.modify(c)
		if tc.valid {
			assert.NoError(t, c.Validate(), tc.name)
		} else {
			assert.Error(t, c.Validate(), tc.name)
		}
	}
}

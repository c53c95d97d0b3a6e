package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/perfcart/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xCSV = `name,A,B,perf
c1,1,1,10
c2,1,0,10
c3,0,0,0
`

func TestGrowAndLoadTree(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "X.csv")
	require.NoError(t, os.WriteFile(input, []byte(xCSV), 0644))
	structure := filepath.Join(dir, "structure.txt")
	treeFile := filepath.Join(dir, "tree.json")

	cmd := cliParser()
	cmd.SetArgs([]string{"grow", "-i", input, "--id-column", "name", "-d", dir,
		"-r", filepath.Join(dir, "report.txt"), "-s", structure, "-o", treeFile})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(structure)
	require.NoError(t, err)
	expected := "X: split by A, error_of_split: 0.0, datapoints: 3, mean: 6.67\n" +
		"|  XL: split by B, error_of_split: 0.0, datapoints: 2, mean: 10.0\n" +
		"|  |  XLL: leaf (single row), datapoints: 1, mean: 10.0\n" +
		"|  |  XLR: leaf (single row), datapoints: 1, mean: 10.0\n" +
		"|  XR: leaf (single row), datapoints: 1, mean: 0.0\n"
	assert.Equal(t, expected, string(content))
	for _, label := range []string{"XL", "XR", "XLL", "XLR"} {
		assert.FileExists(t, filepath.Join(dir, label+".csv"))
	}
	report, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Split based on A 0.0")

	tcc := &treeCmdConfig{rootCmdConfig: &rootCmdConfig{}, treeInput: treeFile}
	tr, err := tcc.loadTree(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", tr.RootID)
	assert.Equal(t, "perf", tr.Target)
	row, err := parseRow([]string{"A=0", "B=1"})
	require.NoError(t, err)
	p, err := tr.Predict(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, "XR", p.NodeID())
	assert.Equal(t, 0.0, p.PredictedValue())
}

func TestLoadTreeRequiresPath(t *testing.T) {
	tcc := &treeCmdConfig{rootCmdConfig: &rootCmdConfig{}}
	_, err := tcc.loadTree(context.Background())
	assert.Error(t, err)
}

func TestParseRow(t *testing.T) {
	row, err := parseRow([]string{"A=1", "B=0"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 1, "B": 0}, row.Values)
	for _, arg := range []string{"A", "=1", "A=yes"} {
		_, err = parseRow([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfcart.yml")
	require.NoError(t, os.WriteFile(path, []byte("input: data/X.csv\nreport: a.txt\npartitions: none\n"), 0644))
	gcc := &growCmdConfig{rootCmdConfig: &rootCmdConfig{}, configFile: path}
	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&(gcc.flags.Report), "report", "r", "output.txt", "")
	cmd.Flags().StringVar(&(gcc.flags.Partitions), "partitions", config.PartitionsCSV, "")
	require.NoError(t, cmd.Flags().Parse([]string{"-r", "b.txt"}))

	cfg, err := gcc.config(cmd)
	require.NoError(t, err)
	assert.Equal(t, "data/X.csv", cfg.Input)
	assert.Equal(t, "b.txt", cfg.Report)
	assert.Equal(t, config.PartitionsNone, cfg.Partitions)
	assert.Equal(t, config.Memory, cfg.Frontier)
}

func TestPartitionsToSourceRequiresDatabase(t *testing.T) {
	gcc := &growCmdConfig{rootCmdConfig: &rootCmdConfig{}}
	cfg := config.Default()
	cfg.Partitions = config.PartitionsSource
	loader, err := gcc.loader(cfg)
	require.NoError(t, err)
	_, err = gcc.partitionWriter(cfg, loader)
	assert.Error(t, err)
}

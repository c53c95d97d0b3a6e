/*
Package config holds the configuration of a tree growth, which can be read
from a YAML file.
*/
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/perfcart/dataset"
	yaml "gopkg.in/yaml.v2"
)

// Kinds of input
const (
	CSV        = "csv"
	SQLite3    = "sqlite3"
	PostgreSQL = "postgresql"
	MongoDB    = "mongodb"
)

// Backends for the frontier and the node store
const (
	Memory = "memory"
	Redis  = "redis"
)

// Destinations for the partitions of the nodes
const (
	// PartitionsCSV writes every partition to a CSV file in OutputDir
	PartitionsCSV = "csv"
	// PartitionsSource writes every partition to the database of the input
	PartitionsSource = "source"
	// PartitionsNone does not write partitions
	PartitionsNone = "none"
)

/*
Config is the configuration of a tree growth
*/
type Config struct {
	// Input is the path to a CSV file, the path to a SQLite3 (.db) file or
	// a PostgreSQL or MongoDB connection URL. Empty means CSV from STDIN.
	Input string `yaml:"input"`
	// Table is the table or collection with the data on database inputs
	Table string `yaml:"table"`
	// Schema maps the input columns to identifier, features and target
	Schema dataset.Schema `yaml:"schema"`
	// RootLabel is the label of the root node. Empty means the input
	// file, table or collection name without extension.
	RootLabel string `yaml:"rootLabel"`
	// Partitions is where the partitions of the nodes are written
	Partitions string `yaml:"partitions"`
	// OutputDir is the directory for CSV partitions
	OutputDir string `yaml:"outputDir"`
	// Report is the path of the file the per-node report is appended to.
	// Empty means no report.
	Report string `yaml:"report"`
	// Structure is the path of the file the tree structure is written to.
	// Empty means STDOUT.
	Structure string `yaml:"structure"`
	// Tree is the path of the file the tree is written to as JSON.
	// Empty means the tree is not written.
	Tree string `yaml:"tree"`
	// Frontier is the backend of the queue of partitions pending to be split
	Frontier string `yaml:"frontier"`
	// NodeStore is the backend of the node store
	NodeStore string `yaml:"nodeStore"`
	Redis     RedisConfig `yaml:"redis"`
}

// RedisConfig holds the settings to connect to a redis server
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Partitions: PartitionsCSV,
		OutputDir:  ".",
		Report:     "output.txt",
		Frontier:   Memory,
		NodeStore:  Memory,
	}
}

/*
Read takes an io.Reader with a YAML configuration and returns the default
configuration overridden with the values read from it, or an error.
*/
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %v", err)
	}
	c := Default()
	err = yaml.UnmarshalStrict(data, c)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %v", err)
	}
	return c, nil
}

// ReadFile uses Read to return the configuration in the file at the given path
func ReadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file %s: %v", path, err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return c, nil
}

// InputKind returns the kind of the input: CSV, SQLite3, PostgreSQL or MongoDB
func (c *Config) InputKind() string {
	switch {
	case strings.HasPrefix(c.Input, "postgres://"), strings.HasPrefix(c.Input, "postgresql://"):
		return PostgreSQL
	case strings.HasPrefix(c.Input, "mongodb://"):
		return MongoDB
	case strings.HasSuffix(c.Input, ".db"):
		return SQLite3
	}
	return CSV
}

// InputID returns the identifier of the root partition for the loader of the input
func (c *Config) InputID() string {
	if c.InputKind() == CSV {
		return c.Input
	}
	return c.Table
}

// Validate returns an error if the configuration is not consistent
func (c *Config) Validate() error {
	kind := c.InputKind()
	if kind != CSV && c.Table == "" {
		return fmt.Errorf("a table is required to read from a %s input", kind)
	}
	switch c.Partitions {
	case PartitionsCSV:
		if c.OutputDir == "" {
			return fmt.Errorf("an output directory is required to write CSV partitions")
		}
	case PartitionsSource:
		if kind == CSV {
			return fmt.Errorf("cannot write partitions to a CSV input")
		}
	case PartitionsNone:
	default:
		return fmt.Errorf("unknown partitions destination %q", c.Partitions)
	}
	for name, backend := range map[string]string{"frontier": c.Frontier, "node store": c.NodeStore} {
		switch backend {
		case Memory:
		case Redis:
			if c.Redis.Addr == "" {
				return fmt.Errorf("a redis address is required for the %s", name)
			}
		default:
			return fmt.Errorf("unknown %s backend %q", name, backend)
		}
	}
	return nil
}

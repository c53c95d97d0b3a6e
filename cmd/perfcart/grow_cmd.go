package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pbanos/perfcart"
	"github.com/pbanos/perfcart/config"
	"github.com/pbanos/perfcart/dataset"
	"github.com/pbanos/perfcart/dataset/csvset"
	"github.com/pbanos/perfcart/dataset/mongoset"
	"github.com/pbanos/perfcart/dataset/sqlset"
	"github.com/pbanos/perfcart/dataset/sqlset/pgadapter"
	"github.com/pbanos/perfcart/dataset/sqlset/sqlite3adapter"
	qjson "github.com/pbanos/perfcart/queue/json"
	"github.com/pbanos/perfcart/queue/redisq"
	"github.com/pbanos/perfcart/report"
	"github.com/pbanos/perfcart/tree"
	tjson "github.com/pbanos/perfcart/tree/json"
	"github.com/pbanos/perfcart/tree/redisstore"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"
)

type growCmdConfig struct {
	*rootCmdConfig
	configFile string
	flags      config.Config
	closers    []io.Closer
}

// exitError is an error with the exit code of the command
type exitError struct {
	code int
	err  error
}

func (ee *exitError) Error() string {
	return ee.err.Error()
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	gcc := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of configurations",
		Long:  `Grow a regression tree from a set of configurations with their binary features and measured performance.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := gcc.run(context.Background(), cmd)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.err)
				os.Exit(err.code)
			}
		},
	}
	d := config.Default()
	cmd.Flags().StringVarP(&(gcc.configFile), "config", "f", "", "path to a YML file with the configuration, overridden by the flags given")
	cmd.Flags().StringVarP(&(gcc.flags.Input), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the data to grow the tree from (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(gcc.flags.Table), "table", "", "table or collection with the data on database inputs")
	cmd.Flags().StringVar(&(gcc.flags.Schema.IDColumn), "id-column", "", "name of the column identifying configurations, kept on partitions but never used to split")
	cmd.Flags().StringVarP(&(gcc.flags.Schema.Target), "target", "c", "", "name of the column with the measured performance (defaults to the last column)")
	cmd.Flags().StringVar(&(gcc.flags.RootLabel), "root-label", "", "label of the root node (defaults to the input name without extension)")
	cmd.Flags().StringVar(&(gcc.flags.Partitions), "partitions", d.Partitions, "where to write the partition of every node: csv, source or none")
	cmd.Flags().StringVarP(&(gcc.flags.OutputDir), "output-dir", "d", d.OutputDir, "directory for the CSV partitions")
	cmd.Flags().StringVarP(&(gcc.flags.Report), "report", "r", d.Report, "path to the file the per-node report is appended to (empty for no report)")
	cmd.Flags().StringVarP(&(gcc.flags.Structure), "structure", "s", "", "path to the file the tree structure is written to (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(gcc.flags.Tree), "output", "o", "", "path to a file to which the generated tree will be written in JSON format")
	cmd.Flags().StringVar(&(gcc.flags.Frontier), "frontier", d.Frontier, "backend for the nodes pending to be split: memory or redis")
	cmd.Flags().StringVar(&(gcc.flags.NodeStore), "node-store", d.NodeStore, "backend for the nodes of the tree: memory or redis")
	cmd.Flags().StringVar(&(gcc.flags.Redis.Addr), "redis-addr", "", "address of the redis server")
	cmd.Flags().StringVar(&(gcc.flags.Redis.Password), "redis-password", "", "password of the redis server")
	cmd.Flags().IntVar(&(gcc.flags.Redis.DB), "redis-db", 0, "redis database")
	return cmd
}

func (gcc *growCmdConfig) run(ctx context.Context, cmd *cobra.Command) *exitError {
	defer gcc.close()
	cfg, err := gcc.config(cmd)
	if err != nil {
		return &exitError{1, err}
	}
	logger := gcc.Logger()
	loader, err := gcc.loader(cfg)
	if err != nil {
		return &exitError{2, err}
	}
	gcc.Logf("Loading configurations from %s...", cfg.InputKind())
	root, err := loader.Load(ctx, cfg.InputID())
	if err != nil {
		return &exitError{3, fmt.Errorf("loading configurations: %v", err)}
	}
	if cfg.RootLabel != "" {
		root.Label = cfg.RootLabel
	}
	partitions, err := gcc.partitionWriter(cfg, loader)
	if err != nil {
		return &exitError{4, err}
	}
	rw := report.Discard()
	if cfg.Report != "" {
		rw, err = report.Open(cfg.Report)
		if err != nil {
			return &exitError{5, err}
		}
	}
	defer rw.Close()
	p := perfcart.New(rw, partitions, logger)
	runID := uuid.New().String()
	err = gcc.backends(ctx, cfg, runID, p)
	if err != nil {
		return &exitError{6, err}
	}
	gcc.Logf("Growing tree %s from %d configurations with %d features to predict %s ...", runID, root.Count(), len(root.Features), root.Target)
	t, err := p.Grow(ctx, root)
	if err != nil {
		return &exitError{7, fmt.Errorf("growing the tree: %v", err)}
	}
	gcc.Logf("Done, %d nodes could not be explored", len(p.Failures))
	if err = rw.Flush(); err != nil {
		return &exitError{5, err}
	}
	if err = outputStructure(ctx, cfg.Structure, t); err != nil {
		return &exitError{8, err}
	}
	if cfg.Tree != "" {
		if err = outputTree(ctx, cfg.Tree, t); err != nil {
			return &exitError{9, err}
		}
	}
	return nil
}

// config returns the configuration in the config file, or the
// default one, overridden by the flags that were set.
func (gcc *growCmdConfig) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if gcc.configFile != "" {
		var err error
		cfg, err = config.ReadFile(gcc.configFile)
		if err != nil {
			return nil, err
		}
	}
	f := &gcc.flags
	overrides := map[string]func(){
		"input":          func() { cfg.Input = f.Input },
		"table":          func() { cfg.Table = f.Table },
		"id-column":      func() { cfg.Schema.IDColumn = f.Schema.IDColumn },
		"target":         func() { cfg.Schema.Target = f.Schema.Target },
		"root-label":     func() { cfg.RootLabel = f.RootLabel },
		"partitions":     func() { cfg.Partitions = f.Partitions },
		"output-dir":     func() { cfg.OutputDir = f.OutputDir },
		"report":         func() { cfg.Report = f.Report },
		"structure":      func() { cfg.Structure = f.Structure },
		"output":         func() { cfg.Tree = f.Tree },
		"frontier":       func() { cfg.Frontier = f.Frontier },
		"node-store":     func() { cfg.NodeStore = f.NodeStore },
		"redis-addr":     func() { cfg.Redis.Addr = f.Redis.Addr },
		"redis-password": func() { cfg.Redis.Password = f.Redis.Password },
		"redis-db":       func() { cfg.Redis.DB = f.Redis.DB },
	}
	for name, override := range overrides {
		if cmd.Flags().Changed(name) {
			override()
		}
	}
	return cfg, cfg.Validate()
}

func (gcc *growCmdConfig) loader(cfg *config.Config) (dataset.Loader, error) {
	switch cfg.InputKind() {
	case config.SQLite3:
		gcc.Logf("Creating SQLite3 adapter for file %s...", cfg.Input)
		adapter, err := sqlite3adapter.New(cfg.Input)
		if err != nil {
			return nil, err
		}
		gcc.closers = append(gcc.closers, adapter)
		return sqlset.New(adapter, cfg.Schema), nil
	case config.PostgreSQL:
		gcc.Logf("Creating PostgreSQL adapter for url %s...", cfg.Input)
		adapter, err := pgadapter.New(cfg.Input)
		if err != nil {
			return nil, err
		}
		gcc.closers = append(gcc.closers, adapter)
		return sqlset.New(adapter, cfg.Schema), nil
	case config.MongoDB:
		gcc.Logf("Connecting to MongoDB at %s...", cfg.Input)
		session, err := mgo.Dial(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		gcc.closers = append(gcc.closers, closerFunc(session.Close))
		return mongoset.Open(session, cfg.Schema), nil
	}
	return &csvset.Loader{Schema: cfg.Schema}, nil
}

func (gcc *growCmdConfig) partitionWriter(cfg *config.Config, loader dataset.Loader) (dataset.Writer, error) {
	switch cfg.Partitions {
	case config.PartitionsCSV:
		return &csvset.DirWriter{Dir: cfg.OutputDir}, nil
	case config.PartitionsSource:
		w, ok := loader.(dataset.Writer)
		if !ok {
			return nil, fmt.Errorf("cannot write partitions to a %s input", cfg.InputKind())
		}
		return w, nil
	}
	return dataset.Discard, nil
}

func (gcc *growCmdConfig) backends(ctx context.Context, cfg *config.Config, runID string, p *perfcart.Pot) error {
	if cfg.Frontier != config.Redis && cfg.NodeStore != config.Redis {
		return nil
	}
	rc := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	gcc.closers = append(gcc.closers, rc)
	if err := rc.Ping().Err(); err != nil {
		return fmt.Errorf("connecting to redis at %s: %v", cfg.Redis.Addr, err)
	}
	if cfg.Frontier == config.Redis {
		p.Queue = redisq.New(runID, rc, qjson.New())
		gcc.closers = append(gcc.closers, closerFunc(func() { p.Queue.Stop(ctx) }))
	}
	if cfg.NodeStore == config.Redis {
		p.NodeStore = redisstore.New(rc, runID, tjson.NewNodeEncodeDecoder())
	}
	return nil
}

// close closes the resources opened by the command in reverse order
func (gcc *growCmdConfig) close() {
	for i := len(gcc.closers) - 1; i >= 0; i-- {
		gcc.closers[i].Close()
	}
}

type closerFunc func()

func (cf closerFunc) Close() error {
	cf()
	return nil
}

func outputStructure(ctx context.Context, path string, t *tree.Tree) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating structure file: %v", err)
		}
		defer f.Close()
		w = f
	}
	return report.WriteStructure(ctx, w, t)
}

func outputTree(ctx context.Context, path string, t *tree.Tree) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating tree file: %v", err)
	}
	defer f.Close()
	err = tjson.WriteJSONTree(ctx, t, tjson.NewNodeEncodeDecoder(), f)
	if err != nil {
		return fmt.Errorf("writing tree as JSON: %v", err)
	}
	return nil
}

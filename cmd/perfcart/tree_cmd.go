package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pbanos/perfcart/dataset"
	"github.com/pbanos/perfcart/report"
	"github.com/pbanos/perfcart/split"
	"github.com/pbanos/perfcart/tree"
	tjson "github.com/pbanos/perfcart/tree/json"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput string
	format    string
	output    string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	tcc := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a grown tree",
		Long:  `Show the structure of a tree grown with the grow command and written as JSON`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			t, err := tcc.loadTree(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err = report.WriteStructure(ctx, os.Stdout, t); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(tcc.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required)")
	cmd.AddCommand(renderCmd(tcc), predictCmd(tcc))
	return cmd
}

func renderCmd(tcc *treeCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a tree as a graph",
		Long:  `Render a tree as a graph with graphviz`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			format, ok := tree.Formats[tcc.format]
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown format %q, available formats are %s\n", tcc.format, strings.Join(formats(), ", "))
				os.Exit(1)
			}
			t, err := tcc.loadTree(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			var w io.Writer = os.Stdout
			if tcc.output != "" {
				f, err := os.Create(tcc.output)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				defer f.Close()
				w = f
			}
			tcc.Logf("Rendering tree as %s...", tcc.format)
			if err = t.Render(ctx, w, format); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.Flags().StringVar(&(tcc.format), "format", "dot", fmt.Sprintf("format of the rendered graph: %s", strings.Join(formats(), ", ")))
	cmd.Flags().StringVar(&(tcc.output), "out", "", "path to the file the graph is written to (defaults to STDOUT)")
	return cmd
}

func predictCmd(tcc *treeCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "predict feature=0|1 ...",
		Short: "Predict the performance of a configuration",
		Long:  `Predict the performance of a configuration given the values of its features`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			row, err := parseRow(args)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t, err := tcc.loadTree(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			p, err := t.Predict(ctx, row)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			tcc.Logf("Predicted from node %s with %d configurations", p.NodeID(), p.Weight())
			fmt.Println(split.FormatFloat(p.PredictedValue()))
		},
	}
}

func (tcc *treeCmdConfig) loadTree(ctx context.Context) (*tree.Tree, error) {
	if tcc.treeInput == "" {
		return nil, fmt.Errorf("required tree flag was not set")
	}
	tcc.Logf("Reading tree from %s...", tcc.treeInput)
	f, err := os.Open(tcc.treeInput)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", tcc.treeInput, err)
	}
	defer f.Close()
	t := &tree.Tree{NodeStore: tree.NewMemoryNodeStore()}
	err = tjson.ReadJSONTree(ctx, t, tjson.NewNodeEncodeDecoder(), f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %v", tcc.treeInput, err)
	}
	return t, nil
}

// parseRow builds a row from arguments of the form feature=value
func parseRow(args []string) (dataset.Row, error) {
	values := make(map[string]float64, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return dataset.Row{}, fmt.Errorf("expected feature=value, got %q", arg)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return dataset.Row{}, fmt.Errorf("parsing value of %s: %v", parts[0], err)
		}
		values[parts[0]] = v
	}
	return dataset.NewRow("", values), nil
}

func formats() []string {
	names := make([]string, 0, len(tree.Formats))
	for name := range tree.Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

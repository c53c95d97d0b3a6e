/*
Package report writes the textual reports of a tree growth: the per-node
report with the statistics of every candidate split, and the structure
report with one indented line per node.
*/
package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/perfcart/split"
	"github.com/pbanos/perfcart/tree"
)

// Header is the line that precedes the candidate records of a partition
const Header = "countL, meanL, sq_errL, countR, meanR, sq_errR, mean_T, sq_errT"

// EndNode is the marker written for partitions that are not split
const EndNode = "********No splitting Required, reached end node*****"

/*
Writer writes the per-node report of a growing tree. Records are
buffered and appended in the order the Writer methods are called;
Close flushes them.
*/
type Writer struct {
	w *bufio.Writer
	c io.Closer
}

// NewWriter returns a Writer that writes the report on the given io.Writer
func NewWriter(w io.Writer) *Writer {
	rw := &Writer{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		rw.c = c
	}
	return rw
}

/*
Open takes the path to a file and returns a Writer that appends the report
to it, creating it if it does not exist.
*/
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening report %s: %v", path, err)
	}
	return NewWriter(f), nil
}

// Discard returns a Writer that drops the report
func Discard() *Writer {
	return NewWriter(io.Discard)
}

// Partition starts the records for the partition with the given label
func (rw *Writer) Partition(label string) error {
	return rw.printf("\n\n%s", label)
}

// Header writes the line naming the candidate statistics
func (rw *Writer) Header() error {
	return rw.printf("\n%s", Header)
}

// Candidate writes the statistics of splitting on the named feature
func (rw *Writer) Candidate(name string, s split.Stats) error {
	return rw.printf("\n%s%s", name, s)
}

/*
Split writes the record of the split of the partition with the given
label and row count on the given feature with the given statistics:
the winning feature, its error and statistics, followed by a summary
block.
*/
func (rw *Writer) Split(label string, count int, feature string, s split.Stats) error {
	err := rw.printf("\nSplit based on %s %s %s\n", feature, split.FormatFloat(s.SqErrTotal), s)
	if err != nil {
		return err
	}
	switch {
	case strings.HasSuffix(label, "R"):
		err = rw.printf("\nsuccessor_right:")
	case strings.HasSuffix(label, "L"):
		err = rw.printf("\nsuccessor_left:")
	}
	if err != nil {
		return err
	}
	return rw.printf("\ndatapoints: %d\nerror_of_split: %s\nmean: %s\nname: %s\nsplit_by_feature: %s",
		count, split.FormatFloat(s.SqErrTotal), split.FormatFloat(s.MeanOverall), label, feature)
}

// EndNode writes the marker of partitions that are not split
func (rw *Writer) EndNode() error {
	return rw.printf("\n%s\n", EndNode)
}

// Error writes the error that aborted the exploration of a partition
func (rw *Writer) Error(err error) error {
	return rw.printf("\nerror: %v\n", err)
}

// Flush writes any buffered record to the underlying io.Writer
func (rw *Writer) Flush() error {
	return rw.w.Flush()
}

// Close flushes the Writer and closes the underlying io.Writer if it
// is an io.Closer.
func (rw *Writer) Close() error {
	err := rw.w.Flush()
	if rw.c != nil {
		if cerr := rw.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (rw *Writer) printf(format string, a ...interface{}) error {
	_, err := fmt.Fprintf(rw.w, format, a...)
	if err != nil {
		return fmt.Errorf("writing report: %v", err)
	}
	return nil
}

/*
WriteStructure writes on w the structure report of the given tree: one line
per node, top down and left subtrees first, indented by tree.Indent repeated
as many times as the node depth.
*/
func WriteStructure(ctx context.Context, w io.Writer, t *tree.Tree) error {
	lines, err := t.Structure(ctx)
	if err != nil {
		return fmt.Errorf("writing tree structure: %v", err)
	}
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err = fmt.Fprintln(bw, l); err != nil {
			return fmt.Errorf("writing tree structure: %v", err)
		}
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("writing tree structure: %v", err)
	}
	return nil
}

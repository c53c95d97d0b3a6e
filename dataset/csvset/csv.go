/*
Package csvset reads partitions from CSV streams and writes them back,
one CSV file per partition.
*/
package csvset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pbanos/perfcart/dataset"
)

/*
Writer is a CSV writer of rows of a partition
*/
type Writer struct {
	count   int
	columns []string
	idCol   string
	w       *csv.Writer
}

/*
Loader is a dataset.Loader that reads partitions from CSV files
with the given schema. The identifier passed to Load is the path
to the file, or "" to read from STDIN.
*/
type Loader struct {
	Schema dataset.Schema
}

/*
DirWriter is a dataset.Writer that writes each partition to a
<label>.csv file in the directory Dir.
*/
type DirWriter struct {
	Dir string
}

/*
ReadPartition takes an io.Reader for a CSV stream, a label and a schema, and
returns the root partition with the given label parsed from the reader or an
error.

The header or first row of the CSV content names the columns, which are mapped
to features, target and identifier by the schema. The rest of the rows should
consist of 0 or 1 for every feature column and a number for the target column.
*/
func ReadPartition(reader io.Reader, label string, s dataset.Schema) (*dataset.Partition, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	features, target, err := s.Columns(header)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %v", err)
	}
	rows := []dataset.Row{}
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		row, err := parseRowFromCSVRecord(record, header, s.IDColumn)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		rows = append(rows, row)
	}
	p, err := dataset.New(label, features, target, rows)
	if err != nil {
		return nil, err
	}
	p.IDColumn = s.IDColumn
	return p, nil
}

/*
ReadPartitionFromFilePath takes a path string and a schema, opens the
file to which the path points to and uses ReadPartition to return the
partition read from it, labelled after the file name. If the path is ""
os.Stdin is used instead with the label "stdin". It will return an error if
the given path cannot be opened for reading.
*/
func ReadPartitionFromFilePath(path string, s dataset.Schema) (*dataset.Partition, error) {
	var f *os.File
	var err error
	label := "stdin"
	if path == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading partition: %v", err)
		}
		defer f.Close()
		label = dataset.Label(path)
	}
	p, err := ReadPartition(f, label, s)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", path, err)
	}
	return p, err
}

// Load reads the partition in the CSV file at the given path.
func (l *Loader) Load(ctx context.Context, path string) (*dataset.Partition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadPartitionFromFilePath(path, l.Schema)
}

/*
NewWriter takes an io.Writer and the names of the columns to write, with the
identifier column (or "" if there is none) and returns a Writer that will write
rows on the io.Writer after writing the header.
*/
func NewWriter(writer io.Writer, columns []string, idColumn string) (*Writer, error) {
	w := csv.NewWriter(writer)
	err := w.Write(columns)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &Writer{columns: columns, idCol: idColumn, w: w}, nil
}

/*
WritePartition takes a writer and a partition and dumps to the writer the
partition in CSV format, with only the columns that survive on it. It returns
an error if something went wrong when writing to the writer.
*/
func WritePartition(ctx context.Context, writer io.Writer, p *dataset.Partition) error {
	cw, err := NewWriter(writer, p.Columns(), p.IDColumn)
	if err != nil {
		return err
	}
	for _, r := range p.Rows {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = cw.WriteRow(r)
		if err != nil {
			return err
		}
	}
	return cw.Flush()
}

// WritePartition creates or truncates the file for the partition in the
// DirWriter directory and writes the partition on it.
func (dw *DirWriter) WritePartition(ctx context.Context, p *dataset.Partition) error {
	path := filepath.Join(dw.Dir, fmt.Sprintf("%s.csv", p.Label))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	err = WritePartition(ctx, f, p)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing partition %s to %s: %w", p.Label, path, err)
	}
	return nil
}

// Count returns the number of rows written
func (cw *Writer) Count() int {
	return cw.count
}

// WriteRow writes the values of the row for the columns of the writer.
func (cw *Writer) WriteRow(r dataset.Row) error {
	record := make([]string, len(cw.columns))
	for j, c := range cw.columns {
		if c == cw.idCol {
			record[j] = r.ID
			continue
		}
		v, err := r.ValueFor(c)
		if err != nil {
			return err
		}
		record[j] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

// Flush ensures any buffered rows are written to the underlying io.Writer
func (cw *Writer) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

func parseRowFromCSVRecord(record, header []string, idColumn string) (dataset.Row, error) {
	values := make(map[string]float64, len(header))
	var id string
	for i, c := range header {
		if c == idColumn {
			id = record[i]
			continue
		}
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return dataset.Row{}, fmt.Errorf("converting %q for column %s to float64: %v", record[i], c, err)
		}
		values[c] = v
	}
	return dataset.NewRow(id, values), nil
}

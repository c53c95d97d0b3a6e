package sqlset

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/pbanos/perfcart/dataset"
)

/*
MaxRowInsertionsPerStatement is the maximum number
of rows that are inserted with a single insert command
by WritePartition. Writing more will result in making
more insertion commands
*/
const MaxRowInsertionsPerStatement = 10

/*
Store is a dataset.Loader and dataset.Writer of partitions on the
tables of the database of an Adapter.
*/
type Store struct {
	Adapter
	Schema dataset.Schema
}

// New takes an adapter and a schema and returns a Store on them.
func New(a Adapter, s dataset.Schema) *Store {
	return &Store{Adapter: a, Schema: s}
}

/*
Load takes a context and the name of a table and returns the root
partition with the rows on it, labelled with the table name. Its columns
are mapped to features, target and identifier with the Store schema.
*/
func (s *Store) Load(ctx context.Context, table string) (*dataset.Partition, error) {
	qt, err := s.Identifier(table)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB().QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", qt))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of table %s: %v", table, err)
	}
	features, target, err := s.Schema.Columns(header)
	if err != nil {
		return nil, fmt.Errorf("table %s: %v", table, err)
	}
	var result []dataset.Row
	raw := make([]interface{}, len(header))
	dest := make([]interface{}, len(header))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning row %d of table %s: %v", len(result)+1, table, err)
		}
		row, err := rowFromRaw(raw, header, s.Schema.IDColumn)
		if err != nil {
			return nil, fmt.Errorf("row %d of table %s: %v", len(result)+1, table, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	p, err := dataset.New(dataset.Label(table), features, target, result)
	if err != nil {
		return nil, err
	}
	p.IDColumn = s.Schema.IDColumn
	return p, nil
}

/*
WritePartition takes a context and a partition and (re)creates the table
named after the partition label with the partition columns, inserting
the partition rows in it.
*/
func (s *Store) WritePartition(ctx context.Context, p *dataset.Partition) error {
	table, err := s.Identifier(p.Label)
	if err != nil {
		return err
	}
	columns := p.Columns()
	qColumns := make([]string, len(columns))
	for i, c := range columns {
		qColumns[i], err = s.Identifier(c)
		if err != nil {
			return err
		}
	}
	_, err = s.DB().ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table))
	if err != nil {
		return fmt.Errorf("dropping table %s: %v", p.Label, err)
	}
	_, err = s.DB().ExecContext(ctx, createStatement(s.Adapter, table, qColumns, columns, p.IDColumn))
	if err != nil {
		return fmt.Errorf("creating table %s: %v", p.Label, err)
	}
	for start := 0; start < len(p.Rows); start += MaxRowInsertionsPerStatement {
		end := start + MaxRowInsertionsPerStatement
		if end > len(p.Rows) {
			end = len(p.Rows)
		}
		args := make([]interface{}, 0, (end-start)*len(columns))
		for _, r := range p.Rows[start:end] {
			for _, c := range columns {
				if c == p.IDColumn {
					args = append(args, r.ID)
					continue
				}
				v, err := r.ValueFor(c)
				if err != nil {
					return err
				}
				args = append(args, v)
			}
		}
		_, err = s.DB().ExecContext(ctx, insertStatement(s.Adapter, table, qColumns, end-start), args...)
		if err != nil {
			return fmt.Errorf("inserting rows %d to %d on table %s: %v", start+1, end, p.Label, err)
		}
	}
	return nil
}

func createStatement(a Adapter, table string, qColumns, columns []string, idColumn string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("CREATE TABLE %s (", table))
	for i, qc := range qColumns {
		if i > 0 {
			buf.WriteString(", ")
		}
		t := a.ValueType()
		if columns[i] == idColumn {
			t = a.IDType()
		}
		buf.WriteString(fmt.Sprintf("%s %s NOT NULL", qc, t))
	}
	buf.WriteString(")")
	return buf.String()
}

func insertStatement(a Adapter, table string, qColumns []string, rows int) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("INSERT INTO %s (", table))
	for i, qc := range qColumns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(qc)
	}
	buf.WriteString(") VALUES ")
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for i := range qColumns {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(a.Placeholder(n))
			n++
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func rowFromRaw(raw []interface{}, header []string, idColumn string) (dataset.Row, error) {
	values := make(map[string]float64, len(header))
	var id string
	for i, c := range header {
		if c == idColumn {
			id = toString(raw[i])
			continue
		}
		v, err := toFloat(raw[i])
		if err != nil {
			return dataset.Row{}, fmt.Errorf("column %s: %v", c, err)
		}
		values[c] = v
	}
	return dataset.NewRow(id, values), nil
}

func toFloat(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	case nil:
		return 0, fmt.Errorf("NULL value")
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", v, v)
	}
}

func toString(v interface{}) string {
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

/*
Package mongoset provides a dataset.Loader and a dataset.Writer for
partitions kept on the collections of a MongoDB database.

Every row of a partition is a document on the collection named after the
partition label, with one field per partition column in the partition
column order. The identifier column is kept as a string and every feature
and the target as numbers.
*/
package mongoset

import (
	"context"
	"fmt"

	"github.com/pbanos/perfcart/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const mongoIDField = "_id"

/*
Store is a dataset.Loader and dataset.Writer of partitions on the
default database of a MongoDB session.
*/
type Store struct {
	session *mgo.Session
	Schema  dataset.Schema
}

/*
Open takes a MongoDB database session and a schema and returns a Store
that works on the default database for that session.
*/
func Open(session *mgo.Session, s dataset.Schema) *Store {
	return &Store{session: session, Schema: s}
}

/*
Load takes a context and the name of a collection and returns the root
partition with its documents, labelled with the collection name. The
columns are the fields of the first document in order, mapped to
features, target and identifier with the Store schema.
*/
func (s *Store) Load(ctx context.Context, collection string) (*dataset.Partition, error) {
	session := s.session.Copy()
	defer session.Close()
	iter := session.DB("").C(collection).Find(nil).Sort("$natural").Iter()
	var header []string
	var rows []dataset.Row
	var doc bson.D
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		if header == nil {
			header = headerOf(doc)
		}
		row, err := rowFromDocument(doc, header, s.Schema.IDColumn)
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("document %d of collection %s: %v", len(rows)+1, collection, err)
		}
		rows = append(rows, row)
		doc = nil
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading collection %s: %v", collection, err)
	}
	if header == nil {
		return nil, fmt.Errorf("collection %s has no documents", collection)
	}
	features, target, err := s.Schema.Columns(header)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %v", collection, err)
	}
	p, err := dataset.New(dataset.Label(collection), features, target, rows)
	if err != nil {
		return nil, err
	}
	p.IDColumn = s.Schema.IDColumn
	return p, nil
}

/*
WritePartition takes a context and a partition and replaces the documents
of the collection named after the partition label with one document per
partition row.
*/
func (s *Store) WritePartition(ctx context.Context, p *dataset.Partition) error {
	session := s.session.Copy()
	defer session.Close()
	c := session.DB("").C(p.Label)
	_, err := c.RemoveAll(nil)
	if err != nil {
		return fmt.Errorf("emptying collection %s: %v", p.Label, err)
	}
	docs := make([]interface{}, 0, len(p.Rows))
	for _, r := range p.Rows {
		doc, err := documentFor(p, r)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	err = c.Insert(docs...)
	if err != nil {
		return fmt.Errorf("inserting %d documents on collection %s: %v", len(docs), p.Label, err)
	}
	return nil
}

func documentFor(p *dataset.Partition, r dataset.Row) (bson.D, error) {
	columns := p.Columns()
	doc := make(bson.D, 0, len(columns))
	for _, c := range columns {
		if c == p.IDColumn {
			doc = append(doc, bson.DocElem{Name: c, Value: r.ID})
			continue
		}
		v, err := r.ValueFor(c)
		if err != nil {
			return nil, err
		}
		doc = append(doc, bson.DocElem{Name: c, Value: v})
	}
	return doc, nil
}

func headerOf(doc bson.D) []string {
	header := make([]string, 0, len(doc))
	for _, e := range doc {
		if e.Name != mongoIDField {
			header = append(header, e.Name)
		}
	}
	return header
}

func rowFromDocument(doc bson.D, header []string, idColumn string) (dataset.Row, error) {
	fields := doc.Map()
	values := make(map[string]float64, len(header))
	var id string
	for _, c := range header {
		v, ok := fields[c]
		if !ok {
			return dataset.Row{}, fmt.Errorf("missing field %s", c)
		}
		if c == idColumn {
			id = fmt.Sprintf("%v", v)
			continue
		}
		switch v := v.(type) {
		case float64:
			values[c] = v
		case int:
			values[c] = float64(v)
		case int64:
			values[c] = float64(v)
		default:
			return dataset.Row{}, fmt.Errorf("field %s has non numeric value %v (%T)", c, v, v)
		}
	}
	return dataset.NewRow(id, values), nil
}

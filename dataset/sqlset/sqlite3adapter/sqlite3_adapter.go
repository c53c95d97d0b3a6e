/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqlset package that works
over a SQLite3 database.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/perfcart/dataset/sqlset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to a SQLite3 database file and returns
an Adapter that works on the database or an error if it cannot be opened.
*/
func New(path string) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Identifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

func (a *adapter) Placeholder(int) string {
	return "?"
}

func (a *adapter) IDType() string {
	return "TEXT"
}

func (a *adapter) ValueType() string {
	return "REAL"
}

func (a *adapter) Close() error {
	return a.db.Close()
}

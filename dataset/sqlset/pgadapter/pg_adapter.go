/*
Package pgadapter provides an implementation of the
Adapter interface in the sqlset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/perfcart/dataset/sqlset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// MaxIdentifierLength is the maximum length of a PostgreSQL identifier
const MaxIdentifierLength = 63

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqlset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

// Identifier rejects names PostgreSQL would truncate, as deep node labels
// would otherwise collide.
func (a *adapter) Identifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	if len(name) > MaxIdentifierLength {
		return "", fmt.Errorf("name '%s' is longer than %d bytes", name, MaxIdentifierLength)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

func (a *adapter) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (a *adapter) IDType() string {
	return "TEXT"
}

func (a *adapter) ValueType() string {
	return "DOUBLE PRECISION"
}

func (a *adapter) Close() error {
	return a.db.Close()
}

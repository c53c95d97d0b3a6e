package sqlset

import "database/sql"

/*
Adapter is an interface providing the methods
needed to keep partitions on a database backend.
*/
type Adapter interface {
	// DB returns the database connection of the adapter
	DB() *sql.DB
	// Identifier takes the name of a table or column and returns it
	// quoted for use in statements or an error if it cannot be used.
	Identifier(string) (string, error)
	// Placeholder returns the placeholder for the i-th (starting at 1)
	// argument of a statement.
	Placeholder(i int) string
	// IDType returns the type of identifier columns
	IDType() string
	// ValueType returns the type of feature and target columns
	ValueType() string
	// Close closes the database connection
	Close() error
}

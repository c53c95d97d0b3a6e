/*
Package sqlset provides a dataset.Loader and a dataset.Writer for
partitions kept on tables of a SQL database.

Each partition is kept on a table named after its label, with one column
per partition column: the identifier column as text and every feature and
the target as real numbers.

The operations specific to a database engine are provided by the
implementations of the Adapter interface in the subpackages.
*/
package sqlset

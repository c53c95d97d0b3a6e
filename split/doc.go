/*
Package split evaluates candidate splits of a partition of configuration
samples on a binary feature.

Evaluate groups the values of a target column by the value of a feature
column and returns the Stats of the resulting split: the count, mean and
sum of squared errors of each group, an aggregate mean and the total squared
error that trees use to select the feature to split on.

Means and errors are rounded to Precision decimal digits, and squared errors
are computed against the rounded means.
*/
package split

package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

/*
Schema describes how the columns of a table map to a partition: an optional
identifier column whose values are kept but never split on, and the target
column with the measured performance. When Target is empty, the last column
(other than the identifier) is the target. Every other column is a binary
feature, in table order.
*/
type Schema struct {
	IDColumn string `yaml:"idColumn"`
	Target   string `yaml:"target"`
}

/*
Columns takes the header of a table and returns the feature names and
the target name it describes, or an error if the header does not fit the
schema.
*/
func (s Schema) Columns(header []string) ([]string, string, error) {
	seen := make(map[string]bool, len(header))
	for _, c := range header {
		if c == "" {
			return nil, "", fmt.Errorf("header has a column without name")
		}
		if seen[c] {
			return nil, "", fmt.Errorf("header has duplicated column %q", c)
		}
		seen[c] = true
	}
	if s.IDColumn != "" && !seen[s.IDColumn] {
		return nil, "", fmt.Errorf("header has no identifier column %q", s.IDColumn)
	}
	target := s.Target
	if target == "" {
		for i := len(header) - 1; i >= 0; i-- {
			if header[i] != s.IDColumn {
				target = header[i]
				break
			}
		}
	}
	if target == "" || !seen[target] {
		return nil, "", fmt.Errorf("header has no target column %q", target)
	}
	if target == s.IDColumn {
		return nil, "", fmt.Errorf("column %q cannot be both identifier and target", target)
	}
	features := make([]string, 0, len(header))
	for _, c := range header {
		if c != s.IDColumn && c != target {
			features = append(features, c)
		}
	}
	return features, target, nil
}

/*
Label takes the identifier of a dataset (a file path, a table or a
collection name) and returns the label of its root node: its base
name without extension. For "data/X.csv" it returns "X".
*/
func Label(id string) string {
	base := filepath.Base(id)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

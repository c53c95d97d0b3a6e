/*
Package feature defines the binary features observed on configuration
samples and the criteria that constrain them.
*/
package feature

import "fmt"

const (
	// Enabled is the value of a binary feature that is switched on.
	// Samples with this value go to the left subtree of a split.
	Enabled = 1.0
	// Disabled is the value of a binary feature that is switched off.
	// Samples with this value go to the right subtree of a split.
	Disabled = 0.0
)

/*
Valid takes the name of a binary feature and a value and returns true and nil
when the value is either Enabled or Disabled. Otherwise it returns false and an
error describing the reason.
*/
func Valid(name string, value float64) (bool, error) {
	if value == Enabled || value == Disabled {
		return true, nil
	}
	return false, fmt.Errorf("binary feature %s got value %v, expected 0 or 1", name, value)
}

/*
Side returns "L" for Enabled and "R" for Disabled, the suffix appended to
a node label for the subtree holding samples with that value.
*/
func Side(value float64) string {
	if value == Enabled {
		return "L"
	}
	return "R"
}
